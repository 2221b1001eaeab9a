package repositories

import (
	"subtrack/internal/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	// FindByIDs возвращает найденные теги; отсутствующие id просто пропускаются
	FindByIDs(db *gorm.DB, ids []string) ([]models.Tag, error)
}

type TagRepositoryImpl struct{}

func NewTagRepository() TagRepository {
	return &TagRepositoryImpl{}
}

func (r *TagRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	err := db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}
