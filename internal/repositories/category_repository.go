package repositories

import (
	"errors"
	"time"

	"subtrack/internal/models"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryScope - чьи категории выбирать. Правило то же, что у подписок.
type CategoryScope struct {
	UserID         string
	OrganizationID string
	All            bool
}

type CategoryRepository interface {
	Create(db *gorm.DB, category *models.Category) error
	FindByID(db *gorm.DB, id string) (*models.Category, error)
	ListWithCounts(db *gorm.DB, scope CategoryScope) ([]models.CategoryWithCount, error)
	ListOptions(db *gorm.DB, scope CategoryScope) ([]models.Category, error)
	Rename(db *gorm.DB, id, name string) error
	// Delete снимает категорию с подписок и удаляет ее в одной транзакции
	Delete(db *gorm.DB, id string) error
}

type CategoryRepositoryImpl struct{}

func NewCategoryRepository() CategoryRepository {
	return &CategoryRepositoryImpl{}
}

func (r *CategoryRepositoryImpl) Create(db *gorm.DB, category *models.Category) error {
	return db.Create(category).Error
}

func (r *CategoryRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) ListWithCounts(db *gorm.DB, scope CategoryScope) ([]models.CategoryWithCount, error) {
	var categories []models.Category
	if err := applyCategoryScope(db.Model(&models.Category{}), scope).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return []models.CategoryWithCount{}, nil
	}

	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}

	var counts []struct {
		CategoryID string
		Total      int64
	}
	err := db.Model(&models.Subscription{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IN ?", ids).
		Group("category_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int64, len(counts))
	for _, c := range counts {
		byID[c.CategoryID] = c.Total
	}

	out := make([]models.CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, models.CategoryWithCount{Category: c, SubscriptionCount: byID[c.ID]})
	}
	return out, nil
}

func (r *CategoryRepositoryImpl) ListOptions(db *gorm.DB, scope CategoryScope) ([]models.Category, error) {
	var categories []models.Category
	err := applyCategoryScope(db.Model(&models.Category{}), scope).
		Select("id", "name").
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepositoryImpl) Rename(db *gorm.DB, id, name string) error {
	result := db.Model(&models.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":       name,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Subscription{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

func applyCategoryScope(q *gorm.DB, scope CategoryScope) *gorm.DB {
	switch {
	case scope.OrganizationID != "":
		return q.Where("organization_id = ?", scope.OrganizationID)
	case scope.All:
		return q
	default:
		return q.Where("user_id = ? AND organization_id IS NULL", scope.UserID)
	}
}
