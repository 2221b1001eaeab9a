package repositories

import (
	"subtrack/internal/models"

	"gorm.io/gorm"
)

// MembershipRepository читает таблицу членства, которую ведет модуль организаций
type MembershipRepository interface {
	IsMember(db *gorm.DB, organizationID, userID string) (bool, error)
}

type MembershipRepositoryImpl struct{}

func NewMembershipRepository() MembershipRepository {
	return &MembershipRepositoryImpl{}
}

func (r *MembershipRepositoryImpl) IsMember(db *gorm.DB, organizationID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.Member{}).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
