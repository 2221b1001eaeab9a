package app

import (
	"fmt"
	"strings"

	"subtrack/internal/logger"
	"subtrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedInput - данные, которые в этом сервисе не создаются через API:
// членство в организации (его ведет модуль организаций) и теги.
type SeedInput struct {
	UserID         string
	OrganizationID string
	Role           string
	Tags           []string
}

// Seed создает членство и теги в одной транзакции. Повторный запуск не дублирует членство.
func Seed(db *gorm.DB, in SeedInput) ([]models.Tag, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("seed: user id is required")
	}

	var tags []models.Tag
	err := db.Transaction(func(tx *gorm.DB) error {
		if in.OrganizationID != "" {
			role := in.Role
			if role == "" {
				role = "member"
			}
			member := models.Member{OrganizationID: in.OrganizationID, UserID: in.UserID, Role: role}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
				return fmt.Errorf("seed member: %w", err)
			}
			logger.Info("Member seeded", "organization_id", in.OrganizationID, "user_id", in.UserID)
		}

		for _, name := range in.Tags {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			tag := models.Tag{Name: name, UserID: in.UserID}
			if in.OrganizationID != "" {
				orgID := in.OrganizationID
				tag.OrganizationID = &orgID
			}
			if err := tx.Create(&tag).Error; err != nil {
				return fmt.Errorf("seed tag %q: %w", name, err)
			}
			tags = append(tags, tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Tags seeded", "count", len(tags))
	return tags, nil
}
