package helpers

import (
	"testing"

	"subtrack/internal/app"
	"subtrack/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SeedMember добавляет userID в организацию
func SeedMember(t *testing.T, db *gorm.DB, organizationID, userID string) {
	t.Helper()
	_, err := app.Seed(db, app.SeedInput{UserID: userID, OrganizationID: organizationID})
	require.NoError(t, err, "Не удалось добавить участника организации")
}

// SeedTags создает теги и возвращает их id в порядке имен
func SeedTags(t *testing.T, db *gorm.DB, userID, organizationID string, names ...string) []string {
	t.Helper()
	tags, err := app.Seed(db, app.SeedInput{UserID: userID, OrganizationID: organizationID, Tags: names})
	require.NoError(t, err, "Не удалось создать теги")

	ids := make([]string, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

// CountRows - количество строк модели, подходящих под условие
func CountRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}

// LoadSubscription читает запись напрямую из базы, минуя API
func LoadSubscription(t *testing.T, db *gorm.DB, id string) models.Subscription {
	t.Helper()
	var sub models.Subscription
	require.NoError(t, db.Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).First(&sub, "id = ?", id).Error)
	return sub
}
