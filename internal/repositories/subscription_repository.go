package repositories

import (
	"errors"
	"strings"
	"time"

	"subtrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionFilter - условия выборки. Без OrganizationID выбираются только личные записи UserID.
// AllOwners снимает ограничение по владельцу (админские маршруты).
type SubscriptionFilter struct {
	UserID         string
	OrganizationID string
	Query          string
	CategoryID     string
	Limit          int
	Offset         int
	AllOwners      bool
}

type SubscriptionRepository interface {
	Create(db *gorm.DB, sub *models.Subscription, tagIDs []string) error
	FindByID(db *gorm.DB, id string) (*models.Subscription, error)
	List(db *gorm.DB, filter SubscriptionFilter) ([]models.Subscription, error)
	Count(db *gorm.DB, filter SubscriptionFilter) (int64, error)
	Patch(db *gorm.DB, id string, fields map[string]interface{}, tagIDs *[]string) error
	Replace(db *gorm.DB, sub *models.Subscription, tagIDs []string) error
	Delete(db *gorm.DB, id string) error
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

// replacedColumns - скалярные поля, которые PUT перезаписывает целиком
var replacedColumns = []string{
	"company", "description", "frequency", "value", "currency", "cycle", "type",
	"recurring", "next_payment_date", "contract_expiry", "url_link", "payment_method",
	"category_id", "notes", "notes_included", "organization_id", "updated_at",
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, sub *models.Subscription, tagIDs []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(sub).Error; err != nil {
			return err
		}
		return insertTags(tx, sub.ID, tagIDs)
	})
}

func (r *SubscriptionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.Preload("Category").Preload("Tags", orderTags).First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) List(db *gorm.DB, filter SubscriptionFilter) ([]models.Subscription, error) {
	var subs []models.Subscription

	q := applySubscriptionFilter(db.Model(&models.Subscription{}), filter).
		Preload("Category").
		Preload("Tags", orderTags).
		Order("created_at DESC").
		Order("id DESC")

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Count игнорирует Limit/Offset
func (r *SubscriptionRepositoryImpl) Count(db *gorm.DB, filter SubscriptionFilter) (int64, error) {
	var count int64
	err := applySubscriptionFilter(db.Model(&models.Subscription{}), filter).Count(&count).Error
	return count, err
}

// Patch обновляет только переданные колонки; tagIDs != nil заменяет набор тегов
func (r *SubscriptionRepositoryImpl) Patch(db *gorm.DB, id string, fields map[string]interface{}, tagIDs *[]string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureSubscriptionExists(tx, id); err != nil {
			return err
		}

		fields["updated_at"] = time.Now().UTC()
		if err := tx.Model(&models.Subscription{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}

		if tagIDs != nil {
			return replaceTags(tx, id, *tagIDs)
		}
		return nil
	})
}

// Replace перезаписывает все скалярные поля и набор тегов в одной транзакции
func (r *SubscriptionRepositoryImpl) Replace(db *gorm.DB, sub *models.Subscription, tagIDs []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureSubscriptionExists(tx, sub.ID); err != nil {
			return err
		}

		sub.UpdatedAt = time.Now().UTC()
		err := tx.Model(&models.Subscription{BaseModel: models.BaseModel{ID: sub.ID}}).
			Select(replacedColumns).
			Omit(clause.Associations).
			Updates(sub).Error
		if err != nil {
			return err
		}

		return replaceTags(tx, sub.ID, tagIDs)
	})
}

func (r *SubscriptionRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subscription_id = ?", id).Delete(&models.SubscriptionTag{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Subscription{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSubscriptionNotFound
		}
		return nil
	})
}

// --- helpers ---

func applySubscriptionFilter(q *gorm.DB, filter SubscriptionFilter) *gorm.DB {
	switch {
	case filter.OrganizationID != "":
		q = q.Where("organization_id = ?", filter.OrganizationID)
	case !filter.AllOwners:
		q = q.Where("user_id = ? AND organization_id IS NULL", filter.UserID)
	}

	if query := strings.TrimSpace(filter.Query); query != "" {
		q = q.Where("LOWER(company) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(query))+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	return q
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike экранирует служебные символы LIKE, чтобы строка поиска совпадала буквально
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func ensureSubscriptionExists(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&models.Subscription{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func replaceTags(tx *gorm.DB, subscriptionID string, tagIDs []string) error {
	if err := tx.Where("subscription_id = ?", subscriptionID).Delete(&models.SubscriptionTag{}).Error; err != nil {
		return err
	}
	return insertTags(tx, subscriptionID, tagIDs)
}

func insertTags(tx *gorm.DB, subscriptionID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.SubscriptionTag, 0, len(tagIDs))
	for i, tagID := range tagIDs {
		rows = append(rows, models.SubscriptionTag{
			SubscriptionID: subscriptionID,
			TagID:          tagID,
			Position:       i,
		})
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
