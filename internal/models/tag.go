package models

type Tag struct {
	BaseModel
	Name           string  `gorm:"not null"`
	UserID         string  `gorm:"type:varchar(36);not null;index"`
	OrganizationID *string `gorm:"type:varchar(36);index"`
}

// SubscriptionTag - join-таблица подписка <-> тег. Position хранит порядок из запроса.
type SubscriptionTag struct {
	SubscriptionID string `gorm:"type:varchar(36);primaryKey"`
	TagID          string `gorm:"type:varchar(36);primaryKey"`
	Position       int    `gorm:"not null;default:0"`

	Tag *Tag `gorm:"foreignKey:TagID"`
}
