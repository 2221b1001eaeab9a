package models

// AllCategoriesID - служебный id "Все" в сайдбаре. В базе не хранится.
const AllCategoriesID = "all"

type Category struct {
	BaseModel
	Name           string  `gorm:"not null"`
	UserID         string  `gorm:"type:varchar(36);not null;index"`
	OrganizationID *string `gorm:"type:varchar(36);index"`
}

// CategoryWithCount - категория с количеством подписок (результат агрегирующего запроса)
type CategoryWithCount struct {
	Category
	SubscriptionCount int64
}
