package models

import "time"

// BillingCycle - единица периодичности подписки
type BillingCycle string

const (
	CycleDaily   BillingCycle = "Daily"
	CycleWeekly  BillingCycle = "Weekly"
	CycleMonthly BillingCycle = "Monthly"
	CycleYearly  BillingCycle = "Yearly"
)

var BillingCycles = []BillingCycle{CycleDaily, CycleWeekly, CycleMonthly, CycleYearly}

// SubscriptionType - вид обязательства
type SubscriptionType string

const (
	TypeSubscription SubscriptionType = "Subscription"
	TypeTrial        SubscriptionType = "Trial"
	TypeLifetime     SubscriptionType = "Lifetime"
	TypeRevenue      SubscriptionType = "Revenue"
)

var SubscriptionTypes = []SubscriptionType{TypeSubscription, TypeTrial, TypeLifetime, TypeRevenue}

// PaymentMethods - значения, которые предлагает форма. Сервер принимает любой текст до 30 символов.
var PaymentMethods = []string{"PayPal", "Credit Card", "Free"}

// Subscription - запись о регулярном или разовом платеже, введенная пользователем
type Subscription struct {
	BaseModel
	UserID         string  `gorm:"type:varchar(36);not null;index"`
	OrganizationID *string `gorm:"type:varchar(36);index"`

	Company         string `gorm:"not null"`
	Description     *string
	Frequency       int              `gorm:"not null;default:1"`
	Value           *float64
	Currency        string           `gorm:"size:8;not null"`
	Cycle           BillingCycle     `gorm:"size:16;not null"`
	Type            SubscriptionType `gorm:"size:30;not null"`
	Recurring       bool             `gorm:"not null;default:true"`
	NextPaymentDate *time.Time
	ContractExpiry  *time.Time
	URLLink         *string
	PaymentMethod   *string `gorm:"size:30"`
	CategoryID      *string `gorm:"type:varchar(36);index"`
	Notes           *string
	NotesIncluded   bool `gorm:"not null;default:false"`

	// Relations
	Category *Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags     []SubscriptionTag `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE"`
}

// TagIDs возвращает id тегов в сохраненном порядке
func (s *Subscription) TagIDs() []string {
	ids := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		ids = append(ids, t.TagID)
	}
	return ids
}

// IsPersonal - запись не привязана к организации
func (s *Subscription) IsPersonal() bool {
	return s.OrganizationID == nil || *s.OrganizationID == ""
}
