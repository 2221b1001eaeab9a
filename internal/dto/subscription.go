package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"subtrack/internal/models"
)

// CreateSubscriptionRequest - тело POST /subscription и PUT /subscription/:id.
// Эту же структуру валидирует форма в internal/ui, поэтому правила клиента и сервера совпадают.
type CreateSubscriptionRequest struct {
	Company         string                  `json:"company" validate:"required,max=255"`
	Description     *string                 `json:"description,omitempty" validate:"omitempty,max=2000"`
	Frequency       int                     `json:"frequency" validate:"required,min=1"`
	Value           *float64                `json:"value,omitempty" validate:"omitempty,min=0"`
	Currency        string                  `json:"currency" validate:"required,currency-code"`
	Cycle           models.BillingCycle     `json:"cycle" validate:"required,billing-cycle"`
	Type            models.SubscriptionType `json:"type" validate:"required,subscription-type"`
	Recurring       *bool                   `json:"recurring" validate:"required"`
	NextPaymentDate *time.Time              `json:"nextPaymentDate,omitempty"`
	ContractExpiry  *time.Time              `json:"contractExpiry,omitempty"`
	URLLink         *string                 `json:"urlLink,omitempty" validate:"omitnil,url"`
	PaymentMethod   *string                 `json:"paymentMethod,omitempty" validate:"omitempty,max=30"`
	CategoryID      *string                 `json:"categoryId,omitempty" validate:"omitempty,max=36"`
	Notes           *string                 `json:"notes,omitempty" validate:"omitempty,max=5000"`
	NotesIncluded   *bool                   `json:"notesIncluded" validate:"required"`
	Tags            []string                `json:"tags,omitempty" validate:"omitempty,dive,required,max=36"`
	OrganizationID  *string                 `json:"organizationId,omitempty" validate:"omitempty,max=36"`
}

// Normalize убирает пробелы по краям и дубликаты тегов.
// Пустые строки в необязательных полях превращаются в nil: форма шлет "" для незаполненных полей,
// а пустой categoryId в PUT означает "без категории".
func (r *CreateSubscriptionRequest) Normalize() {
	r.Company = strings.TrimSpace(r.Company)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.Description = emptyToNil(r.Description)
	r.URLLink = emptyToNil(r.URLLink)
	r.PaymentMethod = emptyToNil(r.PaymentMethod)
	r.CategoryID = emptyToNil(r.CategoryID)
	r.Notes = emptyToNil(r.Notes)
	r.OrganizationID = emptyToNil(r.OrganizationID)
	r.Tags = UniqueTags(r.Tags)
}

// PatchSubscriptionRequest - тело PATCH /subscription/:id. Отсутствующее поле означает "не менять".
// Явный null очищает необязательное поле (value, даты, categoryId и т.п.), пустая строка в categoryId тоже.
// Для обязательных полей null равносилен отсутствию.
type PatchSubscriptionRequest struct {
	Company         *string                  `json:"company,omitempty" validate:"omitnil,min=1,max=255"`
	Description     *string                  `json:"description,omitempty" validate:"omitnil,max=2000"`
	Frequency       *int                     `json:"frequency,omitempty" validate:"omitnil,min=1"`
	Value           *float64                 `json:"value,omitempty" validate:"omitnil,min=0"`
	Currency        *string                  `json:"currency,omitempty" validate:"omitnil,currency-code"`
	Cycle           *models.BillingCycle     `json:"cycle,omitempty" validate:"omitnil,billing-cycle"`
	Type            *models.SubscriptionType `json:"type,omitempty" validate:"omitnil,subscription-type"`
	Recurring       *bool                    `json:"recurring,omitempty"`
	NextPaymentDate *time.Time               `json:"nextPaymentDate,omitempty"`
	ContractExpiry  *time.Time               `json:"contractExpiry,omitempty"`
	URLLink         *string                  `json:"urlLink,omitempty" validate:"omitnil,url|len=0"`
	PaymentMethod   *string                  `json:"paymentMethod,omitempty" validate:"omitnil,max=30"`
	CategoryID      *string                  `json:"categoryId,omitempty" validate:"omitnil,max=36"`
	Notes           *string                  `json:"notes,omitempty"`
	NotesIncluded   *bool                    `json:"notesIncluded,omitempty"`
	Tags            *[]string                `json:"tags,omitempty" validate:"omitnil,dive,required,max=36"`
	OrganizationID  *string                  `json:"organizationId,omitempty" validate:"omitnil,max=36"`

	cleared map[string]bool
}

// UnmarshalJSON запоминает ключи, пришедшие со значением null
func (r *PatchSubscriptionRequest) UnmarshalJSON(data []byte) error {
	type plain PatchSubscriptionRequest
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.cleared = nil
	for key, value := range raw {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			if r.cleared == nil {
				r.cleared = make(map[string]bool)
			}
			r.cleared[key] = true
		}
	}
	return nil
}

// Clears сообщает, что поле с json-именем field передано как null
func (r *PatchSubscriptionRequest) Clears(field string) bool {
	return r.cleared[field]
}

func (r *PatchSubscriptionRequest) Normalize() {
	if r.Company != nil {
		trimmed := strings.TrimSpace(*r.Company)
		r.Company = &trimmed
	}
	if r.Currency != nil {
		upper := strings.ToUpper(strings.TrimSpace(*r.Currency))
		r.Currency = &upper
	}
	if r.Tags != nil {
		unique := UniqueTags(*r.Tags)
		r.Tags = &unique
	}
}

// ListSubscriptionsQuery - query-параметры GET /subscription и /subscription/count
type ListSubscriptionsQuery struct {
	Query          string `form:"query" json:"query,omitempty" validate:"omitempty,max=255"`
	CategoryID     string `form:"categoryId" json:"categoryId,omitempty" validate:"omitempty,max=36"`
	OrganizationID string `form:"organizationId" json:"organizationId,omitempty" validate:"omitempty,max=36"`
	Limit          int    `form:"limit" json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
	Offset         int    `form:"offset" json:"offset,omitempty" validate:"omitempty,min=0"`
}

type SubscriptionResponse struct {
	ID              string                  `json:"id"`
	UserID          string                  `json:"userId"`
	OrganizationID  *string                 `json:"organizationId"`
	Company         string                  `json:"company"`
	Description     *string                 `json:"description,omitempty"`
	Frequency       int                     `json:"frequency"`
	Value           *float64                `json:"value,omitempty"`
	Currency        string                  `json:"currency"`
	Cycle           models.BillingCycle     `json:"cycle"`
	Type            models.SubscriptionType `json:"type"`
	Recurring       bool                    `json:"recurring"`
	NextPaymentDate *time.Time              `json:"nextPaymentDate,omitempty"`
	ContractExpiry  *time.Time              `json:"contractExpiry,omitempty"`
	URLLink         *string                 `json:"urlLink,omitempty"`
	PaymentMethod   *string                 `json:"paymentMethod"`
	CategoryID      *string                 `json:"categoryId"`
	Category        *CategoryResponse       `json:"category,omitempty"`
	Notes           *string                 `json:"notes,omitempty"`
	NotesIncluded   bool                    `json:"notesIncluded"`
	Tags            []string                `json:"tags"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// ToCreateRequest - обратное преобразование, им форма заполняет поля при редактировании
func (s *SubscriptionResponse) ToCreateRequest() CreateSubscriptionRequest {
	recurring := s.Recurring
	notesIncluded := s.NotesIncluded
	return CreateSubscriptionRequest{
		Company:         s.Company,
		Description:     s.Description,
		Frequency:       s.Frequency,
		Value:           s.Value,
		Currency:        s.Currency,
		Cycle:           s.Cycle,
		Type:            s.Type,
		Recurring:       &recurring,
		NextPaymentDate: s.NextPaymentDate,
		ContractExpiry:  s.ContractExpiry,
		URLLink:         s.URLLink,
		PaymentMethod:   s.PaymentMethod,
		CategoryID:      s.CategoryID,
		Notes:           s.Notes,
		NotesIncluded:   &notesIncluded,
		Tags:            append([]string(nil), s.Tags...),
		OrganizationID:  s.OrganizationID,
	}
}

func NewSubscriptionResponse(s *models.Subscription) *SubscriptionResponse {
	resp := &SubscriptionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		OrganizationID:  s.OrganizationID,
		Company:         s.Company,
		Description:     s.Description,
		Frequency:       s.Frequency,
		Value:           s.Value,
		Currency:        s.Currency,
		Cycle:           s.Cycle,
		Type:            s.Type,
		Recurring:       s.Recurring,
		NextPaymentDate: s.NextPaymentDate,
		ContractExpiry:  s.ContractExpiry,
		URLLink:         s.URLLink,
		PaymentMethod:   s.PaymentMethod,
		CategoryID:      s.CategoryID,
		Notes:           s.Notes,
		NotesIncluded:   s.NotesIncluded,
		Tags:            s.TagIDs(),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.Category != nil {
		resp.Category = NewCategoryResponse(s.Category, 0)
	}
	return resp
}

func NewSubscriptionListResponse(items []models.Subscription) []*SubscriptionResponse {
	out := make([]*SubscriptionResponse, 0, len(items))
	for i := range items {
		out = append(out, NewSubscriptionResponse(&items[i]))
	}
	return out
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// UniqueTags убирает пустые и повторные id, сохраняя порядок первого появления
func UniqueTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
