package dto

import (
	"strings"
	"time"

	"subtrack/internal/models"
)

type CreateCategoryRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	OrganizationID *string `json:"organizationId,omitempty" validate:"omitempty,max=36"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (r *UpdateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type ListCategoriesQuery struct {
	OrganizationID string `form:"organizationId" validate:"omitempty,max=36"`
}

type CategoryResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	OrganizationID    *string   `json:"organizationId"`
	SubscriptionCount int64     `json:"subscriptionCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CategoryOption - элемент выпадающего списка категорий в форме
type CategoryOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewCategoryResponse(c *models.Category, count int64) *CategoryResponse {
	return &CategoryResponse{
		ID:                c.ID,
		Name:              c.Name,
		OrganizationID:    c.OrganizationID,
		SubscriptionCount: count,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func NewCategoryListResponse(items []models.CategoryWithCount) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(items))
	for i := range items {
		out = append(out, NewCategoryResponse(&items[i].Category, items[i].SubscriptionCount))
	}
	return out
}
