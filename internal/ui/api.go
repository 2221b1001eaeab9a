// Package ui - view-модели страницы подписок: сайдбар категорий, таблица, форма.
// Модели хранят состояние, которое нужно рендереру, и выполняют действия пользователя через API.
package ui

import (
	"context"

	"subtrack/internal/dto"
)

// API - то, что view-моделям нужно от REST API. Реализуется *client.Client.
type API interface {
	ListSubscriptions(ctx context.Context, q dto.ListSubscriptionsQuery) ([]dto.SubscriptionResponse, error)
	CountSubscriptions(ctx context.Context, q dto.ListSubscriptionsQuery) (int64, error)
	GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	ReplaceSubscription(ctx context.Context, id string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	DeleteSubscription(ctx context.Context, id string) error

	ListCategories(ctx context.Context, organizationID string) ([]dto.CategoryResponse, error)
	CategoryOptions(ctx context.Context, organizationID string) ([]dto.CategoryOption, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	RenameCategory(ctx context.Context, id, name string) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error
}
