package client

import (
	"context"
	"net/http"
	"net/url"

	"subtrack/internal/dto"
	"subtrack/internal/invalidate"
)

func orgQuery(organizationID string) url.Values {
	if organizationID == "" {
		return nil
	}
	return url.Values{"organizationId": {organizationID}}
}

func (c *Client) ListCategories(ctx context.Context, organizationID string) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, "/subscription-categories", orgQuery(organizationID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CategoryOptions(ctx context.Context, organizationID string) ([]dto.CategoryOption, error) {
	var out []dto.CategoryOption
	if err := c.do(ctx, http.MethodGet, "/subscription-categories/select", orgQuery(organizationID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "/subscription-categories", nil, req, &out); err != nil {
		return nil, err
	}
	c.invalidate(ctx, invalidate.Categories)
	return &out, nil
}

func (c *Client) RenameCategory(ctx context.Context, id, name string) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	req := dto.UpdateCategoryRequest{Name: name}
	if err := c.do(ctx, http.MethodPatch, "/subscription-categories/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	// подписки отдают категорию вложенной, ее имя тоже устарело
	c.invalidate(ctx, invalidate.Categories, invalidate.Subscriptions)
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	var out dto.SuccessResponse
	if err := c.do(ctx, http.MethodDelete, "/subscription-categories/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return err
	}
	c.invalidate(ctx, invalidate.Categories, invalidate.Subscriptions)
	return nil
}
