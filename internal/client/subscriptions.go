package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"subtrack/internal/dto"
	"subtrack/internal/invalidate"
)

// мутация подписки меняет и счетчики категорий
var subscriptionMutationTags = []invalidate.Tag{invalidate.Subscriptions, invalidate.Categories}

func subscriptionQuery(q dto.ListSubscriptionsQuery) url.Values {
	values := url.Values{}
	if q.Query != "" {
		values.Set("query", q.Query)
	}
	if q.CategoryID != "" {
		values.Set("categoryId", q.CategoryID)
	}
	if q.OrganizationID != "" {
		values.Set("organizationId", q.OrganizationID)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	return values
}

func (c *Client) ListSubscriptions(ctx context.Context, q dto.ListSubscriptionsQuery) ([]dto.SubscriptionResponse, error) {
	var out []dto.SubscriptionResponse
	if err := c.do(ctx, http.MethodGet, "/subscription", subscriptionQuery(q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountSubscriptions - пагинация не влияет на результат
func (c *Client) CountSubscriptions(ctx context.Context, q dto.ListSubscriptionsQuery) (int64, error) {
	q.Limit, q.Offset = 0, 0

	var out dto.CountResponse
	if err := c.do(ctx, http.MethodPost, "/subscription/count", subscriptionQuery(q), nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	var out dto.SubscriptionResponse
	if err := c.do(ctx, http.MethodGet, "/subscription/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	var out dto.SubscriptionResponse
	if err := c.do(ctx, http.MethodPost, "/subscription", nil, req, &out); err != nil {
		return nil, err
	}
	c.invalidate(ctx, subscriptionMutationTags...)
	return &out, nil
}

func (c *Client) ReplaceSubscription(ctx context.Context, id string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	var out dto.SubscriptionResponse
	if err := c.do(ctx, http.MethodPut, "/subscription/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	c.invalidate(ctx, subscriptionMutationTags...)
	return &out, nil
}

func (c *Client) PatchSubscription(ctx context.Context, id string, req dto.PatchSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	var out dto.SubscriptionResponse
	if err := c.do(ctx, http.MethodPatch, "/subscription/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	c.invalidate(ctx, subscriptionMutationTags...)
	return &out, nil
}

func (c *Client) DeleteSubscription(ctx context.Context, id string) error {
	var out dto.SuccessResponse
	if err := c.do(ctx, http.MethodDelete, "/subscription/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return err
	}
	c.invalidate(ctx, subscriptionMutationTags...)
	return nil
}
