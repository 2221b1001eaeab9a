package integration_test

import (
	"net/http"
	"testing"

	"subtrack/internal/dto"
	"subtrack/test/helpers"

	"github.com/stretchr/testify/require"
)

const (
	userA = "11111111-1111-1111-1111-111111111111"
	userB = "22222222-2222-2222-2222-222222222222"
	orgX  = "org-x"
	orgY  = "org-y"
)

// netflix - валидное тело POST /subscription
func netflix(extra map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{
		"company":       "Netflix",
		"value":         15.49,
		"currency":      "USD",
		"cycle":         "Monthly",
		"frequency":     1,
		"type":          "Subscription",
		"recurring":     true,
		"notesIncluded": false,
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func createSubscription(t *testing.T, ts *helpers.TestServer, token string, body map[string]interface{}) dto.SubscriptionResponse {
	t.Helper()
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/subscription", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	return helpers.Decode[dto.SubscriptionResponse](t, bodyStr)
}

func createCategory(t *testing.T, ts *helpers.TestServer, token string, body map[string]interface{}) dto.CategoryResponse {
	t.Helper()
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/subscription-categories", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	return helpers.Decode[dto.CategoryResponse](t, bodyStr)
}

func listCategories(t *testing.T, ts *helpers.TestServer, token, query string) []dto.CategoryResponse {
	t.Helper()
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription-categories"+query, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	return helpers.Decode[[]dto.CategoryResponse](t, bodyStr)
}

func countSubscriptions(t *testing.T, ts *helpers.TestServer, token, query string) int64 {
	t.Helper()
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/subscription/count"+query, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	return helpers.Decode[dto.CountResponse](t, bodyStr).Count
}

func listSubscriptions(t *testing.T, ts *helpers.TestServer, token, query string) []dto.SubscriptionResponse {
	t.Helper()
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription"+query, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	return helpers.Decode[[]dto.SubscriptionResponse](t, bodyStr)
}
