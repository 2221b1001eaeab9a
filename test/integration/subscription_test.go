package integration_test

import (
	"net/http"
	"testing"
	"time"

	"subtrack/internal/auth"
	"subtrack/internal/dto"
	"subtrack/internal/models"
	"subtrack/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubscription_CreateThenGet - get(create(input)) возвращает те же поля плюс id и даты
func TestSubscription_CreateThenGet(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)
	tags := helpers.SeedTags(t, ts.DB, userA, "", "video", "family")

	next := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	created := createSubscription(t, ts, token, netflix(map[string]interface{}{
		"description":     "  4K plan ",
		"nextPaymentDate": next.Format(time.RFC3339),
		"urlLink":         "https://netflix.com",
		"paymentMethod":   "PayPal",
		"notes":           "shared with family",
		"notesIncluded":   true,
		"tags":            []string{tags[1], tags[0], tags[1]},
	}))

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	got := helpers.Decode[dto.SubscriptionResponse](t, bodyStr)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, userA, got.UserID)
	assert.Nil(t, got.OrganizationID)
	assert.Equal(t, "Netflix", got.Company)
	require.NotNil(t, got.Description)
	assert.Equal(t, "4K plan", *got.Description)
	assert.Equal(t, 1, got.Frequency)
	require.NotNil(t, got.Value)
	assert.InDelta(t, 15.49, *got.Value, 0.0001)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, models.CycleMonthly, got.Cycle)
	assert.Equal(t, models.TypeSubscription, got.Type)
	assert.True(t, got.Recurring)
	require.NotNil(t, got.NextPaymentDate)
	assert.True(t, next.Equal(*got.NextPaymentDate))
	assert.Nil(t, got.ContractExpiry)
	require.NotNil(t, got.PaymentMethod)
	assert.Equal(t, "PayPal", *got.PaymentMethod)
	assert.True(t, got.NotesIncluded)
	assert.Equal(t, []string{tags[1], tags[0]}, got.Tags, "порядок тегов сохраняется, дубликаты убираются")
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSubscription_CreateValidation(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)

	cases := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{"empty company", netflix(map[string]interface{}{"company": "   "}), "company"},
		{"zero frequency", netflix(map[string]interface{}{"frequency": 0}), "frequency"},
		{"negative value", netflix(map[string]interface{}{"value": -1}), "value"},
		{"bad cycle", netflix(map[string]interface{}{"cycle": "Hourly"}), "cycle"},
		{"bad type", netflix(map[string]interface{}{"type": "Gift"}), "type"},
		{"bad currency", netflix(map[string]interface{}{"currency": "dollars"}), "currency"},
		{"bad url", netflix(map[string]interface{}{"urlLink": "not a url"}), "urlLink"},
		{"long payment method", netflix(map[string]interface{}{"paymentMethod": "a very very long payment method name"}), "paymentMethod"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/subscription", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

			errResp := helpers.Decode[struct {
				Error   string            `json:"error"`
				Code    string            `json:"code"`
				Details map[string]string `json:"details"`
			}](t, bodyStr)
			assert.Equal(t, "VALIDATION_FAILED", errResp.Code)
			assert.Contains(t, errResp.Details, tc.field)
		})
	}

	assert.Zero(t, helpers.CountRows(t, ts.DB, &models.Subscription{}, ""), "невалидные запросы не доходят до базы")
}

func TestSubscription_CreateRejectsUnknownReferences(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/subscription", token, netflix(map[string]interface{}{
		"categoryId": "missing-category",
		"tags":       []string{"missing-tag"},
	}))
	require.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"categoryId"`)
	assert.Contains(t, bodyStr, `"tags"`)
}

func TestSubscription_CategoryMustShareScope(t *testing.T) {
	ts := helpers.NewTestServer(t)
	tokenA := ts.Token(t, userA, auth.RoleUser)
	tokenB := ts.Token(t, userB, auth.RoleUser)

	foreign := createCategory(t, ts, tokenB, map[string]interface{}{"name": "B's"})

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/subscription", tokenA, netflix(map[string]interface{}{
		"categoryId": foreign.ID,
	}))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "categoryId")
}

// TestSubscription_PatchChangesOnlyGivenField - остальные поля и теги не меняются
func TestSubscription_PatchChangesOnlyGivenField(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)
	tags := helpers.SeedTags(t, ts.DB, userA, "", "video")
	category := createCategory(t, ts, token, map[string]interface{}{"name": "Streaming"})

	before := createSubscription(t, ts, token, netflix(map[string]interface{}{
		"categoryId":    category.ID,
		"paymentMethod": "Credit Card",
		"tags":          tags,
	}))
	time.Sleep(5 * time.Millisecond)

	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/v1/subscription/"+before.ID, token, map[string]interface{}{
		"value": 17.99,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	after := helpers.Decode[dto.SubscriptionResponse](t, bodyStr)

	require.NotNil(t, after.Value)
	assert.InDelta(t, 17.99, *after.Value, 0.0001)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	assert.Equal(t, before.Company, after.Company)
	assert.Equal(t, before.Frequency, after.Frequency)
	assert.Equal(t, before.Currency, after.Currency)
	assert.Equal(t, before.Cycle, after.Cycle)
	assert.Equal(t, before.Type, after.Type)
	assert.Equal(t, before.Recurring, after.Recurring)
	assert.Equal(t, before.PaymentMethod, after.PaymentMethod)
	assert.Equal(t, before.CategoryID, after.CategoryID)
	assert.Equal(t, before.Tags, after.Tags)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestSubscription_PatchEmptyCategoryClearsIt(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)
	category := createCategory(t, ts, token, map[string]interface{}{"name": "Streaming"})
	sub := createSubscription(t, ts, token, netflix(map[string]interface{}{"categoryId": category.ID}))

	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/v1/subscription/"+sub.ID, token, map[string]interface{}{
		"categoryId": "",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Nil(t, helpers.Decode[dto.SubscriptionResponse](t, bodyStr).CategoryID)
}

// TestSubscription_ReplaceSwapsTags - после replace набор тегов ровно тот, что в запросе
func TestSubscription_ReplaceSwapsTags(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)
	tags := helpers.SeedTags(t, ts.DB, userA, "", "a", "b", "c")
	category := createCategory(t, ts, token, map[string]interface{}{"name": "Streaming"})

	sub := createSubscription(t, ts, token, netflix(map[string]interface{}{
		"categoryId": category.ID,
		"tags":       []string{tags[0], tags[1]},
		"notes":      "old notes",
	}))

	full := netflix(map[string]interface{}{
		"company":    "Netflix Premium",
		"value":      22.99,
		"categoryId": "",
		"tags":       []string{tags[2], tags[0]},
	})
	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/subscription/"+sub.ID, token, full)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	replaced := helpers.Decode[dto.SubscriptionResponse](t, bodyStr)

	assert.Equal(t, []string{tags[2], tags[0]}, replaced.Tags)
	assert.Equal(t, "Netflix Premium", replaced.Company)
	assert.Nil(t, replaced.CategoryID, "пустой categoryId в PUT снимает категорию")
	assert.Nil(t, replaced.Notes, "PUT перезаписывает и необязательные поля")
	assert.Equal(t, userA, replaced.UserID)

	stored := helpers.LoadSubscription(t, ts.DB, sub.ID)
	assert.Equal(t, []string{tags[2], tags[0]}, stored.TagIDs())

	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/subscription/"+sub.ID, token, netflix(nil))
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Empty(t, helpers.Decode[dto.SubscriptionResponse](t, bodyStr).Tags)
	assert.Zero(t, helpers.CountRows(t, ts.DB, &models.SubscriptionTag{}, "subscription_id = ?", sub.ID))
}

func TestSubscription_ReplaceWithUnknownTagKeepsOldTags(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)
	tags := helpers.SeedTags(t, ts.DB, userA, "", "a")
	sub := createSubscription(t, ts, token, netflix(map[string]interface{}{"tags": tags}))

	res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/subscription/"+sub.ID, token, netflix(map[string]interface{}{
		"tags": []string{"missing"},
	}))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	stored := helpers.LoadSubscription(t, ts.DB, sub.ID)
	assert.Equal(t, tags, stored.TagIDs())
}

// TestSubscription_DeleteThenGet - после delete get отвечает 404, строки тегов удалены
func TestSubscription_DeleteThenGet(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)
	tags := helpers.SeedTags(t, ts.DB, userA, "", "a")
	sub := createSubscription(t, ts, token, netflix(map[string]interface{}{"tags": tags}))

	res, bodyStr := ts.SendRequest(t, http.MethodDelete, "/api/v1/subscription/"+sub.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.JSONEq(t, `{"success":true}`, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/subscription/"+sub.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, `"code":"NOT_FOUND"`)
	assert.Zero(t, helpers.CountRows(t, ts.DB, &models.SubscriptionTag{}, "subscription_id = ?", sub.ID))

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/subscription/"+sub.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSubscription_MissingIDs(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPatch, "/api/v1/subscription/nope", token, map[string]interface{}{"company": "X"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/subscription/nope", token, netflix(nil))
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestSubscription_ListScoping - личный список не содержит записей организаций и наоборот
func TestSubscription_ListScoping(t *testing.T) {
	ts := helpers.NewTestServer(t)
	tokenA := ts.Token(t, userA, auth.RoleUser)
	tokenB := ts.Token(t, userB, auth.RoleUser)
	helpers.SeedMember(t, ts.DB, orgX, userA)
	helpers.SeedMember(t, ts.DB, orgY, userA)
	helpers.SeedMember(t, ts.DB, orgX, userB)

	createSubscription(t, ts, tokenA, netflix(map[string]interface{}{"company": "Personal A"}))
	createSubscription(t, ts, tokenB, netflix(map[string]interface{}{"company": "Personal B"}))
	createSubscription(t, ts, tokenA, netflix(map[string]interface{}{"company": "X by A", "organizationId": orgX}))
	createSubscription(t, ts, tokenB, netflix(map[string]interface{}{"company": "X by B", "organizationId": orgX}))
	createSubscription(t, ts, tokenA, netflix(map[string]interface{}{"company": "Y by A", "organizationId": orgY}))

	personal := listSubscriptions(t, ts, tokenA, "")
	require.Len(t, personal, 1)
	for _, s := range personal {
		assert.Nil(t, s.OrganizationID)
		assert.Equal(t, userA, s.UserID)
	}

	inX := listSubscriptions(t, ts, tokenA, "?organizationId="+orgX)
	require.Len(t, inX, 2, "члены организации видят записи друг друга")
	for _, s := range inX {
		require.NotNil(t, s.OrganizationID)
		assert.Equal(t, orgX, *s.OrganizationID)
	}

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription?organizationId="+orgY, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "NOT_A_MEMBER")
}

// TestSubscription_CountMatchesList - count равен длине списка для любого фильтра без пагинации
func TestSubscription_CountMatchesList(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)
	helpers.SeedMember(t, ts.DB, orgX, userA)

	streaming := createCategory(t, ts, token, map[string]interface{}{"name": "Streaming"})
	orgCategory := createCategory(t, ts, token, map[string]interface{}{"name": "Tools", "organizationId": orgX})

	createSubscription(t, ts, token, netflix(map[string]interface{}{"categoryId": streaming.ID}))
	createSubscription(t, ts, token, netflix(map[string]interface{}{"company": "Spotify", "categoryId": streaming.ID}))
	createSubscription(t, ts, token, netflix(map[string]interface{}{"company": "Gym"}))
	createSubscription(t, ts, token, netflix(map[string]interface{}{"company": "GitHub", "organizationId": orgX, "categoryId": orgCategory.ID}))
	createSubscription(t, ts, token, netflix(map[string]interface{}{"company": "Slack", "organizationId": orgX}))

	filters := []string{
		"",
		"?query=net",
		"?query=NET",
		"?categoryId=" + streaming.ID,
		"?categoryId=" + streaming.ID + "&query=spot",
		"?organizationId=" + orgX,
		"?organizationId=" + orgX + "&categoryId=" + orgCategory.ID,
		"?query=nothing-matches",
	}
	for _, f := range filters {
		list := listSubscriptions(t, ts, token, f)
		assert.Equal(t, int64(len(list)), countSubscriptions(t, ts, token, f), "filter %q", f)
	}

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription/count?organizationId="+orgX, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"count":2}`, bodyStr)
}

func TestSubscription_ListPagination(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.Token(t, userA, auth.RoleUser)

	for _, company := range []string{"One", "Two", "Three"} {
		createSubscription(t, ts, token, netflix(map[string]interface{}{"company": company}))
	}

	all := listSubscriptions(t, ts, token, "")
	require.Len(t, all, 3)

	first := listSubscriptions(t, ts, token, "?limit=2")
	second := listSubscriptions(t, ts, token, "?limit=2&offset=2")
	require.Len(t, first, 2)
	require.Len(t, second, 1)

	seen := map[string]bool{}
	for _, s := range append(first, second...) {
		seen[s.ID] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, int64(3), countSubscriptions(t, ts, token, "?limit=1"), "count игнорирует пагинацию")

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription?limit=0&offset=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// TestSubscription_OtherUserCannotRead - запись без организации видна только владельцу
func TestSubscription_OtherUserCannotRead(t *testing.T) {
	ts := helpers.NewTestServer(t)
	tokenA := ts.Token(t, userA, auth.RoleUser)
	tokenB := ts.Token(t, userB, auth.RoleUser)

	sub := createSubscription(t, ts, tokenA, netflix(nil))

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription/"+sub.ID, tokenA, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription/"+sub.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, `"code":"FORBIDDEN"`)

	for _, method := range []string{http.MethodPatch, http.MethodDelete} {
		res, _ = ts.SendRequest(t, method, "/api/v1/subscription/"+sub.ID, tokenB, map[string]interface{}{"company": "Hijacked"})
		assert.Equal(t, http.StatusForbidden, res.StatusCode, method)
	}
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/subscription/"+sub.ID, tokenB, netflix(nil))
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	assert.Equal(t, "Netflix", helpers.LoadSubscription(t, ts.DB, sub.ID).Company)
}

func TestSubscription_OrganizationRecordsNeedMembership(t *testing.T) {
	ts := helpers.NewTestServer(t)
	tokenA := ts.Token(t, userA, auth.RoleUser)
	tokenB := ts.Token(t, userB, auth.RoleUser)
	helpers.SeedMember(t, ts.DB, orgX, userA)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/subscription", tokenB, netflix(map[string]interface{}{"organizationId": orgX}))
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	sub := createSubscription(t, ts, tokenA, netflix(map[string]interface{}{"organizationId": orgX}))
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/subscription/"+sub.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	helpers.SeedMember(t, ts.DB, orgX, userB)
	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/v1/subscription/"+sub.ID, tokenB, map[string]interface{}{"company": "Shared"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Equal(t, "Shared", helpers.Decode[dto.SubscriptionResponse](t, bodyStr).Company)
}

func TestSubscription_RequiresToken(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/subscription", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "UNAUTHORIZED")

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/subscription", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
