package ui_test

import (
	"context"
	"testing"

	"subtrack/internal/auth"
	"subtrack/internal/client"
	"subtrack/internal/dto"
	"subtrack/internal/invalidate"
	"subtrack/internal/models"
	"subtrack/internal/ui"
	"subtrack/internal/validator"
	"subtrack/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const owner = "33333333-3333-3333-3333-333333333333"

type page struct {
	api     *client.Client
	cache   *ui.Cache
	notify  *ui.Recorder
	sidebar *ui.Sidebar
	table   *ui.Table
}

// newPage собирает страницу так же, как CLI: клиент публикует теги в шину, кэш и модели на нее подписаны
func newPage(t *testing.T, ts *helpers.TestServer, userID string) *page {
	t.Helper()
	ctx := context.Background()

	bus := invalidate.NewBus()
	api := client.New(ts.URL(), ts.Token(t, userID, auth.RoleUser), client.WithBus(bus))
	cache := ui.NewCache(bus)
	t.Cleanup(cache.Close)

	p := &page{api: api, cache: cache, notify: &ui.Recorder{}}
	p.table = ui.NewTable(api, cache, validator.New(), p.notify, "", language.English)
	p.sidebar = ui.NewSidebar(api, cache, p.notify, "", func(categoryID *string) {
		require.NoError(t, p.table.SetCategory(ctx, categoryID))
	})

	require.NoError(t, p.sidebar.Load(ctx))
	p.sidebar.Select(models.AllCategoriesID)
	return p
}

func (p *page) item(t *testing.T, name string) ui.SidebarItem {
	t.Helper()
	for _, item := range p.sidebar.Items() {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("sidebar has no item %q: %+v", name, p.sidebar.Items())
	return ui.SidebarItem{}
}

func lastMessage(t *testing.T, rec *ui.Recorder) ui.Notification {
	t.Helper()
	n, ok := rec.Last()
	require.True(t, ok, "ожидалось уведомление")
	return n
}

func TestPage_EmptySidebarHasAllFirst(t *testing.T) {
	ts := helpers.NewTestServer(t)
	p := newPage(t, ts, owner)

	items := p.sidebar.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].IsAll())
	assert.Equal(t, "All", items[0].Name)
	assert.Equal(t, int64(0), items[0].Count)
	assert.True(t, items[0].Selected)
	assert.Empty(t, p.table.Rows())
}

// TestPage_StreamingScenario - категория, подписка в ней, правка, удаление; счетчики следуют за данными
func TestPage_StreamingScenario(t *testing.T) {
	ctx := context.Background()
	ts := helpers.NewTestServer(t)
	p := newPage(t, ts, owner)

	require.NoError(t, p.sidebar.CreateCategory(ctx, "Streaming"))
	assert.Equal(t, ui.MsgCategoryAdded, lastMessage(t, p.notify).Message)
	streaming := p.item(t, "Streaming")
	assert.Equal(t, int64(0), streaming.Count)

	p.sidebar.Select(streaming.ID)
	assert.Equal(t, streaming.ID, p.sidebar.Selected())

	form := p.table.New()
	assert.False(t, form.Bound())
	require.NotNil(t, form.Values().CategoryID)
	assert.Equal(t, streaming.ID, *form.Values().CategoryID, "новая запись попадает в выбранную категорию")

	form.Update(func(v *dto.CreateSubscriptionRequest) {
		v.Company = "Netflix"
		value := 15.49
		v.Value = &value
	})
	saved, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, ui.MsgSuccess, lastMessage(t, p.notify).Message)
	assert.Nil(t, p.table.Form(), "после успеха форма закрывается")

	rows := p.table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, saved.ID, rows[0].ID)
	assert.Equal(t, "Netflix", rows[0].Company)
	assert.Equal(t, "Streaming", rows[0].Category)
	assert.Equal(t, "1 Monthly", rows[0].Cycle)
	assert.Equal(t, "N/A", rows[0].NextPayment)
	assert.Contains(t, rows[0].Amount, "15.49")
	assert.Equal(t, int64(1), p.item(t, "Streaming").Count)
	assert.Equal(t, int64(1), p.item(t, "All").Count)

	edit, err := p.table.Edit(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, edit.Bound())
	assert.Equal(t, "Netflix", edit.Values().Company)
	edit.Update(func(v *dto.CreateSubscriptionRequest) {
		value := 17.99
		v.Value = &value
	})
	_, err = edit.Submit(ctx)
	require.NoError(t, err)

	rows = p.table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, saved.ID, rows[0].ID, "PUT не создает новую запись")
	assert.Contains(t, rows[0].Amount, "17.99")

	p.table.ConfirmDelete(saved.ID)
	assert.Equal(t, saved.ID, p.table.PendingDelete())
	require.NoError(t, p.table.Delete(ctx))
	assert.Empty(t, p.table.PendingDelete())
	assert.Empty(t, p.table.Rows())
	assert.Equal(t, int64(0), p.item(t, "Streaming").Count)
	assert.Equal(t, int64(0), p.item(t, "All").Count)
}

func TestPage_CategoryNameChecks(t *testing.T) {
	ctx := context.Background()
	ts := helpers.NewTestServer(t)
	p := newPage(t, ts, owner)

	require.NoError(t, p.sidebar.CreateCategory(ctx, "Streaming"))

	err := p.sidebar.CreateCategory(ctx, "  streaming ")
	assert.ErrorIs(t, err, ui.ErrDuplicateCategoryName)
	assert.Equal(t, ui.MsgCategoryExists, lastMessage(t, p.notify).Message)

	err = p.sidebar.CreateCategory(ctx, "ALL")
	assert.ErrorIs(t, err, ui.ErrDuplicateCategoryName)

	err = p.sidebar.CreateCategory(ctx, "   ")
	assert.ErrorIs(t, err, ui.ErrEmptyCategoryName)
	assert.Equal(t, ui.MsgCategoryEmpty, lastMessage(t, p.notify).Message)

	categories, err := p.api.ListCategories(ctx, "")
	require.NoError(t, err)
	assert.Len(t, categories, 1, "отклоненные имена до сервера не доходят")

	streaming := p.item(t, "Streaming")
	require.NoError(t, p.sidebar.RenameCategory(ctx, streaming.ID, "streaming"), "своё имя в другом регистре - не дубликат")
	assert.Equal(t, ui.MsgCategoryUpdated, lastMessage(t, p.notify).Message)
	assert.Equal(t, "streaming", p.item(t, "streaming").Name)
}

func TestPage_DeleteSelectedCategory(t *testing.T) {
	ctx := context.Background()
	ts := helpers.NewTestServer(t)
	p := newPage(t, ts, owner)

	require.NoError(t, p.sidebar.CreateCategory(ctx, "Streaming"))
	streaming := p.item(t, "Streaming")
	p.sidebar.Select(streaming.ID)

	form := p.table.New()
	form.Update(func(v *dto.CreateSubscriptionRequest) { v.Company = "Netflix" })
	_, err := form.Submit(ctx)
	require.NoError(t, err)

	require.NoError(t, p.sidebar.DeleteCategory(ctx, streaming.ID))
	assert.Equal(t, ui.MsgCategoryDeleted, lastMessage(t, p.notify).Message)
	assert.Equal(t, models.AllCategoriesID, p.sidebar.Selected())
	require.Len(t, p.sidebar.Items(), 1)
	assert.Equal(t, int64(1), p.item(t, "All").Count, "подписка остается без категории")

	rows := p.table.Rows()
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Category)
}

func TestForm_LocalValidationBlocksSubmit(t *testing.T) {
	ctx := context.Background()
	ts := helpers.NewTestServer(t)
	p := newPage(t, ts, owner)

	form := p.table.New()
	form.Update(func(v *dto.CreateSubscriptionRequest) {
		v.Company = ""
		v.Frequency = 0
		v.Currency = "dollars"
	})

	_, err := form.Submit(ctx)
	assert.ErrorIs(t, err, ui.ErrInvalidForm)
	errs := form.Errors()
	assert.Contains(t, errs, "company")
	assert.Contains(t, errs, "frequency")
	assert.Contains(t, errs, "currency")

	count, err := p.api.CountSubscriptions(ctx, dto.ListSubscriptionsQuery{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestForm_ServerFieldErrors(t *testing.T) {
	ctx := context.Background()
	ts := helpers.NewTestServer(t)
	p := newPage(t, ts, owner)

	form := p.table.New()
	form.Update(func(v *dto.CreateSubscriptionRequest) {
		v.Company = "Netflix"
		missing := "no-such-category"
		v.CategoryID = &missing
	})

	_, err := form.Submit(ctx)
	require.Error(t, err)
	assert.Contains(t, form.Errors(), "categoryId")
	assert.Equal(t, ui.MsgError, lastMessage(t, p.notify).Message)
	assert.Same(t, form, p.table.Form(), "при ошибке форма остается открытой")
	assert.False(t, form.Submitting())
}

func TestForm_CategoryOptions(t *testing.T) {
	ctx := context.Background()
	ts := helpers.NewTestServer(t)
	p := newPage(t, ts, owner)

	form := p.table.New()
	options, err := form.CategoryOptions(ctx)
	require.NoError(t, err)
	assert.Empty(t, options)

	require.NoError(t, p.sidebar.CreateCategory(ctx, "Streaming"))
	options, err = form.CategoryOptions(ctx)
	require.NoError(t, err)
	require.Len(t, options, 1, "после инвалидации категорий список перечитывается")
	assert.Equal(t, "Streaming", options[0].Name)
}

func TestTable_EditForeignRecordFails(t *testing.T) {
	ctx := context.Background()
	ts := helpers.NewTestServer(t)
	other := newPage(t, ts, "44444444-4444-4444-4444-444444444444")
	form := other.table.New()
	form.Update(func(v *dto.CreateSubscriptionRequest) { v.Company = "Private" })
	saved, err := form.Submit(ctx)
	require.NoError(t, err)

	p := newPage(t, ts, owner)
	_, err = p.table.Edit(ctx, saved.ID)
	require.Error(t, err)
	assert.True(t, client.IsForbidden(err))
	assert.Equal(t, ui.MsgError, lastMessage(t, p.notify).Message)
	assert.Nil(t, p.table.Form())
}
