package ui

import (
	"context"
	"sync"

	"subtrack/internal/dto"
	"subtrack/internal/invalidate"
	"subtrack/internal/logger"
	"subtrack/internal/validator"

	"golang.org/x/text/language"
)

// Row - подписка в виде, готовом для вывода
type Row struct {
	ID            string
	Company       string
	Amount        string
	Cycle         string
	NextPayment   string
	PaymentMethod string
	Category      string
	Type          string
	Recurring     bool
}

// Table - список подписок выбранной категории с диалогами формы и удаления
type Table struct {
	api            API
	cache          *Cache
	validator      *validator.Validator
	notify         Notifier
	organizationID string
	lang           language.Tag

	mu            sync.RWMutex
	categoryID    *string
	items         []dto.SubscriptionResponse
	form          *Form
	pendingDelete string
	loadErr       error
}

func NewTable(api API, cache *Cache, v *validator.Validator, notify Notifier, organizationID string, lang language.Tag) *Table {
	t := &Table{
		api:            api,
		cache:          cache,
		validator:      v,
		notify:         notify,
		organizationID: organizationID,
		lang:           lang,
	}
	cache.OnInvalidate(invalidate.Subscriptions, t.reload)
	return t
}

// SetCategory - обработчик выбора в сайдбаре; nil снимает фильтр
func (t *Table) SetCategory(ctx context.Context, categoryID *string) error {
	t.mu.Lock()
	if categoryID != nil {
		id := *categoryID
		categoryID = &id
	}
	t.categoryID = categoryID
	t.mu.Unlock()
	return t.Load(ctx)
}

func (t *Table) query() dto.ListSubscriptionsQuery {
	t.mu.RLock()
	defer t.mu.RUnlock()
	q := dto.ListSubscriptionsQuery{OrganizationID: t.organizationID}
	if t.categoryID != nil {
		q.CategoryID = *t.categoryID
	}
	return q
}

func (t *Table) Load(ctx context.Context) error {
	q := t.query()
	items, err := Fetch(ctx, t.cache, Key("subscription", q.OrganizationID, q.CategoryID),
		[]invalidate.Tag{invalidate.Subscriptions},
		func(ctx context.Context) ([]dto.SubscriptionResponse, error) {
			return t.api.ListSubscriptions(ctx, q)
		})

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loadErr = err
	if err == nil {
		t.items = items
	}
	return err
}

func (t *Table) reload(ctx context.Context) {
	if err := t.Load(ctx); err != nil {
		logger.CtxWarn(ctx, "table reload failed", "error", err.Error())
	}
}

func (t *Table) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loadErr
}

func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]Row, 0, len(t.items))
	for _, s := range t.items {
		row := Row{
			ID:            s.ID,
			Company:       s.Company,
			Amount:        FormatAmount(t.lang, s.Value, s.Currency),
			Cycle:         FormatCycle(s.Frequency, s.Cycle),
			NextPayment:   FormatDate(s.NextPaymentDate),
			PaymentMethod: valueOr(s.PaymentMethod, notAvailable),
			Type:          string(s.Type),
			Recurring:     s.Recurring,
		}
		if s.Category != nil {
			row.Category = s.Category.Name
		}
		rows = append(rows, row)
	}
	return rows
}

// New открывает пустую форму с выбранной категорией
func (t *Table) New() *Form {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.form = NewForm(t.api, t.cache, t.validator, t.notify, t.organizationID, t.categoryID, nil, t.closeForm)
	return t.form
}

// Edit открывает форму, заполненную данными записи
func (t *Table) Edit(ctx context.Context, id string) (*Form, error) {
	existing := t.find(id)
	if existing == nil {
		fetched, err := t.api.GetSubscription(ctx, id)
		if err != nil {
			logger.CtxWarn(ctx, "failed to open subscription for edit", "id", id, "error", err.Error())
			t.notify.Error(MsgError)
			return nil, err
		}
		existing = fetched
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.form = NewForm(t.api, t.cache, t.validator, t.notify, t.organizationID, t.categoryID, existing, t.closeForm)
	return t.form, nil
}

func (t *Table) find(id string) *dto.SubscriptionResponse {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := range t.items {
		if t.items[i].ID == id {
			item := t.items[i]
			return &item
		}
	}
	return nil
}

// Form - открытый диалог формы или nil
func (t *Table) Form() *Form {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.form
}

func (t *Table) CloseForm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.form = nil
}

func (t *Table) closeForm(*dto.SubscriptionResponse) {
	t.CloseForm()
}

// ConfirmDelete открывает диалог подтверждения удаления
func (t *Table) ConfirmDelete(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingDelete = id
}

func (t *Table) PendingDelete() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pendingDelete
}

func (t *Table) CancelDelete() {
	t.ConfirmDelete("")
}

// Delete удаляет запись из диалога подтверждения. При ошибке диалог остается открытым.
func (t *Table) Delete(ctx context.Context) error {
	id := t.PendingDelete()
	if id == "" {
		return nil
	}

	if err := t.api.DeleteSubscription(ctx, id); err != nil {
		logger.CtxWarn(ctx, "failed to delete subscription", "id", id, "error", err.Error())
		t.notify.Error(MsgError)
		return err
	}

	t.CancelDelete()
	t.notify.Success(MsgSuccess)
	return nil
}
