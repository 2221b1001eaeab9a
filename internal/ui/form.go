package ui

import (
	"context"
	"errors"
	"sync"

	"subtrack/internal/client"
	"subtrack/internal/dto"
	"subtrack/internal/invalidate"
	"subtrack/internal/logger"
	"subtrack/internal/models"
	"subtrack/internal/validator"
)

// ErrInvalidForm - форма не прошла локальную валидацию, запрос не отправлялся
var ErrInvalidForm = errors.New("form has invalid fields")

const defaultCurrency = "USD"

// Form - диалог создания/редактирования подписки.
// Правила валидации те же, что на сервере: dto.CreateSubscriptionRequest + internal/validator.
type Form struct {
	api            API
	cache          *Cache
	validator      *validator.Validator
	notify         Notifier
	organizationID string
	onSuccess      func(*dto.SubscriptionResponse)

	mu         sync.Mutex
	id         string
	values     dto.CreateSubscriptionRequest
	errors     map[string]string
	submitting bool
}

// NewForm - existing == nil открывает пустую форму (POST), иначе форма привязана к записи (PUT).
// categoryID - выбранная в сайдбаре категория, подставляется в новую запись.
func NewForm(
	api API,
	cache *Cache,
	v *validator.Validator,
	notify Notifier,
	organizationID string,
	categoryID *string,
	existing *dto.SubscriptionResponse,
	onSuccess func(*dto.SubscriptionResponse),
) *Form {
	f := &Form{
		api:            api,
		cache:          cache,
		validator:      v,
		notify:         notify,
		organizationID: organizationID,
		onSuccess:      onSuccess,
	}
	if existing != nil {
		f.id = existing.ID
		f.values = existing.ToCreateRequest()
	} else {
		f.values = defaultValues(categoryID)
	}
	return f
}

func defaultValues(categoryID *string) dto.CreateSubscriptionRequest {
	recurring := true
	notesIncluded := false
	value := 0.0
	req := dto.CreateSubscriptionRequest{
		Frequency:     1,
		Value:         &value,
		Currency:      defaultCurrency,
		Cycle:         models.CycleMonthly,
		Type:          models.TypeSubscription,
		Recurring:     &recurring,
		NotesIncluded: &notesIncluded,
		Tags:          []string{},
	}
	if categoryID != nil && *categoryID != "" && *categoryID != models.AllCategoriesID {
		id := *categoryID
		req.CategoryID = &id
	}
	return req
}

// Bound - форма редактирует существующую запись
func (f *Form) Bound() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id != ""
}

func (f *Form) ID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id
}

// Values - копия текущих значений полей
func (f *Form) Values() dto.CreateSubscriptionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Update меняет поля формы; ошибки валидации сбрасываются до следующей проверки
func (f *Form) Update(fn func(v *dto.CreateSubscriptionRequest)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.values)
	f.errors = nil
}

func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Validate проверяет поля и возвращает ошибки по полям (пусто, если все верно)
func (f *Form) Validate() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, errs := f.prepare()
	f.errors = errs
	return errs
}

func (f *Form) prepare() (dto.CreateSubscriptionRequest, map[string]string) {
	req := f.values
	req.Tags = append([]string(nil), f.values.Tags...)
	if f.organizationID != "" {
		orgID := f.organizationID
		req.OrganizationID = &orgID
	}
	req.Normalize()

	err := f.validator.Validate(&req)
	if err == nil {
		return req, nil
	}
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		return req, vErr.Errors
	}
	return req, map[string]string{"": err.Error()}
}

// Submit отправляет POST или PUT. После успеха клиент публикует теги подписок и категорий,
// форма показывает уведомление и вызывает onSuccess (родитель закрывает диалог).
func (f *Form) Submit(ctx context.Context) (*dto.SubscriptionResponse, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, errors.New("form is already submitting")
	}
	req, errs := f.prepare()
	f.errors = errs
	if len(errs) > 0 {
		f.mu.Unlock()
		return nil, ErrInvalidForm
	}
	f.submitting = true
	id := f.id
	f.mu.Unlock()

	var (
		saved *dto.SubscriptionResponse
		err   error
	)
	if id == "" {
		saved, err = f.api.CreateSubscription(ctx, req)
	} else {
		saved, err = f.api.ReplaceSubscription(ctx, id, req)
	}

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		if fields := client.FieldErrors(err); len(fields) > 0 {
			f.errors = fields
		}
		f.mu.Unlock()

		logger.CtxWarn(ctx, "subscription form submit failed", "bound", id != "", "error", err.Error())
		f.notify.Error(MsgError)
		return nil, err
	}
	f.mu.Unlock()

	f.notify.Success(MsgSuccess)
	if f.onSuccess != nil {
		f.onSuccess(saved)
	}
	return saved, nil
}

// CategoryOptions - варианты выпадающего списка категорий
func (f *Form) CategoryOptions(ctx context.Context) ([]dto.CategoryOption, error) {
	return Fetch(ctx, f.cache, Key("subscription-categories-select", f.organizationID),
		[]invalidate.Tag{invalidate.Categories},
		func(ctx context.Context) ([]dto.CategoryOption, error) {
			return f.api.CategoryOptions(ctx, f.organizationID)
		})
}
