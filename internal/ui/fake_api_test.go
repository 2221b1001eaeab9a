package ui

import (
	"context"
	"errors"
	"sync"

	"subtrack/internal/dto"
)

var errBackend = errors.New("backend down")

// fakeAPI - API в памяти; failing включает ошибку для всех вызовов
type fakeAPI struct {
	mu            sync.Mutex
	subscriptions []dto.SubscriptionResponse
	categories    []dto.CategoryResponse
	failing       bool
	calls         map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) call(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if f.failing {
		return errBackend
	}
	return nil
}

func (f *fakeAPI) setFailing(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = v
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) ListSubscriptions(_ context.Context, q dto.ListSubscriptionsQuery) ([]dto.SubscriptionResponse, error) {
	if err := f.call("ListSubscriptions"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dto.SubscriptionResponse
	for _, s := range f.subscriptions {
		if q.CategoryID == "" || (s.CategoryID != nil && *s.CategoryID == q.CategoryID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAPI) CountSubscriptions(_ context.Context, _ dto.ListSubscriptionsQuery) (int64, error) {
	if err := f.call("CountSubscriptions"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.subscriptions)), nil
}

func (f *fakeAPI) GetSubscription(_ context.Context, id string) (*dto.SubscriptionResponse, error) {
	if err := f.call("GetSubscription"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subscriptions {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAPI) CreateSubscription(_ context.Context, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := f.call("CreateSubscription"); err != nil {
		return nil, err
	}
	return &dto.SubscriptionResponse{ID: "new", Company: req.Company}, nil
}

func (f *fakeAPI) ReplaceSubscription(_ context.Context, id string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := f.call("ReplaceSubscription"); err != nil {
		return nil, err
	}
	return &dto.SubscriptionResponse{ID: id, Company: req.Company}, nil
}

func (f *fakeAPI) DeleteSubscription(_ context.Context, _ string) error {
	return f.call("DeleteSubscription")
}

func (f *fakeAPI) ListCategories(_ context.Context, _ string) ([]dto.CategoryResponse, error) {
	if err := f.call("ListCategories"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.CategoryResponse(nil), f.categories...), nil
}

func (f *fakeAPI) CategoryOptions(_ context.Context, _ string) ([]dto.CategoryOption, error) {
	if err := f.call("CategoryOptions"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeAPI) CreateCategory(_ context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := f.call("CreateCategory"); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: "c-new", Name: req.Name}, nil
}

func (f *fakeAPI) RenameCategory(_ context.Context, id, name string) (*dto.CategoryResponse, error) {
	if err := f.call("RenameCategory"); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: id, Name: name}, nil
}

func (f *fakeAPI) DeleteCategory(_ context.Context, _ string) error {
	return f.call("DeleteCategory")
}
