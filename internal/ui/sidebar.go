package ui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"subtrack/internal/dto"
	"subtrack/internal/invalidate"
	"subtrack/internal/logger"
	"subtrack/internal/models"
)

var (
	ErrEmptyCategoryName     = errors.New("category name is empty")
	ErrDuplicateCategoryName = errors.New("category already exists")
)

const allCategoriesName = "All"

// SidebarItem - строка сайдбара. Первая строка всегда синтетическая "All".
type SidebarItem struct {
	ID       string
	Name     string
	Count    int64
	Selected bool
}

func (i SidebarItem) IsAll() bool {
	return i.ID == models.AllCategoriesID
}

// Sidebar - список категорий с количеством подписок
type Sidebar struct {
	api            API
	cache          *Cache
	notify         Notifier
	organizationID string
	onSelect       func(categoryID *string)

	mu         sync.RWMutex
	categories []dto.CategoryResponse
	total      int64
	selected   string
	loadErr    error
}

// NewSidebar - onSelect получает id категории или nil для "All"
func NewSidebar(api API, cache *Cache, notify Notifier, organizationID string, onSelect func(categoryID *string)) *Sidebar {
	s := &Sidebar{
		api:            api,
		cache:          cache,
		notify:         notify,
		organizationID: organizationID,
		onSelect:       onSelect,
		selected:       models.AllCategoriesID,
	}
	cache.OnInvalidate(invalidate.Categories, s.reload)
	cache.OnInvalidate(invalidate.Subscriptions, s.reload)
	return s
}

// Load загружает категории и общее количество подписок
func (s *Sidebar) Load(ctx context.Context) error {
	categories, err := Fetch(ctx, s.cache, Key("subscription-categories", s.organizationID),
		[]invalidate.Tag{invalidate.Categories},
		func(ctx context.Context) ([]dto.CategoryResponse, error) {
			return s.api.ListCategories(ctx, s.organizationID)
		})
	if err == nil {
		var total int64
		total, err = Fetch(ctx, s.cache, Key("subscription-count", s.organizationID),
			[]invalidate.Tag{invalidate.Subscriptions},
			func(ctx context.Context) (int64, error) {
				return s.api.CountSubscriptions(ctx, dto.ListSubscriptionsQuery{OrganizationID: s.organizationID})
			})
		if err == nil {
			s.mu.Lock()
			s.categories = categories
			s.total = total
			s.loadErr = nil
			s.mu.Unlock()
			return nil
		}
	}

	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
	return err
}

func (s *Sidebar) reload(ctx context.Context) {
	if err := s.Load(ctx); err != nil {
		logger.CtxWarn(ctx, "sidebar reload failed", "error", err.Error())
	}
}

// Err - ошибка последней загрузки
func (s *Sidebar) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Sidebar) Items() []SidebarItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]SidebarItem, 0, len(s.categories)+1)
	items = append(items, SidebarItem{
		ID:       models.AllCategoriesID,
		Name:     allCategoriesName,
		Count:    s.total,
		Selected: s.selected == models.AllCategoriesID,
	})
	for _, c := range s.categories {
		items = append(items, SidebarItem{
			ID:       c.ID,
			Name:     c.Name,
			Count:    c.SubscriptionCount,
			Selected: s.selected == c.ID,
		})
	}
	return items
}

func (s *Sidebar) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select отмечает категорию и сообщает родителю: nil для "All"
func (s *Sidebar) Select(id string) {
	if id == "" {
		id = models.AllCategoriesID
	}
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()

	if s.onSelect == nil {
		return
	}
	if id == models.AllCategoriesID {
		s.onSelect(nil)
		return
	}
	selected := id
	s.onSelect(&selected)
}

func (s *Sidebar) CreateCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := s.checkName(name, ""); err != nil {
		return err
	}

	req := dto.CreateCategoryRequest{Name: name}
	if s.organizationID != "" {
		orgID := s.organizationID
		req.OrganizationID = &orgID
	}
	if _, err := s.api.CreateCategory(ctx, req); err != nil {
		s.fail(ctx, "create category", err)
		return err
	}

	s.notify.Success(MsgCategoryAdded)
	return nil
}

func (s *Sidebar) RenameCategory(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if err := s.checkName(name, id); err != nil {
		return err
	}

	if _, err := s.api.RenameCategory(ctx, id, name); err != nil {
		s.fail(ctx, "rename category", err)
		return err
	}

	s.notify.Success(MsgCategoryUpdated)
	return nil
}

// DeleteCategory удаляет категорию; если она была выбрана, выбор переходит на "All"
func (s *Sidebar) DeleteCategory(ctx context.Context, id string) error {
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		s.fail(ctx, "delete category", err)
		return err
	}

	s.notify.Success(MsgCategoryDeleted)
	if s.Selected() == id {
		s.Select(models.AllCategoriesID)
	}
	return nil
}

// checkName - пустое имя и дубликаты (без учета регистра, включая "All") отсекаются до запроса
func (s *Sidebar) checkName(name, exceptID string) error {
	if name == "" {
		s.notify.Error(MsgCategoryEmpty)
		return ErrEmptyCategoryName
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	duplicate := strings.EqualFold(name, allCategoriesName)
	for _, c := range s.categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			duplicate = true
			break
		}
	}
	if duplicate {
		s.notify.Error(MsgCategoryExists)
		return ErrDuplicateCategoryName
	}
	return nil
}

func (s *Sidebar) fail(ctx context.Context, action string, err error) {
	logger.CtxWarn(ctx, "sidebar action failed", "action", action, "error", err.Error())
	s.notify.Error(MsgError)
}
