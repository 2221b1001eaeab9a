// Package invalidate - шина инвалидации кэша по тегам.
// Мутация публикует тег, подписчики (кэш запросов, view-модели) перечитывают данные.
package invalidate

import (
	"context"
	"sync"

	"subtrack/internal/logger"
)

// Tag - имя группы закэшированных запросов
type Tag string

const (
	Subscriptions Tag = "subscriptions"
	Categories    Tag = "categories"
)

// Handler вызывается синхронно в горутине, опубликовавшей тег
type Handler func(ctx context.Context, tag Tag)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus - in-process шина. Безопасна для конкурентных Subscribe/Invalidate.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Tag][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Tag][]subscription)}
}

// Subscribe регистрирует обработчик и возвращает функцию отписки
func (b *Bus) Subscribe(tag Tag, h Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[tag] = append(b.subs[tag], subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(tag, id) })
	}
}

func (b *Bus) unsubscribe(tag Tag, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.subs[tag]
	for i, s := range current {
		if s.id == id {
			b.subs[tag] = append(current[:i:i], current[i+1:]...)
			break
		}
	}
	if len(b.subs[tag]) == 0 {
		delete(b.subs, tag)
	}
}

// Invalidate рассылает теги подписчикам. Повторы тегов схлопываются.
// Обработчики вызываются вне блокировки, поэтому могут сами подписываться и публиковать.
func (b *Bus) Invalidate(ctx context.Context, tags ...Tag) {
	for _, tag := range dedupe(tags) {
		b.mu.RLock()
		handlers := make([]Handler, 0, len(b.subs[tag]))
		for _, s := range b.subs[tag] {
			handlers = append(handlers, s.handler)
		}
		b.mu.RUnlock()

		logger.CtxDebug(ctx, "cache tag invalidated", "tag", string(tag), "subscribers", len(handlers))
		for _, h := range handlers {
			h(ctx, tag)
		}
	}
}

// Subscribers - количество подписчиков тега
func (b *Bus) Subscribers(tag Tag) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[tag])
}

func dedupe(tags []Tag) []Tag {
	seen := make(map[Tag]struct{}, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
