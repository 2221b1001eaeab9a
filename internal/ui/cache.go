package ui

import (
	"context"
	"strings"
	"sync"

	"subtrack/internal/invalidate"
)

type cacheEntry struct {
	value any
	tags  []invalidate.Tag
}

func (e cacheEntry) has(tag invalidate.Tag) bool {
	for _, t := range e.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Cache - кэш ответов API по ключу запроса. Данные не патчатся:
// тег из шины удаляет записи, после чего подписанные view-модели перечитывают их.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	generation uint64
	watchers   map[invalidate.Tag][]func(context.Context)
	unsubs     []func()
}

func NewCache(bus *invalidate.Bus) *Cache {
	c := &Cache{
		entries:  make(map[string]cacheEntry),
		watchers: make(map[invalidate.Tag][]func(context.Context)),
	}
	for _, tag := range []invalidate.Tag{invalidate.Subscriptions, invalidate.Categories} {
		c.unsubs = append(c.unsubs, bus.Subscribe(tag, c.onInvalidate))
	}
	return c
}

// Key собирает ключ запроса из его параметров
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// OnInvalidate - fn вызывается после того, как записи с тегом удалены
func (c *Cache) OnInvalidate(tag invalidate.Tag, fn func(context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchers[tag] = append(c.watchers[tag], fn)
}

func (c *Cache) onInvalidate(ctx context.Context, tag invalidate.Tag) {
	c.mu.Lock()
	c.generation++
	for key, e := range c.entries {
		if e.has(tag) {
			delete(c.entries, key)
		}
	}
	watchers := append([]func(context.Context){}, c.watchers[tag]...)
	c.mu.Unlock()

	for _, w := range watchers {
		w(ctx)
	}
}

// Close отписывает кэш от шины
func (c *Cache) Close() {
	for _, unsub := range c.unsubs {
		unsub()
	}
}

// Fetch отдает значение из кэша или загружает его. Результат, загруженный во время
// инвалидации, не сохраняется: он мог устареть еще до записи.
func Fetch[T any](ctx context.Context, c *Cache, key string, tags []invalidate.Tag, load func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if v, ok := e.value.(T); ok {
			c.mu.Unlock()
			return v, nil
		}
	}
	generation := c.generation
	c.mu.Unlock()

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	c.mu.Lock()
	if c.generation == generation {
		c.entries[key] = cacheEntry{value: v, tags: tags}
	}
	c.mu.Unlock()
	return v, nil
}
