package ui

import "sync"

// Тексты уведомлений
const (
	MsgSuccess         = "Success"
	MsgError           = "Something went wrong"
	MsgCategoryEmpty   = "Category name cannot be empty"
	MsgCategoryExists  = "Category already exists"
	MsgCategoryAdded   = "Category added successfully"
	MsgCategoryUpdated = "Category updated successfully"
	MsgCategoryDeleted = "Category deleted successfully"
)

// Notifier - всплывающие уведомления (toast)
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level
	Message string
}

// Recorder копит уведомления. CLI печатает их после действия.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: msg})
}

func (r *Recorder) Items() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last - последнее уведомление; ok=false, если их не было
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Drain возвращает накопленное и очищает список
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out
}
