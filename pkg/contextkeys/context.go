package contextkeys

import "context"

type contextKey string

// DBContextKey - ключ, по которому в context лежит *gorm.DB (пул или транзакция)
const DBContextKey = contextKey("db")

// WithDB кладет соединение или транзакцию в context.
// Тип значения не фиксирован, чтобы пакет не зависел от gorm; DBMiddleware ожидает *gorm.DB.
func WithDB(ctx context.Context, db any) context.Context {
	return context.WithValue(ctx, DBContextKey, db)
}
