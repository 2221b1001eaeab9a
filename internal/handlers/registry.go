package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	SubscriptionHandler *SubscriptionHandler
	CategoryHandler     *CategoryHandler
	AdminHandler        *AdminHandler
	HealthHandler       *HealthHandler
}
