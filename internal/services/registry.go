package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	SubscriptionService SubscriptionService
	CategoryService     CategoryService
	Membership          MembershipVerifier
}
