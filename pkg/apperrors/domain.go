package apperrors

import "net/http"

// --- Subscriptions ---

var ErrSubscriptionNotFound = New(
	CodeNotFound,
	"subscription",
	"Subscription not found",
	http.StatusNotFound,
)

// ErrSubscriptionAccessDenied - запись личная и принадлежит другому пользователю
var ErrSubscriptionAccessDenied = New(
	CodeForbidden,
	"subscription",
	"You do not have access to this subscription",
	http.StatusForbidden,
)

// --- Categories ---

var ErrCategoryNotFound = New(
	CodeNotFound,
	"category",
	"Category not found",
	http.StatusNotFound,
)

var ErrCategoryAccessDenied = New(
	CodeForbidden,
	"category",
	"You do not have access to this category",
	http.StatusForbidden,
)

// --- Organizations ---

// ErrNotOrganizationMember - пользователь не состоит в организации
var ErrNotOrganizationMember = New(
	CodeNotAMember,
	"organization",
	"You are not a member of this organization",
	http.StatusForbidden,
)

// --- Auth ---

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
