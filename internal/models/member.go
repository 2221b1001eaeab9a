package models

import "time"

// Member - членство пользователя в организации.
// Таблицей владеет модуль организаций, здесь она только читается.
type Member struct {
	OrganizationID string    `gorm:"type:varchar(36);primaryKey"`
	UserID         string    `gorm:"type:varchar(36);primaryKey"`
	Role           string    `gorm:"size:32;not null;default:'member'"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// UserRole - роль из JWT
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)
