package services

import (
	"context"
	"errors"

	"subtrack/internal/models"
	"subtrack/internal/repositories"
	"subtrack/pkg/apperrors"

	"gorm.io/gorm"
)

// Actor - кто выполняет операцию. Заполняется хэндлером из JWT.
type Actor struct {
	UserID string
	Role   models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

// MembershipVerifier проверяет членство в организации
type MembershipVerifier interface {
	Verify(db *gorm.DB, organizationID, userID string) error
}

type membershipVerifier struct {
	membershipRepo repositories.MembershipRepository
}

func NewMembershipVerifier(membershipRepo repositories.MembershipRepository) MembershipVerifier {
	return &membershipVerifier{membershipRepo: membershipRepo}
}

func (v *membershipVerifier) Verify(db *gorm.DB, organizationID, userID string) error {
	ok, err := v.membershipRepo.IsMember(db, organizationID, userID)
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if !ok {
		return apperrors.ErrNotOrganizationMember
	}
	return nil
}

// checkOrganization пропускает админа и членов организации. Пустой organizationID - личная область.
func checkOrganization(db *gorm.DB, verifier MembershipVerifier, actor Actor, organizationID string) error {
	if organizationID == "" || actor.IsAdmin() {
		return nil
	}
	return verifier.Verify(db, organizationID, actor.UserID)
}

// checkOwnership: личная запись видна только владельцу, запись организации - ее членам
func checkOwnership(db *gorm.DB, verifier MembershipVerifier, actor Actor, ownerID string, organizationID *string, denied error) error {
	if actor.IsAdmin() {
		return nil
	}
	if organizationID != nil && *organizationID != "" {
		return verifier.Verify(db, *organizationID, actor.UserID)
	}
	if ownerID != actor.UserID {
		return denied
	}
	return nil
}

func ctxOf(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// mapRepoError переводит sentinel-ошибки репозиториев в AppError
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrSubscriptionNotFound):
		return apperrors.ErrSubscriptionNotFound
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return apperrors.ErrCategoryNotFound
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.DatabaseError(err)
}
