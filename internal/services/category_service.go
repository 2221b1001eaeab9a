package services

import (
	"subtrack/internal/dto"
	"subtrack/internal/logger"
	"subtrack/internal/models"
	"subtrack/internal/repositories"
	"subtrack/pkg/apperrors"

	"gorm.io/gorm"
)

type CategoryService interface {
	List(db *gorm.DB, actor Actor, organizationID string) ([]*dto.CategoryResponse, error)
	Options(db *gorm.DB, actor Actor, organizationID string) ([]dto.CategoryOption, error)
	Create(db *gorm.DB, actor Actor, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Rename(db *gorm.DB, actor Actor, id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(db *gorm.DB, actor Actor, id string) error

	// Admin operations
	ListAll(db *gorm.DB, organizationID string) ([]*dto.CategoryResponse, error)
}

type categoryService struct {
	categoryRepo     repositories.CategoryRepository
	subscriptionRepo repositories.SubscriptionRepository
	membership       MembershipVerifier
}

func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	membership MembershipVerifier,
) CategoryService {
	return &categoryService{
		categoryRepo:     categoryRepo,
		subscriptionRepo: subscriptionRepo,
		membership:       membership,
	}
}

func (s *categoryService) List(db *gorm.DB, actor Actor, organizationID string) ([]*dto.CategoryResponse, error) {
	if err := checkOrganization(db, s.membership, actor, organizationID); err != nil {
		return nil, err
	}

	items, err := s.categoryRepo.ListWithCounts(db, repositories.CategoryScope{
		UserID:         actor.UserID,
		OrganizationID: organizationID,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewCategoryListResponse(items), nil
}

func (s *categoryService) ListAll(db *gorm.DB, organizationID string) ([]*dto.CategoryResponse, error) {
	items, err := s.categoryRepo.ListWithCounts(db, repositories.CategoryScope{
		OrganizationID: organizationID,
		All:            organizationID == "",
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewCategoryListResponse(items), nil
}

func (s *categoryService) Options(db *gorm.DB, actor Actor, organizationID string) ([]dto.CategoryOption, error) {
	if err := checkOrganization(db, s.membership, actor, organizationID); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.ListOptions(db, repositories.CategoryScope{
		UserID:         actor.UserID,
		OrganizationID: organizationID,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	options := make([]dto.CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, dto.CategoryOption{ID: c.ID, Name: c.Name})
	}
	return options, nil
}

func (s *categoryService) Create(db *gorm.DB, actor Actor, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := checkOrganization(db, s.membership, actor, deref(req.OrganizationID)); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:           req.Name,
		UserID:         actor.UserID,
		OrganizationID: req.OrganizationID,
	}
	if err := s.categoryRepo.Create(db, category); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "Category created", "category_id", category.ID, "organization_id", deref(req.OrganizationID))
	return dto.NewCategoryResponse(category, 0), nil
}

func (s *categoryService) Rename(db *gorm.DB, actor Actor, id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.load(db, actor, id); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Rename(db, id, req.Name); err != nil {
		return nil, mapRepoError(err)
	}

	category, err := s.categoryRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	count, err := s.subscriptionRepo.Count(db, repositories.SubscriptionFilter{CategoryID: id, AllOwners: true})
	if err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "Category renamed", "category_id", id)
	return dto.NewCategoryResponse(category, count), nil
}

// Delete снимает категорию со всех подписок, сами подписки остаются
func (s *categoryService) Delete(db *gorm.DB, actor Actor, id string) error {
	if _, err := s.load(db, actor, id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(db, id); err != nil {
		return mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "Category deleted", "category_id", id, "by_admin", actor.IsAdmin())
	return nil
}

func (s *categoryService) load(db *gorm.DB, actor Actor, id string) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := checkOwnership(db, s.membership, actor, category.UserID, category.OrganizationID, apperrors.ErrCategoryAccessDenied); err != nil {
		return nil, err
	}
	return category, nil
}
