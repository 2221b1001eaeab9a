package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"subtrack/internal/dto"
	"subtrack/internal/logger"
	"subtrack/internal/models"
	"subtrack/internal/repositories"
	"subtrack/pkg/apperrors"

	"gorm.io/gorm"
)

type SubscriptionService interface {
	List(db *gorm.DB, actor Actor, query dto.ListSubscriptionsQuery) ([]*dto.SubscriptionResponse, error)
	Count(db *gorm.DB, actor Actor, query dto.ListSubscriptionsQuery) (*dto.CountResponse, error)
	Get(db *gorm.DB, actor Actor, id string) (*dto.SubscriptionResponse, error)
	Create(db *gorm.DB, actor Actor, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Patch(db *gorm.DB, actor Actor, id string, req *dto.PatchSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Replace(db *gorm.DB, actor Actor, id string, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Delete(db *gorm.DB, actor Actor, id string) error

	// Admin operations
	ListAll(db *gorm.DB, query dto.ListSubscriptionsQuery) ([]*dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	categoryRepo     repositories.CategoryRepository
	tagRepo          repositories.TagRepository
	membership       MembershipVerifier
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	categoryRepo repositories.CategoryRepository,
	tagRepo repositories.TagRepository,
	membership MembershipVerifier,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		categoryRepo:     categoryRepo,
		tagRepo:          tagRepo,
		membership:       membership,
	}
}

// ---------------- Read operations ----------------

func (s *subscriptionService) List(db *gorm.DB, actor Actor, query dto.ListSubscriptionsQuery) ([]*dto.SubscriptionResponse, error) {
	if err := checkOrganization(db, s.membership, actor, query.OrganizationID); err != nil {
		return nil, err
	}

	subs, err := s.subscriptionRepo.List(db, filterFor(actor, query))
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewSubscriptionListResponse(subs), nil
}

func (s *subscriptionService) ListAll(db *gorm.DB, query dto.ListSubscriptionsQuery) ([]*dto.SubscriptionResponse, error) {
	filter := filterFor(Actor{}, query)
	filter.AllOwners = true

	subs, err := s.subscriptionRepo.List(db, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewSubscriptionListResponse(subs), nil
}

// Count применяет те же условия, что и List, но без пагинации
func (s *subscriptionService) Count(db *gorm.DB, actor Actor, query dto.ListSubscriptionsQuery) (*dto.CountResponse, error) {
	if err := checkOrganization(db, s.membership, actor, query.OrganizationID); err != nil {
		return nil, err
	}

	count, err := s.subscriptionRepo.Count(db, filterFor(actor, query))
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &dto.CountResponse{Count: count}, nil
}

func (s *subscriptionService) Get(db *gorm.DB, actor Actor, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.load(db, actor, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

// ---------------- Write operations ----------------

func (s *subscriptionService) Create(db *gorm.DB, actor Actor, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	orgID := deref(req.OrganizationID)
	if err := checkOrganization(db, s.membership, actor, orgID); err != nil {
		return nil, err
	}
	if err := s.checkReferences(db, actor.UserID, orgID, deref(req.CategoryID), req.Tags); err != nil {
		return nil, err
	}

	sub := subscriptionFromRequest(req)
	sub.UserID = actor.UserID

	if err := s.subscriptionRepo.Create(db, sub, req.Tags); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "Subscription created",
		"subscription_id", sub.ID,
		"organization_id", orgID,
	)
	return s.reload(db, sub.ID)
}

func (s *subscriptionService) Patch(db *gorm.DB, actor Actor, id string, req *dto.PatchSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := s.load(db, actor, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	orgID := deref(sub.OrganizationID)
	moved := false
	if req.OrganizationID != nil || req.Clears("organizationId") {
		orgID = strings.TrimSpace(deref(req.OrganizationID))
		if err := s.checkMove(db, actor, sub, orgID); err != nil {
			return nil, err
		}
		fields["organization_id"] = nullable(&orgID)
		moved = orgID != deref(sub.OrganizationID)
	}

	var categoryID string
	switch {
	case req.CategoryID != nil:
		categoryID = strings.TrimSpace(*req.CategoryID)
		fields["category_id"] = nullable(&categoryID)
	case req.Clears("categoryId"):
		fields["category_id"] = nil
	case moved:
		// текущая категория должна подходить и новой области
		categoryID = deref(sub.CategoryID)
	}

	var tags []string
	if req.Tags != nil {
		tags = *req.Tags
	}
	if err := s.checkReferences(db, sub.UserID, orgID, categoryID, tags); err != nil {
		return nil, err
	}

	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Description != nil || req.Clears("description") {
		fields["description"] = nullable(req.Description)
	}
	if req.Frequency != nil {
		fields["frequency"] = *req.Frequency
	}
	if req.Value != nil {
		fields["value"] = *req.Value
	} else if req.Clears("value") {
		fields["value"] = nil
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.Cycle != nil {
		fields["cycle"] = *req.Cycle
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Recurring != nil {
		fields["recurring"] = *req.Recurring
	}
	if req.NextPaymentDate != nil {
		fields["next_payment_date"] = req.NextPaymentDate.UTC()
	} else if req.Clears("nextPaymentDate") {
		fields["next_payment_date"] = nil
	}
	if req.ContractExpiry != nil {
		fields["contract_expiry"] = req.ContractExpiry.UTC()
	} else if req.Clears("contractExpiry") {
		fields["contract_expiry"] = nil
	}
	if req.URLLink != nil || req.Clears("urlLink") {
		fields["url_link"] = nullable(req.URLLink)
	}
	if req.PaymentMethod != nil || req.Clears("paymentMethod") {
		fields["payment_method"] = nullable(req.PaymentMethod)
	}
	if req.Notes != nil || req.Clears("notes") {
		fields["notes"] = nullable(req.Notes)
	}
	if req.NotesIncluded != nil {
		fields["notes_included"] = *req.NotesIncluded
	}

	if err := s.subscriptionRepo.Patch(db, id, fields, req.Tags); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "Subscription patched", "subscription_id", id, "fields", len(fields))
	return s.reload(db, id)
}

// Replace перезаписывает запись целиком. Владелец записи не меняется.
func (s *subscriptionService) Replace(db *gorm.DB, actor Actor, id string, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	existing, err := s.load(db, actor, id)
	if err != nil {
		return nil, err
	}

	orgID := deref(req.OrganizationID)
	if orgID != deref(existing.OrganizationID) {
		if err := s.checkMove(db, actor, existing, orgID); err != nil {
			return nil, err
		}
	}
	if err := s.checkReferences(db, existing.UserID, orgID, deref(req.CategoryID), req.Tags); err != nil {
		return nil, err
	}

	sub := subscriptionFromRequest(req)
	sub.ID = existing.ID
	sub.UserID = existing.UserID
	sub.CreatedAt = existing.CreatedAt

	if err := s.subscriptionRepo.Replace(db, sub, req.Tags); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "Subscription replaced", "subscription_id", id, "tags", len(req.Tags))
	return s.reload(db, id)
}

func (s *subscriptionService) Delete(db *gorm.DB, actor Actor, id string) error {
	if _, err := s.load(db, actor, id); err != nil {
		return err
	}
	if err := s.subscriptionRepo.Delete(db, id); err != nil {
		return mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "Subscription deleted", "subscription_id", id, "by_admin", actor.IsAdmin())
	return nil
}

// ---------------- Helpers ----------------

func (s *subscriptionService) load(db *gorm.DB, actor Actor, id string) (*models.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := checkOwnership(db, s.membership, actor, sub.UserID, sub.OrganizationID, apperrors.ErrSubscriptionAccessDenied); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) reload(db *gorm.DB, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewSubscriptionResponse(sub), nil
}

// checkMove - перенос записи в организацию требует членства в ней,
// а вернуть запись в личные может только ее владелец
func (s *subscriptionService) checkMove(db *gorm.DB, actor Actor, sub *models.Subscription, orgID string) error {
	if orgID != "" {
		return checkOrganization(db, s.membership, actor, orgID)
	}
	if !actor.IsAdmin() && sub.UserID != actor.UserID {
		return apperrors.ErrSubscriptionAccessDenied
	}
	return nil
}

// checkReferences проверяет, что категория и теги существуют.
// Категория должна лежать в той же области (организация или личные записи владельца).
func (s *subscriptionService) checkReferences(db *gorm.DB, ownerID, orgID, categoryID string, tagIDs []string) error {
	details := map[string]string{}

	if categoryID != "" {
		category, err := s.categoryRepo.FindByID(db, categoryID)
		switch {
		case errors.Is(err, repositories.ErrCategoryNotFound):
			details["categoryId"] = "Category does not exist"
		case err != nil:
			return mapRepoError(err)
		case !categoryInScope(category, ownerID, orgID):
			details["categoryId"] = "Category belongs to a different owner"
		}
	}

	if len(tagIDs) > 0 {
		found, err := s.tagRepo.FindByIDs(db, tagIDs)
		if err != nil {
			return mapRepoError(err)
		}
		if missing := missingTags(tagIDs, found); len(missing) > 0 {
			details["tags"] = "Unknown tags: " + strings.Join(missing, ", ")
		}
	}

	if len(details) > 0 {
		return apperrors.ValidationError(details)
	}
	return nil
}

func categoryInScope(c *models.Category, ownerID, orgID string) bool {
	if orgID != "" {
		return deref(c.OrganizationID) == orgID
	}
	return c.OrganizationID == nil && c.UserID == ownerID
}

func missingTags(requested []string, found []models.Tag) []string {
	known := make(map[string]struct{}, len(found))
	for _, t := range found {
		known[t.ID] = struct{}{}
	}
	var missing []string
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

func filterFor(actor Actor, query dto.ListSubscriptionsQuery) repositories.SubscriptionFilter {
	return repositories.SubscriptionFilter{
		UserID:         actor.UserID,
		OrganizationID: query.OrganizationID,
		Query:          query.Query,
		CategoryID:     query.CategoryID,
		Limit:          query.Limit,
		Offset:         query.Offset,
	}
}

func subscriptionFromRequest(req *dto.CreateSubscriptionRequest) *models.Subscription {
	sub := &models.Subscription{
		OrganizationID:  req.OrganizationID,
		Company:         req.Company,
		Description:     req.Description,
		Frequency:       req.Frequency,
		Value:           req.Value,
		Currency:        req.Currency,
		Cycle:           req.Cycle,
		Type:            req.Type,
		NextPaymentDate: utcPtr(req.NextPaymentDate),
		ContractExpiry:  utcPtr(req.ContractExpiry),
		URLLink:         req.URLLink,
		PaymentMethod:   req.PaymentMethod,
		CategoryID:      req.CategoryID,
		Notes:           req.Notes,
	}
	if req.Recurring != nil {
		sub.Recurring = *req.Recurring
	}
	if req.NotesIncluded != nil {
		sub.NotesIncluded = *req.NotesIncluded
	}
	return sub
}

// nullable: пустая строка пишется в базу как NULL
func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return trimmed
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
