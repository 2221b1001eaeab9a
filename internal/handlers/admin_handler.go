package handlers

import (
	"net/http"

	"subtrack/internal/dto"
	"subtrack/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler - админский набор маршрутов. Ошибки здесь отдаются в виде {success:false, error, details}.
type AdminHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
	categoryService     services.CategoryService
}

func NewAdminHandler(
	base *BaseHandler,
	subscriptionService services.SubscriptionService,
	categoryService services.CategoryService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
		categoryService:     categoryService,
	}
}

// RegisterRoutes ожидает группу /admin с AdminSurface, AuthMiddleware и RequireRoles(admin)
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	subs := r.Group("/subscriptions")
	{
		subs.GET("", h.ListSubscriptions)
		subs.GET("/:id", h.GetSubscription)
		subs.DELETE("/:id", h.DeleteSubscription)
	}

	categories := r.Group("/subscription-categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.PATCH("/:id", h.RenameCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// --- Subscriptions ---

func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	var query dto.ListSubscriptionsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	subs, err := h.subscriptionService.ListAll(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *AdminHandler) GetSubscription(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Get(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *AdminHandler) DeleteSubscription(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	if err := h.subscriptionService.Delete(h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// --- Categories ---

func (h *AdminHandler) ListCategories(c *gin.Context) {
	var query dto.ListCategoriesQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	categories, err := h.categoryService.ListAll(h.GetDB(c), query.OrganizationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *AdminHandler) RenameCategory(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.Rename(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
