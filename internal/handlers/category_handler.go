package handlers

import (
	"net/http"

	"subtrack/internal/dto"
	"subtrack/internal/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	*BaseHandler
	categoryService services.CategoryService
}

func NewCategoryHandler(base *BaseHandler, categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     base,
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	categories := r.Group("/subscription-categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/select", h.ListCategoryOptions)
		categories.POST("", h.CreateCategory)
		categories.PATCH("/:id", h.RenameCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// ListCategories godoc
// @Summary Категории с количеством подписок
// @Tags subscription-categories
// @Produce json
// @Security BearerAuth
// @Param organizationId query string false "ID организации"
// @Success 200 {array} dto.CategoryResponse
// @Router /subscription-categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var query dto.ListCategoriesQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	categories, err := h.categoryService.List(h.GetDB(c), actor, query.OrganizationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// ListCategoryOptions - короткий список для выпадающего меню формы
func (h *CategoryHandler) ListCategoryOptions(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var query dto.ListCategoriesQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	options, err := h.categoryService.Options(h.GetDB(c), actor, query.OrganizationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, options)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
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

func (h *CategoryHandler) RenameCategory(c *gin.Context) {
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

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
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
