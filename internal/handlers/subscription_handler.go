package handlers

import (
	"net/http"

	"subtrack/internal/dto"
	"subtrack/internal/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

// RegisterRoutes ожидает группу, на которой уже висит AuthMiddleware
func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	subs := r.Group("/subscription")
	{
		subs.GET("", h.ListSubscriptions)
		subs.POST("", h.CreateSubscription)
		subs.GET("/count", h.CountSubscriptions)
		subs.POST("/count", h.CountSubscriptions)
		subs.GET("/:id", h.GetSubscription)
		subs.PATCH("/:id", h.PatchSubscription)
		subs.PUT("/:id", h.ReplaceSubscription)
		subs.DELETE("/:id", h.DeleteSubscription)
	}
}

// ListSubscriptions godoc
// @Summary Список подписок
// @Description Личные подписки пользователя или подписки организации, новые первыми
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param query query string false "Поиск по названию компании"
// @Param categoryId query string false "ID категории"
// @Param organizationId query string false "ID организации"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} dto.SubscriptionResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /subscription [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var query dto.ListSubscriptionsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	subs, err := h.subscriptionService.List(h.GetDB(c), actor, query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

// CountSubscriptions godoc
// @Summary Количество подписок
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param organizationId query string false "ID организации"
// @Success 200 {object} dto.CountResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /subscription/count [post]
func (h *SubscriptionHandler) CountSubscriptions(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var query dto.ListSubscriptionsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	count, err := h.subscriptionService.Count(h.GetDB(c), actor, query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, count)
}

// GetSubscription godoc
// @Summary Подписка по ID
// @Description Возвращает подписку вместе с категорией и тегами
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID подписки"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /subscription/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
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

// CreateSubscription godoc
// @Summary Создать подписку
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subscription body dto.CreateSubscriptionRequest true "Данные подписки"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} apperrors.ErrorResponse "Ошибка валидации"
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /subscription [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.Create(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// PatchSubscription godoc
// @Summary Частично обновить подписку
// @Description Меняет только переданные поля. null очищает необязательное поле, пустой categoryId снимает категорию.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID подписки"
// @Param subscription body dto.PatchSubscriptionRequest true "Изменяемые поля"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /subscription/{id} [patch]
func (h *SubscriptionHandler) PatchSubscription(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.PatchSubscriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.Patch(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ReplaceSubscription godoc
// @Summary Заменить подписку целиком
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID подписки"
// @Param subscription body dto.CreateSubscriptionRequest true "Полные данные подписки"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /subscription/{id} [put]
func (h *SubscriptionHandler) ReplaceSubscription(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.Replace(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// DeleteSubscription godoc
// @Summary Удалить подписку
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID подписки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /subscription/{id} [delete]
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
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
