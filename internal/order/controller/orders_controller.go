package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"coffeeshop/internal/auth"
	"coffeeshop/internal/dto"
	apperrors "coffeeshop/internal/errors"
	"coffeeshop/internal/pagination"
)

type PlaceOrderUseCase interface {
	PlaceOrder(ctx context.Context, userID int64, req dto.PlaceOrderRequest) (*dto.OrderDTO, error)
}

type ManageOrdersUseCase interface {
	ListOrders(ctx context.Context, userID int64, statusFilter, sort string, page int) (*dto.OrderPageResponse, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*dto.OrderDTO, error)
	UpdateOrder(ctx context.Context, userID, orderID int64, req dto.UpdateOrderRequest) (*dto.OrderDTO, error)
}

type OrdersController struct {
	placeOrder PlaceOrderUseCase
	manage     ManageOrdersUseCase
	logger     *zap.Logger
}

func NewOrdersController(placeOrder PlaceOrderUseCase, manage ManageOrdersUseCase, logger *zap.Logger) *OrdersController {
	return &OrdersController{
		placeOrder: placeOrder,
		manage:     manage,
		logger:     logger,
	}
}

func (c *OrdersController) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	userID, ok := auth.UserID(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "authentication required",
		})
		return
	}

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.placeOrder.PlaceOrder(r.Context(), userID, req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, result)
}

func (c *OrdersController) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "authentication required",
		})
		return
	}

	page := pagination.FromRequest(r)
	status := r.URL.Query().Get("status")
	sort := r.URL.Query().Get("sort")

	result, err := c.manage.ListOrders(r.Context(), userID, status, sort, page.Number)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *OrdersController) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	userID, orderID, ok := c.callerAndOrderID(w, r)
	if !ok {
		return
	}

	result, err := c.manage.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *OrdersController) HandleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	userID, orderID, ok := c.callerAndOrderID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.manage.UpdateOrder(r.Context(), userID, orderID, req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *OrdersController) callerAndOrderID(w http.ResponseWriter, r *http.Request) (userID, orderID int64, ok bool) {
	userID, authed := auth.UserID(r.Context())
	if !authed {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "authentication required",
		})
		return 0, 0, false
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.writeValidationError(w, "invalid order id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, 0, false
	}

	return userID, orderID, true
}

func (c *OrdersController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "CONFLICT",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeJSON(w, http.StatusForbidden, map[string]string{
			"error":   "FORBIDDEN",
			"message": err.Error(),
		})
		return
	}

	if ie, ok := apperrors.IsInternalError(err); ok {
		logger.Error("internal error", zap.Error(ie))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrdersController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrdersController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
