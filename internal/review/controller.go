package review

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"coffeeshop/internal/auth"
	apperrors "coffeeshop/internal/errors"
	"coffeeshop/internal/pagination"
)

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.useCase.CreateReview(r.Context(), userID, req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, result)
}

func (c *Controller) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	req := ListReviewsRequest{
		Page: pagination.FromRequest(r).Number,
		Sort: r.URL.Query().Get("sort"),
	}

	if raw := r.URL.Query().Get("product"); raw != "" {
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.writeValidationError(w, "invalid product filter", apperrors.ValidationDetail{
				Field:   "product",
				Message: "product must be an integer id",
			})
			return
		}
		req.ProductID = &productID
	}

	if raw := r.URL.Query().Get("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			c.writeValidationError(w, "invalid rating filter", apperrors.ValidationDetail{
				Field:   "rating",
				Message: "rating must be an integer",
			})
			return
		}
		req.Rating = &rating
	}

	result, err := c.useCase.ListReviews(r.Context(), req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

// HandleListProductReviews serves /products/{id}/reviews.
func (c *Controller) HandleListProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.writeValidationError(w, "invalid product id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	page := pagination.FromRequest(r)

	result, err := c.useCase.ListProductReviews(r.Context(), productID, page.Number)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *Controller) HandleUpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, reviewID, ok := c.callerAndReviewID(w, r)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.useCase.UpdateReview(r.Context(), userID, reviewID, req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *Controller) HandleDeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, reviewID, ok := c.callerAndReviewID(w, r)
	if !ok {
		return
	}

	if err := c.useCase.DeleteReview(r.Context(), userID, reviewID); err != nil {
		c.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "authentication required",
		})
		return 0, false
	}
	return userID, true
}

func (c *Controller) callerAndReviewID(w http.ResponseWriter, r *http.Request) (userID, reviewID int64, ok bool) {
	userID, ok = c.caller(w, r)
	if !ok {
		return 0, 0, false
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.writeValidationError(w, "invalid review id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, 0, false
	}

	return userID, reviewID, true
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
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

	c.logger.Error("review request failed", zap.Error(err))
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

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
