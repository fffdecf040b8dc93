package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "coffeeshop/internal/errors"
	"coffeeshop/internal/pagination"
)

type Controller struct {
	useCase BrowseUseCase
	logger  *zap.Logger
}

func NewController(useCase BrowseUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	req := ListCategoriesRequest{
		Page:   pagination.FromRequest(r).Number,
		Search: r.URL.Query().Get("search"),
		Sort:   r.URL.Query().Get("sort"),
	}

	resp, err := c.useCase.ListCategories(r.Context(), req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	req := ListProductsRequest{
		Page:   pagination.FromRequest(r).Number,
		Search: r.URL.Query().Get("search"),
		Sort:   r.URL.Query().Get("sort"),
	}

	if raw := r.URL.Query().Get("category"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.writeValidationError(w, "invalid category filter", apperrors.ValidationDetail{
				Field:   "category",
				Message: "category must be an integer id",
			})
			return
		}
		req.CategoryID = &categoryID
	}

	if raw := r.URL.Query().Get("roastLevel"); raw != "" {
		req.RoastLevel = &raw
	}

	if raw := r.URL.Query().Get("isAvailable"); raw != "" {
		isAvailable, err := strconv.ParseBool(raw)
		if err != nil {
			c.writeValidationError(w, "invalid availability filter", apperrors.ValidationDetail{
				Field:   "isAvailable",
				Message: "isAvailable must be true or false",
			})
			return
		}
		req.IsAvailable = &isAvailable
	}

	resp, err := c.useCase.ListProducts(r.Context(), req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.writeValidationError(w, "invalid product id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	resp, err := c.useCase.GetProduct(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleListFeatured(w http.ResponseWriter, r *http.Request) {
	resp, err := c.useCase.ListFeatured(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	if resp == nil {
		resp = []FeaturedProductDTO{}
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": nfe.Message,
		})
		return
	}

	c.logger.Error("catalog request failed", zap.Error(err))
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
