package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/dto"
	apperrors "coffeeshop/internal/errors"
)

const (
	maxOrderLines   = 100
	maxLineQuantity = 10000
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error)
}

type PlaceOrderUseCase struct {
	checkout CheckoutService
	logger   *zap.Logger
}

func NewPlaceOrderUseCase(checkout CheckoutService, logger *zap.Logger) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		checkout: checkout,
		logger:   logger,
	}
}

// PlaceOrder validates the request shape, then hands the checkout to the
// transactional service. The owning user is always the authenticated
// caller; any total or price in the request body is ignored by design of
// the DTO, which simply has no such fields.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, userID int64, req dto.PlaceOrderRequest) (*dto.OrderDTO, error) {
	uc.logger.Info("order placement started",
		zap.Int64("userId", userID), zap.Int("itemCount", len(req.Items)))

	if err := validatePlaceOrderRequest(req); err != nil {
		return nil, err
	}

	lines := make([]dto.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = dto.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := uc.checkout.PlaceOrder(ctx, userID, strings.TrimSpace(req.ShippingAddress), lines)
	if err != nil {
		return nil, err
	}

	result := toOrderDTO(*order)
	return &result, nil
}

func validatePlaceOrderRequest(req dto.PlaceOrderRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.ShippingAddress) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "shippingAddress",
			Message: "shippingAddress must not be empty",
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(req.Items) > maxOrderLines {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: fmt.Sprintf("items exceeds maximum of %d", maxOrderLines),
		})
	}

	seen := make(map[int64]bool, len(req.Items))
	for i, item := range req.Items {
		if item.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Message: "productId must be a positive integer",
			})
		}

		if seen[item.ProductID] {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Message: "productId must not be duplicated",
			})
		}
		seen[item.ProductID] = true

		if item.Quantity < 1 || item.Quantity > maxLineQuantity {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: fmt.Sprintf("quantity must be between 1 and %d", maxLineQuantity),
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func toOrderDTO(order domain.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal(),
		})
	}

	return dto.OrderDTO{
		ID:              order.ID,
		UserID:          order.UserID,
		Status:          string(order.Status),
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Items:           items,
	}
}
