package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/dto"
	apperrors "coffeeshop/internal/errors"
	"coffeeshop/internal/guard"
	"coffeeshop/internal/order/repository"
	"coffeeshop/internal/pagination"
)

type OrderRepository interface {
	FindByIDAndUser(ctx context.Context, id, userID int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, q repository.OrderQuery, limit, offset int) ([]domain.Order, int, error)
	Update(ctx context.Context, id int64, status domain.OrderStatus, shippingAddress string) error
}

type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	ListByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error)
}

type ManageOrdersUseCase struct {
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
}

func NewManageOrdersUseCase(orderRepo OrderRepository, orderItemRepo OrderItemRepository, logger *zap.Logger) *ManageOrdersUseCase {
	return &ManageOrdersUseCase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
	}
}

// ListOrders returns only the caller's orders, newest first unless
// sorted explicitly.
func (uc *ManageOrdersUseCase) ListOrders(ctx context.Context, userID int64, statusFilter, sort string, page int) (*dto.OrderPageResponse, error) {
	q := repository.OrderQuery{}

	if statusFilter != "" {
		status := domain.OrderStatus(statusFilter)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("invalid status filter", apperrors.ValidationDetail{
				Field:   "status",
				Message: "status must be one of pending, processing, shipped, delivered, cancelled",
			})
		}
		q.Status = &status
	}

	if sort != "" {
		column, desc := parseSort(sort)
		if !repository.ValidSortColumn(column) {
			return nil, apperrors.NewValidationError("invalid sort field", apperrors.ValidationDetail{
				Field:   "sort",
				Message: "sort must be one of createdAt, totalAmount",
			})
		}
		q.SortColumn = column
		q.SortDesc = desc
	}

	p := pagination.Page{Number: page}
	orders, total, err := uc.orderRepo.ListByUser(ctx, userID, q, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}

	orderIDs := make([]int64, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	itemsByOrder, err := uc.orderItemRepo.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	results := make([]dto.OrderDTO, 0, len(orders))
	for _, order := range orders {
		order.Items = itemsByOrder[order.ID]
		results = append(results, toOrderDTO(order))
	}

	return &dto.OrderPageResponse{
		Count:    total,
		Page:     p.Number,
		PageSize: pagination.PageSize,
		Results:  results,
	}, nil
}

// GetOrder resolves an order by id for its owner. Ownership is enforced
// by the scoped repository query, so a foreign order surfaces as not
// found rather than forbidden.
func (uc *ManageOrdersUseCase) GetOrder(ctx context.Context, userID, orderID int64) (*dto.OrderDTO, error) {
	order, err := uc.orderRepo.FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	items, err := uc.orderItemRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	result := toOrderDTO(*order)
	return &result, nil
}

// UpdateOrder patches status and shipping address. Total amount and
// items are immutable after checkout.
func (uc *ManageOrdersUseCase) UpdateOrder(ctx context.Context, userID, orderID int64, req dto.UpdateOrderRequest) (*dto.OrderDTO, error) {
	if req.Status == nil && req.ShippingAddress == nil {
		return nil, apperrors.NewValidationError("nothing to update", apperrors.ValidationDetail{
			Field:   "body",
			Message: "at least one of status, shippingAddress is required",
		})
	}

	order, err := uc.orderRepo.FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if !guard.CanModify(userID, order) {
		return nil, apperrors.NewForbiddenError("not the owner of this order")
	}

	status := order.Status
	if req.Status != nil {
		status = domain.OrderStatus(*req.Status)
		// Any transition between valid statuses is accepted; there is
		// deliberately no state machine here.
		if !status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
				Field:   "status",
				Message: "status must be one of pending, processing, shipped, delivered, cancelled",
			})
		}
	}

	shippingAddress := order.ShippingAddress
	if req.ShippingAddress != nil {
		shippingAddress = strings.TrimSpace(*req.ShippingAddress)
		if shippingAddress == "" {
			return nil, apperrors.NewValidationError("invalid shipping address", apperrors.ValidationDetail{
				Field:   "shippingAddress",
				Message: "shippingAddress must not be empty",
			})
		}
	}

	if err := uc.orderRepo.Update(ctx, order.ID, status, shippingAddress); err != nil {
		return nil, err
	}

	uc.logger.Info("order updated",
		zap.Int64("orderId", order.ID), zap.Int64("userId", userID), zap.String("status", string(status)))

	updated, err := uc.orderRepo.FindByIDAndUser(ctx, order.ID, userID)
	if err != nil {
		return nil, err
	}

	items, err := uc.orderItemRepo.ListByOrderID(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	updated.Items = items

	result := toOrderDTO(*updated)
	return &result, nil
}

func parseSort(sort string) (column string, desc bool) {
	if strings.HasPrefix(sort, "-") {
		return sort[1:], true
	}
	return sort, false
}
