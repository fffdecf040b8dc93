package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/dto"
	apperrors "coffeeshop/internal/errors"
	"coffeeshop/internal/order/repository"
)

type mockOrderRepository struct {
	FindByIDAndUserFunc func(ctx context.Context, id, userID int64) (*domain.Order, error)
	ListByUserFunc      func(ctx context.Context, userID int64, q repository.OrderQuery, limit, offset int) ([]domain.Order, int, error)
	UpdateFunc          func(ctx context.Context, id int64, status domain.OrderStatus, shippingAddress string) error
}

func (m *mockOrderRepository) FindByIDAndUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	return m.FindByIDAndUserFunc(ctx, id, userID)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID int64, q repository.OrderQuery, limit, offset int) ([]domain.Order, int, error) {
	return m.ListByUserFunc(ctx, userID, q, limit, offset)
}

func (m *mockOrderRepository) Update(ctx context.Context, id int64, status domain.OrderStatus, shippingAddress string) error {
	return m.UpdateFunc(ctx, id, status, shippingAddress)
}

type mockOrderItemRepository struct {
	ListByOrderIDFunc  func(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	ListByOrderIDsFunc func(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error)
}

func (m *mockOrderItemRepository) ListByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	return m.ListByOrderIDFunc(ctx, orderID)
}

func (m *mockOrderItemRepository) ListByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	return m.ListByOrderIDsFunc(ctx, orderIDs)
}

func emptyItemsRepo() *mockOrderItemRepository {
	return &mockOrderItemRepository{
		ListByOrderIDFunc: func(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
			return nil, nil
		},
		ListByOrderIDsFunc: func(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
			return map[int64][]domain.OrderItem{}, nil
		},
	}
}

func TestListOrders_ScopedToCaller(t *testing.T) {
	ctx := context.Background()

	var gotUserID int64
	orderRepo := &mockOrderRepository{
		ListByUserFunc: func(ctx context.Context, userID int64, q repository.OrderQuery, limit, offset int) ([]domain.Order, int, error) {
			gotUserID = userID
			return []domain.Order{
				{ID: 1, UserID: userID, Status: domain.OrderStatusPending, TotalAmount: decimal.RequireFromString("25.00")},
				{ID: 2, UserID: userID, Status: domain.OrderStatusShipped, TotalAmount: decimal.RequireFromString("12.50")},
			}, 2, nil
		},
	}

	uc := NewManageOrdersUseCase(orderRepo, emptyItemsRepo(), zap.NewNop())

	result, err := uc.ListOrders(ctx, 42, "", "", 1)
	require.NoError(t, err)

	assert.Equal(t, int64(42), gotUserID)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 10, result.PageSize)
	for _, order := range result.Results {
		assert.Equal(t, int64(42), order.UserID)
	}
}

func TestListOrders_InvalidStatusFilter(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		ListByUserFunc: func(ctx context.Context, userID int64, q repository.OrderQuery, limit, offset int) ([]domain.Order, int, error) {
			t.Fatal("repository must not be reached")
			return nil, 0, nil
		},
	}

	uc := NewManageOrdersUseCase(orderRepo, emptyItemsRepo(), zap.NewNop())

	_, err := uc.ListOrders(ctx, 42, "refunded", "", 1)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Details[0].Field)
}

func TestListOrders_InvalidSortField(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		ListByUserFunc: func(ctx context.Context, userID int64, q repository.OrderQuery, limit, offset int) ([]domain.Order, int, error) {
			t.Fatal("repository must not be reached")
			return nil, 0, nil
		},
	}

	uc := NewManageOrdersUseCase(orderRepo, emptyItemsRepo(), zap.NewNop())

	_, err := uc.ListOrders(ctx, 42, "", "shippingAddress", 1)
	require.Error(t, err)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestListOrders_SortDescending(t *testing.T) {
	ctx := context.Background()

	var gotQuery repository.OrderQuery
	orderRepo := &mockOrderRepository{
		ListByUserFunc: func(ctx context.Context, userID int64, q repository.OrderQuery, limit, offset int) ([]domain.Order, int, error) {
			gotQuery = q
			return nil, 0, nil
		},
	}

	uc := NewManageOrdersUseCase(orderRepo, emptyItemsRepo(), zap.NewNop())

	_, err := uc.ListOrders(ctx, 42, "", "-totalAmount", 1)
	require.NoError(t, err)

	assert.Equal(t, "totalAmount", gotQuery.SortColumn)
	assert.True(t, gotQuery.SortDesc)
}

func TestGetOrder_NotFoundForForeignOrder(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		FindByIDAndUserFunc: func(ctx context.Context, id, userID int64) (*domain.Order, error) {
			// The scoped query hides orders of other users.
			return nil, apperrors.NewNotFoundError("order with id 1 not found")
		},
	}

	uc := NewManageOrdersUseCase(orderRepo, emptyItemsRepo(), zap.NewNop())

	_, err := uc.GetOrder(ctx, 42, 1)
	require.Error(t, err)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestUpdateOrder_Success(t *testing.T) {
	ctx := context.Background()

	stored := domain.Order{
		ID:              1,
		UserID:          42,
		Status:          domain.OrderStatusPending,
		TotalAmount:     decimal.RequireFromString("25.00"),
		ShippingAddress: "123 Main St",
	}

	var updatedStatus domain.OrderStatus
	orderRepo := &mockOrderRepository{
		FindByIDAndUserFunc: func(ctx context.Context, id, userID int64) (*domain.Order, error) {
			order := stored
			order.Status = updatedStatus
			if updatedStatus == "" {
				order.Status = domain.OrderStatusPending
			}
			return &order, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, status domain.OrderStatus, shippingAddress string) error {
			updatedStatus = status
			return nil
		},
	}

	uc := NewManageOrdersUseCase(orderRepo, emptyItemsRepo(), zap.NewNop())

	status := "processing"
	result, err := uc.UpdateOrder(ctx, 42, 1, dto.UpdateOrderRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "processing", result.Status)
	// Total stays untouched by updates.
	assert.True(t, result.TotalAmount.Equal(decimal.RequireFromString("25.00")))
}

func TestUpdateOrder_InvalidStatus(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		FindByIDAndUserFunc: func(ctx context.Context, id, userID int64) (*domain.Order, error) {
			return &domain.Order{ID: 1, UserID: 42, Status: domain.OrderStatusPending}, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, status domain.OrderStatus, shippingAddress string) error {
			t.Fatal("update must not be reached")
			return nil
		},
	}

	uc := NewManageOrdersUseCase(orderRepo, emptyItemsRepo(), zap.NewNop())

	status := "refunded"
	_, err := uc.UpdateOrder(ctx, 42, 1, dto.UpdateOrderRequest{Status: &status})
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Details[0].Field)
}

func TestUpdateOrder_EmptyPatch(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		FindByIDAndUserFunc: func(ctx context.Context, id, userID int64) (*domain.Order, error) {
			t.Fatal("repository must not be reached")
			return nil, nil
		},
	}

	uc := NewManageOrdersUseCase(orderRepo, emptyItemsRepo(), zap.NewNop())

	_, err := uc.UpdateOrder(ctx, 42, 1, dto.UpdateOrderRequest{})
	require.Error(t, err)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestUpdateOrder_EmptyShippingAddress(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		FindByIDAndUserFunc: func(ctx context.Context, id, userID int64) (*domain.Order, error) {
			return &domain.Order{ID: 1, UserID: 42, Status: domain.OrderStatusPending, ShippingAddress: "123 Main St"}, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, status domain.OrderStatus, shippingAddress string) error {
			t.Fatal("update must not be reached")
			return nil
		},
	}

	uc := NewManageOrdersUseCase(orderRepo, emptyItemsRepo(), zap.NewNop())

	address := "  "
	_, err := uc.UpdateOrder(ctx, 42, 1, dto.UpdateOrderRequest{ShippingAddress: &address})
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "shippingAddress", ve.Details[0].Field)
}
