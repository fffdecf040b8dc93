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
)

type mockCheckoutService struct {
	PlaceOrderFunc func(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error)
}

func (m *mockCheckoutService) PlaceOrder(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error) {
	return m.PlaceOrderFunc(ctx, userID, shippingAddress, lines)
}

func validRequest() dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{
		ShippingAddress: "123 Main St",
		Items: []dto.OrderLineRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	ctx := context.Background()

	var gotUserID int64
	var gotAddress string
	var gotLines []dto.OrderLine

	checkout := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error) {
			gotUserID = userID
			gotAddress = shippingAddress
			gotLines = lines
			return &domain.Order{
				ID:              10,
				UserID:          userID,
				Status:          domain.OrderStatusPending,
				TotalAmount:     decimal.RequireFromString("25.00"),
				ShippingAddress: shippingAddress,
				Items: []domain.OrderItem{
					{ID: 1, OrderID: 10, ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("10.00")},
					{ID: 2, OrderID: 10, ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("5.00")},
				},
			}, nil
		},
	}

	uc := NewPlaceOrderUseCase(checkout, zap.NewNop())

	result, err := uc.PlaceOrder(ctx, 42, validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), gotUserID)
	assert.Equal(t, "123 Main St", gotAddress)
	assert.Len(t, gotLines, 2)

	assert.Equal(t, int64(10), result.ID)
	assert.Equal(t, int64(42), result.UserID)
	assert.Equal(t, "pending", result.Status)
	assert.True(t, result.TotalAmount.Equal(decimal.RequireFromString("25.00")))
	assert.Len(t, result.Items, 2)
	assert.True(t, result.Items[0].Subtotal.Equal(decimal.RequireFromString("20.00")))
}

func TestPlaceOrder_EmptyShippingAddress(t *testing.T) {
	ctx := context.Background()

	checkout := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error) {
			t.Fatal("checkout must not be reached")
			return nil, nil
		},
	}

	uc := NewPlaceOrderUseCase(checkout, zap.NewNop())

	req := validRequest()
	req.ShippingAddress = "   "

	_, err := uc.PlaceOrder(ctx, 42, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "shippingAddress", ve.Details[0].Field)
}

func TestPlaceOrder_NoItems(t *testing.T) {
	ctx := context.Background()

	checkout := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error) {
			t.Fatal("checkout must not be reached")
			return nil, nil
		},
	}

	uc := NewPlaceOrderUseCase(checkout, zap.NewNop())

	req := validRequest()
	req.Items = nil

	_, err := uc.PlaceOrder(ctx, 42, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "items", ve.Details[0].Field)
}

func TestPlaceOrder_DuplicateProducts(t *testing.T) {
	ctx := context.Background()

	checkout := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error) {
			t.Fatal("checkout must not be reached")
			return nil, nil
		},
	}

	uc := NewPlaceOrderUseCase(checkout, zap.NewNop())

	req := dto.PlaceOrderRequest{
		ShippingAddress: "123 Main St",
		Items: []dto.OrderLineRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 1, Quantity: 3},
		},
	}

	_, err := uc.PlaceOrder(ctx, 42, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "items[1].productId", ve.Details[0].Field)
	assert.Contains(t, ve.Details[0].Message, "duplicated")
}

func TestPlaceOrder_ZeroQuantity(t *testing.T) {
	ctx := context.Background()

	checkout := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error) {
			t.Fatal("checkout must not be reached")
			return nil, nil
		},
	}

	uc := NewPlaceOrderUseCase(checkout, zap.NewNop())

	req := dto.PlaceOrderRequest{
		ShippingAddress: "123 Main St",
		Items:           []dto.OrderLineRequest{{ProductID: 1, Quantity: 0}},
	}

	_, err := uc.PlaceOrder(ctx, 42, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "items[0].quantity", ve.Details[0].Field)
}

func TestPlaceOrder_CheckoutErrorPassedThrough(t *testing.T) {
	ctx := context.Background()

	checkout := &mockCheckoutService{
		PlaceOrderFunc: func(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error) {
			return nil, apperrors.NewValidationError("order validation failed", apperrors.ValidationDetail{
				Field:   "items[0].productId",
				Message: "product 99 is not available",
			})
		},
	}

	uc := NewPlaceOrderUseCase(checkout, zap.NewNop())

	req := dto.PlaceOrderRequest{
		ShippingAddress: "123 Main St",
		Items:           []dto.OrderLineRequest{{ProductID: 99, Quantity: 1}},
	}

	_, err := uc.PlaceOrder(ctx, 42, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Details[0].Message, "not available")
}
