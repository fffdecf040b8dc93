package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/dto"
	"coffeeshop/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductsRepository interface {
	FindByIDsForUpdate(ctx context.Context, tx *sql.Tx, ids []int64) ([]domain.Product, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (int64, error)
	FindByIDAndUser(ctx context.Context, id, userID int64) (*domain.Order, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (int64, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
}

// CheckoutService creates an order and its line items as one
// transaction. Unit prices are snapshotted from the catalog at this
// moment; the caller never supplies a price or a total.
type CheckoutService struct {
	db            TransactionManager
	productsRepo  ProductsRepository
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
	txTimeout     time.Duration
}

func NewCheckoutService(
	db TransactionManager,
	productsRepo ProductsRepository,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		productsRepo:  productsRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
		txTimeout:     txTimeout,
	}
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, userID int64, shippingAddress string, lines []dto.OrderLine) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, errors.NewInternalError("beginning checkout transaction", err)
	}
	// Rollback on any exit path. MySQL ignores it after a commit.
	defer tx.Rollback()

	ids := make([]int64, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.productsRepo.FindByIDsForUpdate(txCtx, tx, ids)
	if err != nil {
		s.logger.Error("failed to load products", zap.Int64("userId", userID), zap.Error(err))
		return nil, err
	}

	productsByID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(lines))
	total := decimal.Zero
	var details []errors.ValidationDetail

	for i, line := range lines {
		product, ok := productsByID[line.ProductID]
		if !ok {
			details = append(details, errors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Message: fmt.Sprintf("product %d does not exist", line.ProductID),
			})
			continue
		}
		if !product.IsAvailable {
			details = append(details, errors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Message: fmt.Sprintf("product %d is not available", line.ProductID),
			})
			continue
		}

		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	// Any bad line aborts the whole order; the deferred rollback
	// guarantees no partial writes.
	if len(details) > 0 {
		return nil, errors.NewValidationError("order validation failed", details...)
	}

	orderID, err := s.orderRepo.Insert(txCtx, tx, domain.Order{
		UserID:          userID,
		Status:          domain.OrderStatusPending,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
	})
	if err != nil {
		s.logger.Error("failed to insert order", zap.Int64("userId", userID), zap.Error(err))
		return nil, err
	}

	for i := range items {
		items[i].OrderID = orderID
		itemID, err := s.orderItemRepo.Insert(txCtx, tx, items[i])
		if err != nil {
			s.logger.Error("failed to insert order item",
				zap.Int64("orderId", orderID), zap.Int64("productId", items[i].ProductID), zap.Error(err))
			return nil, err
		}
		items[i].ID = itemID
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit checkout transaction", zap.Int64("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("committing checkout transaction", err)
	}

	s.logger.Info("order placed",
		zap.Int64("orderId", orderID), zap.Int64("userId", userID),
		zap.Int("itemCount", len(items)), zap.String("totalAmount", total.String()))

	order, err := s.orderRepo.FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}
