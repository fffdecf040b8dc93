package order

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	catalogrepo "coffeeshop/internal/catalog/repository"
	"coffeeshop/internal/order/controller"
	orderrepo "coffeeshop/internal/order/repository"
	"coffeeshop/internal/order/service"
	"coffeeshop/internal/order/usecase"
)

const checkoutTxTimeout = 5 * time.Second

func NewModule(db *sql.DB, logger *zap.Logger) *controller.OrdersController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	productsRepo := catalogrepo.NewMySQLProductsRepository(db)

	checkout := service.NewCheckoutService(
		db,
		productsRepo,
		orderRepo,
		orderItemRepo,
		logger,
		checkoutTxTimeout,
	)

	placeOrder := usecase.NewPlaceOrderUseCase(checkout, logger)
	manage := usecase.NewManageOrdersUseCase(orderRepo, orderItemRepo, logger)

	return controller.NewOrdersController(placeOrder, manage, logger)
}
