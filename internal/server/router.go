package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"coffeeshop/internal/catalog"
	ordercontroller "coffeeshop/internal/order/controller"
	"coffeeshop/internal/review"
)

// NewRouter mounts the public catalog and review listing endpoints, and
// the authenticated order and review mutation endpoints.
func NewRouter(
	catalogCtrl *catalog.Controller,
	ordersCtrl *ordercontroller.OrdersController,
	reviewsCtrl *review.Controller,
	authenticate func(http.Handler) http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", catalogCtrl.HandleListCategories)
		r.Get("/products", catalogCtrl.HandleListProducts)
		r.Get("/products/featured", catalogCtrl.HandleListFeatured)
		r.Get("/products/{id}", catalogCtrl.HandleGetProduct)
		r.Get("/products/{id}/reviews", reviewsCtrl.HandleListProductReviews)
		r.Get("/reviews", reviewsCtrl.HandleListReviews)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/orders", ordersCtrl.HandlePlaceOrder)
			r.Get("/orders", ordersCtrl.HandleListOrders)
			r.Get("/orders/{id}", ordersCtrl.HandleGetOrder)
			r.Patch("/orders/{id}", ordersCtrl.HandleUpdateOrder)

			r.Post("/reviews", reviewsCtrl.HandleCreateReview)
			r.Patch("/reviews/{id}", reviewsCtrl.HandleUpdateReview)
			r.Delete("/reviews/{id}", reviewsCtrl.HandleDeleteReview)
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
