package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qfifat.backend/internal/interfaces/http/handlers"
	"qfifat.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	productHandler    *handlers.ProductHandler
	orderHandler      *handlers.OrderHandler
	paymentHandler    *handlers.PaymentHandler
	couponHandler     *handlers.CouponHandler
	merchantHandler   *handlers.MerchantHandler
	withdrawalHandler *handlers.WithdrawalHandler
	trackingHandler   *handlers.TrackingHandler
	authMiddleware    gin.HandlerFunc
	idempotencyTTL    time.Duration
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, X-Idempotency-Hit")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "qfifat-backend",
			"version": "1.0.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, deps routeDeps) {
	v1 := r.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", deps.authHandler.Register)
		auth.POST("/login", deps.authHandler.Login)
		auth.POST("/refresh", deps.authHandler.Refresh)
	}

	v1.GET("/products", deps.productHandler.List)
	v1.GET("/products/:id", deps.productHandler.Get)

	// Authenticated routes
	protected := v1.Group("")
	protected.Use(deps.authMiddleware)
	{
		protected.GET("/auth/me", deps.authHandler.Me)

		protected.POST("/orders/checkout", middleware.IdempotencyMiddleware(deps.idempotencyTTL), deps.orderHandler.Checkout)
		protected.GET("/orders", deps.orderHandler.ListMine)
		protected.GET("/orders/:id", deps.orderHandler.Get)
		protected.GET("/orders/number/:orderNumber", deps.orderHandler.GetByNumber)
		protected.POST("/orders/:id/cancel", deps.orderHandler.Cancel)

		protected.POST("/orders/:id/payment/proofs", deps.paymentHandler.AddProof)
		protected.GET("/orders/:id/payment", deps.paymentHandler.GetForOrder)

		protected.GET("/orders/:id/tracking", deps.trackingHandler.History)
		protected.GET("/orders/:id/tracking/latest", deps.trackingHandler.Latest)
		protected.GET("/orders/:id/tracking/live", deps.trackingHandler.Live)

		protected.POST("/coupons/validate", deps.couponHandler.Validate)

		protected.POST("/merchants/apply", deps.merchantHandler.Apply)
		protected.GET("/merchants/status", deps.merchantHandler.Status)
	}

	// Merchant routes
	merchant := v1.Group("")
	merchant.Use(deps.authMiddleware, middleware.RequireMerchant())
	{
		merchant.POST("/products", deps.productHandler.Create)
		merchant.PATCH("/products/:id", deps.productHandler.Update)
		merchant.DELETE("/products/:id", deps.productHandler.Delete)
		merchant.GET("/products/mine", deps.productHandler.ListMine)

		merchant.GET("/merchants/sales", deps.orderHandler.ListSales)
		merchant.GET("/merchants/earnings", deps.withdrawalHandler.ListEarnings)
		merchant.GET("/merchants/earnings/summary", deps.withdrawalHandler.Summary)
		merchant.POST("/merchants/withdrawals", deps.withdrawalHandler.Request)
		merchant.GET("/merchants/withdrawals", deps.withdrawalHandler.ListMine)
	}

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(deps.authMiddleware, middleware.RequireAdmin())
	{
		admin.GET("/orders", deps.orderHandler.ListAll)
		admin.POST("/orders/:id/tracking", deps.trackingHandler.Append)

		admin.GET("/payments/pending", deps.paymentHandler.ListPending)
		admin.POST("/payments/:id/approve", deps.paymentHandler.Approve)
		admin.POST("/payments/:id/reject", deps.paymentHandler.Reject)
		admin.POST("/payments/:id/refund", deps.paymentHandler.Refund)

		admin.POST("/coupons", deps.couponHandler.Create)
		admin.GET("/coupons", deps.couponHandler.List)
		admin.GET("/coupons/:id", deps.couponHandler.Get)
		admin.POST("/coupons/:id/deactivate", deps.couponHandler.Deactivate)
		admin.DELETE("/coupons/:id", deps.couponHandler.Delete)

		admin.GET("/merchants", deps.merchantHandler.List)
		admin.POST("/merchants/:id/approve", deps.merchantHandler.Approve)
		admin.POST("/merchants/:id/reject", deps.merchantHandler.Reject)
		admin.POST("/merchants/:id/suspend", deps.merchantHandler.Suspend)
		admin.PUT("/merchants/:id/commission", deps.merchantHandler.SetCommissionRate)

		admin.GET("/withdrawals", deps.withdrawalHandler.List)
		admin.POST("/withdrawals/:id/approve", deps.withdrawalHandler.Approve)
		admin.POST("/withdrawals/:id/reject", deps.withdrawalHandler.Reject)
		admin.POST("/withdrawals/:id/complete", deps.withdrawalHandler.Complete)
	}
}
