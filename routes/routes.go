package routes

import (
	"github.com/inkpress/bookshop-backend-go/config"
	"github.com/inkpress/bookshop-backend-go/handlers"
	customMiddleware "github.com/inkpress/bookshop-backend-go/middleware"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(e *echo.Echo, h *handlers.Handler, p *handlers.PaymentHandler, a *handlers.AdminHandler, adminCfg config.Admin) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Storefront routes
	api := e.Group("/api")
	api.GET("/prices", h.GetPrices)
	api.POST("/orders", h.PlaceOrder)
	api.GET("/orders", h.ListUserOrders)
	api.GET("/orders/:orderId", h.GetOrder)
	api.POST("/orders/:orderId/review", h.SubmitReview)

	// Gateway callback + browser return
	api.POST("/payment/callback", p.Callback)
	api.GET("/payment/redirect/:txnId", p.Redirect)

	// Admin dashboard
	e.POST("/admin/login", a.Login)

	admin := e.Group("/admin")
	admin.Use(customMiddleware.AdminMiddleware(adminCfg.JWTSecret))
	admin.GET("/orders", a.ListOrders)
	admin.PUT("/orders/:orderId/status", a.UpdateOrderStatus)
	admin.GET("/stock", a.GetStock)
	admin.PUT("/stock", a.SetStock)
	admin.GET("/discounts", a.ListDiscounts)
	admin.POST("/discounts", a.CreateDiscount)
}
