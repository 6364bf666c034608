package server

import (
	"iptv-storefront/internal/handler"
	appmiddleware "iptv-storefront/internal/middleware"
	"iptv-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo *echo.Echo

	checkoutHandler *handler.CheckoutHandler
	webhookHandler  *handler.WebhookHandler
	orderHandler    *handler.OrderHandler
	authHandler     *handler.AuthHandler
	adminOrders     *handler.AdminOrderHandler
	adminClients    *handler.AdminClientHandler
	adminAnalytics  *handler.AdminAnalyticsHandler
	adminSettings   *handler.AdminSettingsHandler
	adminMiddleware echo.MiddlewareFunc
}

func NewServer(
	checkoutService service.CheckoutService,
	paymentService service.PaymentService,
	orderService service.OrderService,
	authService service.AuthService,
	clientService service.ClientService,
	analyticsService service.AnalyticsService,
	settingsService service.SettingsService,
	secureCookie bool,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		webhookHandler:  handler.NewWebhookHandler(paymentService),
		orderHandler:    handler.NewOrderHandler(orderService),
		authHandler:     handler.NewAuthHandler(authService, secureCookie),
		adminOrders:     handler.NewAdminOrderHandler(orderService),
		adminClients:    handler.NewAdminClientHandler(clientService),
		adminAnalytics:  handler.NewAdminAnalyticsHandler(analyticsService),
		adminSettings:   handler.NewAdminSettingsHandler(settingsService),
		adminMiddleware: appmiddleware.AdminAuth(authService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- public storefront --------
	api.POST("/checkout", s.checkoutHandler.Checkout)
	api.GET("/checkout", s.checkoutHandler.PaymentLinks)

	api.GET("/orders", s.orderHandler.List)
	api.POST("/orders", s.orderHandler.Create)
	api.PATCH("/orders/:id/pay", s.orderHandler.MarkPaid)

	// -------- payment provider callbacks --------
	api.POST("/webhooks/nowpayments", s.webhookHandler.NowPayments)

	// -------- admin --------
	admin := api.Group("/admin")
	admin.POST("/login", s.authHandler.Login)
	admin.POST("/logout", s.authHandler.Logout)
	admin.GET("/verify", s.authHandler.Verify)

	protected := admin.Group("", s.adminMiddleware)
	protected.GET("/orders", s.adminOrders.List)
	protected.GET("/orders/:id", s.adminOrders.Get)
	protected.PUT("/orders/:id", s.adminOrders.Update)
	protected.DELETE("/orders/:id", s.adminOrders.Delete)
	protected.POST("/orders/:id/activate", s.adminOrders.Activate)

	protected.GET("/clients", s.adminClients.List)
	protected.GET("/clients/export", s.adminClients.Export)
	protected.DELETE("/clients/:id", s.adminClients.Delete)

	protected.GET("/analytics", s.adminAnalytics.Analytics)
	protected.GET("/traffic", s.adminAnalytics.Traffic)

	protected.GET("/settings", s.adminSettings.Get)
	protected.PUT("/settings", s.adminSettings.Update)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
