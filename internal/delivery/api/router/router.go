// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	ProductHandler     *handler.ProductHandler
	DesignAssetHandler *handler.DesignAssetHandler
	OrderHandler       *handler.OrderHandler
	AddressHandler     *handler.AddressHandler
	PaymentHandler     *handler.PaymentHandler
	AuthMiddleware     *middleware.AuthMiddleware
	Metrics            *metrics.Recorder
	Config             *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	productHandler     *handler.ProductHandler
	designAssetHandler *handler.DesignAssetHandler
	orderHandler       *handler.OrderHandler
	addressHandler     *handler.AddressHandler
	paymentHandler     *handler.PaymentHandler
	authMiddleware     *middleware.AuthMiddleware
	metrics            *metrics.Recorder
	config             *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		productHandler:     params.ProductHandler,
		designAssetHandler: params.DesignAssetHandler,
		orderHandler:       params.OrderHandler,
		addressHandler:     params.AddressHandler,
		paymentHandler:     params.PaymentHandler,
		authMiddleware:     params.AuthMiddleware,
		metrics:            params.Metrics,
		config:             params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application. Role and
// ownership rules are enforced by the usecases; routes only require a token.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	api := e.Group("/api")
	authenticated := r.authMiddleware.Authenticate

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signin", r.authHandler.SignIn)
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.GET("/me", r.authHandler.Me, authenticated)
	}

	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.POST("", r.productHandler.CreateProduct, authenticated)
		productsGroup.PUT("/:id", r.productHandler.UpdateProduct, authenticated)
		productsGroup.DELETE("/:id", r.productHandler.DeleteProduct, authenticated)
	}

	designAssetsGroup := api.Group("/design-assets")
	{
		designAssetsGroup.GET("", r.designAssetHandler.ListDesignAssets)
		designAssetsGroup.GET("/:id", r.designAssetHandler.GetDesignAsset)
		designAssetsGroup.POST("", r.designAssetHandler.CreateDesignAsset, authenticated)
		designAssetsGroup.PUT("/:id", r.designAssetHandler.UpdateDesignAsset, authenticated)
		designAssetsGroup.DELETE("/:id", r.designAssetHandler.DeleteDesignAsset, authenticated)
	}

	ordersGroup := api.Group("/orders", authenticated)
	{
		ordersGroup.GET("", r.orderHandler.ListMyOrders)
		ordersGroup.POST("", r.orderHandler.CreateOrder)
		ordersGroup.GET("/all", r.orderHandler.ListAllOrders)
		ordersGroup.GET("/tracking", r.orderHandler.LookupTracking)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.PUT("/:id/status", r.orderHandler.UpdateStatus)
		ordersGroup.POST("/:id/tracking", r.orderHandler.RetryTracking)
	}

	addressesGroup := api.Group("/addresses", authenticated)
	{
		addressesGroup.GET("", r.addressHandler.ListAddresses)
		addressesGroup.POST("", r.addressHandler.CreateAddress)
		addressesGroup.PUT("/:id", r.addressHandler.UpdateAddress)
		addressesGroup.DELETE("/:id", r.addressHandler.DeleteAddress)
	}

	paymentsGroup := api.Group("/payments", authenticated)
	{
		paymentsGroup.POST("/create-payment-intent", r.paymentHandler.CreatePaymentIntent)
	}
}
