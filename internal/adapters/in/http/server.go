// Package http exposes the marketplace over a JSON API. Handlers translate
// transport input into commands and queries and map application errors onto
// HTTP statuses; no business rules live here.
package http

import (
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	signer ports.TokenSigner

	// Command handlers
	registerUserHandler      commands.RegisterUserCommandHandler
	loginHandler             commands.LoginCommandHandler
	refreshTokenHandler      commands.RefreshTokenCommandHandler
	logoutHandler            commands.LogoutCommandHandler
	createProductHandler     commands.CreateProductCommandHandler
	updateProductHandler     commands.UpdateProductCommandHandler
	deleteProductHandler     commands.DeleteProductCommandHandler
	addCartItemHandler       commands.AddCartItemCommandHandler
	updateCartItemHandler    commands.UpdateCartItemCommandHandler
	removeCartItemHandler    commands.RemoveCartItemCommandHandler
	placeOrderHandler        commands.PlaceOrderCommandHandler
	confirmProcessingHandler commands.ConfirmProcessingCommandHandler
	pickupOrderHandler       commands.PickupOrderCommandHandler
	changeDeliveryHandler    commands.ChangeDeliveryCommandHandler

	// Query handlers
	getAccountHandler    queries.GetAccountQueryHandler
	getProductsHandler   queries.GetProductsQueryHandler
	getProductHandler    queries.GetProductQueryHandler
	getCartHandler       queries.GetCartQueryHandler
	getOrdersHandler     queries.GetOrdersQueryHandler
	getOrderHandler      queries.GetOrderQueryHandler
	getSalesHandler      queries.GetSalesQueryHandler
	getSaleHandler       queries.GetSaleQueryHandler
	getDeliveriesHandler queries.GetDeliveriesQueryHandler
	getDeliveryHandler   queries.GetDeliveryQueryHandler
}

// NewServer creates an HTTP server over the given use case handlers.
func NewServer(
	signer ports.TokenSigner,
	registerUserHandler commands.RegisterUserCommandHandler,
	loginHandler commands.LoginCommandHandler,
	refreshTokenHandler commands.RefreshTokenCommandHandler,
	logoutHandler commands.LogoutCommandHandler,
	createProductHandler commands.CreateProductCommandHandler,
	updateProductHandler commands.UpdateProductCommandHandler,
	deleteProductHandler commands.DeleteProductCommandHandler,
	addCartItemHandler commands.AddCartItemCommandHandler,
	updateCartItemHandler commands.UpdateCartItemCommandHandler,
	removeCartItemHandler commands.RemoveCartItemCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	confirmProcessingHandler commands.ConfirmProcessingCommandHandler,
	pickupOrderHandler commands.PickupOrderCommandHandler,
	changeDeliveryHandler commands.ChangeDeliveryCommandHandler,
	getAccountHandler queries.GetAccountQueryHandler,
	getProductsHandler queries.GetProductsQueryHandler,
	getProductHandler queries.GetProductQueryHandler,
	getCartHandler queries.GetCartQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getSalesHandler queries.GetSalesQueryHandler,
	getSaleHandler queries.GetSaleQueryHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
) *Server {
	return &Server{
		signer:                   signer,
		registerUserHandler:      registerUserHandler,
		loginHandler:             loginHandler,
		refreshTokenHandler:      refreshTokenHandler,
		logoutHandler:            logoutHandler,
		createProductHandler:     createProductHandler,
		updateProductHandler:     updateProductHandler,
		deleteProductHandler:     deleteProductHandler,
		addCartItemHandler:       addCartItemHandler,
		updateCartItemHandler:    updateCartItemHandler,
		removeCartItemHandler:    removeCartItemHandler,
		placeOrderHandler:        placeOrderHandler,
		confirmProcessingHandler: confirmProcessingHandler,
		pickupOrderHandler:       pickupOrderHandler,
		changeDeliveryHandler:    changeDeliveryHandler,
		getAccountHandler:        getAccountHandler,
		getProductsHandler:       getProductsHandler,
		getProductHandler:        getProductHandler,
		getCartHandler:           getCartHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getSalesHandler:          getSalesHandler,
		getSaleHandler:           getSaleHandler,
		getDeliveriesHandler:     getDeliveriesHandler,
		getDeliveryHandler:       getDeliveryHandler,
	}
}

// RegisterRoutes wires the API onto the echo instance. Everything except
// the auth endpoints and the public catalog reads requires a bearer access
// token; logout authenticates with the refresh token it revokes.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.POST("/auth/refresh", s.Refresh)
	api.POST("/auth/logout", s.Logout)

	api.GET("/products", s.GetProducts)
	api.GET("/products/:id", s.GetProduct)

	authed := api.Group("", AuthMiddleware(s.signer))

	authed.GET("/account", s.GetAccount)

	authed.POST("/products", s.CreateProduct)
	authed.PATCH("/products/:id", s.UpdateProduct)
	authed.DELETE("/products/:id", s.DeleteProduct)

	authed.GET("/carts", s.GetCart)
	authed.POST("/carts", s.AddCartItem)
	authed.PATCH("/carts/:id", s.UpdateCartItem)
	authed.DELETE("/carts/:id", s.RemoveCartItem)

	authed.POST("/orders", s.PlaceOrder)
	authed.GET("/orders", s.GetOrders)
	authed.GET("/orders/:id", s.GetOrder)

	authed.GET("/sales", s.GetSales)
	authed.GET("/sales/:id", s.GetSale)
	authed.POST("/sales/:id/confirm", s.ConfirmProcessing)

	authed.GET("/deliveries", s.GetDeliveries)
	authed.GET("/deliveries/:id", s.GetDelivery)
	authed.POST("/deliveries/:id/pickup", s.PickupOrder)
	authed.PATCH("/deliveries/:id", s.ChangeDelivery)
}
