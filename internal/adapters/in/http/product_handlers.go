package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stock       string `json:"stock"`
	Price       string `json:"price"`
}

type productResponse struct {
	ID          string    `json:"id"`
	MerchantID  string    `json:"merchant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stock       string    `json:"stock"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ID:          p.ID().String(),
		MerchantID:  p.MerchantID().String(),
		Name:        p.Name(),
		Description: p.Description(),
		Stock:       p.Stock().String(),
		Price:       p.Price().String(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func (r productRequest) parse() (kernel.Quantity, decimal.Decimal, error) {
	stock, err := kernel.QuantityFromString(r.Stock)
	if err != nil {
		return kernel.Quantity{}, decimal.Decimal{}, err
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return kernel.Quantity{}, decimal.Decimal{}, err
	}
	return stock, price, nil
}

// GetProducts handles GET /api/v1/products - the public catalog.
func (s *Server) GetProducts(ctx echo.Context) error {
	views, err := s.getProductsHandler.Handle(ctx.Request().Context(), queries.NewGetProductsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views)
}

// GetProduct handles GET /api/v1/products/:id - a single listing.
func (s *Server) GetProduct(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid product id")
	}

	query, err := queries.NewGetProductQuery(productID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getProductHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// CreateProduct handles POST /api/v1/products - lists a product for the
// calling merchant.
func (s *Server) CreateProduct(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	var req productRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	stock, price, err := req.parse()
	if err != nil {
		return respondBadRequest(ctx, "invalid stock or price")
	}

	cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), actor, req.Name, req.Description, stock, price)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createProductHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toProductResponse(created))
}

// UpdateProduct handles PATCH /api/v1/products/:id - edits an owned listing.
func (s *Server) UpdateProduct(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid product id")
	}

	var req productRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	stock, price, err := req.parse()
	if err != nil {
		return respondBadRequest(ctx, "invalid stock or price")
	}

	cmd, err := commands.NewUpdateProductCommand(productID, actor, req.Name, req.Description, stock, price)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.updateProductHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProductResponse(updated))
}

// DeleteProduct handles DELETE /api/v1/products/:id - soft-deletes an owned
// listing.
func (s *Server) DeleteProduct(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid product id")
	}

	cmd, err := commands.NewDeleteProductCommand(productID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.deleteProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
