package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity string `json:"quantity"`
}

type cartItemResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	MerchantID string    `json:"merchant_id"`
	Quantity   string    `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toCartItemResponse(item *cart.Item) cartItemResponse {
	return cartItemResponse{
		ID:         item.ID().String(),
		ProductID:  item.ProductID().String(),
		MerchantID: item.MerchantID().String(),
		Quantity:   item.Quantity().String(),
		CreatedAt:  item.CreatedAt(),
		UpdatedAt:  item.UpdatedAt(),
	}
}

// GetCart handles GET /api/v1/carts - the caller's cart with product data
// joined in.
func (s *Server) GetCart(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	query, err := queries.NewGetCartQuery(actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views)
}

// AddCartItem handles POST /api/v1/carts - puts a product into the cart.
func (s *Server) AddCartItem(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	var req addCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return respondBadRequest(ctx, "invalid product id")
	}
	quantity, err := kernel.QuantityFromString(req.Quantity)
	if err != nil {
		return respondBadRequest(ctx, "invalid quantity")
	}

	cmd, err := commands.NewAddCartItemCommand(kernel.NewUUID(), actor.ID, productID, quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	item, err := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toCartItemResponse(item))
}

// UpdateCartItem handles PATCH /api/v1/carts/:id - changes an entry's
// quantity.
func (s *Server) UpdateCartItem(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid cart item id")
	}

	var req updateCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	quantity, err := kernel.QuantityFromString(req.Quantity)
	if err != nil {
		return respondBadRequest(ctx, "invalid quantity")
	}

	cmd, err := commands.NewUpdateCartItemCommand(itemID, actor.ID, quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	item, err := s.updateCartItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCartItemResponse(item))
}

// RemoveCartItem handles DELETE /api/v1/carts/:id - removes an entry.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid cart item id")
	}

	cmd, err := commands.NewRemoveCartItemCommand(itemID, actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.removeCartItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
