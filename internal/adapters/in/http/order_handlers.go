package http

import (
	"math/big"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type placeOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
}

type placeOrderRequest struct {
	LineItems []placeOrderItemRequest `json:"line_items"`
}

type orderResponse struct {
	ID         string                    `json:"id"`
	UserID     string                    `json:"user_id"`
	MerchantID string                    `json:"merchant_id"`
	CourierID  *string                   `json:"courier_id"`
	Price      string                    `json:"price"`
	Status     []queries.StatusEntryView `json:"status"`
	Products   []queries.ProductLineView `json:"products"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

func toOrderResponse(o *order.Order) orderResponse {
	var courierID *string
	if o.CourierID() != nil {
		s := o.CourierID().String()
		courierID = &s
	}

	entries := o.History().Entries()
	status := make([]queries.StatusEntryView, len(entries))
	for i, entry := range entries {
		status[i] = queries.StatusEntryView{Type: entry.Type.String(), Date: entry.Date}
	}

	items := o.LineItems()
	products := make([]queries.ProductLineView, len(items))
	for i, item := range items {
		products[i] = queries.ProductLineView{ID: item.ProductID().String(), Quantity: item.Quantity().String()}
	}

	return orderResponse{
		ID:         o.ID().String(),
		UserID:     o.BuyerID().String(),
		MerchantID: o.MerchantID().String(),
		CourierID:  courierID,
		Price:      o.Price().String(),
		Status:     status,
		Products:   products,
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

// PlaceOrder handles POST /api/v1/orders - the atomic order placement.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	items := make([]commands.PlaceOrderItem, 0, len(req.LineItems))
	for _, it := range req.LineItems {
		productID, err := kernel.UUIDFromString(it.ProductID)
		if err != nil {
			return respondBadRequest(ctx, "invalid product id")
		}
		quantity, ok := new(big.Int).SetString(it.Quantity, 10)
		if !ok {
			return respondBadRequest(ctx, "invalid quantity")
		}

		item, err := commands.NewPlaceOrderItem(productID, quantity)
		if err != nil {
			return respondError(ctx, err)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), actor.ID, items)
	if err != nil {
		return respondError(ctx, err)
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(placed))
}

// GetOrders handles GET /api/v1/orders - the caller's purchases.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	query, err := queries.NewGetOrdersQuery(actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views)
}

// GetOrder handles GET /api/v1/orders/:id - one purchase, buyer scope.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID, actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// GetSales handles GET /api/v1/sales - orders where the caller is the
// merchant.
func (s *Server) GetSales(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	query, err := queries.NewGetSalesQuery(actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.getSalesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views)
}

// GetSale handles GET /api/v1/sales/:id - one sale, merchant scope.
func (s *Server) GetSale(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetSaleQuery(orderID, actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getSaleHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// ConfirmProcessing handles POST /api/v1/sales/:id/confirm - the merchant
// handoff to couriers. Responds with the advanced order.
func (s *Server) ConfirmProcessing(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewConfirmProcessingCommand(orderID, actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	confirmed, err := s.confirmProcessingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(confirmed))
}
