package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type changeDeliveryRequest struct {
	Type string `json:"type"`
}

// GetDeliveries handles GET /api/v1/deliveries - the courier's board:
// unclaimed orders plus the caller's own deliveries.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	query, err := queries.NewGetDeliveriesQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views)
}

// GetDelivery handles GET /api/v1/deliveries/:id - one delivery, courier
// visibility.
func (s *Server) GetDelivery(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetDeliveryQuery(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// PickupOrder handles POST /api/v1/deliveries/:id/pickup - claims an order
// for the calling courier.
func (s *Server) PickupOrder(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewPickupOrderCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.pickupOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeDelivery handles PATCH /api/v1/deliveries/:id - a courier-requested
// status transition.
func (s *Server) ChangeDelivery(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var req changeDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	requested, err := order.ParseStatus(req.Type)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeDeliveryCommand(orderID, actor, requested)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.changeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
