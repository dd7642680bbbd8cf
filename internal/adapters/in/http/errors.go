package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// respondError translates application errors into HTTP responses. Anything
// not recognized is a 500 with a generic body so internals do not leak.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return ctx.JSON(http.StatusUnauthorized, ErrorBody{
			Type:    "unauthorized",
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInsufficientFund):
		return ctx.JSON(http.StatusPaymentRequired, ErrorBody{
			Type:    "insufficient_fund",
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, ErrorBody{
			Type:    "forbidden",
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorBody{
			Type:    "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrMismatchMerchant):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorBody{
			Type:    "mismatch_merchant",
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConcurrencyConflict), errors.Is(err, errs.ErrVersionIsInvalid):
		// Surfaced only when retries are exhausted.
		return ctx.JSON(http.StatusConflict, ErrorBody{
			Type:    "conflict",
			Message: "concurrent modification, retry the request",
		})
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorBody{
			Type:    "validation",
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorBody{
			Type:    "internal",
			Message: "internal server error",
		})
	}
}

// respondBadRequest is for malformed transport input: unparseable bodies,
// non-UUID path params.
func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorBody{
		Type:    "bad_request",
		Message: message,
	})
}
