package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"unauthorized", errs.NewUnauthorizedError("invalid credentials"), nethttp.StatusUnauthorized, "unauthorized"},
		{"insufficient fund", errs.NewInsufficientFundError("100", "200"), nethttp.StatusPaymentRequired, "insufficient_fund"},
		{"forbidden", errs.NewForbiddenError(), nethttp.StatusForbidden, "forbidden"},
		{"not found", errs.NewObjectNotFoundError("product", "x"), nethttp.StatusNotFound, "not_found"},
		{"mismatch merchant", errs.NewMismatchMerchantError("a", "b"), nethttp.StatusUnprocessableEntity, "mismatch_merchant"},
		{"validation", errs.NewValueIsInvalidError("price"), nethttp.StatusUnprocessableEntity, "validation"},
		{"required", errs.NewValueIsRequiredError("name"), nethttp.StatusUnprocessableEntity, "validation"},
		{"version conflict", errs.NewVersionIsInvalidError("order", "x"), nethttp.StatusConflict, "conflict"},
		{"unknown", errors.New("boom"), nethttp.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest(nethttp.MethodGet, "/", nil), rec)

			require.NoError(t, respondError(ctx, tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body.Type)
		})
	}
}

func TestRespondError_InternalHidesDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(nethttp.MethodGet, "/", nil), rec)

	require.NoError(t, respondError(ctx, errors.New("pq: connection refused to 10.0.0.3")))

	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

type stubSigner struct {
	claims ports.TokenClaims
	err    error
}

func (s stubSigner) SignAccess(kernel.UUID, user.Role) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (s stubSigner) SignRefresh(kernel.UUID, kernel.UUID) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (s stubSigner) ParseAccess(string) (ports.TokenClaims, error) {
	return s.claims, s.err
}

func (s stubSigner) ParseRefresh(string) (kernel.UUID, kernel.UUID, error) {
	return kernel.UUID{}, kernel.UUID{}, nil
}

func TestAuthMiddleware(t *testing.T) {
	userID := kernel.NewUUID()

	next := func(ctx echo.Context) error {
		actor, ok := actorFromContext(ctx)
		require.True(t, ok)
		assert.True(t, actor.ID.IsEqual(userID))
		assert.Equal(t, user.RoleCourier, actor.Role)
		return ctx.NoContent(nethttp.StatusOK)
	}

	t.Run("valid token reaches the handler", func(t *testing.T) {
		signer := stubSigner{claims: ports.TokenClaims{UserID: userID, Role: user.RoleCourier}}
		e := echo.New()
		req := httptest.NewRequest(nethttp.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer sometoken")
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		require.NoError(t, AuthMiddleware(signer)(next)(ctx))
		assert.Equal(t, nethttp.StatusOK, rec.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		signer := stubSigner{claims: ports.TokenClaims{UserID: userID, Role: user.RoleCourier}}
		e := echo.New()
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(nethttp.MethodGet, "/", nil), rec)

		require.NoError(t, AuthMiddleware(signer)(next)(ctx))
		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("rejected token never reaches the handler", func(t *testing.T) {
		signer := stubSigner{err: errs.NewUnauthorizedError("invalid token")}
		e := echo.New()
		req := httptest.NewRequest(nethttp.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer expired")
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		called := false
		handler := func(ctx echo.Context) error {
			called = true
			return nil
		}

		require.NoError(t, AuthMiddleware(signer)(handler)(ctx))
		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}

func TestPlaceOrderRequest_Binding(t *testing.T) {
	body := `{"line_items": [{"product_id": "a", "quantity": "3"}, {"product_id": "b", "quantity": "1"}]}`

	var req placeOrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Len(t, req.LineItems, 2)
	assert.Equal(t, "a", req.LineItems[0].ProductID)
	assert.Equal(t, "3", req.LineItems[0].Quantity)
}

func TestChangeDeliveryRequest_Binding(t *testing.T) {
	var req changeDeliveryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"type": "WaitingForCourier"}`), &req))
	assert.Equal(t, "WaitingForCourier", req.Type)
}
