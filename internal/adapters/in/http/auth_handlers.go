package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registeredResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func toTokenPairResponse(pair commands.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}

// Register handles POST /api/v1/auth/register - creates an account.
func (s *Server) Register(ctx echo.Context) error {
	var req registerRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	role := user.Role(req.Role)
	if req.Role == "" {
		role = user.RoleCustomer
	}

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), req.Name, req.Email, req.Password, role)
	if err != nil {
		return respondError(ctx, err)
	}

	account, err := s.registerUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, registeredResponse{
		ID:        account.ID().String(),
		Name:      account.Name(),
		Email:     account.Email(),
		Role:      account.Role().String(),
		Balance:   account.Balance().String(),
		CreatedAt: account.CreatedAt(),
	})
}

// Login handles POST /api/v1/auth/login - exchanges credentials for tokens.
func (s *Server) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	pair, err := s.loginHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTokenPairResponse(pair))
}

// Refresh handles POST /api/v1/auth/refresh - rotates a refresh token.
func (s *Server) Refresh(ctx echo.Context) error {
	var req refreshRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRefreshTokenCommand(req.RefreshToken)
	if err != nil {
		return respondError(ctx, err)
	}

	pair, err := s.refreshTokenHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTokenPairResponse(pair))
}

// Logout handles POST /api/v1/auth/logout - revokes the presented refresh
// token, ending the session server-side.
func (s *Server) Logout(ctx echo.Context) error {
	var req refreshRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewLogoutCommand(req.RefreshToken)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.logoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAccount handles GET /api/v1/account - the caller's own profile.
func (s *Server) GetAccount(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondBadRequest(ctx, "missing actor")
	}

	query, err := queries.NewGetAccountQuery(actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getAccountHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}
