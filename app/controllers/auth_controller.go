// Package controllers translates HTTP requests into service calls and
// service results into JSON envelopes. All user-facing wording lives
// here, next to the status code that carries it.
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/product-catalog/api/app/models"
	"github.com/product-catalog/api/app/requests"
	"github.com/product-catalog/api/app/services"
	"github.com/product-catalog/api/config"
	"github.com/product-catalog/api/pkg/logger"
	"github.com/product-catalog/api/pkg/middleware"
	"github.com/product-catalog/api/pkg/response"
	"github.com/product-catalog/api/pkg/validate"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// tokenPayload is the envelope for responses that carry an access token.
type tokenPayload struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	User        *models.User `json:"user,omitempty"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
}

func newTokenPayload(token string) tokenPayload {
	return tokenPayload{
		Success:     true,
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   config.JWTTTLMinutes() * 60,
	}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req requests.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if errs := validate.Struct(req); validate.HasErrors(errs) {
		response.ValidationError(w, http.StatusBadRequest, errs)
		return
	}

	user, token, err := c.auth.Register(req)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		response.ValidationError(w, http.StatusBadRequest, map[string][]string{
			"email": {"The email has already been taken."},
		})
	case err != nil:
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Falha ao registrar usuário.")
	default:
		payload := newTokenPayload(token)
		payload.Message = "Usuário registrado com sucesso!"
		payload.User = user
		response.JSON(w, http.StatusCreated, payload)
	}
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req requests.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if errs := validate.Struct(req); validate.HasErrors(errs) {
		response.ValidationError(w, http.StatusUnprocessableEntity, errs)
		return
	}

	token, err := c.auth.Login(req)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Credenciais inválidas.")
	case err != nil:
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Não foi possível gerar o token de acesso.")
	default:
		response.JSON(w, http.StatusOK, newTokenPayload(token))
	}
}

// Logout handles POST /api/auth/logout. The Auth middleware has already
// validated the token; revoking it blacklists the jti until expiry.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromCtx(r.Context())

	if err := c.auth.Logout(token); err != nil {
		logger.WithCtx(r.Context()).Error("logout failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Falha ao fazer logout, por favor tente novamente.")
		return
	}
	response.SuccessMessage(w, "Logout realizado com sucesso.", nil)
}

// Refresh handles POST /api/auth/refresh: revokes the presented token and
// returns a fresh one.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromCtx(r.Context())

	fresh, err := c.auth.Refresh(token)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Não foi possível atualizar o token, por favor faça login novamente.")
		return
	}
	response.JSON(w, http.StatusOK, newTokenPayload(fresh))
}

// Me handles GET /api/auth/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Error(w, http.StatusUnauthorized, "Usuário não autenticado ou token inválido.")
		return
	}

	// every failure here, including a store error or an account deleted
	// after the token was issued, reads as "not authenticated"
	user, err := c.auth.Me(claims.UserID)
	if err != nil || user == nil {
		if err != nil {
			logger.WithCtx(r.Context()).Error("me lookup failed", "error", err)
		}
		response.Error(w, http.StatusUnauthorized, "Usuário não autenticado ou token inválido.")
		return
	}
	response.Success(w, user)
}
