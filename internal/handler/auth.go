package handler

import (
	"net/http"

	"github.com/taskboard/taskboard-go/internal/middleware"
	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register handles POST /auth/register requests.
func (h *AuthHandler) Register(r *http.Request) (int, any, error) {
	resp, err := h.service.Register(r.Context(), *bound[model.RegisterRequest](r))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, resp, nil
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(r *http.Request) (int, any, error) {
	resp, err := h.service.Login(r.Context(), *bound[model.LoginRequest](r))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, resp, nil
}

// Me handles GET /auth/me requests.
func (h *AuthHandler) Me(r *http.Request) (int, any, error) {
	id, err := caller(r)
	if err != nil {
		return 0, nil, err
	}

	resp, err := h.service.GetUser(r.Context(), id.ID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, resp, nil
}

// caller returns the authenticated identity set by middleware.Authenticate.
func caller(r *http.Request) (model.Identity, error) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return model.Identity{}, middleware.ErrAuthRequired
	}
	return id, nil
}
