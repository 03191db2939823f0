package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloggers-api/internal/api/shared"
	"github.com/phrazzld/bloggers-api/internal/platform/logger"
	"github.com/phrazzld/bloggers-api/internal/service/auth"
	"github.com/phrazzld/bloggers-api/internal/view"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	auth   *auth.Service
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(svc *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, logger: handlerLogger(logger, "auth_handler")}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req.LoginOrEmail, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{AccessToken: token})
}

// Me handles GET /auth/me. Requires bearer auth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view.FromMe(user))
}

// Register handles POST /auth/registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.auth.Register(r.Context(), req.Login, req.Email, req.Password); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("registration accepted")
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmRegistration handles POST /auth/registration-confirmation.
func (h *AuthHandler) ConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	var req ConfirmationRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.auth.ConfirmRegistration(r.Context(), req.Code); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResendConfirmation handles POST /auth/registration-email-resending.
func (h *AuthHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req EmailResendingRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.auth.ResendConfirmation(r.Context(), req.Email); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
