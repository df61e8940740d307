package handlers

import (
	"RGFlow/internal/config"
	"RGFlow/internal/middleware"
	"RGFlow/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler — вход, выход и статус сессии.
type UserHandler struct {
	SessionService *service.SessionService
	Logger         *zap.SugaredLogger
	Config         *config.Config
}

func NewUserHandler(sessionService *service.SessionService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{SessionService: sessionService, Logger: logger, Config: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login проверяет учётные данные и выставляет cookie сессии.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	email, err := h.SessionService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, "Login", err)
		return
	}
	if err := middleware.SetLoginCookie(w, email, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: cannot set cookie", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"email": email, "logged": true})
}

type logoutRequest struct {
	Confirm bool `json:"confirm"`
}

// Logout снимает cookie только при явном подтверждении.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
	}
	if !req.Confirm {
		http.Error(w, "confirmation required", http.StatusPreconditionRequired)
		return
	}
	middleware.ClearLoginCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Status сообщает, есть ли сессия.
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmailFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"email": email, "logged": ok})
}
