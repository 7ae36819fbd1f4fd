package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/hwickes/restyle-pos/app/helpers"
	"github.com/hwickes/restyle-pos/app/middlewares"
	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/repositories"
	"github.com/hwickes/restyle-pos/app/utils/renderer"
	"github.com/hwickes/restyle-pos/app/utils/sessions"
)

type AuthHandler struct {
	userRepo repositories.UserRepositoryImpl
	sessions sessions.SessionStore
}

func NewAuthHandler(userRepo repositories.UserRepositoryImpl, store sessions.SessionStore) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, sessions: store}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		renderer.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		log.Printf("Login: lookup failed: %v", err)
		renderer.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	if user == nil || !helpers.CheckPassword(user.Password, req.Password) {
		renderer.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.sessions.SetUserID(w, r, user.ID); err != nil {
		log.Printf("Login: failed to save session: %v", err)
		renderer.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	renderer.JSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearSession(w, r); err != nil {
		log.Printf("Logout: failed to clear session: %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middlewares.CurrentUser(r.Context())
	if user == nil {
		renderer.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	renderer.JSON(w, http.StatusOK, toUserResponse(user))
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=staff owner"`
}

// Register creates a till account. Routed behind the owner guard.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderer.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		renderer.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	hashed, err := helpers.HashPassword(req.Password)
	if err != nil {
		log.Printf("Register: failed to hash password: %v", err)
		renderer.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}
	user := &models.User{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		Role:     role,
	}
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		renderer.Error(w, http.StatusConflict, helpers.TranslateDBError(err))
		return
	}

	renderer.JSON(w, http.StatusCreated, toUserResponse(user))
}
