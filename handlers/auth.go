package handlers

import (
	"errors"
	"net/http"

	"hrms/audit"
	"hrms/auth"
	"hrms/middleware"
	"hrms/models"
	"hrms/store"

	"go.uber.org/zap"
)

type AuthHandler struct {
	store    store.Store
	tokens   *auth.TokenService
	recorder *audit.Recorder
	logger   *zap.Logger
}

func NewAuthHandler(st store.Store, tokens *auth.TokenService, recorder *audit.Recorder, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: st, tokens: tokens, recorder: recorder, logger: logger}
}

type registerRequest struct {
	OrgName   string `json:"orgName"`
	AdminName string `json:"adminName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the profile shape returned by register, login and me.
// The credential hash never leaves the server.
type userResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	OrganisationID   uint   `json:"organisationId"`
	OrganisationName string `json:"organisationName"`
}

// Register creates an organisation together with its admin user and the
// first audit entry. The three writes share one transaction: a duplicate
// email leaves no dangling organisation behind.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.OrgName == "" || req.AdminName == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if len(req.Password) < 6 {
		respondMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	if _, err := h.store.UserByEmail(r.Context(), req.Email); err == nil {
		respondMessage(w, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondInternal(w, h.logger, "Registration failed", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondInternal(w, h.logger, "Registration failed", err)
		return
	}

	org := &models.Organisation{Name: req.OrgName}
	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.AdminName,
	}
	entry := audit.NewEntry(0, 0, audit.ActionOrganisationCreated, map[string]interface{}{
		"orgName":    req.OrgName,
		"adminEmail": req.Email,
	})

	if err := h.store.Register(r.Context(), org, user, entry); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			respondMessage(w, http.StatusConflict, "Email already registered")
			return
		}
		respondInternal(w, h.logger, "Registration failed", err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respondInternal(w, h.logger, "Registration failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Organisation and admin user created successfully",
		"token":   token,
		"user": userResponse{
			ID:               user.ID,
			Name:             user.Name,
			Email:            user.Email,
			OrganisationID:   org.ID,
			OrganisationName: org.Name,
		},
	})
}

// Login authenticates with email and password. Unknown email and wrong
// password are indistinguishable to the caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.store.UserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Login failed", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	err = h.recorder.Record(r.Context(), user.OrganisationID, user.ID, audit.ActionUserLogin, map[string]interface{}{
		"email": user.Email,
	})
	if err != nil {
		respondInternal(w, h.logger, "Login failed", err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respondInternal(w, h.logger, "Login failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user": userResponse{
			ID:               user.ID,
			Name:             user.Name,
			Email:            user.Email,
			OrganisationID:   user.OrganisationID,
			OrganisationName: user.Organisation.Name,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	err := h.recorder.Record(r.Context(), claims.OrgID, claims.UserID, audit.ActionUserLogout, map[string]interface{}{
		"email": claims.Email,
	})
	if err != nil {
		respondInternal(w, h.logger, "Logout failed", err)
		return
	}

	respondMessage(w, http.StatusOK, "Logout successful")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	user, err := h.store.UserByID(r.Context(), claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Failed to get user", err)
		return
	}

	respondJSON(w, http.StatusOK, userResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		OrganisationID:   user.OrganisationID,
		OrganisationName: user.Organisation.Name,
	})
}
