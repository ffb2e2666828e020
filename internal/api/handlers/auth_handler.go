package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	middleware "github.com/markdave123-py/Sumora/internal/api/middlewares"
	"github.com/markdave123-py/Sumora/internal/models"
)

const tokenTTL = 24 * time.Hour

type Users interface {
	Signup(ctx context.Context, firstName, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

type AuthHandler struct {
	users  Users
	secret string
}

func NewAuthHandler(users Users, jwtSecret string) *AuthHandler {
	return &AuthHandler{users: users, secret: jwtSecret}
}

type signupRequest struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid body"})
		return
	}

	user, err := h.users.Signup(r.Context(), req.FirstName, req.Email, req.Password)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	h.respondWithToken(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid body"})
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	h.respondWithToken(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *models.User) {
	token, err := middleware.IssueToken(h.secret, user.ID, tokenTTL)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, tokenResponse{Token: token, User: user})
}
