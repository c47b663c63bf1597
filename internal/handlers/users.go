package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"bloglist/internal/auth"
	"bloglist/internal/database"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
	ID       int64  `json:"id"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, &ValidationError{Msg: "invalid request body"})
		return
	}

	user, err := h.users.GetByUsername(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			writeError(w, ErrInvalidCredentials)
			return
		}
		writeError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		writeError(w, ErrInvalidCredentials)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, h.cfg.Auth.Secret, h.cfg.Auth.TokenLifetime)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
		ID:       user.ID,
	})
}

type createUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, &ValidationError{Msg: "invalid request body"})
		return
	}

	if len(input.Username) < 3 || len(input.Password) < 3 {
		writeError(w, &ValidationError{Msg: "username and password must be at least 3 characters long"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Create(r.Context(), input.Username, input.Name, string(hash))
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListWithBlogs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}
