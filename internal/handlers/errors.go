package handlers

import (
	"errors"
	"log"
	"net/http"

	"bloglist/internal/auth"
	"bloglist/internal/database"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenMissing       = errors.New("token missing")
	ErrNotOwner           = errors.New("only the owner can delete a blog")
)

// ValidationError marks malformed or missing request input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// writeError is the single place internal error kinds are translated to HTTP
// status codes and structured bodies. Handlers return every expected failure
// through here instead of mapping statuses themselves.
func writeError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve), errors.Is(err, database.ErrUsernameTaken):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenMissing),
		errors.Is(err, ErrNotOwner),
		errors.Is(err, auth.ErrTokenInvalid):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, database.ErrBlogNotFound), errors.Is(err, database.ErrUserNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
