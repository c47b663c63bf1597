package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bloglist/internal/auth"
	"bloglist/internal/config"
	"bloglist/internal/database"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	users *database.UserRepository
	blogs *database.BlogRepository
	cfg   *config.Config
}

func New(users *database.UserRepository, blogs *database.BlogRepository, cfg *config.Config) *Handler {
	return &Handler{users: users, blogs: blogs, cfg: cfg}
}

// Router builds the full request pipeline: logging and panic recovery on the
// outside, CORS and token extraction on the /api subtree, then the routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(CorsMiddleware)
		r.Use(h.TokenExtractor)

		// CorsMiddleware already returns 200 for OPTIONS, so this just ensures chi doesn't 404 preflight requests
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})

		r.Post("/login", h.Login)

		r.Get("/users", h.ListUsers)
		r.Post("/users", h.CreateUser)

		r.Get("/blogs", h.ListBlogs)
		r.Post("/blogs", h.CreateBlog)
		r.Put("/blogs/{id}", h.UpdateBlog)
		r.Delete("/blogs/{id}", h.DeleteBlog)
	})

	r.NotFound(unknownEndpoint)
	r.MethodNotAllowed(unknownEndpoint)

	return r
}

func getUserID(r *http.Request) int64 {
	userID, ok := r.Context().Value(userIDKey).(int64)
	if !ok {
		return 0
	}
	return userID
}

// maxLoggedBody bounds how much of a request body ends up in the log.
const maxLoggedBody = 64 * 1024

// RequestLogger logs method, path and body of every inbound request. The
// full body is restored so the handler can read it again; only the logged
// copy is truncated.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		logged := body
		if len(logged) > maxLoggedBody {
			logged = logged[:maxLoggedBody]
		}
		if len(logged) > 0 {
			log.Printf("%s %s %s", r.Method, r.URL.Path, logged)
		} else {
			log.Printf("%s %s", r.Method, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// TokenExtractor verifies a Bearer token when one is present and stores the
// caller's user id in the request context. Requests without an Authorization
// header pass through; handlers that need a caller reject them themselves.
func (h *Handler) TokenExtractor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), h.cfg.Auth.Secret)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unknownEndpoint(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, map[string]string{"error": "unknown endpoint"})
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
