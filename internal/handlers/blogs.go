package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type blogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, &ValidationError{Msg: "malformed id"}
	}
	return id, nil
}

func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.ListWithUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, blogs)
}

func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	if userID == 0 {
		writeError(w, ErrTokenMissing)
		return
	}

	var input blogRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, &ValidationError{Msg: "invalid request body"})
		return
	}

	if input.Title == "" || input.URL == "" {
		writeError(w, &ValidationError{Msg: "title and url are required"})
		return
	}

	likes := 0
	if input.Likes != nil {
		likes = *input.Likes
	}
	if likes < 0 {
		writeError(w, &ValidationError{Msg: "likes must not be negative"})
		return
	}

	blog, err := h.blogs.Create(r.Context(), input.Title, input.Author, input.URL, likes, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, blog)
}

// UpdateBlog replaces the mutable fields of a blog. Unlike DeleteBlog it does
// not check that the caller owns the blog.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var input blogRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, &ValidationError{Msg: "invalid request body"})
		return
	}

	likes := 0
	if input.Likes != nil {
		likes = *input.Likes
	}
	if likes < 0 {
		writeError(w, &ValidationError{Msg: "likes must not be negative"})
		return
	}

	blog, err := h.blogs.Update(r.Context(), id, input.Title, input.Author, input.URL, likes)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, blog)
}

func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	if userID == 0 {
		writeError(w, ErrTokenMissing)
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if blog.User.ID != userID {
		writeError(w, ErrNotOwner)
		return
	}

	if err := h.blogs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
