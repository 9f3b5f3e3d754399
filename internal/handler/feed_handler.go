package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"socialfeed/internal/models"
	"socialfeed/internal/service"
)

type PostsResponse struct {
	Posts []models.Post `json:"posts"`
	Error string        `json:"error,omitempty"`
}

func (h *Handlers) GetInstagramPosts(w http.ResponseWriter, r *http.Request) {
	h.servePosts(w, r, string(models.SourceInstagram))
}

func (h *Handlers) GetLinkedInPosts(w http.ResponseWriter, r *http.Request) {
	h.servePosts(w, r, string(models.SourceLinkedIn))
}

// GetPosts - обработчик /api/posts/{source}
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	h.servePosts(w, r, mux.Vars(r)["source"])
}

func (h *Handlers) servePosts(w http.ResponseWriter, r *http.Request, source string) {
	defer func() {
		if rec := recover(); rec != nil {
			h.Logger.WithField("source", source).Errorf("Паника при чтении постов: %v", rec)
			WriteJSON(w, PostsResponse{
				Posts: []models.Post{},
				Error: fmt.Sprintf("внутренняя ошибка: %v", rec),
			}, http.StatusInternalServerError)
		}
	}()

	result, err := h.FeedService.Posts(r.Context(), source)
	if err != nil {
		var invalid *service.InvalidSourceError
		if errors.As(err, &invalid) {
			WriteJSON(w, PostsResponse{Posts: []models.Post{}, Error: err.Error()}, http.StatusNotFound)
			return
		}
		WriteJSON(w, PostsResponse{Posts: []models.Post{}, Error: err.Error()}, http.StatusOK)
		return
	}

	posts := result.Posts
	if posts == nil {
		posts = []models.Post{}
	}

	WriteJSON(w, PostsResponse{Posts: posts, Error: result.Error}, http.StatusOK)
}
