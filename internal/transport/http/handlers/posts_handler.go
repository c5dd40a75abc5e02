package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rudio1/api-meals/internal/domain/enums"
	"github.com/Rudio1/api-meals/internal/domain/model"
	"github.com/Rudio1/api-meals/internal/services/content"
	"github.com/Rudio1/api-meals/internal/transport/http/dto"
	httperrors "github.com/Rudio1/api-meals/internal/transport/http/errors"
)

type PostsHandler struct {
	service  *content.PostService
	failures Failures
}

func NewPostsHandler(service *content.PostService, failures Failures) *PostsHandler {
	return &PostsHandler{service: service, failures: failures}
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := content.PostFilter{
		Status: enums.PostStatus(r.URL.Query().Get("status")),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if author := queryInt(r, "author_id"); author > 0 {
		filter.AuthorID = int64(author)
	}

	posts, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.ListResponse[model.Post]{Items: posts, Total: len(posts)})
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, post)
}

func (h *PostsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, post)
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	post, err := h.service.Create(r.Context(), identity, content.PostInput{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Status:     enums.PostStatus(req.Status),
	})
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, post)
}

func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	var req dto.UpdatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	patch := content.PostPatch{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		CoverImage: req.CoverImage,
	}
	if req.Status != nil {
		status := enums.PostStatus(*req.Status)
		patch.Status = &status
	}

	post, err := h.service.Update(r.Context(), identity, id, patch)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, post)
}

// Delete archives the post; posts are never removed outright.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	if _, err := h.service.Archive(r.Context(), identity, id); err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "post archived"})
}
