package handlers

import (
	"net/http"

	"github.com/Rudio1/api-meals/internal/domain/model"
	"github.com/Rudio1/api-meals/internal/services/content"
	"github.com/Rudio1/api-meals/internal/transport/http/dto"
	httperrors "github.com/Rudio1/api-meals/internal/transport/http/errors"
)

type CommentsHandler struct {
	comments *content.CommentService
	replies  *content.ReplyService
	failures Failures
}

func NewCommentsHandler(comments *content.CommentService, replies *content.ReplyService, failures Failures) *CommentsHandler {
	return &CommentsHandler{comments: comments, replies: replies, failures: failures}
}

func (h *CommentsHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), postID)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.ListResponse[model.Comment]{Items: comments, Total: len(comments)})
}

func (h *CommentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	comment, err := h.comments.Get(r.Context(), id)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, comment)
}

func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	comment, err := h.comments.Create(r.Context(), identity, content.CommentInput{
		PostID:  req.PostID,
		Comment: req.Comment,
		Rating:  req.Rating,
	})
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, comment)
}

func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	var req dto.UpdateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	comment, err := h.comments.Update(r.Context(), identity, id, content.CommentPatch{
		Comment: req.Comment,
		Rating:  req.Rating,
	})
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, comment)
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	if err := h.comments.Delete(r.Context(), identity, id); err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "comment deleted"})
}

func (h *CommentsHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	replies, err := h.replies.ListByComment(r.Context(), commentID)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.ListResponse[model.Reply]{Items: replies, Total: len(replies)})
}

func (h *CommentsHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	reply, err := h.replies.Create(r.Context(), identity, req.CommentID, req.Reply)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, reply)
}

func (h *CommentsHandler) GetReply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	reply, err := h.replies.Get(r.Context(), id)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, reply)
}

func (h *CommentsHandler) UpdateReply(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	var req dto.UpdateReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	reply, err := h.replies.Update(r.Context(), identity, id, req.Reply)
	if err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, reply)
}

func (h *CommentsHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "INVALID_ID", "id must be a positive number")
		return
	}

	if err := h.replies.Delete(r.Context(), identity, id); err != nil {
		h.failures.Content(w, r, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "reply deleted"})
}
