package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/quill-api/internal/service"
)

// CommentHandler serves /api/comments. Every route requires an
// authenticated principal.
type CommentHandler struct {
	comments service.CommentService
}

func NewCommentHandler(comments service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Routes mounts the handler on r.
func (h *CommentHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/post/{postId}", h.ListByPost)
	r.Get("/author/{authorId}", h.ListByAuthor)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.GetAll(r.Context())
	respond(w, r, http.StatusOK, comments, err)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CommentCreateRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	comment, err := h.comments.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, comment, err)
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	comment, err := h.comments.GetByID(r.Context(), id)
	respond(w, r, http.StatusOK, comment, err)
}

func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathID(r, "postId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	comments, err := h.comments.GetByPostID(r.Context(), postID)
	respond(w, r, http.StatusOK, comments, err)
}

func (h *CommentHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := getPathID(r, "authorId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	comments, err := h.comments.GetByAuthorID(r.Context(), authorID)
	respond(w, r, http.StatusOK, comments, err)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondNoContent(w, r, h.comments.Delete(r.Context(), id))
}
