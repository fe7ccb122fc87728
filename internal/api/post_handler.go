package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/quill-api/internal/service"
)

// PostHandler serves /api/posts.
type PostHandler struct {
	posts service.PostService
}

func NewPostHandler(posts service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Routes mounts the handler on r.
func (h *PostHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/slug/{slug}", h.GetBySlug)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Put("/{id}/publish", h.Publish)
	r.Put("/{id}/unpublish", h.Unpublish)
}

// List handles GET /api/posts with the optional authorId, categoryId, tagId
// and published filters.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePostFilter(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	posts, err := h.posts.GetAll(r.Context(), filter)
	respond(w, r, http.StatusOK, posts, err)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.PostCreateRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	post, err := h.posts.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, post, err)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	post, err := h.posts.GetByID(r.Context(), id)
	respond(w, r, http.StatusOK, post, err)
}

func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	respond(w, r, http.StatusOK, post, err)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req service.PostUpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	post, err := h.posts.Update(r.Context(), id, req)
	respond(w, r, http.StatusOK, post, err)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondNoContent(w, r, h.posts.Delete(r.Context(), id))
}

func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	post, err := h.posts.Publish(r.Context(), id)
	respond(w, r, http.StatusOK, post, err)
}

func (h *PostHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	post, err := h.posts.Unpublish(r.Context(), id)
	respond(w, r, http.StatusOK, post, err)
}
