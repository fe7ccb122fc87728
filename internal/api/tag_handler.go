package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/quill-api/internal/service"
)

// TagHandler serves /api/tags.
type TagHandler struct {
	tags service.TagService
}

func NewTagHandler(tags service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// Routes mounts the handler on r.
func (h *TagHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/search", h.Search)
	r.Get("/name/{name}", h.GetByName)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.GetAll(r.Context())
	respond(w, r, http.StatusOK, tags, err)
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.TagRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	tag, err := h.tags.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, tag, err)
}

func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	tag, err := h.tags.GetByID(r.Context(), id)
	respond(w, r, http.StatusOK, tag, err)
}

func (h *TagHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	tag, err := h.tags.GetByName(r.Context(), chi.URLParam(r, "name"))
	respond(w, r, http.StatusOK, tag, err)
}

func (h *TagHandler) Search(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.Search(r.Context(), r.URL.Query().Get("keyword"))
	respond(w, r, http.StatusOK, tags, err)
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req service.TagRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	tag, err := h.tags.Update(r.Context(), id, req)
	respond(w, r, http.StatusOK, tag, err)
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondNoContent(w, r, h.tags.Delete(r.Context(), id))
}
