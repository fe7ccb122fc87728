package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/service"
)

// CategoryHandler serves /api/categories.
type CategoryHandler struct {
	categories service.CategoryService
}

func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Routes mounts the handler on r.
func (h *CategoryHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/search", h.Search)
	r.Get("/name/{name}", h.GetByName)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetAll(r.Context())
	respond(w, r, http.StatusOK, categories, err)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CategoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	category, err := h.categories.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, category, err)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	category, err := h.categories.GetByID(r.Context(), id)
	respond(w, r, http.StatusOK, category, err)
}

func (h *CategoryHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetByName(r.Context(), chi.URLParam(r, "name"))
	respond(w, r, http.StatusOK, category, err)
}

func (h *CategoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.Search(r.Context(), r.URL.Query().Get("keyword"))
	respond(w, r, http.StatusOK, categories, err)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req service.CategoryUpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	category, err := h.categories.Update(r.Context(), id, req)
	respond(w, r, http.StatusOK, category, err)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondNoContent(w, r, h.categories.Delete(r.Context(), id))
}

// respond writes body with status, or the error envelope when err is set.
func respond(w http.ResponseWriter, r *http.Request, status int, body any, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, status, body)
}

func respondNoContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
