package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct {
	service Service
	images  ImageStore
}

func NewHandler(service Service, images ImageStore) *Handler {
	return &Handler{service: service, images: images}
}

// RegisterRoutes mounts the inventory endpoints. Mutating routes pass through
// the manage middleware so read access alone cannot change stock.
func (h *Handler) RegisterRoutes(r chi.Router, manage func(http.Handler) http.Handler) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/", h.listItems)                  // GET    /api/v1/inventory
		r.Get("/search", h.searchItems)          // GET    /api/v1/inventory/search?q=...
		r.Get("/alerts", h.getAlerts)            // GET    /api/v1/inventory/alerts
		r.Get("/barcode/{code}", h.getByBarcode) // GET    /api/v1/inventory/barcode/{code}
		r.Get("/{id}", h.getItem)                // GET    /api/v1/inventory/{id}

		r.With(manage).Post("/", h.createItem)            // POST   /api/v1/inventory
		r.With(manage).Put("/{id}", h.updateItem)         // PUT    /api/v1/inventory/{id}
		r.With(manage).Delete("/{id}", h.deleteItem)      // DELETE /api/v1/inventory/{id}
		r.With(manage).Post("/{id}/image", h.uploadImage) // POST   /api/v1/inventory/{id}/image
	})
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateBarcode) {
			respond(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) searchItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.SearchItems(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) getAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.GetAlerts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, alerts)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondItemErr(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) getByBarcode(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItemByBarcode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondItemErr(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateBarcode) {
			respond(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		respondItemErr(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondItemErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "item deleted"})
}

// uploadImage attaches an image file to an existing item. Image storage is
// failure-isolated from item state: a persisted item survives a failed upload.
func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "image file is required"})
		return
	}
	defer file.Close()

	url, err := h.images.Save(id, header.Filename, file)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.UpdateItem(r.Context(), id, UpdateItemRequest{ImageURL: &url})
	if err != nil {
		respondItemErr(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func respondItemErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrItemNotFound) {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
