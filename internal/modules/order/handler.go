package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the order endpoints; mutating routes pass through
// the manage middleware.
func (h *Handler) RegisterRoutes(r chi.Router, manage func(http.Handler) http.Handler) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)   // GET    /api/v1/orders
		r.Get("/{id}", h.getOrder) // GET    /api/v1/orders/{id}

		r.With(manage).Post("/", h.createOrder)       // POST   /api/v1/orders
		r.With(manage).Put("/{id}", h.updateOrder)    // PUT    /api/v1/orders/{id}
		r.With(manage).Delete("/{id}", h.deleteOrder) // DELETE /api/v1/orders/{id}
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		respondOrderErr(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondOrderErr(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateOrder(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondOrderErr(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondOrderErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "order deleted"})
}

func respondOrderErr(w http.ResponseWriter, err error) {
	var code int
	switch {
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrCustomerNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrInactiveCustomer):
		code = http.StatusUnprocessableEntity
	default:
		code = http.StatusBadRequest
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
