package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iamshihab2020/omnicore-pos/internal/checkout"
	"github.com/iamshihab2020/omnicore-pos/internal/keymap"
)

func (s *Server) PreviewReceipt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(s.session.RenderReceipt())); err != nil {
		return
	}
}

// HandleKey feeds one keyboard event into the command layer and reports
// whether it was consumed, so the UI knows to preventDefault.
func (s *Server) HandleKey(w http.ResponseWriter, r *http.Request) {
	var ev keymap.KeyEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	handled := s.keys.Handle(ev)
	if handled {
		s.persistCartSnapshot()
	}
	respondJSON(w, http.StatusOK, map[string]bool{"handled": handled})
}

func (s *Server) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := s.session.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty, nothing to checkout")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "checkout failed")
		return
	}

	s.dropCartSnapshot()
	respondJSON(w, http.StatusCreated, order)
}

func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	if s.orders == nil {
		respondError(w, http.StatusNotFound, "not_found", "order history is not enabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	recent, err := s.orders.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}
	respondJSON(w, http.StatusOK, recent)
}
