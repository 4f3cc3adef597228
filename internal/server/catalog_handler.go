package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iamshihab2020/omnicore-pos/internal/catalog"
	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

func (s *Server) ListCounters(w http.ResponseWriter, r *http.Request) {
	counters, err := s.catalog.ActiveCounters(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list counters")
		return
	}
	respondJSON(w, http.StatusOK, counters)
}

// SelectCounter switches the terminal to another counter. The open cart is
// cleared along with its cached snapshot, since the menu changes under it.
func (s *Server) SelectCounter(w http.ResponseWriter, r *http.Request) {
	counterID := chi.URLParam(r, "counter_id")
	if counterID == "" {
		respondError(w, http.StatusBadRequest, "invalid_counter_id", "counter_id is required")
		return
	}

	counter, err := s.catalog.GetCounter(r.Context(), counterID)
	if err != nil {
		if errors.Is(err, catalog.ErrCounterNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "counter not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load counter")
		return
	}

	s.dropCartSnapshot()
	s.session.SetCounter(*counter)
	respondJSON(w, http.StatusOK, counter)
}

// ListProducts returns the selected counter's active menu, optionally
// filtered by a case-insensitive search over name and category.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := s.session.Products()

	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if query == "" {
		respondJSON(w, http.StatusOK, products)
		return
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.CategoryName), query) {
			filtered = append(filtered, p)
		}
	}
	respondJSON(w, http.StatusOK, filtered)
}
