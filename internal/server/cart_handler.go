package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iamshihab2020/omnicore-pos/internal/cart"
	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type SelectionRequestDTO struct {
	ProductID string `json:"product_id"`
}

type TenderRequestDTO struct {
	Amount domain.Decimal `json:"amount"`
	Exact  bool           `json:"exact,omitempty"`
}

type PaymentMethodRequestDTO struct {
	Method string `json:"method"`
}

type OrderTypeRequestDTO struct {
	OrderType string `json:"order_type"`
}

// CartStateDTO is the full terminal view after a mutation: lines, selection,
// banner, derived totals and the payment snapshot.
type CartStateDTO struct {
	Lines         []domain.CartLine  `json:"lines"`
	SelectedID    string             `json:"selected_id,omitempty"`
	Notification  *cart.Notification `json:"notification,omitempty"`
	Totals        domain.Totals      `json:"totals"`
	Tendered      domain.Decimal     `json:"tendered"`
	Change        domain.Decimal     `json:"change"`
	PaymentMethod string             `json:"payment_method"`
	OrderType     string             `json:"order_type"`
	CounterName   string             `json:"counter_name"`
}

func (s *Server) cartState() CartStateDTO {
	totals := s.session.Totals()
	tendered, change := s.payments.Snapshot()
	_, counterName := s.session.Counter()

	state := CartStateDTO{
		Lines:         s.cart.Lines(),
		SelectedID:    s.cart.Selected(),
		Totals:        totals,
		Tendered:      tendered,
		Change:        change,
		PaymentMethod: string(s.session.PaymentMethod()),
		OrderType:     string(s.session.OrderType()),
		CounterName:   counterName,
	}
	if n, ok := s.cart.Notification(); ok {
		state.Notification = &n
	}
	return state
}

func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, ok := s.session.FindProduct(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not on the selected counter")
		return
	}

	s.cart.Add(product)
	s.persistCartSnapshot()
	respondJSON(w, http.StatusCreated, s.cartState())
}

func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s.cart.Remove(chi.URLParam(r, "product_id"))
	s.persistCartSnapshot()
	respondJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) IncrementItem(w http.ResponseWriter, r *http.Request) {
	s.cart.Increment(chi.URLParam(r, "product_id"))
	s.persistCartSnapshot()
	respondJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) DecrementItem(w http.ResponseWriter, r *http.Request) {
	s.cart.Decrement(chi.URLParam(r, "product_id"))
	s.persistCartSnapshot()
	respondJSON(w, http.StatusOK, s.cartState())
}

// SetSelection marks a line for keyboard operations. An empty product_id
// clears the selection.
func (s *Server) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		s.cart.ClearSelection()
	} else {
		s.cart.Select(req.ProductID)
	}
	respondJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) ResetCart(w http.ResponseWriter, r *http.Request) {
	s.cart.Reset()
	s.dropCartSnapshot()
	respondJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) SetTendered(w http.ResponseWriter, r *http.Request) {
	var req TenderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Keep the gross total in sync before applying the tender.
	s.session.Totals()

	if req.Exact {
		s.payments.TenderExact()
	} else {
		s.payments.SetTendered(req.Amount)
	}
	respondJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req PaymentMethodRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := s.session.SetPaymentMethod(domain.PaymentMethod(req.Method)); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment method must be Cash, Card or Mobile")
		return
	}
	respondJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) SetOrderType(w http.ResponseWriter, r *http.Request) {
	var req OrderTypeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := s.session.SetOrderType(domain.OrderType(req.OrderType)); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_type", "order type must be Dine In, Parcel or On Call")
		return
	}
	respondJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals := s.session.Totals()
	tendered, change := s.payments.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"totals":   totals,
		"tendered": tendered,
		"change":   change,
	})
}
