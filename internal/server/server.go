// Package server exposes the POS terminal over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iamshihab2020/omnicore-pos/internal/cache"
	"github.com/iamshihab2020/omnicore-pos/internal/cart"
	"github.com/iamshihab2020/omnicore-pos/internal/catalog"
	"github.com/iamshihab2020/omnicore-pos/internal/checkout"
	"github.com/iamshihab2020/omnicore-pos/internal/keymap"
	"github.com/iamshihab2020/omnicore-pos/internal/orders"
	"github.com/iamshihab2020/omnicore-pos/internal/payment"
)

// Server wires the terminal session, cart and catalog behind chi routes.
// Orders and cartCache are optional.
type Server struct {
	session   *checkout.Service
	cart      *cart.Store
	payments  *payment.Calculator
	keys      *keymap.Dispatcher
	catalog   *catalog.Service
	orders    orders.OrderRepository
	cartCache cache.CartCache
	timeout   time.Duration
}

type Config struct {
	Session   *checkout.Service
	Cart      *cart.Store
	Payments  *payment.Calculator
	Catalog   *catalog.Service
	Orders    orders.OrderRepository
	CartCache cache.CartCache
	Timeout   time.Duration
}

func New(cfg Config) *Server {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	s := &Server{
		session:   cfg.Session,
		cart:      cfg.Cart,
		payments:  cfg.Payments,
		catalog:   cfg.Catalog,
		orders:    cfg.Orders,
		cartCache: cfg.CartCache,
		timeout:   timeout,
	}

	s.keys = keymap.NewDispatcher(cfg.Cart, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := s.session.Checkout(ctx); err != nil {
			log.Printf("keyboard checkout failed: %v", err)
			return
		}
		s.dropCartSnapshot()
	})

	return s
}

// Router builds the chi router with the gateway middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/counters", s.ListCounters)
		r.Post("/counters/{counter_id}/select", s.SelectCounter)
		r.Get("/products", s.ListProducts)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.GetCart)
			r.Post("/items", s.AddItem)
			r.Delete("/items/{product_id}", s.RemoveItem)
			r.Post("/items/{product_id}/increment", s.IncrementItem)
			r.Post("/items/{product_id}/decrement", s.DecrementItem)
			r.Put("/selection", s.SetSelection)
			r.Post("/reset", s.ResetCart)
		})

		r.Put("/payment", s.SetTendered)
		r.Put("/payment/method", s.SetPaymentMethod)
		r.Put("/order-type", s.SetOrderType)
		r.Get("/totals", s.GetTotals)

		r.Get("/receipt", s.PreviewReceipt)
		r.Post("/keys", s.HandleKey)
		r.Post("/checkout", s.Checkout)
		r.Get("/orders", s.ListOrders)
	})

	return r
}

// Close tears down the timer-owning components.
func (s *Server) Close() {
	s.keys.Close()
	s.cart.Close()
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// persistCartSnapshot pushes the open cart to the cache off the request path.
func (s *Server) persistCartSnapshot() {
	if s.cartCache == nil {
		return
	}
	counterID, _ := s.session.Counter()
	if counterID == "" {
		return
	}
	lines := s.cart.Lines()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cartCache.SetCart(ctx, counterID, lines); err != nil {
			log.Printf("cart snapshot set error: %v", err)
		}
	}()
}

func (s *Server) dropCartSnapshot() {
	if s.cartCache == nil {
		return
	}
	counterID, _ := s.session.Counter()
	if counterID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cartCache.DeleteCart(ctx, counterID); err != nil {
		log.Printf("cart snapshot delete error: %v", err)
	}
}
