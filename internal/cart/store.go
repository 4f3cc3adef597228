// Package cart holds the open order for a single POS terminal.
package cart

import (
	"fmt"
	"sync"
	"time"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

// NotificationTTL is how long an "item added" banner stays up before
// auto-dismissing.
const NotificationTTL = 4 * time.Second

// Notification is the transient banner shown after a cart mutation.
type Notification struct {
	Message     string `json:"message"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
}

// Store is the in-memory cart. All operations are total: unknown ids are
// no-ops, never errors. The notification slot is single: arming a new banner
// cancels and replaces any pending expiry, last one wins.
type Store struct {
	mu       sync.Mutex
	lines    []domain.CartLine
	selected string

	notification    *Notification
	notificationTTL time.Duration
	notifyTimer     *time.Timer
	notifyGen       uint64
}

func NewStore() *Store {
	return &Store{notificationTTL: NotificationTTL}
}

// Add appends a line with quantity 1, or bumps the quantity when a line for
// the product already exists, and arms the "item added" banner.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Product.ID == p.ID {
			s.lines[i].Quantity++
			s.notifyLocked(Notification{
				Message:     fmt.Sprintf("Added %s (%d)", p.Name, s.lines[i].Quantity),
				ProductName: p.Name,
				Quantity:    s.lines[i].Quantity,
			}, s.notificationTTL)
			return
		}
	}

	s.lines = append(s.lines, domain.CartLine{Product: p, Quantity: 1})
	s.notifyLocked(Notification{
		Message:     fmt.Sprintf("Added %s to cart", p.Name),
		ProductName: p.Name,
		Quantity:    1,
	}, s.notificationTTL)
}

// Remove deletes the line outright, regardless of quantity.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Product.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Increment bumps the line's quantity by one.
func (s *Store) Increment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Product.ID == id {
			s.lines[i].Quantity++
			return
		}
	}
}

// Decrement lowers the line's quantity by one, floored at 1. Deletion only
// happens via Remove or Reset.
func (s *Store) Decrement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Product.ID == id && line.Quantity > 1 {
			s.lines[i].Quantity--
			return
		}
	}
}

// Reset clears all lines, the selection and any pending notification.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.selected = ""
	s.clearNotificationLocked()
}

// Restore replaces the cart contents, e.g. from a cached snapshot after a
// terminal restart. No notification is armed.
func (s *Store) Restore(lines []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make([]domain.CartLine, len(lines))
	copy(s.lines, lines)
	s.selected = ""
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Line returns the line for the given product id.
func (s *Store) Line(id string) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		if line.Product.ID == id {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// LastLine returns the most recently added line.
func (s *Store) LastLine() (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return domain.CartLine{}, false
	}
	return s.lines[len(s.lines)-1], true
}

// Select marks a line id for keyboard operations. Selecting an id that is
// not in the cart is permitted; the keyboard layer owns validity.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// Selected returns the selected line id, empty when nothing is selected.
func (s *Store) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Notify arms an externally supplied banner (checkout feedback). A zero ttl
// keeps the banner up until it is replaced or cleared.
func (s *Store) Notify(message string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyLocked(Notification{Message: message}, ttl)
}

// Notification returns the current banner, if one is up.
func (s *Store) Notification() (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notification == nil {
		return Notification{}, false
	}
	return *s.notification, true
}

func (s *Store) ClearNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearNotificationLocked()
}

// Close cancels any pending notification timer. Call on teardown.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearNotificationLocked()
}

func (s *Store) notifyLocked(n Notification, ttl time.Duration) {
	if s.notifyTimer != nil {
		s.notifyTimer.Stop()
		s.notifyTimer = nil
	}

	s.notification = &n
	s.notifyGen++
	if ttl <= 0 {
		return
	}

	gen := s.notifyGen
	s.notifyTimer = time.AfterFunc(ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A newer banner replaced this one while the timer was in flight.
		if s.notifyGen != gen {
			return
		}
		s.notification = nil
		s.notifyTimer = nil
	})
}

func (s *Store) clearNotificationLocked() {
	if s.notifyTimer != nil {
		s.notifyTimer.Stop()
		s.notifyTimer = nil
	}
	s.notification = nil
	s.notifyGen++
}
