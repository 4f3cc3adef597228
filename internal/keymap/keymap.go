// Package keymap maps physical key presses to cart operations.
package keymap

import (
	"sync"
	"time"

	"github.com/iamshihab2020/omnicore-pos/internal/cart"
)

// SelectionFlashTTL is the visual-feedback window for the transient
// selection placed on the fallback line after a +/- press.
const SelectionFlashTTL = 300 * time.Millisecond

// KeyEvent is one keydown as reported by the UI surface. EditableTarget is
// true when focus sits inside a text input or textarea.
type KeyEvent struct {
	Key            string `json:"key"`
	Ctrl           bool   `json:"ctrl"`
	Alt            bool   `json:"alt"`
	Meta           bool   `json:"meta"`
	EditableTarget bool   `json:"editable_target"`
}

// armed reports whether shortcuts should fire at all. Any modifier or an
// editable focus target disarms the whole layer.
func (e KeyEvent) armed() bool {
	return !e.Ctrl && !e.Alt && !e.Meta && !e.EditableTarget
}

// Dispatcher routes key events to the cart and the checkout trigger.
//
//	F2     checkout (no-op on empty cart)
//	F3     reset (no-op on empty cart)
//	+ / =  increment selected line, falling back to the last-added line
//	-      decrement, same fallback, only when quantity > 1
type Dispatcher struct {
	cart     *cart.Store
	checkout func()
	flashTTL time.Duration

	mu         sync.Mutex
	flashTimer *time.Timer
	flashGen   uint64
}

func NewDispatcher(store *cart.Store, checkout func()) *Dispatcher {
	return &Dispatcher{
		cart:     store,
		checkout: checkout,
		flashTTL: SelectionFlashTTL,
	}
}

// Handle processes one key event and reports whether it was consumed, so the
// caller knows to suppress the browser's default handling.
func (d *Dispatcher) Handle(ev KeyEvent) bool {
	if !ev.armed() {
		return false
	}

	switch ev.Key {
	case "F2":
		if d.cart.Len() == 0 {
			return false
		}
		d.checkout()
		return true

	case "F3":
		if d.cart.Len() == 0 {
			return false
		}
		d.cart.Reset()
		return true

	case "+", "=":
		// Consumed even when the cart is empty, matching the original
		// handler which suppressed the default before the empty check.
		if d.cart.Len() == 0 {
			return true
		}
		if selected := d.cart.Selected(); selected != "" {
			d.cart.Increment(selected)
			return true
		}
		if last, ok := d.cart.LastLine(); ok {
			d.cart.Increment(last.Product.ID)
			d.flashSelection(last.Product.ID)
		}
		return true

	case "-":
		if d.cart.Len() == 0 {
			return true
		}
		if selected := d.cart.Selected(); selected != "" {
			if line, ok := d.cart.Line(selected); ok && line.Quantity > 1 {
				d.cart.Decrement(selected)
			}
			return true
		}
		if last, ok := d.cart.LastLine(); ok && last.Quantity > 1 {
			d.cart.Decrement(last.Product.ID)
			d.flashSelection(last.Product.ID)
		}
		return true
	}

	return false
}

// flashSelection briefly selects the line so the operator sees which line
// the fallback hit, then clears the selection again. Single-slot: a new
// flash cancels the pending one.
func (d *Dispatcher) flashSelection(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.flashTimer != nil {
		d.flashTimer.Stop()
	}

	d.cart.Select(id)
	d.flashGen++
	gen := d.flashGen
	d.flashTimer = time.AfterFunc(d.flashTTL, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.flashGen != gen {
			return
		}
		d.cart.ClearSelection()
		d.flashTimer = nil
	})
}

// Close cancels a pending selection flash. Call on teardown.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.flashTimer != nil {
		d.flashTimer.Stop()
		d.flashTimer = nil
	}
	d.flashGen++
}
