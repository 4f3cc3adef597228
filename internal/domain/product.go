package domain

import "time"

// PaymentMethod is how the operator settles the order at the counter.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentMobile PaymentMethod = "Mobile"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// OrderType is where the order goes after the counter.
type OrderType string

const (
	OrderDineIn OrderType = "Dine In"
	OrderParcel OrderType = "Parcel"
	OrderOnCall OrderType = "On Call"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderDineIn, OrderParcel, OrderOnCall:
		return true
	}
	return false
}

// Product is a menu item as served by the catalog. Immutable from the cart's
// perspective; the catalog service owns it.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CategoryName string  `json:"category_name,omitempty"`
	Price        Decimal `json:"price"`
	Image        string  `json:"image,omitempty"`
	Description  string  `json:"description,omitempty"`
	IsActive     bool    `json:"is_active"`
}

// TaxRate is a VAT configuration entry. Rate is a percentage, e.g. 5.00 for 5%.
type TaxRate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rate        Decimal `json:"rate"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// Counter is a named selling point with its own menu and tax assignment.
type Counter struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Items       []Product `json:"item_details"`
	Taxes       []TaxRate `json:"vat_taxes"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

const CounterStatusActive = "active"

// CartLine is one product in the open order. Identity is the product id;
// a cart holds at most one line per product.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total is the line's price times quantity, not rounded.
func (l CartLine) Total() Decimal {
	return l.Product.Price.MulInt(l.Quantity)
}

// RestaurantInfo is the receipt header block.
type RestaurantInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
