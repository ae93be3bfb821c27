package cart

import (
	"github.com/angelmondragon/storefront/internal/catalog"
)

// LineID identifies one line item; every add that creates a line mints a new one.
type LineID string

func (id LineID) String() string {
	return string(id)
}

// LineItem is one add-to-cart action and its quantity counter.
type LineItem struct {
	ID        LineID
	ProductID catalog.ProductID
	Product   catalog.Product
	Quantity  int
}

// State is a copy of the cart at a point in time. Version increases by one on
// every change.
type State struct {
	Open    bool
	Items   []LineItem
	Version uint64
}

// Count is the number of line items, not the sum of quantities.
func (s State) Count() int {
	return len(s.Items)
}

// Listener receives the cart state after each change.
type Listener func(State)

// Recorder observes operations; satisfied by *metrics.CartMetrics.
type Recorder interface {
	ObserveOperation(op, result string)
	SetLineItems(n int)
}

const (
	opToggleOpen    = "toggle_open"
	opAddItem       = "add_item"
	opRemoveItem    = "remove_item"
	opRemoveProduct = "remove_product"
	opIncrement     = "increment_quantity"
	opDecrement     = "decrement_quantity"
)
