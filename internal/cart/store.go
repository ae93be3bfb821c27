// Package cart holds the storefront's cart: its visibility flag, its line
// items and the values derived from them for display.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/money"
)

// Store owns the cart state. Every operation completes, and its listeners have
// run, before it returns. Operations that find nothing to change leave the
// state untouched and notify nobody.
type Store struct {
	opts Options

	mu      sync.Mutex
	open    bool
	items   []LineItem
	version uint64

	subMu   sync.Mutex
	subs    []subscription
	nextSub uint64
}

type subscription struct {
	id uint64
	fn Listener
}

// NewStore returns an empty, closed cart.
func NewStore(opts Options) *Store {
	return &Store{opts: opts.withDefaults()}
}

// ToggleOpen flips the cart panel visibility and returns the new value.
func (s *Store) ToggleOpen() bool {
	s.mu.Lock()
	s.open = !s.open
	open := s.open
	state := s.changedLocked()
	s.mu.Unlock()

	s.finish(opToggleOpen, metrics.ResultChanged, &state)
	return open
}

// AddItem appends a quantity-1 line for p. With MergeDuplicates set, an
// existing line for the same product is incremented instead. Products without
// an id are rejected and the cart is left unchanged.
func (s *Store) AddItem(p catalog.Product) (LineItem, error) {
	if !p.Addressable() {
		s.finish(opAddItem, metrics.ResultRejected, nil)
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "product has no id").
			WithDetails(map[string]any{"name": p.Name})
	}

	s.mu.Lock()
	var item LineItem
	if s.opts.MergeDuplicates {
		if i := s.indexOfProductLocked(p.ID); i >= 0 {
			s.items[i].Quantity++
			item = s.items[i]
		}
	}
	if item.ID == "" {
		item = LineItem{
			ID:        s.opts.NewLineID(),
			ProductID: p.ID,
			Product:   p,
			Quantity:  1,
		}
		s.items = append(s.items, item)
	}
	state := s.changedLocked()
	s.mu.Unlock()

	s.finish(opAddItem, metrics.ResultChanged, &state)
	return item, nil
}

// RemoveItem drops every line with the given id and returns how many went.
func (s *Store) RemoveItem(id LineID) int {
	if id == "" {
		s.finish(opRemoveItem, metrics.ResultNoop, nil)
		return 0
	}
	return s.removeWhere(opRemoveItem, func(it LineItem) bool { return it.ID == id })
}

// RemoveProduct drops every line for the product and returns how many went.
func (s *Store) RemoveProduct(id catalog.ProductID) int {
	if id == "" {
		s.finish(opRemoveProduct, metrics.ResultNoop, nil)
		return 0
	}
	return s.removeWhere(opRemoveProduct, func(it LineItem) bool { return it.ProductID == id })
}

// IncrementQuantity adds one to the line's quantity. It reports false when no
// line has that id.
func (s *Store) IncrementQuantity(id LineID) bool {
	return s.adjust(opIncrement, id, 1)
}

// DecrementQuantity subtracts one from the line's quantity, never going below
// 1. A line at quantity 1 stays in the cart. It reports whether anything changed.
func (s *Store) DecrementQuantity(id LineID) bool {
	return s.adjust(opDecrement, id, -1)
}

func (s *Store) adjust(op string, id LineID, delta int) bool {
	s.mu.Lock()
	i := s.indexOfLineLocked(id)
	if i < 0 || s.items[i].Quantity+delta < 1 {
		s.mu.Unlock()
		s.finish(op, metrics.ResultNoop, nil)
		return false
	}
	s.items[i].Quantity += delta
	state := s.changedLocked()
	s.mu.Unlock()

	s.finish(op, metrics.ResultChanged, &state)
	return true
}

func (s *Store) removeWhere(op string, match func(LineItem) bool) int {
	s.mu.Lock()
	kept := make([]LineItem, 0, len(s.items))
	for _, it := range s.items {
		if !match(it) {
			kept = append(kept, it)
		}
	}
	removed := len(s.items) - len(kept)
	if removed == 0 {
		s.mu.Unlock()
		s.finish(op, metrics.ResultNoop, nil)
		return 0
	}
	s.items = kept
	state := s.changedLocked()
	s.mu.Unlock()

	s.finish(op, metrics.ResultChanged, &state)
	return removed
}

// IsOpen reports the cart panel visibility.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItemsLocked()
}

// Item returns the line with the given id.
func (s *Store) Item(id LineID) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOfLineLocked(id); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

// Snapshot returns the whole state at once.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// CartCount is the header badge value: the number of line items.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// LineAmount is price × quantity for the line.
func (s *Store) LineAmount(item LineItem) decimal.Decimal {
	return money.Multiply(item.Product.Price, item.Quantity)
}

// LineTotal is LineAmount formatted in whole currency units.
func (s *Store) LineTotal(item LineItem) string {
	return s.opts.Formatter.Format(s.LineAmount(item))
}

// CatalogPrice formats a product's unit price in whole currency units.
func (s *Store) CatalogPrice(p catalog.Product) string {
	return s.opts.Formatter.Format(p.Price)
}

// SubtotalAmount sums every line amount.
func (s *Store) SubtotalAmount() decimal.Decimal {
	return s.subtotal(s.Items())
}

// Subtotal is SubtotalAmount formatted in whole currency units.
func (s *Store) Subtotal() string {
	return s.opts.Formatter.Format(s.SubtotalAmount())
}

// SubtotalOf formats the sum of the given state's line amounts.
func (s *Store) SubtotalOf(state State) string {
	return s.opts.Formatter.Format(s.subtotal(state.Items))
}

func (s *Store) subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(s.LineAmount(it))
	}
	return total
}

// Subscribe registers fn for change notifications. The returned function
// removes it and is safe to call more than once.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) finish(op, result string, state *State) {
	if s.opts.Recorder != nil {
		s.opts.Recorder.ObserveOperation(op, result)
		if state != nil {
			s.opts.Recorder.SetLineItems(len(state.Items))
		}
	}
	if state != nil {
		s.notify(*state)
	}
}

func (s *Store) notify(state State) {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(state)
	}
}

func (s *Store) changedLocked() State {
	s.version++
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	return State{
		Open:    s.open,
		Items:   s.copyItemsLocked(),
		Version: s.version,
	}
}

func (s *Store) copyItemsLocked() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexOfLineLocked(id LineID) int {
	if id == "" {
		return -1
	}
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) indexOfProductLocked(id catalog.ProductID) int {
	for i, it := range s.items {
		if it.ProductID == id {
			return i
		}
	}
	return -1
}
