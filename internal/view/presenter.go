// Package view renders the catalog and the cart panel from store state.
package view

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// ProductCard is one entry of the product listing.
type ProductCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Addressable bool   `json:"addressable"`
}

// CartLine is one row of the cart panel.
type CartLine struct {
	LineID    string `json:"line_id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

// CartPanel is the rendered cart: badge count, visibility and lines.
type CartPanel struct {
	Open     bool       `json:"open"`
	Count    int        `json:"count"`
	Subtotal string     `json:"subtotal"`
	Lines    []CartLine `json:"lines"`
	Version  uint64     `json:"version"`
}

// Presenter keeps the latest cart panel rendering in sync with the store.
type Presenter struct {
	store *cart.Store
	logg  *logger.Logger
	cards []ProductCard

	mu    sync.RWMutex
	panel CartPanel

	unsubscribe func()
}

// NewPresenter renders the catalog once, renders the current cart and
// subscribes to subsequent changes.
func NewPresenter(cat *catalog.Catalog, store *cart.Store, logg *logger.Logger) *Presenter {
	p := &Presenter{
		store: store,
		logg:  logg,
		cards: renderCatalog(cat, store),
	}
	p.unsubscribe = store.Subscribe(p.render)
	p.render(store.Snapshot())
	return p
}

// Catalog returns the product cards in catalog order.
func (p *Presenter) Catalog() []ProductCard {
	out := make([]ProductCard, len(p.cards))
	copy(out, p.cards)
	return out
}

// Panel returns the most recent cart rendering.
func (p *Presenter) Panel() CartPanel {
	p.mu.RLock()
	defer p.mu.RUnlock()
	panel := p.panel
	panel.Lines = append([]CartLine(nil), p.panel.Lines...)
	return panel
}

// Close stops listening to the store.
func (p *Presenter) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
}

func (p *Presenter) render(state cart.State) {
	panel := CartPanel{
		Open:     state.Open,
		Count:    state.Count(),
		Subtotal: p.store.SubtotalOf(state),
		Lines:    make([]CartLine, 0, len(state.Items)),
		Version:  state.Version,
	}
	for _, it := range state.Items {
		panel.Lines = append(panel.Lines, CartLine{
			LineID:    it.ID.String(),
			ProductID: it.ProductID.String(),
			Name:      it.Product.Name,
			Image:     it.Product.Image,
			Quantity:  it.Quantity,
			Total:     p.store.LineTotal(it),
		})
	}

	p.mu.Lock()
	stale := state.Version < p.panel.Version
	if !stale {
		p.panel = panel
	}
	p.mu.Unlock()

	if p.logg != nil {
		ctx := p.logg.WithFields(context.Background(), map[string]any{
			"version": state.Version,
			"count":   panel.Count,
			"stale":   stale,
		})
		p.logg.Debug(ctx, "cart.rendered")
	}
}

func renderCatalog(cat *catalog.Catalog, store *cart.Store) []ProductCard {
	products := cat.Products()
	cards := make([]ProductCard, len(products))
	for i, prod := range products {
		cards[i] = ProductCard{
			ID:          prod.ID.String(),
			Name:        prod.Name,
			Image:       prod.Image,
			Price:       store.CatalogPrice(prod),
			Addressable: prod.Addressable(),
		}
	}
	return cards
}
