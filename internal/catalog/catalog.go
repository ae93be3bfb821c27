package catalog

// Catalog is the ordered, read-only product list loaded at startup.
type Catalog struct {
	products []Product
	byID     map[ProductID]int
}

// New copies products into a catalog, preserving order. When ids repeat the
// first occurrence wins for Lookup.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[ProductID]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if !p.Addressable() {
			continue
		}
		if _, seen := c.byID[p.ID]; !seen {
			c.byID[p.ID] = i
		}
	}
	return c
}

// Products returns the catalog in display order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Lookup(id ProductID) (Product, bool) {
	if c == nil || id == "" {
		return Product{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}
