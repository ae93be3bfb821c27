package catalog

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Lister is the read side of the products repository.
type Lister interface {
	List(ctx context.Context) ([]Product, error)
}

// Load builds the catalog from the configured source. lister is only consulted
// for the database source.
func Load(ctx context.Context, cfg config.CatalogConfig, lister Lister, logg *logger.Logger) (*Catalog, error) {
	var (
		products []Product
		err      error
	)
	if cfg.UsesDB() {
		if lister == nil {
			return nil, errors.New("database catalog requires a product lister")
		}
		products, err = lister.List(ctx)
	} else {
		products, err = LoadFile(cfg.Path)
	}
	if err != nil {
		return nil, err
	}

	c := New(products)
	if logg != nil {
		unaddressable := 0
		for _, p := range products {
			if !p.Addressable() {
				unaddressable++
			}
		}
		ctx = logg.WithFields(ctx, map[string]any{
			"source":        cfg.Source,
			"products":      c.Len(),
			"unaddressable": unaddressable,
		})
		if unaddressable > 0 {
			logg.Warn(ctx, "catalog.loaded_with_unaddressable_products")
		} else {
			logg.Info(ctx, "catalog.loaded")
		}
	}
	return c, nil
}
