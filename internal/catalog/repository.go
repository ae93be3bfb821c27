package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Repository reads and seeds the products table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns every product in display order.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Order("position ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	products := make([]Product, len(rows))
	for i, row := range rows {
		products[i] = Product{
			ID:    ProductID(row.ID),
			Name:  row.Name,
			Price: row.Price,
			Image: row.Image,
		}
	}
	return products, nil
}

// Upsert writes products keyed by id, using slice order as position. Products
// without an id cannot be stored and are skipped; the number written is returned.
func (r *Repository) Upsert(ctx context.Context, products []Product) (int, error) {
	rows := make([]models.Product, 0, len(products))
	for i, p := range products {
		if !p.Addressable() {
			continue
		}
		rows = append(rows, models.Product{
			ID:       p.ID.String(),
			Position: i,
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.Image,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "name", "price", "image", "updated_at"}),
		}).
		Create(&rows).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert products")
	}
	return len(rows), nil
}
