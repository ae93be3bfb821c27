package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/view"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// CartOperator is the mutating surface of the cart store.
type CartOperator interface {
	ToggleOpen() bool
	AddItem(p catalog.Product) (cart.LineItem, error)
	RemoveItem(id cart.LineID) int
	RemoveProduct(id catalog.ProductID) int
	IncrementQuantity(id cart.LineID) bool
	DecrementQuantity(id cart.LineID) bool
}

// PanelRenderer returns the latest cart rendering.
type PanelRenderer interface {
	Panel() view.CartPanel
}

// ProductFinder resolves catalog products by id.
type ProductFinder interface {
	Lookup(id catalog.ProductID) (catalog.Product, bool)
}

type addItemRequest struct {
	ProductID catalog.ProductID `json:"product_id" validate:"required,max=128"`
}

// CartFetch returns the current cart panel.
func CartFetch(panels PanelRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if panels == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart view unavailable"))
			return
		}
		responses.WriteSuccess(w, panels.Panel())
	}
}

// CartToggle opens or closes the cart panel.
func CartToggle(store CartOperator, panels PanelRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || panels == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		open := store.ToggleOpen()
		logInfo(r.Context(), logg, map[string]any{"open": open}, "cart.toggled")
		responses.WriteSuccess(w, panels.Panel())
	}
}

// CartAddItem appends the requested catalog product to the cart.
func CartAddItem(store CartOperator, products ProductFinder, panels PanelRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || products == nil || panels == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := products.Lookup(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		item, err := store.AddItem(product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithLineID(logg.WithProductID(r.Context(), item.ProductID.String()), item.ID.String())
			logg.Info(ctx, "cart.item_added")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, panels.Panel())
	}
}

// CartRemoveItem deletes a line item. Unknown ids leave the cart unchanged.
func CartRemoveItem(store CartOperator, panels PanelRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || panels == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		lineID, err := lineIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		removed := store.RemoveItem(lineID)
		logLine(r.Context(), logg, lineID, "removed", removed, "cart.item_removed")
		responses.WriteSuccess(w, panels.Panel())
	}
}

// CartRemoveProduct deletes every line for a product.
func CartRemoveProduct(store CartOperator, panels PanelRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || panels == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		productID := catalog.ProductID(validators.PathID(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}
		removed := store.RemoveProduct(productID)
		if logg != nil {
			ctx := logg.WithField(logg.WithProductID(r.Context(), productID.String()), "removed", removed)
			logg.Info(ctx, "cart.product_removed")
		}
		responses.WriteSuccess(w, panels.Panel())
	}
}

// CartIncrement adds one to a line's quantity.
func CartIncrement(store CartOperator, panels PanelRenderer, logg *logger.Logger) http.HandlerFunc {
	return adjustHandler(store, panels, logg, "cart.quantity_incremented", func(id cart.LineID) bool {
		return store.IncrementQuantity(id)
	})
}

// CartDecrement subtracts one from a line's quantity, never below one.
func CartDecrement(store CartOperator, panels PanelRenderer, logg *logger.Logger) http.HandlerFunc {
	return adjustHandler(store, panels, logg, "cart.quantity_decremented", func(id cart.LineID) bool {
		return store.DecrementQuantity(id)
	})
}

func adjustHandler(store CartOperator, panels PanelRenderer, logg *logger.Logger, event string, apply func(cart.LineID) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || panels == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		lineID, err := lineIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		changed := apply(lineID)
		logLine(r.Context(), logg, lineID, "changed", changed, event)
		responses.WriteSuccess(w, panels.Panel())
	}
}

func lineIDParam(r *http.Request) (cart.LineID, error) {
	id := validators.PathID(r, "lineId")
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "line id is required")
	}
	return cart.LineID(id), nil
}

func logInfo(ctx context.Context, logg *logger.Logger, fields map[string]any, msg string) {
	if logg == nil {
		return
	}
	logg.Info(logg.WithFields(ctx, fields), msg)
}

func logLine(ctx context.Context, logg *logger.Logger, lineID cart.LineID, key string, value any, msg string) {
	if logg == nil {
		return
	}
	logg.Info(logg.WithField(logg.WithLineID(ctx, lineID.String()), key, value), msg)
}
