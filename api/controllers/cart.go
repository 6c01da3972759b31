package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
)

// CartStore is the cart surface exposed over HTTP.
type CartStore interface {
	Add(ctx context.Context, product types.Product) types.CartItem
	SetQuantity(ctx context.Context, productID, quantity int) bool
	Remove(ctx context.Context, productID int) bool
	Clear(ctx context.Context)
	Snapshot() types.Cart
}

// ProductLookup resolves a product id to a snapshot for the cart.
type ProductLookup interface {
	Product(ctx context.Context, id int) (*types.Product, error)
}

func CartFetch(cart CartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cart.Snapshot())
	}
}

// CartAddItem adds one unit of the product to the cart.
func CartAddItem(cart CartStore, products ProductLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.AddCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := products.Product(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cart.Add(r.Context(), *product)
		responses.WriteSuccess(w, cart.Snapshot())
	}
}

// CartSetQuantity sets an absolute quantity. Unknown ids leave the cart unchanged.
func CartSetQuantity(cart CartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload types.SetQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cart.SetQuantity(r.Context(), id, *payload.Quantity)
		responses.WriteSuccess(w, cart.Snapshot())
	}
}

func CartRemoveItem(cart CartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cart.Remove(r.Context(), id)
		responses.WriteSuccess(w, cart.Snapshot())
	}
}

func CartClear(cart CartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cart.Clear(r.Context())
		responses.WriteSuccess(w, cart.Snapshot())
	}
}
