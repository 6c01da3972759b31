package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
)

const (
	maxCategoryLen = 100
	maxPage        = 10000
)

// CatalogService is what the catalog and product controllers need.
type CatalogService interface {
	Store() *catalog.Store
	EnsureLoaded(ctx context.Context) error
	Refresh(ctx context.Context) error
	RefreshCategories(ctx context.Context) error
	Product(ctx context.Context, id int) (*types.Product, error)
	Create(ctx context.Context, draft types.ProductDraft) (*types.Product, error)
}

type catalogPageResponse struct {
	View catalog.View `json:"view"`
	catalog.Page
}

type updateViewRequest struct {
	Category *string `json:"category"`
	Sort     *string `json:"sort"`
	Page     *int    `json:"page" validate:"omitempty,gte=1"`
}

// CatalogPage returns the page under the stored view state.
func CatalogPage(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.EnsureLoaded(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store := svc.Store()
		view := store.View()
		responses.WriteSuccess(w, catalogPageResponse{View: view, Page: store.VisiblePageFor(view)})
	}
}

// CatalogSetView updates category, sort and page. Category and sort changes reset the
// page before an explicit page is applied.
func CatalogSetView(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateViewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var sortKey *enums.SortKey
		if payload.Sort != nil {
			key, err := enums.ParseSortKey(*payload.Sort)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").
					WithDetails(map[string]string{"sort": "must be one of none, price-asc, price-desc, category"}))
				return
			}
			sortKey = &key
		}

		store := svc.Store()
		if payload.Category != nil {
			store.SetCategory(validators.LimitString(*payload.Category, maxCategoryLen))
		}
		if sortKey != nil {
			store.SetSort(*sortKey)
		}
		if payload.Page != nil {
			store.SetPage(*payload.Page)
		}

		if err := svc.EnsureLoaded(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view := store.View()
		responses.WriteSuccess(w, catalogPageResponse{View: view, Page: store.VisiblePageFor(view)})
	}
}

// CatalogRefresh refetches products and categories.
func CatalogRefresh(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RefreshCategories(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.Store().Status())
	}
}

// CatalogStatus reports loading and error state per slice.
func CatalogStatus(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Store().Status())
	}
}

// Categories lists the known category labels.
func Categories(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.EnsureLoaded(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.Store().Categories())
	}
}
