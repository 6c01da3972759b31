package catalog

import (
	"context"
	"fmt"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
	"github.com/angelmondragon/storefront/pkg/validation"
)

// Remote is the subset of the catalog API the service needs.
type Remote interface {
	ListProducts(ctx context.Context) ([]types.Product, error)
	GetProduct(ctx context.Context, id int) (*types.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, draft types.ProductDraft) (*types.Product, error)
}

// Service loads catalog data from the remote API into a Store.
type Service struct {
	store  *Store
	remote Remote
	logg   *logger.Logger
}

// NewService wires a catalog service.
func NewService(store *Store, remote Remote, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if remote == nil {
		return nil, fmt.Errorf("catalog remote required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{store: store, remote: remote, logg: logg}, nil
}

// Store exposes the backing store.
func (s *Service) Store() *Store {
	return s.store
}

// Refresh fetches every product. When a newer refresh started meanwhile, this result is
// discarded without error.
func (s *Service) Refresh(ctx context.Context) error {
	token := s.store.BeginFetch(SliceProducts)
	products, err := s.remote.ListProducts(ctx)
	if err != nil {
		s.store.FailFetch(token, err)
		s.logg.WarnErr(ctx, "catalog.products_fetch_failed", err)
		return err
	}
	if !s.store.ApplyProducts(token, products) {
		ctx = s.logg.WithField(ctx, "generation", token.Generation)
		s.logg.Info(ctx, "catalog.stale_products_discarded")
	}
	return nil
}

// RefreshCategories fetches the category list.
func (s *Service) RefreshCategories(ctx context.Context) error {
	token := s.store.BeginFetch(SliceCategories)
	categories, err := s.remote.ListCategories(ctx)
	if err != nil {
		s.store.FailFetch(token, err)
		s.logg.WarnErr(ctx, "catalog.categories_fetch_failed", err)
		return err
	}
	if !s.store.ApplyCategories(token, categories) {
		ctx = s.logg.WithField(ctx, "generation", token.Generation)
		s.logg.Info(ctx, "catalog.stale_categories_discarded")
	}
	return nil
}

// EnsureLoaded refreshes slices that have never been fetched.
func (s *Service) EnsureLoaded(ctx context.Context) error {
	if !s.store.Loaded(SliceProducts) {
		if err := s.Refresh(ctx); err != nil {
			return err
		}
	}
	if !s.store.Loaded(SliceCategories) {
		if err := s.RefreshCategories(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Product serves a product from the store, falling back to the remote API.
func (s *Service) Product(ctx context.Context, id int) (*types.Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer")
	}
	if p, ok := s.store.Lookup(id); ok {
		return &p, nil
	}
	p, err := s.remote.GetProduct(s.logg.WithProductID(ctx, id), id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create validates the draft, submits it and shows the result first in the catalog.
func (s *Service) Create(ctx context.Context, draft types.ProductDraft) (*types.Product, error) {
	if err := validation.Struct(draft); err != nil {
		return nil, err
	}
	created, err := s.remote.CreateProduct(ctx, draft)
	if err != nil {
		s.logg.WarnErr(ctx, "catalog.create_failed", err)
		return nil, err
	}
	s.store.PrependProduct(*created)
	s.logg.Info(s.logg.WithProductID(ctx, created.ID), "catalog.product_created")
	return created, nil
}
