package catalog

import (
	"context"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRemote struct {
	products    []types.Product
	categories  []string
	byID        map[int]types.Product
	created     *types.Product
	err         error
	createCalls int
	beforeList  func()
}

func (s *stubRemote) ListProducts(context.Context) ([]types.Product, error) {
	if s.beforeList != nil {
		s.beforeList()
	}
	return s.products, s.err
}

func (s *stubRemote) GetProduct(_ context.Context, id int) (*types.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func (s *stubRemote) ListCategories(context.Context) ([]string, error) {
	return s.categories, s.err
}

func (s *stubRemote) CreateProduct(_ context.Context, draft types.ProductDraft) (*types.Product, error) {
	s.createCalls++
	if s.err != nil {
		return nil, s.err
	}
	if s.created != nil {
		return s.created, nil
	}
	return &types.Product{ID: 21, Title: draft.Title, Price: draft.Price, Category: draft.Category}, nil
}

func newTestService(t *testing.T, remote *stubRemote) *Service {
	t.Helper()
	svc, err := NewService(NewStore(), remote, nil)
	require.NoError(t, err)
	return svc
}

func validDraft() types.ProductDraft {
	return types.ProductDraft{
		Title:       "Desk lamp",
		Description: "Warm light for late reading",
		Price:       decimal.RequireFromString("19.99"),
		Category:    "home",
		Image:       "https://img.test/lamp.png",
	}
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(nil, &stubRemote{}, nil)
	assert.Error(t, err)
	_, err = NewService(NewStore(), nil, nil)
	assert.Error(t, err)
}

func TestRefreshLoadsProductsAndCategories(t *testing.T) {
	remote := &stubRemote{
		products:   []types.Product{product(1, "10", "a"), product(2, "5", "b")},
		categories: []string{"a", "b"},
	}
	svc := newTestService(t, remote)

	require.NoError(t, svc.EnsureLoaded(context.Background()))
	assert.Equal(t, []int{1, 2}, ids(svc.Store().Products()))
	assert.Equal(t, []string{"a", "b"}, svc.Store().Categories())

	remote.products = []types.Product{product(3, "1", "c")}
	require.NoError(t, svc.EnsureLoaded(context.Background()))
	assert.Equal(t, []int{1, 2}, ids(svc.Store().Products()), "already loaded slices are not refetched")
}

func TestRefreshFailureSurfacesAndRecordsStatus(t *testing.T) {
	remote := &stubRemote{err: pkgerrors.New(pkgerrors.CodeDependency, "catalog down")}
	svc := newTestService(t, remote)

	err := svc.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	status := svc.Store().Status()
	assert.False(t, status.Products.Loading)
	assert.Contains(t, status.Products.Error, "catalog down")

	err = svc.RefreshCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, svc.Store().Status().Categories.Error, "catalog down")
}

func TestRefreshDiscardsSupersededResult(t *testing.T) {
	remote := &stubRemote{products: []types.Product{product(1, "1", "old")}}
	svc := newTestService(t, remote)

	// A newer fetch starts and lands while the first is still in flight.
	remote.beforeList = func() {
		remote.beforeList = nil
		newer := svc.Store().BeginFetch(SliceProducts)
		svc.Store().ApplyProducts(newer, []types.Product{product(2, "1", "new")})
	}

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, []int{2}, ids(svc.Store().Products()))
}

func TestProductPrefersStore(t *testing.T) {
	remote := &stubRemote{byID: map[int]types.Product{5: product(5, "2", "remote")}}
	svc := newTestService(t, remote)
	svc.Store().ReplaceProducts([]types.Product{product(1, "1", "local")})

	p, err := svc.Product(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "local", p.Category)

	p, err = svc.Product(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "remote", p.Category)

	_, err = svc.Product(context.Background(), 6)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.Product(context.Background(), 0)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateValidatesBeforeRemoteCall(t *testing.T) {
	remote := &stubRemote{}
	svc := newTestService(t, remote)

	draft := validDraft()
	draft.Title = "ab"
	draft.Price = decimal.Zero
	draft.Image = "not a url"

	_, err := svc.Create(context.Background(), draft)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "price")
	assert.Contains(t, details, "image")
	assert.Zero(t, remote.createCalls)
}

func TestCreatePrependsResult(t *testing.T) {
	remote := &stubRemote{}
	svc := newTestService(t, remote)
	svc.Store().ReplaceProducts([]types.Product{product(1, "1", "a")})

	created, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, 21, created.ID)
	assert.Equal(t, []int{21, 1}, ids(svc.Store().Products()))
	assert.Equal(t, 21, svc.Store().VisiblePage().Items[0].ID)
}

func TestCreateRemoteFailure(t *testing.T) {
	remote := &stubRemote{err: pkgerrors.New(pkgerrors.CodeDependency, "down")}
	svc := newTestService(t, remote)

	_, err := svc.Create(context.Background(), validDraft())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.Empty(t, svc.Store().Products())
}
