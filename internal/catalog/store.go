package catalog

import (
	"sync"
	"time"

	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/pagination"
	"github.com/angelmondragon/storefront/pkg/types"
)

// Slice names an independently fetched part of the catalog state.
type Slice string

const (
	SliceProducts   Slice = "products"
	SliceCategories Slice = "categories"
)

// FetchToken identifies one in-flight fetch. Only the latest token of a slice may apply
// its result.
type FetchToken struct {
	Slice      Slice
	Generation uint64
}

// SliceStatus is the load state of a slice as shown to a UI.
type SliceStatus struct {
	Loading  bool       `json:"loading"`
	Error    string     `json:"error,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// Status reports load state for every slice.
type Status struct {
	Products   SliceStatus `json:"products"`
	Categories SliceStatus `json:"categories"`
}

type memoKey struct {
	version  uint64
	category string
	sort     enums.SortKey
}

// Store owns the fetched catalog and the stored view state.
type Store struct {
	mu          sync.RWMutex
	products    []types.Product
	categories  []string
	view        View
	version     uint64
	generations map[Slice]uint64
	status      map[Slice]*SliceStatus

	memoMu sync.Mutex
	memo   map[memoKey][]types.Product

	now func() time.Time
}

// NewStore returns an empty store with the default view.
func NewStore() *Store {
	return &Store{
		products:    []types.Product{},
		categories:  []string{},
		view:        DefaultView(),
		generations: map[Slice]uint64{},
		status: map[Slice]*SliceStatus{
			SliceProducts:   {},
			SliceCategories: {},
		},
		memo: map[memoKey][]types.Product{},
		now:  time.Now,
	}
}

// Products returns a copy of the fetched products in server order.
func (s *Store) Products() []types.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Product(nil), s.products...)
}

// Categories returns a copy of the known category labels.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// View returns the stored view state.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetCategory changes the filter and resets the page.
func (s *Store) SetCategory(category string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Category = category
	s.view.Page = pagination.FirstPage
	return s.view
}

// SetSort changes the ordering and resets the page.
func (s *Store) SetSort(key enums.SortKey) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !key.IsValid() {
		key = enums.SortKeyNone
	}
	s.view.Sort = key
	s.view.Page = pagination.FirstPage
	return s.view
}

// SetPage moves to page n without touching filter or sort.
func (s *Store) SetPage(page int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Page = pagination.NormalizePage(page)
	return s.view
}

// VisiblePage computes the page for the stored view.
func (s *Store) VisiblePage() Page {
	return s.VisiblePageFor(s.View())
}

// VisiblePageFor computes the page for an arbitrary view without storing it.
func (s *Store) VisiblePageFor(view View) Page {
	s.mu.RLock()
	version := s.version
	products := s.products
	cacheable := !hasCategoryFilter(view.Category) || containsString(s.categories, view.Category)
	s.mu.RUnlock()

	// Only fetched categories are memoized, so arbitrary filter input cannot grow the memo.
	if !cacheable {
		return paginate(filterAndSort(products, view.Category, view.Sort), view.Page)
	}

	key := memoKey{version: version, category: view.Category, sort: view.Sort}
	if !hasCategoryFilter(view.Category) {
		key.category = ""
	}

	s.memoMu.Lock()
	sorted, ok := s.memo[key]
	if !ok {
		sorted = filterAndSort(products, view.Category, view.Sort)
		s.memo[key] = sorted
	}
	s.memoMu.Unlock()

	return paginate(sorted, view.Page)
}

// BeginFetch marks a slice as loading and returns a token superseding every earlier one.
func (s *Store) BeginFetch(slice Slice) FetchToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[slice]++
	st := s.statusFor(slice)
	st.Loading = true
	st.Error = ""
	return FetchToken{Slice: slice, Generation: s.generations[slice]}
}

// ApplyProducts replaces the products if token is still current. Stale results are
// dropped and false is returned.
func (s *Store) ApplyProducts(token FetchToken, products []types.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(token, SliceProducts) {
		return false
	}
	s.replaceProductsLocked(products)
	s.loadedLocked(SliceProducts)
	return true
}

// ApplyCategories replaces the categories if token is still current.
func (s *Store) ApplyCategories(token FetchToken, categories []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(token, SliceCategories) {
		return false
	}
	s.categories = append([]string{}, categories...)
	s.loadedLocked(SliceCategories)
	return true
}

// FailFetch records err as the slice error if token is still current. Previously loaded
// data is kept.
func (s *Store) FailFetch(token FetchToken, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(token, token.Slice) {
		return false
	}
	st := s.statusFor(token.Slice)
	st.Loading = false
	if err != nil {
		st.Error = err.Error()
	}
	return true
}

// ReplaceProducts swaps the collection unconditionally.
func (s *Store) ReplaceProducts(products []types.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceProductsLocked(products)
}

// ReplaceCategories swaps the category list unconditionally.
func (s *Store) ReplaceCategories(categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]string{}, categories...)
}

// PrependProduct shows a newly created product first. An existing product with the
// same id is replaced.
func (s *Store) PrependProduct(product types.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]types.Product, 0, len(s.products)+1)
	next = append(next, product)
	for _, p := range s.products {
		if p.ID != product.ID {
			next = append(next, p)
		}
	}
	s.products = next
	s.bumpLocked()
}

// Lookup finds a fetched product by id.
func (s *Store) Lookup(id int) (types.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return types.Product{}, false
}

// Loaded reports whether a slice has completed at least one fetch.
func (s *Store) Loaded(slice Slice) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.status[slice]
	return ok && st.LoadedAt != nil
}

// Status returns a snapshot of the load state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Products:   *s.status[SliceProducts],
		Categories: *s.status[SliceCategories],
	}
}

func (s *Store) currentLocked(token FetchToken, slice Slice) bool {
	return token.Slice == slice && token.Generation == s.generations[slice]
}

func (s *Store) statusFor(slice Slice) *SliceStatus {
	st, ok := s.status[slice]
	if !ok {
		st = &SliceStatus{}
		s.status[slice] = st
	}
	return st
}

func (s *Store) loadedLocked(slice Slice) {
	st := s.statusFor(slice)
	now := s.now()
	st.Loading = false
	st.Error = ""
	st.LoadedAt = &now
}

func (s *Store) replaceProductsLocked(products []types.Product) {
	s.products = append([]types.Product{}, products...)
	s.bumpLocked()
}

// bumpLocked invalidates every memoized ordering.
func (s *Store) bumpLocked() {
	s.version++
	s.memoMu.Lock()
	s.memo = map[memoKey][]types.Product{}
	s.memoMu.Unlock()
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
