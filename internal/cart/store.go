package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/persistence"
	"github.com/angelmondragon/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// Persister stores and restores values by key. Failures are handled by the implementation.
type Persister interface {
	Save(ctx context.Context, key string, value any)
	Load(ctx context.Context, key string, dest any) bool
}

// Store holds the cart for the lifetime of the process. Every mutation is written
// through to the persister before the lock is released.
type Store struct {
	mu      sync.Mutex
	items   []types.CartItem
	persist Persister
	logg    *logger.Logger
}

// NewStore builds a cart store and rehydrates it from persisted state.
func NewStore(ctx context.Context, persist Persister, logg *logger.Logger) (*Store, error) {
	if persist == nil {
		return nil, fmt.Errorf("cart persister required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{persist: persist, logg: logg, items: []types.CartItem{}}

	var stored []types.CartItem
	if persist.Load(ctx, persistence.KeyCart, &stored) {
		s.items = normalize(stored)
		if len(s.items) != len(stored) {
			ctx = logg.WithFields(ctx, map[string]any{"stored_items": len(stored), "kept_items": len(s.items)})
			logg.Warn(ctx, "cart.rehydrate_normalized")
		}
	}
	return s, nil
}

// normalize drops non-positive quantities and merges duplicate product ids, keeping the
// first occurrence's position and product snapshot.
func normalize(items []types.CartItem) []types.CartItem {
	out := make([]types.CartItem, 0, len(items))
	index := map[int]int{}
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if at, ok := index[item.Product.ID]; ok {
			out[at].Quantity += item.Quantity
			continue
		}
		index[item.Product.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// Add puts one unit of product in the cart.
func (s *Store) Add(ctx context.Context, product types.Product) types.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity++
			s.saveLocked(ctx)
			return s.items[i]
		}
	}
	item := types.CartItem{Product: product, Quantity: 1}
	s.items = append(s.items, item)
	s.saveLocked(ctx)
	return item
}

// SetQuantity sets an absolute quantity. Zero or less removes the item. Unknown ids are
// ignored and reported as false.
func (s *Store) SetQuantity(ctx context.Context, productID, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		s.saveLocked(ctx)
		return true
	}
	return false
}

// Remove deletes the item for productID if present.
func (s *Store) Remove(ctx context.Context, productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.saveLocked(ctx)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []types.CartItem{}
	s.saveLocked(ctx)
}

// Items returns a copy of the items in insertion order.
func (s *Store) Items() []types.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.CartItem{}, s.items...)
}

// Total is the sum of price times quantity over all items.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.items)
}

// Count is the number of units in the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countOf(s.items)
}

// Snapshot returns items, total and count read under one lock.
func (s *Store) Snapshot() types.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.Cart{
		Items: append([]types.CartItem{}, s.items...),
		Total: totalOf(s.items),
		Count: countOf(s.items),
	}
}

func (s *Store) saveLocked(ctx context.Context) {
	s.persist.Save(ctx, persistence.KeyCart, s.items)
}

func totalOf(items []types.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func countOf(items []types.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
