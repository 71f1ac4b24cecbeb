// Package cart holds the per-session cart aggregator. Carts live only in
// memory: the contract is that a cart does not survive the session, so
// nothing here touches a store.
package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peacockstore/peacock-api/internal/model"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrEmptyCart    = errors.New("cart is empty")
)

type Cart struct {
	ID        uuid.UUID
	Items     []model.CartItem
	CreatedAt time.Time

	lastActive time.Time
}

// Store keeps every live session cart, keyed by the token issued at
// creation.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

func (s *Store) Create() *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	c := &Cart{ID: uuid.New(), CreatedAt: now, lastActive: now}
	s.carts[c.ID] = c
	return c
}

// Add appends a quantity-1 item. The same (product, action) pair may
// appear more than once; each add is its own row.
func (s *Store) Add(cartID uuid.UUID, product model.Product, action model.CartAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}
	c.Items = append(c.Items, model.CartItem{Product: product, Quantity: 1, Action: action})
	c.lastActive = time.Now()
	return nil
}

// Remove deletes the first item matching (productID, action). Removing an
// item that is not in the cart is not an error.
func (s *Store) Remove(cartID uuid.UUID, productID int64, action model.CartAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}
	c.lastActive = time.Now()
	for i, item := range c.Items {
		if item.Product.ID == productID && item.Action == action {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

// Items returns a copy of the cart contents.
func (s *Store) Items(cartID uuid.UUID) ([]model.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	items := make([]model.CartItem, len(c.Items))
	copy(items, c.Items)
	return items, nil
}

// Snapshot freezes the cart for checkout. An empty cart cannot enter
// checkout.
func (s *Store) Snapshot(cartID uuid.UUID) ([]model.CartItem, error) {
	items, err := s.Items(cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	return items, nil
}

func (s *Store) Clear(cartID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[cartID]; ok {
		c.Items = nil
		c.lastActive = time.Now()
	}
}

// Sweep evicts carts idle longer than ttl and reports how many were
// dropped. Adding, removing and clearing all count as activity.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, c := range s.carts {
		if c.lastActive.Before(cutoff) {
			delete(s.carts, id)
			evicted++
		}
	}
	return evicted
}

func (s *Store) Subtotal(cartID uuid.UUID) (decimal.Decimal, error) {
	items, err := s.Items(cartID)
	if err != nil {
		return decimal.Zero, err
	}
	return Subtotal(items), nil
}

// Subtotal sums price-by-action times quantity over the items.
func Subtotal(items []model.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}
