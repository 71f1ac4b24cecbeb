package service

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peacockstore/peacock-api/internal/model"
)

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func userKey(email string, userType model.UserType) string {
	return email + "|" + string(userType)
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = int64(len(m.users) + 1)
	m.users[userKey(user.Email, user.UserType)] = user
	return nil
}

func (m *mockUserRepo) GetByEmailAndType(_ context.Context, email string, userType model.UserType) (*model.User, error) {
	return m.users[userKey(email, userType)], nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[userKey(user.Email, user.UserType)] = user
	return nil
}

type mockProductRepo struct {
	products map[int64]*model.Product
	nextID   int64
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[int64]*model.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, product *model.Product) error {
	m.nextID++
	product.ID = m.nextID
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) List(_ context.Context, category model.Category) ([]model.Product, error) {
	var out []model.Product
	for _, p := range m.products {
		if category == "" || p.Category == category {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *model.Product) error {
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id int64) error {
	delete(m.products, id)
	return nil
}

type mockReviewRepo struct {
	reviews []model.Review
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{}
}

func (m *mockReviewRepo) Create(_ context.Context, review *model.Review) error {
	review.ID = int64(len(m.reviews) + 1)
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *mockReviewRepo) List(_ context.Context, productID int64) ([]model.Review, error) {
	var out []model.Review
	for _, r := range m.reviews {
		if productID == 0 || r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockOrderRepo struct {
	orders    map[string]*model.Order
	createErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*model.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) ListByUserEmail(_ context.Context, email string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range m.orders {
		if o.UserEmail == email {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status model.OrderStatus, trackingNumber string) error {
	o, ok := m.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = status
	if trackingNumber != "" {
		o.TrackingNumber = trackingNumber
	}
	return nil
}

// Payment provider fakes.

type approvingProvider struct{ calls int }

func (p *approvingProvider) Authorize(_ context.Context, _ string, _ decimal.Decimal) error {
	p.calls++
	return nil
}

type slowProvider struct {
	delay time.Duration
	calls atomic.Int32
}

func (p *slowProvider) Authorize(ctx context.Context, _ string, _ decimal.Decimal) error {
	p.calls.Add(1)
	select {
	case <-time.After(p.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type decliningProvider struct{}

func (decliningProvider) Authorize(_ context.Context, _ string, _ decimal.Decimal) error {
	return errors.New("provider declined the transaction")
}
