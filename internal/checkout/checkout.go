// Package checkout implements the shipping, payment and confirmation
// steps of a checkout session over an immutable cart snapshot.
package checkout

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peacockstore/peacock-api/internal/model"
)

type Step string

const (
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepPaying       Step = "paying"
	StepConfirmation Step = "confirmation"
)

var (
	ErrSessionNotFound    = errors.New("checkout session not found")
	ErrEmptySnapshot      = errors.New("cart is empty")
	ErrWrongStep          = errors.New("operation not valid in current checkout step")
	ErrIncompleteShipping = errors.New("all shipping fields are required")
	ErrTermsNotAccepted   = errors.New("terms and conditions must be accepted")
)

// taxRate is the fixed 8% multiplier applied on top of the subtotal.
var taxRate = decimal.NewFromFloat(0.08)

type Totals struct {
	Subtotal decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives the order summary from the snapshot. It is a pure
// function: every step recomputes it from the same snapshot, so the
// figures cannot drift between views.
func ComputeTotals(items []model.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	taxes := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal,
		Taxes:    taxes,
		Total:    subtotal.Add(taxes).Round(2),
	}
}

// Session is one checkout invocation. Items is the snapshot taken at
// entry and never changes afterwards. The store hands out copies, never
// its own record.
type Session struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	Items     []model.CartItem
	Step      Step
	Shipping  model.ShippingDetails
	CreatedAt time.Time

	lastActive time.Time
}

func (s *Session) Totals() Totals {
	return ComputeTotals(s.Items)
}

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// Create opens a session on a non-empty snapshot.
func (s *Store) Create(cartID uuid.UUID, items []model.CartItem) (Session, error) {
	if len(items) == 0 {
		return Session{}, ErrEmptySnapshot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	sess := &Session{
		ID:         uuid.New(),
		CartID:     cartID,
		Items:      items,
		Step:       StepShipping,
		CreatedAt:  now,
		lastActive: now,
	}
	s.sessions[sess.ID] = sess
	return copySession(sess), nil
}

func (s *Store) Get(id uuid.UUID) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return copySession(sess), nil
}

// SubmitShipping moves the session from shipping to payment. Every field
// must be present and the terms accepted; no further format checks happen
// at this step.
func (s *Store) SubmitShipping(id uuid.UUID, details model.ShippingDetails, termsAccepted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.Step != StepShipping {
		return ErrWrongStep
	}
	if !shippingComplete(details) {
		return ErrIncompleteShipping
	}
	if !termsAccepted {
		return ErrTermsNotAccepted
	}
	sess.Shipping = details
	sess.Step = StepPayment
	sess.lastActive = time.Now()
	return nil
}

// BeginPayment claims the session for a single payment attempt. The
// transition from payment to paying happens under the store lock, so of
// several concurrent attempts exactly one wins; the rest see ErrWrongStep.
// The returned copy carries the snapshot and shipping the attempt must
// use.
func (s *Store) BeginPayment(id uuid.UUID) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if sess.Step != StepPayment {
		return Session{}, ErrWrongStep
	}
	sess.Step = StepPaying
	sess.lastActive = time.Now()
	return copySession(sess), nil
}

// AbortPayment releases a claim after a failed attempt, putting the
// session back on the payment step for a retry.
func (s *Store) AbortPayment(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	if sess.Step == StepPaying {
		sess.Step = StepPayment
		sess.lastActive = time.Now()
	}
}

// Confirm marks the session complete. It is only legal from a claimed
// payment attempt, after the order has been persisted.
func (s *Store) Confirm(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.Step != StepPaying {
		return ErrWrongStep
	}
	sess.Step = StepConfirmation
	sess.lastActive = time.Now()
	return nil
}

// Discard drops the session; the "continue shopping" exit and abandoned
// flows both end here.
func (s *Store) Discard(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep evicts sessions idle longer than ttl and reports how many were
// dropped. A session mid-payment counts as active through its last
// transition.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func copySession(sess *Session) Session {
	cp := *sess
	cp.Items = make([]model.CartItem, len(sess.Items))
	copy(cp.Items, sess.Items)
	return cp
}

func shippingComplete(d model.ShippingDetails) bool {
	return d.FullName != "" && d.Email != "" && d.Address != "" &&
		d.City != "" && d.State != "" && d.ZipCode != "" && d.Country != ""
}
