package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/peacockstore/peacock-api/internal/cart"
	"github.com/peacockstore/peacock-api/internal/checkout"
	"github.com/peacockstore/peacock-api/internal/model"
	"github.com/peacockstore/peacock-api/internal/payment"
)

var (
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrPaymentFailed        = errors.New("payment failed, please try again")
)

type PaymentMethod string

const (
	MethodCard     PaymentMethod = "card"
	MethodExternal PaymentMethod = "external"
)

// CheckoutService drives a session through shipping, payment and
// confirmation. The invariant it protects: an order is persisted and the
// cart cleared strictly before the session reaches confirmation, and a
// failed persistence leaves both session and cart untouched.
type CheckoutService struct {
	sessions *checkout.Store
	carts    *cart.Store
	orders   *OrderService
	card     payment.Provider
	external payment.Provider
	gate     *OfflineGate
}

func NewCheckoutService(
	sessions *checkout.Store,
	carts *cart.Store,
	orders *OrderService,
	card payment.Provider,
	external payment.Provider,
	gate *OfflineGate,
) *CheckoutService {
	return &CheckoutService{
		sessions: sessions,
		carts:    carts,
		orders:   orders,
		card:     card,
		external: external,
		gate:     gate,
	}
}

// Start snapshots the cart and opens a session in the shipping step.
func (s *CheckoutService) Start(cartID uuid.UUID) (checkout.Session, error) {
	items, err := s.carts.Snapshot(cartID)
	if err != nil {
		return checkout.Session{}, err
	}
	return s.sessions.Create(cartID, items)
}

func (s *CheckoutService) Get(sessionID uuid.UUID) (checkout.Session, error) {
	return s.sessions.Get(sessionID)
}

func (s *CheckoutService) SubmitShipping(sessionID uuid.UUID, details model.ShippingDetails, termsAccepted bool) error {
	return s.sessions.SubmitShipping(sessionID, details, termsAccepted)
}

// Pay claims the session, authorizes the payment, persists the order,
// clears the cart and only then confirms. The claim is atomic, so
// concurrent attempts on one session produce at most one order; every
// failure releases the claim for a user-initiated retry. In offline mode
// the attempt is rejected before any provider is contacted.
func (s *CheckoutService) Pay(ctx context.Context, sessionID uuid.UUID, method PaymentMethod, card checkout.CardDetails, providerOrderID string) (*model.Order, error) {
	if err := s.gate.Check(); err != nil {
		return nil, err
	}

	sess, err := s.sessions.BeginPayment(sessionID)
	if err != nil {
		return nil, err
	}

	totals := sess.Totals()

	switch method {
	case MethodCard:
		if err := checkout.ValidateCard(card); err != nil {
			s.sessions.AbortPayment(sessionID)
			return nil, err
		}
		if err := s.card.Authorize(ctx, sess.ID.String(), totals.Total); err != nil {
			s.sessions.AbortPayment(sessionID)
			return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, err)
		}
	case MethodExternal:
		if err := s.external.Authorize(ctx, providerOrderID, totals.Total); err != nil {
			s.sessions.AbortPayment(sessionID)
			return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, err)
		}
	default:
		s.sessions.AbortPayment(sessionID)
		return nil, ErrUnknownPaymentMethod
	}

	order, err := s.orders.Submit(ctx, sess.Shipping.Email, sess.Items, totals.Total, sess.Shipping)
	if err != nil {
		s.sessions.AbortPayment(sessionID)
		return nil, err
	}

	s.carts.Clear(sess.CartID)
	if err := s.sessions.Confirm(sessionID); err != nil {
		// The order is on record; only the session bookkeeping failed.
		return order, nil
	}
	return order, nil
}

// Finish ends the session after the confirmation screen.
func (s *CheckoutService) Finish(sessionID uuid.UUID) {
	s.sessions.Discard(sessionID)
}
