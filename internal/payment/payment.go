// Package payment holds the two authorization paths the checkout can
// take: a simulated card gateway and a hosted external provider.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

var ErrPaymentDeclined = errors.New("payment was declined")

// Provider authorizes a payment for the given amount. ref identifies the
// transaction on the provider side; the card gateway ignores it.
type Provider interface {
	Authorize(ctx context.Context, ref string, amount decimal.Decimal) error
}

// CardGateway stands in for a real card processor. It holds the request
// for a configured delay and then approves; validation of the card fields
// happens before the gateway is reached.
type CardGateway struct {
	delay time.Duration
}

func NewCardGateway(delay time.Duration) *CardGateway {
	return &CardGateway{delay: delay}
}

func (g *CardGateway) Authorize(ctx context.Context, _ string, _ decimal.Decimal) error {
	timer := time.NewTimer(g.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HostedProvider captures an order previously approved in the provider's
// own widget. ref is the provider-side order id handed back by the
// widget.
type HostedProvider struct {
	baseURL string
	client  *http.Client
}

func NewHostedProvider(baseURL string, timeout time.Duration) *HostedProvider {
	return &HostedProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HostedProvider) Authorize(ctx context.Context, ref string, _ decimal.Decimal) error {
	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", p.baseURL, ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("build capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("capture order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: provider returned %d", ErrPaymentDeclined, resp.StatusCode)
	}
	return nil
}
