package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardGateway_ApprovesAfterDelay(t *testing.T) {
	g := NewCardGateway(10 * time.Millisecond)

	start := time.Now()
	err := g.Authorize(context.Background(), "", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestCardGateway_CancelledContext(t *testing.T) {
	g := NewCardGateway(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.Authorize(ctx, "", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHostedProvider_CapturesOrder(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p := NewHostedProvider(srv.URL, time.Second)
	err := p.Authorize(context.Background(), "EXT-123", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "/v2/checkout/orders/EXT-123/capture", gotPath)
}

func TestHostedProvider_DeclinesOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	p := NewHostedProvider(srv.URL, time.Second)
	err := p.Authorize(context.Background(), "EXT-123", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPaymentDeclined)
}
