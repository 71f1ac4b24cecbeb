package checkout

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peacockstore/peacock-api/internal/model"
)

func snapshotItem(id int64, action model.CartAction, buy, rent float64) model.CartItem {
	return model.CartItem{
		Product: model.Product{
			ID:        id,
			Name:      "Item",
			Category:  model.CategoryWomen,
			ImageURLs: []string{"https://example.com/a.jpg"},
			BuyPrice:  decimal.NewFromFloat(buy),
			RentPrice: decimal.NewFromFloat(rent),
		},
		Quantity: 1,
		Action:   action,
	}
}

func validShipping() model.ShippingDetails {
	return model.ShippingDetails{
		FullName: "Priya S.",
		Email:    "priya@example.com",
		Address:  "12 Garden Lane",
		City:     "New York",
		State:    "NY",
		ZipCode:  "10001",
		Country:  "USA",
	}
}

func TestComputeTotals(t *testing.T) {
	items := []model.CartItem{
		snapshotItem(1, model.ActionBuy, 100, 20),
		snapshotItem(2, model.ActionRent, 300, 40),
	}
	totals := ComputeTotals(items)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(140)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Taxes.Equal(decimal.NewFromFloat(11.2)), "taxes %s", totals.Taxes)
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(151.20)), "total %s", totals.Total)
}

func TestComputeTotals_RoundsToCents(t *testing.T) {
	items := []model.CartItem{snapshotItem(1, model.ActionRent, 100, 33.33)}
	totals := ComputeTotals(items)
	// 33.33 * 1.08 = 35.9964
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(36.00)), "total %s", totals.Total)
}

func TestStore_CreateRequiresItems(t *testing.T) {
	store := NewStore()
	_, err := store.Create(uuid.New(), nil)
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestStore_ShippingGating(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(uuid.New(), []model.CartItem{snapshotItem(1, model.ActionBuy, 100, 20)})
	require.NoError(t, err)
	require.Equal(t, StepShipping, sess.Step)

	incomplete := validShipping()
	incomplete.City = ""
	assert.ErrorIs(t, store.SubmitShipping(sess.ID, incomplete, true), ErrIncompleteShipping)

	assert.ErrorIs(t, store.SubmitShipping(sess.ID, validShipping(), false), ErrTermsNotAccepted)
	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepShipping, got.Step)

	require.NoError(t, store.SubmitShipping(sess.ID, validShipping(), true))
	got, err = store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepPayment, got.Step)
}

func TestStore_NoBackwardTransitions(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(uuid.New(), []model.CartItem{snapshotItem(1, model.ActionBuy, 100, 20)})
	require.NoError(t, err)

	// Confirming before the payment step is illegal, claimed or not.
	assert.ErrorIs(t, store.Confirm(sess.ID), ErrWrongStep)
	_, err = store.BeginPayment(sess.ID)
	assert.ErrorIs(t, err, ErrWrongStep)

	require.NoError(t, store.SubmitShipping(sess.ID, validShipping(), true))

	// Confirm only works through a claimed attempt.
	assert.ErrorIs(t, store.Confirm(sess.ID), ErrWrongStep)
	_, err = store.BeginPayment(sess.ID)
	require.NoError(t, err)
	require.NoError(t, store.Confirm(sess.ID))

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, got.Step)

	// Nothing moves a confirmed session backwards.
	assert.ErrorIs(t, store.SubmitShipping(sess.ID, validShipping(), true), ErrWrongStep)
	assert.ErrorIs(t, store.Confirm(sess.ID), ErrWrongStep)
	_, err = store.BeginPayment(sess.ID)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestStore_BeginPaymentSingleClaim(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(uuid.New(), []model.CartItem{snapshotItem(1, model.ActionBuy, 100, 20)})
	require.NoError(t, err)
	require.NoError(t, store.SubmitShipping(sess.ID, validShipping(), true))

	claimed, err := store.BeginPayment(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepPaying, claimed.Step)
	assert.Equal(t, "priya@example.com", claimed.Shipping.Email)

	_, err = store.BeginPayment(sess.ID)
	assert.ErrorIs(t, err, ErrWrongStep)

	// A failed attempt releases the claim for a retry.
	store.AbortPayment(sess.ID)
	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepPayment, got.Step)

	_, err = store.BeginPayment(sess.ID)
	require.NoError(t, err)
}

func TestStore_BeginPaymentConcurrent(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(uuid.New(), []model.CartItem{snapshotItem(1, model.ActionBuy, 100, 20)})
	require.NoError(t, err)
	require.NoError(t, store.SubmitShipping(sess.ID, validShipping(), true))

	const attempts = 8
	var wg sync.WaitGroup
	wins := make(chan struct{}, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.BeginPayment(sess.ID); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)
	assert.Len(t, wins, 1, "exactly one concurrent attempt may claim the session")
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(uuid.New(), []model.CartItem{snapshotItem(1, model.ActionBuy, 100, 20)})
	require.NoError(t, err)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	got.Items[0].Product.Name = "mutated"
	got.Step = StepConfirmation

	again, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Item", again.Items[0].Product.Name)
	assert.Equal(t, StepShipping, again.Step)
}

func TestStore_Discard(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(uuid.New(), []model.CartItem{snapshotItem(1, model.ActionBuy, 100, 20)})
	require.NoError(t, err)

	store.Discard(sess.ID)
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_SweepEvictsIdleSessions(t *testing.T) {
	store := NewStore()
	stale, err := store.Create(uuid.New(), []model.CartItem{snapshotItem(1, model.ActionBuy, 100, 20)})
	require.NoError(t, err)
	fresh, err := store.Create(uuid.New(), []model.CartItem{snapshotItem(2, model.ActionRent, 100, 20)})
	require.NoError(t, err)

	store.sessions[stale.ID].lastActive = time.Now().Add(-2 * time.Hour)

	assert.Equal(t, 1, store.Sweep(time.Hour))

	_, err = store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestValidateCard(t *testing.T) {
	valid := CardDetails{Number: "4111111111111111", Expiry: "12/25", CVC: "123"}
	assert.NoError(t, ValidateCard(valid))

	spaced := CardDetails{Number: "4111 1111 1111 1111", Expiry: "12 / 25", CVC: "1234"}
	assert.NoError(t, ValidateCard(spaced))

	badNumber := CardDetails{Number: "123", Expiry: "12/25", CVC: "123"}
	assert.ErrorIs(t, ValidateCard(badNumber), ErrInvalidCardNumber)

	noSlash := CardDetails{Number: "4111111111111111", Expiry: "1225", CVC: "123"}
	assert.ErrorIs(t, ValidateCard(noSlash), ErrInvalidExpiry)

	badCVC := CardDetails{Number: "4111111111111111", Expiry: "12/25", CVC: "12"}
	assert.ErrorIs(t, ValidateCard(badCVC), ErrInvalidCVC)

	// Number is checked first when several fields are wrong.
	allBad := CardDetails{Number: "x", Expiry: "x", CVC: "x"}
	assert.ErrorIs(t, ValidateCard(allBad), ErrInvalidCardNumber)
}
