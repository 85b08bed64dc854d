package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notPaidTranche(t *testing.T) PaymentTranche {
	t.Helper()
	return PaymentTranche{
		DueDate: date(2025, time.April, 1),
		Amount:  usd(t, "500.00"),
		Status:  TrancheNotPaid,
	}
}

func TestTranche_RequestThenApprove(t *testing.T) {
	now := date(2025, time.March, 15)
	tr := notPaidTranche(t)

	requested, err := tr.Request(now)
	require.NoError(t, err)
	assert.Equal(t, TrancheRequested, requested.Status)
	require.NotNil(t, requested.RequestDate)
	assert.Equal(t, now, *requested.RequestDate)
	assert.Equal(t, TrancheNotPaid, tr.Status, "receiver must not change")

	payDay := date(2025, time.March, 20)
	paid, err := requested.Approve(payDay)
	require.NoError(t, err)
	assert.Equal(t, TranchePaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, payDay, *paid.PaymentDate)
}

func TestTranche_RequestThenCancel(t *testing.T) {
	now := date(2025, time.March, 15)
	requested, err := notPaidTranche(t).Request(now)
	require.NoError(t, err)

	cancelled, err := requested.Cancel()
	require.NoError(t, err)
	assert.Equal(t, TrancheCancelled, cancelled.Status)
}

func TestTranche_TerminalStatesRejectRetry(t *testing.T) {
	now := date(2025, time.March, 15)
	requested, err := notPaidTranche(t).Request(now)
	require.NoError(t, err)

	paid, err := requested.Approve(now)
	require.NoError(t, err)
	cancelled, err := requested.Cancel()
	require.NoError(t, err)

	for _, terminal := range []PaymentTranche{paid, cancelled} {
		_, err = terminal.Request(now)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = terminal.Approve(now)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = terminal.Cancel()
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestTranche_ApproveRequiresRequest(t *testing.T) {
	now := date(2025, time.March, 15)
	_, err := notPaidTranche(t).Approve(now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = notPaidTranche(t).Cancel()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTrancheStatus_Terminal(t *testing.T) {
	assert.False(t, TrancheNotPaid.Terminal())
	assert.False(t, TrancheRequested.Terminal())
	assert.True(t, TranchePaid.Terminal())
	assert.True(t, TrancheCancelled.Terminal())
}
