package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharathg-scrimpify/accord/internal/domain"
)

// Walks a contract through the full happy path, reloading from the database
// at each step so persistence is part of the journey.
func TestLifecycle_FullJourneyToCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.contracts.Create(ctx, testInput())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, c.Status)
	assert.Equal(t, 25, c.Progress)

	_, err = env.contracts.Sign(ctx, c.ID, payer, "Alice Jensen")
	require.NoError(t, err)
	_, err = env.contracts.SelectPaymentMethod(ctx, c.ID, domain.PaymentOneTime, "", payer)
	require.NoError(t, err)

	c, err = env.contracts.Advance(ctx, c.ID, domain.EventSendForReview, payer)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingReview, c.Status)
	assert.Equal(t, 40, c.Progress)

	c, err = env.contracts.Sign(ctx, c.ID, payee, "Bob Okafor")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, c.Status)
	assert.Equal(t, 60, c.Progress)

	c, err = env.contracts.Advance(ctx, c.ID, domain.EventStart, payer)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, c.Status)

	c, err = env.contracts.Advance(ctx, c.ID, domain.EventRequestCompletion, payee)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingCompletion, c.Status)
	assert.Equal(t, 90, c.Progress)

	c, err = env.contracts.Advance(ctx, c.ID, domain.EventConfirmCompletion, payee)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingCompletion, c.Status, "one confirmation is not enough")
	assert.True(t, c.PayeeConfirmed)

	c, err = env.contracts.Advance(ctx, c.ID, domain.EventConfirmCompletion, payer)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, c.Status)
	assert.Equal(t, 100, c.Progress)

	reloaded, err := env.contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, reloaded.Status)

	actions := make([]string, 0, len(reloaded.History))
	for _, h := range reloaded.History {
		actions = append(actions, h.Action)
	}
	assert.Equal(t, []string{
		"Contract Signed",
		"Payment Method Selected",
		"Sent for Review",
		"Contract Signed",
		"Contract Started",
		"Completion Requested",
		"Completion Confirmed",
		"Contract Completed",
	}, actions)
}

func TestLifecycle_SendForReviewGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.contracts.Create(ctx, testInput())
	require.NoError(t, err)

	// Unsigned: the signature guard fires first.
	_, err = env.contracts.Advance(ctx, c.ID, domain.EventSendForReview, payer)
	assert.ErrorIs(t, err, domain.ErrSignatureRequired)

	_, err = env.contracts.Sign(ctx, c.ID, payer, "Alice Jensen")
	require.NoError(t, err)

	// Signed but no payment method.
	_, err = env.contracts.Advance(ctx, c.ID, domain.EventSendForReview, payer)
	assert.ErrorIs(t, err, domain.ErrPaymentMethodRequired)

	// A failed advance persists nothing.
	reloaded, err := env.contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, reloaded.Status)
	assert.Len(t, reloaded.History, 1)
}

func TestLifecycle_CancelFromAnyNonTerminalStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.contracts.Create(ctx, testInput())
	require.NoError(t, err)

	c, err = env.contracts.Advance(ctx, c.ID, domain.EventCancel, payee)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, c.Status)
	assert.Equal(t, 0, c.Progress)

	// Terminal: no further lifecycle events.
	_, err = env.contracts.Advance(ctx, c.ID, domain.EventCancel, payer)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = env.contracts.Advance(ctx, c.ID, domain.EventStart, payer)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLifecycle_RoleEnforcementThroughService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.contracts.Create(ctx, testInput())
	require.NoError(t, err)
	_, err = env.contracts.Sign(ctx, c.ID, payer, "Alice Jensen")
	require.NoError(t, err)
	_, err = env.contracts.SelectPaymentMethod(ctx, c.ID, domain.PaymentOneTime, "", payer)
	require.NoError(t, err)

	_, err = env.contracts.Advance(ctx, c.ID, domain.EventSendForReview, payee)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	_, err = env.contracts.SelectPaymentMethod(ctx, c.ID, domain.PaymentOneTime, "", payee)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}
