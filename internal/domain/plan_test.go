package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan(t *testing.T) PaymentPlan {
	t.Helper()
	monthly, err := GenerateSchedule(usd(t, "1000.00"), FrequencyMonthly, 2, date(2025, time.April, 1))
	require.NoError(t, err)
	weekly, err := GenerateSchedule(usd(t, "1000.00"), FrequencyWeekly, 4, date(2025, time.April, 1))
	require.NoError(t, err)
	return PaymentPlan{
		TotalPayable:    usd(t, "1000.00"),
		TotalReceivable: usd(t, "900.00"),
		FeeFromPayer:    usd(t, "50.00"),
		FeeFromPayee:    usd(t, "50.00"),
		Schedules:       []PaymentSchedule{monthly, weekly},
	}
}

func TestPlan_SelectOneTime(t *testing.T) {
	plan := testPlan(t)
	selected := plan.SelectOneTime()

	assert.Equal(t, PaymentOneTime, selected.SelectedType)
	assert.Empty(t, selected.SelectedFrequency)
	assert.False(t, plan.Selected(), "receiver must not change")

	_, ok := selected.ActiveSchedule()
	assert.False(t, ok, "one-time plan has no active schedule")
}

func TestPlan_SelectPartial(t *testing.T) {
	plan := testPlan(t)
	selected, err := plan.SelectPartial(FrequencyMonthly)
	require.NoError(t, err)

	assert.Equal(t, PaymentPartial, selected.SelectedType)
	assert.Equal(t, FrequencyMonthly, selected.SelectedFrequency)

	sched, ok := selected.ActiveSchedule()
	require.True(t, ok)
	assert.Equal(t, FrequencyMonthly, sched.Frequency)
	assert.Len(t, sched.Tranches, 2)
}

func TestPlan_SelectPartialUnknownFrequency(t *testing.T) {
	plan := testPlan(t)
	_, err := plan.SelectPartial(FrequencyDaily)
	assert.ErrorIs(t, err, ErrNoScheduleForFrequency)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlan_SelectOneTimeClearsFrequency(t *testing.T) {
	plan, err := testPlan(t).SelectPartial(FrequencyWeekly)
	require.NoError(t, err)

	onetime := plan.SelectOneTime()
	assert.Empty(t, onetime.SelectedFrequency)
	_, ok := onetime.ActiveSchedule()
	assert.False(t, ok)
}

func TestPlan_ActiveScheduleUnselected(t *testing.T) {
	_, ok := testPlan(t).ActiveSchedule()
	assert.False(t, ok)
}

func TestPlan_CheckAccounting(t *testing.T) {
	plan := testPlan(t)
	assert.NoError(t, plan.CheckAccounting())

	plan.FeeFromPayer = usd(t, "75.00")
	assert.ErrorIs(t, plan.CheckAccounting(), ErrValidation)
}
