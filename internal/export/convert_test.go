package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharathg-scrimpify/accord/internal/domain"
	"github.com/bharathg-scrimpify/accord/internal/testutil"
)

func TestToDocument(t *testing.T) {
	c := testutil.NewTestContract(testutil.WithSelectedPartial(domain.FrequencyMonthly))

	doc := ToDocument(c)
	assert.Equal(t, c.ID, doc.Contract.ID)
	assert.Equal(t, "draft", doc.Contract.Status)
	assert.Equal(t, "Alice Jensen", doc.Contract.From.Name)
	assert.Equal(t, "2025-04-01", doc.Contract.Details.StartDate)
	assert.Equal(t, "USD", doc.Payment.Currency)
	assert.Equal(t, "1000", doc.Payment.TotalPayable)
	assert.Equal(t, "partial", doc.Payment.SelectedType)
	assert.Equal(t, "monthly", doc.Payment.SelectedFrequency)

	require.Len(t, doc.Payment.Schedules, 2)
	monthly := doc.Payment.Schedules[0]
	require.Len(t, monthly.Tranches, 2)
	assert.Equal(t, "500", monthly.Tranches[0].Amount)
	assert.Equal(t, "not_paid", monthly.Tranches[0].Status)
	assert.Nil(t, monthly.Tranches[0].RequestDate)
}

func TestFromDocument_RoundTrip(t *testing.T) {
	now := time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)
	c := testutil.NewTestContract(testutil.WithSelectedPartial(domain.FrequencyMonthly))
	next, err := c.Sign(domain.Actor{Role: domain.RolePayer, Name: "Alice Jensen"}, "Alice Jensen", now)
	require.NoError(t, err)
	next, err = next.RequestPayment(0, domain.Actor{Role: domain.RolePayee, Name: "Bob Okafor"}, now)
	require.NoError(t, err)

	doc := ToDocument(&next)
	require.Empty(t, ValidateDocument(doc))

	back, err := FromDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, next.ID, back.ID)
	assert.Equal(t, next.Status, back.Status)
	assert.Equal(t, next.Progress, back.Progress)
	assert.Equal(t, "Alice Jensen", back.From.Signature)
	assert.True(t, back.Payment.TotalPayable.Equal(next.Payment.TotalPayable))
	assert.Equal(t, next.Payment.SelectedFrequency, back.Payment.SelectedFrequency)

	sched, ok := back.Payment.ActiveSchedule()
	require.True(t, ok)
	assert.Equal(t, domain.TrancheRequested, sched.Tranches[0].Status)
	require.NotNil(t, sched.Tranches[0].RequestDate)
	assert.True(t, sched.Tranches[0].RequestDate.Equal(now))

	require.Len(t, back.History, len(next.History))
	assert.Equal(t, next.History[0].Action, back.History[0].Action)
}

func TestFromDocument_FillsDefaults(t *testing.T) {
	doc := validMinimalDocument()

	c, err := FromDocument(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, domain.StatusDraft, c.Status)
	assert.Equal(t, 25, c.Progress)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestFromDocument_BadDate(t *testing.T) {
	doc := validMinimalDocument()
	doc.Contract.Details.EndDate = "June 1st"

	_, err := FromDocument(doc)
	assert.Error(t, err)
}

func TestLoadWriteDocument_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.json")
	c := testutil.NewTestContract()

	require.NoError(t, WriteDocument(ToDocument(c), path))

	loaded, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, c.ID, loaded.Contract.ID)
	assert.Equal(t, "1000", loaded.Payment.TotalPayable)
	require.Len(t, loaded.Payment.Schedules, 2)
}
