package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bharathg-scrimpify/accord/internal/domain"
	"github.com/bharathg-scrimpify/accord/internal/repository"
	"github.com/bharathg-scrimpify/accord/internal/testutil"
)

func TestFormatContractList_UsesShortCode(t *testing.T) {
	summaries := []repository.ContractSummary{
		{
			ID:           "12345678-aaaa-bbbb-cccc-1234567890ab",
			ShortCode:    "CT0007",
			FromName:     "Alice Jensen",
			ToName:       "Bob Okafor",
			Status:       domain.StatusInProgress,
			Progress:     75,
			TotalPayable: testutil.USD("1000.00"),
			UpdatedAt:    time.Now().UTC(),
		},
	}

	out := FormatContractList(summaries)
	assert.Contains(t, out, "CT0007")
	assert.NotContains(t, out, "12345678")
	assert.Contains(t, out, "Alice Jensen")
	assert.Contains(t, out, "In Progress")
}

func TestFormatContractList_FallsBackToUUIDPrefix(t *testing.T) {
	summaries := []repository.ContractSummary{
		{
			ID:           "abcdef12-3456-7890-abcd-ef1234567890",
			FromName:     "Alice Jensen",
			ToName:       "Bob Okafor",
			Status:       domain.StatusDraft,
			Progress:     25,
			TotalPayable: testutil.USD("1000.00"),
		},
	}

	out := FormatContractList(summaries)
	assert.Contains(t, out, "abcdef12")
}

func TestFormatContractDetail(t *testing.T) {
	c := testutil.NewTestContract(
		testutil.WithSelectedPartial(domain.FrequencyMonthly),
		testutil.WithHistoryEntry("Contract Signed", "Alice Jensen"),
	)

	out := FormatContractDetail(c)
	assert.Contains(t, out, c.ShortCode)
	assert.Contains(t, out, "PAYER")
	assert.Contains(t, out, "Bob Okafor")
	assert.Contains(t, out, "USD 1000.00")
	assert.Contains(t, out, "partial, monthly")
	assert.Contains(t, out, "MONTHLY")
	assert.Contains(t, out, "(selected)")
	assert.Contains(t, out, "WEEKLY")
	assert.Contains(t, out, "Contract Signed")
	assert.Contains(t, out, "unsigned")
}

func TestFormatPaymentPlan_NoSelection(t *testing.T) {
	out := FormatPaymentPlan(testutil.NewTestPlan())
	assert.Contains(t, out, "not selected")
	assert.Contains(t, out, "USD 900.00")
}
