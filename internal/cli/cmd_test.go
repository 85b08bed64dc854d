package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharathg-scrimpify/accord/internal/repository"
	"github.com/bharathg-scrimpify/accord/internal/service"
	"github.com/bharathg-scrimpify/accord/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	contracts := repository.NewSQLiteContractRepo(database)

	return &App{
		Contracts: service.NewContractService(contracts, uow),
		Payments:  service.NewPaymentService(contracts, uow),
		Admin:     service.NewAdminService(uow),
	}
}

// seedContract drafts a contract through the CLI and returns its short code.
func seedContract(t *testing.T, app *App) string {
	t.Helper()
	out, err := executeCmd(t, app, "contract", "add",
		"--from-name", "Alice Jensen",
		"--to-name", "Bob Okafor",
		"--place", "Oslo",
		"--start", "2025-04-01",
		"--end", "2025-06-01",
		"--rate", "USD 500/day",
		"--total", "1000",
		"--receivable", "900",
		"--fee-payer", "50",
		"--fee-payee", "50",
		"--monthly", "2",
		"--weekly", "4",
	)
	require.NoError(t, err)
	require.Contains(t, out, "Created contract CT0001")
	return "CT0001"
}

// advanceToActive drives a seeded contract through signing and review.
func advanceToActive(t *testing.T, app *App, code string) {
	t.Helper()
	mustRun(t, app, "contract", "sign", code, "--as", "payer")
	mustRun(t, app, "contract", "select-payment", code, "--type", "partial", "--frequency", "monthly")
	mustRun(t, app, "contract", "send", code)
	mustRun(t, app, "contract", "sign", code, "--as", "payee")
}

func mustRun(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, "command %v failed: %s", args, out)
	return out
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- contract commands ---

func TestContractAdd_RequiresValidDates(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "contract", "add",
		"--from-name", "Alice Jensen",
		"--to-name", "Bob Okafor",
		"--start", "not-a-date",
		"--end", "2025-06-01",
		"--total", "1000",
		"--receivable", "900",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start date")
}

func TestContractList_ShowsSeededContract(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	out := mustRun(t, app, "contract", "list")
	assert.Contains(t, out, code)
	assert.Contains(t, out, "Alice Jensen")
	assert.Contains(t, out, "Bob Okafor")
}

func TestContractList_EmptyDatabase(t *testing.T) {
	app := testApp(t)

	out := mustRun(t, app, "contract", "list")
	assert.Contains(t, out, "No contracts found.")
}

func TestContractList_StatusFilter(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	out := mustRun(t, app, "contract", "list", "--status", "draft")
	assert.Contains(t, out, code)

	out = mustRun(t, app, "contract", "list", "--status", "active,in_progress")
	assert.Contains(t, out, "No contracts found.")

	_, err := executeCmd(t, app, "contract", "list", "--status", "bogus")
	require.Error(t, err)
}

func TestContractShow_ByShortCodeAndPrefix(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	out := mustRun(t, app, "contract", "show", code)
	assert.Contains(t, out, "Alice Jensen")
	assert.Contains(t, out, "USD 1000.00")
	assert.Contains(t, out, "Oslo")

	// Short codes resolve case-insensitively.
	out = mustRun(t, app, "contract", "show", "ct0001")
	assert.Contains(t, out, "Alice Jensen")
}

func TestContractShow_UnknownID(t *testing.T) {
	app := testApp(t)
	seedContract(t, app)

	_, err := executeCmd(t, app, "contract", "show", "CT9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract not found")
}

func TestContractLifecycle_FullFlow(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	out := mustRun(t, app, "contract", "sign", code, "--as", "payer")
	assert.Contains(t, out, "draft")

	mustRun(t, app, "contract", "select-payment", code, "--type", "partial", "--frequency", "monthly")

	out = mustRun(t, app, "contract", "send", code)
	assert.Contains(t, out, "Pending Review")

	out = mustRun(t, app, "contract", "sign", code, "--as", "payee")
	assert.Contains(t, out, "active")

	out = mustRun(t, app, "contract", "start", code)
	assert.Contains(t, out, "In Progress")

	out = mustRun(t, app, "contract", "request-completion", code)
	assert.Contains(t, out, "Pending Completion")

	mustRun(t, app, "contract", "confirm-completion", code, "--as", "payer")
	out = mustRun(t, app, "contract", "confirm-completion", code, "--as", "payee")
	assert.Contains(t, out, "Completed")
}

func TestContractSend_FailsWithoutPayerSignature(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	_, err := executeCmd(t, app, "contract", "send", code)
	require.Error(t, err)
}

func TestContractCancel_RequiresActor(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	_, err := executeCmd(t, app, "contract", "cancel", code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --as value")

	out := mustRun(t, app, "contract", "cancel", code, "--as", "payer")
	assert.Contains(t, out, "Cancelled")
}

func TestContractEdit_UpdatesDraftField(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	mustRun(t, app, "contract", "edit", code, "details", "place_of_service", "Bergen")

	out := mustRun(t, app, "contract", "show", code)
	assert.Contains(t, out, "Bergen")
}

func TestContractRemove_ForceRequiredAfterSigning(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)
	mustRun(t, app, "contract", "sign", code, "--as", "payer")

	_, err := executeCmd(t, app, "contract", "remove", code)
	require.Error(t, err)

	mustRun(t, app, "contract", "remove", code, "--force")
	_, err = executeCmd(t, app, "contract", "show", code)
	require.Error(t, err)
}

func TestContractExportImport_RoundTrip(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)
	path := t.TempDir() + "/contract.json"

	out := mustRun(t, app, "contract", "export", code, "--out", path)
	assert.Contains(t, out, path)

	out = mustRun(t, app, "contract", "import", "--file", path)
	assert.Contains(t, out, "Imported contract CT0002")

	out = mustRun(t, app, "contract", "show", "CT0002")
	assert.Contains(t, out, "Alice Jensen")
	assert.Contains(t, out, "USD 1000.00")
}

func TestContractImport_RejectsInvalidFile(t *testing.T) {
	app := testApp(t)
	path := t.TempDir() + "/bad.json"
	require.NoError(t, os.WriteFile(path, []byte(`{"contract":{"status":"frozen","progress":500}}`), 0o644))

	out, err := executeCmd(t, app, "contract", "import", "--file", path)
	require.Error(t, err)
	assert.Contains(t, out, "Import failed")
}

// --- payment commands ---

func TestPaymentRequestApprove_Flow(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)
	advanceToActive(t, app, code)

	out := mustRun(t, app, "payment", "request", code, "1")
	assert.Contains(t, out, "Requested payment for tranche 1")

	out = mustRun(t, app, "payment", "approve", code, "1")
	assert.Contains(t, out, "marked paid")

	out = mustRun(t, app, "contract", "show", code)
	assert.Contains(t, out, "paid")
}

func TestPaymentApprove_WithoutRequestFails(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)
	advanceToActive(t, app, code)

	_, err := executeCmd(t, app, "payment", "approve", code, "1")
	require.Error(t, err)
}

func TestPaymentCancel_RevertsRequest(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)
	advanceToActive(t, app, code)

	mustRun(t, app, "payment", "request", code, "1")
	out := mustRun(t, app, "payment", "cancel", code, "1")
	assert.Contains(t, out, "Cancelled payment request")
}

func TestPaymentCapture_ZeroHoldCommitsImmediately(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)
	advanceToActive(t, app, code)

	mustRun(t, app, "payment", "request", code, "1")
	out := mustRun(t, app, "payment", "capture", code, "1")
	assert.Contains(t, out, "captured")
}

func TestPaymentCommands_RejectBadTrancheNumber(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)
	advanceToActive(t, app, code)

	_, err := executeCmd(t, app, "payment", "request", code, "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tranche number")
}

// --- admin commands ---

func TestAdminSetStatus_Overrides(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	out := mustRun(t, app, "admin", "set-status", code, "in_progress")
	assert.Contains(t, out, "in_progress")

	_, err := executeCmd(t, app, "admin", "set-status", code, "frozen")
	require.Error(t, err)
}

func TestAdminSetProgress_Overrides(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	out := mustRun(t, app, "admin", "set-progress", code, "42")
	assert.Contains(t, out, "42%")

	_, err := executeCmd(t, app, "admin", "set-progress", code, "120")
	require.Error(t, err)
}

func TestAdminSetTranche_Overrides(t *testing.T) {
	app := testApp(t)
	code := seedContract(t, app)

	out := mustRun(t, app, "admin", "set-tranche", code, "2",
		"--frequency", "weekly", "--status", "paid", "--payment-date", "2025-04-20")
	assert.Contains(t, out, "set to paid")

	_, err := executeCmd(t, app, "admin", "set-tranche", code, "1",
		"--frequency", "daily", "--status", "paid")
	require.Error(t, err)
}
