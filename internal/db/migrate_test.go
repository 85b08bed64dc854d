package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_FreshDatabase(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"contracts", "payment_schedules", "payment_tranches", "history_entries", "contract_sequences"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	assert.NoError(t, Migrate(database))
	assert.NoError(t, Migrate(database))
}

func TestMigrate_SeedsSequenceAllocator(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var next int
	require.NoError(t, database.QueryRow(`SELECT next_seq FROM contract_sequences WHERE id = 'default'`).Scan(&next))
	assert.Equal(t, 1, next)
}

func TestMigrate_StatusCheckConstraint(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO contracts (id, from_name, to_name, status, created_at, updated_at)
		VALUES ('x', 'a', 'b', 'limbo', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown status must be rejected by the CHECK constraint")
}
