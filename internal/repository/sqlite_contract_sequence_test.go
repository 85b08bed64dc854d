package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharathg-scrimpify/accord/internal/db"
	"github.com/bharathg-scrimpify/accord/internal/testutil"
)

func TestSequenceRepo_StartsAtOne(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSequenceRepo(database)
	ctx := context.Background()

	seq1, err := repo.NextContractSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, seq1)

	seq2, err := repo.NextContractSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, seq2)
}

func TestFormatShortCode(t *testing.T) {
	assert.Equal(t, "CT0001", FormatShortCode(1))
	assert.Equal(t, "CT0042", FormatShortCode(42))
	assert.Equal(t, "CT12345", FormatShortCode(12345))
}

// newFileTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in
// the pool, which is required to exercise real concurrent allocation.
func newFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seq_test.db")
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSequenceRepo_ConcurrentAllocationsAreUnique(t *testing.T) {
	database := newFileTestDB(t)
	repo := NewSQLiteSequenceRepo(database)
	ctx := context.Background()

	const workers = 10
	results := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := repo.NextContractSeq(ctx)
			assert.NoError(t, err)
			results <- seq
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for seq := range results {
		assert.False(t, seen[seq], "duplicate sequence %d", seq)
		seen[seq] = true
	}
	assert.Len(t, seen, workers)
}
