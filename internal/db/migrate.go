package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS contracts (
		id                 TEXT PRIMARY KEY,
		short_code         TEXT NOT NULL DEFAULT '',
		from_name          TEXT NOT NULL,
		from_email         TEXT NOT NULL DEFAULT '',
		from_organization  TEXT NOT NULL DEFAULT '',
		from_address       TEXT NOT NULL DEFAULT '',
		from_signature     TEXT NOT NULL DEFAULT '',
		to_name            TEXT NOT NULL,
		to_email           TEXT NOT NULL DEFAULT '',
		to_organization    TEXT NOT NULL DEFAULT '',
		to_address         TEXT NOT NULL DEFAULT '',
		to_signature       TEXT NOT NULL DEFAULT '',
		place_of_service   TEXT NOT NULL DEFAULT '',
		service_start      TEXT,
		service_end        TEXT,
		rate               TEXT NOT NULL DEFAULT '',
		meals_included     INTEGER NOT NULL DEFAULT 0,
		additional_details TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL DEFAULT 'draft'
		                   CHECK(status IN ('draft','pending_review','active','in_progress',
		                                    'pending_completion','completed','cancelled')),
		progress           INTEGER NOT NULL DEFAULT 25,
		currency           TEXT NOT NULL DEFAULT 'USD',
		total_payable      TEXT NOT NULL DEFAULT '0',
		total_receivable   TEXT NOT NULL DEFAULT '0',
		fee_from_payer     TEXT NOT NULL DEFAULT '0',
		fee_from_payee     TEXT NOT NULL DEFAULT '0',
		selected_type      TEXT NOT NULL DEFAULT ''
		                   CHECK(selected_type IN ('','one_time','partial')),
		selected_frequency TEXT NOT NULL DEFAULT ''
		                   CHECK(selected_frequency IN ('','monthly','weekly','daily')),
		payer_confirmed    INTEGER NOT NULL DEFAULT 0,
		payee_confirmed    INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_contracts_short_code ON contracts(short_code) WHERE short_code != ''`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts(status)`,

	`CREATE TABLE IF NOT EXISTS payment_schedules (
		id          TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		frequency   TEXT NOT NULL
		            CHECK(frequency IN ('monthly','weekly','daily')),
		position    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedules_contract ON payment_schedules(contract_id)`,

	`CREATE TABLE IF NOT EXISTS payment_tranches (
		schedule_id  TEXT NOT NULL REFERENCES payment_schedules(id) ON DELETE CASCADE,
		position     INTEGER NOT NULL,
		due_date     TEXT NOT NULL,
		amount       TEXT NOT NULL,
		currency     TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'not_paid'
		             CHECK(status IN ('not_paid','requested','paid','cancelled')),
		request_date TEXT,
		payment_date TEXT,
		PRIMARY KEY (schedule_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS history_entries (
		id          TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		ts          TEXT NOT NULL,
		action      TEXT NOT NULL,
		actor       TEXT NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_history_contract ON history_entries(contract_id)`,

	// Single-row allocator for contract short codes (CT0001, CT0002, ...).
	`CREATE TABLE IF NOT EXISTS contract_sequences (
		id       TEXT PRIMARY KEY DEFAULT 'default',
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,
	`INSERT OR IGNORE INTO contract_sequences (id, next_seq) VALUES ('default', 1)`,
}
