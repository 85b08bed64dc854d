package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bharathg-scrimpify/accord/internal/db"
	"github.com/bharathg-scrimpify/accord/internal/domain"
)

// SQLiteContractRepo implements ContractRepo using a SQLite database.
type SQLiteContractRepo struct {
	db db.DBTX
}

// NewSQLiteContractRepo creates a new SQLiteContractRepo.
func NewSQLiteContractRepo(conn db.DBTX) *SQLiteContractRepo {
	return &SQLiteContractRepo{db: conn}
}

const dateLayout = "2006-01-02"

// contractColumns is the canonical column order for contract row scans.
const contractColumns = `id, short_code,
	from_name, from_email, from_organization, from_address, from_signature,
	to_name, to_email, to_organization, to_address, to_signature,
	place_of_service, service_start, service_end, rate, meals_included, additional_details,
	status, progress,
	currency, total_payable, total_receivable, fee_from_payer, fee_from_payee,
	selected_type, selected_frequency,
	payer_confirmed, payee_confirmed,
	created_at, updated_at`

func (r *SQLiteContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, r.contractArgs(c)...)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	return r.insertChildren(ctx, c)
}

func (r *SQLiteContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	c, err := r.scanContract(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteContractRepo) GetByShortCode(ctx context.Context, code string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE UPPER(short_code) = UPPER(?)`
	row := r.db.QueryRowContext(ctx, query, code)
	c, err := r.scanContract(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteContractRepo) List(ctx context.Context, statuses []domain.ContractStatus) ([]ContractSummary, error) {
	query := `SELECT id, short_code, from_name, to_name, status, progress, currency, total_payable, updated_at
		FROM contracts`
	var args []interface{}
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var summaries []ContractSummary
	for rows.Next() {
		var s ContractSummary
		var statusStr, currency, payable, updatedAtStr string
		if err := rows.Scan(&s.ID, &s.ShortCode, &s.FromName, &s.ToName,
			&statusStr, &s.Progress, &currency, &payable, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning contract summary: %w", err)
		}
		s.Status = domain.ContractStatus(statusStr)
		if s.TotalPayable, err = parseMoney(currency, payable); err != nil {
			return nil, err
		}
		if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}
	return summaries, nil
}

// Save replaces the stored aggregate with the given snapshot. The contract
// row is updated in place; schedules, tranches and history are rewritten.
func (r *SQLiteContractRepo) Save(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts SET
		short_code = ?,
		from_name = ?, from_email = ?, from_organization = ?, from_address = ?, from_signature = ?,
		to_name = ?, to_email = ?, to_organization = ?, to_address = ?, to_signature = ?,
		place_of_service = ?, service_start = ?, service_end = ?, rate = ?, meals_included = ?, additional_details = ?,
		status = ?, progress = ?,
		currency = ?, total_payable = ?, total_receivable = ?, fee_from_payer = ?, fee_from_payee = ?,
		selected_type = ?, selected_frequency = ?,
		payer_confirmed = ?, payee_confirmed = ?,
		created_at = ?, updated_at = ?
		WHERE id = ?`
	args := r.contractArgs(c)
	// Shift id from the leading INSERT position to the WHERE clause.
	args = append(args[1:], args[0])
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("contract %s: %w", c.ID, ErrNotFound)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM payment_schedules WHERE contract_id = ?`, c.ID); err != nil {
		return fmt.Errorf("clearing schedules: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history_entries WHERE contract_id = ?`, c.ID); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return r.insertChildren(ctx, c)
}

func (r *SQLiteContractRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}
	return nil
}

// contractArgs returns the bind values matching contractColumns order.
func (r *SQLiteContractRepo) contractArgs(c *domain.Contract) []interface{} {
	return []interface{}{
		c.ID,
		c.ShortCode,
		c.From.Name, c.From.Email, c.From.Organization, c.From.Address, c.From.Signature,
		c.To.Name, c.To.Email, c.To.Organization, c.To.Address, c.To.Signature,
		c.Details.PlaceOfService,
		c.Details.StartDate.Format(dateLayout),
		c.Details.EndDate.Format(dateLayout),
		c.Details.Rate,
		boolToInt(c.Details.MealsIncluded),
		c.Details.AdditionalDetails,
		string(c.Status),
		c.Progress,
		c.Payment.TotalPayable.CurrencyCode,
		c.Payment.TotalPayable.Amount.String(),
		c.Payment.TotalReceivable.Amount.String(),
		c.Payment.FeeFromPayer.Amount.String(),
		c.Payment.FeeFromPayee.Amount.String(),
		string(c.Payment.SelectedType),
		string(c.Payment.SelectedFrequency),
		boolToInt(c.PayerConfirmed),
		boolToInt(c.PayeeConfirmed),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	}
}

func (r *SQLiteContractRepo) scanContract(row *sql.Row) (*domain.Contract, error) {
	var c domain.Contract
	var serviceStart, serviceEnd, statusStr, selectedType, selectedFreq string
	var currency, payable, receivable, feePayer, feePayee string
	var mealsIncluded, payerConfirmed, payeeConfirmed int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&c.ID, &c.ShortCode,
		&c.From.Name, &c.From.Email, &c.From.Organization, &c.From.Address, &c.From.Signature,
		&c.To.Name, &c.To.Email, &c.To.Organization, &c.To.Address, &c.To.Signature,
		&c.Details.PlaceOfService, &serviceStart, &serviceEnd, &c.Details.Rate, &mealsIncluded, &c.Details.AdditionalDetails,
		&statusStr, &c.Progress,
		&currency, &payable, &receivable, &feePayer, &feePayee,
		&selectedType, &selectedFreq,
		&payerConfirmed, &payeeConfirmed,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("contract: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning contract: %w", err)
	}

	c.Status = domain.ContractStatus(statusStr)
	c.Details.MealsIncluded = intToBool(mealsIncluded)
	c.PayerConfirmed = intToBool(payerConfirmed)
	c.PayeeConfirmed = intToBool(payeeConfirmed)
	c.Payment.SelectedType = domain.PaymentType(selectedType)
	c.Payment.SelectedFrequency = domain.PaymentFrequency(selectedFreq)

	var parseErr error
	if c.Details.StartDate, parseErr = time.Parse(dateLayout, serviceStart); parseErr != nil {
		return nil, fmt.Errorf("parsing service_start: %w", parseErr)
	}
	if c.Details.EndDate, parseErr = time.Parse(dateLayout, serviceEnd); parseErr != nil {
		return nil, fmt.Errorf("parsing service_end: %w", parseErr)
	}
	if c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	if c.Payment.TotalPayable, parseErr = parseMoney(currency, payable); parseErr != nil {
		return nil, parseErr
	}
	if c.Payment.TotalReceivable, parseErr = parseMoney(currency, receivable); parseErr != nil {
		return nil, parseErr
	}
	if c.Payment.FeeFromPayer, parseErr = parseMoney(currency, feePayer); parseErr != nil {
		return nil, parseErr
	}
	if c.Payment.FeeFromPayee, parseErr = parseMoney(currency, feePayee); parseErr != nil {
		return nil, parseErr
	}

	return &c, nil
}

func (r *SQLiteContractRepo) insertChildren(ctx context.Context, c *domain.Contract) error {
	for pos, sched := range c.Payment.Schedules {
		schedID := uuid.New().String()
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO payment_schedules (id, contract_id, frequency, position) VALUES (?, ?, ?, ?)`,
			schedID, c.ID, string(sched.Frequency), pos)
		if err != nil {
			return fmt.Errorf("inserting schedule: %w", err)
		}
		for i, tr := range sched.Tranches {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO payment_tranches (schedule_id, position, due_date, amount, currency, status, request_date, payment_date)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				schedID, i,
				tr.DueDate.Format(dateLayout),
				tr.Amount.Amount.String(),
				tr.Amount.CurrencyCode,
				string(tr.Status),
				nullableTimeToString(tr.RequestDate, time.RFC3339),
				nullableTimeToString(tr.PaymentDate, time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("inserting tranche: %w", err)
			}
		}
	}

	for pos, h := range c.History {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO history_entries (id, contract_id, ts, action, actor, notes, position)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
			h.ID, c.ID, h.Timestamp.Format(time.RFC3339), h.Action, h.Actor, h.Notes, pos)
		if err != nil {
			return fmt.Errorf("inserting history entry: %w", err)
		}
	}
	return nil
}

func (r *SQLiteContractRepo) loadChildren(ctx context.Context, c *domain.Contract) error {
	schedules, err := r.loadSchedules(ctx, c.ID)
	if err != nil {
		return err
	}
	c.Payment.Schedules = schedules

	history, err := r.loadHistory(ctx, c.ID)
	if err != nil {
		return err
	}
	c.History = history
	return nil
}

func (r *SQLiteContractRepo) loadSchedules(ctx context.Context, contractID string) ([]domain.PaymentSchedule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, frequency FROM payment_schedules WHERE contract_id = ? ORDER BY position`, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	defer rows.Close()

	var schedules []domain.PaymentSchedule
	var ids []string
	for rows.Next() {
		var id, freq string
		if err := rows.Scan(&id, &freq); err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		ids = append(ids, id)
		schedules = append(schedules, domain.PaymentSchedule{Frequency: domain.PaymentFrequency(freq)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}

	for i, id := range ids {
		tranches, err := r.loadTranches(ctx, id)
		if err != nil {
			return nil, err
		}
		schedules[i].Tranches = tranches
	}
	return schedules, nil
}

func (r *SQLiteContractRepo) loadTranches(ctx context.Context, scheduleID string) ([]domain.PaymentTranche, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT due_date, amount, currency, status, request_date, payment_date
			FROM payment_tranches WHERE schedule_id = ? ORDER BY position`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("listing tranches: %w", err)
	}
	defer rows.Close()

	var tranches []domain.PaymentTranche
	for rows.Next() {
		var t domain.PaymentTranche
		var dueDateStr, amount, currency, statusStr string
		var requestDateStr, paymentDateStr sql.NullString
		if err := rows.Scan(&dueDateStr, &amount, &currency, &statusStr, &requestDateStr, &paymentDateStr); err != nil {
			return nil, fmt.Errorf("scanning tranche: %w", err)
		}
		if t.DueDate, err = time.Parse(dateLayout, dueDateStr); err != nil {
			return nil, fmt.Errorf("parsing due_date: %w", err)
		}
		if t.Amount, err = parseMoney(currency, amount); err != nil {
			return nil, err
		}
		t.Status = domain.TrancheStatus(statusStr)
		t.RequestDate = parseNullableTime(requestDateStr, time.RFC3339)
		t.PaymentDate = parseNullableTime(paymentDateStr, time.RFC3339)
		tranches = append(tranches, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tranches: %w", err)
	}
	return tranches, nil
}

func (r *SQLiteContractRepo) loadHistory(ctx context.Context, contractID string) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ts, action, actor, notes FROM history_entries WHERE contract_id = ? ORDER BY position`, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var h domain.HistoryEntry
		var tsStr string
		if err := rows.Scan(&h.ID, &tsStr, &h.Action, &h.Actor, &h.Notes); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if h.Timestamp, err = time.Parse(time.RFC3339, tsStr); err != nil {
			return nil, fmt.Errorf("parsing history ts: %w", err)
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}
