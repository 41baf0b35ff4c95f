// Package storage implements the SQLite-backed ledger repository: the
// aggregate query surface consumed by the reporting engine, the
// key-value settings store, and the audit journal written by the
// worker.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fernandoagad/rasma-sub000/internal/core"
	"github.com/fernandoagad/rasma-sub000/internal/reports"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// whereRange appends a BETWEEN clause for col when the range is
// bounded. The zero range means all-time: no filter at all.
func whereRange(query string, args []any, col string, rng reports.Range) (string, []any) {
	if rng.Unbounded() {
		return query, args
	}
	query += " AND " + col + " BETWEEN ? AND ?"
	args = append(args, rng.From.Format(dateLayout), rng.To.Format(dateLayout))
	return query, args
}

func (r *Repository) aggregate(ctx context.Context, query string, args ...any) (reports.Aggregate, error) {
	var agg reports.Aggregate
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&agg.SumCents, &agg.Count); err != nil {
		return reports.Aggregate{}, err
	}
	return agg, nil
}

// PaymentTotals implements reports.Store.
func (r *Repository) PaymentTotals(ctx context.Context, rng reports.Range, status core.PaymentStatus) (reports.Aggregate, error) {
	query := `SELECT COALESCE(SUM(amount_cents), 0), COUNT(*) FROM patient_payments WHERE status = ?`
	args := []any{string(status)}
	query, args = whereRange(query, args, "paid_on", rng)
	agg, err := r.aggregate(ctx, query, args...)
	if err != nil {
		return reports.Aggregate{}, fmt.Errorf("payment totals: %w", err)
	}
	return agg, nil
}

// PaymentsByMonth implements reports.Store.
func (r *Repository) PaymentsByMonth(ctx context.Context, rng reports.Range, status core.PaymentStatus) ([]reports.MonthAggregate, error) {
	query := `SELECT substr(paid_on, 1, 7), COALESCE(SUM(amount_cents), 0)
		FROM patient_payments WHERE status = ?`
	args := []any{string(status)}
	query, args = whereRange(query, args, "paid_on", rng)
	query += ` GROUP BY substr(paid_on, 1, 7) ORDER BY substr(paid_on, 1, 7)`
	out, err := r.monthRows(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("payments by month: %w", err)
	}
	return out, nil
}

// IncomeTotals implements reports.Store.
func (r *Repository) IncomeTotals(ctx context.Context, rng reports.Range) (reports.Aggregate, error) {
	query := `SELECT COALESCE(SUM(amount_cents), 0), COUNT(*) FROM incomes WHERE 1=1`
	var args []any
	query, args = whereRange(query, args, "received_on", rng)
	agg, err := r.aggregate(ctx, query, args...)
	if err != nil {
		return reports.Aggregate{}, fmt.Errorf("income totals: %w", err)
	}
	return agg, nil
}

// IncomeByCategory implements reports.Store. Rows come back ordered by
// category name so equal-amount categories sort deterministically
// downstream.
func (r *Repository) IncomeByCategory(ctx context.Context, rng reports.Range) ([]reports.CategoryAggregate, error) {
	query := `SELECT category, COALESCE(SUM(amount_cents), 0), COUNT(*) FROM incomes WHERE 1=1`
	var args []any
	query, args = whereRange(query, args, "received_on", rng)
	query += ` GROUP BY category ORDER BY category`
	out, err := r.categoryRows(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("income by category: %w", err)
	}
	return out, nil
}

// IncomeByMonth implements reports.Store.
func (r *Repository) IncomeByMonth(ctx context.Context, rng reports.Range) ([]reports.MonthAggregate, error) {
	query := `SELECT substr(received_on, 1, 7), COALESCE(SUM(amount_cents), 0) FROM incomes WHERE 1=1`
	var args []any
	query, args = whereRange(query, args, "received_on", rng)
	query += ` GROUP BY substr(received_on, 1, 7) ORDER BY substr(received_on, 1, 7)`
	out, err := r.monthRows(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("income by month: %w", err)
	}
	return out, nil
}

// IncomeReceiptStats implements reports.Store.
func (r *Repository) IncomeReceiptStats(ctx context.Context, rng reports.Range) (reports.ReceiptStats, error) {
	stats, err := r.receiptStats(ctx, "incomes", "received_on", rng)
	if err != nil {
		return reports.ReceiptStats{}, fmt.Errorf("income receipt stats: %w", err)
	}
	return stats, nil
}

// ExpenseTotals implements reports.Store.
func (r *Repository) ExpenseTotals(ctx context.Context, rng reports.Range) (reports.Aggregate, error) {
	query := `SELECT COALESCE(SUM(amount_cents), 0), COUNT(*) FROM expenses WHERE 1=1`
	var args []any
	query, args = whereRange(query, args, "paid_on", rng)
	agg, err := r.aggregate(ctx, query, args...)
	if err != nil {
		return reports.Aggregate{}, fmt.Errorf("expense totals: %w", err)
	}
	return agg, nil
}

// ExpenseByCategory implements reports.Store.
func (r *Repository) ExpenseByCategory(ctx context.Context, rng reports.Range) ([]reports.CategoryAggregate, error) {
	query := `SELECT category, COALESCE(SUM(amount_cents), 0), COUNT(*) FROM expenses WHERE 1=1`
	var args []any
	query, args = whereRange(query, args, "paid_on", rng)
	query += ` GROUP BY category ORDER BY category`
	out, err := r.categoryRows(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("expense by category: %w", err)
	}
	return out, nil
}

// ExpenseByMonth implements reports.Store.
func (r *Repository) ExpenseByMonth(ctx context.Context, rng reports.Range) ([]reports.MonthAggregate, error) {
	query := `SELECT substr(paid_on, 1, 7), COALESCE(SUM(amount_cents), 0) FROM expenses WHERE 1=1`
	var args []any
	query, args = whereRange(query, args, "paid_on", rng)
	query += ` GROUP BY substr(paid_on, 1, 7) ORDER BY substr(paid_on, 1, 7)`
	out, err := r.monthRows(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("expense by month: %w", err)
	}
	return out, nil
}

// ExpenseReceiptStats implements reports.Store.
func (r *Repository) ExpenseReceiptStats(ctx context.Context, rng reports.Range) (reports.ReceiptStats, error) {
	stats, err := r.receiptStats(ctx, "expenses", "paid_on", rng)
	if err != nil {
		return reports.ReceiptStats{}, fmt.Errorf("expense receipt stats: %w", err)
	}
	return stats, nil
}

// PayoutTotals implements reports.Store. Payout aggregates are always
// all-time; the settlement position does not depend on the period.
func (r *Repository) PayoutTotals(ctx context.Context, status core.PayoutStatus) (reports.Aggregate, error) {
	query := `SELECT COALESCE(SUM(amount_cents), 0), COUNT(*) FROM therapist_payouts WHERE status = ?`
	agg, err := r.aggregate(ctx, query, string(status))
	if err != nil {
		return reports.Aggregate{}, fmt.Errorf("payout totals: %w", err)
	}
	return agg, nil
}

func (r *Repository) receiptStats(ctx context.Context, table, dateCol string, rng reports.Range) (reports.ReceiptStats, error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN receipt_ref IS NOT NULL AND receipt_ref != '' THEN 1 ELSE 0 END), 0)
		FROM ` + table + ` WHERE 1=1`
	var args []any
	query, args = whereRange(query, args, dateCol, rng)
	var stats reports.ReceiptStats
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &stats.WithReceipt); err != nil {
		return reports.ReceiptStats{}, err
	}
	return stats, nil
}

func (r *Repository) categoryRows(ctx context.Context, query string, args ...any) ([]reports.CategoryAggregate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reports.CategoryAggregate
	for rows.Next() {
		var c reports.CategoryAggregate
		if err := rows.Scan(&c.Category, &c.SumCents, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) monthRows(ctx context.Context, query string, args ...any) ([]reports.MonthAggregate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reports.MonthAggregate
	for rows.Next() {
		var m reports.MonthAggregate
		if err := rows.Scan(&m.Month, &m.SumCents); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SettingInt64 implements reports.Store.
func (r *Repository) SettingInt64(ctx context.Context, key string) (int64, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get setting %s: %w", key, err)
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("setting %s is not an integer: %w", key, err)
	}
	return n, true, nil
}

// SetSettingInt64 upserts a settings key. Last writer wins; these are
// infrequently-changed administrative values.
func (r *Repository) SetSettingInt64(ctx context.Context, key string, value int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, strconv.FormatInt(value, 10))
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	slog.InfoContext(ctx, "Setting updated", "key", key, "value", value)
	return nil
}

// AuditEntry is one journaled settings change.
type AuditEntry struct {
	ID            int64
	Actor         string
	SettingKey    string
	OldValueCents int64
	NewValueCents int64
	ChangedAt     time.Time
}

// InsertAuditEntry journals a settings change. Called by the audit
// worker, never by the reporting engine.
func (r *Repository) InsertAuditEntry(ctx context.Context, e AuditEntry) (int64, error) {
	changedAt := e.ChangedAt
	if changedAt.IsZero() {
		changedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (actor, setting_key, old_value_cents, new_value_cents, changed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Actor, e.SettingKey, e.OldValueCents, e.NewValueCents, changedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert audit entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("audit entry id: %w", err)
	}
	slog.InfoContext(ctx, "Audit entry journaled",
		"id", id,
		"key", e.SettingKey,
		"old_cents", e.OldValueCents,
		"new_cents", e.NewValueCents)
	return id, nil
}

// The insert helpers below serve the clinic's CRUD collaborators and
// test fixtures. The reporting engine itself never writes ledger rows.

func (r *Repository) InsertPatient(ctx context.Context, fullName, phone string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO patients (full_name, phone) VALUES (?, ?)`, fullName, phone)
	if err != nil {
		return 0, fmt.Errorf("insert patient: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repository) InsertTherapist(ctx context.Context, fullName string, commissionPct int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO therapists (full_name, commission_pct) VALUES (?, ?)`, fullName, commissionPct)
	if err != nil {
		return 0, fmt.Errorf("insert therapist: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repository) InsertPatientPayment(ctx context.Context, p core.PatientPayment) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO patient_payments (patient_id, amount_cents, paid_on, method, status)
		 VALUES (?, ?, ?, ?, ?)`,
		p.PatientID, p.Amount.Cents, p.PaidOn.Format(dateLayout), string(p.Method), string(p.Status))
	if err != nil {
		return 0, fmt.Errorf("insert patient payment: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repository) InsertIncome(ctx context.Context, in core.Income) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (amount_cents, received_on, category, description, receipt_ref)
		 VALUES (?, ?, ?, ?, ?)`,
		in.Amount.Cents, in.ReceivedOn.Format(dateLayout), string(in.Category), in.Description, nullable(in.ReceiptRef))
	if err != nil {
		return 0, fmt.Errorf("insert income: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repository) InsertExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount_cents, paid_on, category, description, receipt_ref)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Amount.Cents, e.PaidOn.Format(dateLayout), string(e.Category), e.Description, nullable(e.ReceiptRef))
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repository) InsertTherapistPayout(ctx context.Context, p core.TherapistPayout) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO therapist_payouts (therapist_id, amount_cents, due_on, status)
		 VALUES (?, ?, ?, ?)`,
		p.TherapistID, p.Amount.Cents, p.DueOn.Format(dateLayout), string(p.Status))
	if err != nil {
		return 0, fmt.Errorf("insert therapist payout: %w", err)
	}
	return res.LastInsertId()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ reports.Store = (*Repository)(nil)
