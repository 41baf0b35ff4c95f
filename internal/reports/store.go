// Package reports implements the financial reporting engine: a
// concurrent aggregation battery over the four ledgers, a pure
// composer that turns raw aggregates into a FinancialSnapshot, and a
// request-scoped cache around the whole computation.
package reports

import (
	"context"
	"time"

	"github.com/fernandoagad/rasma-sub000/internal/core"
)

// Range is an inclusive date filter for aggregate queries. The zero
// Range means unbounded (all-time).
type Range struct {
	From time.Time
	To   time.Time
}

// AllTime is the unbounded range.
var AllTime Range

// Unbounded reports whether the range filters nothing.
func (r Range) Unbounded() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Aggregate is a sum/count pair in minor units. Empty result sets
// aggregate to zero values, never to an error or a null.
type Aggregate struct {
	SumCents int64
	Count    int64
}

// CategoryAggregate is one group-by-category row.
type CategoryAggregate struct {
	Category string
	SumCents int64
	Count    int64
}

// MonthAggregate is one group-by-month row, keyed "YYYY-MM".
type MonthAggregate struct {
	Month    string
	SumCents int64
}

// ReceiptStats counts entries and how many of them carry a receipt.
type ReceiptStats struct {
	Total       int64
	WithReceipt int64
}

// Store is the read-only aggregate query surface the engine needs from
// the ledger storage, plus the key-value settings lookup. Every method
// must return zero aggregates for empty result sets.
type Store interface {
	PaymentTotals(ctx context.Context, r Range, status core.PaymentStatus) (Aggregate, error)
	PaymentsByMonth(ctx context.Context, r Range, status core.PaymentStatus) ([]MonthAggregate, error)

	IncomeTotals(ctx context.Context, r Range) (Aggregate, error)
	IncomeByCategory(ctx context.Context, r Range) ([]CategoryAggregate, error)
	IncomeByMonth(ctx context.Context, r Range) ([]MonthAggregate, error)
	IncomeReceiptStats(ctx context.Context, r Range) (ReceiptStats, error)

	ExpenseTotals(ctx context.Context, r Range) (Aggregate, error)
	ExpenseByCategory(ctx context.Context, r Range) ([]CategoryAggregate, error)
	ExpenseByMonth(ctx context.Context, r Range) ([]MonthAggregate, error)
	ExpenseReceiptStats(ctx context.Context, r Range) (ReceiptStats, error)

	PayoutTotals(ctx context.Context, status core.PayoutStatus) (Aggregate, error)

	// SettingInt64 returns the stored integer for key, or ok=false when
	// the key has never been written.
	SettingInt64(ctx context.Context, key string) (int64, bool, error)
}

// SettingInitialBalance is the settings key holding cash on hand, in
// minor units, from before the clinic started tracking ledgers.
const SettingInitialBalance = "finance.initial_balance_cents"
