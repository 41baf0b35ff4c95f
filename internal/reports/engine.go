package reports

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fernandoagad/rasma-sub000/internal/core"
)

// Raw holds the results of the full aggregation battery for one
// period. All sums are minor units; the composer does the one and only
// conversion to major units.
type Raw struct {
	// Patient billing.
	CurrentPayments  Aggregate // paid, current period
	PreviousPayments Aggregate // paid, previous period
	AllTimePayments  Aggregate // paid, unbounded
	PendingPayments  Aggregate // pending, unbounded

	// Donation-style income.
	CurrentIncome    Aggregate
	IncomeByCategory []CategoryAggregate
	PreviousIncome   Aggregate
	AllTimeIncome    Aggregate

	// Expenses.
	CurrentExpenses    Aggregate
	ExpensesByCategory []CategoryAggregate
	PreviousExpenses   Aggregate
	AllTimeExpenses    Aggregate

	// Therapist payouts, always unbounded.
	OutstandingPayouts Aggregate
	PaidPayouts        Aggregate

	// Per-month sums within the current period's range.
	PaymentsByMonth []MonthAggregate
	IncomeByMonth   []MonthAggregate
	ExpensesByMonth []MonthAggregate

	// Receipt compliance counters for the current period.
	ExpenseReceipts ReceiptStats
	IncomeReceipts  ReceiptStats

	InitialBalanceCents int64
}

// Engine runs the aggregation battery against a Store.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Collect resolves the current and previous ranges for the period and
// issues every aggregate query concurrently. All queries are launched
// before any is awaited; none depends on another's result. A single
// failing query aborts the whole collection — a partial cash report is
// worse than a visible error.
func (e *Engine) Collect(ctx context.Context, p core.Period) (*Raw, error) {
	cur := p.Resolve()
	prev := p.Previous().Resolve()
	curRange := Range{From: cur.From, To: cur.To}
	prevRange := Range{From: prev.From, To: prev.To}

	raw := &Raw{}
	g, ctx := errgroup.WithContext(ctx)

	// Each goroutine writes its own field, so no locking is needed.
	g.Go(func() (err error) {
		raw.CurrentPayments, err = e.store.PaymentTotals(ctx, curRange, core.PaymentPaid)
		return err
	})
	g.Go(func() (err error) {
		raw.PreviousPayments, err = e.store.PaymentTotals(ctx, prevRange, core.PaymentPaid)
		return err
	})
	g.Go(func() (err error) {
		raw.AllTimePayments, err = e.store.PaymentTotals(ctx, AllTime, core.PaymentPaid)
		return err
	})
	g.Go(func() (err error) {
		raw.PendingPayments, err = e.store.PaymentTotals(ctx, AllTime, core.PaymentPending)
		return err
	})

	g.Go(func() (err error) {
		raw.CurrentIncome, err = e.store.IncomeTotals(ctx, curRange)
		return err
	})
	g.Go(func() (err error) {
		raw.IncomeByCategory, err = e.store.IncomeByCategory(ctx, curRange)
		return err
	})
	g.Go(func() (err error) {
		raw.PreviousIncome, err = e.store.IncomeTotals(ctx, prevRange)
		return err
	})
	g.Go(func() (err error) {
		raw.AllTimeIncome, err = e.store.IncomeTotals(ctx, AllTime)
		return err
	})

	g.Go(func() (err error) {
		raw.CurrentExpenses, err = e.store.ExpenseTotals(ctx, curRange)
		return err
	})
	g.Go(func() (err error) {
		raw.ExpensesByCategory, err = e.store.ExpenseByCategory(ctx, curRange)
		return err
	})
	g.Go(func() (err error) {
		raw.PreviousExpenses, err = e.store.ExpenseTotals(ctx, prevRange)
		return err
	})
	g.Go(func() (err error) {
		raw.AllTimeExpenses, err = e.store.ExpenseTotals(ctx, AllTime)
		return err
	})

	g.Go(func() (err error) {
		raw.OutstandingPayouts, err = e.store.PayoutTotals(ctx, core.PayoutPending)
		return err
	})
	g.Go(func() (err error) {
		raw.PaidPayouts, err = e.store.PayoutTotals(ctx, core.PayoutPaid)
		return err
	})

	g.Go(func() (err error) {
		raw.PaymentsByMonth, err = e.store.PaymentsByMonth(ctx, curRange, core.PaymentPaid)
		return err
	})
	g.Go(func() (err error) {
		raw.IncomeByMonth, err = e.store.IncomeByMonth(ctx, curRange)
		return err
	})
	g.Go(func() (err error) {
		raw.ExpensesByMonth, err = e.store.ExpenseByMonth(ctx, curRange)
		return err
	})

	g.Go(func() (err error) {
		raw.ExpenseReceipts, err = e.store.ExpenseReceiptStats(ctx, curRange)
		return err
	})
	g.Go(func() (err error) {
		raw.IncomeReceipts, err = e.store.IncomeReceiptStats(ctx, curRange)
		return err
	})

	g.Go(func() error {
		cents, ok, err := e.store.SettingInt64(ctx, SettingInitialBalance)
		if err != nil {
			return err
		}
		if ok {
			raw.InitialBalanceCents = cents
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect aggregates for %s: %w", p.Label(), err)
	}

	slog.DebugContext(ctx, "Aggregation battery completed",
		"period", p.Label(),
		"from", cur.From.Format("2006-01-02"),
		"to", cur.To.Format("2006-01-02"))

	return raw, nil
}
