package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fernandoagad/rasma-sub000/internal/core"
)

// fakeStore serves canned aggregates keyed by range and filter, counts
// every query it receives, and can be told to fail a single method.
type fakeStore struct {
	queries int64

	payments map[string]Aggregate // key: rangeKey + "/" + status
	income   map[string]Aggregate // key: rangeKey
	expenses map[string]Aggregate
	payouts  map[string]Aggregate // key: status

	incomeCats  []CategoryAggregate
	expenseCats []CategoryAggregate

	paymentsMonthly []MonthAggregate
	incomeMonthly   []MonthAggregate
	expensesMonthly []MonthAggregate

	expenseReceipts ReceiptStats
	incomeReceipts  ReceiptStats

	settings map[string]int64

	failMethod string
}

func rangeKey(r Range) string {
	if r.Unbounded() {
		return "all"
	}
	return r.From.Format("2006-01-02") + ".." + r.To.Format("2006-01-02")
}

func (f *fakeStore) count(method string) error {
	atomic.AddInt64(&f.queries, 1)
	if f.failMethod == method {
		return fmt.Errorf("%s: %w", method, errStorage)
	}
	return nil
}

var errStorage = errors.New("storage unavailable")

func (f *fakeStore) PaymentTotals(_ context.Context, r Range, status core.PaymentStatus) (Aggregate, error) {
	if err := f.count("PaymentTotals"); err != nil {
		return Aggregate{}, err
	}
	return f.payments[rangeKey(r)+"/"+string(status)], nil
}

func (f *fakeStore) PaymentsByMonth(_ context.Context, r Range, status core.PaymentStatus) ([]MonthAggregate, error) {
	if err := f.count("PaymentsByMonth"); err != nil {
		return nil, err
	}
	return f.paymentsMonthly, nil
}

func (f *fakeStore) IncomeTotals(_ context.Context, r Range) (Aggregate, error) {
	if err := f.count("IncomeTotals"); err != nil {
		return Aggregate{}, err
	}
	return f.income[rangeKey(r)], nil
}

func (f *fakeStore) IncomeByCategory(_ context.Context, r Range) ([]CategoryAggregate, error) {
	if err := f.count("IncomeByCategory"); err != nil {
		return nil, err
	}
	return f.incomeCats, nil
}

func (f *fakeStore) IncomeByMonth(_ context.Context, r Range) ([]MonthAggregate, error) {
	if err := f.count("IncomeByMonth"); err != nil {
		return nil, err
	}
	return f.incomeMonthly, nil
}

func (f *fakeStore) IncomeReceiptStats(_ context.Context, r Range) (ReceiptStats, error) {
	if err := f.count("IncomeReceiptStats"); err != nil {
		return ReceiptStats{}, err
	}
	return f.incomeReceipts, nil
}

func (f *fakeStore) ExpenseTotals(_ context.Context, r Range) (Aggregate, error) {
	if err := f.count("ExpenseTotals"); err != nil {
		return Aggregate{}, err
	}
	return f.expenses[rangeKey(r)], nil
}

func (f *fakeStore) ExpenseByCategory(_ context.Context, r Range) ([]CategoryAggregate, error) {
	if err := f.count("ExpenseByCategory"); err != nil {
		return nil, err
	}
	return f.expenseCats, nil
}

func (f *fakeStore) ExpenseByMonth(_ context.Context, r Range) ([]MonthAggregate, error) {
	if err := f.count("ExpenseByMonth"); err != nil {
		return nil, err
	}
	return f.expensesMonthly, nil
}

func (f *fakeStore) ExpenseReceiptStats(_ context.Context, r Range) (ReceiptStats, error) {
	if err := f.count("ExpenseReceiptStats"); err != nil {
		return ReceiptStats{}, err
	}
	return f.expenseReceipts, nil
}

func (f *fakeStore) PayoutTotals(_ context.Context, status core.PayoutStatus) (Aggregate, error) {
	if err := f.count("PayoutTotals"); err != nil {
		return Aggregate{}, err
	}
	return f.payouts[string(status)], nil
}

func (f *fakeStore) SettingInt64(_ context.Context, key string) (int64, bool, error) {
	if err := f.count("SettingInt64"); err != nil {
		return 0, false, err
	}
	v, ok := f.settings[key]
	return v, ok, nil
}

// batterySize is the number of independent queries one collection runs.
const batterySize = 20

func newFakeStore() *fakeStore {
	return &fakeStore{
		payments: map[string]Aggregate{},
		income:   map[string]Aggregate{},
		expenses: map[string]Aggregate{},
		payouts:  map[string]Aggregate{},
		settings: map[string]int64{},
	}
}

func TestEngineCollectMapsAggregates(t *testing.T) {
	p := core.Period{Type: core.PeriodMonth, Year: 2026, Value: 2}
	cur := "2026-02-01..2026-02-28"
	prev := "2026-01-01..2026-01-31"

	f := newFakeStore()
	f.payments[cur+"/paid"] = Aggregate{SumCents: 120000, Count: 24}
	f.payments[prev+"/paid"] = Aggregate{SumCents: 90000, Count: 18}
	f.payments["all/paid"] = Aggregate{SumCents: 500000, Count: 100}
	f.payments["all/pending"] = Aggregate{SumCents: 32000, Count: 5}
	f.income[cur] = Aggregate{SumCents: 40000, Count: 4}
	f.income[prev] = Aggregate{SumCents: 25000, Count: 2}
	f.income["all"] = Aggregate{SumCents: 300000, Count: 30}
	f.expenses[cur] = Aggregate{SumCents: 80000, Count: 12}
	f.expenses[prev] = Aggregate{SumCents: 70000, Count: 10}
	f.expenses["all"] = Aggregate{SumCents: 450000, Count: 90}
	f.payouts["pending"] = Aggregate{SumCents: 60000, Count: 3}
	f.payouts["paid"] = Aggregate{SumCents: 240000, Count: 12}
	f.settings[SettingInitialBalance] = 100000

	raw, err := NewEngine(f).Collect(context.Background(), p)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if raw.CurrentPayments.SumCents != 120000 || raw.CurrentPayments.Count != 24 {
		t.Fatalf("CurrentPayments = %+v", raw.CurrentPayments)
	}
	if raw.PreviousPayments.SumCents != 90000 {
		t.Fatalf("PreviousPayments = %+v", raw.PreviousPayments)
	}
	if raw.AllTimePayments.SumCents != 500000 {
		t.Fatalf("AllTimePayments = %+v", raw.AllTimePayments)
	}
	if raw.PendingPayments.SumCents != 32000 || raw.PendingPayments.Count != 5 {
		t.Fatalf("PendingPayments = %+v", raw.PendingPayments)
	}
	if raw.CurrentIncome.SumCents != 40000 || raw.PreviousIncome.SumCents != 25000 || raw.AllTimeIncome.SumCents != 300000 {
		t.Fatalf("income aggregates = %+v / %+v / %+v", raw.CurrentIncome, raw.PreviousIncome, raw.AllTimeIncome)
	}
	if raw.CurrentExpenses.SumCents != 80000 || raw.AllTimeExpenses.SumCents != 450000 {
		t.Fatalf("expense aggregates = %+v / %+v", raw.CurrentExpenses, raw.AllTimeExpenses)
	}
	if raw.OutstandingPayouts.Count != 3 || raw.PaidPayouts.Count != 12 {
		t.Fatalf("payouts = %+v / %+v", raw.OutstandingPayouts, raw.PaidPayouts)
	}
	if raw.InitialBalanceCents != 100000 {
		t.Fatalf("InitialBalanceCents = %d", raw.InitialBalanceCents)
	}
	if got := atomic.LoadInt64(&f.queries); got != batterySize {
		t.Fatalf("query count = %d, want %d", got, batterySize)
	}
}

func TestEngineCollectDefaultsToZero(t *testing.T) {
	f := newFakeStore()
	raw, err := NewEngine(f).Collect(context.Background(), core.Period{Type: core.PeriodQuarter, Year: 2026, Value: 1})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if raw.CurrentPayments != (Aggregate{}) || raw.AllTimeExpenses != (Aggregate{}) {
		t.Fatalf("empty store must aggregate to zero: %+v", raw)
	}
	if raw.InitialBalanceCents != 0 {
		t.Fatalf("missing initial balance must default to 0, got %d", raw.InitialBalanceCents)
	}
}

func TestEngineCollectAbortsOnAnyFailure(t *testing.T) {
	methods := []string{
		"PaymentTotals", "IncomeTotals", "IncomeByCategory", "ExpenseTotals",
		"ExpenseByCategory", "PayoutTotals", "PaymentsByMonth", "IncomeByMonth",
		"ExpenseByMonth", "ExpenseReceiptStats", "IncomeReceiptStats", "SettingInt64",
	}
	for _, m := range methods {
		f := newFakeStore()
		f.failMethod = m
		raw, err := NewEngine(f).Collect(context.Background(), core.Period{Type: core.PeriodYear, Year: 2026, Value: 1})
		if err == nil {
			t.Fatalf("failing %s should abort the collection", m)
		}
		if raw != nil {
			t.Fatalf("failing %s must not return a partial result", m)
		}
		if !errors.Is(err, errStorage) {
			t.Fatalf("storage error should propagate, got %v", err)
		}
		if !strings.Contains(err.Error(), m) {
			t.Fatalf("error should name the failing query, got %v", err)
		}
	}
}
