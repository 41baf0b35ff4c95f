package reports

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/fernandoagad/rasma-sub000/internal/core"
)

func TestRequestScopeMemoizesPerPeriod(t *testing.T) {
	f := newFakeStore()
	f.payments["all/paid"] = Aggregate{SumCents: 500000, Count: 100}
	svc := NewService(f)
	scope := svc.NewScope()
	ctx := context.Background()

	feb := core.Period{Type: core.PeriodMonth, Year: 2026, Value: 2}
	jan := core.Period{Type: core.PeriodMonth, Year: 2026, Value: 1}

	first, err := scope.Snapshot(ctx, feb)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := atomic.LoadInt64(&f.queries); got != batterySize {
		t.Fatalf("first call issued %d queries, want %d", got, batterySize)
	}

	second, err := scope.Snapshot(ctx, feb)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := atomic.LoadInt64(&f.queries); got != batterySize {
		t.Fatalf("repeat call must not hit the store, saw %d queries", got)
	}
	if first != second {
		t.Fatalf("repeat call should return the memoized snapshot")
	}

	if _, err := scope.Snapshot(ctx, jan); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := atomic.LoadInt64(&f.queries); got != 2*batterySize {
		t.Fatalf("distinct period should recompute, saw %d queries", got)
	}
}

func TestRequestScopeDoesNotChangeOutputs(t *testing.T) {
	f := newFakeStore()
	f.payments["2026-02-01..2026-02-28/paid"] = Aggregate{SumCents: 77000, Count: 7}
	f.settings[SettingInitialBalance] = 5000
	svc := NewService(f)
	ctx := context.Background()
	p := core.Period{Type: core.PeriodMonth, Year: 2026, Value: 2}

	direct, err := svc.Snapshot(ctx, p)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	scoped, err := svc.NewScope().Snapshot(ctx, p)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	a, _ := json.Marshal(direct)
	b, _ := json.Marshal(scoped)
	if string(a) != string(b) {
		t.Fatalf("scope must be output-transparent:\n%s\n%s", a, b)
	}
}

func TestFreshScopesRecompute(t *testing.T) {
	f := newFakeStore()
	svc := NewService(f)
	ctx := context.Background()
	p := core.Period{Type: core.PeriodYear, Year: 2026, Value: 1}

	for i := 1; i <= 3; i++ {
		if _, err := svc.NewScope().Snapshot(ctx, p); err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if got := atomic.LoadInt64(&f.queries); got != int64(i)*batterySize {
			t.Fatalf("scope %d: %d queries, want %d — scopes must not share state", i, got, int64(i)*batterySize)
		}
	}
}
