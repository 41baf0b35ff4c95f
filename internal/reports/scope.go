package reports

import (
	"context"

	"github.com/fernandoagad/rasma-sub000/internal/cache"
	"github.com/fernandoagad/rasma-sub000/internal/core"
)

// Service ties the engine and composer together.
type Service struct {
	engine *Engine
}

func NewService(store Store) *Service {
	return &Service{engine: NewEngine(store)}
}

// Snapshot computes a fresh financial snapshot for the period. The
// period must already be validated.
func (s *Service) Snapshot(ctx context.Context, p core.Period) (*core.FinancialSnapshot, error) {
	raw, err := s.engine.Collect(ctx, p)
	if err != nil {
		return nil, err
	}
	return Compose(p, raw), nil
}

// RequestScope memoizes snapshots per distinct (type, year, value)
// triple for the lifetime of one request. It is a performance shortcut
// only: with the memo removed, every output value stays identical and
// only the number of storage queries changes. Never share a scope
// across requests.
type RequestScope struct {
	svc  *Service
	memo *cache.Scope[core.Period, *core.FinancialSnapshot]
}

// NewScope returns a fresh per-request scope.
func (s *Service) NewScope() *RequestScope {
	return &RequestScope{
		svc:  s,
		memo: cache.NewScope[core.Period, *core.FinancialSnapshot](),
	}
}

// Snapshot returns the memoized snapshot for p, computing it on first
// use within this scope.
func (rs *RequestScope) Snapshot(ctx context.Context, p core.Period) (*core.FinancialSnapshot, error) {
	if snap, ok := rs.memo.Get(p); ok {
		return snap, nil
	}
	snap, err := rs.svc.Snapshot(ctx, p)
	if err != nil {
		return nil, err
	}
	rs.memo.Set(p, snap)
	return snap, nil
}
