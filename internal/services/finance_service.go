// Package services orchestrates the reporting engine, the settings
// store, the AMQP audit pipeline and the spreadsheet exporter behind
// the HTTP handlers.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fernandoagad/rasma-sub000/internal/amqp"
	"github.com/fernandoagad/rasma-sub000/internal/core"
	"github.com/fernandoagad/rasma-sub000/internal/export"
	"github.com/fernandoagad/rasma-sub000/internal/reports"
)

// SettingsStore is the slice of the repository the service writes
// through. Reads go through the reporting engine's Store.
type SettingsStore interface {
	SettingInt64(ctx context.Context, key string) (int64, bool, error)
	SetSettingInt64(ctx context.Context, key string, value int64) error
}

// FinanceService serves the financial overview, the initial balance
// setting, and the snapshot export.
type FinanceService struct {
	reports    *reports.Service
	settings   SettingsStore
	amqpClient *amqp.Client
	exporter   export.SnapshotWriter
}

// NewFinanceService wires the service. amqpClient and exporter may be
// nil; the audit trail and export are degraded, everything else works.
func NewFinanceService(store reports.Store, settings SettingsStore, amqpClient *amqp.Client, exporter export.SnapshotWriter) *FinanceService {
	return &FinanceService{
		reports:    reports.NewService(store),
		settings:   settings,
		amqpClient: amqpClient,
		exporter:   exporter,
	}
}

// NewReportScope returns a request-scoped snapshot cache. Handlers
// create one per request and discard it when the response is written.
func (s *FinanceService) NewReportScope() *reports.RequestScope {
	return s.reports.NewScope()
}

// FinancialOverview validates the period and computes its snapshot
// through the given request scope.
func (s *FinanceService) FinancialOverview(ctx context.Context, scope *reports.RequestScope, p core.Period) (*core.FinancialSnapshot, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	snap, err := scope.Snapshot(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("financial overview: %w", err)
	}
	return snap, nil
}

// InitialBalance returns the configured starting cash in major units.
// An unset setting reads as zero.
func (s *FinanceService) InitialBalance(ctx context.Context) (float64, error) {
	cents, _, err := s.settings.SettingInt64(ctx, reports.SettingInitialBalance)
	if err != nil {
		return 0, fmt.Errorf("read initial balance: %w", err)
	}
	return core.Money{Cents: cents}.Major(), nil
}

// SetInitialBalance rewrites the starting cash setting and publishes a
// balance change audit event. A failed publish degrades the audit
// trail, never the write.
func (s *FinanceService) SetInitialBalance(ctx context.Context, major float64, actor string) error {
	newCents := core.MajorToCents(major)

	oldCents, _, err := s.settings.SettingInt64(ctx, reports.SettingInitialBalance)
	if err != nil {
		return fmt.Errorf("read current initial balance: %w", err)
	}

	if err := s.settings.SetSettingInt64(ctx, reports.SettingInitialBalance, newCents); err != nil {
		return fmt.Errorf("set initial balance: %w", err)
	}

	if err := s.publishBalanceChange(ctx, oldCents, newCents, actor); err != nil {
		slog.ErrorContext(ctx, "Failed to publish balance change audit event",
			"old_cents", oldCents,
			"new_cents", newCents,
			"error", err)
	}

	return nil
}

func (s *FinanceService) publishBalanceChange(ctx context.Context, oldCents, newCents int64, actor string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping audit event")
		return nil
	}
	msg := amqp.NewBalanceChangeMessage(reports.SettingInitialBalance, oldCents, newCents, actor)
	return s.amqpClient.PublishBalanceChange(ctx, msg)
}

// ExportOverview computes a fresh snapshot for the period and appends
// it to the configured spreadsheet.
func (s *FinanceService) ExportOverview(ctx context.Context, p core.Period) (string, error) {
	if s.exporter == nil {
		return "", errors.New("export not configured")
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	snap, err := s.reports.Snapshot(ctx, p)
	if err != nil {
		return "", fmt.Errorf("compute snapshot for export: %w", err)
	}
	ref, err := s.exporter.AppendSnapshot(ctx, snap)
	if err != nil {
		return "", fmt.Errorf("append snapshot: %w", err)
	}
	return ref, nil
}
