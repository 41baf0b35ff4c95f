// Package export writes financial snapshots to an external
// spreadsheet, one row per exported period, for board reporting.
package export

import (
	"context"
	"time"

	"github.com/fernandoagad/rasma-sub000/internal/core"
)

// SnapshotWriter is the outbound port for snapshot exports.
type SnapshotWriter interface {
	AppendSnapshot(ctx context.Context, s *core.FinancialSnapshot) (rowRef string, err error)
}

// snapshotHeader and snapshotRow define the export sheet layout. The
// header is written once when the sheet is empty; every export appends
// one row.
func snapshotHeader() []any {
	return []any{
		"Exported At",
		"Period",
		"From",
		"To",
		"Patient Payments",
		"Other Income",
		"Total Income",
		"Total Expenses",
		"Net Balance",
		"Cash Position",
		"Pending Payments",
		"Outstanding Payouts",
	}
}

func snapshotRow(s *core.FinancialSnapshot, exportedAt time.Time) []any {
	return []any{
		exportedAt.Format(time.RFC3339),
		s.Period.Label,
		s.Period.DateFrom,
		s.Period.DateTo,
		s.TotalPatientPayments,
		s.TotalIncome - s.TotalPatientPayments,
		s.TotalIncome,
		s.TotalExpenses,
		s.NetBalance,
		s.CashPosition,
		s.PendingPayments.Amount,
		s.Payouts.Outstanding.Amount,
	}
}
