package reports

import (
	"sort"

	"github.com/fernandoagad/rasma-sub000/internal/core"
)

// Compose turns raw minor-unit aggregates into the final snapshot.
// Pure: no I/O, no clock, deterministic for a given input. Every figure
// crosses from minor to major units here and nowhere else.
func Compose(p core.Period, raw *Raw) *core.FinancialSnapshot {
	r := p.Resolve()

	totalPayments := core.Money{Cents: raw.CurrentPayments.SumCents}
	totalIncome := core.Money{Cents: raw.CurrentPayments.SumCents + raw.CurrentIncome.SumCents}
	totalExpenses := core.Money{Cents: raw.CurrentExpenses.SumCents}
	net := core.Money{Cents: totalIncome.Cents - totalExpenses.Cents}

	// Cash position reconciles all-time figures regardless of the
	// period being viewed.
	cash := core.Money{Cents: raw.InitialBalanceCents +
		raw.AllTimePayments.SumCents +
		raw.AllTimeIncome.SumCents -
		raw.AllTimeExpenses.SumCents}

	prev := p.Previous()
	prevIncome := raw.PreviousPayments.SumCents + raw.PreviousIncome.SumCents

	return &core.FinancialSnapshot{
		Period: core.PeriodInfo{
			Type:     p.Type,
			Year:     p.Year,
			Value:    p.Value,
			Label:    p.Label(),
			DateFrom: r.From.Format("2006-01-02"),
			DateTo:   r.To.Format("2006-01-02"),
		},
		TotalPatientPayments: totalPayments.Major(),
		PaymentCount:         raw.CurrentPayments.Count,
		TotalIncome:          totalIncome.Major(),
		TotalExpenses:        totalExpenses.Major(),
		ExpenseCount:         raw.CurrentExpenses.Count,
		NetBalance:           net.Major(),
		CashPosition:         cash.Major(),
		PendingPayments: core.AmountCount{
			Amount: core.Money{Cents: raw.PendingPayments.SumCents}.Major(),
			Count:  raw.PendingPayments.Count,
		},
		PreviousPeriod: core.ComparisonPeriod{
			Label:           prev.Label(),
			PatientPayments: core.Money{Cents: raw.PreviousPayments.SumCents}.Major(),
			Income:          core.Money{Cents: prevIncome}.Major(),
			Expenses:        core.Money{Cents: raw.PreviousExpenses.SumCents}.Major(),
			NetBalance:      core.Money{Cents: prevIncome - raw.PreviousExpenses.SumCents}.Major(),
		},
		IncomeBreakdown:  incomeBreakdown(raw),
		ExpenseBreakdown: expenseBreakdown(raw.ExpensesByCategory),
		MonthlyTrend:     monthlyTrend(raw),
		ReceiptCompliance: core.ReceiptCompliance{
			ExpenseRate: complianceRate(raw.ExpenseReceipts),
			IncomeRate:  complianceRate(raw.IncomeReceipts),
		},
		Payouts: core.PayoutSummary{
			Outstanding: core.AmountCount{
				Amount: core.Money{Cents: raw.OutstandingPayouts.SumCents}.Major(),
				Count:  raw.OutstandingPayouts.Count,
			},
			Paid: core.AmountCount{
				Amount: core.Money{Cents: raw.PaidPayouts.SumCents}.Major(),
				Count:  raw.PaidPayouts.Count,
			},
		},
	}
}

// incomeBreakdown fills the fixed category slots. Patient payments stay
// disaggregated from donation-style income here even though the
// headline TotalIncome combines them. Categories absent from the
// grouped aggregate stay at zero.
func incomeBreakdown(raw *Raw) core.IncomeBreakdown {
	b := core.IncomeBreakdown{
		PatientPayments: core.Money{Cents: raw.CurrentPayments.SumCents}.Major(),
	}
	for _, c := range raw.IncomeByCategory {
		amount := core.Money{Cents: c.SumCents}.Major()
		switch core.IncomeCategory(c.Category) {
		case core.IncomeDonation:
			b.Donations = amount
		case core.IncomeSubsidy:
			b.Subsidies = amount
		case core.IncomeEvent:
			b.Events = amount
		default:
			b.Other += amount
		}
	}
	return b
}

// expenseBreakdown sorts category lines descending by amount, stable on
// ties so equal categories keep the store's deterministic order.
func expenseBreakdown(cats []CategoryAggregate) []core.CategoryBreakdown {
	out := make([]core.CategoryBreakdown, 0, len(cats))
	for _, c := range cats {
		out = append(out, core.CategoryBreakdown{
			Category: c.Category,
			Amount:   core.Money{Cents: c.SumCents}.Major(),
			Count:    c.Count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}

// monthlyTrend merges the three independently month-grouped aggregates
// into one map keyed "YYYY-MM". Payments and income both fold into the
// income bucket, expenses into the expense bucket; merges are additive
// so merge order does not matter. The emitted order is sorted by month
// key, not by insertion order.
func monthlyTrend(raw *Raw) []core.TrendPoint {
	type bucket struct {
		incomeCents  int64
		expenseCents int64
	}
	months := make(map[string]*bucket)
	get := func(key string) *bucket {
		b, ok := months[key]
		if !ok {
			b = &bucket{}
			months[key] = b
		}
		return b
	}
	for _, m := range raw.PaymentsByMonth {
		get(m.Month).incomeCents += m.SumCents
	}
	for _, m := range raw.IncomeByMonth {
		get(m.Month).incomeCents += m.SumCents
	}
	for _, m := range raw.ExpensesByMonth {
		get(m.Month).expenseCents += m.SumCents
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]core.TrendPoint, 0, len(keys))
	for _, k := range keys {
		b := months[k]
		out = append(out, core.TrendPoint{
			Month:    k,
			Label:    core.MonthKeyLabel(k),
			Income:   core.Money{Cents: b.incomeCents}.Major(),
			Expenses: core.Money{Cents: b.expenseCents}.Major(),
			Net:      core.Money{Cents: b.incomeCents - b.expenseCents}.Major(),
		})
	}
	return out
}

// complianceRate is withReceipt/total as a percentage, defined as 0
// when the ledger had no entries in the period. Never NaN.
func complianceRate(s ReceiptStats) float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.WithReceipt) / float64(s.Total) * 100
}
