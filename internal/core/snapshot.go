package core

// FinancialSnapshot is the full report for one period. It is never
// persisted: every call recomputes it from current ledger state. All
// amounts are major units, produced by exactly one division at
// composition time.
type FinancialSnapshot struct {
	Period PeriodInfo `json:"period"`

	// Headline figures for the requested period.
	TotalPatientPayments float64 `json:"totalPatientPayments"`
	PaymentCount         int64   `json:"paymentCount"`
	TotalIncome          float64 `json:"totalIncome"`
	TotalExpenses        float64 `json:"totalExpenses"`
	ExpenseCount         int64   `json:"expenseCount"`
	NetBalance           float64 `json:"netBalance"`

	// CashPosition reconciles all-time cash on hand. It never depends
	// on the requested period.
	CashPosition float64 `json:"cashPosition"`

	// PendingPayments is all-time outstanding patient billing.
	PendingPayments AmountCount `json:"pendingPayments"`

	PreviousPeriod    ComparisonPeriod    `json:"previousPeriod"`
	IncomeBreakdown   IncomeBreakdown     `json:"incomeBreakdown"`
	ExpenseBreakdown  []CategoryBreakdown `json:"expenseBreakdown"`
	MonthlyTrend      []TrendPoint        `json:"monthlyTrend"`
	ReceiptCompliance ReceiptCompliance   `json:"receiptCompliance"`
	Payouts           PayoutSummary       `json:"payouts"`
}

// PeriodInfo echoes the resolved period back to the caller.
type PeriodInfo struct {
	Type     PeriodType `json:"type"`
	Year     int        `json:"year"`
	Value    int        `json:"value"`
	Label    string     `json:"label"`
	DateFrom string     `json:"dateFrom"`
	DateTo   string     `json:"dateTo"`
}

// AmountCount pairs a major-unit total with its entry count.
type AmountCount struct {
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

// ComparisonPeriod carries the previous period's raw figures so callers
// can compute their own percentage deltas.
type ComparisonPeriod struct {
	Label           string  `json:"label"`
	PatientPayments float64 `json:"patientPayments"`
	Income          float64 `json:"income"`
	Expenses        float64 `json:"expenses"`
	NetBalance      float64 `json:"netBalance"`
}

// IncomeBreakdown keeps patient payments and the fixed income category
// slots disaggregated even though TotalIncome combines them.
type IncomeBreakdown struct {
	PatientPayments float64 `json:"patientPayments"`
	Donations       float64 `json:"donations"`
	Subsidies       float64 `json:"subsidies"`
	Events          float64 `json:"events"`
	Other           float64 `json:"other"`
}

// CategoryBreakdown is one expense category line, sorted descending by
// amount in the snapshot.
type CategoryBreakdown struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Count    int64   `json:"count"`
}

// TrendPoint is one month of the merged payments/income/expenses trend.
type TrendPoint struct {
	Month    string  `json:"month"` // "YYYY-MM"
	Label    string  `json:"label"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// ReceiptCompliance is the percentage of entries with a receipt
// attached, per ledger. Exactly 0 when a ledger has no entries.
type ReceiptCompliance struct {
	ExpenseRate float64 `json:"expenseRate"`
	IncomeRate  float64 `json:"incomeRate"`
}

// PayoutSummary is the all-time therapist settlement position.
type PayoutSummary struct {
	Outstanding AmountCount `json:"outstanding"`
	Paid        AmountCount `json:"paid"`
}
