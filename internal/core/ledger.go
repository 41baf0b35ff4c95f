package core

import (
	"errors"
	"strings"
	"time"
)

// Statuses and categories are closed enums. The four ledgers are
// read-only inputs to the reporting engine; their rows are created and
// edited by the clinic's CRUD surfaces, never by this core.

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

type IncomeCategory string

const (
	IncomeDonation IncomeCategory = "donation"
	IncomeSubsidy  IncomeCategory = "subsidy"
	IncomeEvent    IncomeCategory = "event"
	IncomeOther    IncomeCategory = "other"
)

type ExpenseCategory string

const (
	ExpenseRent        ExpenseCategory = "rent"
	ExpenseUtilities   ExpenseCategory = "utilities"
	ExpenseSupplies    ExpenseCategory = "supplies"
	ExpenseSalaries    ExpenseCategory = "salaries"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseOther       ExpenseCategory = "other"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrUnauthorized    = errors.New("unauthorized")
)

// PatientPayment is one billing ledger entry.
type PatientPayment struct {
	ID        int64
	PatientID int64
	Amount    Money
	PaidOn    time.Time
	Method    PaymentMethod
	Status    PaymentStatus
}

// Income is one donation-style income ledger entry. ReceiptRef points
// at the stored receipt document; empty means no receipt attached.
type Income struct {
	ID          int64
	Amount      Money
	ReceivedOn  time.Time
	Category    IncomeCategory
	Description string
	ReceiptRef  string
}

// Expense is one expense ledger entry.
type Expense struct {
	ID          int64
	Amount      Money
	PaidOn      time.Time
	Category    ExpenseCategory
	Description string
	ReceiptRef  string
}

// TherapistPayout is a settlement owed to a therapist, net of the
// clinic's commission.
type TherapistPayout struct {
	ID          int64
	TherapistID int64
	Amount      Money
	DueOn       time.Time
	Status      PayoutStatus
}

func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentPaid:
		return nil
	}
	return ErrInvalidStatus
}

func (s PayoutStatus) Validate() error {
	switch s {
	case PayoutPending, PayoutPaid:
		return nil
	}
	return ErrInvalidStatus
}

func (c IncomeCategory) Validate() error {
	switch c {
	case IncomeDonation, IncomeSubsidy, IncomeEvent, IncomeOther:
		return nil
	}
	return ErrInvalidCategory
}

func (c ExpenseCategory) Validate() error {
	switch c {
	case ExpenseRent, ExpenseUtilities, ExpenseSupplies, ExpenseSalaries, ExpenseMaintenance, ExpenseOther:
		return nil
	}
	return ErrInvalidCategory
}

func (p PatientPayment) Validate() error {
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if p.PaidOn.IsZero() {
		return errors.New("payment date cannot be zero")
	}
	return p.Status.Validate()
}

func (i Income) Validate() error {
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	if i.ReceivedOn.IsZero() {
		return errors.New("income date cannot be zero")
	}
	if len(strings.TrimSpace(i.Description)) == 0 {
		return errors.New("empty description")
	}
	return i.Category.Validate()
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.PaidOn.IsZero() {
		return errors.New("expense date cannot be zero")
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return errors.New("empty description")
	}
	return e.Category.Validate()
}

func (p TherapistPayout) Validate() error {
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if p.DueOn.IsZero() {
		return errors.New("payout date cannot be zero")
	}
	return p.Status.Validate()
}
