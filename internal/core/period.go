package core

import (
	"fmt"
	"time"
)

// PeriodType is the reporting granularity.
type PeriodType string

const (
	PeriodMonth    PeriodType = "month"
	PeriodQuarter  PeriodType = "quarter"
	PeriodSemester PeriodType = "semester"
	PeriodYear     PeriodType = "year"
)

// Period identifies one reporting window: a granularity, a year and a
// value within the year (month 1-12, quarter 1-4, semester 1-2, year
// always 1).
type Period struct {
	Type  PeriodType
	Year  int
	Value int
}

// PeriodRange is the resolved inclusive date range of a period.
type PeriodRange struct {
	From time.Time
	To   time.Time
}

// maxValue returns the highest valid Value for a granularity.
func (t PeriodType) maxValue() int {
	switch t {
	case PeriodMonth:
		return 12
	case PeriodQuarter:
		return 4
	case PeriodSemester:
		return 2
	default:
		return 1
	}
}

// Validate rejects unknown granularities and out-of-range values.
// The original system skipped this check and let bad values produce
// garbage date arithmetic; here a malformed period is an error before
// any query runs.
func (p Period) Validate() error {
	switch p.Type {
	case PeriodMonth, PeriodQuarter, PeriodSemester, PeriodYear:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidPeriod, p.Type)
	}
	if p.Year < 1 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, p.Year)
	}
	if p.Value < 1 || p.Value > p.Type.maxValue() {
		return fmt.Errorf("%w: %s value %d", ErrInvalidPeriod, p.Type, p.Value)
	}
	return nil
}

// Resolve computes the inclusive calendar range of the period.
// Month lengths are true calendar lengths; February in a leap year
// resolves to the 29th. Callers are expected to Validate first.
func (p Period) Resolve() PeriodRange {
	var startMonth, months int
	switch p.Type {
	case PeriodMonth:
		startMonth, months = p.Value, 1
	case PeriodQuarter:
		startMonth, months = (p.Value-1)*3+1, 3
	case PeriodSemester:
		startMonth, months = (p.Value-1)*6+1, 6
	default:
		startMonth, months = 1, 12
	}
	from := time.Date(p.Year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the month after the range is its last calendar day.
	to := time.Date(p.Year, time.Month(startMonth+months), 0, 0, 0, 0, 0, time.UTC)
	return PeriodRange{From: from, To: to}
}

// Label returns the human-readable name of the period.
func (p Period) Label() string {
	switch p.Type {
	case PeriodMonth:
		return fmt.Sprintf("%s %d", time.Month(p.Value).String(), p.Year)
	case PeriodQuarter:
		return fmt.Sprintf("Q%d %d", p.Value, p.Year)
	case PeriodSemester:
		return fmt.Sprintf("S%d %d", p.Value, p.Year)
	default:
		return fmt.Sprintf("%d", p.Year)
	}
}

// Previous returns the immediately preceding period of the same
// granularity, wrapping across year boundaries.
func (p Period) Previous() Period {
	prev := Period{Type: p.Type, Year: p.Year, Value: p.Value - 1}
	if prev.Value < 1 {
		prev.Value = p.Type.maxValue()
		prev.Year--
	}
	return prev
}

// Next returns the immediately following period of the same granularity.
func (p Period) Next() Period {
	next := Period{Type: p.Type, Year: p.Year, Value: p.Value + 1}
	if next.Value > p.Type.maxValue() {
		next.Value = 1
		next.Year++
	}
	return next
}

// MonthKey formats a year and month as the canonical "YYYY-MM" key used
// to merge month-grouped aggregates.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthKeyLabel turns a "YYYY-MM" key into a short display label like
// "Feb 2026". Malformed keys are returned unchanged.
func MonthKeyLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}
