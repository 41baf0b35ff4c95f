package core

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodResolve(t *testing.T) {
	cases := []struct {
		p    Period
		from time.Time
		to   time.Time
	}{
		// leap-year February ends on the 29th
		{Period{PeriodMonth, 2026, 2}, date(2026, 2, 1), date(2026, 2, 28)},
		{Period{PeriodMonth, 2024, 2}, date(2024, 2, 1), date(2024, 2, 29)},
		{Period{PeriodMonth, 2026, 12}, date(2026, 12, 1), date(2026, 12, 31)},
		{Period{PeriodQuarter, 2026, 1}, date(2026, 1, 1), date(2026, 3, 31)},
		{Period{PeriodQuarter, 2026, 4}, date(2026, 10, 1), date(2026, 12, 31)},
		{Period{PeriodSemester, 2026, 1}, date(2026, 1, 1), date(2026, 6, 30)},
		{Period{PeriodSemester, 2026, 2}, date(2026, 7, 1), date(2026, 12, 31)},
		{Period{PeriodYear, 2026, 1}, date(2026, 1, 1), date(2026, 12, 31)},
	}
	for _, tc := range cases {
		r := tc.p.Resolve()
		if !r.From.Equal(tc.from) || !r.To.Equal(tc.to) {
			t.Fatalf("%v.Resolve() = [%v, %v], want [%v, %v]", tc.p, r.From, r.To, tc.from, tc.to)
		}
		if r.From.After(r.To) {
			t.Fatalf("%v.Resolve(): From after To", tc.p)
		}
	}
}

func TestPeriodResolveLeapFebruary2026QuirkCheck(t *testing.T) {
	// 2026 is not a leap year; 2024 and 2028 are. Guard the day-0 trick.
	r := Period{PeriodMonth, 2028, 2}.Resolve()
	if r.To.Day() != 29 {
		t.Fatalf("February 2028 should end on 29, got %d", r.To.Day())
	}
}

func TestAdjacentPeriodsAreContiguous(t *testing.T) {
	for _, typ := range []PeriodType{PeriodMonth, PeriodQuarter, PeriodSemester, PeriodYear} {
		p := Period{Type: typ, Year: 2025, Value: 1}
		for i := 0; i < 30; i++ {
			cur := p.Resolve()
			next := p.Next().Resolve()
			if !next.From.Equal(cur.To.AddDate(0, 0, 1)) {
				t.Fatalf("%v and %v not contiguous: %v then %v", p, p.Next(), cur.To, next.From)
			}
			p = p.Next()
		}
	}
}

func TestPreviousNextRoundTrip(t *testing.T) {
	cases := []Period{
		{PeriodMonth, 2026, 1},
		{PeriodMonth, 2026, 7},
		{PeriodQuarter, 2026, 1},
		{PeriodQuarter, 2026, 3},
		{PeriodSemester, 2026, 1},
		{PeriodSemester, 2026, 2},
		{PeriodYear, 2026, 1},
	}
	for _, p := range cases {
		if got := p.Previous().Next(); got != p {
			t.Fatalf("%v.Previous().Next() = %v", p, got)
		}
		if got := p.Next().Previous(); got != p {
			t.Fatalf("%v.Next().Previous() = %v", p, got)
		}
	}
}

func TestPreviousWrapsYear(t *testing.T) {
	cases := []struct {
		p    Period
		want Period
	}{
		{Period{PeriodMonth, 2026, 1}, Period{PeriodMonth, 2025, 12}},
		{Period{PeriodQuarter, 2026, 1}, Period{PeriodQuarter, 2025, 4}},
		{Period{PeriodSemester, 2026, 1}, Period{PeriodSemester, 2025, 2}},
		{Period{PeriodYear, 2026, 1}, Period{PeriodYear, 2025, 1}},
	}
	for _, tc := range cases {
		if got := tc.p.Previous(); got != tc.want {
			t.Fatalf("%v.Previous() = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestPeriodValidate(t *testing.T) {
	good := []Period{
		{PeriodMonth, 2026, 1},
		{PeriodMonth, 2026, 12},
		{PeriodQuarter, 2026, 4},
		{PeriodSemester, 2026, 2},
		{PeriodYear, 2026, 1},
	}
	for _, p := range good {
		if err := p.Validate(); err != nil {
			t.Fatalf("%v.Validate() = %v", p, err)
		}
	}
	bad := []Period{
		{PeriodMonth, 2026, 0},
		{PeriodMonth, 2026, 13},
		{PeriodQuarter, 2026, 5},
		{PeriodSemester, 2026, 3},
		{PeriodYear, 2026, 2},
		{PeriodType("week"), 2026, 1},
		{PeriodMonth, 0, 1},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Fatalf("%v.Validate() expected error", p)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	cases := []struct {
		p    Period
		want string
	}{
		{Period{PeriodMonth, 2026, 2}, "February 2026"},
		{Period{PeriodQuarter, 2026, 1}, "Q1 2026"},
		{Period{PeriodSemester, 2026, 2}, "S2 2026"},
		{Period{PeriodYear, 2026, 1}, "2026"},
	}
	for _, tc := range cases {
		if got := tc.p.Label(); got != tc.want {
			t.Fatalf("%v.Label() = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(2026, 2); got != "2026-02" {
		t.Fatalf("MonthKey = %q", got)
	}
	if got := MonthKeyLabel("2026-02"); got != "Feb 2026" {
		t.Fatalf("MonthKeyLabel = %q", got)
	}
	if got := MonthKeyLabel("bogus"); got != "bogus" {
		t.Fatalf("MonthKeyLabel(bogus) = %q", got)
	}
}
