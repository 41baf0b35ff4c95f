package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"7", 700, true},
		{".5", 50, true},
		{"", 0, false},
		{"-3", 0, false},
		{"0", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseDecimalToCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToCents(%q) expected error", tc.in)
		}
	}
}

func TestMajorToCents(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{12.34, 1234},
		{0, 0},
		{-5.5, -550},
		{0.005, 1},
		{99.999, 10000},
	}
	for _, tc := range cases {
		if got := MajorToCents(tc.in); got != tc.want {
			t.Fatalf("MajorToCents(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyMajor(t *testing.T) {
	if got := (Money{Cents: 1234}).Major(); got != 12.34 {
		t.Fatalf("Major() = %v, want 12.34", got)
	}
	if got := (Money{Cents: -50}).Major(); got != -0.5 {
		t.Fatalf("Major() = %v, want -0.5", got)
	}
}
