package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func mustSchedule(t *testing.T, terms Terms) []Entry {
	t.Helper()
	s, err := GenerateSchedule(terms)
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	return s
}

// Golden regression: 5000 at 25.5% over 12 months biweekly gives 24 periods
// with a fixed 237.12 level payment. These exact figures come straight out of
// the amortization formula and must never drift.
func TestGenerateSchedule_Golden(t *testing.T) {
	s := mustSchedule(t, Terms{Principal: 5000, AnnualRatePct: 25.5, TermMonths: 12, Frequency: FrequencyBiweekly})
	if len(s) != 24 {
		t.Fatalf("periods = %d, want 24", len(s))
	}
	first := s[0]
	if first.Payment != 237.12 || first.Principal != 184.00 || first.Interest != 53.13 || first.Balance != 4816.00 {
		t.Fatalf("first entry = %+v", first)
	}
	last := s[23]
	if last.Payment != 237.12 || last.Balance != 0 {
		t.Fatalf("last entry = %+v", last)
	}
}

func TestGenerateSchedule_ZeroRate_EqualPrincipal(t *testing.T) {
	s := mustSchedule(t, Terms{Principal: 1000, AnnualRatePct: 0, TermMonths: 10, Frequency: FrequencyMonthly})
	if len(s) != 10 {
		t.Fatalf("periods = %d, want 10", len(s))
	}
	for i, e := range s {
		if e.Payment != 100.00 || e.Principal != 100.00 || e.Interest != 0 {
			t.Fatalf("entry %d = %+v", i, e)
		}
	}
	if s[0].Balance != 900.00 || s[9].Balance != 0 {
		t.Fatalf("balances: first=%v last=%v", s[0].Balance, s[9].Balance)
	}
}

func TestGenerateSchedule_MonthlyWithInterest(t *testing.T) {
	s := mustSchedule(t, Terms{Principal: 10000, AnnualRatePct: 12, TermMonths: 6, Frequency: FrequencyMonthly})
	if len(s) != 6 {
		t.Fatalf("periods = %d, want 6", len(s))
	}
	first := s[0]
	if first.Payment != 1725.48 || first.Principal != 1625.48 || first.Interest != 100.00 || first.Balance != 8374.52 {
		t.Fatalf("first entry = %+v", first)
	}
}

// The rounded principal components must reconstruct the principal within a
// cent for any positive-rate schedule.
func TestGenerateSchedule_PrincipalConservation(t *testing.T) {
	cases := []Terms{
		{Principal: 5000, AnnualRatePct: 25.5, TermMonths: 12, Frequency: FrequencyBiweekly},
		{Principal: 12345.67, AnnualRatePct: 9.9, TermMonths: 36, Frequency: FrequencyMonthly},
		{Principal: 700, AnnualRatePct: 48, TermMonths: 3, Frequency: FrequencyBiweekly},
		{Principal: 99999.99, AnnualRatePct: 1.25, TermMonths: 60, Frequency: FrequencyMonthly},
	}
	for _, terms := range cases {
		s := mustSchedule(t, terms)
		var sum float64
		for _, e := range s {
			sum += e.Principal
		}
		if math.Abs(sum-terms.Principal) > 0.01 {
			t.Fatalf("terms %+v: principal components sum to %v, want %v ± 0.01", terms, sum, terms.Principal)
		}
	}
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	terms := Terms{
		Principal: 5000, AnnualRatePct: 25.5, TermMonths: 12, Frequency: FrequencyBiweekly,
		StartDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	a := mustSchedule(t, terms)
	b := mustSchedule(t, terms)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs over identical terms produced different schedules")
	}
}

func TestGenerateSchedule_DegenerateInputs(t *testing.T) {
	s := mustSchedule(t, Terms{Principal: 1000, AnnualRatePct: 0, TermMonths: 0, Frequency: FrequencyMonthly})
	if len(s) != 0 {
		t.Fatalf("zero-term schedule has %d entries, want 0", len(s))
	}
	// Positive rate with no periods is equally degenerate, never a panic.
	s = mustSchedule(t, Terms{Principal: 1000, AnnualRatePct: 10, TermMonths: -2, Frequency: FrequencyBiweekly})
	if len(s) != 0 {
		t.Fatalf("negative-term schedule has %d entries, want 0", len(s))
	}
}

func TestGenerateSchedule_UnknownFrequency(t *testing.T) {
	_, err := GenerateSchedule(Terms{Principal: 1000, TermMonths: 12, Frequency: "weekly"})
	if !errors.Is(err, ErrInvalidTerms) {
		t.Fatalf("err = %v, want ErrInvalidTerms", err)
	}
}

// Biweekly due dates follow the payday convention (day<15 → the 15th,
// otherwise the 1st of the next month), monthly advances one calendar month.
func TestGenerateSchedule_DueDates(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	s := mustSchedule(t, Terms{Principal: 1000, AnnualRatePct: 0, TermMonths: 2, Frequency: FrequencyBiweekly, StartDate: start})
	want := []time.Time{
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if len(s) != len(want) {
		t.Fatalf("periods = %d, want %d", len(s), len(want))
	}
	for i, e := range s {
		if !e.DueDate.Equal(want[i]) {
			t.Fatalf("entry %d due %v, want %v", i+1, e.DueDate, want[i])
		}
	}

	s = mustSchedule(t, Terms{Principal: 300, AnnualRatePct: 0, TermMonths: 3, Frequency: FrequencyMonthly, StartDate: start})
	for i, e := range s {
		if want := start.AddDate(0, i+1, 0); !e.DueDate.Equal(want) {
			t.Fatalf("entry %d due %v, want %v", i+1, e.DueDate, want)
		}
	}
}

func TestGenerateSchedule_NoStartDate_NoDueDates(t *testing.T) {
	s := mustSchedule(t, Terms{Principal: 1000, AnnualRatePct: 5, TermMonths: 6, Frequency: FrequencyMonthly})
	for i, e := range s {
		if !e.DueDate.IsZero() {
			t.Fatalf("entry %d has due date %v without a start date", i+1, e.DueDate)
		}
	}
}
