package engine

// Enrichment is the computed view of one loan: the ledger totals plus the
// reconciled outstanding balance.
type Enrichment struct {
	PaymentsMade       int
	TotalPaid          float64
	TotalPayable       float64
	OutstandingBalance float64
}

// Enrich reconciles a loan's theoretical schedule against its payment ledger.
//
// The theoretical total payable is first scheduled payment × period count.
// A loan with no computable schedule falls back to the bare principal, i.e.
// it is treated as interest-free for balance purposes.
//
// The outstanding balance is NOT clamped at zero: overpayment legitimately
// yields a negative balance, and how to present that is the caller's call.
func Enrich(t Terms, lg LedgerSummary) (Enrichment, error) {
	schedule, err := GenerateSchedule(t)
	if err != nil {
		return Enrichment{}, err
	}

	totalPayable := t.Principal
	if len(schedule) > 0 {
		totalPayable = schedule[0].Payment * float64(len(schedule))
	}

	return Enrichment{
		PaymentsMade:       lg.Count,
		TotalPaid:          lg.TotalPaid,
		TotalPayable:       round2(totalPayable),
		OutstandingBalance: round2(totalPayable - lg.TotalPaid),
	}, nil
}
