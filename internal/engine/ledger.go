package engine

// LedgerSummary aggregates the recorded payments of one loan.
type LedgerSummary struct {
	Count     int
	TotalPaid float64
}

// ReducePayments folds recorded payment amounts into a ledger summary.
// Order-independent and idempotent on an unchanged record set; an empty
// input yields the zero summary.
func ReducePayments(amounts []float64) LedgerSummary {
	s := LedgerSummary{Count: len(amounts)}
	for _, a := range amounts {
		s.TotalPaid += a
	}
	return s
}
