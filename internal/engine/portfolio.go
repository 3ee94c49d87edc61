package engine

// PortfolioRow is one enriched loan reduced to the fields the aggregator needs.
type PortfolioRow struct {
	Principal          float64
	OutstandingBalance float64
	Status             Status
	// CommissionRatePct is the broker percentage of principal; nil means no
	// commission agreement, treated as 0.
	CommissionRatePct *float64
}

// Summary folds a set of enriched loans into portfolio statistics.
type Summary struct {
	TotalLoans              int
	ActiveLoans             int
	TotalLoanedAmount       float64
	TotalOutstandingBalance float64
	TotalCommission         float64
}

// Aggregate is a single-pass fold over enriched loans. Ordering does not
// matter and an empty input yields the all-zero summary. Outstanding balances
// are summed as-is, negatives included.
func Aggregate(rows []PortfolioRow) Summary {
	var s Summary
	for _, r := range rows {
		s.TotalLoans++
		if r.Status == StatusActive {
			s.ActiveLoans++
		}
		s.TotalLoanedAmount += r.Principal
		s.TotalOutstandingBalance += r.OutstandingBalance
		if r.CommissionRatePct != nil {
			s.TotalCommission += r.Principal * (*r.CommissionRatePct / 100)
		}
	}
	return s
}
