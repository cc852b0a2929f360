package domain

import "github.com/shopspring/decimal"

// Stats summarises a set of requests for the back-office dashboard.
// Value is the pipeline value: every request counts, whatever its status.
type Stats struct {
	Total    int
	Pending  int
	Approved int
	Value    float64
}

// Aggregate derives Stats from the full request set.
func Aggregate(requests []VoucherRequest) Stats {
	var stats Stats
	value := decimal.Zero
	for _, r := range requests {
		stats.Total++
		switch r.Status {
		case StatusPending:
			stats.Pending++
		case StatusApproved:
			stats.Approved++
		}
		value = value.Add(decimal.NewFromFloat(r.TotalValue))
	}
	stats.Value = value.Round(2).InexactFloat64()
	return stats
}
