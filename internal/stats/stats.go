// Package stats derives summary figures from the subscription collection.
// Everything here is a pure function of its input; nothing is persisted.
package stats

import "github.com/subhub/subscription-hub/internal/store"

// Summary aggregates the subscription collection for the stats endpoint.
type Summary struct {
	TotalSubscriptions     int     `json:"total_subscriptions"`
	ActiveSubscriptions    int     `json:"active_subscriptions"`
	CancelledSubscriptions int     `json:"cancelled_subscriptions"`
	TotalMonthlyCost       float64 `json:"total_monthly_cost"`
	TotalCategories        int     `json:"total_categories"`
}

// Compute builds a Summary from the given subscriptions.
//
// TotalMonthlyCost is the raw sum of amounts over active subscriptions with
// no billing-cycle normalization: weekly and yearly amounts are added as-is.
func Compute(subs []store.Subscription) Summary {
	var sum Summary
	sum.TotalSubscriptions = len(subs)

	categories := make(map[string]struct{})
	for i := range subs {
		s := &subs[i]
		switch s.Status {
		case store.StatusActive:
			sum.ActiveSubscriptions++
			sum.TotalMonthlyCost += s.Amount
		case store.StatusCancelled:
			sum.CancelledSubscriptions++
		}
		if s.Category != nil && *s.Category != "" {
			categories[*s.Category] = struct{}{}
		}
	}
	sum.TotalCategories = len(categories)
	return sum
}
