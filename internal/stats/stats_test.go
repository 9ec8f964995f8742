package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subhub/subscription-hub/internal/store"
)

func strptr(s string) *string { return &s }

func TestComputeEmpty(t *testing.T) {
	sum := Compute(nil)
	assert.Equal(t, Summary{}, sum)
}

func TestCompute(t *testing.T) {
	subs := []store.Subscription{
		{Status: store.StatusActive, Amount: 15.99, Category: strptr("streaming")},
		{Status: store.StatusActive, Amount: 120, Category: strptr("software")},
		{Status: store.StatusCancelled, Amount: 9.99, Category: strptr("streaming")},
		{Status: store.StatusPaused, Amount: 5, Category: strptr("")},
	}

	sum := Compute(subs)

	assert.Equal(t, 4, sum.TotalSubscriptions)
	assert.Equal(t, 2, sum.ActiveSubscriptions)
	assert.Equal(t, 1, sum.CancelledSubscriptions)
	// Raw sum over active subscriptions, no billing-cycle normalization.
	assert.InDelta(t, 135.99, sum.TotalMonthlyCost, 0.0001)
	// Empty categories are not counted; duplicates collapse.
	assert.Equal(t, 2, sum.TotalCategories)
}

func TestComputePausedRemainder(t *testing.T) {
	subs := []store.Subscription{
		{Status: store.StatusActive},
		{Status: store.StatusCancelled},
		{Status: store.StatusPaused},
		{Status: store.StatusPaused},
	}

	sum := Compute(subs)
	assert.LessOrEqual(t, sum.ActiveSubscriptions+sum.CancelledSubscriptions, sum.TotalSubscriptions)
}
