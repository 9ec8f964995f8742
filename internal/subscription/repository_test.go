package subscription

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subhub/subscription-hub/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "db.json"), nil)
	require.NoError(t, err)
	return st
}

func strptr(s string) *string { return &s }

func floatptr(f float64) *float64 { return &f }

func createFixture(t *testing.T, repo *Repository, name, status, category, nextBilling string, amount float64) store.Subscription {
	t.Helper()
	params := CreateParams{
		Name:            name,
		ServiceProvider: name + " Inc.",
		Amount:          amount,
		BillingCycle:    store.CycleMonthly,
		NextBillingDate: nextBilling,
		Status:          status,
	}
	if category != "" {
		params.Category = &category
	}
	sub, err := repo.Create(context.Background(), params)
	require.NoError(t, err)
	return sub
}

func TestRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	first := createFixture(t, repo, "Netflix", "", "", "2024-01-01", 15.99)
	second := createFixture(t, repo, "Spotify", "", "", "2024-01-05", 9.99)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, store.StatusActive, first.Status)
	assert.Equal(t, store.DefaultCurrency, first.Currency)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestRepository_CreateDoesNotReuseGapIDs(t *testing.T) {
	repo := NewRepository(newTestStore(t))
	ctx := context.Background()

	createFixture(t, repo, "Netflix", "", "", "2024-01-01", 15.99)
	createFixture(t, repo, "Spotify", "", "", "2024-01-05", 9.99)
	createFixture(t, repo, "iCloud", "", "", "2024-01-10", 2.99)

	require.NoError(t, repo.Delete(ctx, 2))

	next := createFixture(t, repo, "Disney+", "", "", "2024-01-15", 7.99)
	assert.Equal(t, 4, next.ID)
}

func TestRepository_GetByID(t *testing.T) {
	repo := NewRepository(newTestStore(t))
	ctx := context.Background()

	created := createFixture(t, repo, "Netflix", "", "streaming", "2024-01-01", 15.99)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRepository_ListFiltersAndSorts(t *testing.T) {
	repo := NewRepository(newTestStore(t))
	ctx := context.Background()

	createFixture(t, repo, "Netflix", store.StatusActive, "streaming", "2024-03-01", 15.99)
	createFixture(t, repo, "Spotify", store.StatusActive, "music", "2024-01-15", 9.99)
	createFixture(t, repo, "Hulu", store.StatusCancelled, "streaming", "2024-02-01", 7.99)

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Ascending by next_billing_date.
	assert.Equal(t, "Spotify", all[0].Name)
	assert.Equal(t, "Hulu", all[1].Name)
	assert.Equal(t, "Netflix", all[2].Name)

	active, err := repo.List(ctx, ListFilter{Status: strptr(store.StatusActive)})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	// Conjunctive: both filters must hold.
	activeStreaming, err := repo.List(ctx, ListFilter{
		Status:   strptr(store.StatusActive),
		Category: strptr("streaming"),
	})
	require.NoError(t, err)
	require.Len(t, activeStreaming, 1)
	assert.Equal(t, "Netflix", activeStreaming[0].Name)
}

func TestRepository_UpdateMergesOnlySuppliedFields(t *testing.T) {
	repo := NewRepository(newTestStore(t))
	ctx := context.Background()

	created := createFixture(t, repo, "Netflix", "", "streaming", "2024-01-01", 15.99)

	updated, err := repo.Update(ctx, created.ID, UpdateParams{
		Amount: floatptr(17.99),
		Status: strptr(store.StatusPaused),
	})
	require.NoError(t, err)

	assert.Equal(t, 17.99, updated.Amount)
	assert.Equal(t, store.StatusPaused, updated.Status)
	// Omitted fields keep their values.
	assert.Equal(t, "Netflix", updated.Name)
	assert.Equal(t, "Netflix Inc.", updated.ServiceProvider)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "streaming", *updated.Category)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	_, err = repo.Update(ctx, 42, UpdateParams{Amount: floatptr(1)})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRepository_DeleteCascadesToPayments(t *testing.T) {
	st := newTestStore(t)
	repo := NewRepository(st)
	ctx := context.Background()

	keep := createFixture(t, repo, "Spotify", "", "", "2024-01-05", 9.99)
	doomed := createFixture(t, repo, "Netflix", "", "", "2024-01-01", 15.99)

	err := st.Update(func(doc *store.Document) error {
		doc.Payments = append(doc.Payments,
			store.Payment{ID: 1, SubscriptionID: doomed.ID, Amount: 15.99, PaymentDate: "2024-01-01"},
			store.Payment{ID: 2, SubscriptionID: keep.ID, Amount: 9.99, PaymentDate: "2024-01-05"},
			store.Payment{ID: 3, SubscriptionID: doomed.ID, Amount: 15.99, PaymentDate: "2024-02-01"},
		)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, doomed.ID))

	err = st.View(func(doc *store.Document) error {
		require.Len(t, doc.Subscriptions, 1)
		assert.Equal(t, keep.ID, doc.Subscriptions[0].ID)
		require.Len(t, doc.Payments, 1)
		assert.Equal(t, 2, doc.Payments[0].ID)
		return nil
	})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, doomed.ID), store.ErrNotFound)
}

func TestRepository_Summary(t *testing.T) {
	repo := NewRepository(newTestStore(t))
	ctx := context.Background()

	createFixture(t, repo, "Netflix", store.StatusActive, "streaming", "2024-01-01", 15.99)
	createFixture(t, repo, "Spotify", store.StatusActive, "music", "2024-01-05", 9.99)
	createFixture(t, repo, "Hulu", store.StatusCancelled, "streaming", "2024-02-01", 7.99)
	createFixture(t, repo, "Adobe", store.StatusPaused, "software", "2024-02-10", 20)

	sum, err := repo.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.TotalSubscriptions)
	assert.Equal(t, 2, sum.ActiveSubscriptions)
	assert.Equal(t, 1, sum.CancelledSubscriptions)
	assert.InDelta(t, 25.98, sum.TotalMonthlyCost, 0.0001)
	assert.Equal(t, 3, sum.TotalCategories)
}
