package payment

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

func seedSubscription(t *testing.T, st *store.Store, id int, name string) {
	t.Helper()
	err := st.Update(func(doc *store.Document) error {
		doc.Subscriptions = append(doc.Subscriptions, store.Subscription{
			ID:              id,
			Name:            name,
			ServiceProvider: name + " Inc.",
			Amount:          15.99,
			Currency:        store.DefaultCurrency,
			BillingCycle:    store.CycleMonthly,
			NextBillingDate: "2024-01-01",
			Status:          store.StatusActive,
		})
		return nil
	})
	require.NoError(t, err)
}

func intptr(i int) *int { return &i }

func strptr(s string) *string { return &s }

func TestRepository_CreateRequiresExistingSubscription(t *testing.T) {
	st := newTestStore(t)
	repo := NewRepository(st)

	_, err := repo.Create(context.Background(), CreateParams{
		SubscriptionID: 7,
		Amount:         15.99,
		PaymentDate:    "2024-01-01",
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	// Nothing persisted.
	err = st.View(func(doc *store.Document) error {
		assert.Empty(t, doc.Payments)
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_CreateDefaultsAndEnrichment(t *testing.T) {
	st := newTestStore(t)
	seedSubscription(t, st, 1, "Netflix")
	repo := NewRepository(st)

	view, err := repo.Create(context.Background(), CreateParams{
		SubscriptionID: 1,
		Amount:         15.99,
		PaymentDate:    "2024-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, view.ID)
	assert.Equal(t, store.PaymentCompleted, view.Status)
	assert.Equal(t, store.DefaultCurrency, view.Currency)
	assert.False(t, view.CreatedAt.IsZero())
	require.NotNil(t, view.SubscriptionName)
	assert.Equal(t, "Netflix", *view.SubscriptionName)
	require.NotNil(t, view.ServiceProvider)
	assert.Equal(t, "Netflix Inc.", *view.ServiceProvider)
}

func TestRepository_IDSpaceIndependentFromSubscriptions(t *testing.T) {
	st := newTestStore(t)
	seedSubscription(t, st, 5, "Netflix")
	repo := NewRepository(st)

	view, err := repo.Create(context.Background(), CreateParams{
		SubscriptionID: 5,
		Amount:         15.99,
		PaymentDate:    "2024-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, view.ID)
}

func TestRepository_ListFiltersAndSorts(t *testing.T) {
	st := newTestStore(t)
	seedSubscription(t, st, 1, "Netflix")
	seedSubscription(t, st, 2, "Spotify")
	repo := NewRepository(st)
	ctx := context.Background()

	mk := func(subID int, date, status string) {
		_, err := repo.Create(ctx, CreateParams{
			SubscriptionID: subID,
			Amount:         9.99,
			PaymentDate:    date,
			Status:         status,
		})
		require.NoError(t, err)
	}
	mk(1, "2024-01-01", "")
	mk(1, "2024-03-01", store.PaymentFailed)
	mk(2, "2024-02-01", "")

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Descending by payment_date.
	assert.Equal(t, "2024-03-01", all[0].PaymentDate)
	assert.Equal(t, "2024-02-01", all[1].PaymentDate)
	assert.Equal(t, "2024-01-01", all[2].PaymentDate)

	bySub, err := repo.List(ctx, ListFilter{SubscriptionID: intptr(1)})
	require.NoError(t, err)
	assert.Len(t, bySub, 2)

	completed, err := repo.List(ctx, ListFilter{Status: strptr(store.PaymentCompleted)})
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	// Inclusive bounds, conjunctive with the other filters.
	ranged, err := repo.List(ctx, ListFilter{
		SubscriptionID: intptr(1),
		StartDate:      strptr("2024-01-01"),
		EndDate:        strptr("2024-02-28"),
	})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "2024-01-01", ranged[0].PaymentDate)
}

func TestRepository_UpdateMergesOnlySuppliedFields(t *testing.T) {
	st := newTestStore(t)
	seedSubscription(t, st, 1, "Netflix")
	repo := NewRepository(st)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateParams{
		SubscriptionID: 1,
		Amount:         15.99,
		PaymentDate:    "2024-01-01",
		Notes:          strptr("first charge"),
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, UpdateParams{
		Status: strptr(store.PaymentRefunded),
	})
	require.NoError(t, err)

	assert.Equal(t, store.PaymentRefunded, updated.Status)
	assert.Equal(t, 15.99, updated.Amount)
	assert.Equal(t, "2024-01-01", updated.PaymentDate)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "first charge", *updated.Notes)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = repo.Update(ctx, 42, UpdateParams{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRepository_UpdateDanglingSubscriptionReference(t *testing.T) {
	st := newTestStore(t)
	seedSubscription(t, st, 1, "Netflix")
	repo := NewRepository(st)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateParams{
		SubscriptionID: 1,
		Amount:         15.99,
		PaymentDate:    "2024-01-01",
	})
	require.NoError(t, err)

	// A changed subscription_id is applied without validation; reads surface
	// the dangling reference as null enrichment.
	updated, err := repo.Update(ctx, created.ID, UpdateParams{SubscriptionID: intptr(99)})
	require.NoError(t, err)
	assert.Equal(t, 99, updated.SubscriptionID)
	assert.Nil(t, updated.SubscriptionName)
	assert.Nil(t, updated.ServiceProvider)
}

func TestRepository_ViewsDoNotAliasLiveDocument(t *testing.T) {
	st := newTestStore(t)
	seedSubscription(t, st, 1, "Netflix")
	repo := NewRepository(st)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateParams{
		SubscriptionID: 1,
		Amount:         15.99,
		PaymentDate:    "2024-01-01",
	})
	require.NoError(t, err)

	view, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	// Renaming the subscription afterwards must not change a view that was
	// already returned.
	err = st.Update(func(doc *store.Document) error {
		doc.FindSubscription(1).Name = "Hulu"
		doc.FindSubscription(1).ServiceProvider = "Hulu LLC"
		return nil
	})
	require.NoError(t, err)

	require.NotNil(t, view.SubscriptionName)
	assert.Equal(t, "Netflix", *view.SubscriptionName)
	require.NotNil(t, view.ServiceProvider)
	assert.Equal(t, "Netflix Inc.", *view.ServiceProvider)
}

func TestRepository_Delete(t *testing.T) {
	st := newTestStore(t)
	seedSubscription(t, st, 1, "Netflix")
	repo := NewRepository(st)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateParams{
		SubscriptionID: 1,
		Amount:         15.99,
		PaymentDate:    "2024-01-01",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), store.ErrNotFound)
}
