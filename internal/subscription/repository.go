package subscription

import (
	"context"
	"sort"
	"time"

	"github.com/subhub/subscription-hub/internal/stats"
	"github.com/subhub/subscription-hub/internal/store"
)

// Repository handles persistence for subscriptions.
type Repository struct {
	store *store.Store
}

func NewRepository(st *store.Store) *Repository {
	return &Repository{store: st}
}

// Create appends a new subscription with the next free id and stamps both
// timestamps.
func (r *Repository) Create(ctx context.Context, params CreateParams) (store.Subscription, error) {
	now := time.Now().UTC()

	sub := store.Subscription{
		Name:            params.Name,
		ServiceProvider: params.ServiceProvider,
		Amount:          params.Amount,
		Currency:        params.Currency,
		BillingCycle:    params.BillingCycle,
		NextBillingDate: params.NextBillingDate,
		Status:          params.Status,
		PaymentMethod:   params.PaymentMethod,
		Description:     params.Description,
		Category:        params.Category,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if sub.Currency == "" {
		sub.Currency = store.DefaultCurrency
	}
	if sub.Status == "" {
		sub.Status = store.StatusActive
	}

	err := r.store.Update(func(doc *store.Document) error {
		sub.ID = doc.NextSubscriptionID()
		doc.Subscriptions = append(doc.Subscriptions, sub)
		return nil
	})
	if err != nil {
		return store.Subscription{}, err
	}
	return sub, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (store.Subscription, error) {
	var sub store.Subscription
	err := r.store.View(func(doc *store.Document) error {
		found := doc.FindSubscription(id)
		if found == nil {
			return store.ErrNotFound
		}
		sub = *found
		return nil
	})
	return sub, err
}

// List returns subscriptions matching the filter, sorted ascending by
// next_billing_date.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]store.Subscription, error) {
	subs := []store.Subscription{}
	err := r.store.View(func(doc *store.Document) error {
		for i := range doc.Subscriptions {
			s := doc.Subscriptions[i]
			if filter.Status != nil && s.Status != *filter.Status {
				continue
			}
			if filter.Category != nil && (s.Category == nil || *s.Category != *filter.Category) {
				continue
			}
			subs = append(subs, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// ISO dates compare correctly as strings.
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].NextBillingDate < subs[j].NextBillingDate
	})
	return subs, nil
}

// Update merges the supplied fields into the stored record and refreshes
// updated_at. Omitted fields keep their values.
func (r *Repository) Update(ctx context.Context, id int, params UpdateParams) (store.Subscription, error) {
	var sub store.Subscription
	err := r.store.Update(func(doc *store.Document) error {
		found := doc.FindSubscription(id)
		if found == nil {
			return store.ErrNotFound
		}

		if params.Name != nil {
			found.Name = *params.Name
		}
		if params.ServiceProvider != nil {
			found.ServiceProvider = *params.ServiceProvider
		}
		if params.Amount != nil {
			found.Amount = *params.Amount
		}
		if params.Currency != nil {
			found.Currency = *params.Currency
		}
		if params.BillingCycle != nil {
			found.BillingCycle = *params.BillingCycle
		}
		if params.NextBillingDate != nil {
			found.NextBillingDate = *params.NextBillingDate
		}
		if params.Status != nil {
			found.Status = *params.Status
		}
		if params.PaymentMethod != nil {
			found.PaymentMethod = params.PaymentMethod
		}
		if params.Description != nil {
			found.Description = params.Description
		}
		if params.Category != nil {
			found.Category = params.Category
		}
		found.UpdatedAt = time.Now().UTC()

		sub = *found
		return nil
	})
	if err != nil {
		return store.Subscription{}, err
	}
	return sub, nil
}

// Delete removes the subscription and every payment referencing it in one
// persisted unit.
func (r *Repository) Delete(ctx context.Context, id int) error {
	return r.store.Update(func(doc *store.Document) error {
		idx := -1
		for i := range doc.Subscriptions {
			if doc.Subscriptions[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return store.ErrNotFound
		}

		doc.Subscriptions = append(doc.Subscriptions[:idx], doc.Subscriptions[idx+1:]...)

		kept := doc.Payments[:0]
		for _, p := range doc.Payments {
			if p.SubscriptionID != id {
				kept = append(kept, p)
			}
		}
		doc.Payments = kept
		return nil
	})
}

// Summary recomputes aggregate statistics from the live collection.
func (r *Repository) Summary(ctx context.Context) (stats.Summary, error) {
	var sum stats.Summary
	err := r.store.View(func(doc *store.Document) error {
		sum = stats.Compute(doc.Subscriptions)
		return nil
	})
	return sum, err
}
