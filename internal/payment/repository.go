package payment

import (
	"context"
	"sort"
	"time"

	"github.com/subhub/subscription-hub/internal/store"
)

// Repository handles persistence for payments.
type Repository struct {
	store *store.Store
}

func NewRepository(st *store.Store) *Repository {
	return &Repository{store: st}
}

// enrich resolves the owning subscription by linear lookup. The names stay
// null when the reference is dangling. The strings are copied so the view
// stays valid after the store lock is released; it must never alias the live
// document.
func enrich(doc *store.Document, p store.Payment) View {
	view := View{Payment: p}
	if sub := doc.FindSubscription(p.SubscriptionID); sub != nil {
		name := sub.Name
		provider := sub.ServiceProvider
		view.SubscriptionName = &name
		view.ServiceProvider = &provider
	}
	return view
}

// Create records a payment. The referenced subscription must exist at
// creation time; otherwise store.ErrNotFound is returned and nothing is
// persisted.
func (r *Repository) Create(ctx context.Context, params CreateParams) (View, error) {
	pay := store.Payment{
		SubscriptionID: params.SubscriptionID,
		Amount:         params.Amount,
		Currency:       params.Currency,
		PaymentDate:    params.PaymentDate,
		Status:         params.Status,
		PaymentMethod:  params.PaymentMethod,
		TransactionID:  params.TransactionID,
		Notes:          params.Notes,
		CreatedAt:      time.Now().UTC(),
	}
	if pay.Currency == "" {
		pay.Currency = store.DefaultCurrency
	}
	if pay.Status == "" {
		pay.Status = store.PaymentCompleted
	}

	var view View
	err := r.store.Update(func(doc *store.Document) error {
		if doc.FindSubscription(params.SubscriptionID) == nil {
			return store.ErrNotFound
		}
		pay.ID = doc.NextPaymentID()
		doc.Payments = append(doc.Payments, pay)
		view = enrich(doc, pay)
		return nil
	})
	if err != nil {
		return View{}, err
	}
	return view, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (View, error) {
	var view View
	err := r.store.View(func(doc *store.Document) error {
		found := doc.FindPayment(id)
		if found == nil {
			return store.ErrNotFound
		}
		view = enrich(doc, *found)
		return nil
	})
	return view, err
}

// List returns enriched payments matching the filter, sorted descending by
// payment_date.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]View, error) {
	views := []View{}
	err := r.store.View(func(doc *store.Document) error {
		for i := range doc.Payments {
			p := doc.Payments[i]
			if filter.SubscriptionID != nil && p.SubscriptionID != *filter.SubscriptionID {
				continue
			}
			if filter.Status != nil && p.Status != *filter.Status {
				continue
			}
			if filter.StartDate != nil && p.PaymentDate < *filter.StartDate {
				continue
			}
			if filter.EndDate != nil && p.PaymentDate > *filter.EndDate {
				continue
			}
			views = append(views, enrich(doc, p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].PaymentDate > views[j].PaymentDate
	})
	return views, nil
}

// Update merges the supplied fields into the stored record. A changed
// subscription_id is applied as-is without checking the new reference; reads
// surface a dangling reference as null enrichment.
func (r *Repository) Update(ctx context.Context, id int, params UpdateParams) (View, error) {
	var view View
	err := r.store.Update(func(doc *store.Document) error {
		found := doc.FindPayment(id)
		if found == nil {
			return store.ErrNotFound
		}

		if params.SubscriptionID != nil {
			found.SubscriptionID = *params.SubscriptionID
		}
		if params.Amount != nil {
			found.Amount = *params.Amount
		}
		if params.Currency != nil {
			found.Currency = *params.Currency
		}
		if params.PaymentDate != nil {
			found.PaymentDate = *params.PaymentDate
		}
		if params.Status != nil {
			found.Status = *params.Status
		}
		if params.PaymentMethod != nil {
			found.PaymentMethod = params.PaymentMethod
		}
		if params.TransactionID != nil {
			found.TransactionID = params.TransactionID
		}
		if params.Notes != nil {
			found.Notes = params.Notes
		}

		view = enrich(doc, *found)
		return nil
	})
	if err != nil {
		return View{}, err
	}
	return view, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	return r.store.Update(func(doc *store.Document) error {
		for i := range doc.Payments {
			if doc.Payments[i].ID == id {
				doc.Payments = append(doc.Payments[:i], doc.Payments[i+1:]...)
				return nil
			}
		}
		return store.ErrNotFound
	})
}
