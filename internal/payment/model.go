package payment

import "github.com/subhub/subscription-hub/internal/store"

// View is a payment enriched at read time with the owning subscription's
// name and provider. Both are null when the reference no longer resolves.
type View struct {
	store.Payment
	SubscriptionName *string `json:"subscription_name"`
	ServiceProvider  *string `json:"service_provider"`
}

// CreateParams represents validated data needed to record a payment.
type CreateParams struct {
	SubscriptionID int
	Amount         float64
	Currency       string
	PaymentDate    string
	Status         string
	PaymentMethod  *string
	TransactionID  *string
	Notes          *string
}

// UpdateParams carries the fields of a partial update; nil means untouched.
// SubscriptionID may be changed here without re-validation against the
// subscription collection.
type UpdateParams struct {
	SubscriptionID *int
	Amount         *float64
	Currency       *string
	PaymentDate    *string
	Status         *string
	PaymentMethod  *string
	TransactionID  *string
	Notes          *string
}

// ListFilter narrows List results; supplied fields are conjunctive. The date
// bounds are inclusive and compared lexicographically as ISO dates.
type ListFilter struct {
	SubscriptionID *int
	Status         *string
	StartDate      *string
	EndDate        *string
}
