package store

import "time"

// Billing cycles accepted for a subscription.
const (
	CycleWeekly    = "weekly"
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleYearly    = "yearly"
)

// Subscription statuses.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusPaused    = "paused"
)

// Payment statuses.
const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// DefaultCurrency is applied when a request omits the currency code.
const DefaultCurrency = "USD"

// Subscription is a recurring billing obligation as persisted in the document.
// Dates are plain YYYY-MM-DD strings; timestamps are RFC 3339.
type Subscription struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	ServiceProvider string    `json:"service_provider"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	BillingCycle    string    `json:"billing_cycle"`
	NextBillingDate string    `json:"next_billing_date"`
	Status          string    `json:"status"`
	PaymentMethod   *string   `json:"payment_method"`
	Description     *string   `json:"description"`
	Category        *string   `json:"category"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Payment records one charge against a subscription. SubscriptionID is a
// non-owning reference; the join is computed on read.
type Payment struct {
	ID             int       `json:"id"`
	SubscriptionID int       `json:"subscription_id"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	PaymentDate    string    `json:"payment_date"`
	Status         string    `json:"status"`
	PaymentMethod  *string   `json:"payment_method"`
	TransactionID  *string   `json:"transaction_id"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// Document is the whole persisted state: two independent collections with
// separate id spaces. It is owned by the Store and only mutated inside
// Store.Update.
type Document struct {
	Subscriptions []Subscription `json:"subscriptions"`
	Payments      []Payment      `json:"payments"`
}

// FindSubscription returns the subscription with the given id, or nil.
func (d *Document) FindSubscription(id int) *Subscription {
	for i := range d.Subscriptions {
		if d.Subscriptions[i].ID == id {
			return &d.Subscriptions[i]
		}
	}
	return nil
}

// FindPayment returns the payment with the given id, or nil.
func (d *Document) FindPayment(id int) *Payment {
	for i := range d.Payments {
		if d.Payments[i].ID == id {
			return &d.Payments[i]
		}
	}
	return nil
}

// NextSubscriptionID returns max(id)+1 over the collection, or 1 when empty.
func (d *Document) NextSubscriptionID() int {
	next := 1
	for i := range d.Subscriptions {
		if d.Subscriptions[i].ID >= next {
			next = d.Subscriptions[i].ID + 1
		}
	}
	return next
}

// NextPaymentID returns max(id)+1 over the payments collection, or 1 when empty.
func (d *Document) NextPaymentID() int {
	next := 1
	for i := range d.Payments {
		if d.Payments[i].ID >= next {
			next = d.Payments[i].ID + 1
		}
	}
	return next
}
