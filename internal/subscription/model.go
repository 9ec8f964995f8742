package subscription

// CreateParams represents validated data needed to insert a subscription.
// Optional fields arrive as nil pointers and are persisted as JSON null.
type CreateParams struct {
	Name            string
	ServiceProvider string
	Amount          float64
	Currency        string
	BillingCycle    string
	NextBillingDate string
	Status          string
	PaymentMethod   *string
	Description     *string
	Category        *string
}

// UpdateParams carries the fields of a partial update. A nil pointer means
// "leave untouched"; the merge never clears an omitted field.
type UpdateParams struct {
	Name            *string
	ServiceProvider *string
	Amount          *float64
	Currency        *string
	BillingCycle    *string
	NextBillingDate *string
	Status          *string
	PaymentMethod   *string
	Description     *string
	Category        *string
}

// ListFilter narrows List results. Nil fields impose no constraint; supplied
// fields are conjunctive.
type ListFilter struct {
	Status   *string
	Category *string
}
