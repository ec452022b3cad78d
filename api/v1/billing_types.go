package v1

type PlanInterval string

const (
	PlanIntervalMonth PlanInterval = "month"
	PlanIntervalYear  PlanInterval = "year"
)

type Plan struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	PriceCents     int64        `json:"price_cents"`
	Currency       string       `json:"currency,omitempty"`
	Interval       PlanInterval `json:"interval,omitempty"`
	MaxDeployments int          `json:"max_deployments,omitempty"`
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

type Subscription struct {
	ID               string             `json:"id,omitempty"`
	PlanID           string             `json:"plan_id"`
	Status           SubscriptionStatus `json:"status,omitempty"`
	CurrentPeriodEnd string             `json:"current_period_end,omitempty"`
}

// CheckoutSession points the user at the payment provider's hosted checkout
// page. The widget itself is rendered by the provider, not by this client.
type CheckoutSession struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
}
