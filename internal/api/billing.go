package api

// SubscriptionResponse is the body of POST /api/create-subscription.
// ClientSecret feeds the provider's hosted payment element.
type SubscriptionResponse struct {
	SubscriptionID string `json:"subscriptionId"`
	ClientSecret   string `json:"clientSecret"`
}
