package stripeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/customer"
	"github.com/stripe/stripe-go/v78/subscription"
	"github.com/stripe/stripe-go/v78/webhook"

	"nutrilens_backend/internal/feature/billing/usecase"
)

// Config はStripeクライアントの設定です。
type Config struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string
}

// Client はStripe APIを利用したPaymentProviderの実装です。
type Client struct {
	webhookSecret string
	priceID       string
}

// インターフェースを満たしているかコンパイル時に検証
var _ usecase.PaymentProvider = (*Client)(nil)

// NewClient はStripe APIキーを設定してClientを生成します。
func NewClient(cfg Config) *Client {
	stripe.Key = cfg.SecretKey
	return &Client{
		webhookSecret: cfg.WebhookSecret,
		priceID:       cfg.PriceID,
	}
}

// CreateCustomer はStripe側に顧客を作成し、顧客IDを返します。
func (c *Client) CreateCustomer(ctx context.Context, username string) (string, error) {
	params := &stripe.CustomerParams{
		Name: stripe.String(username),
	}
	params.Context = ctx
	cus, err := customer.New(params)
	if err != nil {
		return "", err
	}
	return cus.ID, nil
}

// CreateSubscription は未確定状態のサブスクリプションを作成します。
// 最初の請求書のPaymentIntentを展開し、client secretを取り出します。
func (c *Client) CreateSubscription(ctx context.Context, customerID string) (*usecase.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(c.priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := subscription.New(params)
	if err != nil {
		return nil, err
	}

	result := &usecase.Subscription{
		ID:     sub.ID,
		Status: string(sub.Status),
	}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		result.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return result, nil
}

// VerifyWebhook はWebhookの署名を検証し、正規化したイベントを返します。
func (c *Client) VerifyWebhook(payload []byte, signature string) (*usecase.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, err
	}

	switch event.Type {
	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("failed to parse invoice event: %w", err)
		}
		out := &usecase.Event{Type: usecase.EventPaymentSucceeded}
		if inv.Customer != nil {
			out.CustomerID = inv.Customer.ID
		}
		if inv.Subscription != nil {
			out.SubscriptionID = inv.Subscription.ID
		}
		if inv.Lines != nil && len(inv.Lines.Data) > 0 {
			out.PeriodEnd = time.Unix(inv.Lines.Data[0].Period.End, 0)
		}
		return out, nil

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("failed to parse subscription event: %w", err)
		}
		out := &usecase.Event{
			Type:           usecase.EventSubscriptionUpdated,
			SubscriptionID: sub.ID,
			Status:         string(sub.Status),
		}
		if event.Type == "customer.subscription.deleted" {
			out.Type = usecase.EventSubscriptionDeleted
		}
		if sub.Customer != nil {
			out.CustomerID = sub.Customer.ID
		}
		if sub.CurrentPeriodEnd > 0 {
			out.PeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0)
		}
		return out, nil
	}

	return &usecase.Event{Type: usecase.EventIgnored}, nil
}
