package usecase

import (
	"context"
	"fmt"
	"time"

	"nutrilens_backend/internal/feature/auth/domain/entity"
)

// EventType は決済プロバイダーから受信するイベントの種別です。
type EventType string

const (
	// EventPaymentSucceeded はサブスクリプションの支払い完了イベントです。
	EventPaymentSucceeded EventType = "payment_succeeded"
	// EventSubscriptionUpdated はサブスクリプション状態の変更イベントです。
	EventSubscriptionUpdated EventType = "subscription_updated"
	// EventSubscriptionDeleted はサブスクリプションの解約イベントです。
	EventSubscriptionDeleted EventType = "subscription_deleted"
	// EventIgnored は処理対象外のイベントです。
	EventIgnored EventType = "ignored"
)

// Event は署名検証済みのWebhookイベントを正規化したものです。
type Event struct {
	Type           EventType
	CustomerID     string
	SubscriptionID string
	Status         string
	PeriodEnd      time.Time
}

// Subscription は作成されたサブスクリプションの情報です。
// ClientSecretはクライアント側での決済確定に使用します。
type Subscription struct {
	ID           string
	Status       string
	ClientSecret string
}

// PaymentProvider は決済プロバイダーAPIを抽象化するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PaymentProvider interface {
	// CreateCustomer は決済プロバイダー側に顧客を作成し、顧客IDを返します。
	CreateCustomer(ctx context.Context, username string) (string, error)
	// CreateSubscription は未確定状態のサブスクリプションを作成します。
	CreateSubscription(ctx context.Context, customerID string) (*Subscription, error)
	// VerifyWebhook はWebhookの署名を検証し、正規化したイベントを返します。
	VerifyWebhook(payload []byte, signature string) (*Event, error)
}

// UserRepository はユーザーの課金関連フィールドの読み書きを抽象化します。
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	// FindByStripeCustomerID は該当ユーザーがいない場合(nil, nil)を返します。
	FindByStripeCustomerID(ctx context.Context, customerID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// ScanCounter は課金イベントに応じて解析回数をリセットします。
type ScanCounter interface {
	Reset(ctx context.Context, userID uint) error
}

// billingUsecase はサブスクリプション課金のビジネスロジックを提供します。
type billingUsecase struct {
	payments PaymentProvider
	users    UserRepository
	scans    ScanCounter
}

// NewBillingUsecase はbillingUsecaseの新しいインスタンスを生成します。
func NewBillingUsecase(payments PaymentProvider, users UserRepository, scans ScanCounter) *billingUsecase {
	return &billingUsecase{payments: payments, users: users, scans: scans}
}

// CreateSubscription はユーザーのサブスクリプションを作成します。
// 決済プロバイダー側の顧客が未作成の場合は先に作成して保存します。
func (u *billingUsecase) CreateSubscription(ctx context.Context, userID uint) (*Subscription, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.StripeCustomerID == "" {
		customerID, err := u.payments.CreateCustomer(ctx, user.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to create customer: %w", err)
		}
		user.StripeCustomerID = customerID
		if err := u.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	sub, err := u.payments.CreateSubscription(ctx, user.StripeCustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	user.StripeSubscriptionID = sub.ID
	user.SubscriptionStatus = sub.Status
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return sub, nil
}

// ProcessWebhook は署名を検証し、イベントをユーザー状態に反映します。
func (u *billingUsecase) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := u.payments.VerifyWebhook(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	return u.applyEvent(ctx, event)
}

// applyEvent はイベントをユーザーのサブスクリプション状態に適用します。
// 未知の顧客に対するイベントはエラーにせず受理します。
func (u *billingUsecase) applyEvent(ctx context.Context, event *Event) error {
	if event.Type == EventIgnored {
		return nil
	}

	user, err := u.users.FindByStripeCustomerID(ctx, event.CustomerID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	switch event.Type {
	case EventPaymentSucceeded:
		user.SubscriptionStatus = entity.SubscriptionActive
		if event.SubscriptionID != "" {
			user.StripeSubscriptionID = event.SubscriptionID
		}
		if !event.PeriodEnd.IsZero() {
			periodEnd := event.PeriodEnd
			user.SubscriptionExpiresAt = &periodEnd
		}
		if err := u.users.Update(ctx, user); err != nil {
			return err
		}
		// 購読開始で無料枠をリセットする
		return u.scans.Reset(ctx, user.ID)

	case EventSubscriptionUpdated:
		user.SubscriptionStatus = event.Status
		if !event.PeriodEnd.IsZero() {
			periodEnd := event.PeriodEnd
			user.SubscriptionExpiresAt = &periodEnd
		}
		return u.users.Update(ctx, user)

	case EventSubscriptionDeleted:
		user.SubscriptionStatus = entity.SubscriptionCanceled
		user.StripeSubscriptionID = ""
		user.SubscriptionExpiresAt = nil
		return u.users.Update(ctx, user)
	}

	return nil
}
