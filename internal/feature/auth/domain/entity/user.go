// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Subscription status values stored on a user.
// SubscriptionNone means the user has never subscribed; other values
// mirror the billing provider's subscription states.
const (
	SubscriptionNone     = "none"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

// User represents a registered user in the system.
// It carries authentication credentials, profile data and the billing
// references needed to gate usage behind a subscription.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the unique login name used for authentication.
	Username string `gorm:"uniqueIndex;size:50;not null"`

	// Password is the bcrypt hash of the user's password.
	// This must never be written to a response body.
	Password string `gorm:"size:255;not null"`

	// DisplayName is an optional human-friendly name.
	DisplayName string `gorm:"size:255"`

	// ProfilePicture is an optional profile image reference or inline data URL.
	ProfilePicture string `gorm:"type:text"`

	// StripeCustomerID references the billing provider's customer object.
	StripeCustomerID string `gorm:"size:255"`

	// StripeSubscriptionID references the billing provider's subscription object.
	StripeSubscriptionID string `gorm:"size:255"`

	// SubscriptionStatus is the current subscription state ("none" until the
	// first checkout, then the provider's reported status).
	SubscriptionStatus string `gorm:"size:32;not null;default:'none'"`

	// SubscriptionExpiresAt is the end of the current paid period, if any.
	SubscriptionExpiresAt *time.Time

	// ScanCount tracks free analyses when no Redis counter is available.
	ScanCount int64 `gorm:"not null;default:0"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// IsSubscribed reports whether the user currently holds an active,
// unexpired subscription.
func (u *User) IsSubscribed() bool {
	if u.SubscriptionStatus != SubscriptionActive {
		return false
	}
	if u.SubscriptionExpiresAt != nil && time.Now().After(*u.SubscriptionExpiresAt) {
		return false
	}
	return true
}
