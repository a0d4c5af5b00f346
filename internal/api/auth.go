package api

import "time"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=50"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	DisplayName     string `json:"displayName"`
	ProfilePicture  string `json:"profilePicture"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest is the body of PUT /api/auth/profile.
// Nil fields are left unchanged.
type ProfileUpdateRequest struct {
	DisplayName    *string `json:"displayName"`
	ProfilePicture *string `json:"profilePicture"`
}

// UserResponse is the sanitized user representation.
// The credential hash is never part of this type.
type UserResponse struct {
	ID                    uint       `json:"id"`
	Username              string     `json:"username"`
	DisplayName           string     `json:"displayName,omitempty"`
	ProfilePicture        string     `json:"profilePicture,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	SubscriptionStatus    string     `json:"subscriptionStatus"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt,omitempty"`
}
