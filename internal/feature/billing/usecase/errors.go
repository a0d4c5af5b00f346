package usecase

import "errors"

// ErrInvalidWebhook is returned when a webhook payload fails signature verification.
var ErrInvalidWebhook = errors.New("invalid webhook payload")
