// Package usecase implements the business logic for the analysis feature.
package usecase

import "errors"

var (
	// ErrInvalidImage is returned when the submitted image data is empty.
	ErrInvalidImage = errors.New("image data is required and must be a base64 string")

	// ErrImageTooLarge is returned when the submitted image exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")

	// ErrAnalysisFailed covers provider failures and unparseable model responses.
	ErrAnalysisFailed = errors.New("failed to analyze food image")

	// ErrQuotaExceeded is returned when a non-subscriber has used up the free scans.
	ErrQuotaExceeded = errors.New("free scan limit reached")
)
