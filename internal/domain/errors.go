package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when a key is not present in the store
	ErrCacheMiss = errors.New("cache miss")

	// ErrStoreUnavailable is returned when the key-value store cannot be reached
	ErrStoreUnavailable = errors.New("key-value store unavailable")

	// ErrSampleTooShort is returned when a typing sample has too few intervals
	ErrSampleTooShort = errors.New("typing sample too short")

	// ErrPatternMismatch is returned when a typing sample falls outside the enrolled tolerance
	ErrPatternMismatch = errors.New("typing pattern not recognized")

	// ErrVerificationLocked is returned when the failure limit has been reached
	ErrVerificationLocked = errors.New("verification locked after repeated failures")

	// ErrInvalidPhase is returned when a submission arrives in a phase that accepts none
	ErrInvalidPhase = errors.New("submission not accepted in current phase")

	// ErrEmptyCart is returned when checking out without items
	ErrEmptyCart = errors.New("cart is empty")

	// ErrReceiptNotFound is returned when a receipt token is unknown
	ErrReceiptNotFound = errors.New("receipt not found")
)
