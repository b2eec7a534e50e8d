package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound   = errors.New("listing not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoBids            = errors.New("no bids found for listing")
	ErrDuplicateUsername = errors.New("username already taken")
)

// business logic errors
var (
	ErrInvalidBid         = errors.New("invalid bid")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrListingClosed      = errors.New("listing is closed")
	ErrInvalidListing     = errors.New("invalid listing")
	ErrInvalidImageURL    = errors.New("invalid image URL")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidComment     = errors.New("invalid comment")
	ErrNotListingAuthor   = errors.New("only the author can close this listing")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	ErrPasswordMismatch   = errors.New("passwords must match")
	ErrInvalidUser        = errors.New("invalid registration details")
	ErrInvalidSession     = errors.New("invalid session")
)
