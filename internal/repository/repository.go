package repository

import (
	"context"

	model "auction-house/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the listing, bid, comment and watchlist storage for the auction system
type AuctionDB interface {
	CreateCategory(ctx context.Context, category model.Category) error
	GetCategory(ctx context.Context, categoryID string) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.CategorySummary, error)

	CreateListingWithBid(ctx context.Context, listing model.Listing, baseBid model.Bid) error
	GetListing(ctx context.Context, listingID string) (model.ListingSummary, error)
	ListListings(ctx context.Context, filter model.ListingFilter) ([]model.ListingSummary, error)
	CloseListing(ctx context.Context, listingID, authorID string) error

	PlaceBidIfHighest(ctx context.Context, bid model.Bid) error
	GetHighestBid(ctx context.Context, listingID string) (model.BidView, error)
	GetBidsByListing(ctx context.Context, listingID string) ([]model.BidView, error)
	CountBids(ctx context.Context, listingID string) (int, error)
	HasUserBid(ctx context.Context, listingID, userID string) (bool, error)

	CreateComment(ctx context.Context, comment model.Comment) error
	ListComments(ctx context.Context, listingID string) ([]model.CommentView, error)

	ToggleWatchlist(ctx context.Context, userID, listingID string) (bool, error)
	IsWatching(ctx context.Context, userID, listingID string) (bool, error)
}

// AccountDB defines the credential and session storage
type AccountDB interface {
	CreateUser(ctx context.Context, user model.User) error
	GetUserByID(ctx context.Context, userID string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	CreateSession(ctx context.Context, session model.Session) error
	GetSession(ctx context.Context, sessionID string) (model.Session, error)
	RevokeSession(ctx context.Context, sessionID string) error
}
