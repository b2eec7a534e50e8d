package models

import "time"

// User represents a registered participant in the auction
type User struct {
	UserID       string    `db:"id" json:"user_id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FullName returns "First Last" or an empty string when neither is set.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

// Session is a server-side login session. The cookie only carries a signed reference to it.
type Session struct {
	SessionID string     `db:"id"`
	UserID    string     `db:"user_id"`
	CreatedAt time.Time  `db:"created_at"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// Active reports whether the session can still authenticate at the given instant.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// Category groups listings
type Category struct {
	CategoryID string    `db:"id" json:"category_id"`
	Title      string    `db:"title" json:"title"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CategorySummary is a category annotated with how many listings it holds
type CategorySummary struct {
	Category
	ListingCount int `db:"listing_count" json:"listing_count"`
}

// Listing represents an item up for auction
type Listing struct {
	ListingID   string    `db:"id" json:"listing_id"`
	AuthorID    string    `db:"author_id" json:"author_id"`
	CategoryID  string    `db:"category_id" json:"category_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ListingSummary is a listing joined with its author, category and current highest bid
type ListingSummary struct {
	Listing
	AuthorUsername string  `db:"author_username" json:"author_username"`
	CategoryTitle  string  `db:"category_title" json:"category_title"`
	HighestBid     float64 `db:"highest_bid" json:"highest_bid"`
}

// ListingFilter narrows ListListings. Empty fields do not filter.
type ListingFilter struct {
	CategoryID string
	AuthorID   string
	WatcherID  string
}

// NewListing carries the validated input of the listing creation form
type NewListing struct {
	Title       string
	Description string
	BaseBid     float64
	ImageURL    string
	CategoryID  string
}

// Bid represents a user's bid on a listing
type Bid struct {
	BidID     string    `db:"id" json:"bid_id"`
	ListingID string    `db:"listing_id" json:"listing_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Amount    float64   `db:"amount" json:"amount"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BidView is a bid joined with its bidder's username
type BidView struct {
	Bid
	Username string `db:"username" json:"username"`
}

// Comment is a user's remark on a listing
type Comment struct {
	CommentID string    `db:"id" json:"comment_id"`
	ListingID string    `db:"listing_id" json:"listing_id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CommentView is a comment joined with its author's username
type CommentView struct {
	Comment
	AuthorUsername string `db:"author_username" json:"author_username"`
}

// ListingDetail is everything the detail page shows for one listing and one viewer
type ListingDetail struct {
	Listing    ListingSummary
	HighestBid *BidView
	BidCount   int
	Bids       []BidView
	Comments   []CommentView
	HasUserBid bool
	Watching   bool
	IsAuthor   bool
}
