package auction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

const (
	MaxTitleLength       = 64
	MaxDescriptionLength = 300
	MaxImageURLLength    = 200
	MaxCommentLength     = 300
	MinBaseBid           = 1.0
)

// AuctionService defines the business logic for listings, bids, comments and watchlists
type AuctionService struct {
	repo repository.AuctionDB
	now  func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB) *AuctionService {
	return &AuctionService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// CreateListing validates the input and stores an active listing together with its base bid
func (s *AuctionService) CreateListing(ctx context.Context, authorID string, input models.NewListing) (models.Listing, error) {
	if authorID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - missing author", auctionerrors.ErrInvalidListing)
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := validateListing(input); err != nil {
		return models.Listing{}, err
	}

	if _, err := s.repo.GetCategory(ctx, input.CategoryID); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to load category %s: %w", input.CategoryID, err)
	}

	now := s.now()
	listing := models.Listing{
		ListingID:   utils.NewULID(),
		AuthorID:    authorID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Active:      true,
		CreatedAt:   now,
	}
	baseBid := models.Bid{
		BidID:     utils.NewULID(),
		ListingID: listing.ListingID,
		UserID:    authorID,
		Amount:    input.BaseBid,
		CreatedAt: now,
	}

	if err := s.repo.CreateListingWithBid(ctx, listing, baseBid); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to create listing %q: %w", listing.Title, err)
	}
	return listing, nil
}

func validateListing(input models.NewListing) error {
	switch {
	case input.Title == "":
		return fmt.Errorf("service: %w - title is required", auctionerrors.ErrInvalidListing)
	case utf8.RuneCountInString(input.Title) > MaxTitleLength:
		return fmt.Errorf("service: %w - title longer than %d characters", auctionerrors.ErrInvalidListing, MaxTitleLength)
	case input.Description == "":
		return fmt.Errorf("service: %w - description is required", auctionerrors.ErrInvalidListing)
	case utf8.RuneCountInString(input.Description) > MaxDescriptionLength:
		return fmt.Errorf("service: %w - description longer than %d characters", auctionerrors.ErrInvalidListing, MaxDescriptionLength)
	case math.IsNaN(input.BaseBid) || math.IsInf(input.BaseBid, 0) || input.BaseBid < MinBaseBid:
		return fmt.Errorf("service: %w - base bid must be at least %.2f", auctionerrors.ErrInvalidListing, MinBaseBid)
	case input.CategoryID == "":
		return fmt.Errorf("service: %w - category is required", auctionerrors.ErrInvalidListing)
	}

	if input.ImageURL != "" {
		if utf8.RuneCountInString(input.ImageURL) > MaxImageURLLength {
			return fmt.Errorf("service: %w: %w - longer than %d characters", auctionerrors.ErrInvalidListing, auctionerrors.ErrInvalidImageURL, MaxImageURLLength)
		}
		u, err := url.Parse(input.ImageURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("service: %w: %w - %q", auctionerrors.ErrInvalidListing, auctionerrors.ErrInvalidImageURL, input.ImageURL)
		}
	}
	return nil
}

// PlaceBid validates and records a user's bid. The store accepts it only while it is the highest.
func (s *AuctionService) PlaceBid(ctx context.Context, listingID, userID string, amount float64) (models.Bid, error) {
	if err := validateBid(listingID, userID, amount); err != nil {
		return models.Bid{}, err
	}

	bid := models.Bid{
		BidID:     utils.NewULID(),
		ListingID: listingID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: s.now(),
	}

	if err := s.repo.PlaceBidIfHighest(ctx, bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for listing %s by user %s: %w", listingID, userID, err)
	}

	return bid, nil
}

// validateBid checks input validity; the highest-bid rule is enforced atomically by the store
func validateBid(listingID, userID string, amount float64) error {
	if listingID == "" || userID == "" {
		return fmt.Errorf("service: %w - missing listingID or userID", auctionerrors.ErrInvalidBid)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("service: %w - bid amount is not a number", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}
	return nil
}

// AddComment appends a comment to an existing listing
func (s *AuctionService) AddComment(ctx context.Context, listingID, authorID, body string) (models.Comment, error) {
	body = strings.TrimSpace(body)
	if listingID == "" || authorID == "" {
		return models.Comment{}, fmt.Errorf("service: %w - missing listingID or authorID", auctionerrors.ErrInvalidComment)
	}
	if body == "" {
		return models.Comment{}, fmt.Errorf("service: %w - comment is empty", auctionerrors.ErrInvalidComment)
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return models.Comment{}, fmt.Errorf("service: %w - comment longer than %d characters", auctionerrors.ErrInvalidComment, MaxCommentLength)
	}

	if _, err := s.repo.GetListing(ctx, listingID); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}

	comment := models.Comment{
		CommentID: utils.NewULID(),
		ListingID: listingID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to add comment to listing %s: %w", listingID, err)
	}
	return comment, nil
}

// CloseListing deactivates a listing. Only its author may do so.
func (s *AuctionService) CloseListing(ctx context.Context, listingID, userID string) error {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}
	if userID == "" || listing.AuthorID != userID {
		return fmt.Errorf("service: %w - listing %s", auctionerrors.ErrNotListingAuthor, listingID)
	}
	if !listing.Active {
		return nil
	}

	if err := s.repo.CloseListing(ctx, listingID, userID); err != nil {
		return fmt.Errorf("service: failed to close listing %s: %w", listingID, err)
	}
	return nil
}

// ToggleWatchlist flips the listing's membership in the user's watchlist and reports the new state
func (s *AuctionService) ToggleWatchlist(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("service: %w - missing user", auctionerrors.ErrInvalidUser)
	}
	if _, err := s.repo.GetListing(ctx, listingID); err != nil {
		return false, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}

	watching, err := s.repo.ToggleWatchlist(ctx, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("service: failed to toggle watchlist for listing %s: %w", listingID, err)
	}
	return watching, nil
}

// ListingDetail gathers everything the detail page shows. viewerID may be empty for anonymous visitors.
func (s *AuctionService) ListingDetail(ctx context.Context, listingID, viewerID string) (models.ListingDetail, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return models.ListingDetail{}, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}

	detail := models.ListingDetail{
		Listing:  listing,
		IsAuthor: viewerID != "" && viewerID == listing.AuthorID,
	}

	highest, err := s.repo.GetHighestBid(ctx, listingID)
	switch {
	case err == nil:
		detail.HighestBid = &highest
	case !errors.Is(err, auctionerrors.ErrNoBids):
		return models.ListingDetail{}, fmt.Errorf("service: failed to get highest bid for listing %s: %w", listingID, err)
	}

	if detail.BidCount, err = s.repo.CountBids(ctx, listingID); err != nil {
		return models.ListingDetail{}, fmt.Errorf("service: failed to count bids for listing %s: %w", listingID, err)
	}
	if detail.Bids, err = s.repo.GetBidsByListing(ctx, listingID); err != nil {
		return models.ListingDetail{}, fmt.Errorf("service: failed to load bids for listing %s: %w", listingID, err)
	}

	comments, err := s.repo.ListComments(ctx, listingID)
	if err != nil {
		return models.ListingDetail{}, fmt.Errorf("service: failed to load comments for listing %s: %w", listingID, err)
	}
	detail.Comments = comments

	if viewerID == "" {
		return detail, nil
	}

	if detail.HasUserBid, err = s.repo.HasUserBid(ctx, listingID, viewerID); err != nil {
		return models.ListingDetail{}, fmt.Errorf("service: failed to check bids of user %s: %w", viewerID, err)
	}
	if detail.Watching, err = s.repo.IsWatching(ctx, viewerID, listingID); err != nil {
		return models.ListingDetail{}, fmt.Errorf("service: failed to check watchlist of user %s: %w", viewerID, err)
	}
	return detail, nil
}

// Browse returns every listing newest-first, optionally restricted to one category
func (s *AuctionService) Browse(ctx context.Context, categoryID string) ([]models.ListingSummary, error) {
	if categoryID != "" {
		if _, err := s.repo.GetCategory(ctx, categoryID); err != nil {
			return nil, fmt.Errorf("service: failed to load category %s: %w", categoryID, err)
		}
	}

	listings, err := s.repo.ListListings(ctx, models.ListingFilter{CategoryID: categoryID})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list listings: %w", err)
	}
	return listings, nil
}

// Categories returns every category with its listing count
func (s *AuctionService) Categories(ctx context.Context) ([]models.CategorySummary, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory stores a new category
func (s *AuctionService) CreateCategory(ctx context.Context, title string) (models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return models.Category{}, fmt.Errorf("service: %w - title must be 1 to %d characters", auctionerrors.ErrInvalidCategory, MaxTitleLength)
	}

	category := models.Category{
		CategoryID: utils.NewULID(),
		Title:      title,
		CreatedAt:  s.now(),
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return models.Category{}, fmt.Errorf("service: failed to create category %q: %w", title, err)
	}
	return category, nil
}

// Watchlist returns the listings a user is watching
func (s *AuctionService) Watchlist(ctx context.Context, userID string) ([]models.ListingSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - missing user", auctionerrors.ErrInvalidUser)
	}
	listings, err := s.repo.ListListings(ctx, models.ListingFilter{WatcherID: userID})
	if err != nil {
		return nil, fmt.Errorf("service: failed to load watchlist of user %s: %w", userID, err)
	}
	return listings, nil
}

// MyListings returns the user's own listings and the listings they won.
// Winner determination is not defined, so won is always empty.
func (s *AuctionService) MyListings(ctx context.Context, userID string) (owned, won []models.ListingSummary, err error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("service: %w - missing user", auctionerrors.ErrInvalidUser)
	}
	owned, err = s.repo.ListListings(ctx, models.ListingFilter{AuthorID: userID})
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to load listings of user %s: %w", userID, err)
	}
	return owned, []models.ListingSummary{}, nil
}
