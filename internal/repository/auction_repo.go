package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"

	"github.com/jmoiron/sqlx"
)

// SQLRepo implements AuctionDB and AccountDB on top of any supported SQL dialect
type SQLRepo struct {
	db *DB
}

// NewSQLRepo creates a repository bound to an open database
func NewSQLRepo(db *DB) *SQLRepo {
	return &SQLRepo{db: db}
}

var (
	_ AuctionDB = (*SQLRepo)(nil)
	_ AccountDB = (*SQLRepo)(nil)
)

const listingSummaryColumns = `
	l.id, l.author_id, l.category_id, l.title, l.description, l.image_url, l.active, l.created_at,
	u.username AS author_username,
	c.title AS category_title,
	COALESCE((SELECT MAX(b.amount) FROM bids b WHERE b.listing_id = l.id), 0) AS highest_bid
FROM listings l
JOIN users u ON u.id = l.author_id
JOIN categories c ON c.id = l.category_id`

// CreateCategory inserts a category
func (r *SQLRepo) CreateCategory(ctx context.Context, category model.Category) error {
	query := r.db.Rebind(`INSERT INTO categories (id, title, created_at) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, category.CategoryID, category.Title, category.CreatedAt); err != nil {
		return fmt.Errorf("repository: create category %q: %w", category.Title, err)
	}
	return nil
}

// GetCategory returns a single category
func (r *SQLRepo) GetCategory(ctx context.Context, categoryID string) (model.Category, error) {
	var category model.Category
	query := r.db.Rebind(`SELECT id, title, created_at FROM categories WHERE id = ?`)
	err := r.db.GetContext(ctx, &category, query, categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, fmt.Errorf("repository: get category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("repository: get category %s: %w", categoryID, err)
	}
	return category, nil
}

// ListCategories returns all categories ordered by title, each with its listing count
func (r *SQLRepo) ListCategories(ctx context.Context) ([]model.CategorySummary, error) {
	query := `
		SELECT c.id, c.title, c.created_at, COUNT(l.id) AS listing_count
		FROM categories c
		LEFT JOIN listings l ON l.category_id = c.id
		GROUP BY c.id, c.title, c.created_at
		ORDER BY c.title, c.id`
	categories := []model.CategorySummary{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("repository: list categories: %w", err)
	}
	return categories, nil
}

// CreateListingWithBid stores a listing and its base bid atomically
func (r *SQLRepo) CreateListingWithBid(ctx context.Context, listing model.Listing, baseBid model.Bid) error {
	return r.withTx(ctx, "create listing "+listing.ListingID, func(tx *sqlx.Tx) error {
		insertListing := tx.Rebind(`
			INSERT INTO listings (id, author_id, category_id, title, description, image_url, active, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if _, err := tx.ExecContext(ctx, insertListing,
			listing.ListingID,
			listing.AuthorID,
			listing.CategoryID,
			listing.Title,
			listing.Description,
			listing.ImageURL,
			listing.Active,
			listing.CreatedAt,
		); err != nil {
			return err
		}

		insertBid := tx.Rebind(`INSERT INTO bids (id, listing_id, user_id, amount, created_at) VALUES (?, ?, ?, ?, ?)`)
		_, err := tx.ExecContext(ctx, insertBid, baseBid.BidID, listing.ListingID, baseBid.UserID, baseBid.Amount, baseBid.CreatedAt)
		return err
	})
}

// GetListing returns a listing with its author, category and highest bid
func (r *SQLRepo) GetListing(ctx context.Context, listingID string) (model.ListingSummary, error) {
	var listing model.ListingSummary
	query := r.db.Rebind(`SELECT ` + listingSummaryColumns + ` WHERE l.id = ?`)
	err := r.db.GetContext(ctx, &listing, query, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ListingSummary{}, fmt.Errorf("repository: get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.ListingSummary{}, fmt.Errorf("repository: get listing %s: %w", listingID, err)
	}
	return listing, nil
}

// ListListings returns listings newest-first, narrowed by the filter
func (r *SQLRepo) ListListings(ctx context.Context, filter model.ListingFilter) ([]model.ListingSummary, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.CategoryID != "" {
		conditions = append(conditions, "l.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.AuthorID != "" {
		conditions = append(conditions, "l.author_id = ?")
		args = append(args, filter.AuthorID)
	}
	if filter.WatcherID != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM watchlist w WHERE w.listing_id = l.id AND w.user_id = ?)")
		args = append(args, filter.WatcherID)
	}

	query := `SELECT ` + listingSummaryColumns
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY l.created_at DESC, l.id DESC`

	listings := []model.ListingSummary{}
	if err := r.db.SelectContext(ctx, &listings, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("repository: list listings: %w", err)
	}
	return listings, nil
}

// CloseListing deactivates a listing owned by authorID. Closing twice is a no-op.
func (r *SQLRepo) CloseListing(ctx context.Context, listingID, authorID string) error {
	query := r.db.Rebind(`UPDATE listings SET active = ? WHERE id = ? AND author_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, false, listingID, authorID); err != nil {
		return fmt.Errorf("repository: close listing %s: %w", listingID, err)
	}
	return nil
}

// PlaceBidIfHighest records the bid only if the listing is active and the amount exceeds
// every stored bid. The listing row stays locked between the check and the insert.
func (r *SQLRepo) PlaceBidIfHighest(ctx context.Context, bid model.Bid) error {
	return r.withTx(ctx, "place bid on listing "+bid.ListingID, func(tx *sqlx.Tx) error {
		var active bool
		lockListing := tx.Rebind(`SELECT active FROM listings WHERE id = ?` + r.db.dialect.lockClause())
		err := tx.GetContext(ctx, &active, lockListing, bid.ListingID)
		if errors.Is(err, sql.ErrNoRows) {
			return auctionerrors.ErrListingNotFound
		}
		if err != nil {
			return err
		}
		if !active {
			return auctionerrors.ErrListingClosed
		}

		var highest sql.NullFloat64
		maxQuery := tx.Rebind(`SELECT MAX(amount) FROM bids WHERE listing_id = ?`)
		if err := tx.GetContext(ctx, &highest, maxQuery, bid.ListingID); err != nil {
			return err
		}
		if highest.Valid && bid.Amount <= highest.Float64 {
			return fmt.Errorf("%w - current highest bid is %.2f", auctionerrors.ErrBidTooLow, highest.Float64)
		}

		insert := tx.Rebind(`INSERT INTO bids (id, listing_id, user_id, amount, created_at) VALUES (?, ?, ?, ?, ?)`)
		_, err = tx.ExecContext(ctx, insert, bid.BidID, bid.ListingID, bid.UserID, bid.Amount, bid.CreatedAt)
		return err
	})
}

// GetHighestBid returns the highest bid for a listing; the earlier bid wins a tie
func (r *SQLRepo) GetHighestBid(ctx context.Context, listingID string) (model.BidView, error) {
	var bid model.BidView
	query := r.db.Rebind(`
		SELECT b.id, b.listing_id, b.user_id, b.amount, b.created_at, u.username
		FROM bids b
		JOIN users u ON u.id = b.user_id
		WHERE b.listing_id = ?
		ORDER BY b.amount DESC, b.created_at ASC
		LIMIT 1`)
	err := r.db.GetContext(ctx, &bid, query, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BidView{}, fmt.Errorf("repository: get highest bid for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return model.BidView{}, fmt.Errorf("repository: get highest bid for listing %s: %w", listingID, err)
	}
	return bid, nil
}

// GetBidsByListing returns all bids for a listing, newest first
func (r *SQLRepo) GetBidsByListing(ctx context.Context, listingID string) ([]model.BidView, error) {
	query := r.db.Rebind(`
		SELECT b.id, b.listing_id, b.user_id, b.amount, b.created_at, u.username
		FROM bids b
		JOIN users u ON u.id = b.user_id
		WHERE b.listing_id = ?
		ORDER BY b.created_at DESC, b.id DESC`)
	bids := []model.BidView{}
	if err := r.db.SelectContext(ctx, &bids, query, listingID); err != nil {
		return nil, fmt.Errorf("repository: get bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

// CountBids returns how many bids a listing has received, base bid included
func (r *SQLRepo) CountBids(ctx context.Context, listingID string) (int, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM bids WHERE listing_id = ?`)
	if err := r.db.GetContext(ctx, &count, query, listingID); err != nil {
		return 0, fmt.Errorf("repository: count bids for listing %s: %w", listingID, err)
	}
	return count, nil
}

// HasUserBid reports whether userID has any bid on the listing
func (r *SQLRepo) HasUserBid(ctx context.Context, listingID, userID string) (bool, error) {
	var exists bool
	query := r.db.Rebind(`SELECT EXISTS (SELECT 1 FROM bids WHERE listing_id = ? AND user_id = ?)`)
	if err := r.db.GetContext(ctx, &exists, query, listingID, userID); err != nil {
		return false, fmt.Errorf("repository: check bids of user %s on listing %s: %w", userID, listingID, err)
	}
	return exists, nil
}

// CreateComment appends a comment to a listing
func (r *SQLRepo) CreateComment(ctx context.Context, comment model.Comment) error {
	query := r.db.Rebind(`INSERT INTO comments (id, listing_id, author_id, body, created_at) VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query,
		comment.CommentID,
		comment.ListingID,
		comment.AuthorID,
		comment.Body,
		comment.CreatedAt,
	); err != nil {
		return fmt.Errorf("repository: create comment on listing %s: %w", comment.ListingID, err)
	}
	return nil
}

// ListComments returns a listing's comments, newest first
func (r *SQLRepo) ListComments(ctx context.Context, listingID string) ([]model.CommentView, error) {
	query := r.db.Rebind(`
		SELECT cm.id, cm.listing_id, cm.author_id, cm.body, cm.created_at, u.username AS author_username
		FROM comments cm
		JOIN users u ON u.id = cm.author_id
		WHERE cm.listing_id = ?
		ORDER BY cm.created_at DESC, cm.id DESC`)
	comments := []model.CommentView{}
	if err := r.db.SelectContext(ctx, &comments, query, listingID); err != nil {
		return nil, fmt.Errorf("repository: list comments for listing %s: %w", listingID, err)
	}
	return comments, nil
}

// ToggleWatchlist removes the listing from the user's watchlist if present, adds it otherwise,
// and reports whether the listing is watched afterwards.
func (r *SQLRepo) ToggleWatchlist(ctx context.Context, userID, listingID string) (bool, error) {
	var watching bool
	err := r.withTx(ctx, "toggle watchlist for listing "+listingID, func(tx *sqlx.Tx) error {
		del := tx.Rebind(`DELETE FROM watchlist WHERE user_id = ? AND listing_id = ?`)
		res, err := tx.ExecContext(ctx, del, userID, listingID)
		if err != nil {
			return err
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if removed > 0 {
			watching = false
			return nil
		}

		// a concurrent toggle may have added the row since the DELETE; either way it is watched now
		insert := tx.Rebind(`INSERT INTO watchlist (user_id, listing_id, created_at) VALUES (?, ?, ?)` +
			r.db.dialect.ignoreDuplicate("user_id"))
		if _, err := tx.ExecContext(ctx, insert, userID, listingID, time.Now().UTC()); err != nil {
			return err
		}
		watching = true
		return nil
	})
	return watching, err
}

// IsWatching reports whether the listing is on the user's watchlist
func (r *SQLRepo) IsWatching(ctx context.Context, userID, listingID string) (bool, error) {
	var exists bool
	query := r.db.Rebind(`SELECT EXISTS (SELECT 1 FROM watchlist WHERE user_id = ? AND listing_id = ?)`)
	if err := r.db.GetContext(ctx, &exists, query, userID, listingID); err != nil {
		return false, fmt.Errorf("repository: check watchlist of user %s: %w", userID, err)
	}
	return exists, nil
}

// withTx runs fn inside a transaction, rolling back on any error
func (r *SQLRepo) withTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: %s: begin: %w", op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("repository: %s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: %s: commit: %w", op, err)
	}
	return nil
}
