package perftests

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	auction "auction-house/internal/auctionService"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// fixture is an auction database seeded with users and listings
type fixture struct {
	repo     *repository.SQLRepo
	svc      *auction.AuctionService
	users    []string
	listings []string
}

// setupFixture opens a SQLite file under tb's temp dir with numUsers users and numListings listings
func setupFixture(tb testing.TB, numUsers, numListings int) *fixture {
	tb.Helper()
	ctx := context.Background()

	db, err := repository.Open(repository.Options{
		Driver: "sqlite",
		DSN:    filepath.Join(tb.TempDir(), "perf.db"),
	})
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}
	tb.Cleanup(func() { db.Close() })
	if err := db.Migrate(ctx); err != nil {
		tb.Fatalf("failed to migrate: %v", err)
	}

	repo := repository.NewSQLRepo(db)
	svc := auction.NewAuctionService(repo)
	f := &fixture{repo: repo, svc: svc}

	for i := 0; i < numUsers; i++ {
		user := model.User{
			UserID:       utils.NewULID(),
			Username:     fmt.Sprintf("user_%d", i),
			PasswordHash: "unused",
			CreatedAt:    time.Now().UTC(),
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			tb.Fatalf("failed to seed user: %v", err)
		}
		f.users = append(f.users, user.UserID)
	}

	category, err := svc.CreateCategory(ctx, "Load test")
	if err != nil {
		tb.Fatalf("failed to seed category: %v", err)
	}

	for i := 0; i < numListings; i++ {
		listing, err := svc.CreateListing(ctx, f.users[i%len(f.users)], model.NewListing{
			Title:       fmt.Sprintf("Listing %d", i),
			Description: "Load test listing",
			BaseBid:     100,
			CategoryID:  category.CategoryID,
		})
		if err != nil {
			tb.Fatalf("failed to seed listing: %v", err)
		}
		f.listings = append(f.listings, listing.ListingID)
	}
	return f
}
