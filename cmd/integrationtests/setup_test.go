package integrationtests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	account "auction-house/internal/accountService"
	auction "auction-house/internal/auctionService"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	"auction-house/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const cookieName = "auction_session"

// TestApp is the full application on a throwaway SQLite file
type TestApp struct {
	Router   *gin.Engine
	DB       *repository.DB
	Auctions *auction.AuctionService
	Accounts *account.AccountService
}

// SetupTestApp wires the real repository, services and router the way the serve command does
func SetupTestApp(t *testing.T) *TestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.Open(repository.Options{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "auction.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	repo := repository.NewSQLRepo(db)
	auctions := auction.NewAuctionService(repo)
	accounts := account.NewAccountService(repo, []byte(strings.Repeat("k", 32)), time.Hour)

	router := server.SetupRouter(server.Dependencies{
		Auctions: auctions,
		Accounts: accounts,
		DB:       db,
		Cookie:   helpers.SessionCookie{Name: cookieName, TTL: time.Hour},
	})
	return &TestApp{Router: router, DB: db, Auctions: auctions, Accounts: accounts}
}

// CreateCategory adds a category the way the categories CLI command does
func (a *TestApp) CreateCategory(t *testing.T, title string) string {
	t.Helper()
	category, err := a.Auctions.CreateCategory(context.Background(), title)
	require.NoError(t, err)
	return category.CategoryID
}

// Browser is one visitor with its own session cookie
type Browser struct {
	t      *testing.T
	app    *TestApp
	cookie *http.Cookie
}

func (a *TestApp) NewBrowser(t *testing.T) *Browser {
	return &Browser{t: t, app: a}
}

// Get issues a GET and keeps whatever session cookie the response sets
func (b *Browser) Get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// Post submits form as application/x-www-form-urlencoded
func (b *Browser) Post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *Browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.app.Router.ServeHTTP(w, req)

	for _, c := range (&http.Response{Header: w.Header()}).Cookies() {
		if c.Name != cookieName {
			continue
		}
		if c.MaxAge < 0 || c.Value == "" {
			b.cookie = nil
		} else {
			b.cookie = &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	return w
}

// Register signs up and leaves the browser logged in
func (b *Browser) Register(username, password string) {
	b.t.Helper()
	w := b.Post("/register/", url.Values{
		"username":     {username},
		"email":        {username + "@example.com"},
		"password":     {password},
		"confirmation": {password},
	})
	require.Equal(b.t, http.StatusSeeOther, w.Code, w.Body.String())
	require.NotNil(b.t, b.cookie)
}

// CreateListing submits the create form and returns the new listing's id
func (b *Browser) CreateListing(title string, baseBid string, categoryID string) string {
	b.t.Helper()
	w := b.Post("/create/", url.Values{
		"title":       {title},
		"description": {"A " + strings.ToLower(title) + " in good condition"},
		"base_bid":    {baseBid},
		"category":    {categoryID},
	})
	require.Equal(b.t, http.StatusSeeOther, w.Code, w.Body.String())
	location := w.Header().Get("Location")
	require.True(b.t, strings.HasPrefix(location, "/listing/"), location)
	return strings.TrimPrefix(location, "/listing/")
}

// Bid places a bid and returns the response
func (b *Browser) Bid(listingID, amount string) *httptest.ResponseRecorder {
	return b.Post("/listing/"+listingID, url.Values{"bid_amount": {amount}})
}
