package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/web"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.User{UserID: "user1", Username: "alice"}
	bob   = models.User{UserID: "user2", Username: "bob"}
	now   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

// newTestRouter returns a test-mode engine with the page templates loaded.
// A non-nil user is attached to every request as if the session cookie had been resolved.
func newTestRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(web.MustTemplates())
	if user != nil {
		u := *user
		router.Use(func(c *gin.Context) {
			helpers.SetCurrentUser(c, u)
			c.Next()
		})
	}
	return router
}

func newAuctionRouter(t *testing.T, user *models.User) (*gin.Engine, *MockAuctionServiceInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	router := newTestRouter(user)
	router.GET("/", h.IndexHandler)
	router.GET("/categories/", h.CategoriesHandler)
	router.GET("/create/", h.CreateListingPage)
	router.POST("/create/", h.CreateListingHandler)
	router.GET("/listing/:id", h.ListingHandler)
	router.POST("/listing/:id", h.ListingPostHandler)
	router.GET("/close/:id", h.ClosePage)
	router.POST("/close/:id", h.CloseHandler)
	router.GET("/mylistings/", h.MyListingsHandler)
	router.GET("/watchlist/", h.WatchlistHandler)
	router.GET("/set_watchlist/:id", h.SetWatchlistHandler)
	return router, mockService
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func deskSummary(active bool) models.ListingSummary {
	return models.ListingSummary{
		Listing: models.Listing{
			ListingID:   "l1",
			AuthorID:    alice.UserID,
			CategoryID:  "cat1",
			Title:       "Desk",
			Description: "Solid oak desk",
			Active:      active,
			CreatedAt:   now,
		},
		AuthorUsername: alice.Username,
		CategoryTitle:  "Furniture",
		HighestBid:     10,
	}
}

func deskDetail(viewer models.User) models.ListingDetail {
	highest := models.BidView{
		Bid:      models.Bid{BidID: "b1", ListingID: "l1", UserID: alice.UserID, Amount: 10, CreatedAt: now},
		Username: alice.Username,
	}
	return models.ListingDetail{
		Listing:    deskSummary(true),
		HighestBid: &highest,
		BidCount:   1,
		Bids:       []models.BidView{highest},
		Comments: []models.CommentView{{
			Comment:        models.Comment{CommentID: "c1", ListingID: "l1", AuthorID: bob.UserID, Body: "Nice grain", CreatedAt: now},
			AuthorUsername: bob.Username,
		}},
		IsAuthor: viewer.UserID == alice.UserID,
	}
}

var furniture = []models.CategorySummary{{
	Category:     models.Category{CategoryID: "cat1", Title: "Furniture"},
	ListingCount: 1,
}}

// Tests IndexHandler
func TestIndexHandler(t *testing.T) {
	t.Run("lists_active_listings", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, nil)
		mockService.EXPECT().Browse(gomock.Any(), "").Return([]models.ListingSummary{deskSummary(true)}, nil)
		mockService.EXPECT().Categories(gomock.Any()).Return(furniture, nil)

		w := get(router, "/")

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Desk")
		require.Contains(t, w.Body.String(), "$10.00")
		require.Contains(t, w.Body.String(), "Not signed in.")
	})

	t.Run("filters_by_category", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &alice)
		mockService.EXPECT().Browse(gomock.Any(), "cat1").Return([]models.ListingSummary{}, nil)
		mockService.EXPECT().Categories(gomock.Any()).Return(furniture, nil)

		w := get(router, "/?cat=cat1")

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "No listings.")
		require.Contains(t, w.Body.String(), "Signed in as <strong>alice</strong>")
		require.Contains(t, w.Body.String(), `value="cat1" selected`)
	})

	t.Run("unknown_category", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, nil)
		mockService.EXPECT().Browse(gomock.Any(), "nope").Return(nil, auctionerrors.ErrCategoryNotFound)

		w := get(router, "/?cat=nope")

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), "Category not found.")
	})

	t.Run("storage_failure", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, nil)
		mockService.EXPECT().Browse(gomock.Any(), "").Return(nil, errors.New("database failure"))

		w := get(router, "/")

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotContains(t, w.Body.String(), "database failure")
	})
}

// Tests CategoriesHandler
func TestCategoriesHandler(t *testing.T) {
	router, mockService := newAuctionRouter(t, nil)
	mockService.EXPECT().Categories(gomock.Any()).Return(furniture, nil)

	w := get(router, "/categories/")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `<a href="/?cat=cat1">Furniture</a> (1)`)
}

// Tests CreateListingHandler
func TestCreateListingHandler(t *testing.T) {
	valid := func() url.Values {
		return url.Values{
			"title":       {"Desk"},
			"description": {"Solid oak desk"},
			"base_bid":    {"10"},
			"image_url":   {"https://example.com/desk.jpg"},
			"category":    {"cat1"},
		}
	}
	with := func(key, value string) url.Values {
		form := valid()
		form.Set(key, value)
		return form
	}

	tests := []struct {
		name           string
		form           url.Values
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		expectedBody   string
		expectedTarget string
	}{
		{
			name: "success",
			form: valid(),
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CreateListing(gomock.Any(), alice.UserID, models.NewListing{
					Title:       "Desk",
					Description: "Solid oak desk",
					BaseBid:     10,
					ImageURL:    "https://example.com/desk.jpg",
					CategoryID:  "cat1",
				}).Return(models.Listing{ListingID: "l1"}, nil)
			},
			expectedStatus: http.StatusSeeOther,
			expectedTarget: "/listing/l1",
		},
		{
			name: "missing_title",
			form: with("title", ""),
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Categories(gomock.Any()).Return(furniture, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "This field is required.",
		},
		{
			name: "title_too_long",
			form: with("title", strings.Repeat("x", 65)),
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Categories(gomock.Any()).Return(furniture, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Ensure this value has at most 64 characters.",
		},
		{
			name: "base_bid_below_one",
			form: with("base_bid", "0.5"),
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Categories(gomock.Any()).Return(furniture, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Ensure this value is greater than or equal to 1.",
		},
		{
			name: "base_bid_not_a_number",
			form: with("base_bid", "ten"),
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Categories(gomock.Any()).Return(furniture, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Enter valid values. Amounts must be numbers.",
		},
		{
			name: "bad_image_url",
			form: with("image_url", "not a url"),
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().Categories(gomock.Any()).Return(furniture, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Enter a valid URL.",
		},
		{
			name: "unknown_category",
			form: with("category", "nope"),
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CreateListing(gomock.Any(), alice.UserID, gomock.Any()).
					Return(models.Listing{}, auctionerrors.ErrCategoryNotFound)
				m.EXPECT().Categories(gomock.Any()).Return(furniture, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Select a valid category.",
		},
		{
			name: "service_rejects_listing",
			form: valid(),
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CreateListing(gomock.Any(), alice.UserID, gomock.Any()).
					Return(models.Listing{}, auctionerrors.ErrInvalidListing)
				m.EXPECT().Categories(gomock.Any()).Return(furniture, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid listing details.",
		},
		{
			name: "service_generic_error",
			form: valid(),
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().CreateListing(gomock.Any(), alice.UserID, gomock.Any()).
					Return(models.Listing{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Something went wrong.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, mockService := newAuctionRouter(t, &alice)
			tc.mockSetup(mockService)

			w := postForm(router, "/create/", tc.form)

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedTarget != "" {
				require.Equal(t, tc.expectedTarget, w.Header().Get("Location"))
			}
			if tc.expectedBody != "" {
				require.Contains(t, w.Body.String(), tc.expectedBody)
			}
		})
	}
}

// Blank text and rejected image URLs come back as errors on their own inputs
func TestCreateListingHandler_FieldErrors(t *testing.T) {
	t.Run("whitespace_title_and_description", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &alice)
		mockService.EXPECT().Categories(gomock.Any()).Return(furniture, nil)

		w := postForm(router, "/create/", url.Values{
			"title":       {"   "},
			"description": {"   "},
			"base_bid":    {"10"},
			"category":    {"cat1"},
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		require.Equal(t, 2, strings.Count(body, "This field is required."))
		require.NotContains(t, body, "Invalid listing details.")
	})

	t.Run("service_rejects_image_url", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &alice)
		mockService.EXPECT().CreateListing(gomock.Any(), alice.UserID, gomock.Any()).
			Return(models.Listing{}, errors.Join(auctionerrors.ErrInvalidListing, auctionerrors.ErrInvalidImageURL))
		mockService.EXPECT().Categories(gomock.Any()).Return(furniture, nil)

		w := postForm(router, "/create/", url.Values{
			"title":       {"Desk"},
			"description": {"Solid oak desk"},
			"base_bid":    {"10"},
			"image_url":   {"javascript:alert(1)"},
			"category":    {"cat1"},
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		require.Contains(t, body, "Enter a valid URL.")
		require.NotContains(t, body, "Invalid listing details.")
	})
}

// Tests ListingHandler
func TestListingHandler(t *testing.T) {
	t.Run("anonymous_viewer", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, nil)
		mockService.EXPECT().ListingDetail(gomock.Any(), "l1", "").Return(deskDetail(models.User{}), nil)

		w := get(router, "/listing/l1")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		require.Contains(t, body, "Listing: Desk")
		require.Contains(t, body, "1 bid(s) so far.")
		require.Contains(t, body, "Nice grain")
		require.Contains(t, body, "/login/?next=/listing/l1")
		require.NotContains(t, body, `name="bid_amount"`)
	})

	t.Run("author_sees_close_link", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &alice)
		mockService.EXPECT().ListingDetail(gomock.Any(), "l1", alice.UserID).Return(deskDetail(alice), nil)

		w := get(router, "/listing/l1")

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `href="/close/l1"`)
		require.Contains(t, w.Body.String(), `name="bid_amount"`)
	})

	t.Run("closed_listing_has_no_bid_form", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		detail := deskDetail(bob)
		detail.Listing.Active = false
		mockService.EXPECT().ListingDetail(gomock.Any(), "l1", bob.UserID).Return(detail, nil)

		w := get(router, "/listing/l1")

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "This auction is closed.")
		require.NotContains(t, w.Body.String(), `name="bid_amount"`)
		require.NotContains(t, w.Body.String(), `href="/close/l1"`)
	})

	t.Run("unknown_listing", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, nil)
		mockService.EXPECT().ListingDetail(gomock.Any(), "missing", "").
			Return(models.ListingDetail{}, auctionerrors.ErrListingNotFound)

		w := get(router, "/listing/missing")

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), "Listing not found.")
	})
}

// Tests ListingPostHandler for bids
func TestListingPostHandler_Bid(t *testing.T) {
	tests := []struct {
		name           string
		amount         string
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "accepted",
			amount: "15",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "l1", bob.UserID, 15.0).
					Return(models.Bid{BidID: "b2", ListingID: "l1", UserID: bob.UserID, Amount: 15}, nil)
			},
			expectedStatus: http.StatusSeeOther,
		},
		{
			name:   "too_low",
			amount: "9.99",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "l1", bob.UserID, 9.99).
					Return(models.Bid{}, auctionerrors.ErrBidTooLow)
				m.EXPECT().ListingDetail(gomock.Any(), "l1", bob.UserID).Return(deskDetail(bob), nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "Your bid must be higher than the current highest bid.",
		},
		{
			name:   "listing_closed",
			amount: "20",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "l1", bob.UserID, 20.0).
					Return(models.Bid{}, auctionerrors.ErrListingClosed)
				m.EXPECT().ListingDetail(gomock.Any(), "l1", bob.UserID).Return(deskDetail(bob), nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "This auction is closed.",
		},
		{
			name:   "not_a_number",
			amount: "abc",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().ListingDetail(gomock.Any(), "l1", bob.UserID).Return(deskDetail(bob), nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Enter a valid bid amount.",
		},
		{
			name:   "negative",
			amount: "-5",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().ListingDetail(gomock.Any(), "l1", bob.UserID).Return(deskDetail(bob), nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Ensure this value is greater than 0.",
		},
		{
			name:   "unknown_listing",
			amount: "15",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "l1", bob.UserID, 15.0).
					Return(models.Bid{}, auctionerrors.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Listing not found.",
		},
		{
			name:   "service_generic_error",
			amount: "15",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "l1", bob.UserID, 15.0).
					Return(models.Bid{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Something went wrong.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, mockService := newAuctionRouter(t, &bob)
			tc.mockSetup(mockService)

			w := postForm(router, "/listing/l1", url.Values{"bid_amount": {tc.amount}})

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusSeeOther {
				require.Equal(t, "/listing/l1", w.Header().Get("Location"))
			}
			if tc.expectedBody != "" {
				require.Contains(t, w.Body.String(), tc.expectedBody)
			}
		})
	}
}

// Tests ListingPostHandler for comments
func TestListingPostHandler_Comment(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().AddComment(gomock.Any(), "l1", bob.UserID, "Nice grain").
			Return(models.Comment{CommentID: "c1"}, nil)

		w := postForm(router, "/listing/l1", url.Values{"body": {"Nice grain"}})

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/listing/l1", w.Header().Get("Location"))
	})

	t.Run("empty_body_is_a_comment_not_a_bid", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().ListingDetail(gomock.Any(), "l1", bob.UserID).Return(deskDetail(bob), nil)

		w := postForm(router, "/listing/l1", url.Values{"body": {""}})

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Comments must be between 1 and 300 characters.")
	})

	t.Run("blank_body_rejected_by_service", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().AddComment(gomock.Any(), "l1", bob.UserID, "   ").
			Return(models.Comment{}, auctionerrors.ErrInvalidComment)
		mockService.EXPECT().ListingDetail(gomock.Any(), "l1", bob.UserID).Return(deskDetail(bob), nil)

		w := postForm(router, "/listing/l1", url.Values{"body": {"   "}})

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Comments must be between 1 and 300 characters.")
	})

	t.Run("too_long", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().ListingDetail(gomock.Any(), "l1", bob.UserID).Return(deskDetail(bob), nil)

		w := postForm(router, "/listing/l1", url.Values{"body": {strings.Repeat("x", 301)}})

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown_listing", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().AddComment(gomock.Any(), "missing", bob.UserID, "hello").
			Return(models.Comment{}, auctionerrors.ErrListingNotFound)

		w := postForm(router, "/listing/missing", url.Values{"body": {"hello"}})

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Tests ClosePage and CloseHandler
func TestCloseHandler(t *testing.T) {
	t.Run("prompt", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &alice)
		mockService.EXPECT().ListingDetail(gomock.Any(), "l1", alice.UserID).Return(deskDetail(alice), nil)

		w := get(router, "/close/l1")

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Close auction: Desk")
	})

	t.Run("author_closes", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &alice)
		mockService.EXPECT().CloseListing(gomock.Any(), "l1", alice.UserID).Return(nil)

		w := postForm(router, "/close/l1", url.Values{"confirm": {"yes"}})

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/listing/l1", w.Header().Get("Location"))
	})

	t.Run("non_author_forbidden", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().CloseListing(gomock.Any(), "l1", bob.UserID).Return(auctionerrors.ErrNotListingAuthor)
		mockService.EXPECT().ListingDetail(gomock.Any(), "l1", bob.UserID).Return(deskDetail(bob), nil)

		w := postForm(router, "/close/l1", url.Values{"confirm": {"yes"}})

		require.Equal(t, http.StatusForbidden, w.Code)
		require.Contains(t, w.Body.String(), "Only the author can close this listing.")
	})

	t.Run("unknown_listing", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &alice)
		mockService.EXPECT().CloseListing(gomock.Any(), "missing", alice.UserID).Return(auctionerrors.ErrListingNotFound)

		w := postForm(router, "/close/missing", url.Values{})

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Tests MyListingsHandler and WatchlistHandler
func TestPersonalPages(t *testing.T) {
	t.Run("my_listings", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &alice)
		mockService.EXPECT().MyListings(gomock.Any(), alice.UserID).
			Return([]models.ListingSummary{deskSummary(false)}, []models.ListingSummary{}, nil)

		w := get(router, "/mylistings/")

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Desk</a> (closed)")
		require.Contains(t, w.Body.String(), "Won Listings")
	})

	t.Run("watchlist", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().Watchlist(gomock.Any(), bob.UserID).Return([]models.ListingSummary{deskSummary(true)}, nil)

		w := get(router, "/watchlist/")

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `href="/listing/l1"`)
	})

	t.Run("watchlist_failure", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().Watchlist(gomock.Any(), bob.UserID).Return(nil, errors.New("database failure"))

		w := get(router, "/watchlist/")

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

// Tests SetWatchlistHandler
func TestSetWatchlistHandler(t *testing.T) {
	t.Run("toggles_and_returns_to_listing", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().ToggleWatchlist(gomock.Any(), bob.UserID, "l1").Return(true, nil)

		w := get(router, "/set_watchlist/l1")

		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/listing/l1", w.Header().Get("Location"))
	})

	t.Run("unknown_listing", func(t *testing.T) {
		router, mockService := newAuctionRouter(t, &bob)
		mockService.EXPECT().ToggleWatchlist(gomock.Any(), bob.UserID, "missing").Return(false, auctionerrors.ErrListingNotFound)

		w := get(router, "/set_watchlist/missing")

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func httpGetWithCookie(path string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(cookie)
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
