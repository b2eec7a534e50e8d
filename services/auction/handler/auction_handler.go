package handler

import (
	"context"
	"errors"
	"net/http"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/services/auction/helpers"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_service.go -package=handler

type AuctionServiceInterface interface {
	CreateListing(ctx context.Context, authorID string, input models.NewListing) (models.Listing, error)
	PlaceBid(ctx context.Context, listingID, userID string, amount float64) (models.Bid, error)
	AddComment(ctx context.Context, listingID, authorID, body string) (models.Comment, error)
	CloseListing(ctx context.Context, listingID, userID string) error
	ToggleWatchlist(ctx context.Context, userID, listingID string) (bool, error)
	ListingDetail(ctx context.Context, listingID, viewerID string) (models.ListingDetail, error)
	Browse(ctx context.Context, categoryID string) ([]models.ListingSummary, error)
	Categories(ctx context.Context) ([]models.CategorySummary, error)
	Watchlist(ctx context.Context, userID string) ([]models.ListingSummary, error)
	MyListings(ctx context.Context, userID string) ([]models.ListingSummary, []models.ListingSummary, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// IndexHandler handles GET / with an optional ?cat=<id> filter
func (h *AuctionHandler) IndexHandler(c *gin.Context) {
	ctx := c.Request.Context()
	categoryID := c.Query("cat")

	listings, err := h.service.Browse(ctx, categoryID)
	if err != nil {
		helpers.RenderError(c, "IndexHandler", err, map[string]any{"category_id": categoryID})
		return
	}
	categories, err := h.service.Categories(ctx)
	if err != nil {
		helpers.RenderError(c, "IndexHandler", err, nil)
		return
	}

	helpers.Render(c, http.StatusOK, "index.html", gin.H{
		"Listings":         listings,
		"Categories":       categories,
		"SelectedCategory": categoryID,
	})
}

// CategoriesHandler handles GET /categories/
func (h *AuctionHandler) CategoriesHandler(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		helpers.RenderError(c, "CategoriesHandler", err, nil)
		return
	}
	helpers.Render(c, http.StatusOK, "categories.html", gin.H{"Categories": categories})
}

// CreateListingPage handles GET /create/
func (h *AuctionHandler) CreateListingPage(c *gin.Context) {
	h.renderCreateForm(c, http.StatusOK, helpers.CreateListingForm{}, nil)
}

// CreateListingHandler handles POST /create/
func (h *AuctionHandler) CreateListingHandler(c *gin.Context) {
	var form helpers.CreateListingForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderCreateForm(c, http.StatusBadRequest, form, helpers.HandleBindError(c, "CreateListingHandler", err))
		return
	}

	user, _ := helpers.CurrentUser(c)
	listing, err := h.service.CreateListing(c.Request.Context(), user.UserID, models.NewListing{
		Title:       form.Title,
		Description: form.Description,
		BaseBid:     form.BaseBid,
		ImageURL:    form.ImageURL,
		CategoryID:  form.Category,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		fieldErrs := map[string]string{helpers.FormErrorKey: message}
		switch {
		case errors.Is(err, auctionerrors.ErrCategoryNotFound):
			status = http.StatusBadRequest
			fieldErrs = map[string]string{"category": "Select a valid category."}
		case errors.Is(err, auctionerrors.ErrInvalidImageURL):
			fieldErrs = map[string]string{"image_url": "Enter a valid URL."}
		case status >= http.StatusInternalServerError:
			helpers.RenderError(c, "CreateListingHandler", err, map[string]any{"user_id": user.UserID})
			return
		}
		helpers.LogRejected(c, "CreateListingHandler", err)
		h.renderCreateForm(c, status, form, fieldErrs)
		return
	}

	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": listing.ListingID,
		"user_id":    user.UserID,
		"base_bid":   form.BaseBid,
	})
	c.Redirect(http.StatusSeeOther, "/listing/"+listing.ListingID)
}

func (h *AuctionHandler) renderCreateForm(c *gin.Context, status int, form helpers.CreateListingForm, fieldErrs map[string]string) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		helpers.RenderError(c, "CreateListingHandler", err, nil)
		return
	}
	if fieldErrs == nil {
		fieldErrs = map[string]string{}
	}
	helpers.Render(c, status, "create.html", gin.H{
		"Form":       form,
		"Errors":     fieldErrs,
		"Categories": categories,
	})
}

// ListingHandler handles GET /listing/:id
func (h *AuctionHandler) ListingHandler(c *gin.Context) {
	h.renderListing(c, http.StatusOK, gin.H{})
}

// ListingPostHandler handles POST /listing/:id. A "body" field makes it a comment, otherwise a bid.
func (h *AuctionHandler) ListingPostHandler(c *gin.Context) {
	if _, isComment := c.GetPostForm("body"); isComment {
		h.addComment(c)
		return
	}
	h.placeBid(c)
}

func (h *AuctionHandler) placeBid(c *gin.Context) {
	listingID := c.Param("id")
	userID := helpers.CurrentUserID(c)

	var form helpers.BidForm
	if err := c.ShouldBind(&form); err != nil {
		msg := helpers.HandleBindError(c, "PlaceBidHandler", err)["bid_amount"]
		if msg == "" {
			msg = "Enter a valid bid amount."
		}
		h.renderListing(c, http.StatusBadRequest, gin.H{"BidError": msg, "BidAmount": c.PostForm("bid_amount")})
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), listingID, userID, form.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status >= http.StatusInternalServerError || status == http.StatusNotFound {
			helpers.RenderError(c, "PlaceBidHandler", err, map[string]any{"listing_id": listingID, "user_id": userID})
			return
		}
		helpers.LogRejected(c, "PlaceBidHandler", err)
		h.renderListing(c, status, gin.H{"BidError": message, "BidAmount": c.PostForm("bid_amount")})
		return
	}

	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": listingID,
		"user_id":    userID,
		"amount":     bid.Amount,
	})
	c.Redirect(http.StatusSeeOther, "/listing/"+listingID)
}

func (h *AuctionHandler) addComment(c *gin.Context) {
	listingID := c.Param("id")
	userID := helpers.CurrentUserID(c)

	var form helpers.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		helpers.LogRejected(c, "AddCommentHandler", err)
		h.renderListing(c, http.StatusBadRequest, gin.H{"CommentError": "Comments must be between 1 and 300 characters.", "CommentBody": c.PostForm("body")})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), listingID, userID, form.Body)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status != http.StatusBadRequest {
			helpers.RenderError(c, "AddCommentHandler", err, map[string]any{"listing_id": listingID, "user_id": userID})
			return
		}
		helpers.LogRejected(c, "AddCommentHandler", err)
		h.renderListing(c, status, gin.H{"CommentError": message, "CommentBody": form.Body})
		return
	}

	helpers.LogSuccess("AddCommentHandler", "comment added successfully", map[string]any{
		"comment_id": comment.CommentID,
		"listing_id": listingID,
		"user_id":    userID,
	})
	c.Redirect(http.StatusSeeOther, "/listing/"+listingID)
}

func (h *AuctionHandler) renderListing(c *gin.Context, status int, data gin.H) {
	listingID := c.Param("id")
	detail, err := h.service.ListingDetail(c.Request.Context(), listingID, helpers.CurrentUserID(c))
	if err != nil {
		helpers.RenderError(c, "ListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}
	data["Detail"] = detail
	helpers.Render(c, status, "listing.html", data)
}

// ClosePage handles GET /close/:id
func (h *AuctionHandler) ClosePage(c *gin.Context) {
	h.renderClose(c, http.StatusOK, "")
}

// CloseHandler handles POST /close/:id. Only the author's request has an effect.
func (h *AuctionHandler) CloseHandler(c *gin.Context) {
	listingID := c.Param("id")
	userID := helpers.CurrentUserID(c)

	if err := h.service.CloseListing(c.Request.Context(), listingID, userID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status != http.StatusForbidden {
			helpers.RenderError(c, "CloseHandler", err, map[string]any{"listing_id": listingID, "user_id": userID})
			return
		}
		helpers.LogRejected(c, "CloseHandler", err)
		h.renderClose(c, status, message)
		return
	}

	helpers.LogSuccess("CloseHandler", "listing closed successfully", map[string]any{
		"listing_id": listingID,
		"user_id":    userID,
	})
	c.Redirect(http.StatusSeeOther, "/listing/"+listingID)
}

func (h *AuctionHandler) renderClose(c *gin.Context, status int, message string) {
	listingID := c.Param("id")
	detail, err := h.service.ListingDetail(c.Request.Context(), listingID, helpers.CurrentUserID(c))
	if err != nil {
		helpers.RenderError(c, "CloseHandler", err, map[string]any{"listing_id": listingID})
		return
	}
	helpers.Render(c, status, "close.html", gin.H{"Detail": detail, "Message": message})
}

// MyListingsHandler handles GET /mylistings/
func (h *AuctionHandler) MyListingsHandler(c *gin.Context) {
	userID := helpers.CurrentUserID(c)
	owned, won, err := h.service.MyListings(c.Request.Context(), userID)
	if err != nil {
		helpers.RenderError(c, "MyListingsHandler", err, map[string]any{"user_id": userID})
		return
	}
	helpers.Render(c, http.StatusOK, "mylistings.html", gin.H{"Owned": owned, "Won": won})
}

// WatchlistHandler handles GET /watchlist/
func (h *AuctionHandler) WatchlistHandler(c *gin.Context) {
	userID := helpers.CurrentUserID(c)
	listings, err := h.service.Watchlist(c.Request.Context(), userID)
	if err != nil {
		helpers.RenderError(c, "WatchlistHandler", err, map[string]any{"user_id": userID})
		return
	}
	helpers.Render(c, http.StatusOK, "watchlist.html", gin.H{"Listings": listings})
}

// SetWatchlistHandler handles GET /set_watchlist/:id
func (h *AuctionHandler) SetWatchlistHandler(c *gin.Context) {
	listingID := c.Param("id")
	userID := helpers.CurrentUserID(c)

	watching, err := h.service.ToggleWatchlist(c.Request.Context(), userID, listingID)
	if err != nil {
		helpers.RenderError(c, "SetWatchlistHandler", err, map[string]any{"listing_id": listingID, "user_id": userID})
		return
	}

	helpers.LogSuccess("SetWatchlistHandler", "watchlist toggled", map[string]any{
		"listing_id": listingID,
		"user_id":    userID,
		"watching":   watching,
	})
	c.Redirect(http.StatusFound, "/listing/"+listingID)
}
