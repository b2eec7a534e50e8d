package server

import (
	"net/http"

	"auction-house/services/auction/handler"
	"auction-house/services/auction/helpers"
	"auction-house/web"

	"github.com/gin-gonic/gin"
)

// AccountService serves the auth pages and resolves session cookies
type AccountService interface {
	handler.AccountServiceInterface
	Authenticator
}

// Dependencies are the services the router dispatches to
type Dependencies struct {
	Auctions handler.AuctionServiceInterface
	Accounts AccountService
	DB       Pinger
	Cookie   helpers.SessionCookie
	Metrics  *Metrics
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}

	router.SetHTMLTemplate(web.MustTemplates())
	router.RedirectTrailingSlash = true

	router.Use(gin.Recovery()) // recover from panics
	router.Use(RequestIDMiddleware)
	router.Use(deps.Metrics.Middleware)
	router.Use(SessionMiddleware(deps.Accounts, deps.Cookie))
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(deps.Auctions)
	authHandler := handler.NewAuthHandler(deps.Accounts, deps.Cookie)

	router.GET("/", auctionHandler.IndexHandler)
	router.GET("/categories/", auctionHandler.CategoriesHandler)
	router.GET("/listing/:id", auctionHandler.ListingHandler)
	router.POST("/listing/:id", RequireAuth, auctionHandler.ListingPostHandler)

	router.GET("/login/", authHandler.LoginPage)
	router.POST("/login/", authHandler.LoginHandler)
	router.GET("/logout/", authHandler.LogoutHandler)
	router.GET("/register/", authHandler.RegisterPage)
	router.POST("/register/", authHandler.RegisterHandler)

	members := router.Group("/", RequireAuth)
	{
		members.GET("/create/", auctionHandler.CreateListingPage)
		members.POST("/create/", auctionHandler.CreateListingHandler)
		members.GET("/close/:id", auctionHandler.ClosePage)
		members.POST("/close/:id", auctionHandler.CloseHandler)
		members.GET("/mylistings/", auctionHandler.MyListingsHandler)
		members.GET("/watchlist/", auctionHandler.WatchlistHandler)
		members.GET("/set_watchlist/:id", auctionHandler.SetWatchlistHandler)
	}

	router.GET("/healthz", healthHandler(deps.DB, deps.Metrics))

	router.NoRoute(func(c *gin.Context) {
		helpers.Render(c, http.StatusNotFound, "error.html", gin.H{"Status": http.StatusNotFound, "Message": "Page not found."})
	})

	return router
}
