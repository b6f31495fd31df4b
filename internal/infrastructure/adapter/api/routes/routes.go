package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/handler"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/middleware"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/auth"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	tradingHandler *handler.TradingHandler,
	quoteHandler *handler.QuoteHandler,
	authHandler *handler.AuthHandler,
	systemHandler *handler.SystemHandler,
	sessions *auth.SessionManager,
	logger coreport.Logger,
) {
	// Open routes
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/about", systemHandler.About)
	router.GET("/health", systemHandler.Health)

	// Routes that require a logged-in user
	authed := router.Group("/")
	authed.Use(middleware.RequireSession(sessions, logger))
	{
		authed.GET("/", tradingHandler.Portfolio)
		authed.POST("/buy", tradingHandler.Buy)
		authed.GET("/sell", tradingHandler.SellForm)
		authed.POST("/sell", tradingHandler.Sell)
		authed.GET("/quote", quoteHandler.Quote)
		authed.POST("/quote", quoteHandler.Quote)
		authed.GET("/history", tradingHandler.History)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.NoCache())
}
