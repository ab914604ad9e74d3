package app

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/handler"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/principal"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/provider"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/provider/github"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/provider/google"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/reconciler"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/store"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/token"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/config"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/dashboard"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/expense"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/income"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/logger"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/middleware"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/oauth2state"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Identity core
	// ----------------------------

	accounts := store.NewPostgresStore(infra.DB)
	rec := reconciler.New(accounts)
	guard := principal.NewGuard(accounts)

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.JWTLifetime)
	if err != nil {
		return nil, nil, err
	}
	resolver := principal.NewResolver(codec)

	handshakes := oauth2state.NewRedisStore(infra.Redis.Client)

	registry, err := setupProviders(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	authHandler := authhandler.NewHandler(
		registry,
		rec,
		guard,
		codec,
		handshakes,
		cfg.OAuth2RedirectURI,
	)

	// ----------------------------
	// Resource services
	// ----------------------------

	expenseRepo := expense.NewPostgresRepository(infra.DB)
	incomeRepo := income.NewPostgresRepository(infra.DB)

	expenseHandler := expense.NewHandler(expense.NewService(expenseRepo, guard))
	incomeHandler := income.NewHandler(income.NewService(incomeRepo, guard))
	dashboardHandler := dashboard.NewHandler(
		dashboard.NewService(incomeRepo, expenseRepo, guard),
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}))
	router.Use(middleware.RequestID())

	// Every request gets a principal; anonymous where no valid token is
	// presented. The guard inside each service decides access.
	router.Use(middleware.ResolvePrincipal(resolver))

	authHandler.RegisterRoutes(router)
	expenseHandler.RegisterRoutes(router)
	incomeHandler.RegisterRoutes(router)
	dashboardHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, func() error {
		return infra.DB.Close()
	}, nil
}

// setupProviders registers whichever external providers are configured.
// A missing client id skips the provider so local auth still works.
func setupProviders(ctx context.Context, cfg config.Config) (*provider.Registry, error) {
	var list []provider.OAuthProvider

	if cfg.GoogleClientID != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, googleProvider)
	} else {
		logger.Warn("google oauth not configured", nil)
	}

	if cfg.GithubClientID != "" {
		githubProvider, err := github.New(
			cfg.GithubClientID,
			cfg.GithubClientSecret,
			cfg.GithubRedirectURL,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, githubProvider)
	} else {
		logger.Warn("github oauth not configured", nil)
	}

	return provider.NewRegistry(list...), nil
}
