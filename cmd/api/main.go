package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/junavolabs/junavo-backend/api/routes"
	"github.com/junavolabs/junavo-backend/internal/adminlog"
	"github.com/junavolabs/junavo-backend/internal/analytics"
	"github.com/junavolabs/junavo-backend/internal/auth"
	"github.com/junavolabs/junavo-backend/internal/blog"
	"github.com/junavolabs/junavo-backend/internal/brands"
	"github.com/junavolabs/junavo-backend/internal/cart"
	"github.com/junavolabs/junavo-backend/internal/catalog"
	"github.com/junavolabs/junavo-backend/internal/categories"
	"github.com/junavolabs/junavo-backend/internal/checkout"
	"github.com/junavolabs/junavo-backend/internal/coupons"
	"github.com/junavolabs/junavo-backend/internal/orders"
	"github.com/junavolabs/junavo-backend/internal/prefs"
	"github.com/junavolabs/junavo-backend/internal/pricing"
	"github.com/junavolabs/junavo-backend/internal/products"
	"github.com/junavolabs/junavo-backend/internal/reviews"
	"github.com/junavolabs/junavo-backend/internal/settings"
	"github.com/junavolabs/junavo-backend/internal/subscribers"
	"github.com/junavolabs/junavo-backend/internal/users"
	"github.com/junavolabs/junavo-backend/internal/wishlist"
	"github.com/junavolabs/junavo-backend/pkg/auth/session"
	"github.com/junavolabs/junavo-backend/pkg/config"
	"github.com/junavolabs/junavo-backend/pkg/db"
	"github.com/junavolabs/junavo-backend/pkg/logger"
	"github.com/junavolabs/junavo-backend/pkg/metrics"
	"github.com/junavolabs/junavo-backend/pkg/migrate"
	"github.com/junavolabs/junavo-backend/pkg/outbox"
	"github.com/junavolabs/junavo-backend/pkg/pubsub"
	"github.com/junavolabs/junavo-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub client", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	eurRate, err := decimal.NewFromString(cfg.Pricing.EURRate)
	if err != nil {
		logg.Error(context.Background(), "invalid eur rate", err)
		os.Exit(1)
	}

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	productsRepo := products.NewRepository(dbClient.DB())
	categoriesRepo := categories.NewRepository(dbClient.DB())
	brandsRepo := brands.NewRepository(dbClient.DB())
	couponsRepo := coupons.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	reviewsRepo := reviews.NewRepository(dbClient.DB())
	blogRepo := blog.NewRepository(dbClient.DB())
	subscribersRepo := subscribers.NewRepository(dbClient.DB())
	settingsRepo := settings.NewRepository(dbClient.DB())
	adminlogRepo := adminlog.NewRepository(dbClient.DB())
	analyticsRepo := analytics.NewRepository(dbClient.DB())
	usersRepo := users.NewRepository(dbClient.DB())

	productService, err := products.NewService(products.ServiceParams{
		DB:      dbClient,
		Repo:    productsRepo,
		Outbox:  outboxService,
		EURRate: eurRate,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.ServiceParams{
		DB:     dbClient,
		Repo:   categoriesRepo,
		Outbox: outboxService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	brandService, err := brands.NewService(brands.ServiceParams{Repo: brandsRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create brand service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{Repo: ordersRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.ServiceParams{
		DB:     dbClient,
		Repo:   reviewsRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	blogService, err := blog.NewService(blog.ServiceParams{Repo: blogRepo, Logger: logg})
	if err != nil {
		logg.Error(context.Background(), "failed to create blog service", err)
		os.Exit(1)
	}

	subscriberService, err := subscribers.NewService(subscribers.ServiceParams{Repo: subscribersRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create subscriber service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.ServiceParams{Repo: settingsRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	adminLogService, err := adminlog.NewService(adminlog.ServiceParams{Repo: adminlogRepo, Logger: logg})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin log service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(analytics.ServiceParams{Repo: analyticsRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{Repo: usersRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		DB:       dbClient,
		Users:    usersRepo,
		Sessions: sessionManager,
		Limiter:  redisClient,
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(cart.StoreParams{Cache: redisClient, TTL: cfg.Session.CartTTL})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	wishlistStore, err := wishlist.NewStore(wishlist.StoreParams{Cache: redisClient, TTL: cfg.Session.WishlistTTL})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist store", err)
		os.Exit(1)
	}
	prefsStore, err := prefs.NewStore(prefs.StoreParams{Cache: redisClient, TTL: cfg.Session.PrefsTTL})
	if err != nil {
		logg.Error(context.Background(), "failed to create preference store", err)
		os.Exit(1)
	}

	productCache := catalog.NewProductCache()
	categoryCache := catalog.NewCategoryCache()
	if seeded, err := productsRepo.ListActive(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed product cache", err)
		os.Exit(1)
	} else {
		productCache.Replace(seeded)
	}
	if seeded, err := categoriesRepo.ListActive(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed category cache", err)
		os.Exit(1)
	} else {
		categoryCache.Replace(seeded)
	}

	pricingEngine, err := pricing.NewEngine(pricing.EngineParams{
		Products: productCache,
		Coupons:  couponsRepo,
		Rates:    cfg.Pricing,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing engine", err)
		os.Exit(1)
	}

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Cart:    cartStore,
		Pricing: pricingEngine,
		Orders:  ordersRepo,
		Coupons: couponsRepo,
		Logger:  logg,
		Metrics: checkoutMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	consumer, err := catalog.NewConsumer(pubsubClient.CatalogSubscription(), productCache, categoryCache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog consumer", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
			logg.Error(ctx, "catalog consumer stopped unexpectedly", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Sessions: sessionManager,

			Products:   productCache,
			Categories: categoryCache,

			Cart:     cartStore,
			Wishlist: wishlistStore,
			Prefs:    prefsStore,
			Pricing:  pricingEngine,
			Checkout: checkoutService,

			Auth:  authService,
			Users: userService,

			Blog:        blogService,
			Reviews:     reviewService,
			Subscribers: subscriberService,

			ProductAdmin:  productService,
			CategoryAdmin: categoryService,
			BrandAdmin:    brandService,
			Coupons:       couponsRepo,
			Orders:        orderService,
			Settings:      settingsService,
			AdminLogs:     adminLogService,
			Analytics:     analyticsService,

			HTTPMetrics: httpMetrics,
		}),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "error shutting down api server", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "api server shut down gracefully")
}
