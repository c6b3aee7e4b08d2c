package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/junavolabs/junavo-backend/api/controllers"
	"github.com/junavolabs/junavo-backend/api/middleware"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	analyticssvc "github.com/junavolabs/junavo-backend/internal/analytics"
	authsvc "github.com/junavolabs/junavo-backend/internal/auth"
	blogsvc "github.com/junavolabs/junavo-backend/internal/blog"
	brandssvc "github.com/junavolabs/junavo-backend/internal/brands"
	cartsvc "github.com/junavolabs/junavo-backend/internal/cart"
	"github.com/junavolabs/junavo-backend/internal/catalog"
	categoriessvc "github.com/junavolabs/junavo-backend/internal/categories"
	checkoutsvc "github.com/junavolabs/junavo-backend/internal/checkout"
	couponssvc "github.com/junavolabs/junavo-backend/internal/coupons"
	orderssvc "github.com/junavolabs/junavo-backend/internal/orders"
	prefssvc "github.com/junavolabs/junavo-backend/internal/prefs"
	"github.com/junavolabs/junavo-backend/internal/pricing"
	productssvc "github.com/junavolabs/junavo-backend/internal/products"
	reviewssvc "github.com/junavolabs/junavo-backend/internal/reviews"
	settingssvc "github.com/junavolabs/junavo-backend/internal/settings"
	subscriberssvc "github.com/junavolabs/junavo-backend/internal/subscribers"
	userssvc "github.com/junavolabs/junavo-backend/internal/users"
	wishlistsvc "github.com/junavolabs/junavo-backend/internal/wishlist"
	"github.com/junavolabs/junavo-backend/pkg/auth/session"
	"github.com/junavolabs/junavo-backend/pkg/config"
	"github.com/junavolabs/junavo-backend/pkg/logger"
	"github.com/junavolabs/junavo-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Sessions session.AccessSessionChecker

	Products   *catalog.ProductCache
	Categories *catalog.CategoryCache

	Cart     cartsvc.Store
	Wishlist wishlistsvc.Store
	Prefs    prefssvc.Store
	Pricing  pricing.Engine
	Checkout checkoutsvc.Service

	Auth  authsvc.Service
	Users userssvc.Service

	Blog        blogsvc.Service
	Reviews     reviewssvc.Service
	Subscribers subscriberssvc.Service

	ProductAdmin  productssvc.Service
	CategoryAdmin categoriessvc.Service
	BrandAdmin    brandssvc.Service
	Coupons       *couponssvc.Repository
	Orders        orderssvc.Service
	Settings      settingssvc.Service
	AdminLogs     adminlogsvc.Service
	Analytics     analyticssvc.Service

	HTTPMetrics *metrics.HTTPMetrics
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	// Anonymous storefront surface keyed by the X-Session-Id header.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.StorefrontSession(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Get("/{slug}", controllers.ProductDetail(deps.Products, logg))
			r.Get("/{productId}/reviews", controllers.ProductReviews(deps.Reviews, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(deps.Categories))
			r.Get("/{slug}", controllers.CategoryDetail(deps.Categories, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Put("/items", controllers.CartUpdateQuantity(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Get("/quote", controllers.CartQuote(deps.Cart, deps.Pricing, logg))
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistGet(deps.Wishlist))
			r.Post("/toggle", controllers.WishlistToggle(deps.Wishlist, logg))
		})
		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", controllers.PrefsGet(deps.Prefs))
			r.Put("/", controllers.PrefsSet(deps.Prefs, logg))
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", controllers.BlogList(deps.Blog, logg))
			r.Get("/{slug}", controllers.BlogDetail(deps.Blog, logg))
		})
		r.Post("/subscribe", controllers.Subscribe(deps.Subscribers, logg))

		// Checkout accepts a bearer token but never requires one; guest
		// orders carry a nil user id.
		r.With(middleware.OptionalAuth(cfg.JWT, deps.Sessions, logg)).
			Post("/checkout", controllers.CheckoutSubmit(deps.Checkout, logg))
	})

	// Authenticated customer surface.
	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.StorefrontSession(logg))

		r.Get("/profile", controllers.ProfileGet(deps.Users, logg))
		r.Put("/profile", controllers.ProfilePut(deps.Users, logg))
		r.Get("/orders", controllers.MyOrders(deps.Orders, logg))
		r.Post("/reviews", controllers.ReviewSubmit(deps.Reviews, logg))
	})

	// Back office. Unauthorized access yields 403 so the SPA can redirect
	// to its login view.
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireStaff(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(deps.ProductAdmin, logg))
			r.Post("/", controllers.AdminProductCreate(deps.ProductAdmin, deps.AdminLogs, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(deps.ProductAdmin, deps.AdminLogs, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(deps.ProductAdmin, deps.AdminLogs, logg))
			r.Post("/{productId}/stock", controllers.AdminStockAdjust(deps.ProductAdmin, deps.AdminLogs, logg))
			r.Get("/{productId}/stock-history", controllers.AdminStockHistory(deps.ProductAdmin, logg))
		})
		r.Get("/convert-price", controllers.AdminConvertPrice(deps.ProductAdmin, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminCategoryList(deps.CategoryAdmin, logg))
			r.Post("/", controllers.AdminCategoryCreate(deps.CategoryAdmin, deps.AdminLogs, logg))
			r.Put("/{categoryId}", controllers.AdminCategoryUpdate(deps.CategoryAdmin, deps.AdminLogs, logg))
			r.Delete("/{categoryId}", controllers.AdminCategoryDelete(deps.CategoryAdmin, deps.AdminLogs, logg))
		})
		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.AdminBrandList(deps.BrandAdmin, logg))
			r.Post("/", controllers.AdminBrandCreate(deps.BrandAdmin, deps.AdminLogs, logg))
			r.Put("/{brandId}", controllers.AdminBrandUpdate(deps.BrandAdmin, deps.AdminLogs, logg))
			r.Delete("/{brandId}", controllers.AdminBrandDelete(deps.BrandAdmin, deps.AdminLogs, logg))
		})
		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.AdminCouponList(deps.Coupons, logg))
			r.Post("/", controllers.AdminCouponCreate(deps.Coupons, deps.AdminLogs, logg))
			r.Put("/{couponId}", controllers.AdminCouponUpdate(deps.Coupons, deps.AdminLogs, logg))
			r.Delete("/{couponId}", controllers.AdminCouponDelete(deps.Coupons, deps.AdminLogs, logg))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(deps.Orders, logg))
			r.Put("/{orderId}/status", controllers.AdminOrderUpdateStatus(deps.Orders, deps.AdminLogs, logg))
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/pending", controllers.AdminReviewQueue(deps.Reviews, logg))
			r.Put("/{reviewId}", controllers.AdminReviewModerate(deps.Reviews, deps.AdminLogs, logg))
		})
		r.Route("/blog", func(r chi.Router) {
			r.Get("/", controllers.AdminBlogList(deps.Blog, logg))
			r.Post("/", controllers.AdminBlogCreate(deps.Blog, deps.AdminLogs, logg))
			r.Put("/{postId}", controllers.AdminBlogUpdate(deps.Blog, deps.AdminLogs, logg))
			r.Delete("/{postId}", controllers.AdminBlogDelete(deps.Blog, deps.AdminLogs, logg))
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.AdminSettingsList(deps.Settings, logg))
			r.Get("/{key}", controllers.AdminSettingGet(deps.Settings, logg))
			r.Put("/{key}", controllers.AdminSettingPut(deps.Settings, deps.AdminLogs, logg))
		})
		r.Route("/subscribers", func(r chi.Router) {
			r.Get("/", controllers.AdminSubscriberList(deps.Subscribers, logg))
			r.Delete("/{subscriberId}", controllers.AdminSubscriberDelete(deps.Subscribers, deps.AdminLogs, logg))
		})
		r.Get("/logs", controllers.AdminLogList(deps.AdminLogs, logg))
		r.Get("/analytics", controllers.AdminAnalyticsDashboard(deps.Analytics, logg))
	})

	return r
}
