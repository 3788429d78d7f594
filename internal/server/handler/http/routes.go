package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/spendtrack/spendtrack/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the expense gateway API.
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger): logs each request and its outcome
//  2. AllowContentType: rejects non-JSON bodies on writes
//  3. Gatekeeper: preflight/exemption, CSRF, then auth
//
// Routes (all under /api):
//
//	POST  /auth/signup, /auth/login, /auth/logout     (exempt from gatekeeping)
//	GET   /categories         POST  /categories
//	PATCH /categories/{id}    DELETE /categories/{id}
//	GET   /payment_methods    POST  /payment_methods
//	PATCH /payment_methods/{id}  DELETE /payment_methods/{id}
//	GET   /expenses           POST  /expenses
//	GET   /expenses/{id}      PATCH /expenses/{id}  DELETE /expenses/{id}
//	GET   /expenses/category/{categoryId}
//	GET   /expenses/payment-method/{paymentMethodId}
//	GET   /analytics/average-spend
//	GET   /analytics/summary
func NewRouter(
	authHandler *AuthHandler,
	categoryHandler *CategoryHandler,
	paymentMethodHandler *PaymentMethodHandler,
	expenseHandler *ExpenseHandler,
	analyticsHandler *AnalyticsHandler,
	resolver *middleware.CredentialResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))
	// Enforce CSRF and credential checks ahead of every protected route
	r.Use(middleware.Gatekeeper(resolver, logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints: identity issuance
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Patch("/{id}", categoryHandler.Update)
			r.Delete("/{id}", categoryHandler.Delete)
		})

		r.Route("/payment_methods", func(r chi.Router) {
			r.Get("/", paymentMethodHandler.List)
			r.Post("/", paymentMethodHandler.Create)
			r.Patch("/{id}", paymentMethodHandler.Update)
			r.Delete("/{id}", paymentMethodHandler.Delete)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", expenseHandler.List)
			r.Post("/", expenseHandler.Create)
			r.Get("/category/{categoryId}", expenseHandler.ListByCategory)
			r.Get("/payment-method/{paymentMethodId}", expenseHandler.ListByPaymentMethod)
			r.Get("/{id}", expenseHandler.Get)
			r.Patch("/{id}", expenseHandler.Update)
			r.Delete("/{id}", expenseHandler.Delete)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/average-spend", analyticsHandler.AverageSpend)
			r.Get("/summary", analyticsHandler.Summary)
		})
	})

	return r
}
