package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"

	"github.com/glowdesk/glowdesk/internal/http/handlers"
	rl "github.com/glowdesk/glowdesk/internal/http/rate_limiter"
)

type RouterOptions struct {
	Logger        *slog.Logger
	ExposeMetrics bool
	RateLimiters  *rl.Registry
}

// NewRouter wires every route of the service. The admin group sits behind the
// bearer-token middleware; everything else is open to the salon frontend.
func NewRouter(opts RouterOptions) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RateLimiters == nil {
		opts.RateLimiters = rl.New(rate.Limit(50), 100)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(opts.Logger))
	r.Use(MetricsMiddleware)
	r.Use(RateLimitMiddleware(opts.RateLimiters))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if opts.ExposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", handlers.LoginHandler)
		r.Post("/auth/refresh", handlers.RefreshHandler)

		r.Route("/financial/transactions", func(r chi.Router) {
			r.Post("/", handlers.CreateTransactionHandler)
			r.Get("/", handlers.GetTransactionsHandler)
			r.Get("/{id}", handlers.GetTransactionByIDHandler)
			r.Put("/{id}", handlers.UpdateTransactionHandler)
			r.Delete("/{id}", handlers.DeleteTransactionHandler)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", handlers.CreateAppointmentHandler)
			r.Get("/", handlers.GetAppointmentsHandler)
			r.Get("/{id}", handlers.GetAppointmentByIDHandler)
			r.Put("/{id}", handlers.UpdateAppointmentHandler)
			r.Delete("/{id}", handlers.DeleteAppointmentHandler)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Post("/", handlers.CreateClientHandler)
			r.Get("/", handlers.GetClientsHandler)
			r.Post("/import", handlers.ImportClientsHandler)
			r.Get("/{id}", handlers.GetClientByIDHandler)
			r.Put("/{id}", handlers.UpdateClientHandler)
			r.Delete("/{id}", handlers.DeleteClientHandler)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", handlers.CreateProductHandler)
			r.Get("/", handlers.GetProductsHandler)
			r.Patch("/stock", handlers.AdjustStockHandler)
			r.Get("/{id}", handlers.GetProductByIDHandler)
			r.Patch("/{id}", handlers.UpdateProductHandler)
			r.Delete("/{id}", handlers.DeleteProductHandler)
		})

		r.Get("/dashboard/stats", handlers.GetDashboardStatsHandler)

		r.Get("/settings", handlers.GetSettingsHandler)
		r.Put("/settings", handlers.UpdateSettingsHandler)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware)
			r.Post("/setup-schema", handlers.SetupSchemaHandler)
			r.Post("/fix-schema", handlers.FixSchemaHandler)
		})
	})

	return r
}
