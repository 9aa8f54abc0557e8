package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	pennyAuth "github.com/hbarnes/penny/internal/auth"
	authHandler "github.com/hbarnes/penny/internal/http/auth"
	"github.com/hbarnes/penny/internal/http/budget"
	"github.com/hbarnes/penny/internal/http/currency"
	"github.com/hbarnes/penny/internal/http/export"
	"github.com/hbarnes/penny/internal/http/importcsv"
	"github.com/hbarnes/penny/internal/http/insight"
	"github.com/hbarnes/penny/internal/http/productivity"
	"github.com/hbarnes/penny/internal/http/summary"
	"github.com/hbarnes/penny/internal/http/transaction"
)

func New(
	authSvc *pennyAuth.Service,
	allowedOrigins []string,
	authV1 *authHandler.Handler,
	transactionsV1 *transaction.Handler,
	budgetsV1 *budget.Handler,
	productivityV1 *productivity.Handler,
	summaryV1 *summary.Handler,
	currencyV1 *currency.Handler,
	insightsV1 *insight.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		// Everything behind a session token.
		r.Group(func(r chi.Router) {
			r.Use(authSvc.Middleware)

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				budgetsV1.Routes(r)
			})

			r.Route("/todos", productivityV1.TodoRoutes)
			r.Route("/reminders", productivityV1.ReminderRoutes)
			r.Route("/summary", summaryV1.Routes)
			r.Route("/currency", currencyV1.Routes)
			r.Route("/insights", insightsV1.Routes)
			r.Route("/import", importV1.Routes)
			r.Route("/export", exportV1.Routes)
		})
	})

	return router
}
