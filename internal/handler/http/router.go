package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	env string,
	payrollHandler PayrollHandler,
	overtimeHandler OvertimeHandler,
	salaryHandler SalaryHandler,
	summaryHandler SummaryHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Route("/overtime", func(r chi.Router) {
					r.Post("/", overtimeHandler.Submit)
					r.Get("/", overtimeHandler.ListByEmployee)
				})

				r.Route("/summaries/{year}/{month}", func(r chi.Router) {
					r.Get("/", summaryHandler.Get)
					r.Post("/generate", summaryHandler.Generate)
				})

				// Admin only
				r.Route("/salary-configs", func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", salaryHandler.CreateConfig)
					r.Get("/", salaryHandler.ListConfigs)
					r.Get("/active", salaryHandler.GetActiveConfig)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/overtime/{id}", func(r chi.Router) {
					r.Post("/review", overtimeHandler.Review)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Route("/runs", func(r chi.Router) {
						r.Post("/", payrollHandler.CreateRun)
						r.Get("/", payrollHandler.ListRuns)

						r.Route("/{id}", func(r chi.Router) {
							r.Get("/", payrollHandler.GetRun)
							r.Get("/details", payrollHandler.GetRunDetails)
							r.Post("/finalize", payrollHandler.FinalizeRun)
							r.Post("/pay", payrollHandler.MarkRunPaid)
							r.Post("/cancel", payrollHandler.CancelRun)
						})
					})

					r.Post("/details/{detailID}/slip", payrollHandler.GenerateSlip)
				})
			})
		})
	})

	return r
}
