package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/fasihgds-afk/hik-attendance-system/internal/handler/http/middleware"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	leaveHandler LeaveHandler,
	shiftHandler ShiftHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hik-attendance"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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
		// Everything requires a token; the engine has no public surface.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListMonth)
				r.With(middleware.HRAdminOnly).Post("/recompute", attendanceHandler.Recompute)
				r.With(middleware.HRAdminOnly).Put("/{employee}/{date}", attendanceHandler.OverrideDay)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/summary", payrollHandler.Summary)
				r.Get("/rules", payrollHandler.GetRules)
				r.With(middleware.HRAdminOnly).Post("/rules", payrollHandler.ActivateRules)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/balances", leaveHandler.Balances)
				r.With(middleware.HRAdminOnly).Post("/", leaveHandler.Grant)
				r.With(middleware.HRAdminOnly).Delete("/{employee}/{date}", leaveHandler.Revoke)
				r.With(middleware.HRAdminOnly).Post("/reconcile", leaveHandler.Reconcile)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Get("/{code}/window", shiftHandler.Window)
			})
		})
	})

	return r
}
