package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	Location       *time.Location
	// UploadsDir is served under /uploads when set.
	UploadsDir string
}

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Admin      AdminHandler
	Photo      PhotoHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, handlers Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	if cfg.Location != nil {
		r.Use(middleware.LocalTime(cfg.Location))
	}

	r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	r.Route("/api", func(r chi.Router) {

		r.Route("/employee", func(r chi.Router) {
			r.Post("/login", handlers.Auth.EmployeeLogin)

			// Requires an employee token
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.Authenticated)
				r.Use(middleware.RequireRole(auth.RoleEmployee))

				r.Post("/checkin", handlers.Attendance.CheckIn)
				r.Post("/checkout", handlers.Attendance.CheckOut)
				r.Post("/breakin", handlers.Attendance.BreakIn)
				r.Post("/breakout", handlers.Attendance.BreakOut)
				r.Post("/photos", handlers.Photo.Upload)

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", handlers.Attendance.History)
					r.Get("/today", handlers.Attendance.Today)
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", handlers.Auth.AdminLogin)
			r.Post("/register-branch", handlers.Admin.RegisterBranch)

			// Requires an admin token
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.Authenticated)
				r.Use(middleware.RequireRole(auth.RoleAdmin))

				r.Post("/create-employee", handlers.Admin.CreateEmployee)
				r.Get("/employees/{branchName}", handlers.Admin.ListEmployees)

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/{employeeId}", handlers.Attendance.ListByEmployee)
					r.Put("/{id}", handlers.Attendance.Correct)
				})
			})
		})
	})
	return r
}
