package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	adminService "github.com/cmlabs-hris/attendance-backend-go/internal/service/admin"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
)

const (
	appName    = "attendance-cmlabs"
	appVersion = "v1.0.0"
)

type repositories struct {
	branch     branch.BranchRepository
	employee   employee.EmployeeRepository
	attendance attendance.AttendanceRepository
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(
		slog.String("app", appName),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk, err := clock.NewSystemClock(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("error loading timezone: %w", err)
	}

	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)

	localStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("error initializing storage: %w", err)
	}

	authService := serviceAuth.NewAuthService(repos.branch, repos.employee, JWTService)
	adminSvc := adminService.NewAdminService(repos.branch, repos.employee)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, clk)
	fileService := file.NewFileService(localStorage, clk)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AppName:        appName,
		Version:        appVersion,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
		Location:       clk.Location(),
		UploadsDir:     localStorage.BasePath(),
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Admin:      appHTTP.NewAdminHandler(adminSvc),
		Photo:      appHTTP.NewPhotoHandler(fileService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Driver, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}

// openStore builds the repositories for the configured STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (repositories, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		slog.Warn("Using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			branch:     store.Branches(),
			employee:   store.Employees(),
			attendance: store.Attendances(),
		}, func() {}, nil
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return repositories{}, nil, fmt.Errorf("error connecting to database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(ctx); err != nil {
				db.Close()
				return repositories{}, nil, fmt.Errorf("error applying migrations: %w", err)
			}
		}
		return repositories{
			branch:     postgresql.NewBranchRepository(db),
			employee:   postgresql.NewEmployeeRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
		}, db.Close, nil
	}
}
