package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/auth"
	authMongo "github.com/frahmantamala/employee-admin/internal/auth/mongodb"
	"github.com/frahmantamala/employee-admin/internal/permission"
	permissionMongo "github.com/frahmantamala/employee-admin/internal/permission/mongodb"
	"github.com/frahmantamala/employee-admin/internal/transport/rest"
	"github.com/frahmantamala/employee-admin/internal/user"
	userMongo "github.com/frahmantamala/employee-admin/internal/user/mongodb"
	"github.com/frahmantamala/employee-admin/pkg/hasher"
	"github.com/frahmantamala/employee-admin/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config            *internal.Config
	Client            *mongo.Client
	Router            *chi.Mux
	Logger            *slog.Logger
	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
	PermissionHandler *permission.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.Client,
		deps.AuthHandler,
		deps.UserHandler,
		deps.PermissionHandler,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.Client.Disconnect(ctx); err != nil {
			slog.Error("Database disconnect error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	client, err := initMongo(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	db := client.Database(config.Database.Name)

	passwordHasher := hasher.NewArgon2Hasher(argon2Params(config.Security))

	userRepo := userMongo.NewUserRepository(db)
	userService := user.NewService(userRepo, passwordHasher, logger.LoggerWrapper())
	userHandler := user.NewHandler(userService)

	permissionRepo := permissionMongo.NewPermissionRepository(db)
	permissionService := permission.NewService(permissionRepo, logger.LoggerWrapper())
	permissionHandler := permission.NewHandler(permissionService)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authRepo := authMongo.NewAuthRepository(userRepo)
	authService := auth.NewService(authRepo, tokenGenerator, passwordHasher)
	authHandler := auth.NewHandler(authService)

	return &Dependencies{
		Config:            config,
		Client:            client,
		Router:            chi.NewRouter(),
		Logger:            logger.LoggerWrapper(),
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		PermissionHandler: permissionHandler,
	}, nil
}

// initMongo connects to the document store and verifies the connection.
func initMongo(cfg internal.DatabaseConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

func argon2Params(cfg internal.SecurityConfig) hasher.Argon2Params {
	params := hasher.DefaultArgon2Params()
	if cfg.Argon2Memory > 0 {
		params.Memory = cfg.Argon2Memory
	}
	if cfg.Argon2Iterations > 0 {
		params.Iterations = cfg.Argon2Iterations
	}
	if cfg.Argon2Parallelism > 0 {
		params.Parallelism = cfg.Argon2Parallelism
	}
	return params
}
