package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"creativeflow/internal/cache"
	"creativeflow/internal/config"
	"creativeflow/internal/features/analytics"
	"creativeflow/internal/features/contact"
	"creativeflow/internal/features/disk"
	projects_controllers "creativeflow/internal/features/projects/controllers"
	projects_services "creativeflow/internal/features/projects/services"
	system_healthcheck "creativeflow/internal/features/system/healthcheck"
	users_controllers "creativeflow/internal/features/users/controllers"
	users_identity "creativeflow/internal/features/users/identity"
	users_middleware "creativeflow/internal/features/users/middleware"
	cache_utils "creativeflow/internal/util/cache"
	env_utils "creativeflow/internal/util/env"
	"creativeflow/internal/util/logger"
	_ "creativeflow/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

func runServer() error {
	log := logger.GetLogger()
	setUpDependencies()

	if err := cache_utils.TestCacheConnection(); err != nil {
		log.Error("Failed to connect to cache", "error", err)
		return err
	}

	log.Info("Running database migrations...")
	if err := migrateDatabase(); err != nil {
		return err
	}

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()
	if err := configureTrustedProxies(ginApp, config.GetEnv().TrustedProxies); err != nil {
		log.Error("TRUSTED_PROXIES is invalid", "error", err)
		return err
	}

	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// assets are served as uploaded, most of them are already compressed
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4", ".zip"},
		),
		gzip.WithExcludedPathsRegexs([]string{`/api/projects/[^/]+/assets/[^/]+/download`}),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)

	return startServerWithGracefulShutdown(log, ginApp)
}

// configureTrustedProxies limits X-Forwarded-For to the given proxies. With
// none the peer address is the client IP, so per-IP limits cannot be
// bypassed with a forged header.
func configureTrustedProxies(app *gin.Engine, proxies []string) error {
	if len(proxies) == 0 {
		proxies = nil
	}

	return app.SetTrustedProxies(proxies)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) error {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:              host + ":" + config.GetEnv().HttpPort,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server started", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("listen:", "error", err)
		return err
	case <-quit:
		log.Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
		return err
	}

	cache.Close()
	log.Info("Server gracefully stopped")

	return nil
}

func setUpRoutes(r *gin.Engine) {
	api := r.Group("/api")

	if config.GetEnv().EnvMode != env_utils.EnvModeProduction {
		api.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public routes
	authController := users_controllers.GetAuthController()
	contactController := contact.GetContactController()

	authController.RegisterRoutes(api)
	contactController.RegisterRoutes(api)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_identity.GetVerifier()))

	authController.RegisterProtectedRoutes(protected)
	contactController.RegisterProtectedRoutes(protected)
	users_controllers.GetManagementController().RegisterRoutes(protected)
	projects_controllers.GetProjectController().RegisterRoutes(protected)
	projects_controllers.GetMemberController().RegisterRoutes(protected)
	projects_controllers.GetAssetController().RegisterRoutes(protected)
	analytics.GetAnalyticsController().RegisterRoutes(protected)
	disk.GetDiskController().RegisterRoutes(protected)
}

func setUpDependencies() {
	analytics.SetupDependencies()
	projects_services.SetupDependencies()
}

// Docs appear after the second launch: swag writes Go files that are only
// compiled into the next build.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	cmd := exec.Command("swag", "init", "-d", config.GetEnv().BackendRootPath, "-g", "cmd/main.go", "-o", "swagger")
	cmd.Dir = config.GetEnv().BackendRootPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
			},
			ExposeHeaders:    []string{"Content-Disposition", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
}
