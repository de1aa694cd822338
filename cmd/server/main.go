package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sumire/projecthub/internal/config"
	"github.com/sumire/projecthub/internal/handler"
	"github.com/sumire/projecthub/internal/repository"
	"github.com/sumire/projecthub/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	client, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("disconnect database", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	slog.Info("database connected", "database", cfg.MongoDatabase)

	userRepo := repository.NewUserRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	collaboratorRepo := repository.NewCollaboratorRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	viewRepo := repository.NewViewRepository(db)
	tx := repository.NewTxRunner(client)

	catalog, err := service.LoadCatalog(ctx, permissionRepo)
	if err != nil {
		return fmt.Errorf("load permission catalog: %w", err)
	}

	authSvc := service.NewAuthService(userRepo, service.AuthConfig{
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		GitHubClientID:     cfg.GitHubClientID,
		GitHubClientSecret: cfg.GitHubClientSecret,
		JWTSecret:          cfg.JWTSecret,
		FrontendURL:        cfg.FrontendURL,
	})
	accessSvc := service.NewAccessService(collaboratorRepo, catalog)
	projectSvc := service.NewProjectService(projectRepo, collaboratorRepo,
		templateRepo, locationRepo, viewRepo, accessSvc, catalog, tx)
	collaboratorSvc := service.NewCollaboratorService(collaboratorRepo, userRepo,
		viewRepo, accessSvc, catalog, tx)
	categorySvc := service.NewCategoryService(categoryRepo, accessSvc, tx)
	locationSvc := service.NewLocationService(locationRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	projectHandler := handler.NewProjectHandler(projectSvc)
	collaboratorHandler := handler.NewCollaboratorHandler(collaboratorSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	locationHandler := handler.NewLocationHandler(locationSvc)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Validator = handler.NewAppValidator()

	e.Use(middleware.RequestID())
	e.Use(handler.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.GET("/google", authHandler.GoogleRedirect)
	auth.GET("/google/callback", authHandler.GoogleCallback)
	auth.GET("/github", authHandler.GitHubRedirect)
	auth.GET("/github/callback", authHandler.GitHubCallback)
	auth.POST("/refresh", authHandler.Refresh)

	api.POST("/locations", locationHandler.Create)
	api.GET("/locations", locationHandler.List)

	protected := api.Group("", handler.JWTAuth(authSvc))
	protected.GET("/auth/me", authHandler.Me)

	projects := protected.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:projectId", projectHandler.Detail)
	projects.PATCH("/:projectId/archived", projectHandler.Archive)
	projects.PATCH("/:projectId/deleted", projectHandler.Delete)
	projects.PATCH("/:projectId", projectHandler.Edit)
	projects.POST("/:projectId/collaborator", collaboratorHandler.Invite)
	projects.GET("/:projectId/collaborator", collaboratorHandler.List)
	projects.POST("/:projectId/category", categoryHandler.Create)

	// One :id param for the whole group: echo rejects mixed parameter names
	// at the same path position, and /:id/allEntry takes a project id while
	// the rest take a category id.
	categories := protected.Group("/categories")
	categories.GET("/:id", categoryHandler.Get)
	categories.PUT("/:id", categoryHandler.Edit)
	categories.DELETE("/:id", categoryHandler.Delete)
	categories.GET("/:id/entry", categoryHandler.Attributes)
	categories.POST("/:id/entry", categoryHandler.CreateEntry)
	categories.GET("/:id/allEntry", categoryHandler.AllEntries)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- e.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
