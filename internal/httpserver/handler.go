package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github-pr-watcher/internal/middleware"
	"github-pr-watcher/internal/model"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(middleware.New(srv.l).RequestLogger())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "internal.httpserver: running in production mode")
	} else {
		srv.l.Infof(ctx, "internal.httpserver: running in %s mode", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	srv.gin.POST("/webhook", srv.webhookHandler.HandleGitHubWebhook)
	srv.gin.POST("/webhook/github", srv.webhookHandler.HandleGitHubWebhook)
	srv.l.Infof(ctx, "internal.httpserver: GitHub webhook registered at POST /webhook and /webhook/github")

	if srv.trackerHandler != nil {
		tracker := srv.gin.Group("/tracker")
		tracker.POST("/sync", srv.trackerHandler.SyncReadyForQA)
		tracker.POST("/tasks/:key/status", srv.trackerHandler.UpdateTaskStatus)
		srv.l.Infof(ctx, "internal.httpserver: tracker routes registered under /tracker")
	} else {
		srv.l.Infof(ctx, "internal.httpserver: tracker not configured, skipping /tracker routes")
	}

	return nil
}
