package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-chatbot/internal/domain/auth"
	"github.com/yanqian/faq-chatbot/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", handler.Index)
	router.GET("/health", handler.Health)
	if info, err := os.Stat(handler.staticDir); err == nil && info.IsDir() {
		router.Static("/static", handler.staticDir)
	}

	api := router.Group("/api", rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.GET("/health", handler.Health)

		api.POST("/chat", handler.Chat)
		api.POST("/chat/", handler.Chat)
		api.GET("/chat/history/:sessionID", handler.ChatHistory)

		api.POST("/feedback", handler.SubmitFeedback)
		api.GET("/faq/trending", handler.TrendingFAQ)

		admin := api.Group("/admin")
		admin.GET("/chat_history", handler.AdminChatHistory)
		admin.GET("/feedback", handler.AdminFeedback)
		admin.POST("/catalog/reload", handler.ReloadCatalog)

		authGroup := api.Group("/auth")
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/logout", handler.Logout)
		authGroup.GET("/me", authMiddleware(authSvc), handler.Me)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
