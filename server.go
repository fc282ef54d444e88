package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/middlewares"
	"github.com/simailhq/simail_backend/models"
	"github.com/simailhq/simail_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultPort = "8080"

var tracer trace.Tracer = otel.Tracer("simail-backend")

// backendsReady flips once the database and redis connections are
// established; until then every request except /healthz gets a 503 so
// the platform keeps probing instead of routing traffic.
var backendsReady atomic.Bool

func correlationIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.Request.Header.Get("X-Correlation-Id")
		if correlationId == "" {
			correlationId = uuid.New().String()
		}
		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), correlationId)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Correlation-Id", correlationId)
		c.Next()
	}
}

func readinessGateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !backendsReady.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service is starting"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		for _, ginErr := range c.Errors {
			logger.WithFields(logrus.Fields{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"status": c.Writer.Status(),
			}).Error(ginErr.Error())
		}
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// RateLimiter is a fixed-window per-client limiter backed by redis, so
// the limit holds across instances.
type RateLimiter struct {
	maxRequests   int
	windowSeconds int
}

func NewRateLimiter() *RateLimiter {
	maxRequests := 600
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_MAX_REQUESTS")); err == nil && v > 0 {
		maxRequests = v
	}
	windowSeconds := 60
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_WINDOW_SECONDS")); err == nil && v > 0 {
		windowSeconds = v
	}
	return &RateLimiter{maxRequests: maxRequests, windowSeconds: windowSeconds}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := config.GetRedisDB()
		if rdb == nil {
			c.Next()
			return
		}

		key := "RateLimit:" + c.ClientIP()
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// fail open, the limiter is protection rather than policy
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, time.Duration(rl.windowSeconds)*time.Second)
		}
		if count > int64(rl.maxRequests) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func buildCorsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	allowedOrigins := splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else if os.Getenv("GO_ENV") == "production" {
		log.Println("CORS_ALLOWED_ORIGINS is empty in production, denying cross-origin requests")
		corsConfig.AllowOrigins = []string{}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	return corsConfig
}

func registerRoutes(r *gin.Engine) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", loginHandler())
	auth.POST("/logout", logoutHandler())

	protected := api.Group("", middlewares.RequireSession())

	users := protected.Group("/users")
	users.GET("", listUsersHandler())
	users.POST("", createUserHandler())
	users.GET("/:id", getUserHandler())
	users.PUT("/:id", updateUserHandler())
	users.DELETE("/:id", deleteUserHandler())
	users.PUT("/:id/password", changePasswordHandler())

	audits := protected.Group("/audits")
	audits.GET("", listAuditsHandler())
	audits.GET("/planning", listPlanningAuditsHandler())
	audits.GET("/execution", listExecutionAuditsHandler())
	audits.POST("", createAuditHandler())
	audits.GET("/:id", getAuditHandler())
	audits.PUT("/:id", updateAuditHandler())
	audits.DELETE("/:id", deleteAuditHandler())
	audits.PUT("/:id/team", updateAuditTeamHandler())
	audits.PUT("/:id/progress", updateAuditProgressHandler())

	audits.GET("/:id/artifacts/:kind", listArtifactsHandler())
	audits.POST("/:id/artifacts/:kind", uploadArtifactHandler())
	audits.DELETE("/:id/artifacts/:kind/:fileId", deleteArtifactHandler())

	findings := protected.Group("/findings")
	findings.GET("", listFindingsHandler())
	findings.POST("", createFindingHandler())
	findings.GET("/:id", getFindingHandler())
	findings.PUT("/:id", updateFindingHandler())
	findings.DELETE("/:id", deleteFindingHandler())

	followUps := protected.Group("/followups")
	followUps.GET("", listFollowUpsHandler())
	followUps.POST("", createFollowUpHandler())
	followUps.GET("/:id", getFollowUpHandler())
	followUps.PUT("/:id", updateFollowUpHandler())
	followUps.PUT("/:id/complete", completeFollowUpHandler())
	followUps.DELETE("/:id", deleteFollowUpHandler())

	reportsGroup := protected.Group("/reports")
	reportsGroup.GET("", listReportsHandler())
	reportsGroup.GET("/stats", reportStatsHandler())
	reportsGroup.POST("/general", generateGeneralReportHandler())
	reportsGroup.POST("/audits/:id", generateAuditReportHandler())
	reportsGroup.GET("/:id", getReportHandler())
	reportsGroup.GET("/:id/export", exportReportHandler())
	reportsGroup.PUT("/:id/status", updateReportStatusHandler())
	reportsGroup.DELETE("/:id", deleteReportHandler())

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/stats", dashboardStatsHandler())
	dashboard.GET("/trend", dashboardTrendHandler())

	settings := protected.Group("/settings")
	settings.GET("", getSettingsHandler())
	settings.PUT("", updateSettingsHandler())
	settings.POST("/logo", uploadLogoHandler())
}

func main() {
	logger := config.GetLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	if os.Getenv("GO_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(correlationIdMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Use(readinessGateMiddleware())
	r.Use(cors.New(buildCorsConfig()))
	if os.Getenv("RATE_LIMIT_ENABLED") == "true" {
		r.Use(NewRateLimiter().Middleware())
	}
	r.Use(middlewares.AuthMiddleware())
	r.Use(middlewares.SessionMiddleware())
	r.Use(customErrorLogger(logger))
	r.NoRoute(customNotFoundHandler)

	registerRoutes(r)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Listen before connecting to backends; Cloud Run needs the port
	// open promptly, and the readiness gate covers the warmup window.
	serverErrCh := make(chan error, 1)
	go func() {
		logger.WithField("port", port).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	if os.Getenv("SKIP_MIGRATIONS") != "true" {
		models.MigrateTable()
	}

	backendsReady.Store(true)
	logger.Info("backends connected, serving traffic")

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrCh:
		logger.WithError(err).Error("http server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		closeRedis(rdb, logger)
	}
	fmt.Println("server stopped")
}

func closeRedis(rdb *redis.Client, logger *logrus.Logger) {
	if err := rdb.Close(); err != nil {
		logger.WithError(err).Warn("closing redis connection")
	}
}
