// Package server wires the HTTP API: middleware, route table, and the
// health probe.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/internal/auth"
	"github.com/sessionly/sessionly/internal/billing"
	"github.com/sessionly/sessionly/internal/homework"
	"github.com/sessionly/sessionly/internal/logs"
	"github.com/sessionly/sessionly/internal/profile"
	"github.com/sessionly/sessionly/internal/sessions"
)

// Deps carries everything the route table needs.
type Deps struct {
	DB          *gorm.DB
	Tokens      *auth.TokenManager
	Log         *slog.Logger
	CORSOrigins []string
}

// NewRouter builds the gin engine with all API routes mounted under /api.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(deps.Log))

	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	apiGroup.POST("/auth/signup", auth.HandleSignup(deps.DB, deps.Tokens, deps.Log))
	apiGroup.POST("/auth/login", auth.HandleLogin(deps.DB, deps.Tokens, deps.Log))

	protected := apiGroup.Group("", auth.RequireAuth(deps.Tokens))

	protected.GET("/auth/me", auth.HandleMe(deps.DB))
	protected.DELETE("/account", auth.HandleDeleteAccount(deps.DB, deps.Log))
	protected.POST("/billing/fake-payment", billing.FakePaymentHandler(deps.DB))

	protected.GET("/logs", logs.ListLogsHandler(deps.DB))
	protected.POST("/logs", logs.CreateLogHandler(deps.DB))
	protected.PATCH("/logs/:id", logs.UpdateLogHandler(deps.DB))
	protected.DELETE("/logs/:id", logs.DeleteLogHandler(deps.DB))

	protected.GET("/sessions", sessions.ListSessionsHandler(deps.DB))
	protected.POST("/sessions", sessions.CreateSessionHandler(deps.DB))
	protected.PATCH("/sessions/:id", sessions.UpdateSessionHandler(deps.DB))

	protected.GET("/homework", homework.ListHomeworkHandler(deps.DB))
	protected.POST("/homework", homework.CreateHomeworkHandler(deps.DB))
	protected.PATCH("/homework/:id", homework.UpdateHomeworkHandler(deps.DB))
	protected.DELETE("/homework/:id", homework.DeleteHomeworkHandler(deps.DB))

	protected.GET("/profile", profile.GetProfileHandler(deps.DB))
	protected.PUT("/profile", profile.UpdateProfileHandler(deps.DB))

	return r
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
