package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cover-merge/internal/applications"
	"cover-merge/internal/shared/config"
	"cover-merge/internal/shared/metrics"
	"cover-merge/internal/shared/server/middleware"
	"cover-merge/internal/shared/server/respond"
	"cover-merge/internal/shared/telemetry"
)

const mergeRateGroup = "MERGE"

// RouterDeps carries what NewRouter needs to register routes.
type RouterDeps struct {
	Config       config.Config
	MergeHandler *applications.Handler
	// Limiter overrides the rate limiter, mainly for tests.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// ClientIP keys the rate limiter, so forwarded headers only count from
	// configured proxies.
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		telemetry.Warn("server.trusted_proxies_invalid", map[string]any{
			"proxies": deps.Config.TrustedProxies,
			"err":     err.Error(),
		})
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateGroup,
			Limiter:  deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				mergeRateGroup: {Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst},
			},
		}),
	)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "not found")
	})

	r.GET("/api/v1/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	if deps.MergeHandler != nil {
		deps.MergeHandler.RegisterRoutes(r)
	}

	return r
}

func rateGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/merge" {
		return mergeRateGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
