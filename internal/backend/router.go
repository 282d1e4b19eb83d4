package backend

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tartampluch/go-gymtrack/internal/config"
)

// NewRouter wires middleware, health check and API routes.
func NewRouter(cfg *Config, svc *Service) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == config.BackendModeDev {
		// CORS is only needed for local front-end development.
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowHeaders:  []string{"Origin", config.HeaderContentType, config.HeaderAuthorization, config.HeaderRequestID},
			ExposeHeaders: []string{"Content-Length", config.HeaderRequestID},
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET(config.RouteHealth, func(c *gin.Context) { c.String(http.StatusOK, config.HTTPMsgOK) })

	api := r.Group(config.APIPrefix)
	RegisterRoutes(api, svc, []byte(cfg.Auth.Secret))
	return r
}

// requestLogger writes one slog record per request, echoing X-Request-ID.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if id := c.GetHeader(config.HeaderRequestID); id != "" {
			c.Header(config.HeaderRequestID, id)
		}

		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, config.MsgHTTPRequest,
			config.LogKeyComponent, config.CompBackend,
			config.LogKeyMethod, c.Request.Method,
			config.LogKeyPath, c.FullPath(),
			config.LogKeyStatus, c.Writer.Status(),
			config.LogKeyDuration, time.Since(start).Milliseconds(),
			config.LogKeyClientIP, c.ClientIP(),
			config.LogKeyRequestID, c.GetHeader(config.HeaderRequestID),
		)
	}
}
