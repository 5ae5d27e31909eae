// Package api serves the remote copy of factory datasets over HTTP. Each
// sync key holds one whole dataset; POST replaces it, GET returns it.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/factoryops/pkg/infrastructure/blobstore"
)

// RouterConfig controls cross-origin access
type RouterConfig struct {
	Production     bool
	AllowedOrigins []string
	MaxBodyBytes   int64
}

const defaultMaxBodyBytes = 32 << 20

// NewRouter builds the gin engine for the sync server
func NewRouter(store blobstore.Store, cfg RouterConfig, logger logrus.FieldLogger) *gin.Engine {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	r := gin.New()
	r.Use(correlationID())

	// Production without allowed origins serves same-origin requests only
	if !cfg.Production || len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		if cfg.Production {
			corsConfig.AllowOrigins = cfg.AllowedOrigins
		} else {
			corsConfig.AllowAllOrigins = true
		}
		corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
		corsConfig.AddAllowHeaders("Origin", "Content-Type", "Accept")
		corsConfig.AddExposeHeaders("Content-Length", correlationHeader)
		r.Use(cors.New(corsConfig))
	}

	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())

	h := &handler{store: store, logger: logger, maxBody: cfg.MaxBodyBytes}
	r.GET("/healthz", h.health)
	r.GET("/sync/:key", h.get)
	r.POST("/sync/:key", h.put)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	return r
}

const correlationHeader = "X-Correlation-Id"

func correlationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader(correlationHeader)
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Set("correlation_id", cid)
		c.Header(correlationHeader, cid)
		c.Next()
	}
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"status":         c.Writer.Status(),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"latency":        time.Since(start).String(),
			"correlation_id": c.GetString("correlation_id"),
		}).Info("request")
	}
}
