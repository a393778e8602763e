package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vauradkar/letso/internal/server/accesslog"
	"github.com/vauradkar/letso/internal/server/handlers/api"
	"github.com/vauradkar/letso/internal/server/handlers/browse"
	"github.com/vauradkar/letso/internal/server/handlers/explorer"
	"github.com/vauradkar/letso/internal/server/handlers/files"
	"github.com/vauradkar/letso/internal/server/handlers/info"
	"github.com/vauradkar/letso/internal/server/handlers/ui"
	"github.com/vauradkar/letso/internal/server/middlewares"
	"github.com/vauradkar/letso/internal/version"
)

const apiRoot = "/api"

func SetupRoutes(config *Config, svc *Services) (http.Handler, error) {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20 // 8 MiB

	browseH := browse.New(svc.Store)
	filesH := files.New(svc.Store)
	infoH := info.New(svc.Store)
	explorerH := explorer.New(svc.Store)

	r.Use(middlewares.Logger())
	r.Use(gin.Recovery())
	if config.HTTP.TLS() {
		r.Use(middlewares.HSTS())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.GZIP())
	r.Use(middlewares.CORS())

	var audited []gin.HandlerFunc
	if svc.AccessLog != nil {
		audited = append(audited, accesslog.NewMiddleware(svc.AccessLog).Handler())
	}

	r.GET("/healthz", HealthHandler)
	r.GET("/explorer/*filepath", append(audited, explorerH.Handler)...)

	v1 := r.Group(apiRoot, audited...)
	{
		v1.GET("/test", infoH.Test)
		v1.GET("/server_version", infoH.ServerVersion)
		v1.GET("/api_version", infoH.APIVersion)
		v1.GET("/cache/stats", infoH.CacheStats)

		// browse
		v1.POST("/browse/path", browseH.Path)
		v1.POST("/browse/lookup", browseH.Lookup)
		v1.POST("/browse/exchange_deltas", browseH.ExchangeDeltas)

		// files
		upload := []gin.HandlerFunc{filesH.Upload}
		if config.UploadRateLimit != "" {
			limit, err := middlewares.RateLimiter(config.UploadRateLimit)
			if err != nil {
				return nil, fmt.Errorf("upload rate limit: %w", err)
			}
			upload = append([]gin.HandlerFunc{limit}, upload...)
		}
		v1.POST("/upload/file", upload...)
		v1.POST("/delete/files", filesH.Delete)
		v1.POST("/download/file", filesH.Download)
	}

	var uiH *ui.UIHandler
	if config.UIDir != "" {
		uiH = ui.New(config.UIDir)
	} else {
		r.GET("/", IndexHandler)
	}

	r.NoRoute(func(c *gin.Context) {
		if uiH != nil && !strings.HasPrefix(c.Request.URL.Path, apiRoot+"/") {
			uiH.Handler(c)
			return
		}
		c.PureJSON(http.StatusNotFound, api.APIError{
			Code:    api.CodeNotFound,
			Message: "not found",
		})
	})

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "method not allowed",
		})
	})

	return r.Handler(), nil
}

func IndexHandler(ctx *gin.Context) {
	// return a plaintext
	ctx.String(http.StatusOK, version.DetailedWithApp())
}

func HealthHandler(ctx *gin.Context) {
	ctx.PureJSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
