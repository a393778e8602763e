package accesslog

import (
	"github.com/gin-gonic/gin"
)

type AccessLogMiddleware struct {
	logger *AccessLogger
}

func NewMiddleware(logger *AccessLogger) *AccessLogMiddleware {
	return &AccessLogMiddleware{
		logger: logger,
	}
}

// Handler logs every access its handler tracked, once the response is written.
func (m *AccessLogMiddleware) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(keyLogger, m.logger)
		ctx.Next()

		for _, a := range trackedAccesses(ctx) {
			m.logger.LogAccess(ctx, a.path, a.accessType)
		}
	}
}

type trackedAccess struct {
	path       string
	accessType AccessType
}

// Track records an access of path on the request. Every call yields its own
// log entry. It is a no-op without the middleware.
func Track(ctx *gin.Context, path string, accessType AccessType) {
	if GetAccessLogger(ctx) == nil {
		return
	}
	ctx.Set(keyAccesses, append(trackedAccesses(ctx), trackedAccess{path: path, accessType: accessType}))
}

func trackedAccesses(ctx *gin.Context) []trackedAccess {
	if v, ok := ctx.Get(keyAccesses); ok {
		if accesses, ok := v.([]trackedAccess); ok {
			return accesses
		}
	}
	return nil
}

func GetAccessLogger(ctx *gin.Context) *AccessLogger {
	if logger, exists := ctx.Get(keyLogger); exists {
		if al, ok := logger.(*AccessLogger); ok {
			return al
		}
	}
	return nil
}
