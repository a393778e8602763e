package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vauradkar/letso/internal/pfs"
)

func AbortWithError(ctx *gin.Context, status int, code string, err error) {
	ctx.Abort()
	ctx.Error(err)
	ctx.PureJSON(status, APIError{
		Code:    code,
		Message: err.Error(),
	})
}

// AbortWithStoreError reports a failed store operation as an internal error
// whose code names the failure kind.
func AbortWithStoreError(ctx *gin.Context, err error) {
	if pfs.IsValidation(err) {
		slog.Debug("store request rejected", "route", ctx.FullPath(), "error", err)
	} else {
		slog.Error("store operation failed", "route", ctx.FullPath(), "error", err)
	}
	AbortWithError(ctx, http.StatusInternalServerError, StoreErrorCode(err), err)
}
