package info

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vauradkar/letso/internal/pfs"
	"github.com/vauradkar/letso/internal/version"
)

// APIVersion changes whenever a route or payload changes incompatibly.
const APIVersion = "1"

type InfoHandler struct {
	store *pfs.Store
}

func New(store *pfs.Store) *InfoHandler {
	return &InfoHandler{store: store}
}

func (h *InfoHandler) Test(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Hello World")
}

// ServerVersion lets clients check compatibility with the server build.
func (h *InfoHandler) ServerVersion(ctx *gin.Context) {
	ctx.String(http.StatusOK, version.Version)
}

func (h *InfoHandler) APIVersion(ctx *gin.Context) {
	ctx.String(http.StatusOK, APIVersion)
}

// CacheStats reports the snapshot cache hit/miss counters.
func (h *InfoHandler) CacheStats(ctx *gin.Context) {
	ctx.PureJSON(http.StatusOK, h.store.CacheStats())
}
