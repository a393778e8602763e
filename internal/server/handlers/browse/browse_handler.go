package browse

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vauradkar/letso/internal/pfs"
	"github.com/vauradkar/letso/internal/server/accesslog"
	"github.com/vauradkar/letso/internal/server/handlers/api"
)

// EventBatch is the SSE event name of one streamed batch.
const EventBatch = "batch"

type BrowseHandler struct {
	store *pfs.Store
}

func New(store *pfs.Store) *BrowseHandler {
	return &BrowseHandler{store: store}
}

// Path lists the immediate children of a directory.
func (h *BrowseHandler) Path(ctx *gin.Context) {
	var path pfs.Path
	if err := ctx.ShouldBindJSON(&path); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("failed to bind json: %w", err))
		return
	}

	accesslog.Track(ctx, path.String(), accesslog.AccessTypeList)
	dir, err := h.store.Browse(ctx.Request.Context(), path)
	if err != nil {
		api.AbortWithStoreError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, dir)
}

// Lookup returns the snapshot of a single path, with null stats when it does not exist.
func (h *BrowseHandler) Lookup(ctx *gin.Context) {
	var path pfs.Path
	if err := ctx.ShouldBindJSON(&path); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("failed to bind json: %w", err))
		return
	}

	item, err := h.store.Lookup(ctx.Request.Context(), path)
	if err != nil {
		api.AbortWithStoreError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, item)
}

// ExchangeDeltas streams every entry below the requested directory as server
// sent events, one JSON array of sync items per event.
func (h *BrowseHandler) ExchangeDeltas(ctx *gin.Context) {
	var req pfs.SyncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("failed to bind json: %w", err))
		return
	}

	accesslog.Track(ctx, req.Dest.String(), accesslog.AccessTypeList)
	batches := h.store.Stream(ctx.Request.Context(), &req)
	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("X-Accel-Buffering", "no")
	ctx.Status(http.StatusOK)

	// a client that goes away cancels the request context, which ends the walk
	// and closes batches
	for batch := range batches {
		data, err := jsonMarshal(batch)
		if err != nil {
			slog.Error("encode batch", "dest", req.Dest.String(), "error", err)
			return
		}
		ctx.SSEvent(EventBatch, string(data))
		ctx.Writer.Flush()
	}
}
