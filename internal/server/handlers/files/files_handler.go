package files

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/vauradkar/letso/internal/pfs"
	"github.com/vauradkar/letso/internal/server/accesslog"
	"github.com/vauradkar/letso/internal/server/handlers/api"
)

type FilesHandler struct {
	store *pfs.Store
}

func New(store *pfs.Store) *FilesHandler {
	return &FilesHandler{store: store}
}

// Upload stores the uploaded file inside the requested directory under its own file name.
func (h *FilesHandler) Upload(ctx *gin.Context) {
	var form UploadForm
	if err := ctx.ShouldBind(&form); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("failed to bind form: %w", err))
		return
	}

	var dir pfs.Path
	if err := json.Unmarshal([]byte(form.Path), &dir); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("invalid path: %w", err))
		return
	}

	var stats pfs.FileStat
	if err := json.Unmarshal([]byte(form.Stats), &stats); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("invalid stats: %w", err))
		return
	}

	name := form.File.Filename
	if name == "" {
		name = defaultUploadName
	}
	path, err := dir.Join(name)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("invalid file name: %w", err))
		return
	}

	data, err := readUpload(form)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	}

	accesslog.Track(ctx, path.String(), accesslog.AccessTypeWrite)
	slog.Debug("upload",
		"path", path.String(),
		"size", pfs.FormatSize(uint64(len(data))),
		"content_type", form.File.Header.Get("Content-Type"),
		"overwrite", form.Overwrite,
	)
	if err := h.store.Write(ctx.Request.Context(), path, data, form.Overwrite, &stats); err != nil {
		api.AbortWithStoreError(ctx, err)
		return
	}

	ctx.String(http.StatusOK, msgUploaded)
}

func readUpload(form UploadForm) ([]byte, error) {
	f, err := form.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// Delete removes every listed file in order, stopping at the first failure.
func (h *FilesHandler) Delete(ctx *gin.Context) {
	var paths []pfs.Path
	if err := ctx.ShouldBindJSON(&paths); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("failed to bind json: %w", err))
		return
	}

	for _, path := range paths {
		accesslog.Track(ctx, path.String(), accesslog.AccessTypeDelete)
		if err := h.store.DeleteFile(ctx.Request.Context(), path); err != nil {
			api.AbortWithStoreError(ctx, err)
			return
		}
	}

	ctx.String(http.StatusOK, msgDeleted)
}

// Download returns the file content as an attachment named after the path's basename.
func (h *FilesHandler) Download(ctx *gin.Context) {
	var path pfs.Path
	if err := ctx.ShouldBindJSON(&path); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("failed to bind json: %w", err))
		return
	}

	accesslog.Track(ctx, path.String(), accesslog.AccessTypeRead)
	data, err := h.store.ReadFile(ctx.Request.Context(), path)
	if err != nil {
		api.AbortWithStoreError(ctx, err)
		return
	}

	name, ok := path.Basename()
	if !ok {
		name = defaultDownloadName
	}
	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	ctx.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}
