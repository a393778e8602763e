package explorer

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/vauradkar/letso/internal/pfs"
	"github.com/vauradkar/letso/internal/server/accesslog"
	"github.com/vauradkar/letso/internal/server/handlers/api"
)

const explorerRoot = "/explorer"

//go:embed index.html.tmpl
var indexOfTmpl string

//go:embed not_found.html.tmpl
var notFoundOfTmpl string

// ExplorerHandler renders a read-only "Index of" view of the store.
type ExplorerHandler struct {
	store    *pfs.Store
	tplIndex *template.Template
	tpl404   *template.Template
}

// New creates a new Explorer instance
func New(store *pfs.Store) *ExplorerHandler {
	funcMap := template.FuncMap{
		"humanizeSize": pfs.FormatSize,
	}

	tplIndex := template.Must(template.New("index").Funcs(funcMap).Parse(indexOfTmpl))
	tpl404 := template.Must(template.New("notfound").Funcs(funcMap).Parse(notFoundOfTmpl))

	return &ExplorerHandler{
		store:    store,
		tplIndex: tplIndex,
		tpl404:   tpl404,
	}
}

func (e *ExplorerHandler) Handler(c *gin.Context) {
	raw := strings.Trim(c.Param("filepath"), "/")
	path, err := pfs.ParsePath(filepath.FromSlash(raw))
	if err != nil {
		e.serve404(c, raw)
		return
	}

	item, err := e.store.Lookup(c.Request.Context(), path)
	if err != nil {
		api.AbortWithStoreError(c, err)
		return
	}
	if item.Stats == nil {
		e.serve404(c, raw)
		return
	}

	if item.Stats.IsDirectory {
		accesslog.Track(c, path.String(), accesslog.AccessTypeList)
		e.serveDir(c, path)
	} else {
		accesslog.Track(c, path.String(), accesslog.AccessTypeRead)
		e.serveFile(c, path)
	}
}

// Serve the "Index Of" page
func (e *ExplorerHandler) serveDir(c *gin.Context, path pfs.Path) {
	dir, err := e.store.Browse(c.Request.Context(), path)
	if err != nil {
		api.AbortWithStoreError(c, err)
		return
	}

	data := indexData{Path: "/"}
	if !path.IsRoot() {
		data.Path = "/" + path.String() + "/"
		parent, _ := path.Parent()
		data.Parent = explorerRoot + "/" + parent.String()
	}
	for _, item := range dir.Items {
		if item.Stats.IsDirectory {
			data.Folders = append(data.Folders, item)
		} else {
			data.Files = append(data.Files, item)
		}
	}

	// Generate an HTML response
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := e.tplIndex.Execute(c.Writer, data); err != nil {
		api.AbortWithError(c, http.StatusInternalServerError, api.CodeInternalError, fmt.Errorf("failed to execute template: %w", err))
	}
}

func (e *ExplorerHandler) serveFile(c *gin.Context, path pfs.Path) {
	data, err := e.store.ReadFile(c.Request.Context(), path)
	if errors.Is(err, pfs.ErrInvalidArgument) {
		// removed between lookup and read
		e.serve404(c, path.String())
		return
	} else if err != nil {
		api.AbortWithStoreError(c, err)
		return
	}

	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}

func (e *ExplorerHandler) serve404(c *gin.Context, key string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusNotFound)
	// headers are already sent, a failed render can only be logged
	if err := e.tpl404.Execute(c.Writer, map[string]any{"Key": key}); err != nil {
		slog.Error("Failed to execute 404 template", "error", err, "key", key)
	}
}
