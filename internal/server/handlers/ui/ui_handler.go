package ui

import (
	"net/http"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/vauradkar/letso/internal/utils"
)

const indexFile = "index.html"

// UIHandler serves a static single page app. Unknown paths get index.html so
// client side routes survive a reload.
type UIHandler struct {
	dir string
}

func New(dir string) *UIHandler {
	return &UIHandler{dir: dir}
}

func (h *UIHandler) Handler(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusMethodNotAllowed)
		return
	}

	// cleaning a rooted path drops every ".." element
	name := path.Clean("/" + c.Request.URL.Path)
	full := filepath.Join(h.dir, filepath.FromSlash(name))
	if utils.FileExists(full) {
		c.File(full)
		return
	}

	c.File(filepath.Join(h.dir, indexFile))
}
