package handler

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pskill9/PreclinicalResearch/fragment"
	"github.com/pskill9/PreclinicalResearch/pkg/logger"
)

// PageHandler serves the site. HTML pages get their header and footer
// fragments spliced in; everything else is served as a plain file.
type PageHandler struct {
	site   fs.FS
	loader *fragment.Loader
}

func NewPageHandler(site fs.FS, loader *fragment.Loader) *PageHandler {
	return &PageHandler{site: site, loader: loader}
}

// Serve handles GET and HEAD requests for site files.
func (h *PageHandler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	urlPath := c.Request.URL.Path
	if strings.HasSuffix(urlPath, "/") {
		urlPath += "index.html"
	}
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if !fs.ValidPath(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	info, err := fs.Stat(h.site, name)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if path.Ext(name) != ".html" {
		c.FileFromFS(name, http.FS(h.site))
		return
	}

	h.servePage(c, name, urlPath)
}

func (h *PageHandler) servePage(c *gin.Context, name, urlPath string) {
	ctx := logger.WithPage(c.Request.Context(), urlPath)

	f, err := h.site.Open(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := h.loader.ComposeHTML(ctx, f, &buf, urlPath); err != nil {
		var fetchErr *fragment.FetchError
		if !errors.As(err, &fetchErr) {
			c.Error(err)
			logger.Error(ctx, "failed to compose page", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
			return
		}
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
