package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"

	"github.com/pskill9/PreclinicalResearch/fragment"
)

const testPage = `<!DOCTYPE html><html><head><title>Contact</title></head><body>
<div id="header-placeholder"><p>Anubis Pre-Clinical</p></div>
<main>Contact us</main>
<div id="footer-placeholder"></div>
</body></html>`

func testSite() fstest.MapFS {
	return fstest.MapFS{
		"index.html":   {Data: []byte(testPage)},
		"contact.html": {Data: []byte(testPage)},
		"components/header.html": {Data: []byte(`<nav><ul class="nav-links">` +
			`<li><a href="index.html">Home</a></li>` +
			`<li><a href="contact.html">Contact</a></li></ul></nav>`)},
		"components/footer.html": {Data: []byte(`<footer>&copy; Anubis</footer>`)},
		"css/site.css":           {Data: []byte(`body { margin: 0 }`)},
	}
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) ([]byte, error) {
	return nil, errors.New("offline")
}

func newPageRouter(site fstest.MapFS, fetcher fragment.Fetcher) *gin.Engine {
	loader := fragment.NewLoader(fetcher, "/components/header.html", "/components/footer.html")
	h := NewPageHandler(site, loader)

	router := gin.New()
	router.NoRoute(h.Serve)
	return router
}

func getPage(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPageHandlerComposesPage(t *testing.T) {
	site := testSite()
	router := newPageRouter(site, fragment.FSFetcher{FS: site})

	w := getPage(router, http.MethodGet, "/contact.html")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected text/html, got %s", ct)
	}

	body := w.Body.String()
	if strings.Contains(body, "header-placeholder") || strings.Contains(body, "footer-placeholder") {
		t.Error("Expected placeholders to be replaced")
	}
	if !strings.Contains(body, `<a href="contact.html" class="active">Contact</a>`) {
		t.Errorf("Expected contact link to be active:\n%s", body)
	}
	if !strings.Contains(body, "© Anubis") {
		t.Errorf("Expected footer to be injected:\n%s", body)
	}
}

func TestPageHandlerDirectoryIndex(t *testing.T) {
	site := testSite()
	router := newPageRouter(site, fragment.FSFetcher{FS: site})

	w := getPage(router, http.MethodGet, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `<a href="index.html" class="active">Home</a>`) {
		t.Errorf("Expected home link to be active:\n%s", w.Body.String())
	}
}

func TestPageHandlerFragmentFailureKeepsFallback(t *testing.T) {
	router := newPageRouter(testSite(), failingFetcher{})

	w := getPage(router, http.MethodGet, "/contact.html")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `id="header-placeholder"`) || !strings.Contains(body, "<p>Anubis Pre-Clinical</p>") {
		t.Errorf("Expected placeholder fallback markup to be kept:\n%s", body)
	}
}

func TestPageHandlerServesAssets(t *testing.T) {
	site := testSite()
	router := newPageRouter(site, fragment.FSFetcher{FS: site})

	w := getPage(router, http.MethodGet, "/css/site.css")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "body { margin: 0 }" {
		t.Errorf("Unexpected asset body %q", w.Body.String())
	}
}

func TestPageHandlerNotFound(t *testing.T) {
	site := testSite()
	router := newPageRouter(site, fragment.FSFetcher{FS: site})

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"missing page", http.MethodGet, "/about.html"},
		{"directory without index", http.MethodGet, "/css"},
		{"traversal", http.MethodGet, "/../secret.html"},
		{"post", http.MethodPost, "/contact.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getPage(router, tt.method, tt.path)
			if w.Code != http.StatusNotFound {
				t.Errorf("Expected status 404, got %d", w.Code)
			}
		})
	}
}
