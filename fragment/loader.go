// Package fragment splices shared header and footer fragments into page
// placeholders and marks the navigation link of the current page.
package fragment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pskill9/PreclinicalResearch/pkg/logger"
)

const (
	HeaderPlaceholder = "#header-placeholder"
	FooterPlaceholder = "#footer-placeholder"

	navLinksClass = "nav-links"
	activeClass   = "active"
	defaultPage   = "index.html"
)

// ErrNoPlaceholder is returned when a page lacks the requested placeholder.
var ErrNoPlaceholder = errors.New("placeholder not found")

type Loader struct {
	fetcher   Fetcher
	headerURL string
	footerURL string
}

func NewLoader(fetcher Fetcher, headerURL, footerURL string) *Loader {
	return &Loader{
		fetcher:   fetcher,
		headerURL: headerURL,
		footerURL: footerURL,
	}
}

// LoadFragment fetches url and replaces the element matched by the
// "#id" selector with the fetched markup. On a fetch failure the
// placeholder stays in place and a *FetchError is returned.
func (l *Loader) LoadFragment(ctx context.Context, doc *html.Node, selector, url string) error {
	placeholder := FindByID(doc, strings.TrimPrefix(selector, "#"))
	if placeholder == nil {
		return fmt.Errorf("%w: %s", ErrNoPlaceholder, selector)
	}

	data, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}

	parent := placeholder.Parent
	if parent == nil {
		return fmt.Errorf("%w: %s has no parent", ErrNoPlaceholder, selector)
	}
	scope := parent
	if scope.Type != html.ElementNode {
		scope = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}

	nodes, err := html.ParseFragment(bytes.NewReader(data), scope)
	if err != nil {
		return fmt.Errorf("parse fragment %s: %w", url, err)
	}

	for _, n := range nodes {
		parent.InsertBefore(n, placeholder)
	}
	parent.RemoveChild(placeholder)
	return nil
}

// Compose loads the header, marks the active nav link for pagePath and
// loads the footer. Pages without placeholders are left untouched; fetch
// failures are logged and returned joined after both fragments were tried.
func (l *Loader) Compose(ctx context.Context, doc *html.Node, pagePath string) error {
	var errs []error

	err := l.LoadFragment(ctx, doc, HeaderPlaceholder, l.headerURL)
	switch {
	case err == nil:
		MarkActiveNav(doc, pagePath)
	case errors.Is(err, ErrNoPlaceholder):
	default:
		logger.Warn(ctx, "header fragment not loaded", "url", l.headerURL, "error", err)
		errs = append(errs, err)
	}

	err = l.LoadFragment(ctx, doc, FooterPlaceholder, l.footerURL)
	if err != nil && !errors.Is(err, ErrNoPlaceholder) {
		logger.Warn(ctx, "footer fragment not loaded", "url", l.footerURL, "error", err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ComposeHTML parses a page from r, composes it and renders it to w. The
// page is rendered even when fragments failed; that error is returned
// after rendering.
func (l *Loader) ComposeHTML(ctx context.Context, r io.Reader, w io.Writer, pagePath string) error {
	doc, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}

	composeErr := l.Compose(ctx, doc, pagePath)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return composeErr
}

// CurrentPage returns the file name of a request path, defaulting to
// index.html for directory paths.
func CurrentPage(pagePath string) string {
	if i := strings.LastIndex(pagePath, "/"); i >= 0 {
		pagePath = pagePath[i+1:]
	}
	if pagePath == "" {
		return defaultPage
	}
	return pagePath
}

// MarkActiveNav adds the active class to the first navigation link whose
// href equals the current page name. It reports whether a link matched.
func MarkActiveNav(doc *html.Node, pagePath string) bool {
	page := CurrentPage(pagePath)

	var marked bool
	walk(doc, func(n *html.Node) bool {
		if marked {
			return false
		}
		if !hasClass(n, navLinksClass) {
			return true
		}
		walk(n, func(a *html.Node) bool {
			if marked {
				return false
			}
			if isElement(a, atom.A) && attr(a, "href") == page {
				addClass(a, activeClass)
				marked = true
				return false
			}
			return true
		})
		return false
	})
	return marked
}

// FindByID returns the first element with the given id.
func FindByID(doc *html.Node, id string) *html.Node {
	var found *html.Node
	walk(doc, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// walk visits n and its descendants depth-first in document order. fn
// returns false to skip a node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n.Type == html.ElementNode && n.DataAtom == a
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			n.Attr[i].Val = strings.TrimSpace(a.Val + " " + class)
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}
