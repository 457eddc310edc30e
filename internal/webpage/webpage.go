// Package webpage fetches remote pages and reduces them to readable text for the pet to learn from.
package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"tamagotchi/internal/pet"
)

// DefaultMaxBytes caps how much of a response body is read.
const DefaultMaxBytes = 2 << 20

// FetchError is returned for any failure to fetch or read a page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher downloads pages over HTTP.
type Fetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewFetcher returns a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: DefaultMaxBytes,
	}
}

// Fetch downloads rawURL and extracts its readable content.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (pet.Page, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		if err == nil {
			err = fmt.Errorf("unsupported URL %q", rawURL)
		}
		return pet.Page{}, &FetchError{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return pet.Page{}, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return pet.Page{}, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pet.Page{}, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	page, err := Parse(io.LimitReader(resp.Body, limit), u.String())
	if err != nil {
		return pet.Page{}, &FetchError{URL: rawURL, Err: err}
	}
	return page, nil
}

// skipped elements never contribute text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Nav:      true,
	atom.Footer:   true,
	atom.Header:   true,
	atom.Noscript: true,
	atom.Template: true,
}

// Parse reduces an HTML document to its title, meta description and body text.
func Parse(r io.Reader, pageURL string) (pet.Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return pet.Page{}, fmt.Errorf("parsing html: %w", err)
	}

	page := pet.Page{URL: pageURL}
	var text strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if page.Title == "" {
					page.Title = collapse(nodeText(n))
				}
				return
			case atom.Meta:
				if strings.EqualFold(attr(n, "name"), "description") && page.Description == "" {
					page.Description = collapse(attr(n, "content"))
				}
			}
			if skipped[n.DataAtom] {
				return
			}
		}
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
			text.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	page.Text = collapse(text.String())
	if page.Title == "" {
		page.Title = titleFromURL(pageURL)
	}
	return page, nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleFromURL falls back to the last path segment.
func titleFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "Web Page"
	}
	seg := path.Base(strings.TrimSuffix(u.Path, "/"))
	if seg == "" || seg == "." || seg == "/" {
		return "Web Page"
	}
	if unescaped, err := url.PathUnescape(seg); err == nil {
		seg = unescaped
	}
	return seg
}
