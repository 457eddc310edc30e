package webpage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const article = `<!doctype html>
<html>
<head>
  <title>  Gopher   Facts </title>
  <meta name="description" content="Everything about gophers">
  <style>body { color: red; }</style>
  <script>var tracking = true;</script>
</head>
<body>
  <header>Site header</header>
  <nav><a href="/">Home</a></nav>
  <main>
    <h1>Gophers</h1>
    <p>Gophers   dig
       tunnels.</p>
  </main>
  <footer>Copyright</footer>
</body>
</html>`

func TestParse(t *testing.T) {
	page, err := Parse(strings.NewReader(article), "https://example.com/animals/gophers")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if page.Title != "Gopher Facts" {
		t.Errorf("Expected collapsed title, got %q", page.Title)
	}
	if page.Description != "Everything about gophers" {
		t.Errorf("Unexpected description %q", page.Description)
	}
	if page.Text != "Gophers Gophers dig tunnels." {
		t.Errorf("Unexpected text %q", page.Text)
	}
	for _, banned := range []string{"tracking", "color", "Site header", "Home", "Copyright"} {
		if strings.Contains(page.Text, banned) {
			t.Errorf("Text should not contain %q", banned)
		}
	}
}

func TestParseTitleFallback(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/wiki/Go%20language", "Go language"},
		{"https://example.com/docs/", "docs"},
		{"https://example.com/", "Web Page"},
		{"https://example.com", "Web Page"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			page, err := Parse(strings.NewReader("<p>hello</p>"), tt.url)
			if err != nil {
				t.Fatal(err)
			}
			if page.Title != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, page.Title)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(article))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		page, err := f.Fetch(ctx, srv.URL+"/ok")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if page.Title != "Gopher Facts" || page.URL != srv.URL+"/ok" {
			t.Errorf("Unexpected page %+v", page)
		}
	})

	t.Run("Status error", func(t *testing.T) {
		_, err := f.Fetch(ctx, srv.URL+"/missing")
		var fe *FetchError
		if !errors.As(err, &fe) || fe.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404 FetchError, got %v", err)
		}
	})

	t.Run("Bad URL", func(t *testing.T) {
		var fe *FetchError
		if _, err := f.Fetch(ctx, "ftp://example.com/file"); !errors.As(err, &fe) {
			t.Errorf("Expected FetchError, got %v", err)
		}
	})

	t.Run("Cancelled context keeps the cause", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := f.Fetch(cancelled, srv.URL+"/ok")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled cause, got %v", err)
		}
	})
}
