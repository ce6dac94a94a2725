package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"slidegen/internal/logging"

	"golang.org/x/net/html"
)

// Fetcher downloads a page and reduces it to plain text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches pages with a plain HTTP GET.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher; a nil client uses http.DefaultClient.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s returned HTTP %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/plain") {
		return collapse(string(body)), nil
	}
	text, err := PageText(string(body))
	if err != nil {
		return "", err
	}
	logging.SearchDebug("Fetched %s: %d chars", url, len(text))
	return text, nil
}

// skipped elements never contribute text.
var skipped = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true, "svg": true,
	"nav": true, "footer": true, "header": true, "head": true,
}

// PageText returns the visible text of an HTML document as one line with
// whitespace runs collapsed.
func PageText(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		case html.ElementNode:
			if skipped[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return collapse(sb.String()), nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
