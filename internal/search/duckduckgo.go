// Package search looks up reference material about slide titles on the web:
// a DuckDuckGo HTML search, page fetchers that reduce pages to plain text,
// and a caching Service that joins both into one bounded text block.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"slidegen/internal/logging"

	"golang.org/x/net/html"
)

// DefaultEndpoint is the DuckDuckGo HTML interface.
const DefaultEndpoint = "https://html.duckduckgo.com/html/"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Result is a single search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Query describes one search.
type Query struct {
	Text   string
	Region string // DuckDuckGo region code such as "wt-wt" or "ru-ru"
	Count  int
}

// Searcher runs web searches.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Result, error)
}

// DuckDuckGo searches through the keyless HTML endpoint.
type DuckDuckGo struct {
	endpoint string
	client   *http.Client
}

// NewDuckDuckGo creates a searcher. An empty endpoint uses DefaultEndpoint and
// a nil client uses http.DefaultClient.
func NewDuckDuckGo(endpoint string, client *http.Client) *DuckDuckGo {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &DuckDuckGo{endpoint: endpoint, client: client}
}

// Search returns up to q.Count results from the past year.
func (d *DuckDuckGo) Search(ctx context.Context, q Query) ([]Result, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, fmt.Errorf("query is required")
	}
	count := q.Count
	if count <= 0 {
		count = 5
	}

	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("df", "y")
	if q.Region != "" {
		params.Set("kl", q.Region)
	}
	searchURL := d.endpoint + "?" + params.Encode()
	logging.SearchDebug("Searching: %s", searchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	return parseResults(string(body), count)
}

// parseResults extracts hits from the result page. Each hit is a div whose
// class contains "result" with a "result__a" link and an optional
// "result__snippet".
func parseResults(page string, limit int) ([]Result, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page: %w", err)
	}

	var results []Result
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") {
			if r := extractResult(n); r.URL != "" && r.Title != "" {
				results = append(results, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

func extractResult(n *html.Node) Result {
	var r Result
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result__a"):
				r.URL = attr(n, "href")
				r.Title = nodeText(n)
			case hasClass(n, "result__snippet"):
				r.Snippet = nodeText(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	r.URL = unwrapRedirect(r.URL)
	return r
}

// unwrapRedirect turns "//duckduckgo.com/l/?uddg=<target>&..." into the target.
func unwrapRedirect(link string) string {
	u, err := url.Parse(link)
	if err != nil || !strings.HasSuffix(u.Host, "duckduckgo.com") || u.Path != "/l/" {
		return link
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return link
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
