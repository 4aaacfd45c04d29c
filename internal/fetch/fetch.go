// Package fetch retrieves job postings by URL and reduces the page to the
// plain text the analysis pipeline expects. Postings on JavaScript-heavy
// boards often render client-side; when the extracted text is suspiciously
// short the package can fall back to a headless browser.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 30 * time.Second

const defaultUserAgent = "Mozilla/5.0 (compatible; JobAssessor/1.0)"

// minPostingLength is the extracted-text length below which a page is
// assumed to be an SPA shell rather than the posting itself.
const minPostingLength = 500

// Error reports a failed posting fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Options configures posting retrieval.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // allow the headless-browser fallback for SPA pages
	Verbose    bool
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: defaultUserAgent,
	}
}

// Posting retrieves a job posting URL and returns its text content. A page
// whose extracted text is shorter than minPostingLength is re-fetched
// through the headless browser when opts.UseBrowser is set.
func Posting(ctx context.Context, rawURL string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	html, err := HTML(ctx, rawURL, opts)
	if err != nil {
		return "", err
	}

	text, err := ExtractText(html)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to extract posting text", Cause: err}
	}

	if len(strings.TrimSpace(text)) >= minPostingLength || !opts.UseBrowser {
		return text, nil
	}

	rendered, err := renderWithBrowser(ctx, rawURL, opts.Timeout, opts.Verbose)
	if err != nil {
		// Keep whatever the plain fetch produced.
		return text, nil
	}
	renderedText, err := ExtractText(rendered)
	if err != nil || len(strings.TrimSpace(renderedText)) < len(strings.TrimSpace(text)) {
		return text, nil
	}
	return renderedText, nil
}

// HTML performs a plain HTTP GET and returns the response body.
func HTML(ctx context.Context, rawURL string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// postingSelectors are tried in order against the document; the first match
// wins. Job boards disagree on markup, so the list ends with generic
// containers.
var postingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// ExtractText reduces a posting page to plain text: navigation and script
// noise removed, the best-matching content container flattened, whitespace
// normalized one line per block.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()

	var content *goquery.Selection
	for _, selector := range postingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	lines := strings.Split(content.Text(), "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n"), nil
}
