// Package fetch retrieves the textual content of a profile URL mentioned in
// a chat turn. Pages are rendered with headless Chrome when one is
// available, since profile sites are script-heavy; a plain HTTP fetch with
// tag stripping is the fallback.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
)

const userAgent = "vibe-resume/1.0"

// Client retrieves page text. The zero value works; ChromePath points at a
// specific Chrome binary when it is not on PATH.
type Client struct {
	ChromePath string
	Timeout    time.Duration

	// disableChrome forces the plain HTTP path; used by tests.
	disableChrome bool
}

func New(chromePath string) *Client {
	return &Client{ChromePath: chromePath, Timeout: 30 * time.Second}
}

// FindURL returns the first http(s) URL token in the turn text, or "".
func FindURL(s string) string {
	for _, field := range strings.Fields(s) {
		trimmed := strings.Trim(field, ".,;:!?()[]<>\"'")
		if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
			continue
		}
		if u, err := url.Parse(trimmed); err == nil && u.Host != "" {
			return trimmed
		}
	}
	return ""
}

// PageText fetches the rendered body text of a page. Failures are returned
// to the caller, which treats the URL as additional context and degrades to
// proceeding without it.
func (c *Client) PageText(ctx context.Context, rawURL string) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !c.disableChrome {
		if text, err := c.renderedText(ctx, rawURL); err == nil {
			return text, nil
		}
	}
	return c.plainText(ctx, rawURL)
}

// renderedText loads the page in headless Chrome and reads the body text.
func (c *Client) renderedText(ctx context.Context, rawURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	path := c.ChromePath
	if path == "" {
		path = os.Getenv("CHROME_PATH")
	}
	if path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	var text string
	err := chromedp.Run(cctx,
		emulation.SetUserAgentOverride(userAgent),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text("body", &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", errors.Wrapf(err, "chrome render failed: %s", rawURL)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("rendered page is empty")
	}
	return text, nil
}

func (c *Client) plainText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch: %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("fetch returned status %d: %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response body")
	}

	text := stripHTML(string(body))
	if text == "" {
		return "", errors.New("page has no textual content")
	}
	return text, nil
}

// stripHTML drops script/style elements and all tags, keeping text nodes.
func stripHTML(html string) string {
	text := dropElement(html, "script")
	text = dropElement(text, "style")

	var b strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func dropElement(html, tag string) string {
	openTag, closeTag := "<"+tag, "</"+tag+">"
	for {
		start := strings.Index(html, openTag)
		if start == -1 {
			return html
		}
		end := strings.Index(html[start:], closeTag)
		if end == -1 {
			return html
		}
		html = html[:start] + html[start+end+len(closeTag):]
	}
}
