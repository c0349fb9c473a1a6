package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/alexramsey92/ai-web-design-workbench/internal/logger"
	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length for a plain HTTP
// fetch to count as rendered.
const MinContentLength = 500

// ShouldUseBrowser reports whether extracted text is thin enough that the
// page is probably rendered client side.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a page in headless Chrome and returns the rendered HTML.
// Requires Chrome or Chromium on the host.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, log *logger.Logger) (string, error) {
	if err := ValidateURL(url); err != nil {
		return "", err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log = log.With("url", url)
	log.Debug("starting headless browser")

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// give client-side frameworks a moment to hydrate
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	log.With("bytes", len(html)).Debug("rendered page")
	return html, nil
}

// PageOptions configures Page.
type PageOptions struct {
	Fetch *Options
	// Browser forces headless rendering.
	Browser bool
	// BrowserFallback renders in a browser when the HTTP body is too thin.
	BrowserFallback bool
	BrowserTimeout  time.Duration
	Log             *logger.Logger
}

// Page fetches a page for scoring. The returned Result carries both the
// markup and its main text.
func Page(ctx context.Context, url string, opts PageOptions) (*Result, error) {
	log := opts.Log.With("url", url)

	if opts.Browser {
		return rendered(ctx, url, opts, log)
	}

	result, err := URL(ctx, url, opts.Fetch)
	if err != nil {
		return result, err
	}

	text, err := ExtractMainText(result.HTML, DefaultTextSelectors(), LandingPageNoise()...)
	if err != nil {
		return result, &Error{URL: url, Message: "failed to extract text", Cause: err}
	}
	result.Text = text

	if opts.BrowserFallback && ShouldUseBrowser(text) {
		log.With("chars", len(text)).Info("page text is thin, retrying with headless browser")
		browserResult, berr := rendered(ctx, url, opts, log)
		if berr != nil {
			log.Error(berr, "browser fallback failed, keeping HTTP result")
			return result, nil
		}
		return browserResult, nil
	}

	return result, nil
}

func rendered(ctx context.Context, url string, opts PageOptions, log *logger.Logger) (*Result, error) {
	html, err := WithBrowser(ctx, url, opts.BrowserTimeout, log)
	if err != nil {
		return nil, err
	}
	text, err := ExtractMainText(html, DefaultTextSelectors(), LandingPageNoise()...)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to extract text", Cause: err}
	}
	return &Result{
		URL:         url,
		HTML:        html,
		Text:        text,
		ContentType: "text/html",
		StatusCode:  200,
		Rendered:    true,
	}, nil
}
