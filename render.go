package gpdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"
)

// Contents-page geometry, in PDF points. The table of contents is laid
// out at fixed offsets so that link rectangles can be computed without
// inspecting the rendered page.
const (
	tocPageWidthPt  = 595.0 // A4
	tocPageHeightPt = 842.0
	tocHeadingTopPt = 36.0
	tocRowsTopPt    = 96.0
	tocRowHeightPt  = 22.0
	tocLeftPt       = 48.0
	tocPageLinkPt   = 420.0 // left edge of the "page" hotspot
	tocSourceLinkPt = 478.0 // left edge of the "source" hotspot
	tocRightPt      = 556.0
)

// tocRowCapacity is how many entries fit on the contents page, keeping
// a bottom margin equal to the left one.
const tocRowCapacity = (int(tocPageHeightPt) - int(tocRowsTopPt) - int(tocLeftPt)) / int(tocRowHeightPt)

// RenderConfig controls how the contents page is rendered through
// headless Chrome.
type RenderConfig struct {
	// ChromePath is the Chrome or Chromium executable. Empty means the
	// standard locations are searched.
	ChromePath string

	// AutoDownload fetches a compatible Chromium build when no browser
	// is installed. The binary is cached under the user cache directory.
	AutoDownload bool

	// NoSandbox disables the Chrome sandbox, required when running as
	// root (e.g. inside containers).
	NoSandbox bool

	// Timeout bounds a single render. Zero means 30 seconds.
	Timeout time.Duration
}

// renderPage converts a standalone HTML document into a single-page PDF
// at fixed A4 geometry with no margins, so CSS point offsets map directly
// onto PDF coordinates.
func renderPage(ctx context.Context, html string, cfg RenderConfig) ([]byte, error) {
	execPath := cfg.ChromePath
	if execPath == "" && cfg.AutoDownload {
		p, err := downloadBrowser()
		if err != nil {
			return nil, err
		}
		execPath = p
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", "new"),
	)
	if execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(execPath))
	}
	if cfg.NoSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	f, err := os.CreateTemp("", "gpdf-toc-*.html")
	if err != nil {
		return nil, fmt.Errorf("gpdf: creating temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("gpdf: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("gpdf: closing temp file: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("gpdf: resolving path: %w", err)
	}

	var buf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+abs),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(tocPageWidthPt / 72).
				WithPaperHeight(tocPageHeightPt / 72).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithScale(1.0).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPageRanges("1").
				Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("gpdf: rendering contents page: %w", err)
	}
	return buf, nil
}

// downloadBrowser fetches a compatible Chromium binary if one is not
// already cached and returns the path to the executable.
func downloadBrowser() (string, error) {
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("gpdf: downloading browser: %w", err)
	}
	return path, nil
}
