package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const defaultChromeTimeout = time.Minute

// ChromedpConfig configures the headless Chrome renderer.
type ChromedpConfig struct {
	DefaultTimeout time.Duration
	// RemoteURL points at an already running Chrome's DevTools endpoint.
	// Empty means a local headless browser is launched on first use.
	RemoteURL string
	// NoSandbox is needed when Chrome runs as root inside a container
	NoSandbox bool
	Logger    *zap.Logger
}

// ChromedpRenderer prints label HTML through the Chrome DevTools Protocol.
// One browser allocator is shared; every Render opens its own tab.
type ChromedpRenderer struct {
	timeout  time.Duration
	logger   *zap.Logger
	browser  context.Context
	shutdown context.CancelFunc
}

var _ PDFRenderer = (*ChromedpRenderer)(nil)

// NewChromedpRenderer prepares the allocator. Chrome itself starts lazily.
func NewChromedpRenderer(cfg *ChromedpConfig) (*ChromedpRenderer, error) {
	if cfg == nil {
		cfg = &ChromedpConfig{}
	}
	r := &ChromedpRenderer{timeout: cfg.DefaultTimeout, logger: cfg.Logger}
	if r.timeout <= 0 {
		r.timeout = defaultChromeTimeout
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	if cfg.RemoteURL != "" {
		r.browser, r.shutdown = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r, nil
	}
	flags := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		flags = append(flags, chromedp.NoSandbox)
	}
	r.browser, r.shutdown = chromedp.NewExecAllocator(context.Background(), flags...)
	return r, nil
}

// Render prints req into a PDF, bounded by the request or default timeout.
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tab, closeTab := chromedp.NewContext(r.browser, chromedp.WithLogf(func(format string, args ...any) {
		r.logger.Debug(fmt.Sprintf(format, args...))
	}))
	defer closeTab()
	// the tab lives on the allocator context, so tie it to the caller's deadline
	defer context.AfterFunc(ctx, closeTab)()

	started := time.Now()
	var pdf []byte
	err := chromedp.Run(tab,
		chromedp.Navigate("about:blank"),
		loadDocument(wrapDocument(req)),
		printPDF(pageGeometry(req), &pdf),
	)
	if err != nil {
		return nil, r.classify(ctx, timeout, err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "Chrome returned an empty PDF", nil)
	}

	result := &RenderResult{PDFData: pdf, PageCount: countPages(pdf), RenderDuration: time.Since(started)}
	r.logger.Debug("Label PDF printed",
		zap.Int("bytes", len(pdf)),
		zap.Int("pages", result.PageCount),
		zap.Duration("took", result.RenderDuration),
	)
	return result, nil
}

func (r *ChromedpRenderer) classify(ctx context.Context, timeout time.Duration, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return NewRenderError(ErrCodeRenderTimeout, fmt.Sprintf("label rendering exceeded %v", timeout), err)
	case errors.Is(ctx.Err(), context.Canceled):
		return NewRenderError(ErrCodeRenderTimeout, "label rendering cancelled", err)
	}
	r.logger.Error("Chrome failed to print labels", zap.Error(err))
	return NewRenderError(ErrCodeRenderFailed, "Chrome failed to print labels", err)
}

// Close stops the browser allocator
func (r *ChromedpRenderer) Close() error {
	if r.shutdown != nil {
		r.shutdown()
	}
	return nil
}

func loadDocument(doc string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
	})
}

func printPDF(g geometry, out *[]byte) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(g.width).
			WithPaperHeight(g.height).
			WithMarginTop(g.margin).
			WithMarginBottom(g.margin).
			WithMarginLeft(g.margin).
			WithMarginRight(g.margin).
			Do(ctx)
		*out = data
		return err
	})
}

// geometry is page size and margin in inches, the unit PrintToPDF expects
type geometry struct {
	width, height, margin float64
}

func pageGeometry(req *RenderRequest) geometry {
	w, h := req.PaperSize.Dimensions()
	return geometry{
		width:  mmToInches(float64(w)),
		height: mmToInches(float64(h)),
		margin: mmToInches(float64(req.MarginMM)),
	}
}

func mmToInches(mm float64) float64 { return mm / 25.4 }

// wrapDocument turns an HTML fragment into a UTF-8 document. Input that
// already has a doctype or <html> root passes through.
func wrapDocument(req *RenderRequest) string {
	head := strings.ToLower(req.HTML)
	if strings.Contains(head, "<!doctype") || strings.Contains(head, "<html") {
		return req.HTML
	}
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8">`)
	if req.Title != "" {
		fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(req.Title))
	}
	b.WriteString("</head><body>")
	b.WriteString(req.HTML)
	b.WriteString("</body></html>")
	return b.String()
}

// countPages counts /Type /Page objects, never reporting fewer than one.
func countPages(pdf []byte) int {
	n := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	return max(n, 1)
}
