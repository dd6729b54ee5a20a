// Package printing renders report HTML to PDF through a headless Chrome
// instance driven over the DevTools protocol.
package printing

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/towerledger/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const defaultChromeTimeout = 30 * time.Second

// A4 paper in inches
const (
	paperWidthInch  = 8.27
	paperHeightInch = 11.69
)

// PDFRenderer converts an HTML document into PDF bytes.
type PDFRenderer interface {
	Render(ctx context.Context, html, title string) ([]byte, error)
}

// ChromedpRenderer renders HTML to PDF using Chrome DevTools Protocol
type ChromedpRenderer struct {
	timeout     time.Duration
	marginInch  float64
	landscape   bool
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// ChromedpOption is a functional option for configuring ChromedpRenderer
type ChromedpOption func(*ChromedpRenderer)

// WithLogger sets a custom logger for ChromedpRenderer
func WithLogger(logger *zap.Logger) ChromedpOption {
	return func(r *ChromedpRenderer) {
		r.logger = logger
	}
}

// NewChromedpRenderer creates a new chromedp-based PDF renderer
func NewChromedpRenderer(cfg config.PrintingConfig, opts ...ChromedpOption) (*ChromedpRenderer, error) {
	renderer := &ChromedpRenderer{
		timeout:    cfg.Timeout,
		marginInch: cfg.MarginInch,
		landscape:  cfg.Landscape,
		logger:     zap.NewNop(),
	}
	if renderer.timeout == 0 {
		renderer.timeout = defaultChromeTimeout
	}

	for _, opt := range opts {
		opt(renderer)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
		chromedp.Flag("no-sandbox", true),
	)
	if cfg.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.ChromePath))
	}

	renderer.allocCtx, renderer.allocCancel = chromedp.NewExecAllocator(context.Background(), allocOpts...)

	return renderer, nil
}

// Render converts HTML content to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, html, title string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("html content is empty")
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	document := r.buildCompleteHTML(html, title)

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, document).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInch).
				WithPaperHeight(paperHeightInch).
				WithMarginTop(r.marginInch).
				WithMarginRight(r.marginInch).
				WithMarginBottom(r.marginInch).
				WithMarginLeft(r.marginInch).
				WithLandscape(r.landscape).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.timeout, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}

	if len(pdfData) == 0 {
		return nil, fmt.Errorf("generated pdf is empty")
	}

	r.logger.Info("PDF rendered successfully",
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(start)))

	return pdfData, nil
}

// buildCompleteHTML wraps a fragment in a full document when needed
func (r *ChromedpRenderer) buildCompleteHTML(html, title string) string {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return html
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head>")
	buf.WriteString("<meta charset=\"UTF-8\">")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">")
	if title != "" {
		buf.WriteString("<title>")
		buf.WriteString(title)
		buf.WriteString("</title>")
	}
	buf.WriteString("</head><body>")
	buf.WriteString(html)
	buf.WriteString("</body></html>")

	return buf.String()
}

// Close releases resources held by the renderer
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// Ensure ChromedpRenderer implements PDFRenderer
var _ PDFRenderer = (*ChromedpRenderer)(nil)
