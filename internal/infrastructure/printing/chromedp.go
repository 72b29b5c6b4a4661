package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	certapp "github.com/institute/backend/internal/application/certification"
	"go.uber.org/zap"
)

const defaultChromeTimeout = 30 * time.Second

// ChromedpConfig configures the headless Chrome renderer
type ChromedpConfig struct {
	Timeout time.Duration
	// ExecPath points at the Chrome binary; empty lets chromedp find one
	ExecPath string
	// RemoteURL connects to an already running browser instead of launching one
	RemoteURL string
	// NoSandbox is required when running as root in containers
	NoSandbox bool
	// MaxParallel bounds concurrent renders; each one opens a browser tab
	MaxParallel int
	Page        PageSetup
	Logger      *zap.Logger
}

// ChromedpRenderer renders certificates to PDF with headless Chrome
type ChromedpRenderer struct {
	config      ChromedpConfig
	engine      *TemplateEngine
	logger      *zap.Logger
	slots       chan struct{}
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

var _ certapp.Renderer = (*ChromedpRenderer)(nil)

// NewChromedpRenderer creates a renderer. The browser starts lazily on the
// first render.
func NewChromedpRenderer(engine *TemplateEngine, cfg ChromedpConfig) (*ChromedpRenderer, error) {
	if engine == nil {
		return nil, errors.New("template engine is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChromeTimeout
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 1
	}
	if cfg.Page == (PageSetup{}) {
		cfg.Page = A4Landscape
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRenderer{
		config: cfg,
		engine: engine,
		logger: logger,
		slots:  make(chan struct{}, cfg.MaxParallel),
	}
	r.initAllocator()
	return r, nil
}

func (r *ChromedpRenderer) initAllocator() {
	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
		return
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if r.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.config.ExecPath))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Render fills the certificate template and prints it to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, doc certapp.Document) ([]byte, error) {
	html, err := r.engine.RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	result, err := r.RenderHTML(ctx, html)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Certificate rendered",
		zap.String("certificate_id", doc.CertificateID),
		zap.Int("bytes", len(result.PDFData)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))
	return result.PDFData, nil
}

// RenderHTML prints an HTML document to PDF
func (r *ChromedpRenderer) RenderHTML(ctx context.Context, html string) (*RenderResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	select {
	case r.slots <- struct{}{}:
		defer func() { <-r.slots }()
	case <-ctx.Done():
		return nil, NewRenderError(ErrCodeRenderTimeout, "waiting for a render slot", ctx.Err())
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	tabCtx, tabCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer tabCancel()
	// tie the tab to the caller's deadline
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	params := r.printParams()
	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", r.config.Timeout), err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	return &RenderResult{
		PDFData:        pdf,
		PageCount:      estimatePageCount(pdf),
		RenderDuration: time.Since(start),
	}, nil
}

func (r *ChromedpRenderer) printParams() *page.PrintToPDFParams {
	p := r.config.Page
	margin := mmToInches(p.MarginMM)
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(true).
		WithPaperWidth(mmToInches(p.WidthMM)).
		WithPaperHeight(mmToInches(p.HeightMM)).
		WithLandscape(p.Landscape).
		WithMarginTop(margin).
		WithMarginBottom(margin).
		WithMarginLeft(margin).
		WithMarginRight(margin)
}

// Close shuts the browser down
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// estimatePageCount counts page objects in the PDF body
func estimatePageCount(pdf []byte) int {
	n := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	if n < 1 {
		return 1
	}
	return n
}
