package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

var pdfMagic = []byte("%PDF")

// PDFPrinter converts an HTML document to PDF bytes
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ChromePrinter prints through a headless Chrome started per document
type ChromePrinter struct {
	execPath string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewChromePrinter creates a printer. An empty execPath lets chromedp find
// the browser; a non-positive timeout uses the default render timeout.
func NewChromePrinter(execPath string, timeout time.Duration, logger *slog.Logger) *ChromePrinter {
	if timeout <= 0 {
		timeout = config.DefaultRenderTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChromePrinter{
		execPath: execPath,
		timeout:  timeout,
		logger:   logger.With(slog.String("component", "chrome_printer")),
	}
}

// PrintPDF loads html into a blank page and prints it with backgrounds
func (p *ChromePrinter) PrintPDF(ctx context.Context, html []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	if p.execPath != "" {
		opts = append(opts, chromedp.ExecPath(p.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	taskCtx, cancel := context.WithTimeout(browserCtx, p.timeout)
	defer cancel()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print failed: %w", err)
	}

	p.logger.DebugContext(ctx, "Printed PDF",
		slog.Int("html_bytes", len(html)),
		slog.Int("pdf_bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)))
	return pdf, nil
}

// PDFRenderer prints the HTML report
type PDFRenderer struct {
	html    *HTMLRenderer
	printer PDFPrinter
}

// NewPDFRenderer creates a PDF renderer over the HTML renderer
func NewPDFRenderer(html *HTMLRenderer, printer PDFPrinter) *PDFRenderer {
	return &PDFRenderer{html: html, printer: printer}
}

func (r *PDFRenderer) Format() domain.ReportFormat { return domain.ReportFormatPDF }

func (r *PDFRenderer) Render(ctx context.Context, a *domain.SalesAnalysis) ([]byte, error) {
	doc, err := r.html.Render(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("html stage: %w", err)
	}

	pdf, err := r.printer.PrintPDF(ctx, doc)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(pdf, pdfMagic) {
		return nil, errors.New("printer returned data that is not a PDF document")
	}
	return pdf, nil
}
