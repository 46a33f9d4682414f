package worksheet

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/gosimple/slug"

	"englisharcade/internal/models"
)

// imageLoadWait bounds how long PDF generation waits for remote
// worksheet images before printing whatever has loaded.
const imageLoadWait = 5 * time.Second

// A4 paper in inches.
const (
	a4Width   = 8.27
	a4Height  = 11.69
	pdfMargin = 0.5
)

// PDFGenerator renders worksheet print documents to PDF through a
// headless browser. The browser is launched on first use and shared
// across requests.
type PDFGenerator struct {
	mu      sync.Mutex
	browser *rod.Browser
}

// NewPDFGenerator creates a generator; no browser is launched until
// the first Generate call.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

func (g *PDFGenerator) ensureBrowser() (*rod.Browser, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.browser != nil {
		return g.browser, nil
	}
	url, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	g.browser = browser
	return g.browser, nil
}

// Close shuts down the headless browser if one was started.
func (g *PDFGenerator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.browser == nil {
		return nil
	}
	err := g.browser.Close()
	g.browser = nil
	return err
}

// PDFFilename derives the download filename from the worksheet title.
func PDFFilename(title string) string {
	name := slug.Make(title)
	if name == "" {
		name = "worksheet"
	}
	return name + ".pdf"
}

// Generate renders the worksheet body to a PDF. The body is wrapped in
// the same print document used by the print route, so PDF output and
// printed output always paginate identically.
func (g *PDFGenerator) Generate(ctx context.Context, body template.HTML, st models.Settings) ([]byte, error) {
	browser, err := g.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.SetDocumentContent(BuildPrintDocument(body, st)); err != nil {
		return nil, fmt.Errorf("set content: %w", err)
	}

	// Give remote images a bounded window to arrive; a slow CDN must
	// not block the download forever.
	if st.Layout.UsesImages() {
		waitPage := page.Timeout(imageLoadWait)
		if err := waitPage.WaitLoad(); err == nil {
			_ = waitPage.WaitIdle(imageLoadWait)
		}
	} else if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	width := a4Width
	height := a4Height
	margin := pdfMargin
	stream, err := page.PDF(&proto.PagePrintToPDF{
		Landscape:       st.Layout.Landscape(),
		PrintBackground: true,
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	defer stream.Close()

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return pdf, nil
}
