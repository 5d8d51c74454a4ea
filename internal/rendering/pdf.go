package rendering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/pathify/pathify-backend/internal/types"
)

// A4 paper size in inches for PrintToPDF.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// DefaultTimeout bounds a single PDF render.
const DefaultTimeout = 30 * time.Second

// RoadmapPDF renders a roadmap into PDF bytes using headless Chrome.
// Requires Chrome/Chromium to be installed on the system; callers should
// treat an error as the renderer being unavailable.
func RoadmapPDF(ctx context.Context, rm *types.Roadmap, language string) ([]byte, error) {
	html, err := RenderHTML(rm, language)
	if err != nil {
		return nil, err
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, DefaultTimeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	return pdf, nil
}

// AttachmentFilename returns the download filename for a career's roadmap.
func AttachmentFilename(career string) string {
	if career == "" {
		career = "Career Roadmap"
	}
	return strings.ReplaceAll(career, " ", "_") + "_roadmap.pdf"
}
