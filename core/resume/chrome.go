package resume

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Rasterizer captures the node matched by selector in an HTML document
// as a PNG.
type Rasterizer interface {
	Rasterize(ctx context.Context, html []byte, selector string) ([]byte, error)
}

const (
	viewportWidth  = 794
	viewportHeight = 1123
	captureScale   = 2
)

// Chrome rasterizes through a headless browser. With a remote URL it
// attaches to a running instance, otherwise it launches a local one per
// capture.
type Chrome struct {
	RemoteURL string
	Timeout   time.Duration
}

func NewChrome(remoteURL string, timeout time.Duration) *Chrome {
	return &Chrome{RemoteURL: remoteURL, Timeout: timeout}
}

func (c *Chrome) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.RemoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, c.RemoteURL)
	}
	return chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
}

func (c *Chrome) Rasterize(ctx context.Context, html []byte, selector string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	allocCtx, cancelAlloc := c.allocator(ctx)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var shot []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.ScreenshotScale(selector, captureScale, &shot, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("capturing %s: %w", selector, err)
	}

	return shot, nil
}
