package resume

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"

	"github.com/go-pdf/fpdf"
)

// PageMode chooses how the rasterized page maps onto PDF pages.
type PageMode string

const (
	// PageA4 places the image at the top of an A4 sheet. Content taller
	// than the sheet is clipped.
	PageA4 PageMode = "a4"

	// PageFit sizes a single page to the image.
	PageFit PageMode = "fit"
)

func (m PageMode) Valid() bool {
	return m == PageA4 || m == PageFit
}

const (
	pageWidthMM  = 210.0
	a4HeightMM   = 297.0
	imageAliasCV = "cv"
)

var errEmptyImage = errors.New("empty image")

// assemble lays a PNG out at full page width, keeping its aspect ratio.
func assemble(png []byte, mode PageMode) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("decoding rasterized page: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, errEmptyImage
	}

	imageHeight := float64(cfg.Height) * pageWidthMM / float64(cfg.Width)

	size := fpdf.SizeType{Wd: pageWidthMM, Ht: a4HeightMM}
	if mode == PageFit {
		size.Ht = imageHeight
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           size,
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(imageAliasCV, opt, bytes.NewReader(png))
	doc.ImageOptions(imageAliasCV, 0, 0, pageWidthMM, imageHeight, false, opt, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
