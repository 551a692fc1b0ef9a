package resume

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRaster returns a blank bitmap of a fixed size and records the
// document it was asked to capture.
type fakeRaster struct {
	width, height int
	html          []byte
	selector      string
	err           error
}

func (f *fakeRaster) Rasterize(ctx context.Context, html []byte, selector string) ([]byte, error) {
	f.html = html
	f.selector = selector
	if f.err != nil {
		return nil, f.err
	}

	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for x := 0; x < f.width; x++ {
		img.Set(x, 0, color.RGBA{R: 37, G: 99, B: 235, A: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newExporter(t *testing.T, raster Rasterizer) *Exporter {
	t.Helper()
	renderer, err := NewRenderer()
	require.NoError(t, err)
	return NewExporter(renderer, raster)
}

const mmToPt = 72 / 25.4

// mediaBox reads the size of the first page in points, following the
// page tree when the page inherits it.
func mediaBox(t *testing.T, b []byte) (width, height float64, pages int) {
	t.Helper()

	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)

	box := r.Page(1).V.Key("MediaBox")
	if box.IsNull() {
		box = r.Trailer().Key("Root").Key("Pages").Key("MediaBox")
	}
	require.Equal(t, 4, box.Len())

	return box.Index(2).Float64() - box.Index(0).Float64(),
		box.Index(3).Float64() - box.Index(1).Float64(),
		r.NumPage()
}

func TestExportA4(t *testing.T) {
	raster := &fakeRaster{width: 1588, height: 2246}
	exp := newExporter(t, raster)

	r := sample()
	r.FirstName, r.LastName = "Jean", "Dupont"

	doc, err := exp.Export(context.Background(), r, Classic, PageA4)
	require.NoError(t, err)

	assert.Equal(t, "CV_Jean_Dupont.pdf", doc.Filename)
	assert.Equal(t, RootSelector, raster.selector)
	assert.Contains(t, string(raster.html), `class="cv template2"`)

	w, h, pages := mediaBox(t, doc.PDF)
	assert.Equal(t, 1, pages)
	assert.InDelta(t, 210*mmToPt, w, 0.05)
	assert.InDelta(t, 297*mmToPt, h, 0.05)
}

func TestExportFitSizesPageToImage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "tall", width: 800, height: 2400},
		{name: "short", width: 1600, height: 900},
		{name: "square", width: 500, height: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := newExporter(t, &fakeRaster{width: tt.width, height: tt.height})

			doc, err := exp.Export(context.Background(), sample(), Modern, PageFit)
			require.NoError(t, err)

			w, h, _ := mediaBox(t, doc.PDF)
			wantHeight := float64(tt.height) * 210 / float64(tt.width)

			assert.InDelta(t, 210*mmToPt, w, 0.05)
			assert.InDelta(t, wantHeight*mmToPt, h, 0.05)
			assert.InDelta(t, float64(tt.height)/float64(tt.width), h/w, 0.001)
		})
	}
}

func TestExportDefaultsToA4(t *testing.T) {
	exp := newExporter(t, &fakeRaster{width: 400, height: 100})

	doc, err := exp.Export(context.Background(), sample(), "", "")
	require.NoError(t, err)

	_, h, _ := mediaBox(t, doc.PDF)
	assert.InDelta(t, 297*mmToPt, h, 0.05)
}

func TestExportRasterFailure(t *testing.T) {
	boom := errors.New("browser crashed")
	exp := newExporter(t, &fakeRaster{err: boom})

	_, err := exp.Export(context.Background(), sample(), Modern, PageA4)
	assert.ErrorIs(t, err, boom)
}

func TestAssembleRejectsGarbage(t *testing.T) {
	_, err := assemble([]byte("not a png"), PageA4)
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		first, last string
		want        string
	}{
		{first: "Jean", last: "Dupont", want: "CV_Jean_Dupont.pdf"},
		{first: "Marie Anne", last: "Le Gall", want: "CV_Marie_Anne_Le_Gall.pdf"},
		{first: "a/b", last: `c"d`, want: "CV_ab_cd.pdf"},
		{first: "", last: "", want: "CV__.pdf"},
	}

	for _, tt := range tests {
		got := Filename(Resume{FirstName: tt.first, LastName: tt.last})
		assert.Equal(t, tt.want, got)
	}
}
