package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/cristianadrielbraun/beam/internal/design"
	"github.com/cristianadrielbraun/beam/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	data []byte
	err  error
}

func (s stubSource) RawData(render.Format) ([]byte, error) { return s.data, s.err }

func renderedPreview(t *testing.T) *render.Preview {
	t.Helper()
	p := render.NewPreview()
	require.NoError(t, p.Update("https://example.com", design.Default(), nil))
	return p
}

func TestExportPlain(t *testing.T) {
	p := renderedPreview(t)
	raw, err := p.RawData(render.PNG)
	require.NoError(t, err)

	f, err := New().Export(context.Background(), p, render.PNG, false)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "qr-code.png", f.Name)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, raw, f.Data)
}

func TestExportWatermarked(t *testing.T) {
	p := renderedPreview(t)

	f, err := New().Export(context.Background(), p, render.PNG, true)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "qr-code-beam.png", f.Name)

	cfg, err := png.DecodeConfig(bytes.NewReader(f.Data))
	require.NoError(t, err)
	assert.Equal(t, 300+2*DefaultPadding, cfg.Width)
	assert.Equal(t, 300+2*DefaultPadding+DefaultFooterHeight, cfg.Height)
}

func TestExportWatermarkedJPEGWithCustomLayout(t *testing.T) {
	p := renderedPreview(t)

	f, err := New(WithPadding(10), WithFooterHeight(50)).Export(context.Background(), p, render.JPEG, true)
	require.NoError(t, err)
	assert.Equal(t, "qr-code-beam.jpeg", f.Name)
	assert.Equal(t, "image/jpeg", f.ContentType)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(f.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Point{X: 320, Y: 370}, image.Point{X: cfg.Width, Y: cfg.Height})
}

func TestExportFooterIsWhiteBehindText(t *testing.T) {
	p := renderedPreview(t)
	f, err := New().Export(context.Background(), p, render.PNG, true)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(f.Data))
	require.NoError(t, err)
	r, g, b, _ := img.At(img.Bounds().Dx()-2, img.Bounds().Dy()-2).RGBA()
	assert.Equal(t, []uint32{0xff, 0xff, 0xff}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestExportNothingRendered(t *testing.T) {
	f, err := New().Export(context.Background(), render.NewPreview(), render.PNG, true)
	assert.NoError(t, err)
	assert.Nil(t, f)
}

func TestExportErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := New().Export(context.Background(), stubSource{err: boom}, render.PNG, false)
	assert.ErrorIs(t, err, boom)

	_, err = New().Export(context.Background(), stubSource{data: []byte("not an image")}, render.PNG, true)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := renderedPreview(t)
	_, err = New().Export(ctx, p, render.PNG, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "qr-code.jpeg", FileName(render.JPEG, false))
	assert.Equal(t, "qr-code-beam.png", FileName(render.PNG, true))
}
