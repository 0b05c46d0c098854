package chart

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLabels() []string {
	labels := make([]string, 96)
	for i := range labels {
		labels[i] = "0500"
	}
	return labels
}

func TestPNGRenderer_Render(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	r := NewPNGRenderer(path, 640, 400)

	require.NoError(t, r.Render(Build(bundleOf("Bank", "Moorgate"), testLabels(), "Difference in commutes between Bank and Moorgate")))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestPNGRenderer_DrawsSeries(t *testing.T) {
	r := NewPNGRenderer("", 640, 400)

	img, err := r.Draw(Build(bundleOf("Bank"), testLabels(), "Commutes shown for Bank"))
	require.NoError(t, err)

	// The corner is outside every element and stays white.
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.RGBAAt(1, 1))

	reddish := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R > c.G+40 && c.R > c.B+40 {
				reddish++
			}
		}
	}
	assert.Greater(t, reddish, 100)
}

func TestPNGRenderer_TooSmall(t *testing.T) {
	_, err := NewPNGRenderer("", 100, 100).Draw(Chart{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too small")
}

func TestNiceMax(t *testing.T) {
	assert.Equal(t, 1, niceMax(0))
	assert.Equal(t, 1, niceMax(1))
	assert.Equal(t, 200, niceMax(190))
	assert.Equal(t, 500, niceMax(201))
	assert.Equal(t, 1000, niceMax(501))
	assert.Equal(t, 1000, niceMax(1000))
}
