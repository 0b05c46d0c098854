package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var namedColors = map[string]color.RGBA{
	"red":    {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"blue":   {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"orange": {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	"green":  {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"black":  {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"purple": {R: 0x80, G: 0x00, B: 0x80, A: 0xff},
	"grey":   {R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff},
}

const (
	marginLeft   = 80
	marginRight  = 180
	marginTop    = 50
	marginBottom = 70
	labelEvery   = 4 // one x label per hour of quarter-hour slices
)

// PNGRenderer writes charts as PNG images.
type PNGRenderer struct {
	Path   string
	Width  int
	Height int
}

// NewPNGRenderer creates a renderer writing width x height images to path.
func NewPNGRenderer(path string, width, height int) *PNGRenderer {
	return &PNGRenderer{Path: path, Width: width, Height: height}
}

// Render draws c and writes it to r.Path.
func (r *PNGRenderer) Render(c Chart) error {
	img, err := r.Draw(c)
	if err != nil {
		return err
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode chart: %w", err)
	}
	return f.Close()
}

// Draw rasterizes c without writing it anywhere.
func (r *PNGRenderer) Draw(c Chart) (*image.RGBA, error) {
	plotW := r.Width - marginLeft - marginRight
	plotH := r.Height - marginTop - marginBottom
	if plotW <= 0 || plotH <= 0 {
		return nil, fmt.Errorf("render chart: %dx%d is too small", r.Width, r.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	p := plot{
		img:  img,
		area: image.Rect(marginLeft, marginTop, marginLeft+plotW, marginTop+plotH),
		n:    pointCount(c),
		ymax: niceMax(maxValue(c)),
	}

	p.grid(c.XLabels)
	if c.Fill != nil && c.Fill.Lower < len(c.Series) && c.Fill.Upper < len(c.Series) {
		p.fill(c.Series[c.Fill.Lower].Values, c.Series[c.Fill.Upper].Values, colorOf(c.Fill.Color), c.Fill.Alpha)
	}
	for _, s := range c.Series {
		p.line(s.Values, colorOf(s.Color), s.Alpha)
	}

	text(img, c.Title, (r.Width-textWidth(c.Title))/2, marginTop/2, color.Black)
	text(img, c.XAxisTitle, marginLeft+(plotW-textWidth(c.XAxisTitle))/2, r.Height-15, color.Black)
	text(img, c.YAxisTitle, 5, marginTop-10, color.Black)
	legend(img, c.Series, p.area.Max.X+15, marginTop)

	return img, nil
}

type plot struct {
	img  *image.RGBA
	area image.Rectangle
	n    int
	ymax int
}

func (p plot) x(i int) float64 {
	if p.n <= 1 {
		return float64(p.area.Min.X)
	}
	return float64(p.area.Min.X) + float64(i)*float64(p.area.Dx())/float64(p.n-1)
}

func (p plot) y(v int) float64 {
	return float64(p.area.Max.Y) - float64(v)*float64(p.area.Dy())/float64(p.ymax)
}

func (p plot) grid(labels []string) {
	grey := namedColors["grey"]
	for i := 0; i <= 4; i++ {
		v := p.ymax * i / 4
		y := int(math.Round(p.y(v)))
		hline(p.img, p.area.Min.X, p.area.Max.X, y, grey)
		tick := fmt.Sprint(v)
		text(p.img, tick, p.area.Min.X-textWidth(tick)-6, y+4, color.Black)
	}
	hline(p.img, p.area.Min.X, p.area.Max.X, p.area.Max.Y, color.Black)
	vline(p.img, p.area.Min.X, p.area.Min.Y, p.area.Max.Y, color.Black)

	for i := 0; i < len(labels) && i < p.n; i += labelEvery {
		x := int(math.Round(p.x(i)))
		vline(p.img, x, p.area.Max.Y, p.area.Max.Y+4, color.Black)
		text(p.img, labels[i], x-textWidth(labels[i])/2, p.area.Max.Y+18, color.Black)
	}
}

func (p plot) line(values []int, c color.RGBA, alpha float64) {
	for i := 1; i < len(values); i++ {
		segment(p.img, p.x(i-1), p.y(values[i-1]), p.x(i), p.y(values[i]), c, alpha)
	}
}

// fill shades each pixel column between the two interpolated series.
func (p plot) fill(a, b []int, c color.RGBA, alpha float64) {
	n := min(len(a), len(b))
	if n < 2 {
		return
	}
	for px := int(p.x(0)); px <= int(p.x(n-1)); px++ {
		pos := (float64(px) - p.x(0)) / (p.x(n-1) - p.x(0)) * float64(n-1)
		i := min(int(pos), n-2)
		t := pos - float64(i)
		ya := lerp(p.y(a[i]), p.y(a[i+1]), t)
		yb := lerp(p.y(b[i]), p.y(b[i+1]), t)
		lo, hi := math.Min(ya, yb), math.Max(ya, yb)
		for py := int(math.Ceil(lo)); py <= int(hi); py++ {
			blend(p.img, px, py, c, alpha)
		}
	}
}

func legend(img *image.RGBA, series []Series, x, y int) {
	for i, s := range series {
		row := y + i*20
		c := colorOf(s.Color)
		for dx := 0; dx < 20; dx++ {
			for dy := -1; dy <= 1; dy++ {
				blend(img, x+dx, row+dy, c, s.Alpha)
			}
		}
		text(img, s.Label, x+26, row+4, color.Black)
	}
}

func segment(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA, alpha float64) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		px := int(math.Round(lerp(x0, x1, t)))
		py := int(math.Round(lerp(y0, y1, t)))
		blend(img, px, py, c, alpha)
		blend(img, px, py+1, c, alpha)
	}
}

func hline(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

func blend(img *image.RGBA, x, y int, c color.RGBA, alpha float64) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	dst := img.RGBAAt(x, y)
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-alpha) + float64(s)*alpha))
	}
	img.SetRGBA(x, y, color.RGBA{R: mix(dst.R, c.R), G: mix(dst.G, c.G), B: mix(dst.B, c.B), A: 0xff})
}

func text(img *image.RGBA, s string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func colorOf(name string) color.RGBA {
	if c, ok := namedColors[name]; ok {
		return c
	}
	return namedColors["black"]
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func pointCount(c Chart) int {
	n := len(c.XLabels)
	for _, s := range c.Series {
		n = max(n, len(s.Values))
	}
	return n
}

func maxValue(c Chart) int {
	m := 0
	for _, s := range c.Series {
		for _, v := range s.Values {
			m = max(m, v)
		}
	}
	return m
}

// niceMax rounds v up to 1, 2 or 5 times a power of ten.
func niceMax(v int) int {
	if v <= 0 {
		return 1
	}
	mag := int(math.Pow(10, math.Floor(math.Log10(float64(v)))))
	for _, f := range []int{1, 2, 5, 10} {
		if f*mag >= v {
			return f * mag
		}
	}
	return 10 * mag
}
