// Package digit renders a single seven segment display figure. The
// segments are filled polygons rasterized at whatever resolution the
// canvas allocates, so the digit stays crisp at any scale.
package digit

import (
	"errors"
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/fogleman/gg"

	"github.com/abetterautomation/viewidget/pkg/colors"
	"github.com/abetterautomation/viewidget/pkg/widgets"
)

var ErrSize = errors.New("digit size must be greater than zero")

// Blank as a value turns every segment off.
const Blank = -1

// Config holds the construction options. Start from DefaultConfig and
// override fields.
type Config struct {
	Size       float32 // digit height; the width is two thirds of it
	Foreground string  // lit segment color
	Background string  // panel color, also drawn as the segment outline
	Value      int     // initial hex value, or Blank; out of range shows the full eight
}

// DefaultConfig returns the stock 100px red on black digit showing 0.
func DefaultConfig() Config {
	return Config{
		Size:       100,
		Foreground: "red",
		Background: "black",
	}
}

type Digit struct {
	widget.BaseWidget

	cfg  Config
	fg   colors.RGB
	bg   colors.RGB
	mask uint8

	raster  *canvas.Raster
	minsize fyne.Size
}

// New validates cfg and builds the digit.
func New(cfg Config) (*Digit, error) {
	if cfg.Size <= 0 {
		return nil, ErrSize
	}

	d := &Digit{cfg: cfg, mask: AllSegments}
	d.ExtendBaseWidget(d)

	var err error
	if d.fg, err = colors.Resolve(cfg.Foreground); err != nil {
		return nil, err
	}
	if d.bg, err = colors.Resolve(cfg.Background); err != nil {
		return nil, err
	}

	d.minsize = fyne.NewSize(cfg.Size*2*widgets.OneThird, cfg.Size)
	d.raster = canvas.NewRaster(d.draw)
	// an out of range construction value keeps the full figure eight
	d.SetValue(cfg.Value)

	return d, nil
}

// SetValue shows a hex value 0 through 15, or blanks the display for
// Blank. Other values leave the display unchanged.
func (d *Digit) SetValue(n int) {
	if n == Blank {
		d.SetMask(0)
		return
	}
	if m, ok := MaskFor(n); ok {
		d.SetMask(m)
	}
}

// SetRune shows a hex digit rune, accepting 0-9, a-f and A-F. Other
// runes leave the display unchanged.
func (d *Digit) SetRune(r rune) {
	if m, ok := MaskForRune(r); ok {
		d.SetMask(m)
	}
}

// Clear blanks all segments.
func (d *Digit) Clear() {
	d.SetMask(0)
}

// SetMask lights exactly the given segments. Repeats are a no-op.
func (d *Digit) SetMask(mask uint8) {
	mask &= AllSegments
	if mask == d.mask {
		return
	}
	d.mask = mask
	canvas.Refresh(d.raster)
}

// Mask returns the currently lit segments.
func (d *Digit) Mask() uint8 {
	return d.mask
}

// SetColors swaps the segment or panel color. An empty string keeps
// the current color.
func (d *Digit) SetColors(foreground, background string) error {
	if foreground != "" {
		c, err := colors.Resolve(foreground)
		if err != nil {
			return err
		}
		d.fg = c
	}
	if background != "" {
		c, err := colors.Resolve(background)
		if err != nil {
			return err
		}
		d.bg = c
	}
	canvas.Refresh(d.raster)
	return nil
}

// draw rasterizes the digit into a pw by ph pixel panel, centered and
// scaled to keep the two thirds aspect.
func (d *Digit) draw(pw, ph int) image.Image {
	dc := gg.NewContext(pw, ph)
	dc.SetColor(d.bg)
	dc.Clear()
	if pw == 0 || ph == 0 {
		return dc.Image()
	}

	s := math.Min(float64(ph), float64(pw)*1.5)
	xoff := (float64(pw) - s*2/3) / 2
	yoff := (float64(ph) - s) / 2
	lw := math.Max(math.Floor(s/175), 1)

	for i, seg := range segmentPoints(s) {
		if d.mask&(1<<i) == 0 {
			continue
		}
		dc.NewSubPath()
		for j, pt := range seg {
			if j == 0 {
				dc.MoveTo(xoff+pt[0], yoff+pt[1])
			} else {
				dc.LineTo(xoff+pt[0], yoff+pt[1])
			}
		}
		dc.ClosePath()
		dc.SetColor(d.fg)
		dc.FillPreserve()
		// outlining in the panel color separates adjacent segments
		dc.SetColor(d.bg)
		dc.SetLineWidth(lw)
		dc.Stroke()
	}
	return dc.Image()
}

// segmentPoints returns the polygon corners of the seven segments for
// a digit of height s, in segment bit order.
func segmentPoints(s float64) [7][][2]float64 {
	x1 := 0.09 * s
	x2 := 0.57 * s
	y1 := 0.09 * s
	y2 := 0.89 * s
	y3 := 0.49 * s
	t := 0.1 * s  // segment thickness
	h := 0.05 * s // half thickness, the pointed ends

	return [7][][2]float64{
		{ // top
			{x1, y1}, {x2, y1}, {x2 - t, y1 + t}, {x1 + t, y1 + t},
		},
		{ // bottom
			{x1, y2}, {x2, y2}, {x2 - t, y2 - t}, {x1 + t, y2 - t},
		},
		{ // top left
			{x1, y1}, {x1, y3 - h}, {x1 + h, y3}, {x1 + t, y3 - h}, {x1 + t, y1 + t},
		},
		{ // top right
			{x2, y1}, {x2, y3 - h}, {x2 - h, y3}, {x2 - t, y3 - h}, {x2 - t, y1 + t},
		},
		{ // bottom left
			{x1, y2}, {x1, y3 + h}, {x1 + h, y3}, {x1 + t, y3 + h}, {x1 + t, y2 - t},
		},
		{ // bottom right
			{x2, y2}, {x2, y3 + h}, {x2 - h, y3}, {x2 - t, y3 + h}, {x2 - t, y2 - t},
		},
		{ // middle
			{x1 + h, y3}, {x1 + t, y3 - h}, {x2 - t, y3 - h},
			{x2 - h, y3}, {x2 - t, y3 + h}, {x1 + t, y3 + h},
		},
	}
}

func (d *Digit) CreateRenderer() fyne.WidgetRenderer {
	return &digitRenderer{Digit: d}
}

type digitRenderer struct {
	*Digit
}

func (r *digitRenderer) Layout(space fyne.Size) {
	r.raster.Resize(space)
}

func (r *digitRenderer) MinSize() fyne.Size {
	return r.minsize
}

func (r *digitRenderer) Refresh() {
	canvas.Refresh(r.raster)
}

func (r *digitRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *digitRenderer) Destroy() {}
