package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/abetterautomation/viewidget/pkg/colors"
)

var (
	caseOutline = colors.MustResolve("gray60")
	shadowColor = colors.MustResolve("gray5")
)

// Bezel is the raised circular case the round instruments sit in: a
// white disc shifted up for the lit edge, a dark disc shifted down for
// the drop shadow, and the face on top with the case ring as its
// stroke.
type Bezel struct {
	Highlight *canvas.Circle
	Shadow    *canvas.Circle
	Face      *canvas.Circle
}

// CaseGeom describes the laid-out case for the widget geometry built
// on top of it. Diameter is the face circle path diameter, so the
// original construction size corresponds to Diameter+CaseWidth. Shadow
// and Light carry the relief offsets for parts that repeat the 3-D
// treatment, such as the dial pin.
type CaseGeom struct {
	Middle    fyne.Position
	Diameter  float32
	CaseWidth float32
	Shadow    float32
	Light     float32
}

func (g CaseGeom) Radius() float32 { return g.Diameter * OneHalf }

func NewBezel(face color.Color) *Bezel {
	return &Bezel{
		Highlight: &canvas.Circle{FillColor: color.White, StrokeColor: color.White},
		Shadow:    &canvas.Circle{FillColor: shadowColor, StrokeColor: shadowColor},
		Face:      &canvas.Circle{FillColor: face, StrokeColor: caseOutline},
	}
}

// Objects returns the circles back to front.
func (b *Bezel) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{b.Highlight, b.Shadow, b.Face}
}

// Layout fits the case into space. caseRatio is the fraction of the
// widget diameter taken by the case ring.
func (b *Bezel) Layout(space fyne.Size, caseRatio float32) CaseGeom {
	d := fyne.Min(space.Width, space.Height)
	shadow := Relief(d)
	light := float32(math.Ceil(float64(shadow) * OneHalf))
	cw := d * caseRatio
	face := d - 2*cw - shadow
	if face < 0 {
		face = 0
	}

	middle := fyne.NewPos(space.Width*OneHalf, space.Height*OneHalf)
	size := fyne.NewSquareSize(face)
	topleft := fyne.NewPos(middle.X-face*OneHalf, middle.Y-face*OneHalf)

	b.Highlight.StrokeWidth = cw
	b.Shadow.StrokeWidth = cw
	b.Face.StrokeWidth = cw
	b.Highlight.Move(topleft.SubtractXY(0, light))
	b.Highlight.Resize(size)
	b.Shadow.Move(topleft.AddXY(0, shadow))
	b.Shadow.Resize(size)
	b.Face.Move(topleft)
	b.Face.Resize(size)

	return CaseGeom{Middle: middle, Diameter: face, CaseWidth: cw, Shadow: shadow, Light: light}
}

// Relief is the drop-shadow offset for an instrument of size d. It
// grows with the logarithm of the size so large instruments keep a
// subtle shadow.
func Relief(d float32) float32 {
	if d < 1 {
		return 0
	}
	s := math.Floor(math.Log10(float64(2 * d)))
	if s < 0 {
		return 0
	}
	return float32(s)
}
