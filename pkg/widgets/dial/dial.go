// Package dial renders a circular gauge: a raised case around a flat
// face, a graduated scale with numbered major ticks, a pivoting needle
// and an optional numeric readout under the pin.
package dial

import (
	"errors"
	"image/color"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/abetterautomation/viewidget/pkg/colors"
	"github.com/abetterautomation/viewidget/pkg/widgets"
)

var (
	ErrSize           = errors.New("dial size must be greater than zero")
	ErrCaseWidth      = errors.New("dial casewidth must be greater than or equal to zero")
	ErrStart          = errors.New("dial start angle must be smaller than +/-360 degrees")
	ErrExtent         = errors.New("dial extent angle must be smaller than or equal to +/-360 degrees")
	ErrEqualRange     = errors.New("dial min cannot be equal to the max")
	ErrMajorScale     = errors.New("dial majorscale must be greater than zero")
	ErrSemiMajorScale = errors.New("dial semimajorscale must be greater than or equal to zero")
	ErrMinorScale     = errors.New("dial minorscale must be greater than or equal to zero")
)

// Config holds the construction options. Start from DefaultConfig and
// override fields; the zero value of several fields (CaseWidth, Min,
// Bound) is meaningful, so defaults are spelled out rather than implied.
type Config struct {
	Size           float32 // outer face diameter, case included
	CaseWidth      float32 // case ring width, at most a tenth of Size
	Start          float64 // scale start angle, degrees CCW from east
	Extent         float64 // swept angle in degrees, sign sets direction
	Min            float64 // value at the start of the scale
	Max            float64 // value at the end of the scale
	MajorScale     float64 // step between numbered long ticks
	SemiMajorScale float64 // step between unnumbered long ticks, 0 disables
	MinorScale     float64 // step between short ticks, 0 disables
	Unit           string  // unit caption, a "deg" prefix renders as °
	Bound          bool    // pin the needle to the scale ends
	WithDisplay    bool    // numeric readout under the pivot
	RoundTo        int     // readout decimals, 0 or less rounds to integer
	Value          float64 // initial value, NaN starts at Min
}

// DefaultConfig returns the stock 300px temperature-style gauge:
// 270 degrees of clockwise scale from 60 to 220 starting at the
// lower left, bound needle and a one decimal readout.
func DefaultConfig() Config {
	return Config{
		Size:           300,
		CaseWidth:      15,
		Start:          225,
		Extent:         -270,
		Min:            60,
		Max:            220,
		MajorScale:     20,
		SemiMajorScale: 10,
		MinorScale:     2,
		Bound:          true,
		WithDisplay:    true,
		RoundTo:        1,
		Value:          math.NaN(),
	}
}

type tickKind uint8

const (
	tickMinor tickKind = iota
	tickSemiMajor
	tickMajor
)

type tick struct {
	line     *canvas.Line
	sin, cos float32
	length   float32 // fraction of the arc offset
	kind     tickKind
	value    float64
}

type scaleLabel struct {
	text     *canvas.Text
	sin, cos float32
}

type Dial struct {
	widget.BaseWidget

	cfg      Config
	warnings []widgets.Warning

	value      float64
	started    bool
	outOfRange bool
	countDir   float64
	end        float64 // Start + Extent

	bezel  *widgets.Bezel
	ticks  []tick
	labels []scaleLabel
	arc    []*canvas.Line

	display *canvas.Text
	unit    *canvas.Text

	needle       *canvas.Line
	pinHighlight *canvas.Circle
	pinShadow    *canvas.Circle
	pin          *canvas.Circle

	displayColors [2]color.Color // in range, out of range
	scaleColor    color.Color

	// precomputed scale arc directions, one entry per chord endpoint
	arcSin, arcCos []float32

	caseRatio float32
	minsize   fyne.Size

	// layout cache
	size      fyne.Size
	middle    fyne.Position
	radius    float32
	arcOffset float32

	buf []byte
}

// New validates cfg and builds the gauge. Validation failures return a
// sentinel error; recoverable oddities are corrected and recorded as
// warnings instead.
func New(cfg Config) (*Dial, error) {
	if cfg.Size <= 0 {
		return nil, ErrSize
	}
	if cfg.CaseWidth < 0 {
		return nil, ErrCaseWidth
	}
	if math.Abs(cfg.Start) >= 360 {
		return nil, ErrStart
	}
	if math.Abs(cfg.Extent) > 360 {
		return nil, ErrExtent
	}
	if cfg.MajorScale <= 0 {
		return nil, ErrMajorScale
	}
	if cfg.SemiMajorScale < 0 {
		return nil, ErrSemiMajorScale
	}
	if cfg.MinorScale < 0 {
		return nil, ErrMinorScale
	}
	if cfg.Min == cfg.Max {
		return nil, ErrEqualRange
	}

	d := &Dial{cfg: cfg, countDir: 1}
	d.ExtendBaseWidget(d)

	if cfg.Min > cfg.Max {
		d.warnings = widgets.Warn(d.warnings, "dial min is greater than the max, scale will count down")
		d.countDir = -1
	}
	if d.cfg.SemiMajorScale > 0 {
		if d.cfg.SemiMajorScale >= d.cfg.MajorScale {
			d.warnings = widgets.Warn(d.warnings, "dial semimajorscale must be smaller than the majorscale, skipping semimajor ticks")
			d.cfg.SemiMajorScale = 0
		} else if !isMultiple(d.cfg.MajorScale, d.cfg.SemiMajorScale) {
			d.warnings = widgets.Warn(d.warnings, "dial semimajorscale must be a factor of the majorscale, skipping semimajor ticks")
			d.cfg.SemiMajorScale = 0
		}
	}
	if d.cfg.CaseWidth > 0 && d.cfg.Size/d.cfg.CaseWidth < 10 {
		d.warnings = widgets.Warn(d.warnings, "dial casewidth must be less than or equal to 1/10 the size, shrinking the case")
		d.cfg.CaseWidth = d.cfg.Size * widgets.OneTenth
	}
	// a full circle has no end stops to pin the needle against
	if math.Abs(d.cfg.Extent) == 360 {
		d.cfg.Bound = false
	}
	d.end = d.cfg.Start + d.cfg.Extent
	d.cfg.Unit = strings.ReplaceAll(d.cfg.Unit, "deg", "°")

	d.caseRatio = d.cfg.CaseWidth / (d.cfg.Size + d.cfg.CaseWidth)
	native := d.cfg.Size + d.cfg.CaseWidth + widgets.Relief(d.cfg.Size)
	d.minsize = fyne.NewSquareSize(native)

	d.bezel = widgets.NewBezel(colors.White)
	d.displayColors = [2]color.Color{color.Black, colors.MustResolve("red")}
	d.scaleColor = color.Black

	d.buildScale()
	d.buildHands()

	d.value = d.cfg.Value
	if math.IsNaN(d.value) {
		d.value = d.cfg.Min
	}
	d.started = true
	d.refreshValue()

	return d, nil
}

// isMultiple reports whether a is an integer multiple of b, tolerating
// the rounding of fractional steps (0.3 is three steps of 0.1 even
// though math.Mod says otherwise).
func isMultiple(a, b float64) bool {
	r := math.Mod(a, b)
	if r > b/2 {
		r = b - r
	}
	return r < b*1e-6
}

// angleAt converts the n-th step of a tick interval to degrees.
func (d *Dial) angleAt(n int, scale float64) float64 {
	absdiff := math.Abs(d.cfg.Max - d.cfg.Min)
	return d.cfg.Start + float64(n)*d.cfg.Extent*scale/absdiff
}

func (d *Dial) buildScale() {
	absdiff := math.Abs(d.cfg.Max - d.cfg.Min)
	fullCircle := math.Abs(d.cfg.Extent) == 360

	addTicks := func(scale float64, length, width float32, kind tickKind) {
		if scale == 0 {
			return
		}
		count := int(absdiff/scale) + 1
		// a full circle would land the last major tick on the first
		if kind == tickMajor && fullCircle {
			count--
		}
		for n := 0; n < count; n++ {
			sin, cos := math.Sincos(d.angleAt(n, scale) * widgets.PiDiv180)
			d.ticks = append(d.ticks, tick{
				line:   &canvas.Line{StrokeColor: color.Black, StrokeWidth: width},
				sin:    float32(sin),
				cos:    float32(cos),
				length: length,
				kind:   kind,
				value:  d.cfg.Min + float64(n)*scale*d.countDir,
			})
		}
	}
	addTicks(d.cfg.MinorScale, widgets.OneFifth, 1, tickMinor)
	addTicks(d.cfg.SemiMajorScale, widgets.OneThird, 1, tickSemiMajor)
	addTicks(d.cfg.MajorScale, widgets.OneThird, 3, tickMajor)

	labelCount := int(absdiff/d.cfg.MajorScale) + 1
	if fullCircle {
		labelCount--
	}
	for n := 0; n < labelCount; n++ {
		value := d.cfg.Min + float64(n)*d.cfg.MajorScale*d.countDir
		sin, cos := math.Sincos(d.angleAt(n, d.cfg.MajorScale) * widgets.PiDiv180)
		d.labels = append(d.labels, scaleLabel{
			text: &canvas.Text{
				Text:      strconv.FormatFloat(value, 'f', -1, 64),
				Color:     color.Black,
				TextStyle: fyne.TextStyle{Bold: true},
			},
			sin: float32(sin),
			cos: float32(cos),
		})
	}

	// the scale arc is a polyline of 5 degree chords
	segs := int(math.Abs(d.cfg.Extent) / 5)
	if segs < 1 {
		segs = 1
	}
	d.arcSin = make([]float32, segs+1)
	d.arcCos = make([]float32, segs+1)
	for i := 0; i <= segs; i++ {
		deg := d.cfg.Start + d.cfg.Extent*float64(i)/float64(segs)
		sin, cos := math.Sincos(deg * widgets.PiDiv180)
		d.arcSin[i] = float32(sin)
		d.arcCos[i] = float32(cos)
	}
	d.arc = make([]*canvas.Line, segs)
	for i := range d.arc {
		d.arc[i] = &canvas.Line{StrokeColor: color.Black, StrokeWidth: 2}
	}

	if d.cfg.WithDisplay {
		d.display = &canvas.Text{
			Color:     color.Black,
			TextStyle: fyne.TextStyle{Bold: true},
			Alignment: fyne.TextAlignCenter,
		}
	}
	d.unit = &canvas.Text{
		Text:      d.cfg.Unit,
		Color:     color.Black,
		TextStyle: fyne.TextStyle{Bold: true},
	}
}

func (d *Dial) buildHands() {
	d.needle = &canvas.Line{StrokeColor: color.Black, StrokeWidth: 3}
	gray95 := colors.MustResolve("gray95")
	d.pinHighlight = &canvas.Circle{FillColor: gray95, StrokeColor: gray95}
	gray5 := colors.MustResolve("gray5")
	d.pinShadow = &canvas.Circle{FillColor: gray5, StrokeColor: gray5}
	d.pin = &canvas.Circle{
		FillColor:   colors.MustResolve("gray70"),
		StrokeColor: colors.MustResolve("#DDDDDD"),
		StrokeWidth: 1,
	}
}

// applyRadial lays a line along the direction given by sin/cos, from
// radial distance offset to offset+length measured from middle. Screen
// y grows downward, so positive angles run counterclockwise on screen.
func applyRadial(line *canvas.Line, middle fyne.Position, sin, cos, offset, length float32) {
	x1 := middle.X + offset*cos
	y1 := middle.Y - offset*sin
	line.Position1 = fyne.Position{X: x1, Y: y1}
	line.Position2 = fyne.Position{X: x1 + length*cos, Y: y1 - length*sin}
}

// refreshValue recomputes the needle direction and readout text for the
// current value. It does not trigger a repaint.
func (d *Dial) refreshValue() {
	angle := (d.value-d.cfg.Min)*(d.end-d.cfg.Start)/(d.cfg.Max-d.cfg.Min) + d.cfg.Start
	// only a bound gauge has end stops to run past; unbound and full
	// circle scales rotate freely and never flag
	d.outOfRange = false
	if d.cfg.Bound && (d.value < math.Min(d.cfg.Min, d.cfg.Max) || d.value > math.Max(d.cfg.Min, d.cfg.Max)) {
		d.outOfRange = true
		if (d.value < d.cfg.Min) == (d.countDir > 0) {
			angle = d.cfg.Start
		} else {
			angle = d.end
		}
	}

	sin, cos := math.Sincos(angle * widgets.PiDiv180)
	applyRadial(d.needle, d.middle, float32(sin), float32(cos), -d.arcOffset, 3.5*d.arcOffset)

	if d.display != nil {
		prec := d.cfg.RoundTo
		if prec < 0 {
			prec = 0
		}
		d.buf = strconv.AppendFloat(d.buf[:0], d.value, 'f', prec, 64)
		d.display.Text = string(d.buf)
		if d.outOfRange {
			d.display.Color = d.displayColors[1]
		} else {
			d.display.Color = d.displayColors[0]
		}
	}
}

// SetValue points the needle at value and updates the readout. On a
// bound gauge values past the scale ends pin the needle there and turn
// the readout red; unbound gauges rotate freely. Repeated values are a
// no-op.
func (d *Dial) SetValue(value float64) {
	if math.IsNaN(value) {
		return
	}
	if d.started && value == d.value {
		return
	}
	d.started = true
	d.value = value
	d.refreshValue()
	canvas.Refresh(d.needle)
	if d.display != nil {
		canvas.Refresh(d.display)
	}
}

// Value returns the most recently set value.
func (d *Dial) Value() float64 {
	return d.value
}

// OutOfRange reports whether a bound gauge's value lies outside
// Min..Max. Unbound gauges never report out of range.
func (d *Dial) OutOfRange() bool {
	return d.outOfRange
}

// Readout returns the current readout text, or "" when the gauge was
// built without a display.
func (d *Dial) Readout() string {
	if d.display == nil {
		return ""
	}
	return d.display.Text
}

// Warnings lists the corrections applied during construction.
func (d *Dial) Warnings() []widgets.Warning {
	return d.warnings
}

// Config returns the effective configuration after corrections.
func (d *Dial) Config() Config {
	return d.cfg
}

// SetFaceColor repaints the dial face behind the scale.
func (d *Dial) SetFaceColor(c color.Color) {
	d.bezel.Face.FillColor = c
	canvas.Refresh(d.bezel.Face)
}

// SetScaleColor repaints the ticks, numbering, scale arc and unit.
func (d *Dial) SetScaleColor(c color.Color) {
	d.scaleColor = c
	for i := range d.ticks {
		d.ticks[i].line.StrokeColor = c
	}
	for i := range d.labels {
		d.labels[i].text.Color = c
	}
	for _, seg := range d.arc {
		seg.StrokeColor = c
	}
	d.unit.Color = c
	d.Refresh()
}

// SetNeedleColor repaints the needle.
func (d *Dial) SetNeedleColor(c color.Color) {
	d.needle.StrokeColor = c
	canvas.Refresh(d.needle)
}

// SetRedline recolors and thickens the minor ticks between from and to,
// the usual way to mark a danger band on the scale.
func (d *Dial) SetRedline(from, to float64, c color.Color) {
	if from > to {
		from, to = to, from
	}
	for i := range d.ticks {
		t := &d.ticks[i]
		if t.kind != tickMinor || t.value < from || t.value > to {
			continue
		}
		t.line.StrokeColor = c
		t.line.StrokeWidth = 6
	}
	d.Refresh()
}

// ClearRedline returns every minor tick to the scale color and width.
func (d *Dial) ClearRedline() {
	for i := range d.ticks {
		t := &d.ticks[i]
		if t.kind != tickMinor {
			continue
		}
		t.line.StrokeColor = d.scaleColor
		t.line.StrokeWidth = 1
	}
	d.Refresh()
}

func (d *Dial) CreateRenderer() fyne.WidgetRenderer {
	return &dialRenderer{Dial: d}
}

type dialRenderer struct {
	*Dial
	objects []fyne.CanvasObject
}

func (r *dialRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	geom := r.bezel.Layout(space, r.caseRatio)
	r.middle = geom.Middle
	r.radius = geom.Radius()
	r.arcOffset = r.radius * widgets.OneThird
	pinRadius := (geom.Diameter + geom.CaseWidth) * widgets.OneTwentyFifth

	// ticks sit on the scale arc and point outward
	base := r.radius - r.arcOffset
	for i := range r.ticks {
		t := &r.ticks[i]
		applyRadial(t.line, r.middle, t.sin, t.cos, base, r.arcOffset*t.length)
	}
	for i := range r.arc {
		r.arc[i].Position1 = fyne.Position{
			X: r.middle.X + base*r.arcCos[i],
			Y: r.middle.Y - base*r.arcSin[i],
		}
		r.arc[i].Position2 = fyne.Position{
			X: r.middle.X + base*r.arcCos[i+1],
			Y: r.middle.Y - base*r.arcSin[i+1],
		}
	}

	// numbering sits between the tick ends and the face edge
	labelRadius := r.radius - r.arcOffset*widgets.OneHalfFive
	labelSize := r.arcOffset * widgets.OneFifth
	for i := range r.labels {
		l := &r.labels[i]
		l.text.TextSize = labelSize
		sz := fyne.MeasureText(l.text.Text, labelSize, l.text.TextStyle)
		l.text.Move(fyne.Position{
			X: r.middle.X + labelRadius*l.cos - sz.Width*widgets.OneHalf,
			Y: r.middle.Y - labelRadius*l.sin - sz.Height*widgets.OneHalf,
		})
	}

	readoutSize := r.arcOffset * widgets.OneThird
	readoutY := r.middle.Y + r.arcOffset*widgets.FourThirds
	if r.display != nil {
		r.display.TextSize = readoutSize
		line := fyne.MeasureText("0", readoutSize, r.display.TextStyle)
		r.display.Move(fyne.Position{X: 0, Y: readoutY - line.Height*widgets.OneHalf})
		r.display.Resize(fyne.Size{Width: space.Width, Height: line.Height})
	}
	if r.unit.Text != "" {
		r.unit.TextSize = readoutSize
		sz := fyne.MeasureText(r.unit.Text, readoutSize, r.unit.TextStyle)
		x := r.middle.X
		if r.display != nil {
			// clear of the widest possible readout
			minW := fyne.MeasureText(strconv.FormatFloat(r.cfg.Min, 'f', -1, 64), readoutSize, r.display.TextStyle).Width
			maxW := fyne.MeasureText(strconv.FormatFloat(r.cfg.Max, 'f', -1, 64), readoutSize, r.display.TextStyle).Width
			x += fyne.Max(minW, maxW) + 2
		}
		r.unit.Move(fyne.Position{
			X: x - sz.Width*widgets.OneHalf,
			Y: readoutY - sz.Height*widgets.OneHalf,
		})
	}

	r.needle.StrokeWidth = 1.5 * pinRadius
	r.refreshValue()

	pinSize := fyne.NewSquareSize(pinRadius * 2)
	pinTL := fyne.Position{X: r.middle.X - pinRadius, Y: r.middle.Y - pinRadius}
	r.pinHighlight.Move(pinTL.SubtractXY(0, geom.Light))
	r.pinHighlight.Resize(pinSize)
	r.pinShadow.Move(pinTL.AddXY(0, geom.Shadow))
	r.pinShadow.Resize(pinSize)
	r.pin.Move(pinTL)
	r.pin.Resize(pinSize)

	for _, obj := range r.Objects() {
		canvas.Refresh(obj)
	}
}

func (r *dialRenderer) MinSize() fyne.Size {
	return r.minsize
}

func (r *dialRenderer) Refresh() {
	for _, obj := range r.Objects() {
		canvas.Refresh(obj)
	}
}

func (r *dialRenderer) Objects() []fyne.CanvasObject {
	if r.objects == nil {
		objs := make([]fyne.CanvasObject, 0, len(r.ticks)+len(r.labels)+len(r.arc)+9)
		objs = append(objs, r.bezel.Objects()...)
		for i := range r.ticks {
			objs = append(objs, r.ticks[i].line)
		}
		for i := range r.labels {
			objs = append(objs, r.labels[i].text)
		}
		for _, seg := range r.arc {
			objs = append(objs, seg)
		}
		if r.display != nil {
			objs = append(objs, r.display)
		}
		objs = append(objs, r.unit, r.needle, r.pinHighlight, r.pinShadow, r.pin)
		r.objects = objs
	}
	return r.objects
}

func (r *dialRenderer) Destroy() {}
