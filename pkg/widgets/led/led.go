// Package led renders an indicator lamp: a raised case around a glass
// bulb lit by a colored diode, with an optional reflection arc across
// the upper left of the glass. Lamps can switch instantly, fade between
// levels or blink on a timer.
package led

import (
	"errors"
	"image/color"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/jonboulle/clockwork"

	"github.com/abetterautomation/viewidget/pkg/colors"
	"github.com/abetterautomation/viewidget/pkg/widgets"
)

var (
	ErrSize      = errors.New("led size must be greater than zero")
	ErrCaseWidth = errors.New("led casewidth must be greater than or equal to zero")
	ErrFadeRate  = errors.New("led faderate must be greater than or equal to zero")
	ErrBlinkRate = errors.New("led blinkrate must be greater than or equal to zero")
)

// Reflection style bits.
const (
	ReflectVisible   uint8 = 1 << iota // draw the reflection arc
	ReflectColor                       // tint it with the lit color instead of plain glass
	ReflectQuadratic                   // dim it on a square law instead of linearly
)

// Config holds the construction options. Start from DefaultConfig and
// override fields.
type Config struct {
	Size         float32       // outer bulb diameter, case included
	CaseWidth    float32       // case ring width, at most a tenth of Size
	On           bool          // initial state
	Diode        string        // emitter color
	Bulb         string        // glass color, filters the diode
	ReflectStyle uint8         // Reflect* bits
	FadeRate     time.Duration // time of a full off to on swing, 0 snaps
	BlinkRate    time.Duration // time between toggles while on, 0 disables
}

// DefaultConfig returns the stock 100px white lamp with a colored
// quadratic reflection and instant switching.
func DefaultConfig() Config {
	return Config{
		Size:         100,
		CaseWidth:    10,
		Diode:        "white",
		Bulb:         "white",
		ReflectStyle: ReflectVisible | ReflectColor | ReflectQuadratic,
	}
}

type LED struct {
	widget.BaseWidget

	cfg      Config
	warnings []widgets.Warning

	bezel      *widgets.Bezel
	reflection []*canvas.Line

	// reflection arc directions, one entry per chord endpoint
	arcSin, arcCos []float32

	diode, bulb colors.RGB

	// palette derived from diode and bulb by restyle
	offLamp    colors.RGB
	offReflect colors.RGB
	onLamp     colors.RGB
	onHLS      colors.HLS
	bulbHLS    colors.HLS

	anim *animator

	caseRatio float32
	minsize   fyne.Size

	// layout cache
	size fyne.Size
}

// New builds the lamp against the wall clock.
func New(cfg Config) (*LED, error) {
	return NewWithClock(cfg, clockwork.NewRealClock())
}

// NewWithClock builds the lamp against an injected clock so fades and
// blinks can be driven deterministically.
func NewWithClock(cfg Config, clock clockwork.Clock) (*LED, error) {
	if cfg.Size <= 0 {
		return nil, ErrSize
	}
	if cfg.CaseWidth < 0 {
		return nil, ErrCaseWidth
	}
	if cfg.FadeRate < 0 {
		return nil, ErrFadeRate
	}
	if cfg.BlinkRate < 0 {
		return nil, ErrBlinkRate
	}

	w := &LED{cfg: cfg}
	w.ExtendBaseWidget(w)

	var err error
	if w.diode, err = colors.Resolve(cfg.Diode); err != nil {
		return nil, err
	}
	if w.bulb, err = colors.Resolve(cfg.Bulb); err != nil {
		return nil, err
	}

	if w.cfg.CaseWidth > 0 && w.cfg.Size/w.cfg.CaseWidth < 10 {
		w.warnings = widgets.Warn(w.warnings, "led casewidth must be less than or equal to 1/10 the size, shrinking the case")
		w.cfg.CaseWidth = w.cfg.Size * widgets.OneTenth
	}

	w.caseRatio = w.cfg.CaseWidth / (w.cfg.Size + w.cfg.CaseWidth)
	native := w.cfg.Size + w.cfg.CaseWidth + widgets.Relief(w.cfg.Size)
	w.minsize = fyne.NewSquareSize(native)

	w.bezel = widgets.NewBezel(color.Transparent)

	// the reflection arc sweeps the upper left quadrant of the glass
	const segs = 18
	w.arcSin = make([]float32, segs+1)
	w.arcCos = make([]float32, segs+1)
	for i := 0; i <= segs; i++ {
		deg := 90 + 90*float64(i)/segs
		sin, cos := math.Sincos(deg * widgets.PiDiv180)
		w.arcSin[i] = float32(sin)
		w.arcCos[i] = float32(cos)
	}
	w.reflection = make([]*canvas.Line, segs)
	for i := range w.reflection {
		w.reflection[i] = &canvas.Line{}
	}
	if cfg.ReflectStyle&ReflectVisible == 0 {
		for _, seg := range w.reflection {
			seg.Hide()
		}
	}

	w.anim = newAnimator(clock, cfg.FadeRate, cfg.BlinkRate, w.applyAsync)
	w.restyle()
	if cfg.On {
		w.anim.Turn(true)
	}

	return w, nil
}

// monotone reports whether the reflection keeps the plain glass tint.
func (w *LED) monotone() bool {
	return w.cfg.ReflectStyle&ReflectColor == 0
}

// restyle derives the palette from the current diode and bulb colors
// and repaints at the current brightness.
func (w *LED) restyle() {
	w.bulbHLS = colors.ToHLS(w.bulb)
	w.offLamp = colors.WithLuminosity(w.bulb, 0.25*w.bulbHLS.L)
	offSat := w.bulbHLS.S
	if w.monotone() {
		offSat = 0
	}
	w.offReflect = colors.FromHLS(colors.HLS{H: w.bulbHLS.H, L: 0.5 * w.bulbHLS.L, S: offSat})
	// the glass filters the emitter, channel by channel
	w.onLamp = colors.And(w.diode, w.bulb)
	w.onHLS = colors.ToHLS(w.onLamp)
	w.applyLevel(w.anim.Level())
}

// colorsFor maps a brightness level to lamp and reflection colors.
// Dim levels track the lit hue at reduced luminosity until the lamp
// would be darker than the unlit glass, which reads as off.
func (w *LED) colorsFor(level float64) (lamp, reflect colors.RGB) {
	if level <= 0 {
		return w.offLamp, w.offReflect
	}
	if level >= 1 {
		return w.onLamp, colors.White
	}
	lum := w.onHLS.L * (0.75*level + 0.25)
	if lum < 0.2*w.bulbHLS.L {
		return w.offLamp, w.offReflect
	}
	lamp = colors.FromHLS(colors.HLS{H: w.onHLS.H, L: lum, S: w.onHLS.S})
	sat, target := w.onHLS.S, w.onHLS.L
	if w.monotone() {
		sat, target = 0, w.bulbHLS.L
	}
	power := 1.0
	if w.cfg.ReflectStyle&ReflectQuadratic != 0 {
		power = 2
	}
	rlum := (1-0.5*target)*math.Pow(level, power) + 0.5*target
	reflect = colors.FromHLS(colors.HLS{H: w.onHLS.H, L: rlum, S: sat})
	return lamp, reflect
}

// applyLevel repaints the glass and reflection for a brightness level.
func (w *LED) applyLevel(level float64) {
	lamp, refl := w.colorsFor(level)
	w.bezel.Face.FillColor = lamp
	canvas.Refresh(w.bezel.Face)
	for _, seg := range w.reflection {
		seg.StrokeColor = refl
		canvas.Refresh(seg)
	}
}

// applyAsync hands a repaint to the UI goroutine. Fades and blinks run
// on timer goroutines that must not touch the canvas directly.
func (w *LED) applyAsync(level float64) {
	fyne.Do(func() {
		w.applyLevel(level)
	})
}

// On switches the lamp on, starting the blink cycle when one is set.
func (w *LED) On() {
	w.anim.Turn(true)
}

// Off switches the lamp off and stops blinking.
func (w *LED) Off() {
	w.anim.Turn(false)
}

// Turn switches the lamp to the given state.
func (w *LED) Turn(on bool) {
	w.anim.Turn(on)
}

// Toggle flips the lamp to the opposite state.
func (w *LED) Toggle() {
	w.anim.Toggle()
}

// State reports whether the lamp is on or fading on.
func (w *LED) State() bool {
	return w.anim.State()
}

// Blinking reports whether a blink cycle is armed.
func (w *LED) Blinking() bool {
	return w.anim.Blinking()
}

// Brightness returns the current level between 0 and 1.
func (w *LED) Brightness() float64 {
	return w.anim.Level()
}

// SetBrightness forces a brightness level. Brightening is only honored
// while the lamp is on; dimming and switching fully off always apply.
func (w *LED) SetBrightness(level float64) {
	w.anim.SetLevel(level)
}

// SetValue drives the lamp from a value bus topic: the value is taken
// as a brightness level and clamped to the 0 to 1 range.
func (w *LED) SetValue(level float64) {
	w.SetBrightness(math.Min(1, math.Max(0, level)))
}

// SetFadeRate changes the duration of a full off to on swing.
func (w *LED) SetFadeRate(d time.Duration) error {
	return w.anim.SetFadeRate(d)
}

// SetBlinkRate changes the blink interval, starting or settling the
// blink cycle as needed.
func (w *LED) SetBlinkRate(d time.Duration) error {
	return w.anim.SetBlinkRate(d)
}

// SetColors swaps the diode or bulb color and repaints at the current
// brightness. An empty string keeps the current color.
func (w *LED) SetColors(diode, bulb string) error {
	if diode != "" {
		c, err := colors.Resolve(diode)
		if err != nil {
			return err
		}
		w.diode = c
	}
	if bulb != "" {
		c, err := colors.Resolve(bulb)
		if err != nil {
			return err
		}
		w.bulb = c
	}
	w.restyle()
	return nil
}

// ColorsAt returns the lamp and reflection colors the current palette
// yields at the given brightness level.
func (w *LED) ColorsAt(level float64) (lamp, reflection color.Color) {
	l, r := w.colorsFor(level)
	return l, r
}

// Warnings lists the corrections applied during construction.
func (w *LED) Warnings() []widgets.Warning {
	return w.warnings
}

// Config returns the effective configuration after corrections.
func (w *LED) Config() Config {
	cfg := w.cfg
	cfg.FadeRate = w.anim.FadeRate()
	cfg.BlinkRate = w.anim.BlinkRate()
	return cfg
}

func (w *LED) CreateRenderer() fyne.WidgetRenderer {
	return &ledRenderer{LED: w}
}

type ledRenderer struct {
	*LED
	objects []fyne.CanvasObject
}

func (r *ledRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	geom := r.bezel.Layout(space, r.caseRatio)
	middle := geom.Middle
	radius := geom.Radius() * 2 * widgets.OneThird
	stroke := geom.Diameter * widgets.OneTwentieth
	for i, seg := range r.reflection {
		seg.StrokeWidth = stroke
		seg.Position1 = fyne.Position{
			X: middle.X + radius*r.arcCos[i],
			Y: middle.Y - radius*r.arcSin[i],
		}
		seg.Position2 = fyne.Position{
			X: middle.X + radius*r.arcCos[i+1],
			Y: middle.Y - radius*r.arcSin[i+1],
		}
	}

	for _, obj := range r.Objects() {
		canvas.Refresh(obj)
	}
}

func (r *ledRenderer) MinSize() fyne.Size {
	return r.minsize
}

func (r *ledRenderer) Refresh() {
	for _, obj := range r.Objects() {
		canvas.Refresh(obj)
	}
}

func (r *ledRenderer) Objects() []fyne.CanvasObject {
	if r.objects == nil {
		objs := make([]fyne.CanvasObject, 0, len(r.reflection)+3)
		objs = append(objs, r.bezel.Objects()...)
		for _, seg := range r.reflection {
			objs = append(objs, seg)
		}
		r.objects = objs
	}
	return r.objects
}

func (r *ledRenderer) Destroy() {
	r.anim.Stop()
}
