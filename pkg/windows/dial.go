package windows

import (
	"fmt"
	"log"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/abetterautomation/viewidget/pkg/colors"
	"github.com/abetterautomation/viewidget/pkg/ebus"
	"github.com/abetterautomation/viewidget/pkg/layout"
	"github.com/abetterautomation/viewidget/pkg/widgets/dial"
	"github.com/abetterautomation/viewidget/pkg/widgets/digit"
	"github.com/abetterautomation/viewidget/pkg/widgets/numericentry"
)

// DialTopic is the bus topic the live dial listens on. The serial feed
// publishes here when started without an explicit topic mapping.
const DialTopic = "demo.dial"

type DialPage struct {
	live   *dial.Dial
	digits [3]*digit.Digit
	span   *widget.Label

	anim    *fyne.Animation
	running bool

	unsub   func()
	content fyne.CanvasObject
}

func NewDialPage() *DialPage {
	p := &DialPage{}

	liveCfg := dial.DefaultConfig()
	liveCfg.Size = 260
	liveCfg.Min = 0
	liveCfg.Max = 100
	liveCfg.MajorScale = 10
	liveCfg.SemiMajorScale = 5
	liveCfg.MinorScale = 1
	liveCfg.Unit = "%"
	liveCfg.Value = 0
	p.live = mustDial(liveCfg)

	for i := range p.digits {
		d, err := digit.New(digit.Config{Size: 84, Foreground: "red", Background: "black", Value: 0})
		if err != nil {
			log.Println(err)
			continue
		}
		p.digits[i] = d
	}
	p.setDigits(0)

	valueSub := ebus.SubscribeFunc(DialTopic, func(v float64) {
		fyne.Do(func() {
			p.live.SetValue(v)
			p.setDigits(v)
		})
	})

	// session extremes come back from the bus as derived topics
	ebus.RegisterAggregator(ebus.SpanAggregator(DialTopic))
	p.span = widget.NewLabel("")
	var lo, hi float64
	refreshSpan := func() {
		p.span.SetText(fmt.Sprintf("session %.1f to %.1f", lo, hi))
	}
	minSub := ebus.SubscribeFunc(DialTopic+".min", func(v float64) {
		fyne.Do(func() { lo = v; refreshSpan() })
	})
	maxSub := ebus.SubscribeFunc(DialTopic+".max", func(v float64) {
		fyne.Do(func() { hi = v; refreshSpan() })
	})
	p.unsub = func() {
		valueSub()
		minSub()
		maxSub()
	}

	// dial and mirrored readout split the header width
	live := container.New(&layout.RatioContainer{Widths: []float32{0.45, 0.45}},
		p.live,
		container.New(&layout.Horizontal{}, p.digits[0], p.digits[1], p.digits[2]),
	)

	gallery := container.New(layout.NewGallery(3, 3, 8), p.variants()...)

	controls := container.NewVBox(
		p.publishRow(),
		p.animationRow(),
		p.restyleRow(),
		captureBar(gallery),
	)

	p.content = container.NewBorder(live, controls, nil, nil, container.NewScroll(gallery))
	return p
}

func (p *DialPage) Content() fyne.CanvasObject {
	return p.content
}

// Close stops the sweep and the bus subscription.
func (p *DialPage) Close() {
	if p.anim != nil {
		p.anim.Stop()
	}
	p.unsub()
}

// variants builds the configuration gallery, one deliberately broken.
func (p *DialPage) variants() []fyne.CanvasObject {
	type variant struct {
		title  string
		mutate func(*dial.Config)
	}
	small := func(cfg *dial.Config) {
		cfg.Size = 200
		cfg.CaseWidth = 10
	}
	vars := []variant{
		{"stock", func(cfg *dial.Config) {}},
		{"percent, fine scale", func(cfg *dial.Config) {
			small(cfg)
			cfg.Min, cfg.Max = 0, 100
			cfg.MajorScale, cfg.SemiMajorScale, cfg.MinorScale = 20, 10, 2
			cfg.Unit = "%"
			cfg.Value = 42
		}},
		{"quadrant", func(cfg *dial.Config) {
			small(cfg)
			cfg.Start, cfg.Extent = 90, -90
			cfg.Min, cfg.Max = 0, 25
			cfg.MajorScale, cfg.SemiMajorScale, cfg.MinorScale = 5, 2.5, 0.5
			cfg.Value = 10
		}},
		{"full circle, unbound", func(cfg *dial.Config) {
			small(cfg)
			cfg.Start, cfg.Extent = 90, -360
			cfg.Min, cfg.Max = 0, 360
			cfg.MajorScale, cfg.SemiMajorScale, cfg.MinorScale = 45, 0, 15
			cfg.Unit = "deg"
			cfg.RoundTo = 0
			cfg.Value = 135
		}},
		{"reversed scale", func(cfg *dial.Config) {
			small(cfg)
			cfg.Min, cfg.Max = 220, 60
			cfg.Value = 180
		}},
		{"needle not pinned", func(cfg *dial.Config) {
			small(cfg)
			cfg.Bound = false
			cfg.Value = 250
		}},
		{"no readout", func(cfg *dial.Config) {
			small(cfg)
			cfg.WithDisplay = false
			cfg.Value = 100
		}},
		{"case clamped (warning)", func(cfg *dial.Config) {
			small(cfg)
			cfg.CaseWidth = 80
			cfg.Value = 100
		}},
	}

	cells := make([]fyne.CanvasObject, 0, len(vars)+1)
	for _, v := range vars {
		cfg := dial.DefaultConfig()
		v.mutate(&cfg)
		d, err := dial.New(cfg)
		if err != nil {
			cells = append(cells, cell(v.title, errorCard(err)))
			continue
		}
		for _, w := range d.Warnings() {
			log.Println("dial:", v.title+":", w)
		}
		cells = append(cells, cell(v.title, d))
	}

	// the refusal path, made visible
	bad := dial.DefaultConfig()
	bad.Min, bad.Max = 100, 100
	if _, err := dial.New(bad); err != nil {
		cells = append(cells, cell("min == max", errorCard(err)))
	}
	return cells
}

func (p *DialPage) publishRow() *fyne.Container {
	slider := widget.NewSlider(0, 100)
	slider.Step = 0.5
	slider.OnChanged = func(v float64) {
		if err := ebus.Publish(DialTopic, v); err != nil {
			log.Println(err)
		}
	}

	entry := numericentry.New()
	entry.PlaceHolder = "0..100"
	publish := widget.NewButton("Publish", func() {
		v, err := entry.Value()
		if err != nil {
			log.Println(err)
			return
		}
		if err := ebus.Publish(DialTopic, v); err != nil {
			log.Println(err)
		}
	})

	return container.NewBorder(nil, nil, widget.NewLabel("Value"),
		container.NewHBox(layout.NewFixedWidth(90, entry), publish), slider)
}

func (p *DialPage) animationRow() *fyne.Container {
	speed := widget.NewSelect([]string{"2s", "5s", "10s"}, nil)
	speed.SetSelected("5s")

	var runBtn *widget.Button
	runBtn = widget.NewButton("Run sweep", func() {
		if p.running {
			p.anim.Stop()
			p.running = false
			runBtn.SetText("Run sweep")
			return
		}
		dur, err := time.ParseDuration(speed.Selected)
		if err != nil {
			log.Println(err)
			return
		}
		p.anim = fyne.NewAnimation(dur, func(pos float32) {
			if err := ebus.Publish(DialTopic, 100*holdEnds(pos)); err != nil {
				log.Println(err)
			}
		})
		p.anim.AutoReverse = true
		p.anim.Curve = fyne.AnimationEaseInOut
		p.anim.RepeatCount = fyne.AnimationRepeatForever
		p.anim.Start()
		p.running = true
		runBtn.SetText("Stop sweep")
	})

	return container.NewHBox(runBtn, widget.NewLabel("Sweep time"), speed, p.span)
}

func (p *DialPage) restyleRow() *fyne.Container {
	red := colors.MustResolve("red")
	return container.NewHBox(
		widget.NewLabel("Restyle"),
		widget.NewButton("Night", func() {
			p.live.SetFaceColor(colors.Black)
			p.live.SetScaleColor(colors.White)
			p.live.SetNeedleColor(red)
			p.live.SetRedline(75, 100, red)
		}),
		widget.NewButton("Stock", func() {
			p.live.SetFaceColor(colors.White)
			p.live.SetScaleColor(colors.Black)
			p.live.SetNeedleColor(colors.Black)
			p.live.ClearRedline()
		}),
	)
}

func (p *DialPage) setDigits(v float64) {
	n := int(math.Round(math.Abs(v)))
	if n > 999 {
		n = 999
	}
	if p.digits[0] == nil || p.digits[1] == nil || p.digits[2] == nil {
		return
	}
	if n >= 100 {
		p.digits[0].SetValue(n / 100)
	} else {
		p.digits[0].Clear()
	}
	if n >= 10 {
		p.digits[1].SetValue(n / 10 % 10)
	} else {
		p.digits[1].Clear()
	}
	p.digits[2].SetValue(n % 10)
}

// holdEnds maps the animation position so the needle rests briefly at
// each end of the sweep instead of bouncing.
func holdEnds(p float32) float64 {
	const hold = 0.12
	q := (float64(p) - hold) / (1 - 2*hold)
	return math.Min(1, math.Max(0, q))
}

func mustDial(cfg dial.Config) *dial.Dial {
	d, err := dial.New(cfg)
	if err != nil {
		panic(err)
	}
	return d
}
