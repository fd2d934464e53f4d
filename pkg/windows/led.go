package windows

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	xwidget "fyne.io/x/fyne/widget"
	"github.com/lusingander/colorpicker"

	"github.com/abetterautomation/viewidget/pkg/colors"
	"github.com/abetterautomation/viewidget/pkg/ebus"
	"github.com/abetterautomation/viewidget/pkg/layout"
	"github.com/abetterautomation/viewidget/pkg/widgets/led"
	"github.com/abetterautomation/viewidget/pkg/widgets/numericentry"
)

// LEDTopic carries the brightness of the demo lamp, 0 to 1.
const LEDTopic = "demo.led"

type LEDPage struct {
	lamp    *led.LED
	unsub   func()
	content fyne.CanvasObject
}

func NewLEDPage() *LEDPage {
	p := &LEDPage{}

	lampCfg := led.DefaultConfig()
	lampCfg.Size = 160
	lampCfg.CaseWidth = 16
	lampCfg.Diode = "red"
	lampCfg.On = true
	p.lamp = mustLED(lampCfg)

	// the lamp marshals its own canvas work, so the bus callback can
	// drive it directly
	p.unsub = ebus.SubscribeFunc(LEDTopic, p.lamp.SetValue)

	gallery := container.New(layout.NewGallery(3, 3, 8), p.variants()...)

	controls := container.NewVBox(
		p.switchRow(),
		p.rateRow(),
		p.colorRow(),
		captureBar(gallery),
	)

	p.content = container.NewBorder(nil, controls, container.NewVBox(p.lamp), nil,
		container.NewScroll(gallery))
	return p
}

func (p *LEDPage) Content() fyne.CanvasObject {
	return p.content
}

// Close detaches the lamp from the bus.
func (p *LEDPage) Close() {
	p.unsub()
}

func (p *LEDPage) variants() []fyne.CanvasObject {
	type variant struct {
		title  string
		mutate func(*led.Config)
	}
	vars := []variant{
		{"stock, off", func(cfg *led.Config) {}},
		{"red, lit", func(cfg *led.Config) {
			cfg.Diode = "red"
			cfg.On = true
		}},
		{"green through yellow glass", func(cfg *led.Config) {
			cfg.Diode = "green"
			cfg.Bulb = "yellow"
			cfg.On = true
		}},
		{"plain glass shine", func(cfg *led.Config) {
			cfg.Diode = "red"
			cfg.ReflectStyle = led.ReflectVisible
			cfg.On = true
		}},
		{"no reflection", func(cfg *led.Config) {
			cfg.Diode = "blue"
			cfg.ReflectStyle = 0
			cfg.On = true
		}},
		{"linear tint", func(cfg *led.Config) {
			cfg.Diode = "orange"
			cfg.ReflectStyle = led.ReflectVisible | led.ReflectColor
			cfg.On = true
		}},
		{"blinker, 2 Hz", func(cfg *led.Config) {
			cfg.Diode = "red"
			cfg.BlinkRate = 250 * time.Millisecond
			cfg.On = true
		}},
		{"breathing", func(cfg *led.Config) {
			cfg.Diode = "cyan"
			cfg.FadeRate = time.Second
			cfg.BlinkRate = 1200 * time.Millisecond
			cfg.On = true
		}},
	}

	cells := make([]fyne.CanvasObject, 0, len(vars)+1)
	for _, v := range vars {
		cfg := led.DefaultConfig()
		v.mutate(&cfg)
		w, err := led.New(cfg)
		if err != nil {
			cells = append(cells, cell(v.title, errorCard(err)))
			continue
		}
		for _, warn := range w.Warnings() {
			log.Println("led:", v.title+":", warn)
		}
		cells = append(cells, cell(v.title, w))
	}

	bad := led.DefaultConfig()
	bad.Diode = "notacolor"
	if _, err := led.New(bad); err != nil {
		cells = append(cells, cell("unknown diode color", errorCard(err)))
	}
	return cells
}

func (p *LEDPage) switchRow() *fyne.Container {
	brightness := widget.NewSlider(0, 100)
	brightness.SetValue(100)
	brightness.OnChanged = func(v float64) {
		if err := ebus.Publish(LEDTopic, v/100); err != nil {
			log.Println(err)
		}
	}

	return container.NewBorder(nil, nil, container.NewHBox(
		widget.NewButton("On", p.lamp.On),
		widget.NewButton("Off", p.lamp.Off),
		widget.NewButton("Toggle", p.lamp.Toggle),
		widget.NewLabel("Brightness"),
	), nil, brightness)
}

func (p *LEDPage) rateRow() *fyne.Container {
	fade := numericentry.New()
	fade.PlaceHolder = "fade ms"
	blink := numericentry.New()
	blink.PlaceHolder = "blink ms"

	apply := widget.NewButton("Apply rates", func() {
		if fade.Text != "" {
			ms, err := fade.Value()
			if err == nil {
				err = p.lamp.SetFadeRate(time.Duration(ms) * time.Millisecond)
			}
			if err != nil {
				log.Println(err)
			}
		}
		if blink.Text != "" {
			ms, err := blink.Value()
			if err == nil {
				err = p.lamp.SetBlinkRate(time.Duration(ms) * time.Millisecond)
			}
			if err != nil {
				log.Println(err)
			}
		}
	})

	return container.NewHBox(
		widget.NewLabel("Fade"), layout.NewFixedWidth(90, fade),
		widget.NewLabel("Blink"), layout.NewFixedWidth(90, blink),
		apply,
	)
}

func (p *LEDPage) colorRow() *fyne.Container {
	diode := newColorTypeahead("diode color", func(name string) error {
		return p.lamp.SetColors(name, "")
	})
	bulb := newColorTypeahead("bulb color", func(name string) error {
		return p.lamp.SetColors("", name)
	})

	wheel := widget.NewButton("Wheel", func() {
		picker := colorpicker.New(200, colorpicker.StyleHueCircle)
		picker.SetOnChanged(func(c color.Color) {
			r, g, b, _ := c.RGBA()
			hex := fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
			if err := p.lamp.SetColors(hex, ""); err != nil {
				log.Println(err)
			}
		})

		cnv := fyne.CurrentApp().Driver().CanvasForObject(p.lamp)
		var modal *widget.PopUp
		modal = widget.NewModalPopUp(container.NewVBox(
			picker,
			widget.NewButton("Close", func() {
				modal.Hide()
			}),
		), cnv)
		modal.Show()
	})

	copyHex := widget.NewButton("Copy lit hex", func() {
		lit, _ := p.lamp.ColorsAt(1)
		r, g, b, _ := lit.RGBA()
		hex := colors.Hex(colors.RGB{R: uint16(r), G: uint16(g), B: uint16(b)})
		fyne.CurrentApp().Clipboard().SetContent(hex)
		log.Println("copied", hex)
	})

	return container.NewHBox(
		widget.NewLabel("Diode"), layout.NewFixedWidth(160, diode),
		widget.NewLabel("Bulb"), layout.NewFixedWidth(160, bulb),
		wheel, copyHex,
	)
}

// newColorTypeahead is a completion entry over the color name table.
// Enter applies the typed or picked name.
func newColorTypeahead(placeholder string, apply func(string) error) *xwidget.CompletionEntry {
	entry := xwidget.NewCompletionEntry([]string{})
	entry.PlaceHolder = placeholder

	entry.OnChanged = func(s string) {
		if len(s) < 2 {
			entry.HideCompletion()
			return
		}
		var results []string
		for _, name := range colors.Names() {
			if strings.Contains(name, strings.ToLower(s)) {
				results = append(results, name)
			}
		}
		if len(results) == 0 {
			entry.HideCompletion()
			return
		}
		entry.SetOptions(results)
		entry.ShowCompletion()
	}
	entry.OnSubmitted = func(s string) {
		if err := apply(s); err != nil {
			log.Println(err)
		}
	}
	return entry
}

func mustLED(cfg led.Config) *led.LED {
	w, err := led.New(cfg)
	if err != nil {
		panic(err)
	}
	return w
}
