package windows

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	fynelayout "fyne.io/fyne/v2/layout"

	"github.com/abetterautomation/viewidget/pkg/layout"
	"github.com/abetterautomation/viewidget/pkg/widgets/digit"
	"github.com/abetterautomation/viewidget/pkg/widgets/led"
)

// ClockPage composes four digits, a blinking colon and a PM lamp into
// a 12 hour wall clock.
type ClockPage struct {
	digits [4]*digit.Digit
	colon  [2]*led.LED
	pm     *led.LED

	quit    chan struct{}
	content fyne.CanvasObject
}

func NewClockPage() *ClockPage {
	p := &ClockPage{}

	for i := range p.digits {
		d, err := digit.New(digit.Config{Size: 140, Foreground: "red", Background: "black"})
		if err != nil {
			panic(err)
		}
		p.digits[i] = d
	}
	for i := range p.colon {
		w, err := led.New(led.Config{
			Size: 16, Diode: "red", Bulb: "red", ReflectStyle: 0, On: true,
		})
		if err != nil {
			panic(err)
		}
		p.colon[i] = w
	}

	pm, err := led.New(led.Config{
		Size: 14, Diode: "red", Bulb: "red", ReflectStyle: 0,
	})
	if err != nil {
		panic(err)
	}
	p.pm = pm

	// spread the two dots over the digit height
	colon := container.New(&layout.Vertical{}, p.colon[0], p.colon[1])

	face := container.NewHBox(
		fynelayout.NewSpacer(),
		p.digits[0], p.digits[1],
		colon,
		p.digits[2], p.digits[3],
		container.NewVBox(fynelayout.NewSpacer(), p.pm),
		fynelayout.NewSpacer(),
	)

	now := time.Now()
	p.setDigits(now)
	p.pm.Turn(now.Hour() >= 12)

	p.content = container.NewBorder(nil, captureBar(face), nil, nil,
		container.NewVBox(fynelayout.NewSpacer(), face, fynelayout.NewSpacer()))

	p.quit = make(chan struct{})
	go p.run()

	return p
}

func (p *ClockPage) Content() fyne.CanvasObject {
	return p.content
}

// Close stops the tick loop.
func (p *ClockPage) Close() {
	close(p.quit)
}

// run toggles the colon every half second and keeps the digits on the
// wall clock. Digit repaints are skipped by SetMask when the figure is
// unchanged, so the fast tick stays cheap. The lamps marshal their own
// canvas work and stay outside fyne.Do.
func (p *ClockPage) run() {
	t := time.NewTicker(500 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-p.quit:
			return
		case <-t.C:
			now := time.Now()
			p.pm.Turn(now.Hour() >= 12)
			p.colon[0].Toggle()
			p.colon[1].Toggle()
			fyne.Do(func() {
				p.setDigits(now)
			})
		}
	}
}

// setDigits shows HH:MM on the four figures, blanking the leading digit
// of single digit hours. Repaints must run on the UI thread.
func (p *ClockPage) setDigits(now time.Time) {
	h, m := now.Hour(), now.Minute()
	h %= 12
	if h == 0 {
		h = 12
	}

	if h >= 10 {
		p.digits[0].SetValue(h / 10)
	} else {
		p.digits[0].Clear()
	}
	p.digits[1].SetValue(h % 10)
	p.digits[2].SetValue(m / 10)
	p.digits[3].SetValue(m % 10)
}
