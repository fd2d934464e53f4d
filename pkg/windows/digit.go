package windows

import (
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/abetterautomation/viewidget/pkg/widgets/digit"
)

// spinnerSegs walks one lit segment clockwise around the perimeter.
var spinnerSegs = [...]uint8{
	digit.SegTop, digit.SegTopRight, digit.SegBottomRight,
	digit.SegBottom, digit.SegBottomLeft, digit.SegTopLeft,
}

const spinnerStep = 150 * time.Millisecond

type DigitPage struct {
	big    *digit.Digit
	checks [7]*widget.Check

	spinQuit chan struct{}
	content  fyne.CanvasObject
}

func NewDigitPage() *DigitPage {
	p := &DigitPage{}

	big, err := digit.New(digit.Config{Size: 200, Foreground: "red", Background: "black", Value: 8})
	if err != nil {
		panic(err)
	}
	p.big = big

	controls := container.NewVBox(
		p.segmentRow(),
		p.restyleRow(),
		container.NewHBox(p.spinnerButton(), captureBar(p.big)),
	)

	p.content = container.NewBorder(p.hexRow(), controls, container.NewVBox(p.big), nil)
	return p
}

func (p *DigitPage) Content() fyne.CanvasObject {
	return p.content
}

// Close stops the spinner if it is running.
func (p *DigitPage) Close() {
	p.stopSpinner()
}

// hexRow shows every representable figure, a blank and the refusal
// path.
func (p *DigitPage) hexRow() fyne.CanvasObject {
	cells := make([]fyne.CanvasObject, 0, 18)
	for i := 0; i < 16; i++ {
		d, err := digit.New(digit.Config{Size: 56, Foreground: "red", Background: "black", Value: i})
		if err != nil {
			log.Println(err)
			continue
		}
		cells = append(cells, cell(strconv.FormatInt(int64(i), 16), d))
	}

	blank, err := digit.New(digit.Config{Size: 56, Foreground: "red", Background: "black", Value: digit.Blank})
	if err != nil {
		log.Println(err)
	} else {
		cells = append(cells, cell("blank", blank))
	}

	if _, err := digit.New(digit.Config{Size: 56, Foreground: "notacolor", Background: "black"}); err != nil {
		cells = append(cells, cell("bad color", errorCard(err)))
	}

	return container.NewGridWithColumns(9, cells...)
}

func (p *DigitPage) segmentRow() *fyne.Container {
	names := [7]string{"top", "top right", "bottom right", "bottom", "bottom left", "top left", "middle"}
	bits := [7]uint8{
		digit.SegTop, digit.SegTopRight, digit.SegBottomRight,
		digit.SegBottom, digit.SegBottomLeft, digit.SegTopLeft, digit.SegMiddle,
	}

	row := container.NewHBox(widget.NewLabel("Segments"))
	for i := range names {
		p.checks[i] = widget.NewCheck(names[i], func(bool) {
			var mask uint8
			for j, c := range p.checks {
				if c.Checked {
					mask |= bits[j]
				}
			}
			p.big.SetMask(mask)
		})
		p.checks[i].Checked = true
		row.Add(p.checks[i])
	}
	return row
}

func (p *DigitPage) restyleRow() *fyne.Container {
	fg := widget.NewSelect([]string{"red", "green", "blue", "yellow", "orange", "white"}, func(s string) {
		if err := p.big.SetColors(s, ""); err != nil {
			log.Println(err)
		}
	})
	fg.SetSelected("red")

	bg := widget.NewSelect([]string{"black", "gray10", "navy", "darkgreen"}, func(s string) {
		if err := p.big.SetColors("", s); err != nil {
			log.Println(err)
		}
	})
	bg.SetSelected("black")

	return container.NewHBox(
		widget.NewLabel("Segment"), fg,
		widget.NewLabel("Panel"), bg,
	)
}

func (p *DigitPage) spinnerButton() *widget.Button {
	var btn *widget.Button
	btn = widget.NewButton("Spin", func() {
		if p.spinQuit != nil {
			p.stopSpinner()
			btn.SetText("Spin")
			return
		}
		p.spinQuit = make(chan struct{})
		go p.spin(p.spinQuit)
		btn.SetText("Stop")
	})
	return btn
}

func (p *DigitPage) stopSpinner() {
	if p.spinQuit != nil {
		close(p.spinQuit)
		p.spinQuit = nil
	}
}

func (p *DigitPage) spin(quit chan struct{}) {
	t := time.NewTicker(spinnerStep)
	defer t.Stop()
	i := 0
	for {
		select {
		case <-quit:
			return
		case <-t.C:
			mask := spinnerSegs[i%len(spinnerSegs)]
			fyne.Do(func() { p.big.SetMask(mask) })
			i++
		}
	}
}
