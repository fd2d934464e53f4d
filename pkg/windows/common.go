// Package windows holds the demo pages, one per widget plus the clock,
// hosted in the application tabs.
package windows

import (
	"image/color"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/abetterautomation/viewidget/pkg/capture"
)

var (
	cellLabelColor = color.RGBA{R: 0xB0, G: 0xB0, B: 0xB5, A: 0xFF}
	errorRed       = color.RGBA{R: 0xE8, G: 0x33, B: 0x23, A: 0xFF}
)

// cell wraps a gallery entry with a caption under it.
func cell(title string, obj fyne.CanvasObject) fyne.CanvasObject {
	label := canvas.NewText(title, cellLabelColor)
	label.TextSize = 12
	label.Alignment = fyne.TextAlignCenter
	return container.NewBorder(nil, label, nil, nil, obj)
}

// errorCard stands in for a widget whose construction was refused. The
// message shows instead of a half built gauge.
func errorCard(err error) fyne.CanvasObject {
	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeColor = errorRed
	frame.StrokeWidth = 2

	title := canvas.NewText("cannot display", errorRed)
	title.TextSize = 16
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	msg := widget.NewLabel(err.Error())
	msg.Wrapping = fyne.TextWrapWord
	msg.Alignment = fyne.TextAlignCenter

	return container.NewStack(frame, container.NewVBox(
		widget.NewLabel(""), title, msg,
	))
}

// captureBar is the camera row every page carries: snapshot the page
// content to a chosen file, or open the folder screenshots land in.
func captureBar(content fyne.CanvasObject) *fyne.Container {
	return container.NewHBox(
		widget.NewButtonWithIcon("Capture", theme.MediaPhotoIcon(), func() {
			img := capture.Snapshot(content, fyne.CurrentApp().Settings().Theme())
			capture.SaveDialog(img, func(filename string, err error) {
				if err != nil {
					log.Println("capture:", err)
					return
				}
				log.Println("saved", filename)
			})
		}),
		widget.NewButtonWithIcon("Folder", theme.FolderOpenIcon(), func() {
			wd, err := os.Getwd()
			if err != nil {
				log.Println(err)
				return
			}
			capture.Reveal(wd)
		}),
	)
}
