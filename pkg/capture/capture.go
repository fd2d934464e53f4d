// Package capture saves widget renderings and full canvases as PNG files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/software"
	"github.com/skratchdot/open-golang/open"
	sdialog "github.com/sqweek/dialog"
)

// Snapshot rasterizes a canvas object offscreen at its minimum size.
func Snapshot(obj fyne.CanvasObject, th fyne.Theme) image.Image {
	return software.Render(obj, th)
}

// Save writes img as a PNG, creating parent directories as needed.
func Save(img image.Image, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return f.Close()
}

// Screenshot saves the whole canvas under a timestamped name in the
// working directory.
func Screenshot(c fyne.Canvas) {
	filename := fmt.Sprintf("capture-%s.png", time.Now().Format("2006-01-02-15-04-05"))
	if err := Save(c.Capture(), filename); err != nil {
		log.Println(err)
		return
	}
	log.Println("saved", filename)
}

// SaveDialog asks for a destination and writes img there. The native
// dialog blocks, so it runs off the UI thread and cb is delivered back
// on it.
func SaveDialog(img image.Image, cb func(filename string, err error)) {
	go func() {
		filename, err := sdialog.File().Filter("PNG image", "png").Save()
		if err != nil {
			if err.Error() == "Cancelled" {
				return
			}
			fyne.LogError("Error selecting file", err)
			return
		}
		if !strings.EqualFold(filepath.Ext(filename), ".png") {
			filename += ".png"
		}
		err = Save(img, filename)
		if cb != nil {
			fyne.Do(func() { cb(filename, err) })
		}
	}()
}

// Reveal opens path with the platform default handler.
func Reveal(path string) {
	if err := open.Run(path); err != nil {
		log.Println(err)
	}
}
