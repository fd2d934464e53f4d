package numericentry

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

type Widget struct {
	widget.Entry
}

func New() *Widget {
	entry := &Widget{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// Value parses the current text, accepting both decimal separators.
func (e *Widget) Value() (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(e.Text, ",", "."), 64)
}

func (e *Widget) SetValue(value float64) {
	e.SetText(strconv.FormatFloat(value, 'f', -1, 64))
}

func (e *Widget) TypedRune(r rune) {
	if (r >= '0' && r <= '9') || r == '.' || r == ',' {
		e.Entry.TypedRune(r)
		return
	}
	if r == '-' && e.CursorColumn == 0 && !strings.HasPrefix(e.Text, "-") {
		e.Entry.TypedRune(r)
	}
}

func (e *Widget) TypedShortcut(shortcut fyne.Shortcut) {
	paste, ok := shortcut.(*fyne.ShortcutPaste)
	if !ok {
		e.Entry.TypedShortcut(shortcut)
		return
	}

	content := paste.Clipboard.Content()
	if _, err := strconv.ParseFloat(content, 64); err == nil {
		e.Entry.TypedShortcut(shortcut)
	}
}
