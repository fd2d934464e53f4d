package widgets

import (
	"log"

	"fyne.io/fyne/v2"
)

// Warning reports a configuration the constructor accepted after
// adjusting it. Invalid input fails construction with an error;
// warnings cover the borderline cases that have a sensible fallback.
type Warning string

// Warn logs w through the standard logger and returns it appended to
// list, so constructors collect while reporting.
func Warn(list []Warning, w Warning) []Warning {
	log.Println("viewidget:", string(w))
	return append(list, w)
}

// Valuer is the surface the value bus drives: any widget displaying a
// single numeric value.
type Valuer interface {
	fyne.Widget
	SetValue(float64)
}
