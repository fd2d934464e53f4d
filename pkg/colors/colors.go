package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var ErrUnknownColor = errors.New("unknown color")

// RGB is a color with 16 bits per channel, the resolution the widgets
// blend in. Alpha is always opaque.
type RGB struct {
	R, G, B uint16
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	return uint32(c.R), uint32(c.G), uint32(c.B), 0xFFFF
}

var (
	White = RGB{0xFFFF, 0xFFFF, 0xFFFF}
	Black = RGB{}
)

// Resolve turns a color specification into an RGB value. It accepts
// hex forms with 1, 2, 3 or 4 digits per channel (#f00, #ff0000,
// #fff000000, #ffff00000000), the X11/SVG color names and the
// grayN/greyN percentage grays (N 0..100). Names are case-insensitive.
func Resolve(name string) (RGB, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	if s[0] == '#' {
		return parseHex(s, name)
	}
	if c, ok := grayLevel(s); ok {
		return c, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return RGB{scale8(c.R), scale8(c.G), scale8(c.B)}, nil
	}
	// colornames spells both, but normalize anyway for names such as
	// "lightgrey" vs "lightgray" coming from either convention.
	if c, ok := colornames.Map[strings.ReplaceAll(s, "grey", "gray")]; ok {
		return RGB{scale8(c.R), scale8(c.G), scale8(c.B)}, nil
	}
	return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// Names lists the resolvable color names, sorted, for pickers and
// completion entries. Hex and grayN forms are accepted by Resolve but
// not listed.
func Names() []string {
	return colornames.Names
}

// MustResolve is Resolve for package-level literals; it panics on
// unknown input.
func MustResolve(name string) RGB {
	c, err := Resolve(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c in the 16-bit-per-channel hex form, the canonical
// textual representation used across the widgets.
func Hex(c RGB) string {
	return fmt.Sprintf("#%04x%04x%04x", c.R, c.G, c.B)
}

// parseHex scales each k-digit channel group by 0xFFFF/(16^k-1) so
// that #f, #ff, #fff and #ffff all mean a full channel.
func parseHex(s, orig string) (RGB, error) {
	digits := s[1:]
	k := len(digits) / 3
	if k < 1 || k > 4 || len(digits) != 3*k {
		return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
	}
	maxval := uint64(1)<<(4*k) - 1
	var ch [3]uint16
	for i := range ch {
		v, err := strconv.ParseUint(digits[i*k:(i+1)*k], 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
		}
		ch[i] = uint16(v * 0xFFFF / maxval)
	}
	return RGB{ch[0], ch[1], ch[2]}, nil
}

func grayLevel(s string) (RGB, bool) {
	rest, ok := strings.CutPrefix(s, "gray")
	if !ok {
		rest, ok = strings.CutPrefix(s, "grey")
	}
	if !ok || rest == "" {
		return RGB{}, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || n > 100 {
		return RGB{}, false
	}
	// percentage grays resolve through the 8-bit table first, like the
	// X11 rgb.txt entries they mimic (gray5 is #0d0d0d, not #0ccd...).
	v := scale8(uint8((uint32(n)*255 + 50) / 100))
	return RGB{v, v, v}, true
}

func scale8(v uint8) uint16 {
	return uint16(v) * 0x101
}
