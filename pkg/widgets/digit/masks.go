package digit

// Segment bits, low to high: top, bottom, top left, top right,
// bottom left, bottom right, middle.
const (
	SegTop uint8 = 1 << iota
	SegBottom
	SegTopLeft
	SegTopRight
	SegBottomLeft
	SegBottomRight
	SegMiddle
)

// AllSegments lights the full figure eight.
const AllSegments = SegTop | SegBottom | SegTopLeft | SegTopRight |
	SegBottomLeft | SegBottomRight | SegMiddle

// masks maps the sixteen hex values to their lit segments.
var masks = [16]uint8{
	0b0111111, // 0
	0b0101000, // 1
	0b1011011, // 2
	0b1101011, // 3
	0b1101100, // 4
	0b1100111, // 5
	0b1110111, // 6
	0b0101001, // 7
	0b1111111, // 8
	0b1101111, // 9
	0b1111101, // a
	0b1110110, // b
	0b0010111, // c
	0b1111010, // d
	0b1010111, // e
	0b1010101, // f
}

// MaskFor returns the segment mask for a hex value 0 through 15.
func MaskFor(n int) (uint8, bool) {
	if n < 0 || n > 15 {
		return 0, false
	}
	return masks[n], true
}

// MaskForRune returns the segment mask for a hex digit rune, accepting
// 0-9, a-f and A-F.
func MaskForRune(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return masks[r-'0'], true
	case r >= 'a' && r <= 'f':
		return masks[r-'a'+10], true
	case r >= 'A' && r <= 'F':
		return masks[r-'A'+10], true
	}
	return 0, false
}
