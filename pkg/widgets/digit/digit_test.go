package digit_test

import (
	"errors"
	"testing"

	"github.com/abetterautomation/viewidget/pkg/colors"
	"github.com/abetterautomation/viewidget/pkg/widgets/digit"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string // description of this test case
		mutate  func(*digit.Config)
		wantErr error
	}{
		{
			name:   "defaults",
			mutate: func(c *digit.Config) {},
		},
		{
			name:    "zero size",
			mutate:  func(c *digit.Config) { c.Size = 0 },
			wantErr: digit.ErrSize,
		},
		{
			name:    "negative size",
			mutate:  func(c *digit.Config) { c.Size = -10 },
			wantErr: digit.ErrSize,
		},
		{
			name:    "unknown foreground",
			mutate:  func(c *digit.Config) { c.Foreground = "notacolor" },
			wantErr: colors.ErrUnknownColor,
		},
		{
			name:    "unknown background",
			mutate:  func(c *digit.Config) { c.Background = "alsonotacolor" },
			wantErr: colors.ErrUnknownColor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := digit.DefaultConfig()
			tt.mutate(&cfg)
			d, gotErr := digit.New(cfg)
			if gotErr != nil {
				if !errors.Is(gotErr, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", gotErr, tt.wantErr)
				}
				return
			}
			if tt.wantErr != nil {
				t.Fatal("New() succeeded unexpectedly")
			}
			if d == nil {
				t.Fatal("New() returned nil digit without error")
			}
		})
	}
}

func TestInitialValue(t *testing.T) {
	tests := []struct {
		name  string // description of this test case
		value int
		want  uint8
	}{
		{
			name:  "default shows zero",
			value: 0,
			want:  digit.AllSegments &^ digit.SegMiddle,
		},
		{
			name:  "explicit value",
			value: 3,
			want:  digit.SegTop | digit.SegBottom | digit.SegTopRight | digit.SegBottomRight | digit.SegMiddle,
		},
		{
			name:  "blank",
			value: digit.Blank,
			want:  0,
		},
		{
			name:  "out of range keeps the full eight",
			value: 42,
			want:  digit.AllSegments,
		},
		{
			name:  "other negative keeps the full eight",
			value: -3,
			want:  digit.AllSegments,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := digit.DefaultConfig()
			cfg.Value = tt.value
			d, err := digit.New(cfg)
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			if got := d.Mask(); got != tt.want {
				t.Errorf("Mask() = %07b, want %07b", got, tt.want)
			}
		})
	}
}

func TestSetValue(t *testing.T) {
	tests := []struct {
		name  string // description of this test case
		value int
		want  uint8
	}{
		{
			name:  "zero",
			value: 0,
			want:  digit.AllSegments &^ digit.SegMiddle,
		},
		{
			name:  "one",
			value: 1,
			want:  digit.SegTopRight | digit.SegBottomRight,
		},
		{
			name:  "four",
			value: 4,
			want:  digit.SegTopLeft | digit.SegTopRight | digit.SegBottomRight | digit.SegMiddle,
		},
		{
			name:  "seven",
			value: 7,
			want:  digit.SegTop | digit.SegTopRight | digit.SegBottomRight,
		},
		{
			name:  "fifteen",
			value: 15,
			want:  digit.SegTop | digit.SegTopLeft | digit.SegBottomLeft | digit.SegMiddle,
		},
		{
			name:  "blank sentinel",
			value: digit.Blank,
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := digit.New(digit.DefaultConfig())
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			d.SetValue(tt.value)
			if got := d.Mask(); got != tt.want {
				t.Errorf("Mask() = %07b, want %07b", got, tt.want)
			}
		})
	}
}

func TestSetValueOutOfRange(t *testing.T) {
	d, err := digit.New(digit.DefaultConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	d.SetValue(5)
	before := d.Mask()
	d.SetValue(16)
	d.SetValue(-3)
	if got := d.Mask(); got != before {
		t.Errorf("Mask() = %07b after out of range values, want %07b", got, before)
	}
}

func TestSetRune(t *testing.T) {
	tests := []struct {
		name string // description of this test case
		r    rune
		want uint8
	}{
		{
			name: "digit rune",
			r:    '7',
			want: digit.SegTop | digit.SegTopRight | digit.SegBottomRight,
		},
		{
			name: "lowercase hex",
			r:    'b',
			want: digit.SegBottom | digit.SegTopLeft | digit.SegBottomLeft | digit.SegBottomRight | digit.SegMiddle,
		},
		{
			name: "uppercase hex",
			r:    'F',
			want: digit.SegTop | digit.SegTopLeft | digit.SegBottomLeft | digit.SegMiddle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := digit.New(digit.DefaultConfig())
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			d.SetRune(tt.r)
			if got := d.Mask(); got != tt.want {
				t.Errorf("Mask() = %07b, want %07b", got, tt.want)
			}
		})
	}
}

func TestSetRuneIgnoresOthers(t *testing.T) {
	d, err := digit.New(digit.DefaultConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	d.SetValue(2)
	before := d.Mask()
	d.SetRune('x')
	d.SetRune(' ')
	if got := d.Mask(); got != before {
		t.Errorf("Mask() = %07b after unknown runes, want %07b", got, before)
	}
}

func TestClearAndSetMask(t *testing.T) {
	d, err := digit.New(digit.DefaultConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	d.Clear()
	if got := d.Mask(); got != 0 {
		t.Errorf("Mask() = %07b after Clear(), want 0", got)
	}
	d.SetMask(digit.SegMiddle | digit.SegTop)
	if got := d.Mask(); got != digit.SegMiddle|digit.SegTop {
		t.Errorf("Mask() = %07b, want middle and top", got)
	}
	// bits past the seven segments are dropped
	d.SetMask(0xFF)
	if got := d.Mask(); got != digit.AllSegments {
		t.Errorf("Mask() = %07b, want all segments", got)
	}
}

func TestSetColors(t *testing.T) {
	d, err := digit.New(digit.DefaultConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := d.SetColors("notacolor", ""); !errors.Is(err, colors.ErrUnknownColor) {
		t.Errorf("SetColors() error = %v, want %v", err, colors.ErrUnknownColor)
	}
	if err := d.SetColors("green", "gray20"); err != nil {
		t.Errorf("SetColors() failed: %v", err)
	}
}

func TestMinSize(t *testing.T) {
	d, err := digit.New(digit.DefaultConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	got := d.CreateRenderer().MinSize()
	if got.Height != 100 {
		t.Errorf("MinSize().Height = %v, want 100", got.Height)
	}
	if got.Width < 66 || got.Width > 67 {
		t.Errorf("MinSize().Width = %v, want two thirds of the height", got.Width)
	}
}
