package windows

import (
	"os"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/abetterautomation/viewidget/pkg/ebus"
	"github.com/abetterautomation/viewidget/pkg/widgets/digit"
)

func TestMain(m *testing.M) {
	// page widgets repaint through fyne.Do, which needs a driver
	test.NewApp()
	os.Exit(m.Run())
}

func mask(t *testing.T, n int) uint8 {
	t.Helper()
	m, ok := digit.MaskFor(n)
	if !ok {
		t.Fatalf("no segment mask for %d", n)
	}
	return m
}

func TestClockDigits(t *testing.T) {
	tests := []struct {
		name string // description of this test case
		at   time.Time
		want [4]int // -1 for a blank figure
	}{
		{
			name: "afternoon blanks the leading digit",
			at:   time.Date(2026, 8, 27, 15, 4, 0, 0, time.UTC),
			want: [4]int{-1, 3, 0, 4},
		},
		{
			name: "midnight reads twelve",
			at:   time.Date(2026, 8, 27, 0, 30, 0, 0, time.UTC),
			want: [4]int{1, 2, 3, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewClockPage()
			defer p.Close()
			p.setDigits(tt.at)
			for i, n := range tt.want {
				var w uint8
				if n >= 0 {
					w = mask(t, n)
				}
				if got := p.digits[i].Mask(); got != w {
					t.Errorf("digit %d mask = %#x, want %#x", i, got, w)
				}
			}
		})
	}
}

func TestLEDPageBusBinding(t *testing.T) {
	p := NewLEDPage()
	defer p.Close()

	if err := ebus.Publish(LEDTopic, 0.25); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for p.lamp.Brightness() != 0.25 {
		if time.Now().After(deadline) {
			t.Fatalf("Brightness() = %v, want 0.25", p.lamp.Brightness())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
