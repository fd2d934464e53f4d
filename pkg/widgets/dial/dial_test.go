package dial_test

import (
	"errors"
	"testing"

	"github.com/abetterautomation/viewidget/pkg/widgets/dial"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string // description of this test case
		mutate  func(*dial.Config)
		wantErr error
	}{
		{
			name:   "defaults",
			mutate: func(c *dial.Config) {},
		},
		{
			name:    "zero size",
			mutate:  func(c *dial.Config) { c.Size = 0 },
			wantErr: dial.ErrSize,
		},
		{
			name:    "negative size",
			mutate:  func(c *dial.Config) { c.Size = -20 },
			wantErr: dial.ErrSize,
		},
		{
			name:    "negative casewidth",
			mutate:  func(c *dial.Config) { c.CaseWidth = -1 },
			wantErr: dial.ErrCaseWidth,
		},
		{
			name:   "zero casewidth",
			mutate: func(c *dial.Config) { c.CaseWidth = 0 },
		},
		{
			name:    "start at 360",
			mutate:  func(c *dial.Config) { c.Start = 360 },
			wantErr: dial.ErrStart,
		},
		{
			name:    "start below -360",
			mutate:  func(c *dial.Config) { c.Start = -400 },
			wantErr: dial.ErrStart,
		},
		{
			name:    "extent past 360",
			mutate:  func(c *dial.Config) { c.Extent = 361 },
			wantErr: dial.ErrExtent,
		},
		{
			name:   "extent of exactly 360",
			mutate: func(c *dial.Config) { c.Extent = 360 },
		},
		{
			name:    "min equal to max",
			mutate:  func(c *dial.Config) { c.Min = 100; c.Max = 100 },
			wantErr: dial.ErrEqualRange,
		},
		{
			name:    "zero majorscale",
			mutate:  func(c *dial.Config) { c.MajorScale = 0 },
			wantErr: dial.ErrMajorScale,
		},
		{
			name:    "negative semimajorscale",
			mutate:  func(c *dial.Config) { c.SemiMajorScale = -5 },
			wantErr: dial.ErrSemiMajorScale,
		},
		{
			name:    "negative minorscale",
			mutate:  func(c *dial.Config) { c.MinorScale = -1 },
			wantErr: dial.ErrMinorScale,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := dial.DefaultConfig()
			tt.mutate(&cfg)
			d, gotErr := dial.New(cfg)
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
				t.Fatal("New() returned nil dial without error")
			}
		})
	}
}

func TestNewWarnings(t *testing.T) {
	tests := []struct {
		name   string // description of this test case
		mutate func(*dial.Config)
		want   int
		check  func(t *testing.T, d *dial.Dial)
	}{
		{
			name:   "defaults are silent",
			mutate: func(c *dial.Config) {},
			want:   0,
		},
		{
			name:   "reversed range counts down",
			mutate: func(c *dial.Config) { c.Min = 220; c.Max = 60 },
			want:   1,
		},
		{
			name:   "semimajorscale above majorscale is dropped",
			mutate: func(c *dial.Config) { c.SemiMajorScale = 25 },
			want:   1,
			check: func(t *testing.T, d *dial.Dial) {
				if got := d.Config().SemiMajorScale; got != 0 {
					t.Errorf("SemiMajorScale = %v, want 0", got)
				}
			},
		},
		{
			name:   "semimajorscale not a factor is dropped",
			mutate: func(c *dial.Config) { c.SemiMajorScale = 7 },
			want:   1,
			check: func(t *testing.T, d *dial.Dial) {
				if got := d.Config().SemiMajorScale; got != 0 {
					t.Errorf("SemiMajorScale = %v, want 0", got)
				}
			},
		},
		{
			name: "fractional factor survives float rounding",
			mutate: func(c *dial.Config) {
				c.Min, c.Max = 0, 3
				c.MajorScale, c.SemiMajorScale, c.MinorScale = 0.3, 0.1, 0.05
			},
			want: 0,
			check: func(t *testing.T, d *dial.Dial) {
				if got := d.Config().SemiMajorScale; got != 0.1 {
					t.Errorf("SemiMajorScale = %v, want 0.1", got)
				}
			},
		},
		{
			name:   "oversized case is shrunk",
			mutate: func(c *dial.Config) { c.Size = 100; c.CaseWidth = 40 },
			want:   1,
			check: func(t *testing.T, d *dial.Dial) {
				if got := d.Config().CaseWidth; got != 10 {
					t.Errorf("CaseWidth = %v, want 10", got)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := dial.DefaultConfig()
			tt.mutate(&cfg)
			d, err := dial.New(cfg)
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			if got := len(d.Warnings()); got != tt.want {
				t.Errorf("Warnings() returned %d entries, want %d: %v", got, tt.want, d.Warnings())
			}
			if tt.check != nil {
				tt.check(t, d)
			}
		})
	}
}

func TestSetValue(t *testing.T) {
	tests := []struct {
		name     string // description of this test case
		value    float64
		wantText string
		wantOut  bool
	}{
		{
			name:     "in range",
			value:    135.7,
			wantText: "135.7",
		},
		{
			name:     "at the minimum",
			value:    60,
			wantText: "60.0",
		},
		{
			name:     "above the maximum",
			value:    250,
			wantText: "250.0",
			wantOut:  true,
		},
		{
			name:     "below the minimum",
			value:    40,
			wantText: "40.0",
			wantOut:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := dial.New(dial.DefaultConfig())
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			d.SetValue(tt.value)
			if got := d.Value(); got != tt.value {
				t.Errorf("Value() = %v, want %v", got, tt.value)
			}
			if got := d.Readout(); got != tt.wantText {
				t.Errorf("Readout() = %q, want %q", got, tt.wantText)
			}
			if got := d.OutOfRange(); got != tt.wantOut {
				t.Errorf("OutOfRange() = %v, want %v", got, tt.wantOut)
			}
		})
	}
}

func TestSetValueRounding(t *testing.T) {
	tests := []struct {
		name    string // description of this test case
		roundTo int
		value   float64
		want    string
	}{
		{
			name:    "integer readout",
			roundTo: 0,
			value:   135.7,
			want:    "136",
		},
		{
			name:    "two decimals",
			roundTo: 2,
			value:   135.7,
			want:    "135.70",
		},
		{
			name:    "negative rounds like zero",
			roundTo: -2,
			value:   99.4,
			want:    "99",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := dial.DefaultConfig()
			cfg.RoundTo = tt.roundTo
			d, err := dial.New(cfg)
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			d.SetValue(tt.value)
			if got := d.Readout(); got != tt.want {
				t.Errorf("Readout() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitialValue(t *testing.T) {
	d, err := dial.New(dial.DefaultConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := d.Value(); got != 60 {
		t.Errorf("Value() = %v, want the scale minimum 60", got)
	}
	if got := d.Readout(); got != "60.0" {
		t.Errorf("Readout() = %q, want \"60.0\"", got)
	}

	cfg := dial.DefaultConfig()
	cfg.Value = 112
	d, err = dial.New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := d.Value(); got != 112 {
		t.Errorf("Value() = %v, want 112", got)
	}
}

func TestUnboundNeverOutOfRange(t *testing.T) {
	tests := []struct {
		name   string // description of this test case
		mutate func(*dial.Config)
		value  float64
	}{
		{
			name:   "unbound dial past the end",
			mutate: func(c *dial.Config) { c.Bound = false },
			value:  250,
		},
		{
			name:   "unbound dial before the start",
			mutate: func(c *dial.Config) { c.Bound = false },
			value:  40,
		},
		{
			name: "full circle wraps without flagging",
			mutate: func(c *dial.Config) {
				c.Start, c.Extent = 90, -360
				c.Min, c.Max = 0, 360
				c.MajorScale, c.SemiMajorScale, c.MinorScale = 45, 0, 15
			},
			value: 400,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := dial.DefaultConfig()
			tt.mutate(&cfg)
			d, err := dial.New(cfg)
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			d.SetValue(tt.value)
			if d.OutOfRange() {
				t.Errorf("OutOfRange() = true at %v on an unbound gauge", tt.value)
			}
		})
	}
}

func TestReversedScale(t *testing.T) {
	cfg := dial.DefaultConfig()
	cfg.Min = 220
	cfg.Max = 60
	d, err := dial.New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	d.SetValue(230)
	if !d.OutOfRange() {
		t.Error("OutOfRange() = false for a value above a descending scale")
	}
	d.SetValue(140)
	if d.OutOfRange() {
		t.Error("OutOfRange() = true for a value inside a descending scale")
	}
	d.SetValue(50)
	if !d.OutOfRange() {
		t.Error("OutOfRange() = false for a value below a descending scale")
	}
}

func TestFullCircleUnbinds(t *testing.T) {
	cfg := dial.DefaultConfig()
	cfg.Extent = 360
	d, err := dial.New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if d.Config().Bound {
		t.Error("Config().Bound = true on a full circle scale")
	}
}

func TestUnitDegreeSubstitution(t *testing.T) {
	tests := []struct {
		name string // description of this test case
		unit string
		want string
	}{
		{
			name: "degF",
			unit: "degF",
			want: "°F",
		},
		{
			name: "plain unit",
			unit: "psi",
			want: "psi",
		},
		{
			name: "empty",
			unit: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := dial.DefaultConfig()
			cfg.Unit = tt.unit
			d, err := dial.New(cfg)
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			if got := d.Config().Unit; got != tt.want {
				t.Errorf("Config().Unit = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMinSize(t *testing.T) {
	cfg := dial.DefaultConfig()
	d, err := dial.New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	// face plus case plus drop shadow
	got := d.CreateRenderer().MinSize()
	if got.Width != 317 || got.Height != 317 {
		t.Errorf("MinSize() = %v, want 317x317", got)
	}
}
