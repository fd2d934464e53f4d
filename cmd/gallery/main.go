// Command gallery renders named widget variants to PNG files without a
// display. Variants come from a TOML file of [kind.name] tables, one
// per image, where kind is dial, led or digit and the table keys
// override fields of that widget's DefaultConfig:
//
//	[output]
//	dir = "gallery"
//	workers = 4
//
//	[dial.quadrant]
//	start = 90
//	extent = -90
//	min = 0
//	max = 25
//
//	[led.alarm]
//	diode = "red"
//	on = true
//	blinkrate = "250ms"
//
//	[digit.blank]
//	value = -1
//
// Settings can also be overridden with VIEWIDGET_ environment
// variables, for example VIEWIDGET_OUTPUT_DIR. Without a config file
// the stock variant of each widget is rendered.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/abetterautomation/viewidget/pkg/capture"
	vtheme "github.com/abetterautomation/viewidget/pkg/theme"
	"github.com/abetterautomation/viewidget/pkg/widgets/dial"
	"github.com/abetterautomation/viewidget/pkg/widgets/digit"
	"github.com/abetterautomation/viewidget/pkg/widgets/led"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

func main() {
	cfgPath := flag.String("config", "gallery.toml", "variant definitions, TOML")
	outDir := flag.String("out", "", "override the output directory")
	flag.Parse()

	v := newConfig()
	v.SetConfigFile(*cfgPath)
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("read %s: %v", *cfgPath, err)
		}
		log.Printf("%s not found, rendering the stock set", *cfgPath)
	}
	if *outDir != "" {
		v.Set("output.dir", *outDir)
	}

	// The test driver paints entirely in memory, so rendering works
	// without a display server.
	test.NewApp().Settings().SetTheme(&vtheme.ViewTheme{})

	if err := renderAll(v); err != nil {
		log.Fatal(err)
	}
}

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("output.dir", "gallery")
	v.SetDefault("output.workers", 4)
	v.SetConfigType("toml")
	v.SetEnvPrefix("VIEWIDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// job builds one widget and names its output file.
type job struct {
	kind, name string
	build      func() (fyne.CanvasObject, error)
}

func jobs(v *viper.Viper) []job {
	var out []job
	for _, name := range names(v, "dial") {
		out = append(out, job{"dial", name, func() (fyne.CanvasObject, error) {
			return buildDial(v, name)
		}})
	}
	for _, name := range names(v, "led") {
		out = append(out, job{"led", name, func() (fyne.CanvasObject, error) {
			return buildLED(v, name)
		}})
	}
	for _, name := range names(v, "digit") {
		out = append(out, job{"digit", name, func() (fyne.CanvasObject, error) {
			return buildDigit(v, name)
		}})
	}
	if len(out) == 0 {
		out = []job{
			{"dial", "stock", func() (fyne.CanvasObject, error) { return buildDial(v, "stock") }},
			{"led", "stock", func() (fyne.CanvasObject, error) { return buildLED(v, "stock") }},
			{"digit", "stock", func() (fyne.CanvasObject, error) { return buildDigit(v, "stock") }},
		}
	}
	return out
}

func renderAll(v *viper.Viper) error {
	dir := v.GetString("output.dir")
	workers := v.GetInt("output.workers")
	if workers < 1 {
		workers = 1
	}

	th := &vtheme.ViewTheme{}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, j := range jobs(v) {
		g.Go(func() error {
			obj, err := j.build()
			if err != nil {
				return fmt.Errorf("%s %s: %w", j.kind, j.name, err)
			}
			filename := filepath.Join(dir, j.kind+"-"+j.name+".png")
			if err := capture.Save(capture.Snapshot(obj, th), filename); err != nil {
				return err
			}
			log.Println("rendered", filename)
			return nil
		})
	}
	return g.Wait()
}

// names lists the variant tables under a kind, sorted for a stable
// render order.
func names(v *viper.Viper, kind string) []string {
	m := v.GetStringMap(kind)
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// decode overlays the keys of a [kind.name] table onto cfg, leaving
// absent fields at their defaults. A missing table keeps cfg as is, so
// the stock fallbacks need no tables at all.
func decode(v *viper.Viper, key string, cfg any) error {
	sub := v.Sub(key)
	if sub == nil {
		return nil
	}
	if err := sub.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func buildDial(v *viper.Viper, name string) (fyne.CanvasObject, error) {
	cfg := dial.DefaultConfig()
	if err := decode(v, "dial."+name, &cfg); err != nil {
		return nil, err
	}
	d, err := dial.New(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range d.Warnings() {
		log.Printf("dial %s: %s", name, w)
	}
	return d, nil
}

func buildLED(v *viper.Viper, name string) (fyne.CanvasObject, error) {
	cfg := led.DefaultConfig()
	if err := decode(v, "led."+name, &cfg); err != nil {
		return nil, err
	}
	l, err := led.New(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range l.Warnings() {
		log.Printf("led %s: %s", name, w)
	}
	return l, nil
}

func buildDigit(v *viper.Viper, name string) (fyne.CanvasObject, error) {
	cfg := digit.DefaultConfig()
	if err := decode(v, "digit."+name, &cfg); err != nil {
		return nil, err
	}
	return digit.New(cfg)
}
