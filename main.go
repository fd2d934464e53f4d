package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/abetterautomation/viewidget/pkg/assets"
	"github.com/abetterautomation/viewidget/pkg/capture"
	"github.com/abetterautomation/viewidget/pkg/debug"
	"github.com/abetterautomation/viewidget/pkg/ebus"
	"github.com/abetterautomation/viewidget/pkg/serialfeed"
	vtheme "github.com/abetterautomation/viewidget/pkg/theme"
	"github.com/abetterautomation/viewidget/pkg/windows"
)

const (
	prefsSelectedTab = "selectedTab"
	prefsSerialPort  = "serialPort"
	prefsSerialBaud  = "serialBaud"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

func main() {
	port := flag.String("port", "", "serial port feeding the live dial, for example COM3 or /dev/ttyUSB0")
	baud := flag.Int("baud", 115200, "serial baud rate")
	trace := flag.Bool("trace", false, "write all bus traffic to debug.log")
	flag.Parse()

	defer debug.Close()

	a := app.NewWithID("com.abetterautomation.viewidget")
	a.Settings().SetTheme(&vtheme.ViewTheme{})
	a.SetIcon(fyne.NewStaticResource("icon.png", assets.IconBytes))

	w := a.NewWindow("viewidget")
	w.Resize(fyne.NewSize(1100, 800))
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyF12 {
			capture.Screenshot(w.Canvas())
		}
	})

	if *trace {
		log.SetOutput(io.MultiWriter(os.Stderr, debug.Writer()))
		ebus.SubscribeAllFunc(func(topic string, value float64) {
			debug.LogRaw(fmt.Sprintf("%s bus %s=%g", time.Now().Format("15:04:05.000"), topic, value))
		})
	}

	dialPage := windows.NewDialPage()
	ledPage := windows.NewLEDPage()
	digitPage := windows.NewDigitPage()
	clockPage := windows.NewClockPage()

	tabs := container.NewAppTabs(
		container.NewTabItem("Dial", dialPage.Content()),
		container.NewTabItem("LED", ledPage.Content()),
		container.NewTabItem("Digit", digitPage.Content()),
		container.NewTabItem("Clock", clockPage.Content()),
	)
	tabs.SetTabLocation(container.TabLocationLeading)
	tabs.OnSelected = func(*container.TabItem) {
		a.Preferences().SetInt(prefsSelectedTab, tabs.SelectedIndex())
	}
	if idx := a.Preferences().Int(prefsSelectedTab); idx > 0 && idx < len(tabs.Items) {
		tabs.SelectIndex(idx)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if *port != "" {
		a.Preferences().SetString(prefsSerialPort, *port)
		a.Preferences().SetInt(prefsSerialBaud, *baud)
		// serial readings land on a raw topic and reach the dial
		// smoothed, so a jittery sensor does not shake the needle
		ebus.RegisterAggregator(ebus.SmoothingAggregator(windows.DialTopic+".raw", windows.DialTopic, 0.4))
		go func() {
			err := serialfeed.Run(ctx, serialfeed.Config{
				Port:  *port,
				Baud:  *baud,
				Topic: windows.DialTopic + ".raw",
			})
			if err != nil {
				log.Println("serialfeed:", err)
				debug.Log("serialfeed: " + err.Error())
			}
		}()
	}

	w.SetOnClosed(func() {
		cancel()
		dialPage.Close()
		ledPage.Close()
		digitPage.Close()
		clockPage.Close()
	})

	w.SetContent(tabs)
	w.ShowAndRun()
}
