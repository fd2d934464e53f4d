// Package serialfeed reads ASCII readings from a serial port and
// publishes them on the value bus. Each line is either a bare number,
// published on the configured topic, or "name=number", published on
// the named topic.
package serialfeed

import (
	"bufio"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"go.bug.st/serial"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/abetterautomation/viewidget/pkg/ebus"
)

const DefaultTopic = "serial.value"

type Config struct {
	Port  string
	Baud  int
	Topic string
}

type Feed struct {
	cfg Config

	OnMessage func(string)

	badLines  int
	quit      chan struct{}
	closeOnce sync.Once
}

func New(cfg Config) *Feed {
	if cfg.Baud == 0 {
		cfg.Baud = 115200
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	return &Feed{
		cfg:       cfg,
		OnMessage: func(s string) { log.Println(s) },
		quit:      make(chan struct{}),
	}
}

// Stop ends the feed after the current read returns.
func (f *Feed) Stop() {
	f.closeOnce.Do(func() { close(f.quit) })
}

// Run feeds the bus until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	return New(cfg).Start(ctx)
}

// Start opens the port and consumes lines until the context or the feed
// is closed. Lost connections are retried a few times; a port that
// cannot be opened at all fails immediately.
func (f *Feed) Start(ctx context.Context) error {
	retries := 0
	return retry.Do(func() error {
		sp, err := serial.Open(f.cfg.Port, &serial.Mode{BaudRate: f.cfg.Baud})
		if err != nil {
			if retries == 0 {
				return retry.Unrecoverable(err)
			}
			return err
		}
		f.OnMessage(fmt.Sprintf("Connected to %s @ %d baud", f.cfg.Port, f.cfg.Baud))

		errg, gctx := errgroup.WithContext(ctx)

		errg.Go(func() error {
			select {
			case <-f.quit:
			case <-gctx.Done():
			}
			// unblocks the scanner
			return sp.Close()
		})

		errg.Go(func() error {
			scanner := bufio.NewScanner(sp)
			for scanner.Scan() {
				f.consume(strings.TrimSpace(scanner.Text()))
			}
			select {
			case <-f.quit:
				return nil
			default:
			}
			if ctx.Err() != nil {
				return nil
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read %s: %w", f.cfg.Port, err)
			}
			return fmt.Errorf("%s closed", f.cfg.Port)
		})

		return errg.Wait()
	},
		retry.DelayType(retry.FixedDelay),
		retry.Delay(1500*time.Millisecond),
		retry.Attempts(4),
		retry.OnRetry(func(n uint, err error) {
			retries++
			f.OnMessage(fmt.Sprintf("Retry %d: %v", n, err))
		}),
		retry.LastErrorOnly(true),
	)
}

func (f *Feed) consume(line string) {
	if line == "" {
		return
	}
	topic := f.cfg.Topic
	if name, rest, found := strings.Cut(line, "="); found {
		topic, line = strings.TrimSpace(name), strings.TrimSpace(rest)
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(line, ",", "."), 64)
	if err != nil {
		f.badLines++
		f.OnMessage(fmt.Sprintf("serial: bad line %d: %v", f.badLines, err))
		return
	}
	if err := ebus.Publish(topic, value); err != nil {
		f.OnMessage("serial: " + err.Error())
	}
}
