package ebus_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/abetterautomation/viewidget/pkg/ebus"
)

func waitValue(t *testing.T, ch <-chan float64) float64 {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a value")
		return 0
	}
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name string // description of this test case
		// Named input parameters for target function.
		topic   string
		value   float64
		wantErr bool
	}{
		{
			name:  "plain value",
			topic: "publish.test",
			value: 1.23,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr := ebus.Publish(tt.topic, tt.value)
			if gotErr != nil {
				if !tt.wantErr {
					t.Errorf("Publish() failed: %v", gotErr)
				}
				return
			}
			if tt.wantErr {
				t.Fatal("Publish() succeeded unexpectedly")
			}
		})
	}
}

func TestSubscribe(t *testing.T) {
	ch := ebus.Subscribe("subscribe.test")
	if ch == nil {
		t.Fatal("Subscribe() returned a nil channel")
	}
	ebus.Publish("subscribe.test", 3.14)
	if v := waitValue(t, ch); v != 3.14 {
		t.Errorf("Subscribe() got %v, want 3.14", v)
	}
	ebus.Unsubscribe(ch)
}

func TestSubscribeFunc(t *testing.T) {
	done := make(chan float64, 1)
	cleanup := ebus.SubscribeFunc("subscribefunc.test", func(v float64) {
		done <- v
	})
	if cleanup == nil {
		t.Fatal("SubscribeFunc() returned a nil cleanup function")
	}
	ebus.Publish("subscribefunc.test", 2.71)
	select {
	case v := <-done:
		if v != 2.71 {
			t.Errorf("SubscribeFunc() got %v, want 2.71", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the callback")
	}
	cleanup()
}

func TestSubscribeReplaysLastValue(t *testing.T) {
	first := ebus.Subscribe("replay.test")
	ebus.Publish("replay.test", 42)
	waitValue(t, first)

	// a late subscriber starts out with the remembered value
	second := ebus.Subscribe("replay.test")
	if v := waitValue(t, second); v != 42 {
		t.Errorf("late subscriber got %v, want 42", v)
	}
	ebus.Unsubscribe(first)
	ebus.Unsubscribe(second)
}

func TestPublishDedupes(t *testing.T) {
	ch := ebus.Subscribe("dedupe.test")
	ebus.Publish("dedupe.test", 5)
	if v := waitValue(t, ch); v != 5 {
		t.Fatalf("got %v, want 5", v)
	}
	// the repeat is suppressed, so the next delivery is the new value
	ebus.Publish("dedupe.test", 5)
	ebus.Publish("dedupe.test", 6)
	if v := waitValue(t, ch); v != 6 {
		t.Errorf("got %v, want 6", v)
	}
	ebus.Unsubscribe(ch)
}

// Exercises dispatch against concurrent subscribe, unsubscribe and
// aggregator registration; run with -race to make it bite.
func TestConcurrentSubscribePublish(t *testing.T) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			ebus.Publish("churn.test", float64(i))
		}
	}()

	for i := 0; i < 25; i++ {
		ch := ebus.Subscribe("churn.test")
		all := ebus.SubscribeAll()
		ebus.RegisterAggregator(ebus.SpanAggregator(fmt.Sprintf("churn.test.%d", i)))
		ebus.Unsubscribe(ch)
		ebus.UnsubscribeAll(all)
	}

	close(done)
	wg.Wait()
}

func TestSmoothingAggregator(t *testing.T) {
	ebus.RegisterAggregator(ebus.SmoothingAggregator("smooth.in", "smooth.out", 0.5))
	out := ebus.Subscribe("smooth.out")

	ebus.Publish("smooth.in", 10)
	if v := waitValue(t, out); v != 10 {
		t.Fatalf("seed average = %v, want 10", v)
	}
	ebus.Publish("smooth.in", 20)
	if v := waitValue(t, out); v != 15 {
		t.Errorf("smoothed value = %v, want 15", v)
	}
	ebus.Unsubscribe(out)
}

func TestSpanAggregator(t *testing.T) {
	ebus.RegisterAggregator(ebus.SpanAggregator("span.test"))
	minCh := ebus.Subscribe("span.test.min")
	maxCh := ebus.Subscribe("span.test.max")

	ebus.Publish("span.test", 5)
	if v := waitValue(t, minCh); v != 5 {
		t.Fatalf("min = %v, want 5", v)
	}
	if v := waitValue(t, maxCh); v != 5 {
		t.Fatalf("max = %v, want 5", v)
	}

	// a higher reading moves only the max
	ebus.Publish("span.test", 9)
	if v := waitValue(t, maxCh); v != 9 {
		t.Errorf("max = %v, want 9", v)
	}
	// a lower one moves only the min
	ebus.Publish("span.test", 2)
	if v := waitValue(t, minCh); v != 2 {
		t.Errorf("min = %v, want 2", v)
	}

	ebus.Unsubscribe(minCh)
	ebus.Unsubscribe(maxCh)
}
