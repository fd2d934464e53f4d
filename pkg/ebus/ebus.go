// Package ebus is the process-wide value bus the demo pages and feeds
// publish widget readings on. Topics carry float64 values; the bus
// remembers the last value per topic for a while so late subscribers
// start out current.
package ebus

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Message pairs a topic with a published value, as delivered to
// SubscribeAll subscribers.
type Message struct {
	Topic string
	Value float64
}

var (
	initOnce  sync.Once
	subs      = make(map[string][]chan float64)
	subsMutex sync.Mutex

	subsAll      = make([]chan Message, 0)
	subsAllMutex sync.Mutex

	inChan       = make(chan Message, 100)
	unsubChan    = make(chan chan float64, 100)
	unsubAllChan = make(chan chan Message, 100)
	cache        *ttlcache.Cache[string, float64]

	aggregators     []*Aggregator
	aggregatorsLock sync.Mutex
)

func init() {
	initOnce.Do(func() {
		cache = ttlcache.New[string, float64](
			ttlcache.WithTTL[string, float64](5 * time.Minute),
		)
		go run()
	})
}

func run() {
	for {
		select {
		case msg := <-inChan:
			// unchanged readings are not worth a repaint downstream
			if v := cache.Get(msg.Topic); v != nil && v.Value() == msg.Value {
				continue
			}
			cache.Set(msg.Topic, msg.Value, ttlcache.DefaultTTL)
			subsAllMutex.Lock()
			for i := 0; i < len(subsAll); i++ {
				select {
				case subsAll[i] <- msg:
				default:
					// a stalled subscriber is dropped, not waited on
					close(subsAll[i])
					subsAll = append(subsAll[:i], subsAll[i+1:]...)
					i--
				}
			}
			subsAllMutex.Unlock()
			subsMutex.Lock()
			for _, sub := range subs[msg.Topic] {
				select {
				case sub <- msg.Value:
				default:
				}
			}
			subsMutex.Unlock()
			aggregatorsLock.Lock()
			aggs := aggregators
			aggregatorsLock.Unlock()
			for _, agg := range aggs {
				agg.fun(msg.Topic, msg.Value)
			}
		case unsub := <-unsubAllChan:
			subsAllMutex.Lock()
			for i, sub := range subsAll {
				if sub == unsub {
					subsAll = append(subsAll[:i], subsAll[i+1:]...)
					close(sub)
					break
				}
			}
			subsAllMutex.Unlock()
		case unsub := <-unsubChan:
			subsMutex.Lock()
		outer:
			for topic, subz := range subs {
				for i, sub := range subz {
					if sub == unsub {
						log.Println("Unsubscribe", topic)
						subs[topic] = append(subz[:i], subz[i+1:]...)
						close(unsub)
						if len(subs[topic]) == 0 {
							delete(subs, topic)
						}
						break outer
					}
				}
			}
			subsMutex.Unlock()
		}
	}
}

// Publish queues a value on a topic. It never blocks; when the bus is
// saturated the value is dropped with an error.
func Publish(topic string, value float64) error {
	select {
	case inChan <- Message{Topic: topic, Value: value}:
		return nil
	default:
		return errors.New("publish channel full")
	}
}

// SubscribeAll delivers every published message. The channel starts
// primed with the remembered value of each live topic; priming happens
// before registration so the dispatcher cannot drop the channel while
// the replay is still filling it.
func SubscribeAll() chan Message {
	respChan := make(chan Message, 100)
	cache.Range(func(item *ttlcache.Item[string, float64]) bool {
		respChan <- Message{Topic: item.Key(), Value: item.Value()}
		return true
	})
	subsAllMutex.Lock()
	subsAll = append(subsAll, respChan)
	subsAllMutex.Unlock()
	return respChan
}

// SubscribeAllFunc runs f for every published message and returns the
// unsubscribe function.
func SubscribeAllFunc(f func(topic string, value float64)) func() {
	respChan := SubscribeAll()
	go func() {
		for msg := range respChan {
			f(msg.Topic, msg.Value)
		}
	}()
	return func() {
		UnsubscribeAll(respChan)
	}
}

func UnsubscribeAll(channel chan Message) {
	unsubAllChan <- channel
}

// SubscribeFunc runs f for every value published on topic and returns
// the unsubscribe function.
func SubscribeFunc(topic string, f func(float64)) func() {
	respChan := Subscribe(topic)
	go func() {
		for v := range respChan {
			f(v)
		}
	}()
	return func() {
		Unsubscribe(respChan)
	}
}

// Subscribe delivers every value published on topic. The channel starts
// primed with the topic's remembered value when there is one.
func Subscribe(topic string) chan float64 {
	log.Println("Subscribe", topic)
	respChan := make(chan float64, 100)
	subsMutex.Lock()
	subs[topic] = append(subs[topic], respChan)
	subsMutex.Unlock()
	if itm := cache.Get(topic); itm != nil {
		respChan <- itm.Value()
	}
	return respChan
}

func Unsubscribe(channel chan float64) {
	unsubChan <- channel
}
