package ebus

// AggregatorFunc inspects every published value and may publish derived
// topics of its own.
type AggregatorFunc func(topic string, value float64)

type Aggregator struct {
	fun AggregatorFunc
}

func RegisterAggregator(aggs ...*Aggregator) {
	aggregatorsLock.Lock()
	defer aggregatorsLock.Unlock()
outer:
	for _, agg := range aggs {
		for _, existing := range aggregators {
			if existing == agg {
				continue outer
			}
		}
		aggregators = append(aggregators, agg)
	}
}

// SmoothingAggregator publishes an exponential moving average of topic
// under outputTopic. alpha sets how far each reading moves the average,
// 1 tracking the raw value and small values damping needle jitter.
func SmoothingAggregator(topic, outputTopic string, alpha float64) *Aggregator {
	var seeded bool
	var avg float64
	return &Aggregator{
		fun: func(name string, value float64) {
			if name != topic {
				return
			}
			if !seeded {
				avg = value
				seeded = true
			} else {
				avg += alpha * (value - avg)
			}
			Publish(outputTopic, avg)
		},
	}
}

// SpanAggregator tracks the lowest and highest readings of a topic and
// republishes them under topic.min and topic.max.
func SpanAggregator(topic string) *Aggregator {
	var seeded bool
	var lo, hi float64
	return &Aggregator{
		fun: func(name string, value float64) {
			if name != topic {
				return
			}
			if !seeded {
				lo, hi = value, value
				seeded = true
			}
			if value < lo {
				lo = value
			}
			if value > hi {
				hi = value
			}
			Publish(topic+".min", lo)
			Publish(topic+".max", hi)
		},
	}
}
