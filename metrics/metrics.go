// Package metrics exports the escrow activity to prometheus.
package metrics

import (
	"time"

	"github.com/iov-one/remit/x/remittance"
	"github.com/prometheus/client_golang/prometheus"
)

const SuccessLabel = "success"
const FailLabel = "fail"

const namespace = "remit"

func IncCounterVecWithLabelValues(counter *prometheus.CounterVec, name string, err error) {
	label := SuccessLabel
	if err != nil {
		label = FailLabel
	}
	counter.WithLabelValues(name, label).Inc()
}

// Metrics counts ledger events and actions. It is an event sink and an
// action observer of the app.
type Metrics struct {
	events   *prometheus.CounterVec
	value    *prometheus.CounterVec
	actions  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ remittance.EventSink = (*Metrics)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Committed ledger events by kind.",
		}, []string{"kind"}),
		value: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "value_total",
			Help:      "Value moved by committed ledger events, by kind.",
		}, []string{"kind"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Ledger actions by name and result.",
		}, []string{"action", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_microseconds",
			Help:      "Time spent running ledger actions.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}, []string{"action"}),
	}
	for _, c := range []prometheus.Collector{m.events, m.value, m.actions, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Emit counts the event and the value it carries.
func (m *Metrics) Emit(e remittance.Event) error {
	m.events.WithLabelValues(e.Kind()).Inc()
	m.value.WithLabelValues(e.Kind()).Add(float64(eventValue(e)))
	return nil
}

// ObserveAction records the result and duration of a ledger action.
func (m *Metrics) ObserveAction(action string, err error, elapsed time.Duration) {
	IncCounterVecWithLabelValues(m.actions, action, err)
	m.duration.WithLabelValues(action).Observe(float64(elapsed.Microseconds()))
}

func eventValue(e remittance.Event) uint64 {
	switch e := e.(type) {
	case remittance.DepositEvent:
		return e.Value.Uint64()
	case remittance.TransferEvent:
		return e.Value.Uint64()
	case remittance.WithdrawEvent:
		return e.Value.Uint64()
	default:
		return 0
	}
}
