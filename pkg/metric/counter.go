package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Namespace prefixes every metric exported by navd.
const Namespace = "navd"

// Counter is a labeled prometheus counter vector.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Value returns the current count for the given label values.
func (c *Counter) Value(val ...string) float64 {
	var m dto.Metric
	if err := c.vec.WithLabelValues(val...).Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// NewCounterWithRegistry registers a namespaced counter vector with reg.
// A counter already registered under the same name is reused.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)

	if err := reg.Register(counter); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(err)
		}
		counter = are.ExistingCollector.(*prometheus.CounterVec)
	}

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
