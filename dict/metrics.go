package dict

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var dictOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "regiontree_dict_ops_total",
	Help: "Number of dictionary operations",
}, []string{"backend", "op"})

var dictHits = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "regiontree_dict_hits_total",
	Help: "Number of dictionary operations that found an item",
}, []string{"backend", "op"})

var dictItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "regiontree_dict_items",
	Help: "Number of items held by instrumented dictionaries",
}, []string{"backend"})

// Instrumented wraps a Dictionary and records every call.
type Instrumented[T any] struct {
	inner Dictionary[T]
	name  string
	items prometheus.Gauge
}

// Instrument wraps d so each operation is counted under the backend label
// name.
func Instrument[T any](d Dictionary[T], name string) *Instrumented[T] {
	return &Instrumented[T]{
		inner: d,
		name:  name,
		items: dictItems.WithLabelValues(name),
	}
}

func (d *Instrumented[T]) record(op string, hit bool) {
	dictOps.WithLabelValues(d.name, op).Inc()
	if hit {
		dictHits.WithLabelValues(d.name, op).Inc()
	}
}

func (d *Instrumented[T]) Insert(item T) (T, bool) {
	existing, found := d.inner.Insert(item)
	d.record("insert", found)
	if !found {
		d.items.Inc()
	}
	return existing, found
}

func (d *Instrumented[T]) Delete(key T) (T, bool) {
	item, ok := d.inner.Delete(key)
	d.record("delete", ok)
	if ok {
		d.items.Dec()
	}
	return item, ok
}

func (d *Instrumented[T]) DeleteMin() (T, bool) {
	item, ok := d.inner.DeleteMin()
	d.record("delete_min", ok)
	if ok {
		d.items.Dec()
	}
	return item, ok
}

func (d *Instrumented[T]) Find(key T) (T, bool) {
	item, ok := d.inner.Find(key)
	d.record("find", ok)
	return item, ok
}

func (d *Instrumented[T]) FindMin() (T, bool) {
	item, ok := d.inner.FindMin()
	d.record("find_min", ok)
	return item, ok
}

func (d *Instrumented[T]) Len() int {
	return d.inner.Len()
}

func (d *Instrumented[T]) Release() {
	d.items.Sub(float64(d.inner.Len()))
	d.inner.Release()
}

// Unwrap returns the wrapped dictionary.
func (d *Instrumented[T]) Unwrap() Dictionary[T] {
	return d.inner
}
