// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memory

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Allocator = (*Instrumented)(nil)

// Instrumented is an [Allocator] that exports allocation metrics.
type Instrumented struct {
	parent     Allocator
	allocs     prometheus.Counter
	allocBytes prometheus.Counter
	failures   prometheus.Counter
	frees      prometheus.Counter
	inUse      prometheus.Gauge
}

// NewInstrumented returns an [Instrumented] allocator that allocates from
// parent and registers its metrics with reg. A nil parent uses [Heap].
func NewInstrumented(
	parent Allocator,
	reg prometheus.Registerer,
	namespace string,
) (*Instrumented, error) {
	alloc := &Instrumented{
		parent: OrHeap(parent),
		allocs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "memory",
			Name:      "allocations_total",
			Help:      "Number of successful buffer allocations.",
		}),
		allocBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "memory",
			Name:      "allocated_bytes_total",
			Help:      "Number of bytes allocated.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "memory",
			Name:      "allocation_failures_total",
			Help:      "Number of failed buffer allocations.",
		}),
		frees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "memory",
			Name:      "frees_total",
			Help:      "Number of buffers freed.",
		}),
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "memory",
			Name:      "in_use_bytes",
			Help:      "Number of bytes currently allocated.",
		}),
	}

	collectors := []prometheus.Collector{
		alloc.allocs,
		alloc.allocBytes,
		alloc.failures,
		alloc.frees,
		alloc.inUse,
	}

	var errs []error

	for _, collector := range collectors {
		err := reg.Register(collector)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	return alloc, nil
}

// Alloc implements [Allocator].
func (i *Instrumented) Alloc(size int) ([]byte, error) {
	buf, err := i.parent.Alloc(size)
	if err != nil {
		i.failures.Inc()
		return nil, err
	}

	i.allocs.Inc()
	i.allocBytes.Add(float64(len(buf)))
	i.inUse.Add(float64(len(buf)))

	return buf, nil
}

// Free implements [Allocator].
func (i *Instrumented) Free(buf []byte) {
	i.frees.Inc()
	i.inUse.Sub(float64(len(buf)))
	i.parent.Free(buf)
}
