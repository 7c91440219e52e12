// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/aibor/assetfs/memory"
)

// metrics collects allocation metrics if enabled. The zero value is
// disabled.
type metrics struct {
	registry *prometheus.Registry
	alloc    *memory.Instrumented
}

func newMetrics(enabled bool) (*metrics, error) {
	if !enabled {
		return &metrics{}, nil
	}

	registry := prometheus.NewRegistry()

	alloc, err := memory.NewInstrumented(nil, registry, name)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	return &metrics{
		registry: registry,
		alloc:    alloc,
	}, nil
}

// allocator returns the instrumented allocator or nil if disabled.
func (m *metrics) allocator() memory.Allocator {
	if m.alloc == nil {
		return nil
	}

	return m.alloc
}

// print writes all metrics in text exposition format.
func (m *metrics) print(w io.Writer) error {
	if m.registry == nil {
		return nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, family := range families {
		_, err := expfmt.MetricFamilyToText(w, family)
		if err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}
