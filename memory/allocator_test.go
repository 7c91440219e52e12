// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memory_test

import (
	"testing"

	"github.com/aibor/assetfs/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap(t *testing.T) {
	buf, err := memory.Heap.Alloc(3)
	require.NoError(t, err)
	assert.Len(t, buf, 3)

	_, err = memory.Heap.Alloc(0)
	require.ErrorIs(t, err, memory.ErrInvalidSize)

	_, err = memory.Heap.Alloc(-1)
	require.ErrorIs(t, err, memory.ErrInvalidSize)
}

func TestLimit(t *testing.T) {
	limit := memory.NewLimit(nil, 10)

	first, err := limit.Alloc(6)
	require.NoError(t, err)
	assert.EqualValues(t, 6, limit.InUse())

	_, err = limit.Alloc(5)
	require.ErrorIs(t, err, memory.ErrAllocation)
	assert.EqualValues(t, 6, limit.InUse(), "failed allocation must not count")

	second, err := limit.Alloc(4)
	require.NoError(t, err)
	assert.EqualValues(t, 10, limit.InUse())

	limit.Free(first)
	limit.Free(second)
	assert.Zero(t, limit.InUse())
}

func TestTracker(t *testing.T) {
	tracker := memory.NewTracker(nil)

	first, err := tracker.Alloc(5)
	require.NoError(t, err)

	second, err := tracker.Alloc(7)
	require.NoError(t, err)

	assert.Equal(t, 2, tracker.Outstanding())
	assert.EqualValues(t, 12, tracker.OutstandingBytes())

	tracker.Free(first)
	tracker.Free(first)

	assert.Equal(t, 1, tracker.Outstanding())
	assert.EqualValues(t, 1, tracker.Frees())
	assert.EqualValues(t, 1, tracker.DoubleFrees())

	tracker.Free(second)
	assert.Zero(t, tracker.Outstanding())
	assert.EqualValues(t, 2, tracker.Allocs())
}

func TestInstrumented(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()

	alloc, err := memory.NewInstrumented(memory.NewLimit(nil, 8), reg, "test")
	require.NoError(t, err)

	buf, err := alloc.Alloc(8)
	require.NoError(t, err)

	_, err = alloc.Alloc(1)
	require.ErrorIs(t, err, memory.ErrAllocation)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	assert.InDelta(t, 8, metricValue(t, reg, "test_memory_in_use_bytes"), 0)
	assert.InDelta(t, 1, metricValue(t, reg, "test_memory_allocation_failures_total"), 0)

	alloc.Free(buf)

	assert.Zero(t, metricValue(t, reg, "test_memory_in_use_bytes"))
	assert.InDelta(t, 1, metricValue(t, reg, "test_memory_frees_total"), 0)
}

func TestInstrumentedDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := memory.NewInstrumented(nil, reg, "test")
	require.NoError(t, err)

	_, err = memory.NewInstrumented(nil, reg, "test")
	require.Error(t, err)
}

func metricValue(t *testing.T, reg prometheus.Gatherer, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

		metric := family.GetMetric()[0]

		return metric.GetGauge().GetValue() + metric.GetCounter().GetValue()
	}

	t.Fatalf("metric %s not found", name)

	return 0
}
