// Copyright 2014 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coremetrics/coremetrics/model"
)

func TestGaugeSetAdd(t *testing.T) {
	g := MustNewGauge(GaugeOpts{Name: "queue_depth", Help: "Items queued."})

	require.NoError(t, g.Set(42.5))
	require.NoError(t, g.Add(-2.5))
	require.NoError(t, g.Inc())
	require.NoError(t, g.Dec())

	m := g.Collect()
	require.Len(t, m.Gauges, 1)
	assert.Equal(t, 40.0, m.Gauges[0].Value)
}

func TestGaugeAcceptsAnyValue(t *testing.T) {
	g := MustNewGauge(GaugeOpts{Name: "temperature"})

	require.NoError(t, g.Set(-273.15))
	assert.Equal(t, -273.15, g.Collect().Gauges[0].Value)

	require.NoError(t, g.Set(math.NaN()))
	assert.True(t, math.IsNaN(g.Collect().Gauges[0].Value))

	require.NoError(t, g.Set(math.Inf(+1)))
	assert.True(t, math.IsInf(g.Collect().Gauges[0].Value, +1))
}

func TestGaugeWithLabelValues(t *testing.T) {
	g := MustNewGauge(GaugeOpts{Name: "queue_depth", LabelNames: []string{"queue"}})

	high, err := g.WithLabelValues("high")
	require.NoError(t, err)
	low, err := g.WithLabelValues("low")
	require.NoError(t, err)

	high.Set(10)
	high.Sub(3)
	low.Inc()
	low.Inc()
	low.Dec()

	m := g.Collect()
	require.Len(t, m.Gauges, 2)
	assert.Equal(t, 7.0, m.Gauges[0].Value)
	assert.Equal(t, 1.0, m.Gauges[1].Value)
}

func TestGaugeSetWithExemplar(t *testing.T) {
	fixedClock(t, 1672850685829)
	g := MustNewGauge(GaugeOpts{Name: "queue_depth"})

	ch, err := g.WithLabelValues()
	require.NoError(t, err)
	require.NoError(t, ch.SetWithExemplar(7, model.MustNewLabels("span_id", "12345")))

	m := g.Collect()
	require.Len(t, m.Gauges, 1)
	ex := m.Gauges[0].Exemplar
	require.NotNil(t, ex)
	assert.Equal(t, 7.0, ex.Value)
	assert.True(t, ex.HasTimestamp)
	assert.Equal(t, int64(1672850685829), ex.TimestampMs)
}

func TestGaugeSetToCurrentTime(t *testing.T) {
	fixedClock(t, 1672850685829)
	g := MustNewGauge(GaugeOpts{Name: "last_run_timestamp_seconds", Unit: "seconds"})

	ch, err := g.WithLabelValues()
	require.NoError(t, err)
	ch.SetToCurrentTime()

	assert.Equal(t, 1672850685.829, g.Collect().Gauges[0].Value)
}

func TestGaugeFunc(t *testing.T) {
	g, err := NewGaugeFunc(GaugeOpts{Name: "goroutines"}, func() float64 { return 12 })
	require.NoError(t, err)

	m := g.Collect()
	require.Len(t, m.Gauges, 1)
	assert.Equal(t, 12.0, m.Gauges[0].Value)

	_, err = NewGaugeFunc(GaugeOpts{Name: "goroutines", LabelNames: []string{"pool"}}, func() float64 { return 0 })
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))
}
