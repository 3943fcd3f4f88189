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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coremetrics/coremetrics/exemplar"
	"github.com/coremetrics/coremetrics/model"
)

// fixedClock pins timeNow for the duration of the test.
func fixedClock(t *testing.T, ms int64) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return time.UnixMilli(ms) }
	t.Cleanup(func() { timeNow = orig })
}

func TestCounterAdd(t *testing.T) {
	fixedClock(t, 1672850385800)
	c := MustNewCounter(CounterOpts{Name: "http_requests", Help: "Total requests."})
	c.Inc()
	require.NoError(t, c.Add(2.5))

	m := c.Collect()
	require.Len(t, m.Counters, 1)
	d := m.Counters[0]
	assert.Equal(t, 3.5, d.Value)
	assert.Equal(t, 0, d.Labels.Len())
	require.NotNil(t, d.CreatedTimestampMs)
	assert.Equal(t, int64(1672850385800), *d.CreatedTimestampMs)
	assert.Nil(t, d.Exemplar)
}

func TestCounterRejectsInvalidAmounts(t *testing.T) {
	c := MustNewCounter(CounterOpts{Name: "http_requests"})
	require.NoError(t, c.Add(2))

	err := c.Add(-1)
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidAmount))

	err = c.Add(math.NaN())
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidAmount))

	m := c.Collect()
	require.Len(t, m.Counters, 1)
	assert.Equal(t, 2.0, m.Counters[0].Value)
}

func TestCounterWithLabelValues(t *testing.T) {
	c := MustNewCounter(CounterOpts{
		Name:       "http_requests",
		LabelNames: []string{"method", "status"},
	})

	post, err := c.WithLabelValues("POST", "200")
	require.NoError(t, err)
	get, err := c.WithLabelValues("GET", "200")
	require.NoError(t, err)
	post.Inc()
	get.Inc()
	get.Inc()

	// Same values intern to the same cell.
	again, err := c.WithLabelValues("GET", "200")
	require.NoError(t, err)
	again.Inc()

	m := c.Collect()
	require.Len(t, m.Counters, 2)
	assert.Equal(t, model.MustNewLabels("method", "GET", "status", "200").Pairs(), m.Counters[0].Labels.Pairs())
	assert.Equal(t, 3.0, m.Counters[0].Value)
	assert.Equal(t, model.MustNewLabels("method", "POST", "status", "200").Pairs(), m.Counters[1].Labels.Pairs())
	assert.Equal(t, 1.0, m.Counters[1].Value)
}

func TestCounterLabelArity(t *testing.T) {
	c := MustNewCounter(CounterOpts{Name: "http_requests", LabelNames: []string{"method"}})

	_, err := c.WithLabelValues()
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))

	_, err = c.WithLabelValues("GET", "200")
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))

	err = c.Add(1)
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))
}

func TestCounterConcurrentAdd(t *testing.T) {
	c := MustNewCounter(CounterOpts{Name: "events", LabelNames: []string{"kind"}})

	ch, err := c.WithLabelValues("tick")
	require.NoError(t, err)

	const perGoroutine = 1000
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ch.Inc()
			}
		}()
	}
	wg.Wait()

	m := c.Collect()
	require.Len(t, m.Counters, 1)
	assert.Equal(t, float64(4*perGoroutine), m.Counters[0].Value)
}

func TestCounterAddWithExemplar(t *testing.T) {
	fixedClock(t, 1672850685829)
	c := MustNewCounter(CounterOpts{Name: "http_requests"})

	require.NoError(t, c.AddWithExemplar(2, model.MustNewLabels("trace_id", "abcde")))

	m := c.Collect()
	require.Len(t, m.Counters, 1)
	ex := m.Counters[0].Exemplar
	require.NotNil(t, ex)
	assert.Equal(t, 2.0, ex.Value)
	v, ok := ex.Labels.Get("trace_id")
	assert.True(t, ok)
	assert.Equal(t, "abcde", v)
	assert.True(t, ex.HasTimestamp)
	assert.Equal(t, int64(1672850685829), ex.TimestampMs)
}

func TestCounterSampler(t *testing.T) {
	sampler := exemplar.SamplerFunc(func(amount float64, prev *model.Exemplar) *model.Exemplar {
		return &model.Exemplar{Value: amount, Labels: model.EmptyLabels}
	})
	c := MustNewCounter(CounterOpts{Name: "http_requests", Sampler: sampler})
	c.Inc()
	require.NoError(t, c.Add(5))

	m := c.Collect()
	require.Len(t, m.Counters, 1)
	require.NotNil(t, m.Counters[0].Exemplar)
	assert.Equal(t, 5.0, m.Counters[0].Exemplar.Value)
}

func TestNewCounterValidation(t *testing.T) {
	_, err := NewCounter(CounterOpts{Name: "0bad"})
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidName))

	_, err = NewCounter(CounterOpts{Name: "ok", LabelNames: []string{"0bad"}})
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidName))

	assert.Panics(t, func() { MustNewCounter(CounterOpts{Name: "0bad"}) })
}

func TestCounterFunc(t *testing.T) {
	fixedClock(t, 1672850385800)
	var calls float64
	c, err := NewCounterFunc(CounterOpts{Name: "callbacks", Help: "Callback count."}, func() float64 {
		calls++
		return calls
	})
	require.NoError(t, err)

	m := c.Collect()
	require.Len(t, m.Counters, 1)
	assert.Equal(t, 1.0, m.Counters[0].Value)
	require.NotNil(t, m.Counters[0].CreatedTimestampMs)
	assert.Equal(t, int64(1672850385800), *m.Counters[0].CreatedTimestampMs)

	m = c.Collect()
	assert.Equal(t, 2.0, m.Counters[0].Value)
}

func TestCounterFuncRejectsVariableLabels(t *testing.T) {
	_, err := NewCounterFunc(CounterOpts{Name: "callbacks", LabelNames: []string{"kind"}}, func() float64 { return 0 })
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))
}
