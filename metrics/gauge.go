// Copyright 2013 The Prometheus Authors
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
	"github.com/coremetrics/coremetrics/exemplar"
	"github.com/coremetrics/coremetrics/internal/adder"
	"github.com/coremetrics/coremetrics/model"
	"github.com/coremetrics/coremetrics/snapshot"
)

// GaugeOpts configures a Gauge.
type GaugeOpts struct {
	Name        string
	Help        string
	Unit        string
	ConstLabels model.Labels
	LabelNames  []string
	Sampler     exemplar.Sampler
}

// Gauge is a metric whose value can go up and down. Unlike counters,
// gauges accept any float64, including negative values and NaN.
type Gauge struct {
	desc *Desc
	vec  *vec[gaugeCell]
}

type gaugeCell struct {
	value    adder.Float64
	exemplar exemplarSlot
}

// NewGauge builds a Gauge from opts.
func NewGauge(opts GaugeOpts) (*Gauge, error) {
	desc, err := NewDesc(opts.Name, model.MetricTypeGauge, opts.Help, opts.Unit, opts.ConstLabels, opts.LabelNames)
	if err != nil {
		return nil, err
	}
	desc.Sampler = opts.Sampler
	g := &Gauge{desc: desc}
	g.vec = newVec(desc, func() *gaugeCell { return &gaugeCell{} })
	if len(opts.LabelNames) == 0 {
		if _, err := g.vec.with(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// MustNewGauge is like NewGauge but panics on error.
func MustNewGauge(opts GaugeOpts) *Gauge {
	g, err := NewGauge(opts)
	if err != nil {
		panic(err)
	}
	return g
}

// WithLabelValues returns the child for the given variable label values,
// creating its cell on first use.
func (g *Gauge) WithLabelValues(values ...string) (*GaugeChild, error) {
	cell, err := g.vec.with(values...)
	if err != nil {
		return nil, err
	}
	return &GaugeChild{desc: g.desc, cell: cell}, nil
}

// Set stores v on the unlabeled gauge.
func (g *Gauge) Set(v float64) error {
	ch, err := g.WithLabelValues()
	if err != nil {
		return err
	}
	ch.Set(v)
	return nil
}

// Inc adds 1 to the unlabeled gauge.
func (g *Gauge) Inc() error { return g.Add(1) }

// Dec subtracts 1 from the unlabeled gauge.
func (g *Gauge) Dec() error { return g.Add(-1) }

// Add adds delta to the unlabeled gauge.
func (g *Gauge) Add(delta float64) error {
	ch, err := g.WithLabelValues()
	if err != nil {
		return err
	}
	ch.Add(delta)
	return nil
}

// Metadata implements Collector.
func (g *Gauge) Metadata() model.Metadata { return g.desc.Metadata }

// Collect implements Collector.
func (g *Gauge) Collect() snapshot.Metric {
	m := snapshot.Metric{Metadata: g.desc.Metadata}
	for _, e := range g.vec.snapshotEntries() {
		ex := e.cell.exemplar.get()
		m.Gauges = append(m.Gauges, snapshot.GaugeDataPoint{
			Labels:   e.labels,
			Value:    e.cell.value.Load(),
			Exemplar: ex,
		})
	}
	return m
}

// GaugeChild is the accumulation handle for one label combination.
type GaugeChild struct {
	desc *Desc
	cell *gaugeCell
}

// Set stores v atomically.
func (ch *GaugeChild) Set(v float64) {
	ch.cell.value.Store(v)
	ch.cell.exemplar.offer(ch.desc.Sampler, v)
}

// SetWithExemplar stores v and unconditionally installs a fresh exemplar.
func (ch *GaugeChild) SetWithExemplar(v float64, labels model.Labels) error {
	e, err := newObservedExemplar(v, labels)
	if err != nil {
		return err
	}
	ch.cell.value.Store(v)
	ch.cell.exemplar.put(e)
	return nil
}

// Inc adds 1.
func (ch *GaugeChild) Inc() { ch.Add(1) }

// Dec subtracts 1.
func (ch *GaugeChild) Dec() { ch.Add(-1) }

// Sub subtracts delta.
func (ch *GaugeChild) Sub(delta float64) { ch.Add(-delta) }

// Add adds delta atomically.
func (ch *GaugeChild) Add(delta float64) {
	ch.cell.value.Add(delta)
	ch.cell.exemplar.offer(ch.desc.Sampler, delta)
}

// SetToCurrentTime sets the gauge to the current Unix time in seconds.
func (ch *GaugeChild) SetToCurrentTime() {
	ch.Set(float64(nowMillis()) / 1000)
}

// GaugeFunc is a gauge whose value is produced by a callback at collection
// time.
type GaugeFunc struct {
	desc *Desc
	fn   func() float64
}

// NewGaugeFunc builds a callback-backed gauge. The callback must be safe
// for concurrent use.
func NewGaugeFunc(opts GaugeOpts, fn func() float64) (*GaugeFunc, error) {
	if len(opts.LabelNames) > 0 {
		return nil, model.NewError(model.InvalidLabel, "callback gauge %q cannot declare variable labels", opts.Name)
	}
	desc, err := NewDesc(opts.Name, model.MetricTypeGauge, opts.Help, opts.Unit, opts.ConstLabels, nil)
	if err != nil {
		return nil, err
	}
	return &GaugeFunc{desc: desc, fn: fn}, nil
}

// Metadata implements Collector.
func (g *GaugeFunc) Metadata() model.Metadata { return g.desc.Metadata }

// Collect implements Collector.
func (g *GaugeFunc) Collect() snapshot.Metric {
	return snapshot.Metric{
		Metadata: g.desc.Metadata,
		Gauges: []snapshot.GaugeDataPoint{{
			Labels: g.desc.Metadata.ConstLabels,
			Value:  g.fn(),
		}},
	}
}
