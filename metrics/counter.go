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

// CounterOpts configures a Counter. Name is required; everything else is
// optional. A nil Sampler disables sampled exemplars (explicit
// AddWithExemplar calls still attach one).
type CounterOpts struct {
	Name        string
	Help        string
	Unit        string
	ConstLabels model.Labels
	LabelNames  []string
	Sampler     exemplar.Sampler
}

// Counter is a monotonically non-decreasing metric. Observers add
// non-negative amounts; a collect pass reads the accumulated total per
// label combination.
type Counter struct {
	desc *Desc
	vec  *vec[counterCell]
}

type counterCell struct {
	value     adder.Float64
	createdMs int64
	exemplar  exemplarSlot
}

// NewCounter builds a Counter from opts. If no label names are declared,
// the single cell is created immediately so its created-timestamp marks
// metric construction rather than first use.
func NewCounter(opts CounterOpts) (*Counter, error) {
	desc, err := NewDesc(opts.Name, model.MetricTypeCounter, opts.Help, opts.Unit, opts.ConstLabels, opts.LabelNames)
	if err != nil {
		return nil, err
	}
	desc.Sampler = opts.Sampler
	c := &Counter{desc: desc}
	c.vec = newVec(desc, func() *counterCell {
		return &counterCell{createdMs: nowMillis()}
	})
	if len(opts.LabelNames) == 0 {
		if _, err := c.vec.with(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNewCounter is like NewCounter but panics on error.
func MustNewCounter(opts CounterOpts) *Counter {
	c, err := NewCounter(opts)
	if err != nil {
		panic(err)
	}
	return c
}

// WithLabelValues returns the child for the given variable label values,
// creating its cell on first use.
func (c *Counter) WithLabelValues(values ...string) (*CounterChild, error) {
	cell, err := c.vec.with(values...)
	if err != nil {
		return nil, err
	}
	return &CounterChild{desc: c.desc, cell: cell}, nil
}

// Inc adds 1 to the unlabeled counter.
func (c *Counter) Inc() {
	_ = c.Add(1)
}

// Add adds amount to the unlabeled counter. It fails on a negative or NaN
// amount, or when variable labels were declared.
func (c *Counter) Add(amount float64) error {
	ch, err := c.WithLabelValues()
	if err != nil {
		return err
	}
	return ch.Add(amount)
}

// AddWithExemplar is Add with an explicit exemplar, bypassing the sampler.
func (c *Counter) AddWithExemplar(amount float64, labels model.Labels) error {
	ch, err := c.WithLabelValues()
	if err != nil {
		return err
	}
	return ch.AddWithExemplar(amount, labels)
}

// Metadata implements Collector.
func (c *Counter) Metadata() model.Metadata { return c.desc.Metadata }

// Collect implements Collector.
func (c *Counter) Collect() snapshot.Metric {
	m := snapshot.Metric{Metadata: c.desc.Metadata}
	for _, e := range c.vec.snapshotEntries() {
		// Exemplar first, value second. The other order could expose an
		// exemplar for an observation the total does not include yet.
		ex := e.cell.exemplar.get()
		created := e.cell.createdMs
		m.Counters = append(m.Counters, snapshot.CounterDataPoint{
			Labels:             e.labels,
			Value:              e.cell.value.Load(),
			Exemplar:           ex,
			CreatedTimestampMs: &created,
		})
	}
	return m
}

// CounterChild is the accumulation handle for one label combination.
type CounterChild struct {
	desc *Desc
	cell *counterCell
}

// Inc adds 1.
func (ch *CounterChild) Inc() {
	_ = ch.Add(1)
}

// Add adds amount. A negative or NaN amount is rejected without mutating
// the counter. Overflow past the largest finite float64 saturates at +Inf.
func (ch *CounterChild) Add(amount float64) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	ch.cell.value.Add(amount)
	ch.cell.exemplar.offer(ch.desc.Sampler, amount)
	return nil
}

// AddWithExemplar adds amount and unconditionally installs a fresh
// exemplar carrying the given labels, without consulting the sampler.
func (ch *CounterChild) AddWithExemplar(amount float64, labels model.Labels) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	e, err := newObservedExemplar(amount, labels)
	if err != nil {
		return err
	}
	ch.cell.value.Add(amount)
	ch.cell.exemplar.put(e)
	return nil
}

// CounterFunc is a counter whose value is produced by a callback at
// collection time instead of by accumulated observations. It carries no
// exemplar slot and supports no variable labels.
type CounterFunc struct {
	desc      *Desc
	fn        func() float64
	createdMs int64
}

// NewCounterFunc builds a callback-backed counter. The callback must be
// safe for concurrent use and must report a monotonically non-decreasing
// value; the library does not re-check monotonicity at collect time.
func NewCounterFunc(opts CounterOpts, fn func() float64) (*CounterFunc, error) {
	if len(opts.LabelNames) > 0 {
		return nil, model.NewError(model.InvalidLabel, "callback counter %q cannot declare variable labels", opts.Name)
	}
	desc, err := NewDesc(opts.Name, model.MetricTypeCounter, opts.Help, opts.Unit, opts.ConstLabels, nil)
	if err != nil {
		return nil, err
	}
	return &CounterFunc{desc: desc, fn: fn, createdMs: nowMillis()}, nil
}

// Metadata implements Collector.
func (c *CounterFunc) Metadata() model.Metadata { return c.desc.Metadata }

// Collect implements Collector.
func (c *CounterFunc) Collect() snapshot.Metric {
	created := c.createdMs
	return snapshot.Metric{
		Metadata: c.desc.Metadata,
		Counters: []snapshot.CounterDataPoint{{
			Labels:             c.desc.Metadata.ConstLabels,
			Value:              c.fn(),
			CreatedTimestampMs: &created,
		}},
	}
}
