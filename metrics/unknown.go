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

// UnknownOpts configures an Unknown metric, the escape hatch for values of
// undeclared type (e.g. bridged from a foreign system).
type UnknownOpts struct {
	Name        string
	Help        string
	Unit        string
	ConstLabels model.Labels
	LabelNames  []string
	Sampler     exemplar.Sampler
}

// Unknown is a settable value exposed without a declared type.
type Unknown struct {
	desc *Desc
	vec  *vec[unknownCell]
}

type unknownCell struct {
	value    adder.Float64
	exemplar exemplarSlot
}

// NewUnknown builds an Unknown metric from opts.
func NewUnknown(opts UnknownOpts) (*Unknown, error) {
	desc, err := NewDesc(opts.Name, model.MetricTypeUnknown, opts.Help, opts.Unit, opts.ConstLabels, opts.LabelNames)
	if err != nil {
		return nil, err
	}
	desc.Sampler = opts.Sampler
	u := &Unknown{desc: desc}
	u.vec = newVec(desc, func() *unknownCell { return &unknownCell{} })
	if len(opts.LabelNames) == 0 {
		if _, err := u.vec.with(); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// MustNewUnknown is like NewUnknown but panics on error.
func MustNewUnknown(opts UnknownOpts) *Unknown {
	u, err := NewUnknown(opts)
	if err != nil {
		panic(err)
	}
	return u
}

// WithLabelValues returns the child for the given variable label values,
// creating its cell on first use.
func (u *Unknown) WithLabelValues(values ...string) (*UnknownChild, error) {
	cell, err := u.vec.with(values...)
	if err != nil {
		return nil, err
	}
	return &UnknownChild{desc: u.desc, cell: cell}, nil
}

// Set stores v on the unlabeled cell.
func (u *Unknown) Set(v float64) error {
	ch, err := u.WithLabelValues()
	if err != nil {
		return err
	}
	ch.Set(v)
	return nil
}

// Metadata implements Collector.
func (u *Unknown) Metadata() model.Metadata { return u.desc.Metadata }

// Collect implements Collector.
func (u *Unknown) Collect() snapshot.Metric {
	m := snapshot.Metric{Metadata: u.desc.Metadata}
	for _, e := range u.vec.snapshotEntries() {
		ex := e.cell.exemplar.get()
		m.Unknowns = append(m.Unknowns, snapshot.UnknownDataPoint{
			Labels:   e.labels,
			Value:    e.cell.value.Load(),
			Exemplar: ex,
		})
	}
	return m
}

// UnknownChild is the handle for one label combination.
type UnknownChild struct {
	desc *Desc
	cell *unknownCell
}

// Set stores v atomically.
func (ch *UnknownChild) Set(v float64) {
	ch.cell.value.Store(v)
	ch.cell.exemplar.offer(ch.desc.Sampler, v)
}

// SetWithExemplar stores v and unconditionally installs a fresh exemplar.
func (ch *UnknownChild) SetWithExemplar(v float64, labels model.Labels) error {
	e, err := newObservedExemplar(v, labels)
	if err != nil {
		return err
	}
	ch.cell.value.Store(v)
	ch.cell.exemplar.put(e)
	return nil
}
