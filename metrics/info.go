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
	"sync/atomic"

	"github.com/coremetrics/coremetrics/model"
	"github.com/coremetrics/coremetrics/snapshot"
)

// InfoOpts configures an Info metric. Info metrics carry no unit and no
// numeric state; their payload is a label set, serialized with a constant
// value of 1.
type InfoOpts struct {
	Name        string
	Help        string
	ConstLabels model.Labels
	LabelNames  []string
}

// Info exposes build or target metadata as labels.
type Info struct {
	desc *Desc
	vec  *vec[infoCell]
}

type infoCell struct {
	info atomic.Pointer[model.Labels]
}

// NewInfo builds an Info metric from opts.
func NewInfo(opts InfoOpts) (*Info, error) {
	desc, err := NewDesc(opts.Name, model.MetricTypeInfo, opts.Help, "", opts.ConstLabels, opts.LabelNames)
	if err != nil {
		return nil, err
	}
	i := &Info{desc: desc}
	i.vec = newVec(desc, func() *infoCell { return &infoCell{} })
	if len(opts.LabelNames) == 0 {
		if _, err := i.vec.with(); err != nil {
			return nil, err
		}
	}
	return i, nil
}

// MustNewInfo is like NewInfo but panics on error.
func MustNewInfo(opts InfoOpts) *Info {
	i, err := NewInfo(opts)
	if err != nil {
		panic(err)
	}
	return i
}

// WithLabelValues returns the child for the given variable label values,
// creating its cell on first use.
func (i *Info) WithLabelValues(values ...string) (*InfoChild, error) {
	cell, err := i.vec.with(values...)
	if err != nil {
		return nil, err
	}
	return &InfoChild{desc: i.desc, cell: cell}, nil
}

// Set replaces the info labels of the unlabeled cell.
func (i *Info) Set(info model.Labels) error {
	ch, err := i.WithLabelValues()
	if err != nil {
		return err
	}
	return ch.Set(info)
}

// Metadata implements Collector.
func (i *Info) Metadata() model.Metadata { return i.desc.Metadata }

// Collect implements Collector.
func (i *Info) Collect() snapshot.Metric {
	m := snapshot.Metric{Metadata: i.desc.Metadata}
	for _, e := range i.vec.snapshotEntries() {
		info := model.EmptyLabels
		if p := e.cell.info.Load(); p != nil {
			info = *p
		}
		m.Infos = append(m.Infos, snapshot.InfoDataPoint{
			Labels: e.labels,
			Info:   info,
		})
	}
	return m
}

// InfoChild is the handle for one identifying label combination.
type InfoChild struct {
	desc *Desc
	cell *infoCell
}

// Set atomically replaces the cell's info labels. It fails if an info
// label name collides with an identifying label of the cell; that
// collision would produce an unparseable duplicate label on the wire.
func (ch *InfoChild) Set(info model.Labels) error {
	var conflict error
	info.Range(func(name, _ string) bool {
		if _, exists := ch.desc.Metadata.ConstLabels.Get(name); exists {
			conflict = model.NewError(model.InvalidLabel, "info label %q collides with a metric label", name)
			return false
		}
		for _, vl := range ch.desc.VariableLabels {
			if name == vl {
				conflict = model.NewError(model.InvalidLabel, "info label %q collides with a metric label", name)
				return false
			}
		}
		return true
	})
	if conflict != nil {
		return conflict
	}
	ch.cell.info.Store(&info)
	return nil
}
