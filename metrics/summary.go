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
	"sort"
	"sync/atomic"

	"github.com/coremetrics/coremetrics/exemplar"
	"github.com/coremetrics/coremetrics/internal/adder"
	"github.com/coremetrics/coremetrics/model"
	"github.com/coremetrics/coremetrics/quantile"
	"github.com/coremetrics/coremetrics/snapshot"
)

// SummaryOpts configures a Summary. An empty Objectives slice produces a
// summary with count and sum only; pass quantile.DefaultObjectives for the
// conventional median/90th/99th set.
type SummaryOpts struct {
	Name        string
	Help        string
	Unit        string
	ConstLabels model.Labels
	LabelNames  []string
	Objectives  []quantile.Objective
	Sampler     exemplar.Sampler
}

// Summary tracks an observation count, a sum, and optionally a set of
// streaming quantile estimates per label combination.
type Summary struct {
	desc       *Desc
	objectives []quantile.Objective
	vec        *vec[summaryCell]
}

type summaryCell struct {
	count     atomic.Uint64
	sum       adder.Float64
	estimator quantile.Estimator // nil when no objectives are configured
	createdMs int64
	exemplar  exemplarSlot
}

// NewSummary builds a Summary from opts.
func NewSummary(opts SummaryOpts) (*Summary, error) {
	desc, err := NewDesc(opts.Name, model.MetricTypeSummary, opts.Help, opts.Unit, opts.ConstLabels, opts.LabelNames, model.ReservedLabelSummary)
	if err != nil {
		return nil, err
	}
	desc.Sampler = opts.Sampler
	objectives := make([]quantile.Objective, len(opts.Objectives))
	copy(objectives, opts.Objectives)
	sort.Slice(objectives, func(i, j int) bool { return objectives[i].Quantile < objectives[j].Quantile })
	s := &Summary{desc: desc, objectives: objectives}
	s.vec = newVec(desc, func() *summaryCell {
		cell := &summaryCell{createdMs: nowMillis()}
		if len(objectives) > 0 {
			cell.estimator = quantile.NewStreamEstimator(objectives)
		}
		return cell
	})
	if len(opts.LabelNames) == 0 {
		if _, err := s.vec.with(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustNewSummary is like NewSummary but panics on error.
func MustNewSummary(opts SummaryOpts) *Summary {
	s, err := NewSummary(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// WithLabelValues returns the child for the given variable label values,
// creating its cell on first use.
func (s *Summary) WithLabelValues(values ...string) (*SummaryChild, error) {
	cell, err := s.vec.with(values...)
	if err != nil {
		return nil, err
	}
	return &SummaryChild{desc: s.desc, cell: cell}, nil
}

// Observe records v on the unlabeled summary.
func (s *Summary) Observe(v float64) error {
	ch, err := s.WithLabelValues()
	if err != nil {
		return err
	}
	ch.Observe(v)
	return nil
}

// Metadata implements Collector.
func (s *Summary) Metadata() model.Metadata { return s.desc.Metadata }

// Collect implements Collector.
func (s *Summary) Collect() snapshot.Metric {
	m := snapshot.Metric{Metadata: s.desc.Metadata}
	for _, e := range s.vec.snapshotEntries() {
		ex := e.cell.exemplar.get()
		count := e.cell.count.Load()
		sum := e.cell.sum.Load()
		var quantiles []snapshot.Quantile
		if e.cell.estimator != nil && count > 0 {
			quantiles = make([]snapshot.Quantile, 0, len(s.objectives))
			for _, o := range s.objectives {
				quantiles = append(quantiles, snapshot.Quantile{
					Quantile: o.Quantile,
					Value:    e.cell.estimator.Query(o.Quantile),
				})
			}
		}
		created := e.cell.createdMs
		m.Summaries = append(m.Summaries, snapshot.SummaryDataPoint{
			Labels:             e.labels,
			Quantiles:          quantiles,
			Count:              &count,
			Sum:                &sum,
			Exemplar:           ex,
			CreatedTimestampMs: &created,
		})
	}
	return m
}

// SummaryChild is the accumulation handle for one label combination.
type SummaryChild struct {
	desc *Desc
	cell *summaryCell
}

// Observe records v.
func (ch *SummaryChild) Observe(v float64) {
	ch.cell.count.Add(1)
	ch.cell.sum.Add(v)
	if ch.cell.estimator != nil {
		ch.cell.estimator.Observe(v)
	}
	ch.cell.exemplar.offer(ch.desc.Sampler, v)
}

// ObserveWithExemplar records v and unconditionally installs a fresh
// exemplar, without consulting the sampler.
func (ch *SummaryChild) ObserveWithExemplar(v float64, labels model.Labels) error {
	e, err := newObservedExemplar(v, labels)
	if err != nil {
		return err
	}
	ch.cell.count.Add(1)
	ch.cell.sum.Add(v)
	if ch.cell.estimator != nil {
		ch.cell.estimator.Observe(v)
	}
	ch.cell.exemplar.put(e)
	return nil
}
