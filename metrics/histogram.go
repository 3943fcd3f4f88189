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
	"math"
	"sort"
	"sync/atomic"

	"github.com/coremetrics/coremetrics/exemplar"
	"github.com/coremetrics/coremetrics/internal/adder"
	"github.com/coremetrics/coremetrics/model"
	"github.com/coremetrics/coremetrics/snapshot"
)

// DefBuckets are the default histogram upper bounds, covering typical
// request latencies in seconds.
var DefBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// HistogramOpts configures a Histogram or GaugeHistogram. Buckets lists
// the upper bounds; they are sorted, deduplicated, and terminated with
// +Inf at construction. A nil Buckets slice selects DefBuckets.
type HistogramOpts struct {
	Name        string
	Help        string
	Unit        string
	ConstLabels model.Labels
	LabelNames  []string
	Buckets     []float64
	Sampler     exemplar.Sampler
}

// Histogram counts observations into cumulative buckets and tracks their
// sum. The same type backs gauge histograms, which differ only in their
// declared metric type and exposition suffixes.
type Histogram struct {
	desc        *Desc
	upperBounds []float64
	vec         *vec[histogramCell]
}

type histogramCell struct {
	counts    []atomic.Uint64 // per-bucket, cumulated at snapshot time
	sum       adder.Float64
	createdMs int64
	exemplars []exemplarSlot // one per bucket
}

// NewHistogram builds a Histogram from opts.
func NewHistogram(opts HistogramOpts) (*Histogram, error) {
	return newHistogram(opts, model.MetricTypeHistogram)
}

// NewGaugeHistogram builds a gauge histogram: the same accumulation
// machinery as NewHistogram, exposed with the gaugehistogram type and the
// _gcount/_gsum suffixes.
func NewGaugeHistogram(opts HistogramOpts) (*Histogram, error) {
	return newHistogram(opts, model.MetricTypeGaugeHistogram)
}

// MustNewHistogram is like NewHistogram but panics on error.
func MustNewHistogram(opts HistogramOpts) *Histogram {
	h, err := NewHistogram(opts)
	if err != nil {
		panic(err)
	}
	return h
}

func newHistogram(opts HistogramOpts, mtype model.MetricType) (*Histogram, error) {
	desc, err := NewDesc(opts.Name, mtype, opts.Help, opts.Unit, opts.ConstLabels, opts.LabelNames, model.ReservedLabelHistogram)
	if err != nil {
		return nil, err
	}
	desc.Sampler = opts.Sampler
	bounds, err := prepareUpperBounds(opts.Buckets)
	if err != nil {
		return nil, err
	}
	h := &Histogram{desc: desc, upperBounds: bounds}
	h.vec = newVec(desc, func() *histogramCell {
		return &histogramCell{
			counts:    make([]atomic.Uint64, len(bounds)),
			exemplars: make([]exemplarSlot, len(bounds)),
			createdMs: nowMillis(),
		}
	})
	if len(opts.LabelNames) == 0 {
		if _, err := h.vec.with(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// prepareUpperBounds sorts the bounds ascending, removes duplicates,
// rejects NaN, and appends +Inf when the caller omitted it.
func prepareUpperBounds(bounds []float64) ([]float64, error) {
	if bounds == nil {
		bounds = DefBuckets
	}
	out := make([]float64, 0, len(bounds)+1)
	for _, b := range bounds {
		if math.IsNaN(b) {
			return nil, model.NewError(model.InvalidAmount, "histogram bucket upper bound is NaN")
		}
		out = append(out, b)
	}
	sort.Float64s(out)
	dedup := out[:0]
	for i, b := range out {
		if i == 0 || b != out[i-1] {
			dedup = append(dedup, b)
		}
	}
	out = dedup
	if len(out) == 0 || !math.IsInf(out[len(out)-1], +1) {
		out = append(out, math.Inf(+1))
	}
	return out, nil
}

// bucketIndex returns the index of the smallest bucket whose upper bound
// is >= v. An observation equal to a bound falls into that bound's bucket.
// NaN lands in the final +Inf bucket but still counts toward the total.
func bucketIndex(bounds []float64, v float64) int {
	if math.IsNaN(v) {
		return len(bounds) - 1
	}
	return sort.SearchFloat64s(bounds, v)
}

// WithLabelValues returns the child for the given variable label values,
// creating its cell on first use.
func (h *Histogram) WithLabelValues(values ...string) (*HistogramChild, error) {
	cell, err := h.vec.with(values...)
	if err != nil {
		return nil, err
	}
	return &HistogramChild{desc: h.desc, bounds: h.upperBounds, cell: cell}, nil
}

// Observe records v on the unlabeled histogram.
func (h *Histogram) Observe(v float64) error {
	ch, err := h.WithLabelValues()
	if err != nil {
		return err
	}
	ch.Observe(v)
	return nil
}

// Metadata implements Collector.
func (h *Histogram) Metadata() model.Metadata { return h.desc.Metadata }

// Collect implements Collector.
func (h *Histogram) Collect() snapshot.Metric {
	m := snapshot.Metric{Metadata: h.desc.Metadata}
	for _, e := range h.vec.snapshotEntries() {
		buckets := make([]snapshot.Bucket, len(h.upperBounds))
		// Per-bucket exemplars are read before any counts.
		for i := range buckets {
			buckets[i].Exemplar = e.cell.exemplars[i].get()
		}
		var cum uint64
		for i := range buckets {
			cum += e.cell.counts[i].Load()
			buckets[i].UpperBound = h.upperBounds[i]
			buckets[i].CumulativeCount = cum
		}
		sum := e.cell.sum.Load()
		created := e.cell.createdMs
		m.Histograms = append(m.Histograms, snapshot.HistogramDataPoint{
			Labels:             e.labels,
			Buckets:            buckets,
			Sum:                &sum,
			CreatedTimestampMs: &created,
		})
	}
	return m
}

// HistogramChild is the accumulation handle for one label combination.
type HistogramChild struct {
	desc   *Desc
	bounds []float64
	cell   *histogramCell
}

// Observe records v: the matching bucket's count is incremented, v is
// added to the sum, and the bucket's exemplar slot is offered to the
// sampler.
func (ch *HistogramChild) Observe(v float64) {
	i := bucketIndex(ch.bounds, v)
	ch.cell.counts[i].Add(1)
	ch.cell.sum.Add(v)
	ch.cell.exemplars[i].offer(ch.desc.Sampler, v)
}

// ObserveWithExemplar records v and unconditionally installs a fresh
// exemplar on the matching bucket, without consulting the sampler.
func (ch *HistogramChild) ObserveWithExemplar(v float64, labels model.Labels) error {
	e, err := newObservedExemplar(v, labels)
	if err != nil {
		return err
	}
	i := bucketIndex(ch.bounds, v)
	ch.cell.counts[i].Add(1)
	ch.cell.sum.Add(v)
	ch.cell.exemplars[i].put(e)
	return nil
}
