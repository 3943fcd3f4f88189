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

// Package snapshot defines the immutable, point-in-time view of metric
// state produced by a collect pass. A snapshot is what the expfmt writers
// render; nothing in this package touches live, mutable cell state.
package snapshot

import "github.com/coremetrics/coremetrics/model"

// Metric is one named metric's snapshot: its metadata plus exactly one of
// the per-kind data point slices below, selected by Metadata.Type. This is
// a data-oriented tagged union rather than a class hierarchy: writers
// dispatch on Metadata.Type and read the matching field directly.
type Metric struct {
	Metadata model.Metadata

	Counters   []CounterDataPoint
	Gauges     []GaugeDataPoint
	Histograms []HistogramDataPoint // also used for GaugeHistogram
	Summaries  []SummaryDataPoint
	Infos      []InfoDataPoint
	StateSets  []StateSetDataPoint
	Unknowns   []UnknownDataPoint
}

// Set is an ordered, name-indexed collection of metric snapshots produced
// by a single collect pass. Iteration order is insertion order, which the
// registry fixes at registration time.
type Set struct {
	order  []string
	byName map[string]Metric
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{byName: make(map[string]Metric)}
}

// Add appends m to the set. If a metric of the same name is already held,
// Add replaces it and keeps its original position; the registry is
// responsible for enforcing name uniqueness before collect.
func (s *Set) Add(m Metric) {
	if _, exists := s.byName[m.Metadata.Name]; !exists {
		s.order = append(s.order, m.Metadata.Name)
	}
	s.byName[m.Metadata.Name] = m
}

// Len returns the number of metrics in the set.
func (s *Set) Len() int { return len(s.order) }

// Range calls f for each metric in insertion order. Range stops early if
// f returns false.
func (s *Set) Range(f func(Metric) bool) {
	for _, name := range s.order {
		if !f(s.byName[name]) {
			return
		}
	}
}

// Get looks up a metric snapshot by name.
func (s *Set) Get(name string) (Metric, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// CounterDataPoint is one label combination's counter state.
type CounterDataPoint struct {
	Labels             model.Labels
	Value              float64
	Exemplar           *model.Exemplar
	CreatedTimestampMs *int64
	ScrapeTimestampMs  *int64
}

// GaugeDataPoint is one label combination's gauge state.
type GaugeDataPoint struct {
	Labels            model.Labels
	Value             float64
	Exemplar          *model.Exemplar
	ScrapeTimestampMs *int64
}

// Bucket is one cumulative histogram bucket.
type Bucket struct {
	UpperBound      float64
	CumulativeCount uint64
	Exemplar        *model.Exemplar
}

// HistogramDataPoint is one label combination's histogram (or gauge
// histogram) state. Count is always derived as the +Inf bucket's
// CumulativeCount; it is not stored independently.
type HistogramDataPoint struct {
	Labels             model.Labels
	Buckets            []Bucket // ascending upper bound, +Inf last
	Sum                *float64
	CreatedTimestampMs *int64
	ScrapeTimestampMs  *int64
}

// Count returns the bucket-derived total observation count, or 0 if no
// buckets are present.
func (h HistogramDataPoint) Count() uint64 {
	if len(h.Buckets) == 0 {
		return 0
	}
	return h.Buckets[len(h.Buckets)-1].CumulativeCount
}

// Quantile is one reported quantile of a summary's observed distribution.
type Quantile struct {
	Quantile float64
	Value    float64
}

// SummaryDataPoint is one label combination's summary state. The Exemplar,
// when present, is attached to every quantile, _count, and _sum line the
// writers emit for this data point.
type SummaryDataPoint struct {
	Labels             model.Labels
	Quantiles          []Quantile
	Sum                *float64
	Count              *uint64
	Exemplar           *model.Exemplar
	CreatedTimestampMs *int64
	ScrapeTimestampMs  *int64
}

// Empty reports whether the data point carries no count, no sum, and no
// quantiles. Empty data points produce zero sample lines.
func (s SummaryDataPoint) Empty() bool {
	return s.Count == nil && s.Sum == nil && len(s.Quantiles) == 0
}

// InfoDataPoint pairs an identifying label combination with the info
// key/value pairs it reports. Info metrics carry no numeric value.
type InfoDataPoint struct {
	Labels            model.Labels
	Info              model.Labels
	ScrapeTimestampMs *int64
}

// State is a single named boolean state within a state set.
type State struct {
	Name    string
	Enabled bool
}

// StateSetDataPoint is one label combination's set of named boolean
// states. States are kept sorted by Name ascending (see metrics.NewStateSet
// and AddState).
type StateSetDataPoint struct {
	Labels            model.Labels
	States            []State
	ScrapeTimestampMs *int64
}

// UnknownDataPoint is one label combination's value of undeclared type.
type UnknownDataPoint struct {
	Labels            model.Labels
	Value             float64
	Exemplar          *model.Exemplar
	ScrapeTimestampMs *int64
}
