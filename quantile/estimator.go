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

// Package quantile provides the pluggable streaming quantile estimation
// used by summary metrics. The core only requires that an Estimator
// deterministically reports whatever quantiles it is configured with; the
// estimation algorithm itself is a plug point.
package quantile

import (
	"sync"

	"github.com/beorn7/perks/quantile"
)

// Estimator observes a stream of float64 values and reports approximate
// quantiles of the observed distribution. Implementations must be safe
// for concurrent use.
type Estimator interface {
	Observe(v float64)
	Query(q float64) float64
	Reset()
}

// Objective is a single target quantile and the absolute error the
// estimator is allowed to introduce around it, in the vocabulary of
// beorn7/perks/quantile (e.g. {Quantile: 0.5, Epsilon: 0.05}).
type Objective struct {
	Quantile float64
	Epsilon  float64
}

// DefaultObjectives mirrors the conventional Prometheus client defaults:
// median, 90th, and 99th percentile, each with a modest error bound.
var DefaultObjectives = []Objective{
	{Quantile: 0.5, Epsilon: 0.05},
	{Quantile: 0.9, Epsilon: 0.01},
	{Quantile: 0.99, Epsilon: 0.001},
}

// StreamEstimator wraps beorn7/perks/quantile's targeted estimator behind a
// mutex; perks' Stream is not safe for concurrent use on its own.
type StreamEstimator struct {
	mu     sync.Mutex
	stream *quantile.Stream
}

// NewStreamEstimator builds a StreamEstimator targeting the given
// objectives. Objectives must be non-empty.
func NewStreamEstimator(objectives []Objective) *StreamEstimator {
	return &StreamEstimator{stream: quantile.NewTargeted(flattenTargets(objectives))}
}

func flattenTargets(objectives []Objective) map[float64]float64 {
	m := make(map[float64]float64, len(objectives))
	for _, o := range objectives {
		m[o.Quantile] = o.Epsilon
	}
	return m
}

// Observe records v.
func (e *StreamEstimator) Observe(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stream.Insert(v)
}

// Query returns the approximate value at quantile q, merging any
// buffered samples first.
func (e *StreamEstimator) Query(q float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stream.Query(q)
}

// Reset discards all observed samples.
func (e *StreamEstimator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stream.Reset()
}
