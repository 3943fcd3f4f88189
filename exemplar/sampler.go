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

// Package exemplar implements the pluggable policy that decides whether a
// newly observed value should replace the exemplar currently held by a
// counter, gauge, or histogram bucket.
package exemplar

import (
	"time"

	"github.com/coremetrics/coremetrics/model"
)

// Sampler decides whether an observation of amount should replace prev,
// the exemplar currently held by the cell (nil if none is held yet). It
// must be pure and must return promptly: it runs inside the cell's CAS
// retry loop and may be invoked more than once per observation if it
// loses a race.
type Sampler interface {
	Sample(amount float64, prev *model.Exemplar) *model.Exemplar
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(amount float64, prev *model.Exemplar) *model.Exemplar

// Sample implements Sampler.
func (f SamplerFunc) Sample(amount float64, prev *model.Exemplar) *model.Exemplar {
	return f(amount, prev)
}

// DefaultMaxAge is the age at which MinAgeSampler built with NewDefault
// replaces a held exemplar regardless of the new observation's value.
const DefaultMaxAge = 7 * time.Second

// MinAgeSampler replaces the held exemplar once it is older than MaxAge,
// or once no exemplar is held. It never replaces a fresh exemplar. Metrics
// use it only when it is passed as their Sampler option; a metric with a
// nil Sampler records no sampled exemplars.
type MinAgeSampler struct {
	MaxAge time.Duration
	// Now lets tests substitute a deterministic clock; defaults to
	// time.Now when nil.
	Now func() time.Time
}

// NewDefault returns a MinAgeSampler configured with DefaultMaxAge.
func NewDefault() *MinAgeSampler {
	return &MinAgeSampler{MaxAge: DefaultMaxAge}
}

// Sample implements Sampler.
func (s *MinAgeSampler) Sample(amount float64, prev *model.Exemplar) *model.Exemplar {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if prev == nil || !prev.HasTimestamp {
		return newExemplarAt(amount, now())
	}
	age := now().Sub(time.UnixMilli(prev.TimestampMs))
	if age < s.MaxAge {
		return nil
	}
	return newExemplarAt(amount, now())
}

func newExemplarAt(amount float64, t time.Time) *model.Exemplar {
	e := model.Exemplar{
		Value:        amount,
		Labels:       model.EmptyLabels,
		HasTimestamp: true,
		TimestampMs:  t.UnixMilli(),
	}
	return &e
}
