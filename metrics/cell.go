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
	"sync/atomic"
	"time"

	"github.com/coremetrics/coremetrics/exemplar"
	"github.com/coremetrics/coremetrics/model"
)

// timeNow is swapped out by tests that need deterministic created
// timestamps and exemplar clocks.
var timeNow = time.Now

func nowMillis() int64 {
	return timeNow().UnixMilli()
}

// exemplarSlot is a single-word atomic holder for the exemplar attached to
// a cell or a histogram bucket. offer runs the sampler inside a CAS retry
// loop: it exits when the CAS succeeds or the sampler declines, so it
// never blocks and never loses a concurrent numeric update.
type exemplarSlot struct {
	p atomic.Pointer[model.Exemplar]
}

func (s *exemplarSlot) offer(sampler exemplar.Sampler, amount float64) {
	if sampler == nil {
		return
	}
	for {
		prev := s.p.Load()
		next := sampler.Sample(amount, prev)
		if next == nil {
			return
		}
		if s.p.CompareAndSwap(prev, next) {
			return
		}
	}
}

// put installs a caller-provided exemplar unconditionally.
func (s *exemplarSlot) put(e model.Exemplar) {
	s.p.Store(&e)
}

// get returns the held exemplar, or nil. During a snapshot the exemplar
// must be read before the numeric value so that a reported exemplar always
// describes an observation already reflected in the number.
func (s *exemplarSlot) get() *model.Exemplar {
	return s.p.Load()
}

// newObservedExemplar builds the exemplar installed by the *WithExemplar
// operations: the observed amount, the caller's labels, and the current
// time.
func newObservedExemplar(amount float64, labels model.Labels) (model.Exemplar, error) {
	e, err := model.NewExemplar(amount, labels)
	if err != nil {
		return model.Exemplar{}, err
	}
	return e.WithTimestamp(nowMillis()), nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) {
		return model.NewError(model.InvalidAmount, "amount is NaN")
	}
	if amount < 0 {
		return model.NewError(model.InvalidAmount, "amount %v is negative", amount)
	}
	return nil
}
