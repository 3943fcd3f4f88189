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

// Package adder provides lock-free numeric accumulators shared by the
// counter, histogram, and summary cells.
package adder

import (
	"math"
	"sync/atomic"
)

// Float64 is a float64 accumulator that supports concurrent Add calls
// without a mutex, using a compare-and-swap retry loop over the value's
// IEEE-754 bit pattern. It must not be copied after first use.
type Float64 struct {
	bits atomic.Uint64
}

// Add adds delta to the accumulator and returns the new total. Concurrent
// calls retry internally until their CAS succeeds; none are lost.
func (f *Float64) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		newVal := math.Float64frombits(old) + delta
		newBits := math.Float64bits(newVal)
		if f.bits.CompareAndSwap(old, newBits) {
			return newVal
		}
	}
}

// Load returns the current total.
func (f *Float64) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Store sets the accumulator to v, replacing the effect of every Add that
// completed before it. An Add racing with Store is not discarded: its CAS
// fails, and it retries and adds its delta onto v.
func (f *Float64) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}
