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

import "fmt"

// LinearBuckets returns count histogram upper bounds starting at start and
// spaced width apart. It panics if count < 1; bad bucket layouts are
// programming errors, not runtime conditions.
func LinearBuckets(start, width float64, count int) []float64 {
	if count < 1 {
		panic(fmt.Errorf("LinearBuckets needs a positive count, got %d", count))
	}
	buckets := make([]float64, count)
	for i := range buckets {
		buckets[i] = start
		start += width
	}
	return buckets
}

// ExponentialBuckets returns count histogram upper bounds where the lowest
// is start and each subsequent bound is the previous multiplied by factor.
// It panics if count < 1, start <= 0, or factor <= 1.
func ExponentialBuckets(start, factor float64, count int) []float64 {
	if count < 1 {
		panic(fmt.Errorf("ExponentialBuckets needs a positive count, got %d", count))
	}
	if start <= 0 {
		panic(fmt.Errorf("ExponentialBuckets needs a positive start, got %v", start))
	}
	if factor <= 1 {
		panic(fmt.Errorf("ExponentialBuckets needs a factor greater than 1, got %v", factor))
	}
	buckets := make([]float64, count)
	for i := range buckets {
		buckets[i] = start
		start *= factor
	}
	return buckets
}
