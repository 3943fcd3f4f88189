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

package quantile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamEstimatorMedian(t *testing.T) {
	e := NewStreamEstimator(DefaultObjectives)
	for i := 1; i <= 100; i++ {
		e.Observe(float64(i))
	}
	median := e.Query(0.5)
	assert.InDelta(t, 50, median, 10)
}

func TestStreamEstimatorReset(t *testing.T) {
	e := NewStreamEstimator(DefaultObjectives)
	for i := 1; i <= 100; i++ {
		e.Observe(float64(i))
	}
	e.Reset()
	assert.Equal(t, 0.0, e.Query(0.5))
}
