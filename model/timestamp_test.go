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

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampFromTime(t *testing.T) {
	tm := time.Date(2023, 1, 4, 16, 38, 5, 0, time.UTC)
	ts := TimestampFromTime(tm)
	assert.Equal(t, int64(1672850285000), int64(ts))
	assert.Equal(t, int64(1672850285), ts.UnixSeconds())
}

func TestTimestampRoundTrip(t *testing.T) {
	tm := time.Now()
	ts := TimestampFromTime(tm)
	assert.True(t, ts.Time().Equal(tm.Truncate(minimumTick)))
}

func TestTimestampOrdering(t *testing.T) {
	a := Timestamp(100)
	b := Timestamp(200)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
}
