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
	"math"
	"time"
)

// Timestamp is the number of milliseconds since the epoch
// (1970-01-01 00:00 UTC) excluding leap seconds. It is the resolution at
// which created-timestamps, scrape timestamps, and exemplar timestamps are
// tracked internally; the expfmt package is responsible for rendering it
// onto the wire, since OpenMetrics and Prometheus text format both use
// fractional seconds rather than milliseconds.
type Timestamp int64

const (
	// minimumTick is the minimum supported time resolution.
	minimumTick  = time.Millisecond
	second       = int64(time.Second / minimumTick)
	nanosPerTick = int64(minimumTick / time.Nanosecond)

	// Earliest is the earliest Timestamp representable. Handy for
	// initializing a high watermark.
	Earliest = Timestamp(math.MinInt64)
	// Latest is the latest Timestamp representable. Handy for
	// initializing a low watermark.
	Latest = Timestamp(math.MaxInt64)
)

// Equal reports whether two Timestamps represent the same instant.
func (t Timestamp) Equal(o Timestamp) bool { return t == o }

// Before reports whether t is before o.
func (t Timestamp) Before(o Timestamp) bool { return t < o }

// After reports whether t is after o.
func (t Timestamp) After(o Timestamp) bool { return t > o }

// Add returns t + d.
func (t Timestamp) Add(d time.Duration) Timestamp {
	return t + Timestamp(d/minimumTick)
}

// Sub returns the Duration t - o.
func (t Timestamp) Sub(o Timestamp) time.Duration {
	return time.Duration(t-o) * minimumTick
}

// Time returns the time.Time representation of t.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t)/second, (int64(t)%second)*nanosPerTick)
}

// UnixMillis returns t as milliseconds since the Unix epoch.
func (t Timestamp) UnixMillis() int64 { return int64(t) }

// UnixSeconds returns t truncated to whole seconds since the Unix epoch.
func (t Timestamp) UnixSeconds() int64 { return int64(t) / second }

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return TimestampFromTime(time.Now())
}

// TimestampFromTime returns the Timestamp equivalent to t.
func TimestampFromTime(t time.Time) Timestamp {
	return TimestampFromUnixNano(t.UnixNano())
}

// TimestampFromUnixNano returns the Timestamp equivalent to the Unix time
// t provided in nanoseconds.
func TimestampFromUnixNano(t int64) Timestamp {
	return Timestamp(t / nanosPerTick)
}
