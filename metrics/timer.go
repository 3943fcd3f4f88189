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

import "time"

// Observer is the interface shared by everything that records a sampled
// value: histogram and summary children, and gauge children via
// ObserverFunc.
type Observer interface {
	Observe(float64)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(float64)

// Observe calls f(v).
func (f ObserverFunc) Observe(v float64) { f(v) }

// Timer measures a duration and reports it to an Observer in seconds.
//
//	timer := metrics.NewTimer(latency)
//	defer timer.ObserveDuration()
type Timer struct {
	begin time.Time
	o     Observer
}

// NewTimer starts a timer reporting to o. With a nil Observer,
// ObserveDuration records nothing but still returns the elapsed duration.
func NewTimer(o Observer) *Timer {
	return &Timer{begin: timeNow(), o: o}
}

// ObserveDuration records the seconds elapsed since NewTimer and returns
// the measured duration.
func (t *Timer) ObserveDuration() time.Duration {
	d := timeNow().Sub(t.begin)
	if t.o != nil {
		t.o.Observe(d.Seconds())
	}
	return d
}
