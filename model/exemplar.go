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

// maxExemplarLabelChars is the OpenMetrics limit on the combined UTF-8
// length of all exemplar label names and values.
const maxExemplarLabelChars = 128

// Exemplar is a single observation recorded alongside a counter or
// histogram bucket sample, typically pointing at a trace. HasTimestamp,
// TraceID, and SpanID are independently optional.
type Exemplar struct {
	Value        float64
	Labels       Labels
	HasTimestamp bool
	TimestampMs  int64
	TraceID      string
	SpanID       string
}

// NewExemplar builds an Exemplar with the given value and labels and no
// timestamp or trace linkage. Use the With* methods to add them.
func NewExemplar(value float64, labels Labels) (Exemplar, error) {
	e := Exemplar{Value: value, Labels: labels}
	if err := e.validate(); err != nil {
		return Exemplar{}, err
	}
	return e, nil
}

// WithTimestamp returns a copy of e with an explicit timestamp attached.
func (e Exemplar) WithTimestamp(unixMillis int64) Exemplar {
	e.HasTimestamp = true
	e.TimestampMs = unixMillis
	return e
}

// WithTraceContext returns a copy of e carrying the given trace and span
// identifiers. Both traceID and spanID are folded into the label budget.
func (e Exemplar) WithTraceContext(traceID, spanID string) (Exemplar, error) {
	e.TraceID = traceID
	e.SpanID = spanID
	if err := e.validate(); err != nil {
		return Exemplar{}, err
	}
	return e, nil
}

func (e Exemplar) validate() error {
	n := labelCharBudget(e.Labels)
	if e.TraceID != "" {
		n += len("trace_id") + len([]rune(e.TraceID))
	}
	if e.SpanID != "" {
		n += len("span_id") + len([]rune(e.SpanID))
	}
	if n > maxExemplarLabelChars {
		return newError(InvalidLabel, "exemplar labels use %d UTF-8 chars, exceeding the limit of %d", n, maxExemplarLabelChars)
	}
	return nil
}

func labelCharBudget(ls Labels) int {
	n := 0
	ls.Range(func(name, value string) bool {
		n += len([]rune(name)) + len([]rune(value))
		return true
	})
	return n
}
