// Copyright 2014 The Prometheus Authors
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

package expfmt

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/coremetrics/coremetrics/model"
)

var (
	// valueEscaper escapes label values in both formats and help text in
	// OpenMetrics.
	valueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	// promHelpEscaper escapes help text in the Prometheus format, which
	// leaves double quotes alone.
	promHelpEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
)

// textWriter accumulates one metric's rendered text and flushes it to the
// underlying writer in a single Write. Render methods never fail; the one
// possible failure is the final flush in done.
type textWriter struct {
	out io.Writer
	buf []byte
}

func newTextWriter(out io.Writer) *textWriter {
	return &textWriter{out: out, buf: make([]byte, 0, 512)}
}

func (w *textWriter) str(s string) { w.buf = append(w.buf, s...) }
func (w *textWriter) byt(c byte)   { w.buf = append(w.buf, c) }
func (w *textWriter) sp()          { w.byt(' ') }
func (w *textWriter) nl()          { w.byt('\n') }

// done flushes the buffer and reports the byte count written. A short or
// failed write surfaces as an IOFailure error.
func (w *textWriter) done(context string) (int, error) {
	if len(w.buf) == 0 {
		return 0, nil
	}
	n, err := w.out.Write(w.buf)
	if err != nil {
		return n, model.WrapError(model.IOFailure, err, "%s", context)
	}
	return n, nil
}

// appendDouble renders a float the way both text formats expect: NaN and
// the infinities by name, whole numbers below 1e17 in magnitude with a
// trailing ".0", everything else (including larger whole numbers) in
// shortest form.
func appendDouble(buf []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(buf, "NaN"...)
	case math.IsInf(v, +1):
		return append(buf, "+Inf"...)
	case math.IsInf(v, -1):
		return append(buf, "-Inf"...)
	case v == math.Trunc(v) && math.Abs(v) < 1e17:
		return strconv.AppendFloat(buf, v, 'f', 1, 64)
	default:
		return strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
}

// doubleString is appendDouble for label values such as le and quantile.
func doubleString(v float64) string {
	return string(appendDouble(nil, v))
}

func (w *textWriter) double(v float64) { w.buf = appendDouble(w.buf, v) }

func (w *textWriter) uint(v uint64) { w.buf = strconv.AppendUint(w.buf, v, 10) }

// timestamp renders a millisecond epoch timestamp as seconds with exactly
// three decimal places, e.g. 1672850685829 -> "1672850685.829".
func (w *textWriter) timestamp(ms int64) {
	if ms < 0 {
		w.byt('-')
		ms = -ms
	}
	w.buf = strconv.AppendInt(w.buf, ms/1000, 10)
	w.byt('.')
	frac := ms % 1000
	if frac < 100 {
		w.byt('0')
	}
	if frac < 10 {
		w.byt('0')
	}
	w.buf = strconv.AppendInt(w.buf, frac, 10)
}

// scrape appends a space-separated scrape timestamp if one is present.
func (w *textWriter) scrape(ms *int64) {
	if ms == nil {
		return
	}
	w.sp()
	w.timestamp(*ms)
}

// labelPairs renders {a="b",...}, appending the extra pair last regardless
// of sort order; le, quantile, and state go there. No pairs and no extra
// renders nothing at all.
func (w *textWriter) labelPairs(pairs []model.Label, extraName, extraValue string) {
	if len(pairs) == 0 && extraName == "" {
		return
	}
	w.byt('{')
	for i, p := range pairs {
		if i > 0 {
			w.byt(',')
		}
		w.pair(p.Name, p.Value)
	}
	if extraName != "" {
		if len(pairs) > 0 {
			w.byt(',')
		}
		w.pair(extraName, extraValue)
	}
	w.byt('}')
}

func (w *textWriter) pair(name, value string) {
	w.str(name)
	w.str(`="`)
	w.str(valueEscaper.Replace(value))
	w.byt('"')
}

func (w *textWriter) labels(ls model.Labels, extraName, extraValue string) {
	w.labelPairs(ls.Pairs(), extraName, extraValue)
}

// mergedPairs combines two label sets into one name-sorted pair list. Info
// metrics use it to fold their payload labels into the identifying ones.
func mergedPairs(a, b model.Labels) []model.Label {
	pairs := append(a.Pairs(), b.Pairs()...)
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	return pairs
}

// exemplar renders " # {labels} value [timestamp]". The trace and span
// identifiers join the exemplar's labels under their conventional names,
// and the whole set is emitted sorted. The braces appear even when the
// label set is empty.
func (w *textWriter) exemplar(e *model.Exemplar) {
	if e == nil {
		return
	}
	pairs := e.Labels.Pairs()
	if e.TraceID != "" {
		pairs = append(pairs, model.Label{Name: "trace_id", Value: e.TraceID})
	}
	if e.SpanID != "" {
		pairs = append(pairs, model.Label{Name: "span_id", Value: e.SpanID})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	w.str(" # ")
	if len(pairs) == 0 {
		w.str("{}")
	} else {
		w.labelPairs(pairs, "", "")
	}
	w.sp()
	w.double(e.Value)
	if e.HasTimestamp {
		w.sp()
		w.timestamp(e.TimestampMs)
	}
}
