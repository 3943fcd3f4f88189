// Copyright 2018 The Prometheus Authors
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
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coremetrics/coremetrics/model"
	"github.com/coremetrics/coremetrics/snapshot"
)

func acceptHeader(value string) http.Header {
	h := http.Header{}
	if value != "" {
		h.Set(hdrAccept, value)
	}
	return h
}

func TestNegotiate(t *testing.T) {
	for _, tc := range []struct {
		name     string
		accept   string
		expected Format
	}{
		{
			name:     "no accept header",
			accept:   "",
			expected: FmtText,
		},
		{
			name:     "text format",
			accept:   "text/plain",
			expected: FmtText,
		},
		{
			name:     "text format with correct version",
			accept:   "text/plain; version=0.0.4",
			expected: FmtText,
		},
		{
			name:     "text format with wrong version",
			accept:   "text/plain; version=0.0.3",
			expected: FmtText,
		},
		{
			name:     "openmetrics is never negotiated",
			accept:   "application/openmetrics-text",
			expected: FmtText,
		},
		{
			name:     "unknown type falls back to text",
			accept:   "application/json",
			expected: FmtText,
		},
		{
			name:     "wildcard falls back to text",
			accept:   "*/*",
			expected: FmtText,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Negotiate(acceptHeader(tc.accept)))
		})
	}
}

func TestNegotiateIncludingOpenMetrics(t *testing.T) {
	for _, tc := range []struct {
		name     string
		accept   string
		expected Format
	}{
		{
			name:     "no accept header",
			accept:   "",
			expected: FmtText,
		},
		{
			name:     "openmetrics",
			accept:   "application/openmetrics-text",
			expected: FmtOpenMetrics,
		},
		{
			name:     "openmetrics with correct version",
			accept:   "application/openmetrics-text; version=1.0.0",
			expected: FmtOpenMetrics,
		},
		{
			name:     "openmetrics with wrong version",
			accept:   "application/openmetrics-text; version=0.0.1",
			expected: FmtText,
		},
		{
			name:     "openmetrics preferred over text",
			accept:   "application/openmetrics-text; q=0.9, text/plain; q=0.5",
			expected: FmtOpenMetrics,
		},
		{
			name:     "text preferred over openmetrics",
			accept:   "text/plain; q=0.9, application/openmetrics-text; q=0.5",
			expected: FmtText,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NegotiateIncludingOpenMetrics(acceptHeader(tc.accept)))
		})
	}
}

func TestEncoderCreatorWithAdditionalEncoder(t *testing.T) {
	const jsonFormat Format = "application/json; version=1.2.3"
	ec := NewEncoderCreator(EncoderImplementation{
		HeaderAcceptType:    "application/json",
		HeaderAcceptVersion: "1.2.3",
		EncodeFormat:        jsonFormat,
		EncodeWriterFunc: func(w io.Writer) func(m snapshot.Metric) error {
			return func(m snapshot.Metric) error {
				_, err := w.Write([]byte(m.Metadata.Name + "\n"))
				return err
			}
		},
	})

	assert.Equal(t, jsonFormat, ec.Negotiate(acceptHeader("application/json")))
	assert.Equal(t, jsonFormat, ec.Negotiate(acceptHeader("application/json; version=1.2.3")))
	assert.Equal(t, FmtText, ec.Negotiate(acceptHeader("application/json; version=2.0.0")))

	var buf bytes.Buffer
	enc := ec.NewEncoder(&buf, jsonFormat)
	m := snapshot.Metric{Metadata: metadata("calls", "", "", model.MetricTypeCounter)}
	require.NoError(t, enc.Encode(m))
	require.NoError(t, enc.(Closer).Close())
	assert.Equal(t, "calls\n", buf.String())
}

func TestEncode(t *testing.T) {
	m := snapshot.Metric{
		Metadata: metadata("my_count", "some help", "", model.MetricTypeCounter),
		Counters: []snapshot.CounterDataPoint{
			{Value: 1.1},
		},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		enc := NewEncoder(&buf, FmtText)
		require.NoError(t, enc.Encode(m))
		closer, ok := enc.(Closer)
		require.True(t, ok)
		require.NoError(t, closer.Close())
		assert.Equal(t, `# HELP my_count_total some help
# TYPE my_count_total counter
my_count_total 1.1
`, buf.String())
	})

	t.Run("openmetrics", func(t *testing.T) {
		var buf bytes.Buffer
		enc := NewEncoder(&buf, FmtOpenMetrics)
		require.NoError(t, enc.Encode(m))
		closer, ok := enc.(Closer)
		require.True(t, ok)
		require.NoError(t, closer.Close())
		assert.Equal(t, `# TYPE my_count counter
# HELP my_count some help
my_count_total 1.1
# EOF
`, buf.String())
	})
}

func TestNewEncoderUnknownFormat(t *testing.T) {
	assert.Panics(t, func() {
		NewEncoder(io.Discard, FmtUnknown)
	})
}
