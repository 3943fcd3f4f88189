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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	m, err := NewMetadata("http_requests_total", MetricTypeCounter, "total HTTP requests", "", EmptyLabels)
	require.NoError(t, err)
	assert.Equal(t, "http_requests_total", m.Name)
	assert.Equal(t, MetricTypeCounter, m.Type)
}

func TestNewMetadataInvalidName(t *testing.T) {
	_, err := NewMetadata("__reserved", MetricTypeCounter, "", "", EmptyLabels)
	require.Error(t, err)
	assert.True(t, Is(err, InvalidName))
}

func TestNewMetadataReservedConstLabel(t *testing.T) {
	constLabels := MustNewLabels(ReservedLabelHistogram, "0.5")
	_, err := NewMetadata("request_duration_seconds", MetricTypeHistogram, "", "", constLabels, ReservedLabelHistogram)
	require.Error(t, err)
	assert.True(t, Is(err, InvalidLabel))
}

func TestMetricTypeString(t *testing.T) {
	assert.Equal(t, "counter", MetricTypeCounter.String())
	assert.Equal(t, "gaugehistogram", MetricTypeGaugeHistogram.String())
	assert.Equal(t, "unknown", MetricTypeUnknown.String())
}
