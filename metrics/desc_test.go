// Copyright 2016 The Prometheus Authors
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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coremetrics/coremetrics/model"
)

func TestDescLabelsFor(t *testing.T) {
	desc, err := NewDesc("http_requests", model.MetricTypeCounter, "", "",
		model.MustNewLabels("app", "api"), []string{"method"})
	require.NoError(t, err)

	labels, err := desc.labelsFor([]string{"GET"})
	require.NoError(t, err)
	assert.Equal(t, model.MustNewLabels("app", "api", "method", "GET").Pairs(), labels.Pairs())
}

func TestDescLabelsForRejectsNulByte(t *testing.T) {
	desc, err := NewDesc("http_requests", model.MetricTypeCounter, "", "",
		model.EmptyLabels, []string{"method"})
	require.NoError(t, err)

	_, err = desc.labelsFor([]string{"GET\x00"})
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))
}

func TestDescConstAndVariableCollision(t *testing.T) {
	desc, err := NewDesc("http_requests", model.MetricTypeCounter, "", "",
		model.MustNewLabels("method", "GET"), []string{"method"})
	require.NoError(t, err)

	// The collision surfaces when the variable value arrives, not at
	// declaration time.
	_, err = desc.labelsFor([]string{"POST"})
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))
}

func TestDescNoVariableLabelsUsesConstLabels(t *testing.T) {
	constLabels := model.MustNewLabels("app", "api")
	desc, err := NewDesc("http_requests", model.MetricTypeCounter, "", "", constLabels, nil)
	require.NoError(t, err)

	labels, err := desc.labelsFor(nil)
	require.NoError(t, err)
	assert.True(t, labels.Equal(constLabels))
}
