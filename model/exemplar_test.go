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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExemplar(t *testing.T) {
	ls := MustNewLabels("trace_id", "abc123")
	e, err := NewExemplar(1.5, ls)
	require.NoError(t, err)
	assert.Equal(t, 1.5, e.Value)
	assert.False(t, e.HasTimestamp)
}

func TestExemplarWithTimestamp(t *testing.T) {
	e, err := NewExemplar(1, EmptyLabels)
	require.NoError(t, err)
	e = e.WithTimestamp(1672850285000)
	assert.True(t, e.HasTimestamp)
	assert.Equal(t, int64(1672850285000), e.TimestampMs)
}

func TestExemplarLabelBudget(t *testing.T) {
	// 128 is the maximum combined UTF-8 length across label names and
	// values (and trace/span ids). One over should fail.
	longValue := strings.Repeat("a", 128)
	_, err := NewExemplar(1, MustNewLabels("v", longValue))
	require.Error(t, err)
	assert.True(t, Is(err, InvalidLabel))

	shortValue := strings.Repeat("a", 100)
	_, err = NewExemplar(1, MustNewLabels("v", shortValue))
	require.NoError(t, err)
}

func TestExemplarWithTraceContextCountsTowardBudget(t *testing.T) {
	e, err := NewExemplar(1, MustNewLabels("v", strings.Repeat("a", 110)))
	require.NoError(t, err)
	_, err = e.WithTraceContext(strings.Repeat("b", 10), strings.Repeat("c", 10))
	require.Error(t, err)
	assert.True(t, Is(err, InvalidLabel))
}
