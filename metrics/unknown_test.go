// Copyright 2020 The Prometheus Authors
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

func TestUnknownSet(t *testing.T) {
	u := MustNewUnknown(UnknownOpts{Name: "bridged_value", Help: "Value of foreign origin."})

	require.NoError(t, u.Set(-3.14))

	m := u.Collect()
	require.Len(t, m.Unknowns, 1)
	assert.Equal(t, model.MetricTypeUnknown, m.Metadata.Type)
	assert.Equal(t, -3.14, m.Unknowns[0].Value)
}

func TestUnknownSetWithExemplar(t *testing.T) {
	fixedClock(t, 1672850685829)
	u := MustNewUnknown(UnknownOpts{Name: "bridged_value"})

	ch, err := u.WithLabelValues()
	require.NoError(t, err)
	require.NoError(t, ch.SetWithExemplar(9.9, model.MustNewLabels("source", "legacy")))

	m := u.Collect()
	require.NotNil(t, m.Unknowns[0].Exemplar)
	assert.Equal(t, 9.9, m.Unknowns[0].Exemplar.Value)
}
