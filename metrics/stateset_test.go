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
	"github.com/coremetrics/coremetrics/snapshot"
)

func TestStateSet(t *testing.T) {
	s := MustNewStateSet(StateSetOpts{
		Name:   "process_state",
		Help:   "Process lifecycle state.",
		States: []string{"stopped", "running", "starting"},
	})

	require.NoError(t, s.Set("running", true))

	m := s.Collect()
	require.Len(t, m.StateSets, 1)
	assert.Equal(t, []snapshot.State{
		{Name: "running", Enabled: true},
		{Name: "starting", Enabled: false},
		{Name: "stopped", Enabled: false},
	}, m.StateSets[0].States)

	require.NoError(t, s.Set("running", false))
	require.NoError(t, s.Set("stopped", true))

	m = s.Collect()
	assert.Equal(t, []snapshot.State{
		{Name: "running", Enabled: false},
		{Name: "starting", Enabled: false},
		{Name: "stopped", Enabled: true},
	}, m.StateSets[0].States)
}

func TestStateSetUnknownState(t *testing.T) {
	s := MustNewStateSet(StateSetOpts{Name: "process_state", States: []string{"running"}})

	err := s.Set("paused", true)
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))
}

func TestStateSetValidation(t *testing.T) {
	_, err := NewStateSet(StateSetOpts{Name: "process_state"})
	require.Error(t, err)
	assert.True(t, model.Is(err, model.MissingRequired))

	_, err = NewStateSet(StateSetOpts{Name: "process_state", States: []string{"running", "running"}})
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))

	_, err = NewStateSet(StateSetOpts{Name: "process_state", States: []string{"running"}, LabelNames: []string{"state"}})
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))
}

func TestStateSetAddState(t *testing.T) {
	s := MustNewStateSet(StateSetOpts{Name: "process_state", States: []string{"running", "stopped"}})

	ch, err := s.WithLabelValues()
	require.NoError(t, err)
	require.NoError(t, ch.AddState("paused"))
	require.NoError(t, ch.Set("paused", true))

	m := s.Collect()
	assert.Equal(t, []snapshot.State{
		{Name: "paused", Enabled: true},
		{Name: "running", Enabled: false},
		{Name: "stopped", Enabled: false},
	}, m.StateSets[0].States)

	err = ch.AddState("paused")
	require.Error(t, err)
	assert.True(t, model.Is(err, model.InvalidLabel))

	err = ch.AddState("")
	require.Error(t, err)
	assert.True(t, model.Is(err, model.MissingRequired))
}

func TestStateSetWithLabelValues(t *testing.T) {
	s := MustNewStateSet(StateSetOpts{
		Name:       "worker_state",
		LabelNames: []string{"worker"},
		States:     []string{"busy", "idle"},
	})

	a, err := s.WithLabelValues("a")
	require.NoError(t, err)
	b, err := s.WithLabelValues("b")
	require.NoError(t, err)
	require.NoError(t, a.Set("busy", true))
	require.NoError(t, b.Set("idle", true))

	m := s.Collect()
	require.Len(t, m.StateSets, 2)
	assert.True(t, m.StateSets[0].States[0].Enabled)  // a: busy
	assert.False(t, m.StateSets[1].States[0].Enabled) // b: busy
	assert.True(t, m.StateSets[1].States[1].Enabled)  // b: idle
}
