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

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/coremetrics/coremetrics/model"
	"github.com/coremetrics/coremetrics/snapshot"
)

// StateSetOpts configures a StateSet. At least one state is required;
// state names must be unique. States are kept sorted by name so repeated
// snapshots and both exposition formats see the same order.
type StateSetOpts struct {
	Name        string
	Help        string
	ConstLabels model.Labels
	LabelNames  []string
	States      []string
}

// StateSet exposes a set of named boolean states per label combination.
// Nothing enforces that exactly one state is true at a time.
type StateSet struct {
	desc   *Desc
	states []string
	vec    *vec[stateSetCell]
}

type stateEntry struct {
	name string
	on   *atomic.Bool
}

type stateSetCell struct {
	mu     sync.Mutex                   // guards structural additions only
	states atomic.Pointer[[]stateEntry] // immutable, sorted by name
}

// NewStateSet builds a StateSet from opts.
func NewStateSet(opts StateSetOpts) (*StateSet, error) {
	desc, err := NewDesc(opts.Name, model.MetricTypeStateSet, opts.Help, "", opts.ConstLabels, opts.LabelNames, model.ReservedLabelStateSet)
	if err != nil {
		return nil, err
	}
	if len(opts.States) == 0 {
		return nil, model.NewError(model.MissingRequired, "state set %q needs at least one state", opts.Name)
	}
	states := make([]string, len(opts.States))
	copy(states, opts.States)
	sort.Strings(states)
	for i, s := range states {
		if i > 0 && states[i-1] == s {
			return nil, model.NewError(model.InvalidLabel, "duplicate state name %q", s)
		}
	}
	set := &StateSet{desc: desc, states: states}
	set.vec = newVec(desc, func() *stateSetCell {
		entries := make([]stateEntry, len(states))
		for i, name := range states {
			entries[i] = stateEntry{name: name, on: &atomic.Bool{}}
		}
		cell := &stateSetCell{}
		cell.states.Store(&entries)
		return cell
	})
	if len(opts.LabelNames) == 0 {
		if _, err := set.vec.with(); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// MustNewStateSet is like NewStateSet but panics on error.
func MustNewStateSet(opts StateSetOpts) *StateSet {
	s, err := NewStateSet(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// WithLabelValues returns the child for the given variable label values,
// creating its cell on first use.
func (s *StateSet) WithLabelValues(values ...string) (*StateSetChild, error) {
	cell, err := s.vec.with(values...)
	if err != nil {
		return nil, err
	}
	return &StateSetChild{cell: cell}, nil
}

// Set flips the named state on the unlabeled cell.
func (s *StateSet) Set(state string, enabled bool) error {
	ch, err := s.WithLabelValues()
	if err != nil {
		return err
	}
	return ch.Set(state, enabled)
}

// Metadata implements Collector.
func (s *StateSet) Metadata() model.Metadata { return s.desc.Metadata }

// Collect implements Collector.
func (s *StateSet) Collect() snapshot.Metric {
	m := snapshot.Metric{Metadata: s.desc.Metadata}
	for _, e := range s.vec.snapshotEntries() {
		entries := *e.cell.states.Load()
		states := make([]snapshot.State, len(entries))
		for i, se := range entries {
			states[i] = snapshot.State{Name: se.name, Enabled: se.on.Load()}
		}
		m.StateSets = append(m.StateSets, snapshot.StateSetDataPoint{
			Labels: e.labels,
			States: states,
		})
	}
	return m
}

// StateSetChild is the handle for one label combination.
type StateSetChild struct {
	cell *stateSetCell
}

// Set flips the named state. Unknown state names are rejected; use
// AddState first to grow the set.
func (ch *StateSetChild) Set(state string, enabled bool) error {
	entries := *ch.cell.states.Load()
	i := sort.Search(len(entries), func(i int) bool { return entries[i].name >= state })
	if i == len(entries) || entries[i].name != state {
		return model.NewError(model.InvalidLabel, "unknown state %q", state)
	}
	entries[i].on.Store(enabled)
	return nil
}

// AddState adds a new state, initially false, keeping the set sorted.
// Adding an existing state name fails.
func (ch *StateSetChild) AddState(state string) error {
	if state == "" {
		return model.NewError(model.MissingRequired, "state name is required")
	}
	ch.cell.mu.Lock()
	defer ch.cell.mu.Unlock()
	entries := *ch.cell.states.Load()
	i := sort.Search(len(entries), func(i int) bool { return entries[i].name >= state })
	if i < len(entries) && entries[i].name == state {
		return model.NewError(model.InvalidLabel, "duplicate state name %q", state)
	}
	next := make([]stateEntry, len(entries)+1)
	copy(next, entries[:i])
	next[i] = stateEntry{name: state, on: &atomic.Bool{}}
	copy(next[i+1:], entries[i:])
	ch.cell.states.Store(&next)
	return nil
}
