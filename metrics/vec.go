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

	"github.com/coremetrics/coremetrics/model"
)

// vec interns one cell per label combination. Lookups are lock-free: the
// map is keyed by the label set's fingerprint and each value is an
// immutable collision chain that is replaced, never mutated, on insert.
// Inserts contend on a per-metric mutex with a double-checked re-lookup.
type vec[T any] struct {
	desc    *Desc
	newCell func() *T

	cells sync.Map // uint64 -> []*vecEntry[T]

	mu      sync.Mutex
	entries []*vecEntry[T] // sorted by labels, guarded by mu
}

type vecEntry[T any] struct {
	labels model.Labels
	cell   *T
}

func newVec[T any](desc *Desc, newCell func() *T) *vec[T] {
	return &vec[T]{desc: desc, newCell: newCell}
}

// with returns the cell for the given variable label values, creating it
// on first use.
func (v *vec[T]) with(labelValues ...string) (*T, error) {
	labels, err := v.desc.labelsFor(labelValues)
	if err != nil {
		return nil, err
	}
	fp := labels.Fingerprint()
	if chain, ok := v.cells.Load(fp); ok {
		for _, e := range chain.([]*vecEntry[T]) {
			if e.labels.Equal(labels) {
				return e.cell, nil
			}
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	var chain []*vecEntry[T]
	if got, ok := v.cells.Load(fp); ok {
		chain = got.([]*vecEntry[T])
		for _, e := range chain {
			if e.labels.Equal(labels) {
				return e.cell, nil
			}
		}
	}
	entry := &vecEntry[T]{labels: labels, cell: v.newCell()}
	next := make([]*vecEntry[T], len(chain)+1)
	copy(next, chain)
	next[len(chain)] = entry
	v.cells.Store(fp, next)

	i := sort.Search(len(v.entries), func(i int) bool {
		return v.entries[i].labels.Compare(labels) >= 0
	})
	v.entries = append(v.entries, nil)
	copy(v.entries[i+1:], v.entries[i:])
	v.entries[i] = entry
	return entry.cell, nil
}

// snapshotEntries returns the current cells in label order. The returned
// slice is a copy; the cells it points to are live and must be read with
// the exemplar-before-value discipline.
func (v *vec[T]) snapshotEntries() []*vecEntry[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*vecEntry[T], len(v.entries))
	copy(out, v.entries)
	return out
}
