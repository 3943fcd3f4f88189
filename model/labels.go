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
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Label is a single name/value pair within a Labels set.
type Label struct {
	Name  string
	Value string
}

// Labels is an immutable, canonically ordered set of label name/value
// pairs. The zero value is the empty label set. Two Labels are Equal iff
// they contain the same pairs; canonical form is sorted by name ascending,
// so Equal values also compare byte-equal after Range in order.
type Labels struct {
	pairs []Label // always sorted by Name, always validated at construction
}

// EmptyLabels is the canonical empty label set.
var EmptyLabels = Labels{}

// NewLabels builds a Labels from alternating name, value arguments. It
// rejects empty names, names matching the reserved "__" prefix rule, names
// that otherwise fail ValidateLabelName, values containing a NUL byte, and
// duplicate names.
func NewLabels(nameValues ...string) (Labels, error) {
	if len(nameValues)%2 != 0 {
		return Labels{}, newError(InvalidLabel, "odd number of name/value arguments")
	}
	pairs := make([]Label, 0, len(nameValues)/2)
	for i := 0; i < len(nameValues); i += 2 {
		pairs = append(pairs, Label{Name: nameValues[i], Value: nameValues[i+1]})
	}
	return FromPairs(pairs)
}

// FromPairs builds a Labels from a list of Label pairs, applying the same
// validation as NewLabels.
func FromPairs(pairs []Label) (Labels, error) {
	out := make([]Label, len(pairs))
	copy(out, pairs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	for i, p := range out {
		if err := ValidateLabelName(p.Name); err != nil {
			return Labels{}, err
		}
		if err := ValidateLabelValue(p.Value); err != nil {
			return Labels{}, err
		}
		if i > 0 && out[i-1].Name == p.Name {
			return Labels{}, newError(InvalidLabel, "duplicate label name %q", p.Name)
		}
	}
	return Labels{pairs: out}, nil
}

// MustNewLabels is like NewLabels but panics on error. Intended for
// package-level variable initialization and tests, not for user input.
func MustNewLabels(nameValues ...string) Labels {
	l, err := NewLabels(nameValues...)
	if err != nil {
		panic(err)
	}
	return l
}

// Len returns the number of label pairs.
func (ls Labels) Len() int { return len(ls.pairs) }

// Get returns the value for name and whether it was present.
func (ls Labels) Get(name string) (string, bool) {
	// pairs is sorted but small label sets are common enough that a linear
	// scan beats the bookkeeping of a binary search in practice.
	for _, p := range ls.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Range calls f for each pair in canonical (name-ascending) order. Range
// stops early if f returns false.
func (ls Labels) Range(f func(name, value string) bool) {
	for _, p := range ls.pairs {
		if !f(p.Name, p.Value) {
			return
		}
	}
}

// Pairs returns a copy of the canonically ordered label pairs.
func (ls Labels) Pairs() []Label {
	out := make([]Label, len(ls.pairs))
	copy(out, ls.pairs)
	return out
}

// Equal reports whether ls and o contain exactly the same pairs.
func (ls Labels) Equal(o Labels) bool {
	if len(ls.pairs) != len(o.pairs) {
		return false
	}
	for i, p := range ls.pairs {
		if p != o.pairs[i] {
			return false
		}
	}
	return true
}

// Compare orders two label sets lexicographically over their canonical
// pair sequences: first by name, then by value, shorter set first on a
// shared prefix. The snapshot producers use it to emit data points in a
// deterministic order.
func (ls Labels) Compare(o Labels) int {
	for i := 0; i < len(ls.pairs) && i < len(o.pairs); i++ {
		a, b := ls.pairs[i], o.pairs[i]
		if a.Name != b.Name {
			if a.Name < b.Name {
				return -1
			}
			return 1
		}
		if a.Value != b.Value {
			if a.Value < b.Value {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ls.pairs) < len(o.pairs):
		return -1
	case len(ls.pairs) > len(o.pairs):
		return 1
	}
	return 0
}

// Merge returns the union of ls and o. It fails if the two sets share a
// label name; callers that want "other wins" semantics should resolve the
// conflict themselves before merging.
func (ls Labels) Merge(o Labels) (Labels, error) {
	out := make([]Label, 0, len(ls.pairs)+len(o.pairs))
	out = append(out, ls.pairs...)
	out = append(out, o.pairs...)
	return FromPairs(out)
}

// Fingerprint returns a hash of the canonical form of ls, suitable as a map
// key for interning per-label-combination metric cells. It is not
// guaranteed stable across process restarts or coremetrics versions.
func (ls Labels) Fingerprint() uint64 {
	if len(ls.pairs) == 0 {
		return xxhash.Sum64([]byte{})
	}
	h := xxhash.New()
	for _, p := range ls.pairs {
		_, _ = h.WriteString(p.Name)
		_, _ = h.Write(separatorByte)
		_, _ = h.WriteString(p.Value)
		_, _ = h.Write(separatorByte)
	}
	return h.Sum64()
}

var separatorByte = []byte{0xff}

// String renders ls the way a human-facing log line would, e.g.
// `{env="prod", path="/hello"}`. It is not the wire format; see the expfmt
// package for that.
func (ls Labels) String() string {
	if len(ls.pairs) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range ls.pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(`="`)
		b.WriteString(p.Value)
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}
