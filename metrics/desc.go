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

// Package metrics implements the live, concurrently-updated metric cells
// (counters, gauges, histograms, summaries, infos, state sets, and
// unknowns), the per-label-combination interning vector built on top of
// them, and the registry that ties named metrics together for a collect
// pass.
package metrics

import (
	"github.com/coremetrics/coremetrics/exemplar"
	"github.com/coremetrics/coremetrics/model"
)

// Desc is the immutable, validated identity shared by every cell of a
// metric: its metadata plus the names of the labels callers vary per
// observation (as opposed to ConstLabels, which are fixed for the life of
// the metric).
type Desc struct {
	Metadata       model.Metadata
	VariableLabels []string
	Sampler        exemplar.Sampler // nil disables sampled exemplar attachment
}

// NewDesc validates name, constLabels, and variableLabels and builds a Desc;
// help and unit are stored as given.
// reservedNames lists label names the calling metric kind claims for
// itself (e.g. "le" for histograms); they may not appear in constLabels
// or variableLabels.
func NewDesc(name string, mtype model.MetricType, help, unit string, constLabels model.Labels, variableLabels []string, reservedNames ...string) (*Desc, error) {
	md, err := model.NewMetadata(name, mtype, help, unit, constLabels, reservedNames...)
	if err != nil {
		return nil, err
	}
	for _, vl := range variableLabels {
		if err := model.ValidateLabelName(vl, reservedNames...); err != nil {
			return nil, err
		}
	}
	labels := make([]string, len(variableLabels))
	copy(labels, variableLabels)
	return &Desc{Metadata: md, VariableLabels: labels}, nil
}

// labelsFor zips the declared variable label names with the given values
// and merges in the const labels. It fails if the value count does not
// match the declaration, if a value contains a NUL byte, or if a variable
// label collides with a const label.
func (d *Desc) labelsFor(values []string) (model.Labels, error) {
	if len(values) != len(d.VariableLabels) {
		return model.Labels{}, model.NewError(model.InvalidLabel,
			"metric %q declares %d variable labels, got %d values",
			d.Metadata.Name, len(d.VariableLabels), len(values))
	}
	if len(values) == 0 {
		return d.Metadata.ConstLabels, nil
	}
	pairs := make([]model.Label, len(values))
	for i, v := range values {
		pairs[i] = model.Label{Name: d.VariableLabels[i], Value: v}
	}
	varLabels, err := model.FromPairs(pairs)
	if err != nil {
		return model.Labels{}, err
	}
	return d.Metadata.ConstLabels.Merge(varLabels)
}
