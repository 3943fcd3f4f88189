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

// MetricType identifies the kind of a metric, mirroring the OpenMetrics
// MetricType enum.
type MetricType int

const (
	MetricTypeUnknown MetricType = iota
	MetricTypeCounter
	MetricTypeGauge
	MetricTypeHistogram
	MetricTypeGaugeHistogram
	MetricTypeSummary
	MetricTypeInfo
	MetricTypeStateSet
)

func (t MetricType) String() string {
	switch t {
	case MetricTypeCounter:
		return "counter"
	case MetricTypeGauge:
		return "gauge"
	case MetricTypeHistogram:
		return "histogram"
	case MetricTypeGaugeHistogram:
		return "gaugehistogram"
	case MetricTypeSummary:
		return "summary"
	case MetricTypeInfo:
		return "info"
	case MetricTypeStateSet:
		return "stateset"
	default:
		return "unknown"
	}
}

// Metadata is the immutable identity of a metric: its name, optional help
// text and unit, declared type, and any constant labels attached to every
// data point the metric produces.
type Metadata struct {
	Name        string
	Help        string
	Unit        string
	Type        MetricType
	ConstLabels Labels
}

// NewMetadata validates and builds a Metadata. name is required and must
// pass ValidateMetricName. By convention a name carries its unit as a
// suffix ("service_time_seconds" with unit "seconds"); the exposition
// writers emit the name as-is and never append the unit themselves.
// constLabels may not use any of the reservedNames the calling metric
// kind claims for itself (e.g. "le" for histograms).
func NewMetadata(name string, mtype MetricType, help, unit string, constLabels Labels, reservedNames ...string) (Metadata, error) {
	if err := ValidateMetricName(name); err != nil {
		return Metadata{}, err
	}
	var badErr error
	constLabels.Range(func(n, _ string) bool {
		if err := ValidateLabelName(n, reservedNames...); err != nil {
			badErr = err
			return false
		}
		return true
	})
	if badErr != nil {
		return Metadata{}, badErr
	}
	return Metadata{
		Name:        name,
		Help:        help,
		Unit:        unit,
		Type:        mtype,
		ConstLabels: constLabels,
	}, nil
}
