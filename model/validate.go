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
	"regexp"
	"strings"
)

// MetricNameRE matches legal metric names. Dots, which some ingestion
// pipelines use in other naming schemes, are deliberately not legal here.
var MetricNameRE = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)

// LabelNameRE matches legal label names.
var LabelNameRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const reservedPrefix = "__"

// ReservedLabelHistogram, ReservedLabelSummary, and ReservedLabelStateSet
// are label names that a particular metric kind claims for its own use;
// user-supplied labels may not reuse them on that kind.
const (
	ReservedLabelHistogram = "le"
	ReservedLabelSummary   = "quantile"
	ReservedLabelStateSet  = "state"
)

// IsValidMetricName reports whether name is a legal metric name: it matches
// MetricNameRE and does not begin with the reserved "__" prefix.
func IsValidMetricName(name string) bool {
	return name != "" && !strings.HasPrefix(name, reservedPrefix) && MetricNameRE.MatchString(name)
}

// IsValidLabelName reports whether name is a legal label name: it matches
// LabelNameRE and does not begin with the reserved "__" prefix.
func IsValidLabelName(name string) bool {
	return name != "" && !strings.HasPrefix(name, reservedPrefix) && LabelNameRE.MatchString(name)
}

// ValidateMetricName returns an *Error of kind InvalidName if name is not a
// legal metric name, or of kind MissingRequired if name is empty.
func ValidateMetricName(name string) error {
	if name == "" {
		return newError(MissingRequired, "metric name is required")
	}
	if strings.HasPrefix(name, reservedPrefix) {
		return newError(InvalidName, "metric name %q begins with reserved prefix %q", name, reservedPrefix)
	}
	if !MetricNameRE.MatchString(name) {
		return newError(InvalidName, "metric name %q does not match %s", name, MetricNameRE.String())
	}
	return nil
}

// ValidateLabelName returns an *Error of kind InvalidName (or InvalidLabel,
// if name collides with a reserved label of the given metric kind) if name
// is not usable as a user-supplied label name. reserved lists the label
// names the calling metric kind reserves for itself (e.g. "le" for
// histograms); pass none for kinds with no reserved labels.
func ValidateLabelName(name string, reserved ...string) error {
	if strings.HasPrefix(name, reservedPrefix) {
		return newError(InvalidName, "label name %q begins with reserved prefix %q", name, reservedPrefix)
	}
	if !LabelNameRE.MatchString(name) {
		return newError(InvalidName, "label name %q does not match %s", name, LabelNameRE.String())
	}
	for _, r := range reserved {
		if name == r {
			return newError(InvalidLabel, "label name %q is reserved by this metric kind", name)
		}
	}
	return nil
}

// ValidateLabelValue returns an *Error of kind InvalidLabel if value cannot
// be used as a label value (it contains a NUL byte; OpenMetrics and
// Prometheus exposition both forbid embedding NUL in text output).
func ValidateLabelValue(value string) error {
	if strings.IndexByte(value, 0) >= 0 {
		return newError(InvalidLabel, "label value contains a NUL byte")
	}
	return nil
}
