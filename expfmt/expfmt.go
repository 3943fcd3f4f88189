// Copyright 2015 The Prometheus Authors
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

// Package expfmt renders metric snapshots in the Prometheus and
// OpenMetrics text exposition formats and negotiates between them based
// on HTTP Accept headers.
package expfmt

// Format specifies the wire format of exposed metrics, expressed as a
// Content-Type value.
type Format string

// Versions of the exposition formats supported by this package.
const (
	TextVersion        = "0.0.4"
	OpenMetricsVersion = "1.0.0"
)

// Constants to assemble the Content-Type values for the supported wire
// formats.
const (
	TextType        = "text/plain"
	OpenMetricsType = "application/openmetrics-text"

	FmtUnknown     Format = `<unknown>`
	FmtText        Format = TextType + `; version=` + TextVersion + `; charset=utf-8`
	FmtOpenMetrics Format = OpenMetricsType + `; version=` + OpenMetricsVersion + `; charset=utf-8`
)

const (
	hdrContentType = "Content-Type"
	hdrAccept      = "Accept"
)
