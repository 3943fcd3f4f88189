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

package expfmt

import (
	"io"

	"github.com/coremetrics/coremetrics/model"
	"github.com/coremetrics/coremetrics/snapshot"
)

// MetricToOpenMetrics writes one metric snapshot to out in the OpenMetrics
// text format and returns the number of bytes written. It does not write
// the terminating "# EOF" line; call FinalizeOpenMetrics once after the
// last metric, or use WriteOpenMetrics for the whole set.
func MetricToOpenMetrics(out io.Writer, m snapshot.Metric) (int, error) {
	w := newTextWriter(out)
	md := m.Metadata
	switch md.Type {
	case model.MetricTypeCounter:
		w.omHeader(md)
		for _, d := range m.Counters {
			w.str(md.Name)
			w.str("_total")
			w.labels(d.Labels, "", "")
			w.sp()
			w.double(d.Value)
			w.scrape(d.ScrapeTimestampMs)
			w.exemplar(d.Exemplar)
			w.nl()
			w.omCreated(md.Name, d.Labels, d.CreatedTimestampMs, d.ScrapeTimestampMs)
		}
	case model.MetricTypeGauge:
		w.omHeader(md)
		for _, d := range m.Gauges {
			w.str(md.Name)
			w.labels(d.Labels, "", "")
			w.sp()
			w.double(d.Value)
			w.scrape(d.ScrapeTimestampMs)
			w.exemplar(d.Exemplar)
			w.nl()
		}
	case model.MetricTypeHistogram, model.MetricTypeGaugeHistogram:
		// Gauge histograms report their running totals under _gcount and
		// _gsum instead of _count and _sum.
		countSuffix, sumSuffix := "_count", "_sum"
		if md.Type == model.MetricTypeGaugeHistogram {
			countSuffix, sumSuffix = "_gcount", "_gsum"
		}
		w.omHeader(md)
		for _, d := range m.Histograms {
			for _, b := range d.Buckets {
				w.str(md.Name)
				w.str("_bucket")
				w.labels(d.Labels, model.ReservedLabelHistogram, doubleString(b.UpperBound))
				w.sp()
				w.uint(b.CumulativeCount)
				w.scrape(d.ScrapeTimestampMs)
				w.exemplar(b.Exemplar)
				w.nl()
			}
			// OpenMetrics allows a histogram count if and only if the sum
			// is present.
			if d.Sum != nil {
				w.str(md.Name)
				w.str(countSuffix)
				w.labels(d.Labels, "", "")
				w.sp()
				w.uint(d.Count())
				w.scrape(d.ScrapeTimestampMs)
				w.nl()
				w.str(md.Name)
				w.str(sumSuffix)
				w.labels(d.Labels, "", "")
				w.sp()
				w.double(*d.Sum)
				w.scrape(d.ScrapeTimestampMs)
				w.nl()
			}
			w.omCreated(md.Name, d.Labels, d.CreatedTimestampMs, d.ScrapeTimestampMs)
		}
	case model.MetricTypeSummary:
		data := nonEmptySummaries(m.Summaries)
		if len(data) == 0 {
			break
		}
		w.omHeader(md)
		for _, d := range data {
			for _, q := range d.Quantiles {
				w.str(md.Name)
				w.labels(d.Labels, model.ReservedLabelSummary, doubleString(q.Quantile))
				w.sp()
				w.double(q.Value)
				w.scrape(d.ScrapeTimestampMs)
				w.exemplar(d.Exemplar)
				w.nl()
			}
			if d.Count != nil {
				w.str(md.Name)
				w.str("_count")
				w.labels(d.Labels, "", "")
				w.sp()
				w.uint(*d.Count)
				w.scrape(d.ScrapeTimestampMs)
				w.exemplar(d.Exemplar)
				w.nl()
			}
			if d.Sum != nil {
				w.str(md.Name)
				w.str("_sum")
				w.labels(d.Labels, "", "")
				w.sp()
				w.double(*d.Sum)
				w.scrape(d.ScrapeTimestampMs)
				w.exemplar(d.Exemplar)
				w.nl()
			}
			w.omCreated(md.Name, d.Labels, d.CreatedTimestampMs, d.ScrapeTimestampMs)
		}
	case model.MetricTypeInfo:
		w.omHeader(md)
		for _, d := range m.Infos {
			w.str(md.Name)
			w.str("_info")
			w.labelPairs(mergedPairs(d.Labels, d.Info), "", "")
			w.str(" 1")
			w.scrape(d.ScrapeTimestampMs)
			w.nl()
		}
	case model.MetricTypeStateSet:
		w.omHeader(md)
		for _, d := range m.StateSets {
			for _, st := range d.States {
				w.str(md.Name)
				w.labels(d.Labels, model.ReservedLabelStateSet, st.Name)
				if st.Enabled {
					w.str(" 1")
				} else {
					w.str(" 0")
				}
				w.scrape(d.ScrapeTimestampMs)
				w.nl()
			}
		}
	default:
		w.omHeader(md)
		for _, d := range m.Unknowns {
			w.str(md.Name)
			w.labels(d.Labels, "", "")
			w.sp()
			w.double(d.Value)
			w.scrape(d.ScrapeTimestampMs)
			w.exemplar(d.Exemplar)
			w.nl()
		}
	}
	return w.done("writing OpenMetrics text")
}

// FinalizeOpenMetrics writes the terminating "# EOF" line. A valid
// OpenMetrics document must end with it, even when no metrics precede it.
func FinalizeOpenMetrics(out io.Writer) (int, error) {
	n, err := out.Write([]byte("# EOF\n"))
	if err != nil {
		return n, model.WrapError(model.IOFailure, err, "writing OpenMetrics trailer")
	}
	return n, nil
}

// WriteOpenMetrics renders the whole snapshot set as one OpenMetrics
// document, including the terminating "# EOF" line.
func WriteOpenMetrics(out io.Writer, set *snapshot.Set) (int, error) {
	var written int
	var rangeErr error
	set.Range(func(m snapshot.Metric) bool {
		n, err := MetricToOpenMetrics(out, m)
		written += n
		rangeErr = err
		return err == nil
	})
	if rangeErr != nil {
		return written, rangeErr
	}
	n, err := FinalizeOpenMetrics(out)
	return written + n, err
}

// omHeader writes the TYPE, UNIT, and HELP comment lines. TYPE always
// comes first; UNIT and HELP appear only when set.
func (w *textWriter) omHeader(md model.Metadata) {
	w.str("# TYPE ")
	w.str(md.Name)
	w.sp()
	w.str(md.Type.String())
	w.nl()
	if md.Unit != "" {
		w.str("# UNIT ")
		w.str(md.Name)
		w.sp()
		w.str(md.Unit)
		w.nl()
	}
	if md.Help != "" {
		w.str("# HELP ")
		w.str(md.Name)
		w.sp()
		w.str(valueEscaper.Replace(md.Help))
		w.nl()
	}
}

// omCreated writes a _created sample whose value is the creation
// timestamp, directly after the data point it belongs to.
func (w *textWriter) omCreated(name string, ls model.Labels, createdMs, scrapeMs *int64) {
	if createdMs == nil {
		return
	}
	w.str(name)
	w.str("_created")
	w.labels(ls, "", "")
	w.sp()
	w.timestamp(*createdMs)
	w.scrape(scrapeMs)
	w.nl()
}

// nonEmptySummaries filters out data points with no count, sum, or
// quantiles. A summary whose points are all empty renders nothing, not
// even its header block.
func nonEmptySummaries(data []snapshot.SummaryDataPoint) []snapshot.SummaryDataPoint {
	out := make([]snapshot.SummaryDataPoint, 0, len(data))
	for _, d := range data {
		if !d.Empty() {
			out = append(out, d)
		}
	}
	return out
}
