// Copyright 2014 The Prometheus Authors
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

// MetricToText writes one metric snapshot to out in the Prometheus text
// format (version 0.0.4) and returns the number of bytes written.
//
// The Prometheus format has no native notion of created timestamps, gauge
// histogram totals, or the info and stateset types, so this writer lowers
// them: _created, _gcount, and _gsum become separate gauge blocks after
// the main samples, info and stateset become gauges, and unknown becomes
// untyped. Exemplars are dropped; the format cannot carry them.
func MetricToText(out io.Writer, m snapshot.Metric) (int, error) {
	w := newTextWriter(out)
	md := m.Metadata
	switch md.Type {
	case model.MetricTypeCounter:
		w.promHeader(md.Name+"_total", "counter", md.Help)
		var created []createdPoint
		for _, d := range m.Counters {
			w.str(md.Name)
			w.str("_total")
			w.labels(d.Labels, "", "")
			w.sp()
			w.double(d.Value)
			w.scrape(d.ScrapeTimestampMs)
			w.nl()
			created = appendCreated(created, d.Labels, d.CreatedTimestampMs, d.ScrapeTimestampMs)
		}
		w.promCreatedBlock(md.Name, md.Help, created)
	case model.MetricTypeGauge:
		w.promHeader(md.Name, "gauge", md.Help)
		for _, d := range m.Gauges {
			w.str(md.Name)
			w.labels(d.Labels, "", "")
			w.sp()
			w.double(d.Value)
			w.scrape(d.ScrapeTimestampMs)
			w.nl()
		}
	case model.MetricTypeHistogram, model.MetricTypeGaugeHistogram:
		w.promHeader(md.Name, "histogram", md.Help)
		isGaugeHistogram := md.Type == model.MetricTypeGaugeHistogram
		var created []createdPoint
		for _, d := range m.Histograms {
			for _, b := range d.Buckets {
				w.str(md.Name)
				w.str("_bucket")
				w.labels(d.Labels, model.ReservedLabelHistogram, doubleString(b.UpperBound))
				w.sp()
				w.uint(b.CumulativeCount)
				w.scrape(d.ScrapeTimestampMs)
				w.nl()
			}
			if !isGaugeHistogram {
				// Unlike OpenMetrics, the count is always legal here, sum
				// or not.
				w.str(md.Name)
				w.str("_count")
				w.labels(d.Labels, "", "")
				w.sp()
				w.uint(d.Count())
				w.scrape(d.ScrapeTimestampMs)
				w.nl()
				if d.Sum != nil {
					w.str(md.Name)
					w.str("_sum")
					w.labels(d.Labels, "", "")
					w.sp()
					w.double(*d.Sum)
					w.scrape(d.ScrapeTimestampMs)
					w.nl()
				}
			}
			created = appendCreated(created, d.Labels, d.CreatedTimestampMs, d.ScrapeTimestampMs)
		}
		if isGaugeHistogram {
			w.promSubHeader(md.Name+"_gcount", md.Help)
			for _, d := range m.Histograms {
				w.str(md.Name)
				w.str("_gcount")
				w.labels(d.Labels, "", "")
				w.sp()
				w.uint(d.Count())
				w.scrape(d.ScrapeTimestampMs)
				w.nl()
			}
			if anyHistogramSum(m.Histograms) {
				w.promSubHeader(md.Name+"_gsum", md.Help)
				for _, d := range m.Histograms {
					if d.Sum == nil {
						continue
					}
					w.str(md.Name)
					w.str("_gsum")
					w.labels(d.Labels, "", "")
					w.sp()
					w.double(*d.Sum)
					w.scrape(d.ScrapeTimestampMs)
					w.nl()
				}
			}
		}
		w.promCreatedBlock(md.Name, md.Help, created)
	case model.MetricTypeSummary:
		data := nonEmptySummaries(m.Summaries)
		if len(data) == 0 {
			break
		}
		w.promHeader(md.Name, "summary", md.Help)
		var created []createdPoint
		for _, d := range data {
			for _, q := range d.Quantiles {
				w.str(md.Name)
				w.labels(d.Labels, model.ReservedLabelSummary, doubleString(q.Quantile))
				w.sp()
				w.double(q.Value)
				w.scrape(d.ScrapeTimestampMs)
				w.nl()
			}
			if d.Count != nil {
				w.str(md.Name)
				w.str("_count")
				w.labels(d.Labels, "", "")
				w.sp()
				w.uint(*d.Count)
				w.scrape(d.ScrapeTimestampMs)
				w.nl()
			}
			if d.Sum != nil {
				w.str(md.Name)
				w.str("_sum")
				w.labels(d.Labels, "", "")
				w.sp()
				w.double(*d.Sum)
				w.scrape(d.ScrapeTimestampMs)
				w.nl()
			}
			created = appendCreated(created, d.Labels, d.CreatedTimestampMs, d.ScrapeTimestampMs)
		}
		w.promCreatedBlock(md.Name, md.Help, created)
	case model.MetricTypeInfo:
		w.promHeader(md.Name+"_info", "gauge", md.Help)
		for _, d := range m.Infos {
			w.str(md.Name)
			w.str("_info")
			w.labelPairs(mergedPairs(d.Labels, d.Info), "", "")
			w.str(" 1")
			w.scrape(d.ScrapeTimestampMs)
			w.nl()
		}
	case model.MetricTypeStateSet:
		w.promHeader(md.Name, "gauge", md.Help)
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
		w.promHeader(md.Name, "untyped", md.Help)
		for _, d := range m.Unknowns {
			w.str(md.Name)
			w.labels(d.Labels, "", "")
			w.sp()
			w.double(d.Value)
			w.scrape(d.ScrapeTimestampMs)
			w.nl()
		}
	}
	return w.done("writing Prometheus text")
}

// WriteText renders the whole snapshot set in the Prometheus text format.
// The format has no document trailer.
func WriteText(out io.Writer, set *snapshot.Set) (int, error) {
	var written int
	var rangeErr error
	set.Range(func(m snapshot.Metric) bool {
		n, err := MetricToText(out, m)
		written += n
		rangeErr = err
		return err == nil
	})
	return written, rangeErr
}

// promHeader writes the HELP and TYPE comment lines. HELP comes first and
// appears only when set.
func (w *textWriter) promHeader(displayName, typeName, help string) {
	if help != "" {
		w.str("# HELP ")
		w.str(displayName)
		w.sp()
		w.str(promHelpEscaper.Replace(help))
		w.nl()
	}
	w.str("# TYPE ")
	w.str(displayName)
	w.sp()
	w.str(typeName)
	w.nl()
}

// promSubHeader is promHeader for the synthesized gauge blocks.
func (w *textWriter) promSubHeader(displayName, help string) {
	w.promHeader(displayName, "gauge", help)
}

// createdPoint is one data point's creation timestamp, deferred until
// after the main samples so it can be emitted as its own gauge block.
type createdPoint struct {
	labels    model.Labels
	createdMs int64
	scrapeMs  *int64
}

func appendCreated(points []createdPoint, ls model.Labels, createdMs, scrapeMs *int64) []createdPoint {
	if createdMs == nil {
		return points
	}
	return append(points, createdPoint{labels: ls, createdMs: *createdMs, scrapeMs: scrapeMs})
}

func (w *textWriter) promCreatedBlock(name, help string, points []createdPoint) {
	if len(points) == 0 {
		return
	}
	w.promSubHeader(name+"_created", help)
	for _, p := range points {
		w.str(name)
		w.str("_created")
		w.labels(p.labels, "", "")
		w.sp()
		w.timestamp(p.createdMs)
		w.scrape(p.scrapeMs)
		w.nl()
	}
}

func anyHistogramSum(data []snapshot.HistogramDataPoint) bool {
	for _, d := range data {
		if d.Sum != nil {
			return true
		}
	}
	return false
}
