// Copyright 2018 The Prometheus Authors
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

// The coremetricsdemo command builds a handful of metrics, records some
// observations, and writes one snapshot to stdout in the chosen text
// format. It exists to exercise the library end to end from the command
// line; it is not a scrape endpoint.
package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/alecthomas/units"

	"github.com/coremetrics/coremetrics/exemplar"
	"github.com/coremetrics/coremetrics/expfmt"
	"github.com/coremetrics/coremetrics/log"
	"github.com/coremetrics/coremetrics/metrics"
	"github.com/coremetrics/coremetrics/model"
	"github.com/coremetrics/coremetrics/quantile"
	"github.com/coremetrics/coremetrics/snapshot"
)

func main() {
	var (
		app           = kingpin.New("coremetricsdemo", "Render a demo metric snapshot to stdout.")
		format        = app.Flag("format", "Output format.").Default("openmetrics").Enum("openmetrics", "prometheus")
		samplerMaxAge = app.Flag("sampler-max-age", "Age after which a held exemplar is replaced.").Default("7s").Duration()
		payloadSize   = app.Flag("payload-size", "Simulated payload size, e.g. 16KiB.").Default("4KiB").String()
	)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	payload, err := units.ParseBase2Bytes(*payloadSize)
	if err != nil {
		log.With("flag", "payload-size").Fatal(err)
	}

	sampler := &exemplar.MinAgeSampler{MaxAge: *samplerMaxAge}
	registry := metrics.NewRegistry()

	requests := metrics.MustNewCounter(metrics.CounterOpts{
		Name:       "demo_requests",
		Help:       "Requests handled by the demo.",
		LabelNames: []string{"method"},
		Sampler:    sampler,
	})
	payloadBytes := metrics.MustNewHistogram(metrics.HistogramOpts{
		Name:    "demo_payload_bytes",
		Help:    "Simulated payload sizes.",
		Unit:    "bytes",
		Buckets: metrics.ExponentialBuckets(1024, 4, 6),
		Sampler: sampler,
	})
	latency := metrics.MustNewSummary(metrics.SummaryOpts{
		Name:       "demo_latency_seconds",
		Help:       "Simulated request latency.",
		Unit:       "seconds",
		Objectives: quantile.DefaultObjectives,
	})
	build := metrics.MustNewInfo(metrics.InfoOpts{
		Name: "demo_build",
		Help: "Demo build information.",
	})
	registry.MustRegister(requests, payloadBytes, latency, build)

	get, err := requests.WithLabelValues("GET")
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		get.Inc()
	}
	if err := get.AddWithExemplar(1, model.MustNewLabels("request_id", "demo-1")); err != nil {
		log.Fatal(err)
	}

	if err := payloadBytes.Observe(float64(payload)); err != nil {
		log.Fatal(err)
	}
	for _, v := range []float64{0.012, 0.045, 0.3, 0.007, 0.08} {
		if err := latency.Observe(v); err != nil {
			log.Fatal(err)
		}
	}
	if err := build.Set(model.MustNewLabels("version", "0.1.0")); err != nil {
		log.Fatal(err)
	}

	set := registry.Collect()

	wireFormat := expfmt.FmtOpenMetrics
	if *format == "prometheus" {
		wireFormat = expfmt.FmtText
	}
	enc := expfmt.NewEncoder(os.Stdout, wireFormat)
	var encodeErr error
	set.Range(func(m snapshot.Metric) bool {
		encodeErr = enc.Encode(m)
		return encodeErr == nil
	})
	if encodeErr != nil {
		log.Fatal(encodeErr)
	}
	if closer, ok := enc.(expfmt.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Fatal(err)
		}
	}
}
