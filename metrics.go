// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smt

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records counts and latencies for engine operations. The default
// Engine uses noopMetrics; callers that want visibility into a live engine
// (e.g. one embedded in a long-running service) pass WithMetrics(NewMetrics(...)).
type Metrics interface {
	ObserveMutation(op string, leaves int, d time.Duration)
	ObserveRootRecompute(leafCount int, d time.Duration)
	ObserveProof(op string, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObserveMutation(string, int, time.Duration) {}
func (noopMetrics) ObserveRootRecompute(int, time.Duration)    {}
func (noopMetrics) ObserveProof(string, time.Duration)         {}

// promMetrics is a Metrics implementation backed by
// github.com/prometheus/client_golang, mirroring the way trillian
// instruments its storage and quota paths with Prometheus counters and
// histograms.
type promMetrics struct {
	mutations     *prometheus.CounterVec
	mutationTime  *prometheus.HistogramVec
	rootRecompute prometheus.Histogram
	rootLeaves    prometheus.Histogram
	proofTime     *prometheus.HistogramVec
}

// NewMetrics registers a fresh set of Prometheus collectors on reg and
// returns a Metrics that reports through them. Each Engine using the same
// *Metrics shares counters, so multiple engines sharing a process can be
// told apart with prometheus.Labels if the caller registers distinct
// instances instead.
func NewMetrics(reg prometheus.Registerer) Metrics {
	m := &promMetrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smt",
			Name:      "mutations_total",
			Help:      "Number of leaf mutations applied, by operation.",
		}, []string{"op"}),
		mutationTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "smt",
			Name:      "mutation_duration_seconds",
			Help:      "Latency of leaf mutations, by operation.",
		}, []string{"op"}),
		rootRecompute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smt",
			Name:      "root_recompute_duration_seconds",
			Help:      "Latency of a full level-collapse root recomputation.",
		}),
		rootLeaves: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smt",
			Name:      "root_recompute_leaves",
			Help:      "Number of materialized leaves folded into a root recomputation.",
		}),
		proofTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "smt",
			Name:      "proof_duration_seconds",
			Help:      "Latency of proof generation/validation, by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(m.mutations, m.mutationTime, m.rootRecompute, m.rootLeaves, m.proofTime)
	return m
}

func (m *promMetrics) ObserveMutation(op string, leaves int, d time.Duration) {
	m.mutations.WithLabelValues(op).Inc()
	m.mutationTime.WithLabelValues(op).Observe(d.Seconds())
}

func (m *promMetrics) ObserveRootRecompute(leafCount int, d time.Duration) {
	m.rootRecompute.Observe(d.Seconds())
	m.rootLeaves.Observe(float64(leafCount))
}

func (m *promMetrics) ObserveProof(op string, d time.Duration) {
	m.proofTime.WithLabelValues(op).Observe(d.Seconds())
}
