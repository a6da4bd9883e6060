// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	clientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sirius_client_requests_total",
			Help: "Total number of SIRIUS API requests sent",
		},
		[]string{"operation", "method", "status"},
	)

	clientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sirius_client_request_duration_seconds",
			Help:    "SIRIUS API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	clientRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sirius_client_requests_in_flight",
			Help: "Current number of SIRIUS API requests awaiting a response",
		},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sirius_client_validation_failures_total",
			Help: "Total number of calls rejected locally for missing required parameters",
		},
		[]string{"operation"},
	)
)
