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

package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sirius_report_export_duration_seconds",
			Help:    "Time taken to export a complete project report",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 300, 600},
		},
	)

	exportTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sirius_report_export_total",
			Help: "Total number of report exports",
		},
		[]string{"status"}, // success or error
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sirius_report_stage_duration_seconds",
			Help:    "Time taken by individual export stages",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"stage"}, // project, features, jobs, annotations, csv, push
	)

	exportedFeatures = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sirius_report_features",
			Help: "Number of features in the last exported report",
		},
	)
)
