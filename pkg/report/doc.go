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

// Package report exports a SIRIUS project into a directory of files.
//
// Export writes a summary document (summary.json or summary.yaml) carrying
// a ProjectReport header, the project info, a flattened view of every
// aligned feature and the project's jobs. For every requested charge the
// CSI:FingerID and CANOPUS summary tables are stored next to it as
// fingerid-<charge>.csv, canopus-cf-<charge>.csv and canopus-npc-<charge>.csv.
//
// Feature pages, jobs and per-feature annotations are fetched concurrently
// with golang.org/x/sync/errgroup, bounded by Options.Concurrency.
//
// Usage:
//
//	res, err := report.Export(ctx, client, report.Options{
//	    ProjectID:   "study",
//	    OutputDir:   "./study-report",
//	    Format:      serializer.FormatYAML,
//	    Charges:     []int32{1},
//	    Annotations: true,
//	})
//
// When Options.Target is an oci:// reference the directory is packaged
// with pkg/oci and pushed to the registry after it was written.
package report
