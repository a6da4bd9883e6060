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

// Package serializer reads and writes the documents handled by the SIRIUS
// CLI: API responses printed for the user, job submissions loaded from
// disk, and project reports persisted by the exporter.
//
// # Output
//
// Three formats are supported:
//   - json: indented JSON, field names as sent by the service
//   - yaml: YAML with two-space indentation
//   - table: a FIELD/VALUE listing for single objects, or one row per item
//     with flattened columns for lists
//
// NewFileWriterOrStdout picks the destination from a path: empty means
// stdout, cm://namespace/name applies a Kubernetes ConfigMap, anything else
// is a local file.
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, outPath)
//	defer serializer.Close(w)
//	if err := w.Serialize(ctx, features); err != nil {
//	    return err
//	}
//
// # Input
//
// FromFile loads JSON or YAML into a typed value from a local file, an
// http(s) URL fetched with the shared transport, or a ConfigMap:
//
//	sub, err := serializer.FromFile[sirius.JobSubmission](ctx, "job.yaml")
//	sub, err := serializer.FromFile[sirius.JobSubmission](ctx, "cm://sirius/fast-config")
//
// The format follows the file extension (.json, .yaml, .yml); ConfigMaps
// record their format in the "format" data key.
package serializer
