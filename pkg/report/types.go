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
	"github.com/sirius-ms/sirius-go/pkg/header"
	"github.com/sirius-ms/sirius-go/pkg/oci"
	"github.com/sirius-ms/sirius-go/pkg/serializer"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
)

// SummaryFileName is the base name of the summary document.
const SummaryFileName = "summary"

// Options configures Export.
type Options struct {
	// ProjectID selects the project to export. Required.
	ProjectID string
	// OutputDir receives the report files. Required; created when missing.
	OutputDir string
	// Format of the summary document, json or yaml. Defaults to json.
	Format serializer.Format
	// PageSize used for feature listings. Defaults to defaults.ExportPageSize.
	PageSize int32
	// Concurrency bounds parallel requests. Defaults to defaults.ExportConcurrency.
	Concurrency int
	// Charges selects the ion modes for which summary tables are dumped.
	Charges []int32
	// Annotations fetches the top annotations of every feature.
	Annotations bool
	// ServerInfo records the service version in the summary.
	ServerInfo bool
	// Version is the tool version stamped into the header.
	Version string
	// Target pushes the report directory to a registry when it is an OCI reference.
	Target      *oci.Reference
	PlainHTTP   bool
	InsecureTLS bool
}

// Report is the summary document written by Export.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Project  sirius.ProjectInfo `json:"project" yaml:"project"`
	Server   *ServerSummary     `json:"server,omitempty" yaml:"server,omitempty"`
	Features []FeatureSummary   `json:"features" yaml:"features"`
	Jobs     []JobSummary       `json:"jobs" yaml:"jobs"`
	Sections []Section          `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// ServerSummary identifies the service the report was taken from.
type ServerSummary struct {
	SiriusVersion      string `json:"siriusVersion,omitempty" yaml:"siriusVersion,omitempty"`
	NightSkyAPIVersion string `json:"nightSkyApiVersion,omitempty" yaml:"nightSkyApiVersion,omitempty"`
}

// FeatureSummary is the flattened view of one aligned feature.
type FeatureSummary struct {
	AlignedFeatureID string                   `json:"alignedFeatureId" yaml:"alignedFeatureId"`
	Name             string                   `json:"name,omitempty" yaml:"name,omitempty"`
	IonMass          float64                  `json:"ionMass" yaml:"ionMass"`
	Charge           int32                    `json:"charge" yaml:"charge"`
	RtApexSeconds    *float64                 `json:"rtApexSeconds,omitempty" yaml:"rtApexSeconds,omitempty"`
	Quality          string                   `json:"quality,omitempty" yaml:"quality,omitempty"`
	HasMsMs          bool                     `json:"hasMsMs" yaml:"hasMsMs"`
	ComputedTools    *sirius.ComputedSubtools `json:"computedTools,omitempty" yaml:"computedTools,omitempty"`
	Annotation       *AnnotationSummary       `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// AnnotationSummary holds the top hits of a feature.
type AnnotationSummary struct {
	MolecularFormula string   `json:"molecularFormula,omitempty" yaml:"molecularFormula,omitempty"`
	Adduct           string   `json:"adduct,omitempty" yaml:"adduct,omitempty"`
	InchiKey         string   `json:"inchiKey,omitempty" yaml:"inchiKey,omitempty"`
	StructureName    string   `json:"structureName,omitempty" yaml:"structureName,omitempty"`
	Smiles           string   `json:"smiles,omitempty" yaml:"smiles,omitempty"`
	CompoundClass    string   `json:"compoundClass,omitempty" yaml:"compoundClass,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// JobSummary is the flattened view of one job.
type JobSummary struct {
	ID      string `json:"id" yaml:"id"`
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Effect  string `json:"effect,omitempty" yaml:"effect,omitempty"`
}

// Section describes one extra file of the report.
type Section struct {
	Title  string `json:"title" yaml:"title"`
	File   string `json:"file" yaml:"file"`
	Charge int32  `json:"charge" yaml:"charge"`
}

// Result describes a finished export.
type Result struct {
	// Dir is the directory holding the report files.
	Dir string
	// Files lists the written files relative to Dir.
	Files  []string
	Report *Report
	// Pushed is set when the report was pushed to a registry.
	Pushed *oci.PackageAndPushResult
}
