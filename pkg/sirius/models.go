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

package sirius

// Health is the actuator health document.
type Health struct {
	Status     string         `json:"status" yaml:"status"`
	Components map[string]any `json:"components,omitempty" yaml:"components,omitempty"`
	Groups     []string       `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// IsUp reports whether the service reported status UP.
func (h *Health) IsUp() bool {
	return h != nil && h.Status == "UP"
}

// Info describes the running SIRIUS service.
type Info struct {
	NightSkyAPIVersion   *string           `json:"nightSkyApiVersion,omitempty" yaml:"nightSkyApiVersion,omitempty"`
	SiriusVersion        *string           `json:"siriusVersion,omitempty" yaml:"siriusVersion,omitempty"`
	LatestSiriusVersion  *string           `json:"latestSiriusVersion,omitempty" yaml:"latestSiriusVersion,omitempty"`
	LatestSiriusLink     *string           `json:"latestSiriusLink,omitempty" yaml:"latestSiriusLink,omitempty"`
	UpdateAvailable      bool              `json:"updateAvailable" yaml:"updateAvailable"`
	SiriusLibVersion     *string           `json:"siriusLibVersion,omitempty" yaml:"siriusLibVersion,omitempty"`
	FingerIDLibVersion   *string           `json:"fingerIdLibVersion,omitempty" yaml:"fingerIdLibVersion,omitempty"`
	ChemDBVersion        *string           `json:"chemDbVersion,omitempty" yaml:"chemDbVersion,omitempty"`
	FingerIDModelVersion *string           `json:"fingerIdModelVersion,omitempty" yaml:"fingerIdModelVersion,omitempty"`
	FingerprintID        *string           `json:"fingerprintId,omitempty" yaml:"fingerprintId,omitempty"`
	AvailableILPSolvers  []string          `json:"availableILPSolvers,omitempty" yaml:"availableILPSolvers,omitempty"`
	SupportedILPSolvers  map[string]string `json:"supportedILPSolvers,omitempty" yaml:"supportedILPSolvers,omitempty"`
}

// ProjectInfo describes a project-space.
type ProjectInfo struct {
	ProjectID   string       `json:"projectId" yaml:"projectId"`
	Location    string       `json:"location" yaml:"location"`
	Description *string      `json:"description,omitempty" yaml:"description,omitempty"`
	Type        *ProjectType `json:"type,omitempty" yaml:"type,omitempty"`
	// Compatible is only set when compatibilityInfo was requested.
	Compatible *bool `json:"compatible,omitempty" yaml:"compatible,omitempty"`
	// Size fields are only set when sizeInformation was requested.
	NumOfFeatures  *int64 `json:"numOfFeatures,omitempty" yaml:"numOfFeatures,omitempty"`
	NumOfCompounds *int64 `json:"numOfCompounds,omitempty" yaml:"numOfCompounds,omitempty"`
	NumOfBytes     *int64 `json:"numOfBytes,omitempty" yaml:"numOfBytes,omitempty"`
}

// ImportResult lists the ids touched by an import.
type ImportResult struct {
	AffectedCompoundIDs       []string `json:"affectedCompoundIds,omitempty" yaml:"affectedCompoundIds,omitempty"`
	AffectedAlignedFeatureIDs []string `json:"affectedAlignedFeatureIds,omitempty" yaml:"affectedAlignedFeatureIds,omitempty"`
}

// Deviation is a mass deviation in ppm and/or absolute Da.
type Deviation struct {
	PPM      *float64 `json:"ppm,omitempty" yaml:"ppm,omitempty"`
	Absolute *float64 `json:"absolute,omitempty" yaml:"absolute,omitempty"`
}

// LcmsSubmissionParameters configures LC-MS run preprocessing on import.
type LcmsSubmissionParameters struct {
	AlignLCMSRuns                  *bool      `json:"alignLCMSRuns,omitempty" yaml:"alignLCMSRuns,omitempty"`
	NoiseIntensity                 *float64   `json:"noiseIntensity,omitempty" yaml:"noiseIntensity,omitempty"`
	TraceMaxMassDeviation          *Deviation `json:"traceMaxMassDeviation,omitempty" yaml:"traceMaxMassDeviation,omitempty"`
	AlignMaxMassDeviation          *Deviation `json:"alignMaxMassDeviation,omitempty" yaml:"alignMaxMassDeviation,omitempty"`
	AlignMaxRetentionTimeDeviation *float64   `json:"alignMaxRetentionTimeDeviation,omitempty" yaml:"alignMaxRetentionTimeDeviation,omitempty"`
	MinSNR                         *float64   `json:"minSNR,omitempty" yaml:"minSNR,omitempty"`
}

// SimplePeak is one centroided peak.
type SimplePeak struct {
	MZ        float64 `json:"mz" yaml:"mz"`
	Intensity float64 `json:"intensity" yaml:"intensity"`
}

// BasicSpectrum is a plain MS1 or MS/MS spectrum.
type BasicSpectrum struct {
	Name               *string      `json:"name,omitempty" yaml:"name,omitempty"`
	MsLevel            *int32       `json:"msLevel,omitempty" yaml:"msLevel,omitempty"`
	CollisionEnergy    *string      `json:"collisionEnergy,omitempty" yaml:"collisionEnergy,omitempty"`
	Instrument         *string      `json:"instrument,omitempty" yaml:"instrument,omitempty"`
	PrecursorMZ        *float64     `json:"precursorMz,omitempty" yaml:"precursorMz,omitempty"`
	ScanNumber         *int32       `json:"scanNumber,omitempty" yaml:"scanNumber,omitempty"`
	CosineQuery        bool         `json:"cosineQuery" yaml:"cosineQuery"`
	PrecursorPeak      *SimplePeak  `json:"precursorPeak,omitempty" yaml:"precursorPeak,omitempty"`
	Peaks              []SimplePeak `json:"peaks" yaml:"peaks"`
	AbsIntensityFactor *float64     `json:"absIntensityFactor,omitempty" yaml:"absIntensityFactor,omitempty"`
	MaxNormFactor      *float64     `json:"maxNormFactor,omitempty" yaml:"maxNormFactor,omitempty"`
	SumNormFactor      *float64     `json:"sumNormFactor,omitempty" yaml:"sumNormFactor,omitempty"`
}

// MsData holds the spectra of an aligned feature.
type MsData struct {
	IsotopePattern *BasicSpectrum  `json:"isotopePattern,omitempty" yaml:"isotopePattern,omitempty"`
	MergedMs1      *BasicSpectrum  `json:"mergedMs1,omitempty" yaml:"mergedMs1,omitempty"`
	MergedMs2      *BasicSpectrum  `json:"mergedMs2,omitempty" yaml:"mergedMs2,omitempty"`
	Ms1Spectra     []BasicSpectrum `json:"ms1Spectra,omitempty" yaml:"ms1Spectra,omitempty"`
	Ms2Spectra     []BasicSpectrum `json:"ms2Spectra,omitempty" yaml:"ms2Spectra,omitempty"`
}

// ComputedSubtools flags which tools have results for a feature.
type ComputedSubtools struct {
	LibrarySearch   bool `json:"librarySearch" yaml:"librarySearch"`
	FormulaSearch   bool `json:"formulaSearch" yaml:"formulaSearch"`
	Zodiac          bool `json:"zodiac" yaml:"zodiac"`
	Fingerprint     bool `json:"fingerprint" yaml:"fingerprint"`
	Canopus         bool `json:"canopus" yaml:"canopus"`
	StructureSearch bool `json:"structureSearch" yaml:"structureSearch"`
	DeNovoSearch    bool `json:"deNovoSearch" yaml:"deNovoSearch"`
}

// FeatureAnnotations are the top ranked annotations of a feature.
type FeatureAnnotations struct {
	FormulaAnnotation       *FormulaCandidate         `json:"formulaAnnotation,omitempty" yaml:"formulaAnnotation,omitempty"`
	StructureAnnotation     *StructureCandidateScored `json:"structureAnnotation,omitempty" yaml:"structureAnnotation,omitempty"`
	CompoundClassAnnotation *CompoundClasses          `json:"compoundClassAnnotation,omitempty" yaml:"compoundClassAnnotation,omitempty"`
	ConfidenceExactMatch    *float64                  `json:"confidenceExactMatch,omitempty" yaml:"confidenceExactMatch,omitempty"`
	ConfidenceApproxMatch   *float64                  `json:"confidenceApproxMatch,omitempty" yaml:"confidenceApproxMatch,omitempty"`
	ExpansiveSearchState    *ConfidenceMode           `json:"expansiveSearchState,omitempty" yaml:"expansiveSearchState,omitempty"`
	SpecifiedDatabases      []string                  `json:"specifiedDatabases,omitempty" yaml:"specifiedDatabases,omitempty"`
	ExpandedDatabases       []string                  `json:"expandedDatabases,omitempty" yaml:"expandedDatabases,omitempty"`
}

// AlignedFeature is a chromatographic feature aligned across runs.
type AlignedFeature struct {
	AlignedFeatureID     string              `json:"alignedFeatureId" yaml:"alignedFeatureId"`
	CompoundID           *string             `json:"compoundId,omitempty" yaml:"compoundId,omitempty"`
	Name                 *string             `json:"name,omitempty" yaml:"name,omitempty"`
	ExternalFeatureID    *string             `json:"externalFeatureId,omitempty" yaml:"externalFeatureId,omitempty"`
	IonMass              float64             `json:"ionMass" yaml:"ionMass"`
	Charge               int32               `json:"charge" yaml:"charge"`
	DetectedAdducts      []string            `json:"detectedAdducts,omitempty" yaml:"detectedAdducts,omitempty"`
	RtStartSeconds       *float64            `json:"rtStartSeconds,omitempty" yaml:"rtStartSeconds,omitempty"`
	RtEndSeconds         *float64            `json:"rtEndSeconds,omitempty" yaml:"rtEndSeconds,omitempty"`
	RtApexSeconds        *float64            `json:"rtApexSeconds,omitempty" yaml:"rtApexSeconds,omitempty"`
	Quality              *DataQuality        `json:"quality,omitempty" yaml:"quality,omitempty"`
	HasMs1               *bool               `json:"hasMs1,omitempty" yaml:"hasMs1,omitempty"`
	HasMsMs              *bool               `json:"hasMsMs,omitempty" yaml:"hasMsMs,omitempty"`
	MsData               *MsData             `json:"msData,omitempty" yaml:"msData,omitempty"`
	TopAnnotations       *FeatureAnnotations `json:"topAnnotations,omitempty" yaml:"topAnnotations,omitempty"`
	TopAnnotationsDeNovo *FeatureAnnotations `json:"topAnnotationsDeNovo,omitempty" yaml:"topAnnotationsDeNovo,omitempty"`
	Computing            *bool               `json:"computing,omitempty" yaml:"computing,omitempty"`
	ComputedTools        *ComputedSubtools   `json:"computedTools,omitempty" yaml:"computedTools,omitempty"`
	Tags                 map[string]any      `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// FeatureImport is the payload for adding features directly.
type FeatureImport struct {
	Name              *string         `json:"name,omitempty" yaml:"name,omitempty"`
	ExternalFeatureID *string         `json:"externalFeatureId,omitempty" yaml:"externalFeatureId,omitempty"`
	IonMass           float64         `json:"ionMass" yaml:"ionMass"`
	Charge            int32           `json:"charge" yaml:"charge"`
	DetectedAdducts   []string        `json:"detectedAdducts,omitempty" yaml:"detectedAdducts,omitempty"`
	RtStartSeconds    *float64        `json:"rtStartSeconds,omitempty" yaml:"rtStartSeconds,omitempty"`
	RtEndSeconds      *float64        `json:"rtEndSeconds,omitempty" yaml:"rtEndSeconds,omitempty"`
	RtApexSeconds     *float64        `json:"rtApexSeconds,omitempty" yaml:"rtApexSeconds,omitempty"`
	DataQuality       *DataQuality    `json:"dataQuality,omitempty" yaml:"dataQuality,omitempty"`
	MergedMs1         *BasicSpectrum  `json:"mergedMs1,omitempty" yaml:"mergedMs1,omitempty"`
	Ms1Spectra        []BasicSpectrum `json:"ms1Spectra,omitempty" yaml:"ms1Spectra,omitempty"`
	Ms2Spectra        []BasicSpectrum `json:"ms2Spectra,omitempty" yaml:"ms2Spectra,omitempty"`
}

// TraceAxes are the shared x axes of a trace set.
type TraceAxes struct {
	ScanNumber             []int32   `json:"scanNumber,omitempty" yaml:"scanNumber,omitempty"`
	ScanIDs                []string  `json:"scanIds,omitempty" yaml:"scanIds,omitempty"`
	RetentionTimeInSeconds []float64 `json:"retentionTimeInSeconds,omitempty" yaml:"retentionTimeInSeconds,omitempty"`
}

// TraceAnnotation marks a region of a trace.
type TraceAnnotation struct {
	Type        string  `json:"type" yaml:"type"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Index       int32   `json:"index" yaml:"index"`
	From        *int32  `json:"from,omitempty" yaml:"from,omitempty"`
	To          *int32  `json:"to,omitempty" yaml:"to,omitempty"`
}

// Trace is one mass trace of a feature in one sample.
type Trace struct {
	ID                  string            `json:"id" yaml:"id"`
	SampleID            *string           `json:"sampleId,omitempty" yaml:"sampleId,omitempty"`
	SampleName          *string           `json:"sampleName,omitempty" yaml:"sampleName,omitempty"`
	Label               *string           `json:"label,omitempty" yaml:"label,omitempty"`
	Intensities         []float64         `json:"intensities,omitempty" yaml:"intensities,omitempty"`
	Annotations         []TraceAnnotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	MZ                  float64           `json:"mz" yaml:"mz"`
	Merged              bool              `json:"merged" yaml:"merged"`
	NormalizationFactor *float64          `json:"normalizationFactor,omitempty" yaml:"normalizationFactor,omitempty"`
	NoiseLevel          *float64          `json:"noiseLevel,omitempty" yaml:"noiseLevel,omitempty"`
}

// TraceSet groups the traces of a feature.
type TraceSet struct {
	SampleID   *int64     `json:"sampleId,omitempty" yaml:"sampleId,omitempty"`
	SampleName *string    `json:"sampleName,omitempty" yaml:"sampleName,omitempty"`
	Axes       *TraceAxes `json:"axes,omitempty" yaml:"axes,omitempty"`
	Traces     []Trace    `json:"traces,omitempty" yaml:"traces,omitempty"`
}

// QuantTable is a feature by sample quantification matrix.
type QuantTable struct {
	QuantificationMeasure *QuantMeasure `json:"quantificationMeasure,omitempty" yaml:"quantificationMeasure,omitempty"`
	RowType               *string       `json:"rowType,omitempty" yaml:"rowType,omitempty"`
	ColumnType            *string       `json:"columnType,omitempty" yaml:"columnType,omitempty"`
	RowNames              []string      `json:"rowNames,omitempty" yaml:"rowNames,omitempty"`
	ColumnNames           []string      `json:"columnNames,omitempty" yaml:"columnNames,omitempty"`
	RowIDs                []int64       `json:"rowIds,omitempty" yaml:"rowIds,omitempty"`
	ColumnIDs             []int64       `json:"columnIds,omitempty" yaml:"columnIds,omitempty"`
	Values                [][]float64   `json:"values,omitempty" yaml:"values,omitempty"`
}
