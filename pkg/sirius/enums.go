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

import (
	"fmt"
	"slices"
	"strings"
)

func parseEnum[T ~string](kind, s string, values []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("invalid %s: %q (supported: %s)", kind, s, strings.Join(enumStrings(values), ", "))
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// ProjectInfoOptField selects optional parts of a ProjectInfo.
type ProjectInfoOptField string

const (
	ProjectInfoOptFieldNone              ProjectInfoOptField = "none"
	ProjectInfoOptFieldCompatibilityInfo ProjectInfoOptField = "compatibilityInfo"
	ProjectInfoOptFieldSizeInformation   ProjectInfoOptField = "sizeInformation"
)

var projectInfoOptFields = []ProjectInfoOptField{
	ProjectInfoOptFieldNone,
	ProjectInfoOptFieldCompatibilityInfo,
	ProjectInfoOptFieldSizeInformation,
}

// ParseProjectInfoOptField parses a case-insensitive field name.
func ParseProjectInfoOptField(s string) (ProjectInfoOptField, error) {
	return parseEnum("project info field", s, projectInfoOptFields)
}

// GetProjectInfoOptFields returns all supported values.
func GetProjectInfoOptFields() []string { return enumStrings(projectInfoOptFields) }

func (f ProjectInfoOptField) IsValid() bool { return slices.Contains(projectInfoOptFields, f) }

// AlignedFeatureOptField selects optional parts of an AlignedFeature.
type AlignedFeatureOptField string

const (
	AlignedFeatureOptFieldNone                 AlignedFeatureOptField = "none"
	AlignedFeatureOptFieldMsData               AlignedFeatureOptField = "msData"
	AlignedFeatureOptFieldTopAnnotations       AlignedFeatureOptField = "topAnnotations"
	AlignedFeatureOptFieldTopAnnotationsDeNovo AlignedFeatureOptField = "topAnnotationsDeNovo"
	AlignedFeatureOptFieldComputedTools        AlignedFeatureOptField = "computedTools"
	AlignedFeatureOptFieldTags                 AlignedFeatureOptField = "tags"
)

var alignedFeatureOptFields = []AlignedFeatureOptField{
	AlignedFeatureOptFieldNone,
	AlignedFeatureOptFieldMsData,
	AlignedFeatureOptFieldTopAnnotations,
	AlignedFeatureOptFieldTopAnnotationsDeNovo,
	AlignedFeatureOptFieldComputedTools,
	AlignedFeatureOptFieldTags,
}

func ParseAlignedFeatureOptField(s string) (AlignedFeatureOptField, error) {
	return parseEnum("aligned feature field", s, alignedFeatureOptFields)
}

func GetAlignedFeatureOptFields() []string { return enumStrings(alignedFeatureOptFields) }

func (f AlignedFeatureOptField) IsValid() bool { return slices.Contains(alignedFeatureOptFields, f) }

// FormulaCandidateOptField selects optional parts of a FormulaCandidate.
type FormulaCandidateOptField string

const (
	FormulaCandidateOptFieldNone                 FormulaCandidateOptField = "none"
	FormulaCandidateOptFieldStatistics           FormulaCandidateOptField = "statistics"
	FormulaCandidateOptFieldFragmentationTree    FormulaCandidateOptField = "fragmentationTree"
	FormulaCandidateOptFieldAnnotatedSpectrum    FormulaCandidateOptField = "annotatedSpectrum"
	FormulaCandidateOptFieldIsotopePattern       FormulaCandidateOptField = "isotopePattern"
	FormulaCandidateOptFieldLipidAnnotation      FormulaCandidateOptField = "lipidAnnotation"
	FormulaCandidateOptFieldPredictedFingerprint FormulaCandidateOptField = "predictedFingerprint"
	FormulaCandidateOptFieldCompoundClasses      FormulaCandidateOptField = "compoundClasses"
	FormulaCandidateOptFieldCanopusPrediction    FormulaCandidateOptField = "canopusPrediction"
)

var formulaCandidateOptFields = []FormulaCandidateOptField{
	FormulaCandidateOptFieldNone,
	FormulaCandidateOptFieldStatistics,
	FormulaCandidateOptFieldFragmentationTree,
	FormulaCandidateOptFieldAnnotatedSpectrum,
	FormulaCandidateOptFieldIsotopePattern,
	FormulaCandidateOptFieldLipidAnnotation,
	FormulaCandidateOptFieldPredictedFingerprint,
	FormulaCandidateOptFieldCompoundClasses,
	FormulaCandidateOptFieldCanopusPrediction,
}

func ParseFormulaCandidateOptField(s string) (FormulaCandidateOptField, error) {
	return parseEnum("formula candidate field", s, formulaCandidateOptFields)
}

func GetFormulaCandidateOptFields() []string { return enumStrings(formulaCandidateOptFields) }

func (f FormulaCandidateOptField) IsValid() bool {
	return slices.Contains(formulaCandidateOptFields, f)
}

// StructureCandidateOptField selects optional parts of a structure candidate.
type StructureCandidateOptField string

const (
	StructureCandidateOptFieldNone           StructureCandidateOptField = "none"
	StructureCandidateOptFieldFingerprint    StructureCandidateOptField = "fingerprint"
	StructureCandidateOptFieldDBLinks        StructureCandidateOptField = "dbLinks"
	StructureCandidateOptFieldLibraryMatches StructureCandidateOptField = "libraryMatches"
	StructureCandidateOptFieldStructureSvg   StructureCandidateOptField = "structureSvg"
)

var structureCandidateOptFields = []StructureCandidateOptField{
	StructureCandidateOptFieldNone,
	StructureCandidateOptFieldFingerprint,
	StructureCandidateOptFieldDBLinks,
	StructureCandidateOptFieldLibraryMatches,
	StructureCandidateOptFieldStructureSvg,
}

func ParseStructureCandidateOptField(s string) (StructureCandidateOptField, error) {
	return parseEnum("structure candidate field", s, structureCandidateOptFields)
}

func GetStructureCandidateOptFields() []string { return enumStrings(structureCandidateOptFields) }

func (f StructureCandidateOptField) IsValid() bool {
	return slices.Contains(structureCandidateOptFields, f)
}

// SpectralLibraryMatchOptField selects optional parts of a SpectralLibraryMatch.
type SpectralLibraryMatchOptField string

const (
	SpectralLibraryMatchOptFieldNone              SpectralLibraryMatchOptField = "none"
	SpectralLibraryMatchOptFieldReferenceSpectrum SpectralLibraryMatchOptField = "referenceSpectrum"
)

var spectralLibraryMatchOptFields = []SpectralLibraryMatchOptField{
	SpectralLibraryMatchOptFieldNone,
	SpectralLibraryMatchOptFieldReferenceSpectrum,
}

func ParseSpectralLibraryMatchOptField(s string) (SpectralLibraryMatchOptField, error) {
	return parseEnum("spectral library match field", s, spectralLibraryMatchOptFields)
}

func GetSpectralLibraryMatchOptFields() []string { return enumStrings(spectralLibraryMatchOptFields) }

func (f SpectralLibraryMatchOptField) IsValid() bool {
	return slices.Contains(spectralLibraryMatchOptFields, f)
}

// JobOptField selects optional parts of a Job.
type JobOptField string

const (
	JobOptFieldNone        JobOptField = "none"
	JobOptFieldCommand     JobOptField = "command"
	JobOptFieldProgress    JobOptField = "progress"
	JobOptFieldAffectedIDs JobOptField = "affectedIds"
)

var jobOptFields = []JobOptField{
	JobOptFieldNone,
	JobOptFieldCommand,
	JobOptFieldProgress,
	JobOptFieldAffectedIDs,
}

func ParseJobOptField(s string) (JobOptField, error) {
	return parseEnum("job field", s, jobOptFields)
}

func GetJobOptFields() []string { return enumStrings(jobOptFields) }

func (f JobOptField) IsValid() bool { return slices.Contains(jobOptFields, f) }

// InstrumentProfile selects the default parameter set for an instrument type.
type InstrumentProfile string

const (
	InstrumentProfileQTOF     InstrumentProfile = "QTOF"
	InstrumentProfileOrbitrap InstrumentProfile = "ORBITRAP"
)

var instrumentProfiles = []InstrumentProfile{InstrumentProfileQTOF, InstrumentProfileOrbitrap}

func ParseInstrumentProfile(s string) (InstrumentProfile, error) {
	return parseEnum("instrument profile", s, instrumentProfiles)
}

func GetInstrumentProfiles() []string { return enumStrings(instrumentProfiles) }

func (p InstrumentProfile) IsValid() bool { return slices.Contains(instrumentProfiles, p) }

// QuantMeasure selects how feature abundance is quantified.
type QuantMeasure string

const (
	QuantMeasureApexIntensity  QuantMeasure = "APEX_INTENSITY"
	QuantMeasureAreaUnderCurve QuantMeasure = "AREA_UNDER_CURVE"
)

var quantMeasures = []QuantMeasure{QuantMeasureApexIntensity, QuantMeasureAreaUnderCurve}

func ParseQuantMeasure(s string) (QuantMeasure, error) {
	return parseEnum("quantification measure", s, quantMeasures)
}

func GetQuantMeasures() []string { return enumStrings(quantMeasures) }

func (m QuantMeasure) IsValid() bool { return slices.Contains(quantMeasures, m) }

// JobState is the lifecycle state of a background job.
type JobState string

const (
	JobStateWaiting   JobState = "WAITING"
	JobStateReady     JobState = "READY"
	JobStateQueued    JobState = "QUEUED"
	JobStateSubmitted JobState = "SUBMITTED"
	JobStateRunning   JobState = "RUNNING"
	JobStateCanceled  JobState = "CANCELED"
	JobStateFailed    JobState = "FAILED"
	JobStateDone      JobState = "DONE"
)

var jobStates = []JobState{
	JobStateWaiting, JobStateReady, JobStateQueued, JobStateSubmitted,
	JobStateRunning, JobStateCanceled, JobStateFailed, JobStateDone,
}

func ParseJobState(s string) (JobState, error) {
	return parseEnum("job state", s, jobStates)
}

func GetJobStates() []string { return enumStrings(jobStates) }

func (s JobState) IsValid() bool { return slices.Contains(jobStates, s) }

// IsTerminal reports whether the job can no longer change state.
func (s JobState) IsTerminal() bool {
	return s == JobStateDone || s == JobStateFailed || s == JobStateCanceled
}

// JobEffect describes what a job does to the project.
type JobEffect string

const (
	JobEffectImport      JobEffect = "IMPORT"
	JobEffectComputation JobEffect = "COMPUTATION"
	JobEffectDeletion    JobEffect = "DELETION"
)

var jobEffects = []JobEffect{JobEffectImport, JobEffectComputation, JobEffectDeletion}

func ParseJobEffect(s string) (JobEffect, error) {
	return parseEnum("job effect", s, jobEffects)
}

func GetJobEffects() []string { return enumStrings(jobEffects) }

func (e JobEffect) IsValid() bool { return slices.Contains(jobEffects, e) }

// DataQuality is the server assessed quality of a feature.
type DataQuality string

const (
	DataQualityNotApplicable DataQuality = "NOT_APPLICABLE"
	DataQualityLowest        DataQuality = "LOWEST"
	DataQualityBad           DataQuality = "BAD"
	DataQualityDecent        DataQuality = "DECENT"
	DataQualityGood          DataQuality = "GOOD"
)

var dataQualities = []DataQuality{
	DataQualityNotApplicable, DataQualityLowest, DataQualityBad, DataQualityDecent, DataQualityGood,
}

func ParseDataQuality(s string) (DataQuality, error) {
	return parseEnum("data quality", s, dataQualities)
}

func GetDataQualities() []string { return enumStrings(dataQualities) }

func (q DataQuality) IsValid() bool { return slices.Contains(dataQualities, q) }

// ConfidenceMode is the expansive search state of a structure annotation.
type ConfidenceMode string

const (
	ConfidenceModeOff         ConfidenceMode = "OFF"
	ConfidenceModeExact       ConfidenceMode = "EXACT"
	ConfidenceModeApproximate ConfidenceMode = "APPROXIMATE"
)

var confidenceModes = []ConfidenceMode{ConfidenceModeOff, ConfidenceModeExact, ConfidenceModeApproximate}

func ParseConfidenceMode(s string) (ConfidenceMode, error) {
	return parseEnum("confidence mode", s, confidenceModes)
}

func GetConfidenceModes() []string { return enumStrings(confidenceModes) }

func (m ConfidenceMode) IsValid() bool { return slices.Contains(confidenceModes, m) }

// CompoundClassType is the ontology a compound class belongs to.
type CompoundClassType string

const (
	CompoundClassTypeClassyFire CompoundClassType = "ClassyFire"
	CompoundClassTypeNPC        CompoundClassType = "NPC"
)

var compoundClassTypes = []CompoundClassType{CompoundClassTypeClassyFire, CompoundClassTypeNPC}

func ParseCompoundClassType(s string) (CompoundClassType, error) {
	return parseEnum("compound class type", s, compoundClassTypes)
}

func GetCompoundClassTypes() []string { return enumStrings(compoundClassTypes) }

func (t CompoundClassType) IsValid() bool { return slices.Contains(compoundClassTypes, t) }

// ProjectType describes how the data in a project was imported.
type ProjectType string

const (
	ProjectTypeUnimported    ProjectType = "UNIMPORTED"
	ProjectTypeDirectImport  ProjectType = "DIRECT_IMPORT"
	ProjectTypePeaklists     ProjectType = "PEAKLISTS"
	ProjectTypeAlignedRuns   ProjectType = "ALIGNED_RUNS"
	ProjectTypeUnalignedRuns ProjectType = "UNALIGNED_RUNS"
)

var projectTypes = []ProjectType{
	ProjectTypeUnimported, ProjectTypeDirectImport, ProjectTypePeaklists,
	ProjectTypeAlignedRuns, ProjectTypeUnalignedRuns,
}

func ParseProjectType(s string) (ProjectType, error) {
	return parseEnum("project type", s, projectTypes)
}

func GetProjectTypes() []string { return enumStrings(projectTypes) }

func (t ProjectType) IsValid() bool { return slices.Contains(projectTypes, t) }
