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

// JobProgress reports how far a job has come.
type JobProgress struct {
	Indeterminate   *bool    `json:"indeterminate,omitempty" yaml:"indeterminate,omitempty"`
	State           JobState `json:"state" yaml:"state"`
	CurrentProgress *int64   `json:"currentProgress,omitempty" yaml:"currentProgress,omitempty"`
	MaxProgress     *int64   `json:"maxProgress,omitempty" yaml:"maxProgress,omitempty"`
	Message         *string  `json:"message,omitempty" yaml:"message,omitempty"`
	ErrorMessage    *string  `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

// Job is a background computation or import tracked by the service.
type Job struct {
	ID                        string       `json:"id" yaml:"id"`
	Command                   *string      `json:"command,omitempty" yaml:"command,omitempty"`
	Progress                  *JobProgress `json:"progress,omitempty" yaml:"progress,omitempty"`
	AffectedCompoundIDs       []string     `json:"affectedCompoundIds,omitempty" yaml:"affectedCompoundIds,omitempty"`
	AffectedAlignedFeatureIDs []string     `json:"affectedAlignedFeatureIds,omitempty" yaml:"affectedAlignedFeatureIds,omitempty"`
	JobEffect                 *JobEffect   `json:"jobEffect,omitempty" yaml:"jobEffect,omitempty"`
}

// State returns the progress state, or "" when progress was not requested.
func (j *Job) State() JobState {
	if j == nil || j.Progress == nil {
		return ""
	}
	return j.Progress.State
}

// Timeout bounds the ILP solver per tree or per compound.
type Timeout struct {
	NumberOfSecondsPerDecomposition *int32 `json:"numberOfSecondsPerDecomposition,omitempty" yaml:"numberOfSecondsPerDecomposition,omitempty"`
	NumberOfSecondsPerInstance      *int32 `json:"numberOfSecondsPerInstance,omitempty" yaml:"numberOfSecondsPerInstance,omitempty"`
}

// UseHeuristic sets the m/z thresholds above which heuristics replace exact trees.
type UseHeuristic struct {
	UseHeuristicAboveMz     *int32 `json:"useHeuristicAboveMz,omitempty" yaml:"useHeuristicAboveMz,omitempty"`
	UseOnlyHeuristicAboveMz *int32 `json:"useOnlyHeuristicAboveMz,omitempty" yaml:"useOnlyHeuristicAboveMz,omitempty"`
}

// SpectralLibrarySearch configures the library search tool.
type SpectralLibrarySearch struct {
	Enabled                  *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	SpectraSearchDBs         []string `json:"spectraSearchDBs,omitempty" yaml:"spectraSearchDBs,omitempty"`
	PeakDeviationPPM         *float64 `json:"peakDeviationPpm,omitempty" yaml:"peakDeviationPpm,omitempty"`
	PrecursorDeviationPPM    *float64 `json:"precursorDeviationPpm,omitempty" yaml:"precursorDeviationPpm,omitempty"`
	ScoringWithInsilicoPeaks *bool    `json:"scoringWithInsilicoPeaks,omitempty" yaml:"scoringWithInsilicoPeaks,omitempty"`
}

// FormulaSearch configures the SIRIUS molecular formula identification tool.
type FormulaSearch struct {
	Enabled                         *bool              `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Profile                         *InstrumentProfile `json:"profile,omitempty" yaml:"profile,omitempty"`
	NumberOfCandidates              *int32             `json:"numberOfCandidates,omitempty" yaml:"numberOfCandidates,omitempty"`
	NumberOfCandidatesPerIonization *int32             `json:"numberOfCandidatesPerIonization,omitempty" yaml:"numberOfCandidatesPerIonization,omitempty"`
	MassAccuracyMS2PPM              *float64           `json:"massAccuracyMS2ppm,omitempty" yaml:"massAccuracyMS2ppm,omitempty"`
	IsotopeMs2Settings              *string            `json:"isotopeMs2Settings,omitempty" yaml:"isotopeMs2Settings,omitempty"`
	FilterByIsotopePattern          *bool              `json:"filterByIsotopePattern,omitempty" yaml:"filterByIsotopePattern,omitempty"`
	EnforceElGordoFormula           *bool              `json:"enforceElGordoFormula,omitempty" yaml:"enforceElGordoFormula,omitempty"`
	PerformBottomUpSearch           *bool              `json:"performBottomUpSearch,omitempty" yaml:"performBottomUpSearch,omitempty"`
	PerformDenovoBelowMz            *float64           `json:"performDenovoBelowMz,omitempty" yaml:"performDenovoBelowMz,omitempty"`
	FormulaSearchDBs                []string           `json:"formulaSearchDBs,omitempty" yaml:"formulaSearchDBs,omitempty"`
	EnforcedFormulaConstraints      *string            `json:"enforcedFormulaConstraints,omitempty" yaml:"enforcedFormulaConstraints,omitempty"`
	FallbackFormulaConstraints      *string            `json:"fallbackFormulaConstraints,omitempty" yaml:"fallbackFormulaConstraints,omitempty"`
	DetectableElements              []string           `json:"detectableElements,omitempty" yaml:"detectableElements,omitempty"`
	ILPTimeout                      *Timeout           `json:"ilpTimeout,omitempty" yaml:"ilpTimeout,omitempty"`
	UseHeuristic                    *UseHeuristic      `json:"useHeuristic,omitempty" yaml:"useHeuristic,omitempty"`
	InjectSpecLibMatchFormulas      *bool              `json:"injectSpecLibMatchFormulas,omitempty" yaml:"injectSpecLibMatchFormulas,omitempty"`
	MinScoreToInjectSpecLibMatch    *float64           `json:"minScoreToInjectSpecLibMatch,omitempty" yaml:"minScoreToInjectSpecLibMatch,omitempty"`
	MinPeaksToInjectSpecLibMatch    *int32             `json:"minPeaksToInjectSpecLibMatch,omitempty" yaml:"minPeaksToInjectSpecLibMatch,omitempty"`
}

// Zodiac configures network based formula re-ranking.
type Zodiac struct {
	Enabled                     *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ConsideredCandidatesAt300Mz *int32 `json:"consideredCandidatesAt300Mz,omitempty" yaml:"consideredCandidatesAt300Mz,omitempty"`
	ConsideredCandidatesAt800Mz *int32 `json:"consideredCandidatesAt800Mz,omitempty" yaml:"consideredCandidatesAt800Mz,omitempty"`
	RunInTwoSteps               *bool  `json:"runInTwoSteps,omitempty" yaml:"runInTwoSteps,omitempty"`
}

// ToolToggle enables a tool that has no further parameters.
type ToolToggle struct {
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// FingerprintPrediction configures CSI:FingerID fingerprint prediction.
type FingerprintPrediction struct {
	Enabled                     *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	UseScoreThreshold           *bool `json:"useScoreThreshold,omitempty" yaml:"useScoreThreshold,omitempty"`
	AlwaysPredictHighRefMatches *bool `json:"alwaysPredictHighRefMatches,omitempty" yaml:"alwaysPredictHighRefMatches,omitempty"`
}

// StructureDBSearch configures CSI:FingerID structure database search.
type StructureDBSearch struct {
	Enabled                       *bool           `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	StructureSearchDBs            []string        `json:"structureSearchDBs,omitempty" yaml:"structureSearchDBs,omitempty"`
	TagStructuresWithLipidClass   *bool           `json:"tagStructuresWithLipidClass,omitempty" yaml:"tagStructuresWithLipidClass,omitempty"`
	ExpansiveSearchConfidenceMode *ConfidenceMode `json:"expansiveSearchConfidenceMode,omitempty" yaml:"expansiveSearchConfidenceMode,omitempty"`
}

// MsNovelist configures de novo structure generation.
type MsNovelist struct {
	Enabled                    *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	NumberOfCandidateToPredict *int32 `json:"numberOfCandidateToPredict,omitempty" yaml:"numberOfCandidateToPredict,omitempty"`
}

// JobSubmission describes a computation to start on selected features.
type JobSubmission struct {
	CompoundIDs                 []string               `json:"compoundIds,omitempty" yaml:"compoundIds,omitempty"`
	AlignedFeatureIDs           []string               `json:"alignedFeatureIds,omitempty" yaml:"alignedFeatureIds,omitempty"`
	FallbackAdducts             []string               `json:"fallbackAdducts,omitempty" yaml:"fallbackAdducts,omitempty"`
	EnforcedAdducts             []string               `json:"enforcedAdducts,omitempty" yaml:"enforcedAdducts,omitempty"`
	DetectableAdducts           []string               `json:"detectableAdducts,omitempty" yaml:"detectableAdducts,omitempty"`
	Recompute                   *bool                  `json:"recompute,omitempty" yaml:"recompute,omitempty"`
	SpectraSearchParams         *SpectralLibrarySearch `json:"spectraSearchParams,omitempty" yaml:"spectraSearchParams,omitempty"`
	FormulaIDParams             *FormulaSearch         `json:"formulaIdParams,omitempty" yaml:"formulaIdParams,omitempty"`
	ZodiacParams                *Zodiac                `json:"zodiacParams,omitempty" yaml:"zodiacParams,omitempty"`
	FingerprintPredictionParams *FingerprintPrediction `json:"fingerprintPredictionParams,omitempty" yaml:"fingerprintPredictionParams,omitempty"`
	CanopusParams               *ToolToggle            `json:"canopusParams,omitempty" yaml:"canopusParams,omitempty"`
	StructureDBSearchParams     *StructureDBSearch     `json:"structureDbSearchParams,omitempty" yaml:"structureDbSearchParams,omitempty"`
	MsNovelistParams            *MsNovelist            `json:"msNovelistParams,omitempty" yaml:"msNovelistParams,omitempty"`
	ConfigMap                   map[string]string      `json:"configMap,omitempty" yaml:"configMap,omitempty"`
}

// StoredJobSubmission is a named, saved JobSubmission.
type StoredJobSubmission struct {
	Name          string         `json:"name" yaml:"name"`
	Editable      bool           `json:"editable" yaml:"editable"`
	JobSubmission *JobSubmission `json:"jobSubmission,omitempty" yaml:"jobSubmission,omitempty"`
}
