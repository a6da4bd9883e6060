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

// FragmentNode is a node of a fragmentation tree.
type FragmentNode struct {
	FragmentID       int32    `json:"fragmentId" yaml:"fragmentId"`
	MolecularFormula *string  `json:"molecularFormula,omitempty" yaml:"molecularFormula,omitempty"`
	Adduct           *string  `json:"adduct,omitempty" yaml:"adduct,omitempty"`
	MassDeviationDa  *float64 `json:"massDeviationDa,omitempty" yaml:"massDeviationDa,omitempty"`
	MassDeviationPPM *float64 `json:"massDeviationPpm,omitempty" yaml:"massDeviationPpm,omitempty"`
	Score            *float64 `json:"score,omitempty" yaml:"score,omitempty"`
	Intensity        *float64 `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	MZ               *float64 `json:"mz,omitempty" yaml:"mz,omitempty"`
}

// LossEdge is an edge of a fragmentation tree.
type LossEdge struct {
	SourceFragmentIdx int32    `json:"sourceFragmentIdx" yaml:"sourceFragmentIdx"`
	TargetFragmentIdx int32    `json:"targetFragmentIdx" yaml:"targetFragmentIdx"`
	MolecularFormula  *string  `json:"molecularFormula,omitempty" yaml:"molecularFormula,omitempty"`
	Score             *float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// FragmentationTree explains an MS/MS spectrum for a formula candidate.
type FragmentationTree struct {
	Fragments        []FragmentNode `json:"fragments,omitempty" yaml:"fragments,omitempty"`
	Losses           []LossEdge     `json:"losses,omitempty" yaml:"losses,omitempty"`
	TreeScore        *float64       `json:"treeScore,omitempty" yaml:"treeScore,omitempty"`
	MolecularFormula *string        `json:"molecularFormula,omitempty" yaml:"molecularFormula,omitempty"`
	Adduct           *string        `json:"adduct,omitempty" yaml:"adduct,omitempty"`
}

// ParentPeak links an annotated peak to the peak it was derived from.
type ParentPeak struct {
	LossFormula      *string `json:"lossFormula,omitempty" yaml:"lossFormula,omitempty"`
	ParentPeakIndex  int32   `json:"parentPeakIndex" yaml:"parentPeakIndex"`
	ParentFragmentID int32   `json:"parentFragmentId" yaml:"parentFragmentId"`
}

// PeakAnnotation explains one peak.
type PeakAnnotation struct {
	FragmentID                   int32       `json:"fragmentId" yaml:"fragmentId"`
	MolecularFormula             *string     `json:"molecularFormula,omitempty" yaml:"molecularFormula,omitempty"`
	Adduct                       *string     `json:"adduct,omitempty" yaml:"adduct,omitempty"`
	ExactMass                    *float64    `json:"exactMass,omitempty" yaml:"exactMass,omitempty"`
	MassDeviationMZ              *float64    `json:"massDeviationMz,omitempty" yaml:"massDeviationMz,omitempty"`
	MassDeviationPPM             *float64    `json:"massDeviationPpm,omitempty" yaml:"massDeviationPpm,omitempty"`
	RecalibratedMassDeviationMZ  *float64    `json:"recalibratedMassDeviationMz,omitempty" yaml:"recalibratedMassDeviationMz,omitempty"`
	RecalibratedMassDeviationPPM *float64    `json:"recalibratedMassDeviationPpm,omitempty" yaml:"recalibratedMassDeviationPpm,omitempty"`
	ParentPeak                   *ParentPeak `json:"parentPeak,omitempty" yaml:"parentPeak,omitempty"`
	SubstructureAtoms            []int32     `json:"substructureAtoms,omitempty" yaml:"substructureAtoms,omitempty"`
	SubstructureBonds            []int32     `json:"substructureBonds,omitempty" yaml:"substructureBonds,omitempty"`
	SubstructureBondsCut         []int32     `json:"substructureBondsCut,omitempty" yaml:"substructureBondsCut,omitempty"`
	SubstructureScore            *float32    `json:"substructureScore,omitempty" yaml:"substructureScore,omitempty"`
	HydrogenRearrangements       *int32      `json:"hydrogenRearrangements,omitempty" yaml:"hydrogenRearrangements,omitempty"`
}

// AnnotatedPeak is a peak with an optional explanation.
type AnnotatedPeak struct {
	MZ             float64         `json:"mz" yaml:"mz"`
	Intensity      float64         `json:"intensity" yaml:"intensity"`
	PeakAnnotation *PeakAnnotation `json:"peakAnnotation,omitempty" yaml:"peakAnnotation,omitempty"`
}

// SpectrumAnnotation describes the candidate a spectrum was annotated with.
type SpectrumAnnotation struct {
	MolecularFormula          *string  `json:"molecularFormula,omitempty" yaml:"molecularFormula,omitempty"`
	Adduct                    *string  `json:"adduct,omitempty" yaml:"adduct,omitempty"`
	ExactMass                 *float64 `json:"exactMass,omitempty" yaml:"exactMass,omitempty"`
	MassDeviationMZ           *float64 `json:"massDeviationMz,omitempty" yaml:"massDeviationMz,omitempty"`
	MassDeviationPPM          *float64 `json:"massDeviationPpm,omitempty" yaml:"massDeviationPpm,omitempty"`
	StructureAnnotationSmiles *string  `json:"structureAnnotationSmiles,omitempty" yaml:"structureAnnotationSmiles,omitempty"`
	StructureAnnotationScore  *float64 `json:"structureAnnotationScore,omitempty" yaml:"structureAnnotationScore,omitempty"`
}

// AnnotatedSpectrum is a spectrum whose peaks are explained by a candidate.
type AnnotatedSpectrum struct {
	Name               *string             `json:"name,omitempty" yaml:"name,omitempty"`
	MsLevel            *int32              `json:"msLevel,omitempty" yaml:"msLevel,omitempty"`
	CollisionEnergy    *string             `json:"collisionEnergy,omitempty" yaml:"collisionEnergy,omitempty"`
	PrecursorMZ        *float64            `json:"precursorMz,omitempty" yaml:"precursorMz,omitempty"`
	ScanNumber         *int32              `json:"scanNumber,omitempty" yaml:"scanNumber,omitempty"`
	CosineQuery        bool                `json:"cosineQuery" yaml:"cosineQuery"`
	Peaks              []AnnotatedPeak     `json:"peaks" yaml:"peaks"`
	SpectrumAnnotation *SpectrumAnnotation `json:"spectrumAnnotation,omitempty" yaml:"spectrumAnnotation,omitempty"`
}

// AnnotatedMsMsData holds all MS/MS spectra annotated with one candidate.
type AnnotatedMsMsData struct {
	MergedMs2  *AnnotatedSpectrum  `json:"mergedMs2,omitempty" yaml:"mergedMs2,omitempty"`
	Ms2Spectra []AnnotatedSpectrum `json:"ms2Spectra,omitempty" yaml:"ms2Spectra,omitempty"`
}

// IsotopePatternAnnotation compares measured and simulated isotope patterns.
type IsotopePatternAnnotation struct {
	IsotopePattern   *BasicSpectrum `json:"isotopePattern,omitempty" yaml:"isotopePattern,omitempty"`
	SimulatedPattern *BasicSpectrum `json:"simulatedPattern,omitempty" yaml:"simulatedPattern,omitempty"`
}

// LipidAnnotation is the El Gordo lipid class annotation.
type LipidAnnotation struct {
	LipidSpecies          *string `json:"lipidSpecies,omitempty" yaml:"lipidSpecies,omitempty"`
	LipidMapsID           *string `json:"lipidMapsId,omitempty" yaml:"lipidMapsId,omitempty"`
	LipidClassName        *string `json:"lipidClassName,omitempty" yaml:"lipidClassName,omitempty"`
	HypotheticalStructure *string `json:"hypotheticalStructure,omitempty" yaml:"hypotheticalStructure,omitempty"`
	ChainsUnknown         *bool   `json:"chainsUnknown,omitempty" yaml:"chainsUnknown,omitempty"`
}

// CompoundClass is one predicted ClassyFire or NPC class.
type CompoundClass struct {
	Type        *CompoundClassType `json:"type,omitempty" yaml:"type,omitempty"`
	Level       *string            `json:"level,omitempty" yaml:"level,omitempty"`
	LevelIndex  *int32             `json:"levelIndex,omitempty" yaml:"levelIndex,omitempty"`
	Name        *string            `json:"name,omitempty" yaml:"name,omitempty"`
	Description *string            `json:"description,omitempty" yaml:"description,omitempty"`
	ID          *int32             `json:"id,omitempty" yaml:"id,omitempty"`
	Probability *float64           `json:"probability,omitempty" yaml:"probability,omitempty"`
	Index       *int32             `json:"index,omitempty" yaml:"index,omitempty"`
	ParentID    *int32             `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	ParentName  *string            `json:"parentName,omitempty" yaml:"parentName,omitempty"`
}

// CompoundClasses are the best matching classes of a candidate.
type CompoundClasses struct {
	NPCPathway             *CompoundClass  `json:"npcPathway,omitempty" yaml:"npcPathway,omitempty"`
	NPCSuperclass          *CompoundClass  `json:"npcSuperclass,omitempty" yaml:"npcSuperclass,omitempty"`
	NPCClass               *CompoundClass  `json:"npcClass,omitempty" yaml:"npcClass,omitempty"`
	ClassyFireLineage      []CompoundClass `json:"classyFireLineage,omitempty" yaml:"classyFireLineage,omitempty"`
	ClassyFireAlternatives []CompoundClass `json:"classyFireAlternatives,omitempty" yaml:"classyFireAlternatives,omitempty"`
}

// CanopusPrediction holds all predicted class probabilities.
type CanopusPrediction struct {
	ClassyFireClasses []CompoundClass `json:"classyFireClasses,omitempty" yaml:"classyFireClasses,omitempty"`
	NPCClasses        []CompoundClass `json:"npcClasses,omitempty" yaml:"npcClasses,omitempty"`
}

// FormulaCandidate is a molecular formula proposed for a feature.
type FormulaCandidate struct {
	FormulaID                string                    `json:"formulaId" yaml:"formulaId"`
	MolecularFormula         *string                   `json:"molecularFormula,omitempty" yaml:"molecularFormula,omitempty"`
	Adduct                   *string                   `json:"adduct,omitempty" yaml:"adduct,omitempty"`
	Rank                     *int32                    `json:"rank,omitempty" yaml:"rank,omitempty"`
	SiriusScoreNormalized    *float64                  `json:"siriusScoreNormalized,omitempty" yaml:"siriusScoreNormalized,omitempty"`
	SiriusScore              *float64                  `json:"siriusScore,omitempty" yaml:"siriusScore,omitempty"`
	IsotopeScore             *float64                  `json:"isotopeScore,omitempty" yaml:"isotopeScore,omitempty"`
	TreeScore                *float64                  `json:"treeScore,omitempty" yaml:"treeScore,omitempty"`
	ZodiacScore              *float64                  `json:"zodiacScore,omitempty" yaml:"zodiacScore,omitempty"`
	NumOfExplainedPeaks      *int32                    `json:"numOfExplainedPeaks,omitempty" yaml:"numOfExplainedPeaks,omitempty"`
	NumOfExplainablePeaks    *int32                    `json:"numOfExplainablePeaks,omitempty" yaml:"numOfExplainablePeaks,omitempty"`
	TotalExplainedIntensity  *float64                  `json:"totalExplainedIntensity,omitempty" yaml:"totalExplainedIntensity,omitempty"`
	MedianMassDeviation      *Deviation                `json:"medianMassDeviation,omitempty" yaml:"medianMassDeviation,omitempty"`
	FragmentationTree        *FragmentationTree        `json:"fragmentationTree,omitempty" yaml:"fragmentationTree,omitempty"`
	AnnotatedSpectrum        *AnnotatedSpectrum        `json:"annotatedSpectrum,omitempty" yaml:"annotatedSpectrum,omitempty"`
	IsotopePatternAnnotation *IsotopePatternAnnotation `json:"isotopePatternAnnotation,omitempty" yaml:"isotopePatternAnnotation,omitempty"`
	LipidAnnotation          *LipidAnnotation          `json:"lipidAnnotation,omitempty" yaml:"lipidAnnotation,omitempty"`
	PredictedFingerprint     []float64                 `json:"predictedFingerprint,omitempty" yaml:"predictedFingerprint,omitempty"`
	CompoundClasses          *CompoundClasses          `json:"compoundClasses,omitempty" yaml:"compoundClasses,omitempty"`
	CanopusPrediction        *CanopusPrediction        `json:"canopusPrediction,omitempty" yaml:"canopusPrediction,omitempty"`
}

// DBLink references a structure in an external database.
type DBLink struct {
	Name string  `json:"name" yaml:"name"`
	ID   *string `json:"id,omitempty" yaml:"id,omitempty"`
}

// BinaryFingerprint lists the set bits of a structure fingerprint.
type BinaryFingerprint struct {
	BitsSet []int32 `json:"bitsSet,omitempty" yaml:"bitsSet,omitempty"`
	Length  int32   `json:"length" yaml:"length"`
}

// StructureCandidateScored is a database or de novo structure for a formula.
type StructureCandidateScored struct {
	InchiKey               string                 `json:"inchiKey" yaml:"inchiKey"`
	Smiles                 *string                `json:"smiles,omitempty" yaml:"smiles,omitempty"`
	StructureName          *string                `json:"structureName,omitempty" yaml:"structureName,omitempty"`
	StructureSvg           *string                `json:"structureSvg,omitempty" yaml:"structureSvg,omitempty"`
	DBLinks                []DBLink               `json:"dbLinks,omitempty" yaml:"dbLinks,omitempty"`
	SpectralLibraryMatches []SpectralLibraryMatch `json:"spectralLibraryMatches,omitempty" yaml:"spectralLibraryMatches,omitempty"`
	XLogP                  *float64               `json:"xlogP,omitempty" yaml:"xlogP,omitempty"`
	Rank                   *int32                 `json:"rank,omitempty" yaml:"rank,omitempty"`
	CSIScore               *float64               `json:"csiScore,omitempty" yaml:"csiScore,omitempty"`
	TanimotoSimilarity     *float64               `json:"tanimotoSimilarity,omitempty" yaml:"tanimotoSimilarity,omitempty"`
	MCESDistToTopHit       *float64               `json:"mcesDistToTopHit,omitempty" yaml:"mcesDistToTopHit,omitempty"`
	Fingerprint            *BinaryFingerprint     `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// StructureCandidateFormula is a structure candidate listed across all formulas of a feature.
type StructureCandidateFormula struct {
	StructureCandidateScored `yaml:",inline"`
	MolecularFormula         *string `json:"molecularFormula,omitempty" yaml:"molecularFormula,omitempty"`
	Adduct                   *string `json:"adduct,omitempty" yaml:"adduct,omitempty"`
	FormulaID                *string `json:"formulaId,omitempty" yaml:"formulaId,omitempty"`
}

// SpectralLibraryMatch is a hit of a query spectrum in a spectral library.
type SpectralLibraryMatch struct {
	SpecMatchID        *string        `json:"specMatchId,omitempty" yaml:"specMatchId,omitempty"`
	Rank               *int32         `json:"rank,omitempty" yaml:"rank,omitempty"`
	SharedPeaks        *int32         `json:"sharedPeaks,omitempty" yaml:"sharedPeaks,omitempty"`
	Similarity         float64        `json:"similarity" yaml:"similarity"`
	QuerySpectrumIndex int32          `json:"querySpectrumIndex" yaml:"querySpectrumIndex"`
	DBName             *string        `json:"dbName,omitempty" yaml:"dbName,omitempty"`
	DBID               *string        `json:"dbId,omitempty" yaml:"dbId,omitempty"`
	UUID               int64          `json:"uuid" yaml:"uuid"`
	Splash             *string        `json:"splash,omitempty" yaml:"splash,omitempty"`
	MolecularFormula   *string        `json:"molecularFormula,omitempty" yaml:"molecularFormula,omitempty"`
	Adduct             *string        `json:"adduct,omitempty" yaml:"adduct,omitempty"`
	ExactMass          *float64       `json:"exactMass,omitempty" yaml:"exactMass,omitempty"`
	Smiles             *string        `json:"smiles,omitempty" yaml:"smiles,omitempty"`
	InchiKey           string         `json:"inchiKey" yaml:"inchiKey"`
	ReferenceSpectrum  *BasicSpectrum `json:"referenceSpectrum,omitempty" yaml:"referenceSpectrum,omitempty"`
}

// SpectralLibraryMatchSummary aggregates the library hits of a feature.
type SpectralLibraryMatchSummary struct {
	BestMatch             *SpectralLibraryMatch `json:"bestMatch,omitempty" yaml:"bestMatch,omitempty"`
	SpectralMatchCount    int64                 `json:"spectralMatchCount" yaml:"spectralMatchCount"`
	ReferenceSpectraCount int32                 `json:"referenceSpectraCount" yaml:"referenceSpectraCount"`
	DatabaseCompoundCount int32                 `json:"databaseCompoundCount" yaml:"databaseCompoundCount"`
}
