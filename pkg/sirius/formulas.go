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
	"context"
	"net/http"
	"net/url"

	"github.com/sirius-ms/sirius-go/pkg/transport"
)

const (
	formulasPath = featurePath + "/formulas"
	formulaPath  = formulasPath + "/{formulaId}"
)

func formulaParams(op, projectID, alignedFeatureID, formulaID string) (map[string]string, error) {
	return pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID, "formulaId", formulaID)
}

// GetFormulaCandidates lists the formula candidates of a feature.
func (s *FeaturesService) GetFormulaCandidates(ctx context.Context, projectID, alignedFeatureID string, optFields ...FormulaCandidateOptField) ([]FormulaCandidate, *http.Response, error) {
	const op = "getFormulaCandidates"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetchList[FormulaCandidate](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       formulasPath,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetFormulaCandidatesPaged returns one page of formula candidates.
func (s *FeaturesService) GetFormulaCandidatesPaged(ctx context.Context, projectID, alignedFeatureID string, page *PageRequest, optFields ...FormulaCandidateOptField) (*PagedModel[FormulaCandidate], *http.Response, error) {
	const op = "getFormulaCandidatesPaged"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	page.apply(q)
	transport.AddEach(q, "optFields", optFields)
	return fetch[PagedModel[FormulaCandidate]](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       formulasPath + "/page",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetFormulaCandidate returns one formula candidate.
func (s *FeaturesService) GetFormulaCandidate(ctx context.Context, projectID, alignedFeatureID, formulaID string, optFields ...FormulaCandidateOptField) (*FormulaCandidate, *http.Response, error) {
	const op = "getFormulaCandidate"
	pp, err := formulaParams(op, projectID, alignedFeatureID, formulaID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetch[FormulaCandidate](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       formulaPath,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

func formulaResource[T any](ctx context.Context, inv Invoker, op, suffix, projectID, alignedFeatureID, formulaID string, q url.Values) (*T, *http.Response, error) {
	pp, err := formulaParams(op, projectID, alignedFeatureID, formulaID)
	if err != nil {
		return nil, nil, err
	}
	return fetch[T](ctx, inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       formulaPath + suffix,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetFragTree returns the fragmentation tree of a formula candidate.
func (s *FeaturesService) GetFragTree(ctx context.Context, projectID, alignedFeatureID, formulaID string) (*FragmentationTree, *http.Response, error) {
	return formulaResource[FragmentationTree](ctx, s.inv, "getFragTree", "/fragtree", projectID, alignedFeatureID, formulaID, nil)
}

// GetIsotopePatternAnnotation returns measured and simulated isotope patterns.
func (s *FeaturesService) GetIsotopePatternAnnotation(ctx context.Context, projectID, alignedFeatureID, formulaID string) (*IsotopePatternAnnotation, *http.Response, error) {
	return formulaResource[IsotopePatternAnnotation](ctx, s.inv, "getIsotopePatternAnnotation", "/isotope-pattern", projectID, alignedFeatureID, formulaID, nil)
}

// GetLipidAnnotation returns the lipid annotation of a formula candidate.
func (s *FeaturesService) GetLipidAnnotation(ctx context.Context, projectID, alignedFeatureID, formulaID string) (*LipidAnnotation, *http.Response, error) {
	return formulaResource[LipidAnnotation](ctx, s.inv, "getLipidAnnotation", "/lipid-annotation", projectID, alignedFeatureID, formulaID, nil)
}

// GetFormulaAnnotatedSpectrum returns a spectrum annotated with the
// fragmentation tree. A nil spectrumIndex selects the merged MS/MS.
func (s *FeaturesService) GetFormulaAnnotatedSpectrum(ctx context.Context, projectID, alignedFeatureID, formulaID string, spectrumIndex *int32) (*AnnotatedSpectrum, *http.Response, error) {
	q := url.Values{}
	transport.SetOptional(q, "spectrumIndex", spectrumIndex)
	return formulaResource[AnnotatedSpectrum](ctx, s.inv, "getFormulaAnnotatedSpectrum", "/annotated-spectrum", projectID, alignedFeatureID, formulaID, q)
}

// GetFormulaAnnotatedMsMsData returns all MS/MS spectra annotated with the candidate.
func (s *FeaturesService) GetFormulaAnnotatedMsMsData(ctx context.Context, projectID, alignedFeatureID, formulaID string) (*AnnotatedMsMsData, *http.Response, error) {
	return formulaResource[AnnotatedMsMsData](ctx, s.inv, "getFormulaAnnotatedMsMsData", "/annotated-msmsdata", projectID, alignedFeatureID, formulaID, nil)
}

// GetFingerprintPrediction returns the predicted fingerprint probabilities.
func (s *FeaturesService) GetFingerprintPrediction(ctx context.Context, projectID, alignedFeatureID, formulaID string) ([]float64, *http.Response, error) {
	const op = "getFingerprintPrediction"
	pp, err := formulaParams(op, projectID, alignedFeatureID, formulaID)
	if err != nil {
		return nil, nil, err
	}
	return fetchList[float64](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       formulaPath + "/fingerprint",
		PathParams: pp,
		Accept:     acceptJSON,
	})
}

// GetCanopusPrediction returns all predicted compound class probabilities.
func (s *FeaturesService) GetCanopusPrediction(ctx context.Context, projectID, alignedFeatureID, formulaID string) (*CanopusPrediction, *http.Response, error) {
	return formulaResource[CanopusPrediction](ctx, s.inv, "getCanopusPrediction", "/canopus-prediction", projectID, alignedFeatureID, formulaID, nil)
}

// GetBestMatchingCompoundClasses returns the best matching class per level.
func (s *FeaturesService) GetBestMatchingCompoundClasses(ctx context.Context, projectID, alignedFeatureID, formulaID string) (*CompoundClasses, *http.Response, error) {
	return formulaResource[CompoundClasses](ctx, s.inv, "getBestMatchingCompoundClasses", "/best-compound-classes", projectID, alignedFeatureID, formulaID, nil)
}
