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

type structureSource struct {
	op     string
	suffix string
}

var (
	dbStructures     = structureSource{op: "StructureCandidates", suffix: "/structures"}
	deNovoStructures = structureSource{op: "DeNovoStructureCandidates", suffix: "/denovo-structures"}
)

func (s *FeaturesService) formulaStructures(ctx context.Context, src structureSource, projectID, alignedFeatureID, formulaID string, optFields []StructureCandidateOptField) ([]StructureCandidateScored, *http.Response, error) {
	op := "get" + src.op + "ByFormula"
	pp, err := formulaParams(op, projectID, alignedFeatureID, formulaID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetchList[StructureCandidateScored](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       formulaPath + src.suffix,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

func (s *FeaturesService) formulaStructuresPaged(ctx context.Context, src structureSource, projectID, alignedFeatureID, formulaID string, page *PageRequest, optFields []StructureCandidateOptField) (*PagedModel[StructureCandidateScored], *http.Response, error) {
	op := "get" + src.op + "ByFormulaPaged"
	pp, err := formulaParams(op, projectID, alignedFeatureID, formulaID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	page.apply(q)
	transport.AddEach(q, "optFields", optFields)
	return fetch[PagedModel[StructureCandidateScored]](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       formulaPath + src.suffix + "/page",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

func (s *FeaturesService) featureStructures(ctx context.Context, src structureSource, projectID, alignedFeatureID string, optFields []StructureCandidateOptField) ([]StructureCandidateFormula, *http.Response, error) {
	op := "get" + src.op
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetchList[StructureCandidateFormula](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       featurePath + src.suffix,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

func (s *FeaturesService) featureStructuresPaged(ctx context.Context, src structureSource, projectID, alignedFeatureID string, page *PageRequest, optFields []StructureCandidateOptField) (*PagedModel[StructureCandidateFormula], *http.Response, error) {
	op := "get" + src.op + "Paged"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	page.apply(q)
	transport.AddEach(q, "optFields", optFields)
	return fetch[PagedModel[StructureCandidateFormula]](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       featurePath + src.suffix + "/page",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetStructureCandidatesByFormula lists database structure candidates of one formula.
func (s *FeaturesService) GetStructureCandidatesByFormula(ctx context.Context, projectID, alignedFeatureID, formulaID string, optFields ...StructureCandidateOptField) ([]StructureCandidateScored, *http.Response, error) {
	return s.formulaStructures(ctx, dbStructures, projectID, alignedFeatureID, formulaID, optFields)
}

func (s *FeaturesService) GetStructureCandidatesByFormulaPaged(ctx context.Context, projectID, alignedFeatureID, formulaID string, page *PageRequest, optFields ...StructureCandidateOptField) (*PagedModel[StructureCandidateScored], *http.Response, error) {
	return s.formulaStructuresPaged(ctx, dbStructures, projectID, alignedFeatureID, formulaID, page, optFields)
}

// GetDeNovoStructureCandidatesByFormula lists MSNovelist candidates of one formula.
func (s *FeaturesService) GetDeNovoStructureCandidatesByFormula(ctx context.Context, projectID, alignedFeatureID, formulaID string, optFields ...StructureCandidateOptField) ([]StructureCandidateScored, *http.Response, error) {
	return s.formulaStructures(ctx, deNovoStructures, projectID, alignedFeatureID, formulaID, optFields)
}

func (s *FeaturesService) GetDeNovoStructureCandidatesByFormulaPaged(ctx context.Context, projectID, alignedFeatureID, formulaID string, page *PageRequest, optFields ...StructureCandidateOptField) (*PagedModel[StructureCandidateScored], *http.Response, error) {
	return s.formulaStructuresPaged(ctx, deNovoStructures, projectID, alignedFeatureID, formulaID, page, optFields)
}

// GetStructureCandidates lists database structure candidates across all formulas.
func (s *FeaturesService) GetStructureCandidates(ctx context.Context, projectID, alignedFeatureID string, optFields ...StructureCandidateOptField) ([]StructureCandidateFormula, *http.Response, error) {
	return s.featureStructures(ctx, dbStructures, projectID, alignedFeatureID, optFields)
}

func (s *FeaturesService) GetStructureCandidatesPaged(ctx context.Context, projectID, alignedFeatureID string, page *PageRequest, optFields ...StructureCandidateOptField) (*PagedModel[StructureCandidateFormula], *http.Response, error) {
	return s.featureStructuresPaged(ctx, dbStructures, projectID, alignedFeatureID, page, optFields)
}

// GetDeNovoStructureCandidates lists de novo structure candidates across all formulas.
func (s *FeaturesService) GetDeNovoStructureCandidates(ctx context.Context, projectID, alignedFeatureID string, optFields ...StructureCandidateOptField) ([]StructureCandidateFormula, *http.Response, error) {
	return s.featureStructures(ctx, deNovoStructures, projectID, alignedFeatureID, optFields)
}

func (s *FeaturesService) GetDeNovoStructureCandidatesPaged(ctx context.Context, projectID, alignedFeatureID string, page *PageRequest, optFields ...StructureCandidateOptField) (*PagedModel[StructureCandidateFormula], *http.Response, error) {
	return s.featureStructuresPaged(ctx, deNovoStructures, projectID, alignedFeatureID, page, optFields)
}

// GetStructureAnnotatedSpectrum returns a spectrum annotated with substructures
// of the given candidate. A nil spectrumIndex selects the merged MS/MS.
func (s *FeaturesService) GetStructureAnnotatedSpectrum(ctx context.Context, projectID, alignedFeatureID, formulaID, inchiKey string, spectrumIndex *int32) (*AnnotatedSpectrum, *http.Response, error) {
	const op = "getStructureAnnotatedSpectrum"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID, "formulaId", formulaID, "inchiKey", inchiKey)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.SetOptional(q, "spectrumIndex", spectrumIndex)
	return fetch[AnnotatedSpectrum](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       formulaPath + "/structures/{inchiKey}/annotated-spectrum",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetStructureAnnotatedMsMsData returns all MS/MS spectra annotated with substructures.
func (s *FeaturesService) GetStructureAnnotatedMsMsData(ctx context.Context, projectID, alignedFeatureID, formulaID, inchiKey string) (*AnnotatedMsMsData, *http.Response, error) {
	const op = "getStructureAnnotatedMsMsData"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID, "formulaId", formulaID, "inchiKey", inchiKey)
	if err != nil {
		return nil, nil, err
	}
	return fetch[AnnotatedMsMsData](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       formulaPath + "/structures/{inchiKey}/annotated-msmsdata",
		PathParams: pp,
		Accept:     acceptJSON,
	})
}
