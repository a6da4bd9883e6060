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
	featuresPath = "/api/projects/{projectId}/aligned-features"
	featurePath  = featuresPath + "/{alignedFeatureId}"
)

// FeaturesService reads and manages aligned features and their results.
type FeaturesService struct {
	inv Invoker
}

// GetAlignedFeatures lists all aligned features of a project.
func (s *FeaturesService) GetAlignedFeatures(ctx context.Context, projectID string, optFields ...AlignedFeatureOptField) ([]AlignedFeature, *http.Response, error) {
	const op = "getAlignedFeatures"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetchList[AlignedFeature](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       featuresPath,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetAlignedFeaturesPaged returns one page of aligned features.
func (s *FeaturesService) GetAlignedFeaturesPaged(ctx context.Context, projectID string, page *PageRequest, optFields ...AlignedFeatureOptField) (*PagedModel[AlignedFeature], *http.Response, error) {
	const op = "getAlignedFeaturesPaged"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	page.apply(q)
	transport.AddEach(q, "optFields", optFields)
	return fetch[PagedModel[AlignedFeature]](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       featuresPath + "/page",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// AddAlignedFeatures imports features given as already preprocessed spectra.
func (s *FeaturesService) AddAlignedFeatures(ctx context.Context, projectID string, features []FeatureImport, profile *InstrumentProfile, optFields ...AlignedFeatureOptField) ([]AlignedFeature, *http.Response, error) {
	const op = "addAlignedFeatures"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	if err := transport.RequireValue(op, "featureImport", features); err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.SetOptional(q, "profile", profile)
	transport.AddEach(q, "optFields", optFields)
	return fetchList[AlignedFeature](ctx, s.inv, &transport.Request{
		Operation:   op,
		Method:      http.MethodPost,
		Path:        featuresPath,
		PathParams:  pp,
		Query:       q,
		Body:        features,
		Accept:      acceptJSON,
		ContentType: contentJSON,
	})
}

// DeleteAlignedFeatures deletes the given features and all their results.
func (s *FeaturesService) DeleteAlignedFeatures(ctx context.Context, projectID string, alignedFeatureIDs []string) (*http.Response, error) {
	const op = "deleteAlignedFeatures"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, err
	}
	if err := transport.RequireValue(op, "requestBody", alignedFeatureIDs); err != nil {
		return nil, err
	}
	return send(ctx, s.inv, &transport.Request{
		Operation:   op,
		Method:      http.MethodPut,
		Path:        featuresPath + "/delete",
		PathParams:  pp,
		Body:        alignedFeatureIDs,
		ContentType: contentJSON,
	})
}

// GetAlignedFeature returns one aligned feature.
func (s *FeaturesService) GetAlignedFeature(ctx context.Context, projectID, alignedFeatureID string, optFields ...AlignedFeatureOptField) (*AlignedFeature, *http.Response, error) {
	const op = "getAlignedFeature"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetch[AlignedFeature](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       featurePath,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// DeleteAlignedFeature deletes one feature and all its results.
func (s *FeaturesService) DeleteAlignedFeature(ctx context.Context, projectID, alignedFeatureID string) (*http.Response, error) {
	const op = "deleteAlignedFeature"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, err
	}
	return send(ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodDelete,
		Path:       featurePath,
		PathParams: pp,
	})
}

// GetMsData returns the spectra of a feature.
func (s *FeaturesService) GetMsData(ctx context.Context, projectID, alignedFeatureID string) (*MsData, *http.Response, error) {
	const op = "getMsData"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, nil, err
	}
	return fetch[MsData](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       featurePath + "/ms-data",
		PathParams: pp,
		Accept:     acceptJSON,
	})
}

// GetTraces returns the mass traces of a feature. With includeAll the traces
// of all features in the same compound are returned as well.
func (s *FeaturesService) GetTraces(ctx context.Context, projectID, alignedFeatureID string, includeAll *bool) (*TraceSet, *http.Response, error) {
	const op = "getTraces"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.SetOptional(q, "includeAll", includeAll)
	return fetch[TraceSet](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       featurePath + "/traces",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetQuantification returns the quantification of a feature across samples.
//
// Deprecated: use GetQuantTableRow.
func (s *FeaturesService) GetQuantification(ctx context.Context, projectID, alignedFeatureID string, measure *QuantMeasure) (*QuantTable, *http.Response, error) {
	return s.quantTable(ctx, "getQuantification", "/quantification", projectID, alignedFeatureID, measure)
}

// GetQuantTableRow returns the quantification table row of a feature.
func (s *FeaturesService) GetQuantTableRow(ctx context.Context, projectID, alignedFeatureID string, measure *QuantMeasure) (*QuantTable, *http.Response, error) {
	return s.quantTable(ctx, "getQuantTableRow", "/quant-table-row", projectID, alignedFeatureID, measure)
}

func (s *FeaturesService) quantTable(ctx context.Context, op, suffix, projectID, alignedFeatureID string, measure *QuantMeasure) (*QuantTable, *http.Response, error) {
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.SetOptional(q, "type", measure)
	return fetch[QuantTable](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       featurePath + suffix,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}
