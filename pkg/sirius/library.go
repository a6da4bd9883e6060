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

const libraryMatchesPath = featurePath + "/spectral-library-matches"

// SpectralLibraryMatchFilter restricts which library hits are returned.
type SpectralLibraryMatchFilter struct {
	MinSharedPeaks *int32
	MinSimilarity  *float64
	InchiKey       *string
}

func (f *SpectralLibraryMatchFilter) apply(q url.Values) {
	if f == nil {
		return
	}
	transport.SetOptional(q, "minSharedPeaks", f.MinSharedPeaks)
	transport.SetOptional(q, "minSimilarity", f.MinSimilarity)
	transport.SetOptional(q, "inchiKey", f.InchiKey)
}

func (s *FeaturesService) libraryRequest(op, suffix, projectID, alignedFeatureID string, filter *SpectralLibraryMatchFilter, optFields []SpectralLibraryMatchOptField) (*transport.Request, error) {
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	filter.apply(q)
	transport.AddEach(q, "optFields", optFields)
	return &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       libraryMatchesPath + suffix,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	}, nil
}

// GetSpectralLibraryMatches lists the spectral library hits of a feature.
func (s *FeaturesService) GetSpectralLibraryMatches(ctx context.Context, projectID, alignedFeatureID string, filter *SpectralLibraryMatchFilter, optFields ...SpectralLibraryMatchOptField) ([]SpectralLibraryMatch, *http.Response, error) {
	req, err := s.libraryRequest("getSpectralLibraryMatches", "", projectID, alignedFeatureID, filter, optFields)
	if err != nil {
		return nil, nil, err
	}
	return fetchList[SpectralLibraryMatch](ctx, s.inv, req)
}

// GetSpectralLibraryMatchesPaged returns one page of library hits.
func (s *FeaturesService) GetSpectralLibraryMatchesPaged(ctx context.Context, projectID, alignedFeatureID string, page *PageRequest, filter *SpectralLibraryMatchFilter, optFields ...SpectralLibraryMatchOptField) (*PagedModel[SpectralLibraryMatch], *http.Response, error) {
	req, err := s.libraryRequest("getSpectralLibraryMatchesPaged", "/page", projectID, alignedFeatureID, filter, optFields)
	if err != nil {
		return nil, nil, err
	}
	page.apply(req.Query)
	return fetch[PagedModel[SpectralLibraryMatch]](ctx, s.inv, req)
}

// GetSpectralLibraryMatchesSummary summarizes the library hits of a feature.
func (s *FeaturesService) GetSpectralLibraryMatchesSummary(ctx context.Context, projectID, alignedFeatureID string, filter *SpectralLibraryMatchFilter) (*SpectralLibraryMatchSummary, *http.Response, error) {
	req, err := s.libraryRequest("getSpectralLibraryMatchesSummary", "/summary", projectID, alignedFeatureID, filter, nil)
	if err != nil {
		return nil, nil, err
	}
	return fetch[SpectralLibraryMatchSummary](ctx, s.inv, req)
}

// GetSpectralLibraryMatch returns one library hit.
func (s *FeaturesService) GetSpectralLibraryMatch(ctx context.Context, projectID, alignedFeatureID, matchID string, optFields ...SpectralLibraryMatchOptField) (*SpectralLibraryMatch, *http.Response, error) {
	const op = "getSpectralLibraryMatch"
	pp, err := pathParams(op, "projectId", projectID, "alignedFeatureId", alignedFeatureID, "matchId", matchID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetch[SpectralLibraryMatch](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       libraryMatchesPath + "/{matchId}",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}
