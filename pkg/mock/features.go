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

package mock

import (
	"slices"

	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"k8s.io/utils/ptr"
)

// featureView returns a copy of f that only carries the requested
// optional fields. Without fields nothing optional is returned.
func featureView(f *sirius.AlignedFeature, fields []string) sirius.AlignedFeature {
	out := *f
	if !slices.Contains(fields, string(sirius.AlignedFeatureOptFieldMsData)) {
		out.MsData = nil
	}
	if !slices.Contains(fields, string(sirius.AlignedFeatureOptFieldTopAnnotations)) {
		out.TopAnnotations = nil
	}
	if !slices.Contains(fields, string(sirius.AlignedFeatureOptFieldTopAnnotationsDeNovo)) {
		out.TopAnnotationsDeNovo = nil
	}
	if !slices.Contains(fields, string(sirius.AlignedFeatureOptFieldComputedTools)) {
		out.ComputedTools = nil
	}
	if !slices.Contains(fields, string(sirius.AlignedFeatureOptFieldTags)) {
		out.Tags = nil
	}
	return out
}

// newFeature converts an import into a stored feature. Every feature gets
// its own compound.
func (s *Store) newFeature(in sirius.FeatureImport) *sirius.AlignedFeature {
	ms := &sirius.MsData{
		MergedMs1:  in.MergedMs1,
		Ms1Spectra: in.Ms1Spectra,
		Ms2Spectra: in.Ms2Spectra,
	}
	if len(in.Ms2Spectra) == 1 {
		ms.MergedMs2 = &in.Ms2Spectra[0]
	}
	return &sirius.AlignedFeature{
		AlignedFeatureID:  s.newID(),
		CompoundID:        ptr.To(s.newID()),
		Name:              in.Name,
		ExternalFeatureID: in.ExternalFeatureID,
		IonMass:           in.IonMass,
		Charge:            in.Charge,
		DetectedAdducts:   in.DetectedAdducts,
		RtStartSeconds:    in.RtStartSeconds,
		RtEndSeconds:      in.RtEndSeconds,
		RtApexSeconds:     in.RtApexSeconds,
		Quality:           in.DataQuality,
		HasMs1:            ptr.To(in.MergedMs1 != nil || len(in.Ms1Spectra) > 0),
		HasMsMs:           ptr.To(len(in.Ms2Spectra) > 0),
		MsData:            ms,
		Computing:         ptr.To(false),
		ComputedTools:     &sirius.ComputedSubtools{},
	}
}

// AddFeatures stores the imported features and returns them in input order.
func (s *Store) AddFeatures(projectID string, in []sirius.FeatureImport) ([]*sirius.AlignedFeature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.project(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]*sirius.AlignedFeature, 0, len(in))
	for _, fi := range in {
		f := s.newFeature(fi)
		p.features[f.AlignedFeatureID] = f
		p.featureOrder = append(p.featureOrder, f.AlignedFeatureID)
		out = append(out, f)
	}
	if len(out) > 0 {
		p.info.Type = ptr.To(sirius.ProjectTypeDirectImport)
	}
	return out, nil
}

// ListFeatures returns all features of a project in insertion order.
func (s *Store) ListFeatures(projectID string, fields []string) ([]sirius.AlignedFeature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.project(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]sirius.AlignedFeature, 0, len(p.featureOrder))
	for _, id := range p.featureOrder {
		out = append(out, featureView(p.features[id], fields))
	}
	return out, nil
}

// GetFeature returns one feature.
func (s *Store) GetFeature(projectID, featureID string, fields []string) (sirius.AlignedFeature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := s.feature(projectID, featureID)
	if err != nil {
		return sirius.AlignedFeature{}, err
	}
	return featureView(f, fields), nil
}

// GetMsData returns the spectra stored with a feature.
func (s *Store) GetMsData(projectID, featureID string) (sirius.MsData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := s.feature(projectID, featureID)
	if err != nil {
		return sirius.MsData{}, err
	}
	if f.MsData == nil {
		return sirius.MsData{}, nil
	}
	return *f.MsData, nil
}

func (s *Store) feature(projectID, featureID string) (*sirius.AlignedFeature, error) {
	p, err := s.project(projectID)
	if err != nil {
		return nil, err
	}
	f, ok := p.features[featureID]
	if !ok {
		return nil, notFound("AlignedFeature", featureID)
	}
	return f, nil
}

// DeleteFeatures removes the given features. Unknown ids fail the whole
// call before anything is removed.
func (s *Store) DeleteFeatures(projectID string, featureIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.project(projectID)
	if err != nil {
		return err
	}
	for _, id := range featureIDs {
		if _, ok := p.features[id]; !ok {
			return notFound("AlignedFeature", id)
		}
	}
	for _, id := range featureIDs {
		delete(p.features, id)
	}
	p.featureOrder = slices.DeleteFunc(p.featureOrder, func(id string) bool {
		_, ok := p.features[id]
		return !ok
	})
	return nil
}
