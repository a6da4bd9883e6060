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
	"fmt"
	"maps"
	"slices"

	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"k8s.io/utils/ptr"
)

const defaultConfigName = "Default"

// defaultSubmission mirrors the tool defaults of a fresh SIRIUS install.
func defaultSubmission() sirius.JobSubmission {
	return sirius.JobSubmission{
		FallbackAdducts:   []string{"[M+H]+", "[M-H]-", "[M+Na]+", "[M+K]+"},
		DetectableAdducts: []string{"[M+H]+", "[M-H]-", "[M+Na]+", "[M+K]+", "[M+NH4]+", "[M-H2O+H]+"},
		Recompute:         ptr.To(false),
		SpectraSearchParams: &sirius.SpectralLibrarySearch{
			Enabled:               ptr.To(true),
			PeakDeviationPPM:      ptr.To(10.0),
			PrecursorDeviationPPM: ptr.To(10.0),
		},
		FormulaIDParams: &sirius.FormulaSearch{
			Enabled:            ptr.To(true),
			Profile:            ptr.To(sirius.InstrumentProfileQTOF),
			NumberOfCandidates: ptr.To(int32(10)),
			DetectableElements: []string{"B", "Cl", "Br", "Se", "S"},
		},
		ZodiacParams:                &sirius.Zodiac{Enabled: ptr.To(false)},
		FingerprintPredictionParams: &sirius.FingerprintPrediction{Enabled: ptr.To(true)},
		CanopusParams:               &sirius.ToolToggle{Enabled: ptr.To(true)},
		StructureDBSearchParams: &sirius.StructureDBSearch{
			Enabled:            ptr.To(true),
			StructureSearchDBs: []string{"BIO"},
		},
		MsNovelistParams: &sirius.MsNovelist{Enabled: ptr.To(false)},
	}
}

func defaultStoredConfig() sirius.StoredJobSubmission {
	return sirius.StoredJobSubmission{
		Name:          defaultConfigName,
		JobSubmission: ptr.To(defaultSubmission()),
	}
}

// ListJobConfigs returns all stored configs sorted by name.
func (s *Store) ListJobConfigs() []sirius.StoredJobSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]sirius.StoredJobSubmission, 0, len(s.jobConfigs))
	for _, name := range slices.Sorted(maps.Keys(s.jobConfigs)) {
		out = append(out, s.jobConfigs[name])
	}
	return out
}

// JobConfigNames returns the names of all stored configs.
func (s *Store) JobConfigNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.jobConfigs))
}

// GetJobConfig returns one stored config.
func (s *Store) GetJobConfig(name string) (sirius.StoredJobSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.jobConfigs[name]
	if !ok {
		return sirius.StoredJobSubmission{}, notFound("JobConfig", name)
	}
	return c, nil
}

// SaveJobConfig stores sub under name. Existing configs are only replaced
// with override set, and the built-in default is never replaced.
func (s *Store) SaveJobConfig(name string, sub sirius.JobSubmission, override bool) (sirius.StoredJobSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobConfigs[name]; ok {
		if !existing.Editable {
			return sirius.StoredJobSubmission{}, conflict(fmt.Sprintf("Job config '%s' is not editable.", name))
		}
		if !override {
			return sirius.StoredJobSubmission{}, conflict(fmt.Sprintf("Job config '%s' already exists.", name))
		}
	}
	c := sirius.StoredJobSubmission{Name: name, Editable: true, JobSubmission: &sub}
	s.jobConfigs[name] = c
	return c, nil
}

// DeleteJobConfig removes a stored config.
func (s *Store) DeleteJobConfig(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.jobConfigs[name]
	if !ok {
		return notFound("JobConfig", name)
	}
	if !c.Editable {
		return conflict(fmt.Sprintf("Job config '%s' is not editable.", name))
	}
	delete(s.jobConfigs, name)
	return nil
}

// StartJobFromConfig starts the stored config on the given features.
func (s *Store) StartJobFromConfig(projectID, name string, featureIDs []string, recompute *bool, fields []string) (sirius.Job, error) {
	c, err := s.GetJobConfig(name)
	if err != nil {
		return sirius.Job{}, err
	}
	sub := sirius.JobSubmission{}
	if c.JobSubmission != nil {
		sub = *c.JobSubmission
	}
	sub.AlignedFeatureIDs = featureIDs
	sub.CompoundIDs = nil
	if recompute != nil {
		sub.Recompute = recompute
	}
	return s.StartJob(projectID, sub, fields)
}
