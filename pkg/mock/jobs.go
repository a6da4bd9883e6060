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
	"slices"

	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"k8s.io/utils/ptr"
)

const (
	commandImport  = "import"
	commandCompute = "compute"
)

// jobView applies job optFields. Without fields only the progress is
// returned, matching the server default.
func jobView(j *sirius.Job, fields []string) sirius.Job {
	if len(fields) == 0 {
		fields = []string{string(sirius.JobOptFieldProgress)}
	}
	out := sirius.Job{ID: j.ID, JobEffect: j.JobEffect}
	if slices.Contains(fields, string(sirius.JobOptFieldCommand)) {
		out.Command = j.Command
	}
	if slices.Contains(fields, string(sirius.JobOptFieldProgress)) {
		out.Progress = j.Progress
	}
	if slices.Contains(fields, string(sirius.JobOptFieldAffectedIDs)) {
		out.AffectedCompoundIDs = j.AffectedCompoundIDs
		out.AffectedAlignedFeatureIDs = j.AffectedAlignedFeatureIDs
	}
	return out
}

// addJob records a job that has already finished. The mock runs no tools,
// so every job is DONE when it is returned.
func (s *Store) addJob(p *project, effect sirius.JobEffect, command string, features []*sirius.AlignedFeature) *sirius.Job {
	j := &sirius.Job{
		ID:        s.newID(),
		Command:   ptr.To(command),
		JobEffect: ptr.To(effect),
		Progress: &sirius.JobProgress{
			Indeterminate:   ptr.To(false),
			State:           sirius.JobStateDone,
			CurrentProgress: ptr.To(int64(len(features))),
			MaxProgress:     ptr.To(int64(len(features))),
			Message:         ptr.To(fmt.Sprintf("Finished %s of %d feature(s).", command, len(features))),
		},
	}
	for _, f := range features {
		j.AffectedAlignedFeatureIDs = append(j.AffectedAlignedFeatureIDs, f.AlignedFeatureID)
		if f.CompoundID != nil {
			j.AffectedCompoundIDs = append(j.AffectedCompoundIDs, *f.CompoundID)
		}
	}
	p.jobs[j.ID] = j
	p.jobOrder = append(p.jobOrder, j.ID)
	return j
}

// StartJob records a computation on the selected features. No selection
// means all features of the project.
func (s *Store) StartJob(projectID string, sub sirius.JobSubmission, fields []string) (sirius.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.project(projectID)
	if err != nil {
		return sirius.Job{}, err
	}
	ids := sub.AlignedFeatureIDs
	if len(ids) == 0 && len(sub.CompoundIDs) == 0 {
		ids = slices.Clone(p.featureOrder)
	}
	selected := make([]*sirius.AlignedFeature, 0, len(ids))
	for _, id := range ids {
		f, ok := p.features[id]
		if !ok {
			return sirius.Job{}, notFound("AlignedFeature", id)
		}
		selected = append(selected, f)
	}
	for _, cid := range sub.CompoundIDs {
		matched := false
		for _, fid := range p.featureOrder {
			if f := p.features[fid]; f.CompoundID != nil && *f.CompoundID == cid {
				selected = append(selected, f)
				matched = true
			}
		}
		if !matched {
			return sirius.Job{}, notFound("Compound", cid)
		}
	}

	tools := computedTools(sub)
	for _, f := range selected {
		f.ComputedTools = ptr.To(tools)
	}
	return jobView(s.addJob(p, sirius.JobEffectComputation, commandCompute, selected), fields), nil
}

func enabled(b *bool) bool { return b != nil && *b }

// computedTools reports which tools a submission enables. Tools without
// parameters in the submission count as disabled.
func computedTools(sub sirius.JobSubmission) sirius.ComputedSubtools {
	var t sirius.ComputedSubtools
	if sub.SpectraSearchParams != nil {
		t.LibrarySearch = enabled(sub.SpectraSearchParams.Enabled)
	}
	if sub.FormulaIDParams != nil {
		t.FormulaSearch = enabled(sub.FormulaIDParams.Enabled)
	}
	if sub.ZodiacParams != nil {
		t.Zodiac = enabled(sub.ZodiacParams.Enabled)
	}
	if sub.FingerprintPredictionParams != nil {
		t.Fingerprint = enabled(sub.FingerprintPredictionParams.Enabled)
	}
	if sub.CanopusParams != nil {
		t.Canopus = enabled(sub.CanopusParams.Enabled)
	}
	if sub.StructureDBSearchParams != nil {
		t.StructureSearch = enabled(sub.StructureDBSearchParams.Enabled)
	}
	if sub.MsNovelistParams != nil {
		t.DeNovoSearch = enabled(sub.MsNovelistParams.Enabled)
	}
	return t
}

// ListJobs returns the jobs of a project in submission order.
func (s *Store) ListJobs(projectID string, fields []string) ([]sirius.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.project(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]sirius.Job, 0, len(p.jobOrder))
	for _, id := range p.jobOrder {
		out = append(out, jobView(p.jobs[id], fields))
	}
	return out, nil
}

// GetJob returns one job.
func (s *Store) GetJob(projectID, jobID string, fields []string) (sirius.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.project(projectID)
	if err != nil {
		return sirius.Job{}, err
	}
	j, ok := p.jobs[jobID]
	if !ok {
		return sirius.Job{}, notFound("Job", jobID)
	}
	return jobView(j, fields), nil
}

// DeleteJob removes a job.
func (s *Store) DeleteJob(projectID, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.project(projectID)
	if err != nil {
		return err
	}
	if _, ok := p.jobs[jobID]; !ok {
		return notFound("Job", jobID)
	}
	delete(p.jobs, jobID)
	p.jobOrder = slices.DeleteFunc(p.jobOrder, func(id string) bool { return id == jobID })
	return nil
}

// DeleteJobs removes all jobs of a project.
func (s *Store) DeleteJobs(projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.project(projectID)
	if err != nil {
		return err
	}
	clear(p.jobs)
	p.jobOrder = nil
	return nil
}

// HasJobs reports whether the project has jobs. Finished jobs only count
// when includeFinished is set.
func (s *Store) HasJobs(projectID string, includeFinished bool) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.project(projectID)
	if err != nil {
		return false, err
	}
	for _, j := range p.jobs {
		if includeFinished || !j.State().IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}
