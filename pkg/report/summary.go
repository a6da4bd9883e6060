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

package report

import (
	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"k8s.io/utils/ptr"
)

func summarizeFeature(f *sirius.AlignedFeature) FeatureSummary {
	s := FeatureSummary{
		AlignedFeatureID: f.AlignedFeatureID,
		Name:             ptr.Deref(f.Name, ""),
		IonMass:          f.IonMass,
		Charge:           f.Charge,
		RtApexSeconds:    f.RtApexSeconds,
		HasMsMs:          ptr.Deref(f.HasMsMs, false),
		ComputedTools:    f.ComputedTools,
	}
	if f.Quality != nil {
		s.Quality = string(*f.Quality)
	}
	return s
}

// summarizeAnnotations flattens the top hits. Nil is returned when nothing
// was annotated.
func summarizeAnnotations(a *sirius.FeatureAnnotations) *AnnotationSummary {
	if a == nil {
		return nil
	}
	var s AnnotationSummary
	if f := a.FormulaAnnotation; f != nil {
		s.MolecularFormula = ptr.Deref(f.MolecularFormula, "")
		s.Adduct = ptr.Deref(f.Adduct, "")
	}
	if st := a.StructureAnnotation; st != nil {
		s.InchiKey = st.InchiKey
		s.StructureName = ptr.Deref(st.StructureName, "")
		s.Smiles = ptr.Deref(st.Smiles, "")
	}
	if cc := a.CompoundClassAnnotation; cc != nil {
		s.CompoundClass = mostSpecificClass(cc)
	}
	s.Confidence = a.ConfidenceExactMatch
	if s == (AnnotationSummary{}) {
		return nil
	}
	return &s
}

// mostSpecificClass prefers the deepest ClassyFire class and falls back to
// the NPC class.
func mostSpecificClass(cc *sirius.CompoundClasses) string {
	if n := len(cc.ClassyFireLineage); n > 0 {
		return ptr.Deref(cc.ClassyFireLineage[n-1].Name, "")
	}
	if cc.NPCClass != nil {
		return ptr.Deref(cc.NPCClass.Name, "")
	}
	return ""
}

func summarizeJobs(jobs []sirius.Job) []JobSummary {
	out := make([]JobSummary, 0, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		s := JobSummary{
			ID:      j.ID,
			Command: ptr.Deref(j.Command, ""),
			State:   string(j.State()),
		}
		if j.JobEffect != nil {
			s.Effect = string(*j.JobEffect)
		}
		out = append(out, s)
	}
	return out
}
