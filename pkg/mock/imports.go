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
	"bufio"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"k8s.io/utils/ptr"
)

// parsePeakList reads the header and peaks of a SIRIUS .ms file. Other
// formats only contribute their file name. Peak lines in ms1 sections go
// to the MS1 spectrum, all other peak lines to one MS/MS spectrum.
func parsePeakList(name string, r io.Reader) (sirius.FeatureImport, error) {
	fi := sirius.FeatureImport{
		Name:   ptr.To(strings.TrimSuffix(path.Base(name), path.Ext(name))),
		Charge: 1,
	}
	if !strings.EqualFold(path.Ext(name), ".ms") {
		return fi, nil
	}

	var ms1, ms2 []sirius.SimplePeak
	section := ""
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasPrefix(text, ">") {
			key, value, _ := strings.Cut(strings.TrimPrefix(text, ">"), " ")
			value = strings.TrimSpace(value)
			switch strings.ToLower(key) {
			case "compound":
				if value != "" {
					fi.Name = ptr.To(value)
				}
			case "parentmass":
				m, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fi, badRequest(fmt.Sprintf("%s:%d: invalid parentmass '%s'.", name, line, value))
				}
				fi.IonMass = m
			case "charge":
				c, err := strconv.ParseInt(strings.TrimSuffix(value, "+"), 10, 32)
				if err != nil {
					return fi, badRequest(fmt.Sprintf("%s:%d: invalid charge '%s'.", name, line, value))
				}
				fi.Charge = int32(c)
			case "ionization":
				fi.DetectedAdducts = []string{value}
			case "ms1", "ms1peaks", "ms1merged":
				section = "ms1"
			case "ms2", "collision", "ms2peaks", "ms2merged":
				section = "ms2"
			}
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return fi, badRequest(fmt.Sprintf("%s:%d: expected 'mz intensity'.", name, line))
		}
		mz, err1 := strconv.ParseFloat(fields[0], 64)
		in, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return fi, badRequest(fmt.Sprintf("%s:%d: invalid peak '%s'.", name, line, text))
		}
		if section == "ms1" {
			ms1 = append(ms1, sirius.SimplePeak{MZ: mz, Intensity: in})
		} else {
			ms2 = append(ms2, sirius.SimplePeak{MZ: mz, Intensity: in})
		}
	}
	if err := sc.Err(); err != nil {
		return fi, badRequest(fmt.Sprintf("%s: %v", name, err))
	}

	if len(ms1) > 0 {
		fi.MergedMs1 = &sirius.BasicSpectrum{MsLevel: ptr.To(int32(1)), Peaks: ms1}
	}
	if len(ms2) > 0 {
		spec := sirius.BasicSpectrum{MsLevel: ptr.To(int32(2)), Peaks: ms2}
		if fi.IonMass > 0 {
			spec.PrecursorMZ = ptr.To(fi.IonMass)
		}
		fi.Ms2Spectra = []sirius.BasicSpectrum{spec}
	}
	return fi, nil
}

// ImportFeatures adds the parsed features and records a finished import
// job for them.
func (s *Store) ImportFeatures(projectID string, in []sirius.FeatureImport, allowMs1Only bool) (sirius.ImportResult, *sirius.Job, error) {
	if !allowMs1Only {
		for _, fi := range in {
			if len(fi.Ms2Spectra) == 0 && (fi.MergedMs1 != nil || len(fi.Ms1Spectra) > 0) {
				return sirius.ImportResult{}, nil, badRequest(fmt.Sprintf("Feature '%s' has no MS/MS data and MS1 only data is not allowed.", ptr.Deref(fi.Name, "")))
			}
		}
	}
	added, err := s.AddFeatures(projectID, in)
	if err != nil {
		return sirius.ImportResult{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.project(projectID)
	if err != nil {
		return sirius.ImportResult{}, nil, err
	}
	job := s.addJob(p, sirius.JobEffectImport, commandImport, added)
	return sirius.ImportResult{
		AffectedCompoundIDs:       job.AffectedCompoundIDs,
		AffectedAlignedFeatureIDs: job.AffectedAlignedFeatureIDs,
	}, job, nil
}
