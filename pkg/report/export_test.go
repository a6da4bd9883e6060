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
	"context"
	"fmt"
	"math"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/header"
	"github.com/sirius-ms/sirius-go/pkg/mock"
	"github.com/sirius-ms/sirius-go/pkg/oci"
	"github.com/sirius-ms/sirius-go/pkg/serializer"
	"github.com/sirius-ms/sirius-go/pkg/server"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
)

// newProject starts a mock service holding one project with n features.
func newProject(t *testing.T, n int) *sirius.Client {
	t.Helper()
	svc := mock.New(mock.WithStore(mock.NewStore(t.TempDir())))
	ts := httptest.NewServer(server.New(server.WithHandler(svc.Handlers())).Handler())
	t.Cleanup(ts.Close)

	c, err := sirius.NewClient(ts.URL)
	require.NoError(t, err)

	ctx := context.Background()
	_, _, err = c.Projects.CreateProjectSpace(ctx, "study", nil)
	require.NoError(t, err)

	imports := make([]sirius.FeatureImport, n)
	for i := range imports {
		imports[i] = sirius.FeatureImport{
			Name:    ptr.To(fmt.Sprintf("feature-%02d", i)),
			IonMass: 100 + float64(i),
			Charge:  1,
			Ms2Spectra: []sirius.BasicSpectrum{
				{Peaks: []sirius.SimplePeak{{MZ: 50, Intensity: 1}}},
			},
		}
	}
	_, _, err = c.Features.AddAlignedFeatures(ctx, "study", imports, nil)
	require.NoError(t, err)

	_, _, err = c.Jobs.StartJob(ctx, "study", &sirius.JobSubmission{
		FormulaIDParams: &sirius.FormulaSearch{Enabled: ptr.To(true)},
	})
	require.NoError(t, err)
	return c
}

func TestExport(t *testing.T) {
	c := newProject(t, 5)
	dir := filepath.Join(t.TempDir(), "out")

	res, err := Export(context.Background(), c, Options{
		ProjectID:   "study",
		OutputDir:   dir,
		Format:      serializer.FormatYAML,
		PageSize:    2,
		Concurrency: 2,
		Charges:     []int32{1, -1},
		Annotations: true,
		ServerInfo:  true,
		Version:     "v1.2.3",
	})
	require.NoError(t, err)

	assert.Equal(t, dir, res.Dir)
	assert.Equal(t, []string{
		"summary.yaml",
		"canopus-cf--1.csv", "canopus-cf-1.csv",
		"canopus-npc--1.csv", "canopus-npc-1.csv",
		"fingerid--1.csv", "fingerid-1.csv",
	}, res.Files)
	for _, f := range res.Files {
		assert.FileExists(t, filepath.Join(dir, f))
	}
	assert.Nil(t, res.Pushed)

	rep := res.Report
	assert.Equal(t, header.KindProjectReport, rep.Kind)
	assert.Equal(t, "v1.2.3", rep.Metadata[header.MetadataVersion])
	assert.Equal(t, "study", rep.Project.ProjectID)
	require.NotNil(t, rep.Server)
	assert.Equal(t, mock.DefaultVersion, rep.Server.SiriusVersion)

	require.Len(t, rep.Features, 5)
	for i, f := range rep.Features {
		assert.Equal(t, fmt.Sprintf("feature-%02d", i), f.Name, "page order is kept")
		assert.True(t, f.HasMsMs)
		require.NotNil(t, f.ComputedTools)
		assert.True(t, f.ComputedTools.FormulaSearch)
		assert.Nil(t, f.Annotation, "mock computes no annotations")
	}

	require.Len(t, rep.Jobs, 1)
	assert.Equal(t, "compute", rep.Jobs[0].Command)
	assert.Equal(t, string(sirius.JobStateDone), rep.Jobs[0].State)

	require.Len(t, rep.Sections, 6)
	assert.Equal(t, "CANOPUS ClassyFire (charge -1)", rep.Sections[0].Title)

	r, err := serializer.NewFileReader(serializer.FormatYAML, filepath.Join(dir, "summary.yaml"))
	require.NoError(t, err)
	defer r.Close()
	var decoded Report
	require.NoError(t, r.Deserialize(&decoded))
	assert.Equal(t, header.KindProjectReport, decoded.Kind)
	assert.Len(t, decoded.Features, 5)

	csv, err := os.ReadFile(filepath.Join(dir, "fingerid-1.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csv), "alignedFeatureId")
}

func TestExport_EmptyProject(t *testing.T) {
	c := newProject(t, 0)
	res, err := Export(context.Background(), c, Options{ProjectID: "study", OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, []string{"summary.json"}, res.Files)
	assert.Empty(t, res.Report.Features)
	assert.Nil(t, res.Report.Server)
}

func TestExport_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing project", Options{OutputDir: "x"}},
		{"missing dir", Options{ProjectID: "p"}},
		{"table format", Options{ProjectID: "p", OutputDir: "x", Format: serializer.FormatTable}},
		{"zero charge", Options{ProjectID: "p", OutputDir: "x", Charges: []int32{0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Export(context.Background(), nil, tt.opts)
			var se *apperrors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, se.Code)
		})
	}
}

func TestExport_UnknownProject(t *testing.T) {
	c := newProject(t, 0)
	_, err := Export(context.Background(), c, Options{ProjectID: "other", OutputDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get project other")
}

func TestExport_PushRequiresTag(t *testing.T) {
	c := newProject(t, 1)
	dir := t.TempDir()
	ref, err := oci.ParseOutputTarget("oci://localhost:5000/reports/study")
	require.NoError(t, err)

	_, err = Export(context.Background(), c, Options{ProjectID: "study", OutputDir: dir, Target: ref})
	require.Error(t, err)
	assert.FileExists(t, filepath.Join(dir, "summary.json"), "files are written before the push")
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name     string
		meta     sirius.PageMetadata
		size     int32
		want     int32
		wantCode apperrors.ErrorCode
	}{
		{"consistent", sirius.PageMetadata{TotalPages: 3, TotalElements: 250}, 100, 3, ""},
		{"empty", sirius.PageMetadata{TotalPages: 0, TotalElements: 0}, 100, 0, ""},
		{"pages bounded by elements", sirius.PageMetadata{TotalPages: math.MaxInt64, TotalElements: 250}, 100, 3, ""},
		{"fewer pages than elements imply", sirius.PageMetadata{TotalPages: 2, TotalElements: 250}, 100, 2, ""},
		{"beyond int32", sirius.PageMetadata{TotalPages: 1 << 40, TotalElements: 1 << 50}, 100, 0, apperrors.ErrCodeInternal},
		{"negative", sirius.PageMetadata{TotalPages: -4, TotalElements: 10}, 100, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pageCount(&tt.meta, tt.size)
			if tt.wantCode != "" {
				var se *apperrors.StructuredError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, tt.wantCode, se.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSectionTitle(t *testing.T) {
	tests := []struct {
		name   string
		charge int32
		want   string
	}{
		{"fingerid", 1, "CSI:FingerID (charge +1)"},
		{"canopus-npc", -1, "CANOPUS NPC (charge -1)"},
		{"custom-table", 2, "Custom Table (charge +2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sectionTitle(tt.name, tt.charge))
		})
	}
}

func TestSummarizeAnnotations(t *testing.T) {
	assert.Nil(t, summarizeAnnotations(nil))
	assert.Nil(t, summarizeAnnotations(&sirius.FeatureAnnotations{}))

	got := summarizeAnnotations(&sirius.FeatureAnnotations{
		FormulaAnnotation: &sirius.FormulaCandidate{MolecularFormula: ptr.To("C15H10O6"), Adduct: ptr.To("[M+H]+")},
		StructureAnnotation: &sirius.StructureCandidateScored{
			InchiKey:      "IYRMWMYZSQPJKC-UHFFFAOYSA-N",
			StructureName: ptr.To("Kaempferol"),
		},
		CompoundClassAnnotation: &sirius.CompoundClasses{
			NPCClass: &sirius.CompoundClass{Name: ptr.To("Flavonols")},
			ClassyFireLineage: []sirius.CompoundClass{
				{Name: ptr.To("Organic compounds")},
				{Name: ptr.To("Flavones")},
			},
		},
		ConfidenceExactMatch: ptr.To(0.62),
	})
	require.NotNil(t, got)
	assert.Equal(t, "C15H10O6", got.MolecularFormula)
	assert.Equal(t, "[M+H]+", got.Adduct)
	assert.Equal(t, "Kaempferol", got.StructureName)
	assert.Equal(t, "Flavones", got.CompoundClass)
	assert.InDelta(t, 0.62, *got.Confidence, 1e-9)

	npcOnly := summarizeAnnotations(&sirius.FeatureAnnotations{
		CompoundClassAnnotation: &sirius.CompoundClasses{NPCClass: &sirius.CompoundClass{Name: ptr.To("Flavonols")}},
	})
	require.NotNil(t, npcOnly)
	assert.Equal(t, "Flavonols", npcOnly.CompoundClass)
}
