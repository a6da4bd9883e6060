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
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirius-ms/sirius-go/pkg/transport"
)

func TestRequestShapes(t *testing.T) {
	ctx := context.Background()
	page := &PageRequest{Page: ptr(int32(1)), Size: ptr(int32(20)), Sort: []string{"ionMass,desc", "name,asc"}}
	filter := &SpectralLibraryMatchFilter{MinSharedPeaks: ptr(int32(4)), MinSimilarity: ptr(0.7), InchiKey: ptr("KEY")}

	tests := []struct {
		name string
		call   func(c *Client) error
		method string
		path   string
		query  string
		accept []string
	}{
		{
			name:   "health",
			call:   func(c *Client) error { _, _, err := c.Actuator.Health(ctx); return err },
			method: http.MethodGet,
			path:   "/actuator/health",
			accept: acceptActuator,
		},
		{
			name:   "shutdown",
			call:   func(c *Client) error { _, err := c.Actuator.Shutdown(ctx); return err },
			method: http.MethodPost,
			path:   "/actuator/shutdown",
			accept: acceptActuator,
		},
		{
			name:   "info",
			call:   func(c *Client) error { _, _, err := c.Info.GetInfo(ctx, &InfoOptions{ServerInfo: ptr(true)}); return err },
			method: http.MethodGet,
			path:   "/api/info",
			query:  "serverInfo=true",
		},
		{
			name:   "list projects",
			call:   func(c *Client) error { _, _, err := c.Projects.GetProjectSpaces(ctx); return err },
			method: http.MethodGet,
			path:   "/api/projects",
		},
		{
			name: "create project",
			call: func(c *Client) error {
				_, _, err := c.Projects.CreateProjectSpace(ctx, "p1", ptr("/data/p1.sirius"), ProjectInfoOptFieldSizeInformation)
				return err
			},
			method: http.MethodPost,
			path:   "/api/projects/p1",
			query:  "optFields=sizeInformation&pathToProject=%2Fdata%2Fp1.sirius",
		},
		{
			name:   "open project",
			call:   func(c *Client) error { _, _, err := c.Projects.OpenProjectSpace(ctx, "p1", nil); return err },
			method: http.MethodPut,
			path:   "/api/projects/p1",
		},
		{
			name:   "close project",
			call:   func(c *Client) error { _, err := c.Projects.CloseProjectSpace(ctx, "p1"); return err },
			method: http.MethodDelete,
			path:   "/api/projects/p1",
		},
		{
			name: "copy project",
			call: func(c *Client) error {
				_, _, err := c.Projects.CopyProjectSpace(ctx, "p1", "/data/copy", ptr("p2"))
				return err
			},
			method: http.MethodPut,
			path:   "/api/projects/p1/copy",
			query:  "copyProjectId=p2&pathToCopiedProject=%2Fdata%2Fcopy",
		},
		{
			name:   "fingerid data",
			call:   func(c *Client) error { _, _, err := c.Projects.GetFingerIDData(ctx, "p1", 1); return err },
			method: http.MethodGet,
			path:   "/api/projects/p1/fingerid-data",
			query:  "charge=1",
			accept: acceptCSV,
		},
		{
			name:   "classyfire data",
			call:   func(c *Client) error { _, _, err := c.Projects.GetCanopusClassyFireData(ctx, "p1", -1); return err },
			method: http.MethodGet,
			path:   "/api/projects/p1/cf-data",
			query:  "charge=-1",
			accept: acceptCSV,
		},
		{
			name:   "npc data",
			call:   func(c *Client) error { _, _, err := c.Projects.GetCanopusNpcData(ctx, "p1", 1); return err },
			method: http.MethodGet,
			path:   "/api/projects/p1/npc-data",
			query:  "charge=1",
			accept: acceptCSV,
		},
		{
			name: "import preprocessed as job",
			call: func(c *Client) error {
				_, _, err := c.Projects.ImportPreprocessedDataAsJob(ctx, "p1", []InputFile{{Name: "a.mgf", Content: strings.NewReader("x")}},
					&PreprocessedImportOptions{IgnoreFormulas: ptr(true)}, JobOptFieldProgress)
				return err
			},
			method: http.MethodPost,
			path:   "/api/projects/p1/import/preprocessed-data-job",
			query:  "ignoreFormulas=true&optFields=progress",
		},
		{
			name: "get aligned feature without optFields",
			call: func(c *Client) error {
				_, _, err := c.Features.GetAlignedFeature(ctx, "proj1", "feat1")
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/proj1/aligned-features/feat1",
		},
		{
			name: "aligned features paged",
			call: func(c *Client) error {
				_, _, err := c.Features.GetAlignedFeaturesPaged(ctx, "p1", page, AlignedFeatureOptFieldMsData, AlignedFeatureOptFieldTopAnnotations)
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/page",
			query:  "optFields=msData&optFields=topAnnotations&page=1&size=20&sort=ionMass%2Cdesc&sort=name%2Casc",
		},
		{
			name: "add aligned features",
			call: func(c *Client) error {
				p := InstrumentProfileOrbitrap
				_, _, err := c.Features.AddAlignedFeatures(ctx, "p1", []FeatureImport{{IonMass: 301.1, Charge: 1}}, &p)
				return err
			},
			method: http.MethodPost,
			path:   "/api/projects/p1/aligned-features",
			query:  "profile=ORBITRAP",
		},
		{
			name:   "delete aligned features",
			call:   func(c *Client) error { _, err := c.Features.DeleteAlignedFeatures(ctx, "p1", []string{"f1"}); return err },
			method: http.MethodPut,
			path:   "/api/projects/p1/aligned-features/delete",
		},
		{
			name:   "traces",
			call:   func(c *Client) error { _, _, err := c.Features.GetTraces(ctx, "p1", "f1", ptr(true)); return err },
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/traces",
			query:  "includeAll=true",
		},
		{
			name: "quantification",
			call: func(c *Client) error {
				m := QuantMeasureAreaUnderCurve
				_, _, err := c.Features.GetQuantification(ctx, "p1", "f1", &m)
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/quantification",
			query:  "type=AREA_UNDER_CURVE",
		},
		{
			name:   "quant table row",
			call:   func(c *Client) error { _, _, err := c.Features.GetQuantTableRow(ctx, "p1", "f1", nil); return err },
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/quant-table-row",
		},
		{
			name: "formula candidate",
			call: func(c *Client) error {
				_, _, err := c.Features.GetFormulaCandidate(ctx, "p1", "f1", "fc1", FormulaCandidateOptFieldFragmentationTree)
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/formulas/fc1",
			query:  "optFields=fragmentationTree",
		},
		{
			name:   "frag tree",
			call:   func(c *Client) error { _, _, err := c.Features.GetFragTree(ctx, "p1", "f1", "fc1"); return err },
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/formulas/fc1/fragtree",
		},
		{
			name: "formula annotated spectrum",
			call: func(c *Client) error {
				_, _, err := c.Features.GetFormulaAnnotatedSpectrum(ctx, "p1", "f1", "fc1", ptr(int32(2)))
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/formulas/fc1/annotated-spectrum",
			query:  "spectrumIndex=2",
		},
		{
			name:   "best compound classes",
			call:   func(c *Client) error { _, _, err := c.Features.GetBestMatchingCompoundClasses(ctx, "p1", "f1", "fc1"); return err },
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/formulas/fc1/best-compound-classes",
		},
		{
			name: "structures by formula paged",
			call: func(c *Client) error {
				_, _, err := c.Features.GetStructureCandidatesByFormulaPaged(ctx, "p1", "f1", "fc1", &PageRequest{Size: ptr(int32(5))},
					StructureCandidateOptFieldDBLinks)
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/formulas/fc1/structures/page",
			query:  "optFields=dbLinks&size=5",
		},
		{
			name: "denovo structures",
			call: func(c *Client) error {
				_, _, err := c.Features.GetDeNovoStructureCandidates(ctx, "p1", "f1")
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/denovo-structures",
		},
		{
			name: "structure annotated msms",
			call: func(c *Client) error {
				_, _, err := c.Features.GetStructureAnnotatedMsMsData(ctx, "p1", "f1", "fc1", "INCHI-KEY")
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/formulas/fc1/structures/INCHI-KEY/annotated-msmsdata",
		},
		{
			name: "library matches",
			call: func(c *Client) error {
				_, _, err := c.Features.GetSpectralLibraryMatches(ctx, "p1", "f1", filter, SpectralLibraryMatchOptFieldReferenceSpectrum)
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/spectral-library-matches",
			query:  "inchiKey=KEY&minSharedPeaks=4&minSimilarity=0.7&optFields=referenceSpectrum",
		},
		{
			name: "library matches summary",
			call: func(c *Client) error {
				_, _, err := c.Features.GetSpectralLibraryMatchesSummary(ctx, "p1", "f1", nil)
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/spectral-library-matches/summary",
		},
		{
			name: "library match",
			call: func(c *Client) error {
				_, _, err := c.Features.GetSpectralLibraryMatch(ctx, "p1", "f1", "m1")
				return err
			},
			method: http.MethodGet,
			path:   "/api/projects/p1/aligned-features/f1/spectral-library-matches/m1",
		},
		{
			name:   "jobs paged",
			call:   func(c *Client) error { _, _, err := c.Jobs.GetJobsPaged(ctx, "p1", &PageRequest{Page: ptr(int32(0))}); return err },
			method: http.MethodGet,
			path:   "/api/projects/p1/jobs/page",
			query:  "page=0",
		},
		{
			name: "start job from config",
			call: func(c *Client) error {
				_, _, err := c.Jobs.StartJobFromConfig(ctx, "p1", "fast", []string{"f1"}, ptr(false), JobOptFieldCommand)
				return err
			},
			method: http.MethodPost,
			path:   "/api/projects/p1/jobs/from-config",
			query:  "jobConfigName=fast&optFields=command&recompute=false",
		},
		{
			name: "delete job",
			call: func(c *Client) error {
				_, err := c.Jobs.DeleteJob(ctx, "p1", "j1", &DeleteJobOptions{CancelIfRunning: ptr(true), AwaitDeletion: ptr(true)})
				return err
			},
			method: http.MethodDelete,
			path:   "/api/projects/p1/jobs/j1",
			query:  "awaitDeletion=true&cancelIfRunning=true",
		},
		{
			name:   "delete jobs",
			call:   func(c *Client) error { _, err := c.Jobs.DeleteJobs(ctx, "p1", nil); return err },
			method: http.MethodDelete,
			path:   "/api/projects/p1/jobs",
		},
		{
			name:   "job config names",
			call:   func(c *Client) error { _, _, err := c.Jobs.GetJobConfigNames(ctx); return err },
			method: http.MethodGet,
			path:   "/api/job-config-names",
		},
		{
			name: "save job config",
			call: func(c *Client) error {
				_, _, err := c.Jobs.SaveJobConfig(ctx, "fast config", &JobSubmission{}, &SaveJobConfigOptions{OverrideExisting: ptr(true)})
				return err
			},
			method: http.MethodPost,
			path:   "/api/job-configs/fast%20config",
			query:  "overrideExisting=true",
		},
		{
			name: "default job config",
			call: func(c *Client) error {
				_, _, err := c.Jobs.GetDefaultJobConfig(ctx, &DefaultJobConfigOptions{IncludeConfigMap: ptr(true)})
				return err
			},
			method: http.MethodGet,
			path:   "/api/default-job-config",
			query:  "includeConfigMap=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, inv := newRecordingClient()
			require.NoError(t, tt.call(c))
			require.Equal(t, 1, inv.count())

			req := inv.last(t)
			assert.Equal(t, tt.method, req.Method)

			path, missing := transport.ExpandPath(req.Path, req.PathParams)
			require.Empty(t, missing)
			assert.Equal(t, tt.path, path)

			q := req.Query
			if q == nil {
				q = url.Values{}
			}
			assert.Equal(t, tt.query, q.Encode())

			if tt.accept != nil {
				assert.Equal(t, tt.accept, req.Accept)
			}
		})
	}
}

func TestGetAlignedFeature_OverHTTP(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/projects/proj1/aligned-features/feat1", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"alignedFeatureId":"feat1","ionMass":301.14,"charge":1,"quality":"GOOD"}`))
	})

	f, resp, err := c.Features.GetAlignedFeature(context.Background(), "proj1", "feat1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "feat1", f.AlignedFeatureID)
	assert.InDelta(t, 301.14, f.IonMass, 1e-9)
	require.NotNil(t, f.Quality)
	assert.Equal(t, DataQualityGood, *f.Quality)
}

func TestOptFieldsRepeated_OverHTTP(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"statistics", "compoundClasses"}, r.URL.Query()["optFields"])
		assert.NotContains(t, r.URL.RawQuery, "statistics%2C")
		_, _ = w.Write([]byte(`[]`))
	})

	out, _, err := c.Features.GetFormulaCandidates(context.Background(), "p1", "f1",
		FormulaCandidateOptFieldStatistics, FormulaCandidateOptFieldCompoundClasses)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPagedFeatures_OverHTTP(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/projects/p1/aligned-features/page", r.URL.Path)
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "2", q.Get("size"))
		assert.Equal(t, []string{"rtApexSeconds,asc", "ionMass,desc"}, q["sort"])
		_, _ = w.Write([]byte(`{
			"content":[{"alignedFeatureId":"f5","ionMass":1,"charge":1},{"alignedFeatureId":"f6","ionMass":2,"charge":1}],
			"page":{"size":2,"number":2,"totalElements":7,"totalPages":4}
		}`))
	})

	page, _, err := c.Features.GetAlignedFeaturesPaged(context.Background(), "p1", &PageRequest{
		Page: ptr(int32(2)),
		Size: ptr(int32(2)),
		Sort: []string{"rtApexSeconds,asc", "ionMass,desc"},
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "f5", page.Content[0].AlignedFeatureID)
	require.NotNil(t, page.Page)
	assert.Equal(t, int64(7), page.Page.TotalElements)
	assert.Equal(t, int64(4), page.Page.TotalPages)
	assert.Equal(t, int64(2), page.Page.Number)
	assert.True(t, page.HasNext())
}

func TestStartJob_SendsJSONBody(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects/p1/jobs", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var sub JobSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
		assert.Equal(t, []string{"f1", "f2"}, sub.AlignedFeatureIDs)
		require.NotNil(t, sub.FormulaIDParams)
		assert.Equal(t, InstrumentProfileQTOF, *sub.FormulaIDParams.Profile)

		_, _ = w.Write([]byte(`{"id":"7","progress":{"state":"QUEUED"}}`))
	})

	profile := InstrumentProfileQTOF
	job, _, err := c.Jobs.StartJob(context.Background(), "p1", &JobSubmission{
		AlignedFeatureIDs: []string{"f1", "f2"},
		FormulaIDParams:   &FormulaSearch{Enabled: ptr(true), Profile: &profile},
	})
	require.NoError(t, err)
	assert.Equal(t, "7", job.ID)
	assert.Equal(t, JobStateQueued, job.State())
}

func TestFingerIDData_ReturnsCSV(t *testing.T) {
	c, _ := newRecordingClient("absoluteIndex\tid\n0\t1\n")
	csv, _, err := c.Projects.GetFingerIDData(context.Background(), "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, "absoluteIndex\tid\n0\t1\n", csv)
}

func TestHasJobs(t *testing.T) {
	c, inv := newRecordingClient("true")
	has, _, err := c.Jobs.HasJobs(context.Background(), "p1", ptr(true))
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "includeFinished=true", inv.last(t).Query.Encode())
}

func TestServerErrorSurfaced(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"error":"Not Found","message":"project 'nope' not found","path":"/api/projects/nope"}`))
	})

	_, resp, err := c.Projects.GetProjectSpace(context.Background(), "nope")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	apiErr, ok := transport.AsAPIError(err)
	require.True(t, ok)
	assert.False(t, apiErr.Local())
	assert.Equal(t, "getProjectSpace", apiErr.Operation)
	assert.Equal(t, "project 'nope' not found", apiErr.Message)
	assert.Contains(t, string(apiErr.Body), "Not Found")
}
