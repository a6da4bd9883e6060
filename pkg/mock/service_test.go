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
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirius-ms/sirius-go/pkg/server"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"github.com/sirius-ms/sirius-go/pkg/transport"
	"k8s.io/utils/ptr"
)

func newTestClient(t *testing.T, opts ...Option) (*sirius.Client, *Service) {
	t.Helper()
	svc := New(append([]Option{WithStore(NewStore(t.TempDir()))}, opts...)...)
	srv := server.New(server.WithName("sirius-mock"), server.WithHandler(svc.Handlers()))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := sirius.NewClient(ts.URL)
	require.NoError(t, err)
	return c, svc
}

func TestService_HealthAndInfo(t *testing.T) {
	c, _ := newTestClient(t, WithVersion("6.2.1"))
	ctx := context.Background()

	h, _, err := c.Actuator.Health(ctx)
	require.NoError(t, err)
	assert.True(t, h.IsUp())

	info, _, err := c.Info.GetInfo(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "6.2.1", *info.SiriusVersion)
	assert.NotEmpty(t, info.AvailableILPSolvers)

	info, _, err = c.Info.GetInfo(ctx, &sirius.InfoOptions{ServerInfo: ptr.To(false)})
	require.NoError(t, err)
	assert.Empty(t, info.AvailableILPSolvers)
}

func TestService_Shutdown(t *testing.T) {
	done := make(chan struct{})
	var calls atomic.Int32
	c, _ := newTestClient(t, WithShutdown(func() {
		calls.Add(1)
		close(done)
	}))

	resp, err := c.Actuator.Shutdown(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown hook not called")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestService_ProjectLifecycle(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, _, err := c.Projects.GetProjectSpace(ctx, "nope")
	require.Error(t, err)
	assert.True(t, transport.IsNotFound(err))
	apiErr, ok := transport.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Project with id 'nope' not found.", apiErr.Message)

	p, _, err := c.Projects.CreateProjectSpace(ctx, "study", nil)
	require.NoError(t, err)
	assert.Equal(t, "study", p.ProjectID)
	assert.True(t, strings.HasSuffix(p.Location, "study.sirius"))

	_, _, err = c.Projects.CreateProjectSpace(ctx, "study", nil)
	assert.Equal(t, http.StatusConflict, transport.StatusCode(err))

	p, _, err = c.Projects.OpenProjectSpace(ctx, "study", nil, sirius.ProjectInfoOptFieldSizeInformation)
	require.NoError(t, err)
	require.NotNil(t, p.NumOfFeatures)

	cp, _, err := c.Projects.CopyProjectSpace(ctx, "study", "/tmp/copy.sirius", ptr.To("copy"))
	require.NoError(t, err)
	assert.Equal(t, "copy", cp.ProjectID)

	all, _, err := c.Projects.GetProjectSpaces(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = c.Projects.CloseProjectSpace(ctx, "copy")
	require.NoError(t, err)
	_, err = c.Projects.CloseProjectSpace(ctx, "copy")
	assert.True(t, transport.IsNotFound(err))
}

func TestService_ImportAndFeatures(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	_, _, err := c.Projects.CreateProjectSpace(ctx, "p", nil)
	require.NoError(t, err)

	res, _, err := c.Projects.ImportPreprocessedData(ctx, "p", []sirius.InputFile{
		{Name: "kaempferol.ms", Content: strings.NewReader(sampleMS)},
		{Name: "other.mgf", Content: strings.NewReader("BEGIN IONS\nEND IONS\n")},
	}, nil)
	require.NoError(t, err)
	require.Len(t, res.AffectedAlignedFeatureIDs, 2)

	f, _, err := c.Features.GetAlignedFeature(ctx, "p", res.AffectedAlignedFeatureIDs[0], sirius.AlignedFeatureOptFieldMsData)
	require.NoError(t, err)
	assert.Equal(t, "Kaempferol", *f.Name)
	require.NotNil(t, f.MsData)
	assert.Len(t, f.MsData.Ms2Spectra, 1)

	ms, _, err := c.Features.GetMsData(ctx, "p", f.AlignedFeatureID)
	require.NoError(t, err)
	assert.NotNil(t, ms.MergedMs1)

	added, _, err := c.Features.AddAlignedFeatures(ctx, "p", []sirius.FeatureImport{
		{Name: ptr.To("manual"), IonMass: 150.5, Charge: 1},
	}, ptr.To(sirius.InstrumentProfileQTOF))
	require.NoError(t, err)
	require.Len(t, added, 1)

	page, _, err := c.Features.GetAlignedFeaturesPaged(ctx, "p", &sirius.PageRequest{
		Size: ptr.To(int32(2)),
		Sort: []string{"ionMass,desc"},
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(3), page.Page.TotalElements)
	assert.True(t, page.HasNext())
	assert.InDelta(t, 287.055, page.Content[0].IonMass, 1e-9)

	_, err = c.Features.DeleteAlignedFeatures(ctx, "p", []string{added[0].AlignedFeatureID})
	require.NoError(t, err)
	_, err = c.Features.DeleteAlignedFeature(ctx, "p", res.AffectedAlignedFeatureIDs[1])
	require.NoError(t, err)

	list, _, err := c.Features.GetAlignedFeatures(ctx, "p")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].MsData)

	_, _, err = c.Features.GetAlignedFeature(ctx, "p", added[0].AlignedFeatureID)
	assert.True(t, transport.IsNotFound(err))
}

func TestService_EmptyResults(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	_, _, err := c.Projects.CreateProjectSpace(ctx, "p", nil)
	require.NoError(t, err)
	added, _, err := c.Features.AddAlignedFeatures(ctx, "p", []sirius.FeatureImport{{IonMass: 100, Charge: 1}}, nil)
	require.NoError(t, err)
	fid := added[0].AlignedFeatureID

	formulas, _, err := c.Features.GetFormulaCandidates(ctx, "p", fid)
	require.NoError(t, err)
	assert.Empty(t, formulas)

	page, _, err := c.Features.GetFormulaCandidatesPaged(ctx, "p", fid, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.False(t, page.HasNext())

	structures, _, err := c.Features.GetStructureCandidates(ctx, "p", fid)
	require.NoError(t, err)
	assert.Empty(t, structures)

	matches, _, err := c.Features.GetSpectralLibraryMatches(ctx, "p", fid, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)

	summary, _, err := c.Features.GetSpectralLibraryMatchesSummary(ctx, "p", fid, nil)
	require.NoError(t, err)
	assert.Zero(t, summary.SpectralMatchCount)

	_, _, err = c.Features.GetFormulaCandidate(ctx, "p", fid, "f1")
	assert.True(t, transport.IsNotFound(err))
	_, _, err = c.Features.GetFragTree(ctx, "p", fid, "f1")
	assert.True(t, transport.IsNotFound(err))

	_, _, err = c.Features.GetFormulaCandidates(ctx, "p", "missing")
	assert.True(t, transport.IsNotFound(err))

	csv, _, err := c.Projects.GetFingerIDData(ctx, "p", 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(csv, "alignedFeatureId\t"))
}

func TestService_Jobs(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	_, _, err := c.Projects.CreateProjectSpace(ctx, "p", nil)
	require.NoError(t, err)
	added, _, err := c.Features.AddAlignedFeatures(ctx, "p", []sirius.FeatureImport{{IonMass: 100, Charge: 1}}, nil)
	require.NoError(t, err)

	def, _, err := c.Jobs.GetDefaultJobConfig(ctx, nil)
	require.NoError(t, err)
	def.AlignedFeatureIDs = []string{added[0].AlignedFeatureID}

	job, _, err := c.Jobs.StartJob(ctx, "p", def, sirius.JobOptFieldCommand, sirius.JobOptFieldProgress)
	require.NoError(t, err)
	assert.Equal(t, "compute", *job.Command)

	done, err := c.Jobs.WaitForJob(ctx, "p", job.ID, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, sirius.JobStateDone, done.State())

	has, _, err := c.Jobs.HasJobs(ctx, "p", ptr.To(true))
	require.NoError(t, err)
	assert.True(t, has)

	jobs, _, err := c.Jobs.GetJobsPaged(ctx, "p", &sirius.PageRequest{Size: ptr.To(int32(10))})
	require.NoError(t, err)
	assert.Len(t, jobs.Content, 1)

	_, err = c.Jobs.DeleteJob(ctx, "p", job.ID, nil)
	require.NoError(t, err)
	_, _, err = c.Jobs.GetJob(ctx, "p", job.ID)
	assert.True(t, transport.IsNotFound(err))

	_, _, err = c.Jobs.SaveJobConfig(ctx, "mine", def, nil)
	require.NoError(t, err)
	_, _, err = c.Jobs.SaveJobConfig(ctx, "mine", def, nil)
	assert.Equal(t, http.StatusConflict, transport.StatusCode(err))

	names, _, err := c.Jobs.GetJobConfigNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "mine"}, names)

	job, _, err = c.Jobs.StartJobFromConfig(ctx, "p", "mine", []string{added[0].AlignedFeatureID}, nil, sirius.JobOptFieldAffectedIDs)
	require.NoError(t, err)
	assert.Equal(t, []string{added[0].AlignedFeatureID}, job.AffectedAlignedFeatureIDs)

	_, err = c.Jobs.DeleteJobs(ctx, "p", nil)
	require.NoError(t, err)
	has, _, err = c.Jobs.HasJobs(ctx, "p", ptr.To(true))
	require.NoError(t, err)
	assert.False(t, has)

	_, err = c.Jobs.DeleteJobConfig(ctx, "mine")
	require.NoError(t, err)
	_, _, err = c.Jobs.GetJobConfig(ctx, "mine", nil)
	assert.True(t, transport.IsNotFound(err))
}

func TestService_BadRequests(t *testing.T) {
	c, svc := newTestClient(t)
	h := server.New(server.WithHandler(svc.Handlers())).Handler()
	_, _, err := c.Projects.CreateProjectSpace(context.Background(), "p", nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed features", http.MethodPost, "/api/projects/p/aligned-features", "{", http.StatusBadRequest},
		{"zero charge", http.MethodPost, "/api/projects/p/aligned-features", `[{"ionMass":180.06,"charge":0}]`, http.StatusBadRequest},
		{"bad profile", http.MethodPost, "/api/projects/p/aligned-features?profile=TOF", "[]", http.StatusBadRequest},
		{"missing charge", http.MethodGet, "/api/projects/p/cf-data", "", http.StatusBadRequest},
		{"bad page", http.MethodGet, "/api/projects/p/aligned-features/page?page=-1", "", http.StatusBadRequest},
		{"not multipart", http.MethodPost, "/api/projects/p/import/preprocessed-data", "{}", http.StatusBadRequest},
		{"missing config name", http.MethodPost, "/api/projects/p/jobs/from-config", "[]", http.StatusBadRequest},
		{"unknown project", http.MethodGet, "/api/projects/x/jobs", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"message"`)
		})
	}
}

func TestService_PageFarPastEnd(t *testing.T) {
	c, svc := newTestClient(t)
	h := server.New(server.WithHandler(svc.Handlers())).Handler()
	ctx := context.Background()
	_, _, err := c.Projects.CreateProjectSpace(ctx, "p", nil)
	require.NoError(t, err)
	_, _, err = c.Features.AddAlignedFeatures(ctx, "p", []sirius.FeatureImport{{IonMass: 100, Charge: 1}}, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/p/aligned-features/page?page=461168601842738791&size=20", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"content":[]`)
	assert.Contains(t, rec.Body.String(), `"totalElements":1`)
}
