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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/sirius-ms/sirius-go/pkg/transport"
)

const formFieldInputFiles = "inputFiles"

// InputFile is one file uploaded to an import endpoint.
type InputFile struct {
	Name    string
	Content io.Reader
}

// OpenInputFiles opens the given paths for upload. The returned close
// function closes every opened file.
func OpenInputFiles(paths ...string) ([]InputFile, func(), error) {
	files := make([]InputFile, 0, len(paths))
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, p := range paths {
		f, err := os.Open(filepath.Clean(p))
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open input file %s: %w", p, err)
		}
		opened = append(opened, f)
		files = append(files, InputFile{Name: filepath.Base(p), Content: f})
	}
	return files, closeAll, nil
}

// PreprocessedImportOptions tunes the import of peak lists.
type PreprocessedImportOptions struct {
	IgnoreFormulas   *bool
	AllowMs1OnlyData *bool
}

func (o *PreprocessedImportOptions) apply(q url.Values) {
	if o == nil {
		return
	}
	transport.SetOptional(q, "ignoreFormulas", o.IgnoreFormulas)
	transport.SetOptional(q, "allowMs1OnlyData", o.AllowMs1OnlyData)
}

// ProjectsService manages project-spaces and data imports.
type ProjectsService struct {
	inv Invoker
}

// GetProjectSpaces lists all opened project-spaces.
func (s *ProjectsService) GetProjectSpaces(ctx context.Context) ([]ProjectInfo, *http.Response, error) {
	return fetchList[ProjectInfo](ctx, s.inv, &transport.Request{
		Operation: "getProjectSpaces",
		Method:    http.MethodGet,
		Path:      "/api/projects",
		Accept:    acceptJSON,
	})
}

// GetProjectSpace returns one opened project-space.
func (s *ProjectsService) GetProjectSpace(ctx context.Context, projectID string, optFields ...ProjectInfoOptField) (*ProjectInfo, *http.Response, error) {
	const op = "getProjectSpace"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetch[ProjectInfo](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       "/api/projects/{projectId}",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// CreateProjectSpace creates and opens a new project-space. When
// pathToProject is nil the server picks a location in its default directory.
func (s *ProjectsService) CreateProjectSpace(ctx context.Context, projectID string, pathToProject *string, optFields ...ProjectInfoOptField) (*ProjectInfo, *http.Response, error) {
	return s.openOrCreate(ctx, "createProjectSpace", http.MethodPost, projectID, pathToProject, optFields)
}

// OpenProjectSpace opens an existing project-space under projectID.
func (s *ProjectsService) OpenProjectSpace(ctx context.Context, projectID string, pathToProject *string, optFields ...ProjectInfoOptField) (*ProjectInfo, *http.Response, error) {
	return s.openOrCreate(ctx, "openProjectSpace", http.MethodPut, projectID, pathToProject, optFields)
}

func (s *ProjectsService) openOrCreate(ctx context.Context, op, method, projectID string, pathToProject *string, optFields []ProjectInfoOptField) (*ProjectInfo, *http.Response, error) {
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.SetOptional(q, "pathToProject", pathToProject)
	transport.AddEach(q, "optFields", optFields)
	return fetch[ProjectInfo](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     method,
		Path:       "/api/projects/{projectId}",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// CloseProjectSpace closes a project-space without deleting it.
func (s *ProjectsService) CloseProjectSpace(ctx context.Context, projectID string) (*http.Response, error) {
	const op = "closeProjectSpace"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, err
	}
	return send(ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodDelete,
		Path:       "/api/projects/{projectId}",
		PathParams: pp,
	})
}

// CopyProjectSpace copies an opened project-space to a new location and
// optionally opens the copy under copyProjectID.
//
// Deprecated: copying project-spaces is being removed from the service;
// close the project and copy its directory instead.
func (s *ProjectsService) CopyProjectSpace(ctx context.Context, projectID, pathToCopiedProject string, copyProjectID *string, optFields ...ProjectInfoOptField) (*ProjectInfo, *http.Response, error) {
	const op = "copyProjectSpace"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	if err := transport.RequireString(op, "pathToCopiedProject", pathToCopiedProject); err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	q.Set("pathToCopiedProject", pathToCopiedProject)
	transport.SetOptional(q, "copyProjectId", copyProjectID)
	transport.AddEach(q, "optFields", optFields)
	return fetch[ProjectInfo](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodPut,
		Path:       "/api/projects/{projectId}/copy",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetFingerIDData returns the CSI:FingerID fingerprint definition as CSV.
func (s *ProjectsService) GetFingerIDData(ctx context.Context, projectID string, charge int32) (string, *http.Response, error) {
	return s.csvData(ctx, "getFingerIdData", "/api/projects/{projectId}/fingerid-data", projectID, charge)
}

// GetCanopusClassyFireData returns the ClassyFire class definitions as CSV.
func (s *ProjectsService) GetCanopusClassyFireData(ctx context.Context, projectID string, charge int32) (string, *http.Response, error) {
	return s.csvData(ctx, "getCanopusClassyFireData", "/api/projects/{projectId}/cf-data", projectID, charge)
}

// GetCanopusNpcData returns the NPC class definitions as CSV.
func (s *ProjectsService) GetCanopusNpcData(ctx context.Context, projectID string, charge int32) (string, *http.Response, error) {
	return s.csvData(ctx, "getCanopusNpcData", "/api/projects/{projectId}/npc-data", projectID, charge)
}

// csvData treats charge 0 as absent; valid charges are non-zero.
func (s *ProjectsService) csvData(ctx context.Context, op, path, projectID string, charge int32) (string, *http.Response, error) {
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return "", nil, err
	}
	if charge == 0 {
		return "", nil, transport.MissingParameter(op, "charge")
	}
	q := url.Values{}
	q.Set("charge", transport.ParameterToString(charge))

	var out string
	resp, err := s.inv.Invoke(ctx, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       path,
		PathParams: pp,
		Query:      q,
		Accept:     acceptCSV,
	}, &out)
	if err != nil {
		return "", resp, err
	}
	return out, resp, nil
}

// ImportMsRunData imports and preprocesses LC-MS runs (mzML, mzXML).
func (s *ProjectsService) ImportMsRunData(ctx context.Context, projectID string, inputFiles []InputFile, parameters *LcmsSubmissionParameters) (*ImportResult, *http.Response, error) {
	const op = "importMsRunData"
	req, err := msRunRequest(op, "/api/projects/{projectId}/import/ms-data", projectID, inputFiles, parameters)
	if err != nil {
		return nil, nil, err
	}
	return fetch[ImportResult](ctx, s.inv, req)
}

// ImportMsRunDataAsJob starts the LC-MS import as a background job.
func (s *ProjectsService) ImportMsRunDataAsJob(ctx context.Context, projectID string, inputFiles []InputFile, parameters *LcmsSubmissionParameters, optFields ...JobOptField) (*Job, *http.Response, error) {
	const op = "importMsRunDataAsJob"
	req, err := msRunRequest(op, "/api/projects/{projectId}/import/ms-data-job", projectID, inputFiles, parameters)
	if err != nil {
		return nil, nil, err
	}
	transport.AddEach(req.Query, "optFields", optFields)
	return fetch[Job](ctx, s.inv, req)
}

func msRunRequest(op, path, projectID string, inputFiles []InputFile, parameters *LcmsSubmissionParameters) (*transport.Request, error) {
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, err
	}
	form, err := uploadForm(op, inputFiles)
	if err != nil {
		return nil, err
	}
	form.AddJSON("parameters", parameters)
	return &transport.Request{
		Operation:   op,
		Method:      http.MethodPost,
		Path:        path,
		PathParams:  pp,
		Query:       url.Values{},
		Form:        form,
		Accept:      acceptJSON,
		ContentType: contentMultipart,
	}, nil
}

// ImportPreprocessedData imports peak list files (ms, mgf, mat, msp, ...).
func (s *ProjectsService) ImportPreprocessedData(ctx context.Context, projectID string, inputFiles []InputFile, opts *PreprocessedImportOptions) (*ImportResult, *http.Response, error) {
	const op = "importPreprocessedData"
	req, err := preprocessedRequest(op, "/api/projects/{projectId}/import/preprocessed-data", projectID, inputFiles, opts)
	if err != nil {
		return nil, nil, err
	}
	return fetch[ImportResult](ctx, s.inv, req)
}

// ImportPreprocessedDataAsJob starts the peak list import as a background job.
func (s *ProjectsService) ImportPreprocessedDataAsJob(ctx context.Context, projectID string, inputFiles []InputFile, opts *PreprocessedImportOptions, optFields ...JobOptField) (*Job, *http.Response, error) {
	const op = "importPreprocessedDataAsJob"
	req, err := preprocessedRequest(op, "/api/projects/{projectId}/import/preprocessed-data-job", projectID, inputFiles, opts)
	if err != nil {
		return nil, nil, err
	}
	transport.AddEach(req.Query, "optFields", optFields)
	return fetch[Job](ctx, s.inv, req)
}

func preprocessedRequest(op, path, projectID string, inputFiles []InputFile, opts *PreprocessedImportOptions) (*transport.Request, error) {
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, err
	}
	form, err := uploadForm(op, inputFiles)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	opts.apply(q)
	return &transport.Request{
		Operation:   op,
		Method:      http.MethodPost,
		Path:        path,
		PathParams:  pp,
		Query:       q,
		Form:        form,
		Accept:      acceptJSON,
		ContentType: contentMultipart,
	}, nil
}

func uploadForm(op string, inputFiles []InputFile) (*transport.Multipart, error) {
	if err := transport.RequireValue(op, formFieldInputFiles, inputFiles); err != nil {
		return nil, err
	}
	form := &transport.Multipart{}
	for _, f := range inputFiles {
		form.AddFile(formFieldInputFiles, f.Name, f.Content)
	}
	return form, nil
}
