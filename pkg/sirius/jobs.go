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
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sirius-ms/sirius-go/pkg/defaults"
	"github.com/sirius-ms/sirius-go/pkg/transport"
)

const (
	jobsPath       = "/api/projects/{projectId}/jobs"
	jobConfigsPath = "/api/job-configs"
)

// DeleteJobOptions controls how running jobs are handled on deletion.
type DeleteJobOptions struct {
	CancelIfRunning *bool
	AwaitDeletion   *bool
}

func (o *DeleteJobOptions) apply(q url.Values) {
	if o == nil {
		return
	}
	transport.SetOptional(q, "cancelIfRunning", o.CancelIfRunning)
	transport.SetOptional(q, "awaitDeletion", o.AwaitDeletion)
}

// SaveJobConfigOptions controls how a job config is stored.
type SaveJobConfigOptions struct {
	OverrideExisting          *bool
	MoveParametersToConfigMap *bool
}

// DefaultJobConfigOptions controls the shape of the default job config.
type DefaultJobConfigOptions struct {
	IncludeConfigMap                   *bool
	MoveParametersToConfigMap          *bool
	IncludeCustomDbsForStructureSearch *bool
}

// JobsService starts, tracks and deletes background jobs and manages
// stored job configs.
type JobsService struct {
	inv Invoker
}

// GetJobs lists the jobs of a project.
func (s *JobsService) GetJobs(ctx context.Context, projectID string, optFields ...JobOptField) ([]Job, *http.Response, error) {
	const op = "getJobs"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetchList[Job](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       jobsPath,
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetJobsPaged returns one page of jobs.
func (s *JobsService) GetJobsPaged(ctx context.Context, projectID string, page *PageRequest, optFields ...JobOptField) (*PagedModel[Job], *http.Response, error) {
	const op = "getJobsPaged"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	page.apply(q)
	transport.AddEach(q, "optFields", optFields)
	return fetch[PagedModel[Job]](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       jobsPath + "/page",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// GetJob returns one job.
func (s *JobsService) GetJob(ctx context.Context, projectID, jobID string, optFields ...JobOptField) (*Job, *http.Response, error) {
	const op = "getJob"
	pp, err := pathParams(op, "projectId", projectID, "jobId", jobID)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetch[Job](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       jobsPath + "/{jobId}",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// StartJob starts a computation on the features named in submission.
func (s *JobsService) StartJob(ctx context.Context, projectID string, submission *JobSubmission, optFields ...JobOptField) (*Job, *http.Response, error) {
	const op = "startJob"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	if err := transport.RequireValue(op, "jobSubmission", submission); err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.AddEach(q, "optFields", optFields)
	return fetch[Job](ctx, s.inv, &transport.Request{
		Operation:   op,
		Method:      http.MethodPost,
		Path:        jobsPath,
		PathParams:  pp,
		Query:       q,
		Body:        submission,
		Accept:      acceptJSON,
		ContentType: contentJSON,
	})
}

// StartJobFromConfig starts a computation using a stored job config.
func (s *JobsService) StartJobFromConfig(ctx context.Context, projectID, jobConfigName string, alignedFeatureIDs []string, recompute *bool, optFields ...JobOptField) (*Job, *http.Response, error) {
	const op = "startJobFromConfig"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, nil, err
	}
	if err := transport.RequireString(op, "jobConfigName", jobConfigName); err != nil {
		return nil, nil, err
	}
	if err := transport.RequireValue(op, "requestBody", alignedFeatureIDs); err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	q.Set("jobConfigName", jobConfigName)
	transport.SetOptional(q, "recompute", recompute)
	transport.AddEach(q, "optFields", optFields)
	return fetch[Job](ctx, s.inv, &transport.Request{
		Operation:   op,
		Method:      http.MethodPost,
		Path:        jobsPath + "/from-config",
		PathParams:  pp,
		Query:       q,
		Body:        alignedFeatureIDs,
		Accept:      acceptJSON,
		ContentType: contentJSON,
	})
}

// DeleteJob deletes one job, optionally cancelling it first.
func (s *JobsService) DeleteJob(ctx context.Context, projectID, jobID string, opts *DeleteJobOptions) (*http.Response, error) {
	const op = "deleteJob"
	pp, err := pathParams(op, "projectId", projectID, "jobId", jobID)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	opts.apply(q)
	return send(ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodDelete,
		Path:       jobsPath + "/{jobId}",
		PathParams: pp,
		Query:      q,
	})
}

// DeleteJobs deletes all jobs of a project.
func (s *JobsService) DeleteJobs(ctx context.Context, projectID string, opts *DeleteJobOptions) (*http.Response, error) {
	const op = "deleteJobs"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	opts.apply(q)
	return send(ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodDelete,
		Path:       jobsPath,
		PathParams: pp,
		Query:      q,
	})
}

// HasJobs reports whether the project has jobs, by default only unfinished ones.
func (s *JobsService) HasJobs(ctx context.Context, projectID string, includeFinished *bool) (bool, *http.Response, error) {
	const op = "hasJobs"
	pp, err := pathParams(op, "projectId", projectID)
	if err != nil {
		return false, nil, err
	}
	q := url.Values{}
	transport.SetOptional(q, "includeFinished", includeFinished)
	out, resp, err := fetch[bool](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       "/api/projects/{projectId}/has-jobs",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
	if err != nil {
		return false, resp, err
	}
	return *out, resp, nil
}

// GetJobConfigs lists all stored job configs.
func (s *JobsService) GetJobConfigs(ctx context.Context) ([]StoredJobSubmission, *http.Response, error) {
	return fetchList[StoredJobSubmission](ctx, s.inv, &transport.Request{
		Operation: "getJobConfigs",
		Method:    http.MethodGet,
		Path:      jobConfigsPath,
		Accept:    acceptJSON,
	})
}

// GetJobConfigNames lists the names of all stored job configs.
func (s *JobsService) GetJobConfigNames(ctx context.Context) ([]string, *http.Response, error) {
	return fetchList[string](ctx, s.inv, &transport.Request{
		Operation: "getJobConfigNames",
		Method:    http.MethodGet,
		Path:      "/api/job-config-names",
		Accept:    acceptJSON,
	})
}

// GetJobConfig returns one stored job config.
func (s *JobsService) GetJobConfig(ctx context.Context, name string, moveParametersToConfigMap *bool) (*StoredJobSubmission, *http.Response, error) {
	const op = "getJobConfig"
	pp, err := pathParams(op, "name", name)
	if err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	transport.SetOptional(q, "moveParametersToConfigMap", moveParametersToConfigMap)
	return fetch[StoredJobSubmission](ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       jobConfigsPath + "/{name}",
		PathParams: pp,
		Query:      q,
		Accept:     acceptJSON,
	})
}

// SaveJobConfig stores submission under name.
func (s *JobsService) SaveJobConfig(ctx context.Context, name string, submission *JobSubmission, opts *SaveJobConfigOptions) (*StoredJobSubmission, *http.Response, error) {
	const op = "saveJobConfig"
	pp, err := pathParams(op, "name", name)
	if err != nil {
		return nil, nil, err
	}
	if err := transport.RequireValue(op, "jobSubmission", submission); err != nil {
		return nil, nil, err
	}
	q := url.Values{}
	if opts != nil {
		transport.SetOptional(q, "overrideExisting", opts.OverrideExisting)
		transport.SetOptional(q, "moveParametersToConfigMap", opts.MoveParametersToConfigMap)
	}
	return fetch[StoredJobSubmission](ctx, s.inv, &transport.Request{
		Operation:   op,
		Method:      http.MethodPost,
		Path:        jobConfigsPath + "/{name}",
		PathParams:  pp,
		Query:       q,
		Body:        submission,
		Accept:      acceptJSON,
		ContentType: contentJSON,
	})
}

// DeleteJobConfig deletes a stored job config.
func (s *JobsService) DeleteJobConfig(ctx context.Context, name string) (*http.Response, error) {
	const op = "deleteJobConfig"
	pp, err := pathParams(op, "name", name)
	if err != nil {
		return nil, err
	}
	return send(ctx, s.inv, &transport.Request{
		Operation:  op,
		Method:     http.MethodDelete,
		Path:       jobConfigsPath + "/{name}",
		PathParams: pp,
	})
}

// GetDefaultJobConfig returns the server's default job submission.
func (s *JobsService) GetDefaultJobConfig(ctx context.Context, opts *DefaultJobConfigOptions) (*JobSubmission, *http.Response, error) {
	q := url.Values{}
	if opts != nil {
		transport.SetOptional(q, "includeConfigMap", opts.IncludeConfigMap)
		transport.SetOptional(q, "moveParametersToConfigMap", opts.MoveParametersToConfigMap)
		transport.SetOptional(q, "includeCustomDbsForStructureSearch", opts.IncludeCustomDbsForStructureSearch)
	}
	return fetch[JobSubmission](ctx, s.inv, &transport.Request{
		Operation: "getDefaultJobConfig",
		Method:    http.MethodGet,
		Path:      "/api/default-job-config",
		Query:     q,
		Accept:    acceptJSON,
	})
}

// WaitForJob polls GetJob until the job reaches a terminal state or ctx is
// done. A non-positive interval uses defaults.JobPollInterval. The last
// observed job is returned together with any error.
func (s *JobsService) WaitForJob(ctx context.Context, projectID, jobID string, interval time.Duration) (*Job, error) {
	if interval <= 0 {
		interval = defaults.JobPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last *Job
	for {
		job, _, err := s.GetJob(ctx, projectID, jobID, JobOptFieldProgress)
		if err != nil {
			return last, err
		}
		last = job

		state := job.State()
		slog.Debug("job status", "projectId", projectID, "jobId", jobID, "state", state)
		if state.IsTerminal() {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return last, fmt.Errorf("waiting for job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}
