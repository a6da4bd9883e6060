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
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForJob_PollsUntilTerminal(t *testing.T) {
	c, inv := newRecordingClient(
		`{"id":"j1","progress":{"state":"QUEUED"}}`,
		`{"id":"j1","progress":{"state":"RUNNING","currentProgress":10,"maxProgress":100}}`,
		`{"id":"j1","progress":{"state":"DONE","currentProgress":100,"maxProgress":100}}`,
	)

	job, err := c.Jobs.WaitForJob(context.Background(), "p1", "j1", time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, JobStateDone, job.State())
	assert.Equal(t, 3, inv.count())

	req := inv.last(t)
	assert.Equal(t, "getJob", req.Operation)
	assert.Equal(t, []string{"progress"}, req.Query["optFields"])
}

func TestWaitForJob_FailedIsTerminal(t *testing.T) {
	c, inv := newRecordingClient(`{"id":"j1","progress":{"state":"FAILED","errorMessage":"boom"}}`)

	job, err := c.Jobs.WaitForJob(context.Background(), "p1", "j1", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, JobStateFailed, job.State())
	assert.Equal(t, 1, inv.count())
}

func TestWaitForJob_ContextCanceled(t *testing.T) {
	c, _ := newRecordingClient(`{"id":"j1","progress":{"state":"RUNNING"}}`)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	job, err := c.Jobs.WaitForJob(ctx, "p1", "j1", 5*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Contains(t, err.Error(), "waiting for job j1")
	require.NotNil(t, job)
	assert.Equal(t, JobStateRunning, job.State())
}

func TestWaitForJob_RequestErrorStops(t *testing.T) {
	var calls atomic.Int32
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"job not found"}`))
	})

	job, err := c.Jobs.WaitForJob(context.Background(), "p1", "gone", time.Millisecond)
	require.Error(t, err)
	assert.Nil(t, job)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWaitForJob_MissingJobID(t *testing.T) {
	c, inv := newRecordingClient()
	_, err := c.Jobs.WaitForJob(context.Background(), "p1", "", time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, 0, inv.count())
}

func TestJobState(t *testing.T) {
	var nilJob *Job
	assert.Equal(t, JobState(""), nilJob.State())
	assert.Equal(t, JobState(""), (&Job{ID: "1"}).State())
	assert.Equal(t, JobStateReady, (&Job{Progress: &JobProgress{State: JobStateReady}}).State())
}
