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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	p, err := ParseInstrumentProfile("orbitrap")
	require.NoError(t, err)
	assert.Equal(t, InstrumentProfileOrbitrap, p)

	f, err := ParseAlignedFeatureOptField(" msData ")
	require.NoError(t, err)
	assert.Equal(t, AlignedFeatureOptFieldMsData, f)

	s, err := ParseJobState("DONE")
	require.NoError(t, err)
	assert.Equal(t, JobStateDone, s)

	_, err = ParseQuantMeasure("median")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APEX_INTENSITY")
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, StructureCandidateOptFieldDBLinks.IsValid())
	assert.False(t, StructureCandidateOptField("links").IsValid())
	assert.True(t, JobOptFieldAffectedIDs.IsValid())
	assert.False(t, ProjectInfoOptField("").IsValid())
}

func TestEnumListings(t *testing.T) {
	assert.Equal(t, []string{"QTOF", "ORBITRAP"}, GetInstrumentProfiles())
	assert.Contains(t, GetFormulaCandidateOptFields(), "fragmentationTree")
	assert.Len(t, GetJobStates(), 8)
}

func TestJobStateTerminal(t *testing.T) {
	tests := map[JobState]bool{
		JobStateWaiting:   false,
		JobStateReady:     false,
		JobStateQueued:    false,
		JobStateSubmitted: false,
		JobStateRunning:   false,
		JobStateCanceled:  true,
		JobStateFailed:    true,
		JobStateDone:      true,
	}
	for state, want := range tests {
		assert.Equal(t, want, state.IsTerminal(), state)
	}
}
