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
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"k8s.io/utils/ptr"
)

func errorCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	var se *apperrors.StructuredError
	require.ErrorAs(t, err, &se)
	return se.Code
}

func TestStore_Projects(t *testing.T) {
	st := NewStore("/data")

	info, err := st.CreateProject("p1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/data/p1.sirius", info.Location)
	assert.Nil(t, info.NumOfFeatures)

	_, err = st.CreateProject("p1", nil, nil)
	assert.Equal(t, apperrors.ErrCodeConflict, errorCode(t, err))

	_, err = st.CreateProject("p2", ptr.To("/data/p1.sirius"), nil)
	assert.Equal(t, apperrors.ErrCodeConflict, errorCode(t, err), "location in use")

	_, err = st.CreateProject("bad id!", nil, nil)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, errorCode(t, err))

	info, err = st.OpenProject("p1", nil, []string{"sizeInformation"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), *info.NumOfFeatures)

	_, err = st.OpenProject("b", ptr.To("/elsewhere/b.sirius"), nil)
	require.NoError(t, err)

	all := st.ListProjects()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ProjectID)
	assert.Equal(t, "p1", all[1].ProjectID)

	require.NoError(t, st.CloseProject("b"))
	err = st.CloseProject("b")
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, err))
}

func TestStore_CopyProject(t *testing.T) {
	st := NewStore("/data")
	_, err := st.CreateProject("src", nil, nil)
	require.NoError(t, err)
	_, err = st.AddFeatures("src", []sirius.FeatureImport{{IonMass: 100}, {IonMass: 200}})
	require.NoError(t, err)

	info, err := st.CopyProject("src", "/data/backup.sirius", nil, []string{"sizeInformation"})
	require.NoError(t, err)
	assert.Equal(t, "backup", info.ProjectID)
	assert.Equal(t, "/data/backup.sirius", info.Location)
	assert.Equal(t, int64(2), *info.NumOfFeatures)
	_, err = st.GetProject("backup", nil)
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, err), "copy without id stays closed")
	src, err := st.GetProject("src", nil)
	require.NoError(t, err)
	assert.Equal(t, "/data/src.sirius", src.Location)

	info, err = st.CopyProject("src", "/data/copy.sirius", ptr.To("copy"), []string{"sizeInformation"})
	require.NoError(t, err)
	assert.Equal(t, "copy", info.ProjectID)
	assert.Equal(t, "/data/copy.sirius", info.Location)
	assert.Equal(t, int64(2), *info.NumOfFeatures)

	_, err = st.CopyProject("src", "/x", ptr.To("copy"), nil)
	assert.Equal(t, apperrors.ErrCodeConflict, errorCode(t, err))
}

func TestStore_Features(t *testing.T) {
	st := NewStore("/data")
	_, err := st.CreateProject("p", nil, nil)
	require.NoError(t, err)

	added, err := st.AddFeatures("p", []sirius.FeatureImport{
		{Name: ptr.To("a"), IonMass: 181.07, Charge: 1, Ms2Spectra: []sirius.BasicSpectrum{{Peaks: []sirius.SimplePeak{{MZ: 1, Intensity: 2}}}}},
		{Name: ptr.To("b"), IonMass: 195.08, Charge: 1},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.NotEqual(t, added[0].AlignedFeatureID, added[1].AlignedFeatureID)
	assert.True(t, *added[0].HasMsMs)
	assert.False(t, *added[1].HasMsMs)

	list, err := st.ListFeatures("p", nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", *list[0].Name)
	assert.Nil(t, list[0].MsData, "optional fields are stripped by default")

	f, err := st.GetFeature("p", added[0].AlignedFeatureID, []string{"msData"})
	require.NoError(t, err)
	require.NotNil(t, f.MsData)
	assert.NotNil(t, f.MsData.MergedMs2)

	err = st.DeleteFeatures("p", added[0].AlignedFeatureID, "missing")
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, err))
	list, err = st.ListFeatures("p", nil)
	require.NoError(t, err)
	assert.Len(t, list, 2, "failed delete removes nothing")

	require.NoError(t, st.DeleteFeatures("p", added[0].AlignedFeatureID))
	list, err = st.ListFeatures("p", nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", *list[0].Name)

	_, err = st.GetMsData("p", added[0].AlignedFeatureID)
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, err))
}

func TestStore_Jobs(t *testing.T) {
	st := NewStore("/data")
	_, err := st.CreateProject("p", nil, nil)
	require.NoError(t, err)
	added, err := st.AddFeatures("p", []sirius.FeatureImport{{IonMass: 100}, {IonMass: 200}})
	require.NoError(t, err)

	has, err := st.HasJobs("p", true)
	require.NoError(t, err)
	assert.False(t, has)

	sub := sirius.JobSubmission{
		AlignedFeatureIDs: []string{added[1].AlignedFeatureID},
		FormulaIDParams:   &sirius.FormulaSearch{Enabled: ptr.To(true)},
		CanopusParams:     &sirius.ToolToggle{Enabled: ptr.To(false)},
	}
	job, err := st.StartJob("p", sub, []string{"command", "progress", "affectedIds"})
	require.NoError(t, err)
	assert.Equal(t, sirius.JobStateDone, job.State())
	assert.Equal(t, commandCompute, *job.Command)
	assert.Equal(t, []string{added[1].AlignedFeatureID}, job.AffectedAlignedFeatureIDs)

	f, err := st.GetFeature("p", added[1].AlignedFeatureID, []string{"computedTools"})
	require.NoError(t, err)
	assert.True(t, f.ComputedTools.FormulaSearch)
	assert.False(t, f.ComputedTools.Canopus)

	all, err := st.StartJob("p", sirius.JobSubmission{}, []string{"affectedIds"})
	require.NoError(t, err)
	assert.Len(t, all.AffectedAlignedFeatureIDs, 2, "empty selection means all features")
	assert.Nil(t, all.Progress)

	_, err = st.StartJob("p", sirius.JobSubmission{AlignedFeatureIDs: []string{"missing"}}, nil)
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, err))

	has, err = st.HasJobs("p", false)
	require.NoError(t, err)
	assert.False(t, has, "finished jobs do not count")
	has, err = st.HasJobs("p", true)
	require.NoError(t, err)
	assert.True(t, has)

	jobs, err := st.ListJobs("p", nil)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, job.ID, jobs[0].ID)
	assert.NotNil(t, jobs[0].Progress, "progress is the default field")
	assert.Nil(t, jobs[0].Command)

	none, err := st.GetJob("p", job.ID, []string{"none"})
	require.NoError(t, err)
	assert.Nil(t, none.Progress)

	require.NoError(t, st.DeleteJob("p", job.ID))
	_, err = st.GetJob("p", job.ID, nil)
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, err))

	require.NoError(t, st.DeleteJobs("p"))
	jobs, err = st.ListJobs("p", nil)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestStore_JobConfigs(t *testing.T) {
	st := NewStore("/data")
	assert.Equal(t, []string{defaultConfigName}, st.JobConfigNames())

	_, err := st.SaveJobConfig(defaultConfigName, sirius.JobSubmission{}, true)
	assert.Equal(t, apperrors.ErrCodeConflict, errorCode(t, err), "default is not editable")
	err = st.DeleteJobConfig(defaultConfigName)
	assert.Equal(t, apperrors.ErrCodeConflict, errorCode(t, err))

	c, err := st.SaveJobConfig("fast", sirius.JobSubmission{Recompute: ptr.To(true)}, false)
	require.NoError(t, err)
	assert.True(t, c.Editable)

	_, err = st.SaveJobConfig("fast", sirius.JobSubmission{}, false)
	assert.Equal(t, apperrors.ErrCodeConflict, errorCode(t, err))
	_, err = st.SaveJobConfig("fast", sirius.JobSubmission{}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{defaultConfigName, "fast"}, st.JobConfigNames())
	require.Len(t, st.ListJobConfigs(), 2)

	_, err = st.CreateProject("p", nil, nil)
	require.NoError(t, err)
	added, err := st.AddFeatures("p", []sirius.FeatureImport{{IonMass: 100}})
	require.NoError(t, err)
	job, err := st.StartJobFromConfig("p", defaultConfigName, []string{added[0].AlignedFeatureID}, nil, []string{"affectedIds"})
	require.NoError(t, err)
	assert.Equal(t, []string{added[0].AlignedFeatureID}, job.AffectedAlignedFeatureIDs)

	_, err = st.StartJobFromConfig("p", "missing", nil, nil, nil)
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, err))

	require.NoError(t, st.DeleteJobConfig("fast"))
	_, err = st.GetJobConfig("fast")
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, err))
}

const sampleMS = `>compound Kaempferol
>parentmass 287.0550
>charge +1
>ionization [M+H]+

>ms1
287.0550 100
288.0583 16.5

>collision 35
121.0284 12.1
153.0182 41.3
287.0550 100
`

func TestParsePeakList(t *testing.T) {
	fi, err := parsePeakList("data/kaempferol.ms", strings.NewReader(sampleMS))
	require.NoError(t, err)
	assert.Equal(t, "Kaempferol", *fi.Name)
	assert.InDelta(t, 287.0550, fi.IonMass, 1e-9)
	assert.Equal(t, int32(1), fi.Charge)
	assert.Equal(t, []string{"[M+H]+"}, fi.DetectedAdducts)
	require.NotNil(t, fi.MergedMs1)
	assert.Len(t, fi.MergedMs1.Peaks, 2)
	require.Len(t, fi.Ms2Spectra, 1)
	assert.Len(t, fi.Ms2Spectra[0].Peaks, 3)
	assert.InDelta(t, 287.0550, *fi.Ms2Spectra[0].PrecursorMZ, 1e-9)
}

func TestParsePeakList_OtherFormats(t *testing.T) {
	fi, err := parsePeakList("spectra.mgf", strings.NewReader("BEGIN IONS\nEND IONS\n"))
	require.NoError(t, err)
	assert.Equal(t, "spectra", *fi.Name)
	assert.Empty(t, fi.Ms2Spectra)
}

func TestParsePeakList_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad parentmass", ">parentmass abc\n"},
		{"bad charge", ">charge x\n"},
		{"single column peak", ">ms2\n100.0\n"},
		{"bad peak", ">ms2\n100.0 high\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePeakList("x.ms", strings.NewReader(tt.input))
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, errorCode(t, err))
		})
	}
}

func TestImportFeatures_Ms1Only(t *testing.T) {
	st := NewStore("/data")
	_, err := st.CreateProject("p", nil, nil)
	require.NoError(t, err)
	ms1Only := []sirius.FeatureImport{{Name: ptr.To("x"), MergedMs1: &sirius.BasicSpectrum{}}}

	_, _, err = st.ImportFeatures("p", ms1Only, false)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, errorCode(t, err))

	res, job, err := st.ImportFeatures("p", ms1Only, true)
	require.NoError(t, err)
	assert.Len(t, res.AffectedAlignedFeatureIDs, 1)
	assert.Equal(t, sirius.JobEffectImport, *job.JobEffect)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := paginate(items, pageRequest{page: 1, size: 2})
	assert.Equal(t, []int{3, 4}, p.Content)
	assert.Equal(t, int64(5), p.Page.TotalElements)
	assert.Equal(t, int64(3), p.Page.TotalPages)
	assert.True(t, p.HasNext())

	p = paginate(items, pageRequest{page: 2, size: 2})
	assert.Equal(t, []int{5}, p.Content)
	assert.False(t, p.HasNext())

	p = paginate(items, pageRequest{page: 9, size: 2})
	assert.NotNil(t, p.Content)
	assert.Empty(t, p.Content)

	p = paginate(items, pageRequest{page: math.MaxInt / 10, size: 20})
	assert.Empty(t, p.Content)
	assert.Equal(t, int64(5), p.Page.TotalElements)

	p = paginate(items, pageRequest{page: 1, size: math.MaxInt})
	assert.Empty(t, p.Content)

	p = paginate([]int(nil), pageRequest{size: defaultPageSize})
	assert.NotNil(t, p.Content)
	assert.Equal(t, int64(0), p.Page.TotalPages)
}

func TestParsePageRequest(t *testing.T) {
	p, err := parsePageRequest(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, pageRequest{page: 0, size: defaultPageSize}, p)

	p, err = parsePageRequest(url.Values{"page": {"2"}, "size": {"5"}, "sort": {"name,asc", "ionMass"}, "optFields": {"none"}})
	require.NoError(t, err)
	assert.Equal(t, 2, p.page)
	assert.Equal(t, 5, p.size)
	assert.Equal(t, []string{"name,asc", "ionMass"}, p.sort)

	tests := []struct {
		name string
		q    url.Values
		msg  string
	}{
		{"negative page", url.Values{"page": {"-1"}}, "'page' must be at least 0"},
		{"zero size", url.Values{"size": {"0"}}, "'size' must be at least 1"},
		{"not a number", url.Values{"page": {"abc"}}, "Invalid paging parameters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePageRequest(tt.q)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, errorCode(t, err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFeatureRules(t *testing.T) {
	require.NoError(t, validate.Struct(featureRules{IonMass: 180.06, Charge: -1}))

	err := validate.Struct(featureRules{IonMass: 0, Charge: 1})
	require.Error(t, err)
	assert.Equal(t, "Parameter 'ionMass' must be greater than 0.", validationMessage(err))

	err = validate.Struct(featureRules{IonMass: 180.06})
	require.Error(t, err)
	assert.Equal(t, "Parameter 'charge' must not be 0.", validationMessage(err))
}

func TestSortFeatures(t *testing.T) {
	items := []sirius.AlignedFeature{
		{Name: ptr.To("b"), IonMass: 100},
		{Name: ptr.To("a"), IonMass: 300},
		{Name: ptr.To("c"), IonMass: 100},
	}
	sortFeatures(items, []string{"ionMass,desc", "name,asc"})
	assert.Equal(t, "a", *items[0].Name)
	assert.Equal(t, "b", *items[1].Name)
	assert.Equal(t, "c", *items[2].Name)
}
