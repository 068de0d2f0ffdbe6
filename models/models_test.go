package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2020-01-01")
	require.NoError(t, err)

	out, err := json.Marshal(DeveloperInfo{ID: 3, DeveloperSince: d, PreferredOS: OSLinux})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"developerSince":"2020-01-01","preferredOS":"Linux"}`, string(out))

	var back DeveloperInfo
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "2020-01-01", back.DeveloperSince.String())
}

func TestDateRejectsTimestamps(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"2020-01-01T10:00:00Z"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20200101`), &d))
}

func TestNewDateTruncates(t *testing.T) {
	d := NewDate(time.Date(2024, 3, 9, 23, 59, 0, 0, time.FixedZone("x", 3600)))
	assert.Equal(t, "2024-03-09", d.String())
}

func TestProjectEndDateNullable(t *testing.T) {
	out, err := json.Marshal(Project{ID: 1, Name: "api", DeveloperID: 2})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Nil(t, m["endDate"])
	assert.NotContains(t, m, "technologies")
}

func TestModelFieldsReadColumnTags(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "email", "developerInfoId"}, getModelFields(Developer{}))
	assert.Equal(t, []string{"id", "addedIn", "projectId", "technologyId"}, getModelFields(ProjectTechnology{}))
}

func TestFindColumnMismatches(t *testing.T) {
	got := findColumnMismatches(
		[]string{"id", "name", "email", "developerInfoId", "created_at"},
		getModelFields(Developer{}),
	)
	assert.Equal(t, []string{"created_at"}, got)
}

func TestAllModelsHaveTables(t *testing.T) {
	var names []string
	for _, m := range All() {
		names = append(names, m.(interface{ TableName() string }).TableName())
	}
	assert.Equal(t, []string{"developers", "developers_info", "projects", "technologies", "projects_technologies"}, names)
}
