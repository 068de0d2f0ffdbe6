package payload

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAll(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		want    []string
		missing []string
	}{
		{
			name: "all present, extras dropped",
			body: map[string]any{"email": "ada@x.com", "name": "Ada", "id": 99, "developerInfoId": 1},
			want: []string{"name", "email"},
		},
		{
			name:    "one missing",
			body:    map[string]any{"name": "Ada"},
			missing: []string{"email"},
		},
		{
			name:    "blank string counts as missing",
			body:    map[string]any{"name": "  ", "email": "ada@x.com"},
			missing: []string{"name"},
		},
		{
			name:    "null counts as missing",
			body:    map[string]any{"name": nil, "email": "ada@x.com"},
			missing: []string{"name"},
		},
		{
			name:    "empty body",
			body:    map[string]any{},
			missing: []string{"name", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := Validate(tt.body, []string{"name", "email"}, All)
			if tt.missing != nil {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.missing, vErr.Missing)
				assert.Equal(t, "Required keys are name, email", vErr.Error())
				assert.True(t, errors.Is(err, ErrMissingKeys))
				assert.Nil(t, fields)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fields.Names())
		})
	}
}

func TestValidateAllWithOptional(t *testing.T) {
	body := map[string]any{"endDate": nil, "name": "api", "bogus": true}

	fields, err := Validate(body, []string{"name"}, All, "endDate")
	require.NoError(t, err)
	assert.Equal(t, Fields{{Name: "name", Value: "api"}, {Name: "endDate", Value: nil}}, fields)
}

func TestValidateAny(t *testing.T) {
	fields, err := Validate(map[string]any{"email": "new@x.com", "other": 1}, []string{"name", "email"}, Any)
	require.NoError(t, err)
	assert.Equal(t, Fields{{Name: "email", Value: "new@x.com"}}, fields)

	_, err = Validate(map[string]any{"other": 1}, []string{"name", "email"}, Any)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Required keys are name or email", vErr.Error())
}

func TestValidateAnyCountsOptionalAndNull(t *testing.T) {
	fields, err := Validate(map[string]any{"endDate": nil}, []string{"name"}, Any, "endDate")
	require.NoError(t, err)
	assert.Equal(t, Fields{{Name: "endDate", Value: nil}}, fields)

	_, err = Validate(map[string]any{}, []string{"name"}, Any, "endDate")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Required keys are name or endDate", vErr.Error())
}

func TestValidateAnyRejectsBlankRequired(t *testing.T) {
	for _, body := range []map[string]any{
		{"name": "   "},
		{"email": ""},
		{"name": nil, "email": "new@x.com"},
	} {
		_, err := Validate(body, []string{"name", "email"}, Any)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "%v", body)
		assert.NotEmpty(t, vErr.Missing)
	}

	fields, err := Validate(map[string]any{"name": "Ada", "endDate": nil}, []string{"name"}, Any, "endDate")
	require.NoError(t, err)
	assert.Len(t, fields, 2)
}

func TestValidateIsDeterministic(t *testing.T) {
	body := map[string]any{"c": 3, "a": 1, "b": 2}
	for i := 0; i < 20; i++ {
		fields, err := Validate(body, []string{"a", "b", "c"}, All)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, fields.Names())
	}
}

func TestFieldsWith(t *testing.T) {
	fields := Fields{{Name: "a", Value: 1}, {Name: "b", Value: 2}}

	assert.Equal(t, Fields{{Name: "a", Value: 9}, {Name: "b", Value: 2}}, fields.With("a", 9))
	assert.Equal(t, Fields{{Name: "a", Value: 1}, {Name: "b", Value: 2}, {Name: "c", Value: 3}}, fields.With("c", 3))
	assert.Len(t, fields, 2)
}

func TestDecode(t *testing.T) {
	body, err := Decode(strings.NewReader(`{"developerId": 12, "name": "api"}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("12"), body["developerId"])

	body, err = Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, body)

	body, err = Decode(strings.NewReader("null"))
	require.NoError(t, err)
	assert.NotNil(t, body)

	_, err = Decode(strings.NewReader(`[1,2]`))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{"a":1} {"b":2}`))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{"a":`))
	assert.Error(t, err)
}

func TestCheckOneOf(t *testing.T) {
	allowed := []string{"Windows", "Linux", "MacOS"}

	assert.NoError(t, CheckOneOf(Fields{{Name: "preferredOS", Value: "Linux"}}, "preferredOS", allowed))
	assert.NoError(t, CheckOneOf(Fields{}, "preferredOS", allowed))

	for _, bad := range []any{"Other OS", "linux", "", 3, nil} {
		err := CheckOneOf(Fields{{Name: "preferredOS", Value: bad}}, "preferredOS", allowed)
		var rErr *RuleError
		require.ErrorAs(t, err, &rErr, "value %v", bad)
		assert.Equal(t, "preferredOS must be one of Windows, Linux, MacOS", rErr.Error())
		assert.ErrorIs(t, err, ErrNotAllowed)
	}
}

func TestCheckDates(t *testing.T) {
	assert.NoError(t, CheckDates(Fields{{Name: "startDate", Value: "2020-01-31"}, {Name: "endDate", Value: nil}}, "startDate", "endDate"))

	for _, bad := range []any{"2020-13-01", "01/02/2020", "2020-01-01T00:00:00Z", json.Number("20200101")} {
		err := CheckDates(Fields{{Name: "startDate", Value: bad}}, "startDate")
		assert.ErrorIs(t, err, ErrInvalidDate, "value %v", bad)
	}
}

func TestCheckStrings(t *testing.T) {
	assert.NoError(t, CheckStrings(Fields{{Name: "name", Value: "x"}}, "name", "email"))
	assert.ErrorIs(t, CheckStrings(Fields{{Name: "email", Value: json.Number("1")}}, "name", "email"), ErrInvalidType)
}

func TestAsID(t *testing.T) {
	valid := []any{json.Number("7"), "7", " 7 ", int64(7), 7, float64(7)}
	for _, v := range valid {
		id, err := AsID(v)
		require.NoError(t, err, "value %v", v)
		assert.Equal(t, int64(7), id)
	}

	invalid := []any{json.Number("7.5"), "abc", "0", -1, float64(1.5), float64(1 << 63), nil, true}
	for _, v := range invalid {
		_, err := AsID(v)
		assert.ErrorIs(t, err, ErrInvalidID, "value %v", v)
	}
}

func TestCheckID(t *testing.T) {
	assert.NoError(t, CheckID(Fields{}, "developerId"))
	assert.NoError(t, CheckID(Fields{{Name: "developerId", Value: json.Number("3")}}, "developerId"))
	assert.ErrorIs(t, CheckID(Fields{{Name: "developerId", Value: "x"}}, "developerId"), ErrInvalidType)
}
