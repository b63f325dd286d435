package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	var exp ExperienceInput
	err := json.Unmarshal([]byte(`{"company":"Acme","title":"Engineer","start_date":"2020-06-01","end_date":null}`), &exp)
	require.NoError(t, err)

	require.NotNil(t, exp.StartDate)
	assert.Equal(t, "2020-06-01", exp.StartDate.String())
	assert.Nil(t, exp.EndDate)
}

func TestDate_UnmarshalEmptyString(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"June 2020"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"2020-13-40"`), &d))
}

func TestDate_MarshalJSON(t *testing.T) {
	d := NewDate(2021, 3, 14)
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2021-03-14"`, string(out))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2019-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2019-12-31", d.String())

	_, err = ParseDate("31/12/2019")
	assert.Error(t, err)
}
