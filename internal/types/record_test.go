package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_KeepsInsertionOrder(t *testing.T) {
	r := NewRecord("Email", "a@x.com", "First Name", "Asha")
	r.Set("Email", "b@x.com")

	assert.Equal(t, []string{"Email", "First Name"}, r.Keys())
	assert.Equal(t, "b@x.com", r.Get("Email"))
	assert.Equal(t, "", r.Get("Missing"))
	assert.False(t, r.Has("Missing"))
}

func TestRecord_Project(t *testing.T) {
	r := NewRecord("B", "x", "C", "y")

	assert.Equal(t, []string{"", "x"}, r.Project([]string{"A", "B"}))
	assert.Empty(t, r.Project(nil))
}

func TestRecord_Conform(t *testing.T) {
	r := NewRecord("Email", "a@x.com", "Extra", "drop me")
	out := r.Conform(ColumnSpec{"First Name", "Email"})

	assert.Equal(t, []string{"First Name", "Email"}, out.Keys())
	assert.Equal(t, "", out.Get("First Name"))
	assert.Equal(t, "a@x.com", out.Get("Email"))
	assert.False(t, out.Has("Extra"))
}

func TestRecord_Arrange(t *testing.T) {
	r := NewRecord("Notes", "keep", "Email", "a@x.com")
	out := r.Arrange(ColumnSpec{"First Name", "Email"})

	assert.Equal(t, []string{"First Name", "Email", "Notes"}, out.Keys())
	assert.Equal(t, "", out.Get("First Name"))
	assert.Equal(t, "keep", out.Get("Notes"))
	assert.Equal(t, []string{"Notes", "Email"}, r.Keys(), "original is untouched")
}

func TestRecord_UnmarshalJSON_PreservesOrder(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"Z":"1","A":"2","M":null,"N":42,"B":true}`), &r)
	require.NoError(t, err)

	assert.Equal(t, []string{"Z", "A", "M", "N", "B"}, r.Keys())
	assert.Equal(t, "", r.Get("M"))
	assert.Equal(t, "42", r.Get("N"))
	assert.Equal(t, "true", r.Get("B"))
}

func TestRecord_UnmarshalJSON_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "array", input: `["a"]`},
		{name: "nested object", input: `{"a":{"b":"c"}}`},
		{name: "nested array", input: `{"a":["b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			assert.Error(t, json.Unmarshal([]byte(tt.input), &r))
		})
	}
}

func TestRecord_MarshalJSON_RoundTripsOrder(t *testing.T) {
	records := []Record{
		NewRecord("First Name", "Asha", "Email", "a@x.com"),
		NewRecord("First Name", "Raj", "Email", ""),
	}

	data, err := json.Marshal(records)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"First Name":"Asha","Email":"a@x.com"},{"First Name":"Raj","Email":""}]`, string(data))
	assert.Equal(t, `[{"First Name":"Asha","Email":"a@x.com"},{"First Name":"Raj","Email":""}]`, string(data))

	var back []Record
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, []string{"First Name", "Email"}, back[1].Keys())
}

func TestRecord_MarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(Record{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
