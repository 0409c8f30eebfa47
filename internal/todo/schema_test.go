package todo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRoundTripValidates(t *testing.T) {
	s := NewStore()
	ids := seed(t, s, "Buy milk", "Buy bread")
	s.Toggle(ids[1])

	var buf bytes.Buffer
	require.NoError(t, NewDocument(s.Snapshot()).Encode(&buf))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
	assert.Contains(t, buf.String(), `  "schema_version": 1`)

	result := ValidateDocument(buf.Bytes())
	assert.True(t, result.Valid, "errors: %v", result.Errors)
	assert.NoError(t, result.Err())
}

func TestEmptyDocumentValidates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDocument(nil).Encode(&buf))
	assert.Contains(t, buf.String(), `"tasks": []`)
	assert.True(t, ValidateDocument(buf.Bytes()).Valid)
}

func TestValidateDocumentErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{
			name:     "not json",
			doc:      `{`,
			wantPath: "",
		},
		{
			name:     "wrong version",
			doc:      `{"schema_version": 2, "tasks": [], "pending": 0, "completed": 0}`,
			wantPath: "schema_version",
		},
		{
			name:     "empty text",
			doc:      `{"schema_version": 1, "tasks": [{"id": "1", "text": "", "completed": false}], "pending": 1, "completed": 0}`,
			wantPath: "tasks[0].text",
		},
		{
			name:     "completed not bool",
			doc:      `{"schema_version": 1, "tasks": [{"id": "1", "text": "a", "completed": "yes"}], "pending": 0, "completed": 1}`,
			wantPath: "tasks[0].completed",
		},
		{
			name:     "duplicate id",
			doc:      `{"schema_version": 1, "tasks": [{"id": "1", "text": "a", "completed": false}, {"id": "1", "text": "b", "completed": false}], "pending": 2, "completed": 0}`,
			wantPath: "tasks[1].id",
		},
		{
			name:     "counts disagree",
			doc:      `{"schema_version": 1, "tasks": [{"id": "1", "text": "a", "completed": true}], "pending": 1, "completed": 0}`,
			wantPath: "pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateDocument([]byte(tt.doc))
			require.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			assert.Error(t, result.Err())

			var paths []string
			for _, err := range result.Errors {
				if ve, ok := err.(*ValidationError); ok {
					paths = append(paths, ve.Path)
				}
			}
			assert.Contains(t, paths, tt.wantPath)
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"#":             "",
		"/tasks":        "tasks",
		"/tasks/0/text": "tasks[0].text",
		"#/tasks/12/id": "tasks[12].id",
		"/a~1b/c~0d":    "a/b.c~d",
	}
	for in, want := range tests {
		assert.Equal(t, want, jsonPointerToPath(in), "pointer %q", in)
	}
}

func TestSchemaJSONReturnsCopy(t *testing.T) {
	first := SchemaJSON()
	require.Contains(t, string(first), `"$id": "https://github.com/nibzard/todo-go/snapshot.schema.json"`)

	first[0] = 'x'
	assert.Equal(t, byte('{'), SchemaJSON()[0])

	// The compiled schema is unaffected by edits to a returned copy.
	var buf bytes.Buffer
	require.NoError(t, NewDocument(nil).Encode(&buf))
	assert.True(t, ValidateDocument(buf.Bytes()).Valid)
}
