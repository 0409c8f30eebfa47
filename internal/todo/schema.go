package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON []byte

const snapshotSchemaURL = "https://github.com/nibzard/todo-go/snapshot.schema.json"

var compileSnapshotSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(snapshotSchemaURL, bytes.NewReader(snapshotSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add snapshot schema: %w", err)
	}
	schema, err := compiler.Compile(snapshotSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	return schema, nil
})

// SchemaJSON returns the embedded snapshot schema.
func SchemaJSON() []byte {
	return bytes.Clone(snapshotSchemaJSON)
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

func (r *ValidationResult) fail(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

// Err joins all validation errors, or returns nil if the document is valid.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return errors.Join(r.Errors...)
}

// ValidateDocument validates an encoded snapshot document.
func ValidateDocument(data []byte) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: make([]error, 0),
	}

	schema, err := compileSnapshotSchema()
	if err != nil {
		result.fail("", err)
		return result
	}

	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.fail("", fmt.Errorf("parse snapshot: %w", err))
		return result
	}

	if err := schema.Validate(obj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
		return result
	}

	// The schema cannot express id uniqueness or count consistency.
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail("", fmt.Errorf("decode snapshot: %w", err))
		return result
	}
	validateSemantics(result, doc)
	return result
}

func validateSemantics(result *ValidationResult, doc Document) {
	seen := make(map[ID]int, len(doc.Tasks))
	for i, t := range doc.Tasks {
		if first, ok := seen[t.ID]; ok {
			result.fail(fmt.Sprintf("tasks[%d].id", i), fmt.Errorf("%w: %q also at tasks[%d]", ErrDuplicateID, t.ID, first))
			continue
		}
		seen[t.ID] = i
	}

	pending, completed := countTasks(doc.Tasks)
	if doc.Pending != pending {
		result.fail("pending", fmt.Errorf("got %d, tasks say %d", doc.Pending, pending))
	}
	if doc.Completed != completed {
		result.fail("completed", fmt.Errorf("got %d, tasks say %d", doc.Completed, completed))
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/tasks/0/text" into "tasks[0].text".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
