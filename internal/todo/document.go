package todo

import (
	"encoding/json"
	"fmt"
	"io"
)

// SchemaVersion is the current snapshot document version.
const SchemaVersion = 1

// Document is the JSON form of a snapshot.
type Document struct {
	SchemaVersion int    `json:"schema_version"`
	Tasks         []Task `json:"tasks"`
	Pending       int    `json:"pending"`
	Completed     int    `json:"completed"`
}

// NewDocument builds a document from a snapshot.
func NewDocument(tasks []Task) Document {
	if tasks == nil {
		tasks = []Task{}
	}
	pending, completed := countTasks(tasks)
	return Document{
		SchemaVersion: SchemaVersion,
		Tasks:         tasks,
		Pending:       pending,
		Completed:     completed,
	}
}

// Encode writes the document with 2-space indentation and a trailing newline.
func (d Document) Encode(w io.Writer) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
