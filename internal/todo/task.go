package todo

// ID identifies a task. It is assigned once at creation and never reused
// within a store.
type ID string

// String returns the id as a plain string.
func (id ID) String() string {
	return string(id)
}

// Task is a single to-do entry.
type Task struct {
	ID        ID     `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// IsZero returns true if the task has no ID.
func (t Task) IsZero() bool {
	return t.ID == ""
}

// Status messages returned by store operations.
const (
	MsgAdded     = "To-do item added successfully."
	MsgEnterTask = "Please enter a to-do item."
	MsgRemoved   = "To-do item removed successfully."
	MsgCleared   = "Completed to-do items cleared."
)

// Result is the outcome of a mutating operation.
type Result struct {
	Success bool
	Message string
}
