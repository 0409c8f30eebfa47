package todo

// Op names the operation behind an Event.
type Op string

const (
	OpAdd    Op = "add"
	OpToggle Op = "toggle"
	OpDelete Op = "delete"
	OpClear  Op = "clear"
)

// Event describes a completed state transition.
type Event struct {
	Op      Op
	IDs     []ID   // Tasks added, toggled or removed
	Message string // Status message, empty for toggle
	Len     int    // List length after the transition
}

// Observer is called after each state transition.
type Observer func(Event)

type observerEntry struct {
	id int
	fn Observer
}
