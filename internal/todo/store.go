package todo

import (
	"fmt"
	"sync"
)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the id strategy. The default is NewCounter().
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithObserver registers an observer at construction.
func WithObserver(fn Observer) Option {
	return func(s *Store) {
		s.addObserver(fn)
	}
}

// Store owns the task list. All mutations go through its methods.
type Store struct {
	mu        sync.Mutex
	tasks     []Task
	ids       IDGenerator
	issued    map[ID]struct{} // every id ever added, including removed tasks
	observers []observerEntry
	nextObs   int
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ids:    NewCounter(),
		issued: make(map[ID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (cancel func()) {
	s.mu.Lock()
	id := s.addObserver(fn)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) addObserver(fn Observer) int {
	s.nextObs++
	if fn != nil {
		s.observers = append(s.observers, observerEntry{id: s.nextObs, fn: fn})
	}
	return s.nextObs
}

// Add inserts a new task with the given text at position 0.
// The text is checked for emptiness exactly as given; it is not trimmed.
func (s *Store) Add(text string) (Result, error) {
	if text == "" {
		return Result{Message: MsgEnterTask}, &ValidationError{Path: "text", Err: ErrEmptyText}
	}

	s.mu.Lock()
	id := s.ids.NextID()
	if _, seen := s.issued[id]; seen {
		s.mu.Unlock()
		return Result{}, fmt.Errorf("add task %q: %w", id, ErrDuplicateID)
	}

	s.tasks = append(s.tasks, Task{})
	copy(s.tasks[1:], s.tasks)
	s.tasks[0] = Task{ID: id, Text: text}
	s.issued[id] = struct{}{}

	ev := Event{Op: OpAdd, IDs: []ID{id}, Message: MsgAdded, Len: len(s.tasks)}
	obs := s.observersLocked()
	s.mu.Unlock()

	notify(obs, ev)
	return Result{Success: true, Message: MsgAdded}, nil
}

// Toggle flips the completed flag of the task with the given id.
// It reports whether the task was found; unknown ids are a silent no-op.
func (s *Store) Toggle(id ID) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed

	ev := Event{Op: OpToggle, IDs: []ID{id}, Len: len(s.tasks)}
	obs := s.observersLocked()
	s.mu.Unlock()

	notify(obs, ev)
	return true
}

// DeleteAt removes the tasks at the given positions as one operation.
// Duplicate positions collapse and an empty set changes nothing. If any
// position is out of range nothing is removed and an *IndexError is
// returned.
func (s *Store) DeleteAt(positions ...int) (Result, error) {
	s.mu.Lock()
	n := len(s.tasks)
	drop := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		if p < 0 || p >= n {
			s.mu.Unlock()
			return Result{}, &IndexError{Position: p, Len: n}
		}
		drop[p] = struct{}{}
	}
	if len(drop) == 0 {
		s.mu.Unlock()
		return Result{Success: true, Message: MsgRemoved}, nil
	}

	removed := make([]ID, 0, len(drop))
	kept := make([]Task, 0, n-len(drop))
	for i, t := range s.tasks {
		if _, ok := drop[i]; ok {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept

	ev := Event{Op: OpDelete, IDs: removed, Message: MsgRemoved, Len: len(s.tasks)}
	obs := s.observersLocked()
	s.mu.Unlock()

	notify(obs, ev)
	return Result{Success: true, Message: MsgRemoved}, nil
}

// ClearCompleted removes every completed task. The confirmation message is
// returned even when nothing was removed.
func (s *Store) ClearCompleted() Result {
	s.mu.Lock()
	var removed []ID
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Completed {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept

	ev := Event{Op: OpClear, IDs: removed, Message: MsgCleared, Len: len(s.tasks)}
	obs := s.observersLocked()
	s.mu.Unlock()

	notify(obs, ev)
	return Result{Success: true, Message: MsgCleared}
}

// Snapshot returns a copy of the list in display order.
func (s *Store) Snapshot() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Counts returns the number of pending and completed tasks.
func (s *Store) Counts() (pending, completed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countTasks(s.tasks)
}

// Task returns the task with the given id.
func (s *Store) Task(id ID) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// IDAt returns the id of the task at position.
func (s *Store) IDAt(position int) (ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if position < 0 || position >= len(s.tasks) {
		return "", &IndexError{Position: position, Len: len(s.tasks)}
	}
	return s.tasks[position].ID, nil
}

func (s *Store) indexOf(id ID) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) observersLocked() []Observer {
	if len(s.observers) == 0 {
		return nil
	}
	out := make([]Observer, len(s.observers))
	for i, o := range s.observers {
		out[i] = o.fn
	}
	return out
}

func notify(obs []Observer, ev Event) {
	for _, fn := range obs {
		fn(ev)
	}
}

func countTasks(tasks []Task) (pending, completed int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}
