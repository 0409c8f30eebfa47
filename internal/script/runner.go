package script

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/todo"
)

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput sets where messages and listings are written.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger for rejected commands.
func WithLogger(logger *log.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithNotifications controls whether status messages are printed.
func WithNotifications(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.notifications = enabled
	}
}

// WithValidationHook sets a function called for every rejected add.
func WithValidationHook(fn func()) RunnerOption {
	return func(r *Runner) {
		r.onValidationFailure = fn
	}
}

// Runner applies commands to a store one at a time.
type Runner struct {
	store               *todo.Store
	out                 io.Writer
	logger              *log.Logger
	notifications       bool
	onValidationFailure func()
}

// Summary counts the outcome of a run.
type Summary struct {
	Applied int
	Failed  int
}

// NewRunner creates a runner over store.
func NewRunner(store *todo.Store, opts ...RunnerOption) *Runner {
	r := &Runner{
		store:         store,
		out:           io.Discard,
		logger:        logging.Discard(),
		notifications: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies cmds in order. Rejected commands are reported and counted but
// do not stop the run. Run returns early only when ctx is done.
func (r *Runner) Run(ctx context.Context, cmds []Command) (Summary, error) {
	var sum Summary
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := r.apply(cmd); err != nil {
			sum.Failed++
			fmt.Fprintf(r.out, "! line %d: %v\n", cmd.Line, err)
			r.logger.Warn("Command rejected", "line", cmd.Line, "kind", string(cmd.Kind), "err", err)
			continue
		}
		sum.Applied++
	}
	return sum, nil
}

func (r *Runner) apply(cmd Command) error {
	switch cmd.Kind {
	case KindAdd:
		res, err := r.store.Add(cmd.Text)
		r.notify(res.Message)
		if err != nil {
			var ve *todo.ValidationError
			if errors.As(err, &ve) && r.onValidationFailure != nil {
				r.onValidationFailure()
			}
			return err
		}
	case KindToggle:
		id, err := r.store.IDAt(cmd.Positions[0])
		if err != nil {
			return err
		}
		r.store.Toggle(id)
	case KindDelete:
		res, err := r.store.DeleteAt(cmd.Positions...)
		if err != nil {
			return err
		}
		r.notify(res.Message)
	case KindClear:
		r.notify(r.store.ClearCompleted().Message)
	case KindList:
		WriteList(r.out, r.store.Snapshot())
	default:
		return fmt.Errorf("unknown command %q", cmd.Kind)
	}
	return nil
}

func (r *Runner) notify(msg string) {
	if r.notifications && msg != "" {
		fmt.Fprintf(r.out, "> %s\n", msg)
	}
}

// WriteList prints tasks one per line with their position and a checkbox.
func WriteList(w io.Writer, tasks []todo.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  (no tasks)")
		return
	}
	for i, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "%4d  [%s] %s\n", i, mark, t.Text)
	}
}
