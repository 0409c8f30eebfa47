package logging

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/todo"
)

// StoreObserver returns a store observer that logs every transition.
// Toggles are logged at debug level.
func StoreObserver(logger *log.Logger) todo.Observer {
	return func(ev todo.Event) {
		ids := make([]string, len(ev.IDs))
		for i, id := range ev.IDs {
			ids[i] = id.String()
		}
		fields := []any{"op", string(ev.Op), "ids", ids, "len", ev.Len}

		switch ev.Op {
		case todo.OpAdd:
			logger.Info("Task added", fields...)
		case todo.OpToggle:
			logger.Debug("Task toggled", fields...)
		case todo.OpDelete:
			logger.Info("Tasks removed", fields...)
		case todo.OpClear:
			logger.Info("Completed tasks cleared", fields...)
		default:
			logger.Debug(string(ev.Op), fields...)
		}
	}
}
