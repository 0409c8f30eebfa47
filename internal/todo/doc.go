// Package todo holds the in-memory task list and the operations that mutate it.
//
// A Store owns an ordered list of tasks. New tasks are inserted at the front,
// so index 0 is always the newest task. The list lives only as long as the
// process; nothing is written to disk.
//
// # Operations
//
//   - Add inserts a task at position 0. Empty text is rejected with a
//     *ValidationError and the list is left unchanged.
//   - Toggle flips the completed flag of the task with the given id. Unknown
//     ids are ignored.
//   - DeleteAt removes the tasks at a set of positions in one step. Any
//     position outside [0, Len()) rejects the whole call with an *IndexError.
//   - ClearCompleted removes every completed task.
//
// Add, DeleteAt and ClearCompleted return a Result carrying a short status
// message meant for one-shot display. Toggle has no message.
//
// # Observers
//
// Observers registered with Subscribe run synchronously after each state
// transition, once the store lock has been released, so they may read the
// store from inside the callback.
//
// # Snapshot documents
//
// A snapshot can be rendered as a JSON document:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {"id": "2", "text": "Buy bread", "completed": false},
//	    {"id": "1", "text": "Buy milk", "completed": true}
//	  ],
//	  "pending": 1,
//	  "completed": 1
//	}
//
// ValidateDocument checks such a document against the embedded JSON Schema
// (draft 2020-12) and then for id uniqueness and consistent counts.
package todo
