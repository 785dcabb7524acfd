// Package domain contains core business entities and interfaces.
package domain

// Task represents a single to-do item.
type Task struct {
	ID        string `json:"id" yaml:"id"`               // Opaque unique identifier, never reused
	Text      string `json:"text" yaml:"text"`           // User-entered description
	Completed bool   `json:"completed" yaml:"completed"` // Completion state
}

// Tasks is an ordered, immutable collection of tasks.
// Insertion order is display order. The zero value is an empty collection.
type Tasks struct {
	items []Task
}

// NewTasks creates a collection holding a copy of the given tasks.
func NewTasks(items ...Task) Tasks {
	if len(items) == 0 {
		return Tasks{}
	}
	return Tasks{items: append([]Task(nil), items...)}
}

// Len returns the number of tasks.
func (t Tasks) Len() int {
	return len(t.items)
}

// At returns the task at index i. It panics if i is out of range.
func (t Tasks) At(i int) Task {
	return t.items[i]
}

// All returns a copy of the tasks in order.
// The returned slice is never nil.
func (t Tasks) All() []Task {
	out := make([]Task, len(t.items))
	copy(out, t.items)
	return out
}

// Index returns the position of the first task with the given id, or -1.
func (t Tasks) Index(id string) int {
	for i := range t.items {
		if t.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the first task with the given id.
func (t Tasks) Find(id string) (Task, bool) {
	i := t.Index(id)
	if i < 0 {
		return Task{}, false
	}
	return t.items[i], true
}

// IDs returns the task ids in order.
func (t Tasks) IDs() []string {
	ids := make([]string, len(t.items))
	for i := range t.items {
		ids[i] = t.items[i].ID
	}
	return ids
}

// Equal reports whether both collections hold the same tasks in the same order.
func (t Tasks) Equal(other Tasks) bool {
	if len(t.items) != len(other.items) {
		return false
	}
	for i := range t.items {
		if t.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// appended returns a new collection with task added at the end.
func (t Tasks) appended(task Task) Tasks {
	items := make([]Task, len(t.items), len(t.items)+1)
	copy(items, t.items)
	return Tasks{items: append(items, task)}
}

// without returns a new collection without the task at index i.
func (t Tasks) without(i int) Tasks {
	items := make([]Task, 0, len(t.items)-1)
	items = append(items, t.items[:i]...)
	items = append(items, t.items[i+1:]...)
	return Tasks{items: items}
}

// replaced returns a new collection with the task at index i replaced.
func (t Tasks) replaced(i int, task Task) Tasks {
	items := t.All()
	items[i] = task
	return Tasks{items: items}
}

// DefaultSeed returns the collection used on first run.
func DefaultSeed() Tasks {
	return NewTasks(
		Task{ID: "0", Text: "Learn HTML and CSS", Completed: true},
		Task{ID: "1", Text: "Get good at JavaScript", Completed: true},
		Task{ID: "2", Text: "Master React", Completed: false},
		Task{ID: "3", Text: "Discover Redux", Completed: false},
		Task{ID: "4", Text: "Build amazing apps", Completed: false},
	)
}

// CoerceTasks converts an arbitrary decoded value into a collection.
// Anything other than a sequence yields an empty collection; sequence
// elements that are not well-formed task records are skipped.
// The second result reports whether v had the expected shape throughout.
func CoerceTasks(v any) (Tasks, bool) {
	switch seq := v.(type) {
	case Tasks:
		return seq, true
	case []Task:
		return NewTasks(seq...), true
	case []any:
		items := make([]Task, 0, len(seq))
		wellFormed := true
		for _, elem := range seq {
			task, ok := coerceTask(elem)
			if !ok {
				wellFormed = false
				continue
			}
			items = append(items, task)
		}
		return Tasks{items: items}, wellFormed
	default:
		return Tasks{}, false
	}
}

func coerceTask(v any) (Task, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Task{}, false
	}
	id, ok := m["id"].(string)
	if !ok {
		return Task{}, false
	}
	text, ok := m["text"].(string)
	if !ok {
		return Task{}, false
	}
	completed, ok := m["completed"].(bool)
	if !ok {
		return Task{}, false
	}
	return Task{ID: id, Text: text, Completed: completed}, true
}
