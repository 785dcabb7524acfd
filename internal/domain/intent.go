package domain

// Intent describes a requested state change raised by a view.
// All intent types implement this sealed interface.
//
//sumtype:decl
type Intent interface {
	intent()
}

// AddTask appends a new task.
// ID is normally left empty and generated by the reducer.
type AddTask struct {
	Text string
	ID   string
}

func (AddTask) intent() {}

// DeleteTask removes the task with the given id.
type DeleteTask struct {
	ID string
}

func (DeleteTask) intent() {}

// ToggleCompleted flips the completion state of the task with the given id.
type ToggleCompleted struct {
	ID string
}

func (ToggleCompleted) intent() {}

// SetFilter selects the status filter.
type SetFilter struct {
	Value StatusFilter
}

func (SetFilter) intent() {}

// IsTaskIntent reports whether in targets the task collection.
func IsTaskIntent(in Intent) bool {
	switch in.(type) {
	case AddTask, DeleteTask, ToggleCompleted:
		return true
	default:
		return false
	}
}
