package domain

import "fmt"

// StatusFilter selects which tasks are visible.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"       // Every task
	FilterActive    StatusFilter = "active"    // Tasks not yet completed
	FilterCompleted StatusFilter = "completed" // Completed tasks
)

// AllStatusFilters returns all valid filter values in display order.
func AllStatusFilters() []StatusFilter {
	return []StatusFilter{FilterAll, FilterActive, FilterCompleted}
}

// IsValid returns true if the filter is a known value.
func (f StatusFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the filter.
func (f StatusFilter) Display() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return string(f)
	}
}

// Next returns the filter following f in display order, wrapping around.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// ParseStatusFilter converts a string into a StatusFilter.
func ParseStatusFilter(s string) (StatusFilter, error) {
	f := StatusFilter(s)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q (want all, active or completed)", ErrInvalidFilter, s)
	}
	return f, nil
}

// ReduceFilter applies a SetFilter intent.
// Unknown values are rejected and prev is kept.
func ReduceFilter(prev StatusFilter, in SetFilter) (StatusFilter, error) {
	if !in.Value.IsValid() {
		return prev, fmt.Errorf("%w: %q", ErrInvalidFilter, string(in.Value))
	}
	return in.Value, nil
}

// Matches reports whether task is visible under the filter.
func (f StatusFilter) Matches(task Task) bool {
	switch f {
	case FilterActive:
		return !task.Completed
	case FilterCompleted:
		return task.Completed
	default:
		return true
	}
}

// VisibleTasks returns the tasks shown under filter, in collection order.
func VisibleTasks(tasks Tasks, filter StatusFilter) []Task {
	visible := make([]Task, 0, tasks.Len())
	for i := 0; i < tasks.Len(); i++ {
		task := tasks.At(i)
		if filter.Matches(task) {
			visible = append(visible, task)
		}
	}
	return visible
}

// Summary holds task counts for display.
type Summary struct {
	Total     int
	Active    int
	Completed int
}

// Summarize counts tasks by completion state.
func Summarize(tasks Tasks) Summary {
	s := Summary{Total: tasks.Len()}
	for i := 0; i < tasks.Len(); i++ {
		if tasks.At(i).Completed {
			s.Completed++
		} else {
			s.Active++
		}
	}
	return s
}
