// Package shared holds helpers used by several use cases.
package shared

import (
	"fmt"
	"strings"

	"github.com/runoshun/tasklist/internal/domain"
)

// ResolveTaskID maps ref to a task id in tasks.
// An exact id match wins; otherwise ref must be a prefix of exactly one id.
// It returns domain.ErrTaskNotFound when nothing matches and
// domain.ErrAmbiguousID when several ids share the prefix.
func ResolveTaskID(tasks domain.Tasks, ref string) (string, error) {
	if ref == "" {
		return "", domain.ErrTaskNotFound
	}
	if tasks.Index(ref) >= 0 {
		return ref, nil
	}

	var matches []string
	for _, id := range tasks.IDs() {
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", domain.ErrTaskNotFound
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %s", domain.ErrAmbiguousID, ref, strings.Join(matches, ", "))
	}
}
