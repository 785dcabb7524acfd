package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/tasklist/internal/domain"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown format (want json or yaml)")

// Export writes tasks to w in the given format.
func Export(w io.Writer, tasks domain.Tasks, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks.All())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks.All()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Entry is a task read from a seed or import file.
// A bare string in the file becomes an Entry with only Text set.
type Entry struct {
	ID        string `yaml:"id"`
	Text      string `yaml:"text"`
	Completed bool   `yaml:"completed"`
}

// UnmarshalYAML accepts either a scalar text or a mapping.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Text = node.Value
		return nil
	}
	type plain Entry
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// ReadEntries parses a YAML (or JSON) list of tasks.
func ReadEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse task list: %w", err)
	}
	return entries, nil
}

// LoadSeedFile reads a seed collection from path.
// Entries without an id get one from ids; duplicate ids are replaced.
func LoadSeedFile(path string, ids domain.IDGenerator) (domain.Tasks, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Tasks{}, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := ReadEntries(f)
	if err != nil {
		return domain.Tasks{}, err
	}

	reducer := domain.NewTaskReducer(domain.WithIDGenerator(ids))
	tasks := domain.Tasks{}
	for _, e := range entries {
		tasks, err = reducer.Reduce(tasks, domain.AddTask{Text: e.Text, ID: e.ID})
		if err != nil {
			return domain.Tasks{}, err
		}
		if e.Completed {
			last := tasks.At(tasks.Len() - 1)
			tasks, err = reducer.Reduce(tasks, domain.ToggleCompleted{ID: last.ID})
			if err != nil {
				return domain.Tasks{}, err
			}
		}
	}
	return tasks, nil
}
