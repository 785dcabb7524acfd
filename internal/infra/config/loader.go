// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/tasklist/internal/domain"
)

// EnvConfig names an extra config file merged over the global one.
const EnvConfig = "TASKLIST_CONFIG"

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	explicitPath  string // File given by --config or TASKLIST_CONFIG; must exist when set
	globalConfDir string // Path to global config directory (e.g., ~/.config/tasklist)
}

// NewLoader creates a new Loader.
func NewLoader(explicitPath string) *Loader {
	return &Loader{
		explicitPath:  explicitPath,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(explicitPath, globalConfDir string) *Loader {
	return &Loader{
		explicitPath:  explicitPath,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalAppDir(configHome)
}

// DefaultDataDir returns the directory holding the default store and logs.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), domain.AppDirName)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- explicit file.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if global != nil {
		base = mergeConfigs(base, global)
	}

	if l.explicitPath != "" {
		explicit, err := l.loadFile(l.explicitPath)
		if err != nil {
			return nil, err
		}
		base = mergeConfigs(base, explicit)
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	globalPath := filepath.Join(l.globalConfDir, domain.ConfigFileName)
	return l.loadFile(globalPath)
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
	}

	cfg := convertRawToDomainConfig(raw)
	cfg.Sources = []string{path}
	return cfg, nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					setString(&res.Store.Backend, v)
				case "path":
					setString(&res.Store.Path, v)
				case "key":
					setString(&res.Store.Key, v)
				case "namespace":
					setString(&res.Store.Namespace, v)
				case "encryption_key":
					setString(&res.Store.EncryptionKey, v)
				case "in_memory":
					setBool(&res.Store.InMemory, v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "tasks":
			for k, v := range m {
				switch k {
				case "validate_text":
					setBool(&res.Tasks.ValidateText, v)
				case "seed_file":
					setString(&res.Tasks.SeedFile, v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [tasks]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					setString(&res.Log.Level, v)
				case "dir":
					setString(&res.Log.Dir, v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func setString(dst *string, v any) {
	if s, ok := v.(string); ok {
		*dst = s
	}
}

func setBool(dst *bool, v any) {
	if b, ok := v.(bool); ok {
		*dst = b
	}
}

// mergeConfigs merges two configs, with override taking precedence.
// Boolean switches can only be turned on by an override.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store:    base.Store,
		Tasks:    base.Tasks,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
		Sources:  append([]string{}, base.Sources...),
	}

	result.Warnings = append(result.Warnings, override.Warnings...)
	result.Sources = append(result.Sources, override.Sources...)

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Store.Key != "" {
		result.Store.Key = override.Store.Key
	}
	if override.Store.Namespace != "" {
		result.Store.Namespace = override.Store.Namespace
	}
	if override.Store.EncryptionKey != "" {
		result.Store.EncryptionKey = override.Store.EncryptionKey
	}
	if override.Store.InMemory {
		result.Store.InMemory = true
	}
	if override.Tasks.ValidateText {
		result.Tasks.ValidateText = true
	}
	if override.Tasks.SeedFile != "" {
		result.Tasks.SeedFile = override.Tasks.SeedFile
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.Dir != "" {
		result.Log.Dir = override.Log.Dir
	}

	return result
}
