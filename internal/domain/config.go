package domain

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"
)

//go:embed config_template.toml
var configTemplateContent string

// Store backend names.
const (
	BackendFile   = "file"
	BackendGit    = "git"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Defaults.
const (
	DefaultBackend   = BackendFile
	DefaultTasksKey  = "tasks"
	DefaultNamespace = "tasklist"
	DefaultLogLevel  = "info"
)

// File and directory names.
const (
	AppDirName     = "tasklist"
	ConfigFileName = "config.toml"
	StoreFileName  = "store.json"
	BadgerDirName  = "badger"
	LogFileName    = "tasklist.log"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string    `toml:"-"`
	Sources  []string    `toml:"-"` // Files merged into this config, in order
	Store    StoreConfig `toml:"store"`
	Tasks    TasksConfig `toml:"tasks"`
	Log      LogConfig   `toml:"log"`
}

// StoreConfig holds durable storage settings from [store] section.
type StoreConfig struct {
	Backend       string `toml:"backend,omitempty" validate:"omitempty,oneof=file git badger memory"`
	Path          string `toml:"path,omitempty"`                                                  // File path, repository path or badger directory
	Key           string `toml:"key,omitempty" validate:"omitempty,printascii,excludesall=/"`     // Key the task collection is stored under
	Namespace     string `toml:"namespace,omitempty" validate:"omitempty,alphanum"`               // Git ref namespace
	EncryptionKey string `toml:"encryption_key,omitempty" validate:"omitempty,hexadecimal,len=64"` // AES-256 key, hex encoded
	InMemory      bool   `toml:"in_memory,omitempty"`                                             // Badger in-memory mode
}

// TasksConfig holds task settings from [tasks] section.
type TasksConfig struct {
	SeedFile     string `toml:"seed_file,omitempty"`     // YAML file replacing the built-in seed
	ValidateText bool   `toml:"validate_text,omitempty"` // Reject blank task text
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Dir   string `toml:"dir,omitempty"` // Log directory (default: <data dir>/logs)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   DefaultBackend,
			Key:       DefaultTasksKey,
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// configValidate checks Config field tags. Field names in errors use the TOML keys.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	configValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	fe := verrs[0]
	// Namespace is "Config.store.backend"; drop the root type name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	if fe.Param() != "" {
		return fmt.Errorf("%w: %s = %q fails %s=%s", ErrInvalidConfig, field, fe.Value(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %s = %q fails %s", ErrInvalidConfig, field, fe.Value(), fe.Tag())
}

// RenderConfigTemplate renders the commented config template with cfg's values.
func RenderConfigTemplate(cfg *Config) string {
	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return configTemplateContent
	}
	return buf.String()
}

// GlobalAppDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalAppDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalAppDir(configHome), ConfigFileName)
}

// DataDir returns the data directory.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// StorePath returns the default path of the file backend.
func StorePath(dataDir string) string {
	return filepath.Join(dataDir, StoreFileName)
}

// BadgerPath returns the default badger directory.
func BadgerPath(dataDir string) string {
	return filepath.Join(dataDir, BadgerDirName)
}

// LogPath returns the path to the log file inside logDir.
func LogPath(logDir string) string {
	return filepath.Join(logDir, LogFileName)
}
