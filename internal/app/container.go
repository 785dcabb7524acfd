// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/infra/badgerstore"
	"github.com/runoshun/tasklist/internal/infra/config"
	"github.com/runoshun/tasklist/internal/infra/crypto"
	"github.com/runoshun/tasklist/internal/infra/gitstore"
	"github.com/runoshun/tasklist/internal/infra/jsonstore"
	"github.com/runoshun/tasklist/internal/infra/logging"
	"github.com/runoshun/tasklist/internal/infra/memstore"
	"github.com/runoshun/tasklist/internal/infra/watch"
	"github.com/runoshun/tasklist/internal/persist"
	"github.com/runoshun/tasklist/internal/state"
	"github.com/runoshun/tasklist/internal/usecase"
)

// Options are the command-line inputs that shape the container.
// They are bound to flags before Open is called.
type Options struct {
	ConfigPath      string // --config, falling back to TASKLIST_CONFIG
	Backend         string // --store; overrides [store] backend
	DataDir         string // Default: $XDG_DATA_HOME/tasklist
	GlobalConfigDir string // Default: $XDG_CONFIG_HOME/tasklist
}

// Config holds the resolved application paths.
type Config struct {
	DataDir   string // Directory for the default store and logs
	StorePath string // File, repository or badger directory of the active backend
	LogDir    string // Directory holding tasklist.log
	Backend   string // Active backend name
}

// newConfig resolves paths for the loaded configuration.
func newConfig(dataDir, backend string, cfg *domain.Config) Config {
	storePath := cfg.Store.Path
	if storePath == "" {
		switch backend {
		case domain.BackendFile:
			storePath = domain.StorePath(dataDir)
		case domain.BackendGit:
			storePath = "."
		case domain.BackendBadger:
			storePath = domain.BadgerPath(dataDir)
		}
	}
	logDir := cfg.Log.Dir
	if logDir == "" {
		logDir = filepath.Join(dataDir, "logs")
	}
	return Config{
		DataDir:   dataDir,
		StorePath: storePath,
		LogDir:    logDir,
		Backend:   backend,
	}
}

// Container provides dependency injection for the application.
// It holds the live store and its persistence wiring, and provides factory
// methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	KV            domain.KeyValueStore
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	Store     *state.Store
	Adapter   *persist.Adapter
	AppConfig *domain.Config
	watcher   *watch.Watcher
	logFile   *logging.Logger

	Seed    domain.Tasks
	Options Options
	Config  Config
	opened  bool
}

// New creates a Container. Nothing is opened until Open or LoadConfig.
func New(opts Options) *Container {
	return &Container{Options: opts}
}

// NewWithDeps creates an already opened Container around the given store,
// for testing.
func NewWithDeps(cfg Config, kv domain.KeyValueStore, store *state.Store, adapter *persist.Adapter, seed domain.Tasks, logger domain.Logger) *Container {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		KV:            kv,
		ConfigLoader:  config.NewLoaderWithGlobalDir("", ""),
		ConfigManager: config.NewManagerWithGlobalDir(""),
		Logger:        logger,
		Store:         store,
		Adapter:       adapter,
		AppConfig:     domain.NewDefaultConfig(),
		Seed:          seed,
		Config:        cfg,
		opened:        true,
	}
}

// configure builds the config loader and manager from Options.
func (c *Container) configure() {
	if c.ConfigLoader != nil {
		return
	}
	explicit := c.Options.ConfigPath
	if explicit == "" {
		explicit = os.Getenv(config.EnvConfig)
	}
	if c.Options.GlobalConfigDir != "" {
		c.ConfigLoader = config.NewLoaderWithGlobalDir(explicit, c.Options.GlobalConfigDir)
		c.ConfigManager = config.NewManagerWithGlobalDir(c.Options.GlobalConfigDir)
		return
	}
	c.ConfigLoader = config.NewLoader(explicit)
	c.ConfigManager = config.NewManager()
}

// LoadConfig loads the effective configuration once.
func (c *Container) LoadConfig() (*domain.Config, error) {
	if c.AppConfig != nil {
		return c.AppConfig, nil
	}
	c.configure()
	cfg, err := c.ConfigLoader.Load()
	if err != nil {
		return nil, err
	}
	c.AppConfig = cfg
	return cfg, nil
}

// Open loads configuration, opens the storage backend and builds the live
// store from the stored collection (or the seed). It is a no-op when the
// container is already open.
func (c *Container) Open(ctx context.Context) error {
	if c.opened {
		return nil
	}
	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	backend := cfg.Store.Backend
	if c.Options.Backend != "" {
		backend = c.Options.Backend
	}
	dataDir := c.Options.DataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	c.Config = newConfig(dataDir, backend, cfg)

	c.logFile = logging.New(c.Config.LogDir, logging.ParseLevel(cfg.Log.Level))
	c.Logger = c.logFile

	kv, err := c.openBackend(cfg)
	if err != nil {
		c.abortOpen(nil)
		return err
	}
	if cfg.Store.EncryptionKey != "" {
		enc, err := crypto.NewEncryptor(cfg.Store.EncryptionKey)
		if err != nil {
			c.abortOpen(kv)
			return err
		}
		kv = crypto.NewSealedStore(kv, enc)
	}

	seed := domain.DefaultSeed()
	if cfg.Tasks.SeedFile != "" {
		seed, err = persist.LoadSeedFile(cfg.Tasks.SeedFile, domain.UUIDGenerator{})
		if err != nil {
			c.abortOpen(kv)
			return fmt.Errorf("load seed: %w", err)
		}
	}

	// A stored value that cannot be read is an error, never replaced by the seed.
	adapter := persist.New(kv, cfg.Store.Key, c.Logger)
	tasks, err := adapter.LoadOrSeed(ctx, seed)
	if err != nil {
		c.abortOpen(kv)
		return fmt.Errorf("load tasks from %s store: %w", backend, err)
	}

	reducer := domain.NewTaskReducer(domain.WithTextValidation(cfg.Tasks.ValidateText))
	c.KV = kv
	c.Seed = seed
	c.Adapter = adapter
	c.Store = state.New(reducer, tasks)
	c.Adapter.Attach(c.Store)
	c.Logger.Debug("app", fmt.Sprintf("opened %s store at %q", backend, c.Config.StorePath))

	c.opened = true
	return nil
}

// abortOpen releases what a failed Open acquired.
func (c *Container) abortOpen(kv domain.KeyValueStore) {
	if kv != nil {
		_ = kv.Close()
	}
	_ = c.logFile.Close()
	c.logFile = nil
	c.Logger = domain.NopLogger{}
}

// openBackend opens the key-value store named by c.Config.Backend.
func (c *Container) openBackend(cfg *domain.Config) (domain.KeyValueStore, error) {
	switch c.Config.Backend {
	case domain.BackendFile:
		return jsonstore.New(c.Config.StorePath), nil
	case domain.BackendGit:
		return gitstore.New(c.Config.StorePath, cfg.Store.Namespace)
	case domain.BackendBadger:
		return badgerstore.Open(badgerstore.Options{
			Logger:    c.Logger,
			Path:      c.Config.StorePath,
			Namespace: cfg.Store.Namespace,
			InMemory:  cfg.Store.InMemory,
		})
	case domain.BackendMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want file, git, badger or memory)", domain.ErrUnknownBackend, c.Config.Backend)
	}
}

// WatchStore starts following external edits to the store file in the
// background. Only the file backend can be watched; other backends are a no-op.
func (c *Container) WatchStore(ctx context.Context) error {
	if c.Config.Backend != domain.BackendFile || c.watcher != nil || c.Adapter == nil {
		return nil
	}
	w, err := watch.New(c.Config.StorePath, c.Adapter, c.Store, c.Seed, c.Logger)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.Config.StorePath), 0o750); err != nil {
		_ = w.Stop()
		return fmt.Errorf("create store directory: %w", err)
	}
	c.watcher = w
	go func() {
		if err := w.Start(ctx); err != nil {
			c.Logger.Warn("watch", err.Error())
		}
	}()
	return nil
}

// Close flushes pending writes and releases every resource.
func (c *Container) Close() error {
	var errs []error
	if c.watcher != nil {
		errs = append(errs, c.watcher.Stop())
		c.watcher = nil
	}
	if c.Adapter != nil {
		errs = append(errs, c.Adapter.Close())
	}
	if c.KV != nil {
		errs = append(errs, c.KV.Close())
	}
	if c.logFile != nil {
		errs = append(errs, c.logFile.Close())
	}
	return errors.Join(errs...)
}

// UseCase factory methods

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Store)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Store)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Store, c.Logger)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store)
}

// ResetTasksUseCase returns a new ResetTasks use case.
func (c *Container) ResetTasksUseCase() *usecase.ResetTasks {
	return usecase.NewResetTasks(c.Store, c.Adapter, c.Seed)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	c.configure()
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	c.configure()
	return usecase.NewInitConfig(c.ConfigManager)
}
