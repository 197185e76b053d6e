package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/thushan/holocron/internal/core/constants"
	"github.com/thushan/holocron/internal/core/domain"
)

const (
	EnvPrefix         = "HOLOCRON"
	EnvConfigFile     = "HOLOCRON_CONFIG_FILE"
	DefaultConfigName = "config"
	DefaultDataDir    = ".holocron"

	DefaultLoadMoreDelay = 500 * time.Millisecond
	DefaultLocale        = "en"
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type:              constants.SourceTypeSWAPI,
			BaseURL:           constants.DefaultSWAPIBaseURL,
			Timeout:           10 * time.Second,
			MaxRetries:        constants.DefaultMaxRetries,
			RetryBackoff:      constants.DefaultRetryBackoff,
			ConcurrentFetches: 4,
			RequestsPerSecond: 10,
		},
		Favorites: FavoritesConfig{
			Backend:   constants.FavoritesBackendBadger,
			Path:      filepath.Join(DefaultDataDir, "favorites"),
			Namespace: constants.DefaultFavoritesNamespace,
		},
		View: ViewConfig{
			PageSize:      domain.DefaultPageSize,
			Mode:          string(domain.PagingDiscrete),
			Locale:        DefaultLocale,
			LoadMoreDelay: DefaultLoadMoreDelay,
			Sort:          "name:asc",
		},
		Export: ExportConfig{
			Directory: ".",
		},
		Logging: LoggingConfig{
			Level:      "info",
			FileOutput: true,
			Dir:        filepath.Join(DefaultDataDir, "logs"),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
			Theme:      "default",
		},
	}
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"source":         "source.type",
	"base-url":       "source.base_url",
	"file":           "source.file",
	"records-path":   "source.records_path",
	"max-retries":    "source.max_retries",
	"backend":        "favorites.backend",
	"favorites-path": "favorites.path",
	"page-size":      "view.page_size",
	"mode":           "view.mode",
	"locale":         "view.locale",
	"sort":           "view.sort",
	"export-dir":     "export.directory",
	"log-level":      "logging.level",
	"theme":          "logging.theme",
}

// RegisterFlags adds the config overriding flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()

	fs.StringP("config", "c", "", "path to config file")
	fs.String("source", d.Source.Type, "record source: swapi or file")
	fs.String("base-url", d.Source.BaseURL, "SWAPI base url")
	fs.String("file", d.Source.File, "records file for the file source (.json or .yaml)")
	fs.String("records-path", d.Source.RecordsPath, "JSONPath to the record list inside a JSON records file")
	fs.Int("max-retries", d.Source.MaxRetries, "retries for network and server errors")
	fs.String("backend", d.Favorites.Backend, "favorites backend: badger, sqlite or memory")
	fs.String("favorites-path", d.Favorites.Path, "favorites storage location")
	fs.IntP("page-size", "n", d.View.PageSize, "records per page")
	fs.StringP("mode", "m", d.View.Mode, "paging mode: discrete or cumulative")
	fs.String("locale", d.View.Locale, "collation locale used for sorting")
	fs.StringP("sort", "s", d.View.Sort, "sort as field[:asc|desc]")
	fs.String("export-dir", d.Export.Directory, "directory for spreadsheet exports")
	fs.String("log-level", d.Logging.Level, "log level: debug, info, warn, error")
	fs.String("theme", d.Logging.Theme, "colour theme: default, dark, light")
}

// Manager owns the viper instance behind a loaded configuration and
// supports hot reload
type Manager struct {
	v       *viper.Viper
	current *Config
	mu      sync.RWMutex
}

// Load reads configuration from defaults, the config file, HOLOCRON_*
// environment variables and flags, in increasing precedence. configFile
// may be empty to search ./config.yaml and ./config/config.yaml.
func Load(configFile string, flags *pflag.FlagSet) (*Manager, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = os.Getenv(EnvConfigFile)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	return &Manager{v: v, current: cfg}, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Config returns the current configuration
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// ConfigFileUsed is the file the configuration was read from, if any
func (m *Manager) ConfigFileUsed() string {
	return m.v.ConfigFileUsed()
}

// Watch reloads the configuration whenever the config file changes and
// hands the old and new values to onChange. Invalid edits are reported
// through onError and the previous configuration is kept.
func (m *Manager) Watch(onChange func(old, updated *Config), onError func(error)) bool {
	if m.v.ConfigFileUsed() == "" {
		return false
	}

	m.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		updated, err := decode(m.v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			}
			return
		}

		m.mu.Lock()
		old := m.current
		m.current = updated
		m.mu.Unlock()

		if onChange != nil {
			onChange(old, updated)
		}
	})
	m.v.WatchConfig()
	return true
}

// Validate rejects configurations the application cannot start with
func (c *Config) Validate() error {
	switch c.Source.Type {
	case constants.SourceTypeSWAPI:
		if c.Source.BaseURL == "" {
			return errors.New("source.base_url is required for the swapi source")
		}
	case constants.SourceTypeFile:
		if c.Source.File == "" {
			return errors.New("source.file is required for the file source")
		}
	default:
		return fmt.Errorf("unknown source.type %q", c.Source.Type)
	}

	if c.Source.MaxRetries < 0 {
		return fmt.Errorf("source.max_retries must not be negative, got %d", c.Source.MaxRetries)
	}
	if c.Source.ConcurrentFetches < 1 {
		return fmt.Errorf("source.concurrent_fetches must be at least 1, got %d", c.Source.ConcurrentFetches)
	}

	switch c.Favorites.Backend {
	case constants.FavoritesBackendBadger, constants.FavoritesBackendSQLite, constants.FavoritesBackendMemory:
	default:
		return fmt.Errorf("unknown favorites.backend %q", c.Favorites.Backend)
	}

	if c.View.PageSize < 1 {
		return fmt.Errorf("view.page_size must be positive, got %d", c.View.PageSize)
	}
	if _, err := domain.ParsePagingMode(c.View.Mode); err != nil {
		return fmt.Errorf("view.mode: %w", err)
	}
	if _, err := domain.ParseSortSpec(c.View.Sort); err != nil {
		return fmt.Errorf("view.sort: %w", err)
	}
	if _, err := language.Parse(c.View.Locale); err != nil {
		return fmt.Errorf("view.locale %q: %w", c.View.Locale, err)
	}
	return nil
}

// PagingMode returns the parsed view mode, Validate guarantees it parses
func (c *Config) PagingMode() domain.PagingMode {
	mode, _ := domain.ParsePagingMode(c.View.Mode)
	return mode
}

// SortSpec returns the parsed default sort, nil for source order
func (c *Config) SortSpec() *domain.SortSpec {
	spec, _ := domain.ParseSortSpec(c.View.Sort)
	return spec
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("source.type", d.Source.Type)
	v.SetDefault("source.base_url", d.Source.BaseURL)
	v.SetDefault("source.file", d.Source.File)
	v.SetDefault("source.records_path", d.Source.RecordsPath)
	v.SetDefault("source.timeout", d.Source.Timeout)
	v.SetDefault("source.max_retries", d.Source.MaxRetries)
	v.SetDefault("source.retry_backoff", d.Source.RetryBackoff)
	v.SetDefault("source.concurrent_fetches", d.Source.ConcurrentFetches)
	v.SetDefault("source.requests_per_second", d.Source.RequestsPerSecond)

	v.SetDefault("favorites.backend", d.Favorites.Backend)
	v.SetDefault("favorites.path", d.Favorites.Path)
	v.SetDefault("favorites.namespace", d.Favorites.Namespace)

	v.SetDefault("view.page_size", d.View.PageSize)
	v.SetDefault("view.mode", d.View.Mode)
	v.SetDefault("view.locale", d.View.Locale)
	v.SetDefault("view.load_more_delay", d.View.LoadMoreDelay)
	v.SetDefault("view.sort", d.View.Sort)

	v.SetDefault("export.directory", d.Export.Directory)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file_output", d.Logging.FileOutput)
	v.SetDefault("logging.dir", d.Logging.Dir)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age", d.Logging.MaxAge)
	v.SetDefault("logging.theme", d.Logging.Theme)
}
