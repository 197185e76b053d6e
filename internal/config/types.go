package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Favorites FavoritesConfig `yaml:"favorites" mapstructure:"favorites"`
	View      ViewConfig      `yaml:"view" mapstructure:"view"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// SourceConfig holds record source configuration
type SourceConfig struct {
	Type              string        `yaml:"type" mapstructure:"type"`
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	File              string        `yaml:"file" mapstructure:"file"`
	RecordsPath       string        `yaml:"records_path" mapstructure:"records_path"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxRetries        int           `yaml:"max_retries" mapstructure:"max_retries"`
	RetryBackoff      time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`
	ConcurrentFetches int           `yaml:"concurrent_fetches" mapstructure:"concurrent_fetches"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// FavoritesConfig holds favorites persistence configuration
type FavoritesConfig struct {
	Backend   string `yaml:"backend" mapstructure:"backend"`
	Path      string `yaml:"path" mapstructure:"path"`
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

// ViewConfig holds the listing defaults
type ViewConfig struct {
	Mode          string        `yaml:"mode" mapstructure:"mode"`
	Locale        string        `yaml:"locale" mapstructure:"locale"`
	Sort          string        `yaml:"sort" mapstructure:"sort"`
	PageSize      int           `yaml:"page_size" mapstructure:"page_size"`
	LoadMoreDelay time.Duration `yaml:"load_more_delay" mapstructure:"load_more_delay"`
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	Directory string `yaml:"directory" mapstructure:"directory"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Dir        string `yaml:"dir" mapstructure:"dir"`
	Theme      string `yaml:"theme" mapstructure:"theme"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	FileOutput bool   `yaml:"file_output" mapstructure:"file_output"`
}
