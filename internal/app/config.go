package app

import (
	"github.com/thushan/holocron/internal/adapter/favorites"
	"github.com/thushan/holocron/internal/adapter/source"
	"github.com/thushan/holocron/internal/config"
	"github.com/thushan/holocron/internal/logger"
)

// setConfig - minimal thread safety addition
func (a *Application) setConfig(cfg *config.Config) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.config = cfg
}

// getConfig - helper for safe access
func (a *Application) getConfig() *config.Config {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return a.config
}

func sourceConfig(cfg *config.Config) source.Config {
	return source.Config{
		Type:              cfg.Source.Type,
		BaseURL:           cfg.Source.BaseURL,
		File:              cfg.Source.File,
		RecordsPath:       cfg.Source.RecordsPath,
		Timeout:           cfg.Source.Timeout,
		MaxRetries:        cfg.Source.MaxRetries,
		RetryBackoff:      cfg.Source.RetryBackoff,
		ConcurrentFetches: cfg.Source.ConcurrentFetches,
		RequestsPerSecond: cfg.Source.RequestsPerSecond,
	}
}

func favoritesConfig(cfg *config.Config) favorites.Config {
	return favorites.Config{
		Backend:   cfg.Favorites.Backend,
		Path:      cfg.Favorites.Path,
		Namespace: cfg.Favorites.Namespace,
	}
}

// LoggerConfig maps the logging section. Terminal output is only wanted
// when the browser is not drawing the screen.
func LoggerConfig(cfg *config.Config, terminal bool) *logger.Config {
	return &logger.Config{
		Level:          cfg.Logging.Level,
		LogDir:         cfg.Logging.Dir,
		Theme:          cfg.Logging.Theme,
		MaxSize:        cfg.Logging.MaxSize,
		MaxBackups:     cfg.Logging.MaxBackups,
		MaxAge:         cfg.Logging.MaxAge,
		FileOutput:     cfg.Logging.FileOutput,
		TerminalOutput: terminal,
	}
}
