package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thushan/holocron/internal/adapter/dataview"
	"github.com/thushan/holocron/internal/adapter/favorites"
	"github.com/thushan/holocron/internal/adapter/source"
	"github.com/thushan/holocron/internal/adapter/stats"
	"github.com/thushan/holocron/internal/config"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/core/ports"
	"github.com/thushan/holocron/internal/logger"
	"github.com/thushan/holocron/internal/tui"
	"github.com/thushan/holocron/pkg/eventbus"
	"github.com/thushan/holocron/pkg/format"
)

// Options are the per-run choices made on the command line
type Options struct {
	Output io.Writer
	Filter domain.FilterSpec
	Page   int
	Plain  bool
}

// Application wires the record source, favorites and data view together
// and runs either the browser or a single plain render
type Application struct {
	configMu  sync.RWMutex
	config    *config.Config
	manager   *config.Manager
	logger    *logger.StyledLogger
	source    ports.RecordSource
	stats     *stats.Collector
	favorites *favorites.Set
	engine    *dataview.Engine
	reloads   *eventbus.EventBus[*config.Config]
	program   *tea.Program
	options   Options
}

// New creates a new application instance
func New(ctx context.Context, manager *config.Manager, log *logger.StyledLogger, opts Options) (*Application, error) {
	cfg := manager.Config()

	fetchStats := stats.NewCollector()
	srcCfg := sourceConfig(cfg)
	srcCfg.Stats = fetchStats

	src, err := source.NewSource(srcCfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create record source: %w", err)
	}

	favs, err := favorites.New(ctx, favoritesConfig(cfg), log)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites: %w", err)
	}

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	app := &Application{
		manager:   manager,
		logger:    log,
		source:    src,
		stats:     fetchStats,
		favorites: favs,
		engine:    dataview.NewEngine(cfg.View.Locale),
		reloads:   eventbus.New[*config.Config](4),
		options:   opts,
	}
	app.setConfig(cfg)

	log.Info("Initialised",
		"source", src.Name(),
		"favorites", favs.Backend(),
		"locale", app.engine.Comparator().Locale(),
		"plain", opts.Plain)
	return app, nil
}

// Start runs until the browser quits or ctx is cancelled. Plain mode
// returns as soon as the view is printed.
func (a *Application) Start(ctx context.Context) error {
	if a.options.Plain {
		return a.runPlain(ctx)
	}
	return a.runBrowser(ctx)
}

// Stop releases the favorites store and the reload bus
func (a *Application) Stop(ctx context.Context) error {
	a.reloads.Shutdown()
	a.stats.Log(a.logger)

	if err := a.favorites.Close(); err != nil {
		return fmt.Errorf("closing favorites: %w", err)
	}
	return nil
}

func (a *Application) pagingFromConfig(cfg *config.Config) domain.PagingState {
	return domain.NewPagingState(cfg.PagingMode(), cfg.View.PageSize)
}

func (a *Application) runPlain(ctx context.Context) error {
	cfg := a.getConfig()

	start := time.Now()
	records, err := a.source.FetchAll(ctx)
	if err != nil {
		msg := domain.UserMessage(err)
		a.logger.Error(msg.Title, "description", msg.Description, "error", err)
		return fmt.Errorf("fetching records: %w", err)
	}
	a.logger.InfoWithCount("Fetched records from "+a.source.Name(), len(records), "elapsed", format.Duration(time.Since(start)))

	paging := a.pagingFromConfig(cfg).WithPage(a.options.Page)
	view := a.engine.DeriveView(records, a.options.Filter, cfg.SortSpec(), paging)
	if len(view.Visible) == 0 && view.TotalPages > 0 {
		// asked for a page past the end, show the last one instead
		view = a.engine.DeriveView(records, a.options.Filter, cfg.SortSpec(), paging.WithPage(view.TotalPages))
	}

	return tui.RenderPlain(a.options.Output, view, a.favorites.Contains)
}

func (a *Application) runBrowser(ctx context.Context) error {
	cfg := a.getConfig()

	model := tui.New(ctx, tui.Options{
		Source:        a.source,
		Favorites:     a.favorites,
		Engine:        a.engine,
		Logger:        a.logger,
		Sort:          cfg.SortSpec(),
		Theme:         cfg.Logging.Theme,
		ExportDir:     cfg.Export.Directory,
		Paging:        a.pagingFromConfig(cfg),
		LoadMoreDelay: cfg.View.LoadMoreDelay,
	})
	a.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	reloads, unsubscribe := a.reloads.Subscribe(ctx)
	defer unsubscribe()
	go a.forwardReloads(reloads)

	if a.manager.Watch(a.onConfigChange, func(err error) {
		a.logger.Warn("Ignoring config change", "error", err)
	}) {
		a.logger.InfoWithPath("Watching config for changes", a.manager.ConfigFileUsed())
	}

	if _, err := a.program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("browser exited: %w", err)
	}
	return nil
}

// onConfigChange runs on the file watcher goroutine
func (a *Application) onConfigChange(old, updated *config.Config) {
	a.setConfig(updated)

	if old.View.PageSize != updated.View.PageSize {
		a.logger.InfoConfigChange("view.page_size", old.View.PageSize, updated.View.PageSize)
	}
	if old.View.Mode != updated.View.Mode {
		a.logger.InfoConfigChange("view.mode", old.View.Mode, updated.View.Mode)
	}
	if old.Source != updated.Source || old.Favorites != updated.Favorites {
		a.logger.Warn("Source and favorites changes apply on the next start")
	}

	a.reloads.Publish(updated)
}

func (a *Application) forwardReloads(reloads <-chan *config.Config) {
	for cfg := range reloads {
		a.program.Send(tui.ConfigChangedMsg{
			PageSize: cfg.View.PageSize,
			Mode:     cfg.PagingMode(),
		})
	}
}
