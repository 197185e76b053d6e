package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/thushan/holocron/internal/app"
	"github.com/thushan/holocron/internal/config"
	"github.com/thushan/holocron/internal/core/constants"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/logger"
	"github.com/thushan/holocron/internal/util"
	"github.com/thushan/holocron/internal/version"
	"github.com/thushan/holocron/pkg/container"
	"github.com/thushan/holocron/pkg/nerdstats"
	"github.com/thushan/holocron/pkg/profiler"
)

type cliFlags struct {
	filter      domain.FilterSpec
	pprof       string
	page        int
	showVersion bool
	plain       bool
	ephemeral   bool
}

func parseFlags(args []string) (*pflag.FlagSet, *cliFlags, error) {
	fs := pflag.NewFlagSet(version.ShortName, pflag.ContinueOnError)
	config.RegisterFlags(fs)

	f := &cliFlags{}
	fs.BoolVarP(&f.showVersion, "version", "v", false, "print version information and exit")
	fs.BoolVar(&f.plain, "plain", false, "print one page as a table instead of starting the browser")
	fs.IntVarP(&f.page, "page", "p", 1, "page to print in plain mode")
	fs.BoolVar(&f.ephemeral, "ephemeral", false, "keep favorites in memory only, same as --backend memory")
	fs.StringVar(&f.pprof, "pprof", "", "serve pprof on this address, e.g. localhost:6060")

	fs.StringVarP(&f.filter.Search, "search", "q", "", "free text search")
	fs.StringVar(&f.filter.Gender, "gender", "", "gender filter")
	fs.StringVar(&f.filter.EyeColor, "eye-color", "", "eye colour filter")
	fs.StringVar(&f.filter.HairColor, "hair-color", "", "hair colour filter")
	fs.StringVar(&f.filter.HeightMin, "height-min", "", "minimum height in cm")
	fs.StringVar(&f.filter.HeightMax, "height-max", "", "maximum height in cm")
	fs.StringVar(&f.filter.MassMin, "mass-min", "", "minimum mass in kg")
	fs.StringVar(&f.filter.MassMax, "mass-max", "", "maximum mass in kg")
	fs.StringVar(&f.filter.BirthYear, "birth-year", "", "birth year contains, e.g. BBY")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.ephemeral {
		if err := fs.Set("backend", constants.FavoritesBackendMemory); err != nil {
			return nil, nil, err
		}
	}
	return fs, f, nil
}

func main() {
	startTime := time.Now()

	fs, flags, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	vlog := log.New(os.Stderr, "", 0)
	if flags.showVersion {
		version.PrintVersionInfo(true, vlog)
		os.Exit(0)
	}

	cfgPath, _ := fs.GetString("config")
	manager, err := config.Load(cfgPath, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := manager.Config()

	// the browser needs a terminal on both ends, anything else prints
	plain := flags.plain || !util.IsInteractive()
	if plain {
		version.PrintVersionInfo(false, vlog)
	}

	// setup: logging, the terminal only gets logs when the browser is not drawing
	lcfg := app.LoggerConfig(cfg, plain)
	lcfg.Writer = os.Stderr
	logInstance, styledLogger, cleanup, err := logger.NewWithTheme(lcfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	slog.SetDefault(logInstance)
	styledLogger.Info("Initialising", "version", version.Version, "pid", os.Getpid())
	if container.IsContainerised() {
		styledLogger.Info("Running in a container", "runtime", container.Runtime(), "data_dir", config.DefaultDataDir)
	}
	if path := manager.ConfigFileUsed(); path != "" {
		styledLogger.InfoWithPath("Loaded configuration", path)
	}

	// setup: graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flags.pprof != "" {
		prof := profiler.Start(flags.pprof, styledLogger)
		defer func() {
			_ = prof.Stop(context.Background())
		}()
	}

	application, err := app.New(ctx, manager, styledLogger, app.Options{
		Plain:  plain,
		Filter: flags.filter,
		Page:   flags.page,
	})
	if err != nil {
		logger.FatalWithLogger(logInstance, "Failed to create application", "error", err)
	}

	runErr := application.Start(ctx)

	if err := application.Stop(context.Background()); err != nil {
		styledLogger.Error("Error during shutdown", "error", err)
	}

	styledLogger.Debug("Process stats", nerdstats.Snapshot(startTime).LogArgs()...)

	if runErr != nil {
		styledLogger.Error("Holocron exited with an error", "error", runErr)
		cleanup()
		os.Exit(1)
	}
	styledLogger.Info("Holocron has shutdown")
}
