package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/xivmods/actorid/internal/config"
	"github.com/xivmods/actorid/internal/database"
	"github.com/xivmods/actorid/internal/dispatcher"
	"github.com/xivmods/actorid/internal/handlers"
	"github.com/xivmods/actorid/internal/logging"
	"github.com/xivmods/actorid/internal/objects"
	intOtel "github.com/xivmods/actorid/internal/otel"
	"github.com/xivmods/actorid/internal/sheets"
	"github.com/xivmods/actorid/pkg/actors"
	"github.com/xivmods/actorid/pkg/gamedata"
)

const appName = "actorctl"

// app holds everything a subcommand needs. The dispatcher and game data are
// built on first use so import-sheet does not load a source it is about to
// replace.
type app struct {
	start time.Time

	logs    *logging.SlogManager
	logger  *slog.Logger
	zlog    zerolog.Logger
	files   []*os.File
	otel    *intOtel.Provider
	store   *gamedata.Store
	objects *objects.Table

	once sync.Once
	disp *dispatcher.Dispatcher
	err  error
}

func newApp(ctx context.Context, opts *rootOptions, changed func(string) bool) (*app, error) {
	a := &app{
		start: time.Now(),
		store: gamedata.NewStore(nil),
		logs:  logging.NewSlogManager(),
	}

	cfgErr := config.Load(opts.configDir)
	if cfgErr != nil {
		config.LoadDefaults()
	}
	applyFlags(opts, changed)

	level := config.GetString("logLevel")
	var logFile *os.File
	if opts.logToFile {
		f, err := a.createLogFile("")
		if err != nil {
			return nil, err
		}
		logFile = f
	}

	if logFile != nil {
		a.zlog = logging.NewZerolog(logFile, level)
	} else {
		a.zlog = logging.NewZerolog(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}, level)
	}

	otelCfg := config.GetOTelConfig()
	var otelOut *os.File
	if otelCfg.Enabled {
		f, err := a.createLogFile("otel")
		if err != nil {
			return nil, err
		}
		otelOut = f
	}
	provider, err := intOtel.New(ctx, intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    fileWriter(otelOut),
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}
	a.otel = provider

	a.logs.Setup(fileWriter(logFile), level, provider.LoggerProvider(), logging.WithContext(func() []slog.Attr {
		return []slog.Attr{slog.Uint64("gamedata", a.store.Version())}
	}))
	a.logger = a.logs.Logger()
	if cfgErr != nil {
		a.logger.Debug("No config file, using defaults", "error", cfgErr)
	}

	return a, nil
}

// createLogFile opens a session log file in logsDir. suffix distinguishes
// the OTel export file from the text log.
func (a *app) createLogFile(suffix string) (*os.File, error) {
	dir := config.GetString("logsDir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}
	path := logging.LogFilePath(dir, appName, a.start)
	if suffix != "" {
		path = path[:len(path)-len(filepath.Ext(path))] + "." + suffix + ".log"
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	a.files = append(a.files, f)
	return f, nil
}

// dispatcher builds the game data, object table and command handlers once.
func (a *app) dispatcher() (*dispatcher.Dispatcher, error) {
	a.once.Do(func() {
		a.err = a.initDispatcher()
	})
	return a.disp, a.err
}

func (a *app) initDispatcher() error {
	snapshot := config.GetSnapshotConfig()
	if snapshot.Path != "" {
		table, err := objects.LoadFile(snapshot.Path)
		if err != nil {
			return err
		}
		a.objects = table
		a.logger.Info("Loaded object snapshot", "path", snapshot.Path, "objects", table.Len())
	} else {
		a.objects = objects.New()
	}

	gameData := config.GetGameDataConfig()
	loader := func() (*gamedata.Tables, error) {
		return loadTables(gameData, a.zlog)
	}
	if t, err := loader(); err != nil {
		a.logger.Warn("Game data unavailable, names will not resolve", "source", gameData.Source, "error", err)
	} else {
		a.store.Swap(t)
	}

	manager := actors.NewManager(a.store,
		actors.WithObjectTable(a.objects),
		actors.WithLogger(a.logs.Component("actors")),
	)

	d, err := dispatcher.New(logging.NewDispatcherLogger(a.zlog))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	handlers.NewService(handlers.Dependencies{
		Actors:      manager,
		Objects:     a.objects,
		Loader:      loader,
		ViewerWorld: config.GetViewerWorld(),
		Logger:      a.logs.Component("handlers"),
	}).Register(d)

	a.disp = d
	return nil
}

// call dispatches one command and returns its result.
func (a *app) call(command string, args ...string) (any, error) {
	d, err := a.dispatcher()
	if err != nil {
		return nil, err
	}
	return d.Dispatch(dispatcher.Event{Command: command, Args: args})
}

func (a *app) close(ctx context.Context) error {
	if a.disp != nil {
		a.disp.Close()
	}
	var errs []error
	if err := a.logs.Flush(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.otel != nil {
		if err := a.otel.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	for _, f := range a.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// loadTables reads lookup tables from the configured source.
func loadTables(cfg config.GameDataConfig, log zerolog.Logger) (*gamedata.Tables, error) {
	switch cfg.Source {
	case config.SourceSheet:
		return sheets.Load(cfg.SheetPath)
	case config.SourceSQLite:
		if _, err := os.Stat(cfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("sheet database: %w", err)
		}
		db := database.NewManager(log)
		if err := db.Open(cfg.SQLitePath); err != nil {
			return nil, err
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return nil, err
		}
		return db.LoadTables()
	}
	return nil, fmt.Errorf("unknown game data source %q", cfg.Source)
}

func applyFlags(opts *rootOptions, changed func(string) bool) {
	if changed("sheet") {
		config.Set("gameData.sheetPath", opts.sheetPath)
		config.Set("gameData.source", config.SourceSheet)
	}
	if changed("sqlite") {
		config.Set("gameData.sqlitePath", opts.sqlitePath)
		if !changed("sheet") {
			config.Set("gameData.source", config.SourceSQLite)
		}
	}
	if changed("source") {
		config.Set("gameData.source", opts.source)
	}
	if changed("snapshot") {
		config.Set("snapshot.path", opts.snapshotPath)
	}
	if changed("log-level") {
		config.Set("logLevel", opts.logLevel)
	}
	if changed("viewer") {
		config.Set("viewerWorld", opts.viewerWorld)
	}
}

// fileWriter avoids handing a typed nil *os.File to an io.Writer parameter.
func fileWriter(f *os.File) io.Writer {
	if f == nil {
		return nil
	}
	return f
}
