package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Joseda-hg/lazytracker/internal/api"
	"github.com/Joseda-hg/lazytracker/internal/app"
	"github.com/Joseda-hg/lazytracker/internal/config"
	"github.com/Joseda-hg/lazytracker/internal/db"
	"github.com/Joseda-hg/lazytracker/internal/logger"
	"github.com/Joseda-hg/lazytracker/internal/tui"
)

type globalFlags struct {
	configPath string
	dbPath     string
	apiURL     string
	logLevel   string
}

// runtime is everything a command needs, wired from config.
type runtime struct {
	cfg     config.Config
	log     *slog.Logger
	client  *api.Client
	session *app.Session

	sqlDB   *sql.DB
	logFile io.Closer
}

func setup(flags globalFlags) (*runtime, error) {
	cfgPath, err := resolveConfigPath(flags.configPath)
	if err != nil {
		return nil, err
	}

	fileCfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(cfgPath, config.FillDefaults(fileCfg, cfgPath)); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	}

	cfg := config.ApplyEnv(fileCfg)
	if flags.apiURL != "" {
		cfg.APIURL = flags.apiURL
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	cfg = config.FillDefaults(cfg, cfgPath)

	log, logFile, err := logger.InitFile(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	sqlDB, err := openDB(cfg.DBPath)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	log.Info("starting", "api_url", cfg.APIURL, "db", cfg.DBPath, "version", Version)
	return &runtime{
		cfg:     cfg,
		log:     log,
		client:  api.NewClient(cfg.APIURL, api.WithLogger(log)),
		session: app.NewSession(db.NewSessionStore(sqlDB)),
		sqlDB:   sqlDB,
		logFile: logFile,
	}, nil
}

func (r *runtime) Close() error {
	return errors.Join(r.sqlDB.Close(), r.logFile.Close())
}

func (r *runtime) options() app.Options {
	return app.Options{
		Logger:      r.log,
		DownloadDir: r.cfg.DownloadDir,
	}
}

// newApp builds an orchestrator that prints notifications instead of drawing
// them.
func (r *runtime) newApp(out, errOut io.Writer) *app.App {
	opts := r.options()
	opts.Notifier = app.NotifierFunc(func(n app.Notification) {
		if n.Level == app.LevelError {
			fmt.Fprintln(errOut, n.Message)
			return
		}
		fmt.Fprintln(out, n.Message)
	})
	return app.New(r.client, r.session, opts)
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}

func openDB(dbPath string) (*sql.DB, error) {
	if err := config.EnsureDir(dbPath); err != nil {
		return nil, err
	}
	return db.Open(dbPath)
}

func runTUI(ctx context.Context, flags globalFlags) error {
	rt, err := setup(flags)
	if err != nil {
		return err
	}
	defer rt.Close()

	return tui.Run(ctx, rt.client, rt.session, rt.options())
}
