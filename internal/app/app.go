package app

import (
	"context"
	"fmt"

	"github.com/dotkeep/dotkeep/internal/adapter/archive"
	"github.com/dotkeep/dotkeep/internal/adapter/store"
	"github.com/dotkeep/dotkeep/internal/config"
	"github.com/dotkeep/dotkeep/internal/domain"
	"github.com/dotkeep/dotkeep/internal/infrastructure/logger"
	"github.com/dotkeep/dotkeep/internal/infrastructure/scheduler"
	"github.com/dotkeep/dotkeep/internal/infrastructure/watcher"
	"github.com/dotkeep/dotkeep/internal/usecase"
)

// App wires configuration, logging and the use cases together for the
// CLI. One App serves one working directory.
type App struct {
	WorkDir   string
	Config    *config.Config
	Logger    *logger.Logger
	Store     *store.Store
	Backup    *usecase.Backup
	Validator *usecase.Validator
	Restorer  *usecase.Restorer
	Sync      *usecase.Sync
	Archiver  *archive.TarGz
}

func New(workDir string) (*App, error) {
	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level: cfg.App.LogLevel,
		File:  cfg.App.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	st := store.NewWithDirName(cfg.Backup.DirName)
	backup := usecase.NewBackup(st, log)

	return &App{
		WorkDir:   workDir,
		Config:    cfg,
		Logger:    log,
		Store:     st,
		Backup:    backup,
		Validator: usecase.NewValidator(st, log),
		Restorer:  usecase.NewRestorer(st, backup, log),
		Sync:      usecase.NewSync(log),
		Archiver:  archive.NewTarGz(),
	}, nil
}

// ExportSnapshot bundles one snapshot's artifacts into a tarball.
func (a *App) ExportSnapshot(ts, destPath string) error {
	snapshots, err := a.Backup.ListSnapshots(a.WorkDir)
	if err != nil {
		return err
	}

	var snap *domain.Snapshot
	for i := range snapshots {
		if snapshots[i].Timestamp == ts {
			snap = &snapshots[i]
			break
		}
	}
	if snap == nil {
		return fmt.Errorf("no snapshot %s: %w", ts, domain.ErrNothingToDo)
	}

	files := make(map[string][]byte, len(snap.Files))
	for _, file := range snap.Files {
		content, err := a.Store.ReadArtifact(a.WorkDir, file, ts)
		if err != nil {
			return err
		}
		files[file] = content
	}

	if err := a.Archiver.Create(destPath, files); err != nil {
		return err
	}
	a.Logger.Infof("exported snapshot %s (%d files) to %s", ts, len(files), destPath)
	return nil
}

// ImportSnapshot unpacks an exported bundle into a new snapshot with a
// fresh timestamp. Returns the new timestamp and the file count.
func (a *App) ImportSnapshot(srcPath string) (string, int, error) {
	files, err := a.Archiver.Extract(srcPath)
	if err != nil {
		return "", 0, err
	}
	ts, err := a.Backup.ImportSnapshot(a.WorkDir, files)
	if err != nil {
		return "", 0, err
	}
	return ts, len(files), nil
}

// Watch runs the long-lived mode: snapshot on file change (debounced),
// plus optional scheduled snapshots and periodic retention cleanup.
// Blocks until the context is cancelled.
func (a *App) Watch(ctx context.Context) error {
	family := a.Config.Family()

	takeSnapshot := func() {
		if _, err := a.Backup.CreateSnapshot(a.WorkDir, family); err != nil {
			a.Logger.Warnf("auto-snapshot skipped: %v", err)
		}
	}

	sched := scheduler.New(a.Logger)
	if spec := a.Config.Watch.Schedule; spec != "" {
		if err := sched.AddJob("snapshot", spec, func(context.Context) error {
			_, err := a.Backup.CreateSnapshot(a.WorkDir, family)
			return err
		}); err != nil {
			return fmt.Errorf("schedule snapshots: %w", err)
		}
	}
	if spec := a.Config.Watch.CleanupSchedule; spec != "" {
		if err := sched.AddJob("cleanup", spec, func(context.Context) error {
			_, err := a.Backup.Cleanup(a.WorkDir, a.Config.Backup.KeepCount)
			return err
		}); err != nil {
			return fmt.Errorf("schedule cleanup: %w", err)
		}
	}

	sched.Start()
	defer sched.Stop()

	w := watcher.New(a.WorkDir, family, a.Config.Watch.Debounce, a.Logger, takeSnapshot)
	return w.Run(ctx)
}

func (a *App) Shutdown() {
	a.Logger.Close()
}
