package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/multitimer/internal/config"
	"github.com/jask/multitimer/internal/database"
	"github.com/jask/multitimer/internal/database/repository"
	"github.com/jask/multitimer/internal/service"
	"github.com/jask/multitimer/internal/timers"
)

// env is what every command needs after startup.
type env struct {
	cfg      config.Config
	db       *sql.DB
	expiries *repository.ExpiryRepo
	logClose func() error
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	if e.logClose != nil {
		_ = e.logClose()
	}
}

// setup loads config from the --config flag, routes the standard logger and
// opens the migrated journal database.
func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	e := &env{cfg: cfg}
	if cfg.Log.Path != "" {
		f, err := tea.LogToFile(cfg.Log.Path, "multitimer")
		if err != nil {
			return nil, fmt.Errorf("failed to open log: %w", err)
		}
		e.logClose = f.Close
	} else {
		log.SetOutput(io.Discard)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		e.Close()
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.db = db
	e.expiries = repository.NewExpiryRepo(db)
	return e, nil
}

// notifier builds the expiry collaborators enabled in config. bell may be nil.
func (e *env) notifier(bell io.Writer) service.Notifier {
	d := &service.Dispatcher{}
	if e.cfg.Notify.Bell && bell != nil {
		d.Notifiers = append(d.Notifiers, &service.BellNotifier{Out: bell})
	}
	if e.cfg.Notify.Journal {
		d.Notifiers = append(d.Notifiers, &service.JournalNotifier{Expiries: e.expiries})
	}
	return d
}

// registry creates a registry seeded from --timer specs, in flag order.
func (e *env) registry(specs []string) (*timers.Registry, error) {
	reg := timers.NewRegistry(timers.WithResetSeconds(e.cfg.Timers.ResetSeconds))
	for _, spec := range specs {
		label, secs, err := timers.ParseSpecOr(spec, e.cfg.Timers.DefaultSeconds)
		if err != nil {
			return nil, err
		}
		reg.Add(label, secs)
	}
	return reg, nil
}
