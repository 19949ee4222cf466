package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/journal"
	"github.com/ramanasai/diary/internal/logger"
	"github.com/ramanasai/diary/internal/notify"
	"github.com/ramanasai/diary/internal/schedule"
	"github.com/ramanasai/diary/internal/storage"
	"github.com/ramanasai/diary/internal/ui"
	"github.com/ramanasai/diary/internal/update"
	"github.com/ramanasai/diary/internal/version"
)

var (
	filePath string
	backend  string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "A small date-keyed diary",
	Long: `Without a subcommand diary opens the entry form.

Examples:
	diary                                  # open the form
	diary write "walked by the river" --mood calm
	diary list --preset last7days
	diary search river --format json`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runForm,
}

func Execute() error {
	rootCmd.Version = version.GetVersion()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "Diary file (default ~/.local/share/diary/diary.json)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: json|sqlite")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr at debug level")

	rootCmd.AddCommand(writeCmd, editCmd, showCmd, deleteCmd, listCmd, searchCmd, summaryCmd, checkUpdateCmd, versionCmd)
}

// session is what every command needs: config, logger and a loaded diary.
type session struct {
	cfg    config.Config
	log    zerolog.Logger
	diary  *journal.Diary
	closer io.Closer
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

func (s *session) loc() *time.Location { return s.cfg.Location() }

// openSession loads config, applies the persistent flags and reads the
// diary. A missing diary file is not an error.
func openSession(ctx context.Context, toTerminal bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if filePath != "" {
		cfg.Storage.Path = filePath
	}
	if backend != "" {
		cfg.Storage.Backend = backend
	}

	s := &session{cfg: cfg}
	s.log, s.closer = openLogger(cfg, toTerminal)

	be, err := storage.Open(cfg.Storage)
	if err != nil {
		s.Close()
		return nil, err
	}
	store := journal.NewStore(journal.WithPlaceholders(cfg.Placeholders.Mood, cfg.Placeholders.Body))
	s.diary = journal.NewDiary(store, be, journal.WithLogger(s.log))

	if _, err := s.diary.Load(ctx); err != nil && !errors.Is(err, journal.ErrNotFound) {
		s.Close()
		return nil, err
	}
	return s, nil
}

// openLogger writes to the log file; with --verbose a CLI command logs to
// stderr instead. The form owns the terminal so it always uses the file.
func openLogger(cfg config.Config, toTerminal bool) (zerolog.Logger, io.Closer) {
	level := logger.ParseLevel(cfg.Log.Level)
	if verbose && toTerminal {
		return logger.NewConsole(zerolog.DebugLevel), nil
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	path := cfg.Log.File
	if path == "" {
		dir, err := config.DataDir()
		if err != nil {
			return zerolog.Nop(), nil
		}
		path = filepath.Join(dir, "diary.log")
	}
	l, c, err := logger.NewFile(path, level)
	if err != nil {
		return logger.NewConsole(zerolog.WarnLevel), nil
	}
	return l, c
}

func newChecker(cfg config.Config) *update.Checker {
	return update.NewChecker(cfg.Update.URL, version.GetVersion(), cfg.Update.Timeout)
}

func runForm(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := openSession(ctx, false)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.cfg.Reminder.Enabled && os.Getenv("DIARY_NO_REMINDER") != "1" {
		go schedule.RunConfigured(ctx, s.cfg, remind(ctx, s))
	}

	s.log.Info().Str("version", version.GetVersion()).Str("location", s.diary.Location()).Msg("form opened")
	return ui.Run(ui.Options{
		Diary:   s.diary,
		Config:  s.cfg,
		Checker: newChecker(s.cfg),
		Logger:  s.log,
	})
}

// remind checks the stored file rather than the live store, which belongs
// to the form's update loop.
func remind(ctx context.Context, s *session) func(at time.Time) {
	be, err := storage.Open(s.cfg.Storage)
	return func(at time.Time) {
		date := at.Format(journal.DateLayout)
		written := false
		if err == nil {
			if entries, lerr := be.Load(ctx); lerr == nil {
				for _, e := range entries {
					if e.Date == date {
						written = true
						break
					}
				}
			}
		}
		if written || !s.cfg.Notifications.Enabled {
			s.log.Debug().Str("date", date).Bool("written", written).Msg("reminder skipped")
			return
		}
		title, msg := notify.FormatDailyPrompt(date, written)
		if nerr := notify.Info(title, msg); nerr != nil {
			s.log.Warn().Err(nerr).Msg("reminder notification failed")
		}
	}
}
