package storage

import (
	"fmt"
	"path/filepath"

	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/journal"
)

// Open picks the backend named in cfg. An empty path resolves to the default
// file under the data directory.
func Open(cfg config.StorageConfig) (journal.Backend, error) {
	path := cfg.Path
	switch cfg.Backend {
	case "", "json":
		if path == "" {
			dir, err := config.DataDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "diary.json")
		}
		return NewJSONFile(path), nil
	case "sqlite":
		if path == "" {
			dir, err := config.DataDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "diary.db")
		}
		return NewSQLite(path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want json or sqlite)", cfg.Backend)
	}
}
