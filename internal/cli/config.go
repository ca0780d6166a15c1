package cli

import (
	"fmt"
	"os"

	"github.com/gdionne/janus/internal/janus/movetable"
	"github.com/gdionne/janus/internal/storage"
)

func parseNaso(s string) (movetable.Naso, error) {
	switch s {
	case "disparilis":
		return movetable.Disparilis, nil
	case "aequivalens":
		return movetable.Aequivalens, nil
	default:
		return 0, fmt.Errorf("unknown naso %q (want disparilis or aequivalens)", s)
	}
}

func parseMetric(s string) (movetable.MoveMetric, error) {
	switch s {
	case "face-turn", "facet", "ftm":
		return movetable.FaceTurn, nil
	case "quarter-turn", "quarter", "qtm":
		return movetable.QuarterTurn, nil
	default:
		return 0, fmt.Errorf("unknown metric %q (want face-turn or quarter-turn)", s)
	}
}

func openDB() (*storage.DB, error) {
	path := getDBPath()
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// fileLoad returns a depthtable.LoadFunc that reads buf from path.
func fileLoad(path string) func(buf []byte) bool {
	return func(buf []byte) bool {
		f, err := os.Open(path)
		if err != nil {
			return false
		}
		defer f.Close()
		n, err := f.Read(buf)
		return err == nil && n == len(buf)
	}
}

// fileSave returns a depthtable.SaveFunc that writes buf to path atomically
// via a temp-file rename, so a crash mid-write never leaves a truncated
// table behind for a later Load to trust.
func fileSave(path string) func(buf []byte) bool {
	return func(buf []byte) bool {
		tmp := path + ".tmp"
		f, err := os.Create(tmp)
		if err != nil {
			return false
		}
		if _, err := f.Write(buf); err != nil {
			f.Close()
			os.Remove(tmp)
			return false
		}
		if err := f.Close(); err != nil {
			os.Remove(tmp)
			return false
		}
		return os.Rename(tmp, path) == nil
	}
}
