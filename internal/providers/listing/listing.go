// Package listing is the reference listing collaborator: it consumes a
// session's listing switches and sort criteria and produces the ordered
// row set. The session core never parses this output; it only stores
// and forwards the configuration.
package listing

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pathlane/dirview/internal/shared/types"
)

// Row is one listed entry.
type Row struct {
	Name    string      `json:"name"`
	Path    string      `json:"path"`
	Size    int64       `json:"size"`
	ModTime time.Time   `json:"mod_time"`
	IsDir   bool        `json:"is_dir"`
	Mode    fs.FileMode `json:"mode"`
}

// List reads one directory level and orders it per the sort criteria.
// Switches follow ls conventions as far as this collaborator honors
// them: "-a"/"--all" includes dotfiles, "--group-directories-first"
// forces directories ahead regardless of criteria.
func List(dir string, switches string, criteria types.SortCriteria) ([]Row, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	showHidden := hasSwitch(switches, "-a") || hasSwitch(switches, "--all") || hasCombined(switches, 'a')
	if hasSwitch(switches, "--group-directories-first") {
		criteria.DirsFirst = true
	}

	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		if !showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info; skip it.
			continue
		}
		rows = append(rows, Row{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   entry.IsDir(),
			Mode:    info.Mode(),
		})
	}

	sortRows(rows, criteria)
	return rows, nil
}

func sortRows(rows []Row, criteria types.SortCriteria) {
	less := func(a, b Row) bool {
		switch criteria.Key {
		case types.SortBySize:
			if a.Size != b.Size {
				return a.Size < b.Size
			}
		case types.SortByMtime:
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.Before(b.ModTime)
			}
		}
		return a.Name < b.Name
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if criteria.DirsFirst && a.IsDir != b.IsDir {
			return a.IsDir
		}
		if criteria.Reverse {
			return less(b, a)
		}
		return less(a, b)
	})
}

func hasSwitch(switches, want string) bool {
	for _, field := range strings.Fields(switches) {
		if field == want {
			return true
		}
	}
	return false
}

// hasCombined detects a short flag inside a combined group like "-al".
func hasCombined(switches string, flag rune) bool {
	for _, field := range strings.Fields(switches) {
		if strings.HasPrefix(field, "-") && !strings.HasPrefix(field, "--") {
			if strings.ContainsRune(field[1:], flag) {
				return true
			}
		}
	}
	return false
}
