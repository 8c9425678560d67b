// Package levels provides level loading functionality for blockslide.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels/formats"
)

//go:embed pack/*.yaml
var packFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Board    *core.Board
	Metadata map[string]string
	FilePath string
}

// ToBoard returns a fresh copy of the level's raw board.
func (l *Level) ToBoard() *core.Board {
	return l.Board.Clone()
}

// NewState derives the level's initial state.
func (l *Level) NewState(r *core.Resolver) (*core.State, error) {
	s, err := r.Derive(l.Board)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return s, nil
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string

	fsys fs.FS

	// Skipped collects files that failed to parse during the last LoadAll.
	Skipped []error
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewPackLoader creates a loader over the built-in level pack.
func NewPackLoader() *Loader {
	sub, err := fs.Sub(packFS, "pack")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded pack: %v", err))
	}
	return &Loader{Root: "pack", fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	l.Skipped = nil

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			l.Skipped = append(l.Skipped, fmt.Errorf("reading file %s: %w", p, err))
			return nil
		}
		level, err := parseLevel(data, ext, filepath.Join(l.Root, filepath.FromSlash(p)))
		if err != nil {
			// Skip invalid files
			l.Skipped = append(l.Skipped, err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file from disk.
func (l *Loader) LoadFile(file string) (Level, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", file, err)
	}
	return parseLevel(data, strings.ToLower(filepath.Ext(file)), file)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func parseLevel(data []byte, ext, filePath string) (Level, error) {
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", filePath, err)
	}
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Board:    parsed.Board,
		Metadata: parsed.Metadata,
		FilePath: filePath,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
