// Package dataset acquires speech datasets from remote or local sources
// into a managed destination directory.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var ErrDestinationExists = errors.New("destination already exists")

type Options struct {
	// HTTP source.
	URL      string
	FileName string

	// Local source.
	Source  string
	Symlink bool

	// Shared.
	Overwrite   bool
	Extract     bool
	KeepArchive bool
	NoProgress  bool
}

type Result struct {
	Path  string
	Files []string
}

// Fetcher acquires a dataset into the destination directory.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, destination string, opts Options) (Result, error)
}

var sourceAliases = map[string]string{
	"http":       "http",
	"https":      "http",
	"url":        "http",
	"local":      "local",
	"filesystem": "local",
}

func Sources() []string {
	keys := make([]string, 0, len(sourceAliases))
	for alias := range sourceAliases {
		keys = append(keys, alias)
	}
	sort.Strings(keys)
	return keys
}

// ForSource maps a source alias to its fetcher.
func ForSource(source string, fs *afero.Afero, logger *zap.Logger) (Fetcher, error) {
	if fs == nil {
		fs = &afero.Afero{Fs: afero.NewOsFs()}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch sourceAliases[strings.ToLower(strings.TrimSpace(source))] {
	case "http":
		return NewHTTPFetcher(fs, logger), nil
	case "local":
		return &LocalImporter{Fs: fs, Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q (supported: %s)", source, strings.Join(Sources(), ", "))
	}
}

// ensureDestination guarantees an empty destination directory. An existing
// destination is refused unless overwrite is set, in which case it is
// replaced wholesale.
func ensureDestination(fs *afero.Afero, path string, overwrite bool) error {
	exists, err := fs.Exists(path)
	if err != nil {
		return fmt.Errorf("check destination: %w", err)
	}

	if exists {
		if !overwrite {
			return fmt.Errorf("%s: %w (pass --overwrite to replace it)", path, ErrDestinationExists)
		}
		if err := fs.RemoveAll(path); err != nil {
			return fmt.Errorf("clear destination: %w", err)
		}
	}

	if err := fs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	return nil
}

func listFiles(fs *afero.Afero, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fs.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
