package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// LocalImporter brings a dataset in from a local file or directory, either
// by copying it into the destination or by linking the destination to it.
type LocalImporter struct {
	Fs     *afero.Afero
	Logger *zap.Logger
}

func (l *LocalImporter) Name() string { return "local" }

func (l *LocalImporter) Fetch(ctx context.Context, destination string, opts Options) (Result, error) {
	if strings.TrimSpace(opts.Source) == "" {
		return Result{}, errors.New("a source path is required for local imports")
	}

	source := filepath.Clean(opts.Source)
	info, err := l.Fs.Stat(source)
	if err != nil {
		return Result{}, fmt.Errorf("source path %s does not exist: %w", source, err)
	}

	if opts.Symlink {
		if err := l.symlink(source, destination, opts.Overwrite); err != nil {
			return Result{}, err
		}
		return Result{Path: destination}, nil
	}

	if err := ensureDestination(l.Fs, destination, opts.Overwrite); err != nil {
		return Result{}, err
	}

	l.Logger.Info("copying dataset", zap.String("source", source), zap.String("destination", destination))
	if info.IsDir() {
		err = l.copyTree(ctx, source, destination)
	} else {
		err = l.copyFile(source, filepath.Join(destination, filepath.Base(source)))
	}
	if err != nil {
		return Result{}, err
	}

	files, err := listFiles(l.Fs, destination)
	if err != nil {
		return Result{}, fmt.Errorf("list imported files: %w", err)
	}

	return Result{Path: destination, Files: files}, nil
}

func (l *LocalImporter) symlink(source, destination string, overwrite bool) error {
	linker, ok := l.Fs.Fs.(afero.Linker)
	if !ok {
		return errors.New("filesystem does not support symlinks")
	}

	if exists, err := l.Fs.Exists(destination); err != nil {
		return fmt.Errorf("check destination: %w", err)
	} else if exists {
		if !overwrite {
			return fmt.Errorf("%s: %w (pass --overwrite to replace it)", destination, ErrDestinationExists)
		}
		if err := l.Fs.RemoveAll(destination); err != nil {
			return fmt.Errorf("clear destination: %w", err)
		}
	}

	if err := l.Fs.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("create destination parent: %w", err)
	}

	l.Logger.Info("linking dataset", zap.String("source", source), zap.String("destination", destination))
	if err := linker.SymlinkIfPossible(source, destination); err != nil {
		return fmt.Errorf("link dataset: %w", err)
	}
	return nil
}

func (l *LocalImporter) copyTree(ctx context.Context, source, destination string) error {
	return afero.Walk(l.Fs.Fs, source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destination, rel)

		if info.IsDir() {
			return l.Fs.MkdirAll(target, 0o755)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return l.copyFile(path, target)
	})
}

func (l *LocalImporter) copyFile(source, target string) error {
	in, err := l.Fs.Open(source)
	if err != nil {
		return fmt.Errorf("open %s: %w", source, err)
	}
	defer in.Close()

	if err := l.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	out, err := l.Fs.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", source, err)
	}

	return out.Close()
}
