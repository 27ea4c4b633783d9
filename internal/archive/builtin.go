package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// BuiltinExtractor unpacks zip archives in-process, overwriting entries that
// already exist at the destination.
type BuiltinExtractor struct {
	Fs *afero.Afero
}

func NewBuiltinExtractor(fs *afero.Afero) *BuiltinExtractor {
	if fs == nil {
		fs = &afero.Afero{Fs: afero.NewOsFs()}
	}
	return &BuiltinExtractor{Fs: fs}
}

func (e *BuiltinExtractor) Name() string { return "builtin" }

func (e *BuiltinExtractor) Available() bool { return true }

func (e *BuiltinExtractor) Extract(ctx context.Context, source, destination string) error {
	file, err := e.Fs.Open(source)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}

	reader, err := zip.NewReader(file, info.Size())
	if err != nil {
		return fmt.Errorf("read zip %s: %w", source, err)
	}

	for _, entry := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.extractEntry(destination, entry); err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
	}

	return nil
}

func (e *BuiltinExtractor) extractEntry(destination string, entry *zip.File) error {
	target, err := entryPath(destination, entry.Name)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		return e.Fs.MkdirAll(target, 0o755)
	}

	if err := e.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	contents, err := entry.Open()
	if err != nil {
		return err
	}
	defer contents.Close()

	out, err := e.Fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, contents); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// entryPath joins an archive entry name onto the destination directory and
// rejects names that would resolve outside it.
func entryPath(destination, name string) (string, error) {
	target := filepath.Join(destination, filepath.FromSlash(name))
	rel, err := filepath.Rel(destination, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("entry %q escapes destination directory", name)
	}
	return target, nil
}
