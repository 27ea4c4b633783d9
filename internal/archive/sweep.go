package archive

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

var ErrNotADirectory = errors.New("target path is not a directory")

// Sweeper extracts every zip archive found directly inside one directory and
// removes each archive once its extraction succeeded. Archives inside
// subdirectories are never touched.
type Sweeper struct {
	Fs        *afero.Afero
	Extractor Extractor
	Logger    *zap.Logger
	Out       io.Writer
}

// Report summarizes one sweep. Failed archives remain on disk untouched.
type Report struct {
	Candidates []string
	Extracted  []string
	Failed     []string
}

func NewSweeper(fs *afero.Afero, extractor Extractor, logger *zap.Logger, out io.Writer) *Sweeper {
	if fs == nil {
		fs = &afero.Afero{Fs: afero.NewOsFs()}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Sweeper{Fs: fs, Extractor: extractor, Logger: logger, Out: out}
}

// Run sweeps dir. It fails outright only when the extractor is missing or
// dir is not a directory; the capability check comes first and skips all
// filesystem access. A per-archive extraction failure is logged, leaves the
// archive in place, and never aborts the rest of the sweep.
func (s *Sweeper) Run(ctx context.Context, dir string) (Report, error) {
	var report Report

	if s.Extractor == nil || !s.Extractor.Available() {
		return report, ErrNoExtractorAvailable
	}

	dir = filepath.Clean(dir)
	info, err := s.Fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return report, fmt.Errorf("%s: %w", dir, ErrNotADirectory)
	}

	entries, err := s.Fs.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("list %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.Mode().IsRegular() || !isZipName(entry.Name()) {
			continue
		}

		archivePath := filepath.Join(dir, entry.Name())
		report.Candidates = append(report.Candidates, archivePath)

		fmt.Fprintf(s.Out, "Unzipping: %s\n", archivePath)
		if err := s.Extractor.Extract(ctx, archivePath, dir); err != nil {
			s.Logger.Error("extraction failed; archive preserved", zap.String("archive", archivePath), zap.Error(err))
			report.Failed = append(report.Failed, archivePath)
			continue
		}

		// Delete strictly after verified extraction success.
		if err := s.Fs.Remove(archivePath); err != nil {
			s.Logger.Error("failed to remove extracted archive", zap.String("archive", archivePath), zap.Error(err))
			report.Failed = append(report.Failed, archivePath)
			continue
		}

		report.Extracted = append(report.Extracted, archivePath)
		fmt.Fprintf(s.Out, "Removed: %s\n", archivePath)
	}

	fmt.Fprintln(s.Out, "Done.")
	return report, nil
}

func isZipName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".zip")
}
