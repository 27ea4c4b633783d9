package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/fmueller/voxprep/internal/archive"
	"github.com/fmueller/voxprep/internal/download"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// HTTPFetcher downloads a dataset file from a generic HTTP(S) endpoint,
// optionally unpacking zip archives through the same extractor capability
// the sweep uses.
type HTTPFetcher struct {
	Fs        *afero.Afero
	Logger    *zap.Logger
	Extractor archive.Extractor

	// Download is swappable in tests; defaults to download.DownloadFile.
	Download func(ctx context.Context, opts download.Options) error
}

func NewHTTPFetcher(fs *afero.Afero, logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		Fs:        fs,
		Logger:    logger,
		Extractor: archive.NewBuiltinExtractor(fs),
		Download:  download.DownloadFile,
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

func (f *HTTPFetcher) Fetch(ctx context.Context, destination string, opts Options) (Result, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return Result{}, errors.New("a URL is required for HTTP downloads")
	}

	if err := ensureDestination(f.Fs, destination, opts.Overwrite); err != nil {
		return Result{}, err
	}

	fileName := opts.FileName
	if fileName == "" {
		fileName = inferFileName(opts.URL)
	}
	filePath := filepath.Join(destination, fileName)

	f.Logger.Info("downloading dataset", zap.String("url", opts.URL), zap.String("destination", filePath))
	if err := f.Download(ctx, download.Options{
		URL:         opts.URL,
		Destination: filePath,
		NoProgress:  opts.NoProgress,
		Logger:      f.Logger,
	}); err != nil {
		return Result{}, fmt.Errorf("download dataset: %w", err)
	}

	if opts.Extract && isZipArchive(fileName) {
		if err := f.Extractor.Extract(ctx, filePath, destination); err != nil {
			return Result{}, fmt.Errorf("extract dataset archive: %w", err)
		}
		if !opts.KeepArchive {
			if err := f.Fs.Remove(filePath); err != nil {
				return Result{}, fmt.Errorf("remove extracted archive: %w", err)
			}
		}
	}

	files, err := listFiles(f.Fs, destination)
	if err != nil {
		return Result{}, fmt.Errorf("list downloaded files: %w", err)
	}

	return Result{Path: destination, Files: files}, nil
}

func inferFileName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "download.bin"
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "download.bin"
	}
	return name
}

func isZipArchive(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".zip")
}
