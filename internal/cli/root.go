package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fmueller/voxprep/internal/download"
	"github.com/fmueller/voxprep/internal/logging"
	"github.com/fmueller/voxprep/internal/platform"
	"github.com/fmueller/voxprep/internal/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

type appState struct {
	verbose    bool
	jsonLogs   bool
	noProgress bool
	modelDir   string
	datasetDir string

	logger *zap.Logger
	fs     *afero.Afero

	downloadFn func(ctx context.Context, opts download.Options) error
}

func NewRootCmd() *cobra.Command {
	app := &appState{}
	app.downloadFn = download.DownloadFile

	cmd := &cobra.Command{
		Use:           "voxprep",
		Short:         "Prepare speech datasets and model assets for transcription runs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{Verbose: app.verbose, JSON: app.jsonLogs})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.logger = logger
			return nil
		},
	}

	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	bindLoggingFlags(cmd, app)
	bindProgressFlag(cmd, app)

	cmd.AddCommand(newSweepCmd(app))
	cmd.AddCommand(newModelCmd(app))
	cmd.AddCommand(newDatasetCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func bindLoggingFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.verbose, "verbose", app.verbose, "Enable verbose logs")
	cmd.Flags().BoolVar(&app.jsonLogs, "json", app.jsonLogs, "Enable JSON logging")
}

func bindProgressFlag(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.noProgress, "no-progress", app.noProgress, "Disable progress indicators")
}

func bindModelDirFlag(cmd *cobra.Command, app *appState) {
	cmd.Flags().StringVar(&app.modelDir, "model-dir", app.modelDir, "Directory where model packages are stored")
}

func bindDatasetDirFlag(cmd *cobra.Command, app *appState) {
	cmd.Flags().StringVar(&app.datasetDir, "dataset-dir", app.datasetDir, "Directory where datasets are stored")
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func (a *appState) fileSystem() *afero.Afero {
	if a.fs == nil {
		a.fs = &afero.Afero{Fs: afero.NewOsFs()}
	}
	return a.fs
}

func (a *appState) download(ctx context.Context, opts download.Options) error {
	if a.downloadFn == nil {
		return download.DownloadFile(ctx, opts)
	}
	return a.downloadFn(ctx, opts)
}

func (a *appState) modelStorageDir() (string, error) {
	dir, err := platform.ResolveModelDir(a.modelDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create model directory %s: %w", dir, err)
	}
	return dir, nil
}

func (a *appState) datasetStorageDir() (string, error) {
	dir, err := platform.ResolveDatasetDir(a.datasetDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create dataset directory %s: %w", dir, err)
	}
	return dir, nil
}

func (a *appState) progressEnabled() bool {
	if a.noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
