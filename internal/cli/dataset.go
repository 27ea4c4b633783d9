package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fmueller/voxprep/internal/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDatasetCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Acquire datasets from remote or local sources",
	}

	cmd.AddCommand(newDatasetHTTPCmd(app))
	cmd.AddCommand(newDatasetLocalCmd(app))

	return cmd
}

func newDatasetHTTPCmd(app *appState) *cobra.Command {
	var (
		url         string
		name        string
		extract     bool
		keepArchive bool
		overwrite   bool
	)

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Download a dataset over HTTP(S)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			destination, err := app.datasetDestination(name, url)
			if err != nil {
				return err
			}

			fetcher := dataset.NewHTTPFetcher(app.fileSystem(), app.log())
			fetcher.Download = app.download

			result, err := fetcher.Fetch(cmd.Context(), destination, dataset.Options{
				URL:         url,
				Extract:     extract,
				KeepArchive: keepArchive,
				Overwrite:   overwrite,
				NoProgress:  app.noProgress,
			})
			if err != nil {
				return err
			}

			app.log().Info("dataset ready", zap.String("path", result.Path), zap.Int("files", len(result.Files)))
			fmt.Fprintf(cmd.OutOrStdout(), "Dataset saved to %s (%d files)\n", result.Path, len(result.Files))
			return nil
		},
	}

	bindLoggingFlags(cmd, app)
	bindProgressFlag(cmd, app)
	bindDatasetDirFlag(cmd, app)
	cmd.Flags().StringVar(&url, "url", "", "Dataset URL to download")
	cmd.Flags().StringVar(&name, "name", "", "Dataset directory name (default: derived from the URL)")
	cmd.Flags().BoolVar(&extract, "extract", false, "Extract the downloaded archive in place")
	cmd.Flags().BoolVar(&keepArchive, "keep-archive", false, "Keep the archive file after extraction")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing dataset directory")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newDatasetLocalCmd(app *appState) *cobra.Command {
	var (
		from      string
		name      string
		symlink   bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "local",
		Short: "Import a dataset from a local file or directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			destination, err := app.datasetDestination(name, from)
			if err != nil {
				return err
			}

			importer, err := dataset.ForSource("local", app.fileSystem(), app.log())
			if err != nil {
				return err
			}

			stopSpinner := startSpinner(app.progressEnabled(), "Importing")
			result, err := importer.Fetch(cmd.Context(), destination, dataset.Options{
				Source:    from,
				Symlink:   symlink,
				Overwrite: overwrite,
			})
			stopSpinner()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dataset imported to %s\n", result.Path)
			return nil
		},
	}

	bindLoggingFlags(cmd, app)
	bindProgressFlag(cmd, app)
	bindDatasetDirFlag(cmd, app)
	cmd.Flags().StringVar(&from, "from", "", "Source file or directory to import")
	cmd.Flags().StringVar(&name, "name", "", "Dataset directory name (default: derived from the source)")
	cmd.Flags().BoolVar(&symlink, "symlink", false, "Link the dataset instead of copying it")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing dataset directory")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

// datasetDestination resolves the directory a dataset lands in, deriving a
// name from the origin when none was given.
func (a *appState) datasetDestination(name, origin string) (string, error) {
	root, err := a.datasetStorageDir()
	if err != nil {
		return "", err
	}

	if name == "" {
		name = deriveDatasetName(origin)
	}
	if name == "" {
		return "", fmt.Errorf("cannot derive a dataset name from %q; pass --name", origin)
	}

	return filepath.Join(root, name), nil
}

func deriveDatasetName(origin string) string {
	base := filepath.Base(strings.TrimRight(strings.TrimSpace(origin), "/"))
	if base == "." || base == "/" || base == "" {
		return ""
	}

	// Strip a single extension so corpus.zip and corpus/ land in the same
	// place.
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
