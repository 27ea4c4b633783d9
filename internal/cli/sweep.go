package cli

import (
	"github.com/fmueller/voxprep/internal/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSweepCmd(app *appState) *cobra.Command {
	var extractorName string

	cmd := &cobra.Command{
		Use:   "sweep [dir]",
		Short: "Extract every zip archive in a directory and remove the archives",
		Long: "Scan a single directory (non-recursive) for zip archives, extract each " +
			"one in place with overwrite semantics, and delete the archive once its " +
			"extraction succeeded. Archives that fail to extract are left untouched " +
			"and reported; the sweep always runs to completion.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			extractor, err := archive.SelectExtractor(archive.DefaultExtractors(app.fileSystem()), extractorName)
			if err != nil {
				return err
			}

			sweeper := archive.NewSweeper(app.fileSystem(), extractor, app.log(), cmd.OutOrStdout())
			report, err := sweeper.Run(cmd.Context(), dir)
			if err != nil {
				return err
			}

			if len(report.Failed) > 0 {
				app.log().Warn("sweep finished with failures",
					zap.Int("extracted", len(report.Extracted)),
					zap.Int("failed", len(report.Failed)))
			}
			return nil
		},
	}

	bindLoggingFlags(cmd, app)
	cmd.Flags().StringVar(&extractorName, "extractor", "auto", "Zip extractor: auto|builtin|unzip")

	return cmd
}
