package cli

import (
	"fmt"

	"github.com/fmueller/voxprep/internal/download"
	"github.com/fmueller/voxprep/internal/nemo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newModelCmd(app *appState) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "model [name]",
		Short: "Download and persist a pretrained model package",
		Long: "Download a pretrained ASR model and persist it into the model directory " +
			"as a .nemo package. Without a name the default model is fetched. An " +
			"existing package is kept unless --force is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := nemo.DefaultModel
			if len(args) == 1 {
				ref = args[0]
			}

			modelDir, err := app.modelStorageDir()
			if err != nil {
				return err
			}

			resolved, err := nemo.ResolveModel(ref, modelDir)
			if err != nil {
				return err
			}
			if resolved.IsCustomPath {
				return fmt.Errorf("model expects a registry name; %s is already a local package", resolved.Path)
			}

			if !resolved.NeedsDownload && !force {
				if err := download.VerifyFileChecksum(resolved.Path, resolved.SHA256); err != nil {
					app.log().Warn("model checksum verification failed; downloading fresh copy", zap.String("model", resolved.Name), zap.Error(err))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Model %s already present at %s (use --force to overwrite)\n", resolved.Name, resolved.Path)
					return nil
				}
			}

			app.log().Info("downloading model", zap.String("model", resolved.Name), zap.String("path", resolved.Path))
			if err := app.download(cmd.Context(), download.Options{
				URL:            resolved.URL,
				Destination:    resolved.Path,
				ExpectedSHA256: resolved.SHA256,
				NoProgress:     app.noProgress,
				Logger:         app.log(),
			}); err != nil {
				return fmt.Errorf("download model %s: %w", resolved.Name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Model %s saved to %s\n", resolved.Name, resolved.Path)
			return nil
		},
	}

	bindLoggingFlags(cmd, app)
	bindProgressFlag(cmd, app)
	bindModelDirFlag(cmd, app)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing model package")

	return cmd
}
