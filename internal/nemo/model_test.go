package nemo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveModelDefaultNamedModel(t *testing.T) {
	t.Parallel()

	modelDir := t.TempDir()
	resolved, err := ResolveModel("", modelDir)
	require.NoError(t, err)
	require.Equal(t, DefaultModel, resolved.Name)
	require.Equal(t, filepath.Join(modelDir, "nvidia__parakeet-tdt-0.6b-v2.nemo"), resolved.Path)
	require.True(t, resolved.NeedsDownload)
	require.False(t, resolved.IsCustomPath)
}

func TestResolveModelExistingNamedModel(t *testing.T) {
	t.Parallel()

	modelDir := t.TempDir()
	modelPath := filepath.Join(modelDir, SafeFileName("nvidia/parakeet-tdt-1.1b"))
	require.NoError(t, os.WriteFile(modelPath, []byte("ok"), 0o644))

	resolved, err := ResolveModel("nvidia/parakeet-tdt-1.1b", modelDir)
	require.NoError(t, err)
	require.Equal(t, "nvidia/parakeet-tdt-1.1b", resolved.Name)
	require.Equal(t, modelPath, resolved.Path)
	require.False(t, resolved.NeedsDownload)
}

func TestResolveModelCustomPath(t *testing.T) {
	t.Parallel()

	custom := filepath.Join(t.TempDir(), "custom.nemo")
	require.NoError(t, os.WriteFile(custom, []byte("x"), 0o644))

	resolved, err := ResolveModel(custom, t.TempDir())
	require.NoError(t, err)
	require.True(t, resolved.IsCustomPath)
	require.Equal(t, custom, resolved.Path)
}

func TestResolveModelCustomPathMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.nemo")
	_, err := ResolveModel(missing, t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "custom model path does not exist")
}

func TestResolveModelUnknownModel(t *testing.T) {
	t.Parallel()

	_, err := ResolveModel("nvidia/no-such-model", t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown model")
}

func TestSafeFileName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "nvidia__parakeet-tdt-0.6b-v2.nemo", SafeFileName("nvidia/parakeet-tdt-0.6b-v2"))
	require.Equal(t, "my_local_model.nemo", SafeFileName("my local model"))
}

func TestRegistryModelsHaveDownloadURLs(t *testing.T) {
	t.Parallel()

	for _, name := range ModelNames() {
		model, ok := LookupModel(name)
		require.True(t, ok)
		require.NotEmptyf(t, model.URL, "model %s should have a download URL", name)
	}
}
