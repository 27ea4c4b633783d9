// Package nemo resolves pretrained ASR model packages (.nemo files) by
// registry name or local path.
package nemo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultModel = "nvidia/parakeet-tdt-0.6b-v2"

type Model struct {
	Name   string
	URL    string
	SHA256 string
}

type ResolvedModel struct {
	Name          string
	Path          string
	URL           string
	SHA256        string
	NeedsDownload bool
	IsCustomPath  bool
}

var registry = map[string]Model{
	"nvidia/parakeet-tdt-0.6b-v2": {
		Name: "nvidia/parakeet-tdt-0.6b-v2",
		URL:  "https://huggingface.co/nvidia/parakeet-tdt-0.6b-v2/resolve/main/parakeet-tdt-0.6b-v2.nemo",
	},
	"nvidia/parakeet-tdt-1.1b": {
		Name: "nvidia/parakeet-tdt-1.1b",
		URL:  "https://huggingface.co/nvidia/parakeet-tdt-1.1b/resolve/main/parakeet-tdt-1.1b.nemo",
	},
	"nvidia/parakeet-rnnt-1.1b": {
		Name: "nvidia/parakeet-rnnt-1.1b",
		URL:  "https://huggingface.co/nvidia/parakeet-rnnt-1.1b/resolve/main/parakeet-rnnt-1.1b.nemo",
	},
	"nvidia/parakeet-ctc-1.1b": {
		Name: "nvidia/parakeet-ctc-1.1b",
		URL:  "https://huggingface.co/nvidia/parakeet-ctc-1.1b/resolve/main/parakeet-ctc-1.1b.nemo",
	},
}

func ModelNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LookupModel(name string) (Model, bool) {
	model, ok := registry[name]
	return model, ok
}

// SafeFileName turns a model name into the on-disk package name, matching
// the persisted layout: slashes become double underscores, spaces become
// underscores, and the .nemo suffix is appended.
func SafeFileName(name string) string {
	safe := strings.ReplaceAll(name, "/", "__")
	safe = strings.ReplaceAll(safe, " ", "_")
	return safe + ".nemo"
}

// ResolveModel maps a registry name or an existing .nemo path to a local
// package location and reports whether a download is still needed.
func ResolveModel(modelRef, modelDir string) (ResolvedModel, error) {
	if strings.TrimSpace(modelRef) == "" {
		modelRef = DefaultModel
	}

	if model, ok := LookupModel(modelRef); ok {
		if strings.TrimSpace(modelDir) == "" {
			return ResolvedModel{}, errors.New("model directory must not be empty for named model")
		}

		modelPath := filepath.Join(modelDir, SafeFileName(model.Name))
		_, statErr := os.Stat(modelPath)
		needsDownload := errors.Is(statErr, os.ErrNotExist)
		if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			return ResolvedModel{}, fmt.Errorf("stat model path: %w", statErr)
		}

		return ResolvedModel{
			Name:          model.Name,
			Path:          modelPath,
			URL:           model.URL,
			SHA256:        model.SHA256,
			NeedsDownload: needsDownload,
		}, nil
	}

	if !looksLikePath(modelRef) {
		return ResolvedModel{}, fmt.Errorf("unknown model %q (known models: %s)", modelRef, strings.Join(ModelNames(), ", "))
	}

	customPath := filepath.Clean(modelRef)
	if _, err := os.Stat(customPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ResolvedModel{}, fmt.Errorf("custom model path does not exist: %s", customPath)
		}
		return ResolvedModel{}, fmt.Errorf("stat custom model path: %w", err)
	}

	return ResolvedModel{
		Path:         customPath,
		IsCustomPath: true,
	}, nil
}

func looksLikePath(input string) bool {
	if strings.HasSuffix(strings.ToLower(input), ".nemo") {
		return true
	}
	// Registry names contain a single slash (org/model); anything deeper or
	// with OS separators is a filesystem path.
	return strings.Count(filepath.ToSlash(input), "/") > 1 || strings.HasPrefix(input, ".") || filepath.IsAbs(input)
}
