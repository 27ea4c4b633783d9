package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

var ErrNoExtractorAvailable = errors.New("no zip extractor available")

// Extractor is the decompression capability a sweep depends on. It must
// resolve before any filesystem work begins.
type Extractor interface {
	Name() string
	Available() bool
	Extract(ctx context.Context, source, destination string) error
}

func SelectExtractor(extractors []Extractor, preferred string) (Extractor, error) {
	if len(extractors) == 0 {
		return nil, errors.New("no extractors configured")
	}

	if preferred != "" && preferred != "auto" {
		for _, extractor := range extractors {
			if extractor.Name() == preferred {
				if !extractor.Available() {
					return nil, fmt.Errorf("requested extractor %q: %w", preferred, ErrNoExtractorAvailable)
				}
				return extractor, nil
			}
		}
		return nil, fmt.Errorf("unknown extractor %q", preferred)
	}

	for _, extractor := range extractors {
		if extractor.Available() {
			return extractor, nil
		}
	}

	return nil, ErrNoExtractorAvailable
}

func DefaultExtractors(fs *afero.Afero) []Extractor {
	return []Extractor{NewBuiltinExtractor(fs), NewUnzipToolExtractor()}
}
