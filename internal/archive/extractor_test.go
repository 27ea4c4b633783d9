package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectExtractorPrefersRequestedName(t *testing.T) {
	t.Parallel()

	wanted := &fakeExtractor{name: "unzip", available: true}
	extractors := []Extractor{&fakeExtractor{name: "builtin", available: true}, wanted}

	selected, err := SelectExtractor(extractors, "unzip")
	require.NoError(t, err)
	require.Same(t, Extractor(wanted), selected)
}

func TestSelectExtractorRequestedButUnavailable(t *testing.T) {
	t.Parallel()

	extractors := []Extractor{&fakeExtractor{name: "unzip", available: false}}

	_, err := SelectExtractor(extractors, "unzip")
	require.ErrorIs(t, err, ErrNoExtractorAvailable)
}

func TestSelectExtractorUnknownName(t *testing.T) {
	t.Parallel()

	extractors := []Extractor{&fakeExtractor{name: "builtin", available: true}}

	_, err := SelectExtractor(extractors, "7z")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoExtractorAvailable)
}

func TestSelectExtractorAutoPicksFirstAvailable(t *testing.T) {
	t.Parallel()

	second := &fakeExtractor{name: "second", available: true}
	extractors := []Extractor{&fakeExtractor{name: "first", available: false}, second}

	selected, err := SelectExtractor(extractors, "auto")
	require.NoError(t, err)
	require.Same(t, Extractor(second), selected)
}

func TestSelectExtractorNoneAvailable(t *testing.T) {
	t.Parallel()

	extractors := []Extractor{&fakeExtractor{name: "first", available: false}}

	_, err := SelectExtractor(extractors, "")
	require.ErrorIs(t, err, ErrNoExtractorAvailable)
}

func TestUnzipToolAvailability(t *testing.T) {
	t.Parallel()

	present := NewUnzipToolExtractor()
	present.lookPath = func(string) (string, error) { return "/usr/bin/unzip", nil }
	require.True(t, present.Available())

	missing := NewUnzipToolExtractor()
	missing.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	require.False(t, missing.Available())
}

func TestUnzipToolExtractInvokesOverwriteMode(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotArgs []string

	extractor := NewUnzipToolExtractor()
	extractor.run = func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	require.NoError(t, extractor.Extract(context.Background(), "/data/a.zip", "/data"))
	require.Equal(t, "unzip", gotName)
	require.Equal(t, []string{"-o", "/data/a.zip", "-d", "/data"}, gotArgs)
}
