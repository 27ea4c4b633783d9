package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fmueller/voxprep/internal/archive"
	"github.com/fmueller/voxprep/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestExitCodeMapping(t *testing.T) {
	t.Parallel()

	require.Equal(t, exitNoExtractor, exitCode(archive.ErrNoExtractorAvailable))
	require.Equal(t, exitNoExtractor, exitCode(fmt.Errorf("requested extractor %q: %w", "unzip", archive.ErrNoExtractorAvailable)))
	require.Equal(t, exitBadTarget, exitCode(fmt.Errorf("/no/such/dir: %w", archive.ErrNotADirectory)))
	require.Equal(t, exitFailure, exitCode(errors.New("download model: timeout")))
}

func TestExitCodesAreDistinct(t *testing.T) {
	t.Parallel()

	require.NotEqual(t, exitNoExtractor, exitBadTarget)
	require.NotZero(t, exitNoExtractor)
	require.NotZero(t, exitBadTarget)
}

func TestShouldPrintUsageHint(t *testing.T) {
	t.Parallel()

	require.True(t, shouldPrintUsageHint(errors.New("unknown command \"bad\" for \"voxprep\"")))
	require.True(t, shouldPrintUsageHint(errors.New("unknown flag: --oops")))
	require.True(t, shouldPrintUsageHint(errors.New("accepts 1 arg(s), received 2")))
	require.True(t, shouldPrintUsageHint(errors.New("required flag(s) \"url\" not set")))
	require.False(t, shouldPrintUsageHint(errors.New("download model \"x\": context deadline exceeded")))
	require.False(t, shouldPrintUsageHint(nil))
}

func TestHelpHintTarget(t *testing.T) {
	t.Parallel()

	root := cli.NewRootCmd()
	require.Equal(t, "voxprep", helpHintTarget(root, []string{"--badflag"}))
	require.Equal(t, "voxprep", helpHintTarget(root, []string{"badcmd"}))
	require.Equal(t, "voxprep sweep", helpHintTarget(root, []string{"sweep"}))
	require.Equal(t, "voxprep dataset http", helpHintTarget(root, []string{"dataset", "http", "--url", "x"}))
}
