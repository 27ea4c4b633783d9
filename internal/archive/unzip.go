package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// UnzipToolExtractor shells out to the system unzip tool. The -o flag forces
// overwrite without prompting.
type UnzipToolExtractor struct {
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

func NewUnzipToolExtractor() *UnzipToolExtractor {
	return &UnzipToolExtractor{lookPath: exec.LookPath, run: runTool}
}

func (e *UnzipToolExtractor) Name() string { return "unzip" }

func (e *UnzipToolExtractor) Available() bool {
	_, err := e.lookPath("unzip")
	return err == nil
}

func (e *UnzipToolExtractor) Extract(ctx context.Context, source, destination string) error {
	return e.run(ctx, "unzip", "-o", source, "-d", destination)
}

func runTool(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w (%s)", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
