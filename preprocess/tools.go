package preprocess

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FindTool resolves the first of names that exists either as a direct path
// or on PATH.
func FindTool(names ...string) (string, error) {
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}

		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%s not found on disk or PATH", strings.Join(names, " or "))
}

func runCommand(name string, args ...string) error {
	var command = exec.Command(name, args...)

	var stderr bytes.Buffer
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		var detail = strings.TrimSpace(stderr.String())

		// Tool output can run long; the tail carries the actual failure.
		if len(detail) > 400 {
			detail = detail[len(detail)-400:]
		}

		if detail == "" {
			return fmt.Errorf("%s failed: %v", filepath.Base(name), err)
		}

		return fmt.Errorf("%s failed: %v: %s", filepath.Base(name), err, detail)
	}

	return nil
}
