package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spboyer/scorecard/internal/validation"
)

// now is replaced in tests.
var now = time.Now

const (
	formatTable    = "table"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func checkFormat(f string) error {
	switch f {
	case formatTable, formatJSON, formatMarkdown:
		return nil
	}
	return fmt.Errorf("unknown format %q: must be %s, %s or %s", f, formatTable, formatJSON, formatMarkdown)
}

// loadDocument validates path as kind and decodes it into out. YAML and
// JSON are both accepted.
func loadDocument(kind validation.Kind, path string, out any) error {
	issues, err := validation.ValidateFile(kind, path)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return &ValidationError{Path: path, Issues: issues}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func printIssues(w io.Writer, verr *ValidationError) {
	fmt.Fprintf(w, "%s is invalid:\n", verr.Path) //nolint:errcheck
	for _, issue := range verr.Issues {
		fmt.Fprintf(w, "  - %s\n", issue) //nolint:errcheck
	}
}

func normalizeFormat(f string) string {
	return strings.ToLower(strings.TrimSpace(f))
}
