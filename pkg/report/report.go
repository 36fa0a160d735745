// Package report renders operation results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/strops/pkg/adapters/fs"
	"github.com/aretw0/strops/pkg/core"
)

// Format selects how results are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", core.ErrInvalidArgument, name)
}

// WriteResults renders results for a single text value.
// In text format a single result prints only its output; several results
// print one "operation: output" line each.
func WriteResults(w io.Writer, format Format, results []core.Result) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatYAML:
		return writeYAML(w, results)
	case FormatText:
		if len(results) == 1 {
			_, err := fmt.Fprintln(w, results[0].String())
			return err
		}
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s: %s\n", r.Operation, r.String()); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown format %q", core.ErrInvalidArgument, format)
}

// WriteFiles renders the results of a file batch.
func WriteFiles(w io.Writer, format Format, files []fs.FileResult) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, files)
	case FormatYAML:
		return writeYAML(w, files)
	case FormatText:
		for _, f := range files {
			if f.Err != nil {
				if _, err := fmt.Fprintf(w, "%s: error: %v\n", f.Path, f.Err); err != nil {
					return err
				}
				continue
			}
			for _, r := range f.Results {
				if _, err := fmt.Fprintf(w, "%s: %s: %q\n", f.Path, r.Operation, r.String()); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown format %q", core.ErrInvalidArgument, format)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
