package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Collector is an ordered list of source paths whose markers could not be
// resolved. Duplicates are kept: a file appears once per malformed marker.
type Collector struct {
	paths []string
}

func (c *Collector) Record(path string) {
	c.paths = append(c.paths, path)
}

// Merge appends the entries of other, preserving their order.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.paths = append(c.paths, other.paths...)
}

func (c *Collector) Len() int {
	return len(c.paths)
}

// WriteFile stores the collected paths as an indented JSON array. Nothing is
// written when the collector is empty, so an earlier log at path survives;
// the returned bool reports whether a file was written.
func (c *Collector) WriteFile(path string) (bool, error) {
	if c.Len() == 0 {
		return false, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(c.paths); err != nil {
		return false, fmt.Errorf("marshal error log: %w", err)
	}
	payload := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create error log directory: %w", err)
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return false, fmt.Errorf("write error log %s: %w", path, err)
	}
	return true, nil
}
