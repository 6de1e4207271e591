package source

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const htmlSuffix = ".html"

// Discover walks root recursively and returns every file whose name ends in
// ".html". The match is case-sensitive and directories are never returned,
// even when their name carries the suffix.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), htmlSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
