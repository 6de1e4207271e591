package outpath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	documentsSegment = "documents"
	topicsSegment    = "topics"
	targetExt        = ".txt"
)

var ErrNoDocumentsSegment = errors.New("path has no documents segment")

// Segments is a path broken on its separators. Operations return new slices
// and never modify the receiver.
type Segments []string

func Split(path string) Segments {
	clean := filepath.ToSlash(filepath.Clean(path))
	return Segments(strings.Split(clean, "/"))
}

// Index returns the position of the first segment equal to name, or -1.
func (s Segments) Index(name string) int {
	for i, seg := range s {
		if seg == name {
			return i
		}
	}
	return -1
}

// WithoutFirst drops the first segment equal to name. It is a no-op when
// name does not occur.
func (s Segments) WithoutFirst(name string) Segments {
	i := s.Index(name)
	if i < 0 {
		return append(Segments(nil), s...)
	}
	out := make(Segments, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// After returns the segments following position i.
func (s Segments) After(i int) Segments {
	return append(Segments(nil), s[i+1:]...)
}

func (s Segments) Join() string {
	return filepath.Join(s...)
}

// Relative maps a source path to its location under the output root: the
// first "topics" segment is removed, everything up to and including the
// first "documents" segment is dropped, and the extension becomes ".txt".
func Relative(sourcePath string) (string, error) {
	segs := Split(sourcePath).WithoutFirst(topicsSegment)

	i := segs.Index(documentsSegment)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrNoDocumentsSegment, sourcePath)
	}
	rest := segs.After(i)
	if len(rest) == 0 {
		return "", fmt.Errorf("%w: nothing after documents in %s", ErrNoDocumentsSegment, sourcePath)
	}

	rel := rest.Join()
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + targetExt, nil
}

func Map(outputRoot string, sourcePath string) (string, error) {
	rel, err := Relative(sourcePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(outputRoot, rel), nil
}
