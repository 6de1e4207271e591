package source

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

const DefaultEncoding = "utf-8"

var ErrUnknownEncoding = errors.New("no decoder for detected encoding")

// chardet reports a few names that neither the WHATWG nor the IANA index
// know under that spelling.
var charsetAliases = map[string]string{
	"gb-18030":   "gb18030",
	"ibm420_ltr": "ibm420",
	"ibm420_rtl": "ibm420",
	"ibm424_ltr": "ibm424",
	"ibm424_rtl": "ibm424",
}

type Document struct {
	Path     string
	Text     string
	Encoding string
}

// Decoding is the result of the default decode stage. When NeedsDetection is
// set, Text is empty and the caller has to run Detect.
type Decoding struct {
	Text           string
	NeedsDetection bool
}

// Load reads path and decodes it, falling back to statistical detection when
// the bytes are not valid UTF-8.
func Load(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	decoded := DecodeDefault(raw)
	if !decoded.NeedsDetection {
		return Document{Path: path, Text: decoded.Text, Encoding: DefaultEncoding}, nil
	}

	charset, err := Detect(raw)
	if err != nil {
		return Document{}, fmt.Errorf("detect encoding of %s: %w", path, err)
	}
	text, err := DecodeAs(raw, charset)
	if err != nil {
		return Document{}, fmt.Errorf("decode %s as %s: %w", path, charset, err)
	}
	return Document{Path: path, Text: text, Encoding: charset}, nil
}

func DecodeDefault(raw []byte) Decoding {
	if !utf8.Valid(raw) {
		return Decoding{NeedsDetection: true}
	}
	return Decoding{Text: string(raw)}
}

// Detect guesses the charset of raw and returns the detector's name for it.
func Detect(raw []byte) (string, error) {
	result, err := chardet.NewHtmlDetector().DetectBest(raw)
	if err != nil {
		return "", err
	}
	if result == nil || result.Charset == "" {
		return "", ErrUnknownEncoding
	}
	return result.Charset, nil
}

func DecodeAs(raw []byte, charset string) (string, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func lookupEncoding(charset string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if alias, ok := charsetAliases[name]; ok {
		name = alias
	}

	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc, nil
	}
	// ianaindex returns a nil encoding without error for names it knows but
	// cannot decode.
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, charset)
}
