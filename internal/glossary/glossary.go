package glossary

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	markerElement = "span"
	glossDelim    = "--"
)

var markerClasses = []string{"xref", "gxref"}

// Gloss is the English/Chinese pair carried by a marker title such as
// "API--接口".
type Gloss struct {
	English string
	Chinese string
}

func (g Gloss) String() string {
	return g.English + ", " + g.Chinese
}

// ParseGloss splits title on "--". It reports false unless the split yields
// exactly two parts, so both "badtitle" and "a--b--c" are rejected.
func ParseGloss(title string) (Gloss, bool) {
	parts := strings.Split(title, glossDelim)
	if len(parts) != 2 {
		return Gloss{}, false
	}
	return Gloss{English: parts[0], Chinese: parts[1]}, true
}

// Document owns the parsed tree of one source file. Markers handed out by
// Markers point into this tree and must not outlive it.
type Document struct {
	Path string
	dom  *goquery.Document
}

func Parse(path string, html string) (*Document, error) {
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", path, err)
	}
	return &Document{Path: path, dom: dom}, nil
}

// Marker is a cross-reference abbreviation element inside a Document.
type Marker struct {
	sel *goquery.Selection
}

// Markers returns every span whose class list contains both "xref" and
// "gxref", in document order. Extra classes and token order are ignored,
// so class="gxref note xref" matches too.
func (d *Document) Markers() []Marker {
	selector := markerElement + "." + strings.Join(markerClasses, ".")

	var markers []Marker
	d.dom.Find(selector).Each(func(_ int, s *goquery.Selection) {
		markers = append(markers, Marker{sel: s})
	})
	return markers
}

func (m Marker) Text() string {
	return m.sel.Text()
}

// Title reports the title attribute. An empty title counts as absent.
func (m Marker) Title() (string, bool) {
	title, ok := m.sel.Attr("title")
	if !ok || title == "" {
		return "", false
	}
	return title, true
}

// ReplaceText drops the marker's children and leaves a single text node.
func (m Marker) ReplaceText(text string) {
	m.sel.SetText(text)
}

type Result struct {
	Expanded  int
	Untitled  int
	Malformed []string
}

// Resolve rewrites every marker in place. Titles that are not a gloss pair
// are appended verbatim and returned in Malformed, one entry per marker.
func (d *Document) Resolve() Result {
	var res Result
	for _, m := range d.Markers() {
		title, ok := m.Title()
		if !ok {
			res.Untitled++
			continue
		}

		text := m.Text()
		if gloss, ok := ParseGloss(title); ok {
			m.ReplaceText(text + "(" + gloss.String() + ")")
			res.Expanded++
			continue
		}

		m.ReplaceText(text + "(" + title + ")")
		res.Malformed = append(res.Malformed, title)
	}
	return res
}

// HTML serializes the current state of the tree.
func (d *Document) HTML() (string, error) {
	out, err := d.dom.Html()
	if err != nil {
		return "", fmt.Errorf("render html %s: %w", d.Path, err)
	}
	return out, nil
}
