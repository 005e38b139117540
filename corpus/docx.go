// Package corpus pairs transcribed paragraphs with recordings and writes
// the .lab files an aligner reads next to each .wav.
package corpus

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoDocument is returned when a .docx archive has no main document part.
var ErrNoDocument = errors.New("docx: word/document.xml not found")

const documentPart = "word/document.xml"

// documentXML is the part of word/document.xml we read. Only top-level
// body paragraphs are collected; table cells are not.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

// paragraph collects the visible text of a w:p in document order,
// including text inside hyperlinks and other run containers.
type paragraph struct {
	Text string
}

func (p *paragraph) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	var b strings.Builder
	inText := false
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if depth == 0 {
				p.Text = b.String()
				return nil
			}
			depth--
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}

// Paragraphs returns the body paragraphs of a .docx document. Paragraphs
// that are empty or hold only spaces are skipped.
func Paragraphs(r io.ReaderAt, size int64) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("docx: open archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("docx: open %s: %w", documentPart, err)
		}
		defer rc.Close()

		var doc documentXML
		if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
			return nil, fmt.Errorf("docx: parse %s: %w", documentPart, err)
		}

		var out []string
		for _, p := range doc.Body.Paragraphs {
			if blank(p.Text) {
				continue
			}
			out = append(out, p.Text)
		}
		return out, nil
	}
	return nil, ErrNoDocument
}

// ParagraphsFile opens path and returns its paragraphs.
func ParagraphsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Paragraphs(f, info.Size())
}

func blank(s string) bool {
	return strings.Trim(s, " ") == ""
}
