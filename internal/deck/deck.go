// Package deck reads and rewrites PPTX template decks. It works on the
// OOXML package directly: slides are located through the presentation part's
// relationship list, shapes are indexed by their drawing name, and only the
// text bodies of bound shapes are rewritten, so every other byte of the
// template round-trips unchanged.
package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
	slideRelType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// Deck is an in-memory PPTX package with its slides parsed.
type Deck struct {
	names  []string
	parts  map[string][]byte
	slides []*Slide
}

// Open reads a PPTX file and indexes its slides in presentation order.
func Open(file string) (*Deck, error) {
	r, err := zip.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", file, err)
	}
	defer r.Close()

	d := &Deck{parts: make(map[string][]byte, len(r.File))}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", f.Name, err)
		}
		d.names = append(d.names, f.Name)
		d.parts[f.Name] = data
	}

	order, err := d.slideParts()
	if err != nil {
		return nil, err
	}
	for _, part := range order {
		data, ok := d.parts[part]
		if !ok {
			return nil, fmt.Errorf("presentation references missing slide part %s", part)
		}
		slide, err := parseSlide(part, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse slide %s: %w", part, err)
		}
		d.slides = append(d.slides, slide)
	}
	return d, nil
}

// Slides returns the deck's slides in presentation order.
func (d *Deck) Slides() []*Slide { return d.slides }

// Clone returns a deep copy whose slides can be mutated without touching
// the shared template.
func (d *Deck) Clone() *Deck {
	c := &Deck{names: d.names, parts: d.parts}
	c.slides = make([]*Slide, len(d.slides))
	for i, s := range d.slides {
		c.slides[i] = s.clone()
	}
	return c
}

// Save writes the package to file, materializing any pending shape edits.
func (d *Deck) Save(file string) error {
	edited := make(map[string][]byte, len(d.slides))
	for _, s := range d.slides {
		if s.dirty() {
			data, err := s.apply()
			if err != nil {
				return fmt.Errorf("failed to rewrite slide %s: %w", s.part, err)
			}
			edited[s.part] = data
		}
	}

	out, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	w := zip.NewWriter(out)
	for _, name := range d.names {
		data := d.parts[name]
		if e, ok := edited[name]; ok {
			data = e
		}
		fw, err := w.Create(name)
		if err != nil {
			out.Close()
			return fmt.Errorf("failed to add part %s: %w", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			out.Close()
			return fmt.Errorf("failed to write part %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		out.Close()
		return fmt.Errorf("failed to finalize %s: %w", file, err)
	}
	return out.Close()
}

// slideParts resolves the ordered slide part names from the presentation
// part and its relationships.
func (d *Deck) slideParts() ([]string, error) {
	relsData, ok := d.parts[presentationRels]
	if !ok {
		return nil, fmt.Errorf("package has no %s", presentationRels)
	}
	rels, err := parseRelationships(relsData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse presentation relationships: %w", err)
	}

	presData, ok := d.parts[presentationPart]
	if !ok {
		return nil, fmt.Errorf("package has no %s", presentationPart)
	}
	ids, err := parseSlideIDs(presData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse presentation part: %w", err)
	}

	var parts []string
	for _, id := range ids {
		rel, ok := rels[id]
		if !ok || rel.Type != slideRelType {
			return nil, fmt.Errorf("presentation references unknown slide relationship %q", id)
		}
		parts = append(parts, resolveTarget(rel.Target))
	}
	if len(parts) == 0 {
		// Decks without an explicit slide list fall back to part numbering.
		for name := range d.parts {
			if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
				parts = append(parts, name)
			}
		}
		sort.Strings(parts)
	}
	return parts, nil
}

func resolveTarget(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "ppt/") {
		return target
	}
	return path.Join("ppt", target)
}

func xmlEscape(s string) string {
	var b bytes.Buffer
	// EscapeText only fails on writer errors; bytes.Buffer never errors.
	_ = escapeText(&b, s)
	return b.String()
}
