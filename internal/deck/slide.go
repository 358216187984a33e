package deck

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	nsPresentation = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawing      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationship = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// ErrNoTextBody is returned when a shape cannot carry text (pictures,
// connectors, decorative geometry).
var ErrNoTextBody = errors.New("shape has no text body")

// TextStyle describes the rewritten run formatting of a placeholder.
type TextStyle struct {
	Font       string
	Bold       bool
	SizePt     int // zero keeps the inherited size
	AlignRight bool
}

// Slide is one slide part with its shapes indexed by name.
type Slide struct {
	part   string
	raw    []byte
	shapes []*Shape
	edits  map[string]string
}

// Shape is a named drawing shape. Only shapes with a text body can be bound.
type Shape struct {
	name    string
	text    string
	hasText bool
	// bodyStart..bodyEnd delimit the paragraph run of the shape's text body
	// in the slide's raw XML; rewrites replace exactly this range.
	bodyStart int
	bodyEnd   int
}

// Name returns the shape's drawing name as authored in the template.
func (s *Shape) Name() string { return s.name }

// Text returns the shape's displayed text; paragraphs are joined with
// newlines.
func (s *Shape) Text() string { return s.text }

// HasText reports whether the shape can carry text at all.
func (s *Shape) HasText() bool { return s.hasText }

// Part names the slide's zip entry.
func (s *Slide) Part() string { return s.part }

// Shapes returns the slide's shapes in document order.
func (s *Slide) Shapes() []*Shape { return s.shapes }

// Shape finds a shape by exact (case-sensitive) name.
func (s *Slide) Shape(name string) *Shape {
	for _, sh := range s.shapes {
		if sh.name == name {
			return sh
		}
	}
	return nil
}

// SetText replaces the named shape's paragraphs with a single styled run.
// The shape's bodyPr and list style are preserved; nothing outside the
// shape's text body changes.
func (s *Slide) SetText(name, text string, style TextStyle) error {
	sh := s.Shape(name)
	if sh == nil {
		return fmt.Errorf("shape %q not found", name)
	}
	if !sh.hasText {
		return fmt.Errorf("shape %q: %w", name, ErrNoTextBody)
	}
	if s.edits == nil {
		s.edits = make(map[string]string)
	}
	s.edits[name] = renderParagraph(text, style)
	sh.text = text
	return nil
}

func (s *Slide) dirty() bool { return len(s.edits) > 0 }

// apply produces the slide XML with all pending edits spliced in.
// Replacements are applied back to front so earlier offsets stay valid.
func (s *Slide) apply() ([]byte, error) {
	type splice struct {
		start, end int
		xml        string
	}
	var splices []splice
	for name, frag := range s.edits {
		sh := s.Shape(name)
		if sh == nil || !sh.hasText {
			return nil, fmt.Errorf("shape %q: %w", name, ErrNoTextBody)
		}
		splices = append(splices, splice{start: sh.bodyStart, end: sh.bodyEnd, xml: frag})
	}
	sort.Slice(splices, func(i, j int) bool { return splices[i].start > splices[j].start })

	out := make([]byte, len(s.raw))
	copy(out, s.raw)
	for _, sp := range splices {
		var b bytes.Buffer
		b.Write(out[:sp.start])
		b.WriteString(sp.xml)
		b.Write(out[sp.end:])
		out = b.Bytes()
	}
	return out, nil
}

func (s *Slide) clone() *Slide {
	c := &Slide{part: s.part, raw: s.raw}
	c.shapes = make([]*Shape, len(s.shapes))
	for i, sh := range s.shapes {
		cp := *sh
		c.shapes[i] = &cp
	}
	return c
}

// renderParagraph builds the replacement run XML for a placeholder.
func renderParagraph(text string, style TextStyle) string {
	var b strings.Builder
	b.WriteString("<a:p>")
	if style.AlignRight {
		b.WriteString(`<a:pPr algn="r"/>`)
	}
	b.WriteString(`<a:r><a:rPr lang="en-US"`)
	if style.SizePt > 0 {
		fmt.Fprintf(&b, ` sz="%d"`, style.SizePt*100)
	}
	if style.Bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(` dirty="0"`)
	if style.Font != "" {
		b.WriteString(`><a:latin typeface="`)
		b.WriteString(xmlEscape(style.Font))
		b.WriteString(`"/></a:rPr>`)
	} else {
		b.WriteString("/>")
	}
	b.WriteString("<a:t>")
	b.WriteString(xmlEscape(text))
	b.WriteString("</a:t></a:r></a:p>")
	return b.String()
}

// parseSlide indexes the shapes of one slide part. Offsets are tracked so
// SetText can splice replacement paragraphs without re-serializing the
// document.
func parseSlide(part string, data []byte) (*Slide, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	slide := &Slide{part: part, raw: data}

	var (
		cur       *Shape
		spDepth   int
		named     bool
		inTxBody  bool
		inRunText bool
		paraStart = -1
		text      strings.Builder
		firstPara = true
	)

	for {
		off := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsPresentation && t.Name.Local == "sp":
				spDepth++
				if spDepth == 1 {
					cur = &Shape{bodyStart: -1, bodyEnd: -1}
					named = false
				}
			case cur != nil && !named && t.Name.Space == nsPresentation && t.Name.Local == "cNvPr":
				for _, a := range t.Attr {
					if a.Name.Local == "name" {
						cur.name = a.Value
					}
				}
				named = true
			case cur != nil && t.Name.Space == nsPresentation && t.Name.Local == "txBody":
				inTxBody = true
				cur.hasText = true
				paraStart = -1
				firstPara = true
				text.Reset()
			case inTxBody && t.Name.Space == nsDrawing && t.Name.Local == "p":
				if paraStart < 0 {
					paraStart = off
				}
				if !firstPara {
					text.WriteString("\n")
				}
				firstPara = false
			case inTxBody && t.Name.Space == nsDrawing && t.Name.Local == "t":
				inRunText = true
			}

		case xml.EndElement:
			switch {
			case t.Name.Space == nsPresentation && t.Name.Local == "sp":
				spDepth--
				if spDepth == 0 && cur != nil {
					slide.shapes = append(slide.shapes, cur)
					cur = nil
				}
			case inTxBody && t.Name.Space == nsPresentation && t.Name.Local == "txBody":
				inTxBody = false
				cur.text = text.String()
				if paraStart < 0 {
					// No paragraphs at all: insert right before </p:txBody>.
					paraStart = off
				}
				cur.bodyStart = paraStart
				cur.bodyEnd = off
			case t.Name.Space == nsDrawing && t.Name.Local == "t":
				inRunText = false
			}

		case xml.CharData:
			if inRunText {
				text.Write(t)
			}
		}
	}
	return slide, nil
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

func parseRelationships(data []byte) (map[string]relationship, error) {
	var doc struct {
		Rels []relationship `xml:"Relationship"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	rels := make(map[string]relationship, len(doc.Rels))
	for _, r := range doc.Rels {
		rels[r.ID] = r
	}
	return rels, nil
}

func parseSlideIDs(data []byte) ([]string, error) {
	var doc struct {
		IDs []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldIdLst>sldId"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(doc.IDs))
	for _, s := range doc.IDs {
		ids = append(ids, s.RID)
	}
	return ids, nil
}

func escapeText(w io.Writer, s string) error {
	return xml.EscapeText(w, []byte(s))
}
