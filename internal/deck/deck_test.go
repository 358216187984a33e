package deck

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/deck/decktest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, slides []decktest.Slide) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.pptx")
	require.NoError(t, decktest.Write(path, slides))
	return path
}

func TestOpen_SlidesInPresentationOrder(t *testing.T) {
	path := writeFixture(t, []decktest.Slide{
		{Shapes: []decktest.Shape{{Name: "ModelNumber", Text: "7"}}},
		{Shapes: []decktest.Shape{{Name: "ModelNumber", Text: "9"}}},
	})

	d, err := Open(path)
	require.NoError(t, err)

	require.Len(t, d.Slides(), 2)
	assert.Equal(t, "7", d.Slides()[0].Shape("ModelNumber").Text())
	assert.Equal(t, "9", d.Slides()[1].Shape("ModelNumber").Text())
}

func TestOpen_IndexesShapesByName(t *testing.T) {
	path := writeFixture(t, []decktest.Slide{
		{Shapes: []decktest.Shape{
			{Name: "ModelNumber", Text: "7"},
			{Name: "weight", Text: "?"},
			{Name: "decoration", Text: "ribbon"},
		}},
	})

	d, err := Open(path)
	require.NoError(t, err)

	slide := d.Slides()[0]
	assert.Len(t, slide.Shapes(), 3)
	require.NotNil(t, slide.Shape("weight"))
	assert.Equal(t, "?", slide.Shape("weight").Text())
	assert.Nil(t, slide.Shape("Weight"), "shape names are case-sensitive")
}

func TestSetText_RoundTrip(t *testing.T) {
	path := writeFixture(t, []decktest.Slide{
		{Shapes: []decktest.Shape{
			{Name: "weight", Text: "old"},
			{Name: "untouched", Text: "keep me"},
		}},
	})

	d, err := Open(path)
	require.NoError(t, err)

	style := TextStyle{Font: "Open Sans", Bold: true, SizePt: 28, AlignRight: true}
	require.NoError(t, d.Slides()[0].SetText("weight", "12.5 kg", style))

	out := filepath.Join(t.TempDir(), "out.pptx")
	require.NoError(t, d.Save(out))

	reread, err := Open(out)
	require.NoError(t, err)
	assert.Equal(t, "12.5 kg", reread.Slides()[0].Shape("weight").Text())
	assert.Equal(t, "keep me", reread.Slides()[0].Shape("untouched").Text())

	xml := slidePartXML(t, out, "ppt/slides/slide1.xml")
	assert.Contains(t, xml, `sz="2800"`)
	assert.Contains(t, xml, `b="1"`)
	assert.Contains(t, xml, `algn="r"`)
	assert.Contains(t, xml, `typeface="Open Sans"`)
}

func TestSetText_UnboundShapeBytesUnchanged(t *testing.T) {
	path := writeFixture(t, []decktest.Slide{
		{Shapes: []decktest.Shape{{Name: "weight", Text: "old"}}},
		{Shapes: []decktest.Shape{{Name: "other", Text: "second slide"}}},
	})

	d, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, d.Slides()[0].SetText("weight", "1 kg", TextStyle{}))

	out := filepath.Join(t.TempDir(), "out.pptx")
	require.NoError(t, d.Save(out))

	before := slidePartXML(t, path, "ppt/slides/slide2.xml")
	after := slidePartXML(t, out, "ppt/slides/slide2.xml")
	assert.Equal(t, before, after, "untouched slide parts must round-trip byte-for-byte")
}

func TestSetText_EscapesXML(t *testing.T) {
	path := writeFixture(t, []decktest.Slide{
		{Shapes: []decktest.Shape{{Name: "weight", Text: "old"}}},
	})

	d, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, d.Slides()[0].SetText("weight", `5 < 6 & "x"`, TextStyle{}))

	out := filepath.Join(t.TempDir(), "out.pptx")
	require.NoError(t, d.Save(out))

	reread, err := Open(out)
	require.NoError(t, err)
	assert.Equal(t, `5 < 6 & "x"`, reread.Slides()[0].Shape("weight").Text())
}

func TestSetText_UnknownShape(t *testing.T) {
	path := writeFixture(t, []decktest.Slide{
		{Shapes: []decktest.Shape{{Name: "weight", Text: "old"}}},
	})

	d, err := Open(path)
	require.NoError(t, err)
	assert.Error(t, d.Slides()[0].SetText("no-such-shape", "x", TextStyle{}))
}

func TestClone_TemplateStaysPristine(t *testing.T) {
	path := writeFixture(t, []decktest.Slide{
		{Shapes: []decktest.Shape{{Name: "weight", Text: "template"}}},
	})

	template, err := Open(path)
	require.NoError(t, err)

	work := template.Clone()
	require.NoError(t, work.Slides()[0].SetText("weight", "mutated", TextStyle{}))

	assert.Equal(t, "template", template.Slides()[0].Shape("weight").Text())
	assert.Equal(t, "mutated", work.Slides()[0].Shape("weight").Text())

	// A second clone starts from the template again.
	again := template.Clone()
	assert.Equal(t, "template", again.Slides()[0].Shape("weight").Text())
}

func slidePartXML(t *testing.T, pptxPath, part string) string {
	t.Helper()
	r, err := zip.OpenReader(pptxPath)
	require.NoError(t, err)
	defer r.Close()
	for _, f := range r.File {
		if f.Name == part {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatalf("part %s not found in %s", part, pptxPath)
	return ""
}

func TestRenderParagraph_DefaultStyleKeepsInheritedSize(t *testing.T) {
	frag := renderParagraph("7", TextStyle{})
	assert.False(t, strings.Contains(frag, "sz="))
	assert.False(t, strings.Contains(frag, "algn="))
	assert.Contains(t, frag, "<a:t>7</a:t>")
}
