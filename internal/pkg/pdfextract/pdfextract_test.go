package pdfextract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pdfBuilder assembles a minimal but well-formed PDF by hand, recording the
// byte offset of every object so the xref table is correct by construction.
type pdfBuilder struct {
	buf     bytes.Buffer
	offsets []int
}

func newPDFBuilder() *pdfBuilder {
	b := &pdfBuilder{}
	b.buf.WriteString("%PDF-1.4\n")
	return b
}

func (b *pdfBuilder) addObject(body string) {
	num := len(b.offsets) + 1
	b.offsets = append(b.offsets, b.buf.Len())
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", num, body)
}

func (b *pdfBuilder) addStream(data string) {
	b.addObject(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(data), data))
}

func (b *pdfBuilder) write(t *testing.T, trailerExtra string) string {
	t.Helper()
	xrefOffset := b.buf.Len()
	fmt.Fprintf(&b.buf, "xref\n0 %d\n0000000000 65535 f \n", len(b.offsets)+1)
	for _, off := range b.offsets {
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b.buf, "trailer\n<< /Size %d /Root 1 0 R %s>>\nstartxref\n%d\n%%%%EOF\n",
		len(b.offsets)+1, trailerExtra, xrefOffset)

	path := filepath.Join(t.TempDir(), "fixture.pdf")
	require.NoError(t, os.WriteFile(path, b.buf.Bytes(), 0o644))
	return path
}

// brokenContent marks a page whose /Contents points at an object the xref
// table does not contain.
const brokenContent = "\x00broken"

func textStream(word string) string {
	return fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", word)
}

// buildDoc writes a document with one page per entry in pageContents.
// Objects are numbered catalog 1, pages 2, font 3, then a page object and,
// unless the content is broken, its content stream.
func buildDoc(t *testing.T, pageContents []string) string {
	t.Helper()
	b := newPDFBuilder()

	next := 4
	kids := make([]string, len(pageContents))
	contentRefs := make([]string, len(pageContents))
	for i, content := range pageContents {
		kids[i] = fmt.Sprintf("%d 0 R", next)
		next++
		if content == brokenContent {
			contentRefs[i] = "999 0 R"
		} else {
			contentRefs[i] = fmt.Sprintf("%d 0 R", next)
			next++
		}
	}

	b.addObject("<< /Type /Catalog /Pages 2 0 R >>")
	b.addObject(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pageContents)))
	b.addObject("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i, content := range pageContents {
		b.addObject(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %s >>",
			contentRefs[i]))
		if content != brokenContent {
			b.addStream(content)
		}
	}
	return b.write(t, "")
}

func newTestExtractor() *Extractor {
	return NewExtractor(zap.NewNop().Sugar())
}

func TestExtractPages_TwoPages(t *testing.T) {
	path := buildDoc(t, []string{textStream("alpha"), textStream("bravo")})

	pages, err := newTestExtractor().ExtractPages(path)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, 1, pages[0].Number)
	assert.Contains(t, pages[0].Text, "alpha")
	assert.Equal(t, 2, pages[1].Number)
	assert.Contains(t, pages[1].Text, "bravo")
}

// Original page numbers survive when earlier pages are dropped, so citations
// stay accurate.
func TestExtractPages_BlankPageSkipped(t *testing.T) {
	path := buildDoc(t, []string{"BT ET", textStream("bravo")})

	pages, err := newTestExtractor().ExtractPages(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 2, pages[0].Number)
	assert.Contains(t, pages[0].Text, "bravo")
}

func TestExtractPages_UnreadablePageSkipped(t *testing.T) {
	path := buildDoc(t, []string{brokenContent, textStream("bravo")})

	pages, err := newTestExtractor().ExtractPages(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 2, pages[0].Number)
}

func TestExtractPages_NoExtractableText(t *testing.T) {
	path := buildDoc(t, []string{"BT ET", textStream(" ")})

	_, err := newTestExtractor().ExtractPages(path)
	assert.ErrorIs(t, err, ErrNoExtractableText)
}

func TestExtractPages_EmptyDocument(t *testing.T) {
	b := newPDFBuilder()
	b.addObject("<< /Type /Catalog /Pages 2 0 R >>")
	b.addObject("<< /Type /Pages /Kids [] /Count 0 >>")
	path := b.write(t, "")

	_, err := newTestExtractor().ExtractPages(path)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtractPages_Encrypted(t *testing.T) {
	b := newPDFBuilder()
	b.addObject("<< /Type /Catalog /Pages 2 0 R >>")
	b.addObject("<< /Type /Pages /Kids [] /Count 0 >>")
	// Standard security handler with owner and user hashes that cannot match
	// the empty password.
	b.addObject(fmt.Sprintf("<< /Filter /Standard /V 1 /R 2 /P -44 /O <%s> /U <%s> >>",
		strings.Repeat("12", 32), strings.Repeat("ab", 32)))
	path := b.write(t, fmt.Sprintf("/Encrypt 3 0 R /ID [<%s> <%s>] ",
		strings.Repeat("cd", 16), strings.Repeat("cd", 16)))

	_, err := newTestExtractor().ExtractPages(path)
	assert.ErrorIs(t, err, ErrEncrypted)
}

func TestExtractPages_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf at all"), 0o644))

	_, err := newTestExtractor().ExtractPages(path)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestExtractPages_FileNotFound(t *testing.T) {
	_, err := newTestExtractor().ExtractPages(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}
