package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx assembles a minimal DOCX container with the given document body.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestText_Docx(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Senior Engineer at Acme</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := Text(data, MIMEDocx, 1<<20)
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Senior Engineer at Acme")
	// Paragraphs are separated by newlines, not run together.
	assert.NotContains(t, text, "DoeSenior")
}

func TestText_DocxWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte("<w:styles/>"))
	require.NoError(t, zw.Close())

	_, err = Text(buf.Bytes(), MIMEDocx, 1<<20)

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
}

func TestText_DocxEmptyText(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body><w:p></w:p></w:body></w:document>`)

	_, err := Text(data, MIMEDocx, 1<<20)

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, extractErr.Error(), "no extractable text")
}

func TestText_CorruptContainer(t *testing.T) {
	_, err := Text([]byte("definitely not a zip"), MIMEDocx, 1<<20)

	var extractErr *ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestText_CorruptPDF(t *testing.T) {
	_, err := Text([]byte("%PDF-1.4 truncated garbage"), MIMEPDF, 1<<20)

	var extractErr *ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestText_UnsupportedType(t *testing.T) {
	_, err := Text([]byte("plain text resume"), "text/plain", 1<<20)

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "text/plain", unsupported.MIMEType)
}

func TestText_SizeLimitCheckedFirst(t *testing.T) {
	// An oversized payload with a bogus MIME type must fail on size, not
	// type: the limit is enforced before anything else looks at the bytes.
	big := make([]byte, 101)

	_, err := Text(big, "text/plain", 100)

	var tooLarge *TooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(101), tooLarge.Size)
	assert.Equal(t, int64(100), tooLarge.Limit)
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses spaces", "a   b\t\tc", "a b c"},
		{"collapses newline runs", "a\n\n\nb", "a\nb"},
		{"trims lines", "  a  \n  b  ", "a\nb"},
		{"nbsp becomes space", "a b", "a b"},
		{"empty", "   \n\n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeWhitespace(tt.input); got != tt.expected {
				t.Errorf("normalizeWhitespace(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestErrorTypesAreDistinguishable(t *testing.T) {
	_, errType := Text([]byte("x"), "image/png", 100)
	_, errSize := Text(make([]byte, 200), MIMEPDF, 100)

	var unsupported *UnsupportedTypeError
	var tooLarge *TooLargeError
	assert.True(t, errors.As(errType, &unsupported))
	assert.True(t, errors.As(errSize, &tooLarge))
	assert.False(t, errors.As(errType, &tooLarge))
}
