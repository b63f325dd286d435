// Package extract turns uploaded document bytes into plain text.
//
// Extraction is a pure transform: it never touches the network or the
// filesystem. PDF text comes from the cross-reference reader in
// github.com/ledongthuc/pdf; DOCX text comes from the word/document.xml
// entry of the zip container.
package extract

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MIME types accepted for uploaded resumes.
const (
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	reXMLTags    = regexp.MustCompile(`<[^>]+>`)
	reSpaceRuns  = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlineRun = regexp.MustCompile(`\n+`)
)

// Text extracts plain text from document bytes with the declared MIME
// type, enforcing the size limit before any decoding. Output is
// whitespace-normalized and trimmed; extraction that yields empty text is
// an error, not an empty success.
func Text(data []byte, mimeType string, maxSize int64) (string, error) {
	if int64(len(data)) > maxSize {
		return "", &TooLargeError{Size: int64(len(data)), Limit: maxSize}
	}

	var text string
	var err error
	switch mimeType {
	case MIMEPDF:
		text, err = pdfText(data)
	case MIMEDocx:
		text, err = docxText(data)
	default:
		return "", &UnsupportedTypeError{MIMEType: mimeType}
	}
	if err != nil {
		return "", err
	}

	text = normalizeWhitespace(text)
	if text == "" {
		return "", &ExtractionError{Message: "document contains no extractable text"}
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to open PDF", Cause: err}
	}

	rs, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Message: "failed to read PDF text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", &ExtractionError{Message: "failed to read PDF text", Cause: err}
	}
	return buf.String(), nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to open DOCX container", Cause: err}
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", &ExtractionError{Message: "failed to open document.xml", Cause: err}
			}
			docXML, err = io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return "", &ExtractionError{Message: "failed to read document.xml", Cause: err}
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", &ExtractionError{Message: "no document.xml found in DOCX"}
	}

	// Paragraph boundaries become newlines before tags are stripped.
	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return reXMLTags.ReplaceAllString(xml, " "), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = reSpaceRuns.ReplaceAllString(s, " ")
	s = reNewlineRun.ReplaceAllString(s, "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
