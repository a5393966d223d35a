// Package extract turns uploaded resume files into plain text for the
// profile parser and the scoring pipeline.
package extract

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// MimeFromFilename maps an upload filename to the MIME type stored with
// the resume. Only pdf and docx uploads are accepted.
func MimeFromFilename(name string) (string, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MimePDF, true
	case ".docx":
		return MimeDocx, true
	default:
		return "", false
	}
}

// Text extracts the plain text of a resume file. A file whose extraction
// yields nothing is an error, the caller keeps the upload but marks it
// parse_failed.
func Text(mimeType string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch mimeType {
	case MimePDF:
		text, err = pdfText(data)
	case MimeDocx:
		text, err = docxText(data)
	case MimeText:
		text = string(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", mimeType)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text extracted")
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("creating pdf reader: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

var (
	docxParagraph = regexp.MustCompile(`</w:p>`)
	docxBreak     = regexp.MustCompile(`<w:br[^>]*/?>`)
	docxTag       = regexp.MustCompile(`<[^>]+>`)
)

// docxText reads the document body and flattens the WordprocessingML
// markup into newline-separated plain text.
func docxText(data []byte) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading docx: %w", err)
	}
	defer reader.Close()

	content := reader.Editable().GetContent()
	content = docxParagraph.ReplaceAllString(content, "\n")
	content = docxBreak.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
