// Package extract pulls plain text out of uploaded resume documents.
// Extraction is best-effort: callers degrade a failure into an explanatory
// message instead of aborting the turn.
package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/pkg/errors"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// IsImage reports whether the mime type is an image Gemini can read.
func IsImage(mimeType string) bool {
	switch mimeType {
	case "image/png", "image/jpeg", "image/webp":
		return true
	}
	return false
}

// Text extracts the textual content of an uploaded document. The filename
// is used as a fallback when the client sent no usable content type.
func Text(filename, mimeType string, data []byte) (string, error) {
	switch {
	case mimeType == mimePDF || strings.HasSuffix(strings.ToLower(filename), ".pdf"):
		return pdfText(data)
	case mimeType == mimeDocx || strings.HasSuffix(strings.ToLower(filename), ".docx"):
		return docxText(data)
	case strings.HasPrefix(mimeType, "text/"), strings.HasSuffix(strings.ToLower(filename), ".txt"):
		return string(data), nil
	}
	return "", errors.Errorf("unsupported file type: %s", mimeType)
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "failed to read pdf")
	}
	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		b.WriteString(text)
		b.WriteString("\n")
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("pdf contains no extractable text")
	}
	return out, nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse docx")
	}
	defer doc.Close()
	return doc.Editable().GetContent(), nil
}
