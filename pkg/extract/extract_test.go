package extract

import (
	"strings"
	"testing"
)

func TestIsImage(t *testing.T) {
	for _, mime := range []string{"image/png", "image/jpeg", "image/webp"} {
		if !IsImage(mime) {
			t.Errorf("IsImage(%q) = false", mime)
		}
	}
	for _, mime := range []string{"image/gif", "application/pdf", "text/plain", ""} {
		if IsImage(mime) {
			t.Errorf("IsImage(%q) = true", mime)
		}
	}
}

func TestTextPlainPassthrough(t *testing.T) {
	body := "Jane Doe\nSoftware Engineer"

	got, err := Text("resume.txt", "text/plain", []byte(body))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != body {
		t.Errorf("got %q", got)
	}
}

func TestTextFallsBackToExtension(t *testing.T) {
	// Browsers sometimes upload .txt with no usable content type.
	got, err := Text("notes.TXT", "application/octet-stream", []byte("hello"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestTextUnsupportedType(t *testing.T) {
	_, err := Text("archive.zip", "application/zip", []byte{0x50, 0x4b})
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTextMalformedPDF(t *testing.T) {
	if _, err := Text("resume.pdf", "application/pdf", []byte("not a pdf")); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}

func TestTextMalformedDocx(t *testing.T) {
	if _, err := Text("resume.docx", mimeDocx, []byte("not a docx")); err == nil {
		t.Fatal("expected error for malformed docx")
	}
}
