// Package ingestion validates uploaded resumes and turns them into clean text.
package ingestion

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Upload limits
const (
	MaxUploadBytes = 10 << 20
	MinTextChars   = 20

	ContentTypePDF = "application/pdf"
)

var pdfMagic = []byte("%PDF-")

// Document is an accepted upload with its cleaned text
type Document struct {
	Filename string
	Text     string
	Metadata *Metadata
}

// ValidateUpload checks the file name, declared content type, size, and leading bytes of an upload.
// A generic or empty content type is accepted when the name ends in .pdf or the data sniffs as PDF.
func ValidateUpload(filename, contentType string, data []byte) error {
	if strings.TrimSpace(filename) == "" {
		return &UploadError{Field: "filename", Message: "is required"}
	}
	if len(data) == 0 {
		return &UploadError{Field: "file", Message: "is empty"}
	}
	if len(data) > MaxUploadBytes {
		return &UploadError{Field: "file", Message: fmt.Sprintf("exceeds the %d MB limit", MaxUploadBytes>>20)}
	}

	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	isPDFName := strings.EqualFold(filepath.Ext(filename), ".pdf")
	switch mediaType {
	case ContentTypePDF:
	case "", "application/octet-stream":
		if !isPDFName && DetectContentType(data) != ContentTypePDF {
			return &UploadError{Field: "file", Message: "only PDF files are allowed"}
		}
	default:
		return &UploadError{Field: "file", Message: "only PDF files are allowed"}
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		return &UploadError{Field: "file", Message: "content is not a PDF document"}
	}
	return nil
}

// IngestPDF validates an uploaded PDF, extracts its text, and cleans it.
func IngestPDF(filename, contentType string, data []byte) (*Document, error) {
	if err := ValidateUpload(filename, contentType, data); err != nil {
		return nil, err
	}

	raw, pages, err := ExtractPDFText(data)
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Message: "unreadable PDF", Cause: err}
	}
	return newDocument(filename, raw, pages, int64(len(data)))
}

// IngestFromFile reads a resume from disk. Files ending in .pdf are validated and extracted;
// anything else is treated as plain text.
func IngestFromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return IngestPDF(name, ContentTypePDF, data)
	}
	if !utf8.Valid(data) {
		return nil, &UploadError{Field: "file", Message: "text file is not valid UTF-8"}
	}
	return newDocument(name, string(data), 0, int64(len(data)))
}

func newDocument(filename, raw string, pages int, size int64) (*Document, error) {
	text := CleanText(raw)
	if countNonSpace(text) < MinTextChars {
		return nil, &UploadError{
			Field:   "file",
			Message: fmt.Sprintf("could not extract enough text (need at least %d characters)", MinTextChars),
		}
	}
	return &Document{
		Filename: filename,
		Text:     text,
		Metadata: NewMetadata(filename, text, pages, size),
	}, nil
}

// ExtractPDFText returns the plain text of every page and the page count.
// Pages that fail to decode are skipped.
func ExtractPDFText(data []byte) (text string, pages int, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	pages = reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n\n")
	}
	return sb.String(), pages, nil
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// DetectContentType sniffs data when a client sends no usable content type.
func DetectContentType(data []byte) string {
	if bytes.HasPrefix(data, pdfMagic) {
		return ContentTypePDF
	}
	return http.DetectContentType(data)
}
