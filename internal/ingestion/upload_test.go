package ingestion

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfHeader = []byte("%PDF-1.4\n%fake body\n")

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		data        []byte
		wantErr     string
	}{
		{"pdf", "cv.pdf", "application/pdf", pdfHeader, ""},
		{"pdf with params", "cv.pdf", "application/pdf; charset=binary", pdfHeader, ""},
		{"octet stream with pdf name", "CV.PDF", "application/octet-stream", pdfHeader, ""},
		{"missing content type with pdf name", "cv.pdf", "", pdfHeader, ""},
		{"word document", "cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", pdfHeader, "only PDF files"},
		{"octet stream sniffed as pdf", "cv.bin", "application/octet-stream", pdfHeader, ""},
		{"missing content type sniffed as pdf", "resume", "", pdfHeader, ""},
		{"octet stream sniffed as text", "cv.bin", "application/octet-stream", []byte("plain words"), "only PDF files"},
		{"wrong magic", "cv.pdf", "application/pdf", []byte("<html></html>"), "not a PDF"},
		{"empty", "cv.pdf", "application/pdf", nil, "is empty"},
		{"no filename", "", "application/pdf", pdfHeader, "filename"},
		{"too large", "cv.pdf", "application/pdf", append(append([]byte{}, pdfHeader...), make([]byte, MaxUploadBytes)...), "10 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.contentType, tt.data)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var uploadErr *UploadError
			require.ErrorAs(t, err, &uploadErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIngestPDF_Unreadable(t *testing.T) {
	_, err := IngestPDF("cv.pdf", ContentTypePDF, pdfHeader)
	var extractErr *ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestIngestFromFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	content := "Ada Lovelace\n\n• Wrote the first published algorithm\n•   Collaborated with Charles Babbage"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	doc, err := IngestFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "resume.txt", doc.Filename)
	assert.Contains(t, doc.Text, "- Wrote the first published algorithm")
	assert.Len(t, doc.Metadata.Hash, 64)
	assert.Equal(t, 0, doc.Metadata.Pages)
	assert.Equal(t, int64(len(content)), doc.Metadata.Size)
}

func TestIngestFromFile_TooLittleText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Ada \n\n L  "), 0644))

	_, err := IngestFromFile(path)
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Contains(t, err.Error(), "at least 20")
}

func TestIngestFromFile_NotFound(t *testing.T) {
	_, err := IngestFromFile("/nonexistent/resume.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestCountNonSpace(t *testing.T) {
	assert.Equal(t, 0, countNonSpace(" \n\t "))
	assert.Equal(t, 20, countNonSpace(strings.Repeat("ab ", 10)))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, ContentTypePDF, DetectContentType(pdfHeader))
	assert.True(t, strings.HasPrefix(DetectContentType([]byte("plain words")), "text/plain"))
	assert.NotEqual(t, ContentTypePDF, DetectContentType(bytes.Repeat([]byte{0}, 8)))
}
