package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap/zapcore"
)

// Metadata describes an ingested resume
type Metadata struct {
	Filename  string `json:"filename"`
	Timestamp string `json:"timestamp"`       // RFC3339 format
	Hash      string `json:"hash"`            // SHA256 hex digest of the cleaned text
	Pages     int    `json:"pages,omitempty"` // 0 for plain text input
	Size      int64  `json:"size"`            // bytes as uploaded
	Chars     int    `json:"chars"`           // runes in the cleaned text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename, content string, pages int, size int64) *Metadata {
	return &Metadata{
		Filename:  filename,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Pages:     pages,
		Size:      size,
		Chars:     len([]rune(content)),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// MarshalLogObject lets the metadata be logged as a structured field.
func (m *Metadata) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("filename", m.Filename)
	enc.AddString("hash", m.Hash)
	enc.AddInt("pages", m.Pages)
	enc.AddInt64("size", m.Size)
	enc.AddInt("chars", m.Chars)
	return nil
}
