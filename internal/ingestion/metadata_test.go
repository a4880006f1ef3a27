package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewMetadata(t *testing.T) {
	m := NewMetadata("cv.pdf", "héllo", 2, 1024)

	assert.Equal(t, "cv.pdf", m.Filename)
	assert.Equal(t, 5, m.Chars)
	assert.Equal(t, 2, m.Pages)
	assert.Len(t, m.Hash, 64)

	_, err := time.Parse(time.RFC3339, m.Timestamp)
	assert.NoError(t, err)
}

func TestMetadata_HashDependsOnContent(t *testing.T) {
	a := NewMetadata("a.txt", "Content 1", 0, 9)
	b := NewMetadata("a.txt", "Content 2", 0, 9)
	c := NewMetadata("b.txt", "Content 1", 0, 9)

	assert.NotEqual(t, a.Hash, b.Hash)
	assert.Equal(t, a.Hash, c.Hash)
}

func TestMetadata_MarshalLogObject(t *testing.T) {
	m := &Metadata{Filename: "cv.pdf", Timestamp: "2024-01-01T00:00:00Z", Hash: "abcd1234", Pages: 2, Size: 10, Chars: 7}

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, m.MarshalLogObject(enc))
	assert.Equal(t, map[string]any{
		"filename": "cv.pdf",
		"hash":     "abcd1234",
		"pages":    2,
		"size":     int64(10),
		"chars":    7,
	}, enc.Fields)
}
