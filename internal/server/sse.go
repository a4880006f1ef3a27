package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/jonathan/career-prep/internal/assessment"
	"go.uber.org/zap"
)

// Terminal stream events
const (
	eventComplete = "complete"
	eventError    = "error"
)

var errStreamingUnsupported = errors.New("response writer does not support streaming")

// progressStream relays pipeline stages to the client as server-sent events.
// Fit scores arrive from several goroutines, so writes are serialized.
type progressStream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	logger  *zap.Logger
	seq     int
	gone    bool
}

func newProgressStream(w http.ResponseWriter, logger *zap.Logger) (*progressStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &progressStream{w: w, flusher: flusher, logger: logger}, nil
}

// send writes one numbered event. After the first write failure the client is
// treated as gone and later events are dropped.
func (p *progressStream) send(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to encode stream event", zap.String("event", event), zap.Error(err))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gone {
		return
	}
	p.seq++
	if _, err := fmt.Fprintf(p.w, "id: %d\nevent: %s\ndata: %s\n\n", p.seq, event, data); err != nil {
		p.gone = true
		p.logger.Debug("stream client gone", zap.String("event", event), zap.Error(err))
		return
	}
	p.flusher.Flush()
}

// progress adapts the stream to the pipeline's progress hook.
func (p *progressStream) progress() assessment.ProgressFunc {
	return func(stage string, data any) { p.send(stage, data) }
}

func (p *progressStream) finish(result any) { p.send(eventComplete, result) }

func (p *progressStream) fail(err error) {
	msg := err.Error()
	if HTTPStatus(err) == http.StatusInternalServerError {
		msg = "internal server error"
	}
	p.send(eventError, map[string]any{"error": msg, "status": HTTPStatus(err)})
}
