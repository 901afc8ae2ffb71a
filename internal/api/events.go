package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/nickmaccarthy/ClipChop/internal/exporter"
)

// subscriber channels are buffered; a slow consumer drops events rather
// than stalling the export worker.
const subscriberBuffer = 64

type sseMessage struct {
	event string
	data  []byte
}

// EventBroadcaster fans progress events out to connected SSE clients. It
// implements exporter.Emitter so the export worker stays ignorant of HTTP.
type EventBroadcaster struct {
	mu     sync.Mutex
	subs   map[chan sseMessage]struct{}
	logger *slog.Logger
}

func NewEventBroadcaster(logger *slog.Logger) *EventBroadcaster {
	return &EventBroadcaster{
		subs:   make(map[chan sseMessage]struct{}),
		logger: logger,
	}
}

// Emit serializes the event and hands it to every subscriber without
// blocking. Events a full subscriber misses are gone; the terminal summary
// remains queryable over the API.
func (b *EventBroadcaster) Emit(event string, p exporter.ProgressEvent) {
	data, err := json.Marshal(p)
	if err != nil {
		b.logger.Error("failed to marshal progress event", "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- sseMessage{event: event, data: data}:
		default:
		}
	}
}

// Subscribe registers a new consumer. The returned cancel func must be
// called when the consumer goes away.
func (b *EventBroadcaster) Subscribe() (<-chan sseMessage, func()) {
	ch := make(chan sseMessage, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
	return ch, cancel
}

func eventsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			WriteError(w, http.StatusInternalServerError, "streaming unsupported", "INTERNAL_ERROR")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ch, cancel := cfg.Broadcaster.Subscribe()
		defer cancel()

		for {
			select {
			case <-r.Context().Done():
				return
			case msg := <-ch:
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.event, msg.data)
				flusher.Flush()
			}
		}
	}
}
