package services

import (
	"context"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/sse"
)

// publishSSE broadcasts on the local hub and, when a bus is configured, to
// the other instances. Bus failures are logged, never propagated.
func publishSSE(ctx context.Context, log *logger.Logger, hub *sse.SSEHub, bus SSEBus, channel string, event sse.SSEEvent, data any) {
	msg := sse.SSEMessage{Channel: channel, Event: event, Data: data}
	if hub != nil {
		hub.Broadcast(msg)
	}
	if bus != nil {
		if err := bus.Publish(ctx, msg); err != nil {
			log.Warn("Failed to publish SSE message to bus", "error", err)
		}
	}
}
