package chat

import (
	"log/slog"

	"github.com/andy6609/jim-relay-server/internal/jim"
	"github.com/google/uuid"
)

// router holds accepted chat messages until their receiver can take them.
// Delivery is at most once: a message whose receiver leaves is dropped and
// the sender, who already got 200, is not told.
type router struct {
	pending  []PendingMessage
	registry *Registry
	logger   *slog.Logger
}

func (rt *router) enqueue(pm PendingMessage) {
	rt.pending = append(rt.pending, pm)
	PendingMessages.Set(float64(len(rt.pending)))
}

// flush walks the queue in creation order and hands each writable receiver
// at most one frame.
func (rt *router) flush() (delivered, dropped int) {
	if len(rt.pending) == 0 {
		return 0, 0
	}
	served := make(map[uuid.UUID]bool)
	kept := rt.pending[:0]
	for _, pm := range rt.pending {
		receiver, ok := rt.registry.Lookup(pm.Receiver)
		if !ok {
			rt.logger.Info("receiver left before delivery, message dropped",
				"sender", pm.Sender, "receiver", pm.Receiver)
			dropped++
			continue
		}
		if served[receiver.ID] || !receiver.writable() {
			kept = append(kept, pm)
			continue
		}
		frame, err := jim.Encode(pm.frame())
		if err != nil {
			rt.logger.Error("encode failed, message dropped", "sender", pm.Sender, "receiver", pm.Receiver, "error", err)
			dropped++
			continue
		}
		if jim.Oversized(frame) {
			rt.logger.Warn("frame exceeds peer read limit and will be truncated",
				"receiver", pm.Receiver, "bytes", len(frame), "limit", jim.MaxFrameSize)
		}
		if !receiver.send(frame) {
			kept = append(kept, pm)
			continue
		}
		served[receiver.ID] = true
		delivered++
		rt.logger.Debug("message delivered", "sender", pm.Sender, "receiver", pm.Receiver)
	}
	clear(rt.pending[len(kept):])
	rt.pending = kept

	PendingMessages.Set(float64(len(rt.pending)))
	DeliveredTotal.Add(float64(delivered))
	DroppedTotal.Add(float64(dropped))
	return delivered, dropped
}

func (rt *router) len() int {
	return len(rt.pending)
}
