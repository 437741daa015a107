package chat

import (
	"errors"
	"fmt"

	"github.com/andy6609/jim-relay-server/internal/jim"
)

// readLoop reads one frame per iteration and forwards it to the reactor in
// arrival order. It ends on the first error; the reactor decides what the
// error means for the session.
func (r *Reactor) readLoop(s *Session) {
	defer r.conns.Done()

	for {
		msg, err := jim.ReadFrame(s.Conn)
		ev := Event{Type: EventFrame, Session: s, Message: msg}
		switch {
		case err == nil:
		case errors.Is(err, jim.ErrMalformedFrame):
			ev = Event{Type: EventMalformed, Session: s, Err: err}
		default:
			ev = Event{Type: EventGone, Session: s, Err: fmt.Errorf("%w: read: %v", ErrPeerGone, err)}
		}
		if !r.submit(ev) || ev.Type != EventFrame {
			return
		}
	}
}
