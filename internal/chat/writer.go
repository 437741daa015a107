package chat

import "fmt"

// writeLoop writes each queued frame with its own Write call, so one frame
// never shares a write with the next. It owns closing the connection.
func (r *Reactor) writeLoop(s *Session) {
	defer r.conns.Done()
	defer func() {
		_ = s.Conn.Close()
	}()

	for frame := range s.Out {
		if _, err := s.Conn.Write(frame); err != nil {
			r.submit(Event{Type: EventGone, Session: s, Err: fmt.Errorf("%w: write: %v", ErrPeerGone, err)})
			return
		}
	}
}
