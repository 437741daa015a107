package chat

import (
	"net"
	"strconv"
	"time"

	"github.com/andy6609/jim-relay-server/internal/jim"
	"github.com/google/uuid"
)

type State int

const (
	StateConnecting State = iota
	StateAuthenticated
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Session is the server side of one TCP connection. Everything except Conn
// is owned by the reactor goroutine.
type Session struct {
	ID         uuid.UUID
	Conn       net.Conn
	IP         string
	Port       int
	Name       string
	State      State
	LastActive time.Time
	// Out feeds the writer goroutine, one frame per Write.
	Out chan []byte

	outClosed bool
}

func newSession(conn net.Conn, outBuffer int) *Session {
	ip, port := peerEndpoint(conn.RemoteAddr())
	return &Session{
		ID:         uuid.New(),
		Conn:       conn,
		IP:         ip,
		Port:       port,
		State:      StateConnecting,
		LastActive: time.Now(),
		Out:        make(chan []byte, outBuffer),
	}
}

func (s *Session) Authenticated() bool {
	return s.State == StateAuthenticated
}

// writable reports whether a frame handed over now would be accepted.
func (s *Session) writable() bool {
	return !s.outClosed && len(s.Out) < cap(s.Out)
}

func (s *Session) send(frame []byte) bool {
	if s.outClosed {
		return false
	}
	select {
	case s.Out <- frame:
		return true
	default:
		return false
	}
}

// close stops the writer after it drains what is already queued. The writer
// closes the connection, which in turn ends the reader.
func (s *Session) close() {
	if s.outClosed {
		return
	}
	s.outClosed = true
	_ = s.Conn.SetWriteDeadline(time.Now().Add(closeGrace))
	close(s.Out)
}

func peerEndpoint(addr net.Addr) (string, int) {
	if addr == nil {
		return "", 0
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String(), tcp.Port
	}
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String(), 0
	}
	p, _ := strconv.Atoi(port)
	return host, p
}

// PendingMessage is a chat payload accepted from its sender and waiting for
// the receiver to become writable.
type PendingMessage struct {
	Sender    string
	Receiver  string
	Text      string
	CreatedAt time.Time
}

func (p PendingMessage) frame() jim.Message {
	return jim.Chat(p.Sender, p.Receiver, p.Text, p.CreatedAt)
}

type EventType int

const (
	EventAccept EventType = iota
	EventFrame
	EventMalformed
	EventGone
)

type Event struct {
	Type    EventType
	Conn    net.Conn
	Session *Session
	Message jim.Message
	Err     error
}

var (
	ErrNameTaken     = errorString("name already taken")
	ErrRouteMiss     = errorString("receiver not registered")
	ErrPeerGone      = errorString("peer gone")
	ErrAlreadyBound  = errorString("session already bound to a name")
	ErrRequestFailed = errorString("request failed")
)

type errorString string

func (e errorString) Error() string { return string(e) }
