package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/andy6609/jim-relay-server/internal/directory"
	"github.com/andy6609/jim-relay-server/internal/jim"
)

const (
	DefaultPollInterval   = 500 * time.Millisecond
	DefaultOutboundBuffer = 32

	// closeGrace bounds how long a closing session may spend flushing.
	closeGrace = time.Second
)

type Options struct {
	// PollInterval is how often the router runs when no event arrives.
	PollInterval time.Duration
	// OutboundBuffer is the per-session frame queue; a full queue makes the
	// session not writable.
	OutboundBuffer int
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.OutboundBuffer <= 0 {
		o.OutboundBuffer = DefaultOutboundBuffer
	}
	return o
}

// Reactor is the single goroutine that owns the registry, the pending queue
// and every session's state. Reader and writer goroutines only talk to it
// through events.
type Reactor struct {
	events   chan Event
	done     chan struct{}
	conns    sync.WaitGroup
	registry *Registry
	machine  *machine
	router   *router
	notifier notifier
	dir      directory.Directory
	opts     Options
	logger   *slog.Logger
}

func NewReactor(dir directory.Directory, opts Options, logger *slog.Logger) *Reactor {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()
	registry := NewRegistry()
	return &Reactor{
		events:   make(chan Event, 128),
		done:     make(chan struct{}),
		registry: registry,
		machine:  newMachine(registry, dir, logger),
		router:   &router{registry: registry, logger: logger},
		dir:      dir,
		opts:     opts,
		logger:   logger,
	}
}

// Subscribe returns a channel of registry changes. It is closed when the
// reactor stops.
func (r *Reactor) Subscribe(buffer int) <-chan RegistryChange {
	return r.notifier.subscribe(buffer)
}

// Wait blocks until Run has returned and every connection goroutine ended.
func (r *Reactor) Wait() {
	<-r.done
	r.conns.Wait()
}

// submit hands ev to the loop, giving up once the loop has stopped.
func (r *Reactor) submit(ev Event) bool {
	select {
	case r.events <- ev:
		return true
	case <-r.done:
		return false
	}
}

func (r *Reactor) Run(ctx context.Context) {
	defer close(r.done)
	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-r.events:
			r.handle(ev)
			r.router.flush()
		case <-ticker.C:
			r.router.flush()
		case <-ctx.Done():
			r.shutdown()
			return
		}
	}
}

func (r *Reactor) handle(ev Event) {
	switch ev.Type {
	case EventAccept:
		r.accept(ev)
	case EventFrame:
		r.dispatch(ev.Session, ev.Message)
	case EventMalformed:
		r.teardown(ev.Session, "malformed", ev.Err)
	case EventGone:
		r.teardown(ev.Session, "peer_gone", ev.Err)
	}
}

func (r *Reactor) accept(ev Event) {
	s := newSession(ev.Conn, r.opts.OutboundBuffer)
	r.registry.Add(s)
	ConnectedSessions.Set(float64(r.registry.Len()))
	r.logger.Info("client connected", "session", s.ID, "ip", s.IP, "port", s.Port)

	r.conns.Add(2)
	go r.readLoop(s)
	go r.writeLoop(s)
}

func (r *Reactor) dispatch(s *Session, msg jim.Message) {
	if s.State == StateClosed {
		return
	}
	start := time.Now()
	s.LastActive = start
	action := string(msg.Action)
	if action == "" {
		action = "none"
	}

	intent := r.machine.Dispatch(s, msg)
	r.apply(s, intent)

	FramesTotal.WithLabelValues(action).Inc()
	DispatchDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}

func (r *Reactor) apply(s *Session, intent Intent) {
	if intent.Reply != nil {
		r.reply(s, *intent.Reply)
	}
	if intent.Route != nil {
		r.router.enqueue(*intent.Route)
	}
	if intent.Close {
		r.registry.Drop(s)
		s.close()
		ConnectedSessions.Set(float64(r.registry.Len()))
	}
	if intent.Change != nil {
		r.publish(*intent.Change)
	}
}

func (r *Reactor) reply(s *Session, msg jim.Message) {
	frame, err := jim.Encode(msg)
	if err != nil {
		r.logger.Error("encode reply failed", "session", s.ID, "error", err)
		return
	}
	if !s.send(frame) {
		r.logger.Warn("outbound queue full, reply dropped", "session", s.ID, "user", s.Name)
	}
}

func (r *Reactor) publish(c RegistryChange) {
	c.Active = r.registry.AuthenticatedLen()
	AuthenticatedSessions.Set(float64(c.Active))
	r.notifier.publish(c)
}

// teardown destroys s after an I/O or protocol failure. An authenticated
// session is logged out of the directory like a clean EXIT would.
func (r *Reactor) teardown(s *Session, reason string, err error) {
	if s.State == StateClosed && s.outClosed {
		return
	}
	name := s.Name
	wasAuthenticated := s.Authenticated()
	if wasAuthenticated {
		if lerr := r.dir.Logout(name); lerr != nil {
			r.logger.Warn("logout failed", "user", name, "error", lerr)
		}
	}
	r.registry.Drop(s)
	s.close()

	TeardownsTotal.WithLabelValues(reason).Inc()
	ConnectedSessions.Set(float64(r.registry.Len()))
	r.logger.Info("session closed", "session", s.ID, "user", name, "reason", reason, "error", err)
	if wasAuthenticated {
		r.publish(RegistryChange{Kind: ChangeLeft, Name: name})
	}
}

// shutdown logs out and closes every live session. Writers get closeGrace
// to flush what is queued.
func (r *Reactor) shutdown() {
	r.drain()
	r.router.flush()
	for _, s := range r.registry.All() {
		r.teardown(s, "shutdown", nil)
	}
	if n := r.router.len(); n > 0 {
		r.logger.Info("undelivered messages discarded", "count", n)
	}
	r.notifier.close()
	r.logger.Info("reactor stopped")
}

// drain handles the events queued so far, so a connection accepted just
// before shutdown is still closed properly.
func (r *Reactor) drain() {
	for n := len(r.events); n > 0; n-- {
		r.handle(<-r.events)
	}
}
