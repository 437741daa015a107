package chat

import "sync"

type ChangeKind string

const (
	ChangeJoined ChangeKind = "joined"
	ChangeLeft   ChangeKind = "left"
)

// RegistryChange is published whenever an account joins or leaves.
// Active is the number of authenticated sessions after the change.
type RegistryChange struct {
	Kind   ChangeKind
	Name   string
	Active int
}

// notifier fans registry changes out to read-only observers. The lock only
// guards the subscriber list, never the registry.
type notifier struct {
	mu     sync.Mutex
	subs   []chan RegistryChange
	closed bool
}

func (n *notifier) subscribe(buffer int) <-chan RegistryChange {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan RegistryChange, buffer)
	if n.closed {
		close(ch)
		return ch
	}
	n.subs = append(n.subs, ch)
	return ch
}

// publish never blocks: an observer with a full buffer misses the change.
func (n *notifier) publish(c RegistryChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

func (n *notifier) close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for _, ch := range n.subs {
		close(ch)
	}
	n.subs = nil
}
