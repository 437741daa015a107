package chat

import (
	"errors"
	"log/slog"
	"time"

	"github.com/andy6609/jim-relay-server/internal/directory"
	"github.com/andy6609/jim-relay-server/internal/jim"
	"github.com/samber/lo"
)

// Intent is what the reactor must do after one request. The machine itself
// never touches a socket.
type Intent struct {
	Reply  *jim.Message
	Route  *PendingMessage
	Close  bool
	Change *RegistryChange
}

type machine struct {
	registry *Registry
	dir      directory.Directory
	logger   *slog.Logger
	now      func() time.Time
}

func newMachine(registry *Registry, dir directory.Directory, logger *slog.Logger) *machine {
	return &machine{registry: registry, dir: dir, logger: logger, now: time.Now}
}

// Dispatch validates msg against the session state and applies it.
func (m *machine) Dispatch(s *Session, msg jim.Message) Intent {
	req, err := jim.Parse(msg)
	if err != nil {
		return m.badRequest(s, err)
	}
	if s.State == StateConnecting && req.Action() != jim.ActionPresence {
		return m.badRequest(s, errors.New("presence required first"))
	}

	switch r := req.(type) {
	case jim.PresenceRequest:
		return m.presence(s, r)
	case jim.MessageRequest:
		return m.message(s, r)
	case jim.ExitRequest:
		return m.exit(s, r)
	case jim.GetContactsRequest:
		if r.User != s.Name {
			return m.badRequest(s, errors.New("user mismatch"))
		}
		contacts, err := m.dir.Contacts(r.User)
		if err != nil {
			return m.failed(s, err)
		}
		return reply(jim.OKWithList(contacts))
	case jim.ContactRequest:
		if r.User != s.Name {
			return m.badRequest(s, errors.New("user mismatch"))
		}
		if r.Kind == jim.ActionAddContact {
			err = m.dir.AddContact(r.User, r.AccountName)
		} else {
			err = m.dir.RemoveContact(r.User, r.AccountName)
		}
		if err != nil {
			return m.failed(s, err)
		}
		return reply(jim.OK())
	case jim.UsersRequest:
		if r.AccountName != s.Name {
			return m.badRequest(s, errors.New("account mismatch"))
		}
		users, err := m.dir.Users()
		if err != nil {
			return m.failed(s, err)
		}
		return reply(jim.OKWithList(lo.Map(users, func(u directory.User, _ int) string {
			return u.Name
		})))
	}
	return m.badRequest(s, errors.New("unhandled request"))
}

func (m *machine) presence(s *Session, r jim.PresenceRequest) Intent {
	if s.State != StateConnecting {
		return m.badRequest(s, errors.New("already authenticated"))
	}
	if err := m.registry.Register(r.AccountName, s); err != nil {
		m.logger.Info("presence rejected", "session", s.ID, "user", r.AccountName, "error", err)
		return Intent{Reply: failure(ErrNameTaken), Close: true}
	}
	if err := m.dir.Login(r.AccountName, s.IP, s.Port); err != nil {
		m.registry.release(s)
		return m.failed(s, err)
	}
	m.logger.Info("user registered", "session", s.ID, "user", r.AccountName, "ip", s.IP, "port", s.Port)
	return Intent{
		Reply:  lo.ToPtr(jim.OK()),
		Change: &RegistryChange{Kind: ChangeJoined, Name: r.AccountName},
	}
}

func (m *machine) message(s *Session, r jim.MessageRequest) Intent {
	if r.Sender != s.Name {
		return m.badRequest(s, errors.New("sender mismatch"))
	}
	if _, ok := m.registry.Lookup(r.Receiver); !ok {
		m.logger.Info("route miss", "user", s.Name, "receiver", r.Receiver)
		return reply(*failure(ErrRouteMiss))
	}
	if err := m.dir.RecordTransfer(r.Sender, r.Receiver); err != nil {
		return m.failed(s, err)
	}
	return Intent{
		Reply: lo.ToPtr(jim.OK()),
		Route: &PendingMessage{
			Sender:    r.Sender,
			Receiver:  r.Receiver,
			Text:      *r.Text,
			CreatedAt: m.now(),
		},
	}
}

func (m *machine) exit(s *Session, r jim.ExitRequest) Intent {
	if r.AccountName != s.Name {
		return m.badRequest(s, errors.New("account mismatch"))
	}
	if err := m.dir.Logout(s.Name); err != nil {
		m.logger.Warn("logout failed", "user", s.Name, "error", err)
	}
	m.registry.Unregister(s.Name)
	m.logger.Info("user left", "session", s.ID, "user", r.AccountName)
	return Intent{
		Close:  true,
		Change: &RegistryChange{Kind: ChangeLeft, Name: r.AccountName},
	}
}

func (m *machine) badRequest(s *Session, err error) Intent {
	m.logger.Debug("bad request", "session", s.ID, "user", s.Name, "error", err)
	return reply(*failure(jim.ErrBadRequest))
}

func (m *machine) failed(s *Session, err error) Intent {
	m.logger.Warn("directory call failed", "session", s.ID, "user", s.Name, "error", err)
	return reply(*failure(ErrRequestFailed))
}

func reply(msg jim.Message) Intent {
	return Intent{Reply: &msg}
}

func failure(err error) *jim.Message {
	return lo.ToPtr(jim.Failure(err.Error()))
}
