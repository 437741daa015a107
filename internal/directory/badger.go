package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Key layout. Account names are free text, so segments are joined with a NUL
// byte rather than a printable separator.
//
//	user␀{name}                      -> userRecord
//	active␀{name}                    -> ActiveUser
//	login␀{name}␀{unixnano:019}␀{id} -> LoginRecord
//	contact␀{owner}␀{contact}        -> contactRecord
const (
	sep           = "\x00"
	prefixUser    = "user"
	prefixActive  = "active"
	prefixLogin   = "login"
	prefixContact = "contact"
)

type userRecord struct {
	Name      string    `json:"name"`
	LastLogin time.Time `json:"last_login"`
	Sent      int       `json:"sent"`
	Accepted  int       `json:"accepted"`
}

type contactRecord struct {
	Owner   string    `json:"owner"`
	Contact string    `json:"contact"`
	AddedAt time.Time `json:"added_at"`
}

// Store is the BadgerDB backed Directory and Inspector.
type Store struct {
	db  *badger.DB
	log *slog.Logger
	now func() time.Time
}

// NewStore wraps an opened database. Active-user rows left over from a
// previous run are cleared: no session survives a restart.
func NewStore(db *badger.DB, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := db.DropPrefix(key(prefixActive, "")); err != nil {
		return nil, fmt.Errorf("clear active users: %w", err)
	}
	return &Store{db: db, log: log, now: time.Now}, nil
}

func (s *Store) Login(name, ip string, port int) error {
	now := s.now().UTC()
	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := getUser(txn, name)
		if errors.Is(err, ErrUnknownUser) {
			rec = userRecord{Name: name}
		} else if err != nil {
			return err
		}
		rec.LastLogin = now
		if err = put(txn, key(prefixUser, name), rec); err != nil {
			return err
		}
		active := ActiveUser{Name: name, IP: ip, Port: port, LoginTime: now}
		if err = put(txn, key(prefixActive, name), active); err != nil {
			return err
		}
		history := LoginRecord{Name: name, At: now, IP: ip, Port: port}
		return put(txn, loginKey(name, now), history)
	})
	if err != nil {
		return fmt.Errorf("login %q: %w", name, err)
	}
	s.log.Debug("directory login", "user", name, "ip", ip, "port", port)
	return nil
}

func (s *Store) Logout(name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := getUser(txn, name); err != nil {
			return err
		}
		return txn.Delete(key(prefixActive, name))
	})
	if err != nil {
		return fmt.Errorf("logout %q: %w", name, err)
	}
	s.log.Debug("directory logout", "user", name)
	return nil
}

func (s *Store) Users() ([]User, error) {
	var records []userRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		records, err = scan[userRecord](txn, key(prefixUser, ""))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return lo.Map(records, func(r userRecord, _ int) User {
		return User{Name: r.Name, LastLogin: r.LastLogin}
	}), nil
}

func (s *Store) Contacts(name string) ([]string, error) {
	var records []contactRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		records, err = scan[contactRecord](txn, key(prefixContact, name, ""))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("contacts of %q: %w", name, err)
	}
	return lo.Map(records, func(r contactRecord, _ int) string {
		return r.Contact
	}), nil
}

// AddContact links contact to owner. Unknown contacts and duplicates are
// ignored; an unknown owner is an error.
func (s *Store) AddContact(owner, contact string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := getUser(txn, owner); err != nil {
			return err
		}
		if _, err := getUser(txn, contact); errors.Is(err, ErrUnknownUser) {
			return nil
		} else if err != nil {
			return err
		}
		k := key(prefixContact, owner, contact)
		if exists, err := hasKey(txn, k); err != nil || exists {
			return err
		}
		return put(txn, k, contactRecord{Owner: owner, Contact: contact, AddedAt: s.now().UTC()})
	})
	if err != nil {
		return fmt.Errorf("add contact %q for %q: %w", contact, owner, err)
	}
	return nil
}

func (s *Store) RemoveContact(owner, contact string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := getUser(txn, owner); err != nil {
			return err
		}
		return txn.Delete(key(prefixContact, owner, contact))
	})
	if err != nil {
		return fmt.Errorf("remove contact %q for %q: %w", contact, owner, err)
	}
	return nil
}

// RecordTransfer bumps the sender's sent and the receiver's accepted counters.
func (s *Store) RecordTransfer(sender, receiver string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		from, err := getUser(txn, sender)
		if err != nil {
			return err
		}
		from.Sent++
		if err = put(txn, key(prefixUser, sender), from); err != nil {
			return err
		}
		// Read after the write so a message to oneself counts on both sides.
		to, err := getUser(txn, receiver)
		if err != nil {
			return err
		}
		to.Accepted++
		return put(txn, key(prefixUser, receiver), to)
	})
	if err != nil {
		return fmt.Errorf("record transfer %q -> %q: %w", sender, receiver, err)
	}
	return nil
}

func (s *Store) ActiveUsers() ([]ActiveUser, error) {
	var active []ActiveUser
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		active, err = scan[ActiveUser](txn, key(prefixActive, ""))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	return active, nil
}

// LoginHistory returns logins of name in chronological order, or of every
// account when name is empty.
func (s *Store) LoginHistory(name string) ([]LoginRecord, error) {
	prefix := key(prefixLogin, "")
	if name != "" {
		prefix = key(prefixLogin, name, "")
	}
	var history []LoginRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		history, err = scan[LoginRecord](txn, prefix)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("login history: %w", err)
	}
	return history, nil
}

func (s *Store) MessageStats() ([]MessageStats, error) {
	var records []userRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		records, err = scan[userRecord](txn, key(prefixUser, ""))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("message stats: %w", err)
	}
	return lo.Map(records, func(r userRecord, _ int) MessageStats {
		return MessageStats{Name: r.Name, LastLogin: r.LastLogin, Sent: r.Sent, Accepted: r.Accepted}
	}), nil
}

func key(parts ...string) []byte {
	return []byte(strings.Join(parts, sep))
}

// loginKey keeps history sorted by time; the uuid separates logins that land
// on the same nanosecond.
func loginKey(name string, at time.Time) []byte {
	return key(prefixLogin, name, fmt.Sprintf("%019d", at.UnixNano()), uuid.NewString())
}

func getUser(txn *badger.Txn, name string) (userRecord, error) {
	var rec userRecord
	item, err := txn.Get(key(prefixUser, name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return rec, fmt.Errorf("%w: %q", ErrUnknownUser, name)
	}
	if err != nil {
		return rec, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	return rec, err
}

func hasKey(txn *badger.Txn, k []byte) (bool, error) {
	_, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func put(txn *badger.Txn, k []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return txn.Set(k, data)
}

func scan[T any](txn *badger.Txn, prefix []byte) ([]T, error) {
	var out []T
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var v T
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
