//go:generate go run go.uber.org/mock/mockgen -source=directory.go -destination=mocks/mock_directory.go -package=mocks
package directory

import (
	"errors"
	"time"
)

var ErrUnknownUser = errors.New("unknown user")

// Directory is the persistence collaborator of the relay core: login state,
// contact lists and message counters. Implementations must be safe for
// concurrent use.
type Directory interface {
	Login(name, ip string, port int) error
	Logout(name string) error
	Users() ([]User, error)
	Contacts(name string) ([]string, error)
	AddContact(owner, contact string) error
	RemoveContact(owner, contact string) error
	RecordTransfer(sender, receiver string) error
}

// Inspector is the read-only administrative view of the directory.
type Inspector interface {
	Users() ([]User, error)
	ActiveUsers() ([]ActiveUser, error)
	LoginHistory(name string) ([]LoginRecord, error)
	MessageStats() ([]MessageStats, error)
}

// User is every account that has ever logged in.
type User struct {
	Name      string    `json:"name"`
	LastLogin time.Time `json:"last_login"`
}

// ActiveUser is a currently connected account.
type ActiveUser struct {
	Name      string    `json:"name"`
	IP        string    `json:"ip"`
	Port      int       `json:"port"`
	LoginTime time.Time `json:"login_time"`
}

type LoginRecord struct {
	Name string    `json:"name"`
	At   time.Time `json:"at"`
	IP   string    `json:"ip"`
	Port int       `json:"port"`
}

// MessageStats counts messages accepted for relay per account.
type MessageStats struct {
	Name      string    `json:"name"`
	LastLogin time.Time `json:"last_login"`
	Sent      int       `json:"sent"`
	Accepted  int       `json:"accepted"`
}
