// Package jim implements the JSON instant-messaging wire protocol spoken by
// the relay: the message shape, its codec and per-action request validation.
package jim

import (
	"bytes"
	"encoding/json"
	"time"
)

type Action string

const (
	ActionPresence      Action = "presence"
	ActionMessage       Action = "message"
	ActionExit          Action = "exit"
	ActionGetContacts   Action = "get_contacts"
	ActionAddContact    Action = "add_contact"
	ActionRemoveContact Action = "remove_contact"
	ActionUsersRequest  Action = "users_request"
)

// Response codes.
const (
	StatusOK         = 200
	StatusAccepted   = 202
	StatusBadRequest = 400
)

// Message is one frame on the wire. Requests and responses share the shape;
// absent keys are omitted when encoding.
type Message struct {
	Action      Action
	Time        *float64
	User        *User
	AccountName string
	Sender      string
	Receiver    string
	Text        *string
	Response    int
	Error       string
	// ListInfo is emitted whenever it is non-nil, so an empty list still
	// reaches the client as "list_info": [].
	ListInfo []string

	// keys whose values had the wrong JSON type
	invalid []string
}

type wireMessage struct {
	Action      Action    `json:"action,omitempty"`
	Time        *float64  `json:"time,omitempty"`
	User        *User     `json:"user,omitempty"`
	AccountName string    `json:"account_name,omitempty"`
	Sender      string    `json:"sender,omitempty"`
	Receiver    string    `json:"message_receiver,omitempty"`
	Text        *string   `json:"mess_text,omitempty"`
	Response    int       `json:"response,omitempty"`
	Error       string    `json:"error,omitempty"`
	ListInfo    *[]string `json:"list_info,omitempty"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	w := wireMessage{
		Action:      m.Action,
		Time:        m.Time,
		User:        m.User,
		AccountName: m.AccountName,
		Sender:      m.Sender,
		Receiver:    m.Receiver,
		Text:        m.Text,
		Response:    m.Response,
		Error:       m.Error,
	}
	if m.ListInfo != nil {
		w.ListInfo = &m.ListInfo
	}
	return json.Marshal(w)
}

// UnmarshalJSON only fails when data is not a JSON object. Keys match
// exactly, and a value of the wrong type leaves its field unset and is
// reported by Parse as a bad request.
func (m *Message) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*m = Message{}
	m.Action = field[Action](m, fields, "action")
	m.Time = field[*float64](m, fields, "time")
	m.User = field[*User](m, fields, "user")
	m.AccountName = field[string](m, fields, "account_name")
	m.Sender = field[string](m, fields, "sender")
	m.Receiver = field[string](m, fields, "message_receiver")
	m.Text = field[*string](m, fields, "mess_text")
	m.Response = field[int](m, fields, "response")
	m.Error = field[string](m, fields, "error")
	if list := field[*[]string](m, fields, "list_info"); list != nil {
		m.ListInfo = *list
	}
	return nil
}

func field[T any](m *Message, fields map[string]json.RawMessage, key string) T {
	var v T
	raw, ok := fields[key]
	if !ok {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		m.invalid = append(m.invalid, key)
		var zero T
		return zero
	}
	return v
}

// User is the "user" key. PRESENCE carries it as {"account_name": ...},
// the contact requests carry a bare name string.
type User struct {
	AccountName string
	Bare        bool
}

type userObject struct {
	AccountName string `json:"account_name"`
}

func (u User) MarshalJSON() ([]byte, error) {
	if u.Bare {
		return json.Marshal(u.AccountName)
	}
	return json.Marshal(userObject{AccountName: u.AccountName})
}

func (u *User) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		u.Bare = true
		return json.Unmarshal(data, &u.AccountName)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*u = User{}
	if raw, ok := obj["account_name"]; ok {
		return json.Unmarshal(raw, &u.AccountName)
	}
	return nil
}

// Timestamp converts t to the float seconds used by the "time" key.
func Timestamp(t time.Time) *float64 {
	ts := float64(t.UnixNano()) / float64(time.Second)
	return &ts
}

func OK() Message {
	return Message{Response: StatusOK}
}

func OKWithList(list []string) Message {
	if list == nil {
		list = []string{}
	}
	return Message{Response: StatusAccepted, ListInfo: list}
}

func Failure(text string) Message {
	return Message{Response: StatusBadRequest, Error: text}
}

// Presence builds the handshake request a client sends after connecting.
func Presence(name string, at time.Time) Message {
	return Message{
		Action: ActionPresence,
		Time:   Timestamp(at),
		User:   &User{AccountName: name},
	}
}

// Chat builds a MESSAGE frame, used both by clients and by the router when
// forwarding to the receiver.
func Chat(sender, receiver, text string, at time.Time) Message {
	return Message{
		Action:   ActionMessage,
		Time:     Timestamp(at),
		Sender:   sender,
		Receiver: receiver,
		Text:     &text,
	}
}

func Exit(name string, at time.Time) Message {
	return Message{
		Action:      ActionExit,
		Time:        Timestamp(at),
		AccountName: name,
	}
}
