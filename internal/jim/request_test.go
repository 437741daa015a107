package jim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_ValidRequests(t *testing.T) {
	at := time.Now()
	bare := &User{AccountName: "alice", Bare: true}

	cases := []struct {
		name string
		msg  Message
		want Request
	}{
		{
			name: "presence",
			msg:  Presence("alice", at),
			want: PresenceRequest{Time: Timestamp(at), AccountName: "alice"},
		},
		{
			name: "message with empty text",
			msg:  Chat("alice", "bob", "", at),
			want: MessageRequest{Time: Timestamp(at), Sender: "alice", Receiver: "bob", Text: new(string)},
		},
		{
			name: "exit",
			msg:  Exit("alice", at),
			want: ExitRequest{Time: Timestamp(at), AccountName: "alice"},
		},
		{
			name: "get contacts",
			msg:  Message{Action: ActionGetContacts, Time: Timestamp(at), User: bare},
			want: GetContactsRequest{Time: Timestamp(at), User: "alice"},
		},
		{
			name: "add contact",
			msg:  Message{Action: ActionAddContact, Time: Timestamp(at), User: bare, AccountName: "bob"},
			want: ContactRequest{Kind: ActionAddContact, Time: Timestamp(at), User: "alice", AccountName: "bob"},
		},
		{
			name: "remove contact",
			msg:  Message{Action: ActionRemoveContact, Time: Timestamp(at), User: bare, AccountName: "bob"},
			want: ContactRequest{Kind: ActionRemoveContact, Time: Timestamp(at), User: "alice", AccountName: "bob"},
		},
		{
			name: "users request",
			msg:  Message{Action: ActionUsersRequest, Time: Timestamp(at), AccountName: "alice"},
			want: UsersRequest{Time: Timestamp(at), AccountName: "alice"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			got, err := Parse(tc.msg)
			req.NoError(err)
			req.Equal(tc.want, got)
			req.Equal(tc.msg.Action, got.Action())
		})
	}
}

func TestParse_BadRequests(t *testing.T) {
	at := time.Now()

	cases := map[string]Message{
		"unknown action":          {Action: "shout", Time: Timestamp(at)},
		"missing action":          {Time: Timestamp(at), AccountName: "alice"},
		"presence without time":   {Action: ActionPresence, User: &User{AccountName: "alice"}},
		"presence without user":   {Action: ActionPresence, Time: Timestamp(at)},
		"presence with bare user": {Action: ActionPresence, Time: Timestamp(at), User: &User{AccountName: "alice", Bare: true}},
		"presence with empty name": {
			Action: ActionPresence, Time: Timestamp(at), User: &User{},
		},
		"message without text": {
			Action: ActionMessage, Time: Timestamp(at), Sender: "alice", Receiver: "bob",
		},
		"message without receiver": {
			Action: ActionMessage, Time: Timestamp(at), Sender: "alice", Text: new(string),
		},
		"exit without name": {Action: ActionExit, Time: Timestamp(at)},
		"get contacts with object user": {
			Action: ActionGetContacts, Time: Timestamp(at), User: &User{AccountName: "alice"},
		},
		"add contact without contact": {
			Action: ActionAddContact, Time: Timestamp(at), User: &User{AccountName: "alice", Bare: true},
		},
		"users request without name": {Action: ActionUsersRequest, Time: Timestamp(at)},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(msg)
			require.ErrorIs(t, err, ErrBadRequest)
		})
	}
}
