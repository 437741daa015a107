package jim

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Request is a decoded frame that passed field validation for its action.
type Request interface {
	Action() Action
}

type PresenceRequest struct {
	Time        *float64 `validate:"required"`
	AccountName string   `validate:"required"`
}

type MessageRequest struct {
	Time     *float64 `validate:"required"`
	Sender   string   `validate:"required"`
	Receiver string   `validate:"required"`
	// Text may be empty but the key must be present.
	Text *string `validate:"required"`
}

type ExitRequest struct {
	Time        *float64 `validate:"required"`
	AccountName string   `validate:"required"`
}

type GetContactsRequest struct {
	Time *float64 `validate:"required"`
	User string   `validate:"required"`
}

// ContactRequest covers both add_contact and remove_contact.
type ContactRequest struct {
	Kind        Action   `validate:"oneof=add_contact remove_contact"`
	Time        *float64 `validate:"required"`
	User        string   `validate:"required"`
	AccountName string   `validate:"required"`
}

type UsersRequest struct {
	Time        *float64 `validate:"required"`
	AccountName string   `validate:"required"`
}

func (PresenceRequest) Action() Action    { return ActionPresence }
func (MessageRequest) Action() Action     { return ActionMessage }
func (ExitRequest) Action() Action        { return ActionExit }
func (GetContactsRequest) Action() Action { return ActionGetContacts }
func (r ContactRequest) Action() Action   { return r.Kind }
func (UsersRequest) Action() Action       { return ActionUsersRequest }

// Parse classifies m by its action and checks the fields that action
// requires. Unknown actions, missing fields and mistyped fields are
// ErrBadRequest.
func Parse(m Message) (Request, error) {
	if len(m.invalid) > 0 {
		return nil, fmt.Errorf("%w: wrong type for %v", ErrBadRequest, m.invalid)
	}
	var req Request
	switch m.Action {
	case ActionPresence:
		if m.User == nil || m.User.Bare {
			return nil, fmt.Errorf("%w: presence needs user.account_name", ErrBadRequest)
		}
		req = PresenceRequest{Time: m.Time, AccountName: m.User.AccountName}
	case ActionMessage:
		req = MessageRequest{Time: m.Time, Sender: m.Sender, Receiver: m.Receiver, Text: m.Text}
	case ActionExit:
		req = ExitRequest{Time: m.Time, AccountName: m.AccountName}
	case ActionGetContacts:
		req = GetContactsRequest{Time: m.Time, User: bareUser(m.User)}
	case ActionAddContact, ActionRemoveContact:
		req = ContactRequest{Kind: m.Action, Time: m.Time, User: bareUser(m.User), AccountName: m.AccountName}
	case ActionUsersRequest:
		req = UsersRequest{Time: m.Time, AccountName: m.AccountName}
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrBadRequest, m.Action)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return req, nil
}

func bareUser(u *User) string {
	if u == nil || !u.Bare {
		return ""
	}
	return u.AccountName
}
