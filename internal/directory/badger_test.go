package directory

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) (*Store, *badger.DB) {
	t.Helper()
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	store, err := NewStore(db, slog.Default())
	req.NoError(err)
	return store, db
}

func newStore(t *testing.T) *Store {
	t.Helper()
	store, db := openStore(t, t.TempDir())
	t.Cleanup(func() { _ = db.Close() })
	return store
}

func TestStore_LoginCreatesUserActiveRowAndHistory(t *testing.T) {
	req := require.New(t)
	store := newStore(t)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return at }

	// When alice logs in twice from different ports
	req.NoError(store.Login("alice", "192.168.0.1", 8000))
	store.now = func() time.Time { return at.Add(time.Minute) }
	req.NoError(store.Login("alice", "192.168.0.1", 8001))

	// Then she is known once, with the latest login time
	users, err := store.Users()
	req.NoError(err)
	req.Len(users, 1)
	req.Equal("alice", users[0].Name)
	req.True(users[0].LastLogin.Equal(at.Add(time.Minute)))

	// And she is active from the latest endpoint
	active, err := store.ActiveUsers()
	req.NoError(err)
	req.Len(active, 1)
	req.Equal(8001, active[0].Port)

	// And both logins are in her history, oldest first
	history, err := store.LoginHistory("alice")
	req.NoError(err)
	req.Equal([]int{8000, 8001}, lo.Map(history, func(r LoginRecord, _ int) int { return r.Port }))
}

func TestStore_LogoutRemovesActiveRowOnly(t *testing.T) {
	req := require.New(t)
	store := newStore(t)

	req.NoError(store.Login("alice", "127.0.0.1", 9000))
	req.NoError(store.Login("bob", "127.0.0.1", 9001))
	req.NoError(store.Logout("alice"))

	active, err := store.ActiveUsers()
	req.NoError(err)
	req.Equal([]string{"bob"}, lo.Map(active, func(a ActiveUser, _ int) string { return a.Name }))

	users, err := store.Users()
	req.NoError(err)
	req.Len(users, 2)
}

func TestStore_LogoutUnknownUser(t *testing.T) {
	store := newStore(t)
	require.ErrorIs(t, store.Logout("ghost"), ErrUnknownUser)
}

func TestStore_ContactsLifecycle(t *testing.T) {
	req := require.New(t)
	store := newStore(t)
	for _, name := range []string{"alice", "bob", "carol"} {
		req.NoError(store.Login(name, "127.0.0.1", 9000))
	}

	// Given alice adds bob and carol, bob twice and an unknown account once
	req.NoError(store.AddContact("alice", "bob"))
	req.NoError(store.AddContact("alice", "carol"))
	req.NoError(store.AddContact("alice", "bob"))
	req.NoError(store.AddContact("alice", "nobody"))

	contacts, err := store.Contacts("alice")
	req.NoError(err)
	req.Equal([]string{"bob", "carol"}, contacts)

	// When bob is removed, and a missing contact is removed
	req.NoError(store.RemoveContact("alice", "bob"))
	req.NoError(store.RemoveContact("alice", "nobody"))

	// Then only carol is left, and bob's own list is untouched
	contacts, err = store.Contacts("alice")
	req.NoError(err)
	req.Equal([]string{"carol"}, contacts)

	contacts, err = store.Contacts("bob")
	req.NoError(err)
	req.Empty(contacts)
}

func TestStore_ContactsDoNotLeakAcrossPrefixNames(t *testing.T) {
	req := require.New(t)
	store := newStore(t)
	for _, name := range []string{"al", "al:ice", "bob"} {
		req.NoError(store.Login(name, "127.0.0.1", 9000))
	}
	req.NoError(store.AddContact("al:ice", "bob"))

	contacts, err := store.Contacts("al")
	req.NoError(err)
	req.Empty(contacts)
}

func TestStore_AddContactUnknownOwner(t *testing.T) {
	req := require.New(t)
	store := newStore(t)
	req.NoError(store.Login("bob", "127.0.0.1", 9000))

	req.ErrorIs(store.AddContact("ghost", "bob"), ErrUnknownUser)
}

func TestHasKey(t *testing.T) {
	req := require.New(t)
	_, db := openStore(t, t.TempDir())
	t.Cleanup(func() { _ = db.Close() })
	k := key(prefixContact, "alice", "bob")

	req.NoError(db.Update(func(txn *badger.Txn) error {
		exists, err := hasKey(txn, k)
		req.NoError(err)
		req.False(exists)
		return put(txn, k, contactRecord{Owner: "alice", Contact: "bob"})
	}))
	req.NoError(db.View(func(txn *badger.Txn) error {
		exists, err := hasKey(txn, k)
		req.True(exists)
		return err
	}))

	// Lookup failures other than a missing key are reported, not read as absent.
	txn := db.NewTransaction(false)
	txn.Discard()
	exists, err := hasKey(txn, k)
	req.ErrorIs(err, badger.ErrDiscardedTxn)
	req.False(exists)
}

func TestStore_RecordTransferCounters(t *testing.T) {
	req := require.New(t)
	store := newStore(t)
	req.NoError(store.Login("alice", "127.0.0.1", 9000))
	req.NoError(store.Login("bob", "127.0.0.1", 9001))

	req.NoError(store.RecordTransfer("alice", "bob"))
	req.NoError(store.RecordTransfer("alice", "bob"))
	req.NoError(store.RecordTransfer("bob", "bob"))
	req.ErrorIs(store.RecordTransfer("alice", "ghost"), ErrUnknownUser)

	stats, err := store.MessageStats()
	req.NoError(err)
	byName := lo.KeyBy(stats, func(s MessageStats) string { return s.Name })
	req.Equal(2, byName["alice"].Sent)
	req.Equal(0, byName["alice"].Accepted)
	req.Equal(1, byName["bob"].Sent)
	req.Equal(3, byName["bob"].Accepted)
}

func TestStore_ReopenClearsActiveUsers(t *testing.T) {
	req := require.New(t)
	path := t.TempDir()

	// Given a store closed while alice was still active
	store, db := openStore(t, path)
	req.NoError(store.Login("alice", "127.0.0.1", 9000))
	req.NoError(db.Close())

	// When it is opened again
	store, db = openStore(t, path)
	defer db.Close()

	// Then nobody is active, but alice and her history are kept
	active, err := store.ActiveUsers()
	req.NoError(err)
	req.Empty(active)

	history, err := store.LoginHistory("")
	req.NoError(err)
	req.Len(history, 1)
}
