package ui

import (
	"testing"
	"time"

	"chitchat-client/api"
	"chitchat-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterContacts(t *testing.T) {
	contacts := []models.Contact{
		{ID: 1, UserName: "Alice"},
		{ID: 2, UserName: "Bob"},
		{ID: 3, UserName: "alice2"},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term keeps everything", term: "", want: []string{"Alice", "Bob", "alice2"}},
		{name: "case insensitive substring", term: "ali", want: []string{"Alice", "alice2"}},
		{name: "upper case term", term: "ALICE", want: []string{"Alice", "alice2"}},
		{name: "middle of the name", term: "ob", want: []string{"Bob"}},
		{name: "no match", term: "zed", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, c := range filterContacts(contacts, tc.term) {
				got = append(got, c.UserName)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSortContacts(t *testing.T) {
	now := time.Now()
	older := now.Add(-time.Hour)

	contacts := []models.Contact{
		{ID: 1, UserName: "quiet"},
		{ID: 2, UserName: "older", LastMessageTime: &older},
		{ID: 3, UserName: "recent", LastMessageTime: &now},
		{ID: 4, UserName: "silent"},
	}

	sorted := sortContacts(contacts)

	require.Len(t, sorted, 4)
	assert.Equal(t, "recent", sorted[0].UserName)
	assert.Equal(t, "older", sorted[1].UserName)
	// Contacts without messages keep their relative order at the bottom.
	assert.Equal(t, "quiet", sorted[2].UserName)
	assert.Equal(t, "silent", sorted[3].UserName)

	// The input slice is untouched.
	assert.Equal(t, "quiet", contacts[0].UserName)
}

func TestVisibleContacts(t *testing.T) {
	now := time.Now()
	app := newTestApp(t, new(MockBackend), newFakeChannel())
	app.contacts = []models.Contact{
		{ID: 1, UserName: "Bob"},
		{ID: 2, UserName: "Alice", LastMessageTime: &now},
	}

	// Without a term the list is recency ordered.
	visible := app.visibleContacts()
	require.Len(t, visible, 2)
	assert.Equal(t, "Alice", visible[0].UserName)

	// With a term it is filtered, original order kept.
	app.searchTerm = "bo"
	visible = app.visibleContacts()
	require.Len(t, visible, 1)
	assert.Equal(t, "Bob", visible[0].UserName)
}

func TestLoadContacts(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Contacts", "tok").Return(&api.ContactsResponse{
		Status: api.StatusSuccess,
		Users: []models.Contact{
			{ID: 2, UserName: "Alice"},
			{ID: 3, UserName: "Bob"},
		},
	}, nil)

	app := newTestApp(t, backend, newFakeChannel())
	app.loadContacts()

	assert.Eventually(t, func() bool {
		app.mu.RLock()
		defer app.mu.RUnlock()
		return !app.contactsLoading && len(app.contacts) == 2
	}, time.Second, 10*time.Millisecond)
	backend.AssertExpectations(t)
}

func TestLoadContactsFailureKeepsPreviousList(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Contacts", "tok").Return(nil, assert.AnError)

	app := newTestApp(t, backend, newFakeChannel())
	app.contacts = []models.Contact{{ID: 2, UserName: "Alice"}}
	app.loadContacts()

	assert.Eventually(t, func() bool {
		app.mu.RLock()
		defer app.mu.RUnlock()
		return !app.contactsLoading
	}, time.Second, 10*time.Millisecond)

	app.mu.RLock()
	defer app.mu.RUnlock()
	require.Len(t, app.contacts, 1)
	assert.Equal(t, "Alice", app.contacts[0].UserName)
}

func TestLoadContactsApplicationError(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Contacts", "tok").Return(&api.ContactsResponse{
		Status:  "error",
		Message: "forbidden",
	}, nil)

	app := newTestApp(t, backend, newFakeChannel())
	app.contacts = []models.Contact{{ID: 2, UserName: "Alice"}}
	app.loadContacts()

	assert.Eventually(t, func() bool {
		app.mu.RLock()
		defer app.mu.RUnlock()
		return !app.contactsLoading
	}, time.Second, 10*time.Millisecond)

	app.mu.RLock()
	defer app.mu.RUnlock()
	assert.Len(t, app.contacts, 1)
}
