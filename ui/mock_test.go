package ui

import (
	"encoding/json"
	"sync"
	"testing"

	"chitchat-client/api"
	"chitchat-client/channel"
	"chitchat-client/models"
	"chitchat-client/session"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Register(req api.RegisterRequest) (*api.AuthResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*api.AuthResponse)
	return resp, args.Error(1)
}

func (m *MockBackend) Login(email, password string) (*api.AuthResponse, error) {
	args := m.Called(email, password)
	resp, _ := args.Get(0).(*api.AuthResponse)
	return resp, args.Error(1)
}

func (m *MockBackend) Verify(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockBackend) Contacts(token string) (*api.ContactsResponse, error) {
	args := m.Called(token)
	resp, _ := args.Get(0).(*api.ContactsResponse)
	return resp, args.Error(1)
}

func (m *MockBackend) Messages(token string, selectedUserID int) (*api.MessagesResponse, error) {
	args := m.Called(token, selectedUserID)
	resp, _ := args.Get(0).(*api.MessagesResponse)
	return resp, args.Error(1)
}

func (m *MockBackend) AIChat(token, message string, history []api.AIMessage) (string, error) {
	args := m.Called(token, message, history)
	return args.String(0), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadImage(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

type emittedEvent struct {
	event   string
	payload any
}

// fakeChannel records emitted events and lets tests fire inbound ones
// synchronously through the registered handlers.
type fakeChannel struct {
	mu        sync.Mutex
	connected bool
	emitErr   error
	handlers  map[string][]channel.Handler
	emitted   []emittedEvent
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		connected: true,
		handlers:  make(map[string][]channel.Handler),
	}
}

func (f *fakeChannel) Connect(token string) error {
	f.mu.Lock()
	f.connected = true
	f.mu.Unlock()
	return nil
}

func (f *fakeChannel) Disconnect() {
	f.mu.Lock()
	f.connected = false
	f.mu.Unlock()
}

func (f *fakeChannel) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeChannel) On(event string, fn channel.Handler) {
	f.mu.Lock()
	f.handlers[event] = append(f.handlers[event], fn)
	f.mu.Unlock()
}

func (f *fakeChannel) Emit(event string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emitErr != nil {
		return f.emitErr
	}
	f.emitted = append(f.emitted, emittedEvent{event: event, payload: payload})
	return nil
}

// fire marshals payload and runs the handlers for event inline, the way the
// read loop would.
func (f *fakeChannel) fire(t *testing.T, event string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	f.mu.Lock()
	fns := append([]channel.Handler(nil), f.handlers[event]...)
	f.mu.Unlock()

	for _, fn := range fns {
		fn(data)
	}
}

func (f *fakeChannel) emittedEvents() []emittedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]emittedEvent(nil), f.emitted...)
}

// newTestApp builds an App with a logged-in session and no running terminal,
// so refresh calls fall through their nil-widget guards.
func newTestApp(t *testing.T, backend Backend, ch Channel) *App {
	t.Helper()
	store := session.NewStore(t.TempDir())
	require.NoError(t, store.Login(&models.UserInfo{ID: 1, UserName: "me", Email: "me@example.com"}, "tok"))
	return NewApp(store, backend, ch, nil)
}
