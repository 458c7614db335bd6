package ui

import (
	"sync"

	"chitchat-client/api"
	"chitchat-client/channel"
	"chitchat-client/models"
	"chitchat-client/session"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Terminals narrower than this render a single pane at a time, with a back
// action from the thread to the contact list.
const narrowWidth = 80

// Backend is the REST surface the UI depends on.
type Backend interface {
	Register(req api.RegisterRequest) (*api.AuthResponse, error)
	Login(email, password string) (*api.AuthResponse, error)
	Verify(token string) error
	Contacts(token string) (*api.ContactsResponse, error)
	Messages(token string, selectedUserID int) (*api.MessagesResponse, error)
	AIChat(token, message string, history []api.AIMessage) (string, error)
}

// Channel is the real-time event connection.
type Channel interface {
	Connect(token string) error
	Disconnect()
	IsConnected() bool
	On(event string, fn channel.Handler)
	Emit(event string, payload any) error
}

// Uploader pushes an avatar image to the image host.
type Uploader interface {
	UploadImage(path string) (string, error)
}

// App owns all mutable UI state and composes the chat screen.
type App struct {
	app   *tview.Application
	pages *tview.Pages

	session  *session.Store
	backend  Backend
	channel  Channel
	uploader Uploader

	mu              sync.RWMutex
	contacts        []models.Contact
	selected        *models.Contact
	messages        []models.Message
	searchTerm      string
	contactsLoading bool
	messagesLoading bool
	peerTyping      bool
	typingSent      bool
	narrow          bool
	showChatPane    bool

	// Assistant panel state.
	aiHistory []api.AIMessage
	aiBusy    bool

	// Main screen widgets, nil until the chat screen is built.
	contactsList  *tview.List
	searchInput   *tview.InputField
	sidebarFooter *tview.TextView
	chatView      *tview.TextView
	chatHeader    *tview.TextView
	messageInput  *tview.InputField
	statusBar     *tview.TextView
	mainFlex      *tview.Flex
	contentFlex   *tview.Flex
	sidebarFlex   *tview.Flex
	sidebarPages  *tview.Pages
	chatFlex      *tview.Flex
	handlersSet   bool

	// Assistant widgets.
	aiView  *tview.TextView
	aiInput *tview.InputField

	verifyingDone chan struct{}
	notifySeq     int
	authNotice    string
	authError     string
}

// NewApp creates the application around its injected dependencies.
func NewApp(store *session.Store, backend Backend, ch Channel, uploader Uploader) *App {
	return &App{
		session:  store,
		backend:  backend,
		channel:  ch,
		uploader: uploader,
	}
}

// Run starts the terminal application and blocks until quit.
func (a *App) Run() error {
	a.app = tview.NewApplication()
	a.pages = tview.NewPages()

	background := tview.NewBox()
	background.SetBackgroundColor(ColorBg)
	a.pages.AddPage("background", background, true, true)

	// Authenticated gate: a stored token must pass server-side verification
	// before the chat screen renders; without one the login form shows
	// immediately.
	if a.session.Token() != "" {
		a.showVerifyingPage()
		go a.verifySession()
	} else {
		a.showAuthPage()
	}

	a.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		w, _ := screen.Size()
		narrow := w < narrowWidth
		a.mu.Lock()
		changed := narrow != a.narrow
		a.narrow = narrow
		a.mu.Unlock()
		if changed {
			a.applyLayout()
		}
		return false
	})

	return a.app.SetRoot(a.pages, true).EnableMouse(false).Run()
}

// draw schedules f on the UI goroutine. With no running application (tests)
// it runs f inline.
func (a *App) draw(f func()) {
	if a.app == nil {
		if f != nil {
			f()
		}
		return
	}
	a.app.QueueUpdateDraw(f)
}

// verifySession runs the token verification round trip behind the blocking
// spinner. Failure clears the session and falls back to the login form.
func (a *App) verifySession() {
	if err := a.backend.Verify(a.session.Token()); err != nil {
		a.session.Logout()
		a.draw(func() {
			a.removeVerifyingPage()
			a.authError = "Session expired. Please login again."
			a.showAuthPage()
		})
		return
	}
	a.draw(func() {
		a.removeVerifyingPage()
		a.showMainScreen()
	})
}

// forceLogout clears the session from any screen, used when the backend or
// the channel reports an authentication failure.
func (a *App) forceLogout(reason string) {
	a.session.Logout()
	a.channel.Disconnect()
	a.draw(func() {
		a.resetChatState()
		if a.pages != nil {
			a.pages.RemovePage("main")
			a.pages.RemovePage("assistant")
			a.authError = reason
			a.showAuthPage()
		}
	})
}

// logout is the user-initiated variant.
func (a *App) logout() {
	a.session.Logout()
	a.channel.Disconnect()
	a.resetChatState()
	a.pages.RemovePage("main")
	a.pages.RemovePage("assistant")
	a.authNotice = "Logged out successfully"
	a.showAuthPage()
}

func (a *App) resetChatState() {
	a.mu.Lock()
	a.contacts = nil
	a.selected = nil
	a.messages = nil
	a.searchTerm = ""
	a.contactsLoading = false
	a.messagesLoading = false
	a.peerTyping = false
	a.typingSent = false
	a.showChatPane = false
	a.aiHistory = nil
	a.aiBusy = false
	a.mu.Unlock()

	a.contactsList = nil
	a.searchInput = nil
	a.sidebarFooter = nil
	a.chatView = nil
	a.chatHeader = nil
	a.messageInput = nil
	a.statusBar = nil
	a.mainFlex = nil
	a.contentFlex = nil
	a.sidebarFlex = nil
	a.sidebarPages = nil
	a.chatFlex = nil
	a.aiView = nil
	a.aiInput = nil
}

// quit exits the application.
func (a *App) quit() {
	if a.channel != nil && a.channel.IsConnected() {
		a.channel.Disconnect()
	}
	a.app.Stop()
}
