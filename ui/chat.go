package ui

import (
	"fmt"
	"strings"
	"time"

	"chitchat-client/api"
	"chitchat-client/channel"
	"chitchat-client/models"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (a *App) createChatPane() *tview.Flex {
	a.chatHeader = tview.NewTextView()
	a.chatHeader.SetBackgroundColor(ColorBg)
	a.chatHeader.SetDynamicColors(true)

	a.chatView = tview.NewTextView()
	a.chatView.SetBackgroundColor(ColorBg)
	a.chatView.SetTextColor(ColorFg)
	a.chatView.SetDynamicColors(true)
	a.chatView.SetScrollable(true)
	a.chatView.ScrollToEnd()

	a.messageInput = tview.NewInputField()
	a.messageInput.SetLabel("> ")
	a.messageInput.SetFieldWidth(0)
	a.messageInput.SetBackgroundColor(ColorBg)
	a.messageInput.SetFieldBackgroundColor(ColorField)
	a.messageInput.SetFieldTextColor(ColorFg)
	a.messageInput.SetLabelColor(ColorHighlight)
	a.messageInput.SetPlaceholder("Aaah, type something cool...")
	a.messageInput.SetPlaceholderTextColor(ColorMuted)

	a.messageInput.SetChangedFunc(func(text string) {
		if text == "" {
			a.signalStopTyping()
		} else {
			a.signalTyping()
		}
	})
	a.messageInput.SetBlurFunc(func() {
		a.signalStopTyping()
	})
	a.messageInput.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		if a.submitComposer(a.messageInput.GetText()) {
			a.messageInput.SetText("")
		}
	})

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.chatHeader, 1, 0, false).
		AddItem(a.chatView, 0, 1, false).
		AddItem(a.messageInput, 1, 0, false)
	flex.SetBackgroundColor(ColorBg)
	flex.SetBorder(true)
	flex.SetBorderColor(ColorBorder)

	return flex
}

func (a *App) refreshChatHeader() {
	if a.chatHeader == nil {
		return
	}
	a.mu.RLock()
	sel := a.selected
	typing := a.peerTyping
	loading := a.messagesLoading
	a.mu.RUnlock()

	if sel == nil {
		a.chatHeader.SetText(" [gray]No conversation selected[-]")
		return
	}

	status := "[gray]○ Offline[-]"
	if sel.IsOnline {
		status = "[green]● Online[-]"
	}
	text := fmt.Sprintf(" [white::b]%s[-:-:-]  %s", tviewEscape(sel.UserName), status)
	if typing {
		text += "  [blue]typing…[-]"
	}
	if loading {
		text += "  [gray]Loading messages...[-]"
	}
	a.chatHeader.SetText(text)
}

func (a *App) refreshChatView() {
	a.refreshChatHeader()
	if a.chatView == nil {
		return
	}

	a.mu.RLock()
	sel := a.selected
	loading := a.messagesLoading
	messages := make([]models.Message, len(a.messages))
	copy(messages, a.messages)
	a.mu.RUnlock()

	if sel == nil {
		a.chatView.SetText("\n\n[blue::b]        ChitChat Central[-:-:-]\n\n" +
			"[gray]        Select a friend from the list to start a\n" +
			"        conversation or share your awesome thoughts![-]")
		return
	}

	if loading {
		a.chatView.SetText(chatSkeletonText(4))
		return
	}

	user := a.session.User()
	var sb strings.Builder
	for _, msg := range messages {
		stamp := formatClock(msg.Timestamp)
		if user != nil && msg.SenderID == user.ID {
			sb.WriteString(fmt.Sprintf("[gray]%s[-] [#e0f2fe]→ %s[-]\n", stamp, tviewEscape(msg.Text)))
		} else {
			sb.WriteString(fmt.Sprintf("[gray]%s[-] [yellow]← %s[-]\n", stamp, tviewEscape(msg.Text)))
		}
	}
	a.chatView.SetText(sb.String())
	a.chatView.ScrollToEnd()
}

// selectContact replaces the selection, discards the previous thread and
// loads the new history. Selecting the already-open contact only brings the
// pane forward on narrow layouts.
func (a *App) selectContact(c models.Contact) {
	a.mu.Lock()
	if a.selected != nil && a.selected.ID == c.ID {
		if a.narrow {
			a.showChatPane = true
		}
		a.mu.Unlock()
		a.applyLayout()
		a.focusComposer()
		return
	}
	picked := c
	a.selected = &picked
	a.messages = nil
	a.messagesLoading = true
	a.peerTyping = false
	if a.narrow {
		a.showChatPane = true
	}
	a.mu.Unlock()

	a.applyLayout()
	a.refreshChatView()
	a.refreshSidebar()
	a.focusComposer()

	go a.fetchHistory(picked)
}

func (a *App) focusComposer() {
	if a.app != nil && a.messageInput != nil {
		a.app.SetFocus(a.messageInput)
	}
}

// fetchHistory runs the REST round trip for one conversation and then joins
// the contact's room on the channel. A response landing after the selection
// moved on still wins; selection changes do not cancel the fetch.
func (a *App) fetchHistory(c models.Contact) {
	resp, err := a.backend.Messages(a.session.Token(), c.ID)

	var msgs []models.Message
	failMsg := ""
	switch {
	case err != nil:
		failMsg = "Error fetching messages"
	case resp.Status != api.StatusSuccess:
		failMsg = resp.Message
	default:
		msgs = resp.Messages
	}
	if failMsg != "" {
		// The thread view is never left empty: a failed fetch synthesizes a
		// greeting from the counterpart.
		msgs = []models.Message{{
			SenderID:  c.ID,
			Text:      fmt.Sprintf("Hi, I'm %s. Let's chat!", c.UserName),
			Timestamp: time.Now(),
		}}
	}

	a.mu.Lock()
	a.messages = msgs
	a.messagesLoading = false
	a.mu.Unlock()

	a.draw(func() {
		if failMsg != "" {
			a.notifyError(failMsg)
		}
		a.refreshChatView()
	})

	if a.channel.IsConnected() {
		if err := a.channel.Emit(channel.EventJoinChat, channel.JoinChatPayload{UserID: c.ID}); err != nil {
			a.draw(func() { a.notifyError("Could not join chat: " + err.Error()) })
		}
	}
}

// submitComposer sends the composer text over the channel and reports
// whether anything was sent. Empty text, a missing selection or an unknown
// current user make it a no-op. The message is not appended locally; the
// server echoes it back as an inbound message event.
func (a *App) submitComposer(text string) bool {
	a.mu.RLock()
	sel := a.selected
	a.mu.RUnlock()

	if strings.TrimSpace(text) == "" || sel == nil || a.session.User() == nil {
		return false
	}

	err := a.channel.Emit(channel.EventSendMessage, channel.SendMessagePayload{
		ReceiverID: sel.ID,
		Text:       text,
	})
	if err != nil {
		a.notifyError("Could not send message: " + err.Error())
		return false
	}
	return true
}

func (a *App) signalTyping() {
	a.mu.RLock()
	sel := a.selected
	a.mu.RUnlock()
	if sel == nil || !a.channel.IsConnected() {
		return
	}
	a.channel.Emit(channel.EventTyping, channel.TypingPayload{ReceiverID: sel.ID})
}

func (a *App) signalStopTyping() {
	a.mu.RLock()
	sel := a.selected
	a.mu.RUnlock()
	if sel == nil || !a.channel.IsConnected() {
		return
	}
	a.channel.Emit(channel.EventStopTyping, channel.TypingPayload{ReceiverID: sel.ID})
}

// closeChat is the back action: it drops the selection and its thread.
// Message lists are scoped to one contact and never cached across
// selections.
func (a *App) closeChat() {
	a.signalStopTyping()

	a.mu.Lock()
	a.selected = nil
	a.messages = nil
	a.messagesLoading = false
	a.peerTyping = false
	a.showChatPane = false
	a.mu.Unlock()

	if a.messageInput != nil {
		a.messageInput.SetText("")
	}
	a.applyLayout()
	a.refreshChatView()
	a.refreshSidebar()
	if a.app != nil && a.contactsList != nil {
		a.app.SetFocus(a.contactsList)
	}
}
