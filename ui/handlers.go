package ui

import (
	"encoding/json"
	"strings"

	"chitchat-client/channel"
	"chitchat-client/models"
)

// setupChannelHandlers registers the inbound event handlers once per
// process; they read the live state, so they stay valid across logins.
// Handlers run on the channel's read goroutine and queue their redraws.
func (a *App) setupChannelHandlers() {
	if a.handlersSet {
		return
	}
	a.handlersSet = true

	a.channel.On(channel.EventConnect, func(data json.RawMessage) {
		// One-time setup signal: asks the server for the contact list over
		// the channel as well.
		a.channel.Emit(channel.EventSetup, nil)
	})

	a.channel.On(channel.EventUsers, func(data json.RawMessage) {
		var contacts []models.Contact
		if err := json.Unmarshal(data, &contacts); err != nil {
			var payload channel.UsersPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return
			}
			contacts = payload.Users
		}
		a.mu.Lock()
		a.contacts = contacts
		a.mu.Unlock()
		a.draw(a.refreshSidebar)
	})

	a.channel.On(channel.EventUserStatus, func(data json.RawMessage) {
		var payload channel.UserStatusPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return
		}
		a.mu.Lock()
		for i := range a.contacts {
			if a.contacts[i].ID == payload.UserID {
				a.contacts[i].IsOnline = payload.IsOnline
			}
		}
		if a.selected != nil && a.selected.ID == payload.UserID {
			a.selected.IsOnline = payload.IsOnline
		}
		a.mu.Unlock()
		a.draw(func() {
			a.refreshSidebar()
			a.refreshChatHeader()
		})
	})

	a.channel.On(channel.EventMessage, func(data json.RawMessage) {
		var msg models.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		a.applyIncomingMessage(msg)
	})

	a.channel.On(channel.EventUserUpdate, func(data json.RawMessage) {
		var payload channel.UserUpdatePayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return
		}
		a.mu.Lock()
		for i := range a.contacts {
			if a.contacts[i].ID == payload.UserID {
				a.contacts[i].LastMessage = payload.LastMessage
				a.contacts[i].LastMessageTime = payload.LastMessageTime
			}
		}
		a.mu.Unlock()
		a.draw(a.refreshSidebar)
	})

	a.channel.On(channel.EventTyping, func(data json.RawMessage) {
		a.setPeerTyping(data, true)
	})

	a.channel.On(channel.EventStopTyping, func(data json.RawMessage) {
		a.setPeerTyping(data, false)
	})

	a.channel.On(channel.EventConnectError, func(data json.RawMessage) {
		var payload channel.ErrorPayload
		json.Unmarshal(data, &payload)
		if isTokenError(payload.Message) {
			a.forceLogout("Session expired. Please login again.")
			return
		}
		a.draw(func() { a.notifyError("Connection error: " + payload.Message) })
	})

	a.channel.On(channel.EventError, func(data json.RawMessage) {
		var payload channel.ErrorPayload
		json.Unmarshal(data, &payload)
		if payload.Message == "" {
			payload.Message = "unknown channel error"
		}
		a.draw(func() { a.notifyError(payload.Message) })
	})
}

// applyIncomingMessage appends a message event to the visible thread when
// it belongs there: sent by the selected contact, or the server echo of the
// current user's own message. Anything else is dropped.
func (a *App) applyIncomingMessage(msg models.Message) {
	user := a.session.User()

	a.mu.Lock()
	sel := a.selected
	appended := false
	if sel != nil && (msg.SenderID == sel.ID || (user != nil && msg.SenderID == user.ID)) {
		a.messages = append(a.messages, msg)
		appended = true
	}
	if sel != nil && msg.SenderID == sel.ID {
		// A real message supersedes the typing indicator.
		a.peerTyping = false
	}
	a.mu.Unlock()

	if appended {
		a.draw(a.refreshChatView)
	}
}

func (a *App) setPeerTyping(data json.RawMessage, typing bool) {
	var payload channel.TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	a.mu.Lock()
	changed := false
	if a.selected != nil && a.selected.ID == payload.UserID && a.peerTyping != typing {
		a.peerTyping = typing
		changed = true
	}
	a.mu.Unlock()
	if changed {
		a.draw(a.refreshChatHeader)
	}
}

// isTokenError classifies connect_error text that points at a bad or
// expired credential.
func isTokenError(msg string) bool {
	lower := strings.ToLower(msg)
	for _, needle := range []string{"token", "auth", "jwt", "unauthorized", "credential"} {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}
