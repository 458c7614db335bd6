package channel

import (
	"time"

	"chitchat-client/models"
)

// Inbound event names.
const (
	EventConnect      = "connect"
	EventUsers        = "users"
	EventUserStatus   = "userStatus"
	EventMessage      = "message"
	EventUserUpdate   = "userUpdate"
	EventTyping       = "typing"
	EventStopTyping   = "stopTyping"
	EventConnectError = "connect_error"
	EventError        = "error"
)

// Outbound event names.
const (
	EventSetup       = "setup"
	EventJoinChat    = "joinChat"
	EventSendMessage = "sendMessage"
)

// UsersPayload carries the contact list when the server delivers it over
// the channel instead of REST.
type UsersPayload struct {
	Users []models.Contact `json:"users"`
}

// UserStatusPayload signals a presence change for one contact.
type UserStatusPayload struct {
	UserID   int  `json:"userId"`
	IsOnline bool `json:"isOnline"`
}

// UserUpdatePayload refreshes a contact's last-message summary.
type UserUpdatePayload struct {
	UserID          int        `json:"userId"`
	LastMessage     string     `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
}

// TypingPayload identifies the counterpart typing (inbound) or being typed
// to (outbound).
type TypingPayload struct {
	UserID int `json:"userId,omitempty"`
	// ReceiverID is set on outbound typing events only.
	ReceiverID int `json:"receiverId,omitempty"`
}

// ErrorPayload carries connect_error and error event text.
type ErrorPayload struct {
	Message string `json:"message"`
}

// JoinChatPayload scopes the connection to one contact's room.
type JoinChatPayload struct {
	UserID int `json:"userId"`
}

// SendMessagePayload is the outbound fire-and-forget message. The sender's
// copy is not echoed locally; it arrives back as an inbound message event.
type SendMessagePayload struct {
	ReceiverID int    `json:"receiverId"`
	Text       string `json:"text"`
}
