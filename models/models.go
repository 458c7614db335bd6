package models

import "time"

// UserInfo is the authenticated identity returned by the login endpoint.
type UserInfo struct {
	ID       int    `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// Contact is a user the session owner may chat with. Presence and the
// last-message summary are mutated in place by channel events.
type Contact struct {
	ID              int        `json:"id"`
	UserName        string     `json:"user_name"`
	ImageURL        string     `json:"image_url,omitempty"`
	IsOnline        bool       `json:"is_online"`
	Email           string     `json:"email"`
	LastMessage     string     `json:"last_message,omitempty"`
	LastMessageTime *time.Time `json:"last_message_time,omitempty"`
}

// Message belongs to exactly one contact's conversation.
type Message struct {
	ID        int       `json:"id"`
	SenderID  int       `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
