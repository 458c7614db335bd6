package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"chitchat-client/models"
)

// StatusSuccess marks an application-level success in a response body.
// A 200 response can still carry an error status; callers inspect Status.
const StatusSuccess = "success"

// Client is a stateless wrapper around the backend's REST surface. Every
// call is a single round trip with no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthResponse is the body of the register and login endpoints.
type AuthResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message,omitempty"`
	User    *models.UserInfo `json:"user,omitempty"`
	Token   string           `json:"token,omitempty"`
}

// ContactsResponse is the body of the contact list endpoint.
type ContactsResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message,omitempty"`
	Users   []models.Contact `json:"users,omitempty"`
}

// MessagesResponse is the body of the message history endpoint.
type MessagesResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message,omitempty"`
	Messages []models.Message `json:"messages,omitempty"`
}

// RegisterRequest is the register endpoint body. ImageURL is the public
// avatar URL obtained from the image host beforehand.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	ImageURL string `json:"image_url,omitempty"`
}

// AIMessage is one turn of an assistant conversation.
type AIMessage struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

type aiChatRequest struct {
	Message string      `json:"message"`
	History []AIMessage `json:"history,omitempty"`
}

type aiChatResponse struct {
	Status   string `json:"status,omitempty"`
	Message  string `json:"message,omitempty"`
	Response string `json:"response"`
}

// Register creates a new account.
func (c *Client) Register(req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.postJSON("/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a user identity and bearer token.
func (c *Client) Login(email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.postJSON("/api/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Verify checks the bearer token server-side. Any non-2xx response is an
// error; the caller treats it as an expired session.
func (c *Client) Verify(token string) error {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/auth/verify", nil)
	if err != nil {
		return fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("token verification failed: %s", resp.Status)
	}
	return nil
}

// Contacts fetches the list of users the session owner may chat with.
func (c *Client) Contacts(token string) (*ContactsResponse, error) {
	var resp ContactsResponse
	if err := c.getJSON("/api/auth", token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Messages fetches the ordered history of one conversation.
func (c *Client) Messages(token string, selectedUserID int) (*MessagesResponse, error) {
	path := "/messages?selectedUserId=" + url.QueryEscape(strconv.Itoa(selectedUserID))
	var resp MessagesResponse
	if err := c.getJSON(path, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AIChat sends one assistant prompt with optional prior turns and returns
// the assistant's reply text.
func (c *Client) AIChat(token, message string, history []AIMessage) (string, error) {
	var resp aiChatResponse
	if err := c.postJSON("/api/ai/chat", token, aiChatRequest{Message: message, History: history}, &resp); err != nil {
		return "", err
	}
	if resp.Status != "" && resp.Status != StatusSuccess {
		return "", fmt.Errorf("assistant error: %s", resp.Message)
	}
	return resp.Response, nil
}

func (c *Client) postJSON(path, token string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) getJSON(path, token string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}
