package model

import (
	"time"
)

// Sender identifies who authored an exchange.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether s is a known sender.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// Exchange is a single turn in a session history.
type Exchange struct {
	Sender    Sender     `json:"sender"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// NewExchange creates an exchange stamped with the given time.
func NewExchange(sender Sender, message string, at time.Time) Exchange {
	return Exchange{
		Sender:    sender,
		Message:   message,
		Timestamp: &at,
	}
}

// ChatRequest is the request body for POST /api/v1/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the response body for POST /api/v1/chat.
type ChatResponse struct {
	SessionID  string  `json:"session_id"`
	Response   string  `json:"response"`
	Links      []Link  `json:"links"`
	IsFollowUp bool    `json:"is_follow_up"`
	Intent     string  `json:"intent,omitempty"`
	Kind       string  `json:"kind"`
	Score      float64 `json:"score,omitempty"`
}

// HistoryResponse is the response for GET /api/v1/sessions/:id/history.
type HistoryResponse struct {
	SessionID string     `json:"session_id"`
	Exchanges []Exchange `json:"exchanges"`
	Total     int        `json:"total"`
}

// TopicsResponse lists the intents the assistant can answer.
type TopicsResponse struct {
	Topics []string `json:"topics"`
}
