package model

import (
	"time"
)

// ExchangeEvent is published after a user message has been answered.
type ExchangeEvent struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	BotMessage  string    `json:"bot_message"`
	Intent      string    `json:"intent,omitempty"`
	Kind        string    `json:"kind"`
	IsFollowUp  bool      `json:"is_follow_up"`
	Score       float64   `json:"score,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
