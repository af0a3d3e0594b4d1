package session

import "time"

const MessageTTL = 2 * time.Second

// StatusMessage is a short-lived notice shown after an action.
type StatusMessage struct {
	Text      string    `json:"text"`
	IsError   bool      `json:"isError"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func Info(text string, now time.Time) *StatusMessage {
	return &StatusMessage{Text: text, ExpiresAt: now.Add(MessageTTL)}
}

func Error(text string, now time.Time) *StatusMessage {
	return &StatusMessage{Text: text, IsError: true, ExpiresAt: now.Add(MessageTTL)}
}

func (m *StatusMessage) Visible(now time.Time) bool {
	return m != nil && now.Before(m.ExpiresAt)
}
