package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ChatMessage is one turn in an assistant conversation.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatMessages []ChatMessage

func (m ChatMessages) Value() (driver.Value, error) {
	if m == nil {
		m = ChatMessages{}
	}
	return json.Marshal(m)
}

func (m *ChatMessages) Scan(value any) error {
	if value == nil {
		*m = ChatMessages{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for ChatMessages")
	}
}

// AIConversation stores one chat session of the public assistant.
type AIConversation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID string       `gorm:"size:255;uniqueIndex;not null" json:"session_id"`
	Messages  ChatMessages `gorm:"type:jsonb;default:'[]'" json:"messages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatAnalytics is a best-effort per-exchange record; writes to it must
// never fail a chat request.
type ChatAnalytics struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID      string `gorm:"size:255;index" json:"session_id"`
	UserMessage    string `gorm:"type:text" json:"user_message"`
	AIResponse     string `gorm:"type:text" json:"ai_response"`
	ResponseTimeMs int64  `json:"response_time_ms"`

	CreatedAt time.Time `json:"created_at"`
}
