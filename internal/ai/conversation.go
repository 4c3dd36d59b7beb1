package ai

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

const historyWindow = 10

// ConversationStore persists chat sessions and their analytics.
type ConversationStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewConversationStore(db *gorm.DB, log *zap.Logger) *ConversationStore {
	return &ConversationStore{db: db, log: log}
}

// GetOrCreate loads the conversation for a session, creating an empty one on
// first contact.
func (s *ConversationStore) GetOrCreate(ctx context.Context, sessionID string) (*models.AIConversation, error) {
	conv := models.AIConversation{
		SessionID: sessionID,
		Messages:  models.ChatMessages{},
	}
	err := s.db.WithContext(ctx).
		Where(models.AIConversation{SessionID: sessionID}).
		Attrs(models.AIConversation{Messages: models.ChatMessages{}}).
		FirstOrCreate(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// History returns the most recent turns of a conversation, shaped for the
// model provider.
func (s *ConversationStore) History(conv *models.AIConversation) []Turn {
	msgs := conv.Messages
	if len(msgs) > historyWindow {
		msgs = msgs[len(msgs)-historyWindow:]
	}
	turns := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		turns = append(turns, Turn{Role: role, Text: m.Content})
	}
	return turns
}

// AppendExchange records one user question and the assistant answer.
func (s *ConversationStore) AppendExchange(ctx context.Context, conv *models.AIConversation, userMsg, aiMsg string) error {
	now := time.Now().UTC()
	conv.Messages = append(conv.Messages,
		models.ChatMessage{Role: "user", Content: userMsg, Timestamp: now},
		models.ChatMessage{Role: "assistant", Content: aiMsg, Timestamp: now},
	)
	return s.db.WithContext(ctx).
		Model(conv).
		Update("messages", conv.Messages).Error
}

// RecordAnalytics writes one exchange record. Failures are logged and
// swallowed so analytics never break the chat itself.
func (s *ConversationStore) RecordAnalytics(ctx context.Context, rec *models.ChatAnalytics) {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		s.log.Warn("chat analytics write failed",
			zap.String("session_id", rec.SessionID),
			zap.Error(err),
		)
	}
}
