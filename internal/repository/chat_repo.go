package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// ChatRepository persists conversations, participants and messages.
type ChatRepository interface {
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	GetConversation(ctx context.Context, id string) (models.Conversation, error)
	CreateConversation(ctx context.Context, conversation *models.Conversation, participantIDs []string) error
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	ListParticipants(ctx context.Context, conversationID string) ([]models.ConversationParticipant, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository constructs a GORM-backed repository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// ListConversations returns the caller's conversations, most recently active
// first. Conversations with no messages yet sort last.
func (r *chatRepository) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants ON conversation_participants.conversation_id = conversations.id").
		Where("conversation_participants.user_id = ?", userID).
		Order("conversations.last_message_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *chatRepository) GetConversation(ctx context.Context, id string) (models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return models.Conversation{}, err
	}
	return conversation, nil
}

// CreateConversation inserts the conversation and all participant rows in one
// transaction, so a partially-populated conversation can never be observed.
func (r *chatRepository) CreateConversation(ctx context.Context, conversation *models.Conversation, participantIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conversation).Error; err != nil {
			return err
		}
		for _, participantID := range participantIDs {
			participant := models.ConversationParticipant{
				ConversationID: conversation.ID,
				UserID:         participantID,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *chatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).Preload("User").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage inserts the message and refreshes the conversation's
// last_message_at in the same transaction, keeping the inbox sort order in
// step with the messages it reflects.
func (r *chatRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			UpdateColumn("last_message_at", time.Now()).
			Error
	})
}

func (r *chatRepository) ListParticipants(ctx context.Context, conversationID string) ([]models.ConversationParticipant, error) {
	var participants []models.ConversationParticipant
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}
