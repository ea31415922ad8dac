package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

// ChatService exposes direct-message use-cases. Access to a conversation is
// participant-only; outsiders see the same not-found result a missing
// conversation would produce.
type ChatService interface {
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	CreateConversation(ctx context.Context, userID string, payload dto.ConversationCreateRequest) (models.Conversation, error)
	ListMessages(ctx context.Context, conversationID, userID string) ([]models.Message, error)
	SendMessage(ctx context.Context, conversationID, userID string, payload dto.MessageSendRequest) (models.Message, error)
}

type chatService struct {
	repo          repository.ChatRepository
	notifications NotificationPublisher
	relay         RelayService
	validator     *validator.Validate
	logger        zerolog.Logger
	sanitizer     *bluemonday.Policy
}

// NewChatService constructs a chat service.
func NewChatService(repo repository.ChatRepository, notifications NotificationPublisher, relay RelayService, validate *validator.Validate, logger zerolog.Logger) ChatService {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("br")

	return &chatService{
		repo:          repo,
		notifications: notifications,
		relay:         relay,
		validator:     validate,
		logger:        logger.With().Str("component", "chat_service").Logger(),
		sanitizer:     policy,
	}
}

func (s *chatService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.repo.ListConversations(ctx, userID)
}

func (s *chatService) CreateConversation(ctx context.Context, userID string, payload dto.ConversationCreateRequest) (models.Conversation, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Conversation{}, err
	}

	participants := map[string]struct{}{userID: {}}
	for _, participantID := range payload.ParticipantIDs {
		participantID = strings.TrimSpace(participantID)
		if participantID != "" {
			participants[participantID] = struct{}{}
		}
	}

	participantIDs := make([]string, 0, len(participants))
	for participantID := range participants {
		participantIDs = append(participantIDs, participantID)
	}

	conversationType := payload.Type
	if conversationType == "" {
		conversationType = "direct"
	}

	conversation := models.Conversation{
		Type: conversationType,
		Name: strings.TrimSpace(s.sanitizer.Sanitize(payload.Name)),
	}
	if err := s.repo.CreateConversation(ctx, &conversation, participantIDs); err != nil {
		return models.Conversation{}, err
	}

	s.logger.Info().Str("conversation_id", conversation.ID).Int("participants", len(participantIDs)).Msg("conversation created")

	return conversation, nil
}

func (s *chatService) ListMessages(ctx context.Context, conversationID, userID string) ([]models.Message, error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, conversationID)
}

// SendMessage stores the message, notifies the other participants and pushes
// the message to connected clients.
func (s *chatService) SendMessage(ctx context.Context, conversationID, userID string, payload dto.MessageSendRequest) (models.Message, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Message{}, err
	}

	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return models.Message{}, err
	}

	message := payload.ToModel(conversationID, userID)
	message.Content = strings.TrimSpace(s.sanitizer.Sanitize(message.Content))
	if message.Content == "" {
		return models.Message{}, errors.New("message content empty after sanitization")
	}

	if err := s.repo.CreateMessage(ctx, &message); err != nil {
		return models.Message{}, err
	}

	s.dispatch(ctx, message)

	return message, nil
}

func (s *chatService) requireParticipant(ctx context.Context, conversationID, userID string) error {
	ok, err := s.repo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *chatService) dispatch(ctx context.Context, message models.Message) {
	if s.relay != nil {
		s.relay.Push(ctx, map[string]interface{}{
			"type":    "chat_message",
			"message": message,
		})
	}

	if s.notifications == nil {
		return
	}

	participants, err := s.repo.ListParticipants(ctx, message.ConversationID)
	if err != nil {
		s.logger.Warn().Err(err).Str("conversation_id", message.ConversationID).Msg("failed to list participants for notification")
		return
	}

	recipients := make([]models.Notification, 0, len(participants))
	for _, participant := range participants {
		if participant.UserID == message.UserID {
			continue
		}
		recipients = append(recipients, models.Notification{
			UserID:   participant.UserID,
			Title:    "New message",
			Message:  "You have a new message",
			Type:     "chat",
			EntityID: message.ConversationID,
		})
	}

	if err := s.notifications.PublishBatch(ctx, recipients); err != nil {
		s.logger.Warn().Err(err).Str("conversation_id", message.ConversationID).Msg("failed to notify participants")
	}
}
