package dto

import "github.com/hommiefi/hommiefi-api/internal/models"

// ConversationCreateRequest starts a conversation with the listed
// participants. The caller is added automatically.
type ConversationCreateRequest struct {
	ParticipantIDs []string `json:"participantIds" validate:"required,min=1,dive,max=64"`
	Type           string   `json:"type" validate:"omitempty,oneof=direct group haven"`
	Name           string   `json:"name" validate:"omitempty,max=255"`
}

// MessageSendRequest posts a message into a conversation.
type MessageSendRequest struct {
	Content     string `json:"content" validate:"required,min=1,max=4000"`
	MessageType string `json:"messageType" validate:"omitempty,oneof=text image system"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// ToModel builds the message row for the given conversation and sender.
func (r MessageSendRequest) ToModel(conversationID, userID string) models.Message {
	messageType := r.MessageType
	if messageType == "" {
		messageType = "text"
	}

	return models.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Content:        r.Content,
		MessageType:    messageType,
		IsAnonymous:    r.IsAnonymous,
	}
}
