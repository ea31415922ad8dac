package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation groups messages between participants. LastMessageAt is
// denormalized for sort order and refreshed on every new message.
type Conversation struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	Type          string     `gorm:"size:32;default:direct" json:"type"`
	Name          string     `gorm:"size:255" json:"name"`
	LastMessageAt *time.Time `gorm:"index" json:"lastMessageAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ConversationParticipant joins users to conversations with a per-participant
// read marker.
type ConversationParticipant struct {
	ConversationID string     `gorm:"primaryKey;size:64" json:"conversationId"`
	UserID         string     `gorm:"primaryKey;size:64" json:"userId"`
	JoinedAt       time.Time  `gorm:"autoCreateTime" json:"joinedAt"`
	LastReadAt     *time.Time `json:"lastReadAt"`
}

// Message belongs to exactly one conversation and one sender. IsAnonymous
// supports Haven-style anonymous posting.
type Message struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	ConversationID string    `gorm:"size:64;not null;index" json:"conversationId"`
	UserID         string    `gorm:"size:64;not null;index" json:"userId"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	MessageType    string    `gorm:"size:32;default:text" json:"messageType"`
	IsAnonymous    bool      `gorm:"not null;default:false" json:"isAnonymous"`
	CreatedAt      time.Time `json:"createdAt"`
	User           *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a server-generated identifier when none is supplied.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
