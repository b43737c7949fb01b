package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SenderID   uuid.UUID `gorm:"not null" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"not null;index:idx_messages_receiver_read" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`

	// sorted participant pair, stamped once at append time
	ConversationKey string `gorm:"size:100;not null;index:idx_messages_conversation_created" json:"conversation_key"`

	DeliveredAt *time.Time `json:"delivered_at"`
	ReadAt      *time.Time `gorm:"index:idx_messages_receiver_read" json:"read_at"`

	Sender   User `gorm:"foreignkey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignkey:ReceiverID" json:"receiver,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_messages_conversation_created" json:"created_at"`
}

// BeforeCreate assigns an id when the database does not, so inserts work the
// same against backends without a uuid default.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
