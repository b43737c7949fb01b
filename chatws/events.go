package chatws

import (
	"time"

	"github.com/sandunipw/school_manager/models"
)

// Inbound event names (client to server).
const (
	EventRegister   = "register"
	EventSend       = "send"
	EventTyping     = "typing"
	EventStopTyping = "stopTyping"
	EventMarkRead   = "markRead"
)

// Outbound event names (server to client).
const (
	EventMessageReceived = "messageReceived"
	EventClearUnread     = "clearUnread"
	EventMessagesRead    = "messagesRead"
	EventUserStatus      = "userStatus"
	EventError           = "error"
)

// Envelope frames every event on the wire.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Payload schemas are validated at the channel boundary; malformed events are
// rejected instead of propagating loose fields.

type RegisterPayload struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

type SendPayload struct {
	SenderID   string `json:"senderId" validate:"required,uuid"`
	ReceiverID string `json:"receiverId" validate:"required,uuid"`
	Content    string `json:"content" validate:"required"`
}

type TypingPayload struct {
	Sender   string `json:"sender" validate:"required,uuid"`
	Receiver string `json:"receiver" validate:"required,uuid"`
}

type MarkReadPayload struct {
	ReaderID  string `json:"readerId" validate:"required,uuid"`
	PartnerID string `json:"partnerId" validate:"required,uuid"`
}

type MessagePayload struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type TypingEvent struct {
	Sender string `json:"sender"`
}

type UserStatusPayload struct {
	ID     string `json:"id"`
	Online bool   `json:"online"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessagePayload converts a stored message into its wire shape.
func NewMessagePayload(m *models.Message) MessagePayload {
	return MessagePayload{
		ID:        m.ID.String(),
		Sender:    m.SenderID.String(),
		Receiver:  m.ReceiverID.String(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
