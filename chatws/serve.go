package chatws

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/chat"
)

// Channel ties the hub, the presence registry and the message store together.
// A connection moves through three states: unregistered (identity unknown),
// registered (bound to a user's delivery group) and closed. The register event
// carries the user id from the client; the channel does not authenticate it.
type Channel struct {
	store    chat.Store
	hub      *Hub
	presence *Presence
	validate *validator.Validate
}

func NewChannel(store chat.Store, hub *Hub, presence *Presence) *Channel {
	return &Channel{
		store:    store,
		hub:      hub,
		presence: presence,
		validate: validator.New(),
	}
}

type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServeWs runs the read loop for one websocket connection until it closes.
// All writes to the socket go through the connection's client wrapper so hub
// fan-outs and error frames never interleave.
func (ch *Channel) ServeWs(c *websocket.Conn) {
	connID := uuid.New()
	cl := newClient(c)
	var userID uuid.UUID
	registered := false

	defer func() {
		if registered {
			ch.dropConnection(userID, connID)
		}
		c.Close()
	}()

	for {
		var env inboundEnvelope
		if err := c.ReadJSON(&env); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			return
		}

		if !registered {
			if env.Event != EventRegister {
				ch.writeError(cl, "register first")
				continue
			}
			var payload RegisterPayload
			if err := ch.decode(env.Data, &payload); err != nil {
				ch.writeError(cl, "invalid register payload")
				continue
			}
			userID = uuid.MustParse(payload.UserID)
			ch.hub.Join(userID, connID, cl)
			if ch.presence.Register(userID, connID) {
				ch.hub.BroadcastAll(EventUserStatus, UserStatusPayload{ID: userID.String(), Online: true})
			}
			registered = true
			log.Printf("Client registered: %s", userID)
			continue
		}

		switch env.Event {
		case EventSend:
			ch.handleSend(cl, env.Data)
		case EventTyping, EventStopTyping:
			ch.handleTyping(cl, env.Event, env.Data)
		case EventMarkRead:
			ch.handleMarkRead(cl, env.Data)
		default:
			ch.writeError(cl, "unknown event")
		}
	}
}

// MessageCreated fans a freshly persisted message out to the receiver's and the
// sender's delivery groups, so the sender's other tabs see it too. REST sends
// go through here as well.
func (ch *Channel) MessageCreated(payload MessagePayload) {
	receiver, err := uuid.Parse(payload.Receiver)
	if err != nil {
		return
	}
	sender, err := uuid.Parse(payload.Sender)
	if err != nil {
		return
	}

	ch.hub.EmitToUser(receiver, EventMessageReceived, payload)
	if sender != receiver {
		ch.hub.EmitToUser(sender, EventMessageReceived, payload)
	}
}

// ConversationRead tells the reader's other tabs to clear the badge and shows
// the partner a read receipt.
func (ch *Channel) ConversationRead(readerID, partnerID uuid.UUID) {
	ch.hub.EmitToUser(readerID, EventClearUnread, partnerID.String())
	ch.hub.EmitToUser(partnerID, EventMessagesRead, readerID.String())
}

func (ch *Channel) handleSend(cl *client, data json.RawMessage) {
	var payload SendPayload
	if err := ch.decode(data, &payload); err != nil {
		ch.writeError(cl, "invalid send payload")
		return
	}

	senderID := uuid.MustParse(payload.SenderID)
	receiverID := uuid.MustParse(payload.ReceiverID)

	msg, err := ch.store.Append(senderID, receiverID, payload.Content)
	if err != nil {
		// nothing is emitted on a failed append; history stays the source
		// of truth
		log.Printf("Failed to save message from client %s: %v", senderID, err)
		switch {
		case errors.Is(err, chat.ErrValidation):
			ch.writeError(cl, "receiver and content required")
		case errors.Is(err, chat.ErrNotFound):
			ch.writeError(cl, "unknown recipient")
		default:
			ch.writeError(cl, "failed to save message")
		}
		return
	}

	ch.MessageCreated(NewMessagePayload(msg))
}

func (ch *Channel) handleTyping(cl *client, event string, data json.RawMessage) {
	var payload TypingPayload
	if err := ch.decode(data, &payload); err != nil {
		ch.writeError(cl, "invalid typing payload")
		return
	}

	// transient: delivered only to currently registered connections, dropped
	// silently when the receiver has none
	receiver := uuid.MustParse(payload.Receiver)
	ch.hub.EmitToUser(receiver, event, TypingEvent{Sender: payload.Sender})
}

func (ch *Channel) handleMarkRead(cl *client, data json.RawMessage) {
	var payload MarkReadPayload
	if err := ch.decode(data, &payload); err != nil {
		ch.writeError(cl, "invalid markRead payload")
		return
	}

	readerID := uuid.MustParse(payload.ReaderID)
	partnerID := uuid.MustParse(payload.PartnerID)

	if _, err := ch.store.MarkConversationRead(readerID, partnerID); err != nil {
		log.Printf("Error marking messages as read for %s: %v", readerID, err)
		ch.writeError(cl, "failed to mark conversation read")
		return
	}

	ch.ConversationRead(readerID, partnerID)
}

func (ch *Channel) dropConnection(userID, connID uuid.UUID) {
	log.Printf("Client unregistered: %s", userID)
	ch.hub.Leave(userID, connID)
	if ch.presence.Unregister(userID, connID) {
		ch.hub.BroadcastAll(EventUserStatus, UserStatusPayload{ID: userID.String(), Online: false})
	}
}

func (ch *Channel) decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errors.New("empty payload")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	return ch.validate.Struct(v)
}

func (ch *Channel) writeError(cl *client, msg string) {
	_ = cl.write(Envelope{Event: EventError, Data: ErrorPayload{Message: msg}})
}
