package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/chat"
	"github.com/sandunipw/school_manager/chatws"
)

// ChatEmitter is the realtime fan-out surface the REST handlers need. The
// websocket Channel implements it; delivery is best effort and failures never
// affect the persisted record.
type ChatEmitter interface {
	MessageCreated(payload chatws.MessagePayload)
	ConversationRead(readerID, partnerID uuid.UUID)
}

type ChatHandler struct {
	store   chat.Store
	emitter ChatEmitter
}

func NewChatHandler(store chat.Store, emitter ChatEmitter) *ChatHandler {
	return &ChatHandler{store: store, emitter: emitter}
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	Content    string `json:"content" validate:"required"`
}

// SendMessage persists a message from the authenticated user and fans it out
// to both participants' connections.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	senderID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "receiver and content required"})
	}
	receiverID, _ := uuid.Parse(req.ReceiverID)

	msg, err := h.store.Append(senderID, receiverID, req.Content)
	if err != nil {
		switch {
		case chat.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "receiver and content required"})
		case chat.IsNotFound(err):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
		}
	}

	h.emitter.MessageCreated(chatws.NewMessagePayload(msg))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "message": msg})
}

// GetHistory returns the conversation with a partner, oldest first.
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	me, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	partnerID, err := uuid.Parse(c.Params("partnerId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "partnerId required"})
	}
	limit := c.QueryInt("limit", chat.DefaultHistoryLimit)

	key, err := chat.DeriveKey(me.String(), partnerID.String())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	messages, err := h.store.History(key, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(fiber.Map{"ok": true, "messages": messages})
}

// MarkRead stamps every unread message from the partner as read and notifies
// the reader's other tabs and the partner.
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	me, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	partnerID, err := uuid.Parse(c.Params("partnerId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "partnerId required"})
	}

	updated, err := h.store.MarkConversationRead(me, partnerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark conversation read"})
	}

	h.emitter.ConversationRead(me, partnerID)

	return c.JSON(fiber.Map{"ok": true, "updated": updated})
}

// ListConversations returns the user's chat list, most recent first, with
// unread counts.
func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	me, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	cap := c.QueryInt("limit", chat.DefaultHistoryLimit)
	summaries, err := h.store.RecentConversations(me, cap)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}

	return c.JSON(fiber.Map{"ok": true, "conversations": summaries})
}

// GetUnreadCounts maps each sender to how many of their messages the user has
// not read yet.
func (h *ChatHandler) GetUnreadCounts(c *fiber.Ctx) error {
	me, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	counts, err := h.store.UnreadCountsBySender(me)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch unread counts"})
	}

	byPartner := make(map[string]int64, len(counts))
	for sender, n := range counts {
		byPartner[sender.String()] = n
	}

	return c.JSON(fiber.Map{"ok": true, "unread": byPartner})
}
