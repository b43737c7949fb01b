package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sandunipw/school_manager/chat"
	"github.com/sandunipw/school_manager/chatws"
	"github.com/sandunipw/school_manager/models"
)

// emitterSpy records the fan-out calls a handler makes.
type emitterSpy struct {
	created []chatws.MessagePayload
	reads   [][2]uuid.UUID
}

func (e *emitterSpy) MessageCreated(payload chatws.MessagePayload) {
	e.created = append(e.created, payload)
}

func (e *emitterSpy) ConversationRead(readerID, partnerID uuid.UUID) {
	e.reads = append(e.reads, [2]uuid.UUID{readerID, partnerID})
}

func setupChatApp(handler *ChatHandler, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		token := jwt.New(jwt.SigningMethodHS256)
		claims := token.Claims.(jwt.MapClaims)
		claims["user_id"] = userID.String()
		claims["role"] = "student"
		c.Locals("user", token)
		return c.Next()
	})
	app.Post("/chat/messages", handler.SendMessage)
	app.Get("/chat/conversations", handler.ListConversations)
	app.Get("/chat/unread", handler.GetUnreadCounts)
	app.Get("/chat/:partnerId/messages", handler.GetHistory)
	app.Post("/chat/:partnerId/read", handler.MarkRead)
	return app
}

func TestSendMessageSuccess(t *testing.T) {
	store := new(chat.StoreMock)
	emitter := &emitterSpy{}
	me := uuid.New()
	partner := uuid.New()
	handler := NewChatHandler(store, emitter)
	app := setupChatApp(handler, me)

	saved := &models.Message{
		SenderID:   me,
		ReceiverID: partner,
		Content:    "hello there",
		CreatedAt:  time.Now(),
	}
	saved.ID = uuid.New()
	store.On("Append", me, partner, "hello there").Return(saved, nil).Once()

	body := bytes.NewBufferString(fmt.Sprintf(`{"receiver_id":%q,"content":"hello there"}`, partner))
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, emitter.created, 1)
	assert.Equal(t, saved.ID.String(), emitter.created[0].ID)
	assert.Equal(t, me.String(), emitter.created[0].Sender)
	store.AssertExpectations(t)
}

func TestSendMessageMissingContent(t *testing.T) {
	store := new(chat.StoreMock)
	emitter := &emitterSpy{}
	me := uuid.New()
	handler := NewChatHandler(store, emitter)
	app := setupChatApp(handler, me)

	body := bytes.NewBufferString(fmt.Sprintf(`{"receiver_id":%q,"content":""}`, uuid.New()))
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Empty(t, emitter.created, "nothing is emitted when nothing was appended")
	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	store := new(chat.StoreMock)
	emitter := &emitterSpy{}
	me := uuid.New()
	partner := uuid.New()
	handler := NewChatHandler(store, emitter)
	app := setupChatApp(handler, me)

	store.On("Append", me, partner, "hi").
		Return((*models.Message)(nil), fmt.Errorf("%w: receiver does not exist", chat.ErrNotFound)).Once()

	body := bytes.NewBufferString(fmt.Sprintf(`{"receiver_id":%q,"content":"hi"}`, partner))
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Empty(t, emitter.created)
	store.AssertExpectations(t)
}

func TestSendMessagePersistenceFailure(t *testing.T) {
	store := new(chat.StoreMock)
	emitter := &emitterSpy{}
	me := uuid.New()
	partner := uuid.New()
	handler := NewChatHandler(store, emitter)
	app := setupChatApp(handler, me)

	store.On("Append", me, partner, "hi").
		Return((*models.Message)(nil), assert.AnError).Once()

	body := bytes.NewBufferString(fmt.Sprintf(`{"receiver_id":%q,"content":"hi"}`, partner))
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	assert.Empty(t, emitter.created)
	store.AssertExpectations(t)
}

func TestGetHistoryUsesSymmetricKey(t *testing.T) {
	store := new(chat.StoreMock)
	me := uuid.New()
	partner := uuid.New()
	handler := NewChatHandler(store, &emitterSpy{})
	app := setupChatApp(handler, me)

	key, err := chat.DeriveKey(me.String(), partner.String())
	require.NoError(t, err)
	store.On("History", key, chat.DefaultHistoryLimit).Return([]models.Message{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chat/"+partner.String()+"/messages", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	store.AssertExpectations(t)
}

func TestMarkReadReportsUpdatedCount(t *testing.T) {
	store := new(chat.StoreMock)
	emitter := &emitterSpy{}
	me := uuid.New()
	partner := uuid.New()
	handler := NewChatHandler(store, emitter)
	app := setupChatApp(handler, me)

	store.On("MarkConversationRead", me, partner).Return(int64(3), nil).Once()
	store.On("MarkConversationRead", me, partner).Return(int64(0), nil).Once()

	for i, want := range []float64{3, 0} {
		req := httptest.NewRequest(http.MethodPost, "/chat/"+partner.String()+"/read", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, want, body["updated"], "call %d", i+1)
	}

	require.Len(t, emitter.reads, 2, "marking an already read conversation still notifies")
	assert.Equal(t, [2]uuid.UUID{me, partner}, emitter.reads[0])
	store.AssertExpectations(t)
}

func TestListConversations(t *testing.T) {
	store := new(chat.StoreMock)
	me := uuid.New()
	partner := uuid.New()
	handler := NewChatHandler(store, &emitterSpy{})
	app := setupChatApp(handler, me)

	summaries := []chat.ConversationSummary{{PartnerID: partner, UnreadCount: 2}}
	store.On("RecentConversations", me, chat.DefaultHistoryLimit).Return(summaries, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chat/conversations", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	conversations := body["conversations"].([]any)
	require.Len(t, conversations, 1)
	store.AssertExpectations(t)
}

func TestGetUnreadCounts(t *testing.T) {
	store := new(chat.StoreMock)
	me := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	handler := NewChatHandler(store, &emitterSpy{})
	app := setupChatApp(handler, me)

	store.On("UnreadCountsBySender", me).Return(map[uuid.UUID]int64{alice: 4, bob: 1}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chat/unread", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	unread := body["unread"].(map[string]any)
	assert.Equal(t, float64(4), unread[alice.String()])
	assert.Equal(t, float64(1), unread[bob.String()])
	store.AssertExpectations(t)
}
