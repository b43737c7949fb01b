package chat

import (
	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/models"
	"github.com/stretchr/testify/mock"
)

// StoreMock is a testify mock of Store for handler and channel tests.
type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Append(senderID, receiverID uuid.UUID, content string) (*models.Message, error) {
	args := m.Called(senderID, receiverID, content)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *StoreMock) History(conversationKey string, limit int) ([]models.Message, error) {
	args := m.Called(conversationKey, limit)
	msgs, _ := args.Get(0).([]models.Message)
	return msgs, args.Error(1)
}

func (m *StoreMock) RecentConversations(userID uuid.UUID, cap int) ([]ConversationSummary, error) {
	args := m.Called(userID, cap)
	summaries, _ := args.Get(0).([]ConversationSummary)
	return summaries, args.Error(1)
}

func (m *StoreMock) UnreadCountsBySender(userID uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(userID)
	counts, _ := args.Get(0).(map[uuid.UUID]int64)
	return counts, args.Error(1)
}

func (m *StoreMock) UnreadTotal(userID uuid.UUID) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StoreMock) MarkConversationRead(readerID, partnerID uuid.UUID) (int64, error) {
	args := m.Called(readerID, partnerID)
	return args.Get(0).(int64), args.Error(1)
}
