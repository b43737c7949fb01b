package chat

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/models"
	"gorm.io/gorm"
)

// DefaultHistoryLimit bounds history reads when the caller passes no limit.
const DefaultHistoryLimit = 200

// ConversationSummary is one row of a user's chat list.
type ConversationSummary struct {
	PartnerID   uuid.UUID      `json:"partner_id"`
	Partner     *models.User   `json:"partner,omitempty"`
	LastMessage models.Message `json:"last_message"`
	UnreadCount int64          `json:"unread_count"`
}

// Store is the persistence and query surface for direct messages. Handlers and
// the realtime channel depend on this interface; GormStore is the production
// implementation.
type Store interface {
	Append(senderID, receiverID uuid.UUID, content string) (*models.Message, error)
	History(conversationKey string, limit int) ([]models.Message, error)
	RecentConversations(userID uuid.UUID, cap int) ([]ConversationSummary, error)
	UnreadCountsBySender(userID uuid.UUID) (map[uuid.UUID]int64, error)
	UnreadTotal(userID uuid.UUID) (int64, error)
	MarkConversationRead(readerID, partnerID uuid.UUID) (int64, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Append validates, stamps the conversation key and persists a new message.
// Sender and receiver may be the same user; that mirrors the permissiveness of
// the rest of the system.
func (s *GormStore) Append(senderID, receiverID uuid.UUID, content string) (*models.Message, error) {
	if senderID == uuid.Nil || receiverID == uuid.Nil {
		return nil, fmt.Errorf("%w: sender and receiver are required", ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id IN ?", []uuid.UUID{senderID, receiverID}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	want := int64(2)
	if senderID == receiverID {
		want = 1
	}
	if count < want {
		return nil, fmt.Errorf("%w: unknown participant", ErrNotFound)
	}

	key, err := DeriveKey(senderID.String(), receiverID.String())
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		SenderID:        senderID,
		ReceiverID:      receiverID,
		Content:         content,
		ConversationKey: key,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &msg, nil
}

// History returns the conversation's messages ascending by creation time.
// Ordering is by the persisted timestamp, not insertion sequence.
func (s *GormStore) History(conversationKey string, limit int) ([]models.Message, error) {
	if conversationKey == "" {
		return nil, fmt.Errorf("%w: conversation key is required", ErrValidation)
	}
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}

	var messages []models.Message
	err := s.db.
		Where("conversation_key = ?", conversationKey).
		Order("created_at asc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return messages, nil
}

// RecentConversations returns the latest message of every conversation the
// user appears in, most recent first, with the partner's user record and the
// unread count attached.
func (s *GormStore) RecentConversations(userID uuid.UUID, cap int) ([]ConversationSummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if cap <= 0 || cap > DefaultHistoryLimit {
		cap = DefaultHistoryLimit
	}

	var last []models.Message
	err := s.db.
		Raw(`SELECT DISTINCT ON (conversation_key) *
		     FROM messages
		     WHERE sender_id = ? OR receiver_id = ?
		     ORDER BY conversation_key, created_at DESC`, userID, userID).
		Scan(&last).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	sort.Slice(last, func(i, j int) bool {
		return last[i].CreatedAt.After(last[j].CreatedAt)
	})
	if len(last) > cap {
		last = last[:cap]
	}

	unread, err := s.UnreadCountsBySender(userID)
	if err != nil {
		return nil, err
	}

	partnerIDs := make([]uuid.UUID, 0, len(last))
	for _, m := range last {
		partnerIDs = append(partnerIDs, partnerOf(m, userID))
	}

	partnerMap := make(map[uuid.UUID]*models.User, len(partnerIDs))
	if len(partnerIDs) > 0 {
		var partners []models.User
		if err := s.db.Where("id IN ?", partnerIDs).Find(&partners).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		for i := range partners {
			partnerMap[partners[i].ID] = &partners[i]
		}
	}

	summaries := make([]ConversationSummary, 0, len(last))
	for _, m := range last {
		pid := partnerOf(m, userID)
		summaries = append(summaries, ConversationSummary{
			PartnerID:   pid,
			Partner:     partnerMap[pid],
			LastMessage: m,
			UnreadCount: unread[pid],
		})
	}
	return summaries, nil
}

// UnreadCountsBySender groups the user's unread messages by sender.
func (s *GormStore) UnreadCountsBySender(userID uuid.UUID) (map[uuid.UUID]int64, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	type row struct {
		SenderID uuid.UUID
		Count    int64
	}
	var rows []row
	err := s.db.Model(&models.Message{}).
		Select("sender_id, count(*) as count").
		Where("receiver_id = ? AND read_at IS NULL", userID).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.SenderID] = r.Count
	}
	return counts, nil
}

// UnreadTotal is the user's total unread message count, used for the
// dashboard badge.
func (s *GormStore) UnreadTotal(userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	var count int64
	err := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return count, nil
}

// MarkConversationRead stamps read_at on every unread message addressed to the
// reader in the conversation with partner and reports how many were updated.
// Calling it again once everything is read updates zero rows and is not an
// error.
func (s *GormStore) MarkConversationRead(readerID, partnerID uuid.UUID) (int64, error) {
	if readerID == uuid.Nil || partnerID == uuid.Nil {
		return 0, fmt.Errorf("%w: reader and partner ids are required", ErrValidation)
	}

	key, err := DeriveKey(readerID.String(), partnerID.String())
	if err != nil {
		return 0, err
	}

	result := s.db.Model(&models.Message{}).
		Where("conversation_key = ? AND receiver_id = ? AND read_at IS NULL", key, readerID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, result.Error)
	}
	return result.RowsAffected, nil
}

// IsRead reports whether a message has been read.
func IsRead(m *models.Message) bool {
	return m.ReadAt != nil
}

func partnerOf(m models.Message, userID uuid.UUID) uuid.UUID {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// IsValidation reports whether err belongs to the validation class.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err belongs to the not-found class.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
