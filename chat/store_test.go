package chat

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sandunipw/school_manager/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newStoreDB opens an in-memory database for exercising the real queries.
// The tables are created by hand because the model tags carry a Postgres uuid
// default that sqlite cannot parse.
func newStoreDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id text PRIMARY KEY,
		full_name text NOT NULL,
		email text NOT NULL UNIQUE,
		password text NOT NULL,
		role text NOT NULL DEFAULT 'student',
		date_of_birth datetime,
		gender text,
		contact text,
		class_name text,
		stream text,
		parent_name text,
		child_email text,
		profile_picture_url text,
		is_active boolean DEFAULT true,
		created_at datetime,
		updated_at datetime
	)`).Error)

	require.NoError(t, db.Exec(`CREATE TABLE messages (
		id text PRIMARY KEY,
		sender_id text NOT NULL,
		receiver_id text NOT NULL,
		content text NOT NULL,
		conversation_key text NOT NULL,
		delivered_at datetime,
		read_at datetime,
		created_at datetime
	)`).Error)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		FullName: name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     "student",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestGormStoreAppendValidation(t *testing.T) {
	store := NewGormStore(newStoreDB(t))

	_, err := store.Append(uuid.Nil, uuid.New(), "hi")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = store.Append(uuid.New(), uuid.Nil, "hi")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = store.Append(uuid.New(), uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = store.Append(uuid.New(), uuid.New(), "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreAppendPersists(t *testing.T) {
	db := newStoreDB(t)
	store := NewGormStore(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	msg, err := store.Append(alice, bob, "hello")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, msg.ID)

	key, err := DeriveKey(bob.String(), alice.String())
	require.NoError(t, err)
	assert.Equal(t, key, msg.ConversationKey)
}

func TestGormStoreHistoryOrdersByCreatedAt(t *testing.T) {
	db := newStoreDB(t)
	store := NewGormStore(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	key, err := DeriveKey(alice.String(), bob.String())
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	later := models.Message{
		SenderID: bob, ReceiverID: alice, Content: "second",
		ConversationKey: key, CreatedAt: base.Add(time.Minute),
	}
	earlier := models.Message{
		SenderID: alice, ReceiverID: bob, Content: "first",
		ConversationKey: key, CreatedAt: base,
	}
	require.NoError(t, db.Create(&later).Error)
	require.NoError(t, db.Create(&earlier).Error)

	history, err := store.History(key, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "second", history[1].Content)
}

func TestGormStoreMarkConversationReadIdempotent(t *testing.T) {
	db := newStoreDB(t)
	store := NewGormStore(db)
	reader := seedUser(t, db, "reader")
	partner := seedUser(t, db, "partner")

	for i := 0; i < 2; i++ {
		_, err := store.Append(partner, reader, "ping")
		require.NoError(t, err)
	}

	updated, err := store.MarkConversationRead(reader, partner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	updated, err = store.MarkConversationRead(reader, partner)
	require.NoError(t, err)
	assert.Zero(t, updated)

	total, err := store.UnreadTotal(reader)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGormStoreUnreadAccounting(t *testing.T) {
	db := newStoreDB(t)
	store := NewGormStore(db)
	reader := seedUser(t, db, "reader")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	for i := 0; i < 3; i++ {
		_, err := store.Append(alice, reader, "from alice")
		require.NoError(t, err)
	}
	_, err := store.Append(bob, reader, "from bob")
	require.NoError(t, err)

	counts, err := store.UnreadCountsBySender(reader)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[alice])
	assert.Equal(t, int64(1), counts[bob])

	total, err := store.UnreadTotal(reader)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	_, err = store.MarkConversationRead(reader, alice)
	require.NoError(t, err)

	counts, err = store.UnreadCountsBySender(reader)
	require.NoError(t, err)
	assert.Zero(t, counts[alice])
	assert.Equal(t, int64(1), counts[bob])

	total, err = store.UnreadTotal(reader)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
