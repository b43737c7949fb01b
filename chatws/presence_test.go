package chatws

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPresenceSingleConnection(t *testing.T) {
	p := NewPresence()
	user := uuid.New()
	conn := uuid.New()

	assert.False(t, p.IsOnline(user))

	cameOnline := p.Register(user, conn)
	assert.True(t, cameOnline)
	assert.True(t, p.IsOnline(user))

	wentOffline := p.Unregister(user, conn)
	assert.True(t, wentOffline)
	assert.False(t, p.IsOnline(user))
}

func TestPresenceMultipleTabs(t *testing.T) {
	p := NewPresence()
	user := uuid.New()
	tab1 := uuid.New()
	tab2 := uuid.New()

	assert.True(t, p.Register(user, tab1))
	assert.False(t, p.Register(user, tab2), "second tab must not re-announce online")

	assert.False(t, p.Unregister(user, tab1), "user still online through the other tab")
	assert.True(t, p.IsOnline(user))

	assert.True(t, p.Unregister(user, tab2))
	assert.False(t, p.IsOnline(user))
}

func TestPresenceUnregisterUnknown(t *testing.T) {
	p := NewPresence()
	user := uuid.New()

	assert.False(t, p.Unregister(user, uuid.New()))

	conn := uuid.New()
	p.Register(user, conn)
	assert.False(t, p.Unregister(user, uuid.New()), "unknown connection id must not flip status")
	assert.True(t, p.IsOnline(user))
}

func TestPresenceOnlineUsers(t *testing.T) {
	p := NewPresence()
	alice := uuid.New()
	bob := uuid.New()

	p.Register(alice, uuid.New())
	p.Register(bob, uuid.New())

	users := p.OnlineUsers()
	assert.Len(t, users, 2)
	assert.Contains(t, users, alice)
	assert.Contains(t, users, bob)
}
