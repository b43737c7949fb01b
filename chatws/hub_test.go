package chatws

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sandunipw/school_manager/chat"
)

// fakeConn records every frame the hub writes to it.
type fakeConn struct {
	mu     sync.Mutex
	frames []Envelope
	fail   bool
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("write on closed connection")
	}
	f.frames = append(f.frames, v.(Envelope))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.frames))
	for i, fr := range f.frames {
		names[i] = fr.Event
	}
	return names
}

func TestHubEmitToUserFansOutToAllTabs(t *testing.T) {
	hub := NewHub()
	user := uuid.New()
	tab1 := &fakeConn{}
	tab2 := &fakeConn{}

	hub.Join(user, uuid.New(), newClient(tab1))
	hub.Join(user, uuid.New(), newClient(tab2))

	hub.EmitToUser(user, EventMessageReceived, "hello")

	assert.Equal(t, []string{EventMessageReceived}, tab1.events())
	assert.Equal(t, []string{EventMessageReceived}, tab2.events())
}

func TestHubEmitToUnknownUserIsNoop(t *testing.T) {
	hub := NewHub()
	hub.EmitToUser(uuid.New(), EventMessageReceived, "hello")
}

func TestHubLeaveStopsDelivery(t *testing.T) {
	hub := NewHub()
	user := uuid.New()
	connID := uuid.New()
	conn := &fakeConn{}

	hub.Join(user, connID, newClient(conn))
	hub.Leave(user, connID)

	hub.EmitToUser(user, EventMessageReceived, "hello")
	assert.Empty(t, conn.events())
}

func TestHubDropsConnectionOnWriteFailure(t *testing.T) {
	hub := NewHub()
	user := uuid.New()
	good := &fakeConn{}
	bad := &fakeConn{fail: true}

	hub.Join(user, uuid.New(), newClient(good))
	hub.Join(user, uuid.New(), newClient(bad))

	hub.EmitToUser(user, EventMessageReceived, "hello")
	assert.True(t, bad.closed)

	hub.EmitToUser(user, EventMessageReceived, "again")
	assert.Equal(t, []string{EventMessageReceived, EventMessageReceived}, good.events())
}

func TestHubBroadcastAll(t *testing.T) {
	hub := NewHub()
	alice := &fakeConn{}
	bob := &fakeConn{}

	hub.Join(uuid.New(), uuid.New(), newClient(alice))
	hub.Join(uuid.New(), uuid.New(), newClient(bob))

	hub.BroadcastAll(EventUserStatus, UserStatusPayload{ID: uuid.NewString(), Online: true})

	assert.Equal(t, []string{EventUserStatus}, alice.events())
	assert.Equal(t, []string{EventUserStatus}, bob.events())
}

// overlapConn trips when two WriteJSON calls run at the same time, which the
// underlying websocket connection forbids.
type overlapConn struct {
	inflight atomic.Int32
	overlaps atomic.Int32
	writes   atomic.Int32
}

func (o *overlapConn) WriteJSON(v interface{}) error {
	if o.inflight.Add(1) > 1 {
		o.overlaps.Add(1)
	}
	time.Sleep(time.Millisecond)
	o.inflight.Add(-1)
	o.writes.Add(1)
	return nil
}

func (o *overlapConn) Close() error { return nil }

func TestHubSerializesWritesPerConnection(t *testing.T) {
	hub := NewHub()
	user := uuid.New()
	conn := &overlapConn{}
	hub.Join(user, uuid.New(), newClient(conn))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.EmitToUser(user, EventMessageReceived, "hello")
		}()
	}
	wg.Wait()

	assert.Zero(t, conn.overlaps.Load())
	assert.Equal(t, int32(8), conn.writes.Load())
}

func newTestChannel() (*Channel, *Hub) {
	hub := NewHub()
	return NewChannel(new(chat.StoreMock), hub, NewPresence()), hub
}

func TestChannelMessageCreatedReachesBothParticipants(t *testing.T) {
	ch, hub := newTestChannel()

	sender := uuid.New()
	receiver := uuid.New()
	senderTab := &fakeConn{}
	receiverTab := &fakeConn{}
	hub.Join(sender, uuid.New(), newClient(senderTab))
	hub.Join(receiver, uuid.New(), newClient(receiverTab))

	ch.MessageCreated(MessagePayload{
		ID:       uuid.NewString(),
		Sender:   sender.String(),
		Receiver: receiver.String(),
		Content:  "hi",
	})

	assert.Equal(t, []string{EventMessageReceived}, senderTab.events())
	assert.Equal(t, []string{EventMessageReceived}, receiverTab.events())
}

func TestChannelMessageCreatedSelfConversationDeliversOnce(t *testing.T) {
	ch, hub := newTestChannel()

	user := uuid.New()
	tab := &fakeConn{}
	hub.Join(user, uuid.New(), newClient(tab))

	ch.MessageCreated(MessagePayload{
		ID:       uuid.NewString(),
		Sender:   user.String(),
		Receiver: user.String(),
		Content:  "note to self",
	})

	assert.Equal(t, []string{EventMessageReceived}, tab.events())
}

func TestChannelConversationRead(t *testing.T) {
	ch, hub := newTestChannel()

	reader := uuid.New()
	partner := uuid.New()
	readerTab1 := &fakeConn{}
	readerTab2 := &fakeConn{}
	partnerTab := &fakeConn{}
	hub.Join(reader, uuid.New(), newClient(readerTab1))
	hub.Join(reader, uuid.New(), newClient(readerTab2))
	hub.Join(partner, uuid.New(), newClient(partnerTab))

	ch.ConversationRead(reader, partner)

	for _, tab := range []*fakeConn{readerTab1, readerTab2} {
		require.Len(t, tab.frames, 1)
		assert.Equal(t, EventClearUnread, tab.frames[0].Event)
		assert.Equal(t, partner.String(), tab.frames[0].Data)
	}

	require.Len(t, partnerTab.frames, 1)
	assert.Equal(t, EventMessagesRead, partnerTab.frames[0].Event)
	assert.Equal(t, reader.String(), partnerTab.frames[0].Data)
}
