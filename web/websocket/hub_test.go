package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTopicNames(t *testing.T) {
	assert.Equal(t, "board-b1", BoardTopic("b1"))
	assert.Equal(t, "project-p1", ProjectTopic("p1"))
	assert.Equal(t, "user-u1", UserTopic("u1"))
}

func TestValidTopic(t *testing.T) {
	assert.True(t, validTopic("board-b1"))
	assert.True(t, validTopic("project-p1"))
	assert.True(t, validTopic("user-u1"))
	assert.False(t, validTopic("board-"))
	assert.False(t, validTopic("channel-x"))
	assert.False(t, validTopic(""))
}

func TestHubPublishToSubscriber(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := NewClient(hub, nil, "u1")
	hub.Register(client)
	assert.Eventually(t, func() bool {
		return hub.GetClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Subscribe(client, BoardTopic("b1"))
	hub.Publish(BoardTopic("b1"), EventBoardUpdated)

	select {
	case data := <-client.send:
		assert.JSONEq(t, `{"type":"board-updated"}`, string(data))
	case <-time.After(time.Second):
		t.Fatal("no notification delivered")
	}

	// Another topic's publications do not reach this client
	hub.Publish(BoardTopic("b2"), EventBoardDeleted)
	select {
	case data := <-client.send:
		t.Fatalf("unexpected notification: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := NewClient(hub, nil, "u1")
	hub.Register(client)
	assert.Eventually(t, func() bool {
		return hub.GetClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	topic := ProjectTopic("p1")
	hub.Subscribe(client, topic)
	hub.Unsubscribe(client, topic)
	hub.Publish(topic, EventProjectUpdated)

	select {
	case data := <-client.send:
		t.Fatalf("unexpected notification: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := NewClient(hub, nil, "u1")
	hub.Register(client)
	assert.Eventually(t, func() bool {
		return hub.GetClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Subscribe(client, BoardTopic("b1"))
	hub.Unregister(client)
	assert.Eventually(t, func() bool {
		return hub.GetClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open)

	// Publications after deregistration go nowhere
	hub.Publish(BoardTopic("b1"), EventBoardUpdated)
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := NewClient(hub, nil, "u1")
	b := NewClient(hub, nil, "u2")
	hub.Register(a)
	hub.Register(b)
	assert.Eventually(t, func() bool {
		return hub.GetClientCount() == 2
	}, time.Second, 10*time.Millisecond)

	topic := BoardTopic("b1")
	hub.Subscribe(a, topic)
	hub.Subscribe(b, topic)
	hub.Publish(topic, EventBoardUpdated)

	for _, client := range []*Client{a, b} {
		select {
		case data := <-client.send:
			assert.JSONEq(t, `{"type":"board-updated"}`, string(data))
		case <-time.After(time.Second):
			t.Fatal("no notification delivered")
		}
	}
}

func TestNilHubIsSafe(t *testing.T) {
	var hub *Hub
	hub.Publish(BoardTopic("b1"), EventBoardUpdated)
	hub.Register(nil)
	hub.Unregister(nil)
	hub.Stop()
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, "u1")
	hub.Register(client)
	assert.Eventually(t, func() bool {
		return hub.GetClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Stop()
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-client.send:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
