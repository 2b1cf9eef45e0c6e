package notify

import (
	"encoding/json"
	"testing"
	"time"

	"typetutor/internal/events"
)

func TestSendToUser_AllTabsReceive(t *testing.T) {
	h := NewHub(events.NewBus())

	tab1 := &Client{UserID: "u1", Send: make(chan []byte, 16)}
	tab2 := &Client{UserID: "u1", Send: make(chan []byte, 16)}
	other := &Client{UserID: "u2", Send: make(chan []byte, 16)}

	h.Register(tab1)
	h.Register(tab2)
	h.Register(other)

	h.SendToUser("u1", BadgeMessage{Type: "badge_earned", Level: 2, Name: "Steady Starter"})

	for _, c := range []*Client{tab1, tab2} {
		select {
		case data := <-c.Send:
			var got BadgeMessage
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "badge_earned" || got.Level != 2 {
				t.Fatalf("unexpected message: %+v", got)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("client did not receive message")
		}
	}

	select {
	case <-other.Send:
		t.Fatal("other user should not receive the message")
	default:
		// expected
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h := NewHub(events.NewBus())

	c := &Client{UserID: "u1", Send: make(chan []byte, 16)}
	h.Register(c)
	h.Unregister(c)

	_, ok := <-c.Send
	if ok {
		t.Fatal("Send should be closed after Unregister")
	}

	// Sending to an unregistered user is a no-op.
	h.SendToUser("u1", BadgeMessage{Type: "badge_earned", Level: 1})
}

func TestUnregisterTwice(t *testing.T) {
	h := NewHub(events.NewBus())

	c := &Client{UserID: "u1", Send: make(chan []byte, 16)}
	h.Register(c)
	h.Unregister(c)
	// Should not panic or close twice
	h.Unregister(c)
}

func TestSendDropsWhenFull(t *testing.T) {
	h := NewHub(events.NewBus())

	// Channel with capacity 1
	c := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	h.Register(c)

	// Fill the channel
	c.Send <- []byte("filler")

	// This should not block — message dropped
	h.SendToUser("u1", BadgeMessage{Type: "badge_earned", Level: 1})

	data := <-c.Send
	if string(data) != "filler" {
		t.Fatalf("expected filler, got: %s", data)
	}

	select {
	case <-c.Send:
		t.Fatal("should be empty after draining filler")
	default:
		// expected
	}
}

func TestHubDrainsBus(t *testing.T) {
	bus := events.NewBus()
	h := NewHub(bus)

	c := &Client{UserID: "u1", Send: make(chan []byte, 16)}
	h.Register(c)

	bus.Publish(events.BadgeEarned{UserID: "u1", Level: 4})

	select {
	case data := <-c.Send:
		var got BadgeMessage
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Level != 4 || got.Name == "" || got.Icon == "" {
			t.Fatalf("expected enriched level 4 message, got: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("bus event never reached the client")
	}
}
