// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

func recv(t *testing.T, sub *Subscription) *Message {
	t.Helper()
	select {
	case got := <-sub.Channel():
		return got
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func expectNone(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		t.Fatalf("unexpected message: %v", got.Payload)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("config", "ui"))
	conn.Publish(conn.NewMessage(T("config", "ui"), "hello", false))

	if got := recv(t, sub); got.Payload.(string) != "hello" {
		t.Errorf("expected payload 'hello', got %v", got.Payload)
	}
}

func TestExactMatchOnly(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("power", "status"))
	conn.Publish(conn.NewMessage(T("power"), "short", false))
	conn.Publish(conn.NewMessage(T("power", "status", "extra"), "long", false))
	expectNone(t, sub)
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("config", "ui"), "persist", true))

	sub := conn.Subscribe(T("config", "ui"))
	if got := recv(t, sub); got.Payload.(string) != "persist" {
		t.Errorf("expected retained payload 'persist', got %v", got.Payload)
	}
}

func TestRetainedClear(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("power", "status"), "low", true))
	conn.Publish(conn.NewMessage(T("power", "status"), nil, true))

	sub := conn.Subscribe(T("power", "status"))
	expectNone(t, sub)
}

func TestDropOldestWhenFull(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("sensors", "temp", "value"))
	for i := 0; i < 4; i++ {
		conn.Publish(conn.NewMessage(T("sensors", "temp", "value"), i, false))
	}
	// Queue length 2: the two newest survive.
	if got := recv(t, sub); got.Payload.(int) != 2 {
		t.Errorf("first = %v, want 2", got.Payload)
	}
	if got := recv(t, sub); got.Payload.(int) != 3 {
		t.Errorf("second = %v, want 3", got.Payload)
	}
}

func TestReply(t *testing.T) {
	b := NewBus(4)
	server := b.NewConnection("server")
	client := b.NewConnection("client")

	reqSub := server.Subscribe(T("svc", "req"))
	respSub := client.Subscribe(T("client", "resp"))

	client.Publish(&Message{Topic: T("svc", "req"), Payload: "ping", ReplyTo: T("client", "resp")})

	req := recv(t, reqSub)
	if !req.CanReply() {
		t.Fatal("request should carry a ReplyTo")
	}
	server.Reply(req, "pong", false)

	if got := recv(t, respSub); got.Payload.(string) != "pong" {
		t.Errorf("reply = %v, want pong", got.Payload)
	}
}

func TestUnsubscribePrunes(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("a", "b", "c"))
	sub.Unsubscribe()

	// Publishing into the now-pruned path must not panic nor deliver.
	conn.Publish(conn.NewMessage(T("a", "b", "c"), "x", false))
	if len(b.root.children) != 0 {
		t.Error("trie should be pruned after last unsubscribe")
	}
}

func TestDisconnectClosesAll(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")
	s1 := conn.Subscribe(T("a"))
	s2 := conn.Subscribe(T("b"))
	conn.Disconnect()

	for _, s := range []*Subscription{s1, s2} {
		if _, ok := <-s.Channel(); ok {
			t.Error("channel should be closed after Disconnect")
		}
	}
}
