package websockets

import (
	"fmt"
	"testing"
)

func TestHubPublishOrder(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("reports")
	defer sub.Close()

	for i := 0; i < 10; i++ {
		hub.Publish("reports", []byte(fmt.Sprintf("msg-%d", i)))
	}

	for i := 0; i < 10; i++ {
		got := string(<-sub.C)
		want := fmt.Sprintf("msg-%d", i)
		if got != want {
			t.Fatalf("message %d: got %q, want %q", i, got, want)
		}
	}
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe("reports")
	second := hub.Subscribe("reports")
	defer first.Close()
	defer second.Close()

	hub.Publish("reports", []byte("payload"))

	if got := string(<-first.C); got != "payload" {
		t.Errorf("first subscriber got %q", got)
	}
	if got := string(<-second.C); got != "payload" {
		t.Errorf("second subscriber got %q", got)
	}
}

func TestHubTopicIsolation(t *testing.T) {
	hub := NewHub()
	reports := hub.Subscribe("reports")
	single := hub.Subscribe(ReportTopic(42))
	defer reports.Close()
	defer single.Close()

	hub.Publish(ReportTopic(42), []byte("only-42"))

	if got := string(<-single.C); got != "only-42" {
		t.Fatalf("per-report subscriber got %q", got)
	}
	select {
	case payload := <-reports.C:
		t.Fatalf("global subscriber received %q for a per-report publish", payload)
	default:
	}
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe("reports")
	fast := hub.Subscribe("reports")
	defer slow.Close()
	defer fast.Close()

	// Overflow the slow subscriber's buffer without draining it. Publish
	// must never block, and the fast subscriber must see every message.
	total := subscriptionBuffer * 2
	for i := 0; i < total; i++ {
		hub.Publish("reports", []byte(fmt.Sprintf("msg-%d", i)))
		got := string(<-fast.C)
		if want := fmt.Sprintf("msg-%d", i); got != want {
			t.Fatalf("fast subscriber: got %q, want %q", got, want)
		}
	}

	// The slow subscriber kept the oldest messages and dropped the rest.
	if got := len(slow.C); got != subscriptionBuffer {
		t.Errorf("slow subscriber buffered %d messages, want %d", got, subscriptionBuffer)
	}
	if got := string(<-slow.C); got != "msg-0" {
		t.Errorf("slow subscriber's first message is %q, want msg-0", got)
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("reports")

	if got := hub.SubscriberCount("reports"); got != 1 {
		t.Fatalf("subscriber count = %d, want 1", got)
	}

	sub.Close()

	if got := hub.SubscriberCount("reports"); got != 0 {
		t.Fatalf("subscriber count after close = %d, want 0", got)
	}
	if _, open := <-sub.C; open {
		t.Error("channel still open after unsubscribe")
	}

	// Closing twice is harmless.
	sub.Close()

	// Publishing to a topic with no subscribers is a no-op.
	hub.Publish("reports", []byte("nobody-home"))
}
