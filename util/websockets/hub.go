package websockets

import (
	"sync"
)

// Buffered messages held per subscriber before publishes start dropping.
const subscriptionBuffer = 16

// Subscription is one subscriber's handle on a topic. Messages arrive on C
// in publish order; C is closed by Close or Unsubscribe.
type Subscription struct {
	Topic string
	C     chan []byte
	hub   *Hub
}

func (s *Subscription) Close() {
	s.hub.Unsubscribe(s)
}

// Hub fans published payloads out to every subscriber of a topic.
// Delivery is at-most-once: a subscriber whose buffer is full misses the
// message instead of blocking the publisher or other subscribers.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*Subscription]struct{}),
	}
}

func (h *Hub) Subscribe(topic string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscription{
		Topic: topic,
		C:     make(chan []byte, subscriptionBuffer),
		hub:   h,
	}
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[sub.Topic]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, sub.Topic)
	}
	close(sub.C)
}

// Publish delivers payload to all current subscribers of topic. Publishes on
// the same topic are delivered to each subscriber in call order.
func (h *Hub) Publish(topic string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.topics[topic] {
		select {
		case sub.C <- payload:
		default:
			// subscriber buffer full, drop for this subscriber only
		}
	}
}

// SubscriberCount returns the number of active subscriptions on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
