package domain

import (
	"sort"
	"time"
)

// Message is one immutable chat message between two users.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
}

// Conversation is a derived thread between a user and one counterpart. It is
// never persisted; it is materialized on demand from the message log.
type Conversation struct {
	CounterpartID string    `json:"counterpart_id"`
	LastMessage   Message   `json:"last_message"`
	Messages      []Message `json:"messages"`
}

// GroupConversations buckets the given messages into one thread per
// counterpart of userID. Messages within a thread are ordered by SentAt
// ascending (id as tiebreak); LastMessage is the newest in the bucket.
// Threads are ordered by last activity, newest first.
//
// Messages not involving userID are ignored, so callers can pass a
// pre-filtered or raw log interchangeably.
func GroupConversations(userID string, messages []Message) []Conversation {
	buckets := make(map[string][]Message)
	for _, m := range messages {
		var counterpart string
		switch userID {
		case m.SenderID:
			counterpart = m.ReceiverID
		case m.ReceiverID:
			counterpart = m.SenderID
		default:
			continue
		}
		buckets[counterpart] = append(buckets[counterpart], m)
	}

	conversations := make([]Conversation, 0, len(buckets))
	for counterpart, msgs := range buckets {
		sort.Slice(msgs, func(i, j int) bool {
			if !msgs[i].SentAt.Equal(msgs[j].SentAt) {
				return msgs[i].SentAt.Before(msgs[j].SentAt)
			}
			return msgs[i].ID < msgs[j].ID
		})

		conversations = append(conversations, Conversation{
			CounterpartID: counterpart,
			LastMessage:   msgs[len(msgs)-1],
			Messages:      msgs,
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		a, b := conversations[i].LastMessage.SentAt, conversations[j].LastMessage.SentAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return conversations[i].CounterpartID < conversations[j].CounterpartID
	})

	return conversations
}
