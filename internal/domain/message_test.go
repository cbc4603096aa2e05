package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(id, from, to string, at time.Time) Message {
	return Message{ID: id, SenderID: from, ReceiverID: to, Content: "hi", SentAt: at}
}

func TestGroupConversations_SingleBucketBothDirections(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	messages := []Message{
		msg("m1", "a", "b", base),
		msg("m2", "b", "a", base.Add(time.Minute)),
		msg("m3", "a", "b", base.Add(2*time.Minute)),
	}

	conversations := GroupConversations("a", messages)

	require.Len(t, conversations, 1)
	c := conversations[0]
	assert.Equal(t, "b", c.CounterpartID)
	require.Len(t, c.Messages, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{c.Messages[0].ID, c.Messages[1].ID, c.Messages[2].ID})
	assert.Equal(t, "m3", c.LastMessage.ID)
}

func TestGroupConversations_UnsortedInput(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	messages := []Message{
		msg("m3", "a", "b", base.Add(2*time.Minute)),
		msg("m1", "b", "a", base),
		msg("m2", "a", "b", base.Add(time.Minute)),
	}

	conversations := GroupConversations("a", messages)

	require.Len(t, conversations, 1)
	assert.Equal(t, []string{"m1", "m2", "m3"},
		[]string{conversations[0].Messages[0].ID, conversations[0].Messages[1].ID, conversations[0].Messages[2].ID})
}

func TestGroupConversations_MultipleCounterpartsNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	messages := []Message{
		msg("m1", "a", "b", base),
		msg("m2", "c", "a", base.Add(time.Hour)),
	}

	conversations := GroupConversations("a", messages)

	require.Len(t, conversations, 2)
	assert.Equal(t, "c", conversations[0].CounterpartID)
	assert.Equal(t, "b", conversations[1].CounterpartID)
}

func TestGroupConversations_IgnoresUnrelatedMessages(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	messages := []Message{
		msg("m1", "x", "y", base),
		msg("m2", "a", "b", base),
	}

	conversations := GroupConversations("a", messages)

	require.Len(t, conversations, 1)
	assert.Equal(t, "b", conversations[0].CounterpartID)
}

func TestGroupConversations_EqualTimestampsTieBreakByID(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	messages := []Message{
		msg("m2", "a", "b", at),
		msg("m1", "b", "a", at),
	}

	conversations := GroupConversations("a", messages)

	require.Len(t, conversations, 1)
	assert.Equal(t, "m1", conversations[0].Messages[0].ID)
	assert.Equal(t, "m2", conversations[0].LastMessage.ID)
}

func TestGroupConversations_Empty(t *testing.T) {
	assert.Empty(t, GroupConversations("a", nil))
}
