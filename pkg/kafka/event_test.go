package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingCreatedPayload struct {
	BookingID string `json:"booking_id"`
	Skill     string `json:"skill"`
}

func TestNewEvent(t *testing.T) {
	payload := bookingCreatedPayload{BookingID: "b-1", Skill: "python"}

	event, err := NewEvent("skillswap.booking.created", "b-1", "booking", "skillswap-api", payload)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "skillswap.booking.created", event.EventType)
	assert.Equal(t, "b-1", event.AggregateID)
	assert.Equal(t, "booking", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("skillswap.rating.submitted", "b-2", "booking", "skillswap-api",
		bookingCreatedPayload{BookingID: "b-2", Skill: "go"})
	require.NoError(t, err)
	event.WithCorrelationID("corr-7")

	data, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-7", decoded.CorrelationID)

	var payload bookingCreatedPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "go", payload.Skill)
}

func TestNewEvent_UnserializableData(t *testing.T) {
	_, err := NewEvent("skillswap.booking.created", "b-3", "booking", "skillswap-api", make(chan int))
	assert.Error(t, err)
}
