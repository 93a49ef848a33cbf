package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	b, err := encode(EventApplicationSubmitted, map[string]int64{"application_id": 7}, now)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, EventApplicationSubmitted, got["type"])
	assert.Equal(t, "2024-05-01T10:00:00Z", got["occurred_at"])
	assert.EqualValues(t, 7, got["data"].(map[string]any)["application_id"])
}

func TestEncode_Unmarshalable(t *testing.T) {
	_, err := encode("x", make(chan int), time.Now())
	assert.Error(t, err)
}

func TestNew_WithoutURL(t *testing.T) {
	p := New("", "skillhire.events", nil)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), EventJobStatusChanged, nil))
	assert.NoError(t, p.Close())
}
