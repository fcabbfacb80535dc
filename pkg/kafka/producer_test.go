package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	events := []Event{
		{Key: "q-1", Value: map[string]any{"kind": "boolean", "results": 3}},
		{Key: "q-2", Value: map[string]any{"kind": "prefix", "results": 0}},
	}

	messages, err := encode(events)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, "q-1", string(messages[0].Key))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(messages[1].Value, &decoded))
	assert.Equal(t, "prefix", decoded["kind"])
}

func TestEncodeRejectsUnmarshalable(t *testing.T) {
	_, err := encode([]Event{{Key: "bad", Value: make(chan int)}})
	assert.ErrorContains(t, err, "marshaling event value")
}
