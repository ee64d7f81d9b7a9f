package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_WrapsPayloadInAnEnvelope(t *testing.T) {
	raw, err := encode(MsgView, map[string]int{"turn": 3})
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, MsgView, msg.Type)

	var data map[string]int
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, 3, data["turn"])
}

func TestEncodeError_CarriesTheErrorMessage(t *testing.T) {
	raw := encodeError(errors.New("no hand card at that index"))

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, MsgError, msg.Type)

	var payload errorPayload
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, "no hand card at that index", payload.Message)
}
