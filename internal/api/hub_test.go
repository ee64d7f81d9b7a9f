package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/persist"
)

func newTestClient() *Client {
	return &Client{send: make(chan []byte, 16)}
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	store, err := persist.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewHub(testTabula(), identifiers.Points(25), store, t.TempDir(), nil)
}

func decodeFrame(t *testing.T, raw []byte) Message {
	t.Helper()
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestHub_JoinSessionTracksClientBySession(t *testing.T) {
	h := newTestHub(t)
	client := newTestClient()

	h.joinSession(client, "session-1", "one")
	assert.Equal(t, "session-1", client.sessionID)
	assert.Equal(t, "one", client.player)
	assert.Contains(t, h.bySession["session-1"], client)
}

func TestHub_HandleCreateSessionJoinsAndSendsAView(t *testing.T) {
	h := newTestHub(t)
	client := newTestClient()

	payload, err := json.Marshal(createSessionPayload{
		Seed:     1,
		DeckOne:  []string{string(testCard)},
		DeckTwo:  []string{string(testCard)},
		AsPlayer: "one",
	})
	require.NoError(t, err)

	h.handle(client, Message{Type: MsgCreateSession, Data: payload})

	require.NotEmpty(t, client.sessionID)
	assert.Equal(t, "one", client.player)

	frame := decodeFrame(t, <-client.send)
	assert.Equal(t, MsgView, frame.Type)
}

func TestHub_HandleJoinSessionRejectsUnknownSession(t *testing.T) {
	h := newTestHub(t)
	client := newTestClient()

	payload, err := json.Marshal(joinSessionPayload{SessionID: "no-such-session", AsPlayer: "one"})
	require.NoError(t, err)

	h.handle(client, Message{Type: MsgJoinSession, Data: payload})

	frame := decodeFrame(t, <-client.send)
	assert.Equal(t, MsgError, frame.Type)
}

func TestHub_HandleSubmitActionBroadcastsToEveryClientInTheSession(t *testing.T) {
	h := newTestHub(t)
	clientOne := newTestClient()
	clientTwo := newTestClient()

	createPayload, err := json.Marshal(createSessionPayload{
		Seed:     1,
		DeckOne:  []string{string(testCard)},
		DeckTwo:  []string{string(testCard)},
		AsPlayer: "one",
	})
	require.NoError(t, err)
	h.handle(clientOne, Message{Type: MsgCreateSession, Data: createPayload})
	sessionID := clientOne.sessionID
	<-clientOne.send // drain the view sent by handleCreateSession

	joinPayload, err := json.Marshal(joinSessionPayload{SessionID: sessionID, AsPlayer: "two"})
	require.NoError(t, err)
	h.handle(clientTwo, Message{Type: MsgJoinSession, Data: joinPayload})
	<-clientTwo.send // drain the view sent by handleJoinSession

	session, ok := h.registry.Get(sessionID)
	require.True(t, ok)
	view := session.View(identifiers.PlayerOne)
	require.NotEmpty(t, view.Legal.PlayCardFromHand)
	handCard := view.Legal.PlayCardFromHand[0]

	submitPayload, err := json.Marshal(submitActionPayload{Action: ActionWire{
		Kind:     actionKindPlayCardFromHand,
		HandCard: int32Ptr(int32(handCard)),
	}})
	require.NoError(t, err)
	h.handle(clientOne, Message{Type: MsgSubmitAction, Data: submitPayload})

	assert.Equal(t, MsgView, decodeFrame(t, <-clientOne.send).Type)
	assert.Equal(t, MsgView, decodeFrame(t, <-clientTwo.send).Type)
}

func TestHub_ResolveClientRequiresAJoinedSession(t *testing.T) {
	h := newTestHub(t)
	client := newTestClient()

	h.handle(client, Message{Type: MsgRequestView})
	frame := decodeFrame(t, <-client.send)
	assert.Equal(t, MsgError, frame.Type)
}

func TestHub_HandleUnknownMessageTypeSendsAnError(t *testing.T) {
	h := newTestHub(t)
	client := newTestClient()

	h.handle(client, Message{Type: "not_a_real_type"})
	frame := decodeFrame(t, <-client.send)
	assert.Equal(t, MsgError, frame.Type)
}

func TestHub_SaveThenLoadSessionRestoresStateThroughTheStore(t *testing.T) {
	h := newTestHub(t)
	client := newTestClient()

	createPayload, err := json.Marshal(createSessionPayload{
		Seed:     1,
		DeckOne:  []string{string(testCard)},
		DeckTwo:  []string{string(testCard)},
		AsPlayer: "one",
	})
	require.NoError(t, err)
	h.handle(client, Message{Type: MsgCreateSession, Data: createPayload})
	sessionID := client.sessionID
	<-client.send

	h.handle(client, Message{Type: MsgSaveSession})
	frame := decodeFrame(t, <-client.send)
	assert.Equal(t, MsgSaved, frame.Type)

	_, err = h.store.Load(context.Background(), sessionID)
	require.NoError(t, err)

	loader := newTestClient()
	loadPayload, err := json.Marshal(loadSessionPayload{SessionID: sessionID, AsPlayer: "one"})
	require.NoError(t, err)
	h.handle(loader, Message{Type: MsgLoadSession, Data: loadPayload})

	frame = decodeFrame(t, <-loader.send)
	assert.Equal(t, MsgView, frame.Type)
	assert.Equal(t, sessionID, loader.sessionID)
}

func TestDeckFrom_BuildsADeckFromNames(t *testing.T) {
	deck := deckFrom([]string{"a", "b", "c"})
	require.Len(t, deck.Cards, 3)
	assert.Equal(t, identifiers.BaseCardId("b"), deck.Cards[1])
}
