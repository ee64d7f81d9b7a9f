package api

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamtides/battlecore/internal/engine/battle"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/replay"
	"github.com/dreamtides/battlecore/internal/persist"
)

// Hub fans inbound frames out to the session they target and broadcasts
// the resulting view back to every client watching that session.
// Grounded on the teacher's cmd/web-demo/main.go Hub, generalized from a
// single in-memory games map to the SessionRegistry plus per-session
// client membership needed once more than one battle runs concurrently.
type Hub struct {
	tabula   *content.Tabula
	registry *SessionRegistry
	recorder *replay.Recorder
	store    persist.SaveStore
	logger   *zap.Logger

	victoryThreshold identifiers.Points

	mu         sync.Mutex
	clients    map[*Client]bool
	bySession  map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
}

// NewHub wires together content, a fresh session registry, a replay
// recorder (its own save directory, per replay.Recorder), and store for
// persisting/restoring a session's action history across restarts.
func NewHub(tabula *content.Tabula, victoryThreshold identifiers.Points, store persist.SaveStore, replayDir string, logger *zap.Logger) *Hub {
	return &Hub{
		tabula:           tabula,
		registry:         NewSessionRegistry(logger),
		recorder:         replay.NewRecorder(logger, replayDir),
		store:            store,
		logger:           logger,
		victoryThreshold: victoryThreshold,
		clients:          map[*Client]bool{},
		bySession:        map[string]map[*Client]bool{},
		register:         make(chan *Client),
		unregister:       make(chan *Client),
	}
}

// Run drives the hub's register/unregister loop. Blocks; callers run it in
// its own goroutine, matching the teacher's `go hub.run()`.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if client.sessionID != "" {
					delete(h.bySession[client.sessionID], client)
				}
				close(client.send)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) joinSession(client *Client, sessionID, player string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client.sessionID = sessionID
	client.player = player
	if h.bySession[sessionID] == nil {
		h.bySession[sessionID] = map[*Client]bool{}
	}
	h.bySession[sessionID][client] = true
}

type createSessionPayload struct {
	Seed     uint64   `json:"seed"`
	DeckOne  []string `json:"deck_one"`
	DeckTwo  []string `json:"deck_two"`
	AsPlayer string   `json:"as_player"`
}

type joinSessionPayload struct {
	SessionID string `json:"session_id"`
	AsPlayer  string `json:"as_player"`
}

type submitActionPayload struct {
	Action ActionWire `json:"action"`
}

// savedSession is the gob-encoded payload persisted through persist.SaveStore
// (§6.2 "opaque serialized battle bytes"): enough to reconstruct a Session
// via Restore without keeping the full battle.State on disk, since the
// state is fully determined by (seed, decks, records).
type savedSession struct {
	Seed              uint64
	DeckOne           []string
	DeckTwo           []string
	VictoryThreshold  uint32
	Records           []replay.ActionRecord
}

func deckFrom(names []string) battle.Deck {
	cards := make([]identifiers.BaseCardId, len(names))
	for i, name := range names {
		cards[i] = identifiers.BaseCardId(name)
	}
	return battle.Deck{Cards: cards}
}

// handle dispatches one inbound frame from client, mirroring the
// teacher's Hub.handleMessage switch on msg.Type.
func (h *Hub) handle(client *Client, msg Message) {
	switch msg.Type {
	case MsgCreateSession:
		h.handleCreateSession(client, msg)
	case MsgJoinSession:
		h.handleJoinSession(client, msg)
	case MsgSubmitAction:
		h.handleSubmitAction(client, msg)
	case MsgRequestView:
		h.sendView(client)
	case MsgSaveSession:
		h.handleSaveSession(client)
	case MsgLoadSession:
		h.handleLoadSession(client, msg)
	default:
		client.send <- encodeError(fmt.Errorf("api: unknown message type %q", msg.Type))
	}
}

func (h *Hub) handleCreateSession(client *Client, msg Message) {
	var payload createSessionPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		client.send <- encodeError(err)
		return
	}

	sessionID := uuid.NewString()
	decks := map[identifiers.PlayerName]battle.Deck{
		identifiers.PlayerOne: deckFrom(payload.DeckOne),
		identifiers.PlayerTwo: deckFrom(payload.DeckTwo),
	}
	session := NewSession(sessionID, h.tabula, payload.Seed, decks, battle.SetupOptions{
		VictoryPointThreshold: h.victoryThreshold,
		Logger:                h.logger,
	})
	h.registry.Add(session)
	h.recorder.StartRecording(sessionID)
	h.joinSession(client, sessionID, payload.AsPlayer)
	h.sendView(client)
}

func (h *Hub) handleJoinSession(client *Client, msg Message) {
	var payload joinSessionPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		client.send <- encodeError(err)
		return
	}
	if _, ok := h.registry.Get(payload.SessionID); !ok {
		client.send <- encodeError(fmt.Errorf("api: no such session %q", payload.SessionID))
		return
	}
	h.joinSession(client, payload.SessionID, payload.AsPlayer)
	h.sendView(client)
}

func (h *Hub) handleSubmitAction(client *Client, msg Message) {
	session, player, ok := h.resolveClient(client)
	if !ok {
		return
	}

	var payload submitActionPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		client.send <- encodeError(err)
		return
	}
	action, err := payload.Action.ToAction()
	if err != nil {
		client.send <- encodeError(err)
		return
	}
	if err := session.Apply(player, action); err != nil {
		client.send <- encodeError(err)
		return
	}
	h.recorder.Record(session.ID, player, action)
	h.broadcastView(session)
}

func (h *Hub) sendView(client *Client) {
	session, player, ok := h.resolveClient(client)
	if !ok {
		return
	}
	frame, err := encode(MsgView, BuildViewWire(session.View(player)))
	if err != nil {
		client.send <- encodeError(err)
		return
	}
	client.send <- frame
}

// broadcastView sends session's current view to every client watching it,
// each from their own hidden-info perspective (mirroring the teacher's
// broadcastGameState, but per-recipient instead of one shared payload
// since this engine's View hides information broadcastGameState's public
// demo state never needed to).
func (h *Hub) broadcastView(session *Session) {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.bySession[session.ID]))
	for client := range h.bySession[session.ID] {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		h.sendView(client)
	}
}

// handleSaveSession persists the joined session's replay log (plus enough
// setup parameters to reconstruct it) through the configured SaveStore,
// keyed by session ID (§6.2's opaque key-value contract).
func (h *Hub) handleSaveSession(client *Client) {
	session, _, ok := h.resolveClient(client)
	if !ok {
		return
	}
	log, ok := h.recorder.GetLog(session.ID)
	if !ok {
		client.send <- encodeError(fmt.Errorf("api: no replay log for session %s", session.ID))
		return
	}

	decks := session.Decks()
	saved := savedSession{
		Seed:             session.Seed(),
		DeckOne:          namesFrom(decks[identifiers.PlayerOne]),
		DeckTwo:          namesFrom(decks[identifiers.PlayerTwo]),
		VictoryThreshold: uint32(session.Options().VictoryPointThreshold),
		Records:          log.Records(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&saved); err != nil {
		client.send <- encodeError(err)
		return
	}
	if err := h.store.Save(context.Background(), session.ID, buf.Bytes()); err != nil {
		client.send <- encodeError(err)
		return
	}
	frame, err := encode(MsgSaved, struct {
		SessionID string `json:"session_id"`
	}{SessionID: session.ID})
	if err != nil {
		client.send <- encodeError(err)
		return
	}
	client.send <- frame
}

type loadSessionPayload struct {
	SessionID string `json:"session_id"`
	AsPlayer  string `json:"as_player"`
}

// handleLoadSession restores a previously saved session's action history
// from the SaveStore and deterministically re-derives its battle.State via
// replay.Replay, then joins client to the restored session.
func (h *Hub) handleLoadSession(client *Client, msg Message) {
	var payload loadSessionPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		client.send <- encodeError(err)
		return
	}

	data, err := h.store.Load(context.Background(), payload.SessionID)
	if err != nil {
		client.send <- encodeError(err)
		return
	}
	var saved savedSession
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&saved); err != nil {
		client.send <- encodeError(err)
		return
	}

	decks := map[identifiers.PlayerName]battle.Deck{
		identifiers.PlayerOne: deckFrom(saved.DeckOne),
		identifiers.PlayerTwo: deckFrom(saved.DeckTwo),
	}
	opts := battle.SetupOptions{VictoryPointThreshold: identifiers.Points(saved.VictoryThreshold), Logger: h.logger}
	session, err := Restore(payload.SessionID, h.tabula, saved.Seed, decks, opts, saved.Records)
	if err != nil {
		client.send <- encodeError(err)
		return
	}

	h.registry.Add(session)
	h.recorder.Resume(payload.SessionID, saved.Records)
	h.joinSession(client, payload.SessionID, payload.AsPlayer)
	h.sendView(client)
}

func namesFrom(deck battle.Deck) []string {
	out := make([]string, len(deck.Cards))
	for i, c := range deck.Cards {
		out[i] = string(c)
	}
	return out
}

func (h *Hub) resolveClient(client *Client) (*Session, identifiers.PlayerName, bool) {
	if client.sessionID == "" {
		client.send <- encodeError(fmt.Errorf("api: client has not joined a session"))
		return nil, 0, false
	}
	session, ok := h.registry.Get(client.sessionID)
	if !ok {
		client.send <- encodeError(fmt.Errorf("api: no such session %q", client.sessionID))
		return nil, 0, false
	}
	player, err := parsePlayerWire(client.player)
	if err != nil {
		client.send <- encodeError(err)
		return nil, 0, false
	}
	return session, player, true
}
