package api

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dreamtides/battlecore/internal/engine/battle"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/replay"
)

// Session is one in-progress battle plus the mutex that serializes access
// to it: the engine's battle.State is not itself safe for concurrent
// Apply calls from two clients, so every read or mutation of State goes
// through Session's lock (mirroring the teacher's Hub.mu guarding its
// games map, generalized from "one map of demo GameState" to "one mutex
// per battle").
type Session struct {
	ID string

	// seed, decks and opts are retained (not just the resulting state) so
	// the session can be reconstructed deterministically from its replay
	// log alone, per replay.Replay.
	seed  uint64
	decks map[identifiers.PlayerName]battle.Deck
	opts  battle.SetupOptions

	mu    sync.Mutex
	state *battle.State
}

// NewSession builds a fresh session around a freshly set-up battle.
func NewSession(id string, tabula *content.Tabula, seed uint64, decks map[identifiers.PlayerName]battle.Deck, opts battle.SetupOptions) *Session {
	return &Session{
		ID:    id,
		seed:  seed,
		decks: decks,
		opts:  opts,
		state: battle.Setup(tabula, seed, decks, opts),
	}
}

// Restore rebuilds a session by deterministically replaying records onto
// a fresh Setup, per replay.Replay (§8 "Deterministic replay").
func Restore(id string, tabula *content.Tabula, seed uint64, decks map[identifiers.PlayerName]battle.Deck, opts battle.SetupOptions, records []replay.ActionRecord) (*Session, error) {
	state, err := replay.Replay(tabula, seed, decks, opts, records)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, seed: seed, decks: decks, opts: opts, state: state}, nil
}

// Apply validates and applies action on behalf of player, returning the
// error Apply produced (typed per §7, e.g. *engineerr.IllegalActionError)
// unchanged so callers can inspect it with errors.As.
func (s *Session) Apply(player identifiers.PlayerName, action battle.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return battle.Apply(s.state, player, action)
}

// View builds the hidden-info projection of the session's current state
// for requestingPlayer.
func (s *Session) View(requestingPlayer identifiers.PlayerName) battle.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return battle.BuildView(s.state, requestingPlayer)
}

// Seed and Decks expose the parameters Restore needs to reconstruct this
// session elsewhere (e.g. from a save-store payload); they never change
// after NewSession, so no locking is needed to read them.
func (s *Session) Seed() uint64                                    { return s.seed }
func (s *Session) Decks() map[identifiers.PlayerName]battle.Deck   { return s.decks }
func (s *Session) Options() battle.SetupOptions                    { return s.opts }

// SessionRegistry owns every live Session, keyed by ID, logging through
// the same *zap.Logger the rest of the engine uses.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	logger   *zap.Logger
}

func NewSessionRegistry(logger *zap.Logger) *SessionRegistry {
	return &SessionRegistry{sessions: map[string]*Session{}, logger: logger}
}

func (r *SessionRegistry) Add(session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
}

func (r *SessionRegistry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	return session, ok
}

func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
