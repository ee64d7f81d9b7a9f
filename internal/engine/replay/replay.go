// Package replay implements §8's "Deterministic replay": an append-only
// log of every action submitted to one battle, plus a function that
// re-derives the exact same battle.State by re-running Setup and
// re-applying each recorded action in order. Adapted from the teacher's
// internal/game/replay.go Replay/ReplayRecorder, with the teacher's
// full-state-snapshot-per-step model (gameStateSnapshot, Next/Previous
// stepping) dropped in favor of recording actions, not states: replaying
// means re-simulating from the same seed, not paging through saved
// snapshots, since battle.State is fully determined by its seed and the
// action sequence (§6.3).
package replay

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/dreamtides/battlecore/internal/engine/battle"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// ActionRecord is one submitted action, tagged with the player who
// submitted it.
type ActionRecord struct {
	Player identifiers.PlayerName
	Action battle.Action
}

// Log is the append-only action history of one battle.
type Log struct {
	SessionID string

	mu      sync.RWMutex
	records []ActionRecord
}

func NewLog(sessionID string) *Log {
	return &Log{SessionID: sessionID}
}

// Append records one action. Callers append only actions that Apply
// already accepted; a rejected action never enters the log.
func (l *Log) Append(player identifiers.PlayerName, action battle.Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, ActionRecord{Player: player, Action: action})
}

// Records returns a copy of the recorded actions in submission order.
func (l *Log) Records() []ActionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ActionRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// logMetadata precedes the record stream in a saved replay file.
type logMetadata struct {
	SessionID   string
	Version     int
	RecordCount int
}

const replayFormatVersion = 1

// SaveToFile gzip+gob-encodes l into <directory>/<SessionID>.replay,
// mirroring the teacher's Replay.SaveToFile.
func (l *Log) SaveToFile(directory string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("replay: creating %s: %w", directory, err)
	}

	filename := filepath.Join(directory, l.SessionID+".replay")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("replay: creating %s: %w", filename, err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := gob.NewEncoder(gzipWriter)
	metadata := logMetadata{SessionID: l.SessionID, Version: replayFormatVersion, RecordCount: len(l.records)}
	if err := encoder.Encode(&metadata); err != nil {
		return fmt.Errorf("replay: encoding metadata: %w", err)
	}
	for i, record := range l.records {
		if err := encoder.Encode(&record); err != nil {
			return fmt.Errorf("replay: encoding record %d: %w", i, err)
		}
	}
	return nil
}

// LoadLogFromFile is the inverse of SaveToFile.
func LoadLogFromFile(directory, sessionID string) (*Log, error) {
	filename := filepath.Join(directory, sessionID+".replay")
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("replay: opening %s: %w", filename, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("replay: reading gzip header: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)
	var metadata logMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("replay: decoding metadata: %w", err)
	}
	if metadata.Version != replayFormatVersion {
		return nil, fmt.Errorf("replay: unsupported format version %d", metadata.Version)
	}

	log := NewLog(metadata.SessionID)
	for i := 0; i < metadata.RecordCount; i++ {
		var record ActionRecord
		if err := decoder.Decode(&record); err != nil {
			return nil, fmt.Errorf("replay: decoding record %d: %w", i, err)
		}
		log.records = append(log.records, record)
	}
	return log, nil
}

// Replay re-derives the battle.State that results from submitting every
// record in order to a freshly set-up battle with the same tabula, seed,
// decks and options. Because Setup seeds its shuffle from the battle's own
// RNG (§6.3) and Apply is a pure function of (State, player, action), the
// same (seed, decks, records) always reaches the same resulting state.
func Replay(tabula *content.Tabula, seed uint64, decks map[identifiers.PlayerName]battle.Deck, opts battle.SetupOptions, records []ActionRecord) (*battle.State, error) {
	state := battle.Setup(tabula, seed, decks, opts)
	for i, record := range records {
		if err := battle.Apply(state, record.Player, record.Action); err != nil {
			return nil, fmt.Errorf("replay: record %d (%s): %w", i, record.Action, err)
		}
	}
	return state, nil
}

// Recorder owns one Log per in-progress session and persists them through
// a directory on disk, mirroring the teacher's ReplayRecorder.
type Recorder struct {
	logger  *zap.Logger
	saveDir string

	mu      sync.Mutex
	logs    map[string]*Log
	enabled map[string]bool
}

func NewRecorder(logger *zap.Logger, saveDir string) *Recorder {
	return &Recorder{logger: logger, saveDir: saveDir, logs: map[string]*Log{}, enabled: map[string]bool{}}
}

func (r *Recorder) StartRecording(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[sessionID] = NewLog(sessionID)
	r.enabled[sessionID] = true
}

// Resume starts recording sessionID with a log pre-seeded from records,
// used when a session is restored from a previously saved action history
// instead of created fresh.
func (r *Recorder) Resume(sessionID string, records []ActionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log := NewLog(sessionID)
	log.records = append(log.records, records...)
	r.logs[sessionID] = log
	r.enabled[sessionID] = true
}

func (r *Recorder) StopRecording(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[sessionID] = false
}

// Record appends to sessionID's log if recording is enabled for it; a
// no-op otherwise, so callers don't need to check IsRecording themselves.
func (r *Recorder) Record(sessionID string, player identifiers.PlayerName, action battle.Action) {
	r.mu.Lock()
	log, enabled := r.logs[sessionID], r.enabled[sessionID]
	r.mu.Unlock()

	if !enabled || log == nil {
		return
	}
	log.Append(player, action)
	if r.logger != nil {
		r.logger.Debug("recorded action", zap.String("session_id", sessionID), zap.Int("record_count", log.Len()))
	}
}

func (r *Recorder) GetLog(sessionID string) (*Log, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log, ok := r.logs[sessionID]
	return log, ok
}

// SaveLog persists sessionID's log to disk and drops it from memory.
func (r *Recorder) SaveLog(sessionID string) error {
	r.mu.Lock()
	log, ok := r.logs[sessionID]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("replay: no log for session %s", sessionID)
	}
	delete(r.logs, sessionID)
	delete(r.enabled, sessionID)
	r.mu.Unlock()

	if err := log.SaveToFile(r.saveDir); err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.Info("saved replay log", zap.String("session_id", sessionID), zap.Int("record_count", log.Len()))
	}
	return nil
}

func (r *Recorder) LoadLog(sessionID string) (*Log, error) {
	log, err := LoadLogFromFile(r.saveDir, sessionID)
	if err != nil {
		return nil, err
	}
	if r.logger != nil {
		r.logger.Info("loaded replay log", zap.String("session_id", sessionID), zap.Int("record_count", log.Len()))
	}
	return log, nil
}

func (r *Recorder) ClearLog(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.logs, sessionID)
	delete(r.enabled, sessionID)
}

func (r *Recorder) IsRecording(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled[sessionID]
}
