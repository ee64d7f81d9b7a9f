package battlerules

import (
	"sync"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// StackItemKind distinguishes the three things that can occupy the stack.
type StackItemKind int

const (
	StackItemCard StackItemKind = iota
	StackItemActivatedAbility
	StackItemTriggeredAbility
)

// StackItem is one entry on the stack: a played card, an activated ability,
// or a triggered ability. It is pure data (no closures) so that it can be
// deep-copied whenever the owning battle state is cloned; the battle
// package's resolver looks SourceID + Ability up against the content tabula
// at resolution time rather than the stack carrying its own resolution
// logic.
type StackItem struct {
	ID          identifiers.CardId
	Controller  identifiers.PlayerName
	Kind        StackItemKind
	Description string
	SourceID    identifiers.CardId
	Ability     identifiers.AbilityNumber
	Targets     []identifiers.CardId

	// BaseCard is set only for the synthetic delayed-materialize stack item
	// MaterializeCharacterAtEndOfTurn registers; see
	// battle.resolveAbilityStackItem for how Ability's sentinel value
	// selects this path.
	BaseCard identifiers.BaseCardId
}

// StackManager is a mutex-protected LIFO of StackItem, mirroring the
// teacher's rules.StackManager.
type StackManager struct {
	mu    sync.Mutex
	items []StackItem
}

func NewStackManager() *StackManager {
	return &StackManager{}
}

func (m *StackManager) Push(item StackItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
}

// Pop removes and returns the topmost (most recently pushed) item.
func (m *StackManager) Pop() (StackItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return StackItem{}, false
	}
	last := len(m.items) - 1
	item := m.items[last]
	m.items = m.items[:last]
	return item, true
}

// Peek returns the topmost item without removing it.
func (m *StackManager) Peek() (StackItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return StackItem{}, false
	}
	return m.items[len(m.items)-1], true
}

// SetTargets records the chosen targets against the stack item identified
// by id, wherever it currently sits (cast-time target gathering completes
// after the item has already been pushed).
func (m *StackManager) SetTargets(id identifiers.CardId, targets []identifiers.CardId) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Targets = targets
			return
		}
	}
}

// Remove removes the item with the given ID, wherever it sits in the stack.
// Used by Counterspell.
func (m *StackManager) Remove(id identifiers.CardId) (StackItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return item, true
		}
	}
	return StackItem{}, false
}

// List returns a copy of the stack, bottom item first, top item last.
func (m *StackManager) List() []StackItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]StackItem, len(m.items))
	copy(out, m.items)
	return out
}

func (m *StackManager) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items) == 0
}

func (m *StackManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
