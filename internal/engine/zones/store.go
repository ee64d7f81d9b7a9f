// Package zones implements the per-player, dense bit-set backed zone store
// described in §4.1: the single source of truth for which zone each card in
// a battle currently occupies. Grounded on
// rules_engine/src/battle_state/src/battle/all_cards.rs (original_source).
package zones

import (
	"fmt"
	"sort"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// Zone is the set of places a card can be.
type Zone int

const (
	ZoneDeck Zone = iota
	ZoneHand
	ZoneBattlefield
	ZoneVoid
	ZoneStack
	ZoneBanished
)

func (z Zone) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneBattlefield:
		return "Battlefield"
	case ZoneVoid:
		return "Void"
	case ZoneStack:
		return "Stack"
	case ZoneBanished:
		return "Banished"
	default:
		return fmt.Sprintf("Zone(%d)", int(z))
	}
}

// CharacterState is the per-character battlefield-scoped mutable state
// created with defaults the moment a card enters the battlefield (§3 "Entering
// the battlefield initializes character state to defaults").
type CharacterState struct {
	SparkModifier           identifiers.Spark
	MaterializedThisTurn    bool
	PreventDissolveThisTurn bool

	// UsedAbilitiesThisTurn tracks which of this character's non-multi
	// activated abilities have already been activated this turn (§3
	// "non-multi is once-per-turn"); cleared by ResetAbilityUsage.
	UsedAbilitiesThisTurn map[identifiers.AbilityNumber]bool
}

// StackCardState captures the controller and chosen targets of a card or
// ability currently on the stack (§3 "Entering the stack creates a
// StackCardState").
type StackCardState struct {
	Controller identifiers.PlayerName
	Targets    []identifiers.CardId
}

type playerZones struct {
	deck        *bitSet
	hand        *bitSet
	battlefield *bitSet
	void        *bitSet
	banished    *bitSet
}

func newPlayerZones() *playerZones {
	return &playerZones{
		deck:        newBitSet(),
		hand:        newBitSet(),
		battlefield: newBitSet(),
		void:        newBitSet(),
		banished:    newBitSet(),
	}
}

// Store is the all-cards index: per-card name, per-player zone bitsets, and
// the ordered (LIFO-appended) stack shared by both players.
type Store struct {
	names   map[identifiers.CardId]identifiers.BaseCardId
	players map[identifiers.PlayerName]*playerZones

	characterState map[identifiers.CardId]*CharacterState
	stack          []identifiers.CardId
	stackSet       *bitSet
	stackState     map[identifiers.CardId]*StackCardState

	nextID identifiers.CardId
}

// NewStore creates an empty zone store.
func NewStore() *Store {
	return &Store{
		names: make(map[identifiers.CardId]identifiers.BaseCardId),
		players: map[identifiers.PlayerName]*playerZones{
			identifiers.PlayerOne: newPlayerZones(),
			identifiers.PlayerTwo: newPlayerZones(),
		},
		characterState: make(map[identifiers.CardId]*CharacterState),
		stackSet:       newBitSet(),
		stackState:     make(map[identifiers.CardId]*StackCardState),
	}
}

// NewCard allocates a fresh dense CardId for a card belonging to owner,
// starting in the deck zone, and returns it.
func (s *Store) NewCard(owner identifiers.PlayerName, name identifiers.BaseCardId) identifiers.CardId {
	id := s.nextID
	s.nextID++
	s.names[id] = name
	s.players[owner].deck.Insert(int(id))
	return id
}

func (s *Store) Name(id identifiers.CardId) (identifiers.BaseCardId, bool) {
	name, ok := s.names[id]
	return name, ok
}

func (s *Store) zoneSet(owner identifiers.PlayerName, zone Zone) *bitSet {
	pz := s.players[owner]
	switch zone {
	case ZoneDeck:
		return pz.deck
	case ZoneHand:
		return pz.hand
	case ZoneBattlefield:
		return pz.battlefield
	case ZoneVoid:
		return pz.void
	case ZoneBanished:
		return pz.banished
	default:
		panic(fmt.Sprintf("zones: %s is not a per-player zone", zone))
	}
}

// ContainsCard reports whether id is currently in zone under owner. O(1).
func (s *Store) ContainsCard(owner identifiers.PlayerName, id identifiers.CardId, zone Zone) bool {
	if zone == ZoneStack {
		return s.stackSet.Contains(int(id))
	}
	return s.zoneSet(owner, zone).Contains(int(id))
}

// CardZone finds the current zone and controller of id by scanning every
// zone. Used for debug assertions and legality re-checks, not hot paths.
func (s *Store) CardZone(id identifiers.CardId) (Zone, identifiers.PlayerName, bool) {
	if s.stackSet.Contains(int(id)) {
		return ZoneStack, s.stackState[id].Controller, true
	}
	for player, pz := range s.players {
		for _, z := range []struct {
			zone Zone
			set  *bitSet
		}{
			{ZoneDeck, pz.deck}, {ZoneHand, pz.hand}, {ZoneBattlefield, pz.battlefield},
			{ZoneVoid, pz.void}, {ZoneBanished, pz.banished},
		} {
			if z.set.Contains(int(id)) {
				return z.zone, player, true
			}
		}
	}
	return 0, 0, false
}

// MoveCard removes id from its current zone under controller and inserts it
// into to, initializing any zone-entry state. Total: it is always legal to
// call, including from->to being the same zone (a no-op remove+add).
func (s *Store) MoveCard(controller identifiers.PlayerName, id identifiers.CardId, from, to Zone) {
	s.removeFromZone(controller, id, from)
	s.addToZone(controller, id, to)
}

func (s *Store) removeFromZone(controller identifiers.PlayerName, id identifiers.CardId, zone Zone) {
	if zone == ZoneStack {
		s.stackSet.Remove(int(id))
		delete(s.stackState, id)
		for i, stackID := range s.stack {
			if stackID == id {
				s.stack = append(s.stack[:i], s.stack[i+1:]...)
				break
			}
		}
		return
	}
	s.zoneSet(controller, zone).Remove(int(id))
	if zone == ZoneBattlefield {
		delete(s.characterState, id)
	}
}

func (s *Store) addToZone(controller identifiers.PlayerName, id identifiers.CardId, zone Zone) {
	if zone == ZoneStack {
		s.stackSet.Insert(int(id))
		s.stack = append(s.stack, id)
		s.stackState[id] = &StackCardState{Controller: controller}
		return
	}
	s.zoneSet(controller, zone).Insert(int(id))
	if zone == ZoneBattlefield {
		s.characterState[id] = &CharacterState{}
	}
}

// SetStackTargets records the chosen targets for a stack-resident card.
func (s *Store) SetStackTargets(id identifiers.CardId, targets []identifiers.CardId) {
	if st, ok := s.stackState[id]; ok {
		st.Targets = targets
	}
}

func (s *Store) StackState(id identifiers.CardId) (*StackCardState, bool) {
	st, ok := s.stackState[id]
	return st, ok
}

func (s *Store) CharacterState(id identifiers.CardId) (*CharacterState, bool) {
	cs, ok := s.characterState[id]
	return cs, ok
}

// MarkAbilityUsed records that ability has been activated this turn on id.
func (s *Store) MarkAbilityUsed(id identifiers.CardId, ability identifiers.AbilityNumber) {
	cs, ok := s.characterState[id]
	if !ok {
		return
	}
	if cs.UsedAbilitiesThisTurn == nil {
		cs.UsedAbilitiesThisTurn = make(map[identifiers.AbilityNumber]bool)
	}
	cs.UsedAbilitiesThisTurn[ability] = true
}

// AbilityUsedThisTurn reports whether ability has already been activated on
// id since the last ResetAbilityUsage.
func (s *Store) AbilityUsedThisTurn(id identifiers.CardId, ability identifiers.AbilityNumber) bool {
	cs, ok := s.characterState[id]
	if !ok {
		return false
	}
	return cs.UsedAbilitiesThisTurn[ability]
}

// ResetAbilityUsage clears every character's once-per-turn activation
// flags, called at end of turn.
func (s *Store) ResetAbilityUsage() {
	for _, cs := range s.characterState {
		cs.UsedAbilitiesThisTurn = nil
	}
}

// HasStack reports whether any card is on the stack.
func (s *Store) HasStack() bool { return !s.stackSet.IsEmpty() }

// TopOfStack returns the most recently pushed stack card.
func (s *Store) TopOfStack() (identifiers.CardId, bool) {
	if len(s.stack) == 0 {
		return 0, false
	}
	return s.stack[len(s.stack)-1], true
}

// HandIds returns every card in owner's hand, ascending CardId order.
func (s *Store) HandIds(owner identifiers.PlayerName) []identifiers.HandCardId {
	members := s.players[owner].hand.Members()
	out := make([]identifiers.HandCardId, len(members))
	for i, m := range members {
		out[i] = identifiers.HandCardId(m)
	}
	return out
}

// CharacterIds returns every character on owner's battlefield, ascending
// CardId order (also CharacterId order, since CharacterId is a plain
// CardId wrapper).
func (s *Store) CharacterIds(owner identifiers.PlayerName) []identifiers.CharacterId {
	members := s.players[owner].battlefield.Members()
	out := make([]identifiers.CharacterId, len(members))
	for i, m := range members {
		out[i] = identifiers.CharacterId(m)
	}
	return out
}

// VoidIds returns every card in owner's void, ascending CardId order.
func (s *Store) VoidIds(owner identifiers.PlayerName) []identifiers.VoidCardId {
	members := s.players[owner].void.Members()
	out := make([]identifiers.VoidCardId, len(members))
	for i, m := range members {
		out[i] = identifiers.VoidCardId(m)
	}
	return out
}

// BanishedIds returns every card in owner's banished zone, ascending CardId
// order. Banished has no zone-qualified ID wrapper of its own (no ability
// ever targets "a banished card"), so this returns plain CardIds.
func (s *Store) BanishedIds(owner identifiers.PlayerName) []identifiers.CardId {
	members := s.players[owner].banished.Members()
	out := make([]identifiers.CardId, len(members))
	for i, m := range members {
		out[i] = identifiers.CardId(m)
	}
	return out
}

// StackIds returns every card on the stack in push order (bottom first).
func (s *Store) StackIds() []identifiers.StackCardId {
	out := make([]identifiers.StackCardId, len(s.stack))
	for i, id := range s.stack {
		out[i] = identifiers.StackCardId(id)
	}
	return out
}

// DeckLen, BanishedLen report zone sizes without allocating a member slice.
func (s *Store) DeckLen(owner identifiers.PlayerName) int     { return s.players[owner].deck.Len() }
func (s *Store) HandLen(owner identifiers.PlayerName) int     { return s.players[owner].hand.Len() }
func (s *Store) BattlefieldLen(owner identifiers.PlayerName) int {
	return s.players[owner].battlefield.Len()
}
func (s *Store) VoidLen(owner identifiers.PlayerName) int     { return s.players[owner].void.Len() }
func (s *Store) BanishedLen(owner identifiers.PlayerName) int { return s.players[owner].banished.Len() }

// DeckTop returns the next card that would be drawn (smallest remaining
// CardId is treated as the top of a pre-shuffled deck; the shuffle itself
// permutes card identity assignment at battle setup, not zone order).
func (s *Store) DeckTop(owner identifiers.PlayerName) (identifiers.CardId, bool) {
	members := s.players[owner].deck.Members()
	if len(members) == 0 {
		return 0, false
	}
	sort.Ints(members)
	return identifiers.CardId(members[0]), true
}

// Clone returns a deep, independent copy suitable for AI rollouts (§5 "state
// clone independence"): mutating the clone must never be observable through
// the original.
func (s *Store) Clone() *Store {
	clone := NewStore()
	clone.nextID = s.nextID
	for id, name := range s.names {
		clone.names[id] = name
	}
	for player, pz := range s.players {
		clone.players[player] = &playerZones{
			deck:        pz.deck.Clone(),
			hand:        pz.hand.Clone(),
			battlefield: pz.battlefield.Clone(),
			void:        pz.void.Clone(),
			banished:    pz.banished.Clone(),
		}
	}
	for id, cs := range s.characterState {
		copied := *cs
		if cs.UsedAbilitiesThisTurn != nil {
			copied.UsedAbilitiesThisTurn = make(map[identifiers.AbilityNumber]bool, len(cs.UsedAbilitiesThisTurn))
			for k, v := range cs.UsedAbilitiesThisTurn {
				copied.UsedAbilitiesThisTurn[k] = v
			}
		}
		clone.characterState[id] = &copied
	}
	clone.stackSet = s.stackSet.Clone()
	clone.stack = append([]identifiers.CardId(nil), s.stack...)
	for id, st := range s.stackState {
		copied := *st
		copied.Targets = append([]identifiers.CardId(nil), st.Targets...)
		clone.stackState[id] = &copied
	}
	return clone
}
