package battlerules

import (
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// Zone is the set of places a card can be. Declared here rather than
// imported from the zones package, so battlerules depends only on
// identifiers.
type Zone int

const (
	ZoneDeck Zone = iota
	ZoneHand
	ZoneBattlefield
	ZoneVoid
	ZoneStack
	ZoneBanished
)

// StateAccessor is the minimal read surface the legality checker needs,
// implemented by the battle aggregate. Mirrors the teacher's
// GameStateAccessor interface in internal/game/rules/legality.go.
type StateAccessor interface {
	CardZone(id identifiers.CardId) (Zone, identifiers.PlayerName, bool)
}

// LegalityResult mirrors the teacher's result shape: a boolean verdict plus
// a human-readable reason for rejection, used in debug-build panics and
// release-build errors alike (§7).
type LegalityResult struct {
	Legal   bool
	Reason  string
	Details map[string]string
}

func Legal() LegalityResult { return LegalityResult{Legal: true} }

func Illegal(reason string) LegalityResult {
	return LegalityResult{Legal: false, Reason: reason}
}

// LegalityChecker validates that a stack item is still legal to resolve
// immediately before it resolves (its controller and source must still
// exist in a valid zone; a card removed from the stack by a Counterspell
// between being pushed and being popped must not resolve).
type LegalityChecker struct {
	state StateAccessor
}

func NewLegalityChecker(state StateAccessor) *LegalityChecker {
	return &LegalityChecker{state: state}
}

func (c *LegalityChecker) CheckStackItemLegality(item StackItem) LegalityResult {
	zone, controller, ok := c.state.CardZone(item.ID)
	if !ok {
		return Illegal("source card no longer exists")
	}
	if zone != ZoneStack {
		return Illegal("source card is no longer on the stack")
	}
	if controller != item.Controller {
		return Illegal("source card controller changed")
	}
	return Legal()
}
