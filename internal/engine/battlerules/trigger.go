package battlerules

import (
	"sort"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/targeting"
)

// Trigger is an abstract event produced by a state mutation that may cause
// triggered abilities to fire (§4.5): materialized, dissolved, played,
// discarded, banished, end-of-turn, gained-energy, judgment-fired, and so
// on. Kind is the trigger-event discriminant from the ability IR
// (ability.TriggerEvent's tag, kept here as a plain string to avoid an
// import cycle between battlerules and ability).
type Trigger struct {
	Kind       string
	CardID     identifiers.CardId
	Controller identifiers.PlayerName
	Turn       identifiers.TurnId

	// N is the event-specific count a Condition may compare against, e.g.
	// how many characters this player has materialized so far this turn
	// (backing MaterializeNthThisTurn).
	N int

	// Ctx, when set, lets a long-lived Condition closure apply a card-shape
	// test against CardID using the live battle state at fire time via
	// targeting.Matches, without the Condition closure itself ever
	// capturing mutable state: Ctx is rebuilt fresh for every Trigger value
	// and never stored past the Handle call that uses it.
	Ctx targeting.Context
}

// AbilityTrigger binds a registered triggered ability to the predicate that
// decides whether a given Trigger matches it, and to a builder that
// constructs the StackItem to enqueue when it does.
type AbilityTrigger struct {
	SourceID   identifiers.CardId
	Controller identifiers.PlayerName
	Ability    identifiers.AbilityNumber
	Kind       string
	Condition  func(Trigger) bool
	Build      func(Trigger) StackItem
	OncePerTurn bool

	// FireOnce marks a trigger as firing at most once ever, rather than once
	// per turn: it shares hasFired with OncePerTurn but, unlike OncePerTurn,
	// ResetTurn never clears it back.
	FireOnce  bool
	firedTurn identifiers.TurnId
	hasFired  bool
}

// TriggerManager owns every registered triggered ability in the battle and
// matches incoming Trigger values against them.
type TriggerManager struct {
	triggers []*AbilityTrigger
}

func NewTriggerManager() *TriggerManager {
	return &TriggerManager{}
}

// Clone returns an independent copy; each AbilityTrigger is copied so that
// mutating a clone's "already fired" bit never affects the original (§5
// "state clone independence"). Condition/Build closures are shared by
// reference since they capture only immutable ability data, not state.
func (tm *TriggerManager) Clone() *TriggerManager {
	clone := NewTriggerManager()
	clone.triggers = make([]*AbilityTrigger, len(tm.triggers))
	for i, t := range tm.triggers {
		copied := *t
		clone.triggers[i] = &copied
	}
	return clone
}

func (tm *TriggerManager) Register(t *AbilityTrigger) {
	tm.triggers = append(tm.triggers, t)
}

func (tm *TriggerManager) Unregister(sourceID identifiers.CardId, ability identifiers.AbilityNumber) {
	out := tm.triggers[:0]
	for _, t := range tm.triggers {
		if t.SourceID == sourceID && t.Ability == ability {
			continue
		}
		out = append(out, t)
	}
	tm.triggers = out
}

// ResetTurn clears the once-per-turn "already fired" bit for every trigger,
// called at the end of every turn. FireOnce triggers are left alone: their
// "already fired" bit is permanent, not per-turn.
func (tm *TriggerManager) ResetTurn() {
	for _, t := range tm.triggers {
		if t.FireOnce {
			continue
		}
		t.hasFired = false
	}
}

// Handle matches event against every registered trigger and returns the
// StackItems to enqueue, ordered (controller, source card id, ability
// number) per §4.5's deterministic-ordering rule.
func (tm *TriggerManager) Handle(event Trigger, currentTurn identifiers.TurnId) []StackItem {
	type match struct {
		trigger *AbilityTrigger
		item    StackItem
	}
	var matches []match
	for _, t := range tm.triggers {
		if t.Kind != event.Kind {
			continue
		}
		if t.OncePerTurn && t.hasFired && t.firedTurn == currentTurn {
			continue
		}
		if t.FireOnce && t.hasFired {
			continue
		}
		if t.Condition != nil && !t.Condition(event) {
			continue
		}
		matches = append(matches, match{trigger: t, item: t.Build(event)})
		if t.OncePerTurn {
			t.hasFired = true
			t.firedTurn = currentTurn
		}
		if t.FireOnce {
			t.hasFired = true
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].trigger, matches[j].trigger
		if a.Controller != b.Controller {
			return a.Controller < b.Controller
		}
		if a.SourceID != b.SourceID {
			return a.SourceID < b.SourceID
		}
		return a.Ability < b.Ability
	})

	items := make([]StackItem, 0, len(matches))
	for _, m := range matches {
		items = append(items, m.item)
	}
	return items
}
