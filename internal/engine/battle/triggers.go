package battle

import (
	"fmt"

	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/battlerules"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/targeting"
)

// triggerKindName collapses the authored TriggerEventKind space down to the
// small set of base event kinds the battlerules stack fires, per §4.5.
// Materialized/MaterializeMatching/MaterializeNthThisTurn all share the
// "Materialize" base kind; which one a registered ability actually is gets
// decided by its Condition closure instead of by Kind-string equality, since
// all three react to the same underlying game event.
func triggerKindName(k ability.TriggerEventKind) string {
	switch k {
	case ability.TriggerMaterialized, ability.TriggerMaterializeMatching, ability.TriggerMaterializeNthThisTurn:
		return "Materialize"
	case ability.TriggerDissolved:
		return "Dissolved"
	case ability.TriggerPlayed:
		return "Played"
	case ability.TriggerDiscarded:
		return "Discarded"
	case ability.TriggerBanished:
		return "Banished"
	case ability.TriggerJudgment:
		return "Judgment"
	case ability.TriggerEndOfYourTurn:
		return "EndOfYourTurn"
	case ability.TriggerGainedEnergy:
		return "GainedEnergy"
	default:
		return "Unknown"
	}
}

// registerCardTriggers registers every triggered ability on def as the card
// identified by sourceID enters the battlefield (§4.5). Unregistered when
// the card leaves, via unregisterCardTriggers.
func registerCardTriggers(s *State, owner identifiers.PlayerName, sourceID identifiers.CardId, def *content.CardDefinition) {
	for _, a := range def.Abilities {
		if a.Kind != ability.AbilityTriggered {
			continue
		}
		kinds := []ability.TriggerEventKind{a.Trigger.Kind}
		if a.Trigger.Kind == ability.TriggerKeywords {
			kinds = a.Trigger.Keywords
		}
		for _, k := range kinds {
			s.Triggers.Register(&battlerules.AbilityTrigger{
				SourceID:    sourceID,
				Controller:  owner,
				Ability:     a.Number,
				Kind:        triggerKindName(k),
				Condition:   buildTriggerCondition(k, sourceID, owner, a.Trigger),
				Build:       buildTriggerBuilder(sourceID, owner, a.Number),
				OncePerTurn: a.OncePerTurn,
			})
		}
	}
}

func unregisterCardTriggers(s *State, def *content.CardDefinition, sourceID identifiers.CardId) {
	for _, a := range def.Abilities {
		if a.Kind == ability.AbilityTriggered {
			s.Triggers.Unregister(sourceID, a.Number)
		}
	}
}

func buildTriggerCondition(k ability.TriggerEventKind, sourceID identifiers.CardId, owner identifiers.PlayerName, trig ability.TriggerEvent) func(battlerules.Trigger) bool {
	switch k {
	case ability.TriggerMaterialized:
		return func(e battlerules.Trigger) bool { return e.CardID == sourceID }
	case ability.TriggerMaterializeMatching:
		predicate := trig.Predicate
		return func(e battlerules.Trigger) bool {
			return e.Controller == owner && targeting.Matches(e.Ctx, e.Controller, e.CardID, predicate.Card)
		}
	case ability.TriggerMaterializeNthThisTurn:
		n := trig.N
		return func(e battlerules.Trigger) bool { return e.Controller == owner && e.N == n }
	case ability.TriggerEndOfYourTurn, ability.TriggerGainedEnergy:
		return func(e battlerules.Trigger) bool { return e.Controller == owner }
	case ability.TriggerJudgment:
		return func(e battlerules.Trigger) bool { return true }
	default:
		// Dissolved, Played, Discarded, Banished: the card's own ability
		// reacting to itself leaving a zone.
		return func(e battlerules.Trigger) bool { return e.CardID == sourceID }
	}
}

func buildTriggerBuilder(sourceID identifiers.CardId, owner identifiers.PlayerName, number identifiers.AbilityNumber) func(battlerules.Trigger) battlerules.StackItem {
	return func(e battlerules.Trigger) battlerules.StackItem {
		return battlerules.StackItem{
			ID:          e.CardID,
			Controller:  owner,
			Kind:        battlerules.StackItemTriggeredAbility,
			Description: fmt.Sprintf("triggered ability %d on %s", number, sourceID),
			SourceID:    sourceID,
			Ability:     number,
		}
	}
}

// fire matches event against every registered trigger and pushes the
// resulting StackItems, in the deterministic order Handle already produces
// (§4.5).
func fire(s *State, event battlerules.Trigger) {
	for _, item := range s.Triggers.Handle(event, s.Turn.TurnID()) {
		s.Stack.Push(item)
	}
}

func triggerContext(s *State) targeting.Context {
	return targetingContext(s)
}

// fireMaterialize fires the Materialize family of triggers for a character
// that just entered owner's battlefield, advancing the per-turn
// materialize counter that MaterializeNthThisTurn compares against (§9 open
// question (c)).
func fireMaterialize(s *State, owner identifiers.PlayerName, cardID identifiers.CardId) {
	counters := s.TurnCounters[owner]
	counters.MaterializedThisTurn++
	fire(s, battlerules.Trigger{
		Kind:       "Materialize",
		CardID:     cardID,
		Controller: owner,
		Turn:       s.Turn.TurnID(),
		N:          counters.MaterializedThisTurn,
		Ctx:        triggerContext(s),
	})
}

func fireSimple(s *State, kind ability.TriggerEventKind, controller identifiers.PlayerName, cardID identifiers.CardId) {
	fire(s, battlerules.Trigger{
		Kind:       triggerKindName(kind),
		CardID:     cardID,
		Controller: controller,
		Turn:       s.Turn.TurnID(),
		Ctx:        triggerContext(s),
	})
}
