package battle

import (
	"fmt"

	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/battlerules"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/zones"
)

// resolveTopOfStack pops and resolves the stack's topmost item (§4.3 "two
// consecutive passes resolve the topmost stack item").
func resolveTopOfStack(s *State) error {
	item, ok := s.Stack.Pop()
	if !ok {
		return nil
	}
	switch item.Kind {
	case battlerules.StackItemCard:
		return resolveCardStackItem(s, item)
	case battlerules.StackItemTriggeredAbility, battlerules.StackItemActivatedAbility:
		return resolveAbilityStackItem(s, item)
	default:
		return fmt.Errorf("battle: unhandled stack item kind %d", item.Kind)
	}
}

func resolveCardStackItem(s *State, item battlerules.StackItem) error {
	def, ok := cardDefinition(s, item.ID)
	if !ok {
		return fmt.Errorf("battle: resolving unknown card %s", item.ID)
	}

	if def.CardType == content.CardTypeCharacter {
		s.Zones.MoveCard(item.Controller, item.ID, zones.ZoneStack, zones.ZoneBattlefield)
		registerCardTriggers(s, item.Controller, item.ID, def)
		fireMaterialize(s, item.Controller, item.ID)
		return nil
	}

	eventAbility, ok := findEventAbility(def)
	if !ok {
		s.Zones.MoveCard(item.Controller, item.ID, zones.ZoneStack, zones.ZoneVoid)
		return nil
	}

	controller, id := item.Controller, item.ID
	return executeEffect(s, controller, id, item.Targets, eventAbility.Event, func(st *State) error {
		st.Zones.MoveCard(controller, id, zones.ZoneStack, zones.ZoneVoid)
		return nil
	})
}

func resolveAbilityStackItem(s *State, item battlerules.StackItem) error {
	if item.Ability == delayedMaterializeAbility {
		materializeNewCharacter(s, item.Controller, item.BaseCard)
		return nil
	}

	def, ok := cardDefinition(s, item.SourceID)
	if !ok {
		return fmt.Errorf("battle: resolving ability on unknown source %s", item.SourceID)
	}
	for _, a := range def.Abilities {
		if a.Number != item.Ability {
			continue
		}
		var effect ability.Effect
		switch a.Kind {
		case ability.AbilityTriggered:
			effect = a.TriggeredEffect
		case ability.AbilityActivated:
			effect = a.ActivatedEffect
		default:
			return fmt.Errorf("battle: ability %d on %s is not resolvable from the stack", item.Ability, item.SourceID)
		}
		return executeEffect(s, item.Controller, item.SourceID, item.Targets, effect, func(*State) error { return nil })
	}
	return fmt.Errorf("battle: source %s has no ability numbered %d", item.SourceID, item.Ability)
}

func findEventAbility(def *content.CardDefinition) (ability.Ability, bool) {
	for _, a := range def.Abilities {
		if a.Kind == ability.AbilityEvent {
			return a, true
		}
	}
	return ability.Ability{}, false
}

// runAutomaticPhase performs the fixed, non-interactive effects of a
// non-Main phase (§4.3): Judgment fires judgment triggers, Dreamwell
// reveals and resolves the active player's next dreamwell card, Draw gives
// them one card.
func runAutomaticPhase(s *State, phase battlerules.Phase) {
	switch phase {
	case battlerules.PhaseJudgment:
		runJudgmentPhase(s)
	case battlerules.PhaseDreamwell:
		runDreamwellPhase(s)
	case battlerules.PhaseDraw:
		drawCards(s, s.Turn.ActivePlayer(), 1)
	}
}

func runJudgmentPhase(s *State) {
	active := s.Turn.ActivePlayer()
	fire(s, battlerules.Trigger{
		Kind:       triggerKindName(ability.TriggerJudgment),
		Controller: active,
		Turn:       s.Turn.TurnID(),
		Ctx:        triggerContext(s),
	})
	// Judgment-phase triggers resolve immediately rather than waiting for a
	// priority round: there is no Main-phase counter-play window inside a
	// non-Main phase.
	for !s.Stack.IsEmpty() {
		if err := resolveTopOfStack(s); err != nil {
			s.logf().Error("judgment phase resolution failed")
			return
		}
	}
}

func runDreamwellPhase(s *State) {
	active := s.Turn.ActivePlayer()
	player := s.Players[active]
	if player.DreamwellIndex >= len(s.Tabula.DreamwellOrder) {
		return
	}
	baseID := s.Tabula.DreamwellOrder[player.DreamwellIndex]
	player.DreamwellIndex++
	dw, ok := s.Tabula.Dreamwell[baseID]
	if !ok {
		return
	}

	player.Energy = player.Energy.Add(dw.EnergyProduced)
	player.ProducedEnergy = player.ProducedEnergy.Add(1)

	for _, a := range dw.Abilities {
		if a.Kind != ability.AbilityEvent {
			continue
		}
		if err := executeEffect(s, active, 0, nil, a.Event, func(*State) error { return nil }); err != nil {
			s.logf().Error("dreamwell ability failed")
		}
	}
}
