package battle

import (
	"fmt"

	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/battlerules"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/zones"
	"github.com/dreamtides/battlecore/internal/engineerr"
)

// DebugAssertions, when true, makes Apply panic on an illegal action instead
// of returning an *engineerr.IllegalActionError, per §7's "debug builds
// panic, release builds return a typed error" split. Off by default; tests
// that want the stricter behavior set it explicitly.
var DebugAssertions = false

// Apply validates action against Enumerate(s, player) and, if legal,
// mutates s to reflect it (§4.3). It never panics in the default
// configuration; an illegal action yields a typed, wrapped error naming the
// permitted set instead.
func Apply(s *State, player identifiers.PlayerName, action Action) error {
	legal := Enumerate(s, player)
	if !legal.Contains(action) {
		err := &engineerr.IllegalActionError{Action: action, Permitted: legal}
		if DebugAssertions {
			panic(err)
		}
		return err
	}

	s.Animations = nil
	if action.Kind != ActionPassPriority {
		s.consecutivePasses = 0
	}

	switch action.Kind {
	case ActionPlayCardFromHand:
		return applyPlayCardFromHand(s, player, action.HandCard)
	case ActionActivateAbility:
		return applyActivateAbility(s, player, action.Character, action.Ability)
	case ActionPassPriority:
		return applyPassPriority(s, player)
	case ActionEndTurn:
		return applyEndTurn(s, player)
	case ActionStartNextTurn:
		return applyStartNextTurn(s, player)
	case ActionSelectCharacterTarget:
		return applyPromptAnswer(s, player, PromptAnswer{Character: action.Character})
	case ActionSelectStackCardTarget:
		return applyPromptAnswer(s, player, PromptAnswer{StackCard: action.StackCard})
	case ActionSelectVoidCardTarget:
		return applyPromptAnswer(s, player, PromptAnswer{VoidCard: action.VoidCard})
	case ActionSelectHandCardTarget:
		return applyPromptAnswer(s, player, PromptAnswer{HandCard: action.HandCard})
	case ActionSelectPromptChoice:
		return applyPromptAnswer(s, player, PromptAnswer{Choice: action.ChoiceIndex})
	case ActionSelectEnergyAdditionalCost:
		return applyPromptAnswer(s, player, PromptAnswer{Energy: action.Energy})
	default:
		return fmt.Errorf("battle: unhandled action kind %d", action.Kind)
	}
}

// applyPromptAnswer resumes the pending prompt's continuation with answer.
// Enumerate already restricted which Action variants are legal while a
// prompt is pending, so the prompt popped here is always the one the answer
// was validated against.
func applyPromptAnswer(s *State, player identifiers.PlayerName, answer PromptAnswer) error {
	prompt := s.popPrompt()
	return prompt.Continuation(s, answer)
}

// applyPlayCardFromHand pays the card's energy cost, moves it from hand to
// the stack, then gathers any cast-time targets its event ability needs
// before recording them against the new stack item (§4.3). Character cards
// have no event effect; they simply enter the stack and later resolve by
// materializing (resolveCardStackItem).
func applyPlayCardFromHand(s *State, player identifiers.PlayerName, handCard identifiers.HandCardId) error {
	id := handCard.CardId()
	def, ok := cardDefinition(s, id)
	if !ok {
		return fmt.Errorf("battle: playing unknown card %s", id)
	}

	cost := identifiers.Energy(0)
	if def.EnergyCost != nil {
		cost = *def.EnergyCost
	}
	s.Players[player].Energy = s.Players[player].Energy.Sub(cost)

	s.Zones.MoveCard(player, id, zones.ZoneHand, zones.ZoneStack)
	s.Stack.Push(battlerules.StackItem{
		ID:          id,
		Controller:  player,
		Kind:        battlerules.StackItemCard,
		Description: fmt.Sprintf("card %s", id),
		SourceID:    id,
	})
	fireSimple(s, ability.TriggerPlayed, player, id)

	eventAbility, hasEvent := findEventAbility(def)
	if !hasEvent {
		return nil
	}
	specs := requiredTargetSpecs(eventAbility.Event)
	return gatherTargetsSeq(s, player, id, specs, nil, func(st *State, targets []identifiers.CardId) error {
		recordStackTargets(st, id, targets)
		return nil
	})
}

// applyActivateAbility pays an activated ability's costs, gathers the
// targets its effect needs, and pushes it as a stack item (§4.3).
func applyActivateAbility(s *State, player identifiers.PlayerName, character identifiers.CharacterId, number identifiers.AbilityNumber) error {
	sourceID := character.CardId()
	def, ok := cardDefinition(s, sourceID)
	if !ok {
		return fmt.Errorf("battle: activating ability on unknown character %s", sourceID)
	}
	activated, found := findAbilityNumbered(def, ability.AbilityActivated, number)
	if !found {
		return fmt.Errorf("battle: character %s has no activated ability numbered %d", sourceID, number)
	}

	if !activated.IsMulti {
		s.Zones.MarkAbilityUsed(sourceID, number)
	}

	return payCosts(s, player, sourceID, activated.Costs, func(st *State) error {
		specs := requiredTargetSpecs(activated.ActivatedEffect)
		return gatherTargetsSeq(st, player, sourceID, specs, nil, func(st2 *State, targets []identifiers.CardId) error {
			st2.Stack.Push(battlerules.StackItem{
				ID:          sourceID,
				Controller:  player,
				Kind:        battlerules.StackItemActivatedAbility,
				Description: fmt.Sprintf("activated ability %d on %s", number, sourceID),
				SourceID:    sourceID,
				Ability:     number,
				Targets:     targets,
			})
			return nil
		})
	})
}

func findAbilityNumbered(def *content.CardDefinition, kind ability.AbilityKind, number identifiers.AbilityNumber) (ability.Ability, bool) {
	for _, a := range def.Abilities {
		if a.Kind == kind && a.Number == number {
			return a, true
		}
	}
	return ability.Ability{}, false
}

// recordStackTargets stamps targets onto both the zone store's stack-card
// state (read by the view builder) and the live battlerules.StackItem the
// resolver will eventually pop (resolveCardStackItem reads item.Targets
// directly rather than re-querying the zone store).
func recordStackTargets(s *State, id identifiers.CardId, targets []identifiers.CardId) {
	s.Zones.SetStackTargets(id, targets)
	s.Stack.SetTargets(id, targets)
}

// gatherTargetsSeq resolves specs in order: for each one it prompts once
// per required target (decrementing Count, excluding already-chosen
// candidates), then invokes onComplete with every chosen id across all
// specs, in spec order.
func gatherTargetsSeq(s *State, controller identifiers.PlayerName, source identifiers.CardId, specs []targetSpec, acc []identifiers.CardId, onComplete func(*State, []identifiers.CardId) error) error {
	if len(specs) == 0 {
		return onComplete(s, acc)
	}
	spec := specs[0]
	rest := specs[1:]
	candidates := candidatesFor(s, controller, spec)
	count := spec.Count
	if count < 1 {
		count = 1
	}

	promptKind := PromptSelectCharacter
	switch spec.Pool {
	case poolVoid:
		promptKind = PromptSelectVoidCard
	case poolStack:
		promptKind = PromptSelectStackCard
	}

	var chosen []identifiers.CardId
	return selectCandidatesSeq(s, controller, source, candidates, count, promptKind,
		func(_ *State, id identifiers.CardId) { chosen = append(chosen, id) },
		func(st *State) error {
			combined := append(append([]identifiers.CardId{}, acc...), chosen...)
			return gatherTargetsSeq(st, controller, source, rest, combined, onComplete)
		})
}

// applyPassPriority flips priority to the other player; two consecutive
// passes resolve the top of the stack (§4.3).
func applyPassPriority(s *State, player identifiers.PlayerName) error {
	s.consecutivePasses++
	s.Turn.SetPriority(player.Opponent())
	if s.consecutivePasses < 2 {
		return nil
	}
	s.consecutivePasses = 0
	if err := resolveTopOfStack(s); err != nil {
		return err
	}
	s.Turn.SetPriority(s.Turn.ActivePlayer())
	return nil
}

// applyEndTurn skips the active player's turn directly to Ending, fires
// their end-of-turn triggers, and resets per-turn bookkeeping. Priority
// passes to the opponent for a final Ending-phase window before either
// player calls StartNextTurn (§4.3).
func applyEndTurn(s *State, player identifiers.PlayerName) error {
	s.consecutivePasses = 0
	s.Turn.SkipToEnding()
	fireSimple(s, ability.TriggerEndOfYourTurn, player, 0)
	for !s.Stack.IsEmpty() {
		if err := resolveTopOfStack(s); err != nil {
			return err
		}
	}
	for _, counters := range s.TurnCounters {
		counters.MaterializedThisTurn = 0
	}
	s.Zones.ResetAbilityUsage()
	s.Triggers.ResetTurn()
	s.Turn.SetPriority(player.Opponent())
	return nil
}

// applyStartNextTurn advances through every automatic phase (running each
// one's fixed effects) until the new active player reaches Main or the
// battle ends.
func applyStartNextTurn(s *State, player identifiers.PlayerName) error {
	for {
		phase := s.Turn.AdvancePhase()
		if phase == battlerules.PhaseGameOver {
			return nil
		}
		if phase == battlerules.PhaseMain {
			return nil
		}
		runAutomaticPhase(s, phase)
		if s.IsGameOver() {
			return nil
		}
	}
}
