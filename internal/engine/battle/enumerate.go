package battle

import (
	"sort"

	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/battlerules"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/targeting"
)

// Enumerate returns the legal-action set for player in the current state,
// per §4.2. Total and deterministic: never panics, always returns exactly
// one of the eleven LegalActionsKind variants.
func Enumerate(s *State, player identifiers.PlayerName) LegalActions {
	if s.IsGameOver() {
		return LegalActions{Kind: NoActionsGameOver}
	}

	if prompt, ok := s.PendingPrompt(); ok {
		if prompt.Owner != player {
			return LegalActions{Kind: NoActionsOpponentPrompt}
		}
		switch prompt.Kind {
		case PromptSelectCharacter:
			return selectCharacter(prompt.ValidCharacters)
		case PromptSelectStackCard:
			return selectStackCard(prompt.ValidStackCards)
		case PromptSelectVoidCard:
			return selectVoidCard(prompt.ValidVoidCards)
		case PromptSelectHandCard:
			return selectHandCard(prompt.ValidHandCards)
		case PromptChoice:
			return selectPromptChoice(prompt.ChoiceCount)
		case PromptEnergyValue:
			return selectEnergyValue(prompt.MinEnergy, prompt.MaxEnergy)
		}
	}

	if s.Turn.PriorityPlayer() != player {
		return LegalActions{Kind: NoActionsOpponentPriority}
	}

	phase := s.Turn.CurrentPhase()
	// Starting/Judgment/Dreamwell/Draw are fully automatic (§4.3); only Main
	// and Ending ever hold priority open for a player decision.
	if phase != battlerules.PhaseMain && phase != battlerules.PhaseEnding {
		return LegalActions{Kind: NoActionsInCurrentPhase}
	}

	primary := PrimaryPassPriority
	switch {
	case phase == battlerules.PhaseMain && s.Stack.IsEmpty() && s.Turn.ActivePlayer() == player:
		primary = PrimaryEndTurn
	case phase == battlerules.PhaseEnding && s.Stack.IsEmpty() && s.Turn.ActivePlayer() != player:
		primary = PrimaryStartNextTurn
	}

	playable := playableHandCards(s, player)
	abilities := playableActivatedAbilities(s, player)
	return standard(primary, playable, abilities)
}

// playableHandCards returns, in ascending CardId order, every hand card
// whose controller can currently afford and legally target it (§4.2 point
// 5: enough energy, legality predicates satisfied, phase permits it).
func playableHandCards(s *State, player identifiers.PlayerName) []identifiers.HandCardId {
	hand := s.Zones.HandIds(player)
	sort.Slice(hand, func(i, j int) bool { return hand[i] < hand[j] })

	var out []identifiers.HandCardId
	for _, id := range hand {
		def, ok := cardDefinition(s, id.CardId())
		if !ok {
			continue
		}
		if !def.IsFast && s.Turn.CurrentPhase() != battlerules.PhaseMain {
			continue
		}
		cost := identifiers.Energy(0)
		if def.EnergyCost != nil {
			cost = *def.EnergyCost
		}
		if s.Players[player].Energy < cost {
			continue
		}
		if !hasLegalTargetsIfRequired(s, player, def) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// playableActivatedAbilities returns, ordered by CharacterId then ability
// number, every activated ability its controller can currently afford and
// legally target (§4.2; §3 "ActivatedAbilityId = (CharacterId,
// AbilityNumber)"). IsMulti abilities remain listed every turn; non-multi
// ones drop out once zones.Store records them as used this turn.
func playableActivatedAbilities(s *State, player identifiers.PlayerName) []ActivatedAbilityRef {
	characters := s.Zones.CharacterIds(player)
	sort.Slice(characters, func(i, j int) bool { return characters[i] < characters[j] })

	var out []ActivatedAbilityRef
	for _, cid := range characters {
		def, ok := cardDefinition(s, cid.CardId())
		if !ok || def.CardType != content.CardTypeCharacter {
			continue
		}
		for _, a := range def.Abilities {
			if a.Kind != ability.AbilityActivated {
				continue
			}
			if !a.IsFast && s.Turn.CurrentPhase() != battlerules.PhaseMain {
				continue
			}
			if !a.IsMulti && s.Zones.AbilityUsedThisTurn(cid.CardId(), a.Number) {
				continue
			}
			if !canAffordCosts(s, player, a.Costs) {
				continue
			}
			if !hasLegalTargetsForEffect(s, player, a.ActivatedEffect) {
				continue
			}
			out = append(out, ActivatedAbilityRef{Character: cid, Ability: a.Number})
		}
	}
	return out
}

// hasLegalTargetsIfRequired checks that every target-bearing ability on def
// (e.g. a CouldDissolve-gated event) has at least one legal target, per
// §4.2's "legality predicates ... all hold" requirement.
func hasLegalTargetsIfRequired(s *State, player identifiers.PlayerName, def *content.CardDefinition) bool {
	for _, a := range def.Abilities {
		if a.Kind != ability.AbilityEvent {
			continue
		}
		if !hasLegalTargetsForEffect(s, player, a.Event) {
			return false
		}
	}
	return true
}

func hasLegalTargetsForEffect(s *State, player identifiers.PlayerName, e ability.Effect) bool {
	for _, spec := range requiredTargetSpecs(e) {
		if len(candidatesFor(s, player, spec)) == 0 {
			return false
		}
	}
	return true
}

// candidatesFor evaluates a targetSpec's predicate against the pool it
// names: battlefield characters, a player's void, or the stack.
func candidatesFor(s *State, player identifiers.PlayerName, spec targetSpec) []identifiers.CardId {
	if spec.Pool == poolStack {
		return stackCandidates(s, player, spec.Predicate)
	}
	return targeting.CandidateSet(targetingContext(s), player, spec.Predicate)
}

// stackCandidates returns the stack items matching predicate's subject form
// and shape test, per the same ownership vocabulary CandidateSet uses for
// battlefield characters (Your/Enemy/Any), but drawn from the stack instead
// since Counterspell-family effects target spells, not permanents.
func stackCandidates(s *State, player identifiers.PlayerName, predicate ability.Predicate) []identifiers.CardId {
	ctx := targetingContext(s)
	var out []identifiers.CardId
	for _, item := range s.Stack.List() {
		switch predicate.Kind {
		case ability.PredicateYour:
			if item.Controller != player {
				continue
			}
		case ability.PredicateEnemy:
			if item.Controller != player.Opponent() {
				continue
			}
		case ability.PredicateAny:
			// no ownership filter
		default:
			continue
		}
		if targeting.Matches(ctx, item.Controller, item.ID, predicate.Card) {
			out = append(out, item.ID)
		}
	}
	return out
}

// targetPool identifies which zone a targetSpec's candidates are drawn from;
// it is derived from the StandardEffectKind rather than the Predicate alone
// since Counterspell-family effects target the stack even though their
// Predicate's subject form (Enemy/Your/Any) is the same vocabulary used for
// battlefield characters.
type targetPool int

const (
	poolCharacter targetPool = iota
	poolVoid
	poolStack
)

// targetSpec is one target requirement a cast or ability resolution needs
// filled before executeEffect can run: a predicate to filter candidates,
// the pool to draw them from, and how many are needed.
type targetSpec struct {
	Predicate ability.Predicate
	Pool      targetPool
	Count     int
}

func requiredTargets(e ability.Effect) []ability.Predicate {
	var out []ability.Predicate
	for _, spec := range requiredTargetSpecs(e) {
		out = append(out, spec.Predicate)
	}
	return out
}

// requiredTargetSpecs walks e's Standard/List shapes to find every target
// requirement that must be resolved before the effect can execute.
// StandardWithOptions and Modal are intentionally excluded: those resolve
// their own targets lazily inside executeEffect, behind the prompt that
// decides whether that branch runs at all (§4.4).
func requiredTargetSpecs(e ability.Effect) []targetSpec {
	switch e.Kind {
	case ability.EffectShapeStandard:
		return targetsOf(e.Standard)
	case ability.EffectShapeStandardWithOptions:
		// An optional effect fizzling for lack of targets is legal to
		// attempt (§4.4); it does not block playability.
		return nil
	case ability.EffectShapeList:
		var out []targetSpec
		for _, sub := range e.List {
			out = append(out, requiredTargetSpecs(sub)...)
		}
		return out
	default:
		return nil
	}
}

func targetsOf(e ability.StandardEffect) []targetSpec {
	switch e.Kind {
	case ability.EffectDissolveCharacter, ability.EffectBanishCharacter, ability.EffectReturnToHand:
		return []targetSpec{{Predicate: e.Target, Pool: poolCharacter, Count: 1}}
	case ability.EffectBanishCardsFromVoid:
		n := e.Count
		if n < 1 {
			n = 1
		}
		return []targetSpec{{Predicate: e.Target, Pool: poolVoid, Count: n}}
	case ability.EffectReturnUpToCountFromYourVoidToHand:
		n := e.Count
		if n < 1 {
			n = 1
		}
		return []targetSpec{{Predicate: ability.Subject(ability.PredicateYourVoid), Pool: poolVoid, Count: n}}
	case ability.EffectCounterspell, ability.EffectCounterspellUnlessPays, ability.EffectNegate:
		return []targetSpec{{Predicate: e.Target, Pool: poolStack, Count: 1}}
	default:
		return nil
	}
}

func targetingContext(s *State) targeting.Context {
	return targeting.Context{
		Zones:      s.Zones,
		Definition: func(id identifiers.CardId) (*content.CardDefinition, bool) { return cardDefinition(s, id) },
	}
}

func cardDefinition(s *State, id identifiers.CardId) (*content.CardDefinition, bool) {
	name, ok := s.Zones.Name(id)
	if !ok {
		return nil, false
	}
	def, ok := s.Tabula.Cards[name]
	return def, ok
}
