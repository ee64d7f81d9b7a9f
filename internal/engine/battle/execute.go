package battle

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/battlerules"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/zones"
	"github.com/dreamtides/battlecore/internal/engineerr"
)

// delayedMaterializeAbility is the sentinel AbilityNumber that marks a
// triggered-ability StackItem as the synthetic delayed trigger
// registerDelayedEndOfTurnMaterialize creates, rather than a real authored
// ability number (which are always >= 0).
const delayedMaterializeAbility identifiers.AbilityNumber = -1

// executeEffect resolves one Effect tree against state in continuation-
// passing style (§9 "prompt-driven effect continuation"): effects that need
// no further player input run immediately and call onComplete directly;
// effects that do (an optional "you may", a modal choice, an energy
// decision) park a Prompt whose Continuation resumes the remainder of the
// tree, and only then calls onComplete. targets are the target cards
// already chosen when the spell or ability was put on the stack (§4.3
// resolves targeting at cast time, not at resolution time).
func executeEffect(s *State, controller identifiers.PlayerName, source identifiers.CardId, targets []identifiers.CardId, e ability.Effect, onComplete func(*State) error) error {
	switch e.Kind {
	case ability.EffectShapeStandard:
		if err := executeStandard(s, controller, source, targets, e.Standard); err != nil {
			return err
		}
		return onComplete(s)

	case ability.EffectShapeStandardWithOptions:
		if !e.Optional {
			if err := executeStandard(s, controller, source, targets, e.Standard); err != nil {
				return err
			}
			return onComplete(s)
		}
		s.pushPrompt(Prompt{
			Kind:   PromptChoice,
			Owner:  controller,
			Source: source,
			ChoiceCount: 2, // 0 = yes, 1 = no
			Continuation: func(st *State, answer PromptAnswer) error {
				if answer.Choice == 0 {
					if err := executeStandard(st, controller, source, targets, e.Standard); err != nil {
						return err
					}
				}
				return onComplete(st)
			},
		})
		return nil

	case ability.EffectShapeList:
		return executeEffectList(s, controller, source, targets, e.List, onComplete)

	case ability.EffectShapeModal:
		s.pushPrompt(Prompt{
			Kind:        PromptChoice,
			Owner:       controller,
			Source:      source,
			ChoiceCount: len(e.Modal),
			Continuation: func(st *State, answer PromptAnswer) error {
				if answer.Choice < 0 || answer.Choice >= len(e.Modal) {
					return &engineerr.PromptProtocolError{Expected: "a modal choice in range", Got: fmt.Sprintf("%d", answer.Choice)}
				}
				return executeEffect(st, controller, source, targets, e.Modal[answer.Choice], onComplete)
			},
		})
		return nil

	default:
		return onComplete(s)
	}
}

func executeEffectList(s *State, controller identifiers.PlayerName, source identifiers.CardId, targets []identifiers.CardId, list []ability.Effect, onComplete func(*State) error) error {
	if len(list) == 0 {
		return onComplete(s)
	}
	rest := list[1:]
	return executeEffect(s, controller, source, targets, list[0], func(st *State) error {
		return executeEffectList(st, controller, source, targets, rest, onComplete)
	})
}

// executeStandard resolves one primitive StandardEffect. Grounded on §4.4's
// table of standard effects and the parser's matching vocabulary in
// internal/engine/parser/effect_parser.go.
func executeStandard(s *State, controller identifiers.PlayerName, source identifiers.CardId, targets []identifiers.CardId, std ability.StandardEffect) error {
	switch std.Kind {
	case ability.EffectDrawCards:
		drawCards(s, controller, std.Count)

	case ability.EffectDiscardCards:
		n := std.Count
		if n > len(targets) {
			n = len(targets)
		}
		for _, id := range targets[:n] {
			s.Zones.MoveCard(controller, id, zones.ZoneHand, zones.ZoneVoid)
			fireSimple(s, ability.TriggerDiscarded, controller, id)
		}

	case ability.EffectDiscardHand:
		discardHand(s, controller)

	case ability.EffectBanishCharacter, ability.EffectAbandonCharacter:
		for _, id := range targets {
			owner := ownerOf(s, id)
			def, _ := cardDefinition(s, id)
			unregisterCardTriggers(s, def, id)
			s.Zones.MoveCard(owner, id, zones.ZoneBattlefield, zones.ZoneVoid)
			if std.Kind == ability.EffectBanishCharacter {
				s.Zones.MoveCard(owner, id, zones.ZoneVoid, zones.ZoneBanished)
				fireSimple(s, ability.TriggerBanished, owner, id)
			}
		}

	case ability.EffectBanishCardsFromVoid:
		n := std.Count
		if n > len(targets) {
			n = len(targets)
		}
		for _, id := range targets[:n] {
			owner := ownerOf(s, id)
			s.Zones.MoveCard(owner, id, zones.ZoneVoid, zones.ZoneBanished)
		}

	case ability.EffectBanishAllCardsFromVoid:
		owner := voidOwnerFor(controller, std.Target)
		for _, id := range s.Zones.VoidIds(owner) {
			s.Zones.MoveCard(owner, id.CardId(), zones.ZoneVoid, zones.ZoneBanished)
		}

	case ability.EffectDissolveCharacter:
		for _, id := range targets {
			cs, _ := s.Zones.CharacterState(id)
			if cs != nil && cs.PreventDissolveThisTurn {
				continue
			}
			owner := ownerOf(s, id)
			def, _ := cardDefinition(s, id)
			unregisterCardTriggers(s, def, id)
			s.Zones.MoveCard(owner, id, zones.ZoneBattlefield, zones.ZoneVoid)
			fireSimple(s, ability.TriggerDissolved, owner, id)
			emitAnimation(s, AnimationFireProjectile, source, id)
		}

	case ability.EffectReturnToHand:
		for _, id := range targets {
			owner := ownerOf(s, id)
			zone, _, ok := s.Zones.CardZone(id)
			if !ok {
				continue
			}
			if zone == zones.ZoneBattlefield {
				def, _ := cardDefinition(s, id)
				unregisterCardTriggers(s, def, id)
			}
			s.Zones.MoveCard(owner, id, zone, zones.ZoneHand)
		}

	case ability.EffectReturnUpToCountFromYourVoidToHand:
		n := std.Count
		if n > len(targets) {
			n = len(targets)
		}
		for _, id := range targets[:n] {
			s.Zones.MoveCard(controller, id, zones.ZoneVoid, zones.ZoneHand)
		}

	case ability.EffectGainSpark, ability.EffectKindle:
		for _, id := range targets {
			cs, _ := s.Zones.CharacterState(id)
			if cs != nil {
				cs.SparkModifier = cs.SparkModifier.Add(std.Spark.Add(identifiers.Spark(std.Count)))
			}
		}

	case ability.EffectGainPoints:
		s.Players[controller].Points = s.Players[controller].Points.Add(std.Points)
		checkVictory(s, controller)

	case ability.EffectLosePoints:
		s.Players[controller].Points = s.Players[controller].Points.Sub(std.Points)

	case ability.EffectEnemyLosesPoints:
		opponent := controller.Opponent()
		s.Players[opponent].Points = s.Players[opponent].Points.Sub(std.Points)

	case ability.EffectGainEnergy:
		s.Players[controller].Energy = s.Players[controller].Energy.Add(std.Energy)
		fireSimple(s, ability.TriggerGainedEnergy, controller, source)

	case ability.EffectEnemyGainsEnergy:
		opponent := controller.Opponent()
		s.Players[opponent].Energy = s.Players[opponent].Energy.Add(std.Energy)
		fireSimple(s, ability.TriggerGainedEnergy, opponent, source)

	case ability.EffectCounterspell, ability.EffectNegate:
		if len(targets) > 0 {
			if item, ok := s.Stack.Remove(targets[0]); ok {
				s.Zones.MoveCard(item.Controller, item.ID, zones.ZoneStack, zones.ZoneVoid)
				emitAnimation(s, AnimationFireProjectile, source, item.ID)
			}
		}

	case ability.EffectCounterspellUnlessPays:
		return executeCounterspellUnlessPays(s, controller, source, targets, std)

	case ability.EffectForesee:
		// Card order is not separately tracked from card identity in this
		// zone model (zones.Store.DeckTop documents CardId magnitude as
		// deck order), so Foresee has nothing to reorder; it is a no-op
		// beyond the rules-text acknowledgement logged here.
		s.logf().Debug("foresee has no observable effect in this deck model", zap.Int("count", std.Count))

	case ability.EffectMaterializeCharacter:
		materializeNewCharacter(s, controller, std.BaseCard)

	case ability.EffectMaterializeCharacterFromVoid:
		if len(targets) > 0 {
			materializeFromZone(s, controller, targets[0], zones.ZoneVoid)
		}

	case ability.EffectMaterializeCharacterSilentCopy:
		materializeSilently(s, controller, std.BaseCard)

	case ability.EffectMaterializeCharacterAtEndOfTurn:
		registerDelayedEndOfTurnMaterialize(s, controller, std.BaseCard)

	case ability.EffectDiscoverCharacter:
		discoverCharacter(s, controller, std.Target)

	case ability.EffectTakeExtraTurn:
		s.Turn.GrantExtraTurn()

	case ability.EffectYouWin:
		declareWinner(s, controller)

	case ability.EffectPreventDissolveThisTurn:
		for _, id := range targets {
			if cs, ok := s.Zones.CharacterState(id); ok {
				cs.PreventDissolveThisTurn = true
			}
		}

	default:
		return fmt.Errorf("battle: unhandled standard effect kind %d", std.Kind)
	}
	return nil
}

func executeCounterspellUnlessPays(s *State, controller identifiers.PlayerName, source identifiers.CardId, targets []identifiers.CardId, std ability.StandardEffect) error {
	if len(targets) == 0 {
		return nil
	}
	targetID := targets[0]
	item, ok := s.Stack.Peek()
	if !ok || item.ID != targetID {
		// The target already left the stack by some other means; nothing
		// to counter.
		return nil
	}
	payer := item.Controller
	s.pushPrompt(Prompt{
		Kind:      PromptEnergyValue,
		Owner:     payer,
		Source:    source,
		MinEnergy: 0,
		MaxEnergy: std.Energy,
		Continuation: func(st *State, answer PromptAnswer) error {
			if answer.Energy >= std.Energy {
				st.Players[payer].Energy = st.Players[payer].Energy.Sub(std.Energy)
				return nil
			}
			if removed, ok := st.Stack.Remove(targetID); ok {
				st.Zones.MoveCard(removed.Controller, removed.ID, zones.ZoneStack, zones.ZoneVoid)
				emitAnimation(st, AnimationFireProjectile, source, removed.ID)
			}
			return nil
		},
	})
	return nil
}

func ownerOf(s *State, id identifiers.CardId) identifiers.PlayerName {
	_, owner, _ := s.Zones.CardZone(id)
	return owner
}

func voidOwnerFor(controller identifiers.PlayerName, target ability.Predicate) identifiers.PlayerName {
	if target.Kind == ability.PredicateEnemy || target.Kind == ability.PredicateEnemyVoid {
		return controller.Opponent()
	}
	return controller
}

func drawCards(s *State, player identifiers.PlayerName, count int) {
	for i := 0; i < count; i++ {
		top, ok := s.Zones.DeckTop(player)
		if !ok {
			// Drawing from an empty deck is a no-op, not a loss (§9 open
			// question (b)).
			return
		}
		s.Zones.MoveCard(player, top, zones.ZoneDeck, zones.ZoneHand)
	}
}

func discardHand(s *State, player identifiers.PlayerName) {
	for _, id := range s.Zones.HandIds(player) {
		s.Zones.MoveCard(player, id.CardId(), zones.ZoneHand, zones.ZoneVoid)
		fireSimple(s, ability.TriggerDiscarded, player, id.CardId())
	}
}

func checkVictory(s *State, player identifiers.PlayerName) {
	if s.VictoryPointThreshold == 0 {
		return
	}
	if s.Players[player].Points >= s.VictoryPointThreshold {
		declareWinner(s, player)
	}
}

func declareWinner(s *State, player identifiers.PlayerName) {
	if s.Turn.IsGameOver() {
		return
	}
	winner := player
	s.Winner = &winner
	s.Turn.DeclareGameOver()
}

func materializeNewCharacter(s *State, controller identifiers.PlayerName, baseCard identifiers.BaseCardId) {
	def, ok := s.Tabula.Cards[baseCard]
	if !ok {
		return
	}
	id := s.Zones.NewCard(controller, baseCard)
	s.Zones.MoveCard(controller, id, zones.ZoneDeck, zones.ZoneBattlefield)
	registerCardTriggers(s, controller, id, def)
	fireMaterialize(s, controller, id)
}

func materializeSilently(s *State, controller identifiers.PlayerName, baseCard identifiers.BaseCardId) {
	def, ok := s.Tabula.Cards[baseCard]
	if !ok {
		return
	}
	id := s.Zones.NewCard(controller, baseCard)
	s.Zones.MoveCard(controller, id, zones.ZoneDeck, zones.ZoneBattlefield)
	registerCardTriggers(s, controller, id, def)
}

func materializeFromZone(s *State, controller identifiers.PlayerName, id identifiers.CardId, from zones.Zone) {
	def, ok := cardDefinition(s, id)
	if !ok {
		return
	}
	s.Zones.MoveCard(controller, id, from, zones.ZoneBattlefield)
	registerCardTriggers(s, controller, id, def)
	fireMaterialize(s, controller, id)
}

// discoverCharacter picks a uniformly random card definition matching
// target's CardPredicate and materializes it for controller (§4.4
// "Discover"). Candidates are sorted by id first so that the random draw is
// reproducible from the seeded RNG regardless of map iteration order.
func discoverCharacter(s *State, controller identifiers.PlayerName, target ability.Predicate) {
	var candidates []identifiers.BaseCardId
	for id, def := range s.Tabula.Cards {
		if defMatchesCardPredicate(def, target.Card) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	choice := candidates[s.RNG.IntN(len(candidates))]
	materializeNewCharacter(s, controller, choice)
}

// defMatchesCardPredicate evaluates the subset of CardPredicate that makes
// sense against a content definition alone, without any live battlefield
// state (used only for Discover, which draws from the full card pool
// rather than an in-battle zone).
func defMatchesCardPredicate(def *content.CardDefinition, predicate ability.CardPredicate) bool {
	switch predicate.Kind {
	case ability.CardPredicateCard:
		return true
	case ability.CardPredicateEvent:
		return def.CardType == content.CardTypeEvent
	case ability.CardPredicateDream:
		return def.CardType == content.CardTypeDream
	case ability.CardPredicateCharacterType:
		return def.CardType == content.CardTypeCharacter && def.Subtype == predicate.Subtype
	case ability.CardPredicateNotCharacterType:
		return def.CardType == content.CardTypeCharacter && def.Subtype != predicate.Subtype
	case ability.CardPredicateFast:
		return def.IsFast
	case ability.CardPredicateCardWithCost:
		if def.EnergyCost == nil {
			return false
		}
		return compareEnergyValue(*def.EnergyCost, predicate.Operator, predicate.Energy)
	default:
		return def.CardType == content.CardTypeCharacter
	}
}

func compareEnergyValue(value identifiers.Energy, op ability.Operator, reference identifiers.Energy) bool {
	switch op {
	case ability.OperatorHigherBy:
		return value > reference
	case ability.OperatorLowerBy:
		return value < reference
	case ability.OperatorExactly:
		return value == reference
	case ability.OperatorOrMore:
		return value >= reference
	case ability.OperatorOrLess:
		return value <= reference
	default:
		return false
	}
}

// registerDelayedEndOfTurnMaterialize implements "materialize a character at
// the end of this turn": a one-shot delayed trigger. FireOnce tracks the
// "already fired" bit on the AbilityTrigger itself (the same hasFired field
// OncePerTurn uses), not in a closure, so State.Clone's copy of the
// AbilityTrigger carries its own independent fired bit; Condition/Build
// close over only baseCard/controller, immutable ability data. The actual
// materialization happens when the resulting StackItem resolves, not inside
// Build.
func registerDelayedEndOfTurnMaterialize(s *State, controller identifiers.PlayerName, baseCard identifiers.BaseCardId) {
	s.Triggers.Register(&battlerules.AbilityTrigger{
		Controller: controller,
		Ability:    delayedMaterializeAbility,
		Kind:       triggerKindName(ability.TriggerEndOfYourTurn),
		FireOnce:   true,
		Condition: func(e battlerules.Trigger) bool {
			return e.Controller == controller
		},
		Build: func(e battlerules.Trigger) battlerules.StackItem {
			return battlerules.StackItem{
				Controller:  controller,
				Kind:        battlerules.StackItemTriggeredAbility,
				Description: fmt.Sprintf("materialize %s at end of turn", baseCard),
				Ability:     delayedMaterializeAbility,
				BaseCard:    baseCard,
			}
		},
	})
}
