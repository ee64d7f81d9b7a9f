// Package targeting evaluates ability.Predicate/ability.CardPredicate
// values against battle state to produce candidate target sets. Adapted
// from the teacher's internal/game/targeting package, replacing its
// heuristic substring rules-text matching (ParseTargetRequirements) with
// real typed-IR evaluation, since this engine compiles rules text into a
// Predicate/CardPredicate tree up front instead of re-scanning strings at
// targeting time.
package targeting

import (
	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/zones"
)

// Context supplies the read access the evaluator needs: the zone store and
// a lookup from CardId back to its compiled definition.
type Context struct {
	Zones      *zones.Store
	Definition func(identifiers.CardId) (*content.CardDefinition, bool)
}

// Requirement bounds how many targets a resolving effect needs, mirroring
// the teacher's TargetRequirement but driven by the typed predicate instead
// of a parsed string.
type Requirement struct {
	MinTargets int
	MaxTargets int
	Optional   bool
}

// Selection is the player's in-progress or completed answer to a target
// prompt.
type Selection struct {
	Targets     []identifiers.CardId
	Requirement Requirement
}

func (s *Selection) IsComplete() bool {
	count := len(s.Targets)
	return count >= s.Requirement.MinTargets && count <= s.Requirement.MaxTargets
}

// CandidateSet evaluates predicate for controller and returns every CardId
// in the zone(s) the predicate's subject form implies that also satisfies
// its CardPredicate shape test. The order is deterministic (§4.1/§4.2):
// ascending CardId within each player's zone, and for PredicateAny the
// controller's cards come before the opponent's.
func CandidateSet(ctx Context, controller identifiers.PlayerName, predicate ability.Predicate) []identifiers.CardId {
	var pool []identifiers.CardId
	switch predicate.Kind {
	case ability.PredicateYour, ability.PredicateAnother:
		pool = characterIDs(ctx.Zones, controller)
	case ability.PredicateEnemy:
		pool = characterIDs(ctx.Zones, controller.Opponent())
	case ability.PredicateAny:
		pool = append(characterIDs(ctx.Zones, controller), characterIDs(ctx.Zones, controller.Opponent())...)
	case ability.PredicateYourVoid:
		pool = voidIDs(ctx.Zones, controller)
	case ability.PredicateEnemyVoid:
		pool = voidIDs(ctx.Zones, controller.Opponent())
	default:
		// This/That/It resolve to a single fixed card supplied by the
		// caller's context (the source or most-recent trigger object), not
		// to a candidate set; the effect executor binds those directly.
		return nil
	}

	out := make([]identifiers.CardId, 0, len(pool))
	for _, id := range pool {
		if matches(ctx, controller, id, predicate.Card) {
			out = append(out, id)
		}
	}
	return out
}

func characterIDs(store *zones.Store, owner identifiers.PlayerName) []identifiers.CardId {
	ids := store.CharacterIds(owner)
	out := make([]identifiers.CardId, len(ids))
	for i, id := range ids {
		out[i] = id.CardId()
	}
	return out
}

func voidIDs(store *zones.Store, owner identifiers.PlayerName) []identifiers.CardId {
	ids := store.VoidIds(owner)
	out := make([]identifiers.CardId, len(ids))
	for i, id := range ids {
		out[i] = id.CardId()
	}
	return out
}

// Matches reports whether id (a card owned somewhere in the battle) alone
// satisfies predicate's CardPredicate shape test, for callers that have
// already resolved the subject form externally (e.g. a triggered ability
// checking "a card matching X" against the specific card that just
// materialized, rather than scanning a whole zone for candidates).
func Matches(ctx Context, controller identifiers.PlayerName, id identifiers.CardId, predicate ability.CardPredicate) bool {
	return matches(ctx, controller, id, predicate)
}

// matches applies the CardPredicate shape test to a single candidate.
func matches(ctx Context, controller identifiers.PlayerName, id identifiers.CardId, predicate ability.CardPredicate) bool {
	def, ok := ctx.Definition(id)
	if !ok {
		return false
	}

	switch predicate.Kind {
	case ability.CardPredicateCard:
		return true
	case ability.CardPredicateCharacter:
		return def.CardType == content.CardTypeCharacter
	case ability.CardPredicateEvent:
		return def.CardType == content.CardTypeEvent
	case ability.CardPredicateDream:
		return def.CardType == content.CardTypeDream
	case ability.CardPredicateCharacterType:
		return def.CardType == content.CardTypeCharacter && def.Subtype == predicate.Subtype
	case ability.CardPredicateNotCharacterType:
		return def.CardType == content.CardTypeCharacter && def.Subtype != predicate.Subtype
	case ability.CardPredicateCharacterWithSpark:
		state, _ := ctx.Zones.CharacterState(id)
		spark := effectiveSpark(def, state)
		return compareSpark(spark, predicate.Operator, predicate.Spark)
	case ability.CardPredicateCardWithCost:
		if def.EnergyCost == nil {
			return false
		}
		inner := predicate.Inner
		if inner != nil && !matches(ctx, controller, id, *inner) {
			return false
		}
		return compareEnergy(*def.EnergyCost, predicate.Operator, predicate.Energy)
	case ability.CardPredicateFast:
		return def.IsFast
	case ability.CardPredicateCouldDissolve:
		return def.CardType == content.CardTypeCharacter
	case ability.CardPredicateCharacterWithMaterializedAbility, ability.CardPredicateCharacterWithMultiActivatedAbility:
		return def.CardType == content.CardTypeCharacter
	default:
		// Every CardPredicate variant named in the ability IR is handled
		// above; an unreached default indicates an authoring gap and is
		// surfaced loudly rather than silently matching nothing (§9 open
		// question (a): no todo!-equivalent left unhandled).
		panic("targeting: unhandled CardPredicate kind")
	}
}

func effectiveSpark(def *content.CardDefinition, state *zones.CharacterState) identifiers.Spark {
	base := identifiers.Spark(0)
	if def.Spark != nil {
		base = *def.Spark
	}
	if state != nil {
		base = base.Add(state.SparkModifier)
	}
	return base
}

func compareSpark(value identifiers.Spark, op ability.Operator, reference identifiers.Spark) bool {
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

func compareEnergy(value identifiers.Energy, op ability.Operator, reference identifiers.Energy) bool {
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
