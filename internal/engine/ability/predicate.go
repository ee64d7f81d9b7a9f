package ability

import "github.com/dreamtides/battlecore/internal/engine/identifiers"

// Operator is a numeric comparison used by predicates and costs that
// compare a spark or energy value against a reference (§3 "HigherBy(n) /
// LowerBy(n) operators").
type Operator int

const (
	OperatorHigherBy Operator = iota
	OperatorLowerBy
	OperatorExactly
	OperatorOrMore
	OperatorOrLess
)

// CardPredicateKind is the closed set of shape tests a CardPredicate can
// perform, per §3. The set is fixed and known at authoring time, so it is
// represented as a tagged struct with an exhaustive Kind switch at every use
// site (internal/engine/targeting) rather than sixteen separate marker-
// interface implementations — see DESIGN.md for why this is the chosen Go
// idiom for a closed sum type here.
type CardPredicateKind int

const (
	CardPredicateCard CardPredicateKind = iota
	CardPredicateCharacter
	CardPredicateEvent
	CardPredicateDream
	CardPredicateCharacterType
	CardPredicateNotCharacterType
	CardPredicateCharacterWithSpark
	CardPredicateCardWithCost
	CardPredicateCharacterWithMaterializedAbility
	CardPredicateCharacterWithMultiActivatedAbility
	CardPredicateFast
	CardPredicateCouldDissolve
	CardPredicateCharacterWithCostComparedToControlled
	CardPredicateCharacterWithCostComparedToAbandoned
	CardPredicateCharacterWithSparkComparedToControlled
	CardPredicateCharacterWithSparkComparedToAbandoned
)

// CardPredicate is a shape test over a single candidate card. Only the
// fields relevant to Kind are populated; constructors below enforce that.
type CardPredicate struct {
	Kind Kind

	// Subtype is set for CharacterType / NotCharacterType.
	Subtype string
	// Spark + Operator are set for CharacterWithSpark and the
	// spark-compared-to-* variants.
	Spark    identifiers.Spark
	Operator Operator
	// Energy is set for CardWithCost and the cost-compared-to-* variants.
	Energy identifiers.Energy
	// Inner is the nested predicate CardWithCost applies its cost test on
	// top of (e.g. "an event card costing 2 or less").
	Inner *CardPredicate
}

// Kind is an alias so call sites can write ability.Kind interchangeably with
// ability.CardPredicateKind.
type Kind = CardPredicateKind

func Simple(kind CardPredicateKind) CardPredicate {
	return CardPredicate{Kind: kind}
}

func CharacterType(subtype string) CardPredicate {
	return CardPredicate{Kind: CardPredicateCharacterType, Subtype: subtype}
}

func NotCharacterType(subtype string) CardPredicate {
	return CardPredicate{Kind: CardPredicateNotCharacterType, Subtype: subtype}
}

func CharacterWithSpark(op Operator, spark identifiers.Spark) CardPredicate {
	return CardPredicate{Kind: CardPredicateCharacterWithSpark, Operator: op, Spark: spark}
}

func CardWithCost(inner CardPredicate, op Operator, energy identifiers.Energy) CardPredicate {
	return CardPredicate{Kind: CardPredicateCardWithCost, Inner: &inner, Operator: op, Energy: energy}
}

// PredicateKind is the closed set of subject forms a Predicate can take,
// per §3.
type PredicateKind int

const (
	PredicateThis PredicateKind = iota
	PredicateThat
	PredicateIt
	PredicateYour
	PredicateEnemy
	PredicateAnother
	PredicateAny
	PredicateYourVoid
	PredicateEnemyVoid
)

// Predicate combines a subject form with an optional CardPredicate shape
// test (This/That/It carry none).
type Predicate struct {
	Kind PredicateKind
	Card CardPredicate
}

func Subject(kind PredicateKind) Predicate {
	return Predicate{Kind: kind}
}

func WithCard(kind PredicateKind, card CardPredicate) Predicate {
	return Predicate{Kind: kind, Card: card}
}
