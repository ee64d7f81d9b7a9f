package ability

import "github.com/dreamtides/battlecore/internal/engine/identifiers"

// CostKind is the closed set of cost shapes a card or activated ability can
// require, per §3 and grounded directly on
// rules_engine/src/parser/src/cost_parser.rs's grammar productions.
type CostKind int

const (
	CostPayEnergy CostKind = iota
	CostSpendOneOrMoreEnergy
	CostBanishCardsFromVoid
	CostBanishAllCardsFromVoid
	CostAbandonCharactersCount
	CostAbandonDreamscapes
	CostDiscardCards
	CostDiscardHand
	CostBanishFromHand
	CostLossOfMaximumEnergy
	CostChoice
)

// Cost is one cost entry. Only the fields relevant to Kind are populated.
type Cost struct {
	Kind CostKind

	// Energy is set for PayEnergy and LossOfMaximumEnergy.
	Energy identifiers.Energy
	// Count is set for BanishCardsFromVoid, AbandonCharactersCount,
	// AbandonDreamscapes, and DiscardCards.
	Count int
	// Predicate restricts which cards satisfy AbandonCharactersCount,
	// DiscardCards, or BanishFromHand.
	Predicate Predicate
	// Alternatives holds the disjuncts of a CostChoice ("abandon a
	// character or discard a card").
	Alternatives []Cost
}

func PayEnergy(energy identifiers.Energy) Cost {
	return Cost{Kind: CostPayEnergy, Energy: energy}
}

func SpendOneOrMoreEnergy() Cost {
	return Cost{Kind: CostSpendOneOrMoreEnergy}
}

func BanishCardsFromVoid(count int) Cost {
	return Cost{Kind: CostBanishCardsFromVoid, Count: count}
}

func AbandonCharactersCount(count int, predicate Predicate) Cost {
	return Cost{Kind: CostAbandonCharactersCount, Count: count, Predicate: predicate}
}

func AbandonDreamscapes(count int) Cost {
	return Cost{Kind: CostAbandonDreamscapes, Count: count}
}

func DiscardCards(count int, predicate Predicate) Cost {
	return Cost{Kind: CostDiscardCards, Count: count, Predicate: predicate}
}

func DiscardHand() Cost {
	return Cost{Kind: CostDiscardHand}
}

func BanishFromHand(predicate Predicate) Cost {
	return Cost{Kind: CostBanishFromHand, Predicate: predicate}
}

func LossOfMaximumEnergy(energy identifiers.Energy) Cost {
	return Cost{Kind: CostLossOfMaximumEnergy, Energy: energy}
}

func Choice(alternatives ...Cost) Cost {
	return Cost{Kind: CostChoice, Alternatives: alternatives}
}

// TriggerEventKind is the closed set of trigger conditions a triggered
// ability can react to, per §4.5 and the GLOSSARY.
type TriggerEventKind int

const (
	TriggerMaterialized TriggerEventKind = iota
	TriggerMaterializeMatching
	TriggerDissolved
	TriggerPlayed
	TriggerDiscarded
	TriggerBanished
	TriggerJudgment
	TriggerEndOfYourTurn
	TriggerGainedEnergy
	TriggerMaterializeNthThisTurn
	TriggerKeywords
)

// TriggerEvent is one trigger condition. Only the fields relevant to Kind
// are populated.
type TriggerEvent struct {
	Kind TriggerEventKind

	// Predicate restricts MaterializeMatching to cards matching it.
	Predicate Predicate
	// N is the count threshold for MaterializeNthThisTurn.
	N int
	// Keywords holds the comma-joined trigger keywords for TriggerKeywords
	// ("Materialized, Dissolved" style multi-trigger authoring, §4.6).
	Keywords []TriggerEventKind
}
