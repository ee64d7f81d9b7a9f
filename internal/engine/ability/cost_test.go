package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

func TestCostConstructors_SetTheExpectedKindAndFields(t *testing.T) {
	assert.Equal(t, Cost{Kind: CostPayEnergy, Energy: 3}, PayEnergy(identifiers.Energy(3)))
	assert.Equal(t, Cost{Kind: CostSpendOneOrMoreEnergy}, SpendOneOrMoreEnergy())
	assert.Equal(t, Cost{Kind: CostBanishCardsFromVoid, Count: 2}, BanishCardsFromVoid(2))
	assert.Equal(t, Cost{Kind: CostAbandonDreamscapes, Count: 1}, AbandonDreamscapes(1))
	assert.Equal(t, Cost{Kind: CostDiscardHand}, DiscardHand())
	assert.Equal(t, Cost{Kind: CostLossOfMaximumEnergy, Energy: 1}, LossOfMaximumEnergy(identifiers.Energy(1)))

	predicate := WithCard(PredicateYour, Simple(CardPredicateCharacter))
	assert.Equal(t, Cost{Kind: CostAbandonCharactersCount, Count: 2, Predicate: predicate}, AbandonCharactersCount(2, predicate))
	assert.Equal(t, Cost{Kind: CostDiscardCards, Count: 1, Predicate: predicate}, DiscardCards(1, predicate))
	assert.Equal(t, Cost{Kind: CostBanishFromHand, Predicate: predicate}, BanishFromHand(predicate))
}

func TestChoice_CollectsAlternatives(t *testing.T) {
	alt1 := PayEnergy(identifiers.Energy(1))
	alt2 := DiscardHand()
	choice := Choice(alt1, alt2)
	assert.Equal(t, CostChoice, choice.Kind)
	assert.Equal(t, []Cost{alt1, alt2}, choice.Alternatives)
}
