package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

func parseCostOrFail(t *testing.T, text string) ability.Cost {
	t.Helper()
	tokens := lexOrFail(t, text)
	c := newCursor(tokens)
	cost, ok := parseCost(c)
	require.True(t, ok, "expected %q to parse as a cost", text)
	return cost
}

func TestParseCost_PayEnergy(t *testing.T) {
	cost := parseCostOrFail(t, "pay 2 energy")
	assert.Equal(t, ability.PayEnergy(identifiers.Energy(2)), cost)
}

func TestParseCost_SpendOneOrMoreEnergy(t *testing.T) {
	cost := parseCostOrFail(t, "pay one or more energy")
	assert.Equal(t, ability.SpendOneOrMoreEnergy(), cost)
}

func TestParseCost_BanishCardsFromVoid(t *testing.T) {
	cost := parseCostOrFail(t, "banish 2 cards from your void")
	assert.Equal(t, ability.BanishCardsFromVoid(2), cost)
}

func TestParseCost_BanishAllCardsFromVoid(t *testing.T) {
	cost := parseCostOrFail(t, "banish all cards from your void")
	assert.Equal(t, ability.Cost{Kind: ability.CostBanishAllCardsFromVoid}, cost)
}

func TestParseCost_AbandonADreamscape(t *testing.T) {
	cost := parseCostOrFail(t, "abandon a dreamscape")
	assert.Equal(t, ability.AbandonDreamscapes(1), cost)
}

func TestParseCost_AbandonCountedDreamscapes(t *testing.T) {
	cost := parseCostOrFail(t, "abandon 2 dreamscape")
	assert.Equal(t, ability.AbandonDreamscapes(2), cost)
}

func TestParseCost_AbandonCharactersCount(t *testing.T) {
	cost := parseCostOrFail(t, "abandon a character")
	assert.Equal(t, ability.CostAbandonCharactersCount, cost.Kind)
	assert.Equal(t, 1, cost.Count)
	assert.Equal(t, ability.PredicateYour, cost.Predicate.Kind)
}

func TestParseCost_DiscardYourHand(t *testing.T) {
	cost := parseCostOrFail(t, "discard your hand")
	assert.Equal(t, ability.DiscardHand(), cost)
}

func TestParseCost_DiscardCards(t *testing.T) {
	cost := parseCostOrFail(t, "discard 2 cards")
	assert.Equal(t, ability.CostDiscardCards, cost.Kind)
	assert.Equal(t, 2, cost.Count)
}

func TestParseCost_UnrecognizedTextFails(t *testing.T) {
	tokens := lexOrFail(t, "gain 2 spark")
	c := newCursor(tokens)
	_, ok := parseCost(c)
	assert.False(t, ok)
}

func TestParseCost_DiscardDoesNotShadowDiscardYourHand(t *testing.T) {
	cost := parseCostOrFail(t, "discard your hand")
	assert.Equal(t, ability.CostDiscardHand, cost.Kind)
}
