package parser

import (
	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// parseCost implements the cost-phrase grammar of §4.6, directly grounded
// on cost_parser.rs's standard_cost() production: alternatives are tried in
// the order below, and (as in the original) "banish N cards from your
// void" is tried before the generic single-card form would otherwise
// shadow it, since number() accepts "a"/"an"/"one" as well as digits.
func parseCost(c *cursor) (ability.Cost, bool) {
	if cost, ok := parseEnergyCost(c); ok {
		return cost, true
	}
	if c.phrase("pay one or more") || c.phrase("spend any amount of") {
		c.word("energy")
		return ability.SpendOneOrMoreEnergy(), true
	}
	if cost, ok := parseBanishVoidCost(c); ok {
		return cost, true
	}
	if cost, ok := parseAbandonCost(c); ok {
		return cost, true
	}
	if cost, ok := parseDiscardCost(c); ok {
		return cost, true
	}
	return ability.Cost{}, false
}

func parseEnergyCost(c *cursor) (ability.Cost, bool) {
	mark := c.mark()
	if !c.word("pay") {
		c.reset(mark)
		return ability.Cost{}, false
	}
	n, ok := c.number()
	if !ok {
		c.reset(mark)
		return ability.Cost{}, false
	}
	c.word("energy")
	return ability.PayEnergy(identifiers.Energy(n)), true
}

func parseBanishVoidCost(c *cursor) (ability.Cost, bool) {
	mark := c.mark()
	if !c.word("banish") {
		c.reset(mark)
		return ability.Cost{}, false
	}
	if c.word("all") {
		if c.phrase("other cards from your void") || c.phrase("cards from your void") {
			return ability.Cost{Kind: ability.CostBanishAllCardsFromVoid}, true
		}
		c.reset(mark)
		return ability.Cost{}, false
	}
	n, ok := c.number()
	if !ok {
		c.reset(mark)
		return ability.Cost{}, false
	}
	if c.phrase("card from your void") || c.phrase("cards from your void") {
		return ability.BanishCardsFromVoid(n), true
	}
	c.reset(mark)
	return ability.Cost{}, false
}

func parseAbandonCost(c *cursor) (ability.Cost, bool) {
	mark := c.mark()
	if !c.word("abandon") {
		c.reset(mark)
		return ability.Cost{}, false
	}
	if c.phrase("a dreamscape") {
		return ability.AbandonDreamscapes(1), true
	}
	if n, ok := c.number(); ok {
		if c.word("dreamscape") {
			return ability.AbandonDreamscapes(n), true
		}
		predicate, ok := parsePredicate(c, characterDefault())
		if !ok {
			c.reset(mark)
			return ability.Cost{}, false
		}
		return ability.AbandonCharactersCount(n, predicate), true
	}
	c.reset(mark)
	return ability.Cost{}, false
}

func parseDiscardCost(c *cursor) (ability.Cost, bool) {
	mark := c.mark()
	if !c.word("discard") {
		c.reset(mark)
		return ability.Cost{}, false
	}
	if c.phrase("your hand") {
		return ability.DiscardHand(), true
	}
	n, ok := c.number()
	if !ok {
		c.reset(mark)
		return ability.Cost{}, false
	}
	predicate, ok := parsePredicate(c, cardDefault())
	if !ok {
		c.reset(mark)
		return ability.Cost{}, false
	}
	return ability.DiscardCards(n, predicate), true
}

// characterDefault / cardDefault give the implicit subject form ("a
// character") used by cost phrases that don't spell out a predicate clause
// beyond the card shape itself.
func characterDefault() ability.Predicate {
	return ability.WithCard(ability.PredicateYour, ability.Simple(ability.CardPredicateCharacter))
}

func cardDefault() ability.Predicate {
	return ability.WithCard(ability.PredicateYour, ability.Simple(ability.CardPredicateCard))
}
