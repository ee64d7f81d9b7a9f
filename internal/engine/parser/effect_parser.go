package parser

import (
	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// parseEffect implements the effect grammar of §4.6: a standard primitive
// expressed in imperative form, optionally with a "you may" prefix.
func parseEffect(c *cursor) (ability.Effect, bool) {
	optional := c.phrase("you may")

	standard, ok := parseStandardEffect(c)
	if !ok {
		return ability.Effect{}, false
	}
	if optional {
		return ability.StandardOptional(standard), true
	}
	return ability.Standard(standard), true
}

// parseStandardEffect tries each StandardEffect surface form in turn. More
// specific multi-word imperatives are listed before shorter ones that would
// otherwise shadow them (§4.6's precedence-ordering rule, as in
// cost_parser.rs).
func parseStandardEffect(c *cursor) (ability.StandardEffect, bool) {
	switch {
	case c.phrase("draw"):
		n, ok := c.number()
		if !ok {
			n = 1
		}
		c.word("card")
		return ability.StandardEffect{Kind: ability.EffectDrawCards, Count: n}, true

	case c.phrase("discard your hand"):
		return ability.StandardEffect{Kind: ability.EffectDiscardHand}, true

	case c.word("discard"):
		n, ok := c.number()
		if !ok {
			n = 1
		}
		return ability.StandardEffect{Kind: ability.EffectDiscardCards, Count: n}, true

	case c.phrase("dissolve"):
		predicate, _ := parsePredicate(c, characterDefault())
		return ability.StandardEffect{Kind: ability.EffectDissolveCharacter, Target: predicate}, true

	case c.phrase("banish"):
		predicate, _ := parsePredicate(c, characterDefault())
		return ability.StandardEffect{Kind: ability.EffectBanishCharacter, Target: predicate}, true

	case c.phrase("return up to"):
		n, _ := c.number()
		predicate, _ := parsePredicate(c, cardDefault())
		c.phrase("from your void to hand")
		return ability.StandardEffect{Kind: ability.EffectReturnUpToCountFromYourVoidToHand, Count: n, Target: predicate}, true

	case c.phrase("return"):
		predicate, _ := parsePredicate(c, characterDefault())
		c.phrase("to hand")
		return ability.StandardEffect{Kind: ability.EffectReturnToHand, Target: predicate}, true

	case c.phrase("gain"):
		n, _ := c.number()
		switch {
		case c.word("spark"):
			return ability.StandardEffect{Kind: ability.EffectGainSpark, Spark: identifiers.Spark(n)}, true
		case c.word("point"):
			return ability.StandardEffect{Kind: ability.EffectGainPoints, Points: identifiers.Points(n)}, true
		case c.word("energy"):
			return ability.StandardEffect{Kind: ability.EffectGainEnergy, Energy: identifiers.Energy(n)}, true
		}

	case c.phrase("the enemy loses"):
		n, _ := c.number()
		c.word("point")
		return ability.StandardEffect{Kind: ability.EffectEnemyLosesPoints, Points: identifiers.Points(n)}, true

	case c.phrase("lose"):
		n, _ := c.number()
		c.word("point")
		return ability.StandardEffect{Kind: ability.EffectLosePoints, Points: identifiers.Points(n)}, true

	case c.phrase("the enemy gains"):
		n, _ := c.number()
		c.word("energy")
		return ability.StandardEffect{Kind: ability.EffectEnemyGainsEnergy, Energy: identifiers.Energy(n)}, true

	case c.phrase("counter it unless its controller pays"):
		n, _ := c.number()
		c.word("energy")
		return ability.StandardEffect{Kind: ability.EffectCounterspellUnlessPays, Energy: identifiers.Energy(n)}, true

	case c.phrase("counter it"):
		return ability.StandardEffect{Kind: ability.EffectCounterspell}, true

	case c.phrase("foresee"):
		n, _ := c.number()
		return ability.StandardEffect{Kind: ability.EffectForesee, Count: n}, true

	case c.phrase("kindle"):
		n, _ := c.number()
		return ability.StandardEffect{Kind: ability.EffectKindle, Count: n}, true

	case c.phrase("discover a character"):
		return ability.StandardEffect{Kind: ability.EffectDiscoverCharacter}, true

	case c.phrase("materialize a silent copy of"):
		name, _ := c.anyWord()
		return ability.StandardEffect{Kind: ability.EffectMaterializeCharacterSilentCopy, BaseCard: identifiers.BaseCardId(name)}, true

	case c.phrase("materialize a character from your void"):
		return ability.StandardEffect{Kind: ability.EffectMaterializeCharacterFromVoid}, true

	case c.phrase("take an extra turn"):
		return ability.StandardEffect{Kind: ability.EffectTakeExtraTurn}, true

	case c.phrase("you win the game"):
		return ability.StandardEffect{Kind: ability.EffectYouWin}, true
	}

	return ability.StandardEffect{}, false
}
