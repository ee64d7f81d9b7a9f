package parser

import "github.com/dreamtides/battlecore/internal/engine/ability"

// parsePredicate implements the predicate grammar of §4.6: "a predicate
// combines a subject form ({your, enemy, another, any, this, that, it})
// with a card-predicate form." fallback is returned if neither a subject
// keyword nor card shape is present but the surrounding grammar still
// expects some predicate (callers that require an explicit clause should
// check the returned bool instead of relying on fallback).
func parsePredicate(c *cursor, fallback ability.Predicate) (ability.Predicate, bool) {
	mark := c.mark()

	if c.word("this") {
		return ability.Subject(ability.PredicateThis), true
	}
	if c.word("that") {
		return ability.Subject(ability.PredicateThat), true
	}
	if c.word("it") {
		return ability.Subject(ability.PredicateIt), true
	}

	subject := ability.PredicateAny
	switch {
	case c.word("your"):
		subject = ability.PredicateYour
	case c.word("enemy") || c.word("the enemy's"):
		subject = ability.PredicateEnemy
	case c.word("another"):
		subject = ability.PredicateAnother
	case c.word("any"):
		subject = ability.PredicateAny
	default:
		// No subject keyword present; article words ("a", "an") imply
		// "your" by default for cost/effect clauses authored from the
		// active player's perspective.
		subject = ability.PredicateYour
	}

	card, ok := parseCardPredicate(c)
	if !ok {
		c.reset(mark)
		return fallback, false
	}
	return ability.WithCard(subject, card), true
}

// parseCardPredicate implements the CardPredicate shape-test grammar: a
// bare shape noun ("character", "card", "event", "dream"), a subtype noun
// ("warrior"), or a cost-compared-to clause.
func parseCardPredicate(c *cursor) (ability.CardPredicate, bool) {
	c.word("a")
	c.word("an")

	switch {
	case c.word("character"):
		return ability.Simple(ability.CardPredicateCharacter), true
	case c.word("card"):
		return ability.Simple(ability.CardPredicateCard), true
	case c.word("event"):
		return ability.Simple(ability.CardPredicateEvent), true
	case c.word("dream"):
		return ability.Simple(ability.CardPredicateDream), true
	}

	if subtype, ok := c.anyWord(); ok {
		// A bare noun not recognized above is treated as a character
		// subtype, e.g. "abandon a warrior" -> CharacterType("warrior").
		c.word("character")
		return ability.CharacterType(subtype), true
	}

	return ability.CardPredicate{}, false
}
