package parser

import (
	"fmt"

	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// Compile runs the full §4.6 pipeline: lex, substitute, parse into Ability
// IR (no separate normalization pass). Each "." terminated sentence in rulesText compiles to one
// Ability; a card's full ability list is their concatenation in source
// order.
func Compile(rulesText string, bindings Bindings) ([]ability.Ability, error) {
	tokens, err := Lex(rulesText)
	if err != nil {
		return nil, wrapLexErr(rulesText, err)
	}
	tokens, err = Substitute(tokens, bindings)
	if err != nil {
		return nil, err
	}

	sentences := splitSentences(tokens)
	abilities := make([]ability.Ability, 0, len(sentences))
	for i, sentence := range sentences {
		if allWhitespace(sentence) {
			continue
		}
		compiled, err := compileSentence(sentence, identifiers.AbilityNumber(i))
		if err != nil {
			return nil, err
		}
		abilities = append(abilities, compiled)
	}
	return abilities, nil
}

func wrapLexErr(text string, err error) error {
	if lexErr, ok := err.(*LexError); ok {
		return fmt.Errorf("%s", Diagnostic(text, lexErr.Offset, lexErr.Message))
	}
	return err
}

func allWhitespace(tokens []Token) bool {
	for _, t := range tokens {
		if t.Kind != TokenWhitespace {
			return false
		}
	}
	return true
}

// splitSentences splits on top-level "." punctuation tokens, dropping the
// delimiter itself.
func splitSentences(tokens []Token) [][]Token {
	var sentences [][]Token
	var current []Token
	for _, tok := range tokens {
		if tok.Kind == TokenPunctuation && tok.Text == "." {
			sentences = append(sentences, current)
			current = nil
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return sentences
}

func compileSentence(tokens []Token, number identifiers.AbilityNumber) (ability.Ability, error) {
	if trigger, rest, ok := parseTriggerPrefix(tokens); ok {
		c := newCursor(rest)
		onceFlag, untilEnd := consumeTriggerOptions(c)
		effect, ok := parseEffect(c)
		if !ok {
			return ability.Ability{}, fmt.Errorf("rules compiler: could not parse triggered effect in ability %d", number)
		}
		return ability.Ability{
			Kind:            ability.AbilityTriggered,
			Number:          number,
			Trigger:         trigger,
			TriggeredEffect: effect,
			OncePerTurn:     onceFlag,
			UntilEndOfTurn:  untilEnd,
		}, nil
	}

	if static, ok, err := tryParseStatic(tokens, number); ok || err != nil {
		return static, err
	}

	if activated, ok, err := tryParseActivated(tokens, number); ok || err != nil {
		return activated, err
	}

	c := newCursor(tokens)
	if modal, ok := parseModal(c, number); ok {
		return modal, nil
	}

	c = newCursor(tokens)
	effect, ok := parseEffectList(c)
	if !ok {
		return ability.Ability{}, fmt.Errorf("rules compiler: could not parse ability %d", number)
	}
	return ability.Ability{Kind: ability.AbilityEvent, Number: number, Event: effect}, nil
}

// consumeTriggerOptions recognizes the trailing "(once per turn)"/"until
// end of turn" qualifiers parenthetical authors attach to triggers.
func consumeTriggerOptions(c *cursor) (oncePerTurn, untilEndOfTurn bool) {
	if c.punctuation("(") {
		if c.phrase("once per turn") {
			oncePerTurn = true
		}
		if c.phrase("until end of turn") {
			untilEndOfTurn = true
		}
		c.punctuation(")")
	}
	return
}

// parseEffectList parses a period-free run of effects joined implicitly by
// the sentence boundary (usually just one, but some abilities author
// "Draw a card, then discard a card" as a comma list).
func parseEffectList(c *cursor) (ability.Effect, bool) {
	var effects []ability.Effect
	for {
		effect, ok := parseEffect(c)
		if !ok {
			break
		}
		effects = append(effects, effect)
		if !c.word("then") && !c.punctuation(",") {
			break
		}
	}
	if len(effects) == 0 {
		return ability.Effect{}, false
	}
	if len(effects) == 1 {
		return effects[0], true
	}
	return ability.List(effects...), true
}

// parseModal recognizes the "Choose one —" prefix introducing up to four
// "or"-joined alternatives (§4.6).
func parseModal(c *cursor, number identifiers.AbilityNumber) (ability.Ability, bool) {
	if !c.phrase("choose one") {
		return ability.Ability{}, false
	}
	c.punctuation("—")
	c.punctuation("-")

	var choices []ability.Effect
	for {
		effect, ok := parseEffect(c)
		if !ok {
			break
		}
		choices = append(choices, effect)
		if !c.word("or") {
			break
		}
	}
	if len(choices) == 0 {
		return ability.Ability{}, false
	}
	return ability.Ability{Kind: ability.AbilityEvent, Number: number, Event: ability.Modal(choices...)}, true
}

// tryParseStatic recognizes Reclaim, the one static ability SPEC_FULL.md
// supplements concretely: "{Reclaim} <cost>" grants an alternate
// play-from-void cost.
func tryParseStatic(tokens []Token, number identifiers.AbilityNumber) (ability.Ability, bool, error) {
	if len(tokens) == 0 || tokens[0].Kind != TokenPhraseMarker || tokens[0].Text != "Reclaim" {
		return ability.Ability{}, false, nil
	}
	c := newCursor(tokens[1:])
	cost, ok := parseCost(c)
	if !ok {
		// Bare "{Reclaim}" means reclaim for the card's normal cost.
		return ability.Ability{
			Kind: ability.AbilityStatic, Number: number,
			Static: ability.StaticEffect{Kind: ability.StaticAlternateCostPlayFromVoid},
		}, true, nil
	}
	return ability.Ability{
		Kind: ability.AbilityStatic, Number: number,
		Static: ability.StaticEffect{Kind: ability.StaticAlternateCostPlayFromVoid, AlternateCost: cost},
	}, true, nil
}

// tryParseActivated recognizes "<cost list>: <effect>", where cost entries
// are comma-separated. This is the standard Magic-style activated-ability
// surface form, authored here with an explicit colon separator since the
// controlled natural language has no other unambiguous delimiter between
// a cost clause and an effect clause.
func tryParseActivated(tokens []Token, number identifiers.AbilityNumber) (ability.Ability, bool, error) {
	colon := -1
	for i, tok := range tokens {
		if tok.Kind == TokenPunctuation && tok.Text == ":" {
			colon = i
			break
		}
	}
	if colon < 0 {
		return ability.Ability{}, false, nil
	}

	costTokens, effectTokens := tokens[:colon], tokens[colon+1:]
	c := newCursor(costTokens)
	var costs []ability.Cost
	for {
		cost, ok := parseCost(c)
		if !ok {
			break
		}
		costs = append(costs, cost)
		if !c.punctuation(",") {
			break
		}
	}
	if len(costs) == 0 || !c.atEnd() {
		return ability.Ability{}, false, nil
	}

	ec := newCursor(effectTokens)
	isFast := ec.phrase("fast")
	ec.punctuation(",")
	effect, ok := parseEffectList(ec)
	if !ok {
		return ability.Ability{}, false, fmt.Errorf("rules compiler: activated ability %d has a cost clause but no parseable effect", number)
	}

	return ability.Ability{
		Kind: ability.AbilityActivated, Number: number,
		Costs: costs, ActivatedEffect: effect, IsFast: isFast,
	}, true, nil
}
