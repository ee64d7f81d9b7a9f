package parser

import "github.com/dreamtides/battlecore/internal/engine/ability"

// triggerKeywords maps the {Keyword} phrase-marker names authored in rules
// text to their TriggerEventKind, per §4.6 "Triggered-ability prefixes".
var triggerKeywords = map[string]ability.TriggerEventKind{
	"Materialized":   ability.TriggerMaterialized,
	"Dissolved":      ability.TriggerDissolved,
	"Played":         ability.TriggerPlayed,
	"Discarded":      ability.TriggerDiscarded,
	"Banished":       ability.TriggerBanished,
	"Judgment":       ability.TriggerJudgment,
	"EndOfYourTurn":  ability.TriggerEndOfYourTurn,
	"GainedEnergy":   ability.TriggerGainedEnergy,
}

// parseTriggerPrefix recognizes a leading `{Keyword}` phrase marker, or
// several joined by commas ("{Materialized}, {Dissolved}:" -> a combined
// Keywords trigger per §4.6).
func parseTriggerPrefix(tokens []Token) (ability.TriggerEvent, []Token, bool) {
	if len(tokens) == 0 || tokens[0].Kind != TokenPhraseMarker {
		return ability.TriggerEvent{}, tokens, false
	}

	var kinds []ability.TriggerEventKind
	pos := 0
	for pos < len(tokens) {
		if tokens[pos].Kind == TokenWhitespace {
			pos++
			continue
		}
		if tokens[pos].Kind != TokenPhraseMarker {
			break
		}
		kind, ok := triggerKeywords[tokens[pos].Text]
		if !ok {
			break
		}
		kinds = append(kinds, kind)
		pos++
		for pos < len(tokens) && tokens[pos].Kind == TokenWhitespace {
			pos++
		}
		if pos < len(tokens) && tokens[pos].Kind == TokenPunctuation && tokens[pos].Text == "," {
			pos++
			continue
		}
		break
	}
	if len(kinds) == 0 {
		return ability.TriggerEvent{}, tokens, false
	}
	if pos < len(tokens) && tokens[pos].Kind == TokenPunctuation && tokens[pos].Text == ":" {
		pos++
	}

	if len(kinds) == 1 {
		return ability.TriggerEvent{Kind: kinds[0]}, tokens[pos:], true
	}
	return ability.TriggerEvent{Kind: ability.TriggerKeywords, Keywords: kinds}, tokens[pos:], true
}
