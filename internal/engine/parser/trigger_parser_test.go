package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtides/battlecore/internal/engine/ability"
)

func TestParseTriggerPrefix_SingleKeyword(t *testing.T) {
	tokens := lexOrFail(t, "{Materialized}: draw a card")
	trigger, rest, ok := parseTriggerPrefix(tokens)
	require.True(t, ok)
	assert.Equal(t, ability.TriggerMaterialized, trigger.Kind)

	// rest is every token after the colon, source spans unchanged.
	require.Len(t, rest, 6)
	assert.Equal(t, tokens[2:], rest)
}

func TestParseTriggerPrefix_CombinedKeywordsJoinIntoOneTrigger(t *testing.T) {
	tokens := lexOrFail(t, "{Materialized}, {Dissolved}: draw a card")
	trigger, _, ok := parseTriggerPrefix(tokens)
	require.True(t, ok)
	assert.Equal(t, ability.TriggerKeywords, trigger.Kind)
	assert.Equal(t, []ability.TriggerEventKind{ability.TriggerMaterialized, ability.TriggerDissolved}, trigger.Keywords)
}

func TestParseTriggerPrefix_NoLeadingPhraseMarkerFails(t *testing.T) {
	tokens := lexOrFail(t, "draw a card")
	_, _, ok := parseTriggerPrefix(tokens)
	assert.False(t, ok)
}

func TestParseTriggerPrefix_UnrecognizedPhraseMarkerFails(t *testing.T) {
	tokens := lexOrFail(t, "{NotAKeyword}: draw a card")
	_, _, ok := parseTriggerPrefix(tokens)
	assert.False(t, ok)
}

func TestParseTriggerPrefix_AllNamedKeywordsResolve(t *testing.T) {
	for name, kind := range triggerKeywords {
		tokens := lexOrFail(t, "{"+name+"}: draw a card")
		trigger, _, ok := parseTriggerPrefix(tokens)
		require.True(t, ok, name)
		assert.Equal(t, kind, trigger.Kind, name)
	}
}
