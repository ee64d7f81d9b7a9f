package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

func parseEffectOrFail(t *testing.T, text string) ability.Effect {
	t.Helper()
	c := newCursor(lexOrFail(t, text))
	effect, ok := parseEffect(c)
	require.True(t, ok, "expected %q to parse as an effect", text)
	return effect
}

func TestParseEffect_DrawDefaultsToOneCard(t *testing.T) {
	effect := parseEffectOrFail(t, "draw a card")
	assert.Equal(t, ability.Standard(ability.StandardEffect{Kind: ability.EffectDrawCards, Count: 1}), effect)
}

func TestParseEffect_DrawWithExplicitCount(t *testing.T) {
	effect := parseEffectOrFail(t, "draw 3 cards")
	assert.Equal(t, ability.Standard(ability.StandardEffect{Kind: ability.EffectDrawCards, Count: 3}), effect)
}

func TestParseEffect_YouMayPrefixMarksTheEffectOptional(t *testing.T) {
	effect := parseEffectOrFail(t, "you may draw a card")
	assert.True(t, effect.Optional)
	assert.Equal(t, ability.EffectShapeStandardWithOptions, effect.Kind)
}

func TestParseEffect_DiscardYourHandBeforeBareDiscardShadowsIt(t *testing.T) {
	effect := parseEffectOrFail(t, "discard your hand")
	assert.Equal(t, ability.EffectDiscardHand, effect.Standard.Kind)
}

func TestParseEffect_GainSparkPointsAndEnergy(t *testing.T) {
	spark := parseEffectOrFail(t, "gain 2 spark")
	assert.Equal(t, ability.StandardEffect{Kind: ability.EffectGainSpark, Spark: identifiers.Spark(2)}, spark.Standard)

	points := parseEffectOrFail(t, "gain 3 point")
	assert.Equal(t, ability.StandardEffect{Kind: ability.EffectGainPoints, Points: identifiers.Points(3)}, points.Standard)

	energy := parseEffectOrFail(t, "gain 1 energy")
	assert.Equal(t, ability.StandardEffect{Kind: ability.EffectGainEnergy, Energy: identifiers.Energy(1)}, energy.Standard)
}

func TestParseEffect_EnemyLosesPointsAndGainsEnergy(t *testing.T) {
	lose := parseEffectOrFail(t, "the enemy loses 2 point")
	assert.Equal(t, ability.EffectEnemyLosesPoints, lose.Standard.Kind)
	assert.Equal(t, identifiers.Points(2), lose.Standard.Points)

	gain := parseEffectOrFail(t, "the enemy gains 2 energy")
	assert.Equal(t, ability.EffectEnemyGainsEnergy, gain.Standard.Kind)
	assert.Equal(t, identifiers.Energy(2), gain.Standard.Energy)
}

func TestParseEffect_CounterItUnlessPaysBeforeBareCounterItShadowsIt(t *testing.T) {
	withCost := parseEffectOrFail(t, "counter it unless its controller pays 2 energy")
	assert.Equal(t, ability.EffectCounterspellUnlessPays, withCost.Standard.Kind)
	assert.Equal(t, identifiers.Energy(2), withCost.Standard.Energy)

	bare := parseEffectOrFail(t, "counter it")
	assert.Equal(t, ability.EffectCounterspell, bare.Standard.Kind)
}

func TestParseEffect_ReturnUpToCountFromYourVoidToHand(t *testing.T) {
	effect := parseEffectOrFail(t, "return up to 2 characters from your void to hand")
	assert.Equal(t, ability.EffectReturnUpToCountFromYourVoidToHand, effect.Standard.Kind)
	assert.Equal(t, 2, effect.Standard.Count)
}

func TestParseEffect_ReturnToHand(t *testing.T) {
	effect := parseEffectOrFail(t, "return your character to hand")
	assert.Equal(t, ability.EffectReturnToHand, effect.Standard.Kind)
	assert.Equal(t, ability.PredicateYour, effect.Standard.Target.Kind)
}

func TestParseEffect_DissolveAndBanishTakeACharacterTarget(t *testing.T) {
	dissolve := parseEffectOrFail(t, "dissolve enemy character")
	assert.Equal(t, ability.EffectDissolveCharacter, dissolve.Standard.Kind)
	assert.Equal(t, ability.PredicateEnemy, dissolve.Standard.Target.Kind)

	banish := parseEffectOrFail(t, "banish your character")
	assert.Equal(t, ability.EffectBanishCharacter, banish.Standard.Kind)
}

func TestParseEffect_ForeseeAndKindle(t *testing.T) {
	foresee := parseEffectOrFail(t, "foresee 2")
	assert.Equal(t, ability.StandardEffect{Kind: ability.EffectForesee, Count: 2}, foresee.Standard)

	kindle := parseEffectOrFail(t, "kindle 1")
	assert.Equal(t, ability.StandardEffect{Kind: ability.EffectKindle, Count: 1}, kindle.Standard)
}

func TestParseEffect_MaterializeVariants(t *testing.T) {
	silentCopy := parseEffectOrFail(t, "materialize a silent copy of dream-weaver")
	assert.Equal(t, ability.EffectMaterializeCharacterSilentCopy, silentCopy.Standard.Kind)
	assert.Equal(t, identifiers.BaseCardId("dream-weaver"), silentCopy.Standard.BaseCard)

	fromVoid := parseEffectOrFail(t, "materialize a character from your void")
	assert.Equal(t, ability.EffectMaterializeCharacterFromVoid, fromVoid.Standard.Kind)
}

func TestParseEffect_TakeExtraTurnAndYouWin(t *testing.T) {
	extra := parseEffectOrFail(t, "take an extra turn")
	assert.Equal(t, ability.EffectTakeExtraTurn, extra.Standard.Kind)

	win := parseEffectOrFail(t, "you win the game")
	assert.Equal(t, ability.EffectYouWin, win.Standard.Kind)
}

func TestParseEffect_UnrecognizedTextFails(t *testing.T) {
	c := newCursor(lexOrFail(t, "do something nonsensical"))
	_, ok := parseEffect(c)
	assert.False(t, ok)
}
