package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_RoundTripsEventAbilities(t *testing.T) {
	for _, text := range []string{
		"draw 2 cards.",
		"discard your hand.",
		"gain 2 spark.",
		"gain 3 points.",
		"the enemy loses 2 points.",
		"counter it.",
		"foresee 2.",
		"kindle 1.",
		"take an extra turn.",
		"you win the game.",
	} {
		abilities, err := Compile(text, Bindings{})
		require.NoError(t, err, text)
		require.Len(t, abilities, 1, text)

		out := Serialize(abilities)
		reparsed, err := Compile(out, Bindings{})
		require.NoError(t, err, "re-parsing %q", out)
		assert.Equal(t, abilities, reparsed, text)
	}
}

func TestSerialize_RoundTripsATriggeredAbility(t *testing.T) {
	abilities, err := Compile("{Materialized}: draw a card.", Bindings{})
	require.NoError(t, err)

	out := Serialize(abilities)
	reparsed, err := Compile(out, Bindings{})
	require.NoError(t, err)
	assert.Equal(t, abilities, reparsed)
}

func TestSerialize_RoundTripsAnActivatedAbility(t *testing.T) {
	abilities, err := Compile("Pay 2 energy: draw a card.", Bindings{})
	require.NoError(t, err)

	out := Serialize(abilities)
	reparsed, err := Compile(out, Bindings{})
	require.NoError(t, err)
	assert.Equal(t, abilities, reparsed)
}

func TestSerialize_RoundTripsABareReclaim(t *testing.T) {
	abilities, err := Compile("{Reclaim}.", Bindings{})
	require.NoError(t, err)
	assert.Equal(t, "{Reclaim}", Serialize(abilities))
}

func TestSerialize_JoinsMultipleAbilitiesWithASpace(t *testing.T) {
	abilities, err := Compile("Draw a card. Gain 1 energy.", Bindings{})
	require.NoError(t, err)
	assert.Equal(t, "draw 1 cards. gain 1 energy.", Serialize(abilities))
}
