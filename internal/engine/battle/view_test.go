package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

func TestBuildView_OwnHandIsFullyVisible(t *testing.T) {
	s := newTestBattle(1)
	view := BuildView(s, identifiers.PlayerOne)

	own := view.Players[identifiers.PlayerOne]
	require.Len(t, own.Hand, own.HandCount)
	for _, c := range own.Hand {
		assert.False(t, c.FaceDown)
		assert.NotEmpty(t, c.Name)
	}
}

func TestBuildView_OpponentHandIsFaceDown(t *testing.T) {
	s := newTestBattle(1)
	view := BuildView(s, identifiers.PlayerOne)

	opponent := view.Players[identifiers.PlayerTwo]
	require.Len(t, opponent.Hand, opponent.HandCount)
	for _, c := range opponent.Hand {
		assert.True(t, c.FaceDown)
		assert.Empty(t, c.Name)
	}
}

func TestBuildView_ReflectsCurrentPhaseAndTurn(t *testing.T) {
	s := newTestBattle(1)
	view := BuildView(s, identifiers.PlayerOne)

	assert.Equal(t, "MAIN", view.Phase)
	assert.Equal(t, identifiers.TurnId(0), view.Turn)
	assert.Equal(t, identifiers.PlayerOne, view.ActivePlayer)
	assert.Equal(t, identifiers.PlayerOne, view.PriorityPlayer)
	assert.Nil(t, view.Winner)
}

func TestBuildView_StackEntriesShowControllerAndCard(t *testing.T) {
	s := newTestBattle(1)
	s.Players[identifiers.PlayerOne].Energy = identifiers.Energy(5)

	handCard := firstPlayableHandCard(t, s, identifiers.PlayerOne)
	require.NoError(t, Apply(s, identifiers.PlayerOne, PlayCardFromHand(handCard)))

	view := BuildView(s, identifiers.PlayerTwo)
	require.Len(t, view.Stack, 1)
	assert.Equal(t, identifiers.PlayerOne, view.Stack[0].Card.Controller)
	assert.NotEmpty(t, view.Stack[0].Card.Name)
}

func TestBuildView_SurfacesAnimationsAccumulatedDuringResolution(t *testing.T) {
	s := newTestBattle(1)
	s.Animations = append(s.Animations, AnimationCommand{Kind: AnimationFireProjectile, Source: 1, Target: 2})

	view := BuildView(s, identifiers.PlayerOne)
	require.Equal(t, []AnimationCommand{{Kind: AnimationFireProjectile, Source: 1, Target: 2}}, view.Animations)

	// BuildView copies the slice; mutating the view's copy must not reach
	// back into State.
	view.Animations[0].Target = 99
	assert.Equal(t, identifiers.CardId(2), s.Animations[0].Target)
}

func TestBuildView_LegalActionsMatchEnumerate(t *testing.T) {
	s := newTestBattle(1)
	view := BuildView(s, identifiers.PlayerOne)
	direct := Enumerate(s, identifiers.PlayerOne)
	assert.Equal(t, direct.Kind, view.Legal.Kind)
	assert.Equal(t, direct.Len(), view.Legal.Len())
}
