package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtides/battlecore/internal/engine/battle"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

func TestActionWire_ToAction_SimpleKindsNeedNoFields(t *testing.T) {
	cases := []struct {
		kind string
		want battle.Action
	}{
		{actionKindPassPriority, battle.PassPriority()},
		{actionKindEndTurn, battle.EndTurn()},
		{actionKindStartNextTurn, battle.StartNextTurn()},
	}
	for _, c := range cases {
		got, err := ActionWire{Kind: c.kind}.ToAction()
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestActionWire_ToAction_PlayCardFromHandRequiresHandCard(t *testing.T) {
	_, err := ActionWire{Kind: actionKindPlayCardFromHand}.ToAction()
	assert.Error(t, err)

	handCard := int32(7)
	got, err := ActionWire{Kind: actionKindPlayCardFromHand, HandCard: &handCard}.ToAction()
	require.NoError(t, err)
	assert.Equal(t, battle.PlayCardFromHand(identifiers.HandCardId(7)), got)
}

func TestActionWire_ToAction_ActivateAbilityRequiresBothFields(t *testing.T) {
	character := int32(3)
	ability := 1

	_, err := ActionWire{Kind: actionKindActivateAbility, Character: &character}.ToAction()
	assert.Error(t, err)

	_, err = ActionWire{Kind: actionKindActivateAbility, Ability: &ability}.ToAction()
	assert.Error(t, err)

	got, err := ActionWire{Kind: actionKindActivateAbility, Character: &character, Ability: &ability}.ToAction()
	require.NoError(t, err)
	assert.Equal(t, battle.ActivateAbility(identifiers.CharacterId(3), identifiers.AbilityNumber(1)), got)
}

func TestActionWire_ToAction_UnknownKindErrors(t *testing.T) {
	_, err := ActionWire{Kind: "not_a_real_action"}.ToAction()
	assert.Error(t, err)
}

func TestLegalActionWire_RoundTripsThroughToAction(t *testing.T) {
	handCard := identifiers.HandCardId(4)
	actions := []battle.Action{
		battle.PlayCardFromHand(handCard),
		battle.PassPriority(),
		battle.EndTurn(),
		battle.StartNextTurn(),
		battle.SelectCharacterTarget(identifiers.CharacterId(2)),
		battle.SelectStackCardTarget(identifiers.StackCardId(5)),
		battle.SelectVoidCardTarget(identifiers.VoidCardId(6)),
		battle.SelectHandCardTarget(handCard),
		battle.SelectPromptChoice(1),
		battle.SelectEnergyAdditionalCost(identifiers.Energy(3)),
		battle.ActivateAbility(identifiers.CharacterId(2), identifiers.AbilityNumber(0)),
	}

	for _, a := range actions {
		wire := legalActionWire(a)
		back, err := wire.ToAction()
		require.NoError(t, err)
		assert.Equal(t, a, back)
	}
}

func TestPlayerWire_RoundTripsBothPlayers(t *testing.T) {
	for _, p := range []identifiers.PlayerName{identifiers.PlayerOne, identifiers.PlayerTwo} {
		back, err := parsePlayerWire(playerWire(p))
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}
}

func TestParsePlayerWire_RejectsUnknownString(t *testing.T) {
	_, err := parsePlayerWire("three")
	assert.Error(t, err)
}

func TestBuildViewWire_TranslatesHiddenHandsAndPlayerKeys(t *testing.T) {
	spark := identifiers.Spark(2)
	cost := identifiers.Energy(1)
	view := battle.View{
		Phase:          "MAIN",
		Turn:           identifiers.TurnId(0),
		ActivePlayer:   identifiers.PlayerOne,
		PriorityPlayer: identifiers.PlayerOne,
		Players: map[identifiers.PlayerName]battle.PlayerView{
			identifiers.PlayerOne: {
				Energy: identifiers.Energy(3),
				Hand: []battle.CardView{
					{ID: 1, Name: "Fire Sprite", CardType: "Character", Controller: identifiers.PlayerOne, EnergyCost: &cost, Spark: &spark},
				},
				HandCount: 1,
			},
			identifiers.PlayerTwo: {
				Hand:      []battle.CardView{{ID: 2, Controller: identifiers.PlayerTwo, FaceDown: true}},
				HandCount: 1,
			},
		},
		Void:     map[identifiers.PlayerName][]battle.CardView{},
		Banished: map[identifiers.PlayerName][]battle.CardView{},
	}

	wire := BuildViewWire(view)

	assert.Equal(t, "MAIN", wire.Phase)
	assert.Equal(t, "one", wire.ActivePlayer)
	require.Contains(t, wire.Players, "one")
	require.Contains(t, wire.Players, "two")
	require.Len(t, wire.Players["one"].Hand, 1)
	assert.Equal(t, "Fire Sprite", wire.Players["one"].Hand[0].Name)
	require.NotNil(t, wire.Players["one"].Hand[0].EnergyCost)
	assert.Equal(t, uint32(1), *wire.Players["one"].Hand[0].EnergyCost)

	require.Len(t, wire.Players["two"].Hand, 1)
	assert.True(t, wire.Players["two"].Hand[0].FaceDown)
	assert.Empty(t, wire.Players["two"].Hand[0].Name)
}

func TestBuildViewWire_SetsWinnerWhenPresent(t *testing.T) {
	winner := identifiers.PlayerTwo
	view := battle.View{
		Winner:   &winner,
		Players:  map[identifiers.PlayerName]battle.PlayerView{},
		Void:     map[identifiers.PlayerName][]battle.CardView{},
		Banished: map[identifiers.PlayerName][]battle.CardView{},
	}

	wire := BuildViewWire(view)
	require.NotNil(t, wire.Winner)
	assert.Equal(t, "two", *wire.Winner)
}

func TestBuildViewWire_TranslatesAnimations(t *testing.T) {
	view := battle.View{
		Players:    map[identifiers.PlayerName]battle.PlayerView{},
		Void:       map[identifiers.PlayerName][]battle.CardView{},
		Banished:   map[identifiers.PlayerName][]battle.CardView{},
		Animations: []battle.AnimationCommand{{Kind: battle.AnimationFireProjectile, Source: 1, Target: 2}},
	}

	wire := BuildViewWire(view)
	require.Len(t, wire.Animations, 1)
	assert.Equal(t, "fire_projectile", wire.Animations[0].Kind)
	assert.Equal(t, int32(1), wire.Animations[0].Source)
	assert.Equal(t, int32(2), wire.Animations[0].Target)
}

func TestBuildViewWire_NilWinnerStaysNil(t *testing.T) {
	view := battle.View{
		Players:  map[identifiers.PlayerName]battle.PlayerView{},
		Void:     map[identifiers.PlayerName][]battle.CardView{},
		Banished: map[identifiers.PlayerName][]battle.CardView{},
	}
	wire := BuildViewWire(view)
	assert.Nil(t, wire.Winner)
}
