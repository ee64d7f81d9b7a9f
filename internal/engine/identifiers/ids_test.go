package identifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergy_SubSaturatesAtZero(t *testing.T) {
	assert.Equal(t, Energy(0), Energy(3).Sub(Energy(5)))
	assert.Equal(t, Energy(0), Energy(3).Sub(Energy(3)))
	assert.Equal(t, Energy(2), Energy(5).Sub(Energy(3)))
}

func TestEnergy_Add(t *testing.T) {
	assert.Equal(t, Energy(8), Energy(5).Add(Energy(3)))
}

func TestSpark_SubSaturatesAtZero(t *testing.T) {
	assert.Equal(t, Spark(0), Spark(1).Sub(Spark(4)))
	assert.Equal(t, Spark(3), Spark(5).Sub(Spark(2)))
}

func TestPoints_SubSaturatesAtZero(t *testing.T) {
	assert.Equal(t, Points(0), Points(2).Sub(Points(9)))
	assert.Equal(t, Points(7), Points(10).Sub(Points(3)))
}

func TestPlayerName_Opponent(t *testing.T) {
	assert.Equal(t, PlayerTwo, PlayerOne.Opponent())
	assert.Equal(t, PlayerOne, PlayerTwo.Opponent())
}

func TestPlayerName_String(t *testing.T) {
	assert.Equal(t, "One", PlayerOne.String())
	assert.Equal(t, "Two", PlayerTwo.String())
}

func TestCardIdWrappers_RecoverUnderlyingCardId(t *testing.T) {
	base := CardId(7)
	assert.Equal(t, base, HandCardId(base).CardId())
	assert.Equal(t, base, StackCardId(base).CardId())
	assert.Equal(t, base, CharacterId(base).CardId())
	assert.Equal(t, base, VoidCardId(base).CardId())
}
