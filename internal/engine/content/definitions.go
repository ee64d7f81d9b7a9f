// Package content defines the immutable card/dreamwell definitions loaded
// from TOML tables (§3, §4.7) and the strict loader that produces them.
package content

import (
	"fmt"

	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// CardType is the broad shape of a card.
type CardType int

const (
	CardTypeCharacter CardType = iota
	CardTypeEvent
	CardTypeDream
)

func (t CardType) String() string {
	switch t {
	case CardTypeCharacter:
		return "Character"
	case CardTypeEvent:
		return "Event"
	case CardTypeDream:
		return "Dream"
	default:
		return "Unknown"
	}
}

// Rarity is the authored rarity tier, used for display only.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEnigma
)

// CardDefinition is the immutable, reference-counted-by-sharing record a
// table row compiles into. Every battle sharing a card name points at the
// same *CardDefinition.
type CardDefinition struct {
	BaseID      identifiers.BaseCardId
	Name        string
	CardType    CardType
	Subtype     string
	IsFast      bool
	Rarity      Rarity
	ImageNumber int

	// EnergyCost is nil for variable-cost ("X") cards; see the invariant in
	// §3 that variable-cost cards instead consume a ChooseEnergyValue prompt.
	EnergyCost *identifiers.Energy

	// Spark is non-nil if and only if CardType == CardTypeCharacter.
	Spark *identifiers.Spark

	RulesText string
	Abilities []ability.Ability
}

// Validate checks the invariants from spec §3 "Card definitions".
func (d *CardDefinition) Validate() error {
	if d.CardType == CardTypeCharacter && d.Spark == nil {
		return fmt.Errorf("content: card %q is a Character but has no spark", d.BaseID)
	}
	if d.CardType != CardTypeCharacter && d.Spark != nil {
		return fmt.Errorf("content: card %q is not a Character but has a spark", d.BaseID)
	}
	return nil
}

// DreamwellCardDefinition additionally carries the energy a dreamwell card
// produces and which step of the dreamwell track it occupies.
type DreamwellCardDefinition struct {
	CardDefinition
	EnergyProduced identifiers.Energy
	PhaseIndex     int
}

// CardList is a named, reusable list of base card ids (e.g. a starter deck),
// the content-addressed "card_lists.toml" supplement from SPEC_FULL §C.4.
type CardList struct {
	Name  string
	Cards []identifiers.BaseCardId
}
