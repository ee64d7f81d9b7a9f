package battle

import (
	"fmt"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// LegalActionsKind is the closed set of eleven variants: the nine §4.2
// names, 1:1 with LegalActions in legal_actions_data.rs (original_source),
// plus the void-card and hand-card selection prompts.
type LegalActionsKind int

const (
	NoActionsGameOver LegalActionsKind = iota
	NoActionsOpponentPrompt
	NoActionsOpponentPriority
	NoActionsInCurrentPhase
	LegalStandard
	LegalSelectCharacterPrompt
	LegalSelectStackCardPrompt
	LegalSelectVoidCardPrompt
	LegalSelectHandCardPrompt
	LegalSelectPromptChoicePrompt
	LegalSelectEnergyValuePrompt
)

// PrimaryLegalAction is the closed set of "primary" standard actions.
type PrimaryLegalAction int

const (
	PrimaryPassPriority PrimaryLegalAction = iota
	PrimaryEndTurn
	PrimaryStartNextTurn
)

// ActivatedAbilityRef names one playable activated ability by the
// character it lives on and its ability number, mirroring §3's
// ActivatedAbilityId = (CharacterId, AbilityNumber).
type ActivatedAbilityRef struct {
	Character identifiers.CharacterId
	Ability   identifiers.AbilityNumber
}

// LegalActions is the result of enumerating one player's legal actions in
// one state, per §4.2.
type LegalActions struct {
	Kind LegalActionsKind

	Primary            PrimaryLegalAction
	PlayCardFromHand   []identifiers.HandCardId
	ActivatedAbilities []ActivatedAbilityRef

	ValidCharacters []identifiers.CharacterId
	ValidStackCards []identifiers.StackCardId
	ValidVoidCards  []identifiers.VoidCardId
	ValidHandCards  []identifiers.HandCardId
	ChoiceCount     int
	MinEnergy       identifiers.Energy
	MaxEnergy       identifiers.Energy
}

func standard(primary PrimaryLegalAction, playable []identifiers.HandCardId, abilities []ActivatedAbilityRef) LegalActions {
	return LegalActions{Kind: LegalStandard, Primary: primary, PlayCardFromHand: playable, ActivatedAbilities: abilities}
}

func selectCharacter(valid []identifiers.CharacterId) LegalActions {
	return LegalActions{Kind: LegalSelectCharacterPrompt, ValidCharacters: valid}
}

func selectStackCard(valid []identifiers.StackCardId) LegalActions {
	return LegalActions{Kind: LegalSelectStackCardPrompt, ValidStackCards: valid}
}

func selectVoidCard(valid []identifiers.VoidCardId) LegalActions {
	return LegalActions{Kind: LegalSelectVoidCardPrompt, ValidVoidCards: valid}
}

func selectHandCard(valid []identifiers.HandCardId) LegalActions {
	return LegalActions{Kind: LegalSelectHandCardPrompt, ValidHandCards: valid}
}

func selectPromptChoice(count int) LegalActions {
	return LegalActions{Kind: LegalSelectPromptChoicePrompt, ChoiceCount: count}
}

func selectEnergyValue(min, max identifiers.Energy) LegalActions {
	return LegalActions{Kind: LegalSelectEnergyValuePrompt, MinEnergy: min, MaxEnergy: max}
}

// Contains reports whether action is legal given la, per legal_actions_data.rs's
// LegalActions::contains.
func (la LegalActions) Contains(action Action) bool {
	switch action.Kind {
	case ActionPlayCardFromHand:
		if la.Kind != LegalStandard {
			return false
		}
		for _, id := range la.PlayCardFromHand {
			if id == action.HandCard {
				return true
			}
		}
		return false
	case ActionPassPriority:
		return la.Kind == LegalStandard && la.Primary == PrimaryPassPriority
	case ActionEndTurn:
		return la.Kind == LegalStandard && la.Primary == PrimaryEndTurn
	case ActionStartNextTurn:
		return la.Kind == LegalStandard && la.Primary == PrimaryStartNextTurn
	case ActionSelectCharacterTarget:
		if la.Kind != LegalSelectCharacterPrompt {
			return false
		}
		for _, id := range la.ValidCharacters {
			if id == action.Character {
				return true
			}
		}
		return false
	case ActionSelectStackCardTarget:
		if la.Kind != LegalSelectStackCardPrompt {
			return false
		}
		for _, id := range la.ValidStackCards {
			if id == action.StackCard {
				return true
			}
		}
		return false
	case ActionSelectVoidCardTarget:
		if la.Kind != LegalSelectVoidCardPrompt {
			return false
		}
		for _, id := range la.ValidVoidCards {
			if id == action.VoidCard {
				return true
			}
		}
		return false
	case ActionSelectHandCardTarget:
		if la.Kind != LegalSelectHandCardPrompt {
			return false
		}
		for _, id := range la.ValidHandCards {
			if id == action.HandCard {
				return true
			}
		}
		return false
	case ActionActivateAbility:
		if la.Kind != LegalStandard {
			return false
		}
		for _, ref := range la.ActivatedAbilities {
			if ref.Character == action.Character && ref.Ability == action.Ability {
				return true
			}
		}
		return false
	case ActionSelectPromptChoice:
		return la.Kind == LegalSelectPromptChoicePrompt && action.ChoiceIndex >= 0 && action.ChoiceIndex < la.ChoiceCount
	case ActionSelectEnergyAdditionalCost:
		return la.Kind == LegalSelectEnergyValuePrompt && action.Energy >= la.MinEnergy && action.Energy <= la.MaxEnergy
	default:
		return false
	}
}

// IsEmpty reports whether there is nothing legal to do.
func (la LegalActions) IsEmpty() bool {
	switch la.Kind {
	case NoActionsGameOver, NoActionsOpponentPrompt, NoActionsOpponentPriority, NoActionsInCurrentPhase:
		return true
	case LegalStandard:
		return false
	case LegalSelectCharacterPrompt:
		return len(la.ValidCharacters) == 0
	case LegalSelectStackCardPrompt:
		return len(la.ValidStackCards) == 0
	case LegalSelectVoidCardPrompt:
		return len(la.ValidVoidCards) == 0
	case LegalSelectHandCardPrompt:
		return len(la.ValidHandCards) == 0
	case LegalSelectPromptChoicePrompt:
		return la.ChoiceCount == 0
	case LegalSelectEnergyValuePrompt:
		return la.MaxEnergy < la.MinEnergy
	default:
		return true
	}
}

// Len returns the exact count of distinct legal actions.
func (la LegalActions) Len() int {
	switch la.Kind {
	case NoActionsGameOver, NoActionsOpponentPrompt, NoActionsOpponentPriority, NoActionsInCurrentPhase:
		return 0
	case LegalStandard:
		return 1 + len(la.PlayCardFromHand) + len(la.ActivatedAbilities)
	case LegalSelectCharacterPrompt:
		return len(la.ValidCharacters)
	case LegalSelectStackCardPrompt:
		return len(la.ValidStackCards)
	case LegalSelectVoidCardPrompt:
		return len(la.ValidVoidCards)
	case LegalSelectHandCardPrompt:
		return len(la.ValidHandCards)
	case LegalSelectPromptChoicePrompt:
		return la.ChoiceCount
	case LegalSelectEnergyValuePrompt:
		if la.MaxEnergy >= la.MinEnergy {
			return int(la.MaxEnergy-la.MinEnergy) + 1
		}
		return 0
	default:
		return 0
	}
}

// String renders la for error messages (engineerr.IllegalActionError embeds
// it as the permitted set).
func (la LegalActions) String() string {
	return fmt.Sprintf("LegalActions{kind=%d, actions=%d}", la.Kind, la.Len())
}

// All enumerates every legal action explicitly, in the deterministic order
// §4.2 requires: cards by CardId, choices by index, energy values ascending.
func (la LegalActions) All() []Action {
	var out []Action
	switch la.Kind {
	case LegalStandard:
		switch la.Primary {
		case PrimaryPassPriority:
			out = append(out, PassPriority())
		case PrimaryEndTurn:
			out = append(out, EndTurn())
		case PrimaryStartNextTurn:
			out = append(out, StartNextTurn())
		}
		for _, id := range la.PlayCardFromHand {
			out = append(out, PlayCardFromHand(id))
		}
		for _, ref := range la.ActivatedAbilities {
			out = append(out, ActivateAbility(ref.Character, ref.Ability))
		}
	case LegalSelectCharacterPrompt:
		for _, id := range la.ValidCharacters {
			out = append(out, SelectCharacterTarget(id))
		}
	case LegalSelectStackCardPrompt:
		for _, id := range la.ValidStackCards {
			out = append(out, SelectStackCardTarget(id))
		}
	case LegalSelectVoidCardPrompt:
		for _, id := range la.ValidVoidCards {
			out = append(out, SelectVoidCardTarget(id))
		}
	case LegalSelectHandCardPrompt:
		for _, id := range la.ValidHandCards {
			out = append(out, SelectHandCardTarget(id))
		}
	case LegalSelectPromptChoicePrompt:
		for i := 0; i < la.ChoiceCount; i++ {
			out = append(out, SelectPromptChoice(i))
		}
	case LegalSelectEnergyValuePrompt:
		for e := la.MinEnergy; e <= la.MaxEnergy; e++ {
			out = append(out, SelectEnergyAdditionalCost(e))
		}
	}
	return out
}
