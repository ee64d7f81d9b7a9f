package ability

import "github.com/dreamtides/battlecore/internal/engine/identifiers"

// StandardEffectKind enumerates the primitive operations the effect
// executor knows how to resolve directly against battle state (§3, §4.4).
// The full authored card set uses roughly eighty of these; the set below
// covers every variant spec.md names explicitly plus the SPEC_FULL.md
// supplemented mechanics (Reclaim/Kindle/Foresee/Discover).
type StandardEffectKind int

const (
	EffectDrawCards StandardEffectKind = iota
	EffectDiscardCards
	EffectDiscardHand
	EffectBanishCharacter
	EffectBanishCardsFromVoid
	EffectBanishAllCardsFromVoid
	EffectDissolveCharacter
	EffectReturnToHand
	EffectReturnUpToCountFromYourVoidToHand
	EffectGainSpark
	EffectGainPoints
	EffectLosePoints
	EffectEnemyLosesPoints
	EffectGainEnergy
	EffectEnemyGainsEnergy
	EffectCounterspell
	EffectCounterspellUnlessPays
	EffectForesee
	EffectKindle
	EffectMaterializeCharacter
	EffectMaterializeCharacterFromVoid
	EffectMaterializeCharacterAtEndOfTurn
	EffectMaterializeCharacterSilentCopy
	EffectDiscoverCharacter
	EffectTakeExtraTurn
	EffectYouWin
	EffectNegate
	EffectAbandonCharacter
	EffectPreventDissolveThisTurn
)

// StandardEffect is one primitive operation plus the argument fields that
// its Kind uses. As with CardPredicate and Cost, this is a tagged struct
// rather than one interface implementation per variant.
type StandardEffect struct {
	Kind StandardEffectKind

	// Count is the N for DrawCards, DiscardCards,
	// ReturnUpToCountFromYourVoidToHand, Kindle, Foresee, BanishCardsFromVoid.
	Count int
	// Target is the predicate most target-bearing variants use to select a
	// candidate set via internal/engine/targeting.
	Target Predicate
	// Spark/Energy/Points are the magnitude argument for the matching gain/
	// lose effect.
	Spark  identifiers.Spark
	Energy identifiers.Energy
	Points identifiers.Points
	// BaseCard names the card MaterializeCharacter-family effects put into
	// play when it is not simply "the card this event discovered".
	BaseCard identifiers.BaseCardId
}

// EffectShapeKind is the closed sum of effect composition shapes, per §3
// "Effect is a sum".
type EffectShapeKind int

const (
	EffectShapeStandard EffectShapeKind = iota
	EffectShapeStandardWithOptions
	EffectShapeList
	EffectShapeModal
)

// Effect is the composed resolvable unit referenced from abilities.
type Effect struct {
	Kind EffectShapeKind

	// Standard is populated for Standard and StandardWithOptions.
	Standard StandardEffect
	// Optional is the StandardWithOptions "you may" flag (§4.4
	// "with-options... if optional, the executor first issues a yes/no
	// prompt").
	Optional bool
	// AdditionalModifiers carries any extra per-instance modifiers attached
	// to a StandardWithOptions effect (e.g. "+1 if you control a Warrior").
	AdditionalModifiers []StandardEffect

	// List is populated for EffectShapeList: effects resolved in order.
	List []Effect

	// Modal is populated for EffectShapeModal: exactly one is chosen at
	// resolution time.
	Modal []Effect
}

func Standard(effect StandardEffect) Effect {
	return Effect{Kind: EffectShapeStandard, Standard: effect}
}

func StandardOptional(effect StandardEffect) Effect {
	return Effect{Kind: EffectShapeStandardWithOptions, Standard: effect, Optional: true}
}

func List(effects ...Effect) Effect {
	return Effect{Kind: EffectShapeList, List: effects}
}

func Modal(choices ...Effect) Effect {
	return Effect{Kind: EffectShapeModal, Modal: choices}
}

// AbilityKind is the closed set of the four top-level ability shapes, §3.
type AbilityKind int

const (
	AbilityEvent AbilityKind = iota
	AbilityTriggered
	AbilityActivated
	AbilityStatic
)

// StaticEffectKind is the closed set of continuous effects a static ability
// can grant (§3 "continuous effects: alternate-cost play modes, prevention,
// aura grants").
type StaticEffectKind int

const (
	StaticAlternateCostPlayFromVoid StaticEffectKind = iota // Reclaim
	StaticPreventionAura
	StaticSparkGrantAura
)

type StaticEffect struct {
	Kind StaticEffectKind

	AlternateCost Cost
	Predicate     Predicate
	SparkBonus    identifiers.Spark
}

// Ability is one compiled ability on a card. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Ability struct {
	Kind   AbilityKind
	Number identifiers.AbilityNumber

	// Event: the Effect a non-character card resolves.
	Event Effect

	// Triggered.
	Trigger           TriggerEvent
	TriggeredEffect   Effect
	OncePerTurn       bool
	UntilEndOfTurn    bool

	// Activated.
	Costs           []Cost
	ActivatedEffect Effect
	IsFast          bool
	IsMulti         bool

	// Static.
	Static StaticEffect
}
