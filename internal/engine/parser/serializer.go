package parser

import (
	"fmt"
	"strings"

	"github.com/dreamtides/battlecore/internal/engine/ability"
)

// Serialize maps compiled Ability IR back to authored-style rules text, the
// symmetric counterpart of Compile (§4.6). The round trip holds at the IR
// level, not the text level: Compile(Serialize(abilities)) yields the same
// abilities for the forms serializer_test.go covers, while the text comes
// back in a canonical phrasing ("Draw a card." serializes as "draw 1
// cards."). Fixed phrasing fragments live in the switch statements below
// and trigger names come from the parser's triggerKeywords map, rather than
// a full Fluent runtime dependency (no example repo in the corpus imports a
// Fluent/ICU message-format library).
func Serialize(abilities []ability.Ability) string {
	parts := make([]string, 0, len(abilities))
	for _, a := range abilities {
		parts = append(parts, serializeAbility(a))
	}
	return strings.Join(parts, " ")
}

func serializeAbility(a ability.Ability) string {
	switch a.Kind {
	case ability.AbilityEvent:
		return serializeEffect(a.Event) + "."
	case ability.AbilityTriggered:
		return fmt.Sprintf("{%s}: %s.", serializeTrigger(a.Trigger), serializeEffect(a.TriggeredEffect))
	case ability.AbilityActivated:
		costs := make([]string, len(a.Costs))
		for i, cost := range a.Costs {
			costs[i] = serializeCost(cost)
		}
		return fmt.Sprintf("%s: %s.", strings.Join(costs, ", "), serializeEffect(a.ActivatedEffect))
	case ability.AbilityStatic:
		return serializeStatic(a.Static)
	default:
		return ""
	}
}

func serializeTrigger(t ability.TriggerEvent) string {
	if t.Kind == ability.TriggerKeywords {
		names := make([]string, len(t.Keywords))
		for i, k := range t.Keywords {
			names[i] = triggerName(k)
		}
		return strings.Join(names, "}, {")
	}
	return triggerName(t.Kind)
}

func triggerName(kind ability.TriggerEventKind) string {
	for name, k := range triggerKeywords {
		if k == kind {
			return name
		}
	}
	return "Unknown"
}

func serializeEffect(e ability.Effect) string {
	switch e.Kind {
	case ability.EffectShapeStandard:
		return serializeStandard(e.Standard)
	case ability.EffectShapeStandardWithOptions:
		return "you may " + serializeStandard(e.Standard)
	case ability.EffectShapeList:
		parts := make([]string, len(e.List))
		for i, sub := range e.List {
			parts[i] = serializeEffect(sub)
		}
		return strings.Join(parts, ", then ")
	case ability.EffectShapeModal:
		parts := make([]string, len(e.Modal))
		for i, sub := range e.Modal {
			parts[i] = serializeEffect(sub)
		}
		return "choose one — " + strings.Join(parts, " or ")
	default:
		return ""
	}
}

func serializeStandard(e ability.StandardEffect) string {
	switch e.Kind {
	case ability.EffectDrawCards:
		return fmt.Sprintf("draw %d cards", e.Count)
	case ability.EffectDiscardCards:
		return fmt.Sprintf("discard %d cards", e.Count)
	case ability.EffectDiscardHand:
		return "discard your hand"
	case ability.EffectDissolveCharacter:
		return "dissolve " + serializePredicate(e.Target)
	case ability.EffectBanishCharacter:
		return "banish " + serializePredicate(e.Target)
	case ability.EffectReturnToHand:
		return "return " + serializePredicate(e.Target) + " to hand"
	case ability.EffectReturnUpToCountFromYourVoidToHand:
		return fmt.Sprintf("return up to %d %s from your void to hand", e.Count, serializePredicate(e.Target))
	case ability.EffectGainSpark:
		return fmt.Sprintf("gain %d spark", e.Spark)
	case ability.EffectGainPoints:
		return fmt.Sprintf("gain %d points", e.Points)
	case ability.EffectLosePoints:
		return fmt.Sprintf("lose %d points", e.Points)
	case ability.EffectEnemyLosesPoints:
		return fmt.Sprintf("the enemy loses %d points", e.Points)
	case ability.EffectGainEnergy:
		return fmt.Sprintf("gain %d energy", e.Energy)
	case ability.EffectEnemyGainsEnergy:
		return fmt.Sprintf("the enemy gains %d energy", e.Energy)
	case ability.EffectCounterspell:
		return "counter it"
	case ability.EffectCounterspellUnlessPays:
		return fmt.Sprintf("counter it unless its controller pays %d energy", e.Energy)
	case ability.EffectForesee:
		return fmt.Sprintf("foresee %d", e.Count)
	case ability.EffectKindle:
		return fmt.Sprintf("kindle %d", e.Count)
	case ability.EffectDiscoverCharacter:
		return "discover a character"
	case ability.EffectMaterializeCharacterSilentCopy:
		return fmt.Sprintf("materialize a silent copy of %s", e.BaseCard)
	case ability.EffectMaterializeCharacterFromVoid:
		return "materialize a character from your void"
	case ability.EffectTakeExtraTurn:
		return "take an extra turn"
	case ability.EffectYouWin:
		return "you win the game"
	default:
		return ""
	}
}

func serializeCost(cost ability.Cost) string {
	switch cost.Kind {
	case ability.CostPayEnergy:
		return fmt.Sprintf("pay %d energy", cost.Energy)
	case ability.CostSpendOneOrMoreEnergy:
		return "pay one or more energy"
	case ability.CostBanishCardsFromVoid:
		return fmt.Sprintf("banish %d cards from your void", cost.Count)
	case ability.CostBanishAllCardsFromVoid:
		return "banish all other cards from your void"
	case ability.CostAbandonCharactersCount:
		return fmt.Sprintf("abandon %d %s", cost.Count, serializePredicate(cost.Predicate))
	case ability.CostAbandonDreamscapes:
		return fmt.Sprintf("abandon %d dreamscape", cost.Count)
	case ability.CostDiscardCards:
		return fmt.Sprintf("discard %d %s", cost.Count, serializePredicate(cost.Predicate))
	case ability.CostDiscardHand:
		return "discard your hand"
	case ability.CostBanishFromHand:
		return "banish " + serializePredicate(cost.Predicate) + " from your hand"
	case ability.CostLossOfMaximumEnergy:
		return fmt.Sprintf("lose %d maximum energy", cost.Energy)
	case ability.CostChoice:
		parts := make([]string, len(cost.Alternatives))
		for i, alt := range cost.Alternatives {
			parts[i] = serializeCost(alt)
		}
		return strings.Join(parts, " or ")
	default:
		return ""
	}
}

func serializeStatic(s ability.StaticEffect) string {
	switch s.Kind {
	case ability.StaticAlternateCostPlayFromVoid:
		if s.AlternateCost.Kind == ability.CostPayEnergy && s.AlternateCost.Energy == 0 && s.AlternateCost.Count == 0 {
			return "{Reclaim}"
		}
		return "{Reclaim} " + serializeCost(s.AlternateCost)
	default:
		return ""
	}
}

func serializePredicate(p ability.Predicate) string {
	var subject string
	switch p.Kind {
	case ability.PredicateThis:
		return "this"
	case ability.PredicateThat:
		return "that"
	case ability.PredicateIt:
		return "it"
	case ability.PredicateYour:
		subject = "your"
	case ability.PredicateEnemy:
		subject = "enemy"
	case ability.PredicateAnother:
		subject = "another"
	case ability.PredicateAny:
		subject = "any"
	case ability.PredicateYourVoid:
		subject = "your void"
	case ability.PredicateEnemyVoid:
		subject = "enemy void"
	}
	card := serializeCardPredicate(p.Card)
	if subject == "" {
		return card
	}
	return subject + " " + card
}

func serializeCardPredicate(p ability.CardPredicate) string {
	switch p.Kind {
	case ability.CardPredicateCard:
		return "a card"
	case ability.CardPredicateCharacter:
		return "a character"
	case ability.CardPredicateEvent:
		return "an event"
	case ability.CardPredicateDream:
		return "a dream"
	case ability.CardPredicateCharacterType:
		return "a " + p.Subtype
	case ability.CardPredicateNotCharacterType:
		return "a non-" + p.Subtype + " character"
	default:
		return "a card"
	}
}
