package battle

import "github.com/dreamtides/battlecore/internal/engine/identifiers"

// AnimationKind names one display-layer animation the effect executor can
// request (§4.4 "emitting animations"). The set only grows as new effects
// earn a display cue; there is no generic fallback.
type AnimationKind string

// AnimationFireProjectile is emitted by the standard effects §4.4 calls out
// by name as having a visible strike: DissolveCharacter fires it at the
// dissolved character, Counterspell/Negate and a declined
// CounterspellUnlessPays fire it at the countered stack item.
const AnimationFireProjectile AnimationKind = "fire_projectile"

// AnimationCommand is one entry in the animation command sequence the view
// builder attaches alongside a BattleView snapshot (§2, §6.1). The display
// layer renders it and never mutates engine state from it.
type AnimationCommand struct {
	Kind   AnimationKind
	Source identifiers.CardId
	Target identifiers.CardId
}

// emitAnimation appends one AnimationCommand to the batch Apply is
// accumulating for the action currently resolving; BuildView copies the
// batch onto the View it returns.
func emitAnimation(s *State, kind AnimationKind, source, target identifiers.CardId) {
	s.Animations = append(s.Animations, AnimationCommand{Kind: kind, Source: source, Target: target})
}
