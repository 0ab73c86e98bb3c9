package combat

import (
	"fmt"
	"strings"
)

const (
	superEffectiveText = "It's super effective!"
	notEffectiveText   = "It's not very effective..."
	defaultNoEffect    = "It had no effect on {target}."
)

// moveHit carries everything an effect needs for one successful use.
type moveHit struct {
	spec       MoveSpec
	caller     *Entity
	target     *Entity
	attackMult float64
	weak       bool
	strong     bool
	noEffect   bool
}

// multiplier is the attack multiplier composed with effectiveness.
func (h *moveHit) multiplier() float64 {
	switch {
	case h.weak:
		return h.attackMult * weaknessMultiplier
	case h.strong:
		return h.attackMult * strengthMultiplier
	}
	return h.attackMult
}

func (h *moveHit) say(text string) string {
	return strings.NewReplacer("{caller}", h.caller.Name, "{target}", h.target.Name).Replace(text)
}

// intro picks the caller-type flavor text when one exists.
func (h *moveHit) intro() string {
	if t, ok := h.spec.Flavor[h.caller.Type]; ok && t != "" {
		return h.say(t)
	}
	return h.say(h.spec.Text)
}

type effectFunc func(h *moveHit) []string

var effects = map[EffectKind]effectFunc{
	EffectStrike: strikeEffect,
	EffectGamble: gambleEffect,
	EffectDebuff: debuffEffect,
	EffectBuff:   buffEffect,
	EffectHeal:   healEffect,
}

// dispatch runs the move's effect and then appends effectiveness narration.
func dispatch(spec MoveSpec, caller, target *Entity) []string {
	h := &moveHit{
		spec:       spec,
		caller:     caller,
		target:     target,
		attackMult: caller.AttackMultiplier(),
		weak:       target.IsWeakTo(spec.Move),
		strong:     target.IsStrongAgainst(spec.Move),
	}
	fn, ok := effects[spec.Effect]
	if !ok {
		return []string{"But nothing happened."}
	}
	out := fn(h)
	if h.noEffect {
		return out
	}
	switch {
	case h.weak:
		out = append(out, superEffectiveText)
	case h.strong:
		out = append(out, notEffectiveText)
	}
	return out
}

func damageLine(e *Entity, dmg uint32) string {
	return fmt.Sprintf("%s took %d damage.", e.Name, dmg)
}

func strikeEffect(h *moveHit) []string {
	out := appendText(nil, h.intro())
	if h.weak && h.spec.WeakText != "" {
		out = append(out, h.say(h.spec.WeakText))
	} else if h.strong && h.spec.StrongText != "" {
		out = append(out, h.say(h.spec.StrongText))
	}
	dmg := h.target.takeDamage(h.spec.Power, h.multiplier())
	return append(out, damageLine(h.target, dmg))
}

// gambleEffect splits damage by comparing error handling. The side with the
// strictly higher value deals Power and takes Recoil, the other way round for
// the lower side, and Recoil both ways on a tie. Recoil to the caller is not
// scaled by attack or effectiveness.
func gambleEffect(h *moveHit) []string {
	out := appendText(nil, h.intro())
	dealt, taken := h.spec.Recoil, h.spec.Recoil
	switch {
	case h.caller.errorHandling > h.target.errorHandling:
		dealt = h.spec.Power
		out = appendText(out, h.say(h.spec.WinText))
	case h.caller.errorHandling < h.target.errorHandling:
		taken = h.spec.Power
		out = appendText(out, h.say(h.spec.LoseText))
	default:
		out = appendText(out, h.say(h.spec.TieText))
	}
	dmg := h.target.takeDamage(dealt, h.multiplier())
	out = append(out, damageLine(h.target, dmg))
	self := h.caller.takeDamage(taken, 1)
	return append(out, damageLine(h.caller, self))
}

func debuffEffect(h *moveHit) []string {
	if h.spec.Immune[h.target.Type] {
		h.noEffect = true
		text := h.spec.NoEffectText
		if text == "" {
			text = defaultNoEffect
		}
		return []string{h.say(text)}
	}
	out := appendText(nil, h.intro())
	h.target.ChangeStat(h.spec.Stat, h.spec.Delta)
	return append(out, statLine(h.target, h.spec.Stat, h.spec.Delta))
}

func buffEffect(h *moveHit) []string {
	out := appendText(nil, h.intro())
	h.caller.ChangeStat(h.spec.Stat, h.spec.Delta)
	return append(out, statLine(h.caller, h.spec.Stat, h.spec.Delta))
}

func healEffect(h *moveHit) []string {
	out := appendText(nil, h.intro())
	healed := h.caller.Heal(h.spec.Power)
	return append(out, fmt.Sprintf("%s recovered %d health.", h.caller.Name, healed))
}

func statLine(e *Entity, stat Stat, delta int32) string {
	verb := "rose"
	if delta < 0 {
		verb = "fell"
	}
	return fmt.Sprintf("%s's %s %s to %d.", e.Name, stat, verb, e.Stat(stat))
}

func appendText(out []string, text string) []string {
	if text == "" {
		return out
	}
	return append(out, text)
}
