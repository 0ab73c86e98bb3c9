package combat

import "math"

// ChooseRandomMove picks a uniform-random index into the entity's moves.
// It returns -1 when the entity has no moves.
func ChooseRandomMove(e *Entity, rng Rand) int {
	if len(e.moves) == 0 {
		return -1
	}
	return rng.Intn(len(e.moves))
}

// QueueRandomMove queues a uniform-random move and reports it.
func QueueRandomMove(e *Entity, rng Rand) (Move, bool) {
	i := ChooseRandomMove(e, rng)
	if i < 0 {
		e.ClearQueuedMove()
		return NoMove, false
	}
	mv := e.moves[i]
	e.QueueMove(mv)
	return mv, true
}

// Controller decides a side's action for the next turn.
type Controller interface {
	Decide(b *Battle) Decision
}

// RandomController always attacks with a uniform-random move.
type RandomController struct {
	Rng Rand
}

func (rc RandomController) Decide(b *Battle) Decision {
	p, err := b.Player().Active()
	if err != nil {
		return Forfeit()
	}
	i := ChooseRandomMove(p, rc.Rng)
	if i < 0 {
		return Forfeit()
	}
	return Attack(i)
}

// GreedyController attacks with the move that scores best against the
// enemy's active entity, ties going to the lower slot. When SwitchBelow is
// set and the active entity's health ratio drops under it, the healthiest
// bench entity comes in instead.
type GreedyController struct {
	SwitchBelow float64
}

func (g GreedyController) Decide(b *Battle) Decision {
	p, err := b.Player().Active()
	if err != nil {
		return Forfeit()
	}
	foe, err := b.Enemy().Active()
	if err != nil {
		return Forfeit()
	}
	if g.SwitchBelow > 0 && healthRatio(p) < g.SwitchBelow {
		if slot, ok := healthiestBench(b.Player()); ok {
			return Switch(slot)
		}
	}
	best, bestScore := -1, math.Inf(-1)
	for i, mv := range p.moves {
		if s := scoreMove(p, foe, mv); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return Forfeit()
	}
	return Attack(best)
}

// scoreMove estimates the value of one use of mv, in health points.
func scoreMove(caller, target *Entity, mv Move) float64 {
	spec, ok := caller.catalog.Spec(mv)
	if !ok {
		return 0
	}
	hit := float64(caller.accuracy) / 100
	mult := caller.AttackMultiplier() * target.Effectiveness(mv)
	through := float64(100-min(target.defense, 100)) / 100
	switch spec.Effect {
	case EffectStrike:
		return hit * float64(spec.Power) * mult * through
	case EffectGamble:
		dealt, taken := spec.Recoil, spec.Recoil
		if caller.errorHandling > target.errorHandling {
			dealt = spec.Power
		} else if caller.errorHandling < target.errorHandling {
			taken = spec.Power
		}
		return hit * (float64(dealt)*mult*through - float64(taken))
	case EffectDebuff:
		if spec.Immune[target.Type] {
			return 0
		}
		return hit * 5
	case EffectBuff:
		return hit * 5
	case EffectHeal:
		return hit * float64(min(spec.Power, caller.maxHealth-caller.health))
	}
	return 0
}

func healthRatio(e *Entity) float64 {
	return float64(e.health) / float64(e.maxHealth)
}

func healthiestBench(t *Team) (int, bool) {
	slot, best := -1, healthRatio(t.entities[t.active])
	for i, e := range t.entities {
		if i == t.active || e.Fainted() {
			continue
		}
		if r := healthRatio(e); r > best {
			slot, best = i, r
		}
	}
	return slot, slot >= 0
}
