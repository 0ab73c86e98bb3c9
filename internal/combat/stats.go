package combat

import "math"

const (
	StatFloor       = 5
	AccuracyCeiling = 100

	weaknessMultiplier = 1.5
	strengthMultiplier = 0.5

	// absorbs float error when an exact product lands on an integer
	truncEpsilon = 1e-9
)

// Damage applies raw damage reduced by defense. When via is one of the
// entity's weaknesses the damage is scaled by 1.5, by 0.5 for a strength.
// The result is truncated once after all scaling and health floors at 0.
// It returns the health actually removed.
func (e *Entity) Damage(raw uint32, via Move) uint32 {
	return e.takeDamage(raw, e.Effectiveness(via))
}

func (e *Entity) takeDamage(raw uint32, mult float64) uint32 {
	def := e.defense
	if def > 100 {
		def = 100
	}
	v := float64(raw) * mult * float64(100-def) / 100
	if v <= 0 {
		return 0
	}
	var dmg uint32
	if v >= math.MaxUint32 {
		dmg = math.MaxUint32
	} else {
		dmg = uint32(v + truncEpsilon)
	}
	if dmg >= e.health {
		dmg = e.health
		e.health = 0
		return dmg
	}
	e.health -= dmg
	return dmg
}

// Heal restores health up to MaxHealth and returns the amount restored.
func (e *Entity) Heal(amount uint32) uint32 {
	missing := e.maxHealth - e.health
	if amount >= missing {
		e.health = e.maxHealth
		return missing
	}
	e.health += amount
	return amount
}

// ChangeStat adds delta to a stat, clamped to [5, 100] for accuracy and to
// [5, MaxUint32] otherwise.
func (e *Entity) ChangeStat(stat Stat, delta int32) {
	p := e.statRef(stat)
	if p == nil {
		return
	}
	v := int64(*p) + int64(delta)
	ceiling := int64(math.MaxUint32)
	if stat == StatAccuracy {
		ceiling = AccuracyCeiling
	}
	if v < StatFloor {
		v = StatFloor
	}
	if v > ceiling {
		v = ceiling
	}
	*p = uint32(v)
}

// AccuracyRoll succeeds with probability accuracy/100.
func (e *Entity) AccuracyRoll(rng Rand) bool {
	return uint32(rng.Intn(100)) < e.accuracy
}

// AttackMultiplier is 1 + attack/100.
func (e *Entity) AttackMultiplier() float64 {
	return 1 + float64(e.attack)/100
}

// Effectiveness is 1.5 for a weakness, 0.5 for a strength and 1 otherwise.
func (e *Entity) Effectiveness(mv Move) float64 {
	switch {
	case e.weaknesses[mv]:
		return weaknessMultiplier
	case e.strengths[mv]:
		return strengthMultiplier
	}
	return 1
}

func (e *Entity) statRef(stat Stat) *uint32 {
	switch stat {
	case StatAttack:
		return &e.attack
	case StatDefense:
		return &e.defense
	case StatAccuracy:
		return &e.accuracy
	case StatErrorHandling:
		return &e.errorHandling
	}
	return nil
}

// Stat reads the current value of a changeable stat, 0 for an unknown one.
func (e *Entity) Stat(stat Stat) uint32 {
	if p := e.statRef(stat); p != nil {
		return *p
	}
	return 0
}
