package combat

// TurnOrder decides who acts first. A missing queued move counts as
// priority 0 and ties go to a.
func TurnOrder(a, b *Entity) (first, second *Entity) {
	pa, _ := a.MovePriority()
	pb, _ := b.MovePriority()
	if pa >= pb {
		return a, b
	}
	return b, a
}

// ResolveTurn runs both queued moves in priority order and returns the
// narration. The second mover always acts, even at 0 health; fainting is
// for the caller to check afterwards. a and b must be distinct.
func ResolveTurn(a, b *Entity, rng Rand) []string {
	if a == nil || b == nil {
		panic("combat: ResolveTurn called with a nil entity")
	}
	if a == b {
		panic("combat: ResolveTurn needs two distinct entities")
	}
	first, second := TurnOrder(a, b)
	out := first.ExecuteMove(second, rng)
	return append(out, second.ExecuteMove(first, rng)...)
}
