package combat

import "langbattle/internal/util"

// alwaysHit draws 0 for every roll, so any accuracy above 0 lands and
// random move choice picks the first move.
func alwaysHit() Rand { return util.NewScript(0) }

func fighter(name string, t EntityType, st Stats, moves []Move, weak, strong []Move) *Entity {
	return NewEntity(t, name, 1, st, moves, weak, strong, nil)
}

func plain(name string, st Stats, moves ...Move) *Entity {
	return fighter(name, TypeUnknown, st, moves, nil, nil)
}
