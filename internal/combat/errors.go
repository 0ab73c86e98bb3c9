package combat

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMoveIndex  = errors.New("move index out of range")
	ErrInvalidTeamIndex  = errors.New("team index out of range")
	ErrEmptyTeam         = errors.New("team has no entities")
	ErrTeamFull          = errors.New("team is full")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrUnknownMove       = errors.New("unknown move")
	ErrBattleOver        = errors.New("battle is already over")
	ErrFaintedSwitch     = errors.New("cannot switch to a fainted entity")
	ErrAlreadyActive     = errors.New("entity is already active")
)

// MoveIndexError reports a move selection outside [0, Len).
type MoveIndexError struct {
	Index int
	Len   int
}

func (e *MoveIndexError) Error() string {
	return fmt.Sprintf("move index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *MoveIndexError) Is(target error) bool { return target == ErrInvalidMoveIndex }

// TeamIndexError reports a roster slot outside [0, Len).
type TeamIndexError struct {
	Index int
	Len   int
}

func (e *TeamIndexError) Error() string {
	return fmt.Sprintf("team index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *TeamIndexError) Is(target error) bool { return target == ErrInvalidTeamIndex }
