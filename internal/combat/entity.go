package combat

import (
	"fmt"

	"github.com/google/uuid"
)

// Stats are the base numbers an entity is created with.
type Stats struct {
	MaxHealth     uint32
	Attack        uint32
	Defense       uint32
	Accuracy      uint32
	ErrorHandling uint32
}

type queuedMove struct {
	move     Move
	priority uint8
}

type Entity struct {
	ID    string
	Type  EntityType
	Name  string
	Level uint32

	health        uint32
	maxHealth     uint32
	attack        uint32
	defense       uint32
	accuracy      uint32
	errorHandling uint32

	moves      []Move
	weaknesses map[Move]bool
	strengths  map[Move]bool
	queued     *queuedMove
	catalog    *Catalog
}

// NewEntity creates an entity at full health. A zero MaxHealth is raised to
// 1 and accuracy is capped at 100. A nil catalog uses DefaultCatalog.
func NewEntity(t EntityType, name string, level uint32, st Stats, moves, weaknesses, strengths []Move, catalog *Catalog) *Entity {
	if st.MaxHealth == 0 {
		st.MaxHealth = 1
	}
	if st.Accuracy > AccuracyCeiling {
		st.Accuracy = AccuracyCeiling
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	e := &Entity{
		ID:            uuid.NewString(),
		Type:          t,
		Name:          name,
		Level:         level,
		health:        st.MaxHealth,
		maxHealth:     st.MaxHealth,
		attack:        st.Attack,
		defense:       st.Defense,
		accuracy:      st.Accuracy,
		errorHandling: st.ErrorHandling,
		moves:         append([]Move(nil), moves...),
		weaknesses:    map[Move]bool{},
		strengths:     map[Move]bool{},
		catalog:       catalog,
	}
	for _, mv := range weaknesses {
		e.weaknesses[mv] = true
	}
	for _, mv := range strengths {
		e.strengths[mv] = true
	}
	return e
}

func (e *Entity) Health() uint32    { return e.health }
func (e *Entity) MaxHealth() uint32 { return e.maxHealth }
func (e *Entity) Fainted() bool     { return e.health == 0 }

// Moves returns a copy of the entity's move list.
func (e *Entity) Moves() []Move { return append([]Move(nil), e.moves...) }

func (e *Entity) Catalog() *Catalog { return e.catalog }

func (e *Entity) IsWeakTo(mv Move) bool        { return e.weaknesses[mv] }
func (e *Entity) IsStrongAgainst(mv Move) bool { return e.strengths[mv] }

// QueueMove replaces the queued move. The move is not checked against the
// entity's own list.
func (e *Entity) QueueMove(mv Move) {
	e.queued = &queuedMove{move: mv, priority: e.catalog.Priority(mv)}
}

// QueueMoveAt queues the move at index in the entity's own list. An invalid
// index leaves the queued slot untouched.
func (e *Entity) QueueMoveAt(index int) error {
	mv, err := e.MoveAt(index)
	if err != nil {
		return err
	}
	e.QueueMove(mv)
	return nil
}

func (e *Entity) MoveAt(index int) (Move, error) {
	if index < 0 || index >= len(e.moves) {
		return NoMove, &MoveIndexError{Index: index, Len: len(e.moves)}
	}
	return e.moves[index], nil
}

// QueuedMove reports the queued move, if any.
func (e *Entity) QueuedMove() (Move, bool) {
	if e.queued == nil {
		return NoMove, false
	}
	return e.queued.move, true
}

// MovePriority reports the priority of the queued move, if any.
func (e *Entity) MovePriority() (uint8, bool) {
	if e.queued == nil {
		return 0, false
	}
	return e.queued.priority, true
}

func (e *Entity) ClearQueuedMove() { e.queued = nil }

// ExecuteMove uses the queued move against target and returns the narration.
// The queued slot is consumed. Nothing queued is a silent no-op. A missed
// accuracy roll consumes the move without touching either entity.
func (e *Entity) ExecuteMove(target *Entity, rng Rand) []string {
	q := e.queued
	if q == nil {
		return nil
	}
	e.queued = nil

	out := []string{fmt.Sprintf("%s used %s...", e.Name, e.catalog.Name(q.move))}
	spec, ok := e.catalog.Spec(q.move)
	if !ok {
		return append(out, "But nothing happened.")
	}
	if !e.AccuracyRoll(rng) {
		return append(out, fmt.Sprintf("%s missed!", e.Name))
	}
	return append(out, dispatch(spec, e, target)...)
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s (Lv %d) %d/%d", e.Name, e.Level, e.health, e.maxHealth)
}
