package combat

const MaxTeamSize = 6

// Team is an ordered roster with one active slot. Insertion order is slot
// order.
type Team struct {
	entities []*Entity
	active   int
}

func NewTeam() *Team {
	return &Team{entities: make([]*Entity, 0, MaxTeamSize)}
}

func (t *Team) Push(e *Entity) error {
	if len(t.entities) >= MaxTeamSize {
		return ErrTeamFull
	}
	t.entities = append(t.entities, e)
	return nil
}

// SetActive switches the active slot. An out-of-range index fails and leaves
// the active slot unchanged.
func (t *Team) SetActive(i int) error {
	if i < 0 || i >= len(t.entities) {
		return &TeamIndexError{Index: i, Len: len(t.entities)}
	}
	t.active = i
	return nil
}

func (t *Team) Active() (*Entity, error) {
	if len(t.entities) == 0 {
		return nil, ErrEmptyTeam
	}
	return t.entities[t.active], nil
}

func (t *Team) ActiveIndex() int { return t.active }
func (t *Team) Len() int         { return len(t.entities) }

func (t *Team) At(i int) (*Entity, error) {
	if i < 0 || i >= len(t.entities) {
		return nil, &TeamIndexError{Index: i, Len: len(t.entities)}
	}
	return t.entities[i], nil
}

// Entities returns the roster in slot order. The slice is a copy; the
// entities are shared.
func (t *Team) Entities() []*Entity {
	return append([]*Entity(nil), t.entities...)
}

// Remaining counts entities that have not fainted.
func (t *Team) Remaining() int {
	n := 0
	for _, e := range t.entities {
		if !e.Fainted() {
			n++
		}
	}
	return n
}

// RosterAdvance routes around fainted entities. A healthy active entity is
// kept; otherwise the first entity in slot order with health left becomes
// active. It returns true when the whole team has fainted.
func RosterAdvance(t *Team) bool {
	if len(t.entities) == 0 {
		return true
	}
	if !t.entities[t.active].Fainted() {
		return false
	}
	for i, e := range t.entities {
		if !e.Fainted() {
			t.active = i
			return false
		}
	}
	return true
}
