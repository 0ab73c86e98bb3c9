package combat

import (
	"fmt"
	"sort"
	"sync"

	"langbattle/internal/config"
)

type entityTemplate struct {
	name       string
	stats      Stats
	moves      []Move
	weaknesses []Move
	strengths  []Move
}

// Roster is the per-type entity factory. Base stats are fixed per type;
// level is recorded on the entity but does not scale stats.
type Roster struct {
	templates map[EntityType]entityTemplate
	catalog   *Catalog
}

func NewRoster(rc *config.RosterConfig, catalog *Catalog) (*Roster, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	r := &Roster{templates: map[EntityType]entityTemplate{}, catalog: catalog}
	if rc == nil {
		return r, nil
	}
	for _, def := range rc.Entities {
		t, err := ParseEntityType(def.ID)
		if err != nil {
			return nil, err
		}
		tpl := entityTemplate{
			name: def.Name,
			stats: Stats{
				MaxHealth:     nonNegative(def.MaxHealth),
				Attack:        nonNegative(def.Attack),
				Defense:       nonNegative(def.Defense),
				Accuracy:      nonNegative(def.Accuracy),
				ErrorHandling: nonNegative(def.ErrorHandling),
			},
		}
		if tpl.moves, err = r.parseMoves(def.ID, def.Moves); err != nil {
			return nil, err
		}
		if tpl.weaknesses, err = r.parseMoves(def.ID, def.Weaknesses); err != nil {
			return nil, err
		}
		if tpl.strengths, err = r.parseMoves(def.ID, def.Strengths); err != nil {
			return nil, err
		}
		r.templates[t] = tpl
	}
	return r, nil
}

func (r *Roster) parseMoves(owner string, keys []string) ([]Move, error) {
	out := make([]Move, 0, len(keys))
	for _, k := range keys {
		mv, err := ParseMove(k)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", owner, err)
		}
		if _, ok := r.catalog.Spec(mv); !ok {
			return nil, fmt.Errorf("entity %q: %w: %q is not in the catalog", owner, ErrUnknownMove, k)
		}
		out = append(out, mv)
	}
	return out, nil
}

func (r *Roster) Build(t EntityType, level uint32) (*Entity, error) {
	tpl, ok := r.templates[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, t)
	}
	name := tpl.name
	if name == "" {
		name = t.Key()
	}
	return NewEntity(t, name, level, tpl.stats, tpl.moves, tpl.weaknesses, tpl.strengths, r.catalog), nil
}

// BuildTeam builds one entity per key in slot order.
func (r *Roster) BuildTeam(keys []string, level uint32) (*Team, error) {
	team := NewTeam()
	for _, k := range keys {
		t, err := ParseEntityType(k)
		if err != nil {
			return nil, err
		}
		e, err := r.Build(t, level)
		if err != nil {
			return nil, err
		}
		if err := team.Push(e); err != nil {
			return nil, err
		}
	}
	return team, nil
}

func (r *Roster) Types() []EntityType {
	out := make([]EntityType, 0, len(r.templates))
	for t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Roster) Catalog() *Catalog { return r.catalog }

var (
	defaultRosterOnce sync.Once
	defaultRoster     *Roster
)

// DefaultRoster builds the roster from the embedded configuration.
func DefaultRoster() *Roster {
	defaultRosterOnce.Do(func() {
		_, rc, _, err := config.Defaults()
		if err != nil {
			panic(fmt.Sprintf("combat: embedded roster config: %v", err))
		}
		r, err := NewRoster(rc, DefaultCatalog())
		if err != nil {
			panic(fmt.Sprintf("combat: embedded roster config: %v", err))
		}
		defaultRoster = r
	})
	return defaultRoster
}
