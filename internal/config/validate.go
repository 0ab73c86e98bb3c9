package config

import (
	"errors"
	"fmt"
)

const (
	MaxMovesPerEntity = 4
	MaxTeamSize       = 6
	MaxPriority       = 255
)

var knownEffects = map[string]bool{
	"strike": true,
	"gamble": true,
	"debuff": true,
	"buff":   true,
	"heal":   true,
}

var knownStats = map[string]bool{
	"attack":         true,
	"defense":        true,
	"accuracy":       true,
	"error_handling": true,
}

// Validate checks each document and the references between them.
func Validate(mc *MovesConfig, rc *RosterConfig, bc *BattleConfig) error {
	var errs []error
	moveIDs := map[string]bool{}
	for _, m := range mc.Moves {
		if m.ID == "" {
			errs = append(errs, errors.New("moves: entry missing 'id'"))
			continue
		}
		if moveIDs[m.ID] {
			errs = append(errs, fmt.Errorf("moves: duplicate id %q", m.ID))
		}
		moveIDs[m.ID] = true
		if !knownEffects[m.Effect] {
			errs = append(errs, fmt.Errorf("moves: %q has unknown effect %q", m.ID, m.Effect))
		}
		if m.Priority < 0 || m.Priority > MaxPriority {
			errs = append(errs, fmt.Errorf("moves: %q priority %d out of range [0,%d]", m.ID, m.Priority, MaxPriority))
		}
		if m.Power < 0 || m.Recoil < 0 {
			errs = append(errs, fmt.Errorf("moves: %q power and recoil must be non-negative", m.ID))
		}
		if (m.Effect == "buff" || m.Effect == "debuff") && !knownStats[m.Stat] {
			errs = append(errs, fmt.Errorf("moves: %q has unknown stat %q", m.ID, m.Stat))
		}
	}

	entityIDs := map[string]bool{}
	for _, e := range rc.Entities {
		if e.ID == "" {
			errs = append(errs, errors.New("roster: entry missing 'id'"))
			continue
		}
		if entityIDs[e.ID] {
			errs = append(errs, fmt.Errorf("roster: duplicate id %q", e.ID))
		}
		entityIDs[e.ID] = true
		if e.MaxHealth <= 0 {
			errs = append(errs, fmt.Errorf("roster: %q max_health must be positive", e.ID))
		}
		if e.Attack < 0 || e.Defense < 0 || e.ErrorHandling < 0 {
			errs = append(errs, fmt.Errorf("roster: %q stats must be non-negative", e.ID))
		}
		if e.Accuracy < 0 || e.Accuracy > 100 {
			errs = append(errs, fmt.Errorf("roster: %q accuracy %d out of range [0,100]", e.ID, e.Accuracy))
		}
		if len(e.Moves) == 0 || len(e.Moves) > MaxMovesPerEntity {
			errs = append(errs, fmt.Errorf("roster: %q must have 1 to %d moves, has %d", e.ID, MaxMovesPerEntity, len(e.Moves)))
		}
		for _, list := range [][]string{e.Moves, e.Weaknesses, e.Strengths} {
			for _, id := range list {
				if _, ok := mc.Find(id); !ok {
					errs = append(errs, fmt.Errorf("roster: %q references unknown move %q", e.ID, id))
				}
			}
		}
		weak := map[string]bool{}
		for _, id := range e.Weaknesses {
			weak[id] = true
		}
		for _, id := range e.Strengths {
			if weak[id] {
				errs = append(errs, fmt.Errorf("roster: %q lists %q as both weakness and strength", e.ID, id))
			}
		}
	}

	for _, m := range mc.Moves {
		for _, id := range m.Immune {
			if !entityIDs[id] {
				errs = append(errs, fmt.Errorf("moves: %q immune list references unknown entity %q", m.ID, id))
			}
		}
		for id := range m.Flavor {
			if !entityIDs[id] {
				errs = append(errs, fmt.Errorf("moves: %q flavor references unknown entity %q", m.ID, id))
			}
		}
	}

	if bc != nil {
		lineups := []struct {
			side string
			ids  []string
		}{{"player", bc.Player}, {"enemy", bc.Enemy}}
		for _, l := range lineups {
			side, lineup := l.side, l.ids
			if len(lineup) == 0 || len(lineup) > MaxTeamSize {
				errs = append(errs, fmt.Errorf("battle: %s team must have 1 to %d entities, has %d", side, MaxTeamSize, len(lineup)))
			}
			for _, id := range lineup {
				if _, ok := rc.Find(id); !ok {
					errs = append(errs, fmt.Errorf("battle: %s team references unknown entity %q", side, id))
				}
			}
		}
	}
	return errors.Join(errs...)
}
