package combat

import (
	"errors"
	"testing"

	"langbattle/internal/config"
)

func TestDefaultRoster_BaseStats(t *testing.T) {
	r := DefaultRoster()
	if len(r.Types()) != 5 {
		t.Fatalf("expected 5 entity types, got %v", r.Types())
	}
	rust, err := r.Build(TypeRust, 3)
	if err != nil {
		t.Fatal(err)
	}
	if rust.Name != "Rust" || rust.Level != 3 || rust.MaxHealth() != 200 || rust.Health() != 200 {
		t.Fatalf("unexpected rust entity %v", rust)
	}
	if rust.Stat(StatDefense) != 30 || rust.Stat(StatErrorHandling) != 60 {
		t.Fatalf("unexpected rust stats")
	}
	if !rust.IsWeakTo(Deadline) {
		t.Fatalf("rust should be weak to Deadline")
	}

	js, _ := r.Build(TypeJavaScript, 1)
	if !js.IsWeakTo(Speed) || !js.IsStrongAgainst(Async) {
		t.Fatalf("unexpected js matchups")
	}
	goEntity, _ := r.Build(TypeGo, 1)
	if len(goEntity.Moves()) != 4 {
		t.Fatalf("go moves = %v", goEntity.Moves())
	}
}

func TestRoster_InstancesAreIndependent(t *testing.T) {
	r := DefaultRoster()
	a, _ := r.Build(TypePython, 1)
	b, _ := r.Build(TypePython, 1)
	a.Damage(50, NoMove)
	a.ChangeStat(StatAttack, 20)
	if b.Health() != 150 || b.Stat(StatAttack) != 35 {
		t.Fatalf("instances share state")
	}
	if a.ID == b.ID {
		t.Fatalf("instances share an id")
	}
}

func TestBuildTeam(t *testing.T) {
	team, err := DefaultRoster().BuildTeam([]string{"cpp", "js", "go"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if team.Len() != 3 {
		t.Fatalf("len = %d", team.Len())
	}
	second, _ := team.At(1)
	if second.Type != TypeJavaScript {
		t.Fatalf("slot order not kept, got %s", second.Type)
	}
	if _, err := DefaultRoster().BuildTeam([]string{"cobol"}, 1); !errors.Is(err, ErrUnknownEntityType) {
		t.Fatalf("expected ErrUnknownEntityType, got %v", err)
	}
	seven := []string{"go", "go", "go", "go", "go", "go", "go"}
	if _, err := DefaultRoster().BuildTeam(seven, 1); !errors.Is(err, ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
}

func TestNewRoster_MoveMissingFromCatalog(t *testing.T) {
	catalog, _ := NewCatalog(&config.MovesConfig{Moves: []config.MoveDef{{ID: "deadline", Effect: "strike", Power: 30}}})
	rc := &config.RosterConfig{Entities: []config.EntityDef{{ID: "python", MaxHealth: 10, Moves: []string{"speed"}}}}
	if _, err := NewRoster(rc, catalog); !errors.Is(err, ErrUnknownMove) {
		t.Fatalf("expected ErrUnknownMove, got %v", err)
	}
}
