package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	MovesFile  = "moves.yaml"
	RosterFile = "roster.yaml"
	BattleFile = "battle.yaml"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

func loadDefault(name string, out any) error {
	b, err := defaultFS.ReadFile("defaults/" + name)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// loadOrDefault reads name from dir, falling back to the embedded copy when
// dir is empty or the file does not exist there.
func loadOrDefault(dir, name string, out any) error {
	if dir != "" {
		path := filepath.Join(dir, name)
		err := loadYAML(path, out)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := loadDefault(name, out); err != nil {
		return fmt.Errorf("load default %s: %w", name, err)
	}
	return nil
}

// LoadAll reads moves, roster and battle documents from dir. Missing files
// (or an empty dir) use the embedded defaults. The result is normalized and
// validated.
func LoadAll(dir string) (*MovesConfig, *RosterConfig, *BattleConfig, error) {
	var mc MovesConfig
	var rc RosterConfig
	var bc BattleConfig
	if err := loadOrDefault(dir, MovesFile, &mc); err != nil {
		return nil, nil, nil, err
	}
	if err := loadOrDefault(dir, RosterFile, &rc); err != nil {
		return nil, nil, nil, err
	}
	if err := loadOrDefault(dir, BattleFile, &bc); err != nil {
		return nil, nil, nil, err
	}
	normalize(&mc, &rc, &bc)
	if err := Validate(&mc, &rc, &bc); err != nil {
		return nil, nil, nil, err
	}
	return &mc, &rc, &bc, nil
}

// Defaults returns the embedded configuration.
func Defaults() (*MovesConfig, *RosterConfig, *BattleConfig, error) {
	return LoadAll("")
}

func displayName(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	title := cases.Title(language.English)
	for i, w := range words {
		words[i] = title.String(w)
	}
	return strings.Join(words, "")
}

func normalize(mc *MovesConfig, rc *RosterConfig, bc *BattleConfig) {
	for i := range mc.Moves {
		m := &mc.Moves[i]
		m.ID = strings.ToLower(strings.TrimSpace(m.ID))
		m.Effect = strings.ToLower(strings.TrimSpace(m.Effect))
		m.Stat = strings.ToLower(strings.TrimSpace(m.Stat))
		if m.Name == "" {
			m.Name = displayName(m.ID)
		}
	}
	for i := range rc.Entities {
		e := &rc.Entities[i]
		e.ID = strings.ToLower(strings.TrimSpace(e.ID))
		if e.Name == "" {
			e.Name = displayName(e.ID)
		}
	}
	for i := range bc.Player {
		bc.Player[i] = strings.ToLower(strings.TrimSpace(bc.Player[i]))
	}
	for i := range bc.Enemy {
		bc.Enemy[i] = strings.ToLower(strings.TrimSpace(bc.Enemy[i]))
	}
	if bc.Level <= 0 {
		bc.Level = 1
	}
	if bc.MaxTurns <= 0 {
		bc.MaxTurns = 200
	}
	if bc.LogLevel == "" {
		bc.LogLevel = "info"
	}
}
