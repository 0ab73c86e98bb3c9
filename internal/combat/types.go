package combat

import (
	"fmt"
	"strings"
)

// Rand is the random stream threaded through accuracy rolls and enemy move
// choice. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type Event struct {
	Turn    int            `json:"turn"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type EntityType uint8

const (
	TypeUnknown EntityType = iota
	TypeRust
	TypeCpp
	TypePython
	TypeJavaScript
	TypeGo
)

var entityTypeKeys = map[EntityType]string{
	TypeRust:       "rust",
	TypeCpp:        "cpp",
	TypePython:     "python",
	TypeJavaScript: "js",
	TypeGo:         "go",
}

// Key is the identifier used in configuration files.
func (t EntityType) Key() string { return entityTypeKeys[t] }

func (t EntityType) String() string {
	if k, ok := entityTypeKeys[t]; ok {
		return k
	}
	return fmt.Sprintf("EntityType(%d)", uint8(t))
}

func ParseEntityType(key string) (EntityType, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for t, k := range entityTypeKeys {
		if k == key {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("%w: %q", ErrUnknownEntityType, key)
}

type Stat uint8

const (
	StatAttack Stat = iota
	StatDefense
	StatAccuracy
	StatErrorHandling
)

var statKeys = map[Stat]string{
	StatAttack:        "attack",
	StatDefense:       "defense",
	StatAccuracy:      "accuracy",
	StatErrorHandling: "error_handling",
}

func (s Stat) String() string {
	if k, ok := statKeys[s]; ok {
		return strings.ReplaceAll(k, "_", " ")
	}
	return fmt.Sprintf("Stat(%d)", uint8(s))
}

func ParseStat(key string) (Stat, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for s, k := range statKeys {
		if k == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown stat %q", key)
}
