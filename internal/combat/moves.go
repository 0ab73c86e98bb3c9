package combat

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"langbattle/internal/config"
)

type Move uint8

const (
	NoMove Move = iota
	IntParse
	Speed
	MultiThread
	Deadline
	Async
	GarbageCollect
	BorrowCheck
	Optimize
)

var moveKeys = map[Move]string{
	IntParse:       "int_parse",
	Speed:          "speed",
	MultiThread:    "multi_thread",
	Deadline:       "deadline",
	Async:          "async",
	GarbageCollect: "garbage_collect",
	BorrowCheck:    "borrow_check",
	Optimize:       "optimize",
}

var moveNames = map[Move]string{
	IntParse:       "IntParse",
	Speed:          "Speed",
	MultiThread:    "MultiThread",
	Deadline:       "Deadline",
	Async:          "Async",
	GarbageCollect: "GarbageCollect",
	BorrowCheck:    "BorrowCheck",
	Optimize:       "Optimize",
}

func (m Move) Key() string { return moveKeys[m] }

func (m Move) String() string {
	if n, ok := moveNames[m]; ok {
		return n
	}
	if m == NoMove {
		return "NoMove"
	}
	return fmt.Sprintf("Move(%d)", uint8(m))
}

func ParseMove(key string) (Move, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for m, k := range moveKeys {
		if k == key {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %q", ErrUnknownMove, key)
}

type EffectKind uint8

const (
	EffectStrike EffectKind = iota // fixed damage to the target
	EffectGamble                   // split damage decided by error handling
	EffectDebuff                   // lower a target stat
	EffectBuff                     // raise a caller stat
	EffectHeal                     // restore caller health
)

var effectKeys = map[string]EffectKind{
	"strike": EffectStrike,
	"gamble": EffectGamble,
	"debuff": EffectDebuff,
	"buff":   EffectBuff,
	"heal":   EffectHeal,
}

// MoveSpec is one catalog entry.
type MoveSpec struct {
	Move     Move
	Name     string
	Priority uint8
	Effect   EffectKind
	Power    uint32
	Recoil   uint32
	Stat     Stat
	Delta    int32
	Immune   map[EntityType]bool

	Text   string
	Flavor map[EntityType]string

	WinText      string
	LoseText     string
	TieText      string
	WeakText     string
	StrongText   string
	NoEffectText string
}

// Catalog maps each move to its spec. It is read-only after construction and
// safe to share between battles.
type Catalog struct {
	specs map[Move]MoveSpec
}

func NewCatalog(mc *config.MovesConfig) (*Catalog, error) {
	c := &Catalog{specs: map[Move]MoveSpec{}}
	if mc == nil {
		return c, nil
	}
	for _, def := range mc.Moves {
		spec, err := specFromDef(def)
		if err != nil {
			return nil, err
		}
		c.specs[spec.Move] = spec
	}
	return c, nil
}

func specFromDef(def config.MoveDef) (MoveSpec, error) {
	mv, err := ParseMove(def.ID)
	if err != nil {
		return MoveSpec{}, err
	}
	effect, ok := effectKeys[def.Effect]
	if !ok {
		return MoveSpec{}, fmt.Errorf("move %q: unknown effect %q", def.ID, def.Effect)
	}
	if def.Priority < 0 || def.Priority > 255 {
		return MoveSpec{}, fmt.Errorf("move %q: priority %d out of range", def.ID, def.Priority)
	}
	spec := MoveSpec{
		Move:         mv,
		Name:         def.Name,
		Priority:     uint8(def.Priority),
		Effect:       effect,
		Power:        nonNegative(def.Power),
		Recoil:       nonNegative(def.Recoil),
		Delta:        int32(def.Delta),
		Immune:       map[EntityType]bool{},
		Text:         def.Text,
		Flavor:       map[EntityType]string{},
		WinText:      def.WinText,
		LoseText:     def.LoseText,
		TieText:      def.TieText,
		WeakText:     def.WeakText,
		StrongText:   def.StrongText,
		NoEffectText: def.NoEffectText,
	}
	if spec.Name == "" {
		spec.Name = mv.String()
	}
	if effect == EffectBuff || effect == EffectDebuff {
		st, err := ParseStat(def.Stat)
		if err != nil {
			return MoveSpec{}, fmt.Errorf("move %q: %w", def.ID, err)
		}
		spec.Stat = st
	}
	for _, key := range def.Immune {
		t, err := ParseEntityType(key)
		if err != nil {
			return MoveSpec{}, fmt.Errorf("move %q: %w", def.ID, err)
		}
		spec.Immune[t] = true
	}
	for key, text := range def.Flavor {
		t, err := ParseEntityType(key)
		if err != nil {
			return MoveSpec{}, fmt.Errorf("move %q: %w", def.ID, err)
		}
		spec.Flavor[t] = text
	}
	return spec, nil
}

func nonNegative(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}

// Spec looks up a move. A nil catalog has no entries.
func (c *Catalog) Spec(mv Move) (MoveSpec, bool) {
	if c == nil {
		return MoveSpec{}, false
	}
	s, ok := c.specs[mv]
	return s, ok
}

// Priority returns the move's priority, 0 for moves not in the catalog.
func (c *Catalog) Priority(mv Move) uint8 {
	s, _ := c.Spec(mv)
	return s.Priority
}

func (c *Catalog) Name(mv Move) string {
	if s, ok := c.Spec(mv); ok {
		return s.Name
	}
	return mv.String()
}

// Moves lists catalog entries in enum order.
func (c *Catalog) Moves() []Move {
	if c == nil {
		return nil
	}
	out := make([]Move, 0, len(c.specs))
	for mv := range c.specs {
		out = append(out, mv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog builds the catalog from the embedded configuration. The
// embedded files ship with the binary, so failure to parse them panics.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		mc, _, _, err := config.Defaults()
		if err != nil {
			panic(fmt.Sprintf("combat: embedded move config: %v", err))
		}
		c, err := NewCatalog(mc)
		if err != nil {
			panic(fmt.Sprintf("combat: embedded move config: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
