package config

type MovesConfig struct {
	Moves []MoveDef `yaml:"moves"`
}

// MoveDef describes one catalog entry. Narration strings may reference
// {caller} and {target}; flavor overrides text per caller entity id.
type MoveDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
	Effect   string `yaml:"effect"`
	Power    int    `yaml:"power"`
	Recoil   int    `yaml:"recoil"`
	Stat     string `yaml:"stat"`
	Delta    int    `yaml:"delta"`

	Immune []string          `yaml:"immune"`
	Text   string            `yaml:"text"`
	Flavor map[string]string `yaml:"flavor"`

	WinText      string `yaml:"win_text"`
	LoseText     string `yaml:"lose_text"`
	TieText      string `yaml:"tie_text"`
	WeakText     string `yaml:"weak_text"`
	StrongText   string `yaml:"strong_text"`
	NoEffectText string `yaml:"no_effect_text"`
}

// Find returns the move with the given id.
func (mc *MovesConfig) Find(id string) (MoveDef, bool) {
	if mc == nil {
		return MoveDef{}, false
	}
	for _, m := range mc.Moves {
		if m.ID == id {
			return m, true
		}
	}
	return MoveDef{}, false
}
