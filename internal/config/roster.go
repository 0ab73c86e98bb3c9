package config

type RosterConfig struct {
	Entities []EntityDef `yaml:"entities"`
}

// EntityDef holds the base stats of one entity type. Move lists reference
// MoveDef ids.
type EntityDef struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	MaxHealth     int      `yaml:"max_health"`
	Attack        int      `yaml:"attack"`
	Defense       int      `yaml:"defense"`
	Accuracy      int      `yaml:"accuracy"`
	ErrorHandling int      `yaml:"error_handling"`
	Moves         []string `yaml:"moves"`
	Weaknesses    []string `yaml:"weaknesses"`
	Strengths     []string `yaml:"strengths"`
}

// Find returns the entity definition with the given id.
func (rc *RosterConfig) Find(id string) (EntityDef, bool) {
	if rc == nil {
		return EntityDef{}, false
	}
	for _, e := range rc.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntityDef{}, false
}
