package config

type BattleConfig struct {
	Level    int      `yaml:"level"`
	MaxTurns int      `yaml:"max_turns"`
	Seed     int64    `yaml:"seed"`
	LogLevel string   `yaml:"log_level"`
	Player   []string `yaml:"player"`
	Enemy    []string `yaml:"enemy"`
}
