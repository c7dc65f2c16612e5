package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game       GameConfig       `toml:"game"`
	Sim        SimConfig        `toml:"sim"`
	Difficulty DifficultyConfig `toml:"difficulty"`
	Logging    LoggingConfig    `toml:"logging"`
}

type GameConfig struct {
	Name       string `toml:"name"`
	Level      string `toml:"level"`
	ScriptsDir string `toml:"scripts_dir"`
	Lives      int    `toml:"lives"`
}

type SimConfig struct {
	TickRate int `toml:"tick_rate"` // simulation steps per second
}

// DT is the fixed simulation step in seconds.
func (c SimConfig) DT() float64 {
	return 1.0 / float64(c.TickRate)
}

type DifficultyConfig struct {
	EnemyHealthScale float64 `toml:"enemy_health_scale"`
	EnemyDamageScale float64 `toml:"enemy_damage_scale"`
	EnemySpeedScale  float64 `toml:"enemy_speed_scale"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Sim.TickRate <= 0 {
		return nil, fmt.Errorf("config %s: tick_rate must be positive", path)
	}
	return cfg, nil
}

// Default returns the built-in config, used when no file is given.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Name:       "Skirmish",
			Level:      "data/levels/level1.yaml",
			ScriptsDir: "data/scripts",
			Lives:      3,
		},
		Sim: SimConfig{
			TickRate: 120,
		},
		Difficulty: DifficultyConfig{
			EnemyHealthScale: 1.0,
			EnemyDamageScale: 1.0,
			EnemySpeedScale:  1.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
