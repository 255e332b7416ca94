package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultTetrisYAML))
	copy(out, defaultTetrisYAML)
	return out
}

// DefaultTetrisConfig returns the hard-coded default configuration.
// It matches the embedded YAML.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Game: GameSettings{
			StartLevel: 1,
			Preview:    5,
		},
		Handling: HandlingSettings{
			DASMillis:     133,
			ARRTicks:      2,
			SoftDropTicks: 1,
		},
		Input: InputSettings{
			ReleaseMillis: 120,
		},
		Sprint: SprintSettings{
			LineGoal: 20,
		},
	}
}
