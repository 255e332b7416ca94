// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import "fmt"

// TetrisConfig contains all player-tunable configuration.
// Lock delay, the move-reset limit, the gravity table and the rotation
// tables are fixed rules and cannot be configured.
type TetrisConfig struct {
	Game     GameSettings     `yaml:"game"`
	Handling HandlingSettings `yaml:"handling"`
	Input    InputSettings    `yaml:"input"`
	Sprint   SprintSettings   `yaml:"sprint"`
}

// GameSettings defines session parameters.
type GameSettings struct {
	StartLevel int `yaml:"start_level"` // Level at zero lines, at least 1
	Preview    int `yaml:"preview"`     // Upcoming pieces shown, 0 to MaxPreview
}

// HandlingSettings defines how held keys translate into movement.
type HandlingSettings struct {
	DASMillis     int `yaml:"das_ms"`          // Hold time before auto-repeat starts
	ARRTicks      int `yaml:"arr_ticks"`       // Ticks between auto-repeat moves
	SoftDropTicks int `yaml:"soft_drop_ticks"` // Ticks between soft-drop moves
}

// InputSettings defines terminal input handling.
type InputSettings struct {
	// ReleaseMillis is how long a key may stay silent before it is treated
	// as released. Terminals report presses only, so a held key is
	// recognised by its auto-repeat stream.
	ReleaseMillis int `yaml:"release_ms"`
}

// SprintSettings defines the sprint mode goal.
type SprintSettings struct {
	LineGoal int `yaml:"line_goal"`
}

// MaxPreview is the longest preview a frame carries. It matches
// engine.PreviewSize; the queue buffers at least that many pieces after
// every dequeue.
const MaxPreview = 5

// Validate checks that every value is usable.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Game.StartLevel < 1:
		return fmt.Errorf("config: game.start_level must be at least 1, got %d", c.Game.StartLevel)
	case c.Game.Preview < 0 || c.Game.Preview > MaxPreview:
		return fmt.Errorf("config: game.preview must be between 0 and %d, got %d", MaxPreview, c.Game.Preview)
	case c.Handling.DASMillis <= 0:
		return fmt.Errorf("config: handling.das_ms must be positive, got %d", c.Handling.DASMillis)
	case c.Handling.ARRTicks <= 0:
		return fmt.Errorf("config: handling.arr_ticks must be positive, got %d", c.Handling.ARRTicks)
	case c.Handling.SoftDropTicks <= 0:
		return fmt.Errorf("config: handling.soft_drop_ticks must be positive, got %d", c.Handling.SoftDropTicks)
	case c.Input.ReleaseMillis <= 0:
		return fmt.Errorf("config: input.release_ms must be positive, got %d", c.Input.ReleaseMillis)
	case c.Sprint.LineGoal <= 0:
		return fmt.Errorf("config: sprint.line_goal must be positive, got %d", c.Sprint.LineGoal)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset converts a CLI value into a preset.
// The empty string means no preset.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// StartLevelForPreset returns the starting level of a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 1
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Game.StartLevel = StartLevelForPreset(preset)
}
