package main

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		arg      string
		expected string
		wantErr  bool
	}{
		{"", tetris.IDMarathon, false},
		{"marathon", tetris.IDMarathon, false},
		{"sprint", tetris.IDSprint, false},
		{tetris.IDSprint, tetris.IDSprint, false},
		{"ultra", "", true},
	}
	for _, tc := range tests {
		got, err := resolveMode(tc.arg)
		if (err != nil) != tc.wantErr {
			t.Errorf("resolveMode(%q) error = %v, wantErr %v", tc.arg, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("resolveMode(%q) = %q, expected %q", tc.arg, got, tc.expected)
		}
	}
}

func TestSetupRejectsBadFlags(t *testing.T) {
	defer func(fps int, diff string) { flagFPS, flagDifficulty = fps, diff }(flagFPS, flagDifficulty)

	flagFPS, flagDifficulty = 0, ""
	if err := setup(nil, nil); err == nil {
		t.Error("zero fps should be rejected")
	}

	flagFPS, flagDifficulty = 60, "nightmare"
	if err := setup(nil, nil); err == nil {
		t.Error("unknown difficulty should be rejected")
	}
}
