package validation

import (
	"strings"
	"testing"
)

func TestValidateScenarioName(t *testing.T) {
	tests := []struct {
		name     string
		scenario string
		wantErr  bool
	}{
		// Valid names
		{"simple", "corridor", false},
		{"single char", "a", false},
		{"with digit", "box3d", false},
		{"hyphenated", "narrow-gap", false},
		{"underscored", "maze_01", false},
		{"versioned dot", "arm.v2", false},
		{"max length", "a" + strings.Repeat("b", 63), false},
		{"all digits", "12345", false},

		// Invalid names - traversal attempts
		{"empty", "", true},
		{"parent dir", "..", true},
		{"traversal", "../etc/passwd", true},
		{"embedded traversal", "a/../b", true},
		{"forward slash", "scenarios/evil", true},
		{"backslash", `a\b`, true},
		{"embedded dots", "a..b", true},

		// Invalid names - format
		{"uppercase", "Corridor", true},
		{"too long", "a" + strings.Repeat("b", 64), true},
		{"special chars", "maze!#", true},
		{"spaces", "narrow gap", true},
		{"newline injection", "maze\n01", true},
		{"starts with dot", ".hidden", true},
		{"starts with hyphen", "-maze", true},
		{"starts with underscore", "_maze", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScenarioName(tt.scenario)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScenarioName(%q) error = %v, wantErr %v", tt.scenario, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeScenarioName(t *testing.T) {
	tests := []struct {
		name     string
		scenario string
		want     string
		wantErr  bool
	}{
		{"lowercase passthrough", "corridor", "corridor", false},
		{"uppercase normalized", "Corridor", "corridor", false},
		{"mixed case", "NaRrOw-GaP", "narrow-gap", false},
		{"with spaces trimmed", "  maze_01  ", "maze_01", false},
		{"invalid rejected", "bad!", "", true},
		{"traversal rejected", "../Maze", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeScenarioName(tt.scenario)
			if (err != nil) != tt.wantErr {
				t.Errorf("SanitizeScenarioName(%q) error = %v, wantErr %v", tt.scenario, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("SanitizeScenarioName(%q) = %q, want %q", tt.scenario, got, tt.want)
			}
		})
	}
}
