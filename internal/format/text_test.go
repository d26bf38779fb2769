package format

import (
	"testing"
)

func TestStripAnsi(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no ansi", "hello", "hello"},
		{"single color", "\x1b[31mred\x1b[0m", "red"},
		{"multiple colors", "\x1b[31mred\x1b[0m \x1b[32mgreen\x1b[0m", "red green"},
		{"complex", "\x1b[1;31;40mbold red on black\x1b[0m", "bold red on black"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripAnsi(tt.input)
			if got != tt.expected {
				t.Errorf("StripAnsi(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"with ansi", "\x1b[31mred\x1b[0m", 3},
		{"wide chars", "日本語", 6},
		{"mixed", "Hello, 世界!", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayWidth(tt.input)
			if got != tt.expected {
				t.Errorf("DisplayWidth(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxWidth  int
		want      string
		wantWidth int
	}{
		{"fits", "short", 10, "short", 5},
		{"exact", "exactly10!", 10, "exactly10!", 10},
		{"truncated", "Hello, World", 8, "Hello...", 8},
		{"wide chars", "日本語テキスト", 7, "日本...", 7},
		{"zero width", "anything", 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, width := TruncateToWidth(tt.input, tt.maxWidth)
			if got != tt.want || width != tt.wantWidth {
				t.Errorf("TruncateToWidth(%q, %d) = (%q, %d), want (%q, %d)",
					tt.input, tt.maxWidth, got, width, tt.want, tt.wantWidth)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 2, 5); got != "ab   " {
		t.Errorf("PadRight() = %q, want %q", got, "ab   ")
	}
	if got := PadRight("abcdef", 6, 3); got != "abcdef" {
		t.Errorf("PadRight() = %q, want unchanged", got)
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"go", 5, "go   "},
		{"octo/hello-world", 10, "octo/he..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Cell(tt.input, tt.width); got != tt.want {
				t.Errorf("Cell(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}
