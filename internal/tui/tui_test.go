package tui

import "testing"

func TestIsToolLogLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`[Used echo({"text":"hi"})]`, true},
		{"[Error: connection reset]", true},
		{"plain prose", false},
		{"[Used echo({)", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isToolLogLine(tt.line); got != tt.want {
			t.Errorf("isToolLogLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
