package format

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"a_b *c* `d` [e]", "a\\_b \\*c\\* \\`d\\` \\[e]"},
		{"già sì", "già sì"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeMarkdown(tt.in); got != tt.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	if got := EscapeMarkdownV2("a.b-c!d"); got != `a\.b\-c\!d` {
		t.Errorf("EscapeMarkdownV2 = %q", got)
	}
	if got := EscapeMarkdownV2("(x) {y} #z"); got != `\(x\) \{y\} \#z` {
		t.Errorf("EscapeMarkdownV2 = %q", got)
	}
}
