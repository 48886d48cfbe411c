package markdown_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"clipsum/internal/markdown"
)

func TestEscapeV2(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"NoSpecialChars", "plain text", "plain text"},
		{"Punctuation", "Hello, world!", `Hello, world\!`},
		{"Mixed", "a_b*c[d](e)", `a\_b\*c\[d\]\(e\)`},
		{"Backslash", `C:\path`, `C:\\path`},
		{"Unicode", "ok. 👍", `ok\. 👍`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := markdown.EscapeV2(test.input); got != test.want {
				t.Errorf("Expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestBoldAndPre(t *testing.T) {
	if got := markdown.Bold("Summary."); got != `*Summary\.*` {
		t.Errorf("Unexpected bold %q", got)
	}

	if got := markdown.Pre("x := `a` + 1."); got != "```\nx := \\`a\\` + 1.\n```" {
		t.Errorf("Unexpected pre %q", got)
	}
}

func TestRenderFenced(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"No fences", "Plain text.", `Plain text\.`},
		{
			"Fence with language tag",
			"Run:\n```go\nfmt.Println(\"hi\")\n```\nDone.",
			"Run:\n```\nfmt.Println(\"hi\")\n```\nDone\\.",
		},
		{"Fence without tag", "```\nx := 1\n```", "```\nx := 1\n```"},
		{"Inline fence keeps code", "```a.b()```", "```\na.b()\n```"},
		{"Unterminated fence", "Code: ```x_1", "Code: ```\nx_1\n```"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := markdown.RenderFenced(test.input); got != test.want {
				t.Errorf("Expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	short := "short text"
	if got := markdown.Split(short, 100); len(got) != 1 || got[0] != short {
		t.Fatalf("Expected single chunk, got %q", got)
	}

	text := strings.Repeat("word ", 50) + "\n" + strings.Repeat("слово ", 50)
	chunks := markdown.Split(text, 64)

	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}

	total := 0
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > 64 {
			t.Errorf("Chunk %d exceeds limit: %d runes", i, n)
		}
		if !utf8.ValidString(chunk) {
			t.Errorf("Chunk %d is not valid UTF-8", i)
		}
		total += len(strings.Fields(chunk))
	}

	if total != 100 {
		t.Errorf("Expected all 100 words to survive splitting, got %d", total)
	}
}

func TestSplitWithoutBoundaries(t *testing.T) {
	text := strings.Repeat("x", 25)
	chunks := markdown.Split(text, 10)

	if len(chunks) != 3 || strings.Join(chunks, "") != text {
		t.Fatalf("Unexpected chunks %q", chunks)
	}
}
