package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Taken from https://core.telegram.org/bots/api#markdownv2-style.
const (
	mdV2SpecialChars     = `\_*[]()~>#+-=|{}.!` + "`"
	mdV2CodeSpecialChars = `\` + "`"

	codeFence = "```"
)

//nolint:gochecknoglobals // Lookup tables meant to be immutable.
var (
	mdV2Lookup     = lookup(mdV2SpecialChars)
	mdV2CodeLookup = lookup(mdV2CodeSpecialChars)
)

func lookup(chars string) [256]bool {
	var m [256]bool
	for i := range len(chars) {
		m[chars[i]] = true
	}
	return m
}

// EscapeV2 escapes text for use outside of entities in a MarkdownV2 message.
func EscapeV2(input string) string {
	return escape(input, &mdV2Lookup)
}

func Bold(input string) string {
	return "*" + EscapeV2(input) + "*"
}

func Italic(input string) string {
	return "_" + EscapeV2(input) + "_"
}

// Pre wraps code in a pre-formatted block, escaping only what MarkdownV2
// requires inside it.
func Pre(code string) string {
	return "```\n" + escape(code, &mdV2CodeLookup) + "\n```"
}

// RenderFenced escapes text and turns ``` fenced blocks into pre-formatted
// blocks. An unterminated fence runs to the end of text.
func RenderFenced(text string) string {
	var b strings.Builder

	for {
		before, rest, found := strings.Cut(text, codeFence)
		b.WriteString(EscapeV2(before))
		if !found {
			return b.String()
		}

		code, after, _ := strings.Cut(rest, codeFence)
		if nl := strings.IndexByte(code, '\n'); nl >= 0 && isFenceLanguage(code[:nl]) {
			code = code[nl+1:]
		}
		b.WriteString(Pre(strings.Trim(code, "\n")))

		text = after
	}
}

func isFenceLanguage(tag string) bool {
	for _, r := range tag {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("+#-_", r) {
			return false
		}
	}
	return true
}

func escape(input string, table *[256]bool) string {
	charsToEscape := 0

	for i := range len(input) {
		if table[input[i]] {
			charsToEscape++
		}
	}

	if charsToEscape == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input) + charsToEscape)

	for i := range len(input) {
		c := input[i]
		if table[c] {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}

	return b.String()
}

// Split cuts text into chunks of at most limit runes, preferring line and then
// word boundaries.
func Split(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for utf8.RuneCountInString(text) > limit {
		cut := byteOffset(text, limit)

		if i := strings.LastIndexByte(text[:cut], '\n'); i > 0 {
			cut = i
		} else if i = strings.LastIndexByte(text[:cut], ' '); i > 0 {
			cut = i
		}

		chunks = append(chunks, strings.TrimRight(text[:cut], " \n"))
		text = strings.TrimLeft(text[cut:], " \n")
	}

	if text != "" {
		chunks = append(chunks, text)
	}

	return chunks
}

func byteOffset(text string, runes int) int {
	n := 0
	for i := range text {
		if n == runes {
			return i
		}
		n++
	}
	return len(text)
}
