// Package capture turns captured clipboard content into the plain text the
// orchestrator expects.
package capture

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, div, li, pre, blockquote, tr, h1, h2, h3, h4, h5, h6"

// Text repairs invalid UTF-8 and normalizes line endings.
func Text(raw string) string {
	text := strings.ToValidUTF8(raw, "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return strings.ReplaceAll(text, "\r", "\n")
}

// HTML extracts readable text from an HTML fragment or document, as copied
// from a browser. Line breaks and block ends become newlines; leading
// indentation is kept so code inside <pre> survives.
func HTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("create document from reader: %w", err)
	}

	doc.Find("head, script, style, noscript, template").Remove()

	doc.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithHtml("\n")
	})
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return collapseBlankLines(Text(doc.Text())), nil
}

func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false

	for _, line := range lines {
		line = strings.TrimRight(line, " \t ")
		if strings.TrimSpace(line) == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}

		blank = false
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
