package orchestrator

import (
	"fmt"
	"strings"

	"clipsum/internal/domain"
)

const (
	summarizeTemperature     = 0.7
	paraphraseTemperature    = 1.2
	codeSummarizeTemperature = 0.3
)

// prompt is the action-specific part of a provider request.
type prompt struct {
	system      string
	user        string
	temperature float64
}

// buildPrompt maps an action and a normalized config to a prompt. The bool is
// false for actions outside the closed set.
func buildPrompt(action domain.Action, text string, cfg domain.RequestConfig) (prompt, bool) {
	switch action {
	case domain.ActionSummarize:
		system := fmt.Sprintf(
			"Provide a concise summary between %d-%d words. Capture the key points and main ideas.",
			cfg.MinLength, cfg.MaxLength,
		)
		return prompt{
			system:      withTone(system, cfg.Style),
			user:        "Summarize the following text:\n\n" + text,
			temperature: summarizeTemperature,
		}, true

	case domain.ActionParaphrase:
		system := fmt.Sprintf(
			"Paraphrase the text in %d-%d words. Rephrase it in your own words while preserving its original meaning.",
			cfg.MinLength, cfg.MaxLength,
		)
		return prompt{
			system:      withTone(system, cfg.Style),
			user:        "Paraphrase the following text:\n\n" + text,
			temperature: paraphraseTemperature,
		}, true

	case domain.ActionCodeSummarize:
		var system string
		if cfg.AutoDetectLanguage() {
			system = fmt.Sprintf(
				"Identify the programming language of the code snippet yourself, then explain what the code does in at most %d words.",
				cfg.MaxLength,
			)
		} else {
			system = fmt.Sprintf(
				"The code snippet is written in %s. Explain what the code does in at most %d words.",
				cfg.Language, cfg.MaxLength,
			)
		}
		return prompt{
			system:      system,
			user:        "Explain the following code:\n\n" + text,
			temperature: codeSummarizeTemperature,
		}, true
	}

	return prompt{}, false
}

func withTone(system string, style domain.Style) string {
	if style == domain.StyleDefault || style == "" {
		return system
	}

	var b strings.Builder
	b.WriteString(system)
	b.WriteString(" Write in a")
	if strings.ContainsRune("aeiou", rune(style[0])) {
		b.WriteString("n")
	}
	b.WriteString(" ")
	b.WriteString(string(style))
	b.WriteString(" tone.")

	return b.String()
}
