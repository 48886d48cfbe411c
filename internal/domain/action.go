package domain

import (
	"fmt"
	"strings"
)

// Action selects the prompt template and which RequestConfig fields apply.
type Action int

const (
	ActionSummarize Action = iota + 1
	ActionParaphrase
	ActionCodeSummarize
)

//nolint:gochecknoglobals // Lookup table meant to be immutable.
var actionNames = map[Action]string{
	ActionSummarize:     "summarize",
	ActionParaphrase:    "paraphrase",
	ActionCodeSummarize: "code",
}

func Actions() []Action {
	return []Action{ActionSummarize, ActionParaphrase, ActionCodeSummarize}
}

func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// UsesLengthBand reports whether the action promises a [min, max] word band
// and is therefore subject to the output length check.
func (a Action) UsesLengthBand() bool {
	return a == ActionSummarize || a == ActionParaphrase
}

func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "summarize", "summary":
		return ActionSummarize, nil
	case "paraphrase":
		return ActionParaphrase, nil
	case "code", "code-summarize", "code_summarize", "codesummarize":
		return ActionCodeSummarize, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

type Style string

const (
	StyleDefault  Style = "default"
	StyleAcademic Style = "academic"
	StyleCasual   Style = "casual"
	StyleBusiness Style = "business"
	StyleCreative Style = "creative"
)

func Styles() []Style {
	return []Style{StyleDefault, StyleAcademic, StyleCasual, StyleBusiness, StyleCreative}
}

func (s Style) Valid() bool {
	switch s {
	case StyleDefault, StyleAcademic, StyleCasual, StyleBusiness, StyleCreative:
		return true
	default:
		return false
	}
}

func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	if style == "" {
		return StyleDefault, nil
	}
	if !style.Valid() {
		return "", fmt.Errorf("unknown style %q", s)
	}
	return style, nil
}
