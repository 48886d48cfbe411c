package domain

import (
	"math"
	"strings"
)

const (
	// MinLengthFloor is the smallest minLength accepted by the orchestrator.
	MinLengthFloor = 50
	// LengthGap is added to minLength when maxLength has to be raised.
	LengthGap = 50

	DefaultMinLength = 100
	DefaultMaxLength = 150

	// LanguageAuto is accepted in place of an empty Language.
	LanguageAuto = "auto"
)

// RequestConfig is an immutable per-invocation snapshot of user settings.
type RequestConfig struct {
	MinLength int
	MaxLength int
	Style     Style
	// Language pins the snippet language for ActionCodeSummarize. Empty means auto-detect.
	Language string
}

func DefaultRequestConfig() RequestConfig {
	return RequestConfig{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
		Style:     StyleDefault,
	}
}

// Normalize clamps MinLength to MinLengthFloor and keeps MaxLength >= MinLength.
func (c RequestConfig) Normalize() RequestConfig {
	if c.MinLength < MinLengthFloor {
		c.MinLength = MinLengthFloor
	}
	if c.MaxLength < c.MinLength {
		if c.MinLength > math.MaxInt-LengthGap {
			c.MaxLength = math.MaxInt
		} else {
			c.MaxLength = c.MinLength + LengthGap
		}
	}
	if !c.Style.Valid() {
		c.Style = StyleDefault
	}
	c.Language = strings.TrimSpace(c.Language)
	if strings.EqualFold(c.Language, LanguageAuto) {
		c.Language = ""
	}

	return c
}

// AutoDetectLanguage reports whether the code language is left to the provider.
func (c RequestConfig) AutoDetectLanguage() bool {
	language := strings.TrimSpace(c.Language)
	return language == "" || strings.EqualFold(language, LanguageAuto)
}
