package bot

import (
	"fmt"
	"strings"

	"clipsum/internal/domain"

	"github.com/go-telegram/bot/models"
)

const (
	actionCallbackPrefix           = "action_"
	settingsStyleCallbackPrefix    = "settings_style_"
	settingsLengthCallbackPrefix   = "settings_length_"
	settingsLanguageCallbackPrefix = "settings_language_"
	settingsLanguageAuto           = domain.LanguageAuto

	styleKeyboardRowSize    = 3
	languageKeyboardRowSize = 4
)

type lengthPreset struct {
	min int64
	max int64
}

//nolint:gochecknoglobals // Presets meant to be immutable.
var (
	lengthPresets = []lengthPreset{{50, 100}, {100, 150}, {150, 250}, {250, 400}}
	codeLanguages = []string{settingsLanguageAuto, "go", "python", "rust", "javascript", "typescript", "java", "c++"}
)

func button(text string, data string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: data}
}

func getReturnKeyboard() [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{button("⬅️ Return to menu", "menu")},
	}
}

func getMenuKeyboard() [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			button("⚙️ Settings", "menu_settings"),
			button("❓ Help", "menu_help"),
		},
	}
}

func getActionKeyboard() [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			button("📝 Summarize", actionCallbackPrefix+domain.ActionSummarize.String()),
			button("🔁 Paraphrase", actionCallbackPrefix+domain.ActionParaphrase.String()),
		},
		{
			button("💻 Explain code", actionCallbackPrefix+domain.ActionCodeSummarize.String()),
		},
	}
}

func getSettingsKeyboard() [][]models.InlineKeyboardButton {
	var keyboard [][]models.InlineKeyboardButton

	styles := domain.Styles()
	for i := 0; i < len(styles); i += styleKeyboardRowSize {
		var row []models.InlineKeyboardButton
		for _, style := range styles[i:min(i+styleKeyboardRowSize, len(styles))] {
			row = append(row, button("🎨 "+string(style), settingsStyleCallbackPrefix+string(style)))
		}
		keyboard = append(keyboard, row)
	}

	var lengthRow []models.InlineKeyboardButton
	for _, preset := range lengthPresets {
		lengthRow = append(lengthRow, button(
			fmt.Sprintf("%d–%d", preset.min, preset.max),
			fmt.Sprintf("%s%d_%d", settingsLengthCallbackPrefix, preset.min, preset.max),
		))
	}
	keyboard = append(keyboard, lengthRow)

	for i := 0; i < len(codeLanguages); i += languageKeyboardRowSize {
		var row []models.InlineKeyboardButton
		for _, language := range codeLanguages[i:min(i+languageKeyboardRowSize, len(codeLanguages))] {
			row = append(row, button("💻 "+language, settingsLanguageCallbackPrefix+language))
		}
		keyboard = append(keyboard, row)
	}

	return append(keyboard, getReturnKeyboard()...)
}

func parseLengthCallback(data string) (int64, int64, error) {
	minStr, maxStr, ok := strings.Cut(data, "_")
	if !ok {
		return 0, 0, fmt.Errorf("malformed length %q", data)
	}

	var minLength, maxLength int64
	if _, err := fmt.Sscan(minStr, &minLength); err != nil {
		return 0, 0, fmt.Errorf("parse min length: %w", err)
	}
	if _, err := fmt.Sscan(maxStr, &maxLength); err != nil {
		return 0, 0, fmt.Errorf("parse max length: %w", err)
	}

	return minLength, maxLength, nil
}
