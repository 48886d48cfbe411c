package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"clipsum/internal/domain"
	"clipsum/internal/markdown"
)

const welcomeText = `🤖 *Welcome to Clipsum\!*

Send or forward me any text and pick what to do with it:

– 📝 Summarize it within a word range
– 🔁 Paraphrase it while keeping its meaning
– 💻 Explain a code snippet

Configure length, style and code language with /settings, or directly:
– /length 100 150
– /language rust \(or /language auto\)`

const settingsText = `*⚙️ Settings*

Length: %s words
Style: %s
Code language: %s

You can choose different settings below:`

func (b *Bot) handleStartCommand(ctx context.Context, chatID int64) error {
	return b.sendMessageWithKeyboard(ctx, chatID, welcomeText, b.menuKeyboard)
}

func (b *Bot) handleMenuCommand(ctx context.Context, chatID int64) error {
	return b.sendMessageWithKeyboard(ctx, chatID, "❔ *Choose an option:*", b.menuKeyboard)
}

func (b *Bot) handleSettingsCommand(ctx context.Context, chatID int64, userID int64) error {
	settings, err := b.store.GetUserSettings(ctx, userID)
	if err != nil {
		errs := []error{fmt.Errorf("get user settings: %w", err)}

		if sendErr := b.sendMessageWithKeyboard(ctx, chatID, "❌ Failed\\.", b.returnKeyboard); sendErr != nil {
			errs = append(errs, fmt.Errorf("send message with keyboard: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	return b.sendMessageWithKeyboard(ctx, chatID, formatSettings(settings), b.settingsKeyboard)
}

func (b *Bot) handleLengthCommand(ctx context.Context, args string, chatID int64, userID int64) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return b.sendMessageWithKeyboard(ctx, chatID, "✖️ Usage: /length \\<min\\> \\<max\\>", b.returnKeyboard)
	}

	minLength, minErr := strconv.ParseInt(fields[0], 10, 64)
	maxLength, maxErr := strconv.ParseInt(fields[1], 10, 64)
	if minErr != nil || maxErr != nil {
		return b.sendMessageWithKeyboard(ctx, chatID, "✖️ Length must be two whole numbers\\.", b.returnKeyboard)
	}

	return b.updateSettings(ctx, chatID, userID, func(s *domain.UserSettings) {
		s.MinLength = minLength
		s.MaxLength = maxLength
	})
}

func (b *Bot) handleLanguageCommand(ctx context.Context, args string, chatID int64, userID int64) error {
	language := strings.TrimSpace(args)
	if language == "" {
		return b.sendMessageWithKeyboard(ctx, chatID, "✖️ Usage: /language \\<name\\|auto\\>", b.returnKeyboard)
	}

	return b.updateSettings(ctx, chatID, userID, func(s *domain.UserSettings) {
		s.Language = language
	})
}

// updateSettings applies fn, stores the normalized result and shows it.
func (b *Bot) updateSettings(
	ctx context.Context,
	chatID int64,
	userID int64,
	fn func(s *domain.UserSettings),
) error {
	settings, err := b.store.GetUserSettings(ctx, userID)
	if err != nil {
		return b.failSettings(ctx, chatID, fmt.Errorf("get user settings: %w", err))
	}

	fn(&settings)
	settings = normalizeSettings(settings)

	if err = b.store.SaveUserSettings(ctx, settings); err != nil {
		return b.failSettings(ctx, chatID, fmt.Errorf("save user settings: %w", err))
	}

	return b.sendMessageWithKeyboard(ctx, chatID, formatSettings(settings), b.settingsKeyboard)
}

func (b *Bot) failSettings(ctx context.Context, chatID int64, err error) error {
	if sendErr := b.sendMessageWithKeyboard(ctx, chatID, "❌ Failed\\.", b.returnKeyboard); sendErr != nil {
		return errors.Join(err, fmt.Errorf("send message with keyboard: %w", sendErr))
	}
	return err
}

// normalizeSettings applies the same clamps the orchestrator applies, so the
// stored values are the ones that will be used.
func normalizeSettings(settings domain.UserSettings) domain.UserSettings {
	cfg := settings.RequestConfig()

	settings.MinLength = int64(cfg.MinLength)
	settings.MaxLength = int64(cfg.MaxLength)
	settings.Style = cfg.Style
	settings.Language = cfg.Language

	return settings
}

func formatSettings(settings domain.UserSettings) string {
	language := settings.Language
	if language == "" {
		language = "auto-detect"
	}

	return fmt.Sprintf(
		settingsText,
		markdown.EscapeV2(fmt.Sprintf("%d–%d", settings.MinLength, settings.MaxLength)),
		markdown.EscapeV2(string(settings.Style)),
		markdown.EscapeV2(language),
	)
}
