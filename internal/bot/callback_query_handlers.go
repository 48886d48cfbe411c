package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clipsum/internal/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *models.CallbackQuery) error {
	chatID := callbackChatID(callback)
	userID := callback.From.ID
	data := strings.TrimSpace(callback.Data)

	switch data {
	case "menu":
		return b.withEmptyCallbackAnswer(ctx, callback, func() error {
			return b.handleMenuCommand(ctx, chatID)
		})
	case "menu_help":
		return b.withEmptyCallbackAnswer(ctx, callback, func() error {
			return b.handleStartCommand(ctx, chatID)
		})
	case "menu_settings":
		return b.withEmptyCallbackAnswer(ctx, callback, func() error {
			return b.handleSettingsCommand(ctx, chatID, userID)
		})
	}

	if actionStr, ok := strings.CutPrefix(data, actionCallbackPrefix); ok {
		return b.handleActionQuery(ctx, actionStr, callback)
	}

	if styleStr, ok := strings.CutPrefix(data, settingsStyleCallbackPrefix); ok {
		style, err := domain.ParseStyle(styleStr)
		if err != nil {
			return b.errorCallbackAnswer(ctx, callback, fmt.Errorf("parse style: %w", err))
		}

		return b.withCallbackAnswer(ctx, callback, "✅ Settings are updated.", func() error {
			return b.updateSettings(ctx, chatID, userID, func(s *domain.UserSettings) {
				s.Style = style
			})
		})
	}

	if lengthStr, ok := strings.CutPrefix(data, settingsLengthCallbackPrefix); ok {
		minLength, maxLength, err := parseLengthCallback(lengthStr)
		if err != nil {
			return b.errorCallbackAnswer(ctx, callback, fmt.Errorf("parse length: %w", err))
		}

		return b.withCallbackAnswer(ctx, callback, "✅ Settings are updated.", func() error {
			return b.updateSettings(ctx, chatID, userID, func(s *domain.UserSettings) {
				s.MinLength = minLength
				s.MaxLength = maxLength
			})
		})
	}

	if language, ok := strings.CutPrefix(data, settingsLanguageCallbackPrefix); ok {
		return b.withCallbackAnswer(ctx, callback, "✅ Settings are updated.", func() error {
			return b.updateSettings(ctx, chatID, userID, func(s *domain.UserSettings) {
				s.Language = language
			})
		})
	}

	return b.withEmptyCallbackAnswer(ctx, callback, func() error { return nil })
}

func (b *Bot) handleActionQuery(
	ctx context.Context,
	actionStr string,
	callback *models.CallbackQuery,
) error {
	chatID := callbackChatID(callback)

	action, err := domain.ParseAction(actionStr)
	if err != nil {
		return b.errorCallbackAnswer(ctx, callback, fmt.Errorf("parse action: %w", err))
	}

	text, ok := b.pending.get(chatID)
	if !ok {
		return b.withCallbackAnswer(ctx, callback, "✖️ Send me some text first.", func() error { return nil })
	}

	settings, err := b.store.GetUserSettings(ctx, callback.From.ID)
	if err != nil {
		b.log.WarnContext(ctx, "Failed to get user settings so defaults will be used",
			"error", err,
			"userID", callback.From.ID)

		settings = domain.DefaultUserSettings(callback.From.ID)
	}

	return b.withEmptyCallbackAnswer(ctx, callback, func() error {
		return b.withSpinner(ctx, chatID, func() error {
			result := b.executor.Execute(ctx, action, text, settings.RequestConfig())

			return b.sendResult(ctx, chatID, action, result)
		})
	})
}

func (b *Bot) withEmptyCallbackAnswer(
	ctx context.Context,
	callback *models.CallbackQuery,
	fn func() error,
) error {
	return b.withCallbackAnswer(ctx, callback, "", fn)
}

func (b *Bot) withCallbackAnswer(
	ctx context.Context,
	callback *models.CallbackQuery,
	text string,
	fn func() error,
) error {
	var errs []error

	if _, err := b.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
		Text:            text,
	}); err != nil {
		errs = append(errs, fmt.Errorf("answer callback query: %w", err))
	}

	if err := fn(); err != nil {
		errs = append(errs, fmt.Errorf("call fn: %w", err))
	}

	return errors.Join(errs...)
}

func (b *Bot) errorCallbackAnswer(
	ctx context.Context,
	callback *models.CallbackQuery,
	err error,
) error {
	if _, sendErr := b.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
		Text:            "❌ Failed.",
	}); sendErr != nil {
		return errors.Join(err, fmt.Errorf("answer callback query: %w", sendErr))
	}
	return err
}
