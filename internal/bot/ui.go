package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clipsum/internal/domain"
	"clipsum/internal/markdown"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	sendSpinnerInterval = 4 * time.Second
	// Leaves room for the header and escaping within Telegram's 4096 limit.
	resultChunkMaxRunes = 3000
)

func (b *Bot) sendTyping(ctx context.Context, chatID int64) {
	_, err := b.api.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
	if err != nil && ctx.Err() == nil {
		b.log.ErrorContext(ctx, "Failed to send chat action",
			"error", err,
			"chatID", chatID)
	}
}

func (b *Bot) withSpinner(ctx context.Context, chatID int64, fn func() error) error {
	spinnerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		b.sendTyping(spinnerCtx, chatID)

		t := time.NewTicker(sendSpinnerInterval)
		defer t.Stop()

		for {
			select {
			case <-spinnerCtx.Done():
				return
			case <-t.C:
				b.sendTyping(spinnerCtx, chatID)
			}
		}
	}()

	return fn()
}

func (b *Bot) sendMessageWithKeyboard(
	ctx context.Context,
	chatID int64,
	text string,
	keyboard [][]models.InlineKeyboardButton,
) error {
	normalizedText := strings.ToValidUTF8(text, "?")
	if normalizedText != text {
		b.log.WarnContext(ctx, "Message text had invalid UTF-8 and was normalized",
			"chatID", chatID,
			"originalLen", len(text),
			"normalizedLen", len(normalizedText))
	}

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   normalizedText,
		// See https://core.telegram.org/bots/api#markdownv2-style.
		ParseMode: models.ParseModeMarkdown,
	}
	if len(keyboard) > 0 {
		params.ReplyMarkup = &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}
	}

	_, err := b.api.SendMessage(ctx, params)
	return err
}

// sendResult renders a Result as one or more messages. Failures use the same
// surface as successes and carry the "Error: " prefix.
func (b *Bot) sendResult(
	ctx context.Context,
	chatID int64,
	action domain.Action,
	result domain.Result,
) error {
	if !result.OK() {
		return b.sendMessageWithKeyboard(ctx, chatID, "❌ "+markdown.EscapeV2(result.Display()), b.actionKeyboard)
	}

	chunks := markdown.Split(result.Display(), resultChunkMaxRunes)

	var errs []error
	for i, chunk := range chunks {
		var message strings.Builder

		if i == 0 {
			message.WriteString(resultHeader(action))
			message.WriteString("\n\n")
		}
		message.WriteString(markdown.RenderFenced(chunk))

		var keyboard [][]models.InlineKeyboardButton
		if i == len(chunks)-1 {
			message.WriteString("\n\n")
			message.WriteString(markdown.Italic(resultFooter(action, result.Config)))
			keyboard = b.actionKeyboard
		}

		if err := b.sendMessageWithKeyboard(ctx, chatID, message.String(), keyboard); err != nil {
			errs = append(errs, fmt.Errorf("send result chunk %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func resultHeader(action domain.Action) string {
	switch action {
	case domain.ActionSummarize:
		return markdown.Bold("📝 Summary")
	case domain.ActionParaphrase:
		return markdown.Bold("🔁 Paraphrase")
	case domain.ActionCodeSummarize:
		return markdown.Bold("💻 Code explanation")
	default:
		return markdown.Bold("Result")
	}
}

func resultFooter(action domain.Action, cfg domain.RequestConfig) string {
	if action == domain.ActionCodeSummarize {
		language := cfg.Language
		if cfg.AutoDetectLanguage() {
			language = "auto-detected language"
		}
		return fmt.Sprintf("up to %d words · %s", cfg.MaxLength, language)
	}

	return fmt.Sprintf("%d–%d words · %s style", cfg.MinLength, cfg.MaxLength, cfg.Style)
}
