package bot

import (
	"context"
	"strings"
	"unicode"

	"clipsum/internal/capture"

	"github.com/go-telegram/bot/models"
)

const chooseActionText = "❔ *What should I do with this text?*"

func (b *Bot) handleMessage(ctx context.Context, message *models.Message) error {
	text := message.Text
	if text == "" {
		text = message.Caption
	}
	trimmed := strings.TrimSpace(text)

	chatID := message.Chat.ID
	userID := message.From.ID

	command, args := splitCommand(trimmed)

	switch command {
	case "/start", "/help":
		return b.handleStartCommand(ctx, chatID)
	case "/menu":
		return b.handleMenuCommand(ctx, chatID)
	case "/settings":
		return b.handleSettingsCommand(ctx, chatID, userID)
	case "/length":
		return b.handleLengthCommand(ctx, args, chatID, userID)
	case "/language":
		return b.handleLanguageCommand(ctx, args, chatID, userID)
	default:
		return b.handleCapturedText(ctx, text, chatID)
	}
}

// splitCommand returns the command token without its @botname suffix and
// the rest of the text. Text that is not a command yields an empty command.
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}

	command, args := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		command, args = text[:i], text[i:]
	}
	command, _, _ = strings.Cut(command, "@")

	return strings.ToLower(command), strings.TrimSpace(args)
}

func (b *Bot) handleCapturedText(ctx context.Context, text string, chatID int64) error {
	text = capture.Text(text)

	if strings.TrimSpace(text) == "" {
		return b.sendMessageWithKeyboard(ctx, chatID, "✖️ Send me some text first\\.", b.menuKeyboard)
	}

	b.pending.set(chatID, text)

	return b.sendMessageWithKeyboard(ctx, chatID, chooseActionText, b.actionKeyboard)
}
