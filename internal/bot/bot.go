package bot

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"clipsum/internal/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const updateProcessingTimeout = 3 * time.Minute

// Executor runs one action over captured text.
type Executor interface {
	Execute(ctx context.Context, action domain.Action, rawInput string, config domain.RequestConfig) domain.Result
}

type SettingsStore interface {
	GetUserSettings(ctx context.Context, userID int64) (domain.UserSettings, error)
	SaveUserSettings(ctx context.Context, settings domain.UserSettings) error
}

// api is the subset of *bot.Bot the handlers use.
type api interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

type Bot struct {
	client           *bot.Bot
	api              api
	executor         Executor
	store            SettingsStore
	pending          *pendingInputs
	allowedUsers     []int64
	menuKeyboard     [][]models.InlineKeyboardButton
	actionKeyboard   [][]models.InlineKeyboardButton
	settingsKeyboard [][]models.InlineKeyboardButton
	returnKeyboard   [][]models.InlineKeyboardButton
	log              *slog.Logger
}

func New(
	token string,
	executor Executor,
	store SettingsStore,
	allowedUsers []int64,
	log *slog.Logger,
) (*Bot, error) {
	b := newBot(executor, store, allowedUsers, log)

	client, err := bot.New(strings.TrimSpace(token), bot.WithDefaultHandler(b.handleUpdate))
	if err != nil {
		return nil, fmt.Errorf("create bot client: %w", err)
	}

	b.client = client
	b.api = client

	return b, nil
}

func newBot(
	executor Executor,
	store SettingsStore,
	allowedUsers []int64,
	log *slog.Logger,
) *Bot {
	return &Bot{
		executor:         executor,
		store:            store,
		pending:          newPendingInputs(pendingInputsMaxEntries),
		allowedUsers:     allowedUsers,
		menuKeyboard:     getMenuKeyboard(),
		actionKeyboard:   getActionKeyboard(),
		settingsKeyboard: getSettingsKeyboard(),
		returnKeyboard:   getReturnKeyboard(),
		log:              log,
	}
}

// Start polls for updates until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	b.client.Start(ctx)

	b.log.InfoContext(ctx, "Bot context is done",
		"error", ctx.Err())
}

func (b *Bot) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	updateCtx, cancel := context.WithTimeout(ctx, updateProcessingTimeout)
	defer cancel()

	switch {
	case update.Message != nil:
		message := update.Message
		if message.From == nil {
			return
		}

		userID := message.From.ID
		if !b.userAllowed(userID) {
			b.log.DebugContext(updateCtx, "User is not allowed",
				"userID", userID,
				"chatID", message.Chat.ID,
				"username", message.From.Username,
				"chatType", message.Chat.Type)

			return
		}

		if err := b.handleMessage(updateCtx, message); err != nil {
			b.log.ErrorContext(updateCtx, "Failed to handle message",
				"error", err,
				"chatID", message.Chat.ID,
				"userID", userID,
				"chatType", message.Chat.Type,
				"messageID", message.ID)
		}

	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		chatID := callbackChatID(callback)

		if !b.userAllowed(callback.From.ID) {
			b.log.DebugContext(updateCtx, "User is not allowed",
				"userID", callback.From.ID,
				"chatID", chatID,
				"username", callback.From.Username,
				"data", callback.Data)

			return
		}

		if err := b.handleCallbackQuery(updateCtx, callback); err != nil {
			b.log.ErrorContext(updateCtx, "Failed to handle callback query",
				"error", err,
				"chatID", chatID,
				"userID", callback.From.ID,
				"data", callback.Data,
				"messageID", callbackMessageID(callback))
		}
	}
}

func (b *Bot) userAllowed(userID int64) bool {
	return len(b.allowedUsers) == 0 || slices.Contains(b.allowedUsers, userID)
}

func callbackChatID(cb *models.CallbackQuery) int64 {
	if cb == nil {
		return 0
	}
	if cb.Message.Message != nil {
		return cb.Message.Message.Chat.ID
	}
	if cb.Message.InaccessibleMessage != nil {
		return cb.Message.InaccessibleMessage.Chat.ID
	}

	return 0
}

func callbackMessageID(cb *models.CallbackQuery) int {
	if cb == nil {
		return 0
	}
	if cb.Message.Message != nil {
		return cb.Message.Message.ID
	}
	if cb.Message.InaccessibleMessage != nil {
		return cb.Message.InaccessibleMessage.MessageID
	}

	return 0
}
