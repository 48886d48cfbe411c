package bot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"clipsum/internal/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	testChatID = 10
	testUserID = 5
)

type fakeAPI struct {
	mu       sync.Mutex
	messages []*bot.SendMessageParams
	answers  []*bot.AnswerCallbackQueryParams
}

func (f *fakeAPI) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, params)
	return &models.Message{ID: len(f.messages)}, nil
}

func (f *fakeAPI) SendChatAction(_ context.Context, _ *bot.SendChatActionParams) (bool, error) {
	return true, nil
}

func (f *fakeAPI) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.answers = append(f.answers, params)
	return true, nil
}

func (f *fakeAPI) sentTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	texts := make([]string, 0, len(f.messages))
	for _, m := range f.messages {
		texts = append(texts, m.Text)
	}
	return texts
}

func (f *fakeAPI) answerTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	texts := make([]string, 0, len(f.answers))
	for _, a := range f.answers {
		texts = append(texts, a.Text)
	}
	return texts
}

type executorCall struct {
	action domain.Action
	input  string
	config domain.RequestConfig
}

type fakeExecutor struct {
	mu     sync.Mutex
	calls  []executorCall
	result domain.Result
}

func (f *fakeExecutor) Execute(
	_ context.Context,
	action domain.Action,
	rawInput string,
	config domain.RequestConfig,
) domain.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, executorCall{action: action, input: rawInput, config: config})

	result := f.result
	result.Config = config.Normalize()
	return result
}

type memoryStore struct {
	mu       sync.Mutex
	settings map[int64]domain.UserSettings
}

func (s *memoryStore) GetUserSettings(_ context.Context, userID int64) (domain.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings, ok := s.settings[userID]; ok {
		return settings, nil
	}
	return domain.DefaultUserSettings(userID), nil
}

func (s *memoryStore) SaveUserSettings(_ context.Context, settings domain.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[settings.UserID] = settings
	return nil
}

type testBot struct {
	*Bot
	api      *fakeAPI
	executor *fakeExecutor
	store    *memoryStore
}

func newTestBot(result domain.Result, allowedUsers ...int64) *testBot {
	api := &fakeAPI{}
	executor := &fakeExecutor{result: result}
	store := &memoryStore{settings: make(map[int64]domain.UserSettings)}

	b := newBot(executor, store, allowedUsers, slog.New(slog.NewTextHandler(io.Discard, nil)))
	b.api = api

	return &testBot{Bot: b, api: api, executor: executor, store: store}
}

func messageUpdate(userID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			From: &models.User{ID: userID, Username: "tester"},
			Chat: models.Chat{ID: testChatID, Type: "private"},
			Text: text,
		},
	}
}

func callbackUpdate(userID int64, data string) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "callback",
			From: models.User{ID: userID},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: 2, Chat: models.Chat{ID: testChatID}},
			},
			Data: data,
		},
	}
}

func TestCapturedTextOffersActions(t *testing.T) {
	tb := newTestBot(domain.Result{})

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "Some long captured text."))

	if got, ok := tb.pending.get(testChatID); !ok || got != "Some long captured text." {
		t.Fatalf("Expected text to be pending, got %q (%v)", got, ok)
	}

	texts := tb.api.sentTexts()
	if len(texts) != 1 || texts[0] != chooseActionText {
		t.Fatalf("Expected action prompt, got %q", texts)
	}

	markup, ok := tb.api.messages[0].ReplyMarkup.(*models.InlineKeyboardMarkup)
	if !ok || len(markup.InlineKeyboard) == 0 {
		t.Fatalf("Expected action keyboard, got %#v", tb.api.messages[0].ReplyMarkup)
	}
}

func TestActionRunsExecutorWithUserSettings(t *testing.T) {
	tb := newTestBot(domain.Result{Text: "A fine summary."})
	tb.store.settings[testUserID] = domain.UserSettings{
		UserID:    testUserID,
		MinLength: 60,
		MaxLength: 90,
		Style:     domain.StyleAcademic,
	}

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "Captured text."))
	tb.handleUpdate(context.Background(), nil, callbackUpdate(testUserID, "action_summarize"))

	if len(tb.executor.calls) != 1 {
		t.Fatalf("Expected one executor call, got %d", len(tb.executor.calls))
	}

	call := tb.executor.calls[0]
	if call.action != domain.ActionSummarize || call.input != "Captured text." {
		t.Errorf("Unexpected call %+v", call)
	}
	want := domain.RequestConfig{MinLength: 60, MaxLength: 90, Style: domain.StyleAcademic}
	if call.config != want {
		t.Errorf("Expected config %+v, got %+v", want, call.config)
	}

	texts := tb.api.sentTexts()
	last := texts[len(texts)-1]
	for _, part := range []string{"📝 Summary", `A fine summary\.`, "60–90 words · academic style"} {
		if !strings.Contains(last, part) {
			t.Errorf("Expected %q in result message %q", part, last)
		}
	}

	if answers := tb.api.answerTexts(); len(answers) != 1 || answers[0] != "" {
		t.Errorf("Expected one empty callback answer, got %q", answers)
	}
}

func TestCodeExplanationRendersFencedCode(t *testing.T) {
	tb := newTestBot(domain.Result{Text: "It prints a greeting:\n```go\nfmt.Println(\"hi\")\n```"})

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "fmt.Println(\"hi\")"))
	tb.handleUpdate(context.Background(), nil, callbackUpdate(testUserID, "action_code"))

	texts := tb.api.sentTexts()
	last := texts[len(texts)-1]
	if !strings.Contains(last, "It prints a greeting:\n```\nfmt.Println(\"hi\")\n```") {
		t.Fatalf("Expected pre-formatted code in %q", last)
	}
}

func TestActionFailureIsRenderedAsError(t *testing.T) {
	tb := newTestBot(domain.Result{Kind: domain.ErrorKindInputTooShort, Message: "Text is too short to summarize/process."})

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "tiny"))
	tb.handleUpdate(context.Background(), nil, callbackUpdate(testUserID, "action_paraphrase"))

	texts := tb.api.sentTexts()
	last := texts[len(texts)-1]
	if last != `❌ Error: Text is too short to summarize/process\.` {
		t.Fatalf("Unexpected failure message %q", last)
	}
}

func TestActionWithoutPendingText(t *testing.T) {
	tb := newTestBot(domain.Result{Text: "unused"})

	tb.handleUpdate(context.Background(), nil, callbackUpdate(testUserID, "action_code"))

	if len(tb.executor.calls) != 0 {
		t.Fatalf("Expected no executor calls, got %d", len(tb.executor.calls))
	}
	if answers := tb.api.answerTexts(); len(answers) != 1 || !strings.Contains(answers[0], "Send me some text first") {
		t.Fatalf("Unexpected callback answers %q", answers)
	}
}

func TestLengthCommandStoresNormalizedValues(t *testing.T) {
	tb := newTestBot(domain.Result{})

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "/length 10 20"))

	got := tb.store.settings[testUserID]
	if got.MinLength != 50 || got.MaxLength != 100 {
		t.Fatalf("Expected normalized 50-100, got %+v", got)
	}

	texts := tb.api.sentTexts()
	if len(texts) != 1 || !strings.Contains(texts[0], "50–100") {
		t.Fatalf("Expected settings message, got %q", texts)
	}
}

func TestLengthCommandUsage(t *testing.T) {
	tb := newTestBot(domain.Result{})

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "/length ten"))

	if _, ok := tb.store.settings[testUserID]; ok {
		t.Fatalf("Expected settings to stay untouched")
	}
	if texts := tb.api.sentTexts(); len(texts) != 1 || !strings.Contains(texts[0], "Usage") {
		t.Fatalf("Expected usage message, got %q", texts)
	}
}

func TestLengthCommandWithBotName(t *testing.T) {
	tb := newTestBot(domain.Result{})

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "/length@ClipsumBot 100 150"))

	got := tb.store.settings[testUserID]
	if got.MinLength != 100 || got.MaxLength != 150 {
		t.Fatalf("Expected 100-150, got %+v", got)
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input       string
		wantCommand string
		wantArgs    string
	}{
		{"/start", "/start", ""},
		{"/length 10 20", "/length", "10 20"},
		{"/length@ClipsumBot 10 20", "/length", "10 20"},
		{"/Language@ClipsumBot\trust", "/language", "rust"},
		{"/languages", "/languages", ""},
		{"plain text /length", "", ""},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			command, args := splitCommand(test.input)

			if command != test.wantCommand || args != test.wantArgs {
				t.Errorf("Expected (%q, %q), got (%q, %q)", test.wantCommand, test.wantArgs, command, args)
			}
		})
	}
}

func TestLanguageCommand(t *testing.T) {
	tb := newTestBot(domain.Result{})

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "/language rust"))
	if got := tb.store.settings[testUserID].Language; got != "rust" {
		t.Fatalf("Expected rust, got %q", got)
	}

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "/language AUTO"))
	if got := tb.store.settings[testUserID].Language; got != "" {
		t.Fatalf("Expected auto-detect, got %q", got)
	}
}

func TestSettingsCallbacks(t *testing.T) {
	tb := newTestBot(domain.Result{})

	tb.handleUpdate(context.Background(), nil, callbackUpdate(testUserID, "settings_style_creative"))
	tb.handleUpdate(context.Background(), nil, callbackUpdate(testUserID, "settings_length_150_250"))
	tb.handleUpdate(context.Background(), nil, callbackUpdate(testUserID, "settings_language_go"))

	want := domain.UserSettings{
		UserID:    testUserID,
		MinLength: 150,
		MaxLength: 250,
		Style:     domain.StyleCreative,
		Language:  "go",
	}
	if got := tb.store.settings[testUserID]; got != want {
		t.Fatalf("Expected %+v, got %+v", want, got)
	}

	for _, answer := range tb.api.answerTexts() {
		if answer != "✅ Settings are updated." {
			t.Errorf("Unexpected callback answer %q", answer)
		}
	}
}

func TestInvalidStyleCallback(t *testing.T) {
	tb := newTestBot(domain.Result{})

	tb.handleUpdate(context.Background(), nil, callbackUpdate(testUserID, "settings_style_loud"))

	if _, ok := tb.store.settings[testUserID]; ok {
		t.Fatalf("Expected settings to stay untouched")
	}
	if answers := tb.api.answerTexts(); len(answers) != 1 || answers[0] != "❌ Failed." {
		t.Fatalf("Unexpected callback answers %q", answers)
	}
}

func TestUserNotAllowed(t *testing.T) {
	tb := newTestBot(domain.Result{}, 1, 2)

	tb.handleUpdate(context.Background(), nil, messageUpdate(testUserID, "hello"))
	tb.handleUpdate(context.Background(), nil, callbackUpdate(testUserID, "menu"))

	if texts := tb.api.sentTexts(); len(texts) != 0 {
		t.Fatalf("Expected no messages for disallowed user, got %q", texts)
	}
	if answers := tb.api.answerTexts(); len(answers) != 0 {
		t.Fatalf("Expected no answers for disallowed user, got %q", answers)
	}
}

func TestPendingInputsEvictsLeastRecentlyUsed(t *testing.T) {
	p := newPendingInputs(2)

	p.set(1, "one")
	p.set(2, "two")

	if _, ok := p.get(1); !ok {
		t.Fatalf("Expected chat 1 to be pending")
	}

	p.set(3, "three")

	if _, ok := p.get(2); ok {
		t.Fatalf("Expected chat 2 to be evicted")
	}
	if got, ok := p.get(1); !ok || got != "one" {
		t.Fatalf("Expected chat 1 to remain, got %q", got)
	}

	p.set(1, "uno")
	if got, _ := p.get(1); got != "uno" {
		t.Fatalf("Expected chat 1 to be updated, got %q", got)
	}
}

func TestParseLengthCallback(t *testing.T) {
	minLength, maxLength, err := parseLengthCallback("100_150")
	if err != nil || minLength != 100 || maxLength != 150 {
		t.Fatalf("Unexpected parse result %d %d %v", minLength, maxLength, err)
	}

	for _, bad := range []string{"", "100", "a_b", "100_"} {
		if _, _, err = parseLengthCallback(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestResultFooter(t *testing.T) {
	cfg := domain.RequestConfig{MinLength: 50, MaxLength: 100, Style: domain.StyleDefault}

	if got := resultFooter(domain.ActionSummarize, cfg); got != "50–100 words · default style" {
		t.Errorf("Unexpected footer %q", got)
	}
	if got := resultFooter(domain.ActionCodeSummarize, cfg); got != "up to 100 words · auto-detected language" {
		t.Errorf("Unexpected footer %q", got)
	}

	cfg.Language = "rust"
	if got := resultFooter(domain.ActionCodeSummarize, cfg); got != "up to 100 words · rust" {
		t.Errorf("Unexpected footer %q", got)
	}
}

func TestSettingsKeyboardCallbackDataFits(t *testing.T) {
	for _, row := range getSettingsKeyboard() {
		for _, b := range row {
			if len(b.CallbackData) == 0 || len(b.CallbackData) > 64 {
				t.Errorf("Callback data %q must be 1-64 bytes", b.CallbackData)
			}
		}
	}
}
