package telegram

import (
	"context"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/repository"
	"github.com/aliskhannn/kanji-cards/internal/service"
	"github.com/aliskhannn/kanji-cards/internal/storage"
)

const testChatID int64 = 42

// fakeBot records everything the handler sends.
type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	stopped  bool
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update, 16)}
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: len(b.sent)}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

func (b *fakeBot) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = nil
	b.requests = nil
}

// lastText returns the text of the last sent message or edit.
func (b *fakeBot) lastText(t *testing.T) string {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.sent) == 0 {
		t.Fatalf("expected a message to be sent")
	}
	switch c := b.sent[len(b.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return c.Text
	case tgbotapi.EditMessageTextConfig:
		return c.Text
	default:
		t.Fatalf("unexpected chattable %T", c)
		return ""
	}
}

// lastCallback returns the last callback answer.
func (b *fakeBot) lastCallback(t *testing.T) tgbotapi.CallbackConfig {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.requests) == 0 {
		t.Fatalf("expected the callback to be answered")
	}
	cb, ok := b.requests[len(b.requests)-1].(tgbotapi.CallbackConfig)
	if !ok {
		t.Fatalf("unexpected request %T", b.requests[len(b.requests)-1])
	}
	return cb
}

type sliceSource []entities.Kanji

func (s sliceSource) Name() string { return "test" }

func (s sliceSource) Load(context.Context) ([]entities.Kanji, error) {
	return s, nil
}

func testKanji() []entities.Kanji {
	symbols := []string{"券", "符", "片", "往", "復", "精"}
	out := make([]entities.Kanji, 0, len(symbols))
	for i, s := range symbols {
		out = append(out, entities.Kanji{
			Symbol:   s,
			Meaning:  "значение " + string(rune('a'+i)),
			Readings: entities.FlatReadings("よみ" + string(rune('a'+i))),
			Words:    []string{s + "語"},
			Week:     1 + i/3,
			Day:      1,
		})
	}
	return out
}

type testHarness struct {
	bot     *fakeBot
	handler *Handler
	state   *service.StateService
	quiz    *service.QuizService
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	logger := zap.NewNop()
	repo := repository.NewKanjiRepository(logger, sliceSource(testKanji()))
	if _, err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	words := service.NewWordsService(repo)
	state := service.NewStateService(repo, storage.NewStateStorage(), logger)
	quiz := service.NewQuizService(repo, storage.NewQuizStorage(), logger)
	export := service.NewExportService(repo, state, words, logger)

	bot := newFakeBot()
	h := NewHandler(bot, logger, service.NewKanjiService(repo), words, state, quiz, export)

	return &testHarness{bot: bot, handler: h, state: state, quiz: quiz}
}

func (th *testHarness) command(cmd, args string) {
	text := "/" + cmd
	if args != "" {
		text += " " + args
	}
	th.handler.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			Chat:     &tgbotapi.Chat{ID: testChatID},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd) + 1}},
		},
	})
}

func (th *testHarness) text(text string) {
	th.handler.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{Text: text, Chat: &tgbotapi.Chat{ID: testChatID}},
	})
}

func (th *testHarness) callback(data string) {
	th.handler.handleUpdate(context.Background(), tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			From:    &tgbotapi.User{ID: testChatID},
			Message: &tgbotapi.Message{MessageID: 100, Chat: &tgbotapi.Chat{ID: testChatID}},
			Data:    data,
		},
	})
}
