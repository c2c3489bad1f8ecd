package telegram

import (
	"context"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the part of the Telegram client the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Handler routes Telegram updates to the study services.
type Handler struct {
	bot    Bot
	logger *zap.Logger

	kanjiService  KanjiService
	wordsService  WordsService
	stateService  StateService
	quizService   QuizService
	exportService ExportService

	mu          sync.Mutex
	wordQueries map[int64]string // last /words query per chat
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	kanjiService KanjiService,
	wordsService WordsService,
	stateService StateService,
	quizService QuizService,
	exportService ExportService,
) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger,
		kanjiService:  kanjiService,
		wordsService:  wordsService,
		stateService:  stateService,
		quizService:   quizService,
		exportService: exportService,
		wordQueries:   make(map[int64]string),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		args := strings.TrimSpace(update.Message.CommandArguments())

		var fn HandlerFunc
		switch update.Message.Command() {
		case "start":
			fn = h.handleStart()
		case "help":
			fn = h.handleHelp()
		case "card":
			fn = h.handleCard(args)
		case "next":
			fn = h.handleStep(cardNext)
		case "prev":
			fn = h.handleStep(cardPrev)
		case "random":
			fn = h.handleStep(cardRandom)
		case "grid":
			fn = h.handleGrid(args)
		case "words":
			fn = h.handleWords(args)
		case "quiz":
			fn = h.handleQuiz()
		case "stats":
			fn = h.handleStats()
		case "export":
			fn = h.handleExport()
		case "exportwords":
			fn = h.handleExportWords()
		default:
			fn = func(ctx context.Context, chatID int64) error {
				return h.send(newPlainMessage(chatID, msgUnknownCommand))
			}
		}

		_ = h.withErrorHandling(fn)(ctx, chatID)
		return
	}

	_ = h.withErrorHandling(h.handleText(update.Message.Text))(ctx, chatID)
}

// owner identifies a chat's saved study state.
func owner(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// quizID identifies a chat's quiz session.
func quizID(chatID int64) string {
	return "tg-" + owner(chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the button "clock", optionally with an alert.
func (h *Handler) answerCallback(id, text string, alert bool) {
	answer := tgbotapi.NewCallback(id, text)
	answer.ShowAlert = alert
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
