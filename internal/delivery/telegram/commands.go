package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/service"
)

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, welcomeMessage(h.kanjiService.Count())))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMessage()))
	}
}

// handleCard shows the current card, or the card given by number or glyph.
func (h *Handler) handleCard(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if args == "" {
			st, err := h.stateService.SetSection(ctx, owner(chatID), entities.SectionFlashcards)
			if err != nil {
				return err
			}
			return h.sendCard(chatID, st.CurrentIndex)
		}
		return h.handleText(args)(ctx, chatID)
	}
}

// handleText handles plain input: a card number, a glyph or a search query.
func (h *Handler) handleText(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text = strings.TrimSpace(text)
		if text == "" {
			return h.send(newPlainMessage(chatID, msgIncorrectCardNumber))
		}

		if n, err := strconv.Atoi(text); err == nil {
			return h.openCard(ctx, chatID, n-1)
		}

		ref, err := h.kanjiService.Lookup(text)
		if err == nil {
			return h.openCard(ctx, chatID, ref.Index)
		}
		if !service.IsNotFound(err) {
			return err
		}

		return h.reply(chatID, h.renderSearch(text))
	}
}

// openCard moves the chat to index and shows the card.
func (h *Handler) openCard(ctx context.Context, chatID int64, index int) error {
	st, ok := h.stateService.SetIndex(ctx, owner(chatID), index)
	if !ok {
		return h.send(newPlainMessage(chatID, fmt.Sprintf(msgOutOfRangeCard, h.kanjiService.Count())))
	}
	if _, err := h.stateService.SetSection(ctx, owner(chatID), entities.SectionFlashcards); err != nil {
		return err
	}
	return h.sendCard(chatID, st.CurrentIndex)
}

func (h *Handler) sendCard(chatID int64, index int) error {
	v, err := h.renderCard(index, false)
	if err != nil {
		return err
	}
	return h.reply(chatID, v)
}

// handleStep moves through cards: next, prev or random.
func (h *Handler) handleStep(step string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		var st entities.AppState
		switch step {
		case cardNext:
			st = h.stateService.Next(ctx, owner(chatID))
		case cardPrev:
			st = h.stateService.Previous(ctx, owner(chatID))
		default:
			st = h.stateService.Random(ctx, owner(chatID))
		}
		return h.sendCard(chatID, st.CurrentIndex)
	}
}

// handleGrid shows the grouped grid, optionally narrowed to a week and day.
func (h *Handler) handleGrid(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		week, day, ok := parseWeekDay(args)
		if !ok {
			return h.send(newPlainMessage(chatID, msgUseGrid))
		}

		if _, err := h.stateService.SetSection(ctx, owner(chatID), entities.SectionAllKanji); err != nil {
			return err
		}
		return h.reply(chatID, h.renderGrid(0, week, day))
	}
}

// parseWeekDay parses "", "W" or "W D".
func parseWeekDay(args string) (int, int, bool) {
	fields := strings.Fields(args)
	if len(fields) > 2 {
		return 0, 0, false
	}

	values := []int{entities.Any, entities.Any}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		values[i] = n
	}
	return values[0], values[1], true
}

// handleWords shows the word list filtered by the optional query.
func (h *Handler) handleWords(query string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.setWordQuery(chatID, query)

		if _, err := h.stateService.SetSection(ctx, owner(chatID), entities.SectionAllWords); err != nil {
			return err
		}
		return h.reply(chatID, h.renderWords(chatID, 0, entities.WordSortIndex))
	}
}

func (h *Handler) handleQuiz() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.stateService.SetSection(ctx, owner(chatID), entities.SectionTest); err != nil {
			return err
		}

		v, err := h.renderQuiz(chatID)
		if err != nil {
			return err
		}
		return h.reply(chatID, v)
	}
}

func (h *Handler) handleStats() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.reply(chatID, h.renderStats(ctx, chatID))
	}
}

func (h *Handler) handleExport() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		doc, err := h.exportService.StudyJSON(ctx, owner(chatID))
		if err != nil {
			h.logger.Error("failed to export study data", zap.Int64("chat_id", chatID), zap.Error(err))
			return h.send(newPlainMessage(chatID, msgExportFailed))
		}
		return h.sendDocument(chatID, doc)
	}
}

func (h *Handler) handleExportWords() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		doc, err := h.exportService.WordsWorkbook()
		if err != nil {
			h.logger.Error("failed to export words", zap.Int64("chat_id", chatID), zap.Error(err))
			return h.send(newPlainMessage(chatID, msgExportFailed))
		}
		return h.sendDocument(chatID, doc)
	}
}

func (h *Handler) sendDocument(chatID int64, doc service.Document) error {
	file := tgbotapi.FileBytes{Name: doc.Name, Bytes: doc.Data}
	return h.send(tgbotapi.NewDocument(chatID, file))
}
