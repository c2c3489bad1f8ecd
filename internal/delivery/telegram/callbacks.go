package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/service"
)

// callbackResult is what a callback handler wants done with the pressed message.
// A nil view leaves the message as is. A non-empty alert is shown as a popup.
type callbackResult struct {
	view  *view
	alert string
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "", false)
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var (
		res callbackResult
		err error
	)

	switch data.Action {
	case actionCard:
		res, err = h.cardCallback(ctx, chatID, data)
	case actionGrid:
		res = h.gridCallback(data)
	case actionWords:
		res = h.wordsCallback(chatID, data)
	case actionQuiz:
		res, err = h.quizCallback(ctx, chatID, data)
	case actionStats:
		err = h.reply(chatID, h.renderStats(ctx, chatID))
	case actionNoop:
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.answerCallback(cb.ID, msgInternalError, true)
		return
	}

	if res.view != nil {
		_ = h.edit(chatID, cb.Message.MessageID, *res.view)
	}
	h.answerCallback(cb.ID, res.alert, res.alert != "")
}

func (h *Handler) cardCallback(ctx context.Context, chatID int64, data callbackData) (callbackResult, error) {
	index, ok := data.intParam(1)
	if !ok {
		return callbackResult{}, nil
	}

	revealed := false
	switch data.param(0) {
	case cardReveal:
		revealed = true
	case cardNext, cardPrev:
		target := index + 1
		if data.param(0) == cardPrev {
			target = index - 1
		}
		if _, moved := h.stateService.SetIndex(ctx, owner(chatID), target); moved {
			index = target
		}
	case cardRandom:
		index = h.stateService.Random(ctx, owner(chatID)).CurrentIndex
	}

	v, err := h.renderCard(index, revealed)
	if err != nil {
		if service.IsNotFound(err) {
			return callbackResult{alert: msgIncorrectCardNumber}, nil
		}
		return callbackResult{}, err
	}
	return callbackResult{view: &v}, nil
}

func (h *Handler) gridCallback(data callbackData) callbackResult {
	page, ok1 := data.intParam(0)
	week, ok2 := data.intParam(1)
	day, ok3 := data.intParam(2)
	if !ok1 || !ok2 || !ok3 {
		h.logger.Warn("invalid grid callback", zap.String("data", data.Raw))
		return callbackResult{}
	}

	v := h.renderGrid(page, week, day)
	return callbackResult{view: &v}
}

func (h *Handler) wordsCallback(chatID int64, data callbackData) callbackResult {
	page, ok := data.intParam(0)
	by, err := entities.ParseWordSort(data.param(1))
	if !ok || err != nil {
		h.logger.Warn("invalid words callback", zap.String("data", data.Raw))
		return callbackResult{}
	}

	v := h.renderWords(chatID, page, by)
	return callbackResult{view: &v}
}

func (h *Handler) quizCallback(ctx context.Context, chatID int64, data callbackData) (callbackResult, error) {
	id := quizID(chatID)

	switch data.param(0) {
	case quizCount, quizKind, quizWeek, quizDay:
		settings := h.quizService.Open(id).Settings()
		if !applySetting(&settings, data.param(0), data.param(1)) {
			return callbackResult{}, nil
		}
		if err := h.quizService.Configure(id, settings); err != nil {
			return quizAlert(err, msgQuizRunning)
		}

	case quizStart:
		if _, err := h.quizService.Start(id); err != nil {
			return quizAlert(err, msgQuizRunning)
		}

	case quizAnswer:
		option, ok := data.intParam(1)
		if !ok {
			return callbackResult{}, nil
		}
		if err := h.quizService.Answer(id, option); err != nil {
			return quizAlert(err, msgQuizNotRunning)
		}

	case quizNext:
		if _, err := h.quizService.Advance(id); err != nil {
			return quizAlert(err, msgQuizNotRunning)
		}

	case quizStop:
		snapshot := h.quizService.Open(id).View()
		if snapshot.State != entities.QuizRunning {
			return callbackResult{alert: msgQuizNotRunning}, nil
		}
		v := withKeyboard(md(msgStopConfirm), buildQuizStopConfirmKeyboard())
		return callbackResult{view: &v}, nil

	case quizStopYes:
		if err := h.quizService.Stop(id); err != nil {
			return quizAlert(err, msgQuizNotRunning)
		}

	case quizReset:
		if err := h.quizService.Reset(id); err != nil {
			return quizAlert(err, msgQuizNotRunning)
		}

	case quizReview:
		return h.reviewMistakes(ctx, chatID)

	case quizMenu, quizResume:
	default:
		return callbackResult{}, nil
	}

	v, err := h.renderQuiz(chatID)
	if err != nil {
		return callbackResult{}, err
	}
	return callbackResult{view: &v}, nil
}

// applySetting changes one quiz setting from callback values.
func applySetting(s *entities.QuizSettings, name, value string) bool {
	switch name {
	case quizKind:
		kind, err := entities.ParseQuizKind(value)
		if err != nil {
			return false
		}
		s.Kind = kind
		return true
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}

	switch name {
	case quizCount:
		s.QuestionCount = n
	case quizWeek:
		if s.Week != n {
			s.Day = entities.Any
		}
		s.Week = n
	case quizDay:
		s.Day = n
	default:
		return false
	}
	return true
}

// quizAlert turns expected quiz errors into popups. transition is shown when
// the session is in the wrong state for the action.
func quizAlert(err error, transition string) (callbackResult, error) {
	switch {
	case errors.Is(err, service.ErrInsufficientData):
		return callbackResult{alert: msgInsufficientData}, nil
	case errors.Is(err, entities.ErrNoAnswerSelected):
		return callbackResult{alert: msgSelectAnswer}, nil
	case errors.Is(err, entities.ErrAnswerOutOfRange), errors.Is(err, entities.ErrInvalidSettings):
		return callbackResult{}, nil
	case errors.Is(err, entities.ErrInvalidTransition):
		return callbackResult{alert: transition}, nil
	default:
		return callbackResult{}, err
	}
}

// reviewMistakes opens the card of the first wrongly answered kanji.
func (h *Handler) reviewMistakes(ctx context.Context, chatID int64) (callbackResult, error) {
	res, err := h.quizService.Result(quizID(chatID))
	if err != nil {
		return quizAlert(err, msgQuizNotRunning)
	}

	if len(res.Mistakes) == 0 {
		return callbackResult{alert: msgNoMistakes}, nil
	}

	index, ok := h.quizService.FirstMistakeIndex(res)
	if !ok {
		return callbackResult{}, nil
	}
	return callbackResult{}, h.openCard(ctx, chatID, index)
}
