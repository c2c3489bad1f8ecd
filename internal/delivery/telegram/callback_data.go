package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

// Callback action constants.
const (
	actionCard  = "card"
	actionGrid  = "grid"
	actionWords = "words"
	actionQuiz  = "quiz"
	actionStats = "stats"
	actionNoop  = "noop"
)

// Card sub-actions.
const (
	cardShow   = "show"
	cardReveal = "reveal"
	cardHide   = "hide"
	cardNext   = "next"
	cardPrev   = "prev"
	cardRandom = "random"
)

// Quiz sub-actions.
const (
	quizMenu    = "menu"
	quizCount   = "count"
	quizKind    = "kind"
	quizWeek    = "week"
	quizDay     = "day"
	quizStart   = "start"
	quizAnswer  = "answer"
	quizNext    = "next"
	quizStop    = "stop"
	quizStopYes = "stopyes"
	quizResume  = "resume"
	quizReset   = "reset"
	quizReview  = "review"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as an integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil {
		return 0, false
	}
	return n, true
}

// buildCardCallback builds callback data for a card action on the card at index.
func buildCardCallback(subAction string, index int) string {
	return callbackData{
		Action: actionCard,
		Params: []string{subAction, strconv.Itoa(index)},
	}.encode()
}

// buildGridCallback builds callback data for a page of the grouped grid.
func buildGridCallback(page, week, day int) string {
	return callbackData{
		Action: actionGrid,
		Params: []string{strconv.Itoa(page), strconv.Itoa(week), strconv.Itoa(day)},
	}.encode()
}

// buildWordsCallback builds callback data for a page of the word list.
func buildWordsCallback(page int, sort entities.WordSort) string {
	return callbackData{
		Action: actionWords,
		Params: []string{strconv.Itoa(page), string(sort)},
	}.encode()
}

// buildQuizCallback builds callback data for quiz actions.
func buildQuizCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionQuiz,
		Params: params,
	}.encode()
}

func buildQuizAnswerCallback(option int) string {
	return buildQuizCallback(quizAnswer, strconv.Itoa(option))
}

func buildStatsCallback() string {
	return actionStats
}
