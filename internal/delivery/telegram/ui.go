package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

// buildPageKeyboard builds a pagination row. Returns nil for a single page.
func buildPageKeyboard(page, totalPages int, prevData, nextData string) *tgbotapi.InlineKeyboardMarkup {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", prevData))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page+1, totalPages), actionNoop))
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Вперёд ▶️", nextData))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(row)
	return &kb
}

// buildCardKeyboard builds navigation for a flashcard.
func buildCardKeyboard(index, total int, revealed bool) tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	if index > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️", buildCardCallback(cardPrev, index)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("🔀", buildCardCallback(cardRandom, index)))
	if index < total-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("▶️", buildCardCallback(cardNext, index)))
	}

	toggle := tgbotapi.NewInlineKeyboardButtonData("👁 Показать", buildCardCallback(cardReveal, index))
	if revealed {
		toggle = tgbotapi.NewInlineKeyboardButtonData("🙈 Скрыть", buildCardCallback(cardHide, index))
	}

	return tgbotapi.NewInlineKeyboardMarkup(nav, tgbotapi.NewInlineKeyboardRow(toggle))
}

// buildWordsKeyboard builds pagination plus sort switches for the word list.
func buildWordsKeyboard(page, totalPages int, sort entities.WordSort) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if kb := buildPageKeyboard(page, totalPages, buildWordsCallback(page-1, sort), buildWordsCallback(page+1, sort)); kb != nil {
		rows = append(rows, kb.InlineKeyboard...)
	}

	var sorts []tgbotapi.InlineKeyboardButton
	for _, s := range entities.WordSorts {
		label := formatWordSort(s)
		if s == sort {
			label = "✅ " + label
		}
		sorts = append(sorts, tgbotapi.NewInlineKeyboardButtonData(label, buildWordsCallback(0, s)))
	}
	rows = append(rows, sorts)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizSettingsKeyboard builds the quiz configuration screen.
func buildQuizSettingsKeyboard(s entities.QuizSettings, weeks []int, days []int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var counts []tgbotapi.InlineKeyboardButton
	for _, n := range entities.QuestionCounts {
		label := strconv.Itoa(n)
		if n == s.QuestionCount {
			label = "✅ " + label
		}
		counts = append(counts, tgbotapi.NewInlineKeyboardButtonData(label, buildQuizCallback(quizCount, strconv.Itoa(n))))
	}
	rows = append(rows, counts)

	var kinds []tgbotapi.InlineKeyboardButton
	for _, k := range []entities.QuizKind{entities.QuizKindMeaning, entities.QuizKindReading, entities.QuizKindMixed} {
		label := formatQuizKind(k)
		if k == s.Kind {
			label = "✅ " + label
		}
		kinds = append(kinds, tgbotapi.NewInlineKeyboardButtonData(label, buildQuizCallback(quizKind, string(k))))
	}
	rows = append(rows, kinds)

	rows = append(rows, filterRow("Нед.", quizWeek, s.Week, weeks))
	if s.Week != entities.Any && len(days) > 0 {
		rows = append(rows, filterRow("День", quizDay, s.Day, days))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🚀 Начать тест", buildQuizCallback(quizStart)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func filterRow(prefix, subAction string, selected int, values []int) []tgbotapi.InlineKeyboardButton {
	all := "Все"
	if selected == entities.Any {
		all = "✅ " + all
	}
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(prefix+": "+all, buildQuizCallback(subAction, strconv.Itoa(entities.Any))),
	}
	for _, v := range values {
		label := strconv.Itoa(v)
		if v == selected {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildQuizCallback(subAction, strconv.Itoa(v))))
	}
	return row
}

// buildQuizAnswerKeyboard builds keyboard for quiz question.
func buildQuizAnswerKeyboard(q entities.Question, selected int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		label := option
		if i == selected {
			label = "🔘 " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizAnswerCallback(i)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏹ Завершить", buildQuizCallback(quizStop)),
		tgbotapi.NewInlineKeyboardButtonData("Далее ▶️", buildQuizCallback(quizNext)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizStopConfirmKeyboard asks before finishing a quiz early.
func buildQuizStopConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, завершить", buildQuizCallback(quizStopYes)),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Продолжить", buildQuizCallback(quizResume)),
		),
	)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard(hasMistakes bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Новый тест", buildQuizCallback(quizReset)),
		),
	}
	if hasMistakes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Повторить ошибки", buildQuizCallback(quizReview)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", buildStatsCallback()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
