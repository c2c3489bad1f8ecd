// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

// Error messages.
const (
	msgIncorrectCardNumber = "Некорректный ввод. Введите номер карточки или сам кандзи."
	msgOutOfRangeCard      = "Карточки с таким номером нет. Всего карточек: %d."
	msgUseGrid             = "Используйте: /grid, /grid 1 или /grid 1 2 (неделя и день)."
	msgNothingFound        = "Ничего не найдено."
	msgNoGroups            = "Для этой недели и дня нет кандзи."
	msgInsufficientData    = "Недостаточно кандзи для создания теста (минимум 4). Выберите другую неделю или день."
	msgSelectAnswer        = "Выберите ответ!"
	msgQuizNotRunning      = "Тест не запущен."
	msgQuizRunning         = "Тест уже идёт. Завершите его, чтобы изменить настройки."
	msgNoMistakes          = "У вас нет ошибок для изучения!"
	msgStopConfirm         = "Завершить тест досрочно? Результат будет посчитан по отвеченным вопросам."
	msgInternalError       = "Что‑то пошло не так. Попробуйте позже."
	msgUnknownCommand      = "Неизвестная команда. Список команд: /help"
	msgExportFailed        = "Не удалось подготовить экспорт. Попробуйте позже."
)

const (
	wordsPerPage      = 15
	searchResultLimit = 10
	progressBarLength = 20
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMessage builds the /start message.
func welcomeMessage(total int) string {
	var sb strings.Builder

	sb.WriteString(bold("日本語総まとめ N3 漢字"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Карточки для изучения кандзи уровня N3. В наборе %d кандзи, сгруппированных по неделям и дням учебника.", total)))
	sb.WriteString("\n\n")
	sb.WriteString(md("С ботом вы сможете:"))
	sb.WriteString("\n\n")
	sb.WriteString(md("🎴 Листать "))
	sb.WriteString(bold("карточки"))
	sb.WriteString(md(" со значениями, чтениями и примерами."))
	sb.WriteString("\n")
	sb.WriteString(md("📅 Смотреть кандзи "))
	sb.WriteString(bold("по неделям и дням"))
	sb.WriteString(md("."))
	sb.WriteString("\n")
	sb.WriteString(md("📝 Изучать "))
	sb.WriteString(bold("слова"))
	sb.WriteString(md(" с каждым кандзи."))
	sb.WriteString("\n")
	sb.WriteString(md("🧠 Проходить "))
	sb.WriteString(bold("тесты"))
	sb.WriteString(md(" на значение и чтение."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Нажмите /card, чтобы продолжить с того места, где остановились, или /help для списка команд."))

	return sb.String()
}

// helpMessage lists every command.
func helpMessage() string {
	lines := []string{
		bold("Команды"),
		"",
		md("/card [N] — текущая карточка или карточка №N"),
		md("/next, /prev — следующая и предыдущая карточка"),
		md("/random — случайная карточка"),
		md("/grid [неделя] [день] — кандзи по неделям и дням"),
		md("/words [запрос] — список слов"),
		md("/quiz — тест"),
		md("/stats — статистика"),
		md("/export — выгрузить данные изучения (JSON)"),
		md("/exportwords — выгрузить список слов (XLSX)"),
		"",
		md("Можно просто отправить номер карточки или сам кандзи."),
	}
	return strings.Join(lines, "\n")
}

// formatReadings renders readings the way the record stores them.
func formatReadings(r entities.Readings) string {
	switch r.Kind {
	case entities.ReadingsGrouped:
		var parts []string
		if len(r.On) > 0 {
			parts = append(parts, md("音: ")+md(strings.Join(r.On, "、")))
		}
		if len(r.Kun) > 0 {
			parts = append(parts, md("訓: ")+md(strings.Join(r.Kun, "、")))
		}
		return strings.Join(parts, "\n")
	case entities.ReadingsFlat:
		return md(strings.Join(r.Flat, "、"))
	default:
		return italic(entities.NoReading)
	}
}

// formatExample renders one example sentence.
func formatExample(e entities.Example) string {
	if e.Translation == "" {
		return md("• " + e.Japanese)
	}
	return md("• "+e.Japanese) + "\n  " + italic(e.Translation)
}

// formatCard renders a flashcard. Details are shown only when revealed.
func formatCard(k entities.Kanji, index, total int, revealed bool) string {
	var sb strings.Builder

	sb.WriteString(bold(k.Symbol))
	sb.WriteString("\n\n")

	if !revealed {
		sb.WriteString(italic("Вспомните значение и чтение, затем откройте карточку."))
		sb.WriteString("\n\n")
		sb.WriteString(formatCardFooter(k, index, total))
		return sb.String()
	}

	sb.WriteString(md("Значение: "))
	sb.WriteString(bold(k.Meaning))
	sb.WriteString("\n\n")
	sb.WriteString(md("Чтения:"))
	sb.WriteString("\n")
	sb.WriteString(formatReadings(k.Readings))
	sb.WriteString("\n")

	if len(k.Words) > 0 {
		sb.WriteString("\n")
		sb.WriteString(md("Слова: " + strings.Join(k.Words, "、")))
		sb.WriteString("\n")
	}

	if len(k.Examples) > 0 {
		sb.WriteString("\n")
		sb.WriteString(md("Примеры:"))
		sb.WriteString("\n")
		for _, e := range k.Examples {
			sb.WriteString(formatExample(e))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(formatCardFooter(k, index, total))
	return sb.String()
}

func formatCardFooter(k entities.Kanji, index, total int) string {
	lesson := fmt.Sprintf("📅 Неделя %d, день %d · %s", k.Week, k.Day, k.ThemeOrDefault())
	position := fmt.Sprintf("%d / %d", index+1, total)
	return md(lesson) + "\n" + md(position+" "+buildProgressBar(index+1, total, progressBarLength))
}

// formatKanjiLine renders a one-line summary with the card number to type.
func formatKanjiLine(index int, k entities.Kanji) string {
	return md(fmt.Sprintf("%d. %s — %s (%s)", index+1, k.Symbol, k.Meaning, entities.ReadingOf(k)))
}

// formatGroup renders one lesson of the grouped grid.
func formatGroup(g *entities.DayGroup, page, totalPages int) string {
	var sb strings.Builder

	sb.WriteString(bold(entities.WeekTitle(g.Week)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("День %d — %s (%d кандзи)", g.Day, g.Theme, len(g.Kanji))))
	sb.WriteString("\n\n")

	for i, k := range g.Kanji {
		sb.WriteString(formatKanjiLine(g.Indexes[i], k))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(italic(fmt.Sprintf("Урок %d из %d. Отправьте номер, чтобы открыть карточку.", page+1, totalPages)))
	return sb.String()
}

// formatWordsPage renders one page of the word list.
func formatWordsPage(words []entities.WordEntry, page, totalPages, total int, sort entities.WordSort, query string) string {
	var sb strings.Builder

	sb.WriteString(bold("📝 Слова"))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Сортировка: %s · найдено: %d", formatWordSort(sort), total)))
	if query != "" {
		sb.WriteString(md(fmt.Sprintf(" · запрос: «%s»", query)))
	}
	sb.WriteString("\n\n")

	for _, w := range words {
		sb.WriteString(md(fmt.Sprintf("%s — %s (%s)", w.Word, w.Kanji, w.KanjiMeaning)))
		sb.WriteString("\n")
	}

	if totalPages > 1 {
		sb.WriteString("\n")
		sb.WriteString(italic(fmt.Sprintf("Страница %d из %d", page+1, totalPages)))
	}
	return sb.String()
}

func formatWordSort(sort entities.WordSort) string {
	switch sort {
	case entities.WordSortAlphabetical:
		return "по алфавиту"
	case entities.WordSortLength:
		return "по длине"
	default:
		return "по порядку"
	}
}

func formatQuizKind(kind entities.QuizKind) string {
	switch kind {
	case entities.QuizKindReading:
		return "Чтение"
	case entities.QuizKindMixed:
		return "Смешанный"
	default:
		return "Значение"
	}
}

func formatFilter(n int) string {
	if n == entities.Any {
		return "все"
	}
	return fmt.Sprintf("%d", n)
}

// formatQuizSettings renders the quiz configuration screen.
func formatQuizSettings(s entities.QuizSettings) string {
	lines := []string{
		bold("🧠 Тест"),
		"",
		md(fmt.Sprintf("📝 Количество вопросов: %d", s.QuestionCount)),
		md(fmt.Sprintf("🎲 Тип теста: %s", formatQuizKind(s.Kind))),
		md(fmt.Sprintf("📅 Неделя: %s", formatFilter(s.Week))),
		md(fmt.Sprintf("📆 День: %s", formatFilter(s.Day))),
	}
	return strings.Join(lines, "\n")
}

// formatQuestion renders the current question of a running quiz.
func formatQuestion(q entities.Question, position, total, selected int) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("Вопрос %d из %d", position+1, total)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(position, total, progressBarLength)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(q.TargetSymbol))
	sb.WriteString("\n\n")

	if q.Kind == entities.QuestionKindReading {
		sb.WriteString(md("Как читается этот кандзи?"))
	} else {
		sb.WriteString(md("Что означает этот кандзи?"))
	}

	if selected >= 0 && selected < len(q.Options) {
		sb.WriteString("\n\n")
		sb.WriteString(md("Ваш ответ: "))
		sb.WriteString(bold(q.Options[selected]))
	}
	return sb.String()
}

// formatResult renders a finished quiz.
func formatResult(res entities.QuizResult) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Результаты теста"))
	sb.WriteString("\n\n")
	sb.WriteString(bold(fmt.Sprintf("%d%%", res.Percentage)))
	sb.WriteString(md(" · " + string(res.Grade)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Правильных ответов: %d из %d", res.Correct, res.Answered)))
	sb.WriteString("\n")
	if res.Answered < res.Total {
		sb.WriteString(md(fmt.Sprintf("Тест завершён досрочно: отвечено %d из %d вопросов", res.Answered, res.Total)))
		sb.WriteString("\n")
	}
	sb.WriteString(md("Время: " + formatDuration(res.Duration)))

	if len(res.Mistakes) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md("Ошибки:"))
		sb.WriteString("\n")
		for _, m := range res.Mistakes {
			line := fmt.Sprintf("• %s — правильно: %s", m.Question.TargetSymbol, m.Question.CorrectAnswer)
			if m.Selected >= 0 && m.Selected < len(m.Question.Options) {
				line += fmt.Sprintf(", ваш ответ: %s", m.Question.Options[m.Selected])
			}
			sb.WriteString(md(line))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func formatDuration(d time.Duration) string {
	seconds := int(d.Round(time.Second).Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%d сек", seconds)
	}
	return fmt.Sprintf("%d мин %d сек", seconds/60, seconds%60)
}

// formatStatistics renders /stats.
func formatStatistics(study entities.StudyStatistics, groups entities.GroupStatistics, words entities.WordsStatistics) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Статистика"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🎴 Карточка: %d / %d (%d%%)", study.CurrentIndex+1, study.TotalKanji, study.ProgressPercentage)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(study.CurrentIndex+1, study.TotalKanji, progressBarLength)))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("📅 Недель: %d, дней: %d, кандзи: %d", groups.TotalWeeks, groups.TotalDays, groups.TotalKanji)))
	sb.WriteString("\n")
	for _, w := range groups.Weeks {
		sb.WriteString(md(fmt.Sprintf("• %s: %d дн., %d кандзи", w.Title, w.Days, w.TotalKanji)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("📝 Слов: %d (уникальных: %d), в среднем %.1f на кандзи", words.TotalWords, words.UniqueWords, words.AverageWordsPerKanji)))
	if words.LongestWord != "" {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("Самое длинное: %s, самое короткое: %s", words.LongestWord, words.ShortestWord)))
	}

	return sb.String()
}

// buildProgressBar creates a text progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}
	if filled < 0 {
		filled = 0
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}
