package telegram

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/service"
)

// view is a rendered screen: MarkdownV2 text with an optional keyboard.
type view struct {
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
}

func withKeyboard(text string, kb tgbotapi.InlineKeyboardMarkup) view {
	return view{text: text, keyboard: &kb}
}

// reply sends v as a new message.
func (h *Handler) reply(chatID int64, v view) error {
	msg := newMessage(chatID, v.text)
	if v.keyboard != nil {
		msg.ReplyMarkup = *v.keyboard
	}
	return h.send(msg)
}

// edit replaces the message text and keyboard with v.
func (h *Handler) edit(chatID int64, msgID int, v view) error {
	e := newEdit(chatID, msgID, v.text)
	if v.keyboard != nil {
		e.ReplyMarkup = v.keyboard
	}
	return h.send(e)
}

// renderCard renders the card at index.
func (h *Handler) renderCard(index int, revealed bool) (view, error) {
	k, err := h.kanjiService.ByIndex(index)
	if err != nil {
		return view{}, err
	}

	total := h.kanjiService.Count()
	return withKeyboard(
		formatCard(k, index, total, revealed),
		buildCardKeyboard(index, total, revealed),
	), nil
}

// filterGroups keeps the lessons matching week and day.
func filterGroups(groups []*entities.DayGroup, week, day int) []*entities.DayGroup {
	var out []*entities.DayGroup
	for _, g := range groups {
		if (week == entities.Any || g.Week == week) && (day == entities.Any || g.Day == day) {
			out = append(out, g)
		}
	}
	return out
}

// renderGrid renders one lesson of the grid. Pages out of range are clamped.
func (h *Handler) renderGrid(page, week, day int) view {
	groups := filterGroups(h.kanjiService.Groups(), week, day)
	if len(groups) == 0 {
		return view{text: md(msgNoGroups)}
	}

	page = clampPage(page, len(groups))
	v := view{text: formatGroup(groups[page], page, len(groups))}
	v.keyboard = buildPageKeyboard(page, len(groups),
		buildGridCallback(page-1, week, day),
		buildGridCallback(page+1, week, day),
	)
	return v
}

// renderWords renders a page of the chat's word list.
func (h *Handler) renderWords(chatID int64, page int, by entities.WordSort) view {
	query := h.wordQuery(chatID)
	words := h.wordsService.List(service.WordQuery{
		Week:   entities.Any,
		Day:    entities.Any,
		Search: query,
		Sort:   by,
	})
	if len(words) == 0 {
		return view{text: md(msgNothingFound)}
	}

	totalPages := (len(words) + wordsPerPage - 1) / wordsPerPage
	page = clampPage(page, totalPages)

	start := page * wordsPerPage
	end := min(start+wordsPerPage, len(words))

	return withKeyboard(
		formatWordsPage(words[start:end], page, totalPages, len(words), by, query),
		buildWordsKeyboard(page, totalPages, by),
	)
}

// renderSearch lists records matching query.
func (h *Handler) renderSearch(query string) view {
	refs := h.kanjiService.Search(query)
	if len(refs) == 0 {
		return view{text: md(msgNothingFound)}
	}

	lines := []string{bold(fmt.Sprintf("🔍 Найдено: %d", len(refs))), ""}
	for i, ref := range refs {
		if i == searchResultLimit {
			lines = append(lines, md(fmt.Sprintf("… и ещё %d", len(refs)-searchResultLimit)))
			break
		}
		lines = append(lines, formatKanjiLine(ref.Index, ref.Kanji))
	}
	lines = append(lines, "", italic("Отправьте номер, чтобы открыть карточку."))

	return view{text: strings.Join(lines, "\n")}
}

// renderQuiz renders the chat's quiz according to its state.
func (h *Handler) renderQuiz(chatID int64) (view, error) {
	session := h.quizService.Open(quizID(chatID))
	snapshot := session.View()

	switch snapshot.State {
	case entities.QuizRunning:
		return withKeyboard(
			formatQuestion(*snapshot.Question, snapshot.Position, snapshot.Total, snapshot.Selected),
			buildQuizAnswerKeyboard(*snapshot.Question, snapshot.Selected),
		), nil

	case entities.QuizFinished:
		res, err := h.quizService.Result(snapshot.ID)
		if err != nil {
			return view{}, err
		}
		return withKeyboard(formatResult(res), buildQuizResultKeyboard(len(res.Mistakes) > 0)), nil

	default:
		weeks, days := h.lessonFilters(snapshot.Settings.Week)
		return withKeyboard(
			formatQuizSettings(snapshot.Settings),
			buildQuizSettingsKeyboard(snapshot.Settings, weeks, days),
		), nil
	}
}

// lessonFilters lists the weeks and the days of week present in the dataset.
func (h *Handler) lessonFilters(week int) ([]int, []int) {
	weekSet := make(map[int]struct{})
	var days []int
	for _, g := range h.kanjiService.Groups() {
		weekSet[g.Week] = struct{}{}
		if g.Week == week {
			days = append(days, g.Day)
		}
	}

	weeks := make([]int, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	sort.Ints(days)
	return weeks, days
}

// renderStats renders the chat's statistics.
func (h *Handler) renderStats(ctx context.Context, chatID int64) view {
	return view{text: formatStatistics(
		h.stateService.StudyStatistics(ctx, owner(chatID)),
		h.kanjiService.GroupStatistics(),
		h.wordsService.Statistics(),
	)}
}

func (h *Handler) wordQuery(chatID int64) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.wordQueries[chatID]
}

func (h *Handler) setWordQuery(chatID int64, query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wordQueries[chatID] = query
}

func clampPage(page, totalPages int) int {
	if page < 0 {
		return 0
	}
	if page >= totalPages {
		return totalPages - 1
	}
	return page
}
