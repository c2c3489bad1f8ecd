package httpapi

import (
	"time"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

type countResponse struct {
	Count int `json:"count"`
}

type kanjiListResponse struct {
	Total int                 `json:"total"`
	Kanji []entities.KanjiRef `json:"kanji"`
}

type groupResponse struct {
	Week      int                 `json:"week"`
	WeekTitle string              `json:"weekTitle"`
	Day       int                 `json:"day"`
	Theme     string              `json:"theme"`
	Kanji     []entities.KanjiRef `json:"kanji"`
}

type groupsResponse struct {
	Groups     []groupResponse          `json:"groups"`
	Statistics entities.GroupStatistics `json:"statistics"`
}

type wordsResponse struct {
	Total int                  `json:"total"`
	Words []entities.WordEntry `json:"words"`
}

// quizSettingsRequest overrides the default settings field by field.
type quizSettingsRequest struct {
	QuestionCount *int    `json:"questionCount"`
	Kind          *string `json:"kind"`
	Week          *int    `json:"week"`
	Day           *int    `json:"day"`
	Start         bool    `json:"start"` // ignored by PUT /settings
}

func (r quizSettingsRequest) apply(s entities.QuizSettings) (entities.QuizSettings, error) {
	if r.QuestionCount != nil {
		s.QuestionCount = *r.QuestionCount
	}
	if r.Kind != nil {
		kind, err := entities.ParseQuizKind(*r.Kind)
		if err != nil {
			return s, err
		}
		s.Kind = kind
	}
	if r.Week != nil {
		s.Week = *r.Week
	}
	if r.Day != nil {
		s.Day = *r.Day
	}
	return s, s.Validate()
}

type answerRequest struct {
	Option *int `json:"option" binding:"required"`
}

// questionResponse hides the correct answer of a running question.
type questionResponse struct {
	Kanji   string                `json:"kanji"`
	Kind    entities.QuestionKind `json:"kind"`
	Options []string              `json:"options"`
}

type quizResponse struct {
	ID         string                `json:"id"`
	State      entities.QuizState    `json:"state"`
	Settings   entities.QuizSettings `json:"settings"`
	Total      int                   `json:"total"`
	Position   int                   `json:"position"`
	Question   *questionResponse     `json:"question,omitempty"`
	Selected   *int                  `json:"selected,omitempty"`
	StartedAt  *time.Time            `json:"startedAt,omitempty"`
	FinishedAt *time.Time            `json:"finishedAt,omitempty"`
}

func newQuizResponse(session *entities.QuizSession) quizResponse {
	v := session.View()

	out := quizResponse{
		ID:       v.ID,
		State:    v.State,
		Settings: v.Settings,
		Total:    v.Total,
		Position: v.Position,
	}
	if v.Question != nil {
		out.Question = &questionResponse{
			Kanji:   v.Question.TargetSymbol,
			Kind:    v.Question.Kind,
			Options: v.Question.Options,
		}
		if v.Selected >= 0 {
			selected := v.Selected
			out.Selected = &selected
		}
	}
	if !v.StartedAt.IsZero() {
		out.StartedAt = &v.StartedAt
	}
	if !v.FinishedAt.IsZero() {
		out.FinishedAt = &v.FinishedAt
	}
	return out
}

type advanceResponse struct {
	Finished bool         `json:"finished"`
	Quiz     quizResponse `json:"quiz"`
}

type resultResponse struct {
	entities.QuizResult
	DurationMs int64 `json:"durationMs"`
}

type stateResponse struct {
	State      entities.AppState        `json:"state"`
	Statistics entities.StudyStatistics `json:"statistics"`
}

type stateRequest struct {
	CurrentIndex   *int    `json:"currentIndex"`
	CurrentSection *string `json:"currentSection"`
}

type navigateRequest struct {
	Direction string `json:"direction" binding:"required,oneof=next prev random"`
}
